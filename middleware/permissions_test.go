package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCan_Matrix(t *testing.T) {
	cases := []struct {
		op      string
		allowed []string
	}{
		{OpStudentsView, models.Roles},
		{OpSummaryView, models.Roles},
		{OpStudentsManage, []string{models.RoleStaff, models.RoleManager, models.RoleAdmin}},
		{OpStudentsDelete, []string{models.RoleManager, models.RoleAdmin}},
		{OpExpensesApprove, []string{models.RoleManager, models.RoleAdmin}},
		{OpAttendanceRecord, []string{models.RoleInstructor, models.RoleStaff, models.RoleManager, models.RoleAdmin}},
		{OpPaymentsView, []string{models.RoleAdmin, models.RoleManager, models.RoleAccountant, models.RoleStaff}},
		{OpPaymentsGenerate, []string{models.RoleAdmin, models.RoleManager, models.RoleAccountant}},
		{OpPaymentsRecord, []string{models.RoleAdmin, models.RoleManager, models.RoleAccountant}},
		{OpReportsGenerate, []string{models.RoleAdmin, models.RoleManager, models.RoleAccountant}},
		{OpReportsDistribute, []string{models.RoleAdmin}},
		{OpMembersManage, []string{models.RoleAdmin}},
		{OpExpensesAutoApprove, []string{models.RoleAdmin}},
	}

	for _, tc := range cases {
		allowed := map[string]bool{}
		for _, role := range tc.allowed {
			allowed[role] = true
		}
		for _, role := range models.Roles {
			assert.Equalf(t, allowed[role], Can(role, tc.op), "%s may %s", role, tc.op)
		}
	}
}

func TestCan_Unknown(t *testing.T) {
	assert.False(t, Can("", OpStudentsView))
	assert.False(t, Can(models.RoleAdmin, ""))
	assert.False(t, Can("janitor", OpStudentsView))
	assert.False(t, Can(models.RoleAdmin, "students.teleport"))
}

func TestPolicyCoversEveryOperation(t *testing.T) {
	for op, roles := range Policy {
		assert.NotEmptyf(t, roles, "%s has no roles", op)
		assert.Truef(t, Can(models.RoleAdmin, op), "admin lacks %s", op)
	}
}

func TestRequire(t *testing.T) {
	t.Setenv("JWT_SECRET", "permissions-test-secret")

	app := fiber.New()
	app.Get("/reports", Protected(), Require(OpReportsGenerate), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	call := func(role string) int {
		token, err := IssueToken(uuid.New(), role)
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/reports", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusNoContent, call(models.RoleAccountant))
	assert.Equal(t, fiber.StatusForbidden, call(models.RoleStaff))
	assert.Equal(t, fiber.StatusForbidden, call(models.RoleInstructor))

	resp, err := app.Test(httptest.NewRequest("GET", "/reports", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestIssueToken_QueryLookup(t *testing.T) {
	t.Setenv("JWT_SECRET", "permissions-test-secret")
	userID := uuid.New()

	app := fiber.New()
	app.Get("/me", Protected(), func(c *fiber.Ctx) error {
		id, ok := CurrentUserID(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"id": id, "role": CurrentRole(c)})
	})

	token, err := IssueToken(userID, models.RoleManager)
	require.NoError(t, err)
	resp, err := app.Test(httptest.NewRequest("GET", "/me?token="+token, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
