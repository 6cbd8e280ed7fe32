package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anjiri1684/edu_cooperative/database"
	"github.com/anjiri1684/edu_cooperative/database/dbtest"
	"github.com/anjiri1684/edu_cooperative/middleware"
	"github.com/anjiri1684/edu_cooperative/models"
	"github.com/anjiri1684/edu_cooperative/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testApp struct {
	t   *testing.T
	app *fiber.App
	db  *gorm.DB
}

func setup(t *testing.T) *testApp {
	t.Setenv("JWT_SECRET", "handler-test-secret")
	t.Setenv("STRICT_MONTH_PARSING", "true")

	db := dbtest.New(t)
	previous := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = previous })

	app := fiber.New()
	routes.Setup(app)
	return &testApp{t: t, app: app, db: db}
}

func (a *testApp) token(role string) string {
	a.t.Helper()
	token, err := middleware.IssueToken(uuid.New(), role)
	require.NoError(a.t, err)
	return token
}

func (a *testApp) do(method, path, role string, body any) (int, []byte) {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+a.token(role))
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp.StatusCode, out
}

func TestLogin(t *testing.T) {
	a := setup(t)
	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{FullName: "Amina", Email: "amina@example.com", Username: "amina", Password: string(hashed), Role: models.RoleAccountant, IsActive: true}
	require.NoError(t, a.db.Create(&user).Error)

	status, body := a.do("POST", "/api/v1/auth/login", "", fiber.Map{"email": "Amina@example.com", "password": "s3cret-pass"})
	require.Equal(t, fiber.StatusOK, status, string(body))
	var resp struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleAccountant, resp.User.Role)

	var audits int64
	require.NoError(t, a.db.Model(&models.AuditLog{}).Where("action = ?", models.AuditLogin).Count(&audits).Error)
	assert.EqualValues(t, 1, audits)

	status, _ = a.do("POST", "/api/v1/auth/login", "", fiber.Map{"email": "amina@example.com", "password": "wrong"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestRoleGating(t *testing.T) {
	a := setup(t)

	cases := []struct {
		method, path, role string
		want               int
	}{
		{"GET", "/api/v1/students", models.RoleInstructor, fiber.StatusOK},
		{"POST", "/api/v1/payments/generate", models.RoleStaff, fiber.StatusForbidden},
		{"POST", "/api/v1/payments/generate", models.RoleInstructor, fiber.StatusForbidden},
		{"GET", "/api/v1/reports", models.RoleStaff, fiber.StatusForbidden},
		{"GET", "/api/v1/reports", models.RoleAccountant, fiber.StatusOK},
		{"GET", "/api/v1/members", models.RoleManager, fiber.StatusForbidden},
		{"GET", "/api/v1/members", models.RoleAdmin, fiber.StatusOK},
		{"GET", "/api/v1/audit-logs", models.RoleAccountant, fiber.StatusForbidden},
		{"GET", "/api/v1/expenses", models.RoleStaff, fiber.StatusForbidden},
		{"GET", "/api/v1/api/enrollment-stats", models.RoleInstructor, fiber.StatusOK},
		{"GET", "/api/v1/students", "", fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		status, body := a.do(tc.method, tc.path, tc.role, nil)
		assert.Equalf(t, tc.want, status, "%s %s as %q: %s", tc.method, tc.path, tc.role, body)
	}
}

func TestInvalidMonthIsRejected(t *testing.T) {
	a := setup(t)

	status, body := a.do("POST", "/api/v1/payments/generate", models.RoleAccountant, fiber.Map{"month": "13/2025"})
	assert.Equal(t, fiber.StatusBadRequest, status, string(body))

	status, _ = a.do("GET", "/api/v1/api/financial-summary?month=soon", models.RoleStaff, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestBillingFlow(t *testing.T) {
	a := setup(t)

	student := models.Student{FirstName: "Youssef", LastName: "Alaoui", Email: "youssef@example.com", RegistrationDate: time.Now(), IsActive: true}
	require.NoError(t, a.db.Create(&student).Error)
	course := models.Course{Name: "Algebra", CourseType: models.CourseTypeTutoring, Subject: models.SubjectMath,
		MonthlyFee: decimal.NewFromInt(250), EnrollmentLimit: 30, DurationHours: 8, IsActive: true}
	require.NoError(t, a.db.Create(&course).Error)
	require.NoError(t, a.db.Create(&models.Enrollment{StudentID: student.ID, CourseID: course.ID, EnrollmentDate: time.Now(), IsActive: true}).Error)

	status, body := a.do("POST", "/api/v1/payments/generate", models.RoleAccountant, fiber.Map{"month": "2025-03"})
	require.Equal(t, fiber.StatusOK, status, string(body))
	var result struct {
		StudentFees int `json:"student_fees_created"`
	}
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, 1, result.StudentFees)

	var record models.BillingRecord
	require.NoError(t, a.db.Where("student_id = ?", student.ID).First(&record).Error)

	status, body = a.do("POST", "/api/v1/payments/"+record.ID.String()+"/record", models.RoleAccountant,
		fiber.Map{"amount_paid": "100", "payment_date": "2025-03-05", "notes": "first instalment"})
	require.Equal(t, fiber.StatusOK, status, string(body))
	var paid models.BillingRecord
	require.NoError(t, json.Unmarshal(body, &paid))
	assert.Equal(t, models.PaymentStatusPartial, paid.Status)

	status, _ = a.do("POST", "/api/v1/payments/"+record.ID.String()+"/record", models.RoleAccountant, fiber.Map{"amount_paid": "-5"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = a.do("POST", "/api/v1/payments/"+uuid.NewString()+"/record", models.RoleAccountant, fiber.Map{"amount_paid": "5"})
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body = a.do("GET", "/api/v1/payments/export?month=2025-03", models.RoleStaff, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), "Youssef Alaoui")
}

func TestReportAndDistributionFlow(t *testing.T) {
	a := setup(t)

	member := models.Member{FirstName: "Karim", LastName: "Tazi", Email: "karim@example.com", MemberType: models.MemberTypeActive,
		CapitalShares: decimal.NewFromInt(1000), JoinDate: time.Now(), IsActive: true}
	require.NoError(t, a.db.Create(&member).Error)

	status, body := a.do("POST", "/api/v1/reports/generate?month=2025-03", models.RoleManager, nil)
	require.Equal(t, fiber.StatusCreated, status, string(body))
	var generated struct {
		Report  models.FinancialReport `json:"report"`
		Created bool                   `json:"created"`
	}
	require.NoError(t, json.Unmarshal(body, &generated))
	assert.True(t, generated.Created)

	status, _ = a.do("POST", "/api/v1/reports/generate?month=2025-03", models.RoleManager, nil)
	assert.Equal(t, fiber.StatusOK, status)

	var actions []string
	require.NoError(t, a.db.Model(&models.AuditLog{}).
		Where("model_name = ?", "FinancialReport").Pluck("action", &actions).Error)
	assert.ElementsMatch(t, []string{models.AuditCreate, models.AuditUpdate}, actions)

	path := "/api/v1/reports/" + generated.Report.ID.String() + "/distribute"
	status, _ = a.do("POST", path, models.RoleManager, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body = a.do("POST", path, models.RoleAdmin, nil)
	require.Equal(t, fiber.StatusOK, status, string(body))

	var stored models.FinancialReport
	require.NoError(t, a.db.First(&stored, "id = ?", generated.Report.ID).Error)
	assert.True(t, stored.IsFinalized)
}

func TestFinalizedReportLock(t *testing.T) {
	a := setup(t)
	t.Setenv("LOCK_FINALIZED_REPORTS", "true")

	report := models.FinancialReport{Month: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), IsFinalized: true}
	require.NoError(t, a.db.Create(&report).Error)

	status, _ := a.do("POST", "/api/v1/reports/generate?month=2025-03", models.RoleAccountant, nil)
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestExpenseFlow(t *testing.T) {
	a := setup(t)

	status, body := a.do("POST", "/api/v1/expenses", models.RoleManager, fiber.Map{
		"expense_type": "rent", "description": "March rent", "amount": "4500", "expense_date": "2025-03-02",
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	var expense models.Expense
	require.NoError(t, json.Unmarshal(body, &expense))
	assert.Equal(t, models.ExpenseStatusPending, expense.Status)

	status, _ = a.do("POST", "/api/v1/expenses/"+expense.ID.String()+"/pay", models.RoleAccountant, fiber.Map{})
	assert.Equal(t, fiber.StatusConflict, status)

	status, body = a.do("POST", "/api/v1/expenses/"+expense.ID.String()+"/decision", models.RoleManager, fiber.Map{"action": "approve"})
	require.Equal(t, fiber.StatusOK, status, string(body))

	status, body = a.do("POST", "/api/v1/expenses/"+expense.ID.String()+"/pay", models.RoleAccountant, fiber.Map{"payment_method": "cash"})
	require.Equal(t, fiber.StatusOK, status, string(body))

	status, body = a.do("POST", "/api/v1/expenses", models.RoleAdmin, fiber.Map{
		"expense_type": "supplies", "description": "Paper", "amount": "120",
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))
	require.NoError(t, json.Unmarshal(body, &expense))
	assert.Equal(t, models.ExpenseStatusApproved, expense.Status, "admin submissions are approved on creation")
}

func TestHealth(t *testing.T) {
	a := setup(t)
	status, body := a.do("GET", "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), `"status":"ok"`)
}
