package middleware

import (
	"log"
	"sync"

	"github.com/anjiri1684/edu_cooperative/models"
	casbin "github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gofiber/fiber/v2"
)

// Operations a role may be granted.
const (
	OpStudentsView           = "students.view"
	OpStudentsManage         = "students.manage"
	OpStudentsDelete         = "students.delete"
	OpInstructorsView        = "instructors.view"
	OpInstructorsManage      = "instructors.manage"
	OpCoursesView            = "courses.view"
	OpCoursesManage          = "courses.manage"
	OpEnrollmentsView        = "enrollments.view"
	OpEnrollmentsManage      = "enrollments.manage"
	OpEnrollmentsDelete      = "enrollments.delete"
	OpAttendanceView         = "attendance.view"
	OpAttendanceRecord       = "attendance.record"
	OpHoursManage            = "hours.manage"
	OpPaymentsView           = "payments.view"
	OpPaymentsGenerate       = "payments.generate"
	OpPaymentsRecord         = "payments.record"
	OpInstructorPaymentsView = "instructor_payments.view"
	OpReportsView            = "reports.view"
	OpReportsGenerate        = "reports.generate"
	OpReportsDistribute      = "reports.distribute"
	OpDistributionsPay       = "distributions.pay"
	OpMembersManage          = "members.manage"
	OpExpensesView           = "expenses.view"
	OpExpensesCreate         = "expenses.create"
	OpExpensesApprove        = "expenses.approve"
	OpExpensesAutoApprove    = "expenses.auto_approve"
	OpExpensesPay            = "expenses.pay"
	OpRecurringView          = "recurring.view"
	OpRecurringCreate        = "recurring.create"
	OpDocumentsInvoice       = "documents.invoice"
	OpDocumentsContract      = "documents.contract"
	OpDocumentsReport        = "documents.report"
	OpSummaryView            = "summary.view"
	OpUsersManage            = "users.manage"
	OpAuditView              = "audit.view"
)

const permissionModel = `
[request_definition]
r = sub, act

[policy_definition]
p = sub, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && (p.act == "*" || r.act == p.act)
`

var (
	everyone   = models.Roles
	staffUp    = []string{models.RoleStaff, models.RoleManager, models.RoleAdmin}
	managerUp  = []string{models.RoleManager, models.RoleAdmin}
	finance    = []string{models.RoleAdmin, models.RoleManager, models.RoleAccountant}
	adminsOnly = []string{models.RoleAdmin}
)

// Policy maps each operation to the roles allowed to perform it.
var Policy = map[string][]string{
	OpStudentsView:           everyone,
	OpInstructorsView:        everyone,
	OpCoursesView:            everyone,
	OpEnrollmentsView:        everyone,
	OpAttendanceView:         everyone,
	OpInstructorPaymentsView: everyone,
	OpSummaryView:            everyone,

	OpStudentsManage:    staffUp,
	OpEnrollmentsManage: staffUp,

	OpStudentsDelete:    managerUp,
	OpEnrollmentsDelete: managerUp,
	OpInstructorsManage: managerUp,
	OpCoursesManage:     managerUp,
	OpExpensesCreate:    managerUp,
	OpExpensesApprove:   managerUp,
	OpRecurringCreate:   managerUp,
	OpDocumentsInvoice:  managerUp,
	OpDocumentsContract: managerUp,

	OpAttendanceRecord: {models.RoleInstructor, models.RoleStaff, models.RoleManager, models.RoleAdmin},
	OpPaymentsView:     {models.RoleAdmin, models.RoleManager, models.RoleAccountant, models.RoleStaff},

	OpPaymentsGenerate: finance,
	OpPaymentsRecord:   finance,
	OpHoursManage:      finance,
	OpReportsView:      finance,
	OpReportsGenerate:  finance,
	OpDocumentsReport:  finance,
	OpExpensesView:     finance,
	OpExpensesPay:      finance,
	OpRecurringView:    finance,

	OpMembersManage:       adminsOnly,
	OpReportsDistribute:   adminsOnly,
	OpDistributionsPay:    adminsOnly,
	OpUsersManage:         adminsOnly,
	OpAuditView:           adminsOnly,
	OpExpensesAutoApprove: adminsOnly,
}

var (
	enforcer     *casbin.Enforcer
	enforcerOnce sync.Once
)

// NewEnforcer builds a casbin enforcer holding the given policy.
func NewEnforcer(policy map[string][]string) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(permissionModel)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	var rules [][]string
	for op, roles := range policy {
		for _, role := range roles {
			rules = append(rules, []string{role, op})
		}
	}
	if len(rules) > 0 {
		if _, err := e.AddPolicies(rules); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func defaultEnforcer() *casbin.Enforcer {
	enforcerOnce.Do(func() {
		e, err := NewEnforcer(Policy)
		if err != nil {
			log.Fatalf("🔥 Failed to build permission enforcer: %v", err)
		}
		enforcer = e
	})
	return enforcer
}

// Can reports whether role may perform operation.
func Can(role, operation string) bool {
	if role == "" || operation == "" {
		return false
	}
	ok, err := defaultEnforcer().Enforce(role, operation)
	if err != nil {
		log.Printf("🔥 Permission check %s/%s failed: %v", role, operation, err)
		return false
	}
	return ok
}

// Require rejects the request with 403 unless the caller's role may
// perform operation. It must run after Protected.
func Require(operation string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !Can(CurrentRole(c), operation) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: you do not have permission to perform this action",
			})
		}
		return c.Next()
	}
}
