package routes

import (
	"github.com/anjiri1684/edu_cooperative/handlers"
	"github.com/anjiri1684/edu_cooperative/middleware"
	"github.com/gofiber/fiber/v2"
)

func DirectoryRoutes(app *fiber.App) {
	api := app.Group("/api/v1")
	can := middleware.Require

	students := api.Group("/students", middleware.Protected())
	students.Get("", can(middleware.OpStudentsView), handlers.ListStudents)
	students.Post("", can(middleware.OpStudentsManage), handlers.CreateStudent)
	students.Get("/:studentId", can(middleware.OpStudentsView), handlers.GetStudent)
	students.Put("/:studentId", can(middleware.OpStudentsManage), handlers.UpdateStudent)
	students.Delete("/:studentId", can(middleware.OpStudentsDelete), handlers.DeleteStudent)

	instructors := api.Group("/instructors", middleware.Protected())
	instructors.Get("", can(middleware.OpInstructorsView), handlers.ListInstructors)
	instructors.Post("", can(middleware.OpInstructorsManage), handlers.CreateInstructor)
	instructors.Get("/:instructorId", can(middleware.OpInstructorsView), handlers.GetInstructor)
	instructors.Put("/:instructorId", can(middleware.OpInstructorsManage), handlers.UpdateInstructor)
	instructors.Delete("/:instructorId", can(middleware.OpInstructorsManage), handlers.DeleteInstructor)

	courses := api.Group("/courses", middleware.Protected())
	courses.Get("", can(middleware.OpCoursesView), handlers.ListCourses)
	courses.Post("", can(middleware.OpCoursesManage), handlers.CreateCourse)
	courses.Get("/:courseId", can(middleware.OpCoursesView), handlers.GetCourse)
	courses.Put("/:courseId", can(middleware.OpCoursesManage), handlers.UpdateCourse)
	courses.Delete("/:courseId", can(middleware.OpCoursesManage), handlers.DeleteCourse)

	enrollments := api.Group("/enrollments", middleware.Protected())
	enrollments.Get("", can(middleware.OpEnrollmentsView), handlers.ListEnrollments)
	enrollments.Post("", can(middleware.OpEnrollmentsManage), handlers.CreateEnrollment)
	enrollments.Put("/:enrollmentId", can(middleware.OpEnrollmentsManage), handlers.UpdateEnrollment)
	enrollments.Delete("/:enrollmentId", can(middleware.OpEnrollmentsDelete), handlers.DeleteEnrollment)

	members := api.Group("/members", middleware.Protected(), can(middleware.OpMembersManage))
	members.Get("", handlers.ListMembers)
	members.Post("", handlers.CreateMember)
	members.Get("/:memberId", handlers.GetMember)
	members.Put("/:memberId", handlers.UpdateMember)
	members.Delete("/:memberId", handlers.DeleteMember)
}
