// file: internals/features/assessments/route/assessment_routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eduanalytics_backend/internals/configs"
	"eduanalytics_backend/internals/features/assessments/controller"
	"eduanalytics_backend/internals/middlewares"
)

func AssessmentRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate, jwt configs.JWTConfig) {
	ctl := controller.NewAssessmentController(db, v)

	assessments := api.Group("/assessments", middlewares.StaffAuth(jwt))
	assessments.Get("/", ctl.List)
	assessments.Post("/", ctl.Create)
	assessments.Get("/:assessmentId/marks", ctl.Marks)
	assessments.Post("/:assessmentId/marks", ctl.BulkMarks)
}

// TeacherRoutes mounts the teacher workspace: their classes, their dashboard
// and the rosters they may see.
func TeacherRoutes(api fiber.Router, db *gorm.DB, jwt configs.JWTConfig) {
	ctl := controller.NewTeacherController(db)

	teacher := api.Group("/teacher", middlewares.StaffAuth(jwt))
	teacher.Get("/classes", ctl.MyClasses)
	teacher.Get("/dashboard", ctl.Dashboard)
	teacher.Get("/classes/:classId/students", ctl.ClassStudents)
}
