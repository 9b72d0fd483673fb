// file: internals/features/students/route/student_routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eduanalytics_backend/internals/configs"
	"eduanalytics_backend/internals/constants"
	"eduanalytics_backend/internals/features/students/controller"
	"eduanalytics_backend/internals/middlewares"
)

func StudentRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate, jwt configs.JWTConfig) {
	ctl := controller.NewStudentController(db, v)

	students := api.Group("/students", middlewares.StaffAuth(jwt))
	students.Get("/", ctl.List)
	students.Get("/:studentId", ctl.Get)

	manage := students.Group("", middlewares.RequireRoles(constants.RoleAdmin, constants.RolePrincipal))
	manage.Post("/", ctl.Create)
	manage.Post("/bulk", ctl.BulkCreate)
	manage.Put("/:studentId", ctl.Update)
}
