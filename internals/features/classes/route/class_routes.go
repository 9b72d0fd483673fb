// file: internals/features/classes/route/class_routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eduanalytics_backend/internals/configs"
	"eduanalytics_backend/internals/constants"
	"eduanalytics_backend/internals/features/classes/controller"
	"eduanalytics_backend/internals/middlewares"
)

func ClassRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate, jwt configs.JWTConfig) {
	ctl := controller.NewClassController(db, v)

	classes := api.Group("/classes", middlewares.StaffAuth(jwt))
	classes.Get("/", ctl.List)
	classes.Get("/grades/structure", ctl.GradeStructure)

	manage := classes.Group("", middlewares.RequireRoles(constants.RoleAdmin, constants.RolePrincipal))
	manage.Post("/", ctl.Create)
	manage.Put("/:classId", ctl.Update)
}
