// file: internals/features/schools/route/school_routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eduanalytics_backend/internals/configs"
	"eduanalytics_backend/internals/constants"
	"eduanalytics_backend/internals/features/schools/controller"
	"eduanalytics_backend/internals/middlewares"
	"eduanalytics_backend/internals/services/email"
)

func SchoolRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate, jwt configs.JWTConfig, mail email.Service) {
	ctl := controller.NewSchoolController(db, v, mail)

	school := api.Group("/school", middlewares.StaffAuth(jwt))
	school.Get("/profile", ctl.GetProfile)
	school.Get("/statistics", ctl.Statistics)

	manage := school.Group("", middlewares.RequireRoles(constants.RoleAdmin, constants.RolePrincipal))
	manage.Put("/profile", ctl.UpdateProfile)
	manage.Put("/settings", ctl.UpdateSettings)
	manage.Get("/parent-requests", ctl.ParentRequests)
	manage.Put("/parent-requests/:parentId", ctl.VerifyParent)
}
