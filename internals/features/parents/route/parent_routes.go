// file: internals/features/parents/route/parent_routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eduanalytics_backend/internals/configs"
	"eduanalytics_backend/internals/features/parents/controller"
	"eduanalytics_backend/internals/middlewares"
	"eduanalytics_backend/internals/services/email"
)

// ParentRoutes mounts the guardian portal. Registration and login are open;
// everything else needs a parent token, which is only issued once a school
// has verified the link to a student.
func ParentRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate, cfg *configs.Config, mail email.Service) {
	ctl := controller.NewParentController(db, v, cfg.JWT, mail)

	parents := api.Group("/parents")
	parents.Post("/register", middlewares.LoginRateLimiter(), ctl.Register)
	parents.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)

	portal := parents.Group("", middlewares.ParentAuth(cfg.JWT))
	portal.Get("/dashboard", ctl.Dashboard)
	portal.Get("/students/:studentId/report", ctl.StudentReport)
}
