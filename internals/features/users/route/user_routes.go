// file: internals/features/users/route/user_routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eduanalytics_backend/internals/configs"
	"eduanalytics_backend/internals/constants"
	"eduanalytics_backend/internals/features/users/controller"
	"eduanalytics_backend/internals/middlewares"
	"eduanalytics_backend/internals/services/email"
)

// AuthRoutes mounts registration, login and the password flows. The
// credential endpoints sit behind their own tighter rate limits.
func AuthRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate, cfg *configs.Config, mail email.Service) {
	authCtl := controller.NewAuthController(db, v, cfg.JWT)
	resetCtl := controller.NewPasswordResetController(db, v, mail, cfg.FrontendURL)

	auth := api.Group("/auth")
	auth.Post("/register", middlewares.LoginRateLimiter(), authCtl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), authCtl.Login)
	auth.Post("/forgot-password", middlewares.ForgotPasswordRateLimiter(), resetCtl.Forgot)
	auth.Post("/reset-password", resetCtl.Reset)

	auth.Get("/profile", middlewares.StaffAuth(cfg.JWT), authCtl.Profile)
	auth.Post("/change-password", middlewares.StaffAuth(cfg.JWT), resetCtl.Change)
}

// UserRoutes mounts staff-account management for school administrators.
func UserRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate, jwt configs.JWTConfig) {
	ctl := controller.NewUserController(db, v)

	users := api.Group("/users",
		middlewares.StaffAuth(jwt),
		middlewares.RequireRoles(constants.RoleAdmin, constants.RolePrincipal),
	)
	users.Get("/", ctl.List)
	users.Post("/", ctl.Create)
	users.Put("/:userId", ctl.Update)
}
