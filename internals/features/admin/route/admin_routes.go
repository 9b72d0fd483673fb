// file: internals/features/admin/route/admin_routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eduanalytics_backend/internals/configs"
	"eduanalytics_backend/internals/constants"
	"eduanalytics_backend/internals/features/admin/controller"
	backupController "eduanalytics_backend/internals/features/backup/controller"
	backupService "eduanalytics_backend/internals/features/backup/service"
	"eduanalytics_backend/internals/middlewares"
)

// AdminRoutes mounts the platform-operator surface. Everything here crosses
// tenant boundaries and is restricted to the admin role.
func AdminRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate, backup *backupService.BackupService, jwt configs.JWTConfig) {
	ctl := controller.NewAdminController(db, v)
	backupCtl := backupController.NewBackupController(db, backup)

	admin := api.Group("/admin",
		middlewares.StaffAuth(jwt),
		middlewares.RequireRoles(constants.RoleAdmin),
	)
	admin.Get("/stats", ctl.Stats)
	admin.Get("/schools", ctl.Schools)
	admin.Get("/schools/:schoolId", ctl.School)
	admin.Put("/schools/:schoolId/subscription", ctl.UpdateSubscription)
	admin.Get("/users", ctl.Users)
	admin.Get("/audit-logs", ctl.AuditLogs)
	admin.Get("/health", ctl.Health)
	admin.Get("/export", ctl.Export)
	admin.Post("/backup", backupCtl.CreateFull)
}
