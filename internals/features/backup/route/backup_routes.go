// file: internals/features/backup/route/backup_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eduanalytics_backend/internals/configs"
	"eduanalytics_backend/internals/constants"
	"eduanalytics_backend/internals/features/backup/controller"
	"eduanalytics_backend/internals/features/backup/service"
	"eduanalytics_backend/internals/middlewares"
)

// BackupRoutes mounts the per-school backup surface. Only school admins may
// touch archives; restore rewrites the tenant's rows.
func BackupRoutes(api fiber.Router, db *gorm.DB, backup *service.BackupService, jwt configs.JWTConfig) {
	ctl := controller.NewBackupController(db, backup)

	backups := api.Group("/backups",
		middlewares.StaffAuth(jwt),
		middlewares.RequireRoles(constants.RoleAdmin),
	)
	backups.Get("/", ctl.List)
	backups.Post("/", ctl.Create)
	backups.Post("/restore", ctl.Restore)
	backups.Get("/:filename/download", ctl.Download)
}
