// file: internals/features/auditlog/route/audit_log_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eduanalytics_backend/internals/configs"
	"eduanalytics_backend/internals/constants"
	"eduanalytics_backend/internals/features/auditlog/controller"
	"eduanalytics_backend/internals/middlewares"
)

func AuditLogRoutes(api fiber.Router, db *gorm.DB, jwt configs.JWTConfig) {
	ctl := controller.NewAuditLogController(db)

	logs := api.Group("/audit-logs",
		middlewares.StaffAuth(jwt),
		middlewares.RequireRoles(constants.RoleAdmin, constants.RolePrincipal),
	)
	logs.Get("/", ctl.List)
	logs.Get("/statistics", ctl.Statistics)
	logs.Get("/export", ctl.Export)
}
