// file: internals/route/routes.go
package routes

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eduanalytics_backend/internals/configs"
	adminRoutes "eduanalytics_backend/internals/features/admin/route"
	analyticsRoutes "eduanalytics_backend/internals/features/analytics/route"
	analyticsService "eduanalytics_backend/internals/features/analytics/service"
	assessmentRoutes "eduanalytics_backend/internals/features/assessments/route"
	auditRoutes "eduanalytics_backend/internals/features/auditlog/route"
	backupRoutes "eduanalytics_backend/internals/features/backup/route"
	backupService "eduanalytics_backend/internals/features/backup/service"
	classRoutes "eduanalytics_backend/internals/features/classes/route"
	parentRoutes "eduanalytics_backend/internals/features/parents/route"
	reportRoutes "eduanalytics_backend/internals/features/reports/route"
	schoolRoutes "eduanalytics_backend/internals/features/schools/route"
	studentRoutes "eduanalytics_backend/internals/features/students/route"
	userRoutes "eduanalytics_backend/internals/features/users/route"
	"eduanalytics_backend/internals/services/email"
)

// Deps carries everything the route tree needs. Built once in main and passed
// down; route files construct their own controllers from it.
type Deps struct {
	DB        *gorm.DB
	Cfg       *configs.Config
	Validator *validator.Validate
	Email     email.Service
	Backup    *backupService.BackupService
	Analytics *analyticsService.AnalyticsService
}

// SetupRoutes mounts the whole API under /api.
func SetupRoutes(app *fiber.App, d Deps) {
	api := app.Group("/api")

	log.Println("[ROUTES] mounting auth and users")
	userRoutes.AuthRoutes(api, d.DB, d.Validator, d.Cfg, d.Email)
	userRoutes.UserRoutes(api, d.DB, d.Validator, d.Cfg.JWT)

	log.Println("[ROUTES] mounting school management")
	schoolRoutes.SchoolRoutes(api, d.DB, d.Validator, d.Cfg.JWT, d.Email)
	studentRoutes.StudentRoutes(api, d.DB, d.Validator, d.Cfg.JWT)
	classRoutes.ClassRoutes(api, d.DB, d.Validator, d.Cfg.JWT)
	assessmentRoutes.AssessmentRoutes(api, d.DB, d.Validator, d.Cfg.JWT)
	assessmentRoutes.TeacherRoutes(api, d.DB, d.Cfg.JWT)

	log.Println("[ROUTES] mounting analytics and reporting")
	analyticsRoutes.AnalyticsRoutes(api, d.Analytics, d.Cfg.JWT)
	reportRoutes.ReportRoutes(api, d.DB, d.Analytics, d.Cfg.JWT)

	log.Println("[ROUTES] mounting parents portal")
	parentRoutes.ParentRoutes(api, d.DB, d.Validator, d.Cfg, d.Email)

	log.Println("[ROUTES] mounting audit, backup and admin")
	auditRoutes.AuditLogRoutes(api, d.DB, d.Cfg.JWT)
	backupRoutes.BackupRoutes(api, d.DB, d.Backup, d.Cfg.JWT)
	adminRoutes.AdminRoutes(api, d.DB, d.Validator, d.Backup, d.Cfg.JWT)
}
