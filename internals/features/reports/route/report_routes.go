// file: internals/features/reports/route/report_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eduanalytics_backend/internals/configs"
	analyticsService "eduanalytics_backend/internals/features/analytics/service"
	"eduanalytics_backend/internals/features/reports/controller"
	"eduanalytics_backend/internals/middlewares"
)

func ReportRoutes(api fiber.Router, db *gorm.DB, analytics *analyticsService.AnalyticsService, jwt configs.JWTConfig) {
	ctl := controller.NewReportController(db, analytics)

	reports := api.Group("/reports", middlewares.StaffAuth(jwt))
	reports.Get("/student/:studentId", ctl.StudentReport)
	reports.Get("/class/:classId", ctl.ClassReport)
}
