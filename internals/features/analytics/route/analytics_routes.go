// file: internals/features/analytics/route/analytics_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"eduanalytics_backend/internals/configs"
	"eduanalytics_backend/internals/features/analytics/controller"
	"eduanalytics_backend/internals/features/analytics/service"
	"eduanalytics_backend/internals/middlewares"
)

func AnalyticsRoutes(api fiber.Router, svc *service.AnalyticsService, jwt configs.JWTConfig) {
	ctl := controller.NewAnalyticsController(svc)

	analytics := api.Group("/analytics", middlewares.StaffAuth(jwt))
	analytics.Get("/class-performance", ctl.ClassPerformance)
	analytics.Get("/student-progress", ctl.StudentProgress)
	analytics.Get("/at-risk-students", ctl.AtRiskStudents)
	analytics.Get("/school-overview", ctl.SchoolOverview)
}
