// file: internals/features/analytics/controller/analytics_controller.go
package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"eduanalytics_backend/internals/features/analytics/dto"
	"eduanalytics_backend/internals/features/analytics/service"
	helper "eduanalytics_backend/internals/helpers"
)

// AnalyticsController maps query-string filters onto the read-only
// aggregation service.
type AnalyticsController struct {
	Analytics *service.AnalyticsService
}

func NewAnalyticsController(svc *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Analytics: svc}
}

func (ctl *AnalyticsController) ClassPerformance(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	f := dto.ClassPerformanceFilter{
		Grade:   c.Query("grade"),
		Term:    c.QueryInt("term"),
		Subject: c.Query("subject"),
	}
	if raw := c.Query("class_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
		}
		f.ClassID = &id
	}

	out, err := ctl.Analytics.ClassPerformance(c.Context(), schoolID, f)
	if err != nil {
		log.Printf("[ANALYTICS] class performance: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not compute class performance")
	}
	return helper.JsonOK(c, "Class performance", out)
}

func (ctl *AnalyticsController) StudentProgress(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	studentID, err := uuid.Parse(c.Query("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Valid student_id is required")
	}

	out, err := ctl.Analytics.StudentProgress(c.Context(), schoolID, studentID, c.Query("subject"))
	if err != nil {
		log.Printf("[ANALYTICS] student progress: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not compute student progress")
	}
	return helper.JsonOK(c, "Student progress", out)
}

func (ctl *AnalyticsController) AtRiskStudents(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	f := dto.AtRiskFilter{
		Grade:     c.Query("grade"),
		Term:      c.QueryInt("term"),
		Threshold: c.QueryFloat("threshold"),
	}
	out, err := ctl.Analytics.AtRiskStudents(c.Context(), schoolID, f)
	if err != nil {
		log.Printf("[ANALYTICS] at-risk: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not compute at-risk students")
	}
	return helper.JsonOK(c, "At-risk students", out)
}

func (ctl *AnalyticsController) SchoolOverview(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	out, err := ctl.Analytics.SchoolOverview(c.Context(), schoolID)
	if err != nil {
		log.Printf("[ANALYTICS] overview: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not compute school overview")
	}
	return helper.JsonOK(c, "School overview", out)
}
