// file: internals/features/auditlog/controller/audit_log_controller.go
package controller

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eduanalytics_backend/internals/features/auditlog/dto"
	helper "eduanalytics_backend/internals/helpers"
)

// AuditLogController exposes a school's audit trail to its administrators.
type AuditLogController struct {
	DB *gorm.DB
}

func NewAuditLogController(db *gorm.DB) *AuditLogController {
	return &AuditLogController{DB: db}
}

func (ctl *AuditLogController) filtered(c *fiber.Ctx, schoolID uuid.UUID) *gorm.DB {
	q := ctl.DB.Table("audit_logs").Where("audit_log_school_id = ?", schoolID)
	if action := c.Query("action"); action != "" {
		q = q.Where("audit_log_action = ?", action)
	}
	if userID := c.Query("user_id"); userID != "" {
		if id, err := uuid.Parse(userID); err == nil {
			q = q.Where("audit_log_user_id = ?", id)
		}
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("audit_log_status = ?", status)
	}
	if start := c.Query("start_date"); start != "" {
		if t, err := time.Parse("2006-01-02", start); err == nil {
			q = q.Where("audit_log_timestamp >= ?", t)
		}
	}
	if end := c.Query("end_date"); end != "" {
		if t, err := time.Parse("2006-01-02", end); err == nil {
			q = q.Where("audit_log_timestamp <= ?", t.AddDate(0, 0, 1))
		}
	}
	return q
}

const auditSelect = `audit_logs.audit_log_id,
	audit_logs.audit_log_action AS action,
	audit_logs.audit_log_user_id AS user_id,
	u.user_first_name AS first_name,
	u.user_last_name AS last_name,
	u.user_role AS role,
	audit_logs.audit_log_details AS details,
	audit_logs.audit_log_resource_type AS resource_type,
	audit_logs.audit_log_status AS status,
	audit_logs.audit_log_error_message AS error_message,
	audit_logs.audit_log_ip AS ip,
	audit_logs.audit_log_timestamp AS timestamp`

// List pages through the trail newest first with actor identity joined in.
func (ctl *AuditLogController) List(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	paging := helper.ResolvePaging(c, 50, 200)

	var total int64
	if err := ctl.filtered(c, schoolID).Count(&total).Error; err != nil {
		log.Printf("[AUDIT] count: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load audit logs")
	}

	var rows []dto.AuditLogRow
	err = ctl.filtered(c, schoolID).
		Select(auditSelect).
		Joins("LEFT JOIN users u ON u.user_id = audit_logs.audit_log_user_id").
		Order("audit_log_timestamp DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Scan(&rows).Error
	if err != nil {
		log.Printf("[AUDIT] list: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load audit logs")
	}
	return helper.JsonList(c, "Audit logs", rows, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// Statistics summarizes the last 30 days: daily volume, busiest actions,
// most active users, success/failure split.
func (ctl *AuditLogController) Statistics(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	since := time.Now().AddDate(0, 0, -30)
	base := func() *gorm.DB {
		return ctl.DB.Table("audit_logs").
			Where("audit_log_school_id = ? AND audit_log_timestamp >= ?", schoolID, since)
	}

	var out dto.StatisticsResponse

	err = base().
		Select(`to_char(audit_log_timestamp, 'YYYY-MM-DD') AS day,
			COUNT(*) AS count,
			COUNT(DISTINCT audit_log_user_id) AS unique_users`).
		Group("day").
		Order("day").
		Limit(30).
		Scan(&out.DailyActivity).Error
	if err != nil {
		log.Printf("[AUDIT] daily activity: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load statistics")
	}

	err = base().
		Select("audit_log_action AS action, COUNT(*) AS count, MAX(audit_log_timestamp) AS last_activity").
		Group("audit_log_action").
		Order("count DESC").
		Limit(10).
		Scan(&out.TopActions).Error
	if err != nil {
		log.Printf("[AUDIT] top actions: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load statistics")
	}

	err = base().
		Select(`audit_log_user_id AS user_id,
			u.user_first_name AS first_name,
			u.user_last_name AS last_name,
			COUNT(*) AS count,
			MAX(audit_log_timestamp) AS last_activity`).
		Joins("JOIN users u ON u.user_id = audit_logs.audit_log_user_id").
		Group("audit_log_user_id, u.user_first_name, u.user_last_name").
		Order("count DESC").
		Limit(10).
		Scan(&out.UserActivity).Error
	if err != nil {
		log.Printf("[AUDIT] user activity: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load statistics")
	}

	err = base().
		Select("audit_log_status AS status, COUNT(*) AS count").
		Group("audit_log_status").
		Scan(&out.SuccessRate).Error
	if err != nil {
		log.Printf("[AUDIT] success rate: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not load statistics")
	}

	return helper.JsonOK(c, "Audit statistics", out)
}

// Export streams the filtered trail as CSV (default) or JSON.
func (ctl *AuditLogController) Export(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var rows []dto.AuditLogRow
	err = ctl.filtered(c, schoolID).
		Select(auditSelect).
		Joins("LEFT JOIN users u ON u.user_id = audit_logs.audit_log_user_id").
		Order("audit_log_timestamp DESC").
		Scan(&rows).Error
	if err != nil {
		log.Printf("[AUDIT] export: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not export audit logs")
	}

	if c.Query("format", "csv") == "json" {
		return helper.JsonOK(c, "Audit logs", rows)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"timestamp", "action", "first_name", "last_name", "role", "status", "ip", "details"})
	for _, r := range rows {
		_ = w.Write([]string{
			r.Timestamp.Format(time.RFC3339),
			r.Action,
			r.FirstName,
			r.LastName,
			r.Role,
			r.Status,
			r.IP,
			string(r.Details),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("[AUDIT] csv write: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not export audit logs")
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=audit-logs-%d.csv`, time.Now().Unix()))
	return c.Send(buf.Bytes())
}
