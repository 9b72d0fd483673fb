// file: internals/features/auditlog/service/recorder.go
package service

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"eduanalytics_backend/internals/constants"
	"eduanalytics_backend/internals/features/auditlog/model"
	helper "eduanalytics_backend/internals/helpers"
)

// Entry is what a controller hands to Record.
type Entry struct {
	Action       string
	UserID       uuid.UUID
	SchoolID     uuid.UUID
	Details      any
	ResourceID   *uuid.UUID
	ResourceType string
	Status       string
	ErrorMessage string
}

// Record writes an audit row. Auditing must never fail the request that
// triggered it, so errors are logged and swallowed here.
func Record(db *gorm.DB, c *fiber.Ctx, e Entry) {
	if e.Status == "" {
		e.Status = constants.AuditStatusSuccess
	}

	var details datatypes.JSON
	if e.Details != nil {
		if raw, err := json.Marshal(e.Details); err == nil {
			details = datatypes.JSON(raw)
		}
	}

	row := model.AuditLogModel{
		AuditLogAction:       e.Action,
		AuditLogUserID:       e.UserID,
		AuditLogSchoolID:     e.SchoolID,
		AuditLogDetails:      details,
		AuditLogResourceID:   e.ResourceID,
		AuditLogResourceType: e.ResourceType,
		AuditLogStatus:       e.Status,
		AuditLogErrorMessage: e.ErrorMessage,
	}
	if c != nil {
		row.AuditLogIP = c.IP()
		row.AuditLogUserAgent = c.Get(fiber.HeaderUserAgent)
	}

	if err := db.Create(&row).Error; err != nil {
		log.Printf("[AUDIT] failed to record %s: %v", e.Action, err)
	}
}

// RecordFromCtx fills actor and tenant from the authenticated request.
func RecordFromCtx(db *gorm.DB, c *fiber.Ctx, e Entry) {
	if e.UserID == uuid.Nil {
		if id, err := helper.GetUserID(c); err == nil {
			e.UserID = id
		}
	}
	if e.SchoolID == uuid.Nil {
		if id, err := helper.GetSchoolID(c); err == nil {
			e.SchoolID = id
		}
	}
	Record(db, c, e)
}

// StartRetentionCleanup prunes audit rows older than the retention window
// once a day.
func StartRetentionCleanup(db *gorm.DB) {
	go func() {
		for {
			cutoff := time.Now().Add(-model.RetentionPeriod)
			res := db.Where("audit_log_timestamp < ?", cutoff).Delete(&model.AuditLogModel{})
			if res.Error != nil {
				log.Printf("[CLEANUP] audit log prune failed: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[CLEANUP] pruned %d expired audit log rows", res.RowsAffected)
			}
			time.Sleep(24 * time.Hour)
		}
	}()
}
