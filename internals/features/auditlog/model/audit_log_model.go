// file: internals/features/auditlog/model/audit_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLogModel records who did what, per tenant. Rows older than the
// retention window are pruned by the cleanup scheduler.
type AuditLogModel struct {
	AuditLogID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:audit_log_id" json:"audit_log_id"`
	AuditLogSchoolID uuid.UUID `gorm:"type:uuid;not null;index:idx_audit_logs_school_time;column:audit_log_school_id" json:"audit_log_school_id"`

	AuditLogAction string    `gorm:"type:varchar(32);not null;index:idx_audit_logs_action;column:audit_log_action" json:"audit_log_action"`
	AuditLogUserID uuid.UUID `gorm:"type:uuid;not null;index:idx_audit_logs_user;column:audit_log_user_id" json:"audit_log_user_id"`

	AuditLogUserAgent string `gorm:"type:text;column:audit_log_user_agent" json:"audit_log_user_agent,omitempty"`
	AuditLogIP        string `gorm:"type:text;column:audit_log_ip" json:"audit_log_ip,omitempty"`

	AuditLogDetails      datatypes.JSON `gorm:"type:jsonb;column:audit_log_details" json:"audit_log_details,omitempty"`
	AuditLogResourceID   *uuid.UUID     `gorm:"type:uuid;column:audit_log_resource_id" json:"audit_log_resource_id,omitempty"`
	AuditLogResourceType string         `gorm:"type:text;column:audit_log_resource_type" json:"audit_log_resource_type,omitempty"`

	AuditLogStatus       string `gorm:"type:varchar(8);not null;default:'SUCCESS';column:audit_log_status" json:"audit_log_status"`
	AuditLogErrorMessage string `gorm:"type:text;column:audit_log_error_message" json:"audit_log_error_message,omitempty"`

	AuditLogTimestamp time.Time `gorm:"type:timestamptz;not null;autoCreateTime;index:idx_audit_logs_school_time,sort:desc;column:audit_log_timestamp" json:"audit_log_timestamp"`
}

func (AuditLogModel) TableName() string { return "audit_logs" }

// RetentionPeriod is how long audit entries are kept before pruning.
const RetentionPeriod = 365 * 24 * time.Hour
