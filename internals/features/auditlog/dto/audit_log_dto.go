// file: internals/features/auditlog/dto/audit_log_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLogRow struct {
	AuditLogID uuid.UUID `json:"audit_log_id"`
	Action     string    `json:"action"`
	UserID     uuid.UUID `json:"user_id"`
	FirstName  string    `json:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"`
	Role       string    `json:"role,omitempty"`

	Details      datatypes.JSON `json:"details,omitempty"`
	ResourceType string         `json:"resource_type,omitempty"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	IP           string         `json:"ip,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
}

type ActionStat struct {
	Action       string    `json:"action"`
	Count        int64     `json:"count"`
	LastActivity time.Time `json:"last_activity"`
}

type DailyActivity struct {
	Day         string `json:"day"`
	Count       int64  `json:"count"`
	UniqueUsers int64  `json:"unique_users"`
}

type UserActivity struct {
	UserID       uuid.UUID `json:"user_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Count        int64     `json:"count"`
	LastActivity time.Time `json:"last_activity"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type StatisticsResponse struct {
	DailyActivity []DailyActivity `json:"daily_activity"`
	TopActions    []ActionStat    `json:"top_actions"`
	UserActivity  []UserActivity  `json:"user_activity"`
	SuccessRate   []StatusCount   `json:"success_rate"`
}
