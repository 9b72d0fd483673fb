// file: internals/features/admin/dto/admin_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	schoolDto "eduanalytics_backend/internals/features/schools/dto"
)

type PlatformStats struct {
	TotalSchools  int64                      `json:"total_schools"`
	ActiveSchools int64                      `json:"active_schools"`
	TotalStudents int64                      `json:"total_students"`
	TotalUsers    int64                      `json:"total_users"`
	RecentSchools []schoolDto.SchoolResponse `json:"recent_schools"`
}

type SchoolDetail struct {
	schoolDto.SchoolResponse
	StudentCount int64 `json:"student_count"`
	UserCount    int64 `json:"user_count"`
}

type UpdateSubscriptionRequest struct {
	Plan          string     `json:"plan" validate:"required,oneof=trial basic premium"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	StudentsLimit int        `json:"students_limit" validate:"omitempty,gt=0"`
}

type PlatformUserRow struct {
	UserID     uuid.UUID `json:"user_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	SchoolID   uuid.UUID `json:"school_id"`
	SchoolName string    `json:"school_name"`
	CreatedAt  time.Time `json:"created_at"`
}

type HealthResponse struct {
	Status         string  `json:"status"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
	DatabaseMs     float64 `json:"database_ms"`
	MemoryAllocMB  float64 `json:"memory_alloc_mb"`
	MemorySysMB    float64 `json:"memory_sys_mb"`
	Goroutines     int     `json:"goroutines"`
	ActiveSessions int64   `json:"active_sessions"`
}
