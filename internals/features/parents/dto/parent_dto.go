// file: internals/features/parents/dto/parent_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterParentRequest struct {
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	Password      string `json:"password" validate:"required,min=6"`
	StudentNumber string `json:"student_number" validate:"required"`
	Relationship  string `json:"relationship"`
}

type ParentLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LinkedStudent is one verified student shown on the parent portal.
type LinkedStudent struct {
	StudentID    uuid.UUID `json:"student_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Grade        string    `json:"grade"`
	ClassID      uuid.UUID `json:"class_id"`
	Relationship string    `json:"relationship"`
}

type ParentProfile struct {
	ParentID  uuid.UUID       `json:"parent_id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email"`
	Students  []LinkedStudent `json:"students"`
}

type ParentLoginResponse struct {
	Token  string        `json:"token"`
	Parent ParentProfile `json:"parent"`
}

type RecentAssessment struct {
	StudentName string    `json:"student_name"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	Type        string    `json:"type"`
	Marks       float64   `json:"marks"`
	MaxMarks    float64   `json:"max_marks"`
	Percentage  float64   `json:"percentage"`
	Date        time.Time `json:"date"`
}

type StudentPerformance struct {
	StudentID         uuid.UUID `json:"student_id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	AveragePercentage float64   `json:"average_percentage"`
	TotalAssessments  int64     `json:"total_assessments"`
	LastAssessment    time.Time `json:"last_assessment"`
}

type DashboardResponse struct {
	Parent             ParentProfile        `json:"parent"`
	RecentAssessments  []RecentAssessment   `json:"recent_assessments"`
	StudentPerformance []StudentPerformance `json:"student_performance"`
	SchoolName         string               `json:"school_name"`
}
