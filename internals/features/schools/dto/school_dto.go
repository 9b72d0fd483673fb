// file: internals/features/schools/dto/school_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"eduanalytics_backend/internals/features/schools/model"
)

type UpdateProfileRequest struct {
	Name     *string              `json:"name"`
	District *string              `json:"district"`
	Address  *model.SchoolAddress `json:"address"`
	Contact  *model.SchoolContact `json:"contact"`
}

type UpdateSettingsRequest struct {
	AcademicYear int                `json:"academic_year" validate:"required,min=2020,max=2035"`
	Terms        model.TermCalendar `json:"terms" validate:"required"`
}

type SchoolResponse struct {
	SchoolID     uuid.UUID                `json:"school_id"`
	Name         string                   `json:"name"`
	EmisNumber   string                   `json:"emis_number"`
	Province     string                   `json:"province"`
	District     string                   `json:"district"`
	Address      model.SchoolAddress      `json:"address"`
	Contact      model.SchoolContact      `json:"contact"`
	Subscription model.SchoolSubscription `json:"subscription"`
	Settings     model.SchoolSettings     `json:"settings"`
	CreatedAt    time.Time                `json:"created_at"`
}

func FromSchoolModel(m *model.SchoolModel) SchoolResponse {
	return SchoolResponse{
		SchoolID:     m.SchoolID,
		Name:         m.SchoolName,
		EmisNumber:   m.SchoolEmisNumber,
		Province:     m.SchoolProvince,
		District:     m.SchoolDistrict,
		Address:      m.SchoolAddress.Data(),
		Contact:      m.SchoolContact.Data(),
		Subscription: m.SchoolSubscription.Data(),
		Settings:     m.SchoolSettings.Data(),
		CreatedAt:    m.SchoolCreatedAt,
	}
}

// ===== Statistics =====

type GradeCount struct {
	Grade string `json:"grade"`
	Count int64  `json:"count"`
}

type TermCount struct {
	Term  int   `json:"term"`
	Count int64 `json:"count"`
}

type StatisticsOverview struct {
	Students       int64 `json:"students"`
	Teachers       int64 `json:"teachers"`
	Classes        int64 `json:"classes"`
	RecentActivity int64 `json:"recent_activity"`
}

type StatisticsResponse struct {
	Overview          StatisticsOverview `json:"overview"`
	GradeDistribution []GradeCount       `json:"grade_distribution"`
	AssessmentStats   []TermCount        `json:"assessment_stats"`
	LastUpdated       time.Time          `json:"last_updated"`
}

// ===== Parent verification =====

type VerifyParentRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Verify    *bool     `json:"verify" validate:"required"`
}

type ParentRequestStudent struct {
	StudentID     uuid.UUID `json:"student_id"`
	StudentNumber string    `json:"student_number"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Grade         string    `json:"grade"`
	Relationship  string    `json:"relationship"`
	IsVerified    bool      `json:"is_verified"`
}

type ParentRequestResponse struct {
	ParentID  uuid.UUID              `json:"parent_id"`
	FirstName string                 `json:"first_name"`
	LastName  string                 `json:"last_name"`
	Email     string                 `json:"email"`
	Phone     string                 `json:"phone"`
	Students  []ParentRequestStudent `json:"students"`
	CreatedAt time.Time              `json:"created_at"`
}
