// file: internals/features/assessments/dto/assessment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"eduanalytics_backend/internals/features/assessments/model"
)

type CreateAssessmentRequest struct {
	Title    string    `json:"title" validate:"required"`
	Subject  string    `json:"subject" validate:"required"`
	Type     string    `json:"type" validate:"required,oneof=Test Exam Assignment Practical Project"`
	Term     int       `json:"term" validate:"required,min=1,max=4"`
	MaxMarks float64   `json:"max_marks" validate:"required,gt=0"`
	Date     time.Time `json:"date" validate:"required"`
	ClassID  uuid.UUID `json:"class_id" validate:"required"`
}

type AssessmentResponse struct {
	AssessmentID uuid.UUID `json:"assessment_id"`
	SchoolID     uuid.UUID `json:"school_id"`
	Title        string    `json:"title"`
	Subject      string    `json:"subject"`
	Type         string    `json:"type"`
	Term         int       `json:"term"`
	MaxMarks     float64   `json:"max_marks"`
	Date         time.Time `json:"date"`
	ClassID      uuid.UUID `json:"class_id"`
	TeacherID    uuid.UUID `json:"teacher_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromAssessmentModel(m *model.AssessmentModel) AssessmentResponse {
	return AssessmentResponse{
		AssessmentID: m.AssessmentID,
		SchoolID:     m.AssessmentSchoolID,
		Title:        m.AssessmentTitle,
		Subject:      m.AssessmentSubject,
		Type:         m.AssessmentType,
		Term:         m.AssessmentTerm,
		MaxMarks:     m.AssessmentMaxMarks,
		Date:         m.AssessmentDate,
		ClassID:      m.AssessmentClassID,
		TeacherID:    m.AssessmentTeacherID,
		CreatedAt:    m.AssessmentCreatedAt,
	}
}

func FromAssessmentModels(ms []model.AssessmentModel) []AssessmentResponse {
	out := make([]AssessmentResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromAssessmentModel(&ms[i]))
	}
	return out
}

// ===== Marks entry =====

type MarkEntry struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Marks     float64   `json:"marks" validate:"min=0"`
}

type BulkMarksRequest struct {
	Results []MarkEntry `json:"results" validate:"required,min=1,dive"`
}

// MarkRowResult is the per-row outcome of a bulk marks upsert.
type MarkRowResult struct {
	Index      int       `json:"index"`
	StudentID  uuid.UUID `json:"student_id"`
	Saved      bool      `json:"saved"`
	Percentage float64   `json:"percentage,omitempty"`
	Error      string    `json:"error,omitempty"`
}

type BulkMarksResponse struct {
	Saved   int             `json:"saved"`
	Failed  int             `json:"failed"`
	Results []MarkRowResult `json:"results"`
}

type MarkResponse struct {
	ResultID      uuid.UUID `json:"result_id"`
	StudentID     uuid.UUID `json:"student_id"`
	StudentNumber string    `json:"student_number,omitempty"`
	FirstName     string    `json:"first_name,omitempty"`
	LastName      string    `json:"last_name,omitempty"`
	Marks         float64   `json:"marks"`
	Percentage    float64   `json:"percentage"`
}
