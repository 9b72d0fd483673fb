// file: internals/features/assessments/model/assessment_result_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// AssessmentResultModel holds one student's marks for one assessment. The
// unique index over (assessment_id, student_id) is the upsert target for
// bulk marks entry, so a pair can never appear twice.
type AssessmentResultModel struct {
	AssessmentResultID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:assessment_result_id" json:"assessment_result_id"`
	AssessmentResultSchoolID uuid.UUID `gorm:"type:uuid;not null;index:idx_assessment_results_school;column:assessment_result_school_id" json:"assessment_result_school_id"`

	AssessmentResultAssessmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_assessment_results_pair;column:assessment_result_assessment_id" json:"assessment_result_assessment_id"`
	AssessmentResultStudentID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_assessment_results_pair;index:idx_assessment_results_student;column:assessment_result_student_id" json:"assessment_result_student_id"`

	AssessmentResultMarks float64 `gorm:"type:numeric;not null;column:assessment_result_marks" json:"assessment_result_marks"`
	// Precomputed at write time: marks / max_marks * 100. Analytics reads it
	// as stored and never recomputes.
	AssessmentResultPercentage float64 `gorm:"type:numeric;not null;column:assessment_result_percentage" json:"assessment_result_percentage"`

	AssessmentResultCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:assessment_result_created_at" json:"assessment_result_created_at"`
	AssessmentResultUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:assessment_result_updated_at" json:"assessment_result_updated_at"`
}

func (AssessmentResultModel) TableName() string { return "assessment_results" }

// Percentage computes the stored percentage for a marks/max pair.
func Percentage(marks, maxMarks float64) float64 {
	if maxMarks <= 0 {
		return 0
	}
	return marks / maxMarks * 100
}
