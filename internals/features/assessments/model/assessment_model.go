// file: internals/features/assessments/model/assessment_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssessmentModel struct {
	AssessmentID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:assessment_id" json:"assessment_id"`
	AssessmentSchoolID uuid.UUID `gorm:"type:uuid;not null;index:idx_assessments_school_class;column:assessment_school_id" json:"assessment_school_id"`

	AssessmentTitle   string `gorm:"type:text;not null;column:assessment_title" json:"assessment_title"`
	AssessmentSubject string `gorm:"type:text;not null;column:assessment_subject" json:"assessment_subject"`
	AssessmentType    string `gorm:"type:varchar(16);not null;default:'Test';column:assessment_type" json:"assessment_type"`
	AssessmentTerm    int    `gorm:"type:smallint;not null;column:assessment_term" json:"assessment_term"`

	AssessmentMaxMarks float64   `gorm:"type:numeric;not null;column:assessment_max_marks" json:"assessment_max_marks"`
	AssessmentDate     time.Time `gorm:"type:timestamptz;not null;column:assessment_date" json:"assessment_date"`

	AssessmentClassID   uuid.UUID `gorm:"type:uuid;not null;index:idx_assessments_school_class;column:assessment_class_id" json:"assessment_class_id"`
	AssessmentTeacherID uuid.UUID `gorm:"type:uuid;not null;index:idx_assessments_teacher;column:assessment_teacher_id" json:"assessment_teacher_id"`

	AssessmentCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:assessment_created_at" json:"assessment_created_at"`
	AssessmentUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:assessment_updated_at" json:"assessment_updated_at"`
}

func (AssessmentModel) TableName() string { return "assessments" }

func (m *AssessmentModel) BeforeSave(tx *gorm.DB) error {
	m.AssessmentTitle = strings.TrimSpace(m.AssessmentTitle)
	if m.AssessmentMaxMarks <= 0 {
		return errors.New("assessment_max_marks must be positive")
	}
	if m.AssessmentTerm < 1 || m.AssessmentTerm > 4 {
		return errors.New("assessment_term must be between 1 and 4")
	}
	return nil
}
