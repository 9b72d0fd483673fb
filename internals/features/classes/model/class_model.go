// file: internals/features/classes/model/class_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ClassSubject assigns a subject teacher within a class.
type ClassSubject struct {
	Subject   string     `json:"subject"`
	TeacherID *uuid.UUID `json:"teacher_id,omitempty"`
}

type ClassModel struct {
	ClassID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_id" json:"class_id"`
	ClassSchoolID uuid.UUID `gorm:"type:uuid;not null;index:idx_classes_school_grade;column:class_school_id" json:"class_school_id"`

	ClassName  string `gorm:"type:text;not null;column:class_name" json:"class_name"`
	ClassGrade string `gorm:"type:varchar(2);not null;index:idx_classes_school_grade;column:class_grade" json:"class_grade"`

	// Homeroom teacher; subject teachers live in the subjects list.
	ClassTeacherID *uuid.UUID                        `gorm:"type:uuid;column:class_teacher_id" json:"class_teacher_id,omitempty"`
	ClassSubjects  datatypes.JSONType[[]ClassSubject] `gorm:"type:jsonb;column:class_subjects" json:"class_subjects"`

	ClassAcademicYear int `gorm:"type:integer;not null;column:class_academic_year" json:"class_academic_year"`

	ClassCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:class_created_at" json:"class_created_at"`
	ClassUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:class_updated_at" json:"class_updated_at"`
}

func (ClassModel) TableName() string { return "classes" }

func (m *ClassModel) BeforeSave(tx *gorm.DB) error {
	m.ClassName = strings.TrimSpace(m.ClassName)
	if m.ClassAcademicYear == 0 {
		m.ClassAcademicYear = time.Now().Year()
	}
	return nil
}
