// file: internals/features/students/model/student_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GuardianContact struct {
	ParentName  string `json:"parent_name,omitempty"`
	ParentPhone string `json:"parent_phone,omitempty"`
	ParentEmail string `json:"parent_email,omitempty"`
	Address     string `json:"address,omitempty"`
}

type StudentModel struct {
	StudentID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_id" json:"student_id"`
	StudentSchoolID uuid.UUID `gorm:"type:uuid;not null;index:idx_students_school_grade;column:student_school_id" json:"student_school_id"`

	StudentNumber    string    `gorm:"type:varchar(32);not null;uniqueIndex:ux_students_number;column:student_number" json:"student_number"`
	StudentFirstName string    `gorm:"type:text;not null;column:student_first_name" json:"student_first_name"`
	StudentLastName  string    `gorm:"type:text;not null;column:student_last_name" json:"student_last_name"`
	StudentDOB       time.Time `gorm:"type:date;not null;column:student_date_of_birth" json:"student_date_of_birth"`
	StudentGender    string    `gorm:"type:varchar(8);not null;column:student_gender" json:"student_gender"`
	StudentGrade     string    `gorm:"type:varchar(2);not null;index:idx_students_school_grade;column:student_grade" json:"student_grade"`
	StudentClassID   uuid.UUID `gorm:"type:uuid;not null;index:idx_students_class;column:student_class_id" json:"student_class_id"`

	StudentContact datatypes.JSONType[GuardianContact] `gorm:"type:jsonb;column:student_contact" json:"student_contact"`

	StudentEnrollmentDate time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:student_enrollment_date" json:"student_enrollment_date"`
	StudentIsActive       bool      `gorm:"not null;default:true;column:student_is_active" json:"student_is_active"`

	StudentCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:student_created_at" json:"student_created_at"`
	StudentUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:student_updated_at" json:"student_updated_at"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeSave(tx *gorm.DB) error {
	m.StudentNumber = strings.TrimSpace(m.StudentNumber)
	m.StudentFirstName = strings.TrimSpace(m.StudentFirstName)
	m.StudentLastName = strings.TrimSpace(m.StudentLastName)
	return nil
}
