// file: internals/features/students/dto/student_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"eduanalytics_backend/internals/features/students/model"
)

type CreateStudentRequest struct {
	StudentNumber string    `json:"student_number" validate:"required"`
	FirstName     string    `json:"first_name" validate:"required"`
	LastName      string    `json:"last_name" validate:"required"`
	DateOfBirth   time.Time `json:"date_of_birth" validate:"required"`
	Gender        string    `json:"gender" validate:"required,oneof=male female other"`
	Grade         string    `json:"grade" validate:"required"`
	ClassID       uuid.UUID `json:"class_id" validate:"required"`

	Contact model.GuardianContact `json:"contact"`
}

type UpdateStudentRequest struct {
	FirstName *string                `json:"first_name"`
	LastName  *string                `json:"last_name"`
	Grade     *string                `json:"grade"`
	ClassID   *uuid.UUID             `json:"class_id"`
	Contact   *model.GuardianContact `json:"contact"`
	IsActive  *bool                  `json:"is_active"`
}

type BulkCreateRequest struct {
	Students []CreateStudentRequest `json:"students" validate:"required,min=1,dive"`
}

// BulkRowResult reports the outcome of one row in a bulk insert. The bulk
// endpoint returns one of these per input row instead of a bare count.
type BulkRowResult struct {
	Index         int    `json:"index"`
	StudentNumber string `json:"student_number"`
	Created       bool   `json:"created"`
	Error         string `json:"error,omitempty"`
}

type BulkCreateResponse struct {
	Created int             `json:"created"`
	Failed  int             `json:"failed"`
	Results []BulkRowResult `json:"results"`
}

type StudentResponse struct {
	StudentID      uuid.UUID             `json:"student_id"`
	SchoolID       uuid.UUID             `json:"school_id"`
	StudentNumber  string                `json:"student_number"`
	FirstName      string                `json:"first_name"`
	LastName       string                `json:"last_name"`
	DateOfBirth    time.Time             `json:"date_of_birth"`
	Gender         string                `json:"gender"`
	Grade          string                `json:"grade"`
	ClassID        uuid.UUID             `json:"class_id"`
	ClassName      string                `json:"class_name,omitempty"`
	Contact        model.GuardianContact `json:"contact"`
	EnrollmentDate time.Time             `json:"enrollment_date"`
	IsActive       bool                  `json:"is_active"`
}

func FromStudentModel(m *model.StudentModel) StudentResponse {
	return StudentResponse{
		StudentID:      m.StudentID,
		SchoolID:       m.StudentSchoolID,
		StudentNumber:  m.StudentNumber,
		FirstName:      m.StudentFirstName,
		LastName:       m.StudentLastName,
		DateOfBirth:    m.StudentDOB,
		Gender:         m.StudentGender,
		Grade:          m.StudentGrade,
		ClassID:        m.StudentClassID,
		Contact:        m.StudentContact.Data(),
		EnrollmentDate: m.StudentEnrollmentDate,
		IsActive:       m.StudentIsActive,
	}
}
