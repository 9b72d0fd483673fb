// file: internals/features/classes/dto/class_dto.go
package dto

import (
	"github.com/google/uuid"

	"eduanalytics_backend/internals/features/classes/model"
)

type CreateClassRequest struct {
	Name         string               `json:"name" validate:"required"`
	Grade        string               `json:"grade" validate:"required"`
	TeacherID    *uuid.UUID           `json:"teacher_id"`
	Subjects     []model.ClassSubject `json:"subjects"`
	AcademicYear int                  `json:"academic_year"`
}

type UpdateClassRequest struct {
	Name      *string               `json:"name"`
	TeacherID *uuid.UUID            `json:"teacher_id"`
	Subjects  *[]model.ClassSubject `json:"subjects"`
}

type ClassResponse struct {
	ClassID      uuid.UUID            `json:"class_id"`
	SchoolID     uuid.UUID            `json:"school_id"`
	Name         string               `json:"name"`
	Grade        string               `json:"grade"`
	TeacherID    *uuid.UUID           `json:"teacher_id,omitempty"`
	TeacherName  string               `json:"teacher_name,omitempty"`
	Subjects     []model.ClassSubject `json:"subjects"`
	AcademicYear int                  `json:"academic_year"`
	StudentCount int64                `json:"student_count"`
}

func FromClassModel(m *model.ClassModel) ClassResponse {
	return ClassResponse{
		ClassID:      m.ClassID,
		SchoolID:     m.ClassSchoolID,
		Name:         m.ClassName,
		Grade:        m.ClassGrade,
		TeacherID:    m.ClassTeacherID,
		Subjects:     m.ClassSubjects.Data(),
		AcademicYear: m.ClassAcademicYear,
	}
}

// GradeBucket groups a grade's classes for the grade-structure screen.
type GradeBucket struct {
	Name    string          `json:"name"`
	Classes []ClassResponse `json:"classes"`
}
