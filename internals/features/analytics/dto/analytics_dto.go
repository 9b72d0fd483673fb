// file: internals/features/analytics/dto/analytics_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// ===== Filters (query string) =====

type ClassPerformanceFilter struct {
	Grade   string     `query:"grade"`
	ClassID *uuid.UUID `query:"class_id"`
	Term    int        `query:"term"`
	Subject string     `query:"subject"`
}

type AtRiskFilter struct {
	Grade     string  `query:"grade"`
	Term      int     `query:"term"`
	Threshold float64 `query:"threshold"`
}

// ===== Reports =====

// TypeAverage is one assessment type's average inside a class/subject cell.
type TypeAverage struct {
	Type    string  `json:"type"`
	Average float64 `json:"average"`
}

type ClassSubjectPerformance struct {
	ClassID    uuid.UUID `json:"class_id"`
	ClassName  string    `json:"class_name"`
	ClassGrade string    `json:"class_grade"`
	Subject    string    `json:"subject"`

	// OverallAverage is the mean of the per-type averages, not of raw rows.
	OverallAverage      float64       `json:"overall_average"`
	AssessmentBreakdown []TypeAverage `json:"assessment_breakdown"`
	TotalAssessments    int           `json:"total_assessments"`
}

type ProgressAssessment struct {
	Title      string    `json:"title"`
	Type       string    `json:"type"`
	Marks      float64   `json:"marks"`
	Percentage float64   `json:"percentage"`
	Date       time.Time `json:"date"`
}

type TermSubjectProgress struct {
	Term        int                  `json:"term"`
	Subject     string               `json:"subject"`
	Average     float64              `json:"average"`
	Assessments []ProgressAssessment `json:"assessments"`
}

// SubjectAttempt is one distinct (subject, percentage) pair a student scored.
type SubjectAttempt struct {
	Subject string  `json:"subject"`
	Average float64 `json:"average"`
}

type AtRiskStudent struct {
	StudentID     uuid.UUID `json:"student_id"`
	StudentNumber string    `json:"student_number"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Grade         string    `json:"grade"`
	ClassID       uuid.UUID `json:"class_id"`

	AveragePercentage float64          `json:"average_percentage"`
	WeakSubjects      []SubjectAttempt `json:"weak_subjects"`
}

type GradePerformance struct {
	Grade        string  `json:"grade"`
	Average      float64 `json:"average"`
	StudentCount int     `json:"student_count"`
}

type SubjectPerformance struct {
	Subject         string  `json:"subject"`
	Average         float64 `json:"average"`
	AssessmentCount int     `json:"assessment_count"`
}

type SchoolOverview struct {
	OverallAverage     float64              `json:"overall_average"`
	TotalAssessments   int                  `json:"total_assessments"`
	TotalStudents      int                  `json:"total_students"`
	GradePerformance   []GradePerformance   `json:"grade_performance"`
	SubjectPerformance []SubjectPerformance `json:"subject_performance"`
}
