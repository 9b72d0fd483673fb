// file: internals/features/analytics/service/analytics_service.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eduanalytics_backend/internals/features/analytics/dto"
)

// DefaultAtRiskThreshold is the cutoff used when a caller supplies none.
const DefaultAtRiskThreshold = 50.0

// AnalyticsService runs read-only aggregations over assessment results.
// Each operation is one join query producing flat rows plus a pure
// regrouping step; nothing here mutates the store.
type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

func (s *AnalyticsService) resultJoin(ctx context.Context, schoolID uuid.UUID) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("assessment_results AS r").
		Joins("JOIN assessments a ON a.assessment_id = r.assessment_result_assessment_id").
		Where("a.assessment_school_id = ?", schoolID)
}

// ClassPerformance averages percentages per (class, subject, type) in SQL,
// then folds the types into per-(class, subject) records with a breakdown.
func (s *AnalyticsService) ClassPerformance(ctx context.Context, schoolID uuid.UUID, f dto.ClassPerformanceFilter) ([]dto.ClassSubjectPerformance, error) {
	q := s.resultJoin(ctx, schoolID).
		Select(`a.assessment_class_id AS class_id,
			c.class_name,
			c.class_grade,
			a.assessment_subject AS subject,
			a.assessment_type,
			AVG(r.assessment_result_percentage) AS average_percentage,
			COUNT(*) AS result_count,
			COUNT(DISTINCT a.assessment_id) AS assessment_count`).
		Joins("JOIN classes c ON c.class_id = a.assessment_class_id")

	if f.Grade != "" {
		q = q.Where("c.class_grade = ?", f.Grade)
	}
	if f.ClassID != nil {
		q = q.Where("a.assessment_class_id = ?", *f.ClassID)
	}
	if f.Term != 0 {
		q = q.Where("a.assessment_term = ?", f.Term)
	}
	if f.Subject != "" {
		q = q.Where("a.assessment_subject = ?", f.Subject)
	}

	var rows []ClassTypeRow
	err := q.
		Group("a.assessment_class_id, c.class_name, c.class_grade, a.assessment_subject, a.assessment_type").
		Order("c.class_name, a.assessment_subject, a.assessment_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("class performance query: %w", err)
	}
	return GroupClassPerformance(rows), nil
}

// StudentProgress lists one student's results grouped by term and subject.
func (s *AnalyticsService) StudentProgress(ctx context.Context, schoolID, studentID uuid.UUID, subject string) ([]dto.TermSubjectProgress, error) {
	q := s.resultJoin(ctx, schoolID).
		Select(`a.assessment_term AS term,
			a.assessment_subject AS subject,
			a.assessment_title AS title,
			a.assessment_type AS type,
			r.assessment_result_marks AS marks,
			r.assessment_result_percentage AS percentage,
			a.assessment_date AS date`).
		Where("r.assessment_result_student_id = ?", studentID)

	if subject != "" {
		q = q.Where("a.assessment_subject = ?", subject)
	}

	var rows []ProgressRow
	if err := q.Order("a.assessment_term, a.assessment_subject, a.assessment_date").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("student progress query: %w", err)
	}
	return GroupStudentProgress(rows), nil
}

// AtRiskStudents finds students averaging strictly below the threshold.
// A zero threshold falls back to DefaultAtRiskThreshold.
func (s *AnalyticsService) AtRiskStudents(ctx context.Context, schoolID uuid.UUID, f dto.AtRiskFilter) ([]dto.AtRiskStudent, error) {
	threshold := f.Threshold
	if threshold == 0 {
		threshold = DefaultAtRiskThreshold
	}

	q := s.resultJoin(ctx, schoolID).
		Select(`r.assessment_result_student_id AS student_id,
			st.student_number,
			st.student_first_name AS first_name,
			st.student_last_name AS last_name,
			st.student_grade AS grade,
			st.student_class_id AS class_id,
			a.assessment_subject AS subject,
			r.assessment_result_percentage AS percentage`).
		Joins("JOIN students st ON st.student_id = r.assessment_result_student_id")

	if f.Term != 0 {
		q = q.Where("a.assessment_term = ?", f.Term)
	}
	if f.Grade != "" {
		q = q.Where("st.student_grade = ?", f.Grade)
	}

	var rows []ResultRow
	if err := q.Order("st.student_number, a.assessment_subject").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("at-risk query: %w", err)
	}
	return AggregateAtRisk(rows, threshold), nil
}

// SchoolOverview builds the whole-school dashboard from a single result set
// so its three facets always agree.
func (s *AnalyticsService) SchoolOverview(ctx context.Context, schoolID uuid.UUID) (*dto.SchoolOverview, error) {
	q := s.resultJoin(ctx, schoolID).
		Select(`r.assessment_result_assessment_id AS assessment_id,
			r.assessment_result_student_id AS student_id,
			r.assessment_result_percentage AS percentage,
			a.assessment_subject AS subject,
			st.student_grade AS grade`).
		Joins("LEFT JOIN students st ON st.student_id = r.assessment_result_student_id")

	var rows []OverviewRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("school overview query: %w", err)
	}
	overview := BuildOverview(rows)
	return &overview, nil
}
