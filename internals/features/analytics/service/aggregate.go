// file: internals/features/analytics/service/aggregate.go
package service

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"eduanalytics_backend/internals/features/analytics/dto"
)

// Flat row types scanned out of the join queries. The regrouping below is
// pure so it can be exercised without a database.

type ClassTypeRow struct {
	ClassID        uuid.UUID `json:"class_id"`
	ClassName      string    `json:"class_name"`
	ClassGrade     string    `json:"class_grade"`
	Subject        string    `json:"subject"`
	AssessmentType string    `json:"assessment_type"`

	AveragePercentage float64 `json:"average_percentage"`
	ResultCount       int     `json:"result_count"`
	AssessmentCount   int     `json:"assessment_count"`
}

type ProgressRow struct {
	Term       int       `json:"term"`
	Subject    string    `json:"subject"`
	Title      string    `json:"title"`
	Type       string    `json:"type"`
	Marks      float64   `json:"marks"`
	Percentage float64   `json:"percentage"`
	Date       time.Time `json:"date"`
}

type ResultRow struct {
	StudentID     uuid.UUID `json:"student_id"`
	StudentNumber string    `json:"student_number"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Grade         string    `json:"grade"`
	ClassID       uuid.UUID `json:"class_id"`

	Subject    string  `json:"subject"`
	Percentage float64 `json:"percentage"`
}

type OverviewRow struct {
	AssessmentID uuid.UUID `json:"assessment_id"`
	StudentID    uuid.UUID `json:"student_id"`
	Percentage   float64   `json:"percentage"`
	Subject      string    `json:"subject"`
	Grade        string    `json:"grade"`
}

// GroupClassPerformance folds per-type rows into one record per
// (class, subject): the overall average is the mean of the per-type
// averages, and the per-type rows become the breakdown list. Input order is
// preserved for the grouping keys.
func GroupClassPerformance(rows []ClassTypeRow) []dto.ClassSubjectPerformance {
	type key struct {
		classID uuid.UUID
		subject string
	}
	index := map[key]int{}
	out := []dto.ClassSubjectPerformance{}

	for _, r := range rows {
		k := key{r.ClassID, r.Subject}
		i, seen := index[k]
		if !seen {
			index[k] = len(out)
			out = append(out, dto.ClassSubjectPerformance{
				ClassID:    r.ClassID,
				ClassName:  r.ClassName,
				ClassGrade: r.ClassGrade,
				Subject:    r.Subject,
			})
			i = index[k]
		}
		out[i].AssessmentBreakdown = append(out[i].AssessmentBreakdown, dto.TypeAverage{
			Type:    r.AssessmentType,
			Average: r.AveragePercentage,
		})
		out[i].TotalAssessments += r.AssessmentCount
	}

	for i := range out {
		var sum float64
		for _, t := range out[i].AssessmentBreakdown {
			sum += t.Average
		}
		out[i].OverallAverage = sum / float64(len(out[i].AssessmentBreakdown))
	}
	return out
}

// GroupStudentProgress folds one student's result rows into term/subject
// buckets, each listing its contributing assessments, ascending by term.
func GroupStudentProgress(rows []ProgressRow) []dto.TermSubjectProgress {
	type key struct {
		term    int
		subject string
	}
	index := map[key]int{}
	out := []dto.TermSubjectProgress{}
	sums := []float64{}

	for _, r := range rows {
		k := key{r.Term, r.Subject}
		i, seen := index[k]
		if !seen {
			index[k] = len(out)
			out = append(out, dto.TermSubjectProgress{Term: r.Term, Subject: r.Subject})
			sums = append(sums, 0)
			i = index[k]
		}
		out[i].Assessments = append(out[i].Assessments, dto.ProgressAssessment{
			Title:      r.Title,
			Type:       r.Type,
			Marks:      r.Marks,
			Percentage: r.Percentage,
			Date:       r.Date,
		})
		sums[i] += r.Percentage
	}

	for i := range out {
		out[i].Average = sums[i] / float64(len(out[i].Assessments))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Term < out[j].Term })
	return out
}

// AggregateAtRisk groups result rows per student, keeps those whose overall
// average sits strictly below the threshold, and lists the distinct
// (subject, percentage) attempts that are themselves below it. The average
// runs over every row; the attempt set is deduplicated separately.
func AggregateAtRisk(rows []ResultRow, threshold float64) []dto.AtRiskStudent {
	type acc struct {
		row      ResultRow
		sum      float64
		count    int
		attempts []dto.SubjectAttempt
		seen     map[dto.SubjectAttempt]bool
	}
	index := map[uuid.UUID]*acc{}
	order := []uuid.UUID{}

	for _, r := range rows {
		a, ok := index[r.StudentID]
		if !ok {
			a = &acc{row: r, seen: map[dto.SubjectAttempt]bool{}}
			index[r.StudentID] = a
			order = append(order, r.StudentID)
		}
		a.sum += r.Percentage
		a.count++
		attempt := dto.SubjectAttempt{Subject: r.Subject, Average: r.Percentage}
		if !a.seen[attempt] {
			a.seen[attempt] = true
			a.attempts = append(a.attempts, attempt)
		}
	}

	out := []dto.AtRiskStudent{}
	for _, id := range order {
		a := index[id]
		avg := a.sum / float64(a.count)
		if avg >= threshold {
			continue
		}
		weak := []dto.SubjectAttempt{}
		for _, att := range a.attempts {
			if att.Average < threshold {
				weak = append(weak, att)
			}
		}
		out = append(out, dto.AtRiskStudent{
			StudentID:         id,
			StudentNumber:     a.row.StudentNumber,
			FirstName:         a.row.FirstName,
			LastName:          a.row.LastName,
			Grade:             a.row.Grade,
			ClassID:           a.row.ClassID,
			AveragePercentage: avg,
			WeakSubjects:      weak,
		})
	}
	return out
}

// BuildOverview computes all three sub-reports from the same row set so the
// numbers can never disagree with each other. Rows without a matched student
// still count toward the overall and subject facets but are skipped by the
// grade facet.
func BuildOverview(rows []OverviewRow) dto.SchoolOverview {
	out := dto.SchoolOverview{
		GradePerformance:   []dto.GradePerformance{},
		SubjectPerformance: []dto.SubjectPerformance{},
	}
	if len(rows) == 0 {
		return out
	}

	var sum float64
	assessments := map[uuid.UUID]bool{}
	students := map[uuid.UUID]bool{}

	type gradeAcc struct {
		sum      float64
		count    int
		students map[uuid.UUID]bool
	}
	type subjectAcc struct {
		sum   float64
		count int
	}
	grades := map[string]*gradeAcc{}
	subjects := map[string]*subjectAcc{}

	for _, r := range rows {
		sum += r.Percentage
		assessments[r.AssessmentID] = true
		students[r.StudentID] = true

		if r.Grade != "" {
			g, ok := grades[r.Grade]
			if !ok {
				g = &gradeAcc{students: map[uuid.UUID]bool{}}
				grades[r.Grade] = g
			}
			g.sum += r.Percentage
			g.count++
			g.students[r.StudentID] = true
		}

		s, ok := subjects[r.Subject]
		if !ok {
			s = &subjectAcc{}
			subjects[r.Subject] = s
		}
		s.sum += r.Percentage
		s.count++
	}

	out.OverallAverage = sum / float64(len(rows))
	out.TotalAssessments = len(assessments)
	out.TotalStudents = len(students)

	for grade, g := range grades {
		out.GradePerformance = append(out.GradePerformance, dto.GradePerformance{
			Grade:        grade,
			Average:      g.sum / float64(g.count),
			StudentCount: len(g.students),
		})
	}
	sort.Slice(out.GradePerformance, func(i, j int) bool {
		return out.GradePerformance[i].Grade < out.GradePerformance[j].Grade
	})

	for subject, s := range subjects {
		out.SubjectPerformance = append(out.SubjectPerformance, dto.SubjectPerformance{
			Subject:         subject,
			Average:         s.sum / float64(s.count),
			AssessmentCount: s.count,
		})
	}
	sort.Slice(out.SubjectPerformance, func(i, j int) bool {
		return out.SubjectPerformance[i].Subject < out.SubjectPerformance[j].Subject
	})

	return out
}
