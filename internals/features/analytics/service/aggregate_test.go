// file: internals/features/analytics/service/aggregate_test.go
package service

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestGroupClassPerformance(t *testing.T) {
	classA := uuid.New()
	classB := uuid.New()
	rows := []ClassTypeRow{
		{ClassID: classA, ClassName: "10A", ClassGrade: "10", Subject: "Mathematics", AssessmentType: "Test", AveragePercentage: 60, AssessmentCount: 3},
		{ClassID: classA, ClassName: "10A", ClassGrade: "10", Subject: "Mathematics", AssessmentType: "Exam", AveragePercentage: 50, AssessmentCount: 1},
		{ClassID: classB, ClassName: "10B", ClassGrade: "10", Subject: "Mathematics", AssessmentType: "Test", AveragePercentage: 80, AssessmentCount: 2},
	}

	out := GroupClassPerformance(rows)
	if len(out) != 2 {
		t.Fatalf("got %d groups, want 2", len(out))
	}

	a := out[0]
	if a.ClassID != classA || a.Subject != "Mathematics" {
		t.Fatalf("first group is %s/%s, want classA/Mathematics", a.ClassID, a.Subject)
	}
	// Mean of the per-type averages, not of raw results.
	if !almostEqual(a.OverallAverage, 55) {
		t.Fatalf("overall average = %v, want 55", a.OverallAverage)
	}
	if a.TotalAssessments != 4 {
		t.Fatalf("total assessments = %d, want 4", a.TotalAssessments)
	}
	if len(a.AssessmentBreakdown) != 2 || a.AssessmentBreakdown[0].Type != "Test" || a.AssessmentBreakdown[1].Type != "Exam" {
		t.Fatalf("breakdown order not preserved: %+v", a.AssessmentBreakdown)
	}

	b := out[1]
	if b.ClassID != classB || !almostEqual(b.OverallAverage, 80) || b.TotalAssessments != 2 {
		t.Fatalf("second group wrong: %+v", b)
	}
}

func TestGroupClassPerformanceEmpty(t *testing.T) {
	if out := GroupClassPerformance(nil); len(out) != 0 {
		t.Fatalf("empty input produced %+v", out)
	}
}

func TestGroupStudentProgress(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }
	rows := []ProgressRow{
		{Term: 1, Subject: "Mathematics", Title: "Algebra Test", Type: "Test", Marks: 40, Percentage: 80, Date: day(1)},
		{Term: 1, Subject: "Mathematics", Title: "Geometry Quiz", Type: "Quiz", Marks: 9, Percentage: 45, Date: day(10)},
		{Term: 1, Subject: "Physical Sciences", Title: "Forces Test", Type: "Test", Marks: 30, Percentage: 60, Date: day(5)},
		{Term: 2, Subject: "Mathematics", Title: "Trig Exam", Type: "Exam", Marks: 55, Percentage: 55, Date: day(20)},
	}

	out := GroupStudentProgress(rows)
	if len(out) != 3 {
		t.Fatalf("got %d buckets, want 3", len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i].Term < out[i-1].Term {
			t.Fatalf("buckets not ascending by term: %+v", out)
		}
	}

	maths1 := out[0]
	if maths1.Term != 1 || maths1.Subject != "Mathematics" {
		t.Fatalf("first bucket = %+v", maths1)
	}
	if !almostEqual(maths1.Average, 62.5) {
		t.Fatalf("term 1 maths average = %v, want 62.5", maths1.Average)
	}
	if len(maths1.Assessments) != 2 || maths1.Assessments[0].Title != "Algebra Test" {
		t.Fatalf("assessment list wrong: %+v", maths1.Assessments)
	}

	if out[2].Term != 2 || !almostEqual(out[2].Average, 55) {
		t.Fatalf("term 2 bucket = %+v", out[2])
	}
}

func TestAggregateAtRisk(t *testing.T) {
	failing := uuid.New()
	passing := uuid.New()
	rows := []ResultRow{
		{StudentID: failing, StudentNumber: "S001", FirstName: "Thabo", LastName: "Nkosi", Grade: "10", Subject: "Mathematics", Percentage: 30},
		{StudentID: failing, StudentNumber: "S001", FirstName: "Thabo", LastName: "Nkosi", Grade: "10", Subject: "English Home Language", Percentage: 55},
		{StudentID: failing, StudentNumber: "S001", FirstName: "Thabo", LastName: "Nkosi", Grade: "10", Subject: "Mathematics", Percentage: 30},
		{StudentID: passing, StudentNumber: "S002", FirstName: "Lerato", LastName: "Dlamini", Grade: "10", Subject: "Mathematics", Percentage: 70},
	}

	out := AggregateAtRisk(rows, 50)
	if len(out) != 1 {
		t.Fatalf("got %d at-risk students, want 1: %+v", len(out), out)
	}
	s := out[0]
	if s.StudentID != failing || s.StudentNumber != "S001" {
		t.Fatalf("wrong student flagged: %+v", s)
	}
	// Average runs over every row, duplicates included.
	if want := (30.0 + 55 + 30) / 3; !almostEqual(s.AveragePercentage, want) {
		t.Fatalf("average = %v, want %v", s.AveragePercentage, want)
	}
	// The duplicate (Mathematics, 30) pair collapses; only below-threshold
	// attempts are weak.
	if len(s.WeakSubjects) != 1 || s.WeakSubjects[0].Subject != "Mathematics" || !almostEqual(s.WeakSubjects[0].Average, 30) {
		t.Fatalf("weak subjects = %+v", s.WeakSubjects)
	}
}

func TestAggregateAtRiskThresholdIsStrict(t *testing.T) {
	id := uuid.New()
	rows := []ResultRow{{StudentID: id, Subject: "Mathematics", Percentage: 50}}
	if out := AggregateAtRisk(rows, 50); len(out) != 0 {
		t.Fatalf("student averaging exactly the threshold was flagged: %+v", out)
	}
	if out := AggregateAtRisk(rows, 50.1); len(out) != 1 {
		t.Fatal("student just below the threshold was not flagged")
	}
}

func TestAggregateAtRiskRaisingThresholdNeverDropsStudents(t *testing.T) {
	rows := []ResultRow{}
	for i := 0; i < 10; i++ {
		rows = append(rows, ResultRow{StudentID: uuid.New(), Subject: "Mathematics", Percentage: float64(i * 10)})
	}
	prev := 0
	for _, threshold := range []float64{10, 30, 50, 70, 95} {
		n := len(AggregateAtRisk(rows, threshold))
		if n < prev {
			t.Fatalf("raising threshold to %v shrank the at-risk set: %d < %d", threshold, n, prev)
		}
		prev = n
	}
}

func TestBuildOverview(t *testing.T) {
	a1, a2 := uuid.New(), uuid.New()
	s1, s2 := uuid.New(), uuid.New()
	rows := []OverviewRow{
		{AssessmentID: a1, StudentID: s1, Percentage: 80, Subject: "Mathematics", Grade: "10"},
		{AssessmentID: a1, StudentID: s2, Percentage: 40, Subject: "Mathematics", Grade: "11"},
		{AssessmentID: a2, StudentID: s1, Percentage: 60, Subject: "English Home Language", Grade: "10"},
	}

	out := BuildOverview(rows)
	if !almostEqual(out.OverallAverage, 60) {
		t.Fatalf("overall average = %v, want 60", out.OverallAverage)
	}
	if out.TotalAssessments != 2 || out.TotalStudents != 2 {
		t.Fatalf("distinct counts = %d assessments / %d students, want 2/2", out.TotalAssessments, out.TotalStudents)
	}

	if len(out.GradePerformance) != 2 {
		t.Fatalf("grade facet = %+v", out.GradePerformance)
	}
	g10 := out.GradePerformance[0]
	if g10.Grade != "10" || !almostEqual(g10.Average, 70) || g10.StudentCount != 1 {
		t.Fatalf("grade 10 facet = %+v", g10)
	}

	if len(out.SubjectPerformance) != 2 {
		t.Fatalf("subject facet = %+v", out.SubjectPerformance)
	}
	maths := out.SubjectPerformance[1]
	if maths.Subject != "Mathematics" || !almostEqual(maths.Average, 60) || maths.AssessmentCount != 2 {
		t.Fatalf("maths facet = %+v", maths)
	}

	// Facets and totals come from the same rows; the weighted grade facet
	// must reconstruct the overall average.
	var weighted, n float64
	for _, g := range out.GradePerformance {
		// each grade row here contributes row counts 2 and 1
		switch g.Grade {
		case "10":
			weighted += g.Average * 2
			n += 2
		case "11":
			weighted += g.Average * 1
			n++
		}
	}
	if !almostEqual(weighted/n, out.OverallAverage) {
		t.Fatalf("facets disagree: weighted grade average %v vs overall %v", weighted/n, out.OverallAverage)
	}
}

func TestBuildOverviewSkipsUnmatchedStudentsInGradeFacet(t *testing.T) {
	rows := []OverviewRow{
		{AssessmentID: uuid.New(), StudentID: uuid.New(), Percentage: 50, Subject: "Mathematics", Grade: ""},
	}
	out := BuildOverview(rows)
	if len(out.GradePerformance) != 0 {
		t.Fatalf("unmatched student leaked into grade facet: %+v", out.GradePerformance)
	}
	if out.TotalStudents != 1 || !almostEqual(out.OverallAverage, 50) {
		t.Fatalf("overall facet should still count the row: %+v", out)
	}
}

func TestBuildOverviewEmpty(t *testing.T) {
	out := BuildOverview(nil)
	if out.OverallAverage != 0 || out.TotalAssessments != 0 || out.TotalStudents != 0 {
		t.Fatalf("empty overview = %+v", out)
	}
	if out.GradePerformance == nil || out.SubjectPerformance == nil {
		t.Fatal("facet slices should be empty, not nil")
	}
}
