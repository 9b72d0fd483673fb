// file: internals/features/assessments/model/assessment_result_model_test.go
package model

import "testing"

func TestPercentage(t *testing.T) {
	cases := []struct {
		name     string
		marks    float64
		maxMarks float64
		want     float64
	}{
		{"full marks", 50, 50, 100},
		{"half marks", 25, 50, 50},
		{"fractional", 33, 40, 82.5},
		{"zero marks", 0, 100, 0},
		{"zero max guards division", 10, 0, 0},
		{"negative max guards division", 10, -5, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Percentage(tc.marks, tc.maxMarks); got != tc.want {
				t.Fatalf("Percentage(%v, %v) = %v, want %v", tc.marks, tc.maxMarks, got, tc.want)
			}
		})
	}
}
