package helper

import "testing"

func TestBuildPagination(t *testing.T) {
	cases := []struct {
		name       string
		total      int64
		page       int
		perPage    int
		wantPages  int
		wantNext   bool
		wantPrev   bool
	}{
		{"empty", 0, 1, 20, 1, false, false},
		{"single page", 15, 1, 20, 1, false, false},
		{"first of three", 50, 1, 20, 3, true, false},
		{"middle", 50, 2, 20, 3, true, true},
		{"last", 50, 3, 20, 3, false, true},
		{"zero per page falls back", 40, 1, 0, 2, true, false},
	}
	for _, tc := range cases {
		p := BuildPagination(tc.total, tc.page, tc.perPage)
		if p.TotalPages != tc.wantPages {
			t.Fatalf("%s: total pages = %d, want %d", tc.name, p.TotalPages, tc.wantPages)
		}
		if p.HasNext != tc.wantNext || p.HasPrev != tc.wantPrev {
			t.Fatalf("%s: has_next=%v has_prev=%v, want %v/%v", tc.name, p.HasNext, p.HasPrev, tc.wantNext, tc.wantPrev)
		}
	}
}
