package query

import "testing"

func TestBuildList(t *testing.T) {
	cases := []struct {
		name       string
		search     string
		page       int
		wantOffset int
		wantPat    string
	}{
		{"first page", "", 1, 0, ""},
		{"second page", "", 2, 6, ""},
		{"fifth page", "", 5, 24, ""},
		{"page below one clamps", "", 0, 0, ""},
		{"negative page clamps", "", -3, 0, ""},
		{"search term wrapped", "lee", 1, 0, "%lee%"},
		{"search term trimmed", "  lee  ", 1, 0, "%lee%"},
		{"whitespace search means no filter", "   ", 1, 0, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := BuildList(tc.search, tc.page)
			if q.Offset != tc.wantOffset {
				t.Errorf("Offset = %d, want %d", q.Offset, tc.wantOffset)
			}
			if q.Limit != PageSize {
				t.Errorf("Limit = %d, want %d", q.Limit, PageSize)
			}
			if q.NamePattern != tc.wantPat {
				t.Errorf("NamePattern = %q, want %q", q.NamePattern, tc.wantPat)
			}
			if q.SortColumn != "date" || !q.SortDesc {
				t.Errorf("sort = (%q, desc=%v), want (date, desc=true)", q.SortColumn, q.SortDesc)
			}
		})
	}
}

func TestBuildCount(t *testing.T) {
	if got := BuildCount("lee").NamePattern; got != "%lee%" {
		t.Errorf("NamePattern = %q, want %%lee%%", got)
	}
	if got := BuildCount(" ").NamePattern; got != "" {
		t.Errorf("NamePattern = %q, want empty", got)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int
		want  int
	}{
		{0, 0},
		{1, 1},
		{5, 1},
		{6, 1},
		{7, 2},
		{12, 2},
		{13, 3},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total); got != tc.want {
			t.Errorf("TotalPages(%d) = %d, want %d", tc.total, got, tc.want)
		}
	}
}
