package paging

import (
	"reflect"
	"testing"
)

func intRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestSlicerPageSizes(t *testing.T) {
	// 14 finalists at 6 per page: 6, 6, 2.
	s := NewSlicer(intRange(14), 6)

	if s.TotalPages() != 3 {
		t.Fatalf("total pages = %d, want 3", s.TotalPages())
	}
	if got := len(s.Page()); got != 6 {
		t.Errorf("page 1 size = %d, want 6", got)
	}
	s.SetPage(3)
	if got := len(s.Page()); got != 2 {
		t.Errorf("page 3 size = %d, want 2", got)
	}
}

func TestSlicerConcatenationReproducesInput(t *testing.T) {
	items := intRange(14)
	s := NewSlicer(items, 6)

	var all []int
	for p := 1; p <= s.TotalPages(); p++ {
		s.SetPage(p)
		all = append(all, s.Page()...)
	}
	if !reflect.DeepEqual(all, items) {
		t.Error("concatenating all pages must reproduce the original list")
	}
}

func TestSlicerNavigationClamped(t *testing.T) {
	s := NewSlicer(intRange(14), 6)

	s.Prev()
	if s.PageNumber() != 1 {
		t.Errorf("Prev on first page should stay at 1, got %d", s.PageNumber())
	}
	s.Last()
	if s.PageNumber() != 3 {
		t.Errorf("Last should land on 3, got %d", s.PageNumber())
	}
	s.Next()
	if s.PageNumber() != 3 {
		t.Errorf("Next on last page should stay at 3, got %d", s.PageNumber())
	}
	s.First()
	if s.PageNumber() != 1 {
		t.Errorf("First should land on 1, got %d", s.PageNumber())
	}
	s.SetPage(99)
	if s.PageNumber() != 3 {
		t.Errorf("out-of-range SetPage should clamp to 3, got %d", s.PageNumber())
	}
}

func TestSlicerVisibility(t *testing.T) {
	if NewSlicer(intRange(6), 6).Visible() {
		t.Error("controls must be hidden with a single page")
	}
	if NewSlicer([]int(nil), 6).Visible() {
		t.Error("controls must be hidden with no items")
	}
	if !NewSlicer(intRange(7), 6).Visible() {
		t.Error("controls must show with more than one page")
	}
}

func TestServerTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{22, 15, 2},
		{15, 15, 1},
		{16, 15, 2},
		{0, 15, 0},
		{1, 15, 1},
	}
	for _, tt := range tests {
		s := NewServer(tt.size)
		s.SetTotalCount(tt.total)
		if got := s.TotalPages(); got != tt.want {
			t.Errorf("ceil(%d/%d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}

func TestServerPageThreeUnreachableAt22Items(t *testing.T) {
	s := NewServer(15)
	s.SetTotalCount(22)

	s.SetPage(2)
	if s.PageNumber() != 2 {
		t.Fatalf("page = %d, want 2", s.PageNumber())
	}
	s.Next()
	if s.PageNumber() != 2 {
		t.Errorf("page 3 must not be reachable, got %d", s.PageNumber())
	}
	s.SetPage(3)
	if s.PageNumber() != 2 {
		t.Errorf("page 3 must clamp to 2, got %d", s.PageNumber())
	}
}

func TestServerReclampsWhenResultSetShrinks(t *testing.T) {
	s := NewServer(15)
	s.SetTotalCount(45)
	s.SetPage(3)

	// A filter change shrinks the result set under the cursor.
	s.SetTotalCount(10)
	if s.PageNumber() != 1 {
		t.Errorf("cursor should re-clamp to 1, got %d", s.PageNumber())
	}
}

func TestServerVisibility(t *testing.T) {
	s := NewServer(15)
	s.SetTotalCount(15)
	if s.Visible() {
		t.Error("controls must be hidden at one page")
	}
	s.SetTotalCount(0)
	if s.Visible() {
		t.Error("controls must be hidden with no results")
	}
	s.SetTotalCount(22)
	if !s.Visible() {
		t.Error("controls must show at two pages")
	}
}
