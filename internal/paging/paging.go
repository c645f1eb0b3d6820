// Package paging implements the two pagination styles the views share:
// slicing an already-fetched list in memory (voting) and tracking a
// server-side page cursor against a server-supplied total (nominee
// browse). Both expose the same navigation contract: 1-based pages,
// clamped next/prev/first/last, controls hidden at one page or fewer.
package paging

// Slicer paginates an in-memory list into fixed-size pages.
type Slicer[T any] struct {
	items []T
	size  int
	page  int
}

// NewSlicer creates a Slicer positioned on page 1. size must be positive.
func NewSlicer[T any](items []T, size int) *Slicer[T] {
	return &Slicer[T]{items: items, size: size, page: 1}
}

// Page returns the items of the current page: a full page, or whatever
// remains on the last one.
func (s *Slicer[T]) Page() []T {
	start := (s.page - 1) * s.size
	if start >= len(s.items) {
		return nil
	}
	end := start + s.size
	if end > len(s.items) {
		end = len(s.items)
	}
	return s.items[start:end]
}

// PageNumber returns the current 1-based page number.
func (s *Slicer[T]) PageNumber() int { return s.page }

// TotalPages returns ceil(len(items) / size).
func (s *Slicer[T]) TotalPages() int {
	return (len(s.items) + s.size - 1) / s.size
}

// SetPage moves to page p, clamped to the valid range.
func (s *Slicer[T]) SetPage(p int) { s.page = clamp(p, s.TotalPages()) }

// Next advances one page, stopping at the last.
func (s *Slicer[T]) Next() { s.SetPage(s.page + 1) }

// Prev steps back one page, stopping at the first.
func (s *Slicer[T]) Prev() { s.SetPage(s.page - 1) }

// First jumps to page 1.
func (s *Slicer[T]) First() { s.SetPage(1) }

// Last jumps to the final page.
func (s *Slicer[T]) Last() { s.SetPage(s.TotalPages()) }

// Visible reports whether navigation controls should be shown.
func (s *Slicer[T]) Visible() bool { return s.TotalPages() > 1 }

// Server tracks a server-side page cursor. The total count comes from the
// backend's paginated envelope; the client never slices, only requests.
type Server struct {
	size  int
	page  int
	total int
}

// NewServer creates a Server cursor on page 1. size must be positive and
// match the backend's page size.
func NewServer(size int) *Server {
	return &Server{size: size, page: 1}
}

// SetTotalCount records the server-supplied total item count; the current
// page is re-clamped in case the result set shrank.
func (s *Server) SetTotalCount(n int) {
	s.total = n
	s.page = clamp(s.page, s.TotalPages())
}

// TotalPages returns ceil(total / size).
func (s *Server) TotalPages() int {
	return (s.total + s.size - 1) / s.size
}

// PageNumber returns the current 1-based page number.
func (s *Server) PageNumber() int { return s.page }

// SetPage moves to page p, clamped to the valid range; out-of-range pages
// are never requested from the server.
func (s *Server) SetPage(p int) { s.page = clamp(p, s.TotalPages()) }

// Next advances one page, stopping at the last.
func (s *Server) Next() { s.SetPage(s.page + 1) }

// Prev steps back one page, stopping at the first.
func (s *Server) Prev() { s.SetPage(s.page - 1) }

// First jumps to page 1.
func (s *Server) First() { s.SetPage(1) }

// Last jumps to the final page.
func (s *Server) Last() { s.SetPage(s.TotalPages()) }

// Visible reports whether navigation controls should be shown.
func (s *Server) Visible() bool { return s.TotalPages() > 1 }

// clamp bounds a 1-based page number to [1, total], treating an empty
// result set as a single page.
func clamp(p, total int) int {
	if total < 1 {
		total = 1
	}
	if p < 1 {
		return 1
	}
	if p > total {
		return total
	}
	return p
}
