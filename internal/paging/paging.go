package paging

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 200
)

// Page is one page of results together with the total number of rows that
// matched the query.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
}

// Request carries normalized pagination parameters. Page numbers are 1-based.
type Request struct {
	Page     int
	PageSize int
}

// NewRequest normalizes raw pagination input: non-positive values fall back
// to the defaults and oversized page sizes are clamped.
func NewRequest(page, pageSize int) Request {
	if page < 1 {
		page = defaultPage
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return Request{Page: page, PageSize: pageSize}
}

// Offset returns the number of rows to skip for this request.
func (r Request) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// Slice pages an in-memory result set. Used by the memory-backed stores.
func Slice[T any](items []T, req Request) Page[T] {
	total := int64(len(items))
	start := req.Offset()
	if start > len(items) {
		start = len(items)
	}
	end := start + req.PageSize
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return Page[T]{Items: out, TotalCount: total, Page: req.Page, PageSize: req.PageSize}
}
