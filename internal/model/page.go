package model

// Page is the pagination envelope returned by every list endpoint.
type Page[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Count int `json:"count"`
}

// NewPage builds the envelope for a result set. A limit of zero or less is
// the sentinel for "everything on a single page".
func NewPage[T any](items []T, page, limit, count int) Page[T] {
	if page < 1 {
		page = 1
	}
	pages := 1
	if limit > 0 {
		pages = (count + limit - 1) / limit
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items: items,
		Page:  page,
		Pages: pages,
		Count: count,
	}
}
