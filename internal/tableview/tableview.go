// Package tableview filters, sorts and paginates a fully fetched slice, the
// way list pages present backend collections.
package tableview

import (
	"slices"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Query describes one view over rows. Nil Filter keeps everything; nil Compare
// keeps the backend order.
type Query[T any] struct {
	Filter   func(T) bool
	Compare  func(a, b T) int
	Desc     bool
	Page     int
	PageSize int
}

// Page is one slice of the filtered, sorted rows.
type Page[T any] struct {
	Items       []T `json:"data"`
	TotalRows   int `json:"totalRows"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
}

// Apply runs q over rows without modifying rows.
func Apply[T any](rows []T, q Query[T]) Page[T] {
	page, size := normalize(q.Page, q.PageSize)

	view := make([]T, 0, len(rows))
	for _, r := range rows {
		if q.Filter == nil || q.Filter(r) {
			view = append(view, r)
		}
	}
	if q.Compare != nil {
		cmp := q.Compare
		if q.Desc {
			cmp = func(a, b T) int { return q.Compare(b, a) }
		}
		slices.SortStableFunc(view, cmp)
	}

	total := len(view)
	totalPages := 0
	if total > 0 {
		totalPages = (total + size - 1) / size
	}

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := min(start+size, total)

	return Page[T]{
		Items:       view[start:end],
		TotalRows:   total,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    size,
	}
}

func normalize(page, size int) (int, int) {
	if page <= 0 {
		page = 1
	}
	switch {
	case size > MaxPageSize:
		size = MaxPageSize
	case size <= 0:
		size = DefaultPageSize
	}
	return page, size
}

// All combines filters; nil entries are skipped.
func All[T any](filters ...func(T) bool) func(T) bool {
	return func(v T) bool {
		for _, f := range filters {
			if f != nil && !f(v) {
				return false
			}
		}
		return true
	}
}
