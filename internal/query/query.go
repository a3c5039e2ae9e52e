// Package query implements the in-memory tail of the record query
// pipeline: free-text search over already owner-scoped, sorted result
// sets, followed by skip/limit pagination.
package query

import (
	"strings"
)

// Searchable is implemented by records that expose their textual fields
// for free-text matching.
type Searchable interface {
	SearchText() []string
}

// Params carries the optional search and pagination arguments of a list
// request. Nil Skip or Limit means the argument was omitted.
type Params struct {
	Search string
	Skip   *int
	Limit  *int
}

// Search retains the items whose textual fields contain term,
// case-insensitive. An empty term keeps everything. Order is preserved.
func Search[T Searchable](items []T, term string) []T {
	if term == "" {
		return items
	}

	needle := strings.ToLower(term)
	var matched []T
	for _, item := range items {
		for _, field := range item.SearchText() {
			if strings.Contains(strings.ToLower(field), needle) {
				matched = append(matched, item)
				break
			}
		}
	}
	return matched
}

// Paginate drops the first skip items and takes at most limit of the
// remainder. A nil skip means 0; a nil limit means no cap; limit 0 yields
// an empty page.
func Paginate[T any](items []T, skip, limit *int) []T {
	offset := 0
	if skip != nil {
		offset = *skip
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]

	if limit == nil {
		return items
	}
	if *limit < len(items) {
		items = items[:*limit]
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// Apply runs search then pagination in that order.
func Apply[T Searchable](items []T, p Params) []T {
	return Paginate(Search(items, p.Search), p.Skip, p.Limit)
}

// PageCount returns how many pages of size limit the post-search set
// fills. limit must be positive.
func PageCount[T Searchable](items []T, term string, limit int) int {
	if limit <= 0 {
		return 0
	}
	n := len(Search(items, term))
	return (n + limit - 1) / limit
}
