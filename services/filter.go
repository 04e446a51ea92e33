package services

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// CategoryAll bypasses the categorical filter.
const CategoryAll = "all"

const DefaultPageSize = 10

// FilterSpec describes one dashboard table query: free-text search against a
// designated string field, an exact-match categorical filter, a sort key with
// direction, and the requested page. Field accessors are injected so the same
// engine serves families, goals and predictions alike.
type FilterSpec[T any] struct {
	Search      string
	SearchField func(T) string

	Category   string
	CategoryOf func(T) string

	// Exactly one of SortString / SortNumber should be set for sorted output;
	// with neither set the input order is preserved.
	SortString func(T) string
	SortNumber func(T) float64
	Direction  SortDirection

	CurrentPage int
	PageSize    int
}

type Page[T any] struct {
	Items      []T `json:"items"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// ApplyFilters filters, sorts and pages an in-memory slice. Filtering happens
// before counting, so TotalItems reflects the filtered set. A CurrentPage past
// the end yields an empty page rather than an error; the caller clamps on its
// next render. Pure function over its inputs.
func ApplyFilters[T any](allItems []T, spec FilterSpec[T]) Page[T] {
	filtered := make([]T, 0, len(allItems))
	search := strings.ToLower(strings.TrimSpace(spec.Search))
	for _, item := range allItems {
		if search != "" && spec.SearchField != nil {
			if !strings.Contains(strings.ToLower(spec.SearchField(item)), search) {
				continue
			}
		}
		if spec.Category != "" && spec.Category != CategoryAll && spec.CategoryOf != nil {
			if spec.CategoryOf(item) != spec.Category {
				continue
			}
		}
		filtered = append(filtered, item)
	}

	sortItems(filtered, spec)

	pageSize := spec.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	totalItems := len(filtered)
	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))
	if totalPages < 1 {
		totalPages = 1
	}

	page := spec.CurrentPage
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= totalItems {
		return Page[T]{Items: []T{}, TotalItems: totalItems, TotalPages: totalPages}
	}
	end := start + pageSize
	if end > totalItems {
		end = totalItems
	}

	return Page[T]{Items: filtered[start:end], TotalItems: totalItems, TotalPages: totalPages}
}

func sortItems[T any](items []T, spec FilterSpec[T]) {
	desc := spec.Direction == SortDesc

	switch {
	case spec.SortString != nil:
		col := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(items, func(i, j int) bool {
			cmp := col.CompareString(spec.SortString(items[i]), spec.SortString(items[j]))
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	case spec.SortNumber != nil:
		sort.SliceStable(items, func(i, j int) bool {
			a, b := spec.SortNumber(items[i]), spec.SortNumber(items[j])
			if desc {
				return a > b
			}
			return a < b
		})
	}
}
