package services

import (
	"fmt"
	"testing"
)

type testItem struct {
	Name     string
	Category string
	Amount   float64
}

func makeItems(n int) []testItem {
	items := make([]testItem, n)
	for i := range items {
		items[i] = testItem{
			Name:     fmt.Sprintf("item-%02d", i),
			Category: "general",
			Amount:   float64(i),
		}
	}
	return items
}

func TestApplyFilters_Pagination(t *testing.T) {
	items := makeItems(23)

	spec := FilterSpec[testItem]{CurrentPage: 1, PageSize: 10}

	page := ApplyFilters(items, spec)
	if page.TotalItems != 23 {
		t.Errorf("TotalItems = %d, want 23", page.TotalItems)
	}
	if page.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", page.TotalPages)
	}
	if len(page.Items) != 10 {
		t.Errorf("page 1 has %d items, want 10", len(page.Items))
	}

	spec.CurrentPage = 3
	page = ApplyFilters(items, spec)
	if len(page.Items) != 3 {
		t.Errorf("page 3 has %d items, want 3", len(page.Items))
	}

	// Past the end: tolerated, empty page, counts unchanged.
	spec.CurrentPage = 4
	page = ApplyFilters(items, spec)
	if len(page.Items) != 0 {
		t.Errorf("page 4 has %d items, want 0", len(page.Items))
	}
	if page.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", page.TotalPages)
	}
}

func TestApplyFilters_CategoryNoMatch(t *testing.T) {
	items := makeItems(23)

	page := ApplyFilters(items, FilterSpec[testItem]{
		Category:    "missing",
		CategoryOf:  func(i testItem) string { return i.Category },
		CurrentPage: 1,
		PageSize:    10,
	})

	if page.TotalItems != 0 {
		t.Errorf("TotalItems = %d, want 0", page.TotalItems)
	}
	if page.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1", page.TotalPages)
	}
	if len(page.Items) != 0 {
		t.Errorf("got %d items, want 0", len(page.Items))
	}
}

func TestApplyFilters_CategoryAllBypasses(t *testing.T) {
	items := []testItem{
		{Name: "a", Category: "x"},
		{Name: "b", Category: "y"},
	}

	page := ApplyFilters(items, FilterSpec[testItem]{
		Category:    CategoryAll,
		CategoryOf:  func(i testItem) string { return i.Category },
		CurrentPage: 1,
		PageSize:    10,
	})

	if page.TotalItems != 2 {
		t.Errorf("TotalItems = %d, want 2 ('all' must bypass the filter)", page.TotalItems)
	}
}

func TestApplyFilters_SearchCaseInsensitive(t *testing.T) {
	items := []testItem{
		{Name: "Groceries"},
		{Name: "Rent"},
		{Name: "grocery run"},
	}

	page := ApplyFilters(items, FilterSpec[testItem]{
		Search:      "GROCER",
		SearchField: func(i testItem) string { return i.Name },
		CurrentPage: 1,
		PageSize:    10,
	})

	if page.TotalItems != 2 {
		t.Errorf("TotalItems = %d, want 2", page.TotalItems)
	}
}

func TestApplyFilters_FilterBeforeCount(t *testing.T) {
	items := makeItems(40)
	for i := 0; i < 5; i++ {
		items[i].Category = "special"
	}

	page := ApplyFilters(items, FilterSpec[testItem]{
		Category:    "special",
		CategoryOf:  func(i testItem) string { return i.Category },
		CurrentPage: 1,
		PageSize:    10,
	})

	if page.TotalItems != 5 {
		t.Errorf("TotalItems = %d, want 5 (filtered count, not input size)", page.TotalItems)
	}
	if page.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1", page.TotalPages)
	}
}

func TestApplyFilters_SortString(t *testing.T) {
	items := []testItem{
		{Name: "banana"},
		{Name: "Apple"},
		{Name: "cherry"},
	}

	page := ApplyFilters(items, FilterSpec[testItem]{
		SortString:  func(i testItem) string { return i.Name },
		Direction:   SortAsc,
		CurrentPage: 1,
		PageSize:    10,
	})

	got := []string{page.Items[0].Name, page.Items[1].Name, page.Items[2].Name}
	want := []string{"Apple", "banana", "cherry"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ascending sort = %v, want %v", got, want)
		}
	}

	page = ApplyFilters(items, FilterSpec[testItem]{
		SortString:  func(i testItem) string { return i.Name },
		Direction:   SortDesc,
		CurrentPage: 1,
		PageSize:    10,
	})
	if page.Items[0].Name != "cherry" {
		t.Errorf("descending sort starts with %q, want cherry", page.Items[0].Name)
	}
}

func TestApplyFilters_SortNumberDesc(t *testing.T) {
	items := []testItem{
		{Name: "a", Amount: 5},
		{Name: "b", Amount: 50},
		{Name: "c", Amount: 1},
	}

	page := ApplyFilters(items, FilterSpec[testItem]{
		SortNumber:  func(i testItem) float64 { return i.Amount },
		Direction:   SortDesc,
		CurrentPage: 1,
		PageSize:    10,
	})

	if page.Items[0].Amount != 50 || page.Items[2].Amount != 1 {
		t.Errorf("numeric descending sort wrong: %+v", page.Items)
	}
}

func TestApplyFilters_StableSort(t *testing.T) {
	items := []testItem{
		{Name: "first", Amount: 1},
		{Name: "second", Amount: 1},
		{Name: "third", Amount: 1},
	}

	page := ApplyFilters(items, FilterSpec[testItem]{
		SortNumber:  func(i testItem) float64 { return i.Amount },
		Direction:   SortAsc,
		CurrentPage: 1,
		PageSize:    10,
	})

	if page.Items[0].Name != "first" || page.Items[2].Name != "third" {
		t.Errorf("equal keys must keep input order, got %+v", page.Items)
	}
}

func TestApplyFilters_EmptyInput(t *testing.T) {
	page := ApplyFilters(nil, FilterSpec[testItem]{CurrentPage: 1, PageSize: 10})

	if page.TotalItems != 0 || page.TotalPages != 1 || len(page.Items) != 0 {
		t.Errorf("empty input: got %+v", page)
	}
}
