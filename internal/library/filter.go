package library

import (
	"slices"
	"sort"
	"strings"
)

type SortField string

const (
	SortByAdded  SortField = "added"
	SortByTitle  SortField = "title"
	SortByAuthor SortField = "author"
	SortByRating SortField = "rating"
)

// FilterSpec describes one query over the collection. Zero values disable
// the matching predicate; a zero SortBy sorts by date added, newest first.
type FilterSpec struct {
	Query      string
	Genres     []Genre
	Statuses   []Status
	YearFrom   int
	YearTo     int
	MinRating  int
	SortBy     SortField
	Descending bool
}

// ApplyFilter returns the books matching spec, sorted per spec. The input
// slice is never mutated; ties keep their input order.
func ApplyFilter(books []Book, spec FilterSpec) []Book {
	results := make([]Book, 0, len(books))
	for _, b := range books {
		if matchesFilter(b, spec) {
			results = append(results, b)
		}
	}

	sortBooks(results, spec.SortBy, spec.Descending)
	return results
}

func matchesFilter(b Book, spec FilterSpec) bool {
	if spec.Query != "" && !matchesQuery(b, strings.ToLower(spec.Query)) {
		return false
	}

	if len(spec.Genres) > 0 && !slices.Contains(spec.Genres, b.Genre) {
		return false
	}

	if len(spec.Statuses) > 0 && !slices.Contains(spec.Statuses, b.Status) {
		return false
	}

	if spec.YearFrom != 0 && b.Year < spec.YearFrom {
		return false
	}
	if spec.YearTo != 0 && b.Year > spec.YearTo {
		return false
	}

	return b.Rating >= spec.MinRating
}

func matchesQuery(b Book, query string) bool {
	if strings.Contains(strings.ToLower(b.Title), query) {
		return true
	}
	return strings.Contains(strings.ToLower(b.Author), query)
}

func sortBooks(books []Book, by SortField, descending bool) {
	if by == "" {
		by, descending = SortByAdded, true
	}

	sort.SliceStable(books, func(i, j int) bool {
		less, equal := compareBooks(books[i], books[j], by)
		// Equal keys must report "not less" in both directions or the
		// sort loses its stability guarantee.
		if equal {
			return false
		}
		if descending {
			return !less
		}
		return less
	})
}

func compareBooks(a, b Book, by SortField) (less, equal bool) {
	switch by {
	case SortByTitle:
		t1, t2 := strings.ToLower(a.Title), strings.ToLower(b.Title)
		return t1 < t2, t1 == t2
	case SortByAuthor:
		a1, a2 := strings.ToLower(a.Author), strings.ToLower(b.Author)
		return a1 < a2, a1 == a2
	case SortByRating:
		return a.Rating < b.Rating, a.Rating == b.Rating
	default:
		return a.AddedOn.Before(b.AddedOn), a.AddedOn.Equal(b.AddedOn)
	}
}
