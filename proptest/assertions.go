package proptest

import (
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"pgregory.net/rapid"

	"shelf/internal/library"
)

func assertBooksEqual(t *rapid.T, expected, actual library.Book) {
	t.Helper()
	opts := cmp.Options{
		cmpopts.EquateApproxTime(0),
		cmpopts.EquateEmpty(),
	}
	if diff := cmp.Diff(expected, actual, opts...); diff != "" {
		t.Fatalf("book mismatch (-want +got):\n%s", diff)
	}
}

func assertSameIDs(t *rapid.T, expected, actual []library.Book) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Fatalf("length mismatch: expected %d, got %d", len(expected), len(actual))
	}
	expectedIDs := make(map[string]bool)
	for _, b := range expected {
		expectedIDs[b.ID] = true
	}
	for _, b := range actual {
		if !expectedIDs[b.ID] {
			t.Fatalf("unexpected ID %s in actual", b.ID)
		}
	}
}

func assertSubset(t *rapid.T, subset, superset []library.Book) {
	t.Helper()
	superIDs := make(map[string]bool)
	for _, b := range superset {
		superIDs[b.ID] = true
	}
	for _, b := range subset {
		if !superIDs[b.ID] {
			t.Fatalf("subset contains ID %s not in superset", b.ID)
		}
	}
}

func assertSortedBy(t *rapid.T, books []library.Book, field library.SortField, desc bool) {
	t.Helper()
	for i := 0; i < len(books)-1; i++ {
		a, b := books[i], books[i+1]
		// A descending pair is in order exactly when the swapped pair
		// is in ascending order.
		if desc {
			a, b = b, a
		}

		var inOrder bool
		switch field {
		case library.SortByTitle:
			inOrder = strings.ToLower(a.Title) <= strings.ToLower(b.Title)
		case library.SortByAuthor:
			inOrder = strings.ToLower(a.Author) <= strings.ToLower(b.Author)
		case library.SortByRating:
			inOrder = a.Rating <= b.Rating
		default:
			inOrder = !a.AddedOn.After(b.AddedOn)
		}
		if !inOrder {
			t.Fatalf("sort order violated at positions %d, %d", i, i+1)
		}
	}
}

func assertNoDuplicateIDs(t *rapid.T, books []library.Book) {
	t.Helper()
	ids := make(map[string]bool)
	for _, b := range books {
		if ids[b.ID] {
			t.Fatalf("duplicate id found: %s", b.ID)
		}
		ids[b.ID] = true
	}
}
