package proptest

import (
	"pgregory.net/rapid"

	"shelf/internal/library"
)

const (
	invCountMatchesAll = "count-matches-all"
	invBookHasID       = "book-has-id"
	invIDsUnique       = "ids-unique"
	invPageWithinBook  = "page-within-pages"
)

// verifyStructuralInvariants checks the properties every reachable library
// state must satisfy, regardless of the operations that produced it.
func verifyStructuralInvariants(t *rapid.T, lib library.Library) {
	count := lib.Count()
	books := lib.All()

	if count != len(books) {
		t.Fatalf("[%s] violated: Count()=%d but len(All())=%d", invCountMatchesAll, count, len(books))
	}

	idsSeen := make(map[string]bool)
	for _, b := range books {
		if b.ID == "" {
			t.Fatalf("[%s] violated: book %q has empty ID", invBookHasID, b.Title)
		}
		if idsSeen[b.ID] {
			t.Fatalf("[%s] violated: duplicate id %q in All()", invIDsUnique, b.ID)
		}
		idsSeen[b.ID] = true

		if b.CurrentPage < 0 || b.CurrentPage > b.Pages {
			t.Fatalf("[%s] violated: book %q at page %d of %d", invPageWithinBook, b.Title, b.CurrentPage, b.Pages)
		}
	}
}
