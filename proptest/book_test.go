package proptest

import (
	"errors"
	"strings"
	"testing"
	"time"

	"pgregory.net/rapid"

	"shelf/internal/library"
)

func TestProperty_NewBook_Invariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		title := titleGen().Draw(t, "title")
		author := authorGen().Draw(t, "author")
		pages := pagesGen().Draw(t, "pages")

		b := library.NewBook(title, author, pages)

		if b.ID == "" {
			t.Fatal("new book has empty ID")
		}
		if b.Status != library.StatusUnread {
			t.Fatalf("new book starts as %q, expected %q", b.Status, library.StatusUnread)
		}
		if b.AddedOn.IsZero() {
			t.Fatal("new book has no added date")
		}
		if !b.AddedOn.Equal(library.DateOnly(b.AddedOn)) {
			t.Fatalf("added date %v carries more than day precision", b.AddedOn)
		}
		if err := b.Validate(); err != nil {
			t.Fatalf("freshly created book invalid: %v", err)
		}
	})
}

func TestProperty_EmptyTitle_Rejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		emptyTitles := []string{"", " ", "  ", "\t", "\n", " \t\n "}
		title := rapid.SampledFrom(emptyTitles).Draw(t, "emptyTitle")

		b := library.NewBook(title, authorGen().Draw(t, "author"), pagesGen().Draw(t, "pages"))
		err := b.Validate()

		if !errors.Is(err, library.ErrInvalidBook) {
			t.Fatalf("expected validation error for empty title, got %v", err)
		}
		if !strings.Contains(err.Error(), "title") {
			t.Fatalf("expected title error, got: %v", err)
		}
	})
}

func TestProperty_FieldLimits_Rejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := library.NewBook(titleGen().Draw(t, "title"), authorGen().Draw(t, "author"), pagesGen().Draw(t, "pages"))

		field := rapid.SampledFrom([]string{"title", "author", "isbn", "pages", "rating", "year"}).Draw(t, "field")
		switch field {
		case "title":
			b.Title = strings.Repeat("x", library.MaxTitleLen+rapid.IntRange(1, 50).Draw(t, "over"))
		case "author":
			b.Author = strings.Repeat("x", library.MaxAuthorLen+rapid.IntRange(1, 50).Draw(t, "over"))
		case "isbn":
			b.ISBN = strings.Repeat("9", library.MaxISBNLen+rapid.IntRange(1, 50).Draw(t, "over"))
		case "pages":
			b.Pages = rapid.IntRange(-100, 0).Draw(t, "badPages")
		case "rating":
			b.Rating = rapid.SampledFrom([]int{-1, library.MaxRating + 1, 100}).Draw(t, "badRating")
		case "year":
			b.Year = rapid.SampledFrom([]int{-1, time.Now().Year() + 1, 9999}).Draw(t, "badYear")
		}

		if err := b.Validate(); !errors.Is(err, library.ErrInvalidBook) {
			t.Fatalf("expected %s violation to be rejected, got %v", field, err)
		}
	})
}

func TestProperty_UnicodeTitles_Preserved(t *testing.T) {
	RunWithLibrary(t, func(h *LibraryHarness) {
		unicodeTitles := []string{"三体", "ソラリス", "Сто лет одиночества", "مدن الملح", "🚀 to Mars"}
		title := rapid.SampledFrom(unicodeTitles).Draw(h.T, "unicodeTitle")

		added, err := h.Lib.Add(h.GenBook(WithTitle(title)), nil)
		if err != nil {
			h.T.Fatalf("unicode title rejected: %v", err)
		}
		if added.Title != title {
			h.T.Fatalf("unicode title corrupted: %q -> %q", title, added.Title)
		}

		got, err := h.Lib.Get(added.ID)
		if err != nil {
			h.T.Fatalf("failed to get book: %v", err)
		}
		if got.Title != title {
			h.T.Fatalf("unicode title corrupted in store: %q -> %q", title, got.Title)
		}
	})
}

func TestProperty_ClampProgress_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := library.NewBook(titleGen().Draw(t, "title"), authorGen().Draw(t, "author"), pagesGen().Draw(t, "pages"))
		b.CurrentPage = rapid.IntRange(-10000, 10000).Draw(t, "page")

		b.ClampProgress()
		once := b.CurrentPage

		if once < 0 || once > b.Pages {
			t.Fatalf("clamped page %d outside [0, %d]", once, b.Pages)
		}

		b.ClampProgress()
		if b.CurrentPage != once {
			t.Fatalf("clamp not idempotent: %d -> %d", once, b.CurrentPage)
		}
	})
}

func TestProperty_Progress_Bounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := library.NewBook(titleGen().Draw(t, "title"), authorGen().Draw(t, "author"), pagesGen().Draw(t, "pages"))
		b.Status = statusGen().Draw(t, "status")
		b.CurrentPage = rapid.IntRange(0, b.Pages).Draw(t, "page")

		p := b.Progress()

		if p < 0 || p > 1 {
			t.Fatalf("progress %f outside [0, 1]", p)
		}
		if b.Status == library.StatusCompleted && p != 1 {
			t.Fatalf("completed book reports progress %f", p)
		}
	})
}
