package proptest

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"pgregory.net/rapid"

	"shelf/internal/covers"
	"shelf/internal/library"
)

const (
	minBooks          = 0
	maxBooks          = 20
	typicalMinBooks   = 1
	typicalMaxBooks   = 10
	sortMinCount      = 3
	minUnrelatedBooks = 1
	maxUnrelatedBooks = 5
)

type BookGenOpt func(*bookGenConfig)

type bookGenConfig struct {
	title  *string
	author *string
}

func WithTitle(title string) BookGenOpt {
	return func(c *bookGenConfig) {
		c.title = &title
	}
}

func WithAuthor(author string) BookGenOpt {
	return func(c *bookGenConfig) {
		c.author = &author
	}
}

func GenBook(t *rapid.T, opts ...BookGenOpt) library.Book {
	cfg := &bookGenConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	title := titleGen().Draw(t, "title")
	if cfg.title != nil {
		title = *cfg.title
	}
	author := authorGen().Draw(t, "author")
	if cfg.author != nil {
		author = *cfg.author
	}

	b := library.NewBook(title, author, pagesGen().Draw(t, "pages"))
	b.Genre = genreGen().Draw(t, "genre")
	b.Year = yearGen().Draw(t, "year")
	if rapid.Bool().Draw(t, "hasISBN") {
		b.ISBN = isbnGen.Draw(t, "isbn")
	}

	return b
}

type Harness struct {
	T   *rapid.T
	Dir string
}

func (h *Harness) GenBook(opts ...BookGenOpt) library.Book {
	return GenBook(h.T, opts...)
}

type LibraryHarness struct {
	Harness
	Lib    *library.CSVLibrary
	Covers *covers.Store
}

func (h *LibraryHarness) MustAddBook(opts ...BookGenOpt) library.Book {
	b, err := h.Lib.Add(h.GenBook(opts...), nil)
	if err != nil {
		h.T.Fatalf("failed to add book: %v", err)
	}
	return b
}

// AddBooks inserts a drawn number of generated books and randomizes the
// reading state of each, so filters and sorts see varied data.
func (h *LibraryHarness) AddBooks(minCount, maxCount int) []library.Book {
	var added []library.Book
	n := rapid.IntRange(minCount, maxCount).Draw(h.T, "numBooks")
	for i := 0; i < n; i++ {
		b, err := h.Lib.Add(h.GenBook(), nil)
		if err != nil {
			continue
		}

		b.Status = statusGen().Draw(h.T, "status")
		b.CurrentPage = rapid.IntRange(0, b.Pages).Draw(h.T, "currentPage")
		b.Rating = ratingGen().Draw(h.T, "rating")
		updated, err := h.Lib.Update(b, nil)
		if err != nil {
			h.T.Fatalf("failed to set book state: %v", err)
		}
		added = append(added, updated)
	}
	return added
}

func RunWithLibrary(t *testing.T, fn func(h *LibraryHarness)) {
	tempDir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		iterDir := filepath.Join(tempDir, iterDirGen.Draw(rt, "iterDir"))
		if err := os.MkdirAll(iterDir, 0o755); err != nil {
			rt.Fatalf("failed to create iter dir: %v", err)
		}

		cov, err := covers.NewStore(filepath.Join(iterDir, "covers"))
		if err != nil {
			rt.Fatalf("failed to create cover store: %v", err)
		}
		lib, err := library.NewCSVLibrary(filepath.Join(iterDir, "library.csv"), cov, zap.NewNop())
		if err != nil {
			rt.Fatalf("failed to create library: %v", err)
		}

		harness := &LibraryHarness{
			Harness: Harness{
				T:   rt,
				Dir: iterDir,
			},
			Lib:    lib,
			Covers: cov,
		}

		fn(harness)
	})
}
