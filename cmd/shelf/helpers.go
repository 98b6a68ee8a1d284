package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"shelf/cmd/shelf/render"
	"shelf/internal/library"
)

type AmbiguousMatchError struct {
	Query   string
	Matches []library.Book
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("multiple books match %q", e.Query)
}

func (e *AmbiguousMatchError) WriteMatches(w io.Writer) {
	fmt.Fprintln(w, "Multiple books match. Please be more specific:")
	for _, b := range e.Matches {
		fmt.Fprintf(w, "  - %s by %s (%s)\n", b.Title, b.Author, shortID(b.ID))
	}
}

func handleFindError(w io.Writer, err error) bool {
	var ambErr *AmbiguousMatchError
	if errors.As(err, &ambErr) {
		ambErr.WriteMatches(w)
		return true
	}
	return false
}

// findBook resolves a command line argument to a single book. Exact IDs
// and unique ID prefixes win, then an exact title, then a unique
// case-insensitive substring of title or author, then fuzzy title
// matching for typos.
func findBook(lib library.Library, query string) (library.Book, error) {
	if b, err := lib.Get(query); err == nil {
		return b, nil
	}

	books := lib.All()

	var prefixed []library.Book
	for _, b := range books {
		if strings.HasPrefix(b.ID, query) {
			prefixed = append(prefixed, b)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], nil
	}

	var exact, matches []library.Book
	q := strings.ToLower(query)
	for _, b := range books {
		if strings.EqualFold(b.Title, query) {
			exact = append(exact, b)
		}
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) {
			matches = append(matches, b)
		}
	}
	if len(exact) == 1 {
		return exact[0], nil
	}

	if len(matches) == 0 {
		matches = fuzzyMatches(books, query)
	}

	if len(matches) == 0 {
		return library.Book{}, fmt.Errorf("no book found matching: %s", query)
	}
	if len(matches) > 1 {
		return library.Book{}, &AmbiguousMatchError{Query: query, Matches: matches}
	}
	return matches[0], nil
}

func fuzzyMatches(books []library.Book, query string) []library.Book {
	targets := make([]string, len(books))
	for i, b := range books {
		targets[i] = b.Title
	}

	ranks := fuzzy.RankFindFold(query, targets)
	sort.Slice(ranks, func(i, j int) bool {
		return ranks[i].Distance < ranks[j].Distance
	})

	matched := make([]library.Book, len(ranks))
	for i, r := range ranks {
		matched[i] = books[r.OriginalIndex]
	}
	return matched
}

func shortID(id string) string {
	if len(id) < 8 {
		return id
	}
	return id[:8]
}

func parseSortField(s string) (library.SortField, error) {
	switch library.SortField(strings.ToLower(strings.TrimSpace(s))) {
	case library.SortByAdded:
		return library.SortByAdded, nil
	case library.SortByTitle:
		return library.SortByTitle, nil
	case library.SortByAuthor:
		return library.SortByAuthor, nil
	case library.SortByRating:
		return library.SortByRating, nil
	}
	return "", fmt.Errorf("unknown sort field %q (expected added, title, author or rating)", s)
}

func bookListView(books []library.Book) render.BookListView {
	items := make([]render.BookListItem, len(books))
	for i, b := range books {
		items[i] = render.BookListItem{
			Title:    b.Title,
			Author:   b.Author,
			Genre:    string(b.Genre),
			Year:     b.Year,
			Status:   string(b.Status),
			Rating:   b.Rating,
			Progress: b.Progress(),
			Added:    b.AddedOn,
		}
	}
	return render.BookListView{Items: items}
}
