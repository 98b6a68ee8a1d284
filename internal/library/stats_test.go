package library_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shelf/internal/library"
)

func TestSummarize(t *testing.T) {
	t.Run("empty collection yields zero stats", func(t *testing.T) {
		s := library.Summarize(nil)

		assert.Zero(t, s.TotalBooks)
		assert.Zero(t, s.CompletedBooks)
		assert.Zero(t, s.TotalPages)
		assert.Zero(t, s.PagesRead)
		assert.Zero(t, s.AverageRating)
		assert.Empty(t, s.ByGenre)
	})

	t.Run("counts books and pages", func(t *testing.T) {
		s := library.Summarize(shelfOf())

		assert.Equal(t, 4, s.TotalBooks)
		assert.Equal(t, 2, s.CompletedBooks)
		assert.Equal(t, 412+474+310+255, s.TotalPages)
	})

	t.Run("pages read counts completed in full and reading partially", func(t *testing.T) {
		s := library.Summarize(shelfOf())

		// Dune and Hobbit are completed, Emma is 120 pages in.
		assert.Equal(t, 412+310+120, s.PagesRead)
	})

	t.Run("average rating ignores unrated books", func(t *testing.T) {
		books := []library.Book{
			{Rating: 4, Status: library.StatusCompleted, Pages: 1},
			{Rating: 0, Status: library.StatusUnread, Pages: 1},
		}

		s := library.Summarize(books)

		assert.Equal(t, 4.0, s.AverageRating)
	})

	t.Run("average rating is zero when nothing is rated", func(t *testing.T) {
		books := []library.Book{
			{Rating: 0, Pages: 1, Status: library.StatusUnread},
			{Rating: 0, Pages: 1, Status: library.StatusUnread},
		}

		s := library.Summarize(books)

		assert.Zero(t, s.AverageRating)
	})

	t.Run("breaks down by status", func(t *testing.T) {
		books := []library.Book{
			{Status: library.StatusCompleted, Pages: 1, Rating: 4},
			{Status: library.StatusUnread, Pages: 1},
		}

		s := library.Summarize(books)

		assert.Equal(t, map[library.Status]int{
			library.StatusCompleted: 1,
			library.StatusUnread:    1,
		}, s.ByStatus)
	})

	t.Run("breaks down by genre", func(t *testing.T) {
		s := library.Summarize(shelfOf())

		assert.Equal(t, map[library.Genre]int{
			library.GenreSciFi:   2,
			library.GenreRomance: 1,
			library.GenreFantasy: 1,
		}, s.ByGenre)
	})

	t.Run("breaks down by year and rating", func(t *testing.T) {
		s := library.Summarize(shelfOf())

		assert.Equal(t, 1, s.ByYear[1965])
		assert.Equal(t, 1, s.ByYear[1815])
		assert.Equal(t, 2, s.ByRating[0])
		assert.Equal(t, 1, s.ByRating[4])
		assert.Equal(t, 1, s.ByRating[5])
	})

	t.Run("year and rating keys come back ascending", func(t *testing.T) {
		s := library.Summarize(shelfOf())

		assert.Equal(t, []int{1815, 1937, 1951, 1965}, s.YearsAscending())
		assert.Equal(t, []int{0, 4, 5}, s.RatingsAscending())
	})
}
