package library

import "sort"

// Stats is a pure summary of a collection snapshot.
type Stats struct {
	TotalBooks     int
	CompletedBooks int
	TotalPages     int
	PagesRead      int
	AverageRating  float64

	ByGenre  map[Genre]int
	ByStatus map[Status]int
	ByYear   map[int]int
	ByRating map[int]int
}

// Summarize computes counts, sums and breakdowns over books. Unrated books
// (rating 0) are excluded from the average; pages read counts completed
// books in full plus the current page of books being read.
func Summarize(books []Book) Stats {
	s := Stats{
		ByGenre:  make(map[Genre]int),
		ByStatus: make(map[Status]int),
		ByYear:   make(map[int]int),
		ByRating: make(map[int]int),
	}

	var ratingSum, rated int
	for _, b := range books {
		s.TotalBooks++
		s.TotalPages += b.Pages

		switch b.Status {
		case StatusCompleted:
			s.CompletedBooks++
			s.PagesRead += b.Pages
		case StatusReading:
			s.PagesRead += b.CurrentPage
		}

		if b.Rating > 0 {
			ratingSum += b.Rating
			rated++
		}

		s.ByGenre[b.Genre]++
		s.ByStatus[b.Status]++
		s.ByYear[b.Year]++
		s.ByRating[b.Rating]++
	}

	if rated > 0 {
		s.AverageRating = float64(ratingSum) / float64(rated)
	}
	return s
}

// YearsAscending returns the ByYear keys sorted ascending, the order the
// year breakdown is displayed in.
func (s Stats) YearsAscending() []int {
	return sortedKeys(s.ByYear)
}

// RatingsAscending returns the ByRating keys sorted ascending.
func (s Stats) RatingsAscending() []int {
	return sortedKeys(s.ByRating)
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
