package proptest

import (
	"fmt"
	"time"

	"pgregory.net/rapid"

	"shelf/internal/library"
)

// csvHeaderLine is the header row of the library's on-disk format.
const csvHeaderLine = "ID,Title,Author,ISBN,Genre,Publication Year,Pages,Current Page,Status,Rating,Review,Date Added,Date Finished,Cover Image"

var (
	iterDirGen    = rapid.StringMatching(`[a-z]{8}`)
	shortQueryGen = rapid.StringMatching(`[a-z]{1,5}`)
	queryGen      = rapid.StringMatching(`[a-z]{1,10}`)
	isbnGen       = rapid.StringMatching(`97[89][0-9]{10}`)
	reviewGen     = rapid.StringMatching(`[a-zA-Z ]{0,30}`)
)

func titleGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[A-Z][a-zA-Z' ]{0,30}[a-z]`)
}

func authorGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[A-Z][a-z]{1,8} [A-Z][a-z]{1,10}`)
}

func genreGen() *rapid.Generator[library.Genre] {
	return rapid.SampledFrom(library.Genres())
}

func statusGen() *rapid.Generator[library.Status] {
	return rapid.SampledFrom(library.Statuses())
}

func yearGen() *rapid.Generator[int] {
	return rapid.IntRange(0, time.Now().Year())
}

func pagesGen() *rapid.Generator[int] {
	return rapid.IntRange(1, 2000)
}

func ratingGen() *rapid.Generator[int] {
	return rapid.IntRange(0, library.MaxRating)
}

func filterSpecGen() *rapid.Generator[library.FilterSpec] {
	return rapid.Custom(func(t *rapid.T) library.FilterSpec {
		var spec library.FilterSpec

		if rapid.Bool().Draw(t, "hasQuery") {
			spec.Query = queryGen.Draw(t, "query")
		}
		if rapid.Bool().Draw(t, "hasGenres") {
			spec.Genres = rapid.SliceOfNDistinct(genreGen(), 1, 3, rapid.ID).Draw(t, "genres")
		}
		if rapid.Bool().Draw(t, "hasStatuses") {
			spec.Statuses = rapid.SliceOfNDistinct(statusGen(), 1, 2, rapid.ID).Draw(t, "statuses")
		}
		if rapid.Bool().Draw(t, "hasYears") {
			spec.YearFrom = rapid.IntRange(1900, 2000).Draw(t, "yearFrom")
			spec.YearTo = rapid.IntRange(2000, 2100).Draw(t, "yearTo")
		}
		spec.MinRating = rapid.IntRange(0, library.MaxRating).Draw(t, "minRating")

		sortFields := []library.SortField{"", library.SortByAdded, library.SortByTitle, library.SortByAuthor, library.SortByRating}
		spec.SortBy = rapid.SampledFrom(sortFields).Draw(t, "sortBy")
		spec.Descending = rapid.Bool().Draw(t, "desc")

		return spec
	})
}

func malformedCSVGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just(`"unterminated quote`),
		rapid.Just("a,b\"c,d"),
		rapid.Just(csvHeaderLine+"\nonly,three,cells\n"),
		rapid.Just(csvHeaderLine+"\n"+csvHeaderLine+",extra\n"),
		rapid.Just("\xff\xfe\x00binary"),
		rapid.Custom(func(t *rapid.T) string {
			size := rapid.IntRange(10, 100).Draw(t, "size")
			raw := make([]byte, size)
			for i := range raw {
				raw[i] = byte(rapid.IntRange(0, 255).Draw(t, "byte"))
			}
			return string(raw)
		}),
	)
}

// invalidCellsGen produces files with the right column count but one cell
// the row parser must reject.
func invalidCellsGen() *rapid.Generator[string] {
	row := func(genre, year, pages, current, status, rating, added string) string {
		return fmt.Sprintf("b1,Bad Row,Some Author,,%s,%s,%s,%s,%s,%s,,%s,,",
			genre, year, pages, current, status, rating, added)
	}

	rows := []string{
		row("Cooking", "2001", "200", "50", "Reading", "4", "2024-01-01"),
		row("Fiction", "twenty", "200", "50", "Reading", "4", "2024-01-01"),
		row("Fiction", "2001", "many", "50", "Reading", "4", "2024-01-01"),
		row("Fiction", "2001", "200", "half", "Reading", "4", "2024-01-01"),
		row("Fiction", "2001", "200", "50", "Paused", "4", "2024-01-01"),
		row("Fiction", "2001", "200", "50", "Reading", "lots", "2024-01-01"),
		row("Fiction", "2001", "200", "50", "Reading", "4", "01/13/2024"),
	}

	gens := make([]*rapid.Generator[string], len(rows))
	for i, r := range rows {
		gens[i] = rapid.Just(csvHeaderLine + "\n" + r + "\n")
	}
	return rapid.OneOf(gens...)
}

// legacyCSVGen produces files in the pre-id format, where the ID cell is
// empty and the loader assigns one.
func legacyCSVGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		genre := genreGen().Draw(t, "genre")
		year := rapid.IntRange(1900, 2020).Draw(t, "year")
		pages := pagesGen().Draw(t, "pages")
		return fmt.Sprintf("%s\n,Legacy Title,Legacy Author,,%s,%d,%d,0,Unread,0,,2019-06-01,,\n",
			csvHeaderLine, genre, year, pages)
	})
}
