package main

import (
	"fmt"

	"shelf/internal/library"
)

type ListCmd struct {
	Query     string   `short:"q" help:"Match a title or author substring"`
	Genre     []string `short:"g" help:"Filter by genre (repeatable)"`
	Status    []string `help:"Filter by status (repeatable)"`
	YearFrom  int      `help:"Earliest publication year"`
	YearTo    int      `help:"Latest publication year"`
	MinRating int      `help:"Minimum rating (1-5)"`
	Sort      string   `short:"s" help:"Sort by added, title, author or rating"`
	Desc      bool     `help:"Sort descending"`
	Titles    bool     `short:"n" help:"Output only book titles (one per line)"`
}

func (cmd *ListCmd) Run(g *Globals) error {
	spec, err := cmd.filterSpec(g)
	if err != nil {
		return err
	}

	books := library.ApplyFilter(g.Lib.All(), spec)

	if cmd.Titles {
		for _, b := range books {
			fmt.Fprintln(g.Out, b.Title)
		}
		return nil
	}

	fmt.Fprint(g.Out, g.Render.RenderBookList(bookListView(books)))
	return nil
}

func (cmd *ListCmd) filterSpec(g *Globals) (library.FilterSpec, error) {
	spec := library.FilterSpec{
		Query:      cmd.Query,
		YearFrom:   cmd.YearFrom,
		YearTo:     cmd.YearTo,
		MinRating:  cmd.MinRating,
		Descending: cmd.Desc,
	}

	for _, s := range cmd.Genre {
		genre, err := library.ParseGenre(s)
		if err != nil {
			return library.FilterSpec{}, err
		}
		spec.Genres = append(spec.Genres, genre)
	}
	for _, s := range cmd.Status {
		status, err := library.ParseStatus(s)
		if err != nil {
			return library.FilterSpec{}, err
		}
		spec.Statuses = append(spec.Statuses, status)
	}

	sortBy := cmd.Sort
	if sortBy == "" {
		sortBy = g.DefaultSort
	}
	if sortBy != "" {
		field, err := parseSortField(sortBy)
		if err != nil {
			return library.FilterSpec{}, err
		}
		spec.SortBy = field
	}

	return spec, nil
}
