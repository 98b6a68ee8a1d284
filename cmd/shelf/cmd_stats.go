package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"shelf/internal/library"
)

type StatsCmd struct{}

func (cmd *StatsCmd) Run(g *Globals) error {
	stats := library.Summarize(g.Lib.All())

	if stats.TotalBooks == 0 {
		fmt.Fprintln(g.Out, "No books in the library.")
		return nil
	}

	fmt.Fprintf(g.Out, "Books:          %d\n", stats.TotalBooks)
	fmt.Fprintf(g.Out, "Completed:      %d\n", stats.CompletedBooks)
	fmt.Fprintf(g.Out, "Total pages:    %d\n", stats.TotalPages)
	fmt.Fprintf(g.Out, "Pages read:     %d\n", stats.PagesRead)
	fmt.Fprintf(g.Out, "Average rating: %.1f\n", stats.AverageRating)

	return cmd.printBreakdowns(g, stats)
}

func (cmd *StatsCmd) printBreakdowns(g *Globals, stats library.Stats) error {
	w := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "\nBy status:")
	for _, s := range library.Statuses() {
		if n := stats.ByStatus[s]; n > 0 {
			fmt.Fprintf(w, "  %s\t%d\n", s, n)
		}
	}

	fmt.Fprintln(w, "\nBy genre:")
	for _, genre := range library.Genres() {
		if n := stats.ByGenre[genre]; n > 0 {
			fmt.Fprintf(w, "  %s\t%d\n", genre, n)
		}
	}

	fmt.Fprintln(w, "\nBy publication year:")
	for _, year := range stats.YearsAscending() {
		fmt.Fprintf(w, "  %s\t%d\n", formatYear(year), stats.ByYear[year])
	}

	fmt.Fprintln(w, "\nBy rating:")
	for _, rating := range stats.RatingsAscending() {
		fmt.Fprintf(w, "  %s\t%d\n", formatRating(rating), stats.ByRating[rating])
	}

	return w.Flush()
}

func formatYear(year int) string {
	if year == 0 {
		return "unknown"
	}
	return strconv.Itoa(year)
}

func formatRating(rating int) string {
	if rating == 0 {
		return "unrated"
	}
	return strings.Repeat("★", rating)
}
