package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"shelf/internal/covers"
	"shelf/internal/library"
)

type ShowCmd struct {
	Book     string `arg:"" help:"Book ID, title, or author"`
	ID       bool   `help:"Output only the book ID (for scripting)"`
	CoverOut string `help:"Write the cover image to this path" type:"path"`
}

func (cmd *ShowCmd) Run(g *Globals) error {
	book, err := findBook(g.Lib, cmd.Book)
	if err != nil {
		if handleFindError(g.Out, err) {
			return nil
		}
		return err
	}

	if cmd.ID {
		fmt.Fprintln(g.Out, book.ID)
		return nil
	}

	if cmd.CoverOut != "" {
		return cmd.writeCover(g, book)
	}

	printBook(g, book)
	return nil
}

func (cmd *ShowCmd) writeCover(g *Globals, book library.Book) error {
	data, err := g.Covers.Resolve(book.CoverPath)
	if errors.Is(err, covers.ErrNotFound) {
		return fmt.Errorf("no cover stored for %q", book.Title)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(cmd.CoverOut, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cover: %w", err)
	}
	fmt.Fprintf(g.Out, "Wrote cover to %s\n", cmd.CoverOut)
	return nil
}

func printBook(g *Globals, b library.Book) {
	line := func(label, value string) {
		fmt.Fprintf(g.Out, "%-9s %s\n", label+":", value)
	}

	line("Title", b.Title)
	line("Author", b.Author)
	if b.ISBN != "" {
		line("ISBN", b.ISBN)
	}
	line("Genre", string(b.Genre))
	if b.Year != 0 {
		line("Year", fmt.Sprintf("%d", b.Year))
	}
	line("Pages", fmt.Sprintf("%d", b.Pages))
	line("Status", formatShowStatus(b))
	line("Rating", formatShowRating(b))
	line("Added", b.AddedOn.Format(time.DateOnly))
	if !b.FinishedOn.IsZero() {
		line("Finished", b.FinishedOn.Format(time.DateOnly))
	}
	if b.Review != "" {
		line("Review", b.Review)
	}
	if b.HasCover() {
		line("Cover", b.CoverPath)
	} else {
		line("Cover", "(none)")
	}
	line("ID", b.ID)
}

func formatShowStatus(b library.Book) string {
	if b.Status == library.StatusReading {
		return fmt.Sprintf("%s (page %d of %d, %d%%)",
			b.Status, b.CurrentPage, b.Pages, int(b.Progress()*100+0.5))
	}
	return string(b.Status)
}

func formatShowRating(b library.Book) string {
	if b.Rating == 0 {
		return "unrated"
	}
	return fmt.Sprintf("%s (%d/%d)", strings.Repeat("★", b.Rating), b.Rating, library.MaxRating)
}
