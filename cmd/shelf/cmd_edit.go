package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"shelf/internal/config"
	"shelf/internal/covers"
	"shelf/internal/library"
	"shelf/internal/ui"
)

type EditCmd struct {
	Book string `arg:"" help:"Book ID, title, or author"`

	Title  string  `help:"Set the title"`
	Author string  `help:"Set the author"`
	ISBN   string  `help:"Set the ISBN"`
	Genre  string  `help:"Set the genre"`
	Year   *int    `help:"Set the publication year"`
	Pages  int     `help:"Set the page count"`
	Page   *int    `help:"Set the current page"`
	Status string  `help:"Set the reading status"`
	Rating *int    `help:"Set the rating (0 clears it)"`
	Review *string `help:"Set the review text"`
	Cover  string  `help:"Replace the cover image"`
}

func (cmd *EditCmd) Run(g *Globals) error {
	book, err := findBook(g.Lib, cmd.Book)
	if err != nil {
		if handleFindError(g.Out, err) {
			return nil
		}
		return err
	}

	if !cmd.hasEdits() {
		return cmd.runForm(g, book)
	}

	if err := cmd.applyEdits(&book); err != nil {
		return err
	}

	var img *covers.Image
	if cmd.Cover != "" {
		path, err := config.ExpandPath(cmd.Cover)
		if err != nil {
			return fmt.Errorf("invalid cover path: %w", err)
		}
		loaded, err := covers.ReadImage(path)
		if err != nil {
			return fmt.Errorf("failed to read cover %q: %w", cmd.Cover, err)
		}
		img = &loaded
	}

	updated, err := g.Lib.Update(book, img)
	if err != nil {
		return fmt.Errorf("failed to update book %q: %w", book.Title, err)
	}

	fmt.Fprintf(g.Out, "Updated: %s\n", updated.Title)
	return nil
}

func (cmd *EditCmd) hasEdits() bool {
	return cmd.Title != "" || cmd.Author != "" || cmd.ISBN != "" ||
		cmd.Genre != "" || cmd.Year != nil || cmd.Pages != 0 ||
		cmd.Page != nil || cmd.Status != "" || cmd.Rating != nil ||
		cmd.Review != nil || cmd.Cover != ""
}

func (cmd *EditCmd) applyEdits(b *library.Book) error {
	if cmd.Title != "" {
		b.Title = cmd.Title
	}
	if cmd.Author != "" {
		b.Author = cmd.Author
	}
	if cmd.ISBN != "" {
		b.ISBN = cmd.ISBN
	}
	if cmd.Genre != "" {
		genre, err := library.ParseGenre(cmd.Genre)
		if err != nil {
			return err
		}
		b.Genre = genre
	}
	if cmd.Year != nil {
		b.Year = *cmd.Year
	}
	if cmd.Pages != 0 {
		b.Pages = cmd.Pages
	}
	if cmd.Page != nil {
		b.CurrentPage = *cmd.Page
	}
	if cmd.Status != "" {
		status, err := library.ParseStatus(cmd.Status)
		if err != nil {
			return err
		}
		b.Status = status
	}
	if cmd.Rating != nil {
		b.Rating = *cmd.Rating
	}
	if cmd.Review != nil {
		b.Review = *cmd.Review
	}
	return nil
}

func (cmd *EditCmd) runForm(g *Globals, book library.Book) error {
	d := ui.DraftFrom(book)

	form := ui.NewEditForm(&d)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	status, err := library.ParseStatus(d.Status)
	if err != nil {
		return err
	}
	book.Status = status
	if strings.TrimSpace(d.Page) != "" {
		page, err := strconv.Atoi(strings.TrimSpace(d.Page))
		if err != nil {
			return fmt.Errorf("invalid page %q", d.Page)
		}
		book.CurrentPage = page
	}
	book.Rating = d.Rating
	book.Review = strings.TrimSpace(d.Review)

	updated, err := g.Lib.Update(book, nil)
	if err != nil {
		return fmt.Errorf("failed to update book %q: %w", book.Title, err)
	}

	fields := []ui.Field{
		{Label: "Status", Value: string(updated.Status)},
		{Label: "Page", Value: strconv.Itoa(updated.CurrentPage)},
		{Label: "Rating", Value: formatShowRating(updated)},
		{Label: "Review", Value: updated.Review},
	}
	fmt.Fprint(g.Out, ui.RenderWizard("Edit "+updated.Title, fields, -1))
	return nil
}
