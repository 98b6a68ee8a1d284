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

type AddCmd struct {
	Title  string `short:"t" help:"Book title (omit to run the interactive form)"`
	Author string `short:"a" help:"Book author"`
	ISBN   string `help:"ISBN"`
	Genre  string `short:"g" help:"Genre"`
	Year   int    `short:"y" help:"Publication year"`
	Pages  int    `short:"p" help:"Page count"`
	Cover  string `help:"Path to a cover image (jpg or png)"`
}

func (cmd *AddCmd) Run(g *Globals) error {
	if cmd.Title == "" {
		return cmd.runForm(g)
	}

	book := library.NewBook(cmd.Title, cmd.Author, cmd.Pages)
	book.ISBN = cmd.ISBN
	book.Year = cmd.Year
	if cmd.Genre != "" {
		genre, err := library.ParseGenre(cmd.Genre)
		if err != nil {
			return err
		}
		book.Genre = genre
	}

	img, err := cmd.loadCover()
	if err != nil {
		return err
	}

	added, err := g.Lib.Add(book, img)
	if err != nil {
		return fmt.Errorf("failed to add book %q: %w", book.Title, err)
	}

	fmt.Fprintf(g.Out, "Added: %s by %s\n", added.Title, added.Author)
	return nil
}

func (cmd *AddCmd) runForm(g *Globals) error {
	d := &ui.BookDraft{
		Author: cmd.Author,
		ISBN:   cmd.ISBN,
		Genre:  cmd.Genre,
	}
	if cmd.Year != 0 {
		d.Year = strconv.Itoa(cmd.Year)
	}
	if cmd.Pages != 0 {
		d.Pages = strconv.Itoa(cmd.Pages)
	}

	form := ui.NewAddForm(d)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	book, err := draftToBook(d)
	if err != nil {
		return err
	}

	img, err := cmd.loadCover()
	if err != nil {
		return err
	}

	added, err := g.Lib.Add(book, img)
	if err != nil {
		return fmt.Errorf("failed to add book %q: %w", book.Title, err)
	}

	notes := []string{fmt.Sprintf("%d pages", added.Pages)}
	if added.HasCover() {
		notes = append(notes, "cover attached")
	}
	fmt.Fprint(g.Out, ui.RenderAdded(added.Title, added.Author, notes))
	return nil
}

func (cmd *AddCmd) loadCover() (*covers.Image, error) {
	if cmd.Cover == "" {
		return nil, nil
	}

	path, err := config.ExpandPath(cmd.Cover)
	if err != nil {
		return nil, fmt.Errorf("invalid cover path: %w", err)
	}
	img, err := covers.ReadImage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cover %q: %w", cmd.Cover, err)
	}
	return &img, nil
}

func draftToBook(d *ui.BookDraft) (library.Book, error) {
	pages, err := strconv.Atoi(strings.TrimSpace(d.Pages))
	if err != nil {
		return library.Book{}, fmt.Errorf("invalid page count %q", d.Pages)
	}

	book := library.NewBook(strings.TrimSpace(d.Title), strings.TrimSpace(d.Author), pages)
	book.ISBN = strings.TrimSpace(d.ISBN)

	if d.Genre != "" {
		genre, err := library.ParseGenre(d.Genre)
		if err != nil {
			return library.Book{}, err
		}
		book.Genre = genre
	}
	if strings.TrimSpace(d.Year) != "" {
		year, err := strconv.Atoi(strings.TrimSpace(d.Year))
		if err != nil {
			return library.Book{}, fmt.Errorf("invalid year %q", d.Year)
		}
		book.Year = year
	}

	return book, nil
}
