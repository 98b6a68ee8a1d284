package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/huh"

	"shelf/internal/library"
)

// BookDraft carries form input as entered, before it is parsed into a
// library.Book. Numeric fields stay strings so the form can surface
// parse errors through its validators instead of panicking on Run.
type BookDraft struct {
	Title  string
	Author string
	ISBN   string
	Genre  string
	Year   string
	Pages  string
	Page   string
	Status string
	Rating int
	Review string
}

// DraftFrom seeds a draft with a book's current values for editing.
func DraftFrom(b library.Book) BookDraft {
	return BookDraft{
		Title:  b.Title,
		Author: b.Author,
		ISBN:   b.ISBN,
		Genre:  string(b.Genre),
		Year:   strconv.Itoa(b.Year),
		Pages:  strconv.Itoa(b.Pages),
		Page:   strconv.Itoa(b.CurrentPage),
		Status: string(b.Status),
		Rating: b.Rating,
		Review: b.Review,
	}
}

// NewAddForm asks for the fields a new book needs. Progress, rating and
// review are not offered here: new books always start unread.
func NewAddForm(d *BookDraft) *huh.Form {
	if d.Genre == "" {
		d.Genre = string(library.GenreOther)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&d.Title).
				Validate(ValidateTitle),
			huh.NewInput().
				Title("Author").
				Value(&d.Author).
				Validate(ValidateAuthor),
			huh.NewInput().
				Title("ISBN").
				Description("Press Enter to skip").
				Value(&d.ISBN).
				Validate(ValidateISBN),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Genre").
				Options(genreOptions()...).
				Value(&d.Genre),
			huh.NewInput().
				Title("Publication year").
				Value(&d.Year).
				Validate(ValidateYear),
			huh.NewInput().
				Title("Pages").
				Value(&d.Pages).
				Validate(ValidatePages),
		),
	).WithTheme(WizardTheme())
}

// NewEditForm covers the fields that change while reading: status,
// progress, rating and review.
func NewEditForm(d *BookDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOptions()...).
				Value(&d.Status),
			huh.NewInput().
				Title("Current page").
				Value(&d.Page).
				Validate(ValidatePage),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Rating").
				Options(ratingOptions()...).
				Value(&d.Rating),
			huh.NewText().
				Title("Review").
				Value(&d.Review),
		),
	).WithTheme(WizardTheme())
}

func genreOptions() []huh.Option[string] {
	genres := library.Genres()
	opts := make([]huh.Option[string], len(genres))
	for i, g := range genres {
		opts[i] = huh.NewOption(string(g), string(g))
	}
	return opts
}

func statusOptions() []huh.Option[string] {
	statuses := library.Statuses()
	opts := make([]huh.Option[string], len(statuses))
	for i, s := range statuses {
		opts[i] = huh.NewOption(string(s), string(s))
	}
	return opts
}

func ratingOptions() []huh.Option[int] {
	opts := []huh.Option[int]{huh.NewOption("unrated", 0)}
	for r := 1; r <= library.MaxRating; r++ {
		opts = append(opts, huh.NewOption(strings.Repeat("★", r), r))
	}
	return opts
}

func ValidateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("Title cannot be empty")
	}
	if utf8.RuneCountInString(s) > library.MaxTitleLen {
		return fmt.Errorf("Title must be at most %d characters", library.MaxTitleLen)
	}
	return nil
}

func ValidateAuthor(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("Author cannot be empty")
	}
	if utf8.RuneCountInString(s) > library.MaxAuthorLen {
		return fmt.Errorf("Author must be at most %d characters", library.MaxAuthorLen)
	}
	return nil
}

func ValidateISBN(s string) error {
	if utf8.RuneCountInString(s) > library.MaxISBNLen {
		return fmt.Errorf("ISBN must be at most %d characters", library.MaxISBNLen)
	}
	return nil
}

func ValidateYear(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("Year must be a number")
	}
	if year < 0 || year > time.Now().Year() {
		return errors.New("Year cannot be negative or in the future")
	}
	return nil
}

func ValidatePages(s string) error {
	pages, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("Pages must be a number")
	}
	if pages < 1 {
		return errors.New("Pages must be at least 1")
	}
	return nil
}

func ValidatePage(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	page, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("Page must be a number")
	}
	if page < 0 {
		return errors.New("Page cannot be negative")
	}
	return nil
}
