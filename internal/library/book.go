package library

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxTitleLen  = 100
	MaxAuthorLen = 50
	MaxISBNLen   = 20
	MaxRating    = 5
)

// ErrInvalidBook is the umbrella for every field validation failure; the
// per-field sentinels below all wrap it, so errors.Is(err, ErrInvalidBook)
// matches any of them.
var (
	ErrInvalidBook = errors.New("invalid book")

	ErrEmptyTitle    = fmt.Errorf("%w: title cannot be empty", ErrInvalidBook)
	ErrTitleTooLong  = fmt.Errorf("%w: title longer than %d characters", ErrInvalidBook, MaxTitleLen)
	ErrEmptyAuthor   = fmt.Errorf("%w: author cannot be empty", ErrInvalidBook)
	ErrAuthorTooLong = fmt.Errorf("%w: author longer than %d characters", ErrInvalidBook, MaxAuthorLen)
	ErrISBNTooLong   = fmt.Errorf("%w: isbn longer than %d characters", ErrInvalidBook, MaxISBNLen)
	ErrInvalidPages  = fmt.Errorf("%w: pages must be at least 1", ErrInvalidBook)
	ErrInvalidYear   = fmt.Errorf("%w: publication year out of range", ErrInvalidBook)
	ErrInvalidRating = fmt.Errorf("%w: rating must be between 0 and %d", ErrInvalidBook, MaxRating)
	ErrUnknownGenre  = fmt.Errorf("%w: unknown genre", ErrInvalidBook)
	ErrUnknownStatus = fmt.Errorf("%w: unknown status", ErrInvalidBook)
)

type Genre string

const (
	GenreFiction    Genre = "Fiction"
	GenreNonFiction Genre = "Non-Fiction"
	GenreSciFi      Genre = "Science Fiction"
	GenreFantasy    Genre = "Fantasy"
	GenreMystery    Genre = "Mystery"
	GenreThriller   Genre = "Thriller"
	GenreRomance    Genre = "Romance"
	GenreBiography  Genre = "Biography"
	GenreHistory    Genre = "History"
	GenreScience    Genre = "Science"
	GenreSelfHelp   Genre = "Self-Help"
	GenreOther      Genre = "Other"
)

// Genres lists every valid genre in display order.
func Genres() []Genre {
	return []Genre{
		GenreFiction, GenreNonFiction, GenreSciFi, GenreFantasy,
		GenreMystery, GenreThriller, GenreRomance, GenreBiography,
		GenreHistory, GenreScience, GenreSelfHelp, GenreOther,
	}
}

func ParseGenre(s string) (Genre, error) {
	for _, g := range Genres() {
		if strings.EqualFold(strings.TrimSpace(s), string(g)) {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGenre, s)
}

type Status string

const (
	StatusUnread    Status = "Unread"
	StatusReading   Status = "Reading"
	StatusCompleted Status = "Completed"
	StatusOnHold    Status = "On Hold"
	StatusDropped   Status = "Dropped"
)

// Statuses lists every valid status in display order.
func Statuses() []Status {
	return []Status{
		StatusUnread, StatusReading, StatusCompleted,
		StatusOnHold, StatusDropped,
	}
}

func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses() {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

type Book struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Author      string    `yaml:"author"`
	ISBN        string    `yaml:"isbn,omitempty"`
	Genre       Genre     `yaml:"genre"`
	Year        int       `yaml:"year"`
	Pages       int       `yaml:"pages"`
	CurrentPage int       `yaml:"current_page"`
	Status      Status    `yaml:"status"`
	Rating      int       `yaml:"rating"`
	Review      string    `yaml:"review,omitempty"`
	AddedOn     time.Time `yaml:"added_on"`
	FinishedOn  time.Time `yaml:"finished_on,omitempty"`
	CoverPath   string    `yaml:"cover,omitempty"`
}

// NewBook returns a book with a fresh identity and the defaults every new
// entry starts from. Optional fields are set directly on the result.
func NewBook(title, author string, pages int) Book {
	return Book{
		ID:      uuid.New().String(),
		Title:   title,
		Author:  author,
		Pages:   pages,
		Genre:   GenreOther,
		Status:  StatusUnread,
		AddedOn: DateOnly(time.Now()),
	}
}

// DateOnly truncates t to its calendar day, the precision stored on disk.
// The day is read in t's location but the result is pinned to UTC so that
// values compare equal after a round trip through their on-disk form.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (b *Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(b.Title) > MaxTitleLen {
		return ErrTitleTooLong
	}
	if strings.TrimSpace(b.Author) == "" {
		return ErrEmptyAuthor
	}
	if utf8.RuneCountInString(b.Author) > MaxAuthorLen {
		return ErrAuthorTooLong
	}
	if utf8.RuneCountInString(b.ISBN) > MaxISBNLen {
		return ErrISBNTooLong
	}
	if _, err := ParseGenre(string(b.Genre)); err != nil {
		return err
	}
	if b.Year < 0 || b.Year > time.Now().Year() {
		return fmt.Errorf("%w: got %d", ErrInvalidYear, b.Year)
	}
	if b.Pages < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPages, b.Pages)
	}
	if _, err := ParseStatus(string(b.Status)); err != nil {
		return err
	}
	if b.Rating < 0 || b.Rating > MaxRating {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, b.Rating)
	}
	return nil
}

// ClampProgress forces CurrentPage into [0, Pages].
func (b *Book) ClampProgress() {
	if b.CurrentPage < 0 {
		b.CurrentPage = 0
	}
	if b.CurrentPage > b.Pages {
		b.CurrentPage = b.Pages
	}
}

// Progress reports how much of the book has been read, in [0, 1].
// Completed books count as fully read regardless of CurrentPage.
func (b Book) Progress() float64 {
	if b.Status == StatusCompleted {
		return 1
	}
	if b.Pages <= 0 {
		return 0
	}
	return float64(b.CurrentPage) / float64(b.Pages)
}

func (b Book) HasCover() bool {
	return b.CoverPath != ""
}
