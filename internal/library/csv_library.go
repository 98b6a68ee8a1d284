package library

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shelf/internal/covers"
)

var csvHeader = []string{
	"ID", "Title", "Author", "ISBN", "Genre", "Publication Year", "Pages",
	"Current Page", "Status", "Rating", "Review", "Date Added",
	"Date Finished", "Cover Image",
}

// CSVLibrary keeps the collection in memory and mirrors every mutation to
// a CSV file, one row per book under a single header row. The whole file
// is rewritten atomically on each change.
type CSVLibrary struct {
	path   string
	covers *covers.Store
	books  map[string]Book
	order  []string // ids in insertion order
	mu     sync.RWMutex
	log    *zap.Logger
	now    func() time.Time
}

func NewCSVLibrary(path string, cov *covers.Store, log *zap.Logger) (*CSVLibrary, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &CSVLibrary{
		path:   path,
		covers: cov,
		books:  make(map[string]Book),
		log:    log,
		now:    time.Now,
	}, nil
}

// WithClock replaces the time source, primarily for tests.
func (l *CSVLibrary) WithClock(now func() time.Time) *CSVLibrary {
	l.now = now
	return l
}

func (l *CSVLibrary) Add(b Book, cover *covers.Image) (Book, error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	b.AddedOn = DateOnly(l.now())
	b.CurrentPage = 0
	b.Status = StatusUnread
	b.Rating = 0
	b.FinishedOn = time.Time{}
	b.CoverPath = ""

	if err := b.Validate(); err != nil {
		return Book{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.books[b.ID]; exists {
		return Book{}, fmt.Errorf("%w: id %q", ErrAlreadyExists, b.ID)
	}

	if cover != nil {
		ref, err := l.covers.Store(b.ID, *cover)
		if err != nil {
			return Book{}, fmt.Errorf("%w: storing cover: %v", ErrPersistence, err)
		}
		b.CoverPath = ref
	}

	l.books[b.ID] = b
	l.order = append(l.order, b.ID)

	if err := l.saveUnlocked(); err != nil {
		delete(l.books, b.ID)
		l.order = l.order[:len(l.order)-1]
		if b.CoverPath != "" {
			_ = l.covers.Remove(b.CoverPath)
		}
		l.log.Warn("add rolled back", zap.String("id", b.ID), zap.Error(err))
		return Book{}, err
	}

	l.log.Info("book added", zap.String("id", b.ID), zap.String("title", b.Title))
	return b, nil
}

func (l *CSVLibrary) Update(b Book, cover *covers.Image) (Book, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev, ok := l.books[b.ID]
	if !ok {
		return Book{}, ErrNotFound
	}

	// The caller never owns these fields: creation date is immutable, the
	// finish date is write-once, and the cover reference belongs to the
	// cover store.
	b.AddedOn = prev.AddedOn
	b.FinishedOn = prev.FinishedOn
	b.CoverPath = prev.CoverPath

	if err := b.Validate(); err != nil {
		return Book{}, err
	}
	b.ClampProgress()

	if b.Status == StatusCompleted && b.FinishedOn.IsZero() {
		b.FinishedOn = DateOnly(l.now())
	}

	if cover != nil {
		ref, err := l.covers.Store(b.ID, *cover)
		if err != nil {
			return Book{}, fmt.Errorf("%w: storing cover: %v", ErrPersistence, err)
		}
		b.CoverPath = ref
	}

	l.books[b.ID] = b
	if err := l.saveUnlocked(); err != nil {
		l.books[b.ID] = prev
		l.log.Warn("update rolled back", zap.String("id", b.ID), zap.Error(err))
		return Book{}, err
	}

	return b, nil
}

func (l *CSVLibrary) Remove(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.books[id]
	if !ok {
		return ErrNotFound
	}

	if b.CoverPath != "" {
		if err := l.covers.Remove(b.CoverPath); err != nil {
			return fmt.Errorf("%w: removing cover: %v", ErrPersistence, err)
		}
	}

	idx := slices.Index(l.order, id)
	delete(l.books, id)
	l.order = slices.Delete(l.order, idx, idx+1)

	if err := l.saveUnlocked(); err != nil {
		l.books[id] = b
		l.order = slices.Insert(l.order, idx, id)
		l.log.Warn("remove rolled back", zap.String("id", id), zap.Error(err))
		return err
	}

	l.log.Info("book removed", zap.String("id", id), zap.String("title", b.Title))
	return nil
}

func (l *CSVLibrary) Get(id string) (Book, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	b, ok := l.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

// All returns a snapshot of the collection in insertion order.
func (l *CSVLibrary) All() []Book {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.allUnlocked()
}

func (l *CSVLibrary) allUnlocked() []Book {
	books := make([]Book, 0, len(l.order))
	for _, id := range l.order {
		books = append(books, l.books[id])
	}
	return books
}

func (l *CSVLibrary) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.books)
}

// ReplaceAll swaps the whole collection, validating every incoming book
// first. On persistence failure the previous collection is restored.
func (l *CSVLibrary) ReplaceAll(books []Book) error {
	books = slices.Clone(books)
	for i := range books {
		if books[i].ID == "" {
			books[i].ID = uuid.New().String()
		}
		if err := books[i].Validate(); err != nil {
			return fmt.Errorf("book %d (%s): %w", i+1, books[i].Title, err)
		}
		books[i].ClampProgress()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	replacement := make(map[string]Book, len(books))
	order := make([]string, 0, len(books))
	for _, b := range books {
		if _, dup := replacement[b.ID]; dup {
			return fmt.Errorf("%w: id %q", ErrAlreadyExists, b.ID)
		}
		replacement[b.ID] = b
		order = append(order, b.ID)
	}

	prevBooks, prevOrder := l.books, l.order
	l.books, l.order = replacement, order

	if err := l.saveUnlocked(); err != nil {
		l.books, l.order = prevBooks, prevOrder
		l.log.Warn("replace rolled back", zap.Error(err))
		return err
	}

	l.log.Info("library replaced", zap.Int("books", len(order)))
	return nil
}

func (l *CSVLibrary) Save() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.saveUnlocked()
}

func (l *CSVLibrary) saveUnlocked() error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	for _, id := range l.order {
		if err := w.Write(csvRow(l.books[id])); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	tmpPath := l.path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := os.Rename(tmpPath, l.path); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

func (l *CSVLibrary) Load() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read library file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return fmt.Errorf("failed to parse library file %q: %w", l.path, err)
	}
	if len(rows) == 0 {
		l.books = make(map[string]Book)
		l.order = nil
		return nil
	}

	books := make(map[string]Book, len(rows)-1)
	order := make([]string, 0, len(rows)-1)
	for i, row := range rows[1:] {
		b, err := parseRow(row)
		if err != nil {
			return fmt.Errorf("failed to parse library file %q: row %d: %w", l.path, i+2, err)
		}
		// Files written before ids existed carry an empty ID cell.
		if b.ID == "" {
			b.ID = uuid.New().String()
		}
		if _, dup := books[b.ID]; dup {
			return fmt.Errorf("failed to parse library file %q: row %d: duplicate id %q", l.path, i+2, b.ID)
		}
		b.ClampProgress()
		books[b.ID] = b
		order = append(order, b.ID)
	}

	l.books = books
	l.order = order
	l.log.Debug("library loaded", zap.Int("books", len(order)))
	return nil
}

func csvRow(b Book) []string {
	return []string{
		b.ID,
		b.Title,
		b.Author,
		b.ISBN,
		string(b.Genre),
		strconv.Itoa(b.Year),
		strconv.Itoa(b.Pages),
		strconv.Itoa(b.CurrentPage),
		string(b.Status),
		strconv.Itoa(b.Rating),
		b.Review,
		formatDate(b.AddedOn),
		formatDate(b.FinishedOn),
		b.CoverPath,
	}
}

func parseRow(row []string) (Book, error) {
	if len(row) != len(csvHeader) {
		return Book{}, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(row))
	}

	genre, err := ParseGenre(row[4])
	if err != nil {
		return Book{}, err
	}
	year, err := parseIntCell(row[5], "publication year")
	if err != nil {
		return Book{}, err
	}
	pages, err := parseIntCell(row[6], "pages")
	if err != nil {
		return Book{}, err
	}
	currentPage, err := parseIntCell(row[7], "current page")
	if err != nil {
		return Book{}, err
	}
	status, err := ParseStatus(row[8])
	if err != nil {
		return Book{}, err
	}
	rating, err := parseIntCell(row[9], "rating")
	if err != nil {
		return Book{}, err
	}
	addedOn, err := parseDateCell(row[11])
	if err != nil {
		return Book{}, err
	}
	finishedOn, err := parseDateCell(row[12])
	if err != nil {
		return Book{}, err
	}

	return Book{
		ID:          strings.TrimSpace(row[0]),
		Title:       row[1],
		Author:      row[2],
		ISBN:        row[3],
		Genre:       genre,
		Year:        year,
		Pages:       pages,
		CurrentPage: currentPage,
		Status:      status,
		Rating:      rating,
		Review:      row[10],
		AddedOn:     addedOn,
		FinishedOn:  finishedOn,
		CoverPath:   row[13],
	}, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func parseDateCell(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q", s)
	}
	return t, nil
}

func parseIntCell(s, name string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q", name, s)
	}
	return n, nil
}
