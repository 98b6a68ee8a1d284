package proptest

import (
	"slices"

	"pgregory.net/rapid"

	"shelf/internal/library"
)

// StateTracker is a trivially-correct model of the library: a map of the
// books it believes the real implementation holds.
type StateTracker struct {
	books map[string]library.Book
}

func newStateTracker() *StateTracker {
	return &StateTracker{books: make(map[string]library.Book)}
}

func (s *StateTracker) Add(b library.Book) error {
	if _, exists := s.books[b.ID]; exists {
		return library.ErrAlreadyExists
	}
	s.books[b.ID] = b
	return nil
}

func (s *StateTracker) Remove(id string) error {
	if _, ok := s.books[id]; !ok {
		return library.ErrNotFound
	}
	delete(s.books, id)
	return nil
}

func (s *StateTracker) Exists(id string) bool {
	_, ok := s.books[id]
	return ok
}

func (s *StateTracker) Update(b library.Book) error {
	if _, ok := s.books[b.ID]; !ok {
		return library.ErrNotFound
	}
	s.books[b.ID] = b
	return nil
}

func (s *StateTracker) Replace(books []library.Book) {
	s.books = make(map[string]library.Book, len(books))
	for _, b := range books {
		s.books[b.ID] = b
	}
}

func (s *StateTracker) Book(id string) library.Book {
	return s.books[id]
}

func (s *StateTracker) IDs() []string {
	ids := make([]string, 0, len(s.books))
	for id := range s.books {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s *StateTracker) Count() int {
	return len(s.books)
}

// CheckedLibrary runs every operation against both the real library and
// the model and fails the test on any divergence.
type CheckedLibrary struct {
	real  library.Library
	model *StateTracker
	t     *rapid.T
}

func NewCheckedLibrary(t *rapid.T, lib library.Library) *CheckedLibrary {
	return &CheckedLibrary{
		real:  lib,
		model: newStateTracker(),
		t:     t,
	}
}

func (c *CheckedLibrary) Model() *StateTracker {
	return c.model
}

func (c *CheckedLibrary) Add(b library.Book) error {
	added, realErr := c.real.Add(b, nil)
	if realErr == nil {
		// The real library owns the defaults; track what it accepted.
		b = added
	}
	modelErr := c.model.Add(b)
	if (realErr == nil) != (modelErr == nil) {
		c.t.Fatalf("Add divergence: real=%v model=%v", realErr, modelErr)
	}
	verifyStructuralInvariants(c.t, c.real)
	return realErr
}

func (c *CheckedLibrary) Remove(id string) error {
	realErr := c.real.Remove(id)
	modelErr := c.model.Remove(id)
	if (realErr == nil) != (modelErr == nil) {
		c.t.Fatalf("Remove divergence: real=%v model=%v", realErr, modelErr)
	}
	verifyStructuralInvariants(c.t, c.real)
	return realErr
}

func (c *CheckedLibrary) Get(id string) (library.Book, error) {
	b, realErr := c.real.Get(id)
	modelExists := c.model.Exists(id)
	if (realErr == nil) != modelExists {
		c.t.Fatalf("Get divergence: real err=%v model exists=%v", realErr, modelExists)
	}
	return b, realErr
}

func (c *CheckedLibrary) Update(b library.Book) error {
	updated, realErr := c.real.Update(b, nil)
	if realErr == nil {
		// The real library clamps progress and owns the dates.
		b = updated
	}
	modelErr := c.model.Update(b)
	if (realErr == nil) != (modelErr == nil) {
		c.t.Fatalf("Update divergence: real=%v model=%v", realErr, modelErr)
	}
	verifyStructuralInvariants(c.t, c.real)
	return realErr
}

func (c *CheckedLibrary) ReplaceAll(books []library.Book) error {
	realErr := c.real.ReplaceAll(books)
	if realErr == nil {
		c.model.Replace(c.real.All())
	}
	verifyStructuralInvariants(c.t, c.real)
	return realErr
}

func (c *CheckedLibrary) All() []library.Book {
	books := c.real.All()
	if len(books) != c.model.Count() {
		c.t.Fatalf("All divergence: real has %d books, model has %d", len(books), c.model.Count())
	}
	verifyStructuralInvariants(c.t, c.real)
	return books
}

func (c *CheckedLibrary) Filter(spec library.FilterSpec) []library.Book {
	results := library.ApplyFilter(c.real.All(), spec)
	known := make(map[string]bool)
	for _, b := range c.real.All() {
		known[b.ID] = true
	}
	for _, b := range results {
		if !known[b.ID] {
			c.t.Fatalf("Filter returned book %s not in All()", b.ID)
		}
	}
	return results
}

// Reload re-reads the collection from disk and checks that nothing was
// lost or altered: every mutation persisted synchronously, so a reload
// must be invisible.
func (c *CheckedLibrary) Reload() {
	if err := c.real.Load(); err != nil {
		c.t.Fatalf("reload failed: %v", err)
	}

	if c.real.Count() != c.model.Count() {
		c.t.Fatalf("Reload divergence: real has %d books, model has %d", c.real.Count(), c.model.Count())
	}
	for _, id := range c.model.IDs() {
		loaded, err := c.real.Get(id)
		if err != nil {
			c.t.Fatalf("book %s lost across reload", id)
		}
		assertBooksEqual(c.t, c.model.Book(id), loaded)
	}
	verifyStructuralInvariants(c.t, c.real)
}
