package library

import (
	"errors"

	"shelf/internal/covers"
)

var (
	ErrNotFound      = errors.New("book not found")
	ErrAlreadyExists = errors.New("book already exists")
	ErrPersistence   = errors.New("library could not be saved")
)

// Library owns the book collection. Every mutation persists the whole
// collection before reporting success; when persistence fails the
// in-memory state is rolled back and the error wraps ErrPersistence.
type Library interface {
	Add(b Book, cover *covers.Image) (Book, error)
	Update(b Book, cover *covers.Image) (Book, error)
	Remove(id string) error
	Get(id string) (Book, error)
	All() []Book
	Count() int
	ReplaceAll(books []Book) error
	Load() error
	Save() error
}
