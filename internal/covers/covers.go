// Package covers stores at most one cover image per book under a single
// directory, one file per book named by the book's id plus the original
// extension.
package covers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound means no cover bytes exist for the given reference. Callers
// substitute a placeholder rather than failing.
var ErrNotFound = errors.New("cover not found")

var allowedExts = map[string]bool{"jpg": true, "jpeg": true, "png": true}

// Image is an in-memory cover waiting to be stored.
type Image struct {
	Ext  string // file extension, with or without the leading dot
	Data []byte
}

// ReadImage loads an image file from disk into an Image, taking the
// extension from the file name.
func ReadImage(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, err
	}
	return Image{Ext: filepath.Ext(path), Data: data}, nil
}

type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

// Store writes img under key, replacing any cover previously stored for
// that key even when the extension differs. It returns the path recorded
// on the book as its cover reference.
func (s *Store) Store(key string, img Image) (string, error) {
	if key == "" {
		return "", errors.New("cover key cannot be empty")
	}
	ext := strings.ToLower(strings.TrimPrefix(img.Ext, "."))
	if !allowedExts[ext] {
		return "", fmt.Errorf("unsupported cover format %q (want jpg, jpeg or png)", img.Ext)
	}

	if err := s.removeKey(key); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, key+"."+ext)
	if err := os.WriteFile(path, img.Data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Remove deletes the file a reference points at. Missing files and
// references outside the store are not errors: the cover is already gone
// as far as the caller is concerned.
func (s *Store) Remove(ref string) error {
	if ref == "" || !s.contains(ref) {
		return nil
	}
	if err := os.Remove(ref); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Resolve reads the cover bytes for a reference. Every unusable reference
// (empty, outside the store, missing or unreadable file) reports
// ErrNotFound.
func (s *Store) Resolve(ref string) ([]byte, error) {
	if ref == "" || !s.contains(ref) {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return data, nil
}

// removeKey deletes every stored extension variant for key.
func (s *Store) removeKey(key string) error {
	matches, err := filepath.Glob(filepath.Join(s.dir, key+".*"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// contains reports whether ref points directly into the store directory.
// The layout is flat, so the parent directory comparison is exact.
func (s *Store) contains(ref string) bool {
	dir, err := filepath.Abs(s.dir)
	if err != nil {
		return false
	}
	abs, err := filepath.Abs(ref)
	if err != nil {
		return false
	}
	return filepath.Dir(abs) == dir
}
