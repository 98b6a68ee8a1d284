package proptest

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"pgregory.net/rapid"

	"shelf/internal/covers"
	"shelf/internal/library"
)

func requireNoPanic(rt *rapid.T, description, input string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			rt.Fatalf("%s panicked: %v\nInput: %q", description, r, input)
		}
	}()
	fn()
}

// reopenLibrary builds a second library over the same iteration directory,
// the way a fresh process would see the data.
func reopenLibrary(rt *rapid.T, dir string) *library.CSVLibrary {
	cov, err := covers.NewStore(filepath.Join(dir, "covers"))
	if err != nil {
		rt.Fatalf("failed to create cover store: %v", err)
	}
	lib, err := library.NewCSVLibrary(filepath.Join(dir, "library.csv"), cov, zap.NewNop())
	if err != nil {
		rt.Fatalf("failed to create library: %v", err)
	}
	return lib
}

func TestProperty_SaveLoad_RoundTrip(t *testing.T) {
	RunWithLibrary(t, func(h *LibraryHarness) {
		added := h.AddBooks(typicalMinBooks, typicalMaxBooks)
		if len(added) == 0 {
			h.T.Skip("no books added")
		}

		if err := h.Lib.Save(); err != nil {
			h.T.Fatalf("failed to save: %v", err)
		}

		second := reopenLibrary(h.T, h.Dir)
		if err := second.Load(); err != nil {
			h.T.Fatalf("failed to load: %v", err)
		}

		if h.Lib.Count() != second.Count() {
			h.T.Fatalf("count mismatch after load: %d vs %d", h.Lib.Count(), second.Count())
		}

		for _, b := range added {
			loaded, err := second.Get(b.ID)
			if err != nil {
				h.T.Fatalf("book %s not found after load", b.ID)
			}
			assertBooksEqual(h.T, b, loaded)
		}
	})
}

func TestProperty_Load_MissingFile(t *testing.T) {
	tempDir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		iterDir := filepath.Join(tempDir, iterDirGen.Draw(rt, "iterDir"))
		if err := os.MkdirAll(iterDir, 0o755); err != nil {
			rt.Fatalf("failed to create iter dir: %v", err)
		}

		lib := reopenLibrary(rt, iterDir)

		if err := lib.Load(); err != nil {
			rt.Fatalf("Load should succeed when no file exists yet, got: %v", err)
		}
		if lib.Count() != 0 {
			rt.Fatalf("expected 0 books without a file, got %d", lib.Count())
		}
	})
}

func TestProperty_Load_EmptyFile(t *testing.T) {
	tempDir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		iterDir := filepath.Join(tempDir, iterDirGen.Draw(rt, "iterDir"))
		if err := os.MkdirAll(iterDir, 0o755); err != nil {
			rt.Fatalf("failed to create iter dir: %v", err)
		}

		if err := os.WriteFile(filepath.Join(iterDir, "library.csv"), []byte(""), 0o644); err != nil {
			rt.Fatalf("failed to write empty file: %v", err)
		}

		lib := reopenLibrary(rt, iterDir)

		if err := lib.Load(); err != nil {
			rt.Fatalf("Load should succeed on an empty file, got: %v", err)
		}
		if lib.Count() != 0 {
			rt.Fatalf("expected 0 books from empty file, got %d", lib.Count())
		}
	})
}

func TestProperty_Load_MalformedCSV(t *testing.T) {
	tempDir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		iterDir := filepath.Join(tempDir, iterDirGen.Draw(rt, "iterDir"))
		if err := os.MkdirAll(iterDir, 0o755); err != nil {
			rt.Fatalf("failed to create iter dir: %v", err)
		}

		malformed := malformedCSVGen().Draw(rt, "malformed")
		if err := os.WriteFile(filepath.Join(iterDir, "library.csv"), []byte(malformed), 0o644); err != nil {
			rt.Fatalf("failed to write malformed file: %v", err)
		}

		lib := reopenLibrary(rt, iterDir)

		requireNoPanic(rt, "Load on malformed CSV", malformed, func() {
			_ = lib.Load()
		})
	})
}

func TestProperty_Load_InvalidCells(t *testing.T) {
	tempDir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		iterDir := filepath.Join(tempDir, iterDirGen.Draw(rt, "iterDir"))
		if err := os.MkdirAll(iterDir, 0o755); err != nil {
			rt.Fatalf("failed to create iter dir: %v", err)
		}

		content := invalidCellsGen().Draw(rt, "content")
		if err := os.WriteFile(filepath.Join(iterDir, "library.csv"), []byte(content), 0o644); err != nil {
			rt.Fatalf("failed to write file: %v", err)
		}

		lib := reopenLibrary(rt, iterDir)

		requireNoPanic(rt, "Load on invalid cells", content, func() {
			if err := lib.Load(); err == nil {
				rt.Fatalf("Load accepted a row it should reject:\n%s", content)
			}
		})

		if lib.Count() != 0 {
			rt.Fatalf("failed load left %d books behind", lib.Count())
		}
	})
}

func TestProperty_Load_AdoptsLegacyRows(t *testing.T) {
	tempDir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		iterDir := filepath.Join(tempDir, iterDirGen.Draw(rt, "iterDir"))
		if err := os.MkdirAll(iterDir, 0o755); err != nil {
			rt.Fatalf("failed to create iter dir: %v", err)
		}

		content := legacyCSVGen().Draw(rt, "content")
		if err := os.WriteFile(filepath.Join(iterDir, "library.csv"), []byte(content), 0o644); err != nil {
			rt.Fatalf("failed to write file: %v", err)
		}

		lib := reopenLibrary(rt, iterDir)

		if err := lib.Load(); err != nil {
			rt.Fatalf("Load rejected a legacy row: %v", err)
		}
		if lib.Count() != 1 {
			rt.Fatalf("expected 1 book, got %d", lib.Count())
		}

		adopted := lib.All()[0]
		if adopted.ID == "" {
			rt.Fatal("legacy row was not assigned an id")
		}
		if adopted.Title != "Legacy Title" {
			rt.Fatalf("expected title 'Legacy Title', got %q", adopted.Title)
		}
	})
}
