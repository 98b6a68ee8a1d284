package library

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const snapshotVersion = 1

// snapshotFile is the portable export format. The durable store stays CSV;
// snapshots exist for backups and moving a collection between machines.
// Cover references are carried as-is, the image files are not bundled.
type snapshotFile struct {
	Version int    `yaml:"version"`
	Books   []Book `yaml:"books"`
}

// WriteSnapshot encodes books as a versioned YAML document.
func WriteSnapshot(w io.Writer, books []Book) error {
	file := snapshotFile{
		Version: snapshotVersion,
		Books:   books,
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}

// ReadSnapshot decodes a snapshot produced by WriteSnapshot.
func ReadSnapshot(r io.Reader) ([]Book, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var file snapshotFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if file.Version > snapshotVersion {
		return nil, fmt.Errorf("snapshot version %d is newer than supported version %d", file.Version, snapshotVersion)
	}

	return file.Books, nil
}
