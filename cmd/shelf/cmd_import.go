package main

import (
	"fmt"
	"os"

	"shelf/internal/library"
)

type ImportCmd struct {
	File string `arg:"" help:"Snapshot file to restore from" type:"existingfile"`
}

func (cmd *ImportCmd) Run(g *Globals) error {
	f, err := os.Open(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", cmd.File, err)
	}
	defer f.Close()

	books, err := library.ReadSnapshot(f)
	if err != nil {
		return err
	}

	if err := g.Lib.ReplaceAll(books); err != nil {
		return fmt.Errorf("failed to import library: %w", err)
	}

	fmt.Fprintf(g.Out, "Imported %d books from %s\n", len(books), cmd.File)
	return nil
}
