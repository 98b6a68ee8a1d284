package main

import (
	"fmt"
	"os"

	"shelf/internal/library"
)

type ExportCmd struct {
	Out string `short:"o" help:"Destination file (defaults to stdout)" type:"path"`
}

func (cmd *ExportCmd) Run(g *Globals) error {
	books := g.Lib.All()

	if cmd.Out == "" {
		return library.WriteSnapshot(g.Out, books)
	}

	f, err := os.Create(cmd.Out)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", cmd.Out, err)
	}
	defer f.Close()

	if err := library.WriteSnapshot(f, books); err != nil {
		return fmt.Errorf("failed to export library: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to export library: %w", err)
	}

	fmt.Fprintf(g.Out, "Exported %d books to %s\n", len(books), cmd.Out)
	return nil
}
