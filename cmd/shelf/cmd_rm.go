package main

import "fmt"

type RmCmd struct {
	Book string `arg:"" help:"Book ID, title, or author"`
}

func (cmd *RmCmd) Run(g *Globals) error {
	book, err := findBook(g.Lib, cmd.Book)
	if err != nil {
		if handleFindError(g.Out, err) {
			return nil
		}
		return err
	}

	if err := g.Lib.Remove(book.ID); err != nil {
		return fmt.Errorf("failed to remove book %q: %w", book.Title, err)
	}

	fmt.Fprintf(g.Out, "Removed: %s\n", book.Title)
	return nil
}
