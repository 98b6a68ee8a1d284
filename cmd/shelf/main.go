package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"shelf/cmd/shelf/render"
	"shelf/internal/config"
	"shelf/internal/covers"
	"shelf/internal/library"
	"shelf/internal/logging"
)

type CLI struct {
	Add    AddCmd    `cmd:"" aliases:"a" help:"Add a book to the library"`
	List   ListCmd   `cmd:"" aliases:"ls" help:"List books in the library"`
	Search SearchCmd `cmd:"" aliases:"s" help:"Search books by title or author"`
	Show   ShowCmd   `cmd:"" help:"Show book details"`
	Edit   EditCmd   `cmd:"" aliases:"e" help:"Edit book fields"`
	Rm     RmCmd     `cmd:"" help:"Remove a book and its cover"`
	Stats  StatsCmd  `cmd:"" help:"Show collection statistics"`
	Export ExportCmd `cmd:"" help:"Export the library to a YAML snapshot"`
	Import ImportCmd `cmd:"" help:"Restore the library from a YAML snapshot"`

	Data     string `name:"data" short:"d" help:"Path to the library file"`
	Covers   string `help:"Path to the cover image directory"`
	LogLevel string `help:"Log level (debug, info, warn, error)"`
}

func (c *CLI) AfterApply(ctx *kong.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.Data != "" {
		cfg.Data.File = c.Data
	}
	if c.Covers != "" {
		cfg.Data.CoversDir = c.Covers
	}
	if c.LogLevel != "" {
		cfg.Logging.Level = c.LogLevel
	}

	log, err := logging.New(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}

	cov, err := covers.NewStore(cfg.Data.CoversDir)
	if err != nil {
		return fmt.Errorf("failed to create cover store: %w", err)
	}

	lib, err := library.NewCSVLibrary(cfg.Data.File, cov, log)
	if err != nil {
		return fmt.Errorf("failed to create library: %w", err)
	}
	if err := lib.Load(); err != nil {
		return fmt.Errorf("failed to load library: %w", err)
	}

	globals := &Globals{
		Lib:         lib,
		Covers:      cov,
		Out:         os.Stdout,
		Render:      render.NewLipglossRendererAuto(os.Stdout),
		Log:         log,
		DefaultSort: cfg.UI.DefaultSort,
	}
	ctx.Bind(globals)
	return nil
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("shelf"),
		kong.Description("Personal book library manager"),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
