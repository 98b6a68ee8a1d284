package main

import (
	"io"

	"go.uber.org/zap"

	"shelf/cmd/shelf/render"
	"shelf/internal/covers"
	"shelf/internal/library"
)

type Globals struct {
	Lib         library.Library
	Covers      *covers.Store
	Out         io.Writer
	Render      render.Renderer
	Log         *zap.Logger
	DefaultSort string
}
