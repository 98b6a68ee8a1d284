package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shelf/internal/logging"
)

func TestNew(t *testing.T) {
	t.Run("writes JSON lines to the given file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "logs", "shelf.log")

		log, err := logging.New(file, "info")
		require.NoError(t, err)

		log.Info("book added", zap.String("title", "Dune"))
		require.NoError(t, log.Sync())

		data, err := os.ReadFile(file)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"book added"`)
		assert.Contains(t, string(data), `"title":"Dune"`)
	})

	t.Run("falls back to info for unknown levels", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "shelf.log")

		log, err := logging.New(file, "chatty")
		require.NoError(t, err)

		log.Debug("hidden")
		log.Info("visible")
		require.NoError(t, log.Sync())

		data, err := os.ReadFile(file)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "hidden")
		assert.Contains(t, string(data), "visible")
	})

	t.Run("honors the debug level", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "shelf.log")

		log, err := logging.New(file, "debug")
		require.NoError(t, err)

		log.Debug("now visible")
		require.NoError(t, log.Sync())

		data, err := os.ReadFile(file)
		require.NoError(t, err)
		assert.Contains(t, string(data), "now visible")
	})
}
