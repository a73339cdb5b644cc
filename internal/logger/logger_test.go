package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	restore := func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}

	t.Run("silent by default", func(t *testing.T) {
		defer restore()
		var buf bytes.Buffer
		SetOutput(&buf)

		Debug("hidden %d", 1)
		Info("hidden")
		Warn("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("verbose mode prints with level prefix", func(t *testing.T) {
		defer restore()
		var buf bytes.Buffer
		SetOutput(&buf)
		SetVerbose(true)

		Debug("pulled %d issues", 3)
		Info("done")
		Warn("careful")

		out := buf.String()
		assert.Contains(t, out, "[DEBUG] pulled 3 issues\n")
		assert.Contains(t, out, "[INFO] done\n")
		assert.Contains(t, out, "[WARN] careful\n")
	})

	t.Run("IsVerbose tracks setting", func(t *testing.T) {
		defer restore()
		assert.False(t, IsVerbose())
		SetVerbose(true)
		assert.True(t, IsVerbose())
	})
}
