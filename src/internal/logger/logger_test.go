package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, InitLogger(Options{Dir: dir}))

	path := Path()
	assert.Equal(t, dir, filepath.Dir(path))

	Info("converted %d artifacts", 3)
	Debug("debug goes to the file")
	InfoFileOnly("only in %s", "file")
	Warn("collision on %s", "IToken")
	Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "converted 3 artifacts")
	assert.Contains(t, content, "debug goes to the file")
	assert.Contains(t, content, "only in file")
	assert.Contains(t, content, "collision on IToken")
}

func TestLoggingBeforeInit(t *testing.T) {
	Close()
	// Console only; must not panic.
	Info("hello %s", "console")
	Debug("dropped")
	InfoFileOnly("dropped")
	SetVerbose(true)
	Debug("shown")
	SetVerbose(false)
}
