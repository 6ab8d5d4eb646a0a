package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewStderr(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(&buf, "warn", "")
	require.NoError(t, err)
	assert.IsType(t, nopCloser{}, closer)
	defer func() { assert.NoError(t, closer.Close()) }()

	logger.Info("hidden")
	logger.Warn("shown", "altitude_ft", 200)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "altitude_ft=200")
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bombsight.log")
	logger, closer, err := New(nil, "debug", path)
	require.NoError(t, err)

	logger.Debug("planned drop", "bearing", 127.3)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &rec))
	assert.Equal(t, "planned drop", rec["msg"])
	assert.Equal(t, 127.3, rec["bearing"])
}

func TestNewBadLevel(t *testing.T) {
	_, _, err := New(nil, "chatty", "")
	assert.Error(t, err)
}
