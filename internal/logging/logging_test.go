package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, zerolog.Disabled, ParseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typeahead.log")

	logger, cleanup, err := New(Config{Level: "info", File: path, Format: "json"})
	require.NoError(t, err)
	logger.Info().Str("query", "towel").Msg("search requested")
	logger.Debug().Msg("hidden")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"query":"towel"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNewFailsOnBadPath(t *testing.T) {
	_, cleanup, err := New(Config{File: filepath.Join(t.TempDir(), "missing", "x.log")})
	defer cleanup()
	assert.Error(t, err)
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithContext(context.Background(), zerolog.New(&buf))
	ctx = WithComponent(ctx, "widget")

	FromContext(ctx).Info().Msg("hello")
	assert.Contains(t, buf.String(), `"component":"widget"`)
}

func TestFromContextWithoutLogger(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	logger.Info().Msg("dropped")
}
