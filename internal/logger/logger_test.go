package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lingualearn/internal/logger"
)

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	l.Info("hidden")
	l.Warn("shown %d", 1)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WARN  ")
	assert.Contains(t, buf.String(), "shown 1")
}

func TestLogger_TextPrefixAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.WithOutput(&buf), logger.WithColors(false)).
		WithPrefix("progress_service").
		WithFields(map[string]any{"learner": "ana", "lesson": "es-lesson-1"})

	l.Info("lesson completed")

	line := buf.String()
	assert.Contains(t, line, "[progress_service]")
	assert.True(t, strings.HasSuffix(line, "lesson completed learner=ana lesson=es-lesson-1\n"), line)
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.FormatJSON)).WithField("learner", "ana")

	l.Error("store failed: %s", "disk full")

	var entry logger.Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "store failed: disk full", entry.Message)
	assert.Equal(t, "ana", entry.Fields["learner"])
	assert.NotEmpty(t, entry.Caller)
}

func TestLogger_Context(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.WithOutput(&buf), logger.WithColors(false))
	ctx := logger.NewContext(context.Background(), l)

	logger.FromContext(ctx).Info("from context")
	assert.Contains(t, buf.String(), "from context")
	assert.Equal(t, logger.Default(), logger.FromContext(context.Background()))
}

func TestParse(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("warning"))
	assert.Equal(t, logger.INFO, logger.ParseLevel("bogus"))
	assert.Equal(t, logger.FormatJSON, logger.ParseFormat("JSON"))
	assert.Equal(t, logger.FormatText, logger.ParseFormat(""))
}
