package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/internal/logging"
)

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"DEBUG", log.DebugLevel},
		{"", log.InfoLevel},
		{"loud", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logging.New(tt.level).GetLevel())
		})
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]logging.Kind{
		"":        logging.KindPretty,
		"pretty":  logging.KindPretty,
		"compact": logging.KindCompact,
		"JSON":    logging.KindJSON,
	} {
		got, err := logging.ParseKind(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := logging.ParseKind("xml")
	assert.ErrorContains(t, err, "invalid log kind")
}

func TestNewWithOptions_Kinds(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithOptions(logging.Options{Level: "debug", Kind: logging.KindJSON, Writer: &buf})
	logger.Debug("processing files", logging.FieldFiles, 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "processing files", record["msg"])
	assert.EqualValues(t, 3, record[logging.FieldFiles])

	buf.Reset()
	logger = logging.NewWithOptions(logging.Options{Kind: logging.KindCompact, Writer: &buf})
	logger.Info("wrote file", logging.FieldPath, "a.js")
	assert.Contains(t, buf.String(), "path=a.js")

	buf.Reset()
	logger = logging.NewWithOptions(logging.Options{Level: "error", Writer: &buf})
	logger.Warn("hidden")
	assert.Empty(t, buf.String())
}

func TestNewInteractive(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewInteractive(&buf)
	assert.Equal(t, log.InfoLevel, logger.GetLevel())

	logger.Info("created configuration file")
	assert.True(t, strings.Contains(buf.String(), "gobiome"), buf.String())
}

func TestContext(t *testing.T) {
	t.Parallel()

	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))

	var buf bytes.Buffer
	logger := logging.NewWithOptions(logging.Options{Kind: logging.KindCompact, Writer: &buf})
	ctx := logging.WithLogger(context.Background(), logger)
	assert.Same(t, logger, logging.FromContext(ctx))

	ctx = logging.WithFields(ctx, logging.FieldPath, "src/a.js")
	logging.FromContext(ctx).Info("processed", logging.FieldLanguage, "javascript")
	assert.Contains(t, buf.String(), "path=src/a.js")
	assert.Contains(t, buf.String(), "language=javascript")
}
