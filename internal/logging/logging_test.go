package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{in: "", want: zapcore.InfoLevel},
		{in: "debug", want: zapcore.DebugLevel},
		{in: "  WARN ", want: zapcore.WarnLevel},
		{in: "error", want: zapcore.ErrorLevel},
		{in: "chatty", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_WritesConsoleLinesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ankibridge.log")

	logger, cleanup, err := New(Options{Level: "debug", File: path})
	require.NoError(t, err)
	logger.Named("bridge").Info("dispatch", zap.String("action", "getDecks"))
	logger.Debug("verbose")
	cleanup()
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "\tINFO\t")
	assert.Contains(t, lines[0], "bridge")
	assert.Contains(t, lines[0], `{"action": "getDecks"}`)
}

func TestNew_JSONFormatRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ankibridge.log")

	logger, cleanup, err := New(Options{Level: "warn", Format: "json", File: path})
	require.NoError(t, err)
	logger.Info("dropped")
	logger.Warn("kept", zap.Int("failures", 2))
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := strings.TrimSpace(string(data))
	assert.NotContains(t, text, "dropped")
	assert.True(t, strings.HasPrefix(text, "{"), "want JSON line, got %q", text)
	assert.Contains(t, text, `"msg":"kept"`)
	assert.Contains(t, text, `"failures":2`)
}

func TestNew_NoSinksReturnsNop(t *testing.T) {
	logger, cleanup, err := New(Options{})
	require.NoError(t, err)
	defer cleanup()
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	_, _, err := New(Options{Format: "xml", Stderr: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}
