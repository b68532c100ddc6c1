package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format values accepted by Options.Format.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options controls where log output goes and how it is encoded.
type Options struct {
	Level  string
	Format string
	// File receives all log output when set. Parent directories are created.
	File string
	// Stderr mirrors log output to standard error. Standard output is never
	// used because the stdio host protocol owns it.
	Stderr bool
}

// New builds a zap logger from opts. The returned cleanup flushes buffered
// entries and closes the log file; it is safe to call more than once.
func New(opts Options) (*zap.Logger, func(), error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	encoder, err := newEncoder(opts.Format)
	if err != nil {
		return nil, nil, err
	}

	var (
		cores   []zapcore.Core
		closers []func()
	)
	if path := strings.TrimSpace(opts.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		sink, closeFile, err := zap.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		closers = append(closers, closeFile)
		cores = append(cores, zapcore.NewCore(encoder, sink, level))
	}
	if opts.Stderr {
		cores = append(cores, zapcore.NewCore(encoder.Clone(), zapcore.Lock(os.Stderr), level))
	}
	if len(cores) == 0 {
		return zap.NewNop(), func() {}, nil
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.ErrorOutput(zapcore.Lock(os.Stderr)))
	var closed bool
	cleanup := func() {
		if closed {
			return
		}
		closed = true
		_ = logger.Sync()
		for _, c := range closers {
			c()
		}
	}
	return logger, cleanup, nil
}

// ParseLevel maps a config string to a zap level. Empty means info.
func ParseLevel(text string) (zapcore.Level, error) {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	if trimmed == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(trimmed)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("parse log level %q: %w", text, err)
	}
	return level, nil
}

func newEncoder(format string) (zapcore.Encoder, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatConsole:
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewConsoleEncoder(cfg), nil
	case FormatJSON:
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(cfg), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
