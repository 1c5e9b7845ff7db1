// Package logging builds the zerolog logger used by the ghissues command.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/issues/internal/config"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New creates a logger from cfg writing to stderr, or to a rotated file when
// cfg.File is set. The returned closer releases the file and is a no-op
// otherwise.
func New(cfg config.LoggingConfig) (zerolog.Logger, io.Closer, error) {
	if cfg.File == "" {
		logger, err := NewWithWriter(cfg, os.Stderr)
		return logger, nopCloser{}, err
	}

	dir := filepath.Dir(cfg.File)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			err := errors.Wrap(err, errors.CodeInvalidConfig, "failed to create log directory")
			return zerolog.Nop(), nil, errors.WithContext(err, "dir", dir)
		}
	}

	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize, // MB
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge, // days
		Compress:   cfg.Compress,
	}

	// Rotated files are always written as JSON.
	cfg.Format = FormatJSON
	logger, err := NewWithWriter(cfg, file)
	if err != nil {
		_ = file.Close()
		return zerolog.Nop(), nil, err
	}
	return logger, file, nil
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(cfg config.LoggingConfig, w io.Writer) (zerolog.Logger, error) {
	level := zerolog.WarnLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			err := errors.Wrap(err, errors.CodeInvalidConfig, "invalid log level")
			return zerolog.Nop(), errors.WithContext(err, "level", cfg.Level)
		}
		level = parsed
	}

	out := w
	if cfg.Format == FormatConsole || cfg.Format == "" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: !isTerminal(w)}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "ghissues").
		Logger(), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
