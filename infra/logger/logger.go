package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	corelogger "github.com/kilianp07/studiodesk/core/logger"
)

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// Options configures the process-wide log output.
type Options struct {
	// Level is a zerolog level name such as "debug" or "info".
	Level string
	// Format is "json" or "console". Empty selects console when APP_ENV=dev.
	Format string
	// File, when set, also writes JSON lines to a rotated file.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var (
	mu     sync.RWMutex
	output io.Writer = defaultWriter("")
)

// Logs go to stderr; stdout carries command results.
func defaultWriter(format string) io.Writer {
	if format == "" && strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		format = "console"
	}
	if format == "console" {
		return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return os.Stderr
}

// Configure applies opts to every logger created afterwards. The returned
// closer releases the rotated log file, if any.
func Configure(opts Options) (io.Closer, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		lvl, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = lvl
	}
	zerolog.SetGlobalLevel(level)

	w := defaultWriter(opts.Format)
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if dir := filepath.Dir(opts.File); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
		}
		w = zerolog.MultiLevelWriter(w, lj)
		closer = lj
	}
	mu.Lock()
	output = w
	mu.Unlock()
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a Logger tagging every entry with the component name.
func New(component string) Logger {
	mu.RLock()
	w := output
	mu.RUnlock()
	return NewWithWriter(component, w)
}

// NewWithWriter returns a JSON Logger writing to w.
func NewWithWriter(component string, w io.Writer) Logger {
	z := zerolog.New(w).With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{log: z}
}

// NopLogger discards everything.
type NopLogger = corelogger.Nop
