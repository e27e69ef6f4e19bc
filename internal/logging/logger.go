package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dvdenrich/internal/config"
)

// Options describes logger construction parameters.
//
// Records below WARN go to Writer, the rest to ErrorWriter; nil writers fall
// back to stdout and stderr. When File is set every record is also appended to
// that file in the same format, without colour.
type Options struct {
	Level       string
	Format      string
	Writer      io.Writer
	ErrorWriter io.Writer
	File        string
}

// New constructs a slog logger using the provided options. A log file opened
// here stays open for the life of the process.
func New(opts Options) (*slog.Logger, error) {
	level := parseLevel(opts.Level)
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)
	addSource := level <= slog.LevelDebug

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}
	newHandler, err := handlerFor(format)
	if err != nil {
		return nil, err
	}

	out := opts.Writer
	if out == nil {
		out = os.Stdout
	}
	errOut := opts.ErrorWriter
	if errOut == nil {
		errOut = os.Stderr
	}

	var handler slog.Handler = &splitHandler{
		out: newHandler(out, levelVar, addSource),
		err: newHandler(errOut, levelVar, addSource),
	}
	if path := strings.TrimSpace(opts.File); path != "" {
		file, err := openLogFile(path)
		if err != nil {
			return nil, err
		}
		handler = &teeHandler{handlers: []slog.Handler{handler, newHandler(file, levelVar, addSource)}}
	}
	return slog.New(handler), nil
}

// NewFromConfig creates a logger from the [logging] section of cfg. Progress
// records go to out and warnings or errors to errOut; nil writers fall back to
// stdout and stderr.
func NewFromConfig(cfg *config.Config, out, errOut io.Writer) (*slog.Logger, error) {
	opts := Options{Level: "info", Format: "console", Writer: out, ErrorWriter: errOut}
	if cfg != nil {
		opts.Level = cfg.Logging.Level
		opts.Format = cfg.Logging.Format
		opts.File = cfg.Logging.File
	}
	return New(opts)
}

type handlerFactory func(io.Writer, *slog.LevelVar, bool) slog.Handler

func handlerFor(format string) (handlerFactory, error) {
	switch format {
	case "json":
		return newJSONHandler, nil
	case "console":
		return newPrettyHandler, nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", format)
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory %s: %w", dir, err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}
