// Package logging sets up the structured logger shared by the commands.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// ParseLevel maps debug, info, warn and error to slog levels
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%s: invalid log level", level)
	}
}

// nopCloser is returned when logs go to a writer the caller owns.
type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a text logger on stderr, or a JSON logger writing to a rotated
// file when file is set. The returned closer must be called on exit.
func New(stderr io.Writer, level string, file string) (*slog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if file == "" {
		return slog.New(slog.NewTextHandler(stderr, opts)), nopCloser{}, nil
	}

	w := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    16, // MB
		MaxBackups: 3,
		Compress:   true,
	}
	return slog.New(slog.NewJSONHandler(w, opts)), w, nil
}
