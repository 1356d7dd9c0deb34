package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Logger provides optional verbose logging and lightweight timing helpers.
// The zero value discards everything.
type Logger struct {
	Verbose bool
	log     *slog.Logger
}

func New(writer io.Writer, verbose bool) Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level})
	return Logger{Verbose: verbose, log: slog.New(handler)}
}

// With returns a copy of the logger that attaches the given attributes to every record.
func (l Logger) With(args ...any) Logger {
	if l.log == nil {
		return l
	}
	return Logger{Verbose: l.Verbose, log: l.log.With(args...)}
}

func (l Logger) Infof(format string, args ...any) {
	if l.log == nil {
		return
	}
	l.log.Info(fmt.Sprintf(format, args...))
}

func (l Logger) Warnf(format string, args ...any) {
	if l.log == nil {
		return
	}
	l.log.Warn(fmt.Sprintf(format, args...))
}

func (l Logger) Verbosef(format string, args ...any) {
	if !l.Verbose || l.log == nil {
		return
	}
	l.log.Log(context.Background(), slog.LevelDebug, fmt.Sprintf(format, args...))
}

// Measure returns a stop function that logs the elapsed time when called.
func (l Logger) Measure(label string) func() {
	if !l.Verbose {
		return func() {}
	}
	start := time.Now()
	return func() {
		elapsed := time.Since(start).Round(time.Millisecond)
		l.Verbosef("%s took %s", label, elapsed)
	}
}
