package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
)

const (
	LogEnvVar    = "SFV_LOG_FILE"
	ConfigEnvVar = "SFV_CONFIG"
)

// setupLogger returns a logger that writes plain lines to stderr and, when
// logPath is set, every record as JSON to that file. If the file cannot be
// opened the console logger is returned together with the error.
func setupLogger(stderr io.Writer, level *slog.LevelVar, logPath string) (*slog.Logger, io.Closer, error) {
	console := newConsoleHandler(stderr, level)
	if logPath == "" {
		return slog.New(console), nil, nil
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(console), nil, err
	}

	file := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(fanout{file, console}), f, nil
}

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

func (h fanout) Enabled(ctx context.Context, level slog.Level) bool {
	return slices.ContainsFunc(h, func(x slog.Handler) bool {
		return x.Enabled(ctx, level)
	})
}

// Handle gives the record to every handler, even after one fails, and
// returns their errors joined.
//
//nolint:gocritic // slog.Record is passed by value in the interface
func (h fanout) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, x := range h {
		if x.Enabled(ctx, record.Level) {
			errs = append(errs, x.Handle(ctx, record.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (h fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.each(func(x slog.Handler) slog.Handler { return x.WithAttrs(attrs) })
}

func (h fanout) WithGroup(name string) slog.Handler {
	return h.each(func(x slog.Handler) slog.Handler { return x.WithGroup(name) })
}

func (h fanout) each(f func(slog.Handler) slog.Handler) fanout {
	out := make(fanout, len(h))
	for i, x := range h {
		out[i] = f(x)
	}
	return out
}

// consoleHandler writes one line per record. Errors and warnings get a
// prefix. The value of an error or path attribute follows the message, and
// other attributes are shown as key=value only at debug level.
type consoleHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	level *slog.LevelVar
	group string
	attrs []slog.Attr
}

func newConsoleHandler(w io.Writer, level *slog.LevelVar) *consoleHandler {
	return &consoleHandler{mu: &sync.Mutex{}, w: w, level: level}
}

func (c *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= c.level.Level()
}

//nolint:gocritic // slog.Record is passed by value in the interface
func (c *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	var b strings.Builder
	switch {
	case record.Level >= slog.LevelError:
		b.WriteString("Error: ")
	case record.Level >= slog.LevelWarn:
		b.WriteString("Warning: ")
	}
	b.WriteString(record.Message)

	debug := c.level.Level() <= slog.LevelDebug
	for _, a := range c.attrs {
		writeAttr(&b, a, debug)
	}
	record.Attrs(func(a slog.Attr) bool {
		a.Key = c.group + a.Key
		writeAttr(&b, a, debug)
		return true
	})
	b.WriteByte('\n')

	// batch workers log concurrently
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := io.WriteString(c.w, b.String())
	return err
}

func writeAttr(b *strings.Builder, a slog.Attr, debug bool) {
	switch a.Key[strings.LastIndexByte(a.Key, '.')+1:] {
	case "error", "err":
		fmt.Fprintf(b, ": %v", a.Value)
	case "path":
		fmt.Fprintf(b, " %v", a.Value)
	default:
		if debug {
			fmt.Fprintf(b, " %s=%v", a.Key, a.Value)
		}
	}
}

func (c *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *c
	next.attrs = slices.Clone(c.attrs)
	for _, a := range attrs {
		a.Key = c.group + a.Key
		next.attrs = append(next.attrs, a)
	}
	return &next
}

// WithGroup qualifies the keys of later attributes with name.
func (c *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return c
	}
	next := *c
	next.group = c.group + name + "."
	return &next
}
