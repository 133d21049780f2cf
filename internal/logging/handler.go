package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// A line-oriented slog handler for daemon output.
//
// Records render as "HH:MM:SS LEVEL message key=value ...". The
// minimum level lives in a shared variable, so raising or lowering it
// affects every logger derived from the handler.
type Handler struct {
	mu     *sync.Mutex // Serializes writes to the stream.
	w      io.Writer
	level  *slog.LevelVar
	colors map[slog.Level]*color.Color
	prefix string // Group qualifier for attribute keys.
	attrs  string // Preformatted attributes from WithAttrs.
}

// Creates a handler writing to the given stream.
//
// The initial minimum level is warning. Level tags are colorized only
// when the stream is an interactive terminal.
func NewHandler(w io.Writer) *Handler {
	h := &Handler{
		mu:     &sync.Mutex{},
		w:      w,
		level:  &slog.LevelVar{},
		colors: levelColors(isTerminal(w)),
	}
	h.level.Set(slog.LevelWarn)
	return h
}

// Swaps the minimum level for this handler and all its derivatives.
func (h *Handler) SetLevel(level slog.Level) {
	h.level.Set(level)
}

// Reports whether a record at the given level would be emitted.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Renders one record and writes it to the stream.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	if !r.Time.IsZero() {
		b.WriteString(r.Time.Format("15:04:05"))
		b.WriteByte(' ')
	}
	b.WriteString(h.levelTag(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)
	b.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, h.prefix, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

// Returns a handler that includes the given attributes in every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		appendAttr(&b, h.prefix, a)
	}
	h2.attrs = b.String()
	return &h2
}

// Returns a handler that qualifies subsequent attribute keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	if h.prefix != "" {
		h2.prefix = h.prefix + "." + name
	} else {
		h2.prefix = name
	}
	return &h2
}

// Renders the level tag, colorized when the stream allows it.
func (h *Handler) levelTag(level slog.Level) string {
	if c, ok := h.colors[level]; ok {
		return c.Sprint(level.String())
	}
	return level.String()
}

// Appends one attribute as " key=value", quoting values that would not
// survive a naive split on spaces.
func appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}

	b.WriteByte(' ')
	if prefix != "" {
		b.WriteString(prefix)
		b.WriteByte('.')
	}
	b.WriteString(a.Key)
	b.WriteByte('=')

	v := fmt.Sprint(a.Value.Resolve().Any())
	if needsQuoting(v) {
		v = strconv.Quote(v)
	}
	b.WriteString(v)
}

// Whether a rendered value needs quoting to stay one shell-safe token.
func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r <= ' ' || r == '"' || r == 0x7f {
			return true
		}
	}
	return false
}

// Builds the per-level color table.
//
// Color decisions are pinned per handler rather than left to the
// package-global autodetection, which keys off stdout rather than the
// handler's stream.
func levelColors(enabled bool) map[slog.Level]*color.Color {
	colors := map[slog.Level]*color.Color{
		slog.LevelDebug: color.New(color.FgMagenta),
		slog.LevelInfo:  color.New(color.FgGreen),
		slog.LevelWarn:  color.New(color.FgYellow),
		slog.LevelError: color.New(color.FgRed),
	}
	for _, c := range colors {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return colors
}

// Whether the given stream is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
