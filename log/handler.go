package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the terminal styles of a consoleHandler.
type palette struct {
	faint lipgloss.Style
	err   lipgloss.Style
	level [5]lipgloss.Style // trace, debug, info, warn, error
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)
	p := &palette{
		faint: r.NewStyle().Faint(true),
		err:   r.NewStyle().Foreground(lipgloss.Color("1")),
	}

	for i, c := range []string{"8", "4", "2", "3", "1"} {
		p.level[i] = r.NewStyle().Bold(true).Foreground(lipgloss.Color(c))
	}

	return p
}

func (p *palette) levelStyle(l slog.Level) lipgloss.Style {
	switch {
	case l < slog.LevelDebug:
		return p.level[0]
	case l < slog.LevelInfo:
		return p.level[1]
	case l < slog.LevelWarn:
		return p.level[2]
	case l < slog.LevelError:
		return p.level[3]
	default:
		return p.level[4]
	}
}

// consoleHandler writes one human-readable line per record:
//
//	TIME LEVEL source message key=value ...
//
// Styles are dropped when the output is not a colour terminal.
type consoleHandler struct {
	opts    *slog.HandlerOptions
	palette *palette
	mu      *sync.Mutex
	w       io.Writer
	attrs   string // preformatted attributes from WithAttrs
	prefix  string // group prefix, e.g. "build."
}

func newConsoleHandler(w io.Writer, opts *slog.HandlerOptions) *consoleHandler {
	return &consoleHandler{
		opts:    opts,
		palette: newPalette(w),
		mu:      &sync.Mutex{},
		w:       w,
	}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		if s, ok := h.builtin(slog.Time(slog.TimeKey, r.Time)); ok {
			buf.WriteString(h.palette.faint.Render(s))
			buf.WriteByte(' ')
		}
	}

	if s, ok := h.builtin(slog.Any(slog.LevelKey, r.Level)); ok {
		buf.WriteString(h.palette.levelStyle(r.Level).Render(fmt.Sprintf("%-5s", s)))
		buf.WriteByte(' ')
	}

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			buf.WriteString(h.palette.faint.Render(src.File + ":" + strconv.Itoa(src.Line)))
			buf.WriteByte(' ')
		}
	}

	buf.WriteString(r.Message)
	buf.WriteString(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var buf bytes.Buffer
	for _, a := range attrs {
		h.writeAttr(&buf, h.prefix, a)
	}

	c := *h
	c.attrs += buf.String()

	return &c
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix += name + "."

	return &c
}

// builtin applies ReplaceAttr to one of the record's built-in attributes and
// returns its text, or false if it was removed.
func (h *consoleHandler) builtin(a slog.Attr) (string, bool) {
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	if a.Key == "" {
		return "", false
	}

	return a.Value.Resolve().String(), true
}

func (h *consoleHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, g := range a.Value.Group() {
			h.writeAttr(buf, prefix, g)
		}

		return
	}

	value := quote(a.Value.String())
	if _, ok := a.Value.Any().(error); ok {
		value = h.palette.err.Render(value)
	}

	buf.WriteByte(' ')
	buf.WriteString(h.palette.faint.Render(prefix + a.Key + "="))
	buf.WriteString(value)
}

// quote quotes s if it is empty or contains spaces, quotes, or '='.
func quote(s string) string {
	if s == "" || strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '"' || r == '=' || !unicode.IsPrint(r)
	}) >= 0 {
		return strconv.Quote(s)
	}

	return s
}

// indentHandler writes each record as indented JSON. It formats records with
// a [slog.JSONHandler] into a shared buffer and re-indents them.
type indentHandler struct {
	slog.Handler

	mu  *sync.Mutex
	buf *bytes.Buffer
	w   io.Writer
}

func newIndentHandler(w io.Writer, opts *slog.HandlerOptions) *indentHandler {
	buf := &bytes.Buffer{}

	return &indentHandler{
		Handler: slog.NewJSONHandler(buf, opts),
		mu:      &sync.Mutex{},
		buf:     buf,
		w:       w,
	}
}

func (h *indentHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf.Reset()

	if err := h.Handler.Handle(ctx, r); err != nil {
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(h.buf.Bytes()), "", "  "); err != nil {
		return err
	}

	out.WriteByte('\n')

	_, err := h.w.Write(out.Bytes())

	return err
}

func (h *indentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.Handler = h.Handler.WithAttrs(attrs)

	return &c
}

func (h *indentHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.Handler = h.Handler.WithGroup(name)

	return &c
}
