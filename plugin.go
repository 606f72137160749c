package canvas2d

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Plugin extends a Book. Each book gets its own instance, activated once
// in NewBook before any sheet exists.
type Plugin interface {
	Name() string
	Activate(b *Book) error
}

// SourcePlugin exposes the textual description of the book it is
// attached to and keeps the one of the last rendered frame.
type SourcePlugin struct {
	book     *Book
	rendered string
}

// NewSourcePlugin returns an inactive SourcePlugin.
func NewSourcePlugin() *SourcePlugin { return &SourcePlugin{} }

// Name returns "source".
func (*SourcePlugin) Name() string { return "source" }

// Activate attaches the plugin to b.
func (p *SourcePlugin) Activate(b *Book) error {
	p.book = b
	b.Subscribe(EventRender, func(ev Event) {
		p.rendered = ev.Sheet.ToADL()
	})
	return nil
}

// Source describes the current state of every sheet of the book.
func (p *SourcePlugin) Source() string {
	if p.book == nil {
		return ""
	}
	return p.book.ToADL()
}

// Rendered describes the sheet as of the last frame.
func (p *SourcePlugin) Rendered() string { return p.rendered }

// ConsolePlugin captures the book's log records as text lines, on top of
// whatever handler the book already logs to.
type ConsolePlugin struct {
	level slog.Level

	mu    sync.Mutex
	lines []string
}

// NewConsolePlugin captures records at level and above.
func NewConsolePlugin(level slog.Level) *ConsolePlugin {
	return &ConsolePlugin{level: level}
}

// Name returns "console".
func (*ConsolePlugin) Name() string { return "console" }

// Activate tees the book's logger into the plugin.
func (c *ConsolePlugin) Activate(b *Book) error {
	b.SetLogger(slog.New(teeHandler{
		primary: b.log.Handler(),
		console: consoleHandler{c: c},
	}))
	return nil
}

// Lines returns the captured lines, oldest first.
func (c *ConsolePlugin) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

// Reset drops the captured lines.
func (c *ConsolePlugin) Reset() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}

func (c *ConsolePlugin) append(line string) {
	c.mu.Lock()
	c.lines = append(c.lines, line)
	c.mu.Unlock()
}

// consoleHandler formats records as "LEVEL message key=value ...".
type consoleHandler struct {
	c      *ConsolePlugin
	attrs  []slog.Attr
	prefix string
}

func (h consoleHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= h.c.level }

func (h consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Level.String())
	b.WriteByte(' ')
	b.WriteString(r.Message)
	write := func(a slog.Attr) bool {
		b.WriteByte(' ')
		b.WriteString(h.prefix)
		b.WriteString(a.Key)
		b.WriteByte('=')
		b.WriteString(a.Value.String())
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)
	h.c.append(b.String())
	return nil
}

func (h consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		h.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], a)
	}
	return h
}

func (h consoleHandler) WithGroup(name string) slog.Handler {
	h.prefix += name + "."
	return h
}

// teeHandler sends every record to two handlers.
type teeHandler struct {
	primary, console slog.Handler
}

func (t teeHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return t.primary.Enabled(ctx, l) || t.console.Enabled(ctx, l)
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	if t.primary.Enabled(ctx, r.Level) {
		err = t.primary.Handle(ctx, r.Clone())
	}
	if t.console.Enabled(ctx, r.Level) {
		if cerr := t.console.Handle(ctx, r); err == nil {
			err = cerr
		}
	}
	return err
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return teeHandler{primary: t.primary.WithAttrs(attrs), console: t.console.WithAttrs(attrs)}
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	return teeHandler{primary: t.primary.WithGroup(name), console: t.console.WithGroup(name)}
}
