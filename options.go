package canvas2d

import (
	"log/slog"

	"github.com/gogpu/canvas2d/surface"
)

// BookOption configures a Book.
type BookOption func(*bookOptions)

type bookOptions struct {
	name       string
	logger     *slog.Logger
	surface    []surface.Option
	background string
	plugins    []func() Plugin
	sheet      []SheetOption
}

// defaultOptions returns the default book options.
func defaultOptions() bookOptions {
	return bookOptions{}
}

// WithName sets the book name, usually the id of the surface it draws on.
func WithName(name string) BookOption {
	return func(o *bookOptions) {
		o.name = name
	}
}

// WithLogger sets the logger the book and its sheets write to. Without
// it the book derives its logger from Logger at creation.
func WithLogger(l *slog.Logger) BookOption {
	return func(o *bookOptions) {
		o.logger = l
	}
}

// WithSurfaceOptions passes options to the surface adapter.
//
// Example:
//
//	b, err := canvas2d.NewBook(native, canvas2d.WithSurfaceOptions(
//	    surface.WithShaper("sfnt"),
//	))
func WithSurfaceOptions(opts ...surface.Option) BookOption {
	return func(o *bookOptions) {
		o.surface = append(o.surface, opts...)
	}
}

// WithBackground fills the surface with c before every frame. The same
// colour paints the gaps of software-dashed lines.
func WithBackground(c string) BookOption {
	return func(o *bookOptions) {
		o.background = c
		o.surface = append(o.surface, surface.WithBackground(c))
	}
}

// WithCapabilities overrides the probed capabilities of the native.
// Capabilities the native lacks stay disabled.
func WithCapabilities(c surface.Capabilities) BookOption {
	return WithSurfaceOptions(surface.WithCapabilities(c))
}

// WithShaper selects the text measurer for natives without text
// metrics: "harfbuzz" (default) or "sfnt".
func WithShaper(name string) BookOption {
	return WithSurfaceOptions(surface.WithShaper(name))
}

// WithPlugin adds a plugin. newPlugin is called once per book, so one
// option can be shared by every book of a Manager.
func WithPlugin(newPlugin func() Plugin) BookOption {
	return func(o *bookOptions) {
		o.plugins = append(o.plugins, newPlugin)
	}
}

// WithSourcePlugin adds a SourcePlugin.
func WithSourcePlugin() BookOption {
	return WithPlugin(func() Plugin { return NewSourcePlugin() })
}

// WithConsolePlugin adds a ConsolePlugin capturing records at level and
// above.
func WithConsolePlugin(level slog.Level) BookOption {
	return WithPlugin(func() Plugin { return NewConsolePlugin(level) })
}

// WithSheetOptions applies opts to every sheet the book creates, ahead
// of the options given to AddSheet.
func WithSheetOptions(opts ...SheetOption) BookOption {
	return func(o *bookOptions) {
		o.sheet = append(o.sheet, opts...)
	}
}
