package canvas2d

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/canvas2d/surface"
)

// Config is the file form of the book and surface settings.
//
//	backend = "gg"
//	width = 640
//	height = 480
//	background = "white"
//	shaper = "harfbuzz"
//	log_level = "warn"
//	plugins = ["source", "console"]
//
//	[capabilities]
//	dash = false
//
//	[sheet]
//	name = "main"
//	style = "dynamic"
//	font = "12pt Sans-Serif"
type Config struct {
	Backend    string   `toml:"backend"`
	Width      int      `toml:"width"`
	Height     int      `toml:"height"`
	Background string   `toml:"background"`
	Shaper     string   `toml:"shaper"`
	LogLevel   string   `toml:"log_level"`
	Plugins    []string `toml:"plugins"`

	// Capabilities, when present, replaces the probed capabilities.
	Capabilities *CapabilityConfig `toml:"capabilities"`

	Sheet SheetConfig `toml:"sheet"`
}

// CapabilityConfig lists the native features to use.
type CapabilityConfig struct {
	Dash          bool `toml:"dash"`
	Crisp         bool `toml:"crisp"`
	TextMetrics   bool `toml:"text_metrics"`
	TextPaint     bool `toml:"text_paint"`
	ExtendedState bool `toml:"extended_state"`
}

// SheetConfig holds the initial settings of new sheets.
type SheetConfig struct {
	Name        string  `toml:"name"`
	Style       string  `toml:"style"`
	Font        string  `toml:"font"`
	LineWidth   float64 `toml:"line_width"`
	StrokeStyle string  `toml:"stroke_style"`
	FillStyle   string  `toml:"fill_style"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Backend:    "gg",
		Width:      800,
		Height:     600,
		Background: "white",
		Shaper:     "harfbuzz",
		LogLevel:   "warn",
		Sheet: SheetConfig{
			Name:  DefaultSheetName,
			Style: StyleStatic,
		},
	}
}

// LoadConfig reads a TOML file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrConfiguration, path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrConfiguration, path, err)
	}
	return c, c.Validate()
}

// ParseConfig reads TOML text over DefaultConfig.
func ParseConfig(data string) (Config, error) {
	c := DefaultConfig()
	md, err := toml.Decode(data, &c)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return c, c.Validate()
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	sort.Strings(names)
	return fmt.Errorf("unknown keys: %s", strings.Join(names, ", "))
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks sizes, colours, enumerations and plugin names.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: invalid size %dx%d", ErrConfiguration, c.Width, c.Height)
	}
	if c.Background != "" {
		if _, err := surface.ParseColor(c.Background); err != nil {
			return fmt.Errorf("%w: background: %w", ErrConfiguration, err)
		}
	}
	switch c.Shaper {
	case "", "harfbuzz", "sfnt":
	default:
		return fmt.Errorf("%w: unknown shaper %q", ErrConfiguration, c.Shaper)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Sheet.Style != "" {
		if _, err := sheetStyles.Convert(c.Sheet.Style); err != nil {
			return fmt.Errorf("%w: %w", ErrUnknownStyle, err)
		}
	}
	for _, p := range c.Plugins {
		switch p {
		case "source", "console":
		default:
			return fmt.Errorf("%w: unknown plugin %q", ErrConfiguration, p)
		}
	}
	return nil
}

// Level returns the parsed log level.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log level: %w", ErrConfiguration, err)
	}
	return l, nil
}

// SurfaceOptions returns the surface options the configuration implies.
func (c Config) SurfaceOptions() []surface.Option {
	var opts []surface.Option
	if c.Background != "" {
		opts = append(opts, surface.WithBackground(c.Background))
	}
	if c.Shaper != "" {
		opts = append(opts, surface.WithShaper(c.Shaper))
	}
	if cc := c.Capabilities; cc != nil {
		opts = append(opts, surface.WithCapabilities(surface.Capabilities{
			Dash:          cc.Dash,
			Crisp:         cc.Crisp,
			TextMetrics:   cc.TextMetrics,
			TextPaint:     cc.TextPaint,
			ExtendedState: cc.ExtendedState,
		}))
	}
	return opts
}

// NewNative creates the configured backend.
func (c Config) NewNative(opts ...surface.Option) (surface.Native, error) {
	all := append(c.SurfaceOptions(), opts...)
	if c.Backend == "" {
		return surface.NewNative(c.Width, c.Height, all...)
	}
	return surface.NewNativeByName(c.Backend, c.Width, c.Height, all...)
}

// Host returns a Host creating the configured backend for every id.
func (c Config) Host(opts ...surface.Option) Host {
	return BackendHost(c.Backend, c.Width, c.Height, append(c.SurfaceOptions(), opts...)...)
}

// Options returns the book options the configuration implies.
func (c Config) Options() []BookOption {
	opts := []BookOption{WithSurfaceOptions(c.SurfaceOptions()...)}
	if c.Background != "" {
		opts = append(opts, func(o *bookOptions) { o.background = c.Background })
	}
	for _, p := range c.Plugins {
		switch p {
		case "source":
			opts = append(opts, WithSourcePlugin())
		case "console":
			level, _ := c.Level()
			opts = append(opts, WithConsolePlugin(level))
		}
	}
	return append(opts, WithSheetOptions(c.SheetOptions()...))
}

// SheetOptions returns the sheet options the configuration implies.
func (c Config) SheetOptions() []SheetOption {
	sc := c.Sheet
	st := surface.DefaultState()
	if sc.Font != "" {
		st.Font = sc.Font
	}
	if sc.LineWidth > 0 {
		st.LineWidth = sc.LineWidth
	}
	if sc.StrokeStyle != "" {
		st.StrokeStyle = sc.StrokeStyle
	}
	if sc.FillStyle != "" {
		st.FillStyle = sc.FillStyle
	}
	opts := []SheetOption{WithSheetState(st)}
	if sc.Name != "" {
		opts = append(opts, WithSheetName(sc.Name))
	}
	if sc.Style != "" {
		opts = append(opts, WithSheetStyle(sc.Style))
	}
	return opts
}
