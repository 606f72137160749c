// Command canvas2d renders a diagram description to PNG.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/canvas2d"
	"github.com/gogpu/canvas2d/surface"
)

type pngSaver interface {
	SavePNG(path string) error
}

type options struct {
	configPath  string
	diagramPath string
	output      string
	backend     string
	adl         bool
	trace       bool
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "TOML configuration file")
	flag.StringVar(&o.diagramPath, "diagram", "", "TOML diagram file (built-in demo if empty)")
	flag.StringVar(&o.output, "output", "diagram.png", "output file")
	flag.StringVar(&o.backend, "backend", "", "surface backend, overrides the configuration")
	flag.BoolVar(&o.adl, "adl", false, "print the textual description of every sheet")
	flag.BoolVar(&o.trace, "trace", false, "record instead of drawing and print the native calls")
	verbose := flag.Bool("v", false, "debug logging to stderr")
	flag.Parse()

	if *verbose {
		canvas2d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(o, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(o options, stdout io.Writer) error {
	cfg := canvas2d.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = canvas2d.LoadConfig(o.configPath); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if o.backend != "" {
		cfg.Backend = o.backend
	}
	if o.trace {
		cfg.Backend = "record"
	}

	d, err := loadDiagram(o.diagramPath)
	if err != nil {
		return fmt.Errorf("load diagram: %w", err)
	}

	native, err := cfg.NewNative()
	if err != nil {
		return fmt.Errorf("create %q surface: %w", cfg.Backend, err)
	}
	book, err := canvas2d.NewBook(native, cfg.Options()...)
	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	defer func() { _ = book.Close() }()

	if err := d.build(book, canvas2d.NewRegistry()); err != nil {
		return fmt.Errorf("build diagram: %w", err)
	}
	if o.adl {
		fmt.Fprintln(stdout, book.ToADL())
	}

	sheets := book.Sheets()
	for i, s := range sheets {
		if err := book.SetCurrentSheet(s); err != nil {
			return err
		}
		book.Render()

		switch n := native.(type) {
		case *surface.Recorder:
			for _, c := range n.Commands() {
				fmt.Fprintln(stdout, c)
			}
			n.Reset()
		case pngSaver:
			path := o.output
			if len(sheets) > 1 {
				path = sheetPath(path, i, s.Name())
			}
			if err := n.SavePNG(path); err != nil {
				return fmt.Errorf("save sheet %s: %w", s.Name(), err)
			}
			log.Printf("Sheet %s saved to %s (%dx%d)\n", s.Name(), path, cfg.Width, cfg.Height)
		}
	}
	return nil
}

// sheetPath derives one file name per sheet: out.png becomes out-1-name.png.
func sheetPath(path string, i int, name string) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d-%s%s", strings.TrimSuffix(path, ext), i+1, name, ext)
}
