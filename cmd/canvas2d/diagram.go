package main

import (
	"fmt"
	"log"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/canvas2d"
)

// diagram is the file form of a book's content:
//
//	[[sheet]]
//	name = "main"
//	style = "dynamic"
//
//	  [[sheet.shape]]
//	  kind = "box"
//	  name = "a"
//	  at = [10, 20]
//	  props = { width = 80, fillColor = "lightyellow" }
type diagram struct {
	Sheets []sheetSpec `toml:"sheet"`
}

type sheetSpec struct {
	Name   string      `toml:"name"`
	Style  string      `toml:"style"`
	Shapes []shapeSpec `toml:"shape"`
}

type shapeSpec struct {
	Kind  string         `toml:"kind"`
	Name  string         `toml:"name"`
	At    []any          `toml:"at"`
	Props map[string]any `toml:"props"`
}

const demoDiagram = `
[[sheet]]
name = "demo"
style = "dynamic"

  [[sheet.shape]]
  kind = "connector"
  name = "ab"
  props = { from = "a", to = "b", lineStyle = "dashed" }

  [[sheet.shape]]
  kind = "box"
  name = "a"
  at = [60, 80]
  props = { width = 160, height = 90, fillColor = "lightyellow" }

  [[sheet.shape]]
  kind = "box"
  name = "b"
  at = [420, 300]
  props = { width = 200, height = 120, fillColor = "lightblue", lineWidth = 2 }

  [[sheet.shape]]
  kind = "label"
  name = "title"
  at = [60, 30]
  props = { text = "canvas2d", font = "18pt Sans-Serif", textDecoration = "underline" }

  [[sheet.shape]]
  kind = "label"
  name = "caption"
  at = [520, 440]
  props = { text = "centred caption", textAlign = "center", color = "steelblue" }

  [[sheet.shape]]
  kind = "line"
  name = "rule"
  at = [60, 520]
  props = { dx = 560, lineColor = "gray" }
`

func loadDiagram(path string) (*diagram, error) {
	var d diagram
	var err error
	if path == "" {
		_, err = decodeDiagram(demoDiagram, &d)
	} else {
		_, err = toml.DecodeFile(path, &d)
	}
	if err != nil {
		return nil, err
	}
	if len(d.Sheets) == 0 {
		return nil, fmt.Errorf("%s: no sheets", path)
	}
	return &d, nil
}

func decodeDiagram(data string, d *diagram) (toml.MetaData, error) {
	return toml.Decode(data, d)
}

// build adds the diagram's sheets and shapes to b. Shapes whose name is
// already taken on their sheet are skipped.
func (d *diagram) build(b *canvas2d.Book, reg *canvas2d.Registry) error {
	for _, ss := range d.Sheets {
		var opts []canvas2d.SheetOption
		if ss.Name != "" {
			opts = append(opts, canvas2d.WithSheetName(ss.Name))
		}
		if ss.Style != "" {
			opts = append(opts, canvas2d.WithSheetStyle(ss.Style))
		}
		s := b.AddSheet(opts...)

		for _, sh := range ss.Shapes {
			props := make(map[string]any, len(sh.Props)+1)
			for k, v := range sh.Props {
				props[k] = v
			}
			if sh.Name != "" {
				props["name"] = sh.Name
			}
			shape, err := reg.Create(sh.Kind, props)
			if err != nil {
				return fmt.Errorf("sheet %q: %w", s.Name(), err)
			}
			if len(sh.At) > 0 {
				left, top, err := coords(sh.At)
				if err != nil {
					return fmt.Errorf("sheet %q: shape %q: %w", s.Name(), sh.Name, err)
				}
				s.At(left, top)
			}
			if _, err := s.Add(shape); err != nil {
				log.Printf("skipped: %v", err)
			}
		}
	}
	return nil
}

// coords reads an "at" pair. TOML keeps integers and floats apart, so
// both go through the number converter.
func coords(at []any) (float64, float64, error) {
	if len(at) != 2 {
		return 0, 0, fmt.Errorf("at needs two coordinates, got %d", len(at))
	}
	var out [2]float64
	for i, v := range at {
		f, err := canvas2d.Number{}.Convert(v)
		if err != nil {
			return 0, 0, err
		}
		out[i] = f.(float64)
	}
	return out[0], out[1], nil
}
