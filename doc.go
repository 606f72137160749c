// Package canvas2d draws diagrams of named shapes on any 2D surface.
//
// # Overview
//
// A Book owns one drawing surface, normalized by package surface so that
// dashed lines, crisp lines and text behave the same on every backend.
// A Book holds Sheets; a Sheet holds Shapes, each bound to a Position.
// Rendering paints the current sheet's shapes in insertion order, with
// shapes that depend on others (connectors) painted last.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/canvas2d"
//	    "github.com/gogpu/canvas2d/surface"
//	)
//
//	native, _ := surface.NewGGNative(400, 300)
//	book, _ := canvas2d.NewBook(native, canvas2d.WithBackground("white"))
//	sheet := book.AddSheet(canvas2d.WithSheetName("main"))
//
//	reg := canvas2d.NewRegistry()
//	box, _ := reg.Create("box", map[string]any{"name": "a", "width": 80})
//	sheet.At(10, 20).Put(box)
//
//	book.Start()
//	native.SavePNG("diagram.png")
//
// # Shape kinds
//
// Kinds are registered in a Registry under a name, optional aliases and
// the libraries they belong to. Properties are declared with a
// Converter that normalizes raw values; bad values are either replaced
// by the default or rejected, depending on the converter. The built-in
// kinds are rectangle (box), text (label), line and connector (link).
//
// # Interaction
//
// HandleInput turns raw mouse and touch events into pointer events.
// Sheets in "dynamic" style select the topmost shape under a press and
// move it with the drags that follow.
//
// # Logging
//
// canvas2d is silent by default. SetLogger enables logging for canvas2d
// and package surface alike.
package canvas2d
