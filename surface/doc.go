// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface normalizes native 2D drawing contexts into one Canvas.
//
// A Native is the smallest drawing context a backend must provide. Some
// natives dash lines, align strokes to the pixel grid, measure or paint
// text on their own; others do not. The Adapter hides the difference:
// it probes a native once, picks a strategy for every missing feature and
// from then on exposes the same Canvas whatever sits underneath.
//
// # Natives
//
//   - GGNative: CPU rendering with github.com/gogpu/gg
//   - GPUNative: gg rendering presented through a GPU texture
//   - Recorder: records calls instead of drawing, for tests and tracing
//
// # Strategies
//
// Dashed lines fall back to a Bresenham rasterizer plotting a 10-on,
// 5-off pixel pattern. Crisp lines are snapped in software: odd line
// widths to pixel centres, even widths to pixel edges. Text uses one of
// three tiers:
//
//   - full: native metrics and native painting
//   - transitional: native painting, metrics from HarfBuzz shaping
//   - glyph: Go font outlines stroked as paths
//
// Line style, crisp lines and text decoration are extended properties
// that natives do not save on their own. The Adapter keeps a parallel
// save/restore stack for them.
//
// # Registry
//
// Backends register by name and priority:
//
//	surface.Register(surface.Backend{Name: "skia", Priority: 50, New: newSkia})
//
//	n, err := surface.NewNativeByName("gg", 800, 600)
//	c := surface.New(n)
//
// Built-in backends are "gpu", "gg" and "record".
package surface
