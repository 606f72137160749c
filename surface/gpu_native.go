// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gpucontext"
)

// GPUNative draws on a ggcanvas.Canvas and presents it through a GPU
// texture. Drawing happens on the CPU exactly as with GGNative; every
// paint marks the canvas dirty so the next Present uploads it.
//
// GPUNative is NOT safe for concurrent use.
type GPUNative struct {
	*GGNative
	canvas *ggcanvas.Canvas
}

// NewGPUNative creates a GPU-presented native of the given size.
// The provider typically comes from the host application's GPU context.
func NewGPUNative(provider gpucontext.DeviceProvider, width, height int) (*GPUNative, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	c, err := ggcanvas.New(provider, width, height)
	if err != nil {
		return nil, err
	}
	return &GPUNative{
		GGNative: NewGGNativeFromContext(c.Context()),
		canvas:   c,
	}, nil
}

// Canvas returns the underlying GPU canvas.
func (g *GPUNative) Canvas() *ggcanvas.Canvas { return g.canvas }

// Dirty reports whether content was drawn since the last Present.
func (g *GPUNative) Dirty() bool { return g.canvas.IsDirty() }

// Present uploads pending content and draws it to dc.
func (g *GPUNative) Present(dc gpucontext.TextureDrawer) error {
	return g.canvas.RenderTo(dc)
}

// Close releases the GPU resources.
func (g *GPUNative) Close() error {
	return g.canvas.Close()
}

func (g *GPUNative) Fill() {
	g.GGNative.Fill()
	g.canvas.MarkDirty()
}

func (g *GPUNative) Stroke() {
	g.GGNative.Stroke()
	g.canvas.MarkDirty()
}

func (g *GPUNative) FillRect(x, y, w, h float64) {
	g.GGNative.FillRect(x, y, w, h)
	g.canvas.MarkDirty()
}

func (g *GPUNative) StrokeRect(x, y, w, h float64) {
	g.GGNative.StrokeRect(x, y, w, h)
	g.canvas.MarkDirty()
}

func (g *GPUNative) ClearRect(x, y, w, h float64) {
	g.GGNative.ClearRect(x, y, w, h)
	g.canvas.MarkDirty()
}

func (g *GPUNative) FillText(s string, x, y float64) {
	g.GGNative.FillText(s, x, y)
	g.canvas.MarkDirty()
}

func (g *GPUNative) StrokeText(s string, x, y float64) {
	g.GGNative.StrokeText(s, x, y)
	g.canvas.MarkDirty()
}
