//go:build !ebiten

package ui

import (
	"rustycast/internal/render"
	"rustycast/internal/world"
)

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(int, int, int) *Overlay { return &Overlay{} }

// Zoom reports the default zoom.
func (o *Overlay) Zoom() float64 { return 2 }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any, *world.World, render.View) {}
