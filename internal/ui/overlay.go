//go:build ebiten

package ui

import (
	"rustycast/internal/render"
	"rustycast/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	minZoom = 0.5
	maxZoom = 16
)

// Overlay draws the overhead map over the 3D view while it is shown.
type Overlay struct {
	frame   *render.Frame
	painter *render.FramePainter
	scale   int
	zoom    float64
}

// NewOverlay constructs an overlay covering a w*h view drawn at scale.
func NewOverlay(w, h, scale int) *Overlay {
	f, err := render.NewFrame(w, h, render.FormatRGBA32)
	if err != nil {
		return nil
	}
	return &Overlay{frame: f, painter: render.NewFramePainter(w, h), scale: scale, zoom: 2}
}

// Zoom returns the current map zoom in pixels per world unit.
func (o *Overlay) Zoom() float64 { return o.zoom }

// Update handles the zoom keys.
func (o *Overlay) Update() {
	if o == nil {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		o.zoom = min(o.zoom*2, maxZoom)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		o.zoom = max(o.zoom/2, minZoom)
	}
}

// Draw renders the map of w around v onto screen.
func (o *Overlay) Draw(screen *ebiten.Image, w *world.World, v render.View) {
	if o == nil {
		return
	}
	render.DrawMap(w, v, o.frame, o.zoom)
	o.painter.Blit(screen, o.frame, o.scale)
}
