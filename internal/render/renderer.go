// Package render turns a world and a viewer snapshot into a first-person
// frame, one screen column at a time, and draws the overhead map.
package render

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rustycast/internal/world"
	"rustycast/pkg/geom"
)

// ErrBadSector is returned when the view's sector is not part of the world.
var ErrBadSector = errors.New("view sector out of range")

// View is the viewer snapshot a frame is rendered from.
type View struct {
	Pos    geom.Vec2
	Facing float64
	// Look shifts the horizon vertically, in pixels.
	Look   float64
	Sector int
}

// Stats summarises one Render call.
type Stats struct {
	Columns int
	Hits    int
	// Truncated counts rays cut short by the traversal budget.
	Truncated int
	// Empty counts columns whose ray met no wall at all.
	Empty int
}

func (s *Stats) add(o Stats) {
	s.Columns += o.Columns
	s.Hits += o.Hits
	s.Truncated += o.Truncated
	s.Empty += o.Empty
}

// Renderer is the column renderer. It keeps no per-frame state, so a single
// Renderer may be reused for every frame.
type Renderer struct {
	cfg Config
	log *zap.Logger

	truncatedTotal atomic.Int64
}

// Option customises a Renderer.
type Option func(*Renderer)

// WithLogger routes diagnostics to l.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// New returns a Renderer using cfg.
func New(cfg Config, opts ...Option) *Renderer {
	r := &Renderer{cfg: cfg.normalized(), log: zap.NewNop()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Config returns a pointer to the live configuration so the HUD can tune
// it between frames.
func (r *Renderer) Config() *Config { return &r.cfg }

// TruncatedTotal returns how many rays have hit the traversal budget over
// the renderer's lifetime.
func (r *Renderer) TruncatedTotal() int64 { return r.truncatedTotal.Load() }

// Render paints the view into f. It owns f until it returns.
func (r *Renderer) Render(w *world.World, v View, f *Frame) (Stats, error) {
	if !w.Valid(v.Sector) {
		return Stats{}, fmt.Errorf("sector %d of %d: %w", v.Sector, w.Len(), ErrBadSector)
	}
	cfg := r.cfg.normalized()

	var stats Stats
	workers := cfg.Workers
	if workers > f.W {
		workers = f.W
	}
	if workers <= 1 {
		stats = r.columns(&cfg, w, v, f, 0, f.W)
	} else {
		band := (f.W + workers - 1) / workers
		parts := make([]Stats, workers)
		var g errgroup.Group
		for i := 0; i < workers; i++ {
			x0, x1 := i*band, min((i+1)*band, f.W)
			if x0 >= x1 {
				break
			}
			g.Go(func() error {
				parts[i] = r.columns(&cfg, w, v, f, x0, x1)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return stats, err
		}
		for _, p := range parts {
			stats.add(p)
		}
	}

	if stats.Truncated > 0 {
		r.truncatedTotal.Add(int64(stats.Truncated))
		r.log.Debug("ray traversal budget exhausted",
			zap.Int("rays", stats.Truncated),
			zap.Int("sector", v.Sector),
			zap.Float64("x", v.Pos.X),
			zap.Float64("y", v.Pos.Y),
			zap.Int("max_hops", cfg.Limits.MaxHops))
	}
	return stats, nil
}

// columns renders columns [x0, x1).
func (r *Renderer) columns(cfg *Config, w *world.World, v View, f *Frame, x0, x1 int) Stats {
	var st Stats
	hits := make([]world.Hit, 0, 16)
	eyeZ := w.Elevation(v.Sector) + cfg.EyeHeight
	half := float64(f.W) / 2
	for x := x0; x < x1; x++ {
		offset := (float64(x) - half) / cfg.FOVScale
		angle := v.Facing + offset

		var truncated bool
		hits, truncated = w.AppendRay(hits[:0], v.Sector, v.Pos, angle, cfg.Limits)

		col := column{
			cfg:     cfg,
			f:       f,
			x:       x,
			bottom:  f.H,
			horizon: float64(f.H)/2 + v.Look,
			eyeZ:    eyeZ,
			cosOff:  math.Cos(offset),
			pos:     v.Pos,
			dir:     world.Direction(angle),
		}
		col.draw(hits)

		st.Columns++
		st.Hits += len(hits)
		if truncated {
			st.Truncated++
		}
		if len(hits) == 0 {
			st.Empty++
		}
	}
	return st
}

// column carries the per-column projection state. [top, bottom) is the
// occlusion band: rows not yet painted.
type column struct {
	cfg *Config
	f   *Frame
	x   int

	top, bottom int

	horizon float64
	eyeZ    float64
	cosOff  float64
	pos     geom.Vec2
	dir     geom.Vec2
}

// screenY projects elevation e at corrected distance dist.
func (c *column) screenY(e, dist float64) float64 {
	return c.horizon + c.cfg.VisplaneDist*(c.eyeZ-e)/dist
}

// row converts a projected y to the first pixel row at or below it,
// clamped to the occlusion band.
func (c *column) row(y float64) int {
	if math.IsNaN(y) {
		return c.top
	}
	if y <= float64(c.top) {
		return c.top
	}
	if y >= float64(c.bottom) {
		return c.bottom
	}
	return int(math.Ceil(y))
}

func (c *column) draw(hits []world.Hit) {
	if len(hits) == 0 {
		fillBackground(c.f, c.x, 0, c.f.H, c.horizon)
		return
	}

	for _, h := range hits {
		dist := h.Dist * c.cosOff
		if dist < c.cfg.MinDist {
			dist = c.cfg.MinDist
		}
		yCeil := c.screenY(h.In.Ceiling, dist)
		yFloor := c.screenY(h.In.Floor, dist)

		// Flats of the sector the ray crossed to reach this wall.
		if end := c.row(yCeil); end > c.top {
			c.flat(surfaceCeiling, h.In.Ceiling, c.top, end)
			c.top = end
		}
		if start := c.row(yFloor); start < c.bottom {
			c.flat(surfaceFloor, h.In.Floor, start, c.bottom)
			c.bottom = start
		}
		if c.top >= c.bottom {
			return
		}

		if !h.Portal {
			c.wall(surfaceWall, h, dist, c.top, c.bottom)
			c.top = c.bottom
			return
		}
		if h.Out.Ceiling < h.In.Ceiling {
			end := c.row(c.screenY(h.Out.Ceiling, dist))
			c.wall(surfaceUpper, h, dist, c.top, end)
			c.top = end
		}
		if h.Out.Floor > h.In.Floor {
			start := c.row(c.screenY(h.Out.Floor, dist))
			c.wall(surfaceLower, h, dist, start, c.bottom)
			c.bottom = start
		}
		if c.top >= c.bottom {
			return
		}
	}

	// Whatever lies past the last hit is out of range.
	fillBackground(c.f, c.x, c.top, c.bottom, c.horizon)
	c.top = c.bottom
}

// wall paints rows [y0, y1) of a wall face at corrected distance dist.
func (c *column) wall(s surface, h world.Hit, dist float64, y0, y1 int) {
	b := brightness(c.cfg.ShadeK, dist)
	k := dist / c.cfg.VisplaneDist
	for y := y0; y < y1; y++ {
		e := c.eyeZ - (float64(y)+0.5-c.horizon)*k
		c.f.Set(c.x, y, shadeTexel(s, xorTexel(h.Along, e, c.cfg.TexScale), b))
	}
}

// flat paints rows [y0, y1) of a floor or ceiling at elevation e by
// inverting the projection for each row.
func (c *column) flat(s surface, e float64, y0, y1 int) {
	dz := c.eyeZ - e
	for y := y0; y < y1; y++ {
		dy := float64(y) + 0.5 - c.horizon
		dist := c.cfg.VisplaneDist * dz / dy
		if dy == 0 || dist <= 0 || math.IsInf(dist, 0) {
			fillBackground(c.f, c.x, y, y+1, c.horizon)
			continue
		}
		p := c.pos.Add(c.dir.Scale(dist / c.cosOff))
		texel := xorTexel(p.X, p.Y, c.cfg.TexScale)
		c.f.Set(c.x, y, shadeTexel(s, texel, brightness(c.cfg.ShadeK, dist)))
	}
}
