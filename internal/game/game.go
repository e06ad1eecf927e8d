// Package game owns the viewer and advances it one fixed step at a time
// from a core.Input snapshot.
package game

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"rustycast/internal/core"
	"rustycast/internal/render"
	"rustycast/internal/world"
	"rustycast/pkg/geom"
)

// ErrBadStart is returned when the viewer does not start inside its sector.
var ErrBadStart = errors.New("viewer is not inside its sector")

// Config holds the movement constants. Speed and Turn are per step.
type Config struct {
	Speed     float64
	Turn      float64
	MouseSens float64
	LookSens  float64
	// MaxLook bounds the horizon shift in pixels either way.
	MaxLook float64
	// StepHeight is the highest floor rise the viewer can walk up.
	StepHeight float64
	// Headroom is the smallest floor-to-ceiling gap the viewer fits in.
	Headroom float64
}

// DefaultConfig returns the movement constants of the demo.
func DefaultConfig() Config {
	return Config{
		Speed:      0.4,
		Turn:       0.03,
		MouseSens:  1.0 / 1000,
		LookSens:   0.5,
		MaxLook:    100,
		StepHeight: 5,
		Headroom:   12,
	}
}

// Viewer is the camera: a position, a facing angle, a vertical look offset
// and the sector containing the position.
type Viewer struct {
	Pos    geom.Vec2
	Facing float64
	Look   float64
	Sector int
}

// View returns the snapshot the renderer draws from.
func (v Viewer) View() render.View {
	return render.View{Pos: v.Pos, Facing: v.Facing, Look: v.Look, Sector: v.Sector}
}

// Game is the mutable per-session state.
type Game struct {
	cfg   Config
	world *world.World
	log   *zap.Logger

	Viewer  Viewer
	ShowMap bool
	// Ticks counts calls to Step.
	Ticks int
}

// Option customises a Game.
type Option func(*Game)

// WithLogger routes sector changes to l at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

// New places v in w. The viewer must lie inside its sector.
func New(w *world.World, v Viewer, cfg Config, opts ...Option) (*Game, error) {
	if !w.Valid(v.Sector) || !w.Contains(v.Sector, v.Pos) {
		return nil, fmt.Errorf("sector %d at (%g, %g): %w", v.Sector, v.Pos.X, v.Pos.Y, ErrBadStart)
	}
	g := &Game{cfg: cfg, world: w, log: zap.NewNop(), Viewer: v}
	for _, o := range opts {
		o(g)
	}
	return g, nil
}

// World returns the world the viewer moves through.
func (g *Game) World() *world.World { return g.world }

// Config returns the movement constants.
func (g *Game) Config() Config { return g.cfg }

// Step applies one tick of input. It reports whether the player asked to
// quit.
func (g *Game) Step(in core.Input) (quit bool) {
	g.Ticks++
	if in.Held(core.KeyQuit) {
		return true
	}
	g.ShowMap = in.Held(core.KeyShowMap)

	v := &g.Viewer
	dx, dy := in.MouseDelta()
	v.Facing += dx * g.cfg.MouseSens
	if in.Held(core.KeyTurnLeft) {
		v.Facing -= g.cfg.Turn
	}
	if in.Held(core.KeyTurnRight) {
		v.Facing += g.cfg.Turn
	}
	v.Facing = math.Remainder(v.Facing, 2*math.Pi)
	v.Look = clamp(v.Look-dy*g.cfg.LookSens, -g.cfg.MaxLook, g.cfg.MaxLook)

	var para, perp float64
	if in.Held(core.KeyForward) {
		para++
	}
	if in.Held(core.KeyBack) {
		para--
	}
	if in.Held(core.KeyStrafeLeft) {
		perp--
	}
	if in.Held(core.KeyStrafeRight) {
		perp++
	}
	if para != 0 || perp != 0 {
		sin, cos := math.Sincos(v.Facing)
		motion := geom.V(sin*para+cos*perp, -cos*para+sin*perp).Scale(g.cfg.Speed)
		g.move(v.Pos.Add(motion))
	}
	return false
}

// move commits the step to to unless a solid wall, a tall step or a low
// ceiling is in the way.
func (g *Game) move(to geom.Vec2) bool {
	v := &g.Viewer
	if g.world.Blocked(v.Sector, v.Pos, to) {
		return false
	}
	next := g.world.MoveObject(v.Sector, v.Pos, to)
	if next != v.Sector {
		from, into := g.world.Info(v.Sector), g.world.Info(next)
		if into.Floor-from.Floor > g.cfg.StepHeight {
			return false
		}
		if into.Ceiling-into.Floor < g.cfg.Headroom {
			return false
		}
	}
	if !g.world.Contains(next, to) {
		return false
	}
	if next != v.Sector {
		g.log.Debug("entered sector",
			zap.Int("from", v.Sector),
			zap.Int("to", next),
			zap.String("name", g.world.Sector(next).Name))
	}
	v.Pos, v.Sector = to, next
	return true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
