// Package app wires flags, logging, the map, the game and the renderer
// together for the frontends.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"rustycast/internal/game"
	"rustycast/internal/maps"
	"rustycast/internal/render"
)

// Session bundles what every frontend builds from its flags.
type Session struct {
	Config   *Config
	Map      *maps.Map
	Game     *game.Game
	Renderer *render.Renderer
	Format   render.PixelFormat
	Log      *zap.Logger
}

// Open validates cfg, loads the map and places the viewer at its spawn.
func Open(cfg *Config, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	format, err := cfg.PixelFormat()
	if err != nil {
		return nil, err
	}
	m, err := maps.Open(cfg.Map, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("open map: %w", err)
	}
	start := game.Viewer{Pos: m.Start.Pos, Facing: m.Start.Facing, Sector: m.Start.Sector}
	g, err := game.New(m.World, start, game.DefaultConfig(), game.WithLogger(log.Named("game")))
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", m.Name, err)
	}
	r := render.New(cfg.RenderConfig(), render.WithLogger(log.Named("render")))

	log.Info("map loaded",
		zap.String("map", m.Name),
		zap.Int("sectors", m.World.Len()),
		zap.Int64("seed", cfg.Seed),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height))
	return &Session{Config: cfg, Map: m, Game: g, Renderer: r, Format: format, Log: log}, nil
}

// NewFrame allocates a frame of the configured size and format.
func (s *Session) NewFrame() (*render.Frame, error) {
	size := s.Config.Size()
	return render.NewFrame(size.W, size.H, s.Format)
}

// Render draws the viewer's current view into f.
func (s *Session) Render(f *render.Frame) (render.Stats, error) {
	return s.Renderer.Render(s.Game.World(), s.Game.Viewer.View(), f)
}
