//go:build ebiten

package app

import (
	"fmt"

	"go.uber.org/zap"

	"rustycast/internal/core"
	"rustycast/internal/render"
	"rustycast/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 220

var keyBindings = map[core.Key][]ebiten.Key{
	core.KeyForward:     {ebiten.KeyW, ebiten.KeyArrowUp},
	core.KeyBack:        {ebiten.KeyS, ebiten.KeyArrowDown},
	core.KeyStrafeLeft:  {ebiten.KeyA},
	core.KeyStrafeRight: {ebiten.KeyD},
	core.KeyTurnLeft:    {ebiten.KeyArrowLeft, ebiten.KeyQ},
	core.KeyTurnRight:   {ebiten.KeyArrowRight, ebiten.KeyE},
	core.KeyShowMap:     {ebiten.KeyTab},
	core.KeyQuit:        {ebiten.KeyEscape},
}

// Game adapts a Session to the ebiten.Game interface.
type Game struct {
	s       *Session
	frame   *render.Frame
	painter *render.FramePainter
	overlay *ui.Overlay
	hud     *ui.HUD

	input      *core.InputState
	lastX      int
	lastY      int
	haveCursor bool
	showHUD    bool

	stats render.Stats
	scale int
}

// New constructs a Game for the provided session.
func New(s *Session) (*Game, error) {
	f, err := s.NewFrame()
	if err != nil {
		return nil, err
	}
	size := s.Config.Size()
	w, h := size.W, size.H
	return &Game{
		s:       s,
		frame:   f,
		painter: render.NewFramePainter(w, h),
		overlay: ui.NewOverlay(w, h, s.Config.Scale),
		hud:     ui.NewHUD(s.Renderer.Config(), "Renderer", hudWidth),
		input:   core.NewInputState(),
		scale:   s.Config.Scale,
	}, nil
}

// Update samples input and advances the viewer one tick.
func (g *Game) Update() error {
	g.pollInput()
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
		if g.showHUD {
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		} else {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		}
		g.haveCursor = false
	}
	if g.showHUD {
		// The pointer belongs to the panel; do not turn the view with it.
		g.input.DX, g.input.DY = 0, 0
	}

	if g.s.Game.Step(g.input) {
		g.s.Log.Info("quit requested", zap.Int("ticks", g.s.Game.Ticks))
		return ebiten.Termination
	}
	g.overlay.Update()
	if g.showHUD {
		g.hud.Update(g.viewWidth())
		v := g.s.Game.Viewer
		g.hud.SetStatus(
			fmt.Sprintf("TPS %.0f  FPS %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()),
			fmt.Sprintf("sector %d %s", v.Sector, g.s.Game.World().Sector(v.Sector).Name),
			fmt.Sprintf("pos %.1f, %.1f", v.Pos.X, v.Pos.Y),
			fmt.Sprintf("hits %d  empty %d", g.stats.Hits, g.stats.Empty),
			fmt.Sprintf("truncated %d", g.s.Renderer.TruncatedTotal()),
		)
	}
	return nil
}

func (g *Game) pollInput() {
	for k, keys := range keyBindings {
		held := false
		for _, ek := range keys {
			if ebiten.IsKeyPressed(ek) {
				held = true
				break
			}
		}
		g.input.Keys[k] = held
	}

	x, y := ebiten.CursorPosition()
	if g.haveCursor {
		g.input.DX, g.input.DY = float64(x-g.lastX), float64(y-g.lastY)
	} else {
		g.input.DX, g.input.DY = 0, 0
	}
	g.lastX, g.lastY, g.haveCursor = x, y, true
}

// Draw renders the current view.
func (g *Game) Draw(screen *ebiten.Image) {
	stats, err := g.s.Render(g.frame)
	if err != nil {
		g.s.Log.Error("render failed", zap.Error(err))
		return
	}
	g.stats = stats
	g.painter.Blit(screen, g.frame, g.scale)
	if g.s.Game.ShowMap {
		g.overlay.Draw(screen, g.s.Game.World(), g.s.Game.Viewer.View())
	}
	if g.showHUD {
		g.hud.Draw(screen, g.viewWidth(), g.s.Config.Height*g.scale)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := g.viewWidth()
	if g.showHUD {
		w += g.hud.Width()
	}
	return w, g.s.Config.Height * g.scale
}

func (g *Game) viewWidth() int { return g.s.Config.Width * g.scale }
