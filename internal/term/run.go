package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"rustycast/internal/app"
	"rustycast/internal/core"
	"rustycast/internal/render"
)

// Run drives sess on screen until the player quits or ctx ends. The
// caller owns screen and must have initialised it; Run does not call Fini.
func Run(ctx context.Context, screen tcell.Screen, sess *app.Session, hold time.Duration) error {
	in := NewKeyInput(hold)
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	screen.HideCursor()
	frame, err := resize(screen, sess)
	if err != nil {
		return err
	}

	pace := core.NewFixedStep(sess.Config.TPS)
	timer := time.NewTimer(0)
	defer timer.Stop()
	frames := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				in.HandleKey(ev)
			case *tcell.EventResize:
				screen.Sync()
				if frame, err = resize(screen, sess); err != nil {
					return err
				}
			}
		case <-timer.C:
			if pace.ShouldStep() {
				if sess.Game.Step(in) {
					sess.Log.Info("quit requested", zap.Int("ticks", sess.Game.Ticks), zap.Int("frames", frames))
					return nil
				}
				if err := draw(screen, sess, frame); err != nil {
					return err
				}
				frames++
			}
			timer.Reset(max(pace.Remaining(), time.Millisecond))
		}
	}
}

// resize matches the viewport to the terminal and returns a fresh frame.
func resize(screen tcell.Screen, sess *app.Session) (*render.Frame, error) {
	cols, rows := screen.Size()
	sess.Config.Width, sess.Config.Height = FrameSize(cols, rows)
	rc := sess.Config.RenderConfig()
	// Keep anything tuned at runtime that is not tied to the width.
	cur := sess.Renderer.Config()
	rc.ShadeK, rc.TexScale, rc.Limits = cur.ShadeK, cur.TexScale, cur.Limits
	*cur = rc
	sess.Log.Debug("viewport resized", zap.Int("cols", cols), zap.Int("rows", rows))
	return sess.NewFrame()
}

func draw(screen tcell.Screen, sess *app.Session, f *render.Frame) error {
	g := sess.Game
	v := g.Viewer
	if g.ShowMap {
		render.DrawMap(g.World(), v.View(), f, 1)
	} else if _, err := sess.Render(f); err != nil {
		return err
	}
	Present(screen, f)
	_, rows := screen.Size()
	if rows > 1 {
		Status(screen, rows-1, fmt.Sprintf(" %s  sector %s  (%.1f, %.1f)  wasd/arrows move  m map  esc quit",
			sess.Map.Name, g.World().Sector(v.Sector).Name, v.Pos.X, v.Pos.Y))
	}
	screen.Show()
	return nil
}
