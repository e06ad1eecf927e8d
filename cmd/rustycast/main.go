//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"rustycast/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	log, err := app.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer log.Sync()

	sess, err := app.Open(cfg, log)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}
	game, err := app.New(sess)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}

	ebiten.SetWindowTitle("rustycast: " + sess.Map.Name)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal("game loop failed", zap.Error(err))
	}
}
