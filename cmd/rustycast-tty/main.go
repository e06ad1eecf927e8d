// Command rustycast-tty plays a map in the terminal using half-block cells.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"rustycast/internal/app"
	"rustycast/internal/term"
)

func main() {
	cfg := app.NewConfig()
	cfg.TPS = 30
	// The screen owns stderr's terminal while running; only report failures.
	cfg.LogLevel = "error"
	cfg.Bind(flag.CommandLine)
	hold := flag.Duration("hold", term.DefaultHold, "how long a key counts as held after each key event")
	flag.Parse()

	log, err := app.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer log.Sync()

	if err := run(cfg, log, *hold); err != nil {
		log.Fatal("rustycast-tty failed", zap.Error(err))
	}
}

func run(cfg *app.Config, log *zap.Logger, hold time.Duration) error {
	sess, err := app.Open(cfg, log)
	if err != nil {
		return err
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return term.Run(ctx, screen, sess, hold)
}
