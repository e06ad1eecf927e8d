// Command rustycast-snap renders a single frame of a map without a window
// and writes it as PNG, BMP or TIFF. It prints the frame's xxhash digest so
// renders can be compared across builds.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"rustycast/internal/app"
	"rustycast/internal/render"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	x := flag.Float64("x", 0, "viewer x (defaults to the map spawn)")
	y := flag.Float64("y", 0, "viewer y (defaults to the map spawn)")
	angle := flag.Float64("angle", 0, "facing angle in radians (defaults to the map spawn)")
	look := flag.Float64("look", 0, "horizon shift in pixels")
	out := flag.String("out", "", "output image (.png, .bmp, .tif); empty prints the digest only")
	drawMap := flag.Bool("overhead", false, "draw the overhead map instead of the 3D view")
	zoom := flag.Float64("zoom", 2, "overhead map pixels per world unit")
	var overrides kvList
	flag.Var(&overrides, "set", "renderer parameter override in key=value form (repeatable)")
	flag.Parse()

	log, err := app.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer log.Sync()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	sess, err := app.Open(cfg, log)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}
	for _, kv := range overrides {
		if err := applyOverride(sess.Renderer.Config(), kv); err != nil {
			log.Fatal("bad -set", zap.String("value", kv), zap.Error(err))
		}
	}

	v := &sess.Game.Viewer
	if set["x"] || set["y"] {
		pos := v.Pos
		if set["x"] {
			pos.X = *x
		}
		if set["y"] {
			pos.Y = *y
		}
		sector := sess.Game.World().Locate(pos)
		if sector < 0 {
			log.Fatal("viewer position is outside every sector", zap.Float64("x", pos.X), zap.Float64("y", pos.Y))
		}
		v.Pos, v.Sector = pos, sector
	}
	if set["angle"] {
		v.Facing = *angle
	}
	v.Look = *look

	f, err := sess.NewFrame()
	if err != nil {
		log.Fatal("allocate frame", zap.Error(err))
	}
	start := time.Now()
	if *drawMap {
		render.DrawMap(sess.Game.World(), v.View(), f, *zoom)
	} else {
		stats, err := sess.Render(f)
		if err != nil {
			log.Fatal("render failed", zap.Error(err))
		}
		log.Info("frame rendered",
			zap.Duration("took", time.Since(start)),
			zap.Int("hits", stats.Hits),
			zap.Int("truncated", stats.Truncated),
			zap.Int("empty", stats.Empty))
	}

	if *out != "" {
		if err := write(*out, f); err != nil {
			log.Fatal("write image", zap.String("path", *out), zap.Error(err))
		}
		log.Info("image written", zap.String("path", *out))
	}
	fmt.Printf("%016x\n", f.Digest())
}

func applyOverride(cfg *render.Config, kv string) error {
	key, raw, ok := strings.Cut(kv, "=")
	if !ok {
		return fmt.Errorf("expected key=value")
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return err
	}
	if !cfg.SetFloatParameter(strings.TrimSpace(key), value) {
		return fmt.Errorf("unknown parameter %q", key)
	}
	return nil
}

func write(path string, f *render.Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.Encode(file, f, path); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
