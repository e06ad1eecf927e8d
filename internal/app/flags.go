package app

import (
	"errors"
	"flag"
	"fmt"

	"rustycast/internal/core"
	"rustycast/internal/render"
)

// Config represents the command-line parameters shared by every frontend.
type Config struct {
	Map    string
	Seed   int64
	Width  int
	Height int
	Scale  int
	TPS    int

	// FOVScale and Visplane override the width-scaled defaults when > 0.
	FOVScale float64
	Visplane float64
	Eye      float64
	Workers  int

	LogLevel string
	Format   string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Map:      "demo",
		Seed:     42,
		Width:    render.ReferenceWidth,
		Height:   240,
		Scale:    3,
		TPS:      60,
		Eye:      render.DefaultConfig().EyeHeight,
		Workers:  1,
		LogLevel: "info",
		Format:   render.FormatRGBA32.Name,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Map, "map", c.Map, "built-in map name or path to a .yaml/.json map")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for generated maps")
	fs.IntVar(&c.Width, "width", c.Width, "viewport width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "viewport height in pixels")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Float64Var(&c.FOVScale, "fov-scale", c.FOVScale, "screen columns per radian (0 scales with width)")
	fs.Float64Var(&c.Visplane, "visplane", c.Visplane, "projection plane distance in pixels (0 scales with width)")
	fs.Float64Var(&c.Eye, "eye", c.Eye, "eye height above the floor")
	fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines rendering column bands")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.Format, "format", c.Format, "frame pixel format: rgb24, rgba32, argb32, bgra32")
}

// Validate reports flag values no frontend can run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport %dx%d must be positive", c.Width, c.Height))
	}
	if c.Scale < 1 {
		errs = append(errs, fmt.Errorf("scale %d must be at least 1", c.Scale))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps %d must be positive", c.TPS))
	}
	if _, err := render.ParsePixelFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Size returns the viewport size.
func (c *Config) Size() core.Size { return core.Size{W: c.Width, H: c.Height} }

// PixelFormat resolves the -format flag.
func (c *Config) PixelFormat() (render.PixelFormat, error) {
	return render.ParsePixelFormat(c.Format)
}

// RenderConfig derives the renderer constants for the configured viewport.
func (c *Config) RenderConfig() render.Config {
	rc := render.DefaultConfig().ScaledTo(c.Width)
	if c.FOVScale > 0 {
		rc.FOVScale = c.FOVScale
	}
	if c.Visplane > 0 {
		rc.VisplaneDist = c.Visplane
	}
	if c.Eye > 0 {
		rc.EyeHeight = c.Eye
	}
	rc.Workers = c.Workers
	return rc
}
