package render

import (
	"rustycast/internal/core"
	"rustycast/internal/world"
)

// ReferenceWidth is the viewport width the default projection constants
// are tuned for.
const ReferenceWidth = 320

// Config holds the projection and shading constants of the renderer.
type Config struct {
	// FOVScale is the number of screen columns per radian of view angle.
	FOVScale float64
	// VisplaneDist is the distance, in pixels, to the projection plane.
	VisplaneDist float64
	// EyeHeight is the viewer's eye height above the floor of its sector.
	EyeHeight float64
	// ShadeK sets the inverse-distance falloff: brightness = ShadeK/dist.
	ShadeK float64
	// MinDist clamps corrected distances to avoid dividing by zero.
	MinDist float64
	// TexScale is the number of texel steps per world unit.
	TexScale float64

	Limits world.Limits

	// Workers > 1 renders column bands concurrently.
	Workers int
}

// DefaultConfig returns the constants tuned for a 320 pixel wide viewport.
func DefaultConfig() Config {
	return Config{
		FOVScale:     300,
		VisplaneDist: 300,
		EyeHeight:    10,
		ShadeK:       40,
		MinDist:      0.01,
		TexScale:     4,
		Limits:       world.DefaultLimits(),
		Workers:      1,
	}
}

// ScaledTo returns c with its pixel-based constants scaled for a viewport
// of the given width, keeping the same field of view.
func (c Config) ScaledTo(width int) Config {
	if width <= 0 {
		return c
	}
	k := float64(width) / ReferenceWidth
	c.FOVScale *= k
	c.VisplaneDist *= k
	return c
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.FOVScale <= 0 {
		c.FOVScale = d.FOVScale
	}
	if c.VisplaneDist <= 0 {
		c.VisplaneDist = d.VisplaneDist
	}
	if c.MinDist <= 0 {
		c.MinDist = d.MinDist
	}
	if c.TexScale <= 0 {
		c.TexScale = d.TexScale
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	return c
}

// ParameterControls lists the constants the HUD may tune at runtime.
func (c *Config) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "fov_scale", Label: "FOV scale", Type: core.ParamTypeFloat, Step: 10, Min: 50, Max: 2000, HasMin: true, HasMax: true},
		{Key: "visplane_dist", Label: "Visplane", Type: core.ParamTypeFloat, Step: 10, Min: 50, Max: 2000, HasMin: true, HasMax: true},
		{Key: "eye_height", Label: "Eye height", Type: core.ParamTypeFloat, Step: 1, Min: 1, Max: 100, HasMin: true, HasMax: true},
		{Key: "shade_k", Label: "Shade", Type: core.ParamTypeFloat, Step: 5, Min: 1, HasMin: true},
		{Key: "workers", Label: "Workers", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 64, HasMin: true, HasMax: true},
	}
}

// FloatParameter reads a tunable by key.
func (c *Config) FloatParameter(key string) (float64, bool) {
	switch key {
	case "fov_scale":
		return c.FOVScale, true
	case "visplane_dist":
		return c.VisplaneDist, true
	case "eye_height":
		return c.EyeHeight, true
	case "shade_k":
		return c.ShadeK, true
	case "workers":
		return float64(c.Workers), true
	}
	return 0, false
}

// SetFloatParameter updates a tunable by key, clamped to its control's
// bounds. It reports false for unknown keys.
func (c *Config) SetFloatParameter(key string, value float64) bool {
	for _, ctl := range c.ParameterControls() {
		if ctl.Key == key {
			value = ctl.Clamp(value)
			break
		}
	}
	switch key {
	case "fov_scale":
		c.FOVScale = value
	case "visplane_dist":
		c.VisplaneDist = value
	case "eye_height":
		c.EyeHeight = value
	case "shade_k":
		c.ShadeK = value
	case "workers":
		c.Workers = int(value)
	default:
		return false
	}
	return true
}
