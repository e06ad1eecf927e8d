// Package ui draws the ebiten overlays: the overhead map and the tuning
// panel. Without the ebiten build tag only no-op stand-ins are compiled.
package ui

import (
	"fmt"
	"math"
	"strconv"

	"rustycast/internal/core"
)

// Tunable is anything the HUD can list and adjust, such as render.Config.
type Tunable interface {
	core.ParameterControlsProvider
	core.FloatParameterSource
	core.FloatParameterSetter
}

// adjusted returns the value one step away from v, clamped, and whether it
// differs from v.
func adjusted(ctrl core.ParameterControl, v float64, direction int) (float64, bool) {
	step := ctrl.Step
	switch {
	case ctrl.Type == core.ParamTypeInt:
		step = math.Max(1, math.Round(step))
	case step <= 0:
		step = 0.05
	}
	target := ctrl.Clamp(v + float64(direction)*step)
	if ctrl.Type == core.ParamTypeInt {
		target = math.Round(target)
	}
	return target, math.Abs(target-v) >= 1e-9
}

func formatValue(ctrl core.ParameterControl, value float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(value)))
	}
	switch {
	case ctrl.Step < 0.01:
		return strconv.FormatFloat(value, 'f', 3, 64)
	case ctrl.Step < 1:
		return strconv.FormatFloat(value, 'f', 2, 64)
	default:
		return fmt.Sprintf("%.0f", value)
	}
}
