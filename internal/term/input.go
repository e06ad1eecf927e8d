package term

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"rustycast/internal/core"
)

// DefaultHold is how long a key counts as held after its last press or
// auto-repeat. Terminals report no key releases.
const DefaultHold = 200 * time.Millisecond

// KeyInput implements core.Input on top of terminal key events.
type KeyInput struct {
	hold    time.Duration
	now     func() time.Time
	pressed map[core.Key]time.Time
	showMap bool
}

// NewKeyInput returns an input that treats a key as held for hold after
// each press.
func NewKeyInput(hold time.Duration) *KeyInput {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &KeyInput{hold: hold, now: time.Now, pressed: make(map[core.Key]time.Time)}
}

// HandleKey records ev and returns the control it maps to.
func (k *KeyInput) HandleKey(ev *tcell.EventKey) (core.Key, bool) {
	key, ok := mapKey(ev)
	if !ok {
		return 0, false
	}
	if key == core.KeyShowMap {
		// Without releases the map can only be toggled.
		k.showMap = !k.showMap
		return key, true
	}
	k.pressed[key] = k.now()
	return key, true
}

// Held implements core.Input.
func (k *KeyInput) Held(key core.Key) bool {
	if key == core.KeyShowMap {
		return k.showMap
	}
	t, ok := k.pressed[key]
	return ok && k.now().Sub(t) <= k.hold
}

// MouseDelta implements core.Input; the terminal frontend has no mouse look.
func (k *KeyInput) MouseDelta() (float64, float64) { return 0, 0 }

func mapKey(ev *tcell.EventKey) (core.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return core.KeyForward, true
	case tcell.KeyDown:
		return core.KeyBack, true
	case tcell.KeyLeft:
		return core.KeyTurnLeft, true
	case tcell.KeyRight:
		return core.KeyTurnRight, true
	case tcell.KeyTab:
		return core.KeyShowMap, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return core.KeyQuit, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return core.KeyForward, true
		case 's', 'S':
			return core.KeyBack, true
		case 'a', 'A':
			return core.KeyStrafeLeft, true
		case 'd', 'D':
			return core.KeyStrafeRight, true
		case 'q', 'Q':
			return core.KeyTurnLeft, true
		case 'e', 'E':
			return core.KeyTurnRight, true
		case 'm', 'M':
			return core.KeyShowMap, true
		case 'x', 'X':
			return core.KeyQuit, true
		}
	}
	return 0, false
}
