package core

// Size describes the dimensions of a viewport in pixels.
type Size struct {
	W int
	H int
}

// Key enumerates the logical controls a frontend can report.
type Key int

const (
	KeyForward Key = iota
	KeyBack
	KeyStrafeLeft
	KeyStrafeRight
	KeyTurnLeft
	KeyTurnRight
	KeyShowMap
	KeyQuit
)

var keyNames = [...]string{
	KeyForward:     "forward",
	KeyBack:        "back",
	KeyStrafeLeft:  "strafe-left",
	KeyStrafeRight: "strafe-right",
	KeyTurnLeft:    "turn-left",
	KeyTurnRight:   "turn-right",
	KeyShowMap:     "show-map",
	KeyQuit:        "quit",
}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return "unknown"
	}
	return keyNames[k]
}

// Input is the per-frame input snapshot consumed by movement logic.
type Input interface {
	// Held reports whether the control is currently held down.
	Held(k Key) bool
	// MouseDelta returns the relative pointer motion since the last frame.
	MouseDelta() (dx, dy float64)
}

// InputState is a plain Input implementation frontends can fill in.
type InputState struct {
	Keys   map[Key]bool
	DX, DY float64
}

// NewInputState returns an empty snapshot.
func NewInputState() *InputState {
	return &InputState{Keys: make(map[Key]bool)}
}

// Held implements Input.
func (s *InputState) Held(k Key) bool { return s.Keys[k] }

// MouseDelta implements Input.
func (s *InputState) MouseDelta() (float64, float64) { return s.DX, s.DY }

// Reset clears keys and motion.
func (s *InputState) Reset() {
	clear(s.Keys)
	s.DX, s.DY = 0, 0
}
