package core

import "time"

// FixedStep paces a frontend loop at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. Non-positive rates fall back to 60.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the duration of one tick.
func (f *FixedStep) Step() time.Duration { return f.step }

// ShouldStep reports whether the loop should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		// Drop backlog instead of running a burst of catch-up ticks.
		if f.accumulator > f.step {
			f.accumulator = f.step
		}
		return true
	}
	return false
}

// Remaining returns how long until the next tick is due.
func (f *FixedStep) Remaining() time.Duration {
	if f.last.IsZero() {
		return 0
	}
	due := f.step - f.accumulator - f.now().Sub(f.last)
	if due < 0 {
		return 0
	}
	return due
}
