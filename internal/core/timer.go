package core

import "time"

// FixedStep decouples the simulation rate from the render frame rate: the
// world ticks at a constant ticks-per-second regardless of how often the
// host loop runs.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	fs := &FixedStep{}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	f.accumulate()
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// PendingSteps drains the accumulator and returns how many ticks are due,
// capped so a long stall cannot trigger an unbounded catch-up burst.
func (f *FixedStep) PendingSteps(max int) int {
	f.accumulate()
	steps := 0
	for f.accumulator >= f.step && steps < max {
		f.accumulator -= f.step
		steps++
	}
	if f.accumulator >= f.step {
		// Too far behind; drop the backlog instead of spiraling.
		f.accumulator = 0
	}
	return steps
}

func (f *FixedStep) accumulate() {
	now := time.Now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
}
