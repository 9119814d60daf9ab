package poll

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// FailureGate rate-limits how often poll failures are surfaced to the
// user. Failures are always logged by the caller; the gate only decides
// whether this one also deserves a notification, so a dead backend does
// not toast on every tick.
type FailureGate struct {
	clock      clockwork.Clock
	window     time.Duration
	lastShown  time.Time
	suppressed int
}

// NewFailureGate creates a gate that lets one failure through per window.
func NewFailureGate(clock clockwork.Clock, window time.Duration) *FailureGate {
	return &FailureGate{clock: clock, window: window}
}

// Allow reports whether a failure happening now should be surfaced.
func (g *FailureGate) Allow() bool {
	now := g.clock.Now()
	if g.lastShown.IsZero() || now.Sub(g.lastShown) >= g.window {
		g.lastShown = now
		g.suppressed = 0
		return true
	}
	g.suppressed++
	return false
}

// Reset clears the gate after a successful poll so the next outage is
// reported promptly.
func (g *FailureGate) Reset() {
	g.lastShown = time.Time{}
	g.suppressed = 0
}

// Suppressed returns how many failures were swallowed since the last one
// shown.
func (g *FailureGate) Suppressed() int {
	return g.suppressed
}
