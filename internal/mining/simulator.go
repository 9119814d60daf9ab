// Package mining contains the progress simulation shown while a mine
// request is outstanding. The real operation has unpredictable latency, so
// the panel fabricates progress locally, capped below completion, and
// reconciles with the real result when it arrives.
package mining

import (
	"math/rand/v2"
	"time"

	"github.com/jonboulle/clockwork"
)

// TickInterval is the cadence of simulated progress increments.
const TickInterval = 500 * time.Millisecond

// ResetDelay is how long the completed bar stays visible before the panel
// returns to idle.
const ResetDelay = 2 * time.Second

// simCap is the ceiling simulated progress may reach on its own; only the
// real result moves the bar to 100.
const simCap = 90

const maxLogEntries = 5

// LogEntry is one timestamped line of the mining log.
type LogEntry struct {
	Time    time.Time
	Message string
}

// Simulator fabricates mining progress for a single panel. At most one
// simulation runs per panel; a second start while running is rejected.
type Simulator struct {
	clock   clockwork.Clock
	randFn  func() float64
	running bool
	percent float64
	logs    []LogEntry
}

// NewSimulator creates an idle simulator.
func NewSimulator(clock clockwork.Clock) *Simulator {
	return &Simulator{
		clock:  clock,
		randFn: rand.Float64,
	}
}

// Start begins a new simulation at 0%, clearing the previous log. It
// returns false if a simulation is already running.
func (s *Simulator) Start() bool {
	if s.running {
		return false
	}
	s.running = true
	s.percent = 0
	s.logs = nil
	s.Log("Starting mining process...")
	return true
}

// Advance applies one simulated increment. Progress never exceeds the cap
// on its own; the bar sits there until the real result arrives.
func (s *Simulator) Advance() {
	if !s.running {
		return
	}
	s.percent += s.randFn() * 30
	if s.percent > simCap {
		s.percent = simCap
	}
}

// Complete reconciles with a successful real result: progress jumps to
// exactly 100. The panel resets to idle after ResetDelay.
func (s *Simulator) Complete() {
	if !s.running {
		return
	}
	s.percent = 100
}

// Fail reconciles with a failed real result: the simulation stops
// immediately and the bar returns to 0.
func (s *Simulator) Fail() {
	s.running = false
	s.percent = 0
}

// Reset returns the panel to idle after the completion display delay.
func (s *Simulator) Reset() {
	s.running = false
	s.percent = 0
}

// Log appends a timestamped message, keeping only the most recent entries.
func (s *Simulator) Log(message string) {
	s.logs = append(s.logs, LogEntry{Time: s.clock.Now(), Message: message})
	if len(s.logs) > maxLogEntries {
		s.logs = s.logs[len(s.logs)-maxLogEntries:]
	}
}

// Running reports whether a simulation is in progress.
func (s *Simulator) Running() bool {
	return s.running
}

// Percent returns the current progress in [0,100].
func (s *Simulator) Percent() float64 {
	return s.percent
}

// Logs returns the retained log entries, oldest first.
func (s *Simulator) Logs() []LogEntry {
	return s.logs
}
