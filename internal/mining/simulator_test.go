package mining

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartRejectsConcurrentRun(t *testing.T) {
	s := NewSimulator(clockwork.NewFakeClock())

	require.True(t, s.Start())
	assert.True(t, s.Running())

	// Only one simulation may run per panel.
	assert.False(t, s.Start())
}

func TestAdvanceNeverExceedsCap(t *testing.T) {
	s := NewSimulator(clockwork.NewFakeClock())
	s.randFn = func() float64 { return 1.0 } // max increment every tick

	require.True(t, s.Start())
	for i := 0; i < 50; i++ {
		s.Advance()
		assert.LessOrEqual(t, s.Percent(), 90.0)
	}
	assert.Equal(t, 90.0, s.Percent())
}

func TestCompleteSetsExactlyHundred(t *testing.T) {
	s := NewSimulator(clockwork.NewFakeClock())
	require.True(t, s.Start())
	s.Advance()

	s.Complete()
	assert.Equal(t, 100.0, s.Percent())
	assert.True(t, s.Running())

	s.Reset()
	assert.False(t, s.Running())
	assert.Equal(t, 0.0, s.Percent())
}

func TestFailResetsImmediately(t *testing.T) {
	s := NewSimulator(clockwork.NewFakeClock())
	require.True(t, s.Start())
	s.Advance()
	s.Advance()

	s.Fail()
	assert.Equal(t, 0.0, s.Percent())
	assert.False(t, s.Running())

	// The panel can start again after a failure.
	assert.True(t, s.Start())
}

func TestAdvanceIgnoredWhenIdle(t *testing.T) {
	s := NewSimulator(clockwork.NewFakeClock())
	s.Advance()
	assert.Equal(t, 0.0, s.Percent())
}

func TestLogBoundedAndTimestamped(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewSimulator(clock)
	require.True(t, s.Start())

	start := clock.Now()
	for i := 0; i < 10; i++ {
		clock.Advance(time.Second)
		s.Log("entry")
	}

	logs := s.Logs()
	require.Len(t, logs, 5)
	assert.True(t, logs[0].Time.After(start))
	for i := 1; i < len(logs); i++ {
		assert.True(t, logs[i].Time.After(logs[i-1].Time))
	}
}

func TestStartClearsPreviousLog(t *testing.T) {
	s := NewSimulator(clockwork.NewFakeClock())
	require.True(t, s.Start())
	s.Log("old entry")
	s.Fail()

	require.True(t, s.Start())
	require.Len(t, s.Logs(), 1)
	assert.Equal(t, "Starting mining process...", s.Logs()[0].Message)
}
