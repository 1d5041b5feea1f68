package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replay records each outcome in order: 'f' a failure, 's' a success.
func replay(b *Breaker, outcomes string) (opened, closed int) {
	for _, o := range outcomes {
		var change StateChange
		if o == 'f' {
			_, change = b.RecordFailure()
		} else {
			_, change = b.RecordSuccess()
		}
		if change.Opened {
			opened++
		}
		if change.Closed {
			closed++
		}
	}
	return opened, closed
}

func TestBreakerTransitions(t *testing.T) {
	tests := []struct {
		name     string
		failures int
		success  int
		outcomes string
		open     bool
		opened   int
		closed   int
	}{
		{name: "new breaker is closed", failures: 3, success: 2, outcomes: "", open: false},
		{name: "below threshold stays closed", failures: 3, success: 2, outcomes: "ff", open: false},
		{name: "threshold opens once", failures: 3, success: 2, outcomes: "fffff", open: true, opened: 1},
		{name: "success while closed resets failures", failures: 3, success: 2, outcomes: "ffsff", open: false},
		{name: "successes close an open breaker", failures: 1, success: 2, outcomes: "fss", open: false, opened: 1, closed: 1},
		{name: "failure while open restarts the success count", failures: 1, success: 3, outcomes: "fssfss", open: true, opened: 1},
		{name: "reopen after recovery", failures: 1, success: 1, outcomes: "fsf", open: true, opened: 2, closed: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("redis", WithFailureThreshold(tt.failures), WithSuccessThreshold(tt.success))
			opened, closed := replay(b, tt.outcomes)
			assert.Equal(t, tt.open, b.IsOpen())
			assert.Equal(t, tt.opened, opened)
			assert.Equal(t, tt.closed, closed)
		})
	}
}

func TestBreakerFallbackFlags(t *testing.T) {
	b := New("redis", WithFailureThreshold(2), WithSuccessThreshold(1))

	useFallback, _ := b.RecordFailure()
	assert.False(t, useFallback)
	useFallback, _ = b.RecordFailure()
	assert.True(t, useFallback, "the opening failure already falls back")

	usePrimary, change := b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.True(t, change.Closed)
}

func TestBreakerCooldownGatesProbes(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	b := New("redis", WithFailureThreshold(1), WithCooldown(30*time.Second), WithClock(func() time.Time { return now }))
	require.True(t, b.Allow())

	b.RecordFailure()
	assert.False(t, b.Allow())

	now = now.Add(20 * time.Second)
	assert.False(t, b.Allow())

	// A failed probe restarts the cooldown.
	now = now.Add(10 * time.Second)
	require.True(t, b.Allow())
	b.RecordFailure()
	assert.False(t, b.Allow())

	now = now.Add(30 * time.Second)
	assert.True(t, b.Allow())
}

func TestBreakerResetAndName(t *testing.T) {
	b := New("catalog-redis", WithFailureThreshold(1))
	b.RecordFailure()
	assert.Equal(t, StateOpen, b.State())
	assert.Equal(t, "open", b.State().String())

	b.Reset()
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "catalog-redis", b.Name())
}
