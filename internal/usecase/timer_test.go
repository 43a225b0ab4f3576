package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock avança sob comando, sem dormir em teste.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time {
	return c.current
}

func (c *fakeClock) advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func TestTimerStartsFromZero(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	timer := NewSessionTimer(clock.now)

	timer.Start()

	assert.True(t, timer.Running())
	assert.Equal(t, 0, timer.ElapsedSeconds())
}

func TestTimerTicksAccumulate(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	timer := NewSessionTimer(clock.now)

	timer.Start()
	clock.advance(1 * time.Second)
	timer.Tick()
	clock.advance(1 * time.Second)
	timer.Tick()
	clock.advance(1 * time.Second)
	timer.Tick()

	assert.Equal(t, 3, timer.ElapsedSeconds())
}

func TestTimerStopFreezesElapsed(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	timer := NewSessionTimer(clock.now)

	timer.Start()
	clock.advance(90 * time.Second)
	timer.Stop()

	// O relógio continua andando, o timer não.
	clock.advance(1 * time.Hour)
	timer.Tick()

	assert.False(t, timer.Running())
	assert.Equal(t, 90, timer.ElapsedSeconds())
}

func TestTimerStopIsIdempotent(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	timer := NewSessionTimer(clock.now)

	timer.Start()
	clock.advance(10 * time.Second)
	timer.Stop()
	timer.Stop()

	assert.Equal(t, 10, timer.ElapsedSeconds())
}

func TestTimerRestartResets(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	timer := NewSessionTimer(clock.now)

	timer.Start()
	clock.advance(30 * time.Second)
	timer.Stop()

	timer.Start()
	clock.advance(5 * time.Second)
	timer.Tick()

	assert.Equal(t, 5, timer.ElapsedSeconds())
}
