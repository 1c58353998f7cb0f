package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

// Now is truncated to microseconds, the precision every store keeps.
func (c *RealClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// MockClock is safe for concurrent use; each Tick advances it by step so
// consecutive calls yield strictly increasing times.
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
	step        time.Duration
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.currentTime
	c.currentTime = c.currentTime.Add(c.step)
	return now
}

func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = t
}

func (c *MockClock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = c.currentTime.Add(d)
}

// Tick makes every Now call advance the clock by step afterwards.
func (c *MockClock) Tick(step time.Duration) *MockClock {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step = step
	return c
}
