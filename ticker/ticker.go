// Package ticker provides a mockable alternative to time.Ticker so that
// polling loops (the L2 lock watcher, the timelock monitor) can be driven
// deterministically in tests via Force, instead of racing a real timer.
package ticker

import "time"

// Ticker is satisfied by both Default (backed by time.Ticker) and Mock
// (driven by test code via Force).
type Ticker interface {
	// Ticks returns the channel on which ticks are delivered.
	Ticks() <-chan time.Time

	// Resume starts the ticker delivering ticks at its configured
	// interval.
	Resume()

	// Pause stops the ticker from delivering further ticks until
	// Resume is called again.
	Pause()

	// Stop releases the underlying resources. The ticker must not be
	// used again afterwards.
	Stop()
}

// Default wraps time.Ticker.
type Default struct {
	ticker *time.Ticker
	interval time.Duration
}

// New returns a Default ticker with the given interval. It starts
// paused; call Resume to begin delivering ticks.
func New(interval time.Duration) *Default {
	t := &Default{interval: interval}
	return t
}

// Ticks implements Ticker.
func (t *Default) Ticks() <-chan time.Time {
	if t.ticker == nil {
		return nil
	}
	return t.ticker.C
}

// Resume implements Ticker.
func (t *Default) Resume() {
	if t.ticker != nil {
		t.ticker.Stop()
	}
	t.ticker = time.NewTicker(t.interval)
}

// Pause implements Ticker.
func (t *Default) Pause() {
	if t.ticker != nil {
		t.ticker.Stop()
	}
}

// Stop implements Ticker.
func (t *Default) Stop() {
	t.Pause()
}

// Mock is a test Ticker whose ticks are only delivered when Force is
// called, so tests never depend on wall-clock timing.
type Mock struct {
	c      chan time.Time
	paused bool
}

// NewMock returns a Mock ticker, paused by default.
func NewMock() *Mock {
	return &Mock{
		c:      make(chan time.Time, 1),
		paused: true,
	}
}

// Ticks implements Ticker.
func (m *Mock) Ticks() <-chan time.Time {
	return m.c
}

// Resume implements Ticker.
func (m *Mock) Resume() {
	m.paused = false
}

// Pause implements Ticker.
func (m *Mock) Pause() {
	m.paused = true
}

// Stop implements Ticker.
func (m *Mock) Stop() {
	close(m.c)
}

// Force delivers a single tick at the given time, regardless of the
// paused state, emulating an immediate poll in tests.
func (m *Mock) Force(t time.Time) {
	m.c <- t
}
