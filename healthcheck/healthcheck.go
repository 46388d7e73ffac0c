// Package healthcheck runs periodic liveness probes against external
// endpoints (the L1 RPC and the L2 wallet RPC) and exposes a simple
// healthy/unhealthy signal, reusing the same backoff policy the swap
// driver uses for its own RPC calls.
package healthcheck

import (
	"context"
	"sync"
	"time"

	"github.com/lightninglabs/xmrswap/clock"
	"github.com/lightninglabs/xmrswap/rpcretry"
)

// Probe is a single named liveness check.
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

// Observation is the most recent result of running a Probe.
type Observation struct {
	Name      string
	Healthy   bool
	LastError error
	CheckedAt time.Time
}

// Monitor periodically runs a set of probes and tracks their last
// observation. A probe's failure never blocks another probe, and a
// Monitor failure is never fatal to its caller.
type Monitor struct {
	probes       []Probe
	retryConfig  rpcretry.Config
	interval     time.Duration
	failThresh   int
	clock        clock.Clock
	mu           sync.RWMutex
	observations map[string]Observation
	failCounts   map[string]int
}

// NewMonitor constructs a Monitor. failThreshold is the number of
// consecutive failures a probe must accumulate before it is reported
// unhealthy; a single flaky failure does not flip the signal.
func NewMonitor(probes []Probe, retryConfig rpcretry.Config, interval time.Duration, failThreshold int) *Monitor {
	return &Monitor{
		probes:       probes,
		retryConfig:  retryConfig,
		interval:     interval,
		failThresh:   failThreshold,
		clock:        clock.NewDefaultClock(),
		observations: make(map[string]Observation),
		failCounts:   make(map[string]int),
	}
}

// SetClock overrides the Monitor's time source, for deterministic tests.
func (m *Monitor) SetClock(c clock.Clock) {
	m.clock = c
}

// Run executes probes on a timer until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.runOnce(ctx)
		}
	}
}

func (m *Monitor) runOnce(ctx context.Context) {
	for _, p := range m.probes {
		err := rpcretry.Do(ctx, p.Name, m.retryConfig, p.Check)
		m.record(p.Name, err)
	}
}

func (m *Monitor) record(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.failCounts[name]++
	} else {
		m.failCounts[name] = 0
	}

	m.observations[name] = Observation{
		Name:      name,
		Healthy:   m.failCounts[name] < m.failThresh,
		LastError: err,
		CheckedAt: m.clock.Now(),
	}
}

// Observe returns the last recorded observation for a probe.
func (m *Monitor) Observe(name string) (Observation, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obs, ok := m.observations[name]
	return obs, ok
}

// Healthy reports whether every probe is currently healthy.
func (m *Monitor) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, obs := range m.observations {
		if !obs.Healthy {
			return false
		}
	}
	return true
}
