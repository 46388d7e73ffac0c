// Package swapmgr supervises one driver task per active swap_id:
// independent single-threaded driver tasks with no shared mutable
// state besides the durable store, which is itself collision-free
// because it is keyed by swap_id.
package swapmgr

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lightninglabs/xmrswap/rpcretry"
	"github.com/lightninglabs/xmrswap/swapdriver"
	"github.com/lightninglabs/xmrswap/ticker"
)

// SecretSource supplies the revealed secret for a swap once the
// counterparty's unlock transaction has exposed it off-ledger. It
// returns ok=false while the secret is not yet available.
type SecretSource interface {
	Secret(swapID string) (secret []byte, ok bool)
}

// Manager runs one goroutine per active swap via an errgroup, polling
// each swap's driver until it reaches a terminal state or the
// supervising context is cancelled.
type Manager struct {
	driver       *swapdriver.Driver
	store        swapdriver.Store
	secrets      SecretSource
	pollInterval time.Duration

	mu     sync.Mutex
	active map[string]context.CancelFunc
}

// NewManager constructs a Manager.
func NewManager(driver *swapdriver.Driver, store swapdriver.Store, secrets SecretSource, pollInterval time.Duration) *Manager {
	return &Manager{
		driver:       driver,
		store:        store,
		secrets:      secrets,
		pollInterval: pollInterval,
		active:       make(map[string]context.CancelFunc),
	}
}

// Start launches a supervising task for swapID if one is not already
// running. The task runs until ctx is cancelled or the swap reaches a
// terminal state.
func (m *Manager) Start(ctx context.Context, eg *errgroup.Group, swapID string) {
	m.mu.Lock()
	if _, running := m.active[swapID]; running {
		m.mu.Unlock()
		return
	}
	taskCtx, cancel := context.WithCancel(ctx)
	m.active[swapID] = cancel
	m.mu.Unlock()

	eg.Go(func() error {
		defer m.finish(swapID)
		return m.run(taskCtx, swapID)
	})
}

// Stop cancels the supervising task for swapID, if any. The outer
// loop inside run is the only place a step is interruptible.
func (m *Manager) Stop(swapID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cancel, ok := m.active[swapID]; ok {
		cancel()
	}
}

func (m *Manager) finish(swapID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, swapID)
}

func (m *Manager) run(ctx context.Context, swapID string) error {
	t := ticker.New(m.pollInterval)
	t.Resume()
	defer t.Stop()

	for {
		state, err := m.store.Get(swapID)
		if err != nil {
			return err
		}
		if state.Kind.Terminal() {
			return nil
		}

		var secret []byte
		if state.Kind == swapdriver.KindDleqVerified {
			if s, ok := m.secrets.Secret(swapID); ok {
				secret = s
			}
		}

		if state.Kind != swapdriver.KindDleqVerified || secret != nil {
			next, err := m.driver.Step(state, secret)
			switch {
			case err == nil:
				if next.Kind.Terminal() {
					return nil
				}
			case isTransient(err):
				// Fall through to the poll wait; the next tick
				// retries.
			default:
				return err
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.Ticks():
		}
	}
}

// isTransient reports whether err originated from the retry harness
// exhausting its attempts, in which case the outer loop should keep
// polling rather than abandon the swap.
func isTransient(err error) bool {
	return rpcretry.IsExhausted(err)
}
