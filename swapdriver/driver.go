package swapdriver

import (
	"time"

	"github.com/go-errors/errors"
)

// Driver runs the per-swap step loop against an L1Client, persisting
// every transition to a Store before returning it.
type Driver struct {
	l1    L1Client
	store Store
	obs   Observer
}

// NewDriver constructs a Driver. obs may be nil, in which case steps
// are not observed.
func NewDriver(l1 L1Client, store Store, obs Observer) *Driver {
	if obs == nil {
		obs = NopObserver{}
	}
	return &Driver{l1: l1, store: store, obs: obs}
}

// Step advances current by one transition and persists the result
// before returning it. secret is required only when current is
// DleqVerified.
//
// The deadline-versus-forward-progress race is checked first and
// dominates: once the L1 clock reaches lock_until, any Initialized or
// DleqVerified swap is refunded instead of advanced forward,
// regardless of which case below would otherwise apply.
func (d *Driver) Step(current State, secret []byte) (State, error) {
	start := time.Now()

	if current.Kind == KindInitialized || current.Kind == KindDleqVerified {
		lockUntil := lockUntilOf(current)
		now, err := d.l1.Now()
		if err != nil {
			return State{}, errors.Errorf("swapdriver: reading L1 timestamp: %v", err)
		}
		if !now.Before(lockUntil) {
			next, err := d.refund(current, "Timeout exceeded")
			if err != nil {
				return State{}, err
			}
			notify(d.obs, current.Kind, next.Kind, time.Since(start))
			return next, nil
		}
	}

	var (
		next State
		err  error
	)
	switch current.Kind {
	case KindCreated:
		next, err = d.doInitialize(current)
	case KindInitialized:
		next, err = d.doVerifyDleq(current)
	case KindDleqVerified:
		if len(secret) == 0 {
			return State{}, ErrSecretRequired
		}
		next, err = d.doUnlock(current, secret)
	case KindUnlocked, KindRefunded:
		return State{}, ErrTerminalState
	default:
		return State{}, errors.Errorf("swapdriver: unknown state kind %v", current.Kind)
	}
	if err != nil {
		return State{}, err
	}

	if err := d.store.Put(next); err != nil {
		return State{}, errors.Errorf("swapdriver: persisting state: %v", err)
	}
	notify(d.obs, current.Kind, next.Kind, time.Since(start))
	return next, nil
}

func lockUntilOf(s State) time.Time {
	switch s.Kind {
	case KindInitialized:
		return s.Initialized.LockUntil
	case KindDleqVerified:
		return s.DleqVerified.LockUntil
	default:
		return time.Time{}
	}
}

func (d *Driver) doInitialize(current State) (State, error) {
	escrowAddr, _, err := d.l1.Initialize(current.Created.SwapID)
	if err != nil {
		return State{}, errors.Errorf("swapdriver: L1 Initialize: %v", err)
	}
	return State{
		Kind: KindInitialized,
		Initialized: &Initialized{
			Created:       *current.Created,
			EscrowAddress: escrowAddr,
		},
	}, nil
}

func (d *Driver) doVerifyDleq(current State) (State, error) {
	if _, err := d.l1.VerifyDleq(current.Initialized.SwapID); err != nil {
		return State{}, errors.Errorf("swapdriver: L1 VerifyDleq: %v", err)
	}
	return State{
		Kind: KindDleqVerified,
		DleqVerified: &DleqVerified{
			Initialized: *current.Initialized,
		},
	}, nil
}

func (d *Driver) doUnlock(current State, secret []byte) (State, error) {
	tx, err := d.l1.VerifyAndUnlock(current.DleqVerified.SwapID, secret)
	if err != nil {
		return State{}, errors.Errorf("swapdriver: L1 VerifyAndUnlock: %v", err)
	}
	return State{
		Kind: KindUnlocked,
		Unlocked: &Unlocked{
			SwapID:   current.DleqVerified.SwapID,
			UnlockTx: tx,
		},
	}, nil
}

func (d *Driver) refund(current State, reason string) (State, error) {
	swapID := current.SwapID()
	tx, err := d.l1.Refund(swapID)
	if err != nil {
		return State{}, errors.Errorf("swapdriver: L1 Refund: %v", err)
	}
	next := State{
		Kind: KindRefunded,
		Refunded: &Refunded{
			SwapID:   swapID,
			Reason:   reason,
			RefundTx: tx,
		},
	}
	if err := d.store.Put(next); err != nil {
		return State{}, errors.Errorf("swapdriver: persisting refunded state: %v", err)
	}
	return next, nil
}
