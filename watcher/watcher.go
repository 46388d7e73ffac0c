package watcher

// Transfer describes one incoming transfer as reported by the L2
// wallet. InPool transfers carry no Height.
type Transfer struct {
	Amount uint64
	Height int64
	InPool bool
}

// WalletSource is the minimal view of an L2 wallet the watcher polls.
// Height returns the wallet's current synced blockchain height;
// TransfersSince returns incoming transfers observed after lastSeen.
type WalletSource interface {
	Height() (int64, error)
	TransfersSince(lastSeen int64) ([]Transfer, error)
}

// Watcher tracks the earliest-seen lock height for a single swap. It
// is not thread-safe and is intended for use from exactly one driver
// task.
type Watcher struct {
	reorgBuffer      int64
	confirmationsReq int64
	lastSeen         int64
	lockHeight       int64
	haveLock         bool
}

// New constructs a Watcher. reorgBuffer is the number of heights a
// reported current height may fall below lastSeen before a
// reorganisation is declared; confirmationsRequired is the number of
// confirmations Evaluate demands before reporting Confirmed.
func New(reorgBuffer, confirmationsRequired int64) *Watcher {
	return &Watcher{
		reorgBuffer:      reorgBuffer,
		confirmationsReq: confirmationsRequired,
	}
}

// UpdateHeight advances the watcher's notion of the current height. If
// current falls more than reorgBuffer below lastSeen, a reorg is
// declared: the observed lock is cleared and a ReorgDetected event is
// returned. Otherwise lastSeen is updated and nil is returned.
func (w *Watcher) UpdateHeight(current int64) *ReorgDetected {
	if current+w.reorgBuffer < w.lastSeen {
		prev := w.lastSeen
		w.haveLock = false
		w.lockHeight = 0
		w.lastSeen = current
		return &ReorgDetected{Previous: prev, Current: current}
	}
	w.lastSeen = current
	return nil
}

// ObserveLock records a sighting of the lock transfer at height h. The
// earliest sighting wins: a later, higher height never advances
// lockHeight once one has been recorded.
func (w *Watcher) ObserveLock(h int64) {
	if !w.haveLock || h < w.lockHeight {
		w.lockHeight = h
		w.haveLock = true
	}
}

// Evaluate reports the confirmation status of the observed lock as of
// current. Confirmations are saturated at zero: a current height below
// lockHeight (which poll_for_lock should never produce, but a
// caller-driven evaluate might) never reports a negative count.
func (w *Watcher) Evaluate(current int64) interface{} {
	if !w.haveLock {
		return NoLockObserved{}
	}
	confirmations := current - w.lockHeight
	if confirmations < 0 {
		confirmations = 0
	}
	if confirmations >= w.confirmationsReq {
		return Confirmed{Confirmations: confirmations}
	}
	return AwaitingConfirmations{Remaining: w.confirmationsReq - confirmations}
}

// PollForLock runs one polling iteration: it refreshes the height
// first (returning immediately on a detected reorg), then scans
// incoming transfers since lastSeen for the first one meeting
// expectedAmount. An in-pool sighting is reported as LockInPool; a
// confirmed sighting is recorded via ObserveLock and the result of
// Evaluate is returned.
func (w *Watcher) PollForLock(src WalletSource, expectedAmount uint64) (interface{}, error) {
	height, err := src.Height()
	if err != nil {
		return nil, err
	}
	if reorg := w.UpdateHeight(height); reorg != nil {
		return *reorg, nil
	}

	transfers, err := src.TransfersSince(w.lastSeen)
	if err != nil {
		return nil, err
	}

	for _, t := range transfers {
		if t.Amount < expectedAmount {
			continue
		}
		if t.InPool {
			return LockInPool{Amount: t.Amount}, nil
		}
		w.ObserveLock(t.Height)
		return w.Evaluate(height), nil
	}

	return NoLockObserved{}, nil
}
