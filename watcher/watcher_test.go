package watcher_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lightninglabs/xmrswap/watcher"
)

func TestReorgClearsObservedLock(t *testing.T) {
	w := watcher.New(5, 10)

	w.ObserveLock(50)
	require.Nil(t, w.UpdateHeight(100))

	reorg := w.UpdateHeight(90)
	require.NotNil(t, reorg)
	require.Equal(t, int64(100), reorg.Previous)
	require.Equal(t, int64(90), reorg.Current)

	require.Equal(t, watcher.NoLockObserved{}, w.Evaluate(90))
}

func TestObserveLockTakesEarliest(t *testing.T) {
	w := watcher.New(5, 6)

	w.ObserveLock(100)
	w.ObserveLock(90)
	w.ObserveLock(110)

	result := w.Evaluate(96)
	require.Equal(t, watcher.Confirmed{Confirmations: 6}, result)
}

func TestEvaluateAwaitingConfirmations(t *testing.T) {
	w := watcher.New(5, 10)
	w.ObserveLock(100)

	result := w.Evaluate(103)
	require.Equal(t, watcher.AwaitingConfirmations{Remaining: 7}, result)
}

func TestEvaluateSaturatesAtZero(t *testing.T) {
	w := watcher.New(5, 3)
	w.ObserveLock(100)

	result := w.Evaluate(90)
	require.Equal(t, watcher.AwaitingConfirmations{Remaining: 3}, result)
}

func TestUpdateHeightWithinBufferNoReorg(t *testing.T) {
	w := watcher.New(5, 3)
	require.Nil(t, w.UpdateHeight(100))
	require.Nil(t, w.UpdateHeight(96))
}

type fakeWallet struct {
	height    int64
	transfers []watcher.Transfer
}

func (f *fakeWallet) Height() (int64, error) { return f.height, nil }

func (f *fakeWallet) TransfersSince(lastSeen int64) ([]watcher.Transfer, error) {
	return f.transfers, nil
}

func TestPollForLockInPool(t *testing.T) {
	w := watcher.New(5, 3)
	src := &fakeWallet{
		height: 100,
		transfers: []watcher.Transfer{
			{Amount: 500, InPool: true},
		},
	}

	result, err := w.PollForLock(src, 400)
	require.NoError(t, err)
	require.Equal(t, watcher.LockInPool{Amount: 500}, result)
}

func TestPollForLockConfirmed(t *testing.T) {
	w := watcher.New(5, 3)
	src := &fakeWallet{
		height: 105,
		transfers: []watcher.Transfer{
			{Amount: 500, Height: 100},
		},
	}

	result, err := w.PollForLock(src, 400)
	require.NoError(t, err)
	require.Equal(t, watcher.Confirmed{Confirmations: 5}, result)
}

func TestPollForLockIgnoresUndersizedTransfers(t *testing.T) {
	w := watcher.New(5, 3)
	src := &fakeWallet{
		height: 105,
		transfers: []watcher.Transfer{
			{Amount: 10, Height: 100},
		},
	}

	result, err := w.PollForLock(src, 400)
	require.NoError(t, err)
	require.Equal(t, watcher.NoLockObserved{}, result)
}
