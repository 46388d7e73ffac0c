package swapdriver_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lightninglabs/xmrswap/swapdriver"
)

type memStore struct {
	mu     sync.Mutex
	states map[string]swapdriver.State
}

func newMemStore() *memStore {
	return &memStore{states: make(map[string]swapdriver.State)}
}

func (s *memStore) Put(state swapdriver.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.SwapID()] = state
	return nil
}

func (s *memStore) Get(swapID string) (swapdriver.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[swapID]
	if !ok {
		return swapdriver.State{}, swapdriver.ErrSwapNotFound
	}
	return st, nil
}

func (s *memStore) Delete(swapID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, swapID)
	return nil
}

type fakeL1 struct {
	now         time.Time
	refundCalls int
}

func (f *fakeL1) Now() (time.Time, error) { return f.now, nil }

func (f *fakeL1) Initialize(swapID string) ([32]byte, string, error) {
	var addr [32]byte
	addr[0] = 0xAA
	return addr, "init-tx", nil
}

func (f *fakeL1) VerifyDleq(swapID string) (string, error) {
	return "verify-tx", nil
}

func (f *fakeL1) VerifyAndUnlock(swapID string, secret []byte) (string, error) {
	return "unlock-tx", nil
}

func (f *fakeL1) Refund(swapID string) (string, error) {
	f.refundCalls++
	return "refund-tx", nil
}

func TestStepAdvancesThroughHappyPath(t *testing.T) {
	now := time.Unix(1_000_000, 0)
	l1 := &fakeL1{now: now}
	store := newMemStore()
	d := swapdriver.NewDriver(l1, store, nil)

	hashlock := [32]byte{0x01}
	created := swapdriver.NewCreated("swap-1", hashlock, now.Add(time.Hour))

	initialized, err := d.Step(created, nil)
	require.NoError(t, err)
	require.Equal(t, swapdriver.KindInitialized, initialized.Kind)

	verified, err := d.Step(initialized, nil)
	require.NoError(t, err)
	require.Equal(t, swapdriver.KindDleqVerified, verified.Kind)

	unlocked, err := d.Step(verified, []byte("secret"))
	require.NoError(t, err)
	require.Equal(t, swapdriver.KindUnlocked, unlocked.Kind)
	require.Equal(t, "unlock-tx", unlocked.Unlocked.UnlockTx)

	persisted, err := store.Get("swap-1")
	require.NoError(t, err)
	require.Equal(t, swapdriver.KindUnlocked, persisted.Kind)
}

func TestStepRequiresSecretToUnlock(t *testing.T) {
	now := time.Unix(2_000_000, 0)
	l1 := &fakeL1{now: now}
	store := newMemStore()
	d := swapdriver.NewDriver(l1, store, nil)

	hashlock := [32]byte{0x02}
	created := swapdriver.NewCreated("swap-2", hashlock, now.Add(time.Hour))
	initialized, err := d.Step(created, nil)
	require.NoError(t, err)
	verified, err := d.Step(initialized, nil)
	require.NoError(t, err)

	_, err = d.Step(verified, nil)
	require.ErrorIs(t, err, swapdriver.ErrSecretRequired)
}

func TestStepRefundsOnDeadlineInsteadOfForwardProgress(t *testing.T) {
	now := time.Unix(3_000_000, 0)
	l1 := &fakeL1{now: now}
	store := newMemStore()
	d := swapdriver.NewDriver(l1, store, nil)

	hashlock := [32]byte{0x03}
	created := swapdriver.NewCreated("swap-3", hashlock, now.Add(time.Second))
	initialized, err := d.Step(created, nil)
	require.NoError(t, err)

	l1.now = now.Add(2 * time.Second)
	refunded, err := d.Step(initialized, nil)
	require.NoError(t, err)
	require.Equal(t, swapdriver.KindRefunded, refunded.Kind)
	require.Equal(t, "Timeout exceeded", refunded.Refunded.Reason)
	require.Equal(t, 1, l1.refundCalls)
}

func TestStepOnTerminalStateReturnsError(t *testing.T) {
	l1 := &fakeL1{now: time.Unix(4_000_000, 0)}
	store := newMemStore()
	d := swapdriver.NewDriver(l1, store, nil)

	terminal := swapdriver.State{
		Kind:     swapdriver.KindUnlocked,
		Unlocked: &swapdriver.Unlocked{SwapID: "swap-4", UnlockTx: "tx"},
	}

	_, err := d.Step(terminal, nil)
	require.ErrorIs(t, err, swapdriver.ErrTerminalState)
}

func TestObserverPanicDoesNotCorruptStep(t *testing.T) {
	now := time.Unix(5_000_000, 0)
	l1 := &fakeL1{now: now}
	store := newMemStore()

	panicObserver := panicObserverT{}
	d := swapdriver.NewDriver(l1, store, panicObserver)

	hashlock := [32]byte{0x05}
	created := swapdriver.NewCreated("swap-5", hashlock, now.Add(time.Hour))

	next, err := d.Step(created, nil)
	require.NoError(t, err)
	require.Equal(t, swapdriver.KindInitialized, next.Kind)
}

type panicObserverT struct{}

func (panicObserverT) ObserveStep(from, to swapdriver.Kind, latency time.Duration) {
	panic("observer exploded")
}
