package main

import (
	"time"

	"github.com/go-errors/errors"

	"github.com/lightninglabs/xmrswap/clock"
	"github.com/lightninglabs/xmrswap/watcher"
)

// ErrNoL1Backend is returned by every state-changing unconfiguredL1Client
// method. The wire protocol for the L1 escrow program's RPC is outside
// this package's scope; swapd still wires the full
// swapdriver.L1Client contract so the daemon's supervision loop,
// metrics, and persistence run end to end against a real clock before
// a concrete chain client is plugged in.
var ErrNoL1Backend = errors.New("swapd: no L1 chain backend configured")

type unconfiguredL1Client struct {
	clock clock.Clock
}

func newUnconfiguredL1Client() *unconfiguredL1Client {
	return &unconfiguredL1Client{clock: clock.NewDefaultClock()}
}

func (c *unconfiguredL1Client) Now() (time.Time, error) {
	return c.clock.Now(), nil
}

func (c *unconfiguredL1Client) Initialize(swapID string) ([32]byte, string, error) {
	return [32]byte{}, "", ErrNoL1Backend
}

func (c *unconfiguredL1Client) VerifyDleq(swapID string) (string, error) {
	return "", ErrNoL1Backend
}

func (c *unconfiguredL1Client) VerifyAndUnlock(swapID string, secret []byte) (string, error) {
	return "", ErrNoL1Backend
}

func (c *unconfiguredL1Client) Refund(swapID string) (string, error) {
	return "", ErrNoL1Backend
}

// ErrNoL2Backend mirrors ErrNoL1Backend for the L2 wallet side: the
// wallet RPC used to observe locked funds is likewise outside this
// package's scope.
var ErrNoL2Backend = errors.New("swapd: no L2 wallet backend configured")

type unconfiguredWalletSource struct{}

func newUnconfiguredWalletSource() *unconfiguredWalletSource {
	return &unconfiguredWalletSource{}
}

func (*unconfiguredWalletSource) Height() (int64, error) {
	return 0, ErrNoL2Backend
}

func (*unconfiguredWalletSource) TransfersSince(lastSeen int64) ([]watcher.Transfer, error) {
	return nil, ErrNoL2Backend
}
