package swapdriver

import "time"

// L1Client is the driver's entire contract with the L1 chain: a
// timestamp read plus the four escrow operations, each returning the
// confirmed transaction identifier. Concrete implementations wrap
// their RPC transport with rpcretry.
type L1Client interface {
	// Now returns the current L1 ledger timestamp, used to evaluate
	// the deadline-versus-forward-progress race.
	Now() (time.Time, error)

	Initialize(swapID string) (escrowAddress [32]byte, tx string, err error)
	VerifyDleq(swapID string) (tx string, err error)
	VerifyAndUnlock(swapID string, secret []byte) (tx string, err error)
	Refund(swapID string) (tx string, err error)
}
