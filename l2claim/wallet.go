package l2claim

import "filippo.io/edwards25519"

// Wallet is the minimal surface this package needs from an external L2
// wallet process. The wallet's RPC transport is out of scope for this
// module; callers supply a concrete implementation (e.g. over the
// wallet's JSON-RPC interface) wrapped in rpcretry at the call site.
type Wallet interface {
	// ImportSpendKey imports the derived spend/view scalar pair and
	// its address into the wallet, optionally from a restore height
	// to bound the rescan.
	ImportSpendKey(spend, view *edwards25519.Scalar, addr Address, restoreHeight uint64) error

	// SweepAll sweeps the wallet's entire balance to destination and
	// returns the resulting transaction hash.
	SweepAll(destination string) (txHash string, err error)
}
