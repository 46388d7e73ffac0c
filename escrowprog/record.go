// Package escrowprog implements the L1 escrow program's state
// transitions: Initialize, VerifyDleq, VerifyAndUnlock, and Refund,
// plus the escrow record they operate on. The program holds no
// ambient state of its own; every operation takes the record it
// mutates and an injected TokenLedger for the side effects an
// on-ledger runtime would otherwise own directly.
package escrowprog

import (
	"time"

	"github.com/lightninglabs/xmrswap/dleq"
)

// Record is the on-ledger-resident escrow account. One Record exists
// per active swap, keyed by its deterministic address.
type Record struct {
	Address     [32]byte
	Depositor   []byte
	Hashlock    [32]byte
	AdaptorT    [32]byte // T = t*G
	SecondU     [32]byte // U = t*Y
	YPoint      [32]byte
	R1          [32]byte
	R2          [32]byte
	Challenge   [32]byte
	Response    [32]byte
	LockUntil   time.Time
	Amount      uint64
	TokenMint   []byte
	Vault       []byte
	DleqVerified bool
	Unlocked    bool
}

// transcript projects the record's proof fields into a dleq.Transcript
// for re-validation.
func (r *Record) transcript() dleq.Transcript {
	return dleq.Transcript{
		T:  r.AdaptorT,
		U:  r.SecondU,
		Y:  r.YPoint,
		R1: r.R1,
		R2: r.R2,
		C:  r.Challenge,
		S:  r.Response,
		H:  r.Hashlock,
	}
}
