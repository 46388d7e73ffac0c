package escrowprog

import "crypto/sha256"

// DeriveEscrowAddress computes the deterministic address of an escrow
// record as a function of (program_id, "lock", depositor, hashlock).
// Two concurrent swaps from the same depositor can never collide on
// address unless they also share a hashlock, which would itself be a
// hashlock-reuse violation the caller must prevent upstream.
func DeriveEscrowAddress(programID []byte, depositor []byte, hashlock [32]byte) [32]byte {
	h := sha256.New()
	h.Write(programID)
	h.Write([]byte("lock"))
	h.Write(depositor)
	h.Write(hashlock[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// DeriveVaultAddress computes the deterministic address of the
// program-owned token account holding a given escrow's funds, as a
// function of (program_id, "vault", escrow_address).
func DeriveVaultAddress(programID []byte, escrowAddress [32]byte) [32]byte {
	h := sha256.New()
	h.Write(programID)
	h.Write([]byte("vault"))
	h.Write(escrowAddress[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
