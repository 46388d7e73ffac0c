package swapdriver

import "github.com/go-errors/errors"

var (
	// ErrSecretRequired is returned by Step when current is
	// DleqVerified but no secret was supplied to unlock with.
	ErrSecretRequired = errors.New("swapdriver: secret required to unlock")

	// ErrTerminalState is returned by Step when current is already
	// Unlocked or Refunded; there is no further transition.
	ErrTerminalState = errors.New("swapdriver: state is terminal, no transition")

	// ErrSwapNotFound is returned by a Store when no record exists
	// for the requested swap ID.
	ErrSwapNotFound = errors.New("swapdriver: swap not found")
)
