package l2claim

import (
	"os"

	"github.com/go-errors/errors"
)

// ErrGuardAlreadyHeld is returned by AcquireGuard when the guard file
// already exists, meaning a previous attempt at this claim is either
// in flight or already completed.
var ErrGuardAlreadyHeld = errors.New("l2claim: replay guard already held")

// Guard is a filesystem-backed replay guard: its existence at path
// marks a claim as in progress. It is released (the file removed) on
// Release unless Commit has already been called, so a claim that
// completes leaves the guard in place while one that fails partway
// through cleans up after itself.
type Guard struct {
	path      string
	committed bool
}

// AcquireGuard creates the guard file with exclusive-create semantics,
// failing if it already exists.
func AcquireGuard(path string) (*Guard, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrGuardAlreadyHeld
		}
		return nil, errors.Errorf("l2claim: acquiring replay guard: %v", err)
	}
	defer f.Close()

	return &Guard{path: path}, nil
}

// Commit marks the guard as successfully used; Release becomes a
// no-op once committed.
func (g *Guard) Commit() {
	g.committed = true
}

// Release removes the guard file unless Commit was called. It is safe
// to call multiple times.
func (g *Guard) Release() error {
	if g.committed {
		return nil
	}
	if err := os.Remove(g.path); err != nil && !os.IsNotExist(err) {
		return errors.Errorf("l2claim: releasing replay guard: %v", err)
	}
	return nil
}
