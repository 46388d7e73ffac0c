package dleq

import "fmt"

// ErrInvalidPointEncoding is raised when any of the five transcript
// points fails to decompress or is of small order. This is always a
// hard error: callers must abort rather than treat it as a failed
// verification.
var ErrInvalidPointEncoding = fmt.Errorf("dleq: invalid point encoding")

// ErrWrongFieldSize is raised when a caller hands ComputeChallenge a
// field of the wrong length; this indicates a programming error at the
// call site, not an adversarial transcript, so it is always returned as
// an error rather than folded into the soft true/false verdict.
var ErrWrongFieldSize = fmt.Errorf("dleq: transcript field must be 32 bytes")
