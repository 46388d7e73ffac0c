package curveutil

import "fmt"

// ErrInvalidPointEncoding is returned whenever a 32-byte buffer fails to
// decompress to a valid curve point, or decompresses to a point of small
// order. This is always a hard error: callers must abort rather than
// treat it as a soft verification failure.
var ErrInvalidPointEncoding = fmt.Errorf("curveutil: invalid point encoding")
