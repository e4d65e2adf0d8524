// Package bounded provides fixed-capacity containers for message fields.
//
// Every container allocates its storage exactly once, at construction, and
// never grows. Filling operations fail with ErrFull instead of reallocating,
// which keeps encode and decode paths free of hidden allocation.
package bounded

import (
	"errors"
)

// ErrFull reports that a container is at capacity.
var ErrFull = errors.New("capacity exceeded")
