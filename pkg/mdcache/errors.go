package mdcache

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Find and Protect when no entry is resident
// for (type, addr) and the registered loader reports, via (nil, nil), that
// the entry genuinely does not exist — a clean miss, never an error.
var ErrNotFound = errors.New("mdcache: not found")

// InvariantError reports a programmer-contract violation: unprotecting a
// record that was never protected, destroying a cache with outstanding
// protects, or displacing or mutating a protected entry. These are fatal —
// the cache never returns an *InvariantError to a caller as a recoverable
// value; it is logged and then given to panic. Registering an unknown entry
// kind is also fatal, but NewDescriptor panics with a plain string message
// rather than an *InvariantError.
type InvariantError struct {
	Rule      string // which invariant/contract was violated
	SlotIndex int    // -1 when the violation isn't slot-specific
	Kind      Kind
	Addr      Addr
	NProtects int
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("mdcache: invariant violation %q at slot %d (kind=%s addr=%s nprotects=%d): %s",
		e.Rule, e.SlotIndex, e.Kind, e.Addr, e.NProtects, e.Detail)
}
