// Package addr defines the opaque on-container address type shared by the
// metadata cache and its entry-type descriptors.
//
// © 2025 mdcache authors. MIT License.
package addr

import "strconv"

// Addr identifies a byte offset inside the backing container. Two Addr
// values are equal iff they refer to the same on-container byte offset;
// Addr is deliberately a plain comparable value (not a pointer) so that it
// can be used as a map/slot key without an Equal method.
type Addr uint64

// Undefined is the zero address, reserved to mean "no address"; callers
// constructing a real on-disk address never produce Undefined for a live
// entry.
const Undefined Addr = 0

// Hash returns a well-distributed 64-bit value derived from a, suitable for
// reduction modulo a prime slot count. It is pure, total and branch-light —
// the whole function is the cache's address hasher (the only job it has).
//
// We use the 64-bit finalizer from Murmur3/SplitMix-style mixers: a few
// xor-shift/multiply rounds are enough to spread the low bits of file
// offsets (which cluster on block-size boundaries) across the full 64-bit
// range before the caller reduces modulo nslots.
func (a Addr) Hash() uint64 {
	h := uint64(a)
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}

// Equal reports whether a and b refer to the same on-container byte offset.
func (a Addr) Equal(b Addr) bool { return a == b }

// String renders the address in the hexadecimal form used throughout the
// cache's diagnostics and fatal-error messages.
func (a Addr) String() string {
	return "0x" + strconv.FormatUint(uint64(a), 16)
}
