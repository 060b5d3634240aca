// Package slottable implements the cache's fixed-size direct-mapped slot
// array: one slot per address bucket, no secondary probing, no LRU chain,
// no overflow region. It knows nothing about loaders, flushers, or the
// operations facade — those live in the mdcache package, which drives this
// table and decides when to call a descriptor's Flush before clearing a
// slot.
//
// © 2025 mdcache authors. MIT License.
package slottable

import (
	"github.com/voskan/mdcache/internal/addr"
	"github.com/voskan/mdcache/internal/entrykind"
)

// ProtectRecord is one entry of a slot's protect-set: a pinned
// (type, addr, object) triple that must not be displaced until the matching
// Unprotect call removes it.
type ProtectRecord[C any] struct {
	Type   *entrykind.Descriptor[C]
	Addr   addr.Addr
	Object any
}

// Slot holds either nothing ("empty", Type == nil) or exactly one resident
// entry plus that entry's protect-set.
type Slot[C any] struct {
	Type     *entrykind.Descriptor[C]
	Addr     addr.Addr
	Object   any
	protects protectSet[C]
}

// Empty reports whether the slot currently holds no entry.
func (s *Slot[C]) Empty() bool { return s.Type == nil }

// SameKey reports whether the slot currently holds exactly (t, a).
func (s *Slot[C]) SameKey(t *entrykind.Descriptor[C], a addr.Addr) bool {
	return !s.Empty() && s.Type == t && s.Addr == a
}

// Locked reports whether any protect record is attached to this slot —
// once true, no operation but the matching Unprotect may touch the entry.
func (s *Slot[C]) Locked() bool { return s.protects.len() > 0 }

// NProtects returns the number of outstanding protect records on this slot.
func (s *Slot[C]) NProtects() int { return s.protects.len() }

// Install overwrites the slot with a fresh entry and no protect records.
// Callers must have already flushed and cleared any prior occupant.
func (s *Slot[C]) Install(t *entrykind.Descriptor[C], a addr.Addr, object any) {
	s.Type = t
	s.Addr = a
	s.Object = object
	s.protects = protectSet[C]{}
}

// Clear empties the slot. Callers must have already flushed any occupant
// and verified it is not locked.
func (s *Slot[C]) Clear() {
	*s = Slot[C]{}
}

// AddProtect appends a new protect record for the slot's current entry.
func (s *Slot[C]) AddProtect(t *entrykind.Descriptor[C], a addr.Addr, object any) {
	s.protects.append(ProtectRecord[C]{Type: t, Addr: a, Object: object})
}

// RemoveProtect removes the most recent matching protect record, reporting
// whether one was found.
func (s *Slot[C]) RemoveProtect(t *entrykind.Descriptor[C], a addr.Addr, object any) bool {
	return s.protects.remove(t, a, object)
}

// ProtectSnapshot returns a copy of the slot's current protect-set, for
// diagnostics and fatal-error reporting. May be empty under the
// mdcache_noprotectdebug build tag even when NProtects() > 0.
func (s *Slot[C]) ProtectSnapshot() []ProtectRecord[C] {
	return s.protects.snapshot()
}

// TakeProtects empties the slot's protect-set, rewriting every record's
// address to newAddr, and returns what was taken so the caller can hand it
// to another slot's AdoptProtects (used by Rename).
func (s *Slot[C]) TakeProtects(newAddr addr.Addr) (n int, moved []ProtectRecord[C]) {
	return s.protects.takeAll(newAddr)
}

// AdoptProtects absorbs protect records taken from another slot.
func (s *Slot[C]) AdoptProtects(n int, moved []ProtectRecord[C]) {
	s.protects.adopt(n, moved)
}
