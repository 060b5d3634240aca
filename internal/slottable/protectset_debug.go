//go:build !mdcache_noprotectdebug

// This file is the default build: the protect-set is always maintained so
// a full record of who holds each pin is available for diagnostics and
// fatal-error reporting. The cost is one small slice per slot, negligible
// next to loader I/O.
//
// © 2025 mdcache authors. MIT License.
package slottable

import (
	"github.com/voskan/mdcache/internal/addr"
	"github.com/voskan/mdcache/internal/entrykind"
)

// protectSet is the per-slot multiset of currently-protected
// (type, addr, object) triples, used to enforce that a protected entry is
// never displaced.
type protectSet[C any] struct {
	records []ProtectRecord[C]
}

func (p *protectSet[C]) len() int { return len(p.records) }

func (p *protectSet[C]) append(r ProtectRecord[C]) {
	p.records = append(p.records, r)
}

// remove drops the most recently appended record matching (t, a, obj);
// reports whether a match was found.
func (p *protectSet[C]) remove(t *entrykind.Descriptor[C], a addr.Addr, obj any) bool {
	for i := len(p.records) - 1; i >= 0; i-- {
		r := p.records[i]
		if r.Type == t && r.Addr == a && r.Object == obj {
			p.records = append(p.records[:i], p.records[i+1:]...)
			return true
		}
	}
	return false
}

// takeAll empties the set, rewrites every record's addr field to newAddr,
// and returns them for the caller to hand to the destination slot's adopt,
// used by Rename. Every record in a slot's protect-set necessarily shares
// that slot's current (type, addr) key, so "take everything" and "take
// what matches the old key" are the same operation.
func (p *protectSet[C]) takeAll(newAddr addr.Addr) (n int, moved []ProtectRecord[C]) {
	moved = p.records
	for i := range moved {
		moved[i].Addr = newAddr
	}
	p.records = nil
	return len(moved), moved
}

// adopt absorbs records moved from another slot's protect-set during a
// rename, preserving their count exactly.
func (p *protectSet[C]) adopt(n int, records []ProtectRecord[C]) {
	p.records = append(p.records, records...)
}

func (p *protectSet[C]) snapshot() []ProtectRecord[C] {
	out := make([]ProtectRecord[C], len(p.records))
	copy(out, p.records)
	return out
}
