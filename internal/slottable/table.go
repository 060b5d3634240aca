package slottable

import "github.com/voskan/mdcache/internal/addr"

// Table is the fixed-size vector of Slots, sized at construction time and
// never resized for the lifetime of the cache. A fresh Table with a
// different size is the only way to change capacity — callers destroy the
// old cache and create a new one.
type Table[C any] struct {
	slots []Slot[C]
}

// New allocates an all-empty table of exactly nslots slots.
func New[C any](nslots int) *Table[C] {
	if nslots <= 0 {
		panic("slottable: nslots must be positive")
	}
	return &Table[C]{slots: make([]Slot[C], nslots)}
}

// Len returns the table's fixed slot count.
func (t *Table[C]) Len() int { return len(t.slots) }

// Index computes the slot a lands in: hash(a) mod nslots.
func (t *Table[C]) Index(a addr.Addr) int {
	return int(a.Hash() % uint64(len(t.slots)))
}

// Slot returns a pointer to the i'th slot for in-place mutation.
func (t *Table[C]) Slot(i int) *Slot[C] { return &t.slots[i] }

// Each calls fn for every slot in ascending index order, the ordering
// whole-cache and by-type Flush rely on.
func (t *Table[C]) Each(fn func(i int, s *Slot[C])) {
	for i := range t.slots {
		fn(i, &t.slots[i])
	}
}
