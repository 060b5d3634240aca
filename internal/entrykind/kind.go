// Package entrykind defines the cache's closed entry-type enumeration and
// the per-kind descriptor that carries a kind's load/flush callbacks.
//
// Registration is static: each Kind has exactly one immortal *Descriptor,
// and two descriptors compare equal by pointer identity, never
// structurally — the closed enumeration is a feature (bounded diagnostics
// array, well-known flush ordering), not a limitation to work around with a
// dynamic plugin registry.
//
// © 2025 mdcache authors. MIT License.
package entrykind

import (
	"fmt"

	"github.com/voskan/mdcache/internal/addr"
)

// Kind is the stable small-integer identity of a cached entry's type.
type Kind uint8

const (
	BTreeNode Kind = iota
	SymbolTableNode
	Heap
	ObjectHeader

	// NTypes must stay last: it sizes every per-kind diagnostics array in
	// the cache. Extending the enumeration requires recompiling the whole
	// subsystem, by design.
	NTypes
)

func (k Kind) String() string {
	switch k {
	case BTreeNode:
		return "btree-node"
	case SymbolTableNode:
		return "symbol-table-node"
	case Heap:
		return "heap"
	case ObjectHeader:
		return "object-header"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

func (k Kind) valid() bool { return k < NTypes }

// Diagnostics holds the four per-kind counters a quiescent cache must be
// able to report: hits, misses, entry installs (successful loads and Set
// calls), and flush invocations.
type Diagnostics struct {
	NHits     uint64
	NMisses   uint64
	NInits    uint64
	NFlushes  uint64
}

// LoadFunc constructs a fresh in-memory object from the container at addr.
// udata1 is read-only caller-supplied context; udata2 is an opaque in/out
// scratch channel the cache forwards unchanged and never inspects.
type LoadFunc[C any] func(container C, at addr.Addr, udata1, udata2 any) (any, error)

// FlushFunc writes an object back to the container iff it is dirty, clears
// the dirty flag on success, and releases the object's memory iff destroy
// is true. The dirty flag itself is owned by the object, not the cache.
type FlushFunc[C any] func(container C, destroy bool, at addr.Addr, object any) error

// Descriptor is the compile-time identity of an EntryKind together with its
// load/flush callbacks. The cache never compares descriptors structurally:
// two *Descriptor values are the "same type" iff they are the same pointer.
type Descriptor[C any] struct {
	id    Kind
	name  string
	load  LoadFunc[C]
	flush FlushFunc[C]
}

// NewDescriptor registers a new entry type. id must be one of the closed
// enumeration's values; passing an unregistered/out-of-range id is a
// programmer error and panics immediately rather than producing a
// descriptor the cache would later reject at a less obvious call site.
func NewDescriptor[C any](id Kind, name string, load LoadFunc[C], flush FlushFunc[C]) *Descriptor[C] {
	if !id.valid() {
		panic(fmt.Sprintf("entrykind: NewDescriptor: invalid kind %d", id))
	}
	if load == nil || flush == nil {
		panic("entrykind: NewDescriptor: load and flush must both be non-nil")
	}
	return &Descriptor[C]{id: id, name: name, load: load, flush: flush}
}

// ID returns the descriptor's stable kind identifier.
func (d *Descriptor[C]) ID() Kind { return d.id }

// Name returns the descriptor's diagnostic name.
func (d *Descriptor[C]) Name() string { return d.name }

// Load invokes the registered loader.
func (d *Descriptor[C]) Load(container C, at addr.Addr, udata1, udata2 any) (any, error) {
	return d.load(container, at, udata1, udata2)
}

// Flush invokes the registered flush callback.
func (d *Descriptor[C]) Flush(container C, destroy bool, at addr.Addr, object any) error {
	return d.flush(container, destroy, at, object)
}
