// Package mdcache implements the metadata object cache: a process-local
// write-back cache that sits between a file-container manager and its
// on-disk structures. It amortises decode cost via a fixed-size
// direct-mapped slot table, centralises dirty-tracking so a flush writes
// back exactly the mutated structures, and exposes a protect/unprotect
// contract for pinning a live object to a stable address for the duration
// of a logical operation.
//
// The cache is generic over the container type C: C is whatever the
// caller's file/container abstraction looks like, forwarded unchanged to
// every registered loader and flusher. The cache itself never calls into
// C — only the callbacks do.
//
// © 2025 mdcache authors. MIT License.
package mdcache

import (
	"github.com/voskan/mdcache/internal/addr"
	"github.com/voskan/mdcache/internal/entrykind"
)

// Addr is an opaque, equality- and hash-comparable identifier for a byte
// offset inside the backing container.
type Addr = addr.Addr

// UndefinedAddr is the zero Addr, reserved to mean "no address."
const UndefinedAddr = addr.Undefined

// Kind is the stable small-integer identity of a cached entry's type. The
// enumeration is closed: BTreeNode, SymbolTableNode, Heap, and
// ObjectHeader are the only values the cache understands, and it is
// extended only by recompiling the whole subsystem.
type Kind = entrykind.Kind

const (
	BTreeNode       = entrykind.BTreeNode
	SymbolTableNode = entrykind.SymbolTableNode
	Heap            = entrykind.Heap
	ObjectHeader    = entrykind.ObjectHeader
)

// Descriptor is the compile-time identity of an EntryKind plus its
// load/flush callbacks. Two *Descriptor values are the "same type" iff
// they are the same pointer — the cache never compares descriptors
// structurally.
type Descriptor[C any] = entrykind.Descriptor[C]

// LoadFunc constructs a fresh in-memory object from the container at a
// given address. udata1 is read-only caller context; udata2 is an opaque
// in/out scratch channel the cache forwards unchanged.
//
// Returning (nil, nil) tells the cache the entry genuinely does not exist
// at that address — a clean miss, surfaced to the caller as ErrNotFound.
// Returning a non-nil error reports an I/O failure, surfaced wrapped.
type LoadFunc[C any] = entrykind.LoadFunc[C]

// FlushFunc writes an object back to the container iff it is dirty, clears
// the dirty flag on success, and releases the object's memory iff destroy
// is true.
type FlushFunc[C any] = entrykind.FlushFunc[C]

// Diagnostics holds one entry kind's four counters: hits, misses, entry
// installs (successful loads and Set calls), and flush invocations.
type Diagnostics = entrykind.Diagnostics

// NewDescriptor registers a new entry type, identified by a closed-kind
// value and named for diagnostics. id must be one of the package's Kind
// constants; anything else panics immediately.
func NewDescriptor[C any](id Kind, name string, load LoadFunc[C], flush FlushFunc[C]) *Descriptor[C] {
	return entrykind.NewDescriptor[C](id, name, load, flush)
}
