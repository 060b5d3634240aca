package mdcache

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/voskan/mdcache/internal/entrykind"
	"github.com/voskan/mdcache/internal/primesize"
	"github.com/voskan/mdcache/internal/slottable"
)

// Cache is the metadata object cache: a process-local write-back cache
// attached to one container instance of type C. It owns a fixed-size
// direct-mapped slot table, protect-set bookkeeping, and one Diagnostics
// record per EntryKind. The Find, Set, Protect, Unprotect, Flush*, Rename,
// Debug methods implement its operations facade.
//
// A Cache is safe for concurrent use by multiple goroutines: bookkeeping
// is serialised by an internal mutex, and concurrent misses for the same
// (type, addr) are coalesced through singleflight so only one loader call
// executes. This widens the single-threaded-per-container-handle model to
// the common Go case of several goroutines sharing one container handle; it
// does not relax any of the protect/unprotect or displacement invariants.
type Cache[C any] struct {
	mu        sync.Mutex
	container C
	table     *slottable.Table[C]
	nprots    int
	diag      [entrykind.NTypes]Diagnostics

	logger  *zap.Logger
	metrics metricsSink
	group   singleflight.Group
	clock   func() time.Time
}

// Create allocates a fresh cache attached to container, with a slot table
// sized from sizeHint (rounded up to the next prime; <=0 selects the
// default of 10,330). All slots start empty.
func Create[C any](container C, sizeHint int, opts ...Option) *Cache[C] {
	cfg := defaultConfig()
	if sizeHint > 0 {
		cfg.sizeHint = sizeHint
	}
	for _, opt := range opts {
		opt(cfg)
	}

	n := primesize.RoundUp(cfg.sizeHint)
	return &Cache[C]{
		container: container,
		table:     slottable.New[C](n),
		logger:    cfg.logger,
		metrics:   newMetricsSink(cfg.registry),
		clock:     cfg.clock,
	}
}

// Nslots returns the fixed slot count chosen at Create time.
func (c *Cache[C]) Nslots() int { return c.table.Len() }

// NProtects returns cache.nprots, the sum of every slot's protect-set
// length.
func (c *Cache[C]) NProtects() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nprots
}

// Occupancy returns how many of the table's slots currently hold a live
// entry, out of the fixed total.
func (c *Cache[C]) Occupancy() (used, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	used, total = c.occupancyLocked()
	c.metrics.setOccupancy(used, total)
	return used, total
}

func (c *Cache[C]) occupancyLocked() (used, total int) {
	total = c.table.Len()
	c.table.Each(func(_ int, s *slottable.Slot[C]) {
		if !s.Empty() {
			used++
		}
	})
	return used, total
}

// Stats returns a snapshot of kind's four diagnostic counters.
func (c *Cache[C]) Stats(k Kind) Diagnostics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.diag[k]
}

// Destroy performs Flush(all, destroy=true) and then releases the slot
// table. It refuses — fatally — if any protect remains outstanding.
func (c *Cache[C]) Destroy() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.nprots != 0 {
		c.fatalLocked("destroy-with-outstanding-protects", -1, 0, UndefinedAddr, c.nprots,
			"Destroy called while cache.nprots != 0")
	}

	var ferr error
	c.table.Each(func(i int, s *slottable.Slot[C]) {
		if ferr != nil || s.Empty() {
			return
		}
		if err := c.flushSlotLocked(i, s, true); err != nil && ferr == nil {
			ferr = err
		}
	})
	c.table = nil
	return ferr
}

// flushSlotLocked flushes a non-empty slot's entry, counting the
// invocation against its kind's NFlushes. Flushing a protected entry with
// destroy=true is fatal. On a flush error the slot is still cleared when
// destroy is true — a half-flushed displaced entry would leave the table
// and the container disagreeing about what's resident, so the object is
// gone either way. Caller must hold c.mu.
func (c *Cache[C]) flushSlotLocked(i int, s *slottable.Slot[C], destroy bool) error {
	if s.Empty() {
		return nil
	}
	if destroy && s.Locked() {
		c.fatalLocked("flush-destroy-protected-entry", i, s.Type.ID(), s.Addr, s.NProtects(),
			fmt.Sprintf("flush(destroy=true) on %s@%s would release a protected object", s.Type.Name(), s.Addr))
	}

	t, a, obj := s.Type, s.Addr, s.Object
	err := t.Flush(c.container, destroy, a, obj)
	c.diag[t.ID()].NFlushes++
	c.metrics.incFlush(t.ID())

	if destroy {
		s.Clear()
	}
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("mdcache: flush callback failed",
				zap.String("kind", t.Name()), zap.String("addr", a.String()),
				zap.Bool("destroy", destroy), zap.Error(err))
		}
		return fmt.Errorf("mdcache: flush %s@%s: %w", t.Name(), a, err)
	}
	return nil
}

// fatalLocked logs the invariant violated, the slot index, the protect-set
// state, and the conflicting keys, then panics. Caller must hold c.mu;
// fatalLocked never returns.
func (c *Cache[C]) fatalLocked(rule string, slotIndex int, k Kind, a Addr, nprotects int, detail string) {
	ierr := &InvariantError{
		Rule:      rule,
		SlotIndex: slotIndex,
		Kind:      k,
		Addr:      a,
		NProtects: nprotects,
		Detail:    detail,
	}
	if c.logger != nil {
		c.logger.Error("mdcache: invariant violation",
			zap.String("rule", rule), zap.Int("slot", slotIndex),
			zap.String("kind", k.String()), zap.String("addr", a.String()),
			zap.Int("nprotects", nprotects), zap.String("detail", detail))
	}
	panic(ierr)
}

func loadKey(k Kind, a Addr) string {
	return k.String() + "@" + a.String()
}
