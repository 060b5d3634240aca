package mdcache

import (
	"fmt"
	"io"

	"github.com/voskan/mdcache/internal/entrykind"
)

// Debug writes a human-readable snapshot of the cache's bookkeeping to w:
// slot occupancy, outstanding protects, and per-kind hit/miss/init/flush
// counters.
func (c *Cache[C]) Debug(w io.Writer) error {
	c.mu.Lock()
	used, total := c.occupancyLocked()
	nprots := c.nprots
	diag := c.diag
	c.mu.Unlock()

	c.metrics.setOccupancy(used, total)

	if _, err := fmt.Fprintf(w, "mdcache: %d/%d slots occupied, %d protects outstanding\n", used, total, nprots); err != nil {
		return err
	}
	for k := Kind(0); k < entrykind.NTypes; k++ {
		d := diag[k]
		if _, err := fmt.Fprintf(w, "  %-16s hits=%d misses=%d inits=%d flushes=%d\n",
			k.String(), d.NHits, d.NMisses, d.NInits, d.NFlushes); err != nil {
			return err
		}
	}
	return nil
}
