package mdcache

import "github.com/voskan/mdcache/internal/slottable"

// FlushOne flushes the single entry resident at (t, a), if any. A miss is
// not an error — flushing an address nothing occupies is a no-op.
func (c *Cache[C]) FlushOne(t *Descriptor[C], a Addr, destroy bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.table.Index(a)
	s := c.table.Slot(i)
	if !s.SameKey(t, a) {
		return nil
	}
	return c.flushSlotLocked(i, s, destroy)
}

// FlushKind flushes every resident entry of kind t, in ascending slot
// order. Every slot is visited regardless of earlier errors; the first
// error encountered is returned.
func (c *Cache[C]) FlushKind(t *Descriptor[C], destroy bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var ferr error
	c.table.Each(func(i int, s *slottable.Slot[C]) {
		if s.Empty() || s.Type != t {
			return
		}
		if err := c.flushSlotLocked(i, s, destroy); err != nil && ferr == nil {
			ferr = err
		}
	})
	return ferr
}

// FlushAll flushes every resident entry of every kind, in ascending slot
// order. Every slot is visited regardless of earlier errors; the first
// error encountered is returned.
func (c *Cache[C]) FlushAll(destroy bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var ferr error
	c.table.Each(func(i int, s *slottable.Slot[C]) {
		if s.Empty() {
			return
		}
		if err := c.flushSlotLocked(i, s, destroy); err != nil && ferr == nil {
			ferr = err
		}
	})
	return ferr
}
