package mdcache

import "fmt"

// Set installs object at (t, a) unconditionally, displacing whatever else
// occupies that slot first. Unlike Find/Protect, Set never consults a
// loader — the caller already has the object in hand.
//
// Overwriting the object already resident at (t, a) while it is protected
// is refused fatally: existing protect records reference the old object by
// identity, and silently swapping it out from under them would leave those
// records dangling without any matching unprotect ever happening.
func (c *Cache[C]) Set(t *Descriptor[C], a Addr, object any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.table.Index(a)
	s := c.table.Slot(i)

	switch {
	case s.SameKey(t, a):
		if s.Locked() {
			c.fatalLocked("set-over-protected-entry", i, t.ID(), a, s.NProtects(),
				fmt.Sprintf("Set(%s@%s) would overwrite a protected object", t.Name(), a))
		}
	case !s.Empty():
		if s.Locked() {
			c.fatalLocked("displace-protected-entry", i, s.Type.ID(), s.Addr, s.NProtects(),
				fmt.Sprintf("Set(%s@%s) would displace protected %s@%s", t.Name(), a, s.Type.Name(), s.Addr))
		}
		if err := c.flushSlotLocked(i, s, true); err != nil {
			return err
		}
	}

	s.Install(t, a, object)
	c.diag[t.ID()].NInits++
	return nil
}
