package mdcache

import "fmt"

// Rename moves the entry at (t, oldAddr) to (t, newAddr), preserving its
// object identity and every outstanding protect record. Renaming an address
// with nothing resident is a silent no-op — the entry must already have
// been displaced or was never loaded.
//
// oldAddr and newAddr may hash to the same slot; Rename handles that case
// in place rather than treating it as a self-displacement.
func (c *Cache[C]) Rename(t *Descriptor[C], oldAddr, newAddr Addr) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	iOld := c.table.Index(oldAddr)
	sOld := c.table.Slot(iOld)
	if !sOld.SameKey(t, oldAddr) {
		return nil
	}

	iNew := c.table.Index(newAddr)
	sNew := c.table.Slot(iNew)

	if iOld == iNew {
		object := sOld.Object
		n, moved := sOld.TakeProtects(newAddr)
		sOld.Install(t, newAddr, object)
		sOld.AdoptProtects(n, moved)
		return nil
	}

	if !sNew.Empty() {
		if sNew.Locked() {
			c.fatalLocked("displace-protected-entry", iNew, sNew.Type.ID(), sNew.Addr, sNew.NProtects(),
				fmt.Sprintf("renaming %s@%s to %s would displace protected %s@%s", t.Name(), oldAddr, newAddr, sNew.Type.Name(), sNew.Addr))
		}
		if err := c.flushSlotLocked(iNew, sNew, true); err != nil {
			return err
		}
	}

	object := sOld.Object
	n, moved := sOld.TakeProtects(newAddr)
	sOld.Clear()
	sNew.Install(t, newAddr, object)
	sNew.AdoptProtects(n, moved)
	return nil
}
