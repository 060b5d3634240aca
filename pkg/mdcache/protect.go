package mdcache

import (
	"context"
	"fmt"
)

// Protect is Find plus a pin: the returned object is guaranteed not to be
// displaced, flushed with destroy=true, or overwritten by Set until a
// matching Unprotect call releases it. Multiple Protect calls for the same
// (t, a) are allowed and each must be balanced by its own Unprotect.
func (c *Cache[C]) Protect(ctx context.Context, t *Descriptor[C], a Addr, udata1, udata2 any) (any, error) {
	c.mu.Lock()
	i := c.table.Index(a)
	s := c.table.Slot(i)
	if s.SameKey(t, a) {
		c.diag[t.ID()].NHits++
		c.metrics.incHit(t.ID())
		obj := s.Object
		s.AddProtect(t, a, obj)
		c.nprots++
		c.metrics.setProtects(c.nprots)
		c.mu.Unlock()
		return obj, nil
	}
	c.mu.Unlock()

	obj, _, err := c.loadAndInstall(ctx, t, a, udata1, udata2)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	i = c.table.Index(a)
	s = c.table.Slot(i)
	s.AddProtect(t, a, obj)
	c.nprots++
	c.metrics.setProtects(c.nprots)
	return obj, nil
}

// Unprotect releases one pin previously taken by Protect on (t, a, object).
// object must be the exact value Protect returned; unprotecting an entry
// that was never protected (or protecting-then-mismatching the object) is a
// programmer error and is fatal.
func (c *Cache[C]) Unprotect(t *Descriptor[C], a Addr, object any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.table.Index(a)
	s := c.table.Slot(i)
	if !s.SameKey(t, a) || !s.RemoveProtect(t, a, object) {
		c.fatalLocked("unprotect-without-matching-protect", i, t.ID(), a, s.NProtects(),
			fmt.Sprintf("Unprotect(%s@%s) has no matching Protect record", t.Name(), a))
	}
	c.nprots--
	c.metrics.setProtects(c.nprots)
}
