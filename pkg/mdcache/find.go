package mdcache

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Find looks up (t, a). If a matching entry is resident it is returned
// directly on the fast path. Otherwise the registered loader is invoked,
// the result is installed into the table — possibly displacing whatever
// else occupies that slot — and then returned. A loader that reports
// (nil, nil) is a clean miss: Find returns (nil, ErrNotFound).
func (c *Cache[C]) Find(ctx context.Context, t *Descriptor[C], a Addr, udata1, udata2 any) (any, error) {
	if obj, ok := c.findFast(t, a); ok {
		return obj, nil
	}
	obj, _, err := c.loadAndInstall(ctx, t, a, udata1, udata2)
	return obj, err
}

func (c *Cache[C]) findFast(t *Descriptor[C], a Addr) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.table.Index(a)
	s := c.table.Slot(i)
	if !s.SameKey(t, a) {
		return nil, false
	}
	c.diag[t.ID()].NHits++
	c.metrics.incHit(t.ID())
	return s.Object, true
}

// loadAndInstall is the shared miss path for Find and Protect: it invokes
// t's loader (coalescing concurrent callers for the same key via
// singleflight), handles displacing whatever currently occupies the
// target slot, and installs the freshly loaded object. Caller must NOT
// hold c.mu.
func (c *Cache[C]) loadAndInstall(ctx context.Context, t *Descriptor[C], a Addr, udata1, udata2 any) (object any, slotIndex int, err error) {
	if err := ctx.Err(); err != nil {
		return nil, -1, err
	}

	i, ferr := func() (int, error) {
		c.mu.Lock()
		defer c.mu.Unlock()
		i := c.table.Index(a)
		s := c.table.Slot(i)
		c.diag[t.ID()].NMisses++
		c.metrics.incMiss(t.ID())

		if !s.Empty() && !s.SameKey(t, a) {
			if s.Locked() {
				c.fatalLocked("displace-protected-entry", i, s.Type.ID(), s.Addr, s.NProtects(),
					fmt.Sprintf("loading %s@%s would displace protected %s@%s", t.Name(), a, s.Type.Name(), s.Addr))
			}
			return i, c.flushSlotLocked(i, s, true)
		}
		return i, nil
	}()
	if ferr != nil {
		return nil, i, ferr
	}

	key := loadKey(t.ID(), a)
	res, loadErr, _ := c.group.Do(key, func() (any, error) {
		obj, lerr := t.Load(c.container, a, udata1, udata2)
		if lerr != nil {
			return nil, lerr
		}
		if obj == nil {
			return nil, ErrNotFound
		}
		return obj, nil
	})
	if loadErr != nil {
		if errors.Is(loadErr, ErrNotFound) {
			return nil, i, ErrNotFound
		}
		if c.logger != nil {
			c.logger.Warn("mdcache: load callback failed",
				zap.String("kind", t.Name()), zap.String("addr", a.String()), zap.Error(loadErr))
		}
		return nil, i, fmt.Errorf("mdcache: load %s@%s: %w", t.Name(), a, loadErr)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i = c.table.Index(a)
	s := c.table.Slot(i)
	if s.SameKey(t, a) {
		// Another goroutine's singleflight-coalesced call (or a race that
		// installed the same key) already won; don't clobber its object.
		c.diag[t.ID()].NInits++
		return s.Object, i, nil
	}
	if !s.Empty() {
		if s.Locked() {
			c.fatalLocked("displace-protected-entry", i, s.Type.ID(), s.Addr, s.NProtects(),
				fmt.Sprintf("installing %s@%s would displace protected %s@%s", t.Name(), a, s.Type.Name(), s.Addr))
		}
		if ferr := c.flushSlotLocked(i, s, true); ferr != nil {
			return nil, i, ferr
		}
	}
	s.Install(t, a, res)
	c.diag[t.ID()].NInits++
	return res, i, nil
}
