package mdcache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

// testContainer is an in-memory stand-in for the real on-disk container: a
// map of address to record plus a load counter, guarded by its own mutex so
// concurrent loader calls in tests don't race on the map itself.
type testContainer struct {
	mu      sync.Mutex
	records map[Addr]string
	loads   int32
}

func newTestContainer() *testContainer {
	return &testContainer{records: make(map[Addr]string)}
}

func (c *testContainer) put(a Addr, v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[a] = v
}

type record struct {
	Value string
	Dirty bool
}

func testLoad(c *testContainer, a Addr, _, _ any) (any, error) {
	atomic.AddInt32(&c.loads, 1)
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.records[a]
	if !ok {
		return nil, nil
	}
	return &record{Value: v}, nil
}

var errFlushFailed = errors.New("flush failed")

func testFlush(c *testContainer, destroy bool, a Addr, object any) error {
	r := object.(*record)
	if r.Dirty {
		c.mu.Lock()
		c.records[a] = r.Value
		c.mu.Unlock()
		r.Dirty = false
	}
	return nil
}

func failingFlush(c *testContainer, destroy bool, a Addr, object any) error {
	return errFlushFailed
}

func newTestCache(nslots int) (*Cache[*testContainer], *testContainer, *Descriptor[*testContainer]) {
	ctr := newTestContainer()
	d := NewDescriptor[*testContainer](BTreeNode, "btree", testLoad, testFlush)
	c := Create[*testContainer](ctr, nslots)
	return c, ctr, d
}

func mustProtect(t *testing.T, c *Cache[*testContainer], d *Descriptor[*testContainer], a Addr) any {
	t.Helper()
	obj, err := c.Protect(context.Background(), d, a, nil, nil)
	if err != nil {
		t.Fatalf("Protect(%s): %v", a, err)
	}
	return obj
}
