package mdcache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlushOneWritesBackDirtyEntry(t *testing.T) {
	c, ctr, d := newTestCache(16)
	require.NoError(t, c.Set(d, 1, &record{Value: "v1", Dirty: true}))

	require.NoError(t, c.FlushOne(d, 1, false))

	ctr.mu.Lock()
	got := ctr.records[1]
	ctr.mu.Unlock()
	require.Equal(t, "v1", got)
}

func TestFlushOneOnEmptyAddressIsNoop(t *testing.T) {
	c, _, d := newTestCache(16)
	require.NoError(t, c.FlushOne(d, 404, true))
}

func TestFlushOneDestroyOnProtectedEntryFatals(t *testing.T) {
	c, ctr, d := newTestCache(16)
	ctr.put(1, "v")
	obj := mustProtect(t, c, d, 1)

	require.Panics(t, func() {
		_ = c.FlushOne(d, 1, true)
	})
	c.Unprotect(d, 1, obj)
}

func TestFlushAllVisitsEverySlot(t *testing.T) {
	c, _, d := newTestCache(16)
	for _, a := range []Addr{1, 2, 4} { // three distinct slots of 17
		require.NoError(t, c.Set(d, a, &record{Value: "v", Dirty: true}))
	}

	require.NoError(t, c.FlushAll(true))
	used, _ := c.Occupancy()
	require.Equal(t, 0, used)
	require.Equal(t, uint64(3), c.Stats(BTreeNode).NFlushes)
}

func TestFlushKindSkipsOtherKinds(t *testing.T) {
	c, ctr, btree := newTestCache(16)
	heap := NewDescriptor[*testContainer](Heap, "heap", testLoad, testFlush)

	require.NoError(t, c.Set(btree, 1, &record{Value: "b"}))
	require.NoError(t, c.Set(heap, 2, &record{Value: "h"}))

	require.NoError(t, c.FlushKind(btree, true))
	used, _ := c.Occupancy()
	require.Equal(t, 1, used)
	_ = ctr
}

func TestFlushPropagatesCallbackErrorButStillClearsOnDestroy(t *testing.T) {
	ctr := newTestContainer()
	d := NewDescriptor[*testContainer](BTreeNode, "btree", testLoad, failingFlush)
	c := Create[*testContainer](ctr, 16)
	require.NoError(t, c.Set(d, 1, &record{Value: "v"}))

	err := c.FlushOne(d, 1, true)
	require.Error(t, err)

	_, err = c.Find(context.Background(), d, 1, nil, nil)
	require.ErrorIs(t, err, ErrNotFound)
}
