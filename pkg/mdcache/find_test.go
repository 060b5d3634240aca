package mdcache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindColdMissLoadsAndInstalls(t *testing.T) {
	c, ctr, d := newTestCache(16)
	ctr.put(42, "hello")

	obj, err := c.Find(context.Background(), d, 42, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "hello", obj.(*record).Value)
	require.Equal(t, Diagnostics{NMisses: 1, NInits: 1}, c.Stats(BTreeNode))
}

func TestFindWarmHitDoesNotReload(t *testing.T) {
	c, ctr, d := newTestCache(16)
	ctr.put(42, "hello")

	_, err := c.Find(context.Background(), d, 42, nil, nil)
	require.NoError(t, err)
	_, err = c.Find(context.Background(), d, 42, nil, nil)
	require.NoError(t, err)

	require.EqualValues(t, 1, atomic.LoadInt32(&ctr.loads))
	require.Equal(t, uint64(1), c.Stats(BTreeNode).NHits)
}

func TestFindUnknownAddressReturnsErrNotFound(t *testing.T) {
	c, _, d := newTestCache(16)
	obj, err := c.Find(context.Background(), d, 999, nil, nil)
	require.Nil(t, obj)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestFindCollisionDisplacesCleanEntry(t *testing.T) {
	c, ctr, d := newTestCache(1) // rounds up to two slots; addresses 1 and 3 share slot 0
	ctr.put(1, "a")
	ctr.put(3, "b")

	_, err := c.Find(context.Background(), d, 1, nil, nil)
	require.NoError(t, err)

	obj, err := c.Find(context.Background(), d, 3, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "b", obj.(*record).Value)
	require.Equal(t, uint64(1), c.Stats(BTreeNode).NFlushes)
}

func TestFindCollisionIntoProtectedSlotFatals(t *testing.T) {
	c, ctr, d := newTestCache(1) // two slots; addresses 1 and 3 share slot 0
	ctr.put(1, "a")
	ctr.put(3, "b")

	mustProtect(t, c, d, 1)

	require.Panics(t, func() {
		_, _ = c.Find(context.Background(), d, 3, nil, nil)
	})
}

func TestFindSurfacesWrappedLoadError(t *testing.T) {
	errLoad := errors.New("disk fell over")
	ctr := newTestContainer()
	d := NewDescriptor[*testContainer](BTreeNode, "btree",
		func(*testContainer, Addr, any, any) (any, error) { return nil, errLoad },
		testFlush)
	c := Create[*testContainer](ctr, 16)

	_, err := c.Find(context.Background(), d, 1, nil, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, errLoad))
	require.False(t, errors.Is(err, ErrNotFound))
}
