package entrykind

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voskan/mdcache/internal/addr"
)

type fakeContainer struct{}

func noopLoad(fakeContainer, addr.Addr, any, any) (any, error)       { return "obj", nil }
func noopFlush(fakeContainer, bool, addr.Addr, any) error            { return nil }

func TestNewDescriptorIdentity(t *testing.T) {
	d1 := NewDescriptor[fakeContainer](BTreeNode, "btree", noopLoad, noopFlush)
	d2 := NewDescriptor[fakeContainer](BTreeNode, "btree", noopLoad, noopFlush)

	require.Equal(t, BTreeNode, d1.ID())
	// Same kind, different descriptor instances must not compare equal: the
	// cache keys on pointer identity, not structural equality.
	require.NotSame(t, d1, d2)
	require.True(t, d1 == d1)
}

func TestNewDescriptorRejectsUnknownKind(t *testing.T) {
	require.Panics(t, func() {
		NewDescriptor[fakeContainer](NTypes, "bogus", noopLoad, noopFlush)
	})
}

func TestNewDescriptorRejectsNilCallbacks(t *testing.T) {
	require.Panics(t, func() {
		NewDescriptor[fakeContainer](Heap, "heap", nil, noopFlush)
	})
	require.Panics(t, func() {
		NewDescriptor[fakeContainer](Heap, "heap", noopLoad, nil)
	})
}

func TestKindString(t *testing.T) {
	require.Equal(t, "btree-node", BTreeNode.String())
	require.Equal(t, "object-header", ObjectHeader.String())
	require.Contains(t, Kind(200).String(), "kind(")
}
