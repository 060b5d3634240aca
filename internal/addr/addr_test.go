package addr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashDeterministic(t *testing.T) {
	a := Addr(12345)
	require.Equal(t, a.Hash(), a.Hash())
}

func TestHashDistributesOverAlignedAddresses(t *testing.T) {
	// Addresses aligned to a 4KiB block boundary must not collapse onto the
	// same slot index after reduction modulo a small prime: this is the
	// entire reason the hasher exists.
	const nslots = 97 // prime
	seen := map[uint64]bool{}
	for i := uint64(0); i < 64; i++ {
		a := Addr(i * 4096)
		idx := a.Hash() % nslots
		seen[idx] = true
	}
	require.Greater(t, len(seen), 1, "aligned addresses must spread across slots")
}

func TestEqual(t *testing.T) {
	require.True(t, Addr(5).Equal(Addr(5)))
	require.False(t, Addr(5).Equal(Addr(6)))
}

func TestString(t *testing.T) {
	require.Equal(t, "0xff", Addr(255).String())
}
