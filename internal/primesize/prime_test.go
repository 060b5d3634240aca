package primesize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundUpKnownValues(t *testing.T) {
	cases := map[int]int{
		1:     2,
		2:     2,
		3:     3,
		4:     5,
		10:    11,
		10330: 10331, // Default (10,330) itself isn't prime
		10331: 10331, // already prime
	}
	for hint, want := range cases {
		require.Equal(t, want, RoundUp(hint), "hint=%d", hint)
	}
}

func TestRoundUpAlwaysPrime(t *testing.T) {
	for hint := 0; hint < 2000; hint++ {
		n := RoundUp(hint)
		require.True(t, isPrime(n), "RoundUp(%d) = %d is not prime", hint, n)
		require.GreaterOrEqual(t, n, hint)
	}
}

func TestDefaultRoundsToKnownPrime(t *testing.T) {
	require.Equal(t, 10331, RoundUp(Default))
}
