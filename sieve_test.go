package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarBatchEquivalence(t *testing.T) {
	const bound = 64
	data, err := newPrecomputedData(3, 4, 5, bound, bound)
	require.NoError(t, err)

	// Every block alignment: the batched path must reproduce the scalar
	// decision lane for lane, and clear lanes past BMax.
	for A := uint64(1); A <= bound; A++ {
		for bStart := uint64(1); bStart <= bound; bStart++ {
			survivors := sieveSurvives8(A, bStart, data)

			for lane := uint64(0); lane < 8; lane++ {
				B := bStart + lane
				got := survivors&(1<<lane) != 0

				if B > bound {
					assert.False(t, got, "A=%d B=%d beyond BMax must be cleared", A, B)
					continue
				}

				want := sieveSurvivesScalar(A, B, data)
				assert.Equal(t, want, got, "A=%d B=%d", A, B)
			}
		}
	}
}

func TestSieveSoundness(t *testing.T) {
	// Pairs from true equations always survive, whatever their gcd.
	cases := []struct {
		a, b    uint64
		x, y, z uint32
		name    string
	}{
		{2, 2, 6, 6, 7, "2^6 + 2^6 = 2^7"},
		{2, 2, 3, 3, 4, "2^3 + 2^3 = 2^4"},
		{7, 7, 3, 4, 3, "7^3 + 7^4 = 14^3"},
		{3, 6, 3, 3, 5, "3^3 + 6^3 = 3^5"},
	}

	for _, tc := range cases {
		data, err := newPrecomputedData(tc.x, tc.y, tc.z, tc.a, tc.b)
		require.NoError(t, err, tc.name)
		assert.True(t, sieveSurvivesScalar(tc.a, tc.b, data), tc.name)

		// The batched path agrees.
		bStart := tc.b - min(tc.b-1, 3)
		survivors := sieveSurvives8(tc.a, bStart, data)
		assert.NotZero(t, survivors&(1<<(tc.b-bStart)), tc.name)
	}
}

func TestCountSieveSurvivors(t *testing.T) {
	data, err := newPrecomputedData(3, 4, 5, 100, 100)
	require.NoError(t, err)

	// Coprime survivors of the 20-prime sieve for (3,4,5) on [1,100]^2.
	assert.Equal(t, uint64(3), countSieveSurvivors(1, 100, 1, 100, data))
}
