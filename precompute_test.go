package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func maskToSet(m mask128, p uint32) map[uint32]bool {
	set := make(map[uint32]bool)
	for r := uint32(0); r < p; r++ {
		if m.has(r) {
			set[r] = true
		}
	}
	return set
}

func TestResidueMaskKnownSets(t *testing.T) {
	// Cubes mod 7 are {0, 1, 6}.
	assert.Equal(t, mask128{1<<0 | 1<<1 | 1<<6, 0}, computeResidueMask128(7, 3))

	// 5th powers mod 11 are {0, 1, 10}.
	assert.Equal(t, mask128{1<<0 | 1<<1 | 1<<10, 0}, computeResidueMask128(11, 5))

	// Cubes mod 13 are {0, 1, 5, 8, 12}.
	assert.Equal(t, map[uint32]bool{0: true, 1: true, 5: true, 8: true, 12: true},
		maskToSet(computeResidueMask128(13, 3), 13))
}

func TestResidueMaskUpperWordRegression(t *testing.T) {
	// 70^3 ≡ 70 (mod 71): bit 70 lives in the upper mask word.
	m := computeResidueMask128(71, 3)
	assert.True(t, m.has(70))
	assert.NotEqual(t, uint64(0), m[1])
}

func TestResidueMaskMatchesBruteForce(t *testing.T) {
	for _, p8 := range sievePrimes {
		p := uint32(p8)
		for z := uint32(3); z <= 7; z++ {
			m := computeResidueMask128(p, z)

			want := make(map[uint32]bool)
			for r := uint64(0); r < uint64(p); r++ {
				// Repeated multiplication, independent of powmod.
				v := uint64(1)
				for k := uint32(0); k < z; k++ {
					v = v * r % uint64(p)
				}
				want[uint32(v)] = true
			}

			assert.Equal(t, want, maskToSet(m, p), "p=%d z=%d", p, z)

			// 0^z and 1^z are always residues; the mask is never empty.
			assert.True(t, m.has(0), "p=%d z=%d", p, z)
			assert.True(t, m.has(1), "p=%d z=%d", p, z)
		}
	}
}

func TestPrecomputedTablesExact(t *testing.T) {
	const aMax, bMax = 50, 50
	data, err := newPrecomputedData(3, 4, 5, aMax, bMax)
	require.NoError(t, err)

	assert.Equal(t, uint32(3), data.X)
	assert.Equal(t, uint64(aMax), data.AMax)

	for A := uint64(0); A <= aMax; A++ {
		row := data.axRow(A)
		require.Len(t, row, numSievePrimes)
		for i, p := range sievePrimes {
			assert.Equal(t, uint8(powmod(A, 3, uint64(p))), row[i], "A=%d p=%d", A, p)
		}
	}

	for i, p := range sievePrimes {
		require.Len(t, data.byMod[i], bMax+1)
		for B := uint64(0); B <= bMax; B++ {
			assert.Equal(t, uint8(powmod(B, 4, uint64(p))), data.byMod[i][B], "B=%d p=%d", B, p)
		}
	}
}

func TestPrecomputeRejectsOversizedBounds(t *testing.T) {
	_, err := newPrecomputedData(3, 3, 3, 1<<32, 10)
	assert.Error(t, err)

	_, err = newPrecomputedData(3, 3, 3, 10, 1<<32)
	assert.Error(t, err)
}
