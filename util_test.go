package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGCD64(t *testing.T) {
	tests := []struct {
		a, b, want uint64
	}{
		{12, 8, 4},
		{8, 12, 4},
		{17, 13, 1},
		{100, 25, 25},
		{0, 5, 5},
		{7, 0, 7},
		{0, 0, 0},
		{1, 1, 1},
		{(1 << 40) * 3, (1 << 38) * 18, 1649267441664},
		{^uint64(0), 1, 1},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, gcd64(tc.a, tc.b), "gcd(%d, %d)", tc.a, tc.b)
	}
}

func TestPowmod(t *testing.T) {
	tests := []struct {
		base uint64
		exp  uint32
		m    uint64
		want uint64
	}{
		{2, 10, 1000, 24},
		{3, 4, 7, 4},
		{5, 3, 13, 8},
		{0, 3, 7, 0},
		{1, 1000, 71, 1},
		{70, 3, 71, 70},
		// Large bases must be reduced before the first squaring.
		{123456789012345, 5, 71, 20},
		{987654321, 4, 67, 54},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, powmod(tc.base, tc.exp, tc.m),
			"powmod(%d, %d, %d)", tc.base, tc.exp, tc.m)
	}
}

func TestMask128(t *testing.T) {
	var m mask128

	for _, bit := range []uint32{0, 1, 63, 64, 70, 127} {
		assert.False(t, m.has(bit))
		m.set(bit)
		assert.True(t, m.has(bit), "bit %d", bit)
	}

	// Bits past 63 land in the upper word, not back in the lower one.
	var upper mask128
	upper.set(64)
	assert.Equal(t, uint64(0), upper[0])
	assert.Equal(t, uint64(1), upper[1])

	var high mask128
	high.set(70)
	assert.Equal(t, uint64(1)<<6, high[1])
	assert.False(t, high.has(6))
}
