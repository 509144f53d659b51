// precompute.go - Residue masks and modular power tables for a signature

package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// ==================== THE 20 SIEVE PRIMES ====================
// Order and identity are load-bearing: the integrity digest and any
// cross-run comparison assume exactly this sequence.

const numSievePrimes = 20

var sievePrimes = [numSievePrimes]uint8{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71,
}

// Tables index residues as bytes, so bounds past 2^32 are rejected before
// allocation rather than trusted to the allocator.
const maxTableBound = 1 << 32

// ==================== PRECOMPUTED DATA ====================

// PrecomputedData holds everything the sieve needs for O(1) per-prime
// lookups. Built once per run, read-only afterwards, shared across workers.
type PrecomputedData struct {
	X, Y, Z uint32

	AMax, BMax uint64

	// ResidueMasks[i] has bit r set iff r is a z-th power residue mod
	// sievePrimes[i].
	ResidueMasks [numSievePrimes]mask128

	// axMod is A-major: the 20 residues A^x mod p_i for a fixed A are
	// contiguous at axMod[A*20 : A*20+20].
	axMod []uint8

	// byMod is prime-major: byMod[i][B] = B^y mod p_i. An 8-wide B sweep at
	// fixed (A, i) reads eight consecutive bytes.
	byMod [numSievePrimes][]uint8
}

// computeResidueMask128 fills the z-th power residue set mod p.
func computeResidueMask128(p, z uint32) mask128 {
	var m mask128
	for r := uint32(0); r < p; r++ {
		rz := powmod(uint64(r), z, uint64(p))
		m.set(uint32(rz))
	}
	return m
}

// axRow returns the A-local residue row for a fixed A.
func (d *PrecomputedData) axRow(A uint64) []uint8 {
	return d.axMod[A*numSievePrimes : A*numSievePrimes+numSievePrimes]
}

// newPrecomputedData builds the table triple for a signature. On failure no
// partial handle is returned.
func newPrecomputedData(x, y, z uint32, aMax, bMax uint64) (*PrecomputedData, error) {
	if aMax >= maxTableBound || bMax >= maxTableBound {
		return nil, fmt.Errorf("search bounds too large for residue tables: Amax=%d Bmax=%d", aMax, bMax)
	}

	d := &PrecomputedData{
		X:    x,
		Y:    y,
		Z:    z,
		AMax: aMax,
		BMax: bMax,
	}

	for i, p := range sievePrimes {
		d.ResidueMasks[i] = computeResidueMask128(uint32(p), z)
	}

	d.axMod = make([]uint8, (aMax+1)*numSievePrimes)
	for A := uint64(0); A <= aMax; A++ {
		row := d.axRow(A)
		for i, p := range sievePrimes {
			row[i] = uint8(powmod(A, x, uint64(p)))
		}
	}

	for i, p := range sievePrimes {
		row := make([]uint8, bMax+1)
		for B := uint64(0); B <= bMax; B++ {
			row[B] = uint8(powmod(B, y, uint64(p)))
		}
		d.byMod[i] = row
	}

	return d, nil
}

// precomputeTimed wraps table construction with the startup log line.
func precomputeTimed(params *SearchParams, logger *logrus.Logger) (*PrecomputedData, error) {
	logger.Info("Precomputing residue tables...")
	start := time.Now()

	data, err := newPrecomputedData(params.X, params.Y, params.Z, params.AMax, params.BMax)
	if err != nil {
		return nil, err
	}

	logger.Infof("Precomputation complete (%.2f seconds)", time.Since(start).Seconds())
	return data, nil
}
