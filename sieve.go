// sieve.go - 20-prime modular filter, scalar and 8-lane batched paths

package main

// ==================== SIEVE FILTER ====================
//
// A pair (A, B) survives iff (A^x + B^y) mod p is a z-th power residue for
// every sieve prime p. A killed pair cannot satisfy A^x + B^y = C^z for any
// integer C; a surviving pair still needs exact verification.

// sieveSurvivesScalar decides one pair, short-circuiting on the first
// killing prime.
func sieveSurvivesScalar(A, B uint64, data *PrecomputedData) bool {
	axRow := data.axRow(A)
	for i := 0; i < numSievePrimes; i++ {
		p := uint32(sievePrimes[i])
		sum := uint32(axRow[i]) + uint32(data.byMod[i][B])
		if sum >= p {
			sum -= p
		}
		if !data.ResidueMasks[i].has(sum) {
			return false
		}
	}
	return true
}

// sieveSurvives8 decides a block of 8 consecutive B values at fixed A and
// returns a survivor bitmask (bit l set iff bStart+l survives). Lanes past
// BMax are cleared. The prime-major byMod row supplies the eight residues
// as consecutive bytes, and the survivor mask narrows per prime with an
// early exit once every lane is dead. Decisions are bitwise-identical to
// the scalar path.
func sieveSurvives8(A, bStart uint64, data *PrecomputedData) uint8 {
	survivors := uint8(0xFF)
	axRow := data.axRow(A)

	for i := 0; i < numSievePrimes; i++ {
		p := uint32(sievePrimes[i])
		ax := uint32(axRow[i])
		byRow := data.byMod[i]
		mask := &data.ResidueMasks[i]

		for l := uint64(0); l < 8; l++ {
			if survivors&(1<<l) == 0 {
				continue
			}

			B := bStart + l
			if B > data.BMax {
				survivors &^= 1 << l
				continue
			}

			sum := ax + uint32(byRow[B])
			if sum >= p {
				sum -= p
			}

			if !mask.has(sum) {
				survivors &^= 1 << l
			}
		}

		if survivors == 0 {
			break
		}
	}

	return survivors
}

// countSieveSurvivors counts coprime pairs in a rectangle that survive the
// sieve. Validation and cross-run comparison helper, not on the hot path.
func countSieveSurvivors(aStart, aEnd, bStart, bEnd uint64, data *PrecomputedData) uint64 {
	count := uint64(0)
	for A := aStart; A <= aEnd; A++ {
		for B := bStart; B <= bEnd; B++ {
			if gcd64(A, B) == 1 && sieveSurvivesScalar(A, B, data) {
				count++
			}
		}
	}
	return count
}
