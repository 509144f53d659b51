// search.go - Parallel search driver: GCD skip -> sieve -> exact check

package main

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ==================== SEARCH DATA STRUCTURES ====================

// SearchParams is the immutable input of one search run.
type SearchParams struct {
	X, Y, Z uint32

	AStart, AMax uint64
	BStart, BMax uint64
	CMax         uint64

	Threads          int // 0 = auto
	ProgressInterval int

	LogPath string
	Display bool
}

func (p *SearchParams) expectedPairs() uint64 {
	return (p.AMax - p.AStart + 1) * (p.BMax - p.BStart + 1)
}

// BealHit is a verified power match. Gcd == 1 makes it a primitive
// counterexample.
type BealHit struct {
	A, B, C uint64
	Gcd     uint64
	X, Y, Z uint32
}

// SearchResults holds the run's counters and hits. During the run the
// counters live in separate atomics; these fields are filled from them once,
// at finalization.
type SearchResults struct {
	TotalPairs  uint64
	GcdFiltered uint64
	ModFiltered uint64
	ExactChecks uint64

	PowerHits     uint64
	PrimitiveHits uint64

	RuntimeSeconds  float64
	RatePairsPerSec float64

	Hits []BealHit
}

// Worker-local hit buffers flush into the shared list when full; hits are
// rare enough that the critical section stays cold.
const hitBufferSize = 64

// ==================== PARALLEL SEARCH ====================

// searchParallel sweeps the (A, B) rectangle for the signature in params.
// The A axis is distributed across workers one row at a time; counters
// aggregate into process-wide atomics once per completed row.
func searchParallel(ctx context.Context, params *SearchParams, logger *logrus.Logger) (*SearchResults, error) {
	workers := params.Threads
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	logger.Infof("Signature: (%d, %d, %d)", params.X, params.Y, params.Z)
	logger.Infof("Range: A[%d-%d] B[%d-%d] Cmax=%d", params.AStart, params.AMax,
		params.BStart, params.BMax, params.CMax)
	logger.Infof("Workers: %d", workers)

	data, err := precomputeTimed(params, logger)
	if err != nil {
		return nil, err
	}

	runID := time.Now().Unix()
	logStart(params.LogPath, params, runID, workers)

	expected := params.expectedPairs()
	chunksTotal := params.AMax - params.AStart + 1
	logger.Infof("Starting search (%d pairs)", expected)

	results := &SearchResults{Hits: make([]BealHit, 0, hitBufferSize)}

	var (
		globalTested uint64
		globalGcd    uint64
		globalMod    uint64
		globalExact  uint64
		chunksDone   uint64

		nextA = params.AStart

		hitMu    sync.Mutex // guards results.Hits append, hit logging, announcements
		reportMu sync.Mutex
	)

	startTime := time.Now()
	lastReport := startTime.UnixNano()

	// Throttled checkpoint: at most ~1/s, double-checked inside the lock so
	// a burst of workers crossing the threshold emits a single record.
	maybeReport := func(A uint64) {
		now := time.Now()
		if now.UnixNano()-atomic.LoadInt64(&lastReport) < int64(time.Second) {
			return
		}

		reportMu.Lock()
		defer reportMu.Unlock()
		if now.UnixNano()-atomic.LoadInt64(&lastReport) < int64(time.Second) {
			return
		}
		atomic.StoreInt64(&lastReport, now.UnixNano())

		dt := now.Sub(startTime).Seconds()
		tested := atomic.LoadUint64(&globalTested)
		pct := 100.0 * float64(tested) / float64(expected)
		rate := 0.0
		if dt > 0 {
			rate = float64(tested) / dt
		}

		if params.Display {
			fmt.Printf("\r[BEAL] Progress: %5.2f%% | A: %-7d | Rate: %6.1fM/s | Exact checks: %d",
				pct, A, rate/1e6, atomic.LoadUint64(&globalExact))
		}

		logCheckpoint(params.LogPath, runID, tested, expected,
			atomic.LoadUint64(&globalGcd), atomic.LoadUint64(&globalMod), dt,
			atomic.LoadUint64(&chunksDone), chunksTotal)
	}

	// A single worker exercises the scalar sieve; parallel runs take the
	// 8-lane batched path. Both produce bitwise-identical decisions.
	useScalar := workers == 1

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			local := make([]BealHit, 0, hitBufferSize)

			flushLocal := func() {
				if len(local) == 0 {
					return
				}
				hitMu.Lock()
				for i := range local {
					results.Hits = append(results.Hits, local[i])
					logHit(params.LogPath, &local[i])
				}
				hitMu.Unlock()
				local = local[:0]
			}

			recordHit := func(A, B, C, gcd uint64) {
				if len(local) == hitBufferSize {
					flushLocal()
				}
				local = append(local, BealHit{
					A: A, B: B, C: C, Gcd: gcd,
					X: params.X, Y: params.Y, Z: params.Z,
				})

				if gcd == 1 {
					hitMu.Lock()
					fmt.Printf("\nCOUNTEREXAMPLE: %d^%d + %d^%d = %d^%d (gcd=1)\n",
						A, params.X, B, params.Y, C, params.Z)
					hitMu.Unlock()
				}
			}

			for {
				if gctx.Err() != nil {
					flushLocal()
					return gctx.Err()
				}

				A := atomic.AddUint64(&nextA, 1) - 1
				if A > params.AMax {
					break
				}

				var aTested, aGcd, aMod, aExact uint64

				if useScalar {
					for B := params.BStart; B <= params.BMax; B++ {
						aTested++
						if gcd64(A, B) > 1 {
							aGcd++
							continue
						}
						if !sieveSurvivesScalar(A, B, data) {
							aMod++
							continue
						}
						aExact++
						if hit, C, gcd := checkBealHit(A, B, params.X, params.Y, params.Z, params.CMax); hit {
							recordHit(A, B, C, gcd)
						}
					}
				} else {
					for B := params.BStart; B <= params.BMax; B += 8 {
						survivors := sieveSurvives8(A, B, data)

						for lane := uint64(0); lane < 8 && B+lane <= params.BMax; lane++ {
							bVal := B + lane
							aTested++
							if gcd64(A, bVal) > 1 {
								aGcd++
								continue
							}
							if survivors&(1<<lane) == 0 {
								aMod++
								continue
							}
							aExact++
							if hit, C, gcd := checkBealHit(A, bVal, params.X, params.Y, params.Z, params.CMax); hit {
								recordHit(A, bVal, C, gcd)
							}
						}
					}
				}

				// One aggregation per A row keeps contention off the pair loop.
				atomic.AddUint64(&globalTested, aTested)
				atomic.AddUint64(&globalGcd, aGcd)
				atomic.AddUint64(&globalMod, aMod)
				atomic.AddUint64(&globalExact, aExact)
				atomic.AddUint64(&chunksDone, 1)

				maybeReport(A)
			}

			flushLocal()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// Aborted run: counters are whatever settled, no COMPLETE record.
		logger.Warnf("Search aborted: %v", err)
		return nil, err
	}

	elapsed := time.Since(startTime).Seconds()

	results.TotalPairs = atomic.LoadUint64(&globalTested)
	results.GcdFiltered = atomic.LoadUint64(&globalGcd)
	results.ModFiltered = atomic.LoadUint64(&globalMod)
	results.ExactChecks = atomic.LoadUint64(&globalExact)
	results.RuntimeSeconds = elapsed
	if elapsed > 0 {
		results.RatePairsPerSec = float64(results.TotalPairs) / elapsed
	}

	results.PowerHits = uint64(len(results.Hits))
	results.PrimitiveHits = 0
	for i := range results.Hits {
		if results.Hits[i].Gcd == 1 {
			results.PrimitiveHits++
		}
	}

	logComplete(params.LogPath, runID, params, results, workers)

	if params.Display {
		fmt.Println()
	}
	printSummary(results)

	return results, nil
}

// searchStatus is the verification verdict reported in COMPLETE records.
func searchStatus(results *SearchResults) string {
	if results.PrimitiveHits > 0 {
		return "COUNTEREXAMPLE_FOUND"
	}
	return "CLEAR"
}

// ==================== FINAL SUMMARY ====================

func printSummary(results *SearchResults) {
	total := results.TotalPairs
	if total == 0 {
		total = 1
	}

	fmt.Println()
	fmt.Println("Search Complete!")
	fmt.Println("================")
	fmt.Printf("Total pairs:     %d\n", results.TotalPairs)
	fmt.Printf("GCD filtered:    %d (%.2f%%)\n", results.GcdFiltered,
		100.0*float64(results.GcdFiltered)/float64(total))
	fmt.Printf("Sieve filtered:  %d (%.2f%%)\n", results.ModFiltered,
		100.0*float64(results.ModFiltered)/float64(total))
	fmt.Printf("Exact checks:    %d (%.6f%%)\n", results.ExactChecks,
		100.0*float64(results.ExactChecks)/float64(total))
	fmt.Printf("Power hits:      %d\n", results.PowerHits)
	fmt.Printf("Primitive hits:  %d\n", results.PrimitiveHits)
	fmt.Println()
	fmt.Printf("Runtime:         %.2f seconds\n", results.RuntimeSeconds)
	fmt.Printf("Throughput:      %.0f pairs/sec\n", results.RatePairsPerSec)

	if results.PrimitiveHits > 0 {
		fmt.Println()
		fmt.Println("*** COUNTEREXAMPLES FOUND! ***")
		for i := range results.Hits {
			h := &results.Hits[i]
			if h.Gcd == 1 {
				fmt.Printf("  %d^%d + %d^%d = %d^%d\n", h.A, h.X, h.B, h.Y, h.C, h.Z)
			}
		}
	} else {
		fmt.Println()
		fmt.Println("Result: CLEAR - No counterexamples found.")
	}
}
