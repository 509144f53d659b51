// logging.go - JSONL lifecycle records and the integrity digest

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"
)

// ==================== JSONL LOG SINK ====================
//
// One JSON record per line. Every write is an open/append/close cycle so a
// crashed run still leaves a parseable log. I/O errors are dropped
// record-by-record: logging never blocks or aborts the search.

const engineName = "beal-hunter-go"

func timestampISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05Z")
}

func hostnameSafe() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}

// writeRecord appends one JSONL record. truncate is used by START so each
// run owns its log file.
func writeRecord(path string, truncate bool, v any) {
	if path == "" {
		return
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if truncate {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	data = append(data, '\n')
	f.Write(data)
}

// ==================== RECORD SHAPES ====================

type systemInfo struct {
	Hostname string `json:"hostname"`
	Platform string `json:"platform"`
	CPUCount int    `json:"cpu_count"`
	Engine   string `json:"engine"`
}

type startRecord struct {
	TS            string     `json:"ts"`
	Event         string     `json:"event"`
	RunID         int64      `json:"run_id"`
	Mode          string     `json:"mode"`
	Signature     [3]uint32  `json:"signature"`
	AStart        uint64     `json:"Astart"`
	AMax          uint64     `json:"Amax"`
	BStart        uint64     `json:"Bstart"`
	BMax          uint64     `json:"Bmax"`
	CMax          uint64     `json:"Cmax"`
	ExpectedPairs uint64     `json:"expected_pairs"`
	System        systemInfo `json:"system"`
	SievePrimes   []int      `json:"sieve_primes"`
}

type checkpointRecord struct {
	TS              string  `json:"ts"`
	Event           string  `json:"event"`
	RunID           int64   `json:"run_id"`
	PairsCompleted  uint64  `json:"pairs_completed"`
	PairsExpected   uint64  `json:"pairs_expected"`
	PercentComplete float64 `json:"percent_complete"`
	GcdSkips        uint64  `json:"gcd_skips"`
	ModSkips        uint64  `json:"mod_skips"`
	ExactChecks     uint64  `json:"exact_checks"`
	ElapsedSeconds  float64 `json:"elapsed_seconds"`
	RatePairsPerSec float64 `json:"rate_pairs_per_sec"`
	ChunksDone      uint64  `json:"chunks_done"`
	ChunksTotal     uint64  `json:"chunks_total"`
}

type hitRecord struct {
	TS    string `json:"ts"`
	Event string `json:"event"`
	A     uint64 `json:"A"`
	B     uint64 `json:"B"`
	C     uint64 `json:"C"`
	Gcd   uint64 `json:"gcd"`
	X     uint32 `json:"x"`
	Y     uint32 `json:"y"`
	Z     uint32 `json:"z"`
}

type completeResults struct {
	TotalPairs              uint64 `json:"total_pairs"`
	GcdFiltered             uint64 `json:"gcd_filtered"`
	ModFiltered             uint64 `json:"mod_filtered"`
	ExactChecks             uint64 `json:"exact_checks"`
	PowerHits               uint64 `json:"power_hits"`
	PrimitiveCounterexamples uint64 `json:"primitive_counterexamples"`
}

type completePerformance struct {
	RuntimeSeconds     float64 `json:"runtime_seconds"`
	AvgRatePairsPerSec float64 `json:"avg_rate_pairs_per_sec"`
	WorkersUsed        int     `json:"workers_used"`
}

type completeVerification struct {
	Status        string `json:"status"`
	IntegrityHash string `json:"integrity_hash"`
}

type completeRecord struct {
	TS           string               `json:"ts"`
	Event        string               `json:"event"`
	RunID        int64                `json:"run_id"`
	Signature    [3]uint32            `json:"signature"`
	SearchBounds map[string][2]uint64 `json:"search_bounds"`
	Results      completeResults      `json:"results"`
	Performance  completePerformance  `json:"performance"`
	Verification completeVerification `json:"verification"`
}

// ==================== EVENT EMITTERS ====================

func logStart(path string, params *SearchParams, runID int64, workers int) {
	primes := make([]int, numSievePrimes)
	for i, p := range sievePrimes {
		primes[i] = int(p)
	}

	writeRecord(path, true, startRecord{
		TS:            timestampISO(),
		Event:         "START",
		RunID:         runID,
		Mode:          "search",
		Signature:     [3]uint32{params.X, params.Y, params.Z},
		AStart:        params.AStart,
		AMax:          params.AMax,
		BStart:        params.BStart,
		BMax:          params.BMax,
		CMax:          params.CMax,
		ExpectedPairs: params.expectedPairs(),
		System: systemInfo{
			Hostname: hostnameSafe(),
			Platform: runtime.GOOS + " " + runtime.GOARCH,
			CPUCount: workers,
			Engine:   engineName,
		},
		SievePrimes: primes,
	})
}

func logCheckpoint(path string, runID int64, pairsCompleted, pairsExpected,
	gcdSkips, modSkips uint64, elapsedSeconds float64, chunksDone, chunksTotal uint64) {

	pct := 0.0
	if pairsExpected > 0 {
		pct = float64(pairsCompleted) / float64(pairsExpected) * 100.0
	}
	exactChecks := uint64(0)
	if pairsCompleted > gcdSkips+modSkips {
		exactChecks = pairsCompleted - gcdSkips - modSkips
	}
	rate := 0.0
	if elapsedSeconds > 0 {
		rate = float64(pairsCompleted) / elapsedSeconds
	}

	writeRecord(path, false, checkpointRecord{
		TS:              timestampISO(),
		Event:           "CHECKPOINT",
		RunID:           runID,
		PairsCompleted:  pairsCompleted,
		PairsExpected:   pairsExpected,
		PercentComplete: pct,
		GcdSkips:        gcdSkips,
		ModSkips:        modSkips,
		ExactChecks:     exactChecks,
		ElapsedSeconds:  elapsedSeconds,
		RatePairsPerSec: rate,
		ChunksDone:      chunksDone,
		ChunksTotal:     chunksTotal,
	})
}

func logHit(path string, hit *BealHit) {
	writeRecord(path, false, hitRecord{
		TS:    timestampISO(),
		Event: "POWER_HIT",
		A:     hit.A,
		B:     hit.B,
		C:     hit.C,
		Gcd:   hit.Gcd,
		X:     hit.X,
		Y:     hit.Y,
		Z:     hit.Z,
	})
}

func logComplete(path string, runID int64, params *SearchParams, results *SearchResults, workers int) {
	writeRecord(path, false, completeRecord{
		TS:        timestampISO(),
		Event:     "COMPLETE",
		RunID:     runID,
		Signature: [3]uint32{params.X, params.Y, params.Z},
		SearchBounds: map[string][2]uint64{
			"A": {params.AStart, params.AMax},
			"B": {params.BStart, params.BMax},
			"C": {1, params.CMax},
		},
		Results: completeResults{
			TotalPairs:               results.TotalPairs,
			GcdFiltered:              results.GcdFiltered,
			ModFiltered:              results.ModFiltered,
			ExactChecks:              results.ExactChecks,
			PowerHits:                results.PowerHits,
			PrimitiveCounterexamples: results.PrimitiveHits,
		},
		Performance: completePerformance{
			RuntimeSeconds:     results.RuntimeSeconds,
			AvgRatePairsPerSec: results.RatePairsPerSec,
			WorkersUsed:        workers,
		},
		Verification: completeVerification{
			Status:        searchStatus(results),
			IntegrityHash: integrityHashHex(params, results),
		},
	})
}

// ==================== INTEGRITY DIGEST ====================

const (
	fnvOffsetBasis = 0xCBF29CE484222325
	fnvPrime       = 0x100000001B3
)

// integrityHash absorbs params then result counters as 64-bit quantities,
// FNV-1a, in a fixed order. Any reordering changes the digest; that is the
// point.
func integrityHash(params *SearchParams, results *SearchResults) uint64 {
	h := uint64(fnvOffsetBasis)
	mix := func(v uint64) {
		h ^= v
		h *= fnvPrime
	}

	mix(uint64(params.X))
	mix(uint64(params.Y))
	mix(uint64(params.Z))
	mix(params.AStart)
	mix(params.AMax)
	mix(params.BStart)
	mix(params.BMax)
	mix(params.CMax)

	mix(results.TotalPairs)
	mix(results.GcdFiltered)
	mix(results.ModFiltered)
	mix(results.ExactChecks)
	mix(results.PowerHits)
	mix(results.PrimitiveHits)

	return h
}

func integrityHashHex(params *SearchParams, results *SearchResults) string {
	return fmt.Sprintf("%016x", integrityHash(params, results))
}
