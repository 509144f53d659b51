package main

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readJSONLines(t *testing.T, path string) []map[string]any {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.NoError(t, scanner.Err())
	return records
}

func TestIntegrityHashKnownVector(t *testing.T) {
	params := &SearchParams{
		X: 3, Y: 3, Z: 3,
		AStart: 1, AMax: 10,
		BStart: 1, BMax: 10,
		CMax: 1000,
	}
	results := &SearchResults{
		TotalPairs:  100,
		GcdFiltered: 37,
		ModFiltered: 60,
		ExactChecks: 3,
	}

	assert.Equal(t, "710b67d27fb63076", integrityHashHex(params, results))
}

func TestIntegrityHashOrderSensitive(t *testing.T) {
	params := &SearchParams{
		X: 3, Y: 3, Z: 3,
		AStart: 1, AMax: 10,
		BStart: 1, BMax: 10,
		CMax: 1000,
	}
	a := &SearchResults{TotalPairs: 100, GcdFiltered: 37, ModFiltered: 60, ExactChecks: 3}
	// Same multiset of values, different positions.
	b := &SearchResults{TotalPairs: 100, GcdFiltered: 60, ModFiltered: 37, ExactChecks: 3}

	assert.NotEqual(t, integrityHashHex(params, a), integrityHashHex(params, b))
}

func TestIntegrityHashDependsOnCMaxAndPowerHits(t *testing.T) {
	base := &SearchParams{X: 3, Y: 4, Z: 5, AStart: 1, AMax: 100, BStart: 1, BMax: 100, CMax: 10000000}
	results := &SearchResults{TotalPairs: 10000, GcdFiltered: 3913, ModFiltered: 6084, ExactChecks: 3}
	want := integrityHashHex(base, results)

	bumped := *base
	bumped.CMax++
	assert.NotEqual(t, want, integrityHashHex(&bumped, results))

	r2 := *results
	r2.PowerHits++
	assert.NotEqual(t, want, integrityHashHex(base, &r2))
}

func TestLogStartTruncatesAndHitsAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.jsonl")
	params := &SearchParams{
		X: 3, Y: 4, Z: 5,
		AStart: 1, AMax: 10,
		BStart: 1, BMax: 10,
		CMax: 1000,
	}

	logStart(path, params, 1700000000, 4)
	logHit(path, &BealHit{A: 2, B: 2, C: 2, Gcd: 2, X: 6, Y: 6, Z: 7})

	records := readJSONLines(t, path)
	require.Len(t, records, 2)

	start := records[0]
	assert.Equal(t, "START", start["event"])
	assert.Equal(t, "search", start["mode"])
	assert.Equal(t, float64(100), start["expected_pairs"])

	primes, ok := start["sieve_primes"].([]any)
	require.True(t, ok)
	require.Len(t, primes, 20)
	assert.Equal(t, float64(2), primes[0])
	assert.Equal(t, float64(71), primes[19])

	system, ok := start["system"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, system["hostname"])
	assert.Equal(t, float64(4), system["cpu_count"])

	hit := records[1]
	assert.Equal(t, "POWER_HIT", hit["event"])
	assert.Equal(t, float64(2), hit["A"])
	assert.Equal(t, float64(7), hit["z"])

	// A new START owns the file again.
	logStart(path, params, 1700000001, 4)
	records = readJSONLines(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, "START", records[0]["event"])
}

func TestLogCheckpointDerivedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cp.jsonl")

	logCheckpoint(path, 1700000000, 500, 1000, 200, 250, 2.0, 5, 10)

	records := readJSONLines(t, path)
	require.Len(t, records, 1)
	cp := records[0]

	assert.Equal(t, "CHECKPOINT", cp["event"])
	assert.Equal(t, float64(50), cp["percent_complete"])
	assert.Equal(t, float64(50), cp["exact_checks"])
	assert.Equal(t, float64(250), cp["rate_pairs_per_sec"])
	assert.Equal(t, float64(5), cp["chunks_done"])
	assert.Equal(t, float64(10), cp["chunks_total"])
}

func TestWriteRecordIgnoresEmptyPath(t *testing.T) {
	// Must be a no-op, not a panic or a file named "".
	writeRecord("", false, map[string]string{"event": "NOPE"})
}
