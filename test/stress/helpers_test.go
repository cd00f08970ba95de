package stress_test

import (
	"math/rand/v2"
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/arloliu/feasible"
)

// requireStressEnabled skips the test unless long stress tests are explicitly enabled.
//
// Enable by setting environment variable FEASIBLE_STRESS=1 when invoking `go test`.
// Example:
//
//	FEASIBLE_STRESS=1 go test -v -timeout 20m ./test/stress
func requireStressEnabled(t *testing.T) {
	t.Helper()
	if os.Getenv("FEASIBLE_STRESS") != "1" {
		t.Skip("Skipping long stress/perf test (set FEASIBLE_STRESS=1 to run)")
	}
}

// wideProblem builds n sets of width values in [0, 10) from a fixed seed.
func wideProblem(seed uint64, n, width int) []feasible.Set {
	r := rand.New(rand.NewPCG(seed, seed^0x5bd1e995))
	sets := make([]feasible.Set, n)
	for i := range sets {
		sets[i] = make(feasible.Set, width)
		for j := range sets[i] {
			sets[i][j] = float64(r.IntN(10))
		}
	}

	return sets
}

// waitForGoroutines waits until the goroutine count drops to at most limit.
func waitForGoroutines(t *testing.T, limit int, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for runtime.NumGoroutine() > limit {
		if time.Now().After(deadline) {
			t.Fatalf("goroutines did not settle: have %d, want <= %d", runtime.NumGoroutine(), limit)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
