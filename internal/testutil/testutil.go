// Package testutil provides shared helpers for daxpy tests.
//
// Skip helpers call t.Skip with a clear human-readable reason when the named
// prerequisite is absent, so integration tests remain runnable in partial
// environments without failing noisily.
//
// Typical usage:
//
//	func TestRealStatsDump(t *testing.T) {
//	    path := testutil.RequireStatsFile(t)
//	    ...
//	}
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// StatsPathEnv names the environment variable that points integration tests
// at a real gem5 stats.txt dump.
const StatsPathEnv = "DAXPY_TEST_STATS_PATH"

// RequireStatsFile returns the gem5 stats.txt named by DAXPY_TEST_STATS_PATH,
// or skips the test if the variable is unset or the file does not exist.
func RequireStatsFile(tb testing.TB) string {
	tb.Helper()

	p := os.Getenv(StatsPathEnv)
	if p == "" {
		tb.Skipf("no gem5 stats dump configured; set %s to run", StatsPathEnv)
	}

	if _, err := os.Stat(p); err != nil {
		tb.Skipf("gem5 stats dump not found at %s=%q", StatsPathEnv, p)
	}

	return p
}

// WriteFile writes content to name inside a fresh temp directory and returns
// the full path.
func WriteFile(tb testing.TB, name, content string) string {
	tb.Helper()

	p := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		tb.Fatalf("write %s: %v", p, err)
	}

	return p
}

// AssertDAXPY fails the test unless got[i] == alpha*x[i] + y0[i] for every i.
// y0 is the value of y before the update.
func AssertDAXPY(tb testing.TB, got []float64, alpha float64, x, y0 []float64) {
	tb.Helper()

	if len(got) != len(x) || len(got) != len(y0) {
		tb.Fatalf("length mismatch: len(y)=%d len(x)=%d len(y0)=%d", len(got), len(x), len(y0))
	}

	for i := range got {
		if want := alpha*x[i] + y0[i]; got[i] != want {
			tb.Fatalf("y[%d] = %v; want %v*%v + %v = %v", i, got[i], alpha, x[i], y0[i], want)
		}
	}
}
