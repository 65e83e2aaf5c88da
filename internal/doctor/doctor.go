// Package doctor provides environment preflight checks for daxpy.
package doctor

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// Config holds the values and injectable probes for each doctor check.
type Config struct {
	// VectorLength is the configured N.
	VectorLength int
	// Workers is the configured T.
	Workers int
	// Kernel is the configured kernel name.
	Kernel string
	// ValidateKernel rejects unknown kernel names. Nil skips the check.
	ValidateKernel func(name string) error
	// MaxProcs returns the number of OS threads that may run Go code
	// simultaneously (normally runtime.GOMAXPROCS(0)).
	MaxProcs func() int
	// Features returns the detected SIMD features. Nil skips the report.
	Features func() []string
	// StatsFile is a gem5 stats.txt to verify on disk. Empty skips the check.
	StatsFile string
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- vector length ----------------------------------------------------
	if cfg.VectorLength < 1 {
		res.fail(fmt.Sprintf("vector length: must be at least 1, got %d", cfg.VectorLength))
		fmt.Fprintf(w, "%s vector length: %d (must be >= 1)\n", FailMark, cfg.VectorLength)
	} else {
		fmt.Fprintf(w, "%s vector length: %d\n", PassMark, cfg.VectorLength)
	}

	// ---- worker count -----------------------------------------------------
	if cfg.Workers < 1 {
		res.fail(fmt.Sprintf("workers: must be at least 1, got %d", cfg.Workers))
		fmt.Fprintf(w, "%s workers: %d (must be >= 1)\n", FailMark, cfg.Workers)
	} else {
		fmt.Fprintf(w, "%s workers: %d\n", PassMark, cfg.Workers)

		if cfg.VectorLength >= 1 {
			checkBalance(cfg.VectorLength, cfg.Workers, w)
		}

		if cfg.MaxProcs != nil {
			procs := cfg.MaxProcs()
			if cfg.Workers > procs {
				res.fail(fmt.Sprintf("parallelism: %d workers exceed GOMAXPROCS=%d", cfg.Workers, procs))
				fmt.Fprintf(w, "%s parallelism: %d workers but GOMAXPROCS=%d, workers cannot all run at once\n",
					FailMark, cfg.Workers, procs)
			} else {
				fmt.Fprintf(w, "%s parallelism: GOMAXPROCS=%d\n", PassMark, procs)
			}
		}
	}

	// ---- kernel -----------------------------------------------------------
	if cfg.ValidateKernel != nil {
		if err := cfg.ValidateKernel(cfg.Kernel); err != nil {
			res.fail(fmt.Sprintf("kernel: %v", err))
			fmt.Fprintf(w, "%s kernel: %v\n", FailMark, err)
		} else {
			fmt.Fprintf(w, "%s kernel: %s\n", PassMark, cfg.Kernel)
		}
	}

	// ---- cpu features -----------------------------------------------------
	if cfg.Features != nil {
		features := cfg.Features()
		if len(features) == 0 {
			fmt.Fprintf(w, "%s cpu features: none detected (scalar only)\n", PassMark)
		} else {
			fmt.Fprintf(w, "%s cpu features: %s\n", PassMark, strings.Join(features, " "))
		}
	}

	// ---- gem5 stats -------------------------------------------------------
	if cfg.StatsFile != "" {
		if _, err := os.Stat(cfg.StatsFile); err != nil {
			res.fail(fmt.Sprintf("stats file %q: %v", cfg.StatsFile, err))
			fmt.Fprintf(w, "%s stats file %s: not found\n", FailMark, cfg.StatsFile)
		} else {
			fmt.Fprintf(w, "%s stats file: %s\n", PassMark, cfg.StatsFile)
		}
	}

	return res
}

// checkBalance reports how the partition distributes work. Idle or
// overloaded workers are legal, so this never fails.
func checkBalance(n, workers int, w io.Writer) {
	chunk := n / workers
	remainder := n % workers

	switch {
	case chunk == 0:
		fmt.Fprintf(w, "%s partition: %d of %d workers idle (workers > length), last worker takes all %d elements\n",
			PassMark, workers-1, workers, n)
	case remainder == 0:
		fmt.Fprintf(w, "%s partition: %d elements per worker\n", PassMark, chunk)
	default:
		fmt.Fprintf(w, "%s partition: %d elements per worker, last worker takes %d extra\n",
			PassMark, chunk, remainder)
	}
}
