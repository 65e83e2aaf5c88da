// Package daxpy computes y = a*x + y by splitting the index range into
// contiguous, disjoint chunks and running one goroutine per chunk.
//
// The workers never synchronize with each other: each one owns a distinct
// sub-slice of y. The only synchronization point is the join barrier at the
// end of Executor.Run.
package daxpy

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sourcegraph/conc"
)

// Options configures an Executor.
type Options struct {
	// Workers is the number of goroutines spawned per run. Must be >= 1.
	Workers int
	// Kernel is the elementwise update. Nil selects AxpyGeneric.
	Kernel Kernel
	// Logger receives debug-level spawn/join events. Nil discards them.
	Logger *slog.Logger
}

// Result describes a completed run.
type Result struct {
	Workers int
	Ranges  []Range
	Elapsed time.Duration
}

// Executor runs partitioned fork-join DAXPY computations.
// An Executor holds no vector state and may be reused across runs.
type Executor struct {
	workers int
	kernel  Kernel
	logger  *slog.Logger
}

// New validates opts and returns an Executor.
func New(opts Options) (*Executor, error) {
	if opts.Workers < 1 {
		return nil, fmt.Errorf("worker count must be at least 1, got %d", opts.Workers)
	}

	kernel := opts.Kernel
	if kernel == nil {
		kernel = AxpyGeneric
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Executor{
		workers: opts.Workers,
		kernel:  kernel,
		logger:  logger,
	}, nil
}

// Workers returns the configured worker count.
func (e *Executor) Workers() int { return e.workers }

// Run updates v.Y in place to v.Alpha*v.X + v.Y.
//
// Run returns only after every worker has finished. If any worker panics the
// panic is recovered at the barrier and returned as an error; v.Y must then be
// treated as garbage.
func (e *Executor) Run(v *Vectors) (Result, error) {
	if err := v.validate(); err != nil {
		return Result{}, err
	}

	n := v.Len()

	ranges, err := Partition(n, e.workers)
	if err != nil {
		return Result{}, fmt.Errorf("partition: %w", err)
	}

	if err := VerifyCoverage(ranges, n); err != nil {
		return Result{}, fmt.Errorf("partition: %w", err)
	}

	workers := make([]*worker, len(ranges))
	for i, r := range ranges {
		workers[i] = newWorker(i, r, v, e.kernel)
	}

	start := time.Now()

	var wg conc.WaitGroup
	for _, w := range workers {
		e.logger.Debug("spawn worker", "worker", w.id, "start", w.span.Start, "end", w.span.End)
		wg.Go(w.Run)
	}

	if rec := wg.WaitAndRecover(); rec != nil {
		return Result{}, fmt.Errorf("worker panicked: %v\n%s", rec.Value, rec.Stack)
	}

	elapsed := time.Since(start)
	e.logger.Debug("workers joined", "workers", len(workers), "n", n, "elapsed", elapsed)

	return Result{
		Workers: len(workers),
		Ranges:  ranges,
		Elapsed: elapsed,
	}, nil
}
