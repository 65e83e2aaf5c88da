package main

import (
	"fmt"
	"log/slog"

	"github.com/example/go-daxpy/internal/config"
	"github.com/example/go-daxpy/internal/daxpy"
)

const completionMessage = "Thread Computation complete."

// runDAXPY seeds the vectors described by cfg and runs the executor once.
// The returned vectors are only meaningful when err is nil.
func runDAXPY(cfg config.Config, logger *slog.Logger) (*daxpy.Vectors, error) {
	kernel, err := daxpy.LookupKernel(cfg.Runtime.Kernel)
	if err != nil {
		return nil, err
	}

	ex, err := daxpy.New(daxpy.Options{
		Workers: cfg.Runtime.Workers,
		Kernel:  kernel,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create executor: %w", err)
	}

	v, err := daxpy.NewSeeded(cfg.Vector.Length, cfg.Vector.Alpha)
	if err != nil {
		return nil, fmt.Errorf("seed vectors: %w", err)
	}

	res, err := ex.Run(v)
	if err != nil {
		return nil, fmt.Errorf("daxpy: %w", err)
	}

	logger.Debug("daxpy complete",
		"n", v.Len(),
		"workers", res.Workers,
		"kernel", cfg.Runtime.Kernel,
		"elapsed", res.Elapsed,
	)

	return v, nil
}
