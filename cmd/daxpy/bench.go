package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/example/go-daxpy/internal/bench"
	"github.com/example/go-daxpy/internal/daxpy"
	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	var (
		runs          int
		workerList    string
		format        string
		minThroughput float64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark DAXPY throughput across worker counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1")
			}
			if format != "table" && format != "json" {
				return fmt.Errorf("--format must be 'table' or 'json'")
			}

			workers, err := bench.ParseWorkerList(workerList)
			if err != nil {
				return err
			}

			kernel, err := daxpy.LookupKernel(cfg.Runtime.Kernel)
			if err != nil {
				return err
			}

			results, err := runBench(benchOptions{
				Length:  cfg.Vector.Length,
				Alpha:   cfg.Vector.Alpha,
				Kernel:  kernel,
				Workers: workers,
				Runs:    runs,
				Logger:  slog.Default(),
			})
			if err != nil {
				return err
			}

			summaries := bench.Summarize(results)
			writeBench(cmd.OutOrStdout(), format, results, summaries)

			return bench.CheckThroughputThreshold(summaries, minThroughput)
		},
	}

	cmd.Flags().IntVar(&runs, "runs", 5, "Number of runs per worker count")
	cmd.Flags().StringVar(&workerList, "workers-list", "1,2,4,8", "Comma-separated worker counts to sweep")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")
	cmd.Flags().Float64Var(&minThroughput, "min-throughput", 0, "Exit non-zero if any mean throughput (elem/s) falls below this value (0 = disabled)")

	return cmd
}

type benchOptions struct {
	Length  int
	Alpha   float64
	Kernel  daxpy.Kernel
	Workers []int
	Runs    int
	Logger  *slog.Logger
}

// runBench times opts.Runs executions for every worker count and checks each
// output against a single-worker reference.
func runBench(opts benchOptions) ([]bench.RunResult, error) {
	seed, err := daxpy.NewSeeded(opts.Length, opts.Alpha)
	if err != nil {
		return nil, err
	}

	reference := seed.Clone()
	refEx, err := daxpy.New(daxpy.Options{Workers: 1, Kernel: opts.Kernel})
	if err != nil {
		return nil, err
	}
	if _, err := refEx.Run(reference); err != nil {
		return nil, fmt.Errorf("reference run: %w", err)
	}

	results := make([]bench.RunResult, 0, len(opts.Workers)*opts.Runs)

	for _, w := range opts.Workers {
		ex, err := daxpy.New(daxpy.Options{Workers: w, Kernel: opts.Kernel, Logger: opts.Logger})
		if err != nil {
			return nil, err
		}

		for i := range opts.Runs {
			v := seed.Clone()

			res, err := ex.Run(v)
			if err != nil {
				return nil, fmt.Errorf("workers=%d run %d failed: %w", w, i+1, err)
			}

			if idx, ok := firstMismatch(v.Y, reference.Y); !ok {
				return nil, fmt.Errorf("workers=%d run %d: y[%d]=%v differs from single-worker result %v",
					w, i+1, idx, v.Y[idx], reference.Y[idx])
			}

			results = append(results, bench.RunResult{
				Index:      i,
				Workers:    w,
				Cold:       i == 0,
				Elements:   v.Len(),
				Duration:   res.Elapsed,
				Throughput: bench.CalcThroughput(v.Len(), res.Elapsed),
			})
		}
	}

	return results, nil
}

func firstMismatch(got, want []float64) (int, bool) {
	for i := range want {
		if got[i] != want[i] {
			return i, false
		}
	}
	return -1, true
}

func writeBench(w io.Writer, format string, results []bench.RunResult, summaries []bench.Summary) {
	switch format {
	case "json":
		bench.FormatJSON(results, summaries, w)
	default:
		bench.FormatTable(results, summaries, w)
	}
}
