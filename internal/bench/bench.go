// Package bench provides benchmarking primitives for the daxpy bench command.
package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// Run result and stats
// ---------------------------------------------------------------------------

// RunResult holds the timing of a single executor run.
type RunResult struct {
	Index      int
	Workers    int
	Cold       bool // true for the first run at a given worker count
	Elements   int
	Duration   time.Duration
	Throughput float64 // elements per second
}

// Stats holds aggregate timing statistics across runs.
type Stats struct {
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// Summary aggregates all runs that used the same worker count.
type Summary struct {
	Workers        int
	Runs           int
	Stats          Stats
	MeanThroughput float64
}

// ComputeStats calculates min, max and mean over a slice of durations.
// The slice must be non-empty.
func ComputeStats(durations []time.Duration) Stats {
	if len(durations) == 0 {
		return Stats{}
	}
	mn, mx := durations[0], durations[0]
	var sum time.Duration
	for _, d := range durations {
		if d < mn {
			mn = d
		}
		if d > mx {
			mx = d
		}
		sum += d
	}
	return Stats{
		Min:  mn,
		Max:  mx,
		Mean: sum / time.Duration(len(durations)),
	}
}

// Summarize groups runs by worker count, ordered by ascending worker count.
func Summarize(runs []RunResult) []Summary {
	byWorkers := map[int][]RunResult{}
	for _, r := range runs {
		byWorkers[r.Workers] = append(byWorkers[r.Workers], r)
	}

	out := make([]Summary, 0, len(byWorkers))
	for workers, group := range byWorkers {
		durations := make([]time.Duration, len(group))
		var tput float64
		for i, r := range group {
			durations[i] = r.Duration
			tput += r.Throughput
		}
		out = append(out, Summary{
			Workers:        workers,
			Runs:           len(group),
			Stats:          ComputeStats(durations),
			MeanThroughput: tput / float64(len(group)),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Workers < out[j].Workers })
	return out
}

// ---------------------------------------------------------------------------
// Throughput helpers
// ---------------------------------------------------------------------------

// CalcThroughput returns elements processed per second.
// Returns 0 if dur is zero to avoid division by zero.
func CalcThroughput(elements int, dur time.Duration) float64 {
	if dur <= 0 {
		return 0
	}
	return float64(elements) / dur.Seconds()
}

// ParseWorkerList parses a comma-separated list of positive worker counts
// such as "1,2,4,8". Duplicates are dropped; order is preserved.
func ParseWorkerList(s string) ([]int, error) {
	var out []int
	seen := map[int]bool{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid worker count %q", part)
		}
		if n < 1 {
			return nil, fmt.Errorf("worker count must be at least 1, got %d", n)
		}
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("worker list %q is empty", s)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Throughput threshold gate
// ---------------------------------------------------------------------------

// CheckThroughputThreshold returns an error if any summary's mean throughput
// is below minimum. A minimum of 0 disables the gate.
func CheckThroughputThreshold(summaries []Summary, minimum float64) error {
	if minimum <= 0 {
		return nil
	}
	for _, s := range summaries {
		if s.MeanThroughput < minimum {
			return fmt.Errorf("workers=%d: mean throughput %.0f elem/s below threshold %.0f", s.Workers, s.MeanThroughput, minimum)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Output formatters
// ---------------------------------------------------------------------------

// FormatTable writes a human-readable ASCII table of bench results to w.
func FormatTable(runs []RunResult, summaries []Summary, w io.Writer) {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "%-5s  %-7s  %-5s  %12s  %14s\n", "Run", "Workers", "Cold", "US", "Elem/s")
	fmt.Fprintln(sb, strings.Repeat("-", 52))

	for _, r := range runs {
		cold := ""
		if r.Cold {
			cold = "yes"
		}
		fmt.Fprintf(sb, "%-5d  %-7d  %-5s  %12.1f  %14.0f\n",
			r.Index+1,
			r.Workers,
			cold,
			float64(r.Duration.Microseconds()),
			r.Throughput,
		)
	}

	fmt.Fprintln(sb, strings.Repeat("-", 52))
	for _, s := range summaries {
		fmt.Fprintf(sb, "workers=%-3d  min=%.1fus  mean=%.1fus  max=%.1fus  mean_tput=%.0f elem/s\n",
			s.Workers,
			float64(s.Stats.Min.Microseconds()),
			float64(s.Stats.Mean.Microseconds()),
			float64(s.Stats.Max.Microseconds()),
			s.MeanThroughput,
		)
	}

	fmt.Fprint(w, sb.String())
}

// jsonReport is the top-level JSON structure emitted by FormatJSON.
type jsonReport struct {
	Runs    []jsonRun     `json:"runs"`
	Summary []jsonSummary `json:"summary"`
}

type jsonRun struct {
	Index      int     `json:"index"`
	Workers    int     `json:"workers"`
	Cold       bool    `json:"cold"`
	Elements   int     `json:"elements"`
	DurationUS float64 `json:"duration_us"`
	Throughput float64 `json:"throughput"`
}

type jsonSummary struct {
	Workers        int     `json:"workers"`
	Runs           int     `json:"runs"`
	MinUS          float64 `json:"min_us"`
	MeanUS         float64 `json:"mean_us"`
	MaxUS          float64 `json:"max_us"`
	MeanThroughput float64 `json:"mean_throughput"`
}

// FormatJSON writes a JSON report of bench results to w.
func FormatJSON(runs []RunResult, summaries []Summary, w io.Writer) {
	jr := jsonReport{
		Runs:    make([]jsonRun, len(runs)),
		Summary: make([]jsonSummary, len(summaries)),
	}
	for i, r := range runs {
		jr.Runs[i] = jsonRun{
			Index:      r.Index,
			Workers:    r.Workers,
			Cold:       r.Cold,
			Elements:   r.Elements,
			DurationUS: float64(r.Duration.Microseconds()),
			Throughput: r.Throughput,
		}
	}
	for i, s := range summaries {
		jr.Summary[i] = jsonSummary{
			Workers:        s.Workers,
			Runs:           s.Runs,
			MinUS:          float64(s.Stats.Min.Microseconds()),
			MeanUS:         float64(s.Stats.Mean.Microseconds()),
			MaxUS:          float64(s.Stats.Max.Microseconds()),
			MeanThroughput: s.MeanThroughput,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(jr)
}
