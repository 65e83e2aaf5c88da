package bench_test

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/example/go-daxpy/internal/bench"
)

// ---------------------------------------------------------------------------
// Aggregation
// ---------------------------------------------------------------------------

func TestStats_MinMaxMean(t *testing.T) {
	durations := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		300 * time.Millisecond,
	}
	s := bench.ComputeStats(durations)

	if s.Min != 100*time.Millisecond {
		t.Errorf("want min=100ms, got %v", s.Min)
	}

	if s.Max != 300*time.Millisecond {
		t.Errorf("want max=300ms, got %v", s.Max)
	}

	if s.Mean != 200*time.Millisecond {
		t.Errorf("want mean=200ms, got %v", s.Mean)
	}
}

func TestStats_SingleRun(t *testing.T) {
	s := bench.ComputeStats([]time.Duration{150 * time.Millisecond})
	if s.Min != s.Max || s.Min != s.Mean {
		t.Errorf("single run: min/max/mean should all be equal, got min=%v max=%v mean=%v", s.Min, s.Max, s.Mean)
	}
}

func TestStats_Empty(t *testing.T) {
	if s := bench.ComputeStats(nil); s != (bench.Stats{}) {
		t.Errorf("empty input: want zero Stats, got %+v", s)
	}
}

func TestSummarize_GroupsByWorkers(t *testing.T) {
	runs := []bench.RunResult{
		{Index: 0, Workers: 4, Duration: 2 * time.Millisecond, Throughput: 100},
		{Index: 1, Workers: 4, Duration: 4 * time.Millisecond, Throughput: 50},
		{Index: 0, Workers: 1, Duration: 8 * time.Millisecond, Throughput: 25},
	}

	got := bench.Summarize(runs)
	if len(got) != 2 {
		t.Fatalf("want 2 summaries, got %d", len(got))
	}

	if got[0].Workers != 1 || got[1].Workers != 4 {
		t.Fatalf("summaries not sorted by workers: %+v", got)
	}

	if got[1].Runs != 2 || got[1].Stats.Mean != 3*time.Millisecond || got[1].MeanThroughput != 75 {
		t.Errorf("workers=4 summary = %+v", got[1])
	}
}

// ---------------------------------------------------------------------------
// Throughput
// ---------------------------------------------------------------------------

func TestCalcThroughput(t *testing.T) {
	// 10000 elements in 1ms → 1e7 elem/s
	got := bench.CalcThroughput(10000, time.Millisecond)
	if got < 0.999e7 || got > 1.001e7 {
		t.Errorf("want ≈1e7, got %.1f", got)
	}
}

func TestCalcThroughput_ZeroDuration(t *testing.T) {
	if got := bench.CalcThroughput(10000, 0); got != 0 {
		t.Errorf("want 0 for zero duration, got %.4f", got)
	}
}

func TestParseWorkerList(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"1,2,4,8", []int{1, 2, 4, 8}, false},
		{" 8 , 1 ", []int{8, 1}, false},
		{"2,2,3", []int{2, 3}, false},
		{"4,", []int{4}, false},
		{"", nil, true},
		{"0", nil, true},
		{"a,b", nil, true},
		{"-2", nil, true},
	}

	for _, tt := range tests {
		got, err := bench.ParseWorkerList(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseWorkerList(%q) error = %v; wantErr %v", tt.in, err, tt.wantErr)
			continue
		}

		if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseWorkerList(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// Throughput threshold gate
// ---------------------------------------------------------------------------

func TestThroughputThreshold(t *testing.T) {
	summaries := []bench.Summary{
		{Workers: 1, MeanThroughput: 1e6},
		{Workers: 8, MeanThroughput: 5e6},
	}

	if err := bench.CheckThroughputThreshold(summaries, 2e6); err == nil {
		t.Error("want error when a worker count is below threshold")
	}

	if err := bench.CheckThroughputThreshold(summaries, 1e6); err != nil {
		t.Errorf("want no error at exact threshold, got: %v", err)
	}

	if err := bench.CheckThroughputThreshold(summaries, 0); err != nil {
		t.Errorf("threshold=0 should disable gate, got: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Output formatting
// ---------------------------------------------------------------------------

func sampleRuns() ([]bench.RunResult, []bench.Summary) {
	runs := []bench.RunResult{
		{Index: 0, Workers: 2, Cold: true, Elements: 10000, Duration: 800 * time.Microsecond, Throughput: 1.25e7},
		{Index: 1, Workers: 2, Elements: 10000, Duration: 500 * time.Microsecond, Throughput: 2e7},
	}

	return runs, bench.Summarize(runs)
}

func TestFormatTable_ContainsHeaders(t *testing.T) {
	runs, summaries := sampleRuns()

	var buf strings.Builder
	bench.FormatTable(runs, summaries, &buf)
	out := buf.String()

	for _, want := range []string{"run", "workers", "cold", "us", "elem/s", "mean="} {
		if !strings.Contains(strings.ToLower(out), want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatJSON_IsValidJSON(t *testing.T) {
	runs, summaries := sampleRuns()

	var buf bytes.Buffer
	bench.FormatJSON(runs, summaries, &buf)

	var out struct {
		Runs    []map[string]any `json:"runs"`
		Summary []map[string]any `json:"summary"`
	}

	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("FormatJSON produced invalid JSON: %v\n%s", err, buf.String())
	}

	if len(out.Runs) != 2 || len(out.Summary) != 1 {
		t.Fatalf("runs=%d summary=%d; want 2 and 1", len(out.Runs), len(out.Summary))
	}

	if out.Summary[0]["workers"] != float64(2) {
		t.Errorf("summary workers = %v; want 2", out.Summary[0]["workers"])
	}
}
