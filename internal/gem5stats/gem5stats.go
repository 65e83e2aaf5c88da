// Package gem5stats extracts per-CPU performance counters from a gem5
// stats.txt dump so simulated DAXPY runs can be compared across core counts.
package gem5stats

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CPUMetrics holds the counters reported for one simulated core.
type CPUMetrics struct {
	Name             string  `json:"name"`
	NumCycles        int64   `json:"num_cycles"`
	CommitInsts      int64   `json:"commit_insts"`
	IPC              float64 `json:"ipc"`
	CPI              float64 `json:"cpi"`
	SIMDFloatAdd     int64   `json:"simd_float_add"`
	SIMDFloatConvert int64   `json:"simd_float_convert"`
	SIMDFloatMult    int64   `json:"simd_float_multiply"`
}

// Report is the parsed content of a stats file.
type Report struct {
	ExecutionTime float64      `json:"execution_time"` // simSeconds
	CPUs          []CPUMetrics `json:"cpus"`
}

const simSecondsKey = "simSeconds"

// stat suffixes under system.cpu<i>.
const (
	keyCPI       = "cpi"
	keyIPC       = "ipc"
	keyNumCycles = "numCycles"
	keyNumInsts  = "commitStats0.numInsts"
	keySIMDAdd   = "commitStats0.committedInstType::SimdFloatAdd"
	keySIMDCvt   = "commitStats0.committedInstType::SimdFloatCvt"
	keySIMDMult  = "commitStats0.committedInstType::SimdFloatMult"
)

const maxLineLength = 1 << 20

// ParseFile opens path and parses it with Parse.
func ParseFile(path string, cpus int) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("open stats file: %w", err)
	}
	defer f.Close()

	return Parse(f, cpus)
}

// Parse reads a gem5 stats.txt stream and collects metrics for CPUs
// system.cpu0 .. system.cpu<cpus-1>. Comment and blank lines are skipped,
// unknown stats are ignored and missing stats stay zero.
func Parse(r io.Reader, cpus int) (Report, error) {
	if cpus < 1 {
		return Report{}, fmt.Errorf("number of CPUs must be at least 1, got %d", cpus)
	}

	rep := Report{CPUs: make([]CPUMetrics, cpus)}
	index := make(map[string]int, cpus)
	for i := range rep.CPUs {
		rep.CPUs[i].Name = fmt.Sprintf("CPU%d", i)
		index[fmt.Sprintf("cpu%d", i)] = i
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		key, value := fields[0], fields[1]

		if key == simSecondsKey {
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Report{}, fmt.Errorf("line %d: %s: %w", lineNo, key, err)
			}
			rep.ExecutionTime = v
			continue
		}

		cpuPart, stat, ok := strings.Cut(strings.TrimPrefix(key, "system."), ".")
		if !ok || !strings.HasPrefix(key, "system.") {
			continue
		}
		i, ok := index[cpuPart]
		if !ok {
			continue
		}

		if err := rep.CPUs[i].set(stat, value); err != nil {
			return Report{}, fmt.Errorf("line %d: %s: %w", lineNo, key, err)
		}
	}
	if err := sc.Err(); err != nil {
		return Report{}, fmt.Errorf("read stats: %w", err)
	}

	return rep, nil
}

func (m *CPUMetrics) set(stat, value string) error {
	var err error
	switch stat {
	case keyCPI:
		m.CPI, err = strconv.ParseFloat(value, 64)
	case keyIPC:
		m.IPC, err = strconv.ParseFloat(value, 64)
	case keyNumCycles:
		m.NumCycles, err = strconv.ParseInt(value, 10, 64)
	case keyNumInsts:
		m.CommitInsts, err = strconv.ParseInt(value, 10, 64)
	case keySIMDAdd:
		m.SIMDFloatAdd, err = strconv.ParseInt(value, 10, 64)
	case keySIMDCvt:
		m.SIMDFloatConvert, err = strconv.ParseInt(value, 10, 64)
	case keySIMDMult:
		m.SIMDFloatMult, err = strconv.ParseInt(value, 10, 64)
	}
	return err
}

// FormatText writes the human-readable report to w.
func FormatText(rep Report, w io.Writer) {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "Total execution time: %.5f\n", rep.ExecutionTime)
	for _, c := range rep.CPUs {
		fmt.Fprintf(sb, "\nMetrics for %s:\n", c.Name)
		fmt.Fprintf(sb, "  Total Cycles: %d per thread\n", c.NumCycles)
		fmt.Fprintf(sb, "  Total Committed Instructions: %d per thread\n", c.CommitInsts)
		fmt.Fprintf(sb, "  Instruction Throughput (IPC): %.5f Instructions/Cycle\n", c.IPC)
		fmt.Fprintf(sb, "  Average Instruction Latency (CPI): %.2f Cycles/Instruction\n", c.CPI)
		fmt.Fprintf(sb, "  SIMD Float Add: %d Counts\n", c.SIMDFloatAdd)
		fmt.Fprintf(sb, "  SIMD Float Convert: %d Counts\n", c.SIMDFloatConvert)
		fmt.Fprintf(sb, "  SIMD Float Multiply: %d Counts\n", c.SIMDFloatMult)
	}

	fmt.Fprint(w, sb.String())
}

// FormatJSON writes rep as indented JSON to w.
func FormatJSON(rep Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
