package daxpy

import "fmt"

// Range is a half-open index interval [Start, End) owned by one worker.
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices in r.
func (r Range) Len() int {
	return r.End - r.Start
}

// Empty reports whether r covers no indices.
func (r Range) Empty() bool {
	return r.End <= r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Partition splits [0, n) into exactly workers contiguous ranges.
//
// Every range has floor(n/workers) indices except the last, which absorbs the
// remainder. When workers > n the leading ranges are empty and the last range
// covers [0, n).
func Partition(n, workers int) ([]Range, error) {
	if n < 1 {
		return nil, fmt.Errorf("vector length must be at least 1, got %d", n)
	}

	if workers < 1 {
		return nil, fmt.Errorf("worker count must be at least 1, got %d", workers)
	}

	chunk := n / workers
	ranges := make([]Range, workers)

	for i := range ranges {
		ranges[i].Start = i * chunk
		ranges[i].End = (i + 1) * chunk
	}

	ranges[workers-1].End = n

	return ranges, nil
}

// VerifyCoverage returns an error unless ranges, taken in order, tile [0, n)
// exactly once.
func VerifyCoverage(ranges []Range, n int) error {
	next := 0

	for i, r := range ranges {
		if r.Start != next {
			return fmt.Errorf("range %d %s starts at %d, want %d", i, r, r.Start, next)
		}

		if r.End < r.Start {
			return fmt.Errorf("range %d %s is inverted", i, r)
		}

		next = r.End
	}

	if next != n {
		return fmt.Errorf("ranges cover [0, %d), want [0, %d)", next, n)
	}

	return nil
}
