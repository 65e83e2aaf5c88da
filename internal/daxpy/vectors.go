package daxpy

import "fmt"

// Vectors holds the operands of one DAXPY run: Y is updated in place to
// Alpha*X + Y.
type Vectors struct {
	X     []float64
	Y     []float64
	Alpha float64
}

// NewSeeded allocates vectors of length n with x[i] = 2i and y[i] = 3i.
func NewSeeded(n int, alpha float64) (*Vectors, error) {
	if n < 1 {
		return nil, fmt.Errorf("vector length must be at least 1, got %d", n)
	}

	v := &Vectors{
		X:     make([]float64, n),
		Y:     make([]float64, n),
		Alpha: alpha,
	}

	for i := range n {
		v.X[i] = float64(i) * 2.0
		v.Y[i] = float64(i) * 3.0
	}

	return v, nil
}

// Len returns the shared length of X and Y.
func (v *Vectors) Len() int {
	return len(v.Y)
}

// Clone returns a deep copy of v.
func (v *Vectors) Clone() *Vectors {
	return &Vectors{
		X:     append([]float64(nil), v.X...),
		Y:     append([]float64(nil), v.Y...),
		Alpha: v.Alpha,
	}
}

func (v *Vectors) validate() error {
	if v == nil {
		return fmt.Errorf("vectors are nil")
	}

	if len(v.X) != len(v.Y) {
		return fmt.Errorf("vector length mismatch: len(x)=%d len(y)=%d", len(v.X), len(v.Y))
	}

	if len(v.Y) == 0 {
		return fmt.Errorf("vectors are empty")
	}

	return nil
}
