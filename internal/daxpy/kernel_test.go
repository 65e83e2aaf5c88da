package daxpy

import (
	"fmt"
	"math"
	"testing"
)

func TestKernels(t *testing.T) {
	tests := []struct {
		name  string
		dst   []float64
		alpha float64
		src   []float64
		want  []float64
	}{
		{
			name:  "basic",
			dst:   []float64{1, 2, 3},
			alpha: 0.5,
			src:   []float64{4, 5, 6},
			want:  []float64{3, 4.5, 6},
		},
		{
			name:  "empty",
			dst:   nil,
			alpha: 1,
			src:   nil,
			want:  nil,
		},
		{
			name:  "longer src uses dst length",
			dst:   []float64{1, 2},
			alpha: 2,
			src:   []float64{10, 20, 30},
			want:  []float64{21, 42},
		},
		{
			name:  "zero alpha keeps dst",
			dst:   []float64{1, 2, 3},
			alpha: 0,
			src:   []float64{9, 9, 9},
			want:  []float64{1, 2, 3},
		},
		{
			name:  "negative alpha",
			dst:   []float64{10, 10},
			alpha: -1,
			src:   []float64{4, 12},
			want:  []float64{6, -2},
		},
	}

	for _, name := range KernelNames {
		kernel, err := LookupKernel(name)
		if err != nil {
			t.Fatalf("LookupKernel(%q) error = %v", name, err)
		}

		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				got := append([]float64(nil), tt.dst...)
				kernel(got, tt.alpha, tt.src)

				if len(got) != len(tt.want) {
					t.Fatalf("len(got)=%d want=%d", len(got), len(tt.want))
				}

				for i := range got {
					if math.Abs(got[i]-tt.want[i]) > 1e-12 {
						t.Fatalf("got[%d]=%v want=%v (all got=%v)", i, got[i], tt.want[i], got)
					}
				}
			})
		}
	}
}

func TestLookupKernel(t *testing.T) {
	for _, name := range []string{"", "generic", "GENERIC", " vecmath ", "VecMath", "scalar", "go"} {
		if _, err := LookupKernel(name); err != nil {
			t.Errorf("LookupKernel(%q) error = %v", name, err)
		}
	}

	if _, err := LookupKernel("avx512"); err == nil {
		t.Error("LookupKernel(\"avx512\") = nil error; want error")
	}
}

func TestCanonicalKernel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", KernelGeneric},
		{"scalar", KernelGeneric},
		{" GO ", KernelGeneric},
		{"vecmath", KernelVecmath},
	}

	for _, tt := range tests {
		got, err := CanonicalKernel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("CanonicalKernel(%q) = (%q, %v); want %q", tt.in, got, err, tt.want)
		}
	}

	if _, err := CanonicalKernel("sve2"); err == nil {
		t.Error("CanonicalKernel(\"sve2\") = nil error; want error")
	}

	// Every canonical name must resolve to a kernel.
	for _, name := range KernelNames {
		if _, err := LookupKernel(name); err != nil {
			t.Errorf("LookupKernel(%q) error = %v", name, err)
		}
	}
}

func TestAxpyVecmath_ReusesScratchAcrossSizes(t *testing.T) {
	for _, n := range []int{64, 3, 1000, 1} {
		dst := make([]float64, n)
		src := make([]float64, n)
		for i := range n {
			dst[i] = float64(i)
			src[i] = 1
		}

		AxpyVecmath(dst, 3, src)

		for i := range n {
			if dst[i] != float64(i)+3 {
				t.Fatalf("n=%d: dst[%d]=%v want %v", n, i, dst[i], float64(i)+3)
			}
		}
	}
}

func BenchmarkKernels(b *testing.B) {
	for _, name := range KernelNames {
		kernel, _ := LookupKernel(name)

		for _, n := range []int{64, 1250, 10000} {
			dst := make([]float64, n)
			src := make([]float64, n)
			for i := range n {
				dst[i] = float64(i) * 0.1
				src[i] = float64(n-i) * 0.05
			}

			b.Run(fmt.Sprintf("%s/n=%d", name, n), func(b *testing.B) {
				for range b.N {
					kernel(dst, 0.7, src)
				}
			})
		}
	}
}
