package daxpy

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// Kernel computes dst[i] = alpha*src[i] + dst[i] for every i.
// len(src) must be at least len(dst); the caller is responsible for this.
type Kernel func(dst []float64, alpha float64, src []float64)

const (
	KernelGeneric = "generic"
	KernelVecmath = "vecmath"
)

// KernelNames lists the accepted kernel names in display order.
var KernelNames = []string{KernelGeneric, KernelVecmath}

// CanonicalKernel maps name to one of KernelNames. Matching is
// case-insensitive, an empty name selects the generic kernel and "scalar" and
// "go" are aliases for it.
func CanonicalKernel(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", KernelGeneric, "scalar", "go":
		return KernelGeneric, nil
	case KernelVecmath:
		return KernelVecmath, nil
	default:
		return "", fmt.Errorf("unknown kernel %q (expected %s)", name, strings.Join(KernelNames, "|"))
	}
}

// LookupKernel returns the kernel registered under name. Any name accepted by
// CanonicalKernel is valid.
func LookupKernel(name string) (Kernel, error) {
	canonical, err := CanonicalKernel(name)
	if err != nil {
		return nil, err
	}

	if canonical == KernelVecmath {
		return AxpyVecmath, nil
	}

	return AxpyGeneric, nil
}

// AxpyGeneric is the scalar reference kernel.
func AxpyGeneric(dst []float64, alpha float64, src []float64) {
	src = src[:len(dst)]
	for i := range dst {
		dst[i] = alpha*src[i] + dst[i]
	}
}

// scratchPool holds reusable buffers for the vecmath kernel's scaled copy of src.
var scratchPool = sync.Pool{
	New: func() any {
		return new([]float64)
	},
}

// AxpyVecmath scales src into pooled scratch with vecmath.ScaleBlock and then
// accumulates it into dst with vecmath.AddBlockInPlace.
func AxpyVecmath(dst []float64, alpha float64, src []float64) {
	n := len(dst)
	if n == 0 {
		return
	}

	buf := scratchPool.Get().(*[]float64)
	if cap(*buf) < n {
		*buf = make([]float64, n)
	}

	tmp := (*buf)[:n]
	vecmath.ScaleBlock(tmp, src[:n], alpha)
	vecmath.AddBlockInPlace(dst, tmp)

	scratchPool.Put(buf)
}
