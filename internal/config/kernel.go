package config

import (
	"github.com/example/go-daxpy/internal/daxpy"
)

const (
	KernelGeneric = daxpy.KernelGeneric
	KernelVecmath = daxpy.KernelVecmath
)

// NormalizeKernel canonicalises a kernel name. Empty selects the generic kernel.
func NormalizeKernel(raw string) (string, error) {
	return daxpy.CanonicalKernel(raw)
}
