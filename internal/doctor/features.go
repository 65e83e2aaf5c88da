package doctor

import "golang.org/x/sys/cpu"

// CPUFeatures lists the SIMD extensions relevant to the axpy kernels that the
// host CPU reports.
func CPUFeatures() []string {
	var out []string

	x86 := []struct {
		name string
		ok   bool
	}{
		{"sse2", cpu.X86.HasSSE2},
		{"avx", cpu.X86.HasAVX},
		{"avx2", cpu.X86.HasAVX2},
		{"fma", cpu.X86.HasFMA},
		{"avx512f", cpu.X86.HasAVX512F},
	}
	for _, f := range x86 {
		if f.ok {
			out = append(out, f.name)
		}
	}

	arm := []struct {
		name string
		ok   bool
	}{
		{"asimd", cpu.ARM64.HasASIMD},
		{"fphp", cpu.ARM64.HasFPHP},
		{"sve", cpu.ARM64.HasSVE},
	}
	for _, f := range arm {
		if f.ok {
			out = append(out, f.name)
		}
	}

	return out
}
