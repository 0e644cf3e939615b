// Package interp implements the reconstruction interpolators over typed
// raster views (spec §4.4): nearest, bilinear, and windowed-sinc
// (Lanczos).
package interp

import (
	"log/slog"

	"golang.org/x/sys/cpu"
)

// Kernel identifies which CPU capability the sampling kernels could, in
// principle, take advantage of. Grounded on the teacher's runtime
// feature-dispatch pattern (internal/fit/sad.go, internal/fit/ssd.go:
// init() probes golang.org/x/sys/cpu and records the selected backend in
// a package variable). This package probes the same way, but the
// sampling kernels themselves stay on a single portable Go code path —
// see DESIGN.md for why no AVX2/NEON assembly was ported.
type Kernel int

const (
	KernelScalar Kernel = iota
	KernelAVX2Capable
	KernelNEONCapable
)

func (k Kernel) String() string {
	switch k {
	case KernelAVX2Capable:
		return "avx2-capable (scalar path used)"
	case KernelNEONCapable:
		return "neon-capable (scalar path used)"
	default:
		return "scalar"
	}
}

// ActiveKernel reports the CPU capability detected at process start,
// for diagnostics only (the --verbose CLI flag prints it).
var ActiveKernel Kernel

func init() {
	switch {
	case cpu.X86.HasAVX2:
		ActiveKernel = KernelAVX2Capable
	case cpu.ARM64.HasASIMD:
		ActiveKernel = KernelNEONCapable
	default:
		ActiveKernel = KernelScalar
	}
	slog.Debug("interpolation kernel capability probe", "kernel", ActiveKernel.String())
}
