//go:build arm64

package hwy

import "golang.org/x/sys/cpu"

// hasARMFP16 indicates half-precision arithmetic support (ARMv8.2-A FP16).
var hasARMFP16 bool

func init() {
	// NEON (ASIMD) and fused multiply-add are part of the ARMv8-A base
	// architecture. FPHP is reported separately.
	hasARMFP16 = cpu.ARM64.HasFPHP && cpu.ARM64.HasASIMDHP
}

// HasF16C returns false on ARM (F16C is x86-specific).
func HasF16C() bool {
	return false
}

// HasFMA returns true: FMADD/FMLA are mandatory on ARMv8.
func HasFMA() bool {
	return true
}

// HasARMFP16 returns true if the CPU supports ARM half-precision arithmetic.
func HasARMFP16() bool {
	return hasARMFP16
}
