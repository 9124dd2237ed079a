// Package hwy provides the vector registers the GEMM kernels are written
// against, plus IEEE half-precision conversion.
//
// The register set is selected when the binary is built:
//
//	GOAMD64=v3 GOEXPERIMENT=simd   AVX2 + FMA, 8 lanes      (reg_avx2.go)
//	amd64 otherwise                SSE2, 4 lanes            (reg_array4.go, blocks_amd64.s)
//	arm64                          NEON + FMLA, 4 lanes     (reg_array4.go, blocks_arm64.s)
//	other architectures            4 lanes in Go arrays     (reg_portable.go)
//	-tags purego                   scalar                   (reg_scalar.go)
//
// Kernels call the block operations (DotF32Blocks, MulAddF32Blocks,
// DotF16Blocks) for the vectorized part of a loop. Per-register operations
// exist for every set and back the block operations where no assembly is
// provided.
package hwy

// DispatchLevel identifies the register set compiled into this binary.
//
// Unlike the runtime dispatch of larger SIMD libraries, the level is fixed at
// build time: build constraints select one register set, which defines the
// register type, the lane count and the unroll step. The GEMM hot path then
// calls plain functions on concrete types, with no per-element indirection.
type DispatchLevel int

const (
	// DispatchScalar is the purego build: one lane, one element per step.
	DispatchScalar DispatchLevel = iota

	// DispatchPortable uses 4-lane Go arrays with no vector instructions.
	// Selected on architectures without an assembly block kernel (wasm,
	// riscv64, ppc64le, s390x, ...).
	DispatchPortable

	// DispatchSSE2 uses 128-bit SSE2 block kernels (MULPS + ADDPS).
	// Selected for amd64 builds below GOAMD64=v3 or without GOEXPERIMENT=simd.
	DispatchSSE2

	// DispatchNEON uses 128-bit NEON block kernels with FMLA.
	DispatchNEON

	// DispatchAVX2 uses 256-bit archsimd registers with FMA.
	// Selected for amd64 builds with GOAMD64=v3 and GOEXPERIMENT=simd.
	DispatchAVX2
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchPortable:
		return "portable"
	case DispatchSSE2:
		return "sse2"
	case DispatchNEON:
		return "neon"
	case DispatchAVX2:
		return "avx2"
	default:
		return "unknown"
	}
}

// CurrentLevel returns the register set compiled into this binary.
func CurrentLevel() DispatchLevel {
	return registerLevel
}

// CurrentWidth returns the register width in bytes.
// For example: 4 for scalar, 16 for SSE2 and NEON, 32 for AVX2.
func CurrentWidth() int {
	return F32Lanes * 4
}

// CurrentName returns a human-readable name for the current register set.
func CurrentName() string {
	return registerLevel.String()
}
