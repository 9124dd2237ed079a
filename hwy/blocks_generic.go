//go:build purego || (amd64 && goexperiment.simd && amd64.v3) || (!amd64 && !arm64)

package hwy

// Block operations written against the register operations. The AVX2 set
// compiles these to archsimd instructions; the scalar and portable sets to
// plain loops.

// DotF32Blocks returns Σ a[i]*b[i] over len(a) elements, which must be a
// multiple of F32Step. b must hold at least len(a) elements.
func DotF32Blocks(a, b []float32) float32 {
	if len(a) == 0 {
		return 0
	}
	b = b[:len(a)]
	acc := ZeroF32Block()
	for i := 0; i+F32Step <= len(a); i += F32Step {
		for j := 0; j < F32Blocks; j++ {
			off := i + j*F32Lanes
			acc[j] = MulAddF32(LoadF32(a[off:]), LoadF32(b[off:]), acc[j])
		}
	}
	return ReduceF32Block(&acc)
}

// MulAddF32Blocks computes c[i] += b[i]*v over len(b) elements, which must be
// a multiple of F32Step. c must hold at least len(b) elements.
func MulAddF32Blocks(b, c []float32, v float32) {
	if len(b) == 0 {
		return
	}
	c = c[:len(b)]
	vv := BroadcastF32(v)
	for i := 0; i+F32Step <= len(b); i += F32Step {
		for j := 0; j < F32Blocks; j++ {
			off := i + j*F32Lanes
			StoreF32(c[off:], MulAddF32(LoadF32(b[off:]), vv, LoadF32(c[off:])))
		}
	}
}
