//go:build purego || (!amd64 && !arm64)

package hwy

// DotF16Blocks returns Σ a[i]*b[i] over len(a) halves, which must be a
// multiple of F16Step, accumulated in float32.
func DotF16Blocks(a, b []Float16) float32 {
	if len(a) == 0 {
		return 0
	}
	b = b[:len(a)]
	acc := ZeroF16Block()
	for i := 0; i+F16Step <= len(a); i += F16Step {
		for j := 0; j < F16Blocks; j++ {
			off := i + j*F16Lanes
			acc[j] = MulAddF32(LoadF16(a[off:]), LoadF16(b[off:]), acc[j])
		}
	}
	return ReduceF16Block(&acc)
}
