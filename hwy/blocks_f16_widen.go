//go:build !purego && (amd64 || arm64)

package hwy

// f16Chunk halves of each operand are widened per pass of DotF16Blocks.
// It is a multiple of every F32Step.
const f16Chunk = 256

// The widened chunks are handed to DotF32Blocks, so both sets must step
// together.
var _ [0]struct{} = [F16Step - F32Step]struct{}{}

// DotF16Blocks returns Σ a[i]*b[i] over len(a) halves, which must be a
// multiple of F16Step, accumulated in float32.
//
// Halves are widened a chunk at a time with ConvertF16ToF32 (VCVTPH2PS on
// amd64 with F16C) into stack buffers, and each chunk goes through the float32
// block kernel.
func DotF16Blocks(a, b []Float16) float32 {
	b = b[:len(a)]
	var wa, wb [f16Chunk]float32
	var sum float32
	for i := 0; i < len(a); i += f16Chunk {
		n := min(f16Chunk, len(a)-i)
		ConvertF16ToF32(wa[:n], a[i:i+n])
		ConvertF16ToF32(wb[:n], b[i:i+n])
		sum += DotF32Blocks(wa[:n], wb[:n])
	}
	return sum
}
