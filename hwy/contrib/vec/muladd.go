package vec

import "github.com/ajroetker/go-ggblas/hwy"

// MulAddScalar accumulates a scaled row: c[i] += b[i]*v for i in [0, n).
//
// This is the inner step of a row-major matrix multiply, where each output
// row is built up as a sum of rows of B scaled by one element of A.
// Both slices must hold at least n elements.
func MulAddScalar(b, c []float32, v float32, n int) {
	if n <= 0 {
		return
	}
	b, c = b[:n], c[:n]

	np := n &^ (hwy.F32Step - 1)
	hwy.MulAddF32Blocks(b[:np], c[:np], v)

	for i := np; i < n; i++ {
		c[i] += b[i] * v
	}
}
