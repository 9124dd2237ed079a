//go:build !amd64 || purego

package hwy

// Without F16C every element takes the scalar path.

func convertF32ToF16Fast(dst []Float16, src []float32) int {
	return 0
}

func convertF16ToF32Fast(dst []float32, src []Float16) int {
	return 0
}
