//go:build amd64 && !purego

package hwy

// convertF32ToF16Fast converts the largest multiple-of-4 prefix with F16C and
// returns how many elements it handled.
func convertF32ToF16Fast(dst []Float16, src []float32) int {
	if !hasF16C || len(src) < 4 {
		return 0
	}
	n := len(src) &^ 3
	f32ToF16F16C(&dst[0], &src[0], n)
	return n
}

func convertF16ToF32Fast(dst []float32, src []Float16) int {
	if !hasF16C || len(src) < 4 {
		return 0
	}
	n := len(src) &^ 3
	f16ToF32F16C(&dst[0], &src[0], n)
	return n
}

// f32ToF16F16C converts n float32 values (n a multiple of 4) with VCVTPS2PH.
//
//go:noescape
func f32ToF16F16C(dst *Float16, src *float32, n int)

// f16ToF32F16C converts n Float16 values (n a multiple of 4) with VCVTPH2PS.
//
//go:noescape
func f16ToF32F16C(dst *float32, src *Float16, n int)
