//go:build !amd64 && !arm64

package hwy

// Other architectures only get the portable register sets; no hardware
// half-precision conversion is used.

// HasF16C returns false outside amd64.
func HasF16C() bool {
	return false
}

// HasFMA reports false: the portable register sets do not rely on it.
func HasFMA() bool {
	return false
}

// HasARMFP16 returns false outside arm64.
func HasARMFP16() bool {
	return false
}
