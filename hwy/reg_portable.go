//go:build !purego && !amd64 && !arm64

package hwy

// Architectures without a block kernel in assembly (wasm, riscv64, ppc64le,
// s390x, ...). The 4-lane register operations run as scalar code; the
// compiler can still fuse a*b+c on targets with FMA.
const registerLevel = DispatchPortable
