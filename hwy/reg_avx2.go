//go:build amd64 && goexperiment.simd && amd64.v3 && !purego

package hwy

import "simd/archsimd"

// AVX2 register set: 8 float32 lanes per register, 4 registers per step.

const registerLevel = DispatchAVX2

const (
	F32Lanes  = 8
	F32Step   = 32
	F32Blocks = F32Step / F32Lanes

	F16Lanes  = 8
	F16Step   = 32
	F16Blocks = F16Step / F16Lanes
)

// F32Reg is one 256-bit register of float32 lanes.
type F32Reg = archsimd.Float32x8

// F32Block holds the unrolled accumulators of one F32Step.
type F32Block [F32Blocks]F32Reg

// F16Block holds the float32 accumulators of one F16Step.
type F16Block [F16Blocks]F32Reg

func ZeroF32() F32Reg {
	return archsimd.BroadcastFloat32x8(0)
}

func ZeroF32Block() F32Block {
	z := ZeroF32()
	return F32Block{z, z, z, z}
}

func LoadF32(src []float32) F32Reg {
	return archsimd.LoadFloat32x8Slice(src)
}

func StoreF32(dst []float32, v F32Reg) {
	v.StoreSlice(dst)
}

func BroadcastF32(x float32) F32Reg {
	return archsimd.BroadcastFloat32x8(x)
}

// MulAddF32 returns a*b + acc using VFMADD.
func MulAddF32(a, b, acc F32Reg) F32Reg {
	return a.MulAdd(b, acc)
}

// ReduceF32Block folds the block pairwise into one register, then sums its
// lanes as a tree.
func ReduceF32Block(b *F32Block) float32 {
	s := b[0].Add(b[1]).Add(b[2].Add(b[3]))
	return reduceLanes8(s)
}

func ZeroF16Block() F16Block {
	z := ZeroF32()
	return F16Block{z, z, z, z}
}

// LoadF16 widens src[:8] into one float32 register. Each call goes through
// ConvertF16ToF32; loops over many halves should use DotF16Blocks, which
// widens a whole chunk per conversion call.
func LoadF16(src []Float16) F32Reg {
	var tmp [F16Lanes]float32
	ConvertF16ToF32(tmp[:], src[:F16Lanes])
	return archsimd.LoadFloat32x8Slice(tmp[:])
}

// StoreF16 narrows v into dst[:8] with round-to-nearest-even.
func StoreF16(dst []Float16, v F32Reg) {
	var tmp [F16Lanes]float32
	v.StoreSlice(tmp[:])
	ConvertF32ToF16(dst[:F16Lanes], tmp[:])
}

func ReduceF16Block(b *F16Block) float32 {
	s := b[0].Add(b[1]).Add(b[2].Add(b[3]))
	return reduceLanes8(s)
}

func reduceLanes8(v F32Reg) float32 {
	var lanes [8]float32
	v.StoreSlice(lanes[:])
	return ((lanes[0] + lanes[4]) + (lanes[1] + lanes[5])) +
		((lanes[2] + lanes[6]) + (lanes[3] + lanes[7]))
}
