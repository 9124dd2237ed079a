//go:build !purego && !(amd64 && goexperiment.simd && amd64.v3)

package hwy

// 4-lane register values shared by the SSE2, NEON and portable sets.
//
// Registers are Go arrays and the per-register operations below are plain
// scalar code; the compiler does not vectorize them. The SSE2 and NEON sets
// run their hot loops in assembly (blocks_amd64.s, blocks_arm64.s) and use
// these operations only outside the block kernels. The portable set runs
// everything through them.

const (
	F32Lanes  = 4
	F32Step   = 16
	F32Blocks = F32Step / F32Lanes

	F16Lanes  = 4
	F16Step   = 16
	F16Blocks = F16Step / F16Lanes
)

// F32Reg is one 4-lane float32 register, laid out like a 128-bit vector.
type F32Reg [F32Lanes]float32

// F32Block holds the unrolled accumulators of one F32Step.
type F32Block [F32Blocks]F32Reg

// F16Block holds the float32 accumulators of one F16Step.
type F16Block [F16Blocks]F32Reg

func ZeroF32() F32Reg {
	return F32Reg{}
}

func ZeroF32Block() F32Block {
	return F32Block{}
}

func LoadF32(src []float32) F32Reg {
	_ = src[3]
	return F32Reg{src[0], src[1], src[2], src[3]}
}

func StoreF32(dst []float32, v F32Reg) {
	_ = dst[3]
	dst[0] = v[0]
	dst[1] = v[1]
	dst[2] = v[2]
	dst[3] = v[3]
}

func BroadcastF32(x float32) F32Reg {
	return F32Reg{x, x, x, x}
}

func MulAddF32(a, b, acc F32Reg) F32Reg {
	return F32Reg{
		a[0]*b[0] + acc[0],
		a[1]*b[1] + acc[1],
		a[2]*b[2] + acc[2],
		a[3]*b[3] + acc[3],
	}
}

func ReduceF32Block(b *F32Block) float32 {
	return reduceLanes4(addLanes4(addLanes4(b[0], b[1]), addLanes4(b[2], b[3])))
}

func ZeroF16Block() F16Block {
	return F16Block{}
}

func LoadF16(src []Float16) F32Reg {
	_ = src[3]
	return F32Reg{
		Float16ToFloat32(src[0]),
		Float16ToFloat32(src[1]),
		Float16ToFloat32(src[2]),
		Float16ToFloat32(src[3]),
	}
}

func StoreF16(dst []Float16, v F32Reg) {
	_ = dst[3]
	dst[0] = Float32ToFloat16(v[0])
	dst[1] = Float32ToFloat16(v[1])
	dst[2] = Float32ToFloat16(v[2])
	dst[3] = Float32ToFloat16(v[3])
}

func ReduceF16Block(b *F16Block) float32 {
	return reduceLanes4(addLanes4(addLanes4(b[0], b[1]), addLanes4(b[2], b[3])))
}

func addLanes4(a, b F32Reg) F32Reg {
	return F32Reg{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func reduceLanes4(v F32Reg) float32 {
	return (v[0] + v[2]) + (v[1] + v[3])
}
