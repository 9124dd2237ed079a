//go:build purego

package hwy

// Scalar register set: one lane, one element per step. Every kernel built on
// this file reduces to its plain scalar loop, which makes it the reference
// behaviour for the vector register sets.

const registerLevel = DispatchScalar

const (
	F32Lanes  = 1
	F32Step   = 1
	F32Blocks = 1

	F16Lanes  = 1
	F16Step   = 1
	F16Blocks = 1
)

// F32Reg is a single float32.
type F32Reg = float32

type F32Block [F32Blocks]F32Reg

type F16Block [F16Blocks]F32Reg

func ZeroF32() F32Reg { return 0 }

func ZeroF32Block() F32Block { return F32Block{} }

func LoadF32(src []float32) F32Reg { return src[0] }

func StoreF32(dst []float32, v F32Reg) { dst[0] = v }

func BroadcastF32(x float32) F32Reg { return x }

func MulAddF32(a, b, acc F32Reg) F32Reg { return a*b + acc }

func ReduceF32Block(b *F32Block) float32 { return b[0] }

func ZeroF16Block() F16Block { return F16Block{} }

func LoadF16(src []Float16) F32Reg { return Float16ToFloat32(src[0]) }

func StoreF16(dst []Float16, v F32Reg) { dst[0] = Float32ToFloat16(v) }

func ReduceF16Block(b *F16Block) float32 { return b[0] }
