// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hwy

// This file documents the register contract shared by reg_avx2.go,
// reg_array4.go and reg_scalar.go. Exactly one of them is compiled in and
// provides the types and operations below. registerLevel comes from the same
// file or, for the SSE2 and NEON sets, from blocks_amd64.go and
// blocks_arm64.go.
//
//	const registerLevel DispatchLevel
//	const F32Lanes, F32Step, F32Blocks int
//	const F16Lanes, F16Step, F16Blocks int
//	type F32Reg                      // one float32 register
//	type F32Block [F32Blocks]F32Reg  // one unrolled accumulator block
//	type F16Block [F16Blocks]F32Reg  // accumulators fed by Float16 loads
//
//	func ZeroF32() F32Reg
//	func ZeroF32Block() F32Block
//	func LoadF32(src []float32) F32Reg          // reads src[:F32Lanes]
//	func StoreF32(dst []float32, v F32Reg)      // writes dst[:F32Lanes]
//	func BroadcastF32(x float32) F32Reg
//	func MulAddF32(a, b, acc F32Reg) F32Reg     // a*b + acc, lane-wise
//	func ReduceF32Block(b *F32Block) float32    // sum of every lane
//
//	func ZeroF16Block() F16Block
//	func LoadF16(src []Float16) F32Reg          // reads src[:F16Lanes], widened
//	func StoreF16(dst []Float16, v F32Reg)      // writes dst[:F16Lanes], RNE
//	func ReduceF16Block(b *F16Block) float32
//
// On top of the registers every set provides block operations over lengths
// that are a multiple of F32Step (F16Step for halves):
//
//	func DotF32Blocks(a, b []float32) float32
//	func MulAddF32Blocks(b, c []float32, v float32)  // c += b*v
//	func DotF16Blocks(a, b []Float16) float32
//
// The AVX2, scalar and portable sets build them from the register operations
// (blocks_generic.go). SSE2 and NEON run them in assembly, and DotF16Blocks
// widens halves a chunk at a time through ConvertF16ToF32 (blocks_f16_widen.go).
//
// Kernels advance F32Step elements per iteration, feeding F32Blocks
// independent accumulators so consecutive MulAddF32 calls do not wait on each
// other. F32Step is a power of two, so the vectorized prefix of a length k is
// k &^ (F32Step-1) and the remainder is handled by scalar code.

// Compile-time checks of the register contract.
var (
	_ [0]struct{} = [F32Step & (F32Step - 1)]struct{}{}
	_ [0]struct{} = [F16Step & (F16Step - 1)]struct{}{}
	_ [0]struct{} = [F32Step - F32Blocks*F32Lanes]struct{}{}
	_ [0]struct{} = [F16Step - F16Blocks*F16Lanes]struct{}{}
)
