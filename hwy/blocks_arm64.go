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

//go:build arm64 && !purego

package hwy

import "unsafe"

// NEON (ASIMD) with FMLA is part of the ARMv8-A base architecture.
const registerLevel = DispatchNEON

// DotF32Blocks returns Σ a[i]*b[i] over len(a) elements, which must be a
// multiple of F32Step. b must hold at least len(a) elements.
func DotF32Blocks(a, b []float32) float32 {
	n := len(a)
	if n == 0 {
		return 0
	}
	b = b[:n]
	var acc F32Block
	dotF32NEON(unsafe.Pointer(&a[0]), unsafe.Pointer(&b[0]), n, unsafe.Pointer(&acc))
	return ReduceF32Block(&acc)
}

// MulAddF32Blocks computes c[i] += b[i]*v over len(b) elements, which must be
// a multiple of F32Step. c must hold at least len(b) elements.
func MulAddF32Blocks(b, c []float32, v float32) {
	n := len(b)
	if n == 0 {
		return
	}
	c = c[:n]
	mulAddF32NEON(unsafe.Pointer(&b[0]), unsafe.Pointer(&c[0]), n, v)
}

// dotF32NEON accumulates a*b over n elements (n a multiple of 16) into four
// 4-lane FMLA accumulators written to acc.
//
//go:noescape
func dotF32NEON(a, b unsafe.Pointer, n int, acc unsafe.Pointer)

// mulAddF32NEON computes c += b*v over n elements (n a multiple of 16) with
// FMLA.
//
//go:noescape
func mulAddF32NEON(b, c unsafe.Pointer, n int, v float32)
