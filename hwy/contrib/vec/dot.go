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

package vec

import "github.com/ajroetker/go-ggblas/hwy"

// Dot computes the dot product of the first k elements of a and b:
// Σ a[i]*b[i] for i in [0, k).
//
// The first k &^ (hwy.F32Step-1) elements go through hwy.DotF32Blocks,
// which keeps hwy.F32Blocks independent accumulators and reduces them. The
// remaining elements are added in order with scalar code.
//
// Both slices must hold at least k elements. Returns 0 for k == 0.
//
// Example:
//
//	a := []float32{1, 2, 3}
//	b := []float32{4, 5, 6}
//	result := Dot(a, b, 3)  // 1*4 + 2*5 + 3*6 = 32
func Dot(a, b []float32, k int) float32 {
	if k <= 0 {
		return 0
	}
	a, b = a[:k], b[:k]

	np := k &^ (hwy.F32Step - 1)
	sum := hwy.DotF32Blocks(a[:np], b[:np])

	for i := np; i < k; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// DotF16 is Dot over half-precision inputs. Elements are widened to float32
// and accumulated in float32, so the result carries no extra rounding beyond
// the inputs themselves. Where hardware conversion exists the widening is done
// in bulk by hwy.DotF16Blocks rather than per register.
func DotF16(a, b []hwy.Float16, k int) float32 {
	if k <= 0 {
		return 0
	}
	a, b = a[:k], b[:k]

	np := k &^ (hwy.F16Step - 1)
	sum := hwy.DotF16Blocks(a[:np], b[:np])

	for i := np; i < k; i++ {
		sum += a[i].Float32() * b[i].Float32()
	}
	return sum
}
