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

// ConvertF32ToF16 narrows min(len(dst), len(src)) float32 values to Float16
// with round-to-nearest-even.
//
// On CPUs with F16C the bulk of the slice goes through VCVTPS2PH, 8 then 4
// elements per instruction; the remaining 0-3 elements, and every element on
// other targets, use Float32ToFloat16. Both paths produce identical bits.
func ConvertF32ToF16(dst []Float16, src []float32) {
	n := min(len(dst), len(src))
	i := convertF32ToF16Fast(dst[:n], src[:n])
	for ; i < n; i++ {
		dst[i] = Float32ToFloat16(src[i])
	}
}

// ConvertF16ToF32 widens min(len(dst), len(src)) Float16 values to float32.
// The widening is exact; the accelerated path uses VCVTPH2PS.
func ConvertF16ToF32(dst []float32, src []Float16) {
	n := min(len(dst), len(src))
	i := convertF16ToF32Fast(dst[:n], src[:n])
	for ; i < n; i++ {
		dst[i] = Float16ToFloat32(src[i])
	}
}
