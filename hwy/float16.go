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

import "math"

// Float16 represents an IEEE 754 half-precision (binary16) floating-point number.
// It wraps uint16 for storage but provides float semantics.
//
// Format: Sign (1 bit) | Exponent (5 bits) | Mantissa (10 bits)
//
//	S | EEEEE | MMMMMMMMMM
//
// Properties:
//   - Exponent bias: 15
//   - Max value: 65504
//   - Min positive normal: 2^-14 (~6.10e-5)
//   - Min positive subnormal: 2^-24 (~5.96e-8)
//   - Precision: 11 significant bits (~3.3 decimal digits)
type Float16 uint16

// Float16 constants for special values.
const (
	Float16Zero      Float16 = 0x0000 // Positive zero
	Float16NegZero   Float16 = 0x8000 // Negative zero
	Float16One       Float16 = 0x3C00 // 1.0
	Float16NegOne    Float16 = 0xBC00 // -1.0
	Float16MaxValue  Float16 = 0x7BFF // 65504 (max finite value)
	Float16MinNormal Float16 = 0x0400 // 2^-14 (~6.10e-5, smallest normal)
	Float16MinValue  Float16 = 0x0001 // Smallest subnormal (~5.96e-8)
	Float16Inf       Float16 = 0x7C00 // Positive infinity
	Float16NegInf    Float16 = 0xFC00 // Negative infinity
	Float16NaN       Float16 = 0x7E00 // Quiet NaN (canonical)
)

// Float16ToFloat32 converts a single Float16 to float32. The conversion is
// exact for every finite value. NaNs come out quiet with their payload kept
// in the top mantissa bits, matching VCVTPH2PS.
func Float16ToFloat32(h Float16) float32 {
	bits := uint32(h)
	sign := (bits & 0x8000) << 16
	exp := (bits >> 10) & 0x1F
	mant := bits & 0x3FF

	switch exp {
	case 0:
		if mant == 0 {
			return math.Float32frombits(sign)
		}
		// Subnormal: shift the leading one into the implicit bit position.
		e := uint32(127 - 15 + 1)
		for mant&0x400 == 0 {
			mant <<= 1
			e--
		}
		mant &= 0x3FF
		return math.Float32frombits(sign | e<<23 | mant<<13)
	case 0x1F:
		if mant == 0 {
			return math.Float32frombits(sign | 0x7F800000)
		}
		return math.Float32frombits(sign | 0x7FC00000 | mant<<13)
	}
	return math.Float32frombits(sign | (exp+127-15)<<23 | mant<<13)
}

// Float32ToFloat16 converts a float32 to Float16 with round-to-nearest-even.
//
// Values above the Float16 range become infinity, values below half the
// smallest subnormal become a signed zero, and NaNs become quiet NaNs carrying
// the top 10 bits of the payload. This matches VCVTPS2PH with imm8=0 bit for
// bit, which is what lets ConvertF32ToF16 mix the two paths.
func Float32ToFloat16(f float32) Float16 {
	bits := math.Float32bits(f)
	sign := uint16(bits>>16) & 0x8000
	exp := int32(bits>>23) & 0xFF
	mant := bits & 0x7FFFFF

	if exp == 0xFF {
		if mant != 0 {
			return Float16(sign | 0x7E00 | uint16(mant>>13))
		}
		return Float16(sign | 0x7C00)
	}

	e := exp - 127 + 15
	if e >= 0x1F {
		return Float16(sign | 0x7C00)
	}

	if e <= 0 {
		if e < -10 {
			return Float16(sign)
		}
		// Subnormal result: value / 2^-24 == (mant|implicit) >> (14-e).
		m := mant | 0x800000
		shift := uint32(14 - e)
		half := m >> shift
		rem := m & (1<<shift - 1)
		halfway := uint32(1) << (shift - 1)
		if rem > halfway || (rem == halfway && half&1 != 0) {
			half++
		}
		return Float16(sign | uint16(half))
	}

	half := uint32(e)<<10 | mant>>13
	rem := mant & 0x1FFF
	if rem > 0x1000 || (rem == 0x1000 && half&1 != 0) {
		// A carry out of the mantissa bumps the exponent, up to infinity.
		half++
	}
	return Float16(sign | uint16(half))
}

// IsNaN returns true if h is a NaN value.
func (h Float16) IsNaN() bool {
	return h&0x7C00 == 0x7C00 && h&0x3FF != 0
}

// IsInf returns true if h is positive or negative infinity.
func (h Float16) IsInf() bool {
	return h&0x7FFF == 0x7C00
}

// IsZero returns true if h is positive or negative zero.
func (h Float16) IsZero() bool {
	return h&0x7FFF == 0
}

// IsNegative returns true if the sign bit is set.
func (h Float16) IsNegative() bool {
	return h&0x8000 != 0
}

// Float32 converts this Float16 to float32.
func (h Float16) Float32() float32 {
	return Float16ToFloat32(h)
}

// NewFloat16 creates a Float16 from a float32 value.
func NewFloat16(f float32) Float16 {
	return Float32ToFloat16(f)
}

// Bits returns the raw uint16 representation.
func (h Float16) Bits() uint16 {
	return uint16(h)
}
