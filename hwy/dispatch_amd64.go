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

//go:build amd64

package hwy

import "golang.org/x/sys/cpu"

// CPU feature flags relevant to the GEMM kernels.
//
// The register set itself needs no runtime check: the AVX2 set is only
// compiled with GOAMD64=v3, and the runtime refuses to start a v3 binary on
// a CPU without AVX2 and FMA.
var (
	// hasF16C indicates F16C support: float16 <-> float32 conversions (Haswell+)
	hasF16C bool

	// hasFMA indicates FMA3 support (Haswell+, Piledriver+).
	hasFMA bool
)

func init() {
	hasFMA = cpu.X86.HasFMA

	// F16C detection: use FMA as a proxy (F16C is present on all FMA-capable CPUs).
	// x/sys/cpu does not expose the F16C bit.
	if cpu.X86.HasAVX && cpu.X86.HasOSXSAVE {
		hasF16C = cpu.X86.HasFMA
	}
}

// HasF16C returns true if the CPU supports F16C instructions.
// F16C provides hardware-accelerated float16 <-> float32 conversions.
// Present on Intel Haswell+ and AMD Piledriver+ CPUs.
func HasF16C() bool {
	return hasF16C
}

// HasFMA returns true if the CPU has fused multiply-add instructions.
func HasFMA() bool {
	return hasFMA
}

// HasARMFP16 returns false on x86 (ARM FP16 is ARM-specific).
// Use HasF16C() for x86 float16 support.
func HasARMFP16() bool {
	return false
}
