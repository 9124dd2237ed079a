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

// Package matmul provides batched float32 matrix multiplication for the
// small-to-medium shapes of neural-network inference.
//
// Each call multiplies a batch of independent matrices. Batch item t reads
// its operands at a[t*aSkip:], b[t*bSkip:] and writes c[t*cSkip:]. The
// batching*m output rows are split into contiguous ranges across a pool of
// workers pinned one per physical core, and the call returns once all rows
// are written.
//
// Example usage:
//
//	// C = A * B where A is MxK, B is KxN, C is MxN, for 8 batch items
//	a := make([]float32, 8*M*K)  // row-major
//	b := make([]float32, 8*K*N)  // row-major
//	c := make([]float32, 8*M*N)  // output, row-major
//
//	matmul.BatchedMatMul(a, M*K, b, K*N, c, M*N, M, N, K, 8)
//
// BatchedMatMulKLast takes B as NxK (the PyTorch weight layout) and computes
// each output element as one dot product. Both variants overwrite C.
//
// MatMulChecked wraps the engine with tensor shape validation for callers
// that hold shapes rather than raw dimensions.
//
// The kernels run on the register set compiled into the hwy package:
//   - AVX2 with FMA on amd64 built with GOEXPERIMENT=simd
//   - 4-lane registers elsewhere
//   - Scalar with the purego build tag
package matmul
