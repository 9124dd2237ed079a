// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"errors"
	"fmt"
	"slices"
)

// ErrDimMismatch is wrapped by every shape validation error.
var ErrDimMismatch = errors.New("dimension mismatch")

// ShapeError describes a rejected operand shape or buffer.
type ShapeError struct {
	Op  string // operand or check that failed
	Msg string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("matmul: %s: %s: %v", e.Op, e.Msg, ErrDimMismatch)
}

// Unwrap lets errors.Is match ErrDimMismatch.
func (e *ShapeError) Unwrap() error {
	return ErrDimMismatch
}

func shapeErrorf(op, format string, args ...any) error {
	return &ShapeError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Dims is a validated set of arguments for the batched entry points.
type Dims struct {
	M, N, K  int
	Batching int

	ASkip, BSkip, CSkip int
}

// ShapesFor derives the GEMM dimensions from tensor shapes.
//
// All three shapes must have the same rank, at least 2, and identical leading
// (batch) dimensions. A is [..., m, k]; B is [..., k, n], or [..., n, k] when
// transposed; C is [..., m, n]. The batch count is the product of the leading
// dimensions and each operand's skip is the size of one of its matrices.
func ShapesFor(aShape, bShape, cShape []int, transposed bool) (Dims, error) {
	rank := len(aShape)
	if rank < 2 {
		return Dims{}, shapeErrorf("a", "rank %d, need at least 2", rank)
	}
	if len(bShape) != rank {
		return Dims{}, shapeErrorf("b", "rank %d, want %d", len(bShape), rank)
	}
	if len(cShape) != rank {
		return Dims{}, shapeErrorf("c", "rank %d, want %d", len(cShape), rank)
	}
	for _, s := range [][]int{aShape, bShape, cShape} {
		if i := slices.IndexFunc(s, func(d int) bool { return d < 0 }); i >= 0 {
			return Dims{}, shapeErrorf("shape", "negative dimension in %v", s)
		}
	}

	m, k := aShape[rank-2], aShape[rank-1]
	var n int
	wantB := slices.Clone(aShape)
	if transposed {
		n = bShape[rank-2]
		wantB[rank-2], wantB[rank-1] = n, k
	} else {
		n = bShape[rank-1]
		wantB[rank-2], wantB[rank-1] = k, n
	}
	if !slices.Equal(bShape, wantB) {
		return Dims{}, shapeErrorf("b", "shape %v, want %v", bShape, wantB)
	}
	wantC := slices.Clone(aShape)
	wantC[rank-2], wantC[rank-1] = m, n
	if !slices.Equal(cShape, wantC) {
		return Dims{}, shapeErrorf("c", "shape %v, want %v", cShape, wantC)
	}

	batching := 1
	for _, d := range aShape[:rank-2] {
		batching *= d
	}
	return Dims{
		M: m, N: n, K: k,
		Batching: batching,
		ASkip:    m * k,
		BSkip:    n * k,
		CSkip:    m * n,
	}, nil
}

// MatMulChecked validates shapes and buffer lengths, then computes
// C = A * B (or A * B^T when transposed) for every batch item on the default
// pool. C is overwritten. On error nothing is written.
func MatMulChecked(a []float32, aShape []int, b []float32, bShape []int, c []float32, cShape []int, transposed bool) error {
	d, err := ShapesFor(aShape, bShape, cShape, transposed)
	if err != nil {
		return err
	}
	for _, buf := range []struct {
		op        string
		have, want int
	}{
		{"a", len(a), d.Batching * d.ASkip},
		{"b", len(b), d.Batching * d.BSkip},
		{"c", len(c), d.Batching * d.CSkip},
	} {
		if buf.have < buf.want {
			return shapeErrorf(buf.op, "buffer holds %d elements, shape needs %d", buf.have, buf.want)
		}
	}

	if transposed {
		BatchedMatMulKLast(a, d.ASkip, b, d.BSkip, c, d.CSkip, d.M, d.N, d.K, d.Batching)
	} else {
		BatchedMatMul(a, d.ASkip, b, d.BSkip, c, d.CSkip, d.M, d.N, d.K, d.Batching)
	}
	return nil
}
