// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"errors"
	"testing"
)

func TestShapesFor(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c    []int
		transposed bool
		want       Dims
		wantErr    bool
	}{
		{
			name: "2d",
			a:    []int{3, 4}, b: []int{4, 2}, c: []int{3, 2},
			want: Dims{M: 3, N: 2, K: 4, Batching: 1, ASkip: 12, BSkip: 8, CSkip: 6},
		},
		{
			name: "2d transposed",
			a:    []int{3, 4}, b: []int{2, 4}, c: []int{3, 2}, transposed: true,
			want: Dims{M: 3, N: 2, K: 4, Batching: 1, ASkip: 12, BSkip: 8, CSkip: 6},
		},
		{
			name: "4d batch",
			a:    []int{2, 3, 6, 5}, b: []int{2, 3, 5, 7}, c: []int{2, 3, 6, 7},
			want: Dims{M: 6, N: 7, K: 5, Batching: 6, ASkip: 30, BSkip: 35, CSkip: 42},
		},
		{
			name: "zero batch",
			a:    []int{0, 2, 2}, b: []int{0, 2, 2}, c: []int{0, 2, 2},
			want: Dims{M: 2, N: 2, K: 2, Batching: 0, ASkip: 4, BSkip: 4, CSkip: 4},
		},
		{name: "rank 1", a: []int{4}, b: []int{4}, c: []int{1}, wantErr: true},
		{name: "rank mismatch b", a: []int{1, 3, 4}, b: []int{4, 2}, c: []int{1, 3, 2}, wantErr: true},
		{name: "rank mismatch c", a: []int{3, 4}, b: []int{4, 2}, c: []int{1, 3, 2}, wantErr: true},
		{name: "inner mismatch", a: []int{3, 4}, b: []int{5, 2}, c: []int{3, 2}, wantErr: true},
		{name: "transposed inner mismatch", a: []int{3, 4}, b: []int{4, 2}, c: []int{3, 4}, transposed: true, wantErr: true},
		{name: "batch mismatch", a: []int{2, 3, 4}, b: []int{3, 4, 2}, c: []int{2, 3, 2}, wantErr: true},
		{name: "output mismatch", a: []int{3, 4}, b: []int{4, 2}, c: []int{2, 3}, wantErr: true},
		{name: "negative", a: []int{-3, 4}, b: []int{4, 2}, c: []int{-3, 2}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ShapesFor(tt.a, tt.b, tt.c, tt.transposed)
			if tt.wantErr {
				if !errors.Is(err, ErrDimMismatch) {
					t.Fatalf("ShapesFor error = %v, want ErrDimMismatch", err)
				}
				var se *ShapeError
				if !errors.As(err, &se) || se.Op == "" {
					t.Errorf("ShapesFor error %v is not a *ShapeError with an operand", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ShapesFor: %v", err)
			}
			if got != tt.want {
				t.Errorf("ShapesFor = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMatMulChecked(t *testing.T) {
	a := []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
	}

	t.Run("MatMul", func(t *testing.T) {
		b := []float32{1, 2, 3, 4, 5, 6, 7, 8}
		c := make([]float32, 6)
		if err := MatMulChecked(a, []int{1, 3, 4}, b, []int{1, 4, 2}, c, []int{1, 3, 2}, false); err != nil {
			t.Fatal(err)
		}
		assertClose(t, c, []float32{50, 60, 114, 140, 178, 220}, 4)
	})

	t.Run("MatMulKLast", func(t *testing.T) {
		b := []float32{1, 2, 3, 4, 5, 6, 7, 8}
		c := make([]float32, 6)
		if err := MatMulChecked(a, []int{3, 4}, b, []int{2, 4}, c, []int{3, 2}, true); err != nil {
			t.Fatal(err)
		}
		assertClose(t, c, []float32{30, 70, 70, 174, 110, 278}, 4)
	})

	t.Run("BadShape", func(t *testing.T) {
		c := []float32{-1, -1, -1, -1, -1, -1}
		err := MatMulChecked(a, []int{3, 4}, a, []int{3, 4}, c, []int{3, 4}, false)
		if !errors.Is(err, ErrDimMismatch) {
			t.Fatalf("error = %v, want ErrDimMismatch", err)
		}
		for i, v := range c {
			if v != -1 {
				t.Errorf("c[%d] written on error: %v", i, v)
			}
		}
	})

	t.Run("ShortBuffer", func(t *testing.T) {
		b := []float32{1, 2, 3, 4, 5, 6, 7, 8}
		c := make([]float32, 5)
		err := MatMulChecked(a, []int{3, 4}, b, []int{4, 2}, c, []int{3, 2}, false)
		var se *ShapeError
		if !errors.As(err, &se) || se.Op != "c" {
			t.Fatalf("error = %v, want *ShapeError on c", err)
		}
	})
}
