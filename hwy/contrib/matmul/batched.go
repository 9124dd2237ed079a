// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"github.com/ajroetker/go-ggblas/hwy"
	"github.com/ajroetker/go-ggblas/hwy/contrib/vec"
	"github.com/ajroetker/go-ggblas/hwy/contrib/workerpool"
)

// minParallelOps is the multiply-add count below which a call runs on the
// calling goroutine instead of the pool.
var minParallelOps = 64 * 64 * 64

// BatchedMatMul computes batching independent products C_t = A_t * B_t on
// the default pool.
//
//   - A_t is m x k, row-major, starting at a[t*aSkip]
//   - B_t is k x n, row-major, starting at b[t*bSkip]
//   - C_t is m x n, row-major, starting at c[t*cSkip]
//
// C is overwritten; callers need not zero it first.
// The call blocks until every row of every batch item is written.
func BatchedMatMul(a []float32, aSkip int, b []float32, bSkip int, c []float32, cSkip int, m, n, k, batching int) {
	BatchedMatMulWithPool(DefaultPool(), a, aSkip, b, bSkip, c, cSkip, m, n, k, batching)
}

// BatchedMatMulKLast computes batching independent products C_t = A_t * B_t^T
// on the default pool.
//
//   - A_t is m x k, row-major, starting at a[t*aSkip]
//   - B_t is n x k, row-major (K last, PyTorch weight format), starting at b[t*bSkip]
//   - C_t is m x n, row-major, starting at c[t*cSkip]
//
// C is overwritten; callers need not zero it first.
func BatchedMatMulKLast(a []float32, aSkip int, b []float32, bSkip int, c []float32, cSkip int, m, n, k, batching int) {
	BatchedMatMulKLastWithPool(DefaultPool(), a, aSkip, b, bSkip, c, cSkip, m, n, k, batching)
}

// BatchedMatMulKLastF16 is BatchedMatMulKLast over half-precision operands.
// Products are accumulated and stored in float32.
func BatchedMatMulKLastF16(a []hwy.Float16, aSkip int, b []hwy.Float16, bSkip int, c []float32, cSkip int, m, n, k, batching int) {
	BatchedMatMulKLastF16WithPool(DefaultPool(), a, aSkip, b, bSkip, c, cSkip, m, n, k, batching)
}

// BatchedMatMulWithPool is BatchedMatMul on an explicit pool.
// A nil pool runs every row on the calling goroutine.
func BatchedMatMulWithPool(pool *workerpool.Pool, a []float32, aSkip int, b []float32, bSkip int, c []float32, cSkip int, m, n, k, batching int) {
	forEachTile(pool, m, n, k, batching, func(t, r, j0, j1 int) {
		cTile := c[t*cSkip+r*n+j0 : t*cSkip+r*n+j1]
		clear(cTile)
		aRow := a[t*aSkip+r*k : t*aSkip+(r+1)*k]
		bItem := b[t*bSkip+j0:]
		for i, av := range aRow {
			vec.MulAddScalar(bItem[i*n:], cTile, av, j1-j0)
		}
	})
}

// BatchedMatMulKLastWithPool is BatchedMatMulKLast on an explicit pool.
// A nil pool runs every row on the calling goroutine.
func BatchedMatMulKLastWithPool(pool *workerpool.Pool, a []float32, aSkip int, b []float32, bSkip int, c []float32, cSkip int, m, n, k, batching int) {
	forEachTile(pool, m, n, k, batching, func(t, r, j0, j1 int) {
		aRow := a[t*aSkip+r*k : t*aSkip+(r+1)*k]
		bItem := b[t*bSkip:]
		cRow := c[t*cSkip+r*n : t*cSkip+(r+1)*n]
		for j := j0; j < j1; j++ {
			cRow[j] = vec.Dot(aRow, bItem[j*k:], k)
		}
	})
}

// BatchedMatMulKLastF16WithPool is BatchedMatMulKLastF16 on an explicit pool.
func BatchedMatMulKLastF16WithPool(pool *workerpool.Pool, a []hwy.Float16, aSkip int, b []hwy.Float16, bSkip int, c []float32, cSkip int, m, n, k, batching int) {
	forEachTile(pool, m, n, k, batching, func(t, r, j0, j1 int) {
		aRow := a[t*aSkip+r*k : t*aSkip+(r+1)*k]
		bItem := b[t*bSkip:]
		cRow := c[t*cSkip+r*n : t*cSkip+(r+1)*n]
		for j := j0; j < j1; j++ {
			cRow[j] = vec.DotF16(aRow, bItem[j*k:], k)
		}
	})
}

// forEachTile flattens the batching*m output rows into one index space and
// calls tile(t, r, j0, j1) so that every element of every C_t row is covered
// by exactly one call; each call writes only C_t[r, j0:j1].
//
// With at least as many rows as workers, rows are split into contiguous
// ranges by ParallelFor and each call covers a whole row. With fewer rows,
// each row is cut into column tiles that workers claim with
// ParallelForAtomic, so a single-row product still uses every core.
func forEachTile(pool *workerpool.Pool, m, n, k, batching int, tile func(t, r, j0, j1 int)) {
	if m <= 0 || n <= 0 || batching <= 0 {
		return
	}

	rows := batching * m
	if pool == nil || rows*n*max(k, 1) < minParallelOps {
		for g := range rows {
			tile(g/m, g%m, 0, n)
		}
		return
	}

	workers := pool.NumWorkers()
	if rows >= workers {
		pool.ParallelFor(rows, func(start, end int) {
			for g := start; g < end; g++ {
				tile(g/m, g%m, 0, n)
			}
		})
		return
	}

	width := tileWidth(n, (workers+rows-1)/rows)
	tiles := (n + width - 1) / width
	pool.ParallelForAtomic(rows*tiles, func(i int) {
		g, j0 := i/tiles, (i%tiles)*width
		tile(g/m, g%m, j0, min(j0+width, n))
	})
}

// tileWidth splits n columns into at most perRow tiles. Widths are rounded up
// to hwy.F32Step, so a tile boundary never moves an element between the
// vector body and the scalar tail of the row kernels and tiled results stay
// bit-identical to whole-row ones.
func tileWidth(n, perRow int) int {
	w := (n + perRow - 1) / perRow
	return (w + hwy.F32Step - 1) &^ (hwy.F32Step - 1)
}
