// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"fmt"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ajroetker/go-ggblas/hwy/contrib/affinity"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
	if pool.Pinned() || pool.CoreIDs() != nil {
		t.Errorf("unpinned pool reports cores %v", pool.CoreIDs())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

// TestParallelForBalanced checks that every index is covered exactly once
// and chunk sizes differ by at most one.
func TestParallelForBalanced(t *testing.T) {
	for _, workers := range []int{1, 3, 4, 8} {
		for _, n := range []int{1, 2, 3, 6, 7, 100, 101, 1000} {
			t.Run(fmt.Sprintf("workers=%d/n=%d", workers, n), func(t *testing.T) {
				pool := New(workers)
				defer pool.Close()

				hits := make([]int32, n)
				var mu sync.Mutex
				var sizes []int
				pool.ParallelFor(n, func(start, end int) {
					for i := start; i < end; i++ {
						atomic.AddInt32(&hits[i], 1)
					}
					mu.Lock()
					sizes = append(sizes, end-start)
					mu.Unlock()
				})

				for i, h := range hits {
					if h != 1 {
						t.Errorf("index %d visited %d times", i, h)
					}
				}
				if want := min(workers, n); len(sizes) != want {
					t.Errorf("got %d chunks, want %d", len(sizes), want)
				}
				if slices.Max(sizes)-slices.Min(sizes) > 1 {
					t.Errorf("unbalanced chunk sizes %v", sizes)
				}
			})
		}
	}
}

func TestParallelForAtomic(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)

	pool.ParallelForAtomic(n, func(i int) {
		results[i] = i * 2
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var called bool
	pool.ParallelFor(0, func(start, end int) {
		called = true
	})

	if called {
		t.Error("ParallelFor with n=0 should not call fn")
	}
}

// TestConcurrentCallers submits from several goroutines at once; each call
// must see only its own work complete before returning.
func TestConcurrentCallers(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	const callers, n = 8, 257
	var wg sync.WaitGroup
	errs := make(chan string, callers)
	for c := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out := make([]int, n)
			for iter := range 50 {
				pool.ParallelFor(n, func(start, end int) {
					for i := start; i < end; i++ {
						out[i] = c*1000 + iter + i
					}
				})
				for i, v := range out {
					if v != c*1000+iter+i {
						errs <- fmt.Sprintf("caller %d iter %d: out[%d] = %d", c, iter, i, v)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}

func TestCloseMultipleTimes(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close() // Should not panic
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(4)
	pool.Close()

	n := 100
	results := make([]int, n)

	// Should still work (sequential fallback)
	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestNewPinned(t *testing.T) {
	ids, err := affinity.CoreIDs()
	if err != nil {
		t.Fatalf("CoreIDs: %v", err)
	}

	pool, err := NewPinned(ids)
	if err != nil {
		t.Fatalf("NewPinned(%v): %v", ids, err)
	}
	defer pool.Close()

	if pool.NumWorkers() != len(ids) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), len(ids))
	}
	if !pool.Pinned() || !slices.Equal(pool.CoreIDs(), ids) {
		t.Errorf("CoreIDs() = %v, want %v", pool.CoreIDs(), ids)
	}

	n := 1000
	var sum atomic.Int64
	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			sum.Add(int64(i))
		}
	})
	if want := int64(n * (n - 1) / 2); sum.Load() != want {
		t.Errorf("sum = %d, want %d", sum.Load(), want)
	}
}

func TestNewPinnedEmpty(t *testing.T) {
	if _, err := NewPinned(nil); err == nil {
		t.Error("NewPinned(nil) should fail")
	}
}

func BenchmarkParallelFor(b *testing.B) {
	pool := New(0) // Use GOMAXPROCS
	defer pool.Close()

	n := 1000

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.ParallelFor(n, func(start, end int) {
			for j := start; j < end; j++ {
				_ = j * j
			}
		})
	}
}

// BenchmarkPoolOverhead measures the fixed cost of one ParallelFor dispatch.
func BenchmarkPoolOverhead(b *testing.B) {
	b.Run("Pool", func(b *testing.B) {
		pool := New(0)
		defer pool.Close()
		for i := 0; i < b.N; i++ {
			pool.ParallelFor(10, func(start, end int) {})
		}
	})
	b.Run("Pinned", func(b *testing.B) {
		ids, err := affinity.CoreIDs()
		if err != nil {
			b.Skip(err)
		}
		pool, err := NewPinned(ids)
		if err != nil {
			b.Skip(err)
		}
		defer pool.Close()
		for i := 0; i < b.N; i++ {
			pool.ParallelFor(10, func(start, end int) {})
		}
	})
}
