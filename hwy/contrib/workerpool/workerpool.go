// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for parallel
// computation. Unlike per-call goroutine spawning, a Pool is created once and
// reused across many operations, eliminating allocation and spawn overhead.
//
// Batched GEMM calls in a transformer forward pass are often small (a few rows
// against a few thousand columns), so per-call goroutine spawning would
// dominate compute time.
//
// A pool built with NewPinned dedicates one OS thread per worker and binds
// each thread to a logical CPU, one per physical core.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	// Reuse pool across many operations
//	for _, layer := range layers {
//	    pool.ParallelFor(m, func(start, end int) {
//	        processRows(start, end)
//	    })
//	}
//
// Several goroutines may call ParallelFor on the same pool concurrently.
// The function passed in must not itself submit work to the same pool.
package workerpool

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/ajroetker/go-ggblas/hwy/contrib/affinity"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	coreIDs    []int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem represents a single parallel operation to execute.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := newPool(numWorkers)
	for range numWorkers {
		go p.worker()
	}
	return p
}

// NewPinned creates a pool with one worker per entry of coreIDs. Each worker
// locks its goroutine to an OS thread and pins that thread to its logical CPU
// before taking work. NewPinned returns once every worker is pinned; if any
// pin fails the pool is closed and the errors are returned.
func NewPinned(coreIDs []int) (*Pool, error) {
	if len(coreIDs) == 0 {
		return nil, errors.New("workerpool: no cores to pin")
	}

	p := newPool(len(coreIDs))
	p.coreIDs = append([]int(nil), coreIDs...)

	errC := make(chan error, len(coreIDs))
	for _, cpu := range p.coreIDs {
		go p.pinnedWorker(cpu, errC)
	}

	var errs []error
	for range coreIDs {
		if err := <-errC; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		p.Close()
		return nil, fmt.Errorf("workerpool: pinning %d workers: %w", len(coreIDs), errors.Join(errs...))
	}
	return p, nil
}

func newPool(numWorkers int) *Pool {
	return &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}
}

// worker is the main loop for each persistent worker goroutine.
func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// pinnedWorker never unlocks its OS thread: when the pool closes the
// goroutine exits and the runtime discards the pinned thread.
func (p *Pool) pinnedWorker(cpu int, errC chan<- error) {
	runtime.LockOSThread()
	if err := affinity.Pin(cpu); err != nil {
		errC <- err
		return
	}
	errC <- nil
	p.worker()
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// CoreIDs returns the logical CPUs the workers are pinned to, or nil for an
// unpinned pool.
func (p *Pool) CoreIDs() []int {
	return append([]int(nil), p.coreIDs...)
}

// Pinned reports whether the workers run on pinned OS threads.
func (p *Pool) Pinned() bool {
	return len(p.coreIDs) > 0
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor executes fn for each index in [0, n) using the worker pool.
// The range is split into min(NumWorkers, n) contiguous chunks whose sizes
// differ by at most one: chunk i covers [i*n/w, (i+1)*n/w).
// Blocks until all work completes.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if p.closed.Load() {
		// Fallback to sequential if pool is closed
		fn(0, n)
		return
	}

	// Don't use more workers than items
	workers := min(p.numWorkers, n)

	if workers == 1 {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := range workers {
		start := i * n / workers
		end := (i + 1) * n / workers
		p.workC <- workItem{
			fn: func() {
				fn(start, end)
			},
			barrier: &wg,
		}
	}

	wg.Wait()
}

// ParallelForAtomic executes fn for each index in [0, n) using atomic work
// stealing: each worker claims the next unclaimed index until none remain.
// The matmul engine uses it for column tiles, where a few long rows would
// leave workers idle under ParallelFor. Blocks until all work completes.
//
// fn receives the index to process.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	if n <= 0 {
		return
	}

	if p.closed.Load() {
		for i := range n {
			fn(i)
		}
		return
	}

	workers := min(p.numWorkers, n)

	if workers == 1 {
		for i := range n {
			fn(i)
		}
		return
	}

	var nextIdx atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		p.workC <- workItem{
			fn: func() {
				for {
					idx := int(nextIdx.Add(1)) - 1
					if idx >= n {
						return
					}
					fn(idx)
				}
			},
			barrier: &wg,
		}
	}

	wg.Wait()
}
