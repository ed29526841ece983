// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent fork-join worker pool for the
// parallel summation strategies. A Pool is created once with a fixed number
// of workers and reused across many reductions; every parallel region ends
// with a barrier, so partial results are complete before they are combined.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	partials := workerpool.Reduce(pool, len(values), func(start, end int) float64 {
//	    return kernel.Naive(values[start:end])
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
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

	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

// worker is the main loop for each persistent worker goroutine.
func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ChunkSize returns the length of the contiguous index ranges ParallelFor
// hands to each worker for n items. The last range may be shorter.
func (p *Pool) ChunkSize(n int) int {
	if n <= 0 {
		return 0
	}
	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		return n
	}
	return (n + workers - 1) / workers
}

// ParallelFor executes fn for each index in [0, n) using the worker pool.
// Each worker processes a contiguous range of ChunkSize(n) indices.
// Blocks until all work completes.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	chunkSize := p.ChunkSize(n)
	if chunkSize == n {
		// One worker, or the pool is closed: run sequentially.
		fn(0, n)
		return
	}

	workers := (n + chunkSize - 1) / chunkSize

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := range workers {
		start := i * chunkSize
		end := min(start+chunkSize, n)

		p.workC <- workItem{
			fn: func() {
				fn(start, end)
			},
			barrier: &wg,
		}
	}

	wg.Wait()
}

// ParallelForAtomicBatched executes fn for batches of indices using atomic
// work stealing. Batches are claimed in index order, but the worker that
// claims a batch and the time it finishes depend on scheduling.
//
// fn receives (start, end) indices where work should process [start, end).
// batchSize controls how many items are grabbed per atomic operation.
func (p *Pool) ParallelForAtomicBatched(n int, batchSize int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if batchSize <= 0 {
		batchSize = 1
	}

	if p.closed.Load() {
		fn(0, n)
		return
	}

	numBatches := (n + batchSize - 1) / batchSize
	workers := min(p.numWorkers, numBatches)

	if workers == 1 {
		fn(0, n)
		return
	}

	var nextBatch atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		p.workC <- workItem{
			fn: func() {
				for {
					batch := int(nextBatch.Add(1)) - 1
					start := batch * batchSize
					if start >= n {
						return
					}
					end := min(start+batchSize, n)
					fn(start, end)
				}
			},
			barrier: &wg,
		}
	}

	wg.Wait()
}

// Reduce runs fn over the contiguous chunks of [0, n) that ParallelFor
// assigns to the workers and returns the partial results in chunk order,
// after every worker has finished. The returned order only depends on n and
// the worker count.
func Reduce[T any](p *Pool, n int, fn func(start, end int) T) []T {
	if n <= 0 {
		return nil
	}
	chunkSize := p.ChunkSize(n)
	partials := make([]T, (n+chunkSize-1)/chunkSize)
	p.ParallelFor(n, func(start, end int) {
		partials[start/chunkSize] = fn(start, end)
	})
	return partials
}

// ReduceDynamic runs fn over batches of batchSize indices claimed by the
// workers on demand, and returns the partial results in the order the
// batches completed.
func ReduceDynamic[T any](p *Pool, n, batchSize int, fn func(start, end int) T) []T {
	if n <= 0 {
		return nil
	}
	var (
		mu       sync.Mutex
		partials []T
	)
	p.ParallelForAtomicBatched(n, batchSize, func(start, end int) {
		v := fn(start, end)
		mu.Lock()
		partials = append(partials, v)
		mu.Unlock()
	})
	return partials
}
