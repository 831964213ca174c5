// SPDX-License-Identifier: MIT

// Package workerpool provides a persistent pool of goroutines for splitting
// a loop over disjoint index ranges. A Pool is created once and reused
// across many multiplications, so no goroutines are spawned per call.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.ParallelFor(rowBlocks, func(start, end int) {
//	    multiplyRowBlocks(start, end)
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool. Workers are spawned by New and exit
// when Close is called.
//
// Close may overlap with running loops: a loop that is already queuing
// finishes queuing before the channel closes, and later loops run inline.
type Pool struct {
	numWorkers int
	work       chan task

	mu     sync.RWMutex // held for reading while tasks are queued
	closed bool
}

// task is one chunk of a parallel loop plus the barrier it reports to.
type task struct {
	fn   func()
	done *sync.WaitGroup
}

// New starts a pool with numWorkers goroutines.
// numWorkers <= 0 selects GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		work:       make(chan task, numWorkers*2),
	}
	for range numWorkers {
		go p.loop()
	}

	return p
}

func (p *Pool) loop() {
	for t := range p.work {
		t.fn()
		t.done.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	if p == nil {
		return 1
	}

	return p.numWorkers
}

// Close stops the workers after queued work completes. Safe to call twice.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.work)
	}
}

// submit queues tasks under the read lock so Close cannot close the channel
// mid-loop. It reports false, queuing nothing, once the pool is closed.
func (p *Pool) submit(queue func()) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	queue()

	return true
}

// ParallelFor splits [0, n) into at most NumWorkers contiguous ranges and
// runs fn(start, end) for each, blocking until all ranges are done.
// A nil or closed pool runs fn(0, n) on the calling goroutine.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if p == nil || min(p.numWorkers, n) == 1 {
		fn(0, n)
		return
	}

	workers := min(p.numWorkers, n)
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	queued := p.submit(func() {
		for start := 0; start < n; start += chunk {
			end := min(start+chunk, n)
			wg.Add(1)
			s := start
			p.work <- task{fn: func() { fn(s, end) }, done: &wg}
		}
	})
	if !queued {
		fn(0, n)
		return
	}
	wg.Wait()
}

// ParallelForAtomic runs fn(i) for every i in [0, n), handing indices out
// one at a time through an atomic counter so uneven items balance out.
// Blocks until all indices are processed.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	serial := func() {
		for i := range n {
			fn(i)
		}
	}
	if p == nil || min(p.numWorkers, n) == 1 {
		serial()
		return
	}

	workers := min(p.numWorkers, n)
	var next atomic.Int64
	var wg sync.WaitGroup
	queued := p.submit(func() {
		wg.Add(workers)
		for range workers {
			p.work <- task{
				fn: func() {
					for {
						i := int(next.Add(1)) - 1
						if i >= n {
							return
						}
						fn(i)
					}
				},
				done: &wg,
			}
		}
	})
	if !queued {
		serial()
		return
	}
	wg.Wait()
}
