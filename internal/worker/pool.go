// Package worker provides a worker pool for parallel position trials.
package worker

import (
	"sync"
	"sync/atomic"
)

// Task is a unit of work run by an Executor.
type Task func()

// Executor runs submitted tasks, possibly concurrently.
// Submit may block; it must not be called after the executor is closed.
type Executor interface {
	Submit(task Task)
}

// Inline is an Executor that runs every task on the caller's goroutine.
type Inline struct{}

// Submit runs task immediately.
func (Inline) Submit(task Task) {
	task()
}

// Pool manages a fixed set of goroutines draining a task channel.
type Pool struct {
	numWorkers int
	bufferSize int
	workChan   chan Task
	wg         sync.WaitGroup
	stopFlag   int32 // Atomic flag for early termination
	processed  int64
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a new worker pool with the specified number of workers and buffer size.
func NewPool(numWorkers, bufferSize int) *Pool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &Pool{
		numWorkers: numWorkers,
		bufferSize: bufferSize,
		workChan:   make(chan Task, bufferSize),
	}
}

// NewPoolWithOptions creates a new worker pool using functional options.
// Default: 1 worker, buffer size of 64.
func NewPoolWithOptions(opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers: 1,
		bufferSize: 64,
	}
	for _, opt := range opts {
		opt(p)
	}
	// Create channels after options are applied
	p.workChan = make(chan Task, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker runs tasks from the work channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for task := range p.workChan {
		task()
		atomic.AddInt64(&p.processed, 1)
	}
}

// Submit submits a task for processing.
// This may block if the work channel buffer is full. Once the pool is
// stopped the task runs on the caller's goroutine instead.
func (p *Pool) Submit(task Task) {
	if p.IsStopped() {
		task()
		atomic.AddInt64(&p.processed, 1)
		return
	}
	p.workChan <- task
}

// TrySubmit attempts to submit a task without blocking.
// Returns false if the work channel is full or the pool is stopped.
func (p *Pool) TrySubmit(task Task) bool {
	if atomic.LoadInt32(&p.stopFlag) != 0 {
		return false
	}
	select {
	case p.workChan <- task:
		return true
	default:
		return false
	}
}

// Stop signals the pool to stop accepting queued work.
// Tasks already in the channel still run.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
}

// Processed returns the number of tasks run so far.
func (p *Pool) Processed() int64 {
	return atomic.LoadInt64(&p.processed)
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}
