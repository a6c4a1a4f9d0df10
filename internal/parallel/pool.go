package parallel

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// Pool errors.
var (
	// ErrPoolClosed is returned when work is submitted to a closed pool.
	ErrPoolClosed = errors.New("parallel: pool closed")

	// ErrTaskPanic wraps a panic recovered from a task.
	ErrTaskPanic = errors.New("parallel: task panicked")
)

// Task is one unit of work. A task reports failure by returning an error
// or by panicking; both fail the ExecuteAll call that ran it.
type Task func() error

// WorkerPool is a fixed pool of goroutines.
//
// Each worker owns one queue. ExecuteAll pins task i to worker i % Workers(),
// so a batch of exactly Workers() tasks runs one task per worker with no
// rebalancing.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// workQueues holds per-worker work queues.
	workQueues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) (*WorkerPool, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
	}

	// Per-worker queue depth.
	queueSize := 4

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}

	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p, nil
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			// Drain remaining work before exiting
			p.drainQueue(myQueue)
			return

		case work := <-myQueue:
			if work != nil {
				work()
			}
		}
	}
}

// drainQueue executes all remaining work in a queue.
func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			if work != nil {
				work()
			}
		default:
			return
		}
	}
}

// ExecuteAll runs every task and waits for all of them to finish.
//
// It returns nil only if every task returned nil. Otherwise the result joins
// the errors of all failed tasks, with recovered panics wrapped in
// ErrTaskPanic. Tasks are never cancelled: a failure in one task does not stop
// the others, the caller simply discards their output.
func (p *WorkerPool) ExecuteAll(work []Task) error {
	if len(work) == 0 {
		return nil
	}
	if !p.running.Load() {
		return ErrPoolClosed
	}

	errs := make([]error, len(work))

	var completionWG sync.WaitGroup
	completionWG.Add(len(work))

	for i, task := range work {
		wrappedWork := func() {
			defer completionWG.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("%w: task %d: %v", ErrTaskPanic, i, r)
				}
			}()
			errs[i] = task()
		}

		// Submit to the pinned worker's queue (may block if queue is full)
		select {
		case p.workQueues[i%p.workers] <- wrappedWork:
		case <-p.done:
			errs[i] = ErrPoolClosed
			completionWG.Done()
		}
	}

	completionWG.Wait()

	return errors.Join(errs...)
}

// Close gracefully shuts down the pool.
// It stops accepting new work, waits for all queued work to complete,
// and then stops all workers.
// Close is safe to call multiple times, but must not race with ExecuteAll.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}

	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}
