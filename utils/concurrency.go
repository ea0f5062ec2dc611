package utils

import "sync"

// WorkerPool runs jobs on at most maxWorkers goroutines and keeps the first
// error any job returns.
type WorkerPool struct {
	semaphore chan struct{}
	wg        sync.WaitGroup
	once      sync.Once
	err       error
}

// NewWorkerPool creates a WorkerPool with the given concurrency.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{semaphore: make(chan struct{}, maxWorkers)}
}

// Submit enqueues a job, blocking while the pool is full.
func (wp *WorkerPool) Submit(job func() error) {
	wp.wg.Add(1)
	wp.semaphore <- struct{}{}

	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.semaphore }()

		if err := job(); err != nil {
			wp.once.Do(func() { wp.err = err })
		}
	}()
}

// Wait blocks until all submitted jobs have completed and returns the first
// error, if any.
func (wp *WorkerPool) Wait() error {
	wp.wg.Wait()
	return wp.err
}
