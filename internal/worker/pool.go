// Package worker provides the bounded concurrency used for page fetching.
package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// Pool manages a fixed set of workers that execute jobs concurrently.
// The job and result channels are small fixed buffers, so callers
// submitting more jobs than the buffers hold must drain with Wait while
// submission is still in progress: submit from a goroutine, Close when
// done, and collect on the calling goroutine.
type Pool struct {
	workers     int
	jobQueue    chan Job
	results     chan Result
	wg          sync.WaitGroup
	ctx         context.Context
	cancelFunc  context.CancelFunc
	queueOnce   sync.Once
	resultsOnce sync.Once
}

// NewPool creates a worker pool with the specified number of workers.
// Jobs run under a context derived from ctx; cancelling it stops the
// pool's in-flight work.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	poolCtx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, workers*2),
		results:    make(chan Result, workers*2),
		ctx:        poolCtx,
		cancelFunc: cancel,
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job for execution. Must not be called after Close.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobQueue <- job:
	}
}

// Close marks submission complete so workers drain the queue and exit
func (p *Pool) Close() {
	p.queueOnce.Do(func() {
		close(p.jobQueue)
	})
}

// Wait collects results until every submitted job has completed. It drains
// from the moment it is called, so it never blocks submission; Close the
// pool once submission ends or Wait will not return. Result order follows
// completion, not submission.
func (p *Pool) Wait() []Result {
	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	var results []Result
	for result := range p.results {
		results = append(results, result)
	}

	return results
}

// Shutdown stops the pool immediately
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.resultsOnce.Do(func() {
		close(p.results)
	})
}
