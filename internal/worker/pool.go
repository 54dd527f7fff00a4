package worker

import (
	"context"
	"sync"
)

// Job is a unit of work producing an R
type Job[R any] interface {
	Execute(ctx context.Context) R
}

// Pool runs jobs on a fixed number of goroutines and streams their results
type Pool[R any] struct {
	workers int
	queue   chan Job[R]
	results chan R
	wg      sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// NewPool creates a pool bound to parent; cancelling parent stops the workers.
// Fewer than one worker is raised to one.
func NewPool[R any](parent context.Context, workers int) *Pool[R] {
	workers = max(workers, 1)
	ctx, cancel := context.WithCancel(parent)

	return &Pool[R]{
		workers: workers,
		queue:   make(chan Job[R], workers*2),
		results: make(chan R, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers
func (p *Pool[R]) Start() {
	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.run()
	}
}

func (p *Pool[R]) run() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.queue:
			if !ok {
				return
			}
			r := job.Execute(p.ctx)
			select {
			case p.results <- r:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. It reports false once the pool's context is done.
func (p *Pool[R]) Submit(job Job[R]) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case <-p.ctx.Done():
		return false
	case p.queue <- job:
		return true
	}
}

// Results is closed once every worker has exited
func (p *Pool[R]) Results() <-chan R {
	return p.results
}

// Close stops accepting jobs. Results closes after the queue drains.
// Close must be called at most once, and never concurrently with Submit.
func (p *Pool[R]) Close() {
	close(p.queue)
	go func() {
		p.wg.Wait()
		p.closeResults()
		p.cancel()
	}()
}

// Wait closes the pool and collects every remaining result
func (p *Pool[R]) Wait() []R {
	p.Close()

	var out []R
	for r := range p.results {
		out = append(out, r)
	}
	return out
}

// Shutdown cancels the pool, abandoning queued jobs
func (p *Pool[R]) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool[R]) closeResults() {
	p.once.Do(func() { close(p.results) })
}
