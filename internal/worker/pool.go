package worker

import (
	"context"
	"runtime"
	"sync"

	"github.com/alde/bitcam/pkg/progress"
)

// Job is a unit of work, typically one source image (one photo, minding its own business)
type Job interface {
	Process(ctx context.Context) error
	ID() string
}

// Result is the outcome of one job (good news or an error, rarely both)
type Result struct {
	JobID string
	Error error
}

// Pool runs jobs on a fixed number of goroutines. Each job owns its inputs
// and outputs, so jobs never share mutable state.
type Pool struct {
	workerCount int
	jobs        chan Job
	results     chan Result
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	progress    *progress.Tracker
}

// NewPool creates a pool bound to ctx. workerCount <= 0 uses one worker per CPU.
func NewPool(ctx context.Context, workerCount int) *Pool {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU() // take what the machine offers
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workerCount: workerCount,
		jobs:        make(chan Job, workerCount*2), // a little slack so Submit rarely waits
		results:     make(chan Result, workerCount*2),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// NewPoolWithProgress creates a pool that reports to tracker
func NewPoolWithProgress(ctx context.Context, workerCount int, tracker *progress.Tracker) *Pool {
	p := NewPool(ctx, workerCount)
	p.progress = tracker
	return p
}

// Start launches the workers
func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Stop waits for queued jobs to finish and closes Results.
// Submit must not be called afterwards.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()

	if p.progress != nil {
		p.progress.Finish()
	}

	close(p.results)
	p.cancel()
}

// Cancel aborts queued jobs; running jobs see a canceled context
func (p *Pool) Cancel() {
	p.cancel()
}

// Submit queues a job. If the pool has been canceled the job is reported as
// failed with the context error instead.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	case <-p.ctx.Done():
		p.results <- Result{
			JobID: job.ID(),
			Error: p.ctx.Err(),
		}
	}
}

// Results returns the results channel. It must be drained while jobs are
// being submitted.
func (p *Pool) Results() <-chan Result {
	return p.results
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for job := range p.jobs {
		if p.progress != nil {
			p.progress.Start(id, job.ID())
		}

		err := p.ctx.Err()
		if err == nil {
			err = job.Process(p.ctx)
		}

		if p.progress != nil {
			p.progress.Done(id, err)
		}

		p.results <- Result{
			JobID: job.ID(),
			Error: err,
		}
	}
}

// WorkerCount returns the number of workers
func (p *Pool) WorkerCount() int {
	return p.workerCount
}
