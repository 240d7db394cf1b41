package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/alde/bitcam/pkg/progress"
)

type countingJob struct {
	id    string
	fail  bool
	count *atomic.Int64
}

func (j *countingJob) ID() string { return j.id }

func (j *countingJob) Process(ctx context.Context) error {
	j.count.Add(1)
	if j.fail {
		return errors.New("boom")
	}
	return nil
}

func TestPoolProcessesAllJobs(t *testing.T) {
	var count atomic.Int64
	tracker := progress.NewTracker(nil, "jobs", 10)
	pool := NewPoolWithProgress(context.Background(), 3, tracker)
	pool.Start()

	go func() {
		for i := 0; i < 10; i++ {
			pool.Submit(&countingJob{id: fmt.Sprintf("job-%d", i), fail: i%4 == 0, count: &count})
		}
		pool.Stop()
	}()

	var failed, total int
	for res := range pool.Results() {
		total++
		if res.Error != nil {
			failed++
		}
	}

	if total != 10 || count.Load() != 10 {
		t.Errorf("Expected 10 results and 10 runs, got %d and %d", total, count.Load())
	}
	if failed != 3 {
		t.Errorf("Expected 3 failures, got %d", failed)
	}
	if tracker.Stats().Completed != 10 {
		t.Errorf("Tracker saw %d completions", tracker.Stats().Completed)
	}
}

func TestPoolCancel(t *testing.T) {
	var count atomic.Int64
	pool := NewPool(context.Background(), 2)
	pool.Cancel()
	pool.Start()

	go func() {
		for i := 0; i < 5; i++ {
			pool.Submit(&countingJob{id: fmt.Sprintf("job-%d", i), count: &count})
		}
		pool.Stop()
	}()

	for res := range pool.Results() {
		if !errors.Is(res.Error, context.Canceled) {
			t.Errorf("%s: expected context.Canceled, got %v", res.JobID, res.Error)
		}
	}
	if count.Load() != 0 {
		t.Errorf("Canceled pool processed %d jobs", count.Load())
	}
}

func TestDefaultWorkerCount(t *testing.T) {
	if NewPool(context.Background(), 0).WorkerCount() < 1 {
		t.Error("Expected at least one worker")
	}
}
