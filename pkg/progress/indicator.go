package progress

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// WorkerStatus is what a single worker is doing
type WorkerStatus struct {
	WorkerID   int
	Current    string
	Completed  int
	Failed     int
	LastUpdate time.Time
}

// Tracker reports job progress across pool workers to a writer (someone has to keep score)
type Tracker struct {
	mu          sync.Mutex
	out         io.Writer
	workers     map[int]*WorkerStatus
	total       int
	completed   int
	failed      int
	startTime   time.Time
	lastDisplay time.Time
	displayRate time.Duration
	label       string
}

// NewTracker creates a tracker for total jobs, labelled e.g. "images"
func NewTracker(out io.Writer, label string, total int) *Tracker {
	return &Tracker{
		out:         out,
		workers:     make(map[int]*WorkerStatus),
		total:       total,
		startTime:   time.Now(),
		displayRate: 500 * time.Millisecond,
		label:       label,
	}
}

func (t *Tracker) status(workerID int) *WorkerStatus {
	w, ok := t.workers[workerID]
	if !ok {
		w = &WorkerStatus{WorkerID: workerID}
		t.workers[workerID] = w
	}
	return w
}

// Start records that a worker picked up a job
func (t *Tracker) Start(workerID int, job string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w := t.status(workerID)
	w.Current = job
	w.LastUpdate = time.Now()
}

// Done records that a worker finished its current job
func (t *Tracker) Done(workerID int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w := t.status(workerID)
	w.Current = ""
	w.LastUpdate = time.Now()
	w.Completed++
	t.completed++
	if err != nil {
		w.Failed++
		t.failed++
	}

	if t.completed == t.total || time.Since(t.lastDisplay) >= t.displayRate {
		t.display()
		t.lastDisplay = time.Now()
	}
}

func (t *Tracker) display() {
	if t.out == nil {
		return
	}
	fmt.Fprintf(t.out, "\r%s", t.line())
}

func (t *Tracker) line() string {
	percentage := 0.0
	if t.total > 0 {
		percentage = float64(t.completed) / float64(t.total) * 100
	}

	var eta time.Duration
	if t.completed > 0 && t.completed < t.total {
		perJob := time.Since(t.startTime) / time.Duration(t.completed)
		eta = perJob * time.Duration(t.total-t.completed)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d/%d (%.1f%%)", t.label, t.completed, t.total, percentage)
	if t.failed > 0 {
		fmt.Fprintf(&b, " | failed: %d", t.failed)
	}
	if eta > 0 {
		fmt.Fprintf(&b, " | ETA: %v", eta.Round(time.Second))
	}
	return b.String()
}

// Finish prints the final line and per-worker totals, so every worker gets credit
func (t *Tracker) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.out == nil {
		return
	}

	fmt.Fprintf(t.out, "\r%s\n", t.line())
	elapsed := time.Since(t.startTime)
	fmt.Fprintf(t.out, "Completed %d %s in %v\n", t.completed, t.label, elapsed.Round(time.Millisecond))

	ids := make([]int, 0, len(t.workers))
	for id := range t.workers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		w := t.workers[id]
		fmt.Fprintf(t.out, "  Worker %d: %d %s", id, w.Completed, t.label)
		if w.Failed > 0 {
			fmt.Fprintf(t.out, " (%d failed)", w.Failed)
		}
		fmt.Fprintln(t.out)
	}
}

// Stats is a snapshot of tracker counters
type Stats struct {
	Total     int
	Completed int
	Failed    int
	Workers   int
	Elapsed   time.Duration
}

// Stats returns the current counters
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Stats{
		Total:     t.total,
		Completed: t.completed,
		Failed:    t.failed,
		Workers:   len(t.workers),
		Elapsed:   time.Since(t.startTime),
	}
}
