package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/alde/bitcam/internal/worker"
	"github.com/alde/bitcam/pkg/capture"
	"github.com/alde/bitcam/pkg/gradation"
	"github.com/alde/bitcam/pkg/pipeline"
	"github.com/alde/bitcam/pkg/progress"
	"github.com/alde/bitcam/pkg/raster"
)

// Options controls a sweep
type Options struct {
	Mode        gradation.Mode
	Scale       float64
	Levels      LevelSet
	WorkerCount int
	Progress    io.Writer // nil disables progress output
}

// Row is one pipeline run within a sweep
type Row struct {
	Levels       int
	Width        int
	Height       int
	BitsPerPixel int
	Bytes        float64
	Colors       int // distinct RGB values in the output
}

// Report holds the sweep rows for one source image
type Report struct {
	Path         string
	FileSize     uint64
	SourceWidth  int
	SourceHeight int
	Scale        float64 // scale after clamping to the image's minimum
	Rows         []Row
	Error        error
}

// sweepJob evaluates every level count for a single image
type sweepJob struct {
	path   string
	opts   Options
	report *Report
}

func (j *sweepJob) ID() string {
	return filepath.Base(j.path)
}

func (j *sweepJob) Process(ctx context.Context) error {
	info, err := os.Stat(j.path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", j.path, err)
	}
	j.report.FileSize = uint64(info.Size())

	src, err := capture.Grab(ctx, capture.OpenFile(j.path))
	if err != nil {
		return err
	}
	j.report.SourceWidth = src.Width
	j.report.SourceHeight = src.Height

	levels := j.opts.Levels.Values()
	if j.opts.Mode == gradation.None {
		levels = []int{gradation.DefaultLevels}
	}

	for _, n := range levels {
		if err := ctx.Err(); err != nil {
			return err
		}

		p := pipeline.Params{Scale: j.opts.Scale, Mode: j.opts.Mode, Levels: n}.Normalize(src.Width, src.Height)
		j.report.Scale = p.Scale

		res, err := pipeline.Run(src, p)
		if err != nil {
			return fmt.Errorf("%d levels: %w", n, err)
		}
		j.report.Rows = append(j.report.Rows, Row{
			Levels:       n,
			Width:        res.Width,
			Height:       res.Height,
			BitsPerPixel: res.BitsPerPixel,
			Bytes:        res.Bytes,
			Colors:       CountColors(res.Raster),
		})
	}
	return nil
}

// Sweep runs the pipeline over every image for every level count in
// opts.Levels. Images are processed concurrently; each report carries its own
// error. Reports are returned in the order of paths.
func Sweep(ctx context.Context, paths []string, opts Options) []Report {
	if opts.Levels.Len() == 0 {
		opts.Levels = DefaultLevels
	}

	reports := make([]Report, len(paths))
	jobs := make(map[string]*sweepJob, len(paths))
	for i, path := range paths {
		reports[i].Path = path
		job := &sweepJob{path: path, opts: opts, report: &reports[i]}
		// job IDs must be unique for result matching
		id := fmt.Sprintf("%03d %s", i, job.ID())
		jobs[id] = job
	}

	var pool *worker.Pool
	if opts.Progress != nil {
		pool = worker.NewPoolWithProgress(ctx, opts.WorkerCount, progress.NewTracker(opts.Progress, "images", len(paths)))
	} else {
		pool = worker.NewPool(ctx, opts.WorkerCount)
	}
	pool.Start()

	ids := make([]string, 0, len(jobs))
	for id := range jobs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	go func() {
		for _, id := range ids {
			pool.Submit(namedJob{id: id, Job: jobs[id]})
		}
		pool.Stop()
	}()

	for res := range pool.Results() {
		if job, ok := jobs[res.JobID]; ok && res.Error != nil {
			job.report.Error = res.Error
		}
	}
	return reports
}

// namedJob overrides the ID of a job
type namedJob struct {
	id string
	worker.Job
}

func (n namedJob) ID() string { return n.id }

// CountColors returns the number of distinct RGB triples in r, ignoring alpha
func CountColors(r *raster.Raster) int {
	seen := make(map[uint32]struct{})
	for i := 0; i+3 < len(r.Pix); i += 4 {
		key := uint32(r.Pix[i])<<16 | uint32(r.Pix[i+1])<<8 | uint32(r.Pix[i+2])
		seen[key] = struct{}{}
	}
	return len(seen)
}
