// Package batch converts many model dumps concurrently.
//
// Each file is converted by one worker with its own domain registry and
// container, so a failing file never affects the others. Cancelling the
// context stops scheduling: files already being converted finish, files not
// yet started are reported as canceled.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hsnony97-cyber/Load-Ext/internal/container"
	"github.com/hsnony97-cyber/Load-Ext/internal/convert"
	"github.com/hsnony97-cyber/Load-Ext/internal/logger"
	"github.com/hsnony97-cyber/Load-Ext/internal/modelstore"
)

var (
	ErrFilesFailed = errors.New("batch: one or more files failed")
	ErrNoInputs    = errors.New("batch: no input files")

	ErrDuplicateInput = errors.New("batch: input given more than once")
)

// Status is the outcome of one file.
type Status string

const (
	StatusOK       Status = "ok"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
)

// Batch statuses as recorded by a Recorder.
const (
	BatchRunning  = "running"
	BatchDone     = "done"
	BatchFailed   = "failed"
	BatchCanceled = "canceled"
)

// DefaultFormat is the container format used when Options.Format is empty.
const DefaultFormat = "h5"

// Options configures a batch run.
type Options struct {
	// ID names the batch. A random uuid is used when empty.
	ID        string
	Inputs    []string
	OutputDir string
	// Format is a container format name (see container.Formats).
	Format  string
	Workers int
	// DryRun builds every table in memory and writes nothing.
	DryRun bool
	// Recorder persists the batch and its file outcomes. May be nil.
	Recorder Recorder
}

// Recorder receives the lifecycle of a batch.
type Recorder interface {
	StartBatch(ctx context.Context, id string, opts Options) error
	RecordFile(ctx context.Context, id string, r FileResult) error
	FinishBatch(ctx context.Context, id string, status string) error
}

// Hooks observe a running batch. Every hook is optional and may be called
// from several workers at once.
type Hooks struct {
	OnStart  func(input string)
	OnFile   func(r FileResult)
	Progress func(input, line string)
}

// FileResult is the outcome of one input file.
type FileResult struct {
	Input    string
	Output   string
	Status   Status
	Err      error
	Tables   int
	Records  int
	Domains  int
	Skipped  map[string]int
	Duration time.Duration
}

// Report is the outcome of a whole batch, files in input order.
type Report struct {
	ID    string
	Files []FileResult
}

// Failed returns the files that did not convert.
func (r Report) Failed() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if f.Status != StatusOK {
			out = append(out, f)
		}
	}
	return out
}

// Status returns the batch status derived from its files.
func (r Report) Status() string {
	status := BatchDone
	for _, f := range r.Files {
		switch f.Status {
		case StatusCanceled:
			return BatchCanceled
		case StatusFailed:
			status = BatchFailed
		}
	}
	return status
}

// Collect expands directories in paths into the dump files they contain,
// recursively and in lexical order. Plain files are kept as given.
func Collect(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		st, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			out = append(out, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && modelstore.IsDump(path) {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// OutputPath returns the container path for input in dir with the
// extension of format.
func OutputPath(input, dir, format string) (string, error) {
	ext, err := container.Extension(format)
	if err != nil {
		return "", err
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base+ext), nil
}

// OutputPaths returns one container path per input. Inputs whose flat
// OutputPath would collide are placed under dir mirroring their directory
// relative to the common parent of all inputs; if that still collides (same
// stem, different extension) the source extension is kept in the name.
func OutputPaths(inputs []string, dir, format string) ([]string, error) {
	ext, err := container.Extension(format)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]string, len(inputs))
	for _, in := range inputs {
		key := filepath.Clean(in)
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateInput, prev)
		}
		seen[key] = in
	}

	outs := make([]string, len(inputs))
	for i, in := range inputs {
		if outs[i], err = OutputPath(in, dir, format); err != nil {
			return nil, err
		}
	}
	clash := collisions(outs)
	if len(clash) == 0 {
		return outs, nil
	}

	root := commonDir(inputs)
	for i := range clash {
		in := inputs[i]
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		target := filepath.Dir(in)
		if dir != "" {
			rel, err := filepath.Rel(root, absDir(in))
			if err != nil {
				return nil, err
			}
			target = filepath.Join(dir, rel)
		}
		outs[i] = filepath.Join(target, base+ext)
	}
	for i := range collisions(outs) {
		in := inputs[i]
		outs[i] = filepath.Join(filepath.Dir(outs[i]), filepath.Base(in)+ext)
	}
	return outs, nil
}

// collisions returns the indexes of outs that share a path with another entry.
func collisions(outs []string) map[int]struct{} {
	byPath := make(map[string][]int, len(outs))
	for i, o := range outs {
		byPath[filepath.Clean(o)] = append(byPath[filepath.Clean(o)], i)
	}
	clash := map[int]struct{}{}
	for _, idx := range byPath {
		if len(idx) < 2 {
			continue
		}
		for _, i := range idx {
			clash[i] = struct{}{}
		}
	}
	return clash
}

func absDir(path string) string {
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return filepath.Clean(filepath.Dir(path))
	}
	return abs
}

func commonDir(paths []string) string {
	var parts []string
	for i, p := range paths {
		segs := strings.Split(absDir(p), string(filepath.Separator))
		if i == 0 {
			parts = segs
			continue
		}
		n := 0
		for n < len(parts) && n < len(segs) && parts[n] == segs[n] {
			n++
		}
		parts = parts[:n]
	}
	root := strings.Join(parts, string(filepath.Separator))
	if root == "" {
		return string(filepath.Separator)
	}
	return root
}

// Run converts every input of opts. It returns the report and, when any file
// did not convert, an error wrapping ErrFilesFailed (or the context error
// when the batch was canceled).
func Run(ctx context.Context, opts Options, hooks Hooks) (Report, error) {
	if len(opts.Inputs) == 0 {
		return Report{}, ErrNoInputs
	}
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	if opts.Format == "" {
		opts.Format = DefaultFormat
	}
	if _, err := container.Lookup(opts.Format); err != nil {
		return Report{ID: opts.ID}, err
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(opts.Inputs))

	var outputs []string
	if !opts.DryRun {
		var err error
		if outputs, err = OutputPaths(opts.Inputs, opts.OutputDir, opts.Format); err != nil {
			return Report{ID: opts.ID}, err
		}
	}

	log := logger.FromContext(ctx).With("batch", opts.ID)
	if opts.OutputDir != "" && !opts.DryRun {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return Report{ID: opts.ID}, fmt.Errorf("create output dir: %w", err)
		}
	}
	if opts.Recorder != nil {
		if err := opts.Recorder.StartBatch(ctx, opts.ID, opts); err != nil {
			return Report{ID: opts.ID}, fmt.Errorf("record batch: %w", err)
		}
	}

	log.Info("batch started", "files", len(opts.Inputs), "workers", workers, "format", opts.Format)
	start := time.Now()

	report := Report{ID: opts.ID, Files: make([]FileResult, len(opts.Inputs))}
	jobs := make(chan int)
	var (
		wg    sync.WaitGroup
		recMu sync.Mutex
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out := ""
				if outputs != nil {
					out = outputs[i]
				}
				res := convertOne(log, opts, opts.Inputs[i], out, hooks)
				report.Files[i] = res
				if opts.Recorder != nil {
					recMu.Lock()
					if err := opts.Recorder.RecordFile(context.WithoutCancel(ctx), opts.ID, res); err != nil {
						log.Warn("record file failed", "file", res.Input, "error", err)
					}
					recMu.Unlock()
				}
				if hooks.OnFile != nil {
					hooks.OnFile(res)
				}
			}
		}()
	}

	next := 0
schedule:
	for ; next < len(opts.Inputs); next++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break schedule
		case jobs <- next:
		}
	}
	close(jobs)
	wg.Wait()

	for i := next; i < len(opts.Inputs); i++ {
		res := FileResult{Input: opts.Inputs[i], Status: StatusCanceled, Err: ctx.Err()}
		report.Files[i] = res
		if opts.Recorder != nil {
			if err := opts.Recorder.RecordFile(context.WithoutCancel(ctx), opts.ID, res); err != nil {
				log.Warn("record file failed", "file", res.Input, "error", err)
			}
		}
		if hooks.OnFile != nil {
			hooks.OnFile(res)
		}
	}

	status := report.Status()
	if opts.Recorder != nil {
		if err := opts.Recorder.FinishBatch(context.WithoutCancel(ctx), opts.ID, status); err != nil {
			log.Warn("record batch status failed", "error", err)
		}
	}
	failed := report.Failed()
	log.Info("batch finished", "status", status, "files", len(report.Files), "failed", len(failed), "duration", time.Since(start))

	if err := ctx.Err(); err != nil && status == BatchCanceled {
		return report, fmt.Errorf("batch %s: %w", opts.ID, err)
	}
	if len(failed) > 0 {
		return report, failureSummary(opts.ID, failed)
	}
	return report, nil
}

func failureSummary(id string, failed []FileResult) error {
	names := make([]string, 0, len(failed))
	for _, f := range failed {
		names = append(names, filepath.Base(f.Input))
	}
	slices.Sort(names)
	const shown = 5
	list := strings.Join(names[:min(len(names), shown)], ", ")
	if len(names) > shown {
		list += fmt.Sprintf(" and %d more", len(names)-shown)
	}
	return fmt.Errorf("%w: %d file(s): %s", ErrFilesFailed, len(failed), list)
}

func convertOne(log logger.Logger, opts Options, input, out string, hooks Hooks) FileResult {
	res := FileResult{Input: input}
	if hooks.OnStart != nil {
		hooks.OnStart(input)
	}
	start := time.Now()
	flog := log.With("file", input)

	var progress func(string)
	if hooks.Progress != nil {
		progress = func(line string) { hooks.Progress(input, line) }
	}

	sum, err := func() (convert.Summary, error) {
		m, err := modelstore.Open(input)
		if err != nil {
			return convert.Summary{}, err
		}
		if opts.DryRun {
			b := container.NewMemory()
			defer func() { _ = b.Close() }()
			return convert.Write(m, b, progress)
		}
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return convert.Summary{}, fmt.Errorf("create output dir: %w", err)
		}
		res.Output = out
		return convert.ConvertSummary(m, out, progress)
	}()

	res.Duration = time.Since(start)
	res.Tables = len(sum.Tables)
	res.Records = sum.Records()
	res.Domains = sum.Domains
	res.Skipped = sum.Skipped
	if err != nil {
		res.Status = StatusFailed
		res.Err = err
		flog.Error("conversion failed", "error", err, "duration", res.Duration)
		if res.Output != "" {
			_ = os.Remove(res.Output)
		}
		return res
	}
	res.Status = StatusOK
	flog.Info("converted", "output", res.Output, "tables", res.Tables, "records", res.Records, "domains", res.Domains, "duration", res.Duration)
	return res
}
