package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

const goodDump = `{
  "sol": 101,
  "grids": [{"id": 1, "x": [0, 0, 0]}],
  "results": {
    "displacements": {
      "1": {"nodes": [1], "data": [[[1, 2, 3, 0, 0, 0]]]}
    },
    "stress": {}, "strain": {}, "force": {}
  }
}`

// Two data rows for one node id.
const badDump = `{
  "results": {
    "displacements": {
      "1": {"nodes": [1], "data": [[[1, 0, 0, 0, 0, 0], [2, 0, 0, 0, 0, 0]]]}
    },
    "stress": {}, "strain": {}, "force": {}
  }
}`

func writeDumps(t *testing.T, files map[string]string) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		paths = append(paths, p)
	}
	return dir, paths
}

type recorder struct {
	mu       sync.Mutex
	started  string
	files    map[string]FileResult
	finished string
}

func (r *recorder) StartBatch(_ context.Context, id string, _ Options) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = id
	r.files = map[string]FileResult{}
	return nil
}

func (r *recorder) RecordFile(_ context.Context, _ string, res FileResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[filepath.Base(res.Input)] = res
	return nil
}

func (r *recorder) FinishBatch(_ context.Context, _ string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = status
	return nil
}

func TestRunIsolatesFailures(t *testing.T) {
	t.Parallel()

	_, inputs := writeDumps(t, map[string]string{
		"a.json": goodDump,
		"b.json": badDump,
		"c.json": goodDump,
	})
	out := filepath.Join(t.TempDir(), "out")
	rec := &recorder{}

	report, err := Run(context.Background(), Options{
		ID:        "batch-1",
		Inputs:    inputs,
		OutputDir: out,
		Format:    "rcf",
		Workers:   2,
		Recorder:  rec,
	}, Hooks{})
	if !errors.Is(err, ErrFilesFailed) {
		t.Fatalf("run: got %v want ErrFilesFailed", err)
	}
	if report.ID != "batch-1" || len(report.Files) != 3 {
		t.Fatalf("report: got %+v", report)
	}
	failed := report.Failed()
	if len(failed) != 1 || filepath.Base(failed[0].Input) != "b.json" {
		t.Fatalf("failed: got %+v", failed)
	}
	if report.Status() != BatchFailed {
		t.Fatalf("status: got %s", report.Status())
	}

	for _, name := range []string{"a.rcf", "c.rcf"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "b.rcf")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("b.rcf should not exist: %v", err)
	}

	if rec.started != "batch-1" || rec.finished != BatchFailed || len(rec.files) != 3 {
		t.Fatalf("recorder: started %q finished %q files %d", rec.started, rec.finished, len(rec.files))
	}
	if got := rec.files["a.json"]; got.Status != StatusOK || got.Records == 0 {
		t.Fatalf("a.json: got %+v", got)
	}
}

func TestRunDryRun(t *testing.T) {
	t.Parallel()

	dir, inputs := writeDumps(t, map[string]string{"a.json": goodDump})
	var (
		mu    sync.Mutex
		lines []string
	)
	report, err := Run(context.Background(), Options{Inputs: inputs, DryRun: true}, Hooks{
		Progress: func(_, line string) {
			mu.Lock()
			lines = append(lines, line)
			mu.Unlock()
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.ID == "" {
		t.Fatalf("expected generated batch id")
	}
	if got := report.Files[0]; got.Status != StatusOK || got.Output != "" || got.Domains != 1 {
		t.Fatalf("file: got %+v", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.h5")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("dry run wrote output: %v", err)
	}
	if len(lines) == 0 {
		t.Fatalf("no progress lines")
	}
}

func TestRunCanceled(t *testing.T) {
	t.Parallel()

	_, inputs := writeDumps(t, map[string]string{"a.json": goodDump, "b.json": goodDump})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Run(ctx, Options{Inputs: inputs, DryRun: true}, Hooks{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("run: got %v want context.Canceled", err)
	}
	for _, f := range report.Files {
		if f.Status != StatusCanceled {
			t.Fatalf("%s: got %s want canceled", f.Input, f.Status)
		}
	}
	if report.Status() != BatchCanceled {
		t.Fatalf("status: got %s", report.Status())
	}
}

func TestRunRejects(t *testing.T) {
	t.Parallel()

	if _, err := Run(context.Background(), Options{}, Hooks{}); !errors.Is(err, ErrNoInputs) {
		t.Fatalf("no inputs: got %v", err)
	}
	_, inputs := writeDumps(t, map[string]string{"a.json": goodDump})
	if _, err := Run(context.Background(), Options{Inputs: inputs, Format: "xlsx"}, Hooks{}); err == nil {
		t.Fatalf("unknown format: expected error")
	}
}

func TestCollect(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, p := range []string{
		filepath.Join(dir, "b.json"),
		filepath.Join(dir, "notes.txt"),
		filepath.Join(sub, "a.yaml"),
	} {
		if err := os.WriteFile(p, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	got, err := Collect([]string{dir})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	want := []string{filepath.Join(dir, "b.json"), filepath.Join(sub, "a.yaml")}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("collect: got %v want %v", got, want)
	}
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	got, err := OutputPath("/data/run1/wing.json", "/out", "h5")
	if err != nil || got != "/out/wing.h5" {
		t.Fatalf("got %q, %v", got, err)
	}
	got, err = OutputPath("/data/run1/wing.yaml", "", "rcf")
	if err != nil || got != "/data/run1/wing.rcf" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestOutputPaths(t *testing.T) {
	t.Parallel()

	got, err := OutputPaths([]string{
		"/data/a/run.json",
		"/data/b/run.json",
		"/data/b/wing.json",
	}, "/out", "rcf")
	if err != nil {
		t.Fatalf("output paths: %v", err)
	}
	want := []string{"/out/a/run.rcf", "/out/b/run.rcf", "/out/wing.rcf"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("output %d: got %q want %q", i, got[i], want[i])
		}
	}

	got, err = OutputPaths([]string{"/data/run.json", "/data/run.yaml"}, "", "rcf")
	if err != nil {
		t.Fatalf("output paths: %v", err)
	}
	if got[0] != "/data/run.json.rcf" || got[1] != "/data/run.yaml.rcf" {
		t.Fatalf("same stem: got %v", got)
	}

	if _, err := OutputPaths([]string{"/data/run.json", "/data/./run.json"}, "/out", "rcf"); !errors.Is(err, ErrDuplicateInput) {
		t.Fatalf("duplicate input: got %v want ErrDuplicateInput", err)
	}
}

func TestRunNestedSameName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for name, content := range map[string]string{"a": goodDump, "b": badDump} {
		sub := filepath.Join(dir, name)
		if err := os.MkdirAll(sub, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(sub, "run.json"), []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	inputs, err := Collect([]string{dir})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	out := filepath.Join(t.TempDir(), "out")

	report, err := Run(context.Background(), Options{
		Inputs:    inputs,
		OutputDir: out,
		Format:    "rcf",
		Workers:   1,
	}, Hooks{})
	if !errors.Is(err, ErrFilesFailed) {
		t.Fatalf("run: got %v want ErrFilesFailed", err)
	}
	good, bad := report.Files[0], report.Files[1]
	if good.Status != StatusOK || bad.Status != StatusFailed {
		t.Fatalf("statuses: got %s, %s", good.Status, bad.Status)
	}
	if good.Output == bad.Output {
		t.Fatalf("outputs collide: %q", good.Output)
	}
	if want := filepath.Join(out, "a", "run.rcf"); good.Output != want {
		t.Fatalf("good output: got %q want %q", good.Output, want)
	}
	if _, err := os.Stat(good.Output); err != nil {
		t.Fatalf("good output removed by failed file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "b", "run.rcf")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("failed output should not exist: %v", err)
	}
}
