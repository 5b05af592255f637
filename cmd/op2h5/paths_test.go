package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveOutDir(t *testing.T) {
	t.Run("explicit output wins", func(t *testing.T) {
		t.Setenv(envOutDir, "/ignored")
		got, defaulted := resolveOutDir(" results/h5/ ")
		if defaulted {
			t.Fatalf("expected explicit output to not be defaulted")
		}
		if want := filepath.Clean("results/h5"); got != want {
			t.Fatalf("unexpected output dir: got %q want %q", got, want)
		}
	})

	t.Run("env output dir overrides default", func(t *testing.T) {
		envDir := filepath.Join(t.TempDir(), "converted")
		t.Setenv(envOutDir, envDir)
		got, defaulted := resolveOutDir("")
		if !defaulted {
			t.Fatalf("expected output to be defaulted")
		}
		if got != envDir {
			t.Fatalf("unexpected output dir: got %q want %q", got, envDir)
		}
	})

	t.Run("default output dir is ./out", func(t *testing.T) {
		t.Setenv(envOutDir, "")
		got, defaulted := resolveOutDir("")
		if !defaulted {
			t.Fatalf("expected output to be defaulted")
		}
		if want := filepath.Join(".", "out"); got != want {
			t.Fatalf("unexpected output dir: got %q want %q", got, want)
		}
	})
}

func TestResolveInputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	got, err := resolveInputs([]string{"wing.json", " ", "./fuselage.yaml"}, dir)
	if err != nil {
		t.Fatalf("resolveInputs returned error: %v", err)
	}
	want := []string{"wing.json", "fuselage.yaml", dir}
	if len(got) != len(want) {
		t.Fatalf("unexpected inputs: got %q want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected input at %d: got %q want %q", i, got[i], want[i])
		}
	}

	if _, err := resolveInputs(nil, ""); err == nil {
		t.Fatalf("expected error for no inputs")
	}
	file := filepath.Join(dir, "model.json")
	if err := os.WriteFile(file, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := resolveInputs(nil, file); err == nil {
		t.Fatalf("expected error when --dir is a file")
	}
}

func TestResolveJobDB(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state", "jobs.db")
	got, err := resolveJobDB(path)
	if err != nil {
		t.Fatalf("resolveJobDB returned error: %v", err)
	}
	if got != path {
		t.Fatalf("unexpected path: got %q want %q", got, path)
	}
	if st, err := os.Stat(filepath.Dir(path)); err != nil || !st.IsDir() {
		t.Fatalf("expected job db directory to exist: %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("output_dir: /data/nh5\nformat: rcf\nworkers: 3\nlog_level: debug\nserver_address: 0.0.0.0:9000\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg := loadConfigFile(path)
	if cfg.OutputDir != "/data/nh5" || cfg.Format != "rcf" || cfg.LogLevel != "debug" || cfg.ServerAddress != "0.0.0.0:9000" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Workers == nil || *cfg.Workers != 3 {
		t.Fatalf("unexpected workers: %v", cfg.Workers)
	}

	if err := os.WriteFile(path, []byte("format: [unterminated"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if cfg := loadConfigFile(path); cfg != (Config{}) {
		t.Fatalf("expected zero config for bad yaml, got %+v", cfg)
	}
	if cfg := loadConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); cfg != (Config{}) {
		t.Fatalf("expected zero config for missing file, got %+v", cfg)
	}
}
