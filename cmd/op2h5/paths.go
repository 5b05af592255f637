package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const envOutDir = "OP2H5_OUT_DIR"

// resolveOutDir returns the output directory for converted containers: the
// --out flag, else $OP2H5_OUT_DIR, else ./out. The bool reports a defaulted
// directory.
func resolveOutDir(outFlag string) (string, bool) {
	if out := strings.TrimSpace(outFlag); out != "" {
		return filepath.Clean(out), false
	}
	if out := strings.TrimSpace(os.Getenv(envOutDir)); out != "" {
		return filepath.Clean(out), true
	}
	return filepath.Join(".", "out"), true
}

// resolveInputs merges positional inputs with --dir.
func resolveInputs(args []string, dir string) ([]string, error) {
	inputs := make([]string, 0, len(args)+1)
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			inputs = append(inputs, filepath.Clean(a))
		}
	}
	if dir = strings.TrimSpace(dir); dir != "" {
		st, err := os.Stat(dir)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			return nil, fmt.Errorf("--dir is not a directory: %s", dir)
		}
		inputs = append(inputs, filepath.Clean(dir))
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no inputs: pass model dumps or --dir")
	}
	return inputs, nil
}

// resolveJobDB returns the job database path, creating its directory. An
// empty flag selects jobs.db next to the config file.
func resolveJobDB(flag string) (string, error) {
	path := strings.TrimSpace(flag)
	if path == "" {
		dir := configDir()
		if dir == "" {
			return "", fmt.Errorf("no user config directory; set --job-db")
		}
		path = filepath.Join(dir, "jobs.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	return path, nil
}
