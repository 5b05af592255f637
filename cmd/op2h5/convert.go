package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hsnony97-cyber/Load-Ext/internal/batch"
	"github.com/hsnony97-cyber/Load-Ext/internal/container"
	"github.com/hsnony97-cyber/Load-Ext/internal/jobstore"
	"github.com/hsnony97-cyber/Load-Ext/internal/logger"
)

func convertCmd() *cli.Command {
	var (
		dir     string
		outDir  string
		format  string
		workers int64
		dryRun  bool
	)

	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert model dumps (.json, .yaml) into NH5 containers",
		ArgsUsage: "[dump ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "convert every dump under this directory",
				Destination: &dir,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       fmt.Sprintf("output directory (default: $%s or ./out)", envOutDir),
				Destination: &outDir,
			},
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "container format (" + strings.Join(container.Formats(), ", ") + ")",
				Value:       batch.DefaultFormat,
				Destination: &format,
			},
			&cli.Int64Flag{
				Name:        "workers",
				Aliases:     []string{"j"},
				Usage:       "files converted in parallel (0 = number of CPUs)",
				Destination: &workers,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "build every table in memory without writing containers",
				Destination: &dryRun,
			},
			jobDBFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyConvertConfig(cmd, LoadConfig(), &outDir, &format, &workers)

			inputs, err := resolveInputs(cmd.Args().Slice(), dir)
			if err != nil {
				return err
			}
			inputs, err = batch.Collect(inputs)
			if err != nil {
				return err
			}
			out, defaulted := resolveOutDir(outDir)
			if defaulted && !dryRun {
				log.Info("using default output directory", "dir", out)
			}

			opts := batch.Options{
				Inputs:    inputs,
				OutputDir: out,
				Format:    format,
				Workers:   int(workers),
				DryRun:    dryRun,
			}
			if jobDB != "" {
				path, err := resolveJobDB(jobDB)
				if err != nil {
					return err
				}
				store, err := jobstore.Open(path)
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()
				opts.Recorder = store
			}

			var mu sync.Mutex
			report, err := batch.Run(ctx, opts, batch.Hooks{
				Progress: func(input, line string) {
					log.Debug(line, "file", input)
				},
				OnFile: func(r batch.FileResult) {
					mu.Lock()
					defer mu.Unlock()
					printFileResult(r)
				},
			})
			if report.ID != "" && opts.Recorder != nil {
				log.Info("batch recorded", "batch", report.ID, "job_db", jobDB)
			}
			return err
		},
	}
}

func printFileResult(r batch.FileResult) {
	name := filepath.Base(r.Input)
	switch r.Status {
	case batch.StatusOK:
		dest := r.Output
		if dest == "" {
			dest = "(dry run)"
		}
		fmt.Printf("ok     %s -> %s (%d tables, %d records, %d domains, %s)\n",
			name, dest, r.Tables, r.Records, r.Domains, r.Duration.Round(time.Millisecond))
		if len(r.Skipped) > 0 {
			cards := make([]string, 0, len(r.Skipped))
			for card, n := range r.Skipped {
				cards = append(cards, fmt.Sprintf("%s x%d", card, n))
			}
			sort.Strings(cards)
			fmt.Printf("       skipped unsupported cards: %s\n", strings.Join(cards, ", "))
		}
	default:
		_, _ = fmt.Fprintf(os.Stderr, "%-6s %s: %v\n", r.Status, name, r.Err)
	}
}
