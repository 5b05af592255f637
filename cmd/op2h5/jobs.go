package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hsnony97-cyber/Load-Ext/internal/jobstore"
)

func jobsCmd() *cli.Command {
	var limit int64

	return &cli.Command{
		Name:      "jobs",
		Usage:     "List recorded batches, or show one batch with its files",
		ArgsUsage: "[batch-id]",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "number of batches to list",
				Value:       20,
				Destination: &limit,
			},
			jobDBFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyJobDBConfig(cmd, LoadConfig())
			path, err := resolveJobDB(jobDB)
			if err != nil {
				return err
			}
			store, err := jobstore.Open(path)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			defer func() { _ = tw.Flush() }()

			if id := cmd.Args().First(); id != "" {
				b, err := store.Get(ctx, id)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(tw, "batch\t%s\nstatus\t%s\nformat\t%s\noutput\t%s\ncreated\t%s\n\n",
					b.ID, b.Status, b.Format, b.OutputDir, b.CreatedAt.Local().Format("2006-01-02 15:04:05"))
				_, _ = fmt.Fprintln(tw, "STATUS\tINPUT\tTABLES\tRECORDS\tDOMAINS\tMS\tERROR")
				for _, f := range b.Files {
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
						f.Status, f.Input, f.Tables, f.Records, f.Domains, f.DurationMS, f.Error)
				}
				return nil
			}

			batches, err := store.List(ctx, int(limit))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tFORMAT\tFILES\tCREATED")
			for _, b := range batches {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
					b.ID, b.Status, b.Format, len(b.Inputs), b.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}
