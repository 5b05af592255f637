package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hsnony97-cyber/Load-Ext/pkg/nh5"
)

func layoutCmd() *cli.Command {
	return &cli.Command{
		Name:      "layout",
		Usage:     "Print record layouts (all, or the named ones with their fields)",
		ArgsUsage: "[name ...]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			defer func() { _ = tw.Flush() }()

			names := cmd.Args().Slice()
			if len(names) == 0 {
				_, _ = fmt.Fprintln(tw, "NAME\tVERSION\tBYTES\tFIELDS")
				for _, l := range nh5.Layouts() {
					_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", l.Name, l.Version, l.Size(), len(l.Names()))
				}
				return nil
			}

			for i, name := range names {
				l, err := nh5.LookupLayout(name)
				if err != nil {
					return err
				}
				if i > 0 {
					_, _ = fmt.Fprintln(tw)
				}
				printLayout(tw, l)
			}
			return nil
		},
	}
}

func printLayout(tw *tabwriter.Writer, l *nh5.Layout) {
	_, _ = fmt.Fprintf(tw, "%s\n", l)
	_, _ = fmt.Fprintln(tw, "OFFSET\tFIELD\tTYPE")
	for _, name := range l.Names() {
		f, off, _ := l.Lookup(name)
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\n", off, name, f.Descr())
	}
}
