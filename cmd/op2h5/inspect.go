package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hsnony97-cyber/Load-Ext/internal/container/h5"
	"github.com/hsnony97-cyber/Load-Ext/internal/container/rcfstore"
	"github.com/hsnony97-cyber/Load-Ext/pkg/nh5"
)

func inspectCmd() *cli.Command {
	var (
		head int64
		find string
	)

	return &cli.Command{
		Name:      "inspect",
		Usage:     "List the tables of an H5 or RCF container",
		ArgsUsage: "<file.h5|file.rcf> [table-path]",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:        "head",
				Usage:       "records to print when a table path is given (rcf only)",
				Value:       5,
				Destination: &head,
			},
			&cli.StringFlag{
				Name:        "find",
				Usage:       "only list objects whose path contains this text",
				Destination: &find,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("inspect: missing container path")
			}
			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			defer func() { _ = tw.Flush() }()

			table := cmd.Args().Get(1)
			if strings.EqualFold(filepath.Ext(path), ".h5") {
				f, err := h5.Open(path)
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				if table != "" {
					return printH5Table(tw, f, table)
				}
				printH5Tree(tw, f, path, find)
				return nil
			}

			f, err := rcfstore.Open(path)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			if table != "" {
				return printRecords(tw, f, table, int(head))
			}
			printSections(tw, f, path, find)
			return nil
		},
	}
}

func printSections(w io.Writer, f *rcfstore.File, path, find string) {
	_, _ = fmt.Fprintf(w, "%s: schema %v\n", path, f.Attr(nh5.Root, nh5.SchemaVersionAttr))
	_, _ = fmt.Fprintln(w, "PATH\tLAYOUT\tVERSION\tRECORDS\tBYTES")
	for _, s := range f.Sections() {
		if !matches(s.Path, find) {
			continue
		}
		name := "?"
		if l := layoutFor(f, s.Path); l != nil {
			name = l.Name
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", s.Path, name, s.Version, s.Count, s.Size)
	}
}

// printH5Tree lists groups and datasets indented by depth, with the catalog
// layout and record count of each table.
func printH5Tree(w io.Writer, f *h5.File, path, find string) {
	tables := f.Tables()
	var records int
	for _, e := range tables {
		records += e.Count
	}
	_, _ = fmt.Fprintf(w, "%s: schema %v, %d tables, %d records\n",
		path, f.Attr(nh5.Root, nh5.SchemaVersionAttr), len(tables), records)

	nodes := f.Nodes()
	if find != "" {
		nodes = f.Find(find)
	}
	for _, n := range nodes {
		if n.Path == "/" {
			continue
		}
		// Filtered listings print full paths, the tree prints base names.
		name, indent := n.Path, ""
		if find == "" {
			name = n.Path[strings.LastIndex(n.Path, "/")+1:]
			indent = strings.Repeat("  ", strings.Count(n.Path, "/")-1)
		}
		if n.Group {
			_, _ = fmt.Fprintf(w, "%s%s/\n", indent, name)
			continue
		}
		if e, ok := f.Table(n.Path); ok {
			_, _ = fmt.Fprintf(w, "%s%s\t%s\t%d\n", indent, name, e.Layout, e.Count)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s%s\n", indent, name)
	}
}

func printH5Table(w io.Writer, f *h5.File, path string) error {
	e, ok := f.Table(path)
	if !ok {
		return fmt.Errorf("inspect: %s is not a table", path)
	}
	_, _ = fmt.Fprintf(w, "path\t%s\n", e.Path)
	_, _ = fmt.Fprintf(w, "layout\t%s\n", e.Layout)
	_, _ = fmt.Fprintf(w, "records\t%d\n", e.Count)
	_, _ = fmt.Fprintf(w, "version\t%v\n", f.Attr(path, nh5.TableVersionAttr))
	_, _ = fmt.Fprintf(w, "fields\t%v\n", f.Attr(path, nh5.TableFieldsAttr))
	if n, ok := f.Node(path); ok && n.Info != "" {
		_, _ = fmt.Fprintf(w, "dataset\t%s\n", strings.ReplaceAll(n.Info, "\n", "; "))
	}
	return nil
}

func matches(path, find string) bool {
	return find == "" || strings.Contains(strings.ToUpper(path), strings.ToUpper(find))
}

// layoutFor matches the FIELDS attribute of a table against the registered
// layouts.
func layoutFor(f *rcfstore.File, path string) *nh5.Layout {
	fields, _ := f.Attr(path, nh5.TableFieldsAttr).(string)
	if fields == "" {
		return nil
	}
	for _, l := range nh5.Layouts() {
		if l.Descr() == fields {
			return l
		}
	}
	return nil
}

func printRecords(tw io.Writer, f *rcfstore.File, path string, head int) error {
	l := layoutFor(f, path)
	if l == nil {
		return fmt.Errorf("inspect: no known layout for %s", path)
	}
	recs, err := f.Records(path, l)
	if err != nil {
		return err
	}
	if head >= 0 && head < len(recs) {
		recs = recs[:head]
	}

	var cols []nh5.Field
	for _, fd := range l.Fields {
		if fd.Kind != nh5.KindCompound {
			cols = append(cols, fd)
		}
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	_, _ = fmt.Fprintln(tw, strings.Join(names, "\t"))
	for _, r := range recs {
		vals := make([]string, len(cols))
		for i, c := range cols {
			vals[i] = fieldValue(r, c)
		}
		_, _ = fmt.Fprintln(tw, strings.Join(vals, "\t"))
	}
	return nil
}

func fieldValue(r nh5.Record, f nh5.Field) string {
	switch {
	case f.Kind == nh5.KindBytes:
		return r.String(f.Name)
	case f.Kind == nh5.KindInt && f.Len() > 1:
		return fmt.Sprint(r.Ints(f.Name))
	case f.Kind == nh5.KindInt:
		return fmt.Sprint(r.Int(f.Name))
	case f.Len() > 1:
		return fmt.Sprint(r.Floats(f.Name))
	default:
		return fmt.Sprintf("%g", r.Float(f.Name))
	}
}
