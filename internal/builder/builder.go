// Package builder packs model results and input cards into NH5 records.
//
// Every builder walks load cases in ascending order and steps in ascending
// index order, asks the domain registry for the step's domain and appends one
// run of records per (load case, step) to a Table together with its index
// entry. Builders return a nil Table for an empty category.
package builder

import (
	"errors"
	"fmt"

	"github.com/hsnony97-cyber/Load-Ext/internal/domain"
	"github.com/hsnony97-cyber/Load-Ext/internal/index"
	"github.com/hsnony97-cyber/Load-Ext/internal/model"
	"github.com/hsnony97-cyber/Load-Ext/pkg/nh5"
)

// ErrLayoutMismatch reports source arrays whose shape cannot be packed into
// the target layout (eg row ids and data rows of different lengths).
var ErrLayoutMismatch = errors.New("builder: source shape does not match record layout")

// Table is one fully built output table and its index.
type Table struct {
	Path    string
	Layout  *nh5.Layout
	Records []nh5.Record
	Index   index.Builder
}

func newTable(path string, l *nh5.Layout) *Table {
	return &Table{Path: path, Layout: l}
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Empty reports whether the table has no records.
func (t *Table) Empty() bool { return t.Len() == 0 }

func (t *Table) newRecord() nh5.Record {
	rec := t.Layout.New()
	t.Records = append(t.Records, rec)
	return rec
}

// finish returns t, or nil when nothing was produced.
func (t *Table) finish() *Table {
	if t.Empty() {
		return nil
	}
	return t
}

// walk drives emit over every (load case, step) of results and maintains the
// table index. steps must tolerate a nil result. A step that emits no rows
// registers no domain.
func walk[R domain.StepSource](
	reg *domain.Registry,
	t *Table,
	results map[int64]R,
	steps func(R) int,
	emit func(res R, step int, domainID int64) error,
) error {
	for _, sc := range model.Subcases(results) {
		res := results[sc]
		n := steps(res)
		for step := range n {
			did := reg.Peek(sc, int64(step))
			before := len(t.Records)
			if err := emit(res, step, did); err != nil {
				return fmt.Errorf("%s: subcase %d step %d: %w", t.Path, sc, step, err)
			}
			if len(t.Records) == before {
				continue
			}
			reg.GetOrCreate(sc, int64(step), res)
			t.Index.Add(did, len(t.Records)-before)
		}
	}
	return nil
}

// setColumns copies row[i] into fields[i]. Columns the source does not
// provide stay zero; empty field names skip a column.
func setColumns(rec nh5.Record, fields []string, row []float64) {
	for i, name := range fields {
		if i >= len(row) {
			return
		}
		if name == "" {
			continue
		}
		rec.SetFloat(name, row[i])
	}
}

func checkRows(rows, ids int) error {
	if rows != ids {
		return fmt.Errorf("%w: %d data rows for %d row ids", ErrLayoutMismatch, rows, ids)
	}
	return nil
}

func elementSteps(r *model.ElementResult) int {
	if r == nil {
		return 0
	}
	return len(r.Data)
}
