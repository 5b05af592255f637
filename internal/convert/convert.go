// Package convert writes a result model into an NH5 container.
package convert

import (
	"errors"
	"fmt"

	"github.com/hsnony97-cyber/Load-Ext/internal/builder"
	"github.com/hsnony97-cyber/Load-Ext/internal/container"
	_ "github.com/hsnony97-cyber/Load-Ext/internal/container/h5"
	_ "github.com/hsnony97-cyber/Load-Ext/internal/container/rcfstore"
	"github.com/hsnony97-cyber/Load-Ext/internal/domain"
	"github.com/hsnony97-cyber/Load-Ext/internal/model"
)

var ErrNilModel = errors.New("convert: nil model")

// Progress receives human readable progress lines. It may be nil.
type Progress func(string)

func (p Progress) printf(format string, args ...any) {
	if p != nil {
		p(fmt.Sprintf(format, args...))
	}
}

// TableInfo describes one written table.
type TableInfo struct {
	Path    string
	Layout  string
	Records int
	Index   int
}

// Summary reports what a conversion wrote.
type Summary struct {
	Tables  []TableInfo
	Domains int
	Skipped builder.Skipped
}

// Records returns the total record count over all tables.
func (s Summary) Records() int {
	n := 0
	for _, t := range s.Tables {
		n += t.Records
	}
	return n
}

// Convert creates the container at outputPath (format chosen by extension),
// writes m into it and closes it.
func Convert(m *model.Model, outputPath string, progress func(string)) error {
	_, err := ConvertSummary(m, outputPath, progress)
	return err
}

// ConvertSummary is Convert returning the write summary.
func ConvertSummary(m *model.Model, outputPath string, progress func(string)) (Summary, error) {
	b, err := container.Create(outputPath)
	if err != nil {
		return Summary{}, err
	}
	sum, err := Write(m, b, progress)
	if cerr := b.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close %s: %w", outputPath, cerr)
	}
	return sum, err
}

// Write runs the full conversion of m against b. It does not close b.
func Write(m *model.Model, b container.Backend, progress func(string)) (Summary, error) {
	if m == nil {
		return Summary{}, ErrNilModel
	}
	w := &writer{
		m:        m,
		b:        b,
		reg:      domain.NewRegistry(m.SOL),
		progress: progress,
		sum:      Summary{Skipped: builder.Skipped{}},
	}
	if err := w.run(); err != nil {
		return w.sum, err
	}
	w.sum.Domains = w.reg.Len()
	return w.sum, nil
}
