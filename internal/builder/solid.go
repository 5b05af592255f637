package builder

import (
	"fmt"

	"github.com/hsnony97-cyber/Load-Ext/internal/domain"
	"github.com/hsnony97-cyber/Load-Ext/internal/model"
	"github.com/hsnony97-cyber/Load-Ext/pkg/nh5"
)

// SolidKind names a solid element family and its sample point count.
type SolidKind struct {
	Name    string
	Layout  *nh5.Layout
	Samples int
}

var (
	Hexa  = SolidKind{"HEXA", nh5.HexaStress, nh5.HexaSamples}
	Penta = SolidKind{"PENTA", nh5.PentaStress, nh5.PentaSamples}
	Tetra = SolidKind{"TETRA", nh5.TetraStress, nh5.TetraSamples}
)

var solidColumns = []string{"X", "Y", "Z", "TXY", "TYZ", "TZX"}

// solidCoordType is the CTYPE of every solid record.
const solidCoordType = "GRID"

// Solid builds ELEMENTAL/<category>/<kind> with one record per element and
// a nested sub-record per sample point.
func Solid(reg *domain.Registry, category string, kind SolidKind, results map[int64]*model.ElementResult) (*Table, error) {
	if len(results) == 0 {
		return nil, nil
	}
	t := newTable(nh5.ElementalPath(category, kind.Name), kind.Layout)
	n := kind.Samples
	err := walk(reg, t, results, elementSteps, func(r *model.ElementResult, step int, did int64) error {
		rows := r.Data[step]
		if err := checkRows(len(rows), len(r.Elements)); err != nil {
			return err
		}
		if len(rows)%n != 0 {
			return fmt.Errorf("%w: %d %s rows is not a multiple of %d sample points", ErrLayoutMismatch, len(rows), kind.Name, n)
		}
		for first := 0; first < len(rows); first += n {
			rec := t.newRecord()
			rec.SetInt("EID", r.Elements[first])
			rec.SetInt("CID", 0)
			rec.SetString("CTYPE", solidCoordType)
			rec.SetInt("NODEF", int64(n-1))
			for j := range n {
				row := first + j
				ss := rec.Elem("SS", j)
				ss.SetInt("GRID", r.GridOf(row))
				setColumns(ss, solidColumns, rows[row])
			}
			rec.SetInt("DOMAIN_ID", did)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t.finish(), nil
}
