package builder

import (
	"fmt"

	"github.com/hsnony97-cyber/Load-Ext/internal/domain"
	"github.com/hsnony97-cyber/Load-Ext/internal/model"
	"github.com/hsnony97-cyber/Load-Ext/pkg/nh5"
)

var (
	plateTopColumns    = []string{"FD1", "X1", "Y1", "XY1"}
	plateBottomColumns = []string{"FD2", "X2", "Y2", "XY2"}
	plateCornerColumns = []string{"FD", "X", "Y", "XY"}
)

// Sample point tags written into PLATE_CORNER.TERM.
const (
	termCenter = "CEN/"
	termCorner = "CRN/"
)

// Plate source rows come in blocks of 2*nodes per element: top and bottom
// surface for the center, then for every corner.
func plateStride(r *model.ElementResult) int {
	return 2 * max(r.NodesPerElement, 1)
}

func plateBlocks(r *model.ElementResult, rows int) (int, error) {
	if err := checkRows(rows, len(r.Elements)); err != nil {
		return 0, err
	}
	rpe := plateStride(r)
	if rows%rpe != 0 {
		return 0, fmt.Errorf("%w: %d plate rows is not a multiple of %d rows per element", ErrLayoutMismatch, rows, rpe)
	}
	return rows / rpe, nil
}

// PlateCenter builds ELEMENTAL/<category>/<elem> holding the center top and
// bottom surface values of every plate element.
func PlateCenter(reg *domain.Registry, category, elem string, results map[int64]*model.ElementResult) (*Table, error) {
	if len(results) == 0 {
		return nil, nil
	}
	t := newTable(nh5.ElementalPath(category, elem), nh5.PlateCenter)
	err := walk(reg, t, results, elementSteps, func(r *model.ElementResult, step int, did int64) error {
		rows := r.Data[step]
		n, err := plateBlocks(r, len(rows))
		if err != nil {
			return err
		}
		rpe := plateStride(r)
		for b := range n {
			top := b * rpe
			rec := t.newRecord()
			rec.SetInt("EID", r.Elements[top])
			setColumns(rec, plateTopColumns, rows[top])
			setColumns(rec, plateBottomColumns, rows[top+1])
			rec.SetInt("DOMAIN_ID", did)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t.finish(), nil
}

// HasCorners reports whether any load case of a plate result carries corner
// sample points.
func HasCorners(results map[int64]*model.ElementResult) bool {
	for _, r := range results {
		if r != nil && r.NodesPerElement > 1 {
			return true
		}
	}
	return false
}

// PlateCorner builds ELEMENTAL/<category>/<elem>_CN with one row per sample
// point and surface. Load cases without corner output contribute nothing.
func PlateCorner(reg *domain.Registry, category, elem string, results map[int64]*model.ElementResult) (*Table, error) {
	if !HasCorners(results) {
		return nil, nil
	}
	t := newTable(nh5.ElementalPath(category, elem+"_CN"), nh5.PlateCorner)
	steps := func(r *model.ElementResult) int {
		if r == nil || r.NodesPerElement <= 1 {
			return 0
		}
		return len(r.Data)
	}
	err := walk(reg, t, results, steps, func(r *model.ElementResult, step int, did int64) error {
		rows := r.Data[step]
		n, err := plateBlocks(r, len(rows))
		if err != nil {
			return err
		}
		rpe := plateStride(r)
		for b := range n {
			for p := range r.NodesPerElement {
				for surface := range 2 {
					row := b*rpe + 2*p + surface
					rec := t.newRecord()
					rec.SetInt("EID", r.Elements[row])
					if p == 0 {
						rec.SetString("TERM", termCenter)
					} else {
						rec.SetString("TERM", termCorner)
						rec.SetInt("GRID", r.GridOf(row))
					}
					setColumns(rec, plateCornerColumns, rows[row])
					rec.SetInt("DOMAIN_ID", did)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t.finish(), nil
}
