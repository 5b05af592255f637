package builder

import (
	"github.com/hsnony97-cyber/Load-Ext/internal/domain"
	"github.com/hsnony97-cyber/Load-Ext/internal/model"
	"github.com/hsnony97-cyber/Load-Ext/pkg/nh5"
)

// LineKind selects the packing rule of a one-row-per-element table.
type LineKind struct {
	Layout  *nh5.Layout
	Columns []string
}

// Line element packing rules. CONROD shares the ROD rules.
var (
	BarStress = LineKind{nh5.BarStress, []string{
		"X1A", "X2A", "X3A", "X4A", "AX", "MAXA", "MINA", "MST",
		"X1B", "X2B", "X3B", "X4B", "MAXB", "MINB", "MSC",
	}}
	RodStress  = LineKind{nh5.RodStress, []string{"A", "MSA", "T", "MST"}}
	BushStress = LineKind{nh5.BushStress, []string{"TX", "TY", "TZ", "RX", "RY", "RZ"}}

	BarForce = LineKind{nh5.BarForce, []string{
		"BM1A", "BM2A", "BM1B", "BM2B", "TS1", "TS2", "AF", "TRQ",
	}}
	RodForce   = LineKind{nh5.RodForce, []string{"AF", "TRQ"}}
	BushForce  = LineKind{nh5.BushForce, []string{"FX", "FY", "FZ", "MX", "MY", "MZ"}}
	PlateForce = LineKind{nh5.PlateForce, []string{"MX", "MY", "MXY", "BMX", "BMY", "BMXY", "TX", "TY"}}
)

// Line builds a one-row-per-element table at path.
func Line(reg *domain.Registry, path string, kind LineKind, results map[int64]*model.ElementResult) (*Table, error) {
	if len(results) == 0 {
		return nil, nil
	}
	t := newTable(path, kind.Layout)
	err := walk(reg, t, results, elementSteps, func(r *model.ElementResult, step int, did int64) error {
		rows := r.Data[step]
		if err := checkRows(len(rows), len(r.Elements)); err != nil {
			return err
		}
		for i, eid := range r.Elements {
			rec := t.newRecord()
			rec.SetInt("EID", eid)
			setColumns(rec, kind.Columns, rows[i])
			rec.SetInt("DOMAIN_ID", did)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t.finish(), nil
}

// PlateForceTable builds ELEMENT_FORCE/<elem> for plates. Only the center
// row of every element block is kept when the source also reports corners.
func PlateForceTable(reg *domain.Registry, elem string, results map[int64]*model.ElementResult) (*Table, error) {
	if len(results) == 0 {
		return nil, nil
	}
	t := newTable(nh5.ElementalPath(nh5.CategoryElementForce, elem), nh5.PlateForce)
	err := walk(reg, t, results, elementSteps, func(r *model.ElementResult, step int, did int64) error {
		rows := r.Data[step]
		if err := checkRows(len(rows), len(r.Elements)); err != nil {
			return err
		}
		stride := max(r.NodesPerElement, 1)
		for i := 0; i < len(rows); i += stride {
			rec := t.newRecord()
			rec.SetInt("EID", r.Elements[i])
			setColumns(rec, PlateForce.Columns, rows[i])
			rec.SetInt("DOMAIN_ID", did)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t.finish(), nil
}

var beamStressColumns = []string{"XC", "XD", "XE", "XF", "MAX", "MIN", "MST", "MSC"}

// BeamStress builds ELEMENTAL/<category>/BEAM with one row per (element,
// station).
func BeamStress(reg *domain.Registry, category string, results map[int64]*model.ElementResult) (*Table, error) {
	if len(results) == 0 {
		return nil, nil
	}
	t := newTable(nh5.ElementalPath(category, "BEAM"), nh5.BeamStress)
	err := walk(reg, t, results, elementSteps, func(r *model.ElementResult, step int, did int64) error {
		rows := r.Data[step]
		if err := checkRows(len(rows), len(r.Elements)); err != nil {
			return err
		}
		for i, eid := range r.Elements {
			rec := t.newRecord()
			rec.SetInt("EID", eid)
			rec.SetInt("GRID", r.GridOf(i))
			rec.SetFloat("SD", r.StationOf(i))
			setColumns(rec, beamStressColumns, rows[i])
			rec.SetInt("DOMAIN_ID", did)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t.finish(), nil
}

var (
	beamForceColumnsA = []string{"BM1A", "BM2A", "TS1A", "TS2A", "AFA", "TTRQA", "WTRQA"}
	beamForceColumnsB = []string{"BM1B", "BM2B", "TS1B", "TS2B", "AFB", "TTRQB", "WTRQB"}
)

// BeamForce builds ELEMENT_FORCE/BEAM, merging the first station (end A)
// and the last station (end B) of every element into one row.
func BeamForce(reg *domain.Registry, results map[int64]*model.ElementResult) (*Table, error) {
	if len(results) == 0 {
		return nil, nil
	}
	t := newTable(nh5.ElementalPath(nh5.CategoryElementForce, "BEAM"), nh5.BeamForce)
	err := walk(reg, t, results, elementSteps, func(r *model.ElementResult, step int, did int64) error {
		rows := r.Data[step]
		if err := checkRows(len(rows), len(r.Elements)); err != nil {
			return err
		}
		for a := 0; a < len(rows); {
			b := a
			for b+1 < len(rows) && r.Elements[b+1] == r.Elements[a] {
				b++
			}
			rec := t.newRecord()
			rec.SetInt("EID", r.Elements[a])
			rec.SetInt("GRIDA", r.GridOf(a))
			rec.SetFloat("SDA", r.StationOf(a))
			setColumns(rec, beamForceColumnsA, rows[a])
			rec.SetInt("GRIDB", r.GridOf(b))
			rec.SetFloat("SDB", r.StationOf(b))
			setColumns(rec, beamForceColumnsB, rows[b])
			rec.SetInt("DOMAIN_ID", did)
			a = b + 1
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t.finish(), nil
}
