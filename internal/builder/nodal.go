package builder

import (
	"github.com/hsnony97-cyber/Load-Ext/internal/domain"
	"github.com/hsnony97-cyber/Load-Ext/internal/model"
	"github.com/hsnony97-cyber/Load-Ext/pkg/nh5"
)

var nodalColumns = []string{"X", "Y", "Z", "RX", "RY", "RZ"}

// Nodal builds RESULT/NODAL/<name> from a per-grid vector result.
func Nodal(reg *domain.Registry, name string, results map[int64]*model.NodalResult) (*Table, error) {
	if len(results) == 0 {
		return nil, nil
	}
	t := newTable(nh5.NodalPath(name), nh5.Nodal)
	steps := func(r *model.NodalResult) int {
		if r == nil {
			return 0
		}
		return len(r.Data)
	}
	err := walk(reg, t, results, steps, func(r *model.NodalResult, step int, did int64) error {
		rows := r.Data[step]
		if err := checkRows(len(rows), len(r.Nodes)); err != nil {
			return err
		}
		for i, nid := range r.Nodes {
			rec := t.newRecord()
			rec.SetInt("ID", nid)
			setColumns(rec, nodalColumns, rows[i])
			rec.SetInt("DOMAIN_ID", did)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t.finish(), nil
}

// GridForce builds RESULT/NODAL/GRID_FORCE, one row per (grid, contributing
// element) pair.
func GridForce(reg *domain.Registry, results map[int64]*model.GridForceResult) (*Table, error) {
	if len(results) == 0 {
		return nil, nil
	}
	t := newTable(nh5.GridForcePath, nh5.GridForce)
	columns := []string{"F1", "F2", "F3", "M1", "M2", "M3"}
	steps := func(r *model.GridForceResult) int {
		if r == nil {
			return 0
		}
		return len(r.Data)
	}
	err := walk(reg, t, results, steps, func(r *model.GridForceResult, step int, did int64) error {
		rows := r.Data[step]
		if err := checkRows(len(rows), len(r.Nodes)); err != nil {
			return err
		}
		if err := checkRows(len(r.Elements), len(r.Nodes)); err != nil {
			return err
		}
		for i, nid := range r.Nodes {
			rec := t.newRecord()
			rec.SetInt("ID", nid)
			rec.SetInt("EID", r.Elements[i])
			if i < len(r.ElementNames) {
				rec.SetString("ELNAME", r.ElementNames[i])
			}
			setColumns(rec, columns, rows[i])
			rec.SetInt("DOMAIN_ID", did)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t.finish(), nil
}
