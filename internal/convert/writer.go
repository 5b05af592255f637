package convert

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/hsnony97-cyber/Load-Ext/internal/builder"
	"github.com/hsnony97-cyber/Load-Ext/internal/container"
	"github.com/hsnony97-cyber/Load-Ext/internal/domain"
	"github.com/hsnony97-cyber/Load-Ext/internal/model"
	"github.com/hsnony97-cyber/Load-Ext/pkg/nh5"
)

type writer struct {
	m        *model.Model
	b        container.Backend
	reg      *domain.Registry
	progress Progress
	sum      Summary
}

// nodalCategories lists the nodal result tables in write order.
func nodalCategories(r *model.Results) []struct {
	name    string
	results map[int64]*model.NodalResult
} {
	return []struct {
		name    string
		results map[int64]*model.NodalResult
	}{
		{"DISPLACEMENT", r.Displacements},
		{"EIGENVECTOR", r.Eigenvectors},
		{"SPC_FORCE", r.SPCForces},
		{"MPC_FORCE", r.MPCForces},
		{"VELOCITY", r.Velocities},
		{"ACCELERATION", r.Accelerations},
		{"APPLIED_LOAD", r.AppliedLoads},
	}
}

func (w *writer) run() error {
	res := &w.m.Results

	if err := w.b.SetRootAttribute(nh5.Root, nh5.Attr{Name: nh5.SchemaVersionAttr, Value: nh5.SchemaVersion}); err != nil {
		return fmt.Errorf("schema version: %w", err)
	}

	// Input.
	if err := w.plain(nh5.InputDomainsPath, nh5.Domain, domain.ModelTable()); err != nil {
		return err
	}
	grids, err := builder.Grids(w.m.Grids)
	if err != nil {
		return err
	}
	if err := w.table(grids); err != nil {
		return err
	}
	if err := w.tables(builder.Elements(w.m.Elements, w.sum.Skipped)); err != nil {
		return err
	}
	if err := w.tables(builder.Properties(w.m.Properties, w.sum.Skipped)); err != nil {
		return err
	}
	if err := w.tables(builder.Materials(w.m.Materials, w.sum.Skipped)); err != nil {
		return err
	}
	for _, card := range slices.Sorted(maps.Keys(w.sum.Skipped)) {
		w.progress.printf("INPUT: skipped %d unsupported %s card(s)", w.sum.Skipped[card], card)
	}

	// Nodal results.
	for _, c := range nodalCategories(res) {
		err := w.result("Nodal/"+c.name, len(c.results), func() (*builder.Table, error) {
			return builder.Nodal(w.reg, c.name, c.results)
		})
		if err != nil {
			return err
		}
	}
	err = w.result("Nodal/GRID_FORCE", len(res.GridPointForces), func() (*builder.Table, error) {
		return builder.GridForce(w.reg, res.GridPointForces)
	})
	if err != nil {
		return err
	}

	// Elemental stress and strain.
	for _, c := range []struct {
		category string
		results  *model.ElementResults
	}{
		{nh5.CategoryStress, &res.Stress},
		{nh5.CategoryStrain, &res.Strain},
	} {
		if err := w.elemental(c.category, c.results); err != nil {
			return err
		}
	}

	// Element forces.
	if err := w.forces(&res.Force); err != nil {
		return err
	}

	err = w.result("Summary/EIGENVALUE", len(res.Eigenvalues), func() (*builder.Table, error) {
		return builder.Eigenvalue(w.reg, res.Eigenvalues)
	})
	if err != nil {
		return err
	}

	w.progress.printf("RESULT/DOMAINS: %d domain(s)", w.reg.Len())
	if w.reg.Len() == 0 {
		return nil
	}
	return w.plain(nh5.ResultDomainsPath, nh5.Domain, w.reg.Table())
}

func (w *writer) elemental(category string, r *model.ElementResults) error {
	label := func(elem string) string {
		return strings.ToLower(category) + "/" + elem
	}
	plates := []struct {
		elem    string
		results map[int64]*model.ElementResult
	}{
		{"QUAD4", r.Quad4},
		{"TRIA3", r.Tria3},
	}
	for _, p := range plates {
		err := w.result(label(p.elem), len(p.results), func() (*builder.Table, error) {
			return builder.PlateCenter(w.reg, category, p.elem, p.results)
		})
		if err != nil {
			return err
		}
	}
	for _, p := range plates {
		if !builder.HasCorners(p.results) {
			continue
		}
		err := w.result(label(p.elem+"_CN"), len(p.results), func() (*builder.Table, error) {
			return builder.PlateCorner(w.reg, category, p.elem, p.results)
		})
		if err != nil {
			return err
		}
	}

	lines := []struct {
		elem    string
		kind    builder.LineKind
		results map[int64]*model.ElementResult
	}{
		{"BAR", builder.BarStress, r.Bar},
		{"ROD", builder.RodStress, r.Rod},
		{"CONROD", builder.RodStress, r.Conrod},
		{"BUSH", builder.BushStress, r.Bush},
	}
	for _, l := range lines {
		err := w.result(label(l.elem), len(l.results), func() (*builder.Table, error) {
			return builder.Line(w.reg, nh5.ElementalPath(category, l.elem), l.kind, l.results)
		})
		if err != nil {
			return err
		}
	}

	err := w.result(label("BEAM"), len(r.Beam), func() (*builder.Table, error) {
		return builder.BeamStress(w.reg, category, r.Beam)
	})
	if err != nil {
		return err
	}

	solids := []struct {
		kind    builder.SolidKind
		results map[int64]*model.ElementResult
	}{
		{builder.Hexa, r.Hexa},
		{builder.Penta, r.Penta},
		{builder.Tetra, r.Tetra},
	}
	for _, s := range solids {
		err := w.result(label(s.kind.Name), len(s.results), func() (*builder.Table, error) {
			return builder.Solid(w.reg, category, s.kind, s.results)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) forces(r *model.ElementForces) error {
	label := func(elem string) string { return "force/" + elem }
	lines := []struct {
		elem    string
		kind    builder.LineKind
		results map[int64]*model.ElementResult
	}{
		{"BAR", builder.BarForce, r.Bar},
		{"ROD", builder.RodForce, r.Rod},
		{"CONROD", builder.RodForce, r.Conrod},
		{"BUSH", builder.BushForce, r.Bush},
	}
	for _, l := range lines {
		err := w.result(label(l.elem), len(l.results), func() (*builder.Table, error) {
			return builder.Line(w.reg, nh5.ElementalPath(nh5.CategoryElementForce, l.elem), l.kind, l.results)
		})
		if err != nil {
			return err
		}
	}
	for _, p := range []struct {
		elem    string
		results map[int64]*model.ElementResult
	}{
		{"QUAD4", r.Quad4},
		{"TRIA3", r.Tria3},
	} {
		err := w.result(label(p.elem), len(p.results), func() (*builder.Table, error) {
			return builder.PlateForceTable(w.reg, p.elem, p.results)
		})
		if err != nil {
			return err
		}
	}
	return w.result(label("BEAM"), len(r.Beam), func() (*builder.Table, error) {
		return builder.BeamForce(w.reg, r.Beam)
	})
}

// result builds and writes one result table. Categories without load cases
// are skipped before building.
func (w *writer) result(label string, subcases int, build func() (*builder.Table, error)) error {
	if subcases == 0 {
		return nil
	}
	w.progress.printf("%s: %d subcase(s)", label, subcases)
	t, err := build()
	if err != nil {
		return err
	}
	return w.table(t)
}

func (w *writer) tables(ts []*builder.Table, err error) error {
	if err != nil {
		return err
	}
	for _, t := range ts {
		if err := w.table(t); err != nil {
			return err
		}
	}
	return nil
}

// table writes t and its index. Empty tables write nothing.
func (w *writer) table(t *builder.Table) error {
	if t.Empty() {
		return nil
	}
	data, err := nh5.Encode(t.Layout, t.Records)
	if err != nil {
		return fmt.Errorf("%s: %w", t.Path, err)
	}
	if err := w.b.WriteTable(t.Path, t.Layout, data, t.Len(), nh5.TableAttrs(t.Layout)); err != nil {
		return fmt.Errorf("%s: %w", t.Path, err)
	}

	idx := t.Index.Records()
	idxData, err := nh5.Encode(nh5.Index, idx)
	if err != nil {
		return fmt.Errorf("%s: %w", nh5.IndexPath(t.Path), err)
	}
	if err := w.b.WriteTable(nh5.IndexPath(t.Path), nh5.Index, idxData, len(idx), nh5.TableAttrs(nh5.Index)); err != nil {
		return fmt.Errorf("%s: %w", nh5.IndexPath(t.Path), err)
	}

	w.sum.Tables = append(w.sum.Tables, TableInfo{
		Path:    t.Path,
		Layout:  t.Layout.Name,
		Records: t.Len(),
		Index:   len(idx),
	})
	return nil
}

// plain writes a table that has no index mirror.
func (w *writer) plain(path string, l *nh5.Layout, recs []nh5.Record) error {
	data, err := nh5.Encode(l, recs)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := w.b.WriteTable(path, l, data, len(recs), nh5.TableAttrs(l)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	w.sum.Tables = append(w.sum.Tables, TableInfo{Path: path, Layout: l.Name, Records: len(recs)})
	return nil
}
