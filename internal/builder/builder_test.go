package builder

import (
	"errors"
	"math"
	"testing"

	"github.com/hsnony97-cyber/Load-Ext/internal/domain"
	"github.com/hsnony97-cyber/Load-Ext/internal/model"
	"github.com/hsnony97-cyber/Load-Ext/pkg/nh5"
)

func steps(n, rows, cols int, base float64) [][][]float64 {
	out := make([][][]float64, n)
	for s := range out {
		out[s] = make([][]float64, rows)
		for r := range out[s] {
			out[s][r] = make([]float64, cols)
			for c := range out[s][r] {
				out[s][r][c] = base + float64(s*1000+r*10+c)
			}
		}
	}
	return out
}

func checkIndexTiles(t *testing.T, tbl *Table) {
	t.Helper()

	var pos int64
	for i, e := range tbl.Index.Entries() {
		if e.Position != pos {
			t.Fatalf("%s index %d: position %d want %d", tbl.Path, i, e.Position, pos)
		}
		pos += e.Length
	}
	if pos != int64(tbl.Len()) {
		t.Fatalf("%s index covers %d records, table has %d", tbl.Path, pos, tbl.Len())
	}
}

func TestNodalTwoSubcasesThreeSteps(t *testing.T) {
	t.Parallel()

	reg := domain.NewRegistry(101)
	nodes := []int64{1, 2, 3, 4, 5}
	results := map[int64]*model.NodalResult{
		20: {Nodes: nodes, Data: steps(3, 5, 6, 0)},
		10: {Nodes: nodes, Data: steps(3, 5, 6, 0)},
	}
	tbl, err := Nodal(reg, "displacement", results)
	if err != nil {
		t.Fatalf("nodal: %v", err)
	}
	if tbl.Path != "/NASTRAN/RESULT/NODAL/DISPLACEMENT" {
		t.Fatalf("path: got %s", tbl.Path)
	}
	if tbl.Len() != 30 {
		t.Fatalf("records: got %d want 30", tbl.Len())
	}
	if reg.Len() != 6 {
		t.Fatalf("domains: got %d want 6", reg.Len())
	}
	entries := tbl.Index.Entries()
	if len(entries) != 6 {
		t.Fatalf("index entries: got %d want 6", len(entries))
	}
	for i, e := range entries {
		if e.Position != int64(i*5) || e.Length != 5 || e.DomainID != int64(i+1) {
			t.Fatalf("entry %d: got %+v", i, e)
		}
	}
	// Subcase 10 is walked first.
	if reg.Domains()[0].Subcase != 10 {
		t.Fatalf("first domain subcase: got %d want 10", reg.Domains()[0].Subcase)
	}
	rec := tbl.Records[7] // step 1, node 3
	if rec.Int("ID") != 3 || rec.Float("RZ") != 1025 || rec.Int("DOMAIN_ID") != 2 {
		t.Fatalf("record 7: got ID=%d RZ=%v DOMAIN_ID=%d", rec.Int("ID"), rec.Float("RZ"), rec.Int("DOMAIN_ID"))
	}
}

func TestNodalMissingColumnsAndEmpty(t *testing.T) {
	t.Parallel()

	reg := domain.NewRegistry(0)
	tbl, err := Nodal(reg, "SPC_FORCE", map[int64]*model.NodalResult{
		1: {Nodes: []int64{9}, Data: [][][]float64{{{1, 2, 3}}}},
	})
	if err != nil {
		t.Fatalf("nodal: %v", err)
	}
	rec := tbl.Records[0]
	if rec.Float("Z") != 3 || rec.Float("RX") != 0 || rec.Float("RZ") != 0 {
		t.Fatalf("short row: got Z=%v RX=%v", rec.Float("Z"), rec.Float("RX"))
	}

	empty, err := Nodal(reg, "VELOCITY", nil)
	if err != nil || empty != nil {
		t.Fatalf("empty category: got %v, %v", empty, err)
	}

	_, err = Nodal(reg, "ACCELERATION", map[int64]*model.NodalResult{
		1: {Nodes: []int64{1, 2}, Data: [][][]float64{{{1}}}},
	})
	if !errors.Is(err, ErrLayoutMismatch) {
		t.Fatalf("row mismatch: got %v want ErrLayoutMismatch", err)
	}
}

func TestPlateCenterRoundTrip(t *testing.T) {
	t.Parallel()

	reg := domain.NewRegistry(101)
	top := []float64{-0.5, 11, 12, 13, 99}
	bottom := []float64{0.5, 21, 22, 23, 99}
	results := map[int64]*model.ElementResult{
		1: {
			NodesPerElement: 1,
			Elements:        []int64{100, 100},
			Data:            [][][]float64{{top, bottom}},
		},
	}
	tbl, err := PlateCenter(reg, nh5.CategoryStress, "QUAD4", results)
	if err != nil {
		t.Fatalf("plate center: %v", err)
	}
	if tbl.Len() != 1 {
		t.Fatalf("records: got %d want 1", tbl.Len())
	}
	rec := tbl.Records[0]
	want := map[string]float64{
		"FD1": -0.5, "X1": 11, "Y1": 12, "XY1": 13,
		"FD2": 0.5, "X2": 21, "Y2": 22, "XY2": 23,
	}
	for name, v := range want {
		if got := rec.Float(name); got != v {
			t.Fatalf("%s: got %v want %v", name, got, v)
		}
	}
	if rec.Int("EID") != 100 || rec.Int("DOMAIN_ID") != 1 {
		t.Fatalf("identity: got EID=%d DOMAIN_ID=%d", rec.Int("EID"), rec.Int("DOMAIN_ID"))
	}

	corners, err := PlateCorner(reg, nh5.CategoryStress, "QUAD4", results)
	if err != nil || corners != nil {
		t.Fatalf("center-only source must not yield corner table: %v, %v", corners, err)
	}
}

func quadWithCorners(elements ...int64) *model.ElementResult {
	const npe = 5
	r := &model.ElementResult{NodesPerElement: npe}
	for _, eid := range elements {
		for p := range npe {
			grid := int64(0)
			if p > 0 {
				grid = eid*10 + int64(p)
			}
			// top and bottom surface rows
			r.Elements = append(r.Elements, eid, eid)
			r.Grids = append(r.Grids, grid, grid)
		}
	}
	r.Data = steps(1, len(r.Elements), 4, 0)
	return r
}

func TestPlateCornerRows(t *testing.T) {
	t.Parallel()

	reg := domain.NewRegistry(101)
	results := map[int64]*model.ElementResult{1: quadWithCorners(7, 8)}

	center, err := PlateCenter(reg, nh5.CategoryStrain, "QUAD4", results)
	if err != nil {
		t.Fatalf("plate center: %v", err)
	}
	if center.Len() != 2 {
		t.Fatalf("center records: got %d want 2", center.Len())
	}
	// Element 8 starts at row 10: top row 10, bottom row 11.
	if got := center.Records[1].Float("X1"); got != 101 {
		t.Fatalf("element 8 X1: got %v want 101", got)
	}
	if got := center.Records[1].Float("X2"); got != 111 {
		t.Fatalf("element 8 X2: got %v want 111", got)
	}

	tbl, err := PlateCorner(reg, nh5.CategoryStrain, "QUAD4", results)
	if err != nil {
		t.Fatalf("plate corner: %v", err)
	}
	if tbl.Path != "/NASTRAN/RESULT/ELEMENTAL/STRAIN/QUAD4_CN" {
		t.Fatalf("path: got %s", tbl.Path)
	}
	if tbl.Len() != 20 {
		t.Fatalf("records: got %d want 10 per element", tbl.Len())
	}
	first := tbl.Records[0]
	if first.String("TERM") != "CEN/" || first.Int("GRID") != 0 {
		t.Fatalf("center row: got TERM=%q GRID=%d", first.String("TERM"), first.Int("GRID"))
	}
	corner := tbl.Records[3] // first corner, bottom surface
	if corner.String("TERM") != "CRN/" || corner.Int("GRID") != 71 || corner.Float("FD") != 30 {
		t.Fatalf("corner row: got TERM=%q GRID=%d FD=%v", corner.String("TERM"), corner.Int("GRID"), corner.Float("FD"))
	}
	if reg.Len() != 1 {
		t.Fatalf("center and corner tables share the domain: got %d domains", reg.Len())
	}
	checkIndexTiles(t, tbl)
}

func TestSolidSamplePoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind  SolidKind
		nodef int64
	}{
		{Hexa, 8},
		{Penta, 6},
		{Tetra, 4},
	}
	for _, tt := range tests {
		n := tt.kind.Samples
		r := &model.ElementResult{}
		for _, eid := range []int64{1, 2} {
			for j := range n {
				r.Elements = append(r.Elements, eid)
				r.Grids = append(r.Grids, int64(j))
			}
		}
		r.Data = steps(1, len(r.Elements), 6, 0)

		reg := domain.NewRegistry(101)
		tbl, err := Solid(reg, nh5.CategoryStress, tt.kind, map[int64]*model.ElementResult{1: r})
		if err != nil {
			t.Fatalf("%s: %v", tt.kind.Name, err)
		}
		if tbl.Len() != 2 {
			t.Fatalf("%s records: got %d want 2", tt.kind.Name, tbl.Len())
		}
		rec := tbl.Records[1]
		if got := rec.Int("NODEF"); got != tt.nodef {
			t.Fatalf("%s NODEF: got %d want %d", tt.kind.Name, got, tt.nodef)
		}
		if rec.String("CTYPE") != "GRID" || rec.Int("CID") != 0 {
			t.Fatalf("%s CTYPE/CID: got %q %d", tt.kind.Name, rec.String("CTYPE"), rec.Int("CID"))
		}
		f, _, _ := rec.Layout().Lookup("SS")
		if f.Len() != n {
			t.Fatalf("%s sample points: got %d want %d", tt.kind.Name, f.Len(), n)
		}
		last := rec.Elem("SS", n-1)
		row := float64((2*n - 1) * 10)
		if last.Int("GRID") != int64(n-1) || last.Float("X") != row || last.Float("TZX") != row+5 {
			t.Fatalf("%s last sample: got GRID=%d X=%v TZX=%v", tt.kind.Name, last.Int("GRID"), last.Float("X"), last.Float("TZX"))
		}
	}
}

func TestSolidRowCountMismatch(t *testing.T) {
	t.Parallel()

	r := &model.ElementResult{Elements: make([]int64, 8), Data: steps(1, 8, 6, 0)}
	_, err := Solid(domain.NewRegistry(0), nh5.CategoryStress, Hexa, map[int64]*model.ElementResult{1: r})
	if !errors.Is(err, ErrLayoutMismatch) {
		t.Fatalf("got %v want ErrLayoutMismatch", err)
	}
}

func TestEigenvalueFrequencies(t *testing.T) {
	t.Parallel()

	if got := AngularFrequency(-400); got != -20 {
		t.Fatalf("omega(-400): got %v want -20", got)
	}
	omega := 20.0
	want := omega / (2 * math.Pi)
	if got := CyclicFrequency(AngularFrequency(-400)); math.Abs(got-want) > 1e-12 {
		t.Fatalf("freq(-400): got %v want %v", got, want)
	}
	if got := AngularFrequency(100); got != 10 {
		t.Fatalf("omega(100): got %v want 10", got)
	}

	reg := domain.NewRegistry(103)
	vectors := map[int64]*model.NodalResult{
		1: {
			Steps: model.Steps{AnalysisCode: 2, Modes: []int64{1, 2}, Eigrs: []float64{-400, 100}},
			Nodes: []int64{1},
			Data:  steps(2, 1, 6, 0),
		},
	}
	if _, err := Nodal(reg, "EIGENVECTOR", vectors); err != nil {
		t.Fatalf("eigenvectors: %v", err)
	}
	tbl, err := Eigenvalue(reg, map[int64]*model.EigenvalueResult{
		1: {Modes: []int64{1, 2}, Eigenvalues: []float64{-400, 100}},
	})
	if err != nil {
		t.Fatalf("eigenvalue: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("eigenvalue rows must reuse eigenvector domains: got %d domains", reg.Len())
	}
	first := tbl.Records[0]
	if first.Float("OMEGA") != -20 || math.Abs(first.Float("FREQ")-want) > 1e-12 {
		t.Fatalf("mode 1: got OMEGA=%v FREQ=%v", first.Float("OMEGA"), first.Float("FREQ"))
	}
	if first.Float("MASS") != 0 || first.Float("STIFF") != 0 {
		t.Fatalf("missing participation data should be zero")
	}
	second := tbl.Records[1]
	if second.Float("OMEGA") != 10 || second.Int("DOMAIN_ID") != 2 || second.Int("ORDER") != 2 {
		t.Fatalf("mode 2: got OMEGA=%v DOMAIN_ID=%d ORDER=%d", second.Float("OMEGA"), second.Int("DOMAIN_ID"), second.Int("ORDER"))
	}
	checkIndexTiles(t, tbl)
}

func TestLineColumns(t *testing.T) {
	t.Parallel()

	reg := domain.NewRegistry(101)
	bar := &model.ElementResult{Elements: []int64{5, 6}, Data: steps(2, 2, 15, 0)}
	tbl, err := Line(reg, nh5.ElementalPath(nh5.CategoryStress, "BAR"), BarStress, map[int64]*model.ElementResult{1: bar})
	if err != nil {
		t.Fatalf("bar: %v", err)
	}
	if tbl.Len() != 4 {
		t.Fatalf("records: got %d want 4", tbl.Len())
	}
	rec := tbl.Records[3]
	if rec.Int("EID") != 6 || rec.Float("MSC") != 1024 || rec.Float("X1A") != 1010 {
		t.Fatalf("record 3: got EID=%d MSC=%v X1A=%v", rec.Int("EID"), rec.Float("MSC"), rec.Float("X1A"))
	}

	rod := &model.ElementResult{Elements: []int64{1}, Data: [][][]float64{{{7}}}}
	tbl, err = Line(reg, nh5.ElementalPath(nh5.CategoryElementForce, "ROD"), RodForce, map[int64]*model.ElementResult{1: rod})
	if err != nil {
		t.Fatalf("rod: %v", err)
	}
	if tbl.Records[0].Float("AF") != 7 || tbl.Records[0].Float("TRQ") != 0 {
		t.Fatalf("rod force: got AF=%v TRQ=%v", tbl.Records[0].Float("AF"), tbl.Records[0].Float("TRQ"))
	}
}

func TestPlateForceKeepsCenterRows(t *testing.T) {
	t.Parallel()

	r := &model.ElementResult{
		NodesPerElement: 5,
		Elements:        []int64{1, 1, 1, 1, 1, 2, 2, 2, 2, 2},
		Data:            steps(1, 10, 8, 0),
	}
	tbl, err := PlateForceTable(domain.NewRegistry(101), "QUAD4", map[int64]*model.ElementResult{1: r})
	if err != nil {
		t.Fatalf("plate force: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("records: got %d want 2", tbl.Len())
	}
	if got := tbl.Records[1].Float("MX"); got != 50 {
		t.Fatalf("element 2 MX: got %v want row 5", got)
	}
}

func TestBeamStationsAndForceEnds(t *testing.T) {
	t.Parallel()

	r := &model.ElementResult{
		Elements: []int64{3, 3, 3, 4, 4},
		Grids:    []int64{31, 0, 32, 41, 42},
		Stations: []float64{0, 0.5, 1, 0, 1},
		Data:     steps(1, 5, 8, 0),
	}
	results := map[int64]*model.ElementResult{1: r}
	reg := domain.NewRegistry(101)

	stress, err := BeamStress(reg, nh5.CategoryStress, results)
	if err != nil {
		t.Fatalf("beam stress: %v", err)
	}
	if stress.Len() != 5 {
		t.Fatalf("stress rows: got %d want 5", stress.Len())
	}
	if got := stress.Records[1]; got.Float("SD") != 0.5 || got.Float("MSC") != 17 {
		t.Fatalf("station row: got SD=%v MSC=%v", got.Float("SD"), got.Float("MSC"))
	}

	force, err := BeamForce(reg, results)
	if err != nil {
		t.Fatalf("beam force: %v", err)
	}
	if force.Len() != 2 {
		t.Fatalf("force rows: got %d want 2", force.Len())
	}
	rec := force.Records[0]
	if rec.Int("GRIDA") != 31 || rec.Int("GRIDB") != 32 || rec.Float("SDB") != 1 {
		t.Fatalf("ends: got GRIDA=%d GRIDB=%d SDB=%v", rec.Int("GRIDA"), rec.Int("GRIDB"), rec.Float("SDB"))
	}
	if rec.Float("BM1A") != 0 || rec.Float("BM1B") != 20 || rec.Float("WTRQB") != 26 {
		t.Fatalf("end values: got BM1A=%v BM1B=%v WTRQB=%v", rec.Float("BM1A"), rec.Float("BM1B"), rec.Float("WTRQB"))
	}
}

func TestGridForceElementName(t *testing.T) {
	t.Parallel()

	r := &model.GridForceResult{
		Nodes:        []int64{1, 1},
		Elements:     []int64{10, 0},
		ElementNames: []string{"QUAD4", "APP-LOAD"},
		Data:         steps(1, 2, 6, 0),
	}
	tbl, err := GridForce(domain.NewRegistry(101), map[int64]*model.GridForceResult{1: r})
	if err != nil {
		t.Fatalf("grid force: %v", err)
	}
	if got := tbl.Records[1].String("ELNAME"); got != "APP-LOAD" {
		t.Fatalf("ELNAME: got %q", got)
	}
	if got := tbl.Records[0].Float("M3"); got != 5 {
		t.Fatalf("M3: got %v want 5", got)
	}
}

func TestInputCards(t *testing.T) {
	t.Parallel()

	mid2 := int64(5)
	skipped := Skipped{}
	props, err := Properties([]model.Property{
		model.PShell{PID: 1, MID1: 2, T: 0.1, MID2: &mid2},
		model.Unsupported{Type: "PBEAML", ID: 9},
		model.PComp{PID: 3, FT: "hoff", Plies: []model.Ply{{MID: 1, T: 0.2, Theta: 45, SOut: "YES"}}},
	}, skipped)
	if err != nil {
		t.Fatalf("properties: %v", err)
	}
	if len(props) != 2 {
		t.Fatalf("property tables: got %d want 2", len(props))
	}
	pshell := props[0].Records[0]
	if pshell.Int("MID2") != 5 || pshell.Int("MID3") != -1 || pshell.Int("MID4") != -1 {
		t.Fatalf("PSHELL mids: got %d %d %d", pshell.Int("MID2"), pshell.Int("MID3"), pshell.Int("MID4"))
	}
	if pshell.Int("DOMAIN_ID") != 1 {
		t.Fatalf("input DOMAIN_ID: got %d", pshell.Int("DOMAIN_ID"))
	}
	pcomp := props[1].Records[0]
	if pcomp.Int("NPLIES") != 1 || pcomp.Int("FT") != 2 || pcomp.Elem("PLY", 0).String("SOUT") != "YES" {
		t.Fatalf("PCOMP: got NPLIES=%d FT=%d", pcomp.Int("NPLIES"), pcomp.Int("FT"))
	}
	if skipped["PBEAML"] != 1 {
		t.Fatalf("skipped: got %v", skipped)
	}

	plies := make([]model.Ply, nh5.MaxPlies+1)
	_, err = Properties([]model.Property{model.PComp{PID: 4, Plies: plies}}, Skipped{})
	if !errors.Is(err, nh5.ErrCapacityExceeded) {
		t.Fatalf("201 plies: got %v want ErrCapacityExceeded", err)
	}
}

func TestElementsSkipUnsupported(t *testing.T) {
	t.Parallel()

	skipped := Skipped{}
	tables, err := Elements([]model.Element{
		model.CQuad4{EID: 1, PID: 1, Nodes: [4]int64{1, 2, 3, 4}},
		model.Unsupported{Type: "CELAS1", ID: 2},
		model.CTetra{Solid: model.Solid{EID: 3, PID: 2, Nodes: []int64{1, 2, 3, 4}}},
		model.CQuad4{EID: 4, PID: 1, Nodes: [4]int64{2, 3, 4, 5}},
	}, skipped)
	if err != nil {
		t.Fatalf("elements: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("tables: got %d want 2", len(tables))
	}
	if tables[0].Path != "/NASTRAN/INPUT/ELEMENT/CQUAD4" || tables[0].Len() != 2 {
		t.Fatalf("CQUAD4 table: got %s with %d records", tables[0].Path, tables[0].Len())
	}
	tetra := tables[1].Records[0]
	if g := tetra.Ints("G"); g[3] != 4 || g[4] != 0 {
		t.Fatalf("CTETRA G: got %v", g)
	}
	if skipped["CELAS1"] != 1 {
		t.Fatalf("skipped: got %v", skipped)
	}
	entries := tables[0].Index.Entries()
	if len(entries) != 1 || entries[0].DomainID != 1 || entries[0].Length != 2 {
		t.Fatalf("input index: got %+v", entries)
	}

	_, err = Elements([]model.Element{model.CHexa{Solid: model.Solid{EID: 1, Nodes: make([]int64, 21)}}}, Skipped{})
	if !errors.Is(err, nh5.ErrCapacityExceeded) {
		t.Fatalf("CHEXA with 21 nodes: got %v", err)
	}
}

func TestGrids(t *testing.T) {
	t.Parallel()

	tbl, err := Grids([]model.Grid{{ID: 1, X: [3]float64{1, 2, 3}}, {ID: 2, CP: 5, CD: 6}})
	if err != nil {
		t.Fatalf("grids: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("records: got %d", tbl.Len())
	}
	if x := tbl.Records[0].Floats("X"); x[2] != 3 {
		t.Fatalf("X: got %v", x)
	}
	if tbl.Records[1].Int("CP") != 5 || tbl.Records[1].Int("CD") != 6 {
		t.Fatalf("CP/CD mismatch")
	}
	if empty, _ := Grids(nil); empty != nil {
		t.Fatalf("no grids should yield no table")
	}
}

func TestEmptyStepRegistersNoDomain(t *testing.T) {
	t.Parallel()

	reg := domain.NewRegistry(101)
	results := map[int64]*model.NodalResult{
		1: {Data: [][][]float64{{}}},
		2: {Nodes: []int64{4}, Data: steps(1, 1, 6, 0)},
	}
	tbl, err := Nodal(reg, "DISPLACEMENT", results)
	if err != nil {
		t.Fatalf("nodal: %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("domains: got %d want 1", reg.Len())
	}
	if d := reg.Domains()[0]; d.Subcase != 2 || d.ID != 1 {
		t.Fatalf("domain: got %+v want subcase 2 id 1", d)
	}
	if got := tbl.Records[0].Int("DOMAIN_ID"); got != 1 {
		t.Fatalf("DOMAIN_ID: got %d want 1", got)
	}
	checkIndexTiles(t, tbl)

	if tbl, err := Nodal(domain.NewRegistry(101), "VELOCITY", map[int64]*model.NodalResult{1: {Data: [][][]float64{{}}}}); err != nil || tbl != nil {
		t.Fatalf("all-empty result: got %v, %v want nil table", tbl, err)
	}
}
