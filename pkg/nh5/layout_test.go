package nh5

import (
	"errors"
	"strings"
	"testing"
)

func TestLayoutSizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		layout *Layout
		want   int
	}{
		{Index, 24},
		{Domain, 14 * 8},
		{Nodal, 8 * 8},
		{PlateCenter, 10 * 8},
		{PlateCorner, 7*8 + 4},
		{GridForce, 9*8 + 8},
		{SolidSample, 7 * 8},
		{HexaStress, 3*8 + 4 + 9*56 + 8},
		{TetraStress, 3*8 + 4 + 5*56 + 8},
		{Grid, 9 * 8},
		{CHexa, 23 * 8},
		{PCompPly, 3*8 + 4},
		{PComp, 8*8 + 8 + MaxPlies*28 + 8},
		{PBush, 20 * 8},
	}
	for _, tt := range tests {
		if got := tt.layout.Size(); got != tt.want {
			t.Fatalf("%s size: got %d want %d", tt.layout.Name, got, tt.want)
		}
	}
}

func TestResultLayoutsEndWithDomainID(t *testing.T) {
	t.Parallel()

	for _, l := range Layouts() {
		switch l.Name {
		case "INDEX", "DOMAINS", "SOLID_SAMPLE", "PCOMP_PLY":
			continue
		}
		last := l.Fields[len(l.Fields)-1]
		if last.Name != "DOMAIN_ID" || last.Kind != KindInt {
			t.Fatalf("%s: last field got %s want DOMAIN_ID", l.Name, last.Descr())
		}
	}
}

func TestLookupOffsets(t *testing.T) {
	t.Parallel()

	f, off, ok := PlateCorner.Lookup("GRID")
	if !ok {
		t.Fatalf("GRID not found")
	}
	if off != 12 || f.Kind != KindInt {
		t.Fatalf("GRID: got offset %d kind %d, want 12 int", off, f.Kind)
	}
	if _, _, ok := PlateCorner.Lookup("NOPE"); ok {
		t.Fatalf("unexpected field NOPE")
	}
	_, off, _ = HexaStress.Lookup("SS")
	if off != 28 {
		t.Fatalf("SS offset: got %d want 28", off)
	}
}

func TestDescr(t *testing.T) {
	t.Parallel()

	got := Grid.Descr()
	want := "ID:<i8,CP:<i8,X:<f8(3),CD:<i8,PS:<i8,SEID:<i8,DOMAIN_ID:<i8"
	if got != want {
		t.Fatalf("GRID descr:\n got %s\nwant %s", got, want)
	}
	if d := PComp.Descr(); !strings.Contains(d, "PLY:{MID:<i8,T:<f8,THETA:<f8,SOUT:S4}(200)") {
		t.Fatalf("PCOMP descr missing nested ply: %s", d)
	}
}

func TestLookupLayout(t *testing.T) {
	t.Parallel()

	l, err := LookupLayout(" hexa_stress ")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if l != HexaStress {
		t.Fatalf("got %s want HEXA_STRESS", l.Name)
	}
	if _, err := LookupLayout("CELAS1"); !errors.Is(err, ErrUnknownLayout) {
		t.Fatalf("got %v want ErrUnknownLayout", err)
	}
}

func TestNewLayoutPanicsOnDuplicateField(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	NewLayout("BROKEN", 1, I8("A"), F8("A"))
}

func TestPaths(t *testing.T) {
	t.Parallel()

	tests := []struct{ got, want string }{
		{NodalPath("displacement"), "/NASTRAN/RESULT/NODAL/DISPLACEMENT"},
		{ElementalPath(CategoryStress, "QUAD4_CN"), "/NASTRAN/RESULT/ELEMENTAL/STRESS/QUAD4_CN"},
		{ElementPath("CBAR"), "/NASTRAN/INPUT/ELEMENT/CBAR"},
		{IndexPath(GridPath), "/INDEX/NASTRAN/INPUT/NODE/GRID"},
		{PropertyPath("PSHELL"), "/NASTRAN/INPUT/PROPERTY/PSHELL"},
		{MaterialPath("MAT8"), "/NASTRAN/INPUT/MATERIAL/MAT8"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Fatalf("path: got %s want %s", tt.got, tt.want)
		}
	}

	parent, name := SplitPath(EigenvaluePath)
	if parent != "/NASTRAN/RESULT/SUMMARY" || name != "EIGENVALUE" {
		t.Fatalf("split: got %s %s", parent, name)
	}
	parent, name = SplitPath("/NASTRAN")
	if parent != "/" || name != "NASTRAN" {
		t.Fatalf("split root: got %s %s", parent, name)
	}
}
