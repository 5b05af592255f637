package builder

import (
	"fmt"
	"strings"

	"github.com/hsnony97-cyber/Load-Ext/internal/model"
	"github.com/hsnony97-cyber/Load-Ext/pkg/nh5"
)

// Skipped counts input cards without a packing rule, by card name.
type Skipped map[string]int

func (s Skipped) add(typ string) {
	s[strings.ToUpper(typ)]++
}

// inputTables collects the tables of one input category in a fixed order.
type inputTables struct {
	order  []string
	tables map[string]*Table
}

func newInputTables(path func(string) string, layouts ...*nh5.Layout) *inputTables {
	it := &inputTables{tables: make(map[string]*Table, len(layouts))}
	for _, l := range layouts {
		it.order = append(it.order, l.Name)
		it.tables[l.Name] = newTable(path(l.Name), l)
	}
	return it
}

func (it *inputTables) record(l *nh5.Layout) nh5.Record {
	return it.tables[l.Name].newRecord()
}

// finish stamps the model domain and the single index run on every
// non-empty table.
func (it *inputTables) finish() []*Table {
	var out []*Table
	for _, name := range it.order {
		t := it.tables[name]
		if t.Empty() {
			continue
		}
		for _, rec := range t.Records {
			rec.SetInt("DOMAIN_ID", nh5.ModelDomainID)
		}
		t.Index.Add(nh5.ModelDomainID, t.Len())
		out = append(out, t)
	}
	return out
}

// Grids builds INPUT/NODE/GRID.
func Grids(grids []model.Grid) (*Table, error) {
	if len(grids) == 0 {
		return nil, nil
	}
	t := newTable(nh5.GridPath, nh5.Grid)
	for _, g := range grids {
		rec := t.newRecord()
		rec.SetInt("ID", g.ID)
		rec.SetInt("CP", g.CP)
		if err := rec.SetFloats("X", g.X[:]); err != nil {
			return nil, err
		}
		rec.SetInt("CD", g.CD)
		rec.SetInt("PS", g.PS)
		rec.SetInt("SEID", g.SEID)
		rec.SetInt("DOMAIN_ID", nh5.ModelDomainID)
	}
	t.Index.Add(nh5.ModelDomainID, t.Len())
	return t, nil
}

// Elements builds INPUT/ELEMENT/<card> tables. Unsupported cards are
// counted in skipped and never fail the category.
func Elements(elems []model.Element, skipped Skipped) ([]*Table, error) {
	if len(elems) == 0 {
		return nil, nil
	}
	it := newInputTables(nh5.ElementPath,
		nh5.CQuad4, nh5.CTria3, nh5.CBar, nh5.CBeam, nh5.CRod,
		nh5.Conrod, nh5.CBush, nh5.CHexa, nh5.CPenta, nh5.CTetra,
	)
	for _, e := range elems {
		if err := packElement(it, e, skipped); err != nil {
			return nil, fmt.Errorf("%s: %w", nh5.ElementPath(e.ElementType()), err)
		}
	}
	return it.finish(), nil
}

func packElement(it *inputTables, e model.Element, skipped Skipped) error {
	switch e := e.(type) {
	case model.CQuad4:
		rec := it.record(nh5.CQuad4)
		rec.SetInt("EID", e.EID)
		rec.SetInt("PID", e.PID)
		shell(rec, e.Theta, e.ZOffs, e.TFlag, e.MCID)
		if err := rec.SetInts("G", e.Nodes[:]); err != nil {
			return err
		}
		return rec.SetFloats("T", e.T[:])
	case model.CTria3:
		rec := it.record(nh5.CTria3)
		rec.SetInt("EID", e.EID)
		rec.SetInt("PID", e.PID)
		shell(rec, e.Theta, e.ZOffs, e.TFlag, e.MCID)
		if err := rec.SetInts("G", e.Nodes[:]); err != nil {
			return err
		}
		return rec.SetFloats("T", e.T[:])
	case model.CBar:
		rec := it.record(nh5.CBar)
		rec.SetInt("EID", e.EID)
		rec.SetInt("PID", e.PID)
		rec.SetInt("GA", e.GA)
		rec.SetInt("GB", e.GB)
		rec.SetInt("FLAG", e.Flag)
		rec.SetInt("GO", e.G0)
		rec.SetInt("PA", e.PA)
		rec.SetInt("PB", e.PB)
		return setVectors(rec, map[string][]float64{"X": e.X[:], "WA": e.WA[:], "WB": e.WB[:]})
	case model.CBeam:
		rec := it.record(nh5.CBeam)
		rec.SetInt("EID", e.EID)
		rec.SetInt("PID", e.PID)
		rec.SetInt("GA", e.GA)
		rec.SetInt("GB", e.GB)
		rec.SetInt("SA", e.SA)
		rec.SetInt("SB", e.SB)
		rec.SetInt("G0", e.G0)
		rec.SetInt("F", e.F)
		rec.SetInt("PA", e.PA)
		rec.SetInt("PB", e.PB)
		return setVectors(rec, map[string][]float64{"X": e.X[:], "WA": e.WA[:], "WB": e.WB[:]})
	case model.CRod:
		rec := it.record(nh5.CRod)
		rec.SetInt("EID", e.EID)
		rec.SetInt("PID", e.PID)
		return rec.SetInts("G", e.Nodes[:])
	case model.Conrod:
		rec := it.record(nh5.Conrod)
		rec.SetInt("EID", e.EID)
		rec.SetInt("MID", e.MID)
		rec.SetFloat("A", e.A)
		rec.SetFloat("J", e.J)
		rec.SetFloat("C", e.C)
		rec.SetFloat("NSM", e.NSM)
		return rec.SetInts("G", e.Nodes[:])
	case model.CBush:
		rec := it.record(nh5.CBush)
		rec.SetInt("EID", e.EID)
		rec.SetInt("PID", e.PID)
		rec.SetInt("CID", e.CID)
		rec.SetFloat("S", e.S)
		rec.SetInt("OCID", e.OCID)
		rec.SetInt("FLAG", e.Flag)
		if err := rec.SetInts("G", e.Nodes[:]); err != nil {
			return err
		}
		return setVectors(rec, map[string][]float64{"S1": e.S1[:], "X": e.X[:]})
	case model.CHexa:
		return solidElement(it.record(nh5.CHexa), e.Solid)
	case model.CPenta:
		return solidElement(it.record(nh5.CPenta), e.Solid)
	case model.CTetra:
		return solidElement(it.record(nh5.CTetra), e.Solid)
	case model.Unsupported:
		skipped.add(e.Type)
		return nil
	default:
		skipped.add(e.ElementType())
		return nil
	}
}

func shell(rec nh5.Record, theta, zoffs float64, tflag, mcid int64) {
	rec.SetFloat("THETA", theta)
	rec.SetFloat("ZOFFS", zoffs)
	rec.SetInt("TFLAG", tflag)
	rec.SetInt("MCID", mcid)
}

func setVectors(rec nh5.Record, vs map[string][]float64) error {
	for name, v := range vs {
		if err := rec.SetFloats(name, v); err != nil {
			return err
		}
	}
	return nil
}

func solidElement(rec nh5.Record, s model.Solid) error {
	rec.SetInt("EID", s.EID)
	rec.SetInt("PID", s.PID)
	return rec.SetInts("G", s.Nodes)
}

// unsetMID is written for optional material ids the card leaves blank.
const unsetMID int64 = -1

func optionalMID(p *int64) int64 {
	if p == nil {
		return unsetMID
	}
	return *p
}

// pcompFailureTheories maps PCOMP FT names to their stored codes.
var pcompFailureTheories = map[string]int64{
	"HILL": 1,
	"HOFF": 2,
	"TSAI": 3,
	"STRN": 4,
}

// Properties builds INPUT/PROPERTY/<card> tables.
func Properties(props []model.Property, skipped Skipped) ([]*Table, error) {
	if len(props) == 0 {
		return nil, nil
	}
	it := newInputTables(nh5.PropertyPath,
		nh5.PShell, nh5.PComp, nh5.PRod, nh5.PBar, nh5.PBush, nh5.PSolid,
	)
	for _, p := range props {
		if err := packProperty(it, p, skipped); err != nil {
			return nil, fmt.Errorf("%s: %w", nh5.PropertyPath(p.PropertyType()), err)
		}
	}
	return it.finish(), nil
}

func packProperty(it *inputTables, p model.Property, skipped Skipped) error {
	switch p := p.(type) {
	case model.PShell:
		rec := it.record(nh5.PShell)
		rec.SetInt("PID", p.PID)
		rec.SetInt("MID1", p.MID1)
		rec.SetFloat("T", p.T)
		rec.SetInt("MID2", optionalMID(p.MID2))
		rec.SetFloat("BK", p.BK)
		rec.SetInt("MID3", optionalMID(p.MID3))
		rec.SetFloat("TS", p.TS)
		rec.SetFloat("NSM", p.NSM)
		rec.SetFloat("Z1", p.Z1)
		rec.SetFloat("Z2", p.Z2)
		rec.SetInt("MID4", optionalMID(p.MID4))
	case model.PComp:
		if len(p.Plies) > nh5.MaxPlies {
			return fmt.Errorf("%w: PCOMP %d has %d plies, limit %d", nh5.ErrCapacityExceeded, p.PID, len(p.Plies), nh5.MaxPlies)
		}
		rec := it.record(nh5.PComp)
		rec.SetInt("PID", p.PID)
		rec.SetInt("NPLIES", int64(len(p.Plies)))
		rec.SetFloat("Z0", p.Z0)
		rec.SetFloat("NSM", p.NSM)
		rec.SetFloat("SB", p.SB)
		rec.SetInt("FT", pcompFailureTheories[strings.ToUpper(p.FT)])
		rec.SetFloat("TREF", p.TRef)
		rec.SetFloat("GE", p.GE)
		rec.SetString("LAM", p.Lam)
		for i, ply := range p.Plies {
			pr := rec.Elem("PLY", i)
			pr.SetInt("MID", ply.MID)
			pr.SetFloat("T", ply.T)
			pr.SetFloat("THETA", ply.Theta)
			pr.SetString("SOUT", ply.SOut)
		}
	case model.PRod:
		rec := it.record(nh5.PRod)
		rec.SetInt("PID", p.PID)
		rec.SetInt("MID", p.MID)
		rec.SetFloat("A", p.A)
		rec.SetFloat("J", p.J)
		rec.SetFloat("C", p.C)
		rec.SetFloat("NSM", p.NSM)
	case model.PBar:
		rec := it.record(nh5.PBar)
		rec.SetInt("PID", p.PID)
		rec.SetInt("MID", p.MID)
		setFloats(rec, map[string]float64{
			"A": p.A, "I1": p.I1, "I2": p.I2, "J": p.J, "NSM": p.NSM,
			"C1": p.C1, "C2": p.C2, "D1": p.D1, "D2": p.D2,
			"E1": p.E1, "E2": p.E2, "F1": p.F1, "F2": p.F2,
			"K1": p.K1, "K2": p.K2, "I12": p.I12,
		})
	case model.PBush:
		rec := it.record(nh5.PBush)
		rec.SetInt("PID", p.PID)
		return setVectors(rec, map[string][]float64{"K": p.K, "B": p.B, "GE": p.GE})
	case model.PSolid:
		rec := it.record(nh5.PSolid)
		rec.SetInt("PID", p.PID)
		rec.SetInt("MID", p.MID)
		rec.SetInt("CORDM", p.CordM)
		rec.SetInt("IN", p.In)
		rec.SetInt("STRESS", p.Stress)
		rec.SetInt("ISOP", p.ISOP)
		rec.SetString("FCTN", p.FCTN)
	case model.Unsupported:
		skipped.add(p.Type)
	default:
		skipped.add(p.PropertyType())
	}
	return nil
}

// Materials builds INPUT/MATERIAL/<card> tables.
func Materials(mats []model.Material, skipped Skipped) ([]*Table, error) {
	if len(mats) == 0 {
		return nil, nil
	}
	it := newInputTables(nh5.MaterialPath, nh5.Mat1, nh5.Mat2, nh5.Mat8)
	for _, m := range mats {
		switch m := m.(type) {
		case model.Mat1:
			rec := it.record(nh5.Mat1)
			rec.SetInt("MID", m.MID)
			rec.SetInt("MCSID", m.MCSID)
			setFloats(rec, map[string]float64{
				"E": m.E, "G": m.G, "NU": m.NU, "RHO": m.Rho, "A": m.A,
				"TREF": m.TRef, "GE": m.GE, "ST": m.ST, "SC": m.SC, "SS": m.SS,
			})
		case model.Mat2:
			rec := it.record(nh5.Mat2)
			rec.SetInt("MID", m.MID)
			rec.SetInt("MCSID", m.MCSID)
			setFloats(rec, map[string]float64{
				"G11": m.G11, "G12": m.G12, "G13": m.G13, "G22": m.G22, "G23": m.G23, "G33": m.G33,
				"RHO": m.Rho, "A1": m.A1, "A2": m.A2, "A3": m.A3, "TREF": m.TRef, "GE": m.GE,
				"ST": m.ST, "SC": m.SC, "SS": m.SS,
			})
		case model.Mat8:
			rec := it.record(nh5.Mat8)
			rec.SetInt("MID", m.MID)
			setFloats(rec, map[string]float64{
				"E1": m.E1, "E2": m.E2, "NU12": m.NU12, "G12": m.G12, "G1Z": m.G1Z, "G2Z": m.G2Z,
				"RHO": m.Rho, "A1": m.A1, "A2": m.A2, "TREF": m.TRef,
				"XT": m.Xt, "XC": m.Xc, "YT": m.Yt, "YC": m.Yc, "S": m.S,
				"GE": m.GE, "F12": m.F12, "STRN": m.Strn,
			})
		case model.Unsupported:
			skipped.add(m.Type)
		default:
			skipped.add(m.MaterialType())
		}
	}
	return it.finish(), nil
}

func setFloats(rec nh5.Record, vs map[string]float64) {
	for name, v := range vs {
		rec.SetFloat(name, v)
	}
}
