package builder

import (
	"math"

	"github.com/hsnony97-cyber/Load-Ext/internal/domain"
	"github.com/hsnony97-cyber/Load-Ext/internal/model"
	"github.com/hsnony97-cyber/Load-Ext/pkg/nh5"
)

// AngularFrequency returns the signed square root of an eigenvalue.
func AngularFrequency(eigen float64) float64 {
	omega := math.Sqrt(math.Abs(eigen))
	if eigen < 0 {
		return -omega
	}
	return omega
}

// CyclicFrequency returns |omega| / 2π.
func CyclicFrequency(omega float64) float64 {
	return math.Abs(omega) / (2 * math.Pi)
}

// Eigenvalue builds RESULT/SUMMARY/EIGENVALUE, one row per mode. Mode i of
// a subcase shares its domain with step i of that subcase's eigenvectors.
func Eigenvalue(reg *domain.Registry, results map[int64]*model.EigenvalueResult) (*Table, error) {
	if len(results) == 0 {
		return nil, nil
	}
	t := newTable(nh5.EigenvaluePath, nh5.Eigenvalue)
	for _, sc := range model.Subcases(results) {
		r := results[sc]
		if r == nil {
			continue
		}
		for i, eigen := range r.Eigenvalues {
			did := reg.GetOrCreate(sc, int64(i), r)
			omega := AngularFrequency(eigen)

			rec := t.newRecord()
			rec.SetInt("MODE", at(r.Modes, i, int64(i+1)))
			rec.SetInt("ORDER", at(r.Orders, i, int64(i+1)))
			rec.SetFloat("EIGEN", eigen)
			rec.SetFloat("OMEGA", omega)
			rec.SetFloat("FREQ", CyclicFrequency(omega))
			rec.SetFloat("MASS", at(r.GeneralizedMass, i, 0))
			rec.SetFloat("STIFF", at(r.GeneralizedStiffness, i, 0))
			rec.SetInt("RESFLG", at(r.ResFlags, i, 0))
			rec.SetInt("FLDFLG", at(r.FldFlags, i, 0))
			rec.SetInt("DOMAIN_ID", did)
			t.Index.Add(did, 1)
		}
	}
	return t.finish(), nil
}

func at[T any](s []T, i int, def T) T {
	if i < len(s) {
		return s[i]
	}
	return def
}
