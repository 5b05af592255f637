// Package domain assigns dense domain ids to (subcase, step) keys.
package domain

import (
	"github.com/hsnony97-cyber/Load-Ext/internal/model"
	"github.com/hsnony97-cyber/Load-Ext/pkg/nh5"
)

// StepSource exposes the per-step metadata of a result object.
type StepSource interface {
	StepMeta() *model.Steps
}

// Domain is one (subcase, step) combination.
type Domain struct {
	ID       int64
	Subcase  int64
	Step     int64
	Kind     Kind
	Mode     int64
	Value    float64 // time, frequency or real eigenvalue
	EigenImg float64
}

type key struct {
	subcase int64
	step    int64
}

// Registry hands out domain ids in first-seen order. It is owned by one
// conversion and is not safe for concurrent use.
type Registry struct {
	// SOL is used when a result carries neither an analysis code nor its own
	// solution sequence.
	SOL int64

	ids     map[key]int64
	domains []Domain
}

// NewRegistry returns an empty registry for a model run with solution
// sequence sol.
func NewRegistry(sol int64) *Registry {
	return &Registry{SOL: sol, ids: make(map[key]int64)}
}

// GetOrCreate returns the id of (subcase, step), creating the domain from
// src's metadata on first use.
func (r *Registry) GetOrCreate(subcase, step int64, src StepSource) int64 {
	k := key{subcase: subcase, step: step}
	if id, ok := r.ids[k]; ok {
		return id
	}
	if r.ids == nil {
		r.ids = make(map[key]int64)
	}

	d := Domain{
		ID:      int64(len(r.domains)) + 1,
		Subcase: subcase,
		Step:    step,
		Kind:    Static,
	}
	if src != nil {
		if meta := src.StepMeta(); meta != nil {
			fill(&d, meta, r.SOL)
		}
	}
	r.ids[k] = d.ID
	r.domains = append(r.domains, d)
	return d.ID
}

// Peek returns the id GetOrCreate would return for (subcase, step) without
// registering a new domain.
func (r *Registry) Peek(subcase, step int64) int64 {
	if id, ok := r.ids[key{subcase: subcase, step: step}]; ok {
		return id
	}
	return int64(len(r.domains)) + 1
}

func fill(d *Domain, meta *model.Steps, fallbackSOL int64) {
	sol := meta.SOL
	if sol == 0 {
		sol = fallbackSOL
	}
	d.Kind = KindOf(meta.AnalysisCode, sol)

	i := int(d.Step)
	if i < 0 {
		return
	}
	if i < len(meta.Modes) {
		d.Mode = meta.Modes[i]
	}
	switch {
	case len(meta.Eigrs) > 0:
		if i < len(meta.Eigrs) {
			d.Value = meta.Eigrs[i]
		}
	case i < len(meta.Times):
		d.Value = meta.Times[i]
	}
	if d.Kind == ComplexEigen && i < len(meta.Eigis) {
		d.EigenImg = meta.Eigis[i]
	}
}

// Len returns the number of domains created so far.
func (r *Registry) Len() int { return len(r.domains) }

// Domains returns the domains in id order.
func (r *Registry) Domains() []Domain {
	out := make([]Domain, len(r.domains))
	copy(out, r.domains)
	return out
}

// Table materializes the domains as DOMAINS records in id order.
func (r *Registry) Table() []nh5.Record {
	out := make([]nh5.Record, len(r.domains))
	for i, d := range r.domains {
		rec := nh5.Domain.New()
		rec.SetInt("ID", d.ID)
		rec.SetInt("SUBCASE", d.Subcase)
		// STEP is reserved for nonlinear load steps and always written as 0.
		rec.SetInt("STEP", 0)
		rec.SetInt("ANALYSIS", int64(d.Kind))
		rec.SetFloat("TIME_FREQ_EIGR", d.Value)
		rec.SetFloat("EIGI", d.EigenImg)
		rec.SetInt("MODE", d.Mode)
		out[i] = rec
	}
	return out
}

// ModelTable returns the single INPUT/DOMAINS record describing the model
// level domain.
func ModelTable() []nh5.Record {
	rec := nh5.Domain.New()
	rec.SetInt("ID", nh5.ModelDomainID)
	return []nh5.Record{rec}
}
