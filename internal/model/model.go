// Package model holds the in-memory finite-element result model that the
// converter consumes: input geometry, properties and materials as tagged
// variants, and per-category result tables keyed by load case.
package model

import (
	"maps"
	"slices"
)

// Model is one parsed result file.
type Model struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// SOL is the declared solution sequence of the run.
	SOL int64 `json:"sol,omitempty" yaml:"sol,omitempty"`

	Grids      []Grid     `json:"grids,omitempty" yaml:"grids,omitempty"`
	Elements   []Element  `json:"-" yaml:"-"`
	Properties []Property `json:"-" yaml:"-"`
	Materials  []Material `json:"-" yaml:"-"`

	Results Results `json:"results" yaml:"results"`
}

// Steps carries the per-step metadata shared by every result object.
// Arrays are indexed by step; short or missing arrays mean "not reported".
type Steps struct {
	// AnalysisCode is the explicit analysis code of the result (0 when absent).
	AnalysisCode int64 `json:"analysis_code,omitempty" yaml:"analysis_code,omitempty"`
	// SOL is the solution sequence the result was produced by (0 when absent).
	SOL int64 `json:"sol,omitempty" yaml:"sol,omitempty"`

	Modes []int64   `json:"modes,omitempty" yaml:"modes,omitempty"`
	Eigrs []float64 `json:"eigrs,omitempty" yaml:"eigrs,omitempty"`
	Eigis []float64 `json:"eigis,omitempty" yaml:"eigis,omitempty"`
	Times []float64 `json:"times,omitempty" yaml:"times,omitempty"`
}

// StepMeta returns the step metadata. Result types embedding Steps satisfy
// domain.StepSource through it.
func (s *Steps) StepMeta() *Steps { return s }

// Subcases returns the keys of a load-case keyed map in ascending order.
func Subcases[V any](m map[int64]V) []int64 {
	return slices.Sorted(maps.Keys(m))
}

// Grid is a GRID point.
type Grid struct {
	ID   int64      `json:"id" yaml:"id"`
	CP   int64      `json:"cp,omitempty" yaml:"cp,omitempty"`
	X    [3]float64 `json:"x" yaml:"x"`
	CD   int64      `json:"cd,omitempty" yaml:"cd,omitempty"`
	PS   int64      `json:"ps,omitempty" yaml:"ps,omitempty"`
	SEID int64      `json:"seid,omitempty" yaml:"seid,omitempty"`
}
