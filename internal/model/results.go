package model

// Results groups every result category by load case (subcase id).
type Results struct {
	Displacements map[int64]*NodalResult `json:"displacements,omitempty" yaml:"displacements,omitempty"`
	Eigenvectors  map[int64]*NodalResult `json:"eigenvectors,omitempty" yaml:"eigenvectors,omitempty"`
	SPCForces     map[int64]*NodalResult `json:"spc_forces,omitempty" yaml:"spc_forces,omitempty"`
	MPCForces     map[int64]*NodalResult `json:"mpc_forces,omitempty" yaml:"mpc_forces,omitempty"`
	Velocities    map[int64]*NodalResult `json:"velocities,omitempty" yaml:"velocities,omitempty"`
	Accelerations map[int64]*NodalResult `json:"accelerations,omitempty" yaml:"accelerations,omitempty"`
	AppliedLoads  map[int64]*NodalResult `json:"applied_loads,omitempty" yaml:"applied_loads,omitempty"`

	GridPointForces map[int64]*GridForceResult `json:"grid_point_forces,omitempty" yaml:"grid_point_forces,omitempty"`

	Stress ElementResults `json:"stress" yaml:"stress"`
	Strain ElementResults `json:"strain" yaml:"strain"`
	Force  ElementForces  `json:"force" yaml:"force"`

	Eigenvalues map[int64]*EigenvalueResult `json:"eigenvalues,omitempty" yaml:"eigenvalues,omitempty"`
}

// ElementResults holds stress or strain tables per element family.
type ElementResults struct {
	Quad4  map[int64]*ElementResult `json:"quad4,omitempty" yaml:"quad4,omitempty"`
	Tria3  map[int64]*ElementResult `json:"tria3,omitempty" yaml:"tria3,omitempty"`
	Bar    map[int64]*ElementResult `json:"bar,omitempty" yaml:"bar,omitempty"`
	Rod    map[int64]*ElementResult `json:"rod,omitempty" yaml:"rod,omitempty"`
	Conrod map[int64]*ElementResult `json:"conrod,omitempty" yaml:"conrod,omitempty"`
	Bush   map[int64]*ElementResult `json:"bush,omitempty" yaml:"bush,omitempty"`
	Beam   map[int64]*ElementResult `json:"beam,omitempty" yaml:"beam,omitempty"`
	Hexa   map[int64]*ElementResult `json:"hexa,omitempty" yaml:"hexa,omitempty"`
	Penta  map[int64]*ElementResult `json:"penta,omitempty" yaml:"penta,omitempty"`
	Tetra  map[int64]*ElementResult `json:"tetra,omitempty" yaml:"tetra,omitempty"`
}

// ElementForces holds element force tables per element family.
type ElementForces struct {
	Bar    map[int64]*ElementResult `json:"bar,omitempty" yaml:"bar,omitempty"`
	Rod    map[int64]*ElementResult `json:"rod,omitempty" yaml:"rod,omitempty"`
	Conrod map[int64]*ElementResult `json:"conrod,omitempty" yaml:"conrod,omitempty"`
	Bush   map[int64]*ElementResult `json:"bush,omitempty" yaml:"bush,omitempty"`
	Quad4  map[int64]*ElementResult `json:"quad4,omitempty" yaml:"quad4,omitempty"`
	Tria3  map[int64]*ElementResult `json:"tria3,omitempty" yaml:"tria3,omitempty"`
	Beam   map[int64]*ElementResult `json:"beam,omitempty" yaml:"beam,omitempty"`
}

// NodalResult is a per-grid vector result: Data[step][node][component].
type NodalResult struct {
	Steps `yaml:",inline"`
	Nodes []int64       `json:"nodes" yaml:"nodes"`
	Data  [][][]float64 `json:"data" yaml:"data"`
}

// ElementResult is a per-row element result: Data[step][row][component].
//
// Elements holds the element id of every row. Families with several rows
// per element (plates, solids, beams) also carry the grid of every row in
// Grids (0 for the element center). Beam results carry the station distance
// of every row in Stations.
type ElementResult struct {
	Steps `yaml:",inline"`
	// NodesPerElement is the number of sample points per plate element
	// (1 for center-only output, 5 for QUAD4 center plus corners).
	NodesPerElement int           `json:"nodes_per_element,omitempty" yaml:"nodes_per_element,omitempty"`
	Elements        []int64       `json:"elements" yaml:"elements"`
	Grids           []int64       `json:"grids,omitempty" yaml:"grids,omitempty"`
	Stations        []float64     `json:"stations,omitempty" yaml:"stations,omitempty"`
	Data            [][][]float64 `json:"data" yaml:"data"`
}

// GridOf returns the grid of row i, or 0 when the result carries none.
func (r *ElementResult) GridOf(i int) int64 {
	if i < len(r.Grids) {
		return r.Grids[i]
	}
	return 0
}

// StationOf returns the station distance of row i, or 0.
func (r *ElementResult) StationOf(i int) float64 {
	if i < len(r.Stations) {
		return r.Stations[i]
	}
	return 0
}

// GridForceResult is a grid point force balance: one row per (grid,
// contributing element) pair, Data[step][row][component].
type GridForceResult struct {
	Steps        `yaml:",inline"`
	Nodes        []int64       `json:"nodes" yaml:"nodes"`
	Elements     []int64       `json:"elements" yaml:"elements"`
	ElementNames []string      `json:"element_names" yaml:"element_names"`
	Data         [][][]float64 `json:"data" yaml:"data"`
}

// EigenvalueResult is the real eigenvalue summary of one subcase.
type EigenvalueResult struct {
	Modes       []int64   `json:"modes" yaml:"modes"`
	Orders      []int64   `json:"orders,omitempty" yaml:"orders,omitempty"`
	Eigenvalues []float64 `json:"eigenvalues" yaml:"eigenvalues"`
	// GeneralizedMass and GeneralizedStiffness are empty when the source
	// lacks modal participation data.
	GeneralizedMass      []float64 `json:"generalized_mass,omitempty" yaml:"generalized_mass,omitempty"`
	GeneralizedStiffness []float64 `json:"generalized_stiffness,omitempty" yaml:"generalized_stiffness,omitempty"`
	ResFlags             []int64   `json:"res_flags,omitempty" yaml:"res_flags,omitempty"`
	FldFlags             []int64   `json:"fld_flags,omitempty" yaml:"fld_flags,omitempty"`
}

// NormalModeCode is the analysis code of a real eigenvalue analysis.
const NormalModeCode = 2

// StepMeta describes the summary as a normal-mode result whose steps are
// the modes, so its domains line up with the eigenvectors of the subcase.
func (r *EigenvalueResult) StepMeta() *Steps {
	return &Steps{
		AnalysisCode: NormalModeCode,
		Modes:        r.Modes,
		Eigrs:        r.Eigenvalues,
	}
}
