// Package nh5 describes the Nastran native HDF5 result database layout (NH5RDB).
//
// It fixes the table paths, record layouts and version markers that downstream
// post-processors read. Layouts are the binary contract with those readers:
// field order, types and widths never change within a layout version.
package nh5

import "strings"

// NH5 global constants must never change.
const (
	// SchemaVersion is written once on the root group.
	SchemaVersion int64 = 1

	// SchemaVersionAttr names the root group attribute holding SchemaVersion.
	SchemaVersionAttr = "SCHEMA_VERSION"

	// TableVersionAttr names the per-table layout version attribute.
	TableVersionAttr = "VERSION"

	// TableFieldsAttr names the per-table field description attribute.
	TableFieldsAttr = "FIELDS"

	// ModelDomainID is the domain every input (geometry) record belongs to.
	ModelDomainID int64 = 1

	// MaxPlies caps the PCOMP ply array.
	MaxPlies = 200
)

// Fixed container paths.
const (
	Root        = "/NASTRAN"
	InputRoot   = Root + "/INPUT"
	ResultRoot  = Root + "/RESULT"
	IndexPrefix = "/INDEX"

	InputDomainsPath  = InputRoot + "/DOMAINS"
	GridPath          = InputRoot + "/NODE/GRID"
	ResultDomainsPath = ResultRoot + "/DOMAINS"
	GridForcePath     = ResultRoot + "/NODAL/GRID_FORCE"
	EigenvaluePath    = ResultRoot + "/SUMMARY/EIGENVALUE"
)

// Elemental result categories.
const (
	CategoryStress       = "STRESS"
	CategoryStrain       = "STRAIN"
	CategoryElementForce = "ELEMENT_FORCE"
)

// Attr is a named attribute value. Values are int64 or string.
type Attr struct {
	Name  string
	Value any
}

// TableAttrs returns the attributes stored on every table of layout l.
func TableAttrs(l *Layout) []Attr {
	return []Attr{
		{Name: TableVersionAttr, Value: l.Version},
		{Name: TableFieldsAttr, Value: l.Descr()},
	}
}

// IndexPath returns the mirror index table path of a table path.
func IndexPath(p string) string {
	return IndexPrefix + p
}

// NodalPath returns RESULT/NODAL/<name>.
func NodalPath(name string) string {
	return ResultRoot + "/NODAL/" + strings.ToUpper(name)
}

// ElementalPath returns RESULT/ELEMENTAL/<category>/<elem>.
func ElementalPath(category, elem string) string {
	return ResultRoot + "/ELEMENTAL/" + category + "/" + elem
}

// ElementPath returns INPUT/ELEMENT/<typ>.
func ElementPath(typ string) string {
	return InputRoot + "/ELEMENT/" + typ
}

// PropertyPath returns INPUT/PROPERTY/<typ>.
func PropertyPath(typ string) string {
	return InputRoot + "/PROPERTY/" + typ
}

// MaterialPath returns INPUT/MATERIAL/<typ>.
func MaterialPath(typ string) string {
	return InputRoot + "/MATERIAL/" + typ
}

// SplitPath splits an absolute table path into its parent group and leaf name.
func SplitPath(p string) (parent, name string) {
	i := strings.LastIndexByte(p, '/')
	if i <= 0 {
		return "/", strings.TrimPrefix(p, "/")
	}
	return p[:i], p[i+1:]
}
