package container

import "github.com/hsnony97-cyber/Load-Ext/pkg/nh5"

// AttrsPath is the object that holds group and table attributes in file
// formats that store them as a separate document.
const AttrsPath = "/.ATTRS"

// Attrs maps an object path to its attributes.
type Attrs map[string]map[string]any

// Set stores attrs on path, replacing values of the same name.
func (a Attrs) Set(path string, attrs ...nh5.Attr) {
	m := a[path]
	if m == nil {
		m = make(map[string]any, len(attrs))
		a[path] = m
	}
	for _, at := range attrs {
		m[at.Name] = at.Value
	}
}

// Get returns the named attribute of path, or nil.
func (a Attrs) Get(path, name string) any {
	return a[path][name]
}
