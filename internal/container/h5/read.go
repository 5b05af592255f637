package h5

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/scigolib/hdf5"

	"github.com/hsnony97-cyber/Load-Ext/internal/container"
)

var ErrNoCatalog = errors.New("h5: file has no NH5 catalog")

// Node is one object of the HDF5 tree.
type Node struct {
	Path  string
	Group bool
	// Info is the library description of a dataset (type, shape, layout).
	Info string
}

// File is an opened HDF5 container written by Writer.
type File struct {
	f       *hdf5.File
	nodes   []Node
	entries map[string]Entry
}

// Open reads the object tree and the catalog of path.
func Open(path string) (*File, error) {
	hf, err := hdf5.Open(path)
	if err != nil {
		return nil, fmt.Errorf("h5: open %s: %w", path, err)
	}
	f := &File{f: hf, entries: map[string]Entry{}}

	var catalog *hdf5.Dataset
	hf.Walk(func(p string, obj hdf5.Object) {
		switch o := obj.(type) {
		case *hdf5.Group:
			if p = strings.TrimSuffix(p, "/"); p == "" {
				p = "/"
			}
			f.nodes = append(f.nodes, Node{Path: p, Group: true})
		case *hdf5.Dataset:
			if p == container.AttrsPath {
				catalog = o
				return
			}
			info, _ := o.Info()
			f.nodes = append(f.nodes, Node{Path: p, Info: info})
		}
	})
	if catalog == nil {
		_ = hf.Close()
		return nil, fmt.Errorf("%w: %s", ErrNoCatalog, path)
	}
	rows, err := catalog.ReadStrings()
	if err != nil {
		_ = hf.Close()
		return nil, fmt.Errorf("h5: read catalog: %w", err)
	}
	for _, row := range rows {
		var e Entry
		if err := json.Unmarshal([]byte(row), &e); err != nil {
			_ = hf.Close()
			return nil, fmt.Errorf("h5: decode catalog row: %w", err)
		}
		f.entries[e.Path] = e
	}
	return f, nil
}

func (f *File) Close() error {
	if f == nil || f.f == nil {
		return nil
	}
	err := f.f.Close()
	f.f = nil
	return err
}

// Nodes returns every group and dataset in depth-first order, the catalog
// excluded.
func (f *File) Nodes() []Node {
	return f.nodes
}

// Node returns the tree node at path.
func (f *File) Node(path string) (Node, bool) {
	for _, n := range f.nodes {
		if n.Path == path {
			return n, true
		}
	}
	return Node{}, false
}

// Find returns the nodes whose path contains pattern, ignoring case.
func (f *File) Find(pattern string) []Node {
	pattern = strings.ToUpper(pattern)
	var out []Node
	for _, n := range f.nodes {
		if strings.Contains(strings.ToUpper(n.Path), pattern) {
			out = append(out, n)
		}
	}
	return out
}

// Tables returns the catalog entries of every table sorted by path.
func (f *File) Tables() []Entry {
	out := make([]Entry, 0, len(f.entries))
	for _, e := range f.entries {
		if e.Layout != "" {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Table returns the catalog entry of a table path.
func (f *File) Table(path string) (Entry, bool) {
	e, ok := f.entries[path]
	return e, ok && e.Layout != ""
}

// Attr returns the named attribute of an object path, or nil. Numbers come
// back as float64.
func (f *File) Attr(path, name string) any {
	return f.entries[path].Attrs[name]
}
