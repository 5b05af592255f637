// Package h5 writes NH5 tables into an HDF5 file.
//
// Each table becomes a one-dimensional dataset of opaque fixed-size elements
// tagged with the layout name. Element bytes are the packed little-endian
// records, so the byte layout matches the compound types readers expect.
//
// Object headers are never rewritten after creation. Group and table
// attributes (SCHEMA_VERSION, VERSION, FIELDS) are collected and written on
// Close as the catalog: a fixed-length string dataset at
// container.AttrsPath with one JSON entry per object.
package h5

import (
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/scigolib/hdf5"

	"github.com/hsnony97-cyber/Load-Ext/internal/container"
	"github.com/hsnony97-cyber/Load-Ext/pkg/nh5"
)

func init() {
	container.Register(container.Format{
		Name:       "h5",
		Extensions: []string{".h5", ".hdf5"},
		Create:     func(path string) (container.Backend, error) { return Create(path) },
	})
}

// Entry is one catalog row. Groups carry attributes only.
type Entry struct {
	Path   string         `json:"path"`
	Layout string         `json:"layout,omitempty"`
	Count  int            `json:"count,omitempty"`
	Attrs  map[string]any `json:"attrs,omitempty"`
}

// Writer is a container.Backend over a scigolib/hdf5 file writer.
type Writer struct {
	fw      *hdf5.FileWriter
	groups  map[string]struct{}
	entries map[string]*Entry
}

// Create truncates path and opens it for writing.
func Create(path string) (*Writer, error) {
	fw, err := hdf5.CreateForWrite(path, hdf5.CreateTruncate)
	if err != nil {
		return nil, fmt.Errorf("h5: create %s: %w", path, err)
	}
	return &Writer{
		fw:      fw,
		groups:  make(map[string]struct{}),
		entries: make(map[string]*Entry),
	}, nil
}

// ensureGroup creates p and every missing ancestor.
func (w *Writer) ensureGroup(p string) error {
	if p == "" || p == "/" {
		return nil
	}
	if _, ok := w.groups[p]; ok {
		return nil
	}
	parent, _ := nh5.SplitPath(p)
	if err := w.ensureGroup(parent); err != nil {
		return err
	}
	if _, err := w.fw.CreateGroup(p); err != nil {
		return fmt.Errorf("h5: create group %s: %w", p, err)
	}
	w.groups[p] = struct{}{}
	return nil
}

func (w *Writer) entry(path string) *Entry {
	e, ok := w.entries[path]
	if !ok {
		e = &Entry{Path: path, Attrs: map[string]any{}}
		w.entries[path] = e
	}
	return e
}

func (w *Writer) SetRootAttribute(group string, attr nh5.Attr) error {
	if w.fw == nil {
		return container.ErrClosed
	}
	group = strings.TrimSuffix(group, "/")
	if err := w.ensureGroup(group); err != nil {
		return err
	}
	if group == "" {
		group = "/"
	}
	w.entry(group).Attrs[attr.Name] = attr.Value
	return nil
}

func (w *Writer) WriteTable(path string, l *nh5.Layout, data []byte, count int, attrs []nh5.Attr) error {
	if w.fw == nil {
		return container.ErrClosed
	}
	if e, ok := w.entries[path]; ok && e.Layout != "" {
		return fmt.Errorf("%w: %s", container.ErrTableExists, path)
	}
	if count <= 0 {
		return fmt.Errorf("%w: %s", container.ErrEmptyTable, path)
	}
	if count*l.Size() != len(data) {
		return fmt.Errorf("%w: %s: %d bytes for %d records of %d", nh5.ErrLayoutMismatch, path, len(data), count, l.Size())
	}

	parent, _ := nh5.SplitPath(path)
	if err := w.ensureGroup(parent); err != nil {
		return err
	}
	ds, err := w.fw.CreateDataset(path, hdf5.Opaque, []uint64{uint64(count)},
		hdf5.WithOpaqueTag(l.Name, uint32(l.Size())))
	if err != nil {
		return fmt.Errorf("h5: create dataset %s: %w", path, err)
	}
	if err := ds.WriteRaw(data); err != nil {
		_ = ds.Close()
		return fmt.Errorf("h5: write %s: %w", path, err)
	}
	if err := ds.Close(); err != nil {
		return fmt.Errorf("h5: close %s: %w", path, err)
	}

	e := w.entry(path)
	e.Layout = l.Name
	e.Count = count
	for _, a := range attrs {
		e.Attrs[a.Name] = a.Value
	}
	return nil
}

// writeCatalog stores every entry, sorted by path, as one fixed-length
// string per row.
func (w *Writer) writeCatalog() error {
	paths := make([]string, 0, len(w.entries))
	for p := range w.entries {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	rows := make([]string, len(paths))
	width := 1
	for i, p := range paths {
		raw, err := json.Marshal(w.entries[p])
		if err != nil {
			return fmt.Errorf("h5: encode catalog entry %s: %w", p, err)
		}
		rows[i] = string(raw)
		width = max(width, len(raw))
	}
	if len(rows) == 0 {
		return nil
	}
	ds, err := w.fw.CreateDataset(container.AttrsPath, hdf5.String, []uint64{uint64(len(rows))},
		hdf5.WithStringSize(uint32(width)))
	if err != nil {
		return fmt.Errorf("h5: create catalog: %w", err)
	}
	if err := ds.Write(rows); err != nil {
		_ = ds.Close()
		return fmt.Errorf("h5: write catalog: %w", err)
	}
	return ds.Close()
}

// Close writes the catalog and closes the file.
func (w *Writer) Close() error {
	if w.fw == nil {
		return nil
	}
	err := w.writeCatalog()
	if cerr := w.fw.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("h5: close: %w", cerr)
	}
	w.fw = nil
	return err
}
