// Package rcfstore writes NH5 tables into an RCF file.
//
// Every table is one section keyed by its path, versioned with the layout
// version. Attributes are collected and stored as a JSON document in the
// AttrsPath section when the file is closed.
package rcfstore

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/hsnony97-cyber/Load-Ext/internal/container"
	"github.com/hsnony97-cyber/Load-Ext/pkg/nh5"
	"github.com/hsnony97-cyber/Load-Ext/pkg/rcf"
)

// AttrsPath is the section holding every group and table attribute.
const AttrsPath = container.AttrsPath

const attrsVersion = 1

func init() {
	container.Register(container.Format{
		Name:       "rcf",
		Extensions: []string{".rcf"},
		Create:     func(path string) (container.Backend, error) { return Create(path) },
	})
}

// Writer is a container.Backend over an rcf.Writer.
type Writer struct {
	f     *os.File
	w     *rcf.Writer
	attrs container.Attrs
}

// Create truncates path and opens it for writing.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w, err := rcf.NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Writer{f: f, w: w, attrs: container.Attrs{}}, nil
}

func (w *Writer) SetRootAttribute(group string, attr nh5.Attr) error {
	if w.w == nil {
		return container.ErrClosed
	}
	w.attrs.Set(rcf.CleanPath(group), attr)
	return nil
}

func (w *Writer) WriteTable(path string, l *nh5.Layout, data []byte, count int, attrs []nh5.Attr) error {
	if w.w == nil {
		return container.ErrClosed
	}
	if count*l.Size() != len(data) {
		return fmt.Errorf("%w: %s: %d bytes for %d records of %d", nh5.ErrLayoutMismatch, path, len(data), count, l.Size())
	}
	if err := w.w.WriteSection(path, uint32(l.Version), uint64(count), data); err != nil {
		if rcfDuplicate(err) {
			return fmt.Errorf("%w: %s", container.ErrTableExists, path)
		}
		return fmt.Errorf("rcfstore: write %s: %w", path, err)
	}
	w.attrs.Set(rcf.CleanPath(path), attrs...)
	return nil
}

// Close writes the attribute section, finalises the directory and closes
// the file.
func (w *Writer) Close() error {
	if w.w == nil {
		return nil
	}
	defer func() {
		w.w = nil
		w.f = nil
	}()

	raw, err := json.Marshal(w.attrs)
	if err != nil {
		_ = w.f.Close()
		return fmt.Errorf("rcfstore: encode attributes: %w", err)
	}
	if err := w.w.WriteSection(AttrsPath, attrsVersion, uint64(len(w.attrs)), raw); err != nil {
		_ = w.f.Close()
		return err
	}
	if err := w.w.Finalise(); err != nil {
		_ = w.f.Close()
		return err
	}
	return w.f.Close()
}
