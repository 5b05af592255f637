package container

import (
	"fmt"
	"sync"

	"github.com/hsnony97-cyber/Load-Ext/pkg/nh5"
)

// Table is a table captured by Memory.
type Table struct {
	Path   string
	Layout *nh5.Layout
	Data   []byte
	Count  int
	Attrs  []nh5.Attr
}

// Attr returns the value of the named attribute, or nil.
func (t Table) Attr(name string) any {
	for _, a := range t.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return nil
}

// Records decodes the captured payload.
func (t Table) Records() ([]nh5.Record, error) {
	return nh5.Decode(t.Layout, t.Data)
}

// Memory is a Backend that keeps everything in memory. It backs dry runs
// and tests.
type Memory struct {
	mu     sync.Mutex
	order  []string
	tables map[string]Table
	attrs  map[string][]nh5.Attr
	closed bool
}

func NewMemory() *Memory {
	return &Memory{
		tables: make(map[string]Table),
		attrs:  make(map[string][]nh5.Attr),
	}
}

func (m *Memory) SetRootAttribute(group string, attr nh5.Attr) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.attrs[group] = append(m.attrs[group], attr)
	return nil
}

func (m *Memory) WriteTable(path string, l *nh5.Layout, data []byte, count int, attrs []nh5.Attr) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if _, ok := m.tables[path]; ok {
		return fmt.Errorf("%w: %s", ErrTableExists, path)
	}
	if count*l.Size() != len(data) {
		return fmt.Errorf("%w: %s: %d bytes for %d records of %d", nh5.ErrLayoutMismatch, path, len(data), count, l.Size())
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	m.tables[path] = Table{Path: path, Layout: l, Data: buf, Count: count, Attrs: attrs}
	m.order = append(m.order, path)
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Paths returns table paths in write order.
func (m *Memory) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Table returns the table written at path.
func (m *Memory) Table(path string) (Table, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[path]
	return t, ok
}

// RootAttribute returns the value of attribute name on group, or nil.
func (m *Memory) RootAttribute(group, name string) any {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.attrs[group] {
		if a.Name == name {
			return a.Value
		}
	}
	return nil
}
