// Package container defines the output container backend used by the
// converter and a registry of file formats implementing it.
package container

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hsnony97-cyber/Load-Ext/pkg/nh5"
)

var (
	ErrUnknownFormat = errors.New("container: unknown output format")
	ErrTableExists   = errors.New("container: table already written")
	ErrEmptyTable    = errors.New("container: table has no records")
	ErrClosed        = errors.New("container: backend closed")
)

// Backend receives finished tables. Every table is written exactly once.
type Backend interface {
	// SetRootAttribute stores attr on group, creating the group if needed.
	SetRootAttribute(group string, attr nh5.Attr) error
	// WriteTable stores count records of layout l encoded in data at path.
	WriteTable(path string, l *nh5.Layout, data []byte, count int, attrs []nh5.Attr) error
	Close() error
}

// Format is a registered file format.
type Format struct {
	Name       string
	Extensions []string // first is the default
	Create     func(path string) (Backend, error)
}

var (
	formatsMu sync.RWMutex
	formats   = map[string]Format{}
)

// Register makes a format available to Create. It panics on a duplicate name.
func Register(f Format) {
	formatsMu.Lock()
	defer formatsMu.Unlock()
	if _, dup := formats[f.Name]; dup {
		panic("container: Register called twice for format " + f.Name)
	}
	formats[f.Name] = f
}

// Formats returns the registered format names in sorted order.
func Formats() []string {
	formatsMu.RLock()
	defer formatsMu.RUnlock()
	out := make([]string, 0, len(formats))
	for name := range formats {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the format registered under name.
func Lookup(name string) (Format, error) {
	formatsMu.RLock()
	defer formatsMu.RUnlock()
	f, ok := formats[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Format{}, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f, nil
}

// Extension returns the default file extension of a format, eg ".h5".
func Extension(name string) (string, error) {
	f, err := Lookup(name)
	if err != nil {
		return "", err
	}
	return f.Extensions[0], nil
}

// Create opens a backend for path, choosing the format by file extension.
func Create(path string) (Backend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	formatsMu.RLock()
	var match *Format
	for _, f := range formats {
		for _, e := range f.Extensions {
			if e == ext {
				match = &f
			}
		}
	}
	formatsMu.RUnlock()
	if match == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	return match.Create(path)
}
