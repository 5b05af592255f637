// Package modelstore loads serialized result model dumps.
//
// A dump is the JSON or YAML rendering of model.Model. Elements, properties
// and materials are lists of tagged objects whose "type" names the card:
//
//	{"type": "CQUAD4", "eid": 1, "pid": 10, "nodes": [1, 2, 3, 4]}
//
// Cards without a Go type decode into model.Unsupported.
package modelstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/hsnony97-cyber/Load-Ext/internal/model"
)

var ErrUnsupportedFormat = errors.New("modelstore: unsupported dump format")

// Extensions lists the dump file extensions Open accepts.
var Extensions = []string{".json", ".yaml", ".yml"}

// IsDump reports whether path has a dump extension.
func IsDump(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Open reads and decodes the dump at path. The format follows the file
// extension.
func Open(path string) (*model.Model, error) {
	var decode func([]byte) (*model.Model, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		decode = DecodeJSON
	case ".yaml", ".yml":
		decode = DecodeYAML
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, release, err := mapFile(path)
	if err != nil {
		return nil, err
	}
	defer release()

	m, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}

// mapFile maps path read-only. If mmap is unavailable (or the file is
// empty) it falls back to reading the whole file.
func mapFile(path string) ([]byte, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()

	st, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := st.Size()
	if size > 0 && size <= int64(int(^uint(0)>>1)) {
		data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
		if err == nil {
			return data, func() { _ = unix.Munmap(data) }, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() {}, nil
}
