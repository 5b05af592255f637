package rcfstore

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/hsnony97-cyber/Load-Ext/internal/container"
	"github.com/hsnony97-cyber/Load-Ext/pkg/nh5"
	"github.com/hsnony97-cyber/Load-Ext/pkg/rcf"
)

var ErrTableNotFound = errors.New("rcfstore: table not found")

func rcfDuplicate(err error) bool {
	return errors.Is(err, rcf.ErrDuplicateSection)
}

// File is an opened RCF container.
type File struct {
	file  *rcf.File
	attrs container.Attrs
}

// Open maps an RCF container and decodes its attributes.
func Open(path string) (*File, error) {
	rf, err := rcf.Open(path)
	if err != nil {
		return nil, err
	}
	f := &File{file: rf, attrs: container.Attrs{}}
	if sec := rf.Section(AttrsPath); sec != nil {
		if err := json.Unmarshal(rf.SectionData(sec), &f.attrs); err != nil {
			_ = rf.Close()
			return nil, fmt.Errorf("rcfstore: decode attributes: %w", err)
		}
	}
	return f, nil
}

func (f *File) Close() error {
	if f == nil || f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}

// Sections returns the table sections in path order.
func (f *File) Sections() []rcf.Section {
	out := make([]rcf.Section, 0, len(f.file.Sections))
	for _, s := range f.file.Sections {
		if s.Path == AttrsPath {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Attr returns the named attribute of an object path, or nil.
func (f *File) Attr(path, name string) any {
	return f.attrs.Get(rcf.CleanPath(path), name)
}

// Records decodes the table at path with layout l. The records alias the
// mapped file and must not be used after Close.
func (f *File) Records(path string, l *nh5.Layout) ([]nh5.Record, error) {
	sec := f.file.Section(path)
	if sec == nil {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, path)
	}
	recs, err := nh5.Decode(l, f.file.SectionData(sec))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if uint64(len(recs)) != sec.Count {
		return nil, fmt.Errorf("%w: %s: %d records, directory says %d", nh5.ErrLayoutMismatch, path, len(recs), sec.Count)
	}
	return recs, nil
}
