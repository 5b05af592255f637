package nh5

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the on-disk encoding of a field element.
// Keep these stable forever; add new values only.
type Kind uint8

const (
	KindInt      Kind = iota + 1 // little-endian int64 ("<i8")
	KindFloat                    // little-endian float64 ("<f8")
	KindBytes                    // fixed-width NUL padded byte string ("S<n>")
	KindCompound                 // nested compound record
)

// Field is one named member of a layout.
//
// Count > 1 makes the field a fixed-size array of Count elements.
type Field struct {
	Name  string
	Kind  Kind
	Width int     // element width in bytes for KindBytes
	Count int     // array length, 0 or 1 for scalars
	Elem  *Layout // element layout for KindCompound
}

// I8 declares an int64 field.
func I8(name string) Field { return Field{Name: name, Kind: KindInt} }

// F8 declares a float64 field.
func F8(name string) Field { return Field{Name: name, Kind: KindFloat} }

// S declares a fixed-width byte string field.
func S(name string, width int) Field { return Field{Name: name, Kind: KindBytes, Width: width} }

// I8s declares a fixed-size int64 array field.
func I8s(name string, n int) Field { return Field{Name: name, Kind: KindInt, Count: n} }

// F8s declares a fixed-size float64 array field.
func F8s(name string, n int) Field { return Field{Name: name, Kind: KindFloat, Count: n} }

// Nested declares a fixed-size array of compound sub-records.
func Nested(name string, elem *Layout, n int) Field {
	return Field{Name: name, Kind: KindCompound, Elem: elem, Count: n}
}

// Len returns the number of elements of the field.
func (f Field) Len() int {
	if f.Count <= 1 {
		return 1
	}
	return f.Count
}

// ElemSize returns the size in bytes of one element of the field.
func (f Field) ElemSize() int {
	switch f.Kind {
	case KindInt, KindFloat:
		return 8
	case KindBytes:
		return f.Width
	case KindCompound:
		return f.Elem.Size()
	default:
		return 0
	}
}

// Size returns the total size in bytes of the field.
func (f Field) Size() int {
	return f.ElemSize() * f.Len()
}

// Descr renders the field in numpy dtype notation, eg "X:<f8(3)".
func (f Field) Descr() string {
	var typ string
	switch f.Kind {
	case KindInt:
		typ = "<i8"
	case KindFloat:
		typ = "<f8"
	case KindBytes:
		typ = "S" + strconv.Itoa(f.Width)
	case KindCompound:
		typ = "{" + f.Elem.Descr() + "}"
	}
	if f.Count > 1 {
		typ += "(" + strconv.Itoa(f.Count) + ")"
	}
	return f.Name + ":" + typ
}

// Layout is a fixed, packed (no padding) record layout.
type Layout struct {
	Name    string
	Version int64
	Fields  []Field

	offsets []int
	byName  map[string]int
	size    int
}

// NewLayout computes offsets for fields and returns the layout.
// Duplicate or empty field names panic: layouts are package-level constants.
func NewLayout(name string, version int64, fields ...Field) *Layout {
	l := &Layout{
		Name:    name,
		Version: version,
		Fields:  fields,
		offsets: make([]int, len(fields)),
		byName:  make(map[string]int, len(fields)),
	}
	off := 0
	for i, f := range fields {
		if f.Name == "" {
			panic("nh5: empty field name in layout " + name)
		}
		if _, dup := l.byName[f.Name]; dup {
			panic("nh5: duplicate field " + f.Name + " in layout " + name)
		}
		if f.Kind == KindCompound && f.Elem == nil {
			panic("nh5: compound field " + f.Name + " has no element layout")
		}
		l.byName[f.Name] = i
		l.offsets[i] = off
		off += f.Size()
	}
	l.size = off
	return l
}

// Size returns the record size in bytes.
func (l *Layout) Size() int { return l.size }

// Lookup returns the field and its byte offset.
func (l *Layout) Lookup(name string) (Field, int, bool) {
	i, ok := l.byName[name]
	if !ok {
		return Field{}, 0, false
	}
	return l.Fields[i], l.offsets[i], true
}

// Names returns the top-level field names in layout order.
func (l *Layout) Names() []string {
	out := make([]string, len(l.Fields))
	for i, f := range l.Fields {
		out[i] = f.Name
	}
	return out
}

// Descr renders the layout as a comma separated field description.
func (l *Layout) Descr() string {
	parts := make([]string, len(l.Fields))
	for i, f := range l.Fields {
		parts[i] = f.Descr()
	}
	return strings.Join(parts, ",")
}

func (l *Layout) String() string {
	return fmt.Sprintf("%s v%d (%d bytes)", l.Name, l.Version, l.size)
}

var registry = map[string]*Layout{}

func register(l *Layout) *Layout {
	if _, dup := registry[l.Name]; dup {
		panic("nh5: duplicate layout " + l.Name)
	}
	registry[l.Name] = l
	return l
}

// Layouts returns every registered layout sorted by name.
func Layouts() []*Layout {
	out := make([]*Layout, 0, len(registry))
	for _, l := range registry {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LookupLayout returns a registered layout by name.
func LookupLayout(name string) (*Layout, error) {
	l, ok := registry[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
	}
	return l, nil
}
