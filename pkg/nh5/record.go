package nh5

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Record is one fixed-layout row. The zero value of every field is zero
// (integers and floats) or all-NUL (byte strings).
//
// Setters and getters panic on unknown field names or kind mismatches:
// field names come from package-level layouts, never from input data.
type Record struct {
	layout *Layout
	buf    []byte
}

// New allocates a zeroed record.
func (l *Layout) New() Record {
	return Record{layout: l, buf: make([]byte, l.size)}
}

// Layout returns the record layout.
func (r Record) Layout() *Layout { return r.layout }

// Bytes returns the encoded record. The slice aliases the record.
func (r Record) Bytes() []byte { return r.buf }

func (r Record) field(name string, kind Kind) (Field, int) {
	f, off, ok := r.layout.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("nh5: layout %s has no field %q", r.layout.Name, name))
	}
	if f.Kind != kind {
		panic(fmt.Sprintf("nh5: field %s.%s is not of kind %d", r.layout.Name, name, kind))
	}
	return f, off
}

// SetInt stores v into a scalar int field (or element 0 of an int array).
func (r Record) SetInt(name string, v int64) {
	_, off := r.field(name, KindInt)
	binary.LittleEndian.PutUint64(r.buf[off:off+8], uint64(v))
}

// SetFloat stores v into a scalar float field (or element 0 of a float array).
func (r Record) SetFloat(name string, v float64) {
	_, off := r.field(name, KindFloat)
	binary.LittleEndian.PutUint64(r.buf[off:off+8], math.Float64bits(v))
}

// SetString stores s into a byte string field, truncating to the field width.
func (r Record) SetString(name string, s string) {
	f, off := r.field(name, KindBytes)
	dst := r.buf[off : off+f.Width]
	n := copy(dst, s)
	clear(dst[n:])
}

// SetInts stores vs into an int array field. Extra elements beyond the
// array length are a capacity error; missing elements stay zero.
func (r Record) SetInts(name string, vs []int64) error {
	f, off := r.field(name, KindInt)
	if len(vs) > f.Len() {
		return fmt.Errorf("%w: %s.%s holds %d values, got %d", ErrCapacityExceeded, r.layout.Name, name, f.Len(), len(vs))
	}
	for i, v := range vs {
		p := off + i*8
		binary.LittleEndian.PutUint64(r.buf[p:p+8], uint64(v))
	}
	return nil
}

// SetFloats stores vs into a float array field, with SetInts' capacity rule.
func (r Record) SetFloats(name string, vs []float64) error {
	f, off := r.field(name, KindFloat)
	if len(vs) > f.Len() {
		return fmt.Errorf("%w: %s.%s holds %d values, got %d", ErrCapacityExceeded, r.layout.Name, name, f.Len(), len(vs))
	}
	for i, v := range vs {
		p := off + i*8
		binary.LittleEndian.PutUint64(r.buf[p:p+8], math.Float64bits(v))
	}
	return nil
}

// Elem returns a view over element i of a nested compound array field.
// Writes through the view land in r.
func (r Record) Elem(name string, i int) Record {
	f, off := r.field(name, KindCompound)
	if i < 0 || i >= f.Len() {
		panic(fmt.Sprintf("nh5: %s.%s index %d out of range [0,%d)", r.layout.Name, name, i, f.Len()))
	}
	sz := f.Elem.Size()
	start := off + i*sz
	return Record{layout: f.Elem, buf: r.buf[start : start+sz : start+sz]}
}

// Int reads a scalar int field.
func (r Record) Int(name string) int64 {
	_, off := r.field(name, KindInt)
	return int64(binary.LittleEndian.Uint64(r.buf[off : off+8]))
}

// Float reads a scalar float field.
func (r Record) Float(name string) float64 {
	_, off := r.field(name, KindFloat)
	return math.Float64frombits(binary.LittleEndian.Uint64(r.buf[off : off+8]))
}

// String reads a byte string field up to the first NUL.
func (r Record) String(name string) string {
	f, off := r.field(name, KindBytes)
	b := r.buf[off : off+f.Width]
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// Ints reads an int array field.
func (r Record) Ints(name string) []int64 {
	f, off := r.field(name, KindInt)
	out := make([]int64, f.Len())
	for i := range out {
		p := off + i*8
		out[i] = int64(binary.LittleEndian.Uint64(r.buf[p : p+8]))
	}
	return out
}

// Floats reads a float array field.
func (r Record) Floats(name string) []float64 {
	f, off := r.field(name, KindFloat)
	out := make([]float64, f.Len())
	for i := range out {
		p := off + i*8
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(r.buf[p : p+8]))
	}
	return out
}

// Encode concatenates records of one layout into a contiguous payload.
func Encode(l *Layout, recs []Record) ([]byte, error) {
	out := make([]byte, 0, l.size*len(recs))
	for i, r := range recs {
		if r.layout != l {
			return nil, fmt.Errorf("%w: record %d is %s, table is %s", ErrLayoutMismatch, i, r.layout.Name, l.Name)
		}
		out = append(out, r.buf...)
	}
	return out, nil
}

// Decode splits a payload produced by Encode back into records.
func Decode(l *Layout, data []byte) ([]Record, error) {
	if l.size == 0 || len(data)%l.size != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %s record size %d", ErrLayoutMismatch, len(data), l.Name, l.size)
	}
	n := len(data) / l.size
	out := make([]Record, n)
	for i := range out {
		start := i * l.size
		out[i] = Record{layout: l, buf: data[start : start+l.size : start+l.size]}
	}
	return out, nil
}
