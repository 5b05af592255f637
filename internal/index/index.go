// Package index builds the run-length domain index of a table.
package index

import "github.com/hsnony97-cyber/Load-Ext/pkg/nh5"

// Entry locates the records of one domain within a table.
type Entry struct {
	DomainID int64
	Position int64
	Length   int64
}

// Builder accumulates index entries while a table is built.
type Builder struct {
	entries []Entry
	total   int64
}

// Add records that the next count records belong to domainID. A run that
// continues the previous domain extends the previous entry; empty runs are
// ignored.
func (b *Builder) Add(domainID int64, count int) {
	if count <= 0 {
		return
	}
	if n := len(b.entries); n > 0 && b.entries[n-1].DomainID == domainID {
		b.entries[n-1].Length += int64(count)
	} else {
		b.entries = append(b.entries, Entry{DomainID: domainID, Position: b.total, Length: int64(count)})
	}
	b.total += int64(count)
}

// Total returns the number of records covered.
func (b *Builder) Total() int64 { return b.total }

// Entries returns the entries in position order.
func (b *Builder) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Records encodes the entries as INDEX records.
func (b *Builder) Records() []nh5.Record {
	out := make([]nh5.Record, len(b.entries))
	for i, e := range b.entries {
		rec := nh5.Index.New()
		rec.SetInt("DOMAIN_ID", e.DomainID)
		rec.SetInt("POSITION", e.Position)
		rec.SetInt("LENGTH", e.Length)
		out[i] = rec
	}
	return out
}
