// Package rcf implements the Record Container File format.
//
// RCF is a single-file, memory-mappable container of path-keyed record tables.
// Each section holds the raw little-endian records of one table together with
// its layout version and record count.
package rcf

import (
	"encoding/binary"
	"strings"
)

// RCF global constants must never change.
const (
	// MagicRCF is the file magic for all RCF containers, encoded as "RCF\0".
	MagicRCF = "RCF\x00"

	// Current Major Version: Any change indicates a breaking format change.
	CurrentMajor uint16 = 1

	// Current Minor Version: Versions may add new optional sections or fields.
	CurrentMinor uint16 = 0
)

const (
	rcfAlign       = 8
	rcfHeaderSize  = 40
	rcfSectionSize = 40

	// MaxPathLen bounds a section path.
	MaxPathLen = 1 << 12
)

// Header is the fixed file header.
type Header struct {
	Magic            [4]byte
	Major            uint16
	Minor            uint16
	HeaderSize       uint32
	SectionCount     uint32
	SectionDirOffset uint64
	FileSize         uint64
	Flags            uint64
}

// Valid reports whether the header carries the RCF magic and a sane size.
func (h *Header) Valid() bool {
	if string(h.Magic[:]) != MagicRCF {
		return false
	}
	return h.HeaderSize >= rcfHeaderSize
}

func (h *Header) Compatible() bool {
	return h.Major == CurrentMajor
}

// Section describes one table payload.
//
// On disk a directory entry is 40 bytes; the path bytes live in a path table
// that immediately follows the directory.
type Section struct {
	Path    string
	Version uint32
	Offset  uint64
	Size    uint64
	Count   uint64

	pathOff uint64
}

// End returns the exclusive end offset of the payload.
func (s *Section) End() uint64 {
	return s.Offset + s.Size
}

// CleanPath normalises a section path to a rooted, slash separated form
// without a trailing slash.
func CleanPath(p string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	for len(p) > 1 && strings.HasSuffix(p, "/") {
		p = p[:len(p)-1]
	}
	return p
}

func encodeHeader(dst []byte, h Header) bool {
	if len(dst) < rcfHeaderSize {
		return false
	}
	copy(dst[0:4], h.Magic[:])
	binary.LittleEndian.PutUint16(dst[4:6], h.Major)
	binary.LittleEndian.PutUint16(dst[6:8], h.Minor)
	binary.LittleEndian.PutUint32(dst[8:12], h.HeaderSize)
	binary.LittleEndian.PutUint32(dst[12:16], h.SectionCount)
	binary.LittleEndian.PutUint64(dst[16:24], h.SectionDirOffset)
	binary.LittleEndian.PutUint64(dst[24:32], h.FileSize)
	binary.LittleEndian.PutUint64(dst[32:40], h.Flags)
	return true
}

func decodeHeader(src []byte) (Header, bool) {
	var h Header
	if len(src) < rcfHeaderSize {
		return h, false
	}
	copy(h.Magic[:], src[0:4])
	h.Major = binary.LittleEndian.Uint16(src[4:6])
	h.Minor = binary.LittleEndian.Uint16(src[6:8])
	h.HeaderSize = binary.LittleEndian.Uint32(src[8:12])
	h.SectionCount = binary.LittleEndian.Uint32(src[12:16])
	h.SectionDirOffset = binary.LittleEndian.Uint64(src[16:24])
	h.FileSize = binary.LittleEndian.Uint64(src[24:32])
	h.Flags = binary.LittleEndian.Uint64(src[32:40])
	return h, true
}

// Directory entry layout:
//
//	0:4   version
//	4:8   path length
//	8:16  path offset (relative to the path table)
//	16:24 payload offset
//	24:32 payload size
//	32:40 record count
func encodeSection(dst []byte, s Section) bool {
	if len(dst) < rcfSectionSize {
		return false
	}
	binary.LittleEndian.PutUint32(dst[0:4], s.Version)
	binary.LittleEndian.PutUint32(dst[4:8], uint32(len(s.Path)))
	binary.LittleEndian.PutUint64(dst[8:16], s.pathOff)
	binary.LittleEndian.PutUint64(dst[16:24], s.Offset)
	binary.LittleEndian.PutUint64(dst[24:32], s.Size)
	binary.LittleEndian.PutUint64(dst[32:40], s.Count)
	return true
}

// decodeSection decodes a directory entry. The path is resolved by the caller.
func decodeSection(src []byte) (Section, uint32, bool) {
	var s Section
	if len(src) < rcfSectionSize {
		return s, 0, false
	}
	s.Version = binary.LittleEndian.Uint32(src[0:4])
	pathLen := binary.LittleEndian.Uint32(src[4:8])
	s.pathOff = binary.LittleEndian.Uint64(src[8:16])
	s.Offset = binary.LittleEndian.Uint64(src[16:24])
	s.Size = binary.LittleEndian.Uint64(src[24:32])
	s.Count = binary.LittleEndian.Uint64(src[32:40])
	return s, pathLen, true
}

func rangesOverlap(a0, a1, b0, b1 uint64) bool {
	// half-open ranges [a0,a1) and [b0,b1)
	return a0 < b1 && b0 < a1
}
