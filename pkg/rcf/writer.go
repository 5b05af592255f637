package rcf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
)

const writerPadBufSize = 4096

// Writer builds an RCF file.
//
// The writer reserves space for the header up-front and patches it during Finalise.
// Section payloads are written as they arrive; the directory is written last.
type Writer struct {
	f        *os.File
	sections []Section
	seen     map[string]struct{}
	closed   bool

	padBuf []byte

	mu sync.Mutex
}

// NewWriter creates a new RCF writer targeting the given file.
// It truncates the file and reserves space for the header (patched in Finalise()).
func NewWriter(f *os.File) (*Writer, error) {
	if f == nil {
		return nil, errors.New("rcf: nil file")
	}

	if err := f.Truncate(0); err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	w := &Writer{
		f:      f,
		seen:   make(map[string]struct{}),
		padBuf: make([]byte, writerPadBufSize),
	}

	if err := w.writeZeros(rcfHeaderSize); err != nil {
		return nil, err
	}
	if err := w.alignTo(rcfAlign); err != nil {
		return nil, err
	}
	return w, nil
}

// WriteSection writes a table payload of count records and records it in the
// section directory. A path may only be written once.
func (w *Writer) WriteSection(path string, version uint32, count uint64, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrFinalised
	}
	path = CleanPath(path)
	if len(path) > MaxPathLen {
		return fmt.Errorf("rcf: section path too long (%d bytes)", len(path))
	}
	if _, ok := w.seen[path]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSection, path)
	}

	if err := w.alignTo(rcfAlign); err != nil {
		return err
	}
	offset, err := w.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if len(data) > 0 {
		if err := writeFull(w.f, data); err != nil {
			return err
		}
	}

	w.sections = append(w.sections, Section{
		Path:    path,
		Version: version,
		Offset:  uint64(offset),
		Size:    uint64(len(data)),
		Count:   count,
	})
	w.seen[path] = struct{}{}
	return nil
}

// Finalise writes the section directory and path table and patches the header.
// After Finalise, the writer must not be used again.
func (w *Writer) Finalise() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrFinalised
	}
	w.closed = true

	// Deterministic directory ordering.
	sort.Slice(w.sections, func(i, j int) bool {
		return w.sections[i].Path < w.sections[j].Path
	})
	var pathOff uint64
	for i := range w.sections {
		w.sections[i].pathOff = pathOff
		pathOff += uint64(len(w.sections[i].Path))
	}

	if err := w.alignTo(rcfAlign); err != nil {
		return err
	}
	dirOffset, err := w.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}

	var secBuf [rcfSectionSize]byte
	for i := range w.sections {
		if !encodeSection(secBuf[:], w.sections[i]) {
			return errors.New("rcf: encode section failed")
		}
		if err := writeFull(w.f, secBuf[:]); err != nil {
			return err
		}
	}
	for i := range w.sections {
		if err := writeFull(w.f, []byte(w.sections[i].Path)); err != nil {
			return err
		}
	}

	fileSize, err := w.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if err := w.f.Truncate(fileSize); err != nil {
		return err
	}

	var header Header
	copy(header.Magic[:], MagicRCF)
	header.Major = CurrentMajor
	header.Minor = CurrentMinor
	header.HeaderSize = rcfHeaderSize
	header.SectionCount = uint32(len(w.sections))
	header.SectionDirOffset = uint64(dirOffset)
	header.FileSize = uint64(fileSize)

	if _, err := w.f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	var hdrBuf [rcfHeaderSize]byte
	if !encodeHeader(hdrBuf[:], header) {
		return errors.New("rcf: encode header failed")
	}
	if err := writeFull(w.f, hdrBuf[:]); err != nil {
		return err
	}
	return w.f.Sync()
}

func (w *Writer) alignTo(n int64) error {
	if n <= 1 {
		return nil
	}
	pos, err := w.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	mod := pos % n
	if mod == 0 {
		return nil
	}
	return w.writeZeros(int(n - mod))
}

func (w *Writer) writeZeros(n int) error {
	buf := w.padBuf
	if len(buf) == 0 {
		buf = make([]byte, writerPadBufSize)
	}
	for n > 0 {
		toWrite := min(n, len(buf))
		if err := writeFull(w.f, buf[:toWrite]); err != nil {
			return err
		}
		n -= toWrite
	}
	return nil
}

func writeFull(f *os.File, p []byte) error {
	for len(p) > 0 {
		n, err := f.Write(p)
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}
