// Package store persists background feature banks, the large embedding
// populations that cutoff estimation samples. A bank is written once by an
// offline build and read many times by the server, so the format favors a
// dumb flat layout that loads fast over anything clever.
package store

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/exp/mmap"
)

// bankMagic identifies a logo feature bank file.
var bankMagic = [4]byte{'L', 'F', 'B', 'K'}

// bankVersion is bumped on any layout change.
const bankVersion uint16 = 1

// headerSize is the fixed byte length of bankHeader on disk.
const headerSize = 16

// bankHeader is the little-endian file header: magic, version, two pad
// bytes, then the vector width and row count.
type bankHeader struct {
	Magic   [4]byte
	Version uint16
	_       [2]byte
	Dim     uint32
	Count   uint32
}

// Bank is an immutable background embedding set loaded from disk. It is
// safe for any number of concurrent readers; nothing mutates it after Load
// returns.
type Bank struct {
	dim   int
	count int
	data  []float32
	rows  [][]float32
	mm    *mmap.ReaderAt
}

// Write serializes vectors as a bank. Every row must be exactly dim wide.
func Write(w io.Writer, dim int, vecs [][]float32) error {
	if dim <= 0 {
		return fmt.Errorf("store: vector width %d must be positive", dim)
	}
	hdr := bankHeader{
		Magic:   bankMagic,
		Version: bankVersion,
		Dim:     uint32(dim),
		Count:   uint32(len(vecs)),
	}
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return fmt.Errorf("store: write header: %w", err)
	}

	flat := make([]float32, 0, dim*len(vecs))
	for i, v := range vecs {
		if len(v) != dim {
			return fmt.Errorf("store: row %d has %d values, want %d", i, len(v), dim)
		}
		flat = append(flat, v...)
	}
	if len(flat) == 0 {
		return nil
	}
	if err := binary.Write(w, binary.LittleEndian, flat); err != nil {
		return fmt.Errorf("store: write vectors: %w", err)
	}
	return nil
}

// Load memory-maps a bank file and decodes it. Close the bank when done.
func Load(path string) (*Bank, error) {
	mm, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store: open bank: %w", err)
	}
	b, err := parse(mm)
	if err != nil {
		mm.Close()
		return nil, err
	}
	b.mm = mm
	return b, nil
}

func parse(mm *mmap.ReaderAt) (*Bank, error) {
	if mm.Len() < headerSize {
		return nil, fmt.Errorf("store: bank file is %d bytes, smaller than the header", mm.Len())
	}
	buf := make([]byte, headerSize)
	if _, err := mm.ReadAt(buf, 0); err != nil {
		return nil, fmt.Errorf("store: read header: %w", err)
	}
	var hdr bankHeader
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("store: decode header: %w", err)
	}
	if hdr.Magic != bankMagic {
		return nil, fmt.Errorf("store: not a feature bank (magic %q)", hdr.Magic[:])
	}
	if hdr.Version != bankVersion {
		return nil, fmt.Errorf("store: unsupported bank version %d", hdr.Version)
	}
	if hdr.Dim == 0 {
		return nil, fmt.Errorf("store: bank declares zero vector width")
	}

	dim := int(hdr.Dim)
	count := int(hdr.Count)
	want := dim * count * 4
	if mm.Len() != headerSize+want {
		return nil, fmt.Errorf("store: bank holds %d data bytes, header implies %d", mm.Len()-headerSize, want)
	}

	data := make([]float32, dim*count)
	if want > 0 {
		raw := make([]byte, want)
		if _, err := mm.ReadAt(raw, headerSize); err != nil {
			return nil, fmt.Errorf("store: read vectors: %w", err)
		}
		if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, data); err != nil {
			return nil, fmt.Errorf("store: decode vectors: %w", err)
		}
	}

	rows := make([][]float32, count)
	for i := range rows {
		rows[i] = data[i*dim : (i+1)*dim]
	}
	return &Bank{dim: dim, count: count, data: data, rows: rows}, nil
}

// Dim returns the vector width.
func (b *Bank) Dim() int { return b.dim }

// Count returns the number of vectors.
func (b *Bank) Count() int { return b.count }

// Rows returns all vectors as views over one shared buffer. Callers must
// treat them as read-only.
func (b *Bank) Rows() [][]float32 { return b.rows }

// Row returns the i-th vector as a read-only view.
func (b *Bank) Row(i int) []float32 { return b.rows[i] }

// Close releases the underlying file mapping.
func (b *Bank) Close() error {
	if b.mm == nil {
		return nil
	}
	err := b.mm.Close()
	b.mm = nil
	return err
}
