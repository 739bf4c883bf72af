// Package codec implements the deterministic, compact binary encoding
// the bridge uses for hashing and on-disk representation of blocks and
// extrinsics. It is a small hand-rolled analogue of Rust's "postcard"
// wire format: fixed-width integers, length-prefixed variable fields,
// and maps always emitted in key-sorted order so that two validators
// encoding the same value produce byte-identical output.
//
// This is deliberately not a generic serialization library:
// byte-exact canonical encoding is load-bearing for block and
// extrinsic hashing, so the format is spelled out field by field.
package codec

import (
	"encoding/binary"
	"fmt"
)

// Writer accumulates a canonical byte encoding.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer { return &Writer{} }

func (w *Writer) Bytes() []byte { return w.buf }

// Uint8 appends a single byte.
func (w *Writer) Uint8(v uint8) *Writer {
	w.buf = append(w.buf, v)
	return w
}

// Uint32LE appends a little-endian uint32.
func (w *Writer) Uint32LE(v uint32) *Writer {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
	return w
}

// Uint64LE appends a little-endian uint64.
func (w *Writer) Uint64LE(v uint64) *Writer {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
	return w
}

// VarBytes appends a uint32-LE length prefix followed by the bytes.
func (w *Writer) VarBytes(b []byte) *Writer {
	w.Uint32LE(uint32(len(b)))
	w.buf = append(w.buf, b...)
	return w
}

// RawBytes appends b with no length prefix (used for fixed-size fields
// such as 32-byte hashes, where the length is implied by the schema).
func (w *Writer) RawBytes(b []byte) *Writer {
	w.buf = append(w.buf, b...)
	return w
}

// Slice appends a uint32-LE element count, then invokes enc for each
// element in order. The caller is responsible for sorting the slice
// beforehand wherever deterministic ordering matters.
func (w *Writer) Slice(n int, enc func(i int)) *Writer {
	w.Uint32LE(uint32(n))
	for i := 0; i < n; i++ {
		enc(i)
	}
	return w
}

// Reader decodes a canonical byte encoding produced by Writer.
type Reader struct {
	buf []byte
	pos int
}

func NewReader(b []byte) *Reader { return &Reader{buf: b} }

func (r *Reader) err(need int) error {
	return fmt.Errorf("codec: short buffer: need %d more bytes at offset %d (len %d)", need, r.pos, len(r.buf))
}

func (r *Reader) Uint8() (uint8, error) {
	if r.pos+1 > len(r.buf) {
		return 0, r.err(1)
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *Reader) Uint32LE() (uint32, error) {
	if r.pos+4 > len(r.buf) {
		return 0, r.err(4)
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4
	return v, nil
}

func (r *Reader) Uint64LE() (uint64, error) {
	if r.pos+8 > len(r.buf) {
		return 0, r.err(8)
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos : r.pos+8])
	r.pos += 8
	return v, nil
}

func (r *Reader) VarBytes() ([]byte, error) {
	n, err := r.Uint32LE()
	if err != nil {
		return nil, err
	}
	if r.pos+int(n) > len(r.buf) {
		return nil, r.err(int(n))
	}
	b := make([]byte, n)
	copy(b, r.buf[r.pos:r.pos+int(n)])
	r.pos += int(n)
	return b, nil
}

func (r *Reader) RawBytes(n int) ([]byte, error) {
	if r.pos+n > len(r.buf) {
		return nil, r.err(n)
	}
	b := make([]byte, n)
	copy(b, r.buf[r.pos:r.pos+n])
	r.pos += n
	return b, nil
}

func (r *Reader) Count() (int, error) {
	n, err := r.Uint32LE()
	return int(n), err
}

func (r *Reader) Remaining() int { return len(r.buf) - r.pos }
