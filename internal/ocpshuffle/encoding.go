package ocpshuffle

import (
	"encoding/binary"
	"fmt"
)

// Writer appends little-endian fields into one growing wire buffer.
// internal/shuffleproof and internal/deck both build their
// MarshalBinary output through it, so every wire format in the module
// shares one integer encoding.
type Writer struct {
	buf []byte
}

func (w *Writer) PutUint16(x uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], x)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) PutUint32(x uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], x)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) PutBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *Writer) Bytes() []byte {
	return w.buf
}

// Reader consumes a buffer produced by Writer, failing closed on any
// truncation rather than panicking on a malformed wire message.
type Reader struct {
	b   []byte
	off int
}

func NewReader(b []byte) *Reader {
	return &Reader{b: b}
}

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.b) {
		return nil, fmt.Errorf("ocpshuffle: reader: truncated wire message")
	}
	out := r.b[r.off : r.off+n]
	r.off += n
	return out, nil
}

func (r *Reader) Uint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) Bytes(n int) ([]byte, error) {
	return r.take(n)
}

// Done reports whether every byte of the buffer has been consumed  - 
// callers use this to reject wire messages with trailing garbage.
func (r *Reader) Done() bool {
	return r.off == len(r.b)
}
