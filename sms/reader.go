package sms

import "fmt"

// Reader is a cursor over a borrowed PDU byte slice. All bounds checking of the
// decoder lives here: a read either succeeds completely or fails with
// ErrUnexpectedEndOfData, it never returns garbage bytes. The slice is not copied
// and must not be modified while the Reader is in use.
type Reader struct {
	data []byte
	pos  int
}

// NewReader returns a Reader positioned at the first byte of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadByte consumes and returns the next byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, fmt.Errorf("need 1 byte at offset %d, 0 available: %w", r.pos, ErrUnexpectedEndOfData)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes consumes and returns the next n bytes. The returned slice aliases
// the underlying buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative read length %d", n)
	}
	if r.pos+n > len(r.data) {
		return nil, fmt.Errorf("need %d bytes at offset %d, %d available: %w", n, r.pos, len(r.data)-r.pos, ErrUnexpectedEndOfData)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// PeekByte returns the next byte without consuming it.
func (r *Reader) PeekByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, fmt.Errorf("need 1 byte at offset %d, 0 available: %w", r.pos, ErrUnexpectedEndOfData)
	}
	return r.data[r.pos], nil
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Offset returns the current read position.
func (r *Reader) Offset() int {
	return r.pos
}
