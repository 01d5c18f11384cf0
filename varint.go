package mwmcodec

import (
	"io"

	"github.com/pkg/errors"
)

// writeUvarint writes v to w as a base-128 varint: 7 value bits per byte,
// continuation signaled by bit 7, least-significant group first.
func writeUvarint(w io.Writer, v uint64) error {
	var buf [10]byte
	n := 0
	for v >= 0x80 {
		buf[n] = byte(v) | 0x80
		v >>= 7
		n++
	}
	buf[n] = byte(v)
	n++
	if _, err := w.Write(buf[:n]); err != nil {
		return errors.Wrap(ErrIoFailed, err.Error())
	}
	return nil
}

// readUvarint reads a base-128 varint written by writeUvarint.
func readUvarint(r io.Reader) (uint64, error) {
	var result uint64
	var shift uint
	b := make([]byte, 1)
	for {
		if shift >= 64 {
			return 0, errors.Wrap(ErrOverflow, "varint exceeds 64 bits")
		}
		if _, err := io.ReadFull(r, b); err != nil {
			return 0, errors.Wrap(ErrEndOfInput, err.Error())
		}
		result |= uint64(b[0]&0x7f) << shift
		if b[0]&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
}
