package mwmcodec

import (
	"io"

	"github.com/pkg/errors"
)

// ByteSink is the narrow write capability the bit writer needs. An
// io.Writer already satisfies it.
type ByteSink interface {
	Write(p []byte) (n int, err error)
}

// ByteSource is the narrow read capability the bit reader needs. An
// io.Reader already satisfies it.
type ByteSource interface {
	Read(p []byte) (n int, err error)
}

// BitWriter appends k-bit fields LSB-first into an underlying byte sink.
// It holds an 8-bit buffer and a fill count in [0, 7]. Close must be
// called to flush any partial byte, padded with zero bits, to the sink.
type BitWriter struct {
	sink ByteSink
	buf  byte
	fill uint8
}

// NewBitWriter returns a BitWriter appending to sink.
func NewBitWriter(sink ByteSink) *BitWriter {
	return &BitWriter{sink: sink}
}

// Write appends the low k bits of value, LSB-first, k in [1, 64].
func (w *BitWriter) Write(value uint64, k uint8) error {
	for i := uint8(0); i < k; i++ {
		bit := byte((value >> i) & 1)
		w.buf |= bit << w.fill
		w.fill++
		if w.fill == 8 {
			if err := w.flushByte(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *BitWriter) flushByte() error {
	if _, err := w.sink.Write([]byte{w.buf}); err != nil {
		return errors.Wrap(ErrIoFailed, "bit writer flush: "+err.Error())
	}
	w.buf = 0
	w.fill = 0
	return nil
}

// Close pads any partial byte with zero bits and flushes it to the sink.
// It is always safe to call, even with no pending bits.
func (w *BitWriter) Close() error {
	if w.fill == 0 {
		return nil
	}
	return w.flushByte()
}

// BitReader consumes k-bit fields LSB-first from an underlying byte
// source. It is the symmetric counterpart of BitWriter.
type BitReader struct {
	src  ByteSource
	buf  byte
	fill uint8
}

// NewBitReader returns a BitReader consuming from src.
func NewBitReader(src ByteSource) *BitReader {
	return &BitReader{src: src}
}

// Read pulls the low k bits, LSB-first, k in [1, 64].
func (r *BitReader) Read(k uint8) (uint64, error) {
	var value uint64
	for i := uint8(0); i < k; i++ {
		if r.fill == 0 {
			b := make([]byte, 1)
			if _, err := io.ReadFull(toIoReader(r.src), b); err != nil {
				return 0, errors.Wrapf(ErrEndOfInput, "reading %d-bit field: %v", k, err)
			}
			r.buf = b[0]
			r.fill = 8
		}
		bit := (r.buf >> (8 - r.fill)) & 1
		value |= uint64(bit) << i
		r.fill--
	}
	return value, nil
}

// ReadBit is a convenience for Read(1) as a single bit.
func (r *BitReader) ReadBit() (uint8, error) {
	v, err := r.Read(1)
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}

// toIoReader adapts a ByteSource to io.Reader for io.ReadFull. Every
// ByteSource actually used by this package is already an io.Reader;
// this keeps the public field narrow while reusing the stdlib helper.
func toIoReader(src ByteSource) io.Reader {
	if r, ok := src.(io.Reader); ok {
		return r
	}
	return readerFunc(src.Read)
}

type readerFunc func(p []byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) { return f(p) }
