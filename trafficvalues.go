package mwmcodec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
)

// currentValuesVersion is the only traffic-values wire version this
// package writes or accepts.
const currentValuesVersion uint8 = 0

// speedGroupBits is the fixed width of one SpeedGroup on the wire.
const speedGroupBits = 3

// SerializeTrafficValues encodes values to the uncompressed wire format
// of §4.5, then deflates the result at the best-compression level
// (zlib container).
func SerializeTrafficValues(values []SpeedGroup) ([]byte, error) {
	raw := bytes.NewBuffer(nil)
	raw.WriteByte(currentValuesVersion)
	if err := writeUvarint(raw, uint64(len(values))); err != nil {
		return nil, err
	}

	bw := NewBitWriter(raw)
	for i, v := range values {
		if !v.Valid() {
			return nil, errors.Errorf("mwmcodec: speed group %d at index %d exceeds 3 bits", v, i)
		}
		if err := bw.Write(uint64(v), speedGroupBits); err != nil {
			return nil, errors.Wrap(err, "mwmcodec: encoding speed group")
		}
	}
	if err := bw.Close(); err != nil {
		return nil, err
	}

	deflated := bytes.NewBuffer(nil)
	zw, err := zlib.NewWriterLevel(deflated, zlib.BestCompression)
	if err != nil {
		return nil, errors.Wrap(ErrDeflateFailed, err.Error())
	}
	if _, err := zw.Write(raw.Bytes()); err != nil {
		return nil, errors.Wrap(ErrDeflateFailed, err.Error())
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(ErrDeflateFailed, err.Error())
	}

	return deflated.Bytes(), nil
}

// DeserializeTrafficValues inflates data (zlib) and decodes the wire
// format of §4.5, returning the decoded SpeedGroup slice.
func DeserializeTrafficValues(data []byte) ([]SpeedGroup, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(ErrInflateFailed, err.Error())
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.Wrap(ErrInflateFailed, err.Error())
	}

	r := bytes.NewReader(raw)
	versionByte, err := r.ReadByte()
	if err != nil {
		return nil, errors.Wrap(ErrEndOfInput, err.Error())
	}
	if versionByte != currentValuesVersion {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "traffic values version %d", versionByte)
	}

	n, err := readUvarint(r)
	if err != nil {
		return nil, err
	}

	result := make([]SpeedGroup, n)
	br := NewBitReader(r)
	for i := uint64(0); i < n; i++ {
		v, err := br.Read(speedGroupBits)
		if err != nil {
			return nil, errors.Wrapf(ErrCorruptValues, "payload too short for %d speed groups: %v", n, err)
		}
		result[i] = SpeedGroup(v)
	}

	if r.Len() != 0 {
		return nil, errors.Wrap(ErrCorruptValues, "trailing bytes after traffic values payload")
	}

	return result, nil
}
