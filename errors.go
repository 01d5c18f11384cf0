package mwmcodec

import "errors"

// Sentinel errors matching the error taxonomy of the wire codec. Callers
// should use errors.Is against these values; use of github.com/pkg/errors
// at call sites (Wrapf/WithStack) preserves these under errors.Is.
var (
	// ErrEndOfInput is returned when a bit or byte source is exhausted
	// mid-codeword.
	ErrEndOfInput = errors.New("mwmcodec: end of input")

	// ErrOverflow is returned when a universal code would need to
	// represent an integer of 65 bits or more.
	ErrOverflow = errors.New("mwmcodec: integer code overflow")

	// ErrUnsupportedVersion is returned when a header or version byte
	// does not match the version this package understands.
	ErrUnsupportedVersion = errors.New("mwmcodec: unsupported version")

	// ErrCorruptRestriction is returned when a decoded biased link
	// count or biased feature-id delta is zero.
	ErrCorruptRestriction = errors.New("mwmcodec: corrupt restriction stream")

	// ErrCorruptKeys is returned by DeserializeTrafficKeys when bytes
	// remain after the keys payload. Grouping violations in the input of
	// SerializeTrafficKeys are reported as ErrInconsistentKeys.
	ErrCorruptKeys = errors.New("mwmcodec: corrupt traffic keys stream")

	// ErrInconsistentKeys is returned by SerializeTrafficKeys when the
	// input RoadSegmentId slice does not satisfy the grouping invariants
	// required before it can even be framed (a group whose entry count
	// does not divide evenly by its direction count, a group missing
	// required directions). Unsorted input is reported as
	// ErrUnsortedInput.
	ErrInconsistentKeys = errors.New("mwmcodec: inconsistent traffic keys input")

	// ErrCorruptValues is returned when an inflated traffic-values
	// payload has a length inconsistent with its declared count, or has
	// trailing bytes.
	ErrCorruptValues = errors.New("mwmcodec: corrupt traffic values stream")

	// ErrInflateFailed is returned when the deflate (zlib) decompression
	// of a traffic-values blob fails.
	ErrInflateFailed = errors.New("mwmcodec: inflate failed")

	// ErrDeflateFailed is returned when compressing a traffic-values
	// payload fails.
	ErrDeflateFailed = errors.New("mwmcodec: deflate failed")

	// ErrIoFailed is returned when the underlying sink or source returns
	// an I/O error not otherwise classified above.
	ErrIoFailed = errors.New("mwmcodec: io failed")

	// ErrInvalidRestriction is returned by SerializeRestrictions when a
	// caller-supplied restriction fails IsValid, or has fewer than two
	// feature ids, before anything is written to the sink.
	ErrInvalidRestriction = errors.New("mwmcodec: invalid restriction")

	// ErrUnsortedInput is returned by SerializeRestrictions when the
	// [begin, split) or [split, end) ranges are not ascending, or by
	// SerializeTrafficKeys when keys are not ascending.
	ErrUnsortedInput = errors.New("mwmcodec: input is not sorted")

	// ErrUnknownKey is returned by CombineColorings when the known
	// coloring map contains a key absent from the full key list.
	ErrUnknownKey = errors.New("mwmcodec: known coloring contains a key outside the key set")

	// ErrNotRepresentable is returned by the universal integer coders
	// when asked to encode zero, which has no Elias-gamma/delta
	// codeword; callers must bias their values by +1 first.
	ErrNotRepresentable = errors.New("mwmcodec: zero is not representable by a universal code")
)
