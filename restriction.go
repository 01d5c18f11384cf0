package mwmcodec

import (
	"encoding/binary"
	"io"
	"sort"

	"github.com/pkg/errors"
)

// RestrictionType distinguishes the two restriction categories. The
// numeric values are for in-memory tagging only — the wire format
// encodes the type by group position (No group first, Only group
// second), never as an explicit field.
type RestrictionType uint8

const (
	// No means traversing the restriction's feature-id chain is
	// forbidden.
	No RestrictionType = 0
	// Only means traversing the restriction's feature-id chain is the
	// only permitted path through the junction.
	Only RestrictionType = 1
)

func (t RestrictionType) String() string {
	if t == Only {
		return "only"
	}
	return "no"
}

// InvalidFeatureId is the sentinel feature id. A restriction containing
// it is invalid.
const InvalidFeatureId uint32 = 1<<32 - 1

// Restriction is a turn constraint: a polarity plus an ordered chain of
// at least two feature ids describing the road features involved.
type Restriction struct {
	Type       RestrictionType
	FeatureIds []uint32
}

// IsValid reports whether r has at least two feature ids, contains no
// occurrence of InvalidFeatureId, and has no duplicate adjacent entries.
func (r Restriction) IsValid() bool {
	if len(r.FeatureIds) < 2 {
		return false
	}
	for i, fid := range r.FeatureIds {
		if fid == InvalidFeatureId {
			return false
		}
		if i > 0 && r.FeatureIds[i-1] == fid {
			return false
		}
	}
	return true
}

// Less reports whether r sorts before other under the total ordering
// lexicographic on (Type, FeatureIds), No sorting before Only.
func (r Restriction) Less(other Restriction) bool {
	if r.Type != other.Type {
		return r.Type < other.Type
	}
	for i := 0; i < len(r.FeatureIds) && i < len(other.FeatureIds); i++ {
		if r.FeatureIds[i] != other.FeatureIds[i] {
			return r.FeatureIds[i] < other.FeatureIds[i]
		}
	}
	return len(r.FeatureIds) < len(other.FeatureIds)
}

func (r Restriction) equal(other Restriction) bool {
	if r.Type != other.Type || len(r.FeatureIds) != len(other.FeatureIds) {
		return false
	}
	for i := range r.FeatureIds {
		if r.FeatureIds[i] != other.FeatureIds[i] {
			return false
		}
	}
	return true
}

// RestrictionHeader is the fixed 12-byte little-endian header that
// precedes the two bit-packed restriction groups.
type RestrictionHeader struct {
	Version   uint16
	Reserved  uint16
	NoCount   uint32
	OnlyCount uint32
}

// restrictionHeaderSize is the header's on-wire size in bytes.
const restrictionHeaderSize = 12

// currentRestrictionVersion is the only version this package writes,
// and the only one its reader currently accepts.
const currentRestrictionVersion uint16 = 0

// WriteTo serializes h as 12 little-endian bytes.
func (h RestrictionHeader) WriteTo(w io.Writer) (int64, error) {
	var buf [restrictionHeaderSize]byte
	binary.LittleEndian.PutUint16(buf[0:2], h.Version)
	binary.LittleEndian.PutUint16(buf[2:4], h.Reserved)
	binary.LittleEndian.PutUint32(buf[4:8], h.NoCount)
	binary.LittleEndian.PutUint32(buf[8:12], h.OnlyCount)
	n, err := w.Write(buf[:])
	if err != nil {
		return int64(n), errors.Wrap(ErrIoFailed, err.Error())
	}
	return int64(n), nil
}

// ReadRestrictionHeader reads the fixed 12-byte header from r. The
// reserved field is not validated on read, per this format's forward
// compatibility policy; only the version is checked.
func ReadRestrictionHeader(r io.Reader) (RestrictionHeader, error) {
	var buf [restrictionHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return RestrictionHeader{}, errors.Wrap(ErrEndOfInput, err.Error())
	}
	h := RestrictionHeader{
		Version:   binary.LittleEndian.Uint16(buf[0:2]),
		Reserved:  binary.LittleEndian.Uint16(buf[2:4]),
		NoCount:   binary.LittleEndian.Uint32(buf[4:8]),
		OnlyCount: binary.LittleEndian.Uint32(buf[8:12]),
	}
	if h.Version != currentRestrictionVersion {
		return h, errors.Wrapf(ErrUnsupportedVersion, "restriction header version %d", h.Version)
	}
	return h, nil
}

// SerializeRestrictions writes the 12-byte header followed by the No
// group then the Only group to w. restrictions[:splitIndex] must be all
// No, sorted ascending; restrictions[splitIndex:] must be all Only,
// sorted ascending. Every restriction must satisfy IsValid and have at
// least two feature ids.
func SerializeRestrictions(w io.Writer, restrictions []Restriction, splitIndex int) error {
	if splitIndex < 0 || splitIndex > len(restrictions) {
		return errors.Errorf("mwmcodec: split index %d out of range [0, %d]", splitIndex, len(restrictions))
	}
	noGroup := restrictions[:splitIndex]
	onlyGroup := restrictions[splitIndex:]

	if err := validateGroup(noGroup, No); err != nil {
		return err
	}
	if err := validateGroup(onlyGroup, Only); err != nil {
		return err
	}

	header := RestrictionHeader{
		Version:   currentRestrictionVersion,
		NoCount:   uint32(len(noGroup)),
		OnlyCount: uint32(len(onlyGroup)),
	}
	if _, err := header.WriteTo(w); err != nil {
		return err
	}
	if err := encodeRestrictionGroup(w, noGroup); err != nil {
		return err
	}
	return encodeRestrictionGroup(w, onlyGroup)
}

func validateGroup(group []Restriction, wantType RestrictionType) error {
	for i, r := range group {
		if r.Type != wantType {
			return errors.Wrapf(ErrInvalidRestriction, "restriction %d has type %s, want %s", i, r.Type, wantType)
		}
		if !r.IsValid() {
			return errors.Wrapf(ErrInvalidRestriction, "restriction %d is invalid", i)
		}
		if i > 0 && !group[i-1].Less(r) {
			return errors.Wrapf(ErrUnsortedInput, "restriction %d is not strictly greater than restriction %d", i, i-1)
		}
	}
	return nil
}

// encodeRestrictionGroup writes one group (all the same type) as a
// single bit stream, padded to a byte boundary on return.
func encodeRestrictionGroup(w io.Writer, group []Restriction) error {
	bw := NewBitWriter(w)
	prevFirstFid := uint32(0)
	for _, r := range group {
		if err := EncodeDelta(bw, uint64(len(r.FeatureIds)-1)); err != nil {
			return errors.Wrap(err, "mwmcodec: encoding restriction link count")
		}
		prevLink := prevFirstFid
		for _, fid := range r.FeatureIds {
			signedDelta := int32(fid) - int32(prevLink)
			delta := ZigzagEncode(signedDelta)
			if err := EncodeDelta(bw, uint64(delta)+1); err != nil {
				return errors.Wrap(err, "mwmcodec: encoding restriction feature id delta")
			}
			prevLink = fid
		}
		prevFirstFid = r.FeatureIds[0]
	}
	return bw.Close()
}

// DeserializeRestrictions reads header.NoCount No restrictions followed
// by header.OnlyCount Only restrictions from r.
func DeserializeRestrictions(r io.Reader, header RestrictionHeader) ([]Restriction, error) {
	result := make([]Restriction, 0, int(header.NoCount)+int(header.OnlyCount))

	noGroup, err := decodeRestrictionGroup(r, No, header.NoCount)
	if err != nil {
		return nil, err
	}
	result = append(result, noGroup...)

	onlyGroup, err := decodeRestrictionGroup(r, Only, header.OnlyCount)
	if err != nil {
		return nil, err
	}
	result = append(result, onlyGroup...)

	return result, nil
}

func decodeRestrictionGroup(r io.Reader, t RestrictionType, count uint32) ([]Restriction, error) {
	br := NewBitReader(r)
	result := make([]Restriction, 0, count)
	prevFirstFid := uint32(0)
	for i := uint32(0); i < count; i++ {
		biasedLinkCount, err := DecodeDelta(br)
		if err != nil {
			return nil, errors.Wrap(err, "mwmcodec: decoding restriction link count")
		}
		if biasedLinkCount == 0 {
			return nil, errors.Wrap(ErrCorruptRestriction, "decoded link count is zero")
		}
		linkCount := biasedLinkCount + 1

		featureIds := make([]uint32, linkCount)
		prevLink := prevFirstFid
		for j := uint64(0); j < linkCount; j++ {
			biasedDelta, err := DecodeDelta(br)
			if err != nil {
				return nil, errors.Wrap(err, "mwmcodec: decoding restriction feature id delta")
			}
			if biasedDelta == 0 {
				return nil, errors.Wrap(ErrCorruptRestriction, "decoded feature id delta is zero")
			}
			delta := uint32(biasedDelta - 1)
			fid := uint32(int32(prevLink) + ZigzagDecode(delta))
			featureIds[j] = fid
			prevLink = fid
		}
		prevFirstFid = featureIds[0]
		result = append(result, Restriction{Type: t, FeatureIds: featureIds})
	}
	return result, nil
}

// SortRestrictions sorts restrictions ascending by the total order of
// Less and returns the index of the first Only restriction, suitable
// for use as splitIndex in SerializeRestrictions.
func SortRestrictions(restrictions []Restriction) int {
	sort.Slice(restrictions, func(i, j int) bool {
		return restrictions[i].Less(restrictions[j])
	})
	split := len(restrictions)
	for i, r := range restrictions {
		if r.Type == Only {
			split = i
			break
		}
	}
	return split
}
