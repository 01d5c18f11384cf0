package mwmcodec

import (
	"bytes"

	"github.com/pkg/errors"
)

// currentKeysVersion is the only traffic-keys wire version this package
// writes or accepts.
const currentKeysVersion uint8 = 0

// trafficKeyGroup is one run of RoadSegmentId entries sharing a feature
// id, re-expressed the way the wire format stores it.
type trafficKeyGroup struct {
	fid     uint32
	numSegs uint64
	oneWay  bool
}

// groupTrafficKeys partitions a sorted RoadSegmentId slice into
// per-fid groups and validates the per-group direction invariants of
// §3: either every entry in a group is forward-only, or both
// directions appear for every segment index in lockstep
// (i=0,fwd),(i=0,rev),(i=1,fwd),(i=1,rev),...
func groupTrafficKeys(keys []RoadSegmentId) ([]trafficKeyGroup, error) {
	groups := make([]trafficKeyGroup, 0)
	for i := 0; i < len(keys); {
		j := i
		for j < len(keys) && keys[j].Fid == keys[i].Fid {
			j++
		}
		groupKeys := keys[i:j]

		oneWay := true
		for _, k := range groupKeys {
			if k.Dir == DirectionReverse {
				oneWay = false
				break
			}
		}
		numDirs := uint64(1)
		if !oneWay {
			numDirs = 2
		}
		if uint64(len(groupKeys))%numDirs != 0 {
			return nil, errors.Wrapf(ErrInconsistentKeys,
				"fid %d: %d entries does not divide evenly by %d directions", keys[i].Fid, len(groupKeys), numDirs)
		}
		numSegs := uint64(len(groupKeys)) / numDirs

		if err := validateTrafficKeyGroupShape(groupKeys, numSegs, oneWay); err != nil {
			return nil, err
		}

		groups = append(groups, trafficKeyGroup{fid: keys[i].Fid, numSegs: numSegs, oneWay: oneWay})
		i = j
	}
	return groups, nil
}

// validateTrafficKeyGroupShape checks that groupKeys is exactly the
// expected Cartesian product in order: for one-way groups,
// (idx=0,fwd),(idx=1,fwd),...; for two-way groups,
// (idx=0,fwd),(idx=0,rev),(idx=1,fwd),(idx=1,rev),...
func validateTrafficKeyGroupShape(groupKeys []RoadSegmentId, numSegs uint64, oneWay bool) error {
	pos := 0
	for idx := uint64(0); idx < numSegs; idx++ {
		dirs := []Direction{DirectionForward}
		if !oneWay {
			dirs = []Direction{DirectionForward, DirectionReverse}
		}
		for _, dir := range dirs {
			want := RoadSegmentId{Fid: groupKeys[0].Fid, Idx: uint16(idx), Dir: dir}
			if groupKeys[pos] != want {
				return errors.Wrapf(ErrInconsistentKeys, "fid %d: entry %d is %v, want %v",
					groupKeys[0].Fid, pos, groupKeys[pos], want)
			}
			pos++
		}
	}
	return nil
}

// SerializeTrafficKeys encodes a sorted, properly grouped RoadSegmentId
// slice to the wire format of §4.4/§6.2 (uncompressed).
func SerializeTrafficKeys(keys []RoadSegmentId) ([]byte, error) {
	for i := 1; i < len(keys); i++ {
		if !keys[i-1].Less(keys[i]) {
			return nil, errors.Wrapf(ErrUnsortedInput, "key %d is not strictly greater than key %d", i, i-1)
		}
	}

	groups, err := groupTrafficKeys(keys)
	if err != nil {
		return nil, err
	}

	out := bytes.NewBuffer(nil)
	out.WriteByte(currentKeysVersion)
	if err := writeUvarint(out, uint64(len(groups))); err != nil {
		return nil, err
	}

	bw := NewBitWriter(out)
	prevFid := uint32(0)
	for _, g := range groups {
		if err := EncodeGamma(bw, uint64(g.fid-prevFid)+1); err != nil {
			return nil, errors.Wrap(err, "mwmcodec: encoding traffic key fid delta")
		}
		prevFid = g.fid
	}
	for _, g := range groups {
		if err := EncodeGamma(bw, g.numSegs+1); err != nil {
			return nil, errors.Wrap(err, "mwmcodec: encoding traffic key segment count")
		}
	}
	for _, g := range groups {
		bit := uint64(0)
		if g.oneWay {
			bit = 1
		}
		if err := bw.Write(bit, 1); err != nil {
			return nil, errors.Wrap(err, "mwmcodec: encoding traffic key one-way flag")
		}
	}
	if err := bw.Close(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// DeserializeTrafficKeys decodes the wire format written by
// SerializeTrafficKeys, returning the expanded, sorted RoadSegmentId
// slice.
func DeserializeTrafficKeys(data []byte) ([]RoadSegmentId, error) {
	r := bytes.NewReader(data)

	versionByte, err := r.ReadByte()
	if err != nil {
		return nil, errors.Wrap(ErrEndOfInput, err.Error())
	}
	if versionByte != currentKeysVersion {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "traffic keys version %d", versionByte)
	}

	g, err := readUvarint(r)
	if err != nil {
		return nil, err
	}

	fids := make([]uint32, g)
	numSegs := make([]uint64, g)
	oneWay := make([]bool, g)

	br := NewBitReader(r)
	prevFid := uint32(0)
	for i := uint64(0); i < g; i++ {
		biased, err := DecodeGamma(br)
		if err != nil {
			return nil, errors.Wrap(err, "mwmcodec: decoding traffic key fid delta")
		}
		prevFid += uint32(biased - 1)
		fids[i] = prevFid
	}
	for i := uint64(0); i < g; i++ {
		biased, err := DecodeGamma(br)
		if err != nil {
			return nil, errors.Wrap(err, "mwmcodec: decoding traffic key segment count")
		}
		numSegs[i] = biased - 1
	}
	for i := uint64(0); i < g; i++ {
		bit, err := br.ReadBit()
		if err != nil {
			return nil, errors.Wrap(err, "mwmcodec: decoding traffic key one-way flag")
		}
		oneWay[i] = bit != 0
	}

	if r.Len() != 0 {
		return nil, errors.Wrap(ErrCorruptKeys, "trailing bytes after traffic keys payload")
	}

	result := make([]RoadSegmentId, 0)
	for i := uint64(0); i < g; i++ {
		numDirs := uint8(1)
		if !oneWay[i] {
			numDirs = 2
		}
		for seg := uint64(0); seg < numSegs[i]; seg++ {
			for dir := uint8(0); dir < numDirs; dir++ {
				result = append(result, RoadSegmentId{Fid: fids[i], Idx: uint16(seg), Dir: Direction(dir)})
			}
		}
	}
	return result, nil
}
