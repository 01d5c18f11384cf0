package mwmcodec

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestTrafficKeysRoundTripS3 implements scenario S3 from the spec.
func TestTrafficKeysRoundTripS3(t *testing.T) {
	keys := []RoadSegmentId{
		{Fid: 1, Idx: 0, Dir: DirectionForward},
		{Fid: 1, Idx: 0, Dir: DirectionReverse},
		{Fid: 1, Idx: 1, Dir: DirectionForward},
		{Fid: 1, Idx: 1, Dir: DirectionReverse},
		{Fid: 2, Idx: 0, Dir: DirectionForward},
		{Fid: 2, Idx: 1, Dir: DirectionForward},
	}

	groups, err := groupTrafficKeys(keys)
	if err != nil {
		t.Fatalf("groupTrafficKeys failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].fid != 1 || groups[0].numSegs != 2 || groups[0].oneWay {
		t.Errorf("group 0 = %+v, want fid=1 numSegs=2 oneWay=false", groups[0])
	}
	if groups[1].fid != 2 || groups[1].numSegs != 2 || !groups[1].oneWay {
		t.Errorf("group 1 = %+v, want fid=2 numSegs=2 oneWay=true", groups[1])
	}

	data, err := SerializeTrafficKeys(keys)
	if err != nil {
		t.Fatalf("SerializeTrafficKeys failed: %v", err)
	}
	got, err := DeserializeTrafficKeys(data)
	if err != nil {
		t.Fatalf("DeserializeTrafficKeys failed: %v", err)
	}
	if !cmp.Equal(got, keys) {
		t.Errorf("round trip mismatch:\ngot  %v\nwant %v", got, keys)
	}
}

func TestTrafficKeysSortedAfterDecode(t *testing.T) {
	keys := []RoadSegmentId{
		{Fid: 1, Idx: 0, Dir: DirectionForward},
		{Fid: 1, Idx: 0, Dir: DirectionReverse},
		{Fid: 5, Idx: 0, Dir: DirectionForward},
		{Fid: 5, Idx: 1, Dir: DirectionForward},
	}
	data, err := SerializeTrafficKeys(keys)
	if err != nil {
		t.Fatalf("SerializeTrafficKeys failed: %v", err)
	}
	got, err := DeserializeTrafficKeys(data)
	if err != nil {
		t.Fatalf("DeserializeTrafficKeys failed: %v", err)
	}
	if !sort.SliceIsSorted(got, func(i, j int) bool { return got[i].Less(got[j]) }) {
		t.Errorf("decoded keys not sorted: %v", got)
	}
}

func TestTrafficKeysUnsortedInputRejected(t *testing.T) {
	keys := []RoadSegmentId{
		{Fid: 2, Idx: 0, Dir: DirectionForward},
		{Fid: 1, Idx: 0, Dir: DirectionForward},
	}
	if _, err := SerializeTrafficKeys(keys); err == nil {
		t.Fatalf("expected error for unsorted input")
	}
}

func TestTrafficKeysOneWayWithReverseRejected(t *testing.T) {
	// A group that is supposedly one-way but a dir=1 entry sneaks in out
	// of Cartesian-product order must be rejected, not silently accepted.
	keys := []RoadSegmentId{
		{Fid: 1, Idx: 0, Dir: DirectionForward},
		{Fid: 1, Idx: 1, Dir: DirectionReverse},
	}
	if _, err := SerializeTrafficKeys(keys); err == nil {
		t.Fatalf("expected ErrInconsistentKeys")
	}
}

func TestTrafficKeysVersionRejected(t *testing.T) {
	data, err := SerializeTrafficKeys(nil)
	if err != nil {
		t.Fatalf("SerializeTrafficKeys failed: %v", err)
	}
	corrupted := append([]byte(nil), data...)
	corrupted[0] = 1
	if _, err := DeserializeTrafficKeys(corrupted); err == nil {
		t.Fatalf("expected UnsupportedVersion error")
	}
}

func TestTrafficKeysTrailingBytesRejected(t *testing.T) {
	data, err := SerializeTrafficKeys([]RoadSegmentId{
		{Fid: 1, Idx: 0, Dir: DirectionForward},
	})
	if err != nil {
		t.Fatalf("SerializeTrafficKeys failed: %v", err)
	}
	corrupted := append(data, 0xFF)
	if _, err := DeserializeTrafficKeys(corrupted); err == nil {
		t.Fatalf("expected CorruptKeys error for trailing bytes")
	}
}

func TestTrafficKeysEmpty(t *testing.T) {
	data, err := SerializeTrafficKeys(nil)
	if err != nil {
		t.Fatalf("SerializeTrafficKeys failed: %v", err)
	}
	got, err := DeserializeTrafficKeys(data)
	if err != nil {
		t.Fatalf("DeserializeTrafficKeys failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}
