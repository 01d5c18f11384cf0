package mwmcodec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeFeature struct {
	fid        uint32
	pointCount uint16
	isRoad     bool
	isOneWay   bool
}

type fakeFeatureIterator struct {
	features []fakeFeature
	pos      int
}

func (it *fakeFeatureIterator) Next() bool {
	it.pos++
	return it.pos <= len(it.features)
}

func (it *fakeFeatureIterator) FeatureId() uint32 {
	return it.features[it.pos-1].fid
}

func (it *fakeFeatureIterator) PointCount() uint16 {
	return it.features[it.pos-1].pointCount
}

type fakeRoadClassifier struct {
	byFid map[uint32]fakeFeature
}

func (c *fakeRoadClassifier) IsRoad(fid uint32) bool {
	return c.byFid[fid].isRoad
}

func (c *fakeRoadClassifier) IsOneWay(fid uint32) bool {
	return c.byFid[fid].isOneWay
}

func TestExtractTrafficKeys(t *testing.T) {
	features := []fakeFeature{
		{fid: 1, pointCount: 3, isRoad: true, isOneWay: false}, // 2 segments, 2 dirs
		{fid: 2, pointCount: 1, isRoad: true, isOneWay: true},  // no segments
		{fid: 3, pointCount: 2, isRoad: false, isOneWay: false},
		{fid: 4, pointCount: 3, isRoad: true, isOneWay: true}, // 2 segments, 1 dir
	}
	byFid := make(map[uint32]fakeFeature)
	for _, f := range features {
		byFid[f.fid] = f
	}

	iter := &fakeFeatureIterator{features: features}
	classifier := &fakeRoadClassifier{byFid: byFid}

	got, err := ExtractTrafficKeys(iter, classifier)
	if err != nil {
		t.Fatalf("ExtractTrafficKeys failed: %v", err)
	}

	want := []RoadSegmentId{
		{Fid: 1, Idx: 0, Dir: DirectionForward},
		{Fid: 1, Idx: 0, Dir: DirectionReverse},
		{Fid: 1, Idx: 1, Dir: DirectionForward},
		{Fid: 1, Idx: 1, Dir: DirectionReverse},
		{Fid: 4, Idx: 0, Dir: DirectionForward},
		{Fid: 4, Idx: 1, Dir: DirectionForward},
	}
	if !cmp.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractTrafficKeysEmpty(t *testing.T) {
	iter := &fakeFeatureIterator{}
	classifier := &fakeRoadClassifier{byFid: map[uint32]fakeFeature{}}
	got, err := ExtractTrafficKeys(iter, classifier)
	if err != nil {
		t.Fatalf("ExtractTrafficKeys failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}
