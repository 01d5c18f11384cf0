package mwmcodec

// FeatureIterator walks the road-like features of a tile. A concrete
// implementation knows how to parse a tile's feature section; this
// package only needs the shape below.
type FeatureIterator interface {
	// Next advances to the next feature, returning false once exhausted.
	Next() bool
	// FeatureId returns the current feature's id.
	FeatureId() uint32
	// PointCount returns the number of points on the current feature's
	// geometry. A feature with PointCount points has PointCount-1 road
	// segments.
	PointCount() uint16
}

// RoadClassifier decides whether a feature is road-like and, if so,
// whether it carries traffic in one direction or both.
type RoadClassifier interface {
	IsRoad(fid uint32) bool
	IsOneWay(fid uint32) bool
}

// ExtractTrafficKeys walks iter, emitting one RoadSegmentId per
// (feature, segment, direction) triple for every road feature, in the
// same order the original implementation's ForEachFromDat callback
// does: a one-way feature with n points contributes n-1 forward
// entries; a two-way feature contributes n-1 forward/reverse pairs.
// The result comes out sorted because feature ids are visited in
// ascending order and segments/directions are emitted in ascending
// order within each feature.
func ExtractTrafficKeys(iter FeatureIterator, classifier RoadClassifier) ([]RoadSegmentId, error) {
	result := make([]RoadSegmentId, 0)
	for iter.Next() {
		fid := iter.FeatureId()
		if !classifier.IsRoad(fid) {
			continue
		}

		numPoints := iter.PointCount()
		if numPoints == 0 {
			continue
		}

		numDirs := uint8(2)
		if classifier.IsOneWay(fid) {
			numDirs = 1
		}

		for i := uint16(0); i+1 < numPoints; i++ {
			for dir := uint8(0); dir < numDirs; dir++ {
				result = append(result, RoadSegmentId{Fid: fid, Idx: i, Dir: Direction(dir)})
			}
		}
	}
	return result, nil
}
