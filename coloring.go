package mwmcodec

import "github.com/pkg/errors"

// Coloring maps a directed road segment to its known speed group.
type Coloring map[RoadSegmentId]SpeedGroup

// Get returns the speed group for id, or Unknown if id has no entry.
// A direct analog of the original's TrafficInfo::GetSpeedGroup.
func (c Coloring) Get(id RoadSegmentId) SpeedGroup {
	if g, ok := c[id]; ok {
		return g
	}
	return Unknown
}

// CombineSummary reports how many of a key list's entries had a known
// color versus fell back to Unknown.
type CombineSummary struct {
	Known   int
	Unknown int
}

// CombineColorings fills Unknown for every key in allKeys absent from
// known, and preserves known's value otherwise. It is an error for known
// to contain a key that does not appear in allKeys.
func CombineColorings(allKeys []RoadSegmentId, known Coloring) (Coloring, CombineSummary, error) {
	result := make(Coloring, len(allKeys))
	var summary CombineSummary

	for _, key := range allKeys {
		if g, ok := known[key]; ok {
			result[key] = g
			summary.Known++
		} else {
			result[key] = Unknown
			summary.Unknown++
		}
	}

	for key := range known {
		if _, ok := result[key]; !ok {
			return nil, CombineSummary{}, errors.Wrapf(ErrUnknownKey, "%v", key)
		}
	}

	return result, summary, nil
}
