package domain

import (
	"sort"
	"time"
)

// TimestampLayout is the human-readable UTC layout used by the dashboard.
const TimestampLayout = "2006-01-02 15:04:05"

// DayLayout formats day buckets on chart axes.
const DayLayout = "2006-01-02"

// Simplify maps each feature 1:1 to a SimplifiedEvent, preserving order.
// Missing properties and short coordinate arrays yield nil fields.
func Simplify(features []RawFeature) []SimplifiedEvent {
	events := make([]SimplifiedEvent, 0, len(features))
	for _, f := range features {
		events = append(events, simplifyFeature(f))
	}
	return events
}

func simplifyFeature(f RawFeature) SimplifiedEvent {
	coords := f.Geometry.Coordinates
	return SimplifiedEvent{
		Magnitude: f.Properties.Mag,
		Place:     f.Properties.Place,
		Time:      f.Properties.Time,
		Coordinates: Coordinates{
			Longitude: coordinateAt(coords, 0),
			Latitude:  coordinateAt(coords, 1),
			Depth:     coordinateAt(coords, 2),
		},
		Type: f.Properties.Type,
	}
}

// coordinateAt returns a copy of coords[i], or nil when i is out of range or
// the axis is null.
func coordinateAt(coords []*float64, i int) *float64 {
	if i < 0 || i >= len(coords) || coords[i] == nil {
		return nil
	}
	v := *coords[i]
	return &v
}

// TopByMagnitude returns at most limit features ordered by descending magnitude.
// A missing magnitude ranks as 0. Equal magnitudes keep their input order.
// The input slice is not modified.
func TopByMagnitude(features []RawFeature, limit int) []RawFeature {
	if limit <= 0 || len(features) == 0 {
		return []RawFeature{}
	}

	sorted := make([]RawFeature, len(features))
	copy(sorted, features)
	sort.SliceStable(sorted, func(i, j int) bool {
		return magnitudeOrZero(sorted[i]) > magnitudeOrZero(sorted[j])
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// MostRecent returns the feature with the greatest time, or nil for empty input.
// A missing time ranks as 0. On ties the earliest feature in input order wins.
func MostRecent(features []RawFeature) *RawFeature {
	if len(features) == 0 {
		return nil
	}

	best := 0
	for i := 1; i < len(features); i++ {
		if timeOrZero(features[i]) > timeOrZero(features[best]) {
			best = i
		}
	}
	latest := features[best]
	return &latest
}

// BucketByDay tallies features per UTC calendar day, ascending by day.
// Features without a time (or with time 0) are skipped.
func BucketByDay(features []RawFeature) []DayBucket {
	counts := make(map[time.Time]int)
	for _, f := range features {
		ms := timeOrZero(f)
		if ms == 0 {
			continue
		}
		counts[dayOf(ms)]++
	}

	buckets := make([]DayBucket, 0, len(counts))
	for day, n := range counts {
		buckets = append(buckets, DayBucket{Day: day, Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Day.Before(buckets[j].Day)
	})
	return buckets
}

// FormatTimestamp renders epoch milliseconds as a UTC "YYYY-MM-DD HH:MM:SS" string.
func FormatTimestamp(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(TimestampLayout)
}

func dayOf(ms int64) time.Time {
	t := time.UnixMilli(ms).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func magnitudeOrZero(f RawFeature) float64 {
	if f.Properties.Mag == nil {
		return 0
	}
	return *f.Properties.Mag
}

func timeOrZero(f RawFeature) int64 {
	if f.Properties.Time == nil {
		return 0
	}
	return *f.Properties.Time
}
