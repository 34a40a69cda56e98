package domain

import (
	"context"
	"time"
)

// RawFeature is a single GeoJSON feature exactly as returned by the upstream API.
type RawFeature struct {
	ID         string     `json:"id,omitempty"`
	Properties Properties `json:"properties"`
	Geometry   Geometry   `json:"geometry"`
}

// Properties holds the feature fields the dashboard reads. All are nullable upstream.
type Properties struct {
	Mag   *float64 `json:"mag"`
	Place *string  `json:"place"`
	Time  *int64   `json:"time"` // epoch milliseconds
	Type  *string  `json:"type"`
}

// Geometry holds GeoJSON point coordinates: [lon, lat, depth?]. Any axis may
// be null upstream.
type Geometry struct {
	Coordinates []*float64 `json:"coordinates"`
}

// FeatureCollection is the upstream response envelope.
type FeatureCollection struct {
	Features []RawFeature `json:"features"`
}

// Coordinates is the per-axis view of a feature geometry. A nil axis means the
// upstream array was too short to carry it.
type Coordinates struct {
	Longitude *float64 `json:"longitude"`
	Latitude  *float64 `json:"latitude"`
	Depth     *float64 `json:"depth"`
}

// SimplifiedEvent is the flattened representation served by the JSON endpoints.
type SimplifiedEvent struct {
	Magnitude   *float64    `json:"magnitude"`
	Place       *string     `json:"place"`
	Time        *int64      `json:"time"`
	Coordinates Coordinates `json:"coordinates"`
	Type        *string     `json:"type"`
}

// DayBucket is the number of events that occurred on one UTC calendar day.
type DayBucket struct {
	Day   time.Time
	Count int
}

// Query is the parameter set for one upstream request. StartTime is required;
// nil filters are omitted from the request.
type Query struct {
	StartTime    time.Time
	Latitude     *float64
	Longitude    *float64
	MaxRadiusKm  *float64
	MinMagnitude *float64
}

// EventSource fetches earthquake features from the upstream API.
type EventSource interface {
	Fetch(ctx context.Context, q Query) (FeatureCollection, error)
}
