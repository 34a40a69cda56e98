package domain

import "time"

// NewRadiusQuery builds a query for events within radiusKm of a point since start.
func NewRadiusQuery(start time.Time, lat, lon, radiusKm float64) Query {
	return Query{
		StartTime:   start,
		Latitude:    &lat,
		Longitude:   &lon,
		MaxRadiusKm: &radiusKm,
	}
}

// NewMagnitudeQuery builds a worldwide query for events of at least minMagnitude since start.
func NewMagnitudeQuery(start time.Time, minMagnitude float64) Query {
	return Query{
		StartTime:    start,
		MinMagnitude: &minMagnitude,
	}
}

// LocationQuery builds a radius query around a preset location.
func LocationQuery(start time.Time, l Location) Query {
	return NewRadiusQuery(start, l.Lat, l.Lon, l.RadiusKm)
}
