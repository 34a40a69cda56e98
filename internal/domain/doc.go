// Package domain models earthquake reports published by the USGS Earthquake
// Hazards Program and the transformations the dashboard applies to them.
//
// # Data Source
//
// Events come from the FDSN event web service at
// https://earthquake.usgs.gov/fdsnws/event/1/query, requested with
// format=geojson. The response is a GeoJSON FeatureCollection:
//
//	{ "features": [ { "id": "us7000abcd",
//	                  "properties": {"mag": 4.6, "place": "...", "time": 1714143000000, "type": "earthquake"},
//	                  "geometry": {"coordinates": [lon, lat, depth]} } ] }
//
// # Upstream Conventions
//
// Time is epoch milliseconds (UTC). Coordinates follow GeoJSON order:
// longitude, latitude, then depth in km. Depth is occasionally omitted and
// any property may be null.
//
// Missing values:
//
//	Null or absent fields are carried as nil pointers and serialize as JSON
//	null. They are never replaced with a zero value in a [SimplifiedEvent].
//	Ranking operations treat a missing magnitude or time as 0.
//
// Day buckets:
//
//	Charts tally events per UTC calendar day. Events with a missing or zero
//	time are not counted. See [BucketByDay].
package domain
