package domain

// Location is a named search area: a center point and a radius in kilometers.
type Location struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	RadiusKm float64 `json:"radius_km"`
}

// DefaultLocationName is used whenever a requested preset is unknown.
const DefaultLocationName = "Tel Aviv, Israel"

// locations is the static preset table, in display order.
var locations = []Location{
	{Name: "Tel Aviv, Israel", Lat: 32.0853, Lon: 34.7818, RadiusKm: 100},
	{Name: "United States (California)", Lat: 36.7783, Lon: -119.4179, RadiusKm: 300},
	{Name: "Japan", Lat: 36.2048, Lon: 138.2529, RadiusKm: 300},
	{Name: "Indonesia", Lat: -0.7893, Lon: 113.9213, RadiusKm: 300},
	{Name: "Chile", Lat: -35.6751, Lon: -71.5430, RadiusKm: 300},
}

// Locations returns a copy of the preset table in display order.
func Locations() []Location {
	out := make([]Location, len(locations))
	copy(out, locations)
	return out
}

// LocationNames returns the preset names in display order.
func LocationNames() []string {
	names := make([]string, len(locations))
	for i, l := range locations {
		names[i] = l.Name
	}
	return names
}

// LookupLocation returns the preset with the given name, falling back to the
// default preset when the name is unknown.
func LookupLocation(name string) Location {
	for _, l := range locations {
		if l.Name == name {
			return l
		}
	}
	return DefaultLocation()
}

// DefaultLocation returns the Tel Aviv preset.
func DefaultLocation() Location {
	return locations[0]
}
