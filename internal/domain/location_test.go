package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupLocation(t *testing.T) {
	japan := LookupLocation("Japan")
	assert.Equal(t, "Japan", japan.Name)
	assert.Equal(t, 300.0, japan.RadiusKm)

	fallback := LookupLocation("Atlantis")
	assert.Equal(t, DefaultLocationName, fallback.Name)
	assert.Equal(t, 32.0853, fallback.Lat)
	assert.Equal(t, 34.7818, fallback.Lon)
	assert.Equal(t, 100.0, fallback.RadiusKm)
}

func TestLocations(t *testing.T) {
	names := LocationNames()
	require.Len(t, names, 5)
	assert.Equal(t, DefaultLocationName, names[0])

	presets := Locations()
	presets[0].Name = "mutated"
	assert.Equal(t, DefaultLocationName, DefaultLocation().Name, "callers must not mutate the preset table")
}

func TestLocationQuery(t *testing.T) {
	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	q := LocationQuery(start, LookupLocation("Chile"))

	assert.Equal(t, start, q.StartTime)
	require.NotNil(t, q.Latitude)
	require.NotNil(t, q.Longitude)
	require.NotNil(t, q.MaxRadiusKm)
	assert.Equal(t, -35.6751, *q.Latitude)
	assert.Equal(t, -71.5430, *q.Longitude)
	assert.Equal(t, 300.0, *q.MaxRadiusKm)
	assert.Nil(t, q.MinMagnitude)
}

func TestUpstreamStatusError(t *testing.T) {
	err := fmt.Errorf("fetch: %w", &UpstreamStatusError{StatusCode: 503, Body: "busy"})

	assert.True(t, errors.Is(err, ErrUpstreamUnavailable))
	assert.Contains(t, err.Error(), "503")

	code, ok := UpstreamStatus(err)
	assert.True(t, ok)
	assert.Equal(t, 503, code)

	_, ok = UpstreamStatus(errors.New("dial tcp: connection refused"))
	assert.False(t, ok)
}
