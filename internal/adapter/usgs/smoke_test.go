//go:build usgs

package usgs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/earthquake-dashboard/internal/config"
	"github.com/couchcryptid/earthquake-dashboard/internal/domain"
)

// These tests hit the real USGS API.
// Run with: go test -tags=usgs ./internal/adapter/usgs/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	return testClient(config.DefaultUSGSURL, 10*time.Second)
}

func TestSmoke_MagnitudeQuery(t *testing.T) {
	c := smokeClient(t)

	fc, err := c.Fetch(context.Background(), domain.NewMagnitudeQuery(time.Now().AddDate(0, 0, -7), 4))
	require.NoError(t, err)
	require.NotEmpty(t, fc.Features, "a week of M4+ events worldwide is never empty")

	for _, f := range fc.Features {
		require.NotNil(t, f.Properties.Mag)
		assert.GreaterOrEqual(t, *f.Properties.Mag, 4.0)
	}
}

func TestSmoke_RegionQuery(t *testing.T) {
	c := smokeClient(t)

	start := time.Now().AddDate(0, 0, -30)
	fc, err := c.Fetch(context.Background(), domain.LocationQuery(start, domain.LookupLocation("Japan")))
	require.NoError(t, err)

	for _, f := range fc.Features {
		require.NotNil(t, f.Properties.Time)
		assert.GreaterOrEqual(t, *f.Properties.Time, start.AddDate(0, 0, -1).UnixMilli())
	}
}
