package usgs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/couchcryptid/earthquake-dashboard/internal/domain"
	"github.com/couchcryptid/earthquake-dashboard/internal/observability"
)

// maxErrorBody bounds how much of a non-200 body is kept for logging.
const maxErrorBody = 512

// Client implements domain.EventSource using the USGS FDSN event service.
// Requests are never retried.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a USGS client that gives up on a request after timeout.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// Fetch requests GeoJSON features matching q.
//
// A non-200 answer returns *domain.UpstreamStatusError and no features. A
// transport failure or an undecodable body returns a plain wrapped error.
func (c *Client) Fetch(ctx context.Context, q domain.Query) (domain.FeatureCollection, error) {
	kind := queryKind(q)
	start := time.Now()
	defer func() {
		c.metrics.UpstreamDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+encodeQuery(q).Encode(), nil)
	if err != nil {
		return domain.FeatureCollection{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(kind, "transport_error").Inc()
		return domain.FeatureCollection{}, fmt.Errorf("%s earthquake request: %w", kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.metrics.UpstreamRequests.WithLabelValues(kind, "status_error").Inc()
		c.logger.Warn("usgs api returned non-200 status",
			"query", kind,
			"status", resp.StatusCode,
		)
		return domain.FeatureCollection{}, &domain.UpstreamStatusError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var envelope rawCollection
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(kind, "decode_error").Inc()
		return domain.FeatureCollection{}, fmt.Errorf("decode response: %w", err)
	}
	fc := c.decodeFeatures(kind, envelope.Features)

	c.metrics.UpstreamRequests.WithLabelValues(kind, "success").Inc()
	c.logger.Debug("usgs api request complete", "query", kind, "features", len(fc.Features))
	return fc, nil
}

// rawCollection defers feature decoding so one malformed record cannot
// discard the rest of the response.
type rawCollection struct {
	Features []json.RawMessage `json:"features"`
}

// decodeFeatures decodes each record on its own, in order. Records that do
// not decode are skipped and counted.
func (c *Client) decodeFeatures(kind string, raw []json.RawMessage) domain.FeatureCollection {
	fc := domain.FeatureCollection{Features: make([]domain.RawFeature, 0, len(raw))}
	for i, msg := range raw {
		var f domain.RawFeature
		if err := json.Unmarshal(msg, &f); err != nil {
			c.metrics.FeaturesSkipped.Inc()
			c.logger.Warn("skipping malformed usgs feature",
				"query", kind,
				"index", i,
				"error", err,
			)
			continue
		}
		fc.Features = append(fc.Features, f)
	}
	return fc
}

// encodeQuery renders q as FDSN query parameters. Start time is sent as a
// UTC date, matching the day granularity of the dashboard windows.
func encodeQuery(q domain.Query) url.Values {
	params := url.Values{
		"format":    {"geojson"},
		"starttime": {q.StartTime.UTC().Format("2006-01-02")},
	}
	setFloat(params, "latitude", q.Latitude)
	setFloat(params, "longitude", q.Longitude)
	setFloat(params, "maxradiuskm", q.MaxRadiusKm)
	setFloat(params, "minmagnitude", q.MinMagnitude)
	return params
}

func setFloat(params url.Values, key string, v *float64) {
	if v == nil {
		return
	}
	params.Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
}

func queryKind(q domain.Query) string {
	if q.MaxRadiusKm != nil {
		return "region"
	}
	return "magnitude"
}
