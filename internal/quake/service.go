// Package quake implements the dashboard operations: region feeds, rankings,
// and the per-day chart. Each operation issues at most one upstream request.
package quake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/earthquake-dashboard/internal/chart"
	"github.com/couchcryptid/earthquake-dashboard/internal/domain"
	"github.com/couchcryptid/earthquake-dashboard/internal/observability"
)

const (
	// RankingWindowDays is the look-back for the top and latest event queries.
	RankingWindowDays = 30
	// RankingMinMagnitude filters out micro-quakes from the rankings.
	RankingMinMagnitude = 1.0
	// DefaultTopLimit is the number of events on the dashboard leaderboard.
	DefaultTopLimit = 5
	// PublishTimeout bounds how long a feed request waits on the publisher.
	PublishTimeout = 2 * time.Second
)

// Publisher forwards fetched features to a downstream consumer.
type Publisher interface {
	Publish(ctx context.Context, features []domain.RawFeature) error
}

// Service wires an event source to the transformation and rendering steps.
type Service struct {
	source    domain.EventSource
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewService creates a Service. Pass a nil publisher to disable publishing.
func NewService(source domain.EventSource, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		source:    source,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness reports whether the service can answer requests.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.source == nil {
		return errors.New("no earthquake source configured")
	}
	return nil
}

// RegionEvents returns the simplified events of the last days around a preset.
// A non-200 upstream answer is returned as *domain.UpstreamStatusError.
func (s *Service) RegionEvents(ctx context.Context, loc domain.Location, days int) ([]domain.SimplifiedEvent, error) {
	fc, err := s.source.Fetch(ctx, domain.LocationQuery(domain.WindowStart(days), loc))
	if err != nil {
		return nil, fmt.Errorf("region events for %q: %w", loc.Name, err)
	}

	s.publish(ctx, loc, fc.Features)
	return s.SimplifyEvents(fc.Features), nil
}

// SimplifyEvents flattens raw features for JSON rendering.
func (s *Service) SimplifyEvents(features []domain.RawFeature) []domain.SimplifiedEvent {
	return domain.Simplify(features)
}

// Rankings returns up to limit of the strongest events and the most recent
// event worldwide in the ranking window, both taken from one upstream
// response. A non-200 upstream answer yields an empty list and a nil event.
func (s *Service) Rankings(ctx context.Context, limit int) ([]domain.RawFeature, *domain.RawFeature, error) {
	fc, err := s.fetchRanking(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrUpstreamUnavailable) {
			return []domain.RawFeature{}, nil, nil
		}
		return nil, nil, fmt.Errorf("rankings: %w", err)
	}
	return domain.TopByMagnitude(fc.Features, limit), domain.MostRecent(fc.Features), nil
}

// TopEarthquakes returns up to limit of the strongest events worldwide in the
// ranking window. A non-200 upstream answer yields an empty list.
func (s *Service) TopEarthquakes(ctx context.Context, limit int) ([]domain.RawFeature, error) {
	top, _, err := s.Rankings(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("top earthquakes: %w", err)
	}
	return top, nil
}

// LastEarthquake returns the most recent event worldwide in the ranking window,
// or nil when there is none or the upstream answered with a non-200 status.
func (s *Service) LastEarthquake(ctx context.Context) (*domain.RawFeature, error) {
	_, last, err := s.Rankings(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("last earthquake: %w", err)
	}
	return last, nil
}

// GenerateGraph renders a PNG of per-day event counts within radius km of
// (lat, lon) over the last days. Upstream status errors and empty windows
// produce placeholder images; transport failures are returned.
func (s *Service) GenerateGraph(ctx context.Context, days int, lat, lon, radius float64, titleSuffix string) ([]byte, error) {
	q := domain.NewRadiusQuery(domain.WindowStart(days), lat, lon, radius)

	fc, err := s.source.Fetch(ctx, q)
	if err != nil {
		status, ok := domain.UpstreamStatus(err)
		if !ok {
			return nil, fmt.Errorf("generate graph: %w", err)
		}
		s.logger.Warn("rendering error placeholder",
			"status", status,
			"days", days,
			"lat", lat,
			"lon", lon,
		)
		return s.placeholder(chart.MessageError, "error")
	}

	buckets := domain.BucketByDay(fc.Features)
	if len(buckets) == 0 {
		return s.placeholder(chart.MessageNoData, "empty")
	}

	img, err := chart.RenderCounts(buckets, GraphTitle(days, titleSuffix))
	if err != nil {
		return nil, fmt.Errorf("generate graph: %w", err)
	}
	s.metrics.ChartsRendered.WithLabelValues("chart").Inc()
	return img, nil
}

// GraphTitle is the chart heading for a window of days.
func GraphTitle(days int, suffix string) string {
	return fmt.Sprintf("Earthquakes in Last %d Days %s", days, suffix)
}

func (s *Service) placeholder(message, kind string) ([]byte, error) {
	img, err := chart.RenderPlaceholder(message)
	if err != nil {
		return nil, fmt.Errorf("render placeholder: %w", err)
	}
	s.metrics.ChartsRendered.WithLabelValues(kind).Inc()
	return img, nil
}

func (s *Service) fetchRanking(ctx context.Context) (domain.FeatureCollection, error) {
	return s.source.Fetch(ctx, domain.NewMagnitudeQuery(domain.WindowStart(RankingWindowDays), RankingMinMagnitude))
}

// publish hands features to the publisher. Failures are logged and counted,
// never returned.
func (s *Service) publish(ctx context.Context, loc domain.Location, features []domain.RawFeature) {
	if s.publisher == nil || len(features) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, PublishTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, features); err != nil {
		s.metrics.PublishErrors.Inc()
		s.logger.Warn("publish region events failed",
			"location", loc.Name,
			"events", len(features),
			"error", err,
		)
		return
	}
	s.metrics.EventsPublished.Add(float64(len(features)))
}
