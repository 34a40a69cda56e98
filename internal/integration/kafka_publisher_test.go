//go:build integration

package integration_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/earthquake-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/earthquake-dashboard/internal/adapter/usgs"
	"github.com/couchcryptid/earthquake-dashboard/internal/config"
	"github.com/couchcryptid/earthquake-dashboard/internal/domain"
	"github.com/couchcryptid/earthquake-dashboard/internal/observability"
	"github.com/couchcryptid/earthquake-dashboard/internal/quake"
)

const testTopic = "test-earthquake-events"

const regionFeed = `{
  "type": "FeatureCollection",
  "features": [
    {"id": "us7000m9g4", "properties": {"mag": 3.1, "place": "15 km W of Haifa, Israel", "time": 1714120000000, "type": "earthquake"},
     "geometry": {"coordinates": [34.83, 32.79, 10.0]}},
    {"id": "us7000m9h1", "properties": {"mag": null, "place": null, "time": 1714130000000, "type": "quarry blast"},
     "geometry": {"coordinates": [35.01, 31.95]}}
  ]
}`

type publishedMessage struct {
	Feature domain.RawFeature
	Key     string
	Headers map[string]string
}

func readPublished(ctx context.Context, t *testing.T, consumer *kafkago.Reader) publishedMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from event topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var f domain.RawFeature
	require.NoError(t, json.Unmarshal(msg.Value, &f), "unmarshal event message")

	return publishedMessage{Feature: f, Key: string(msg.Key), Headers: headers}
}

func newConsumer(t *testing.T, broker string) *kafkago.Reader {
	t.Helper()
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

// TestWriterPublish verifies that kafka.Writer keys messages by feature id and
// sets the event headers.
func TestWriterPublish(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaTopic: testTopic}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	mag, place, when, kind := 4.2, "Central Chile", int64(1714100000000), "earthquake"
	feature := domain.RawFeature{
		ID:         "us7000abcd",
		Properties: domain.Properties{Mag: &mag, Place: &place, Time: &when, Type: &kind},
		Geometry:   domain.Geometry{Coordinates: point(-71.5, -35.7, 33)},
	}
	require.NoError(t, writer.Publish(ctx, []domain.RawFeature{feature}))

	pm := readPublished(ctx, t, newConsumer(t, broker))
	assert.Equal(t, "us7000abcd", pm.Key)
	assert.Equal(t, "earthquake", pm.Headers["event_type"])
	_, err := time.Parse(time.RFC3339, pm.Headers["published_at"])
	assert.NoError(t, err, "published_at should be valid RFC3339")
	assert.Equal(t, feature, pm.Feature)
}

// TestRegionEventsPublishEndToEnd wires the USGS client, the service, and the
// Kafka publisher, and checks that every fetched feature lands on the topic.
func TestRegionEventsPublishEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(regionFeed))
	}))
	t.Cleanup(upstream.Close)

	metrics := observability.NewMetricsForTesting()
	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaTopic: testTopic}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	client := usgs.NewClient(upstream.URL, 5*time.Second, metrics, discardLogger())
	svc := quake.NewService(client, writer, discardLogger(), metrics)

	events, err := svc.RegionEvents(ctx, domain.DefaultLocation(), 30)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Nil(t, events[1].Magnitude)
	assert.Nil(t, events[1].Coordinates.Depth)

	consumer := newConsumer(t, broker)
	received := map[string]publishedMessage{}
	for len(received) < 2 {
		pm := readPublished(ctx, t, consumer)
		received[pm.Key] = pm
	}

	require.Contains(t, received, "us7000m9g4")
	require.Contains(t, received, "us7000m9h1")
	assert.Equal(t, "earthquake", received["us7000m9g4"].Headers["event_type"])
	assert.Equal(t, "quarry blast", received["us7000m9h1"].Headers["event_type"])
	assert.Nil(t, received["us7000m9h1"].Feature.Properties.Mag)
}
