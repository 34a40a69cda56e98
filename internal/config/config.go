package config

import (
	"errors"
	"net/url"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// DefaultUSGSURL is the FDSN event query endpoint of the USGS Earthquake Hazards Program.
const DefaultUSGSURL = "https://earthquake.usgs.gov/fdsnws/event/1/query"

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	AppVersion      string

	// Upstream earthquake API.
	USGSURL     string
	USGSTimeout time.Duration

	// Optional event publishing. Disabled when no brokers are configured.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaEnabled bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	usgsTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("USGS_TIMEOUT", "10s"))
	if err != nil || usgsTimeout <= 0 {
		return nil, errors.New("invalid USGS_TIMEOUT")
	}

	usgsURL := sharedcfg.EnvOrDefault("USGS_URL", DefaultUSGSURL)
	if u, err := url.Parse(usgsURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.New("invalid USGS_URL")
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8000"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		AppVersion:      sharedcfg.EnvOrDefault("APP_VERSION", "1.0"),

		USGSURL:     usgsURL,
		USGSTimeout: usgsTimeout,

		KafkaBrokers: brokers,
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "earthquake-events"),
		KafkaEnabled: len(brokers) > 0,
	}

	return cfg, nil
}
