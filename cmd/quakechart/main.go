// Command quakechart renders the per-day earthquake chart for a preset region
// to a PNG file, using the same service path as the dashboard.
//
// Usage:
//
//	go run ./cmd/quakechart \
//	  -location "Japan" \
//	  -days 90 \
//	  -out japan_90d.png
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/couchcryptid/earthquake-dashboard/internal/adapter/usgs"
	"github.com/couchcryptid/earthquake-dashboard/internal/config"
	"github.com/couchcryptid/earthquake-dashboard/internal/domain"
	"github.com/couchcryptid/earthquake-dashboard/internal/observability"
	"github.com/couchcryptid/earthquake-dashboard/internal/quake"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	location := flag.String("location", domain.DefaultLocationName, "preset region: "+strings.Join(domain.LocationNames(), ", "))
	days := flag.Int("days", 30, "look-back window in days")
	out := flag.String("out", "", "output path for the PNG chart")
	suffix := flag.String("suffix", "", "text appended to the chart title")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *days < 1 {
		return fmt.Errorf("days must be positive, got %d", *days)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	loc := domain.LookupLocation(*location)
	if loc.Name != *location {
		log.Printf("unknown location %q, using %q", *location, loc.Name)
	}

	client := usgs.NewClient(cfg.USGSURL, cfg.USGSTimeout, metrics, logger)
	svc := quake.NewService(client, nil, logger, metrics)

	img, err := svc.GenerateGraph(context.Background(), *days, loc.Lat, loc.Lon, loc.RadiusKm, *suffix)
	if err != nil {
		return fmt.Errorf("generate graph: %w", err)
	}

	if err := os.WriteFile(*out, img, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	log.Printf("%s, %d days: wrote %d bytes to %s", loc.Name, *days, len(img), *out)
	return nil
}
