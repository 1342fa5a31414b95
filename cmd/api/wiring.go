package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"

	"city-geo-events/internal/adapters/citygeo"
	"city-geo-events/internal/adapters/storage/memory"
	"city-geo-events/internal/domain/events"
	"city-geo-events/internal/platform/config"
	"city-geo-events/internal/platform/logger"
	"city-geo-events/internal/platform/metrics"
)

type app struct {
	cfg      config.Config
	log      logger.Logger
	registry *prometheus.Registry
	client   *citygeo.Client
	cache    *events.Cache
}

func build(c *cli.Context) (*app, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    "city-geo-events",
	})

	client, err := citygeo.NewClient(citygeo.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
		Retry:     cfg.RetryPolicy(),
		Logger:    log,
	})
	if err != nil {
		return nil, fmt.Errorf("citygeo client: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	cache := events.NewCache(memory.NewEntryStore(), client, events.CacheOptions{
		TTL:     cfg.Cache.TTL,
		Fetch:   events.FetchOptions{UpcomingOnly: cfg.API.UpcomingOnly},
		Logger:  log,
		Metrics: metrics.NewCache(reg),
	})

	return &app{cfg: cfg, log: log, registry: reg, client: client, cache: cache}, nil
}
