package cli

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/afriquesports/factsheet/internal/builder"
	"github.com/afriquesports/factsheet/internal/cache"
	"github.com/afriquesports/factsheet/internal/evidence"
	"github.com/afriquesports/factsheet/internal/facts"
	"github.com/afriquesports/factsheet/internal/fetch"
	"github.com/afriquesports/factsheet/internal/logging"
	"github.com/afriquesports/factsheet/internal/model"
	"github.com/afriquesports/factsheet/internal/quality"
	"github.com/afriquesports/factsheet/internal/ranking"
	"github.com/afriquesports/factsheet/internal/resolver"
	"github.com/afriquesports/factsheet/internal/search"
)

// newLogger builds the process logger from global flags.
func newLogger() *zap.SugaredLogger {
	return logging.New(verbose, quiet)
}

// newBuilder assembles the full pipeline from configuration.
func newBuilder(cfg *model.Config, log *zap.SugaredLogger) (*builder.Builder, error) {
	registry := resolver.DefaultRegistry()
	if cfg.Facts.RegistryPath != "" {
		loaded, err := resolver.LoadRegistry(cfg.Facts.RegistryPath)
		if err != nil {
			return nil, fmt.Errorf("load registry: %w", err)
		}
		registry = loaded
	}

	memoryTTL := time.Duration(cfg.Cache.MemoryTTLMinutes) * time.Minute
	var store cache.Cache = cache.NewMemoryCache(memoryTTL, memoryTTL)
	if cfg.Cache.Dir != "" {
		store = cache.NewLayeredCache(memoryTTL, cfg.Cache.Dir,
			time.Duration(cfg.Cache.DiskTTLHours)*time.Hour)
	}

	fetcher := fetch.NewProfileFetcher(cfg.HTTP,
		fetch.SlugURL(cfg.Facts.ProfileBaseURL),
		cfg.Concurrency.FetchWorkers, log)

	collector := facts.NewCollector(store, fetcher, log,
		memoryTTL,
		time.Duration(cfg.Cache.FailureTTLMinutes)*time.Minute)

	trust := evidence.NewTrust(cfg.Trust.Publishers, cfg.Trust.Default)
	gatherer := evidence.NewGatherer(search.NewClient(cfg.Search), trust, cfg.Search, log)

	scorer := ranking.NewScorer(cfg.Ranking, log)
	validator := quality.NewValidator(cfg, log)

	return builder.New(resolver.New(registry), collector, gatherer, scorer, validator, log), nil
}
