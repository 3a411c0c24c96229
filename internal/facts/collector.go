// Package facts collects verified per-entity attribute records.
// Policy: cache first, then fetch, write-through on both success and
// failure so fragile upstreams are never hammered on retry loops.
package facts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/afriquesports/factsheet/internal/cache"
	"github.com/afriquesports/factsheet/internal/facts/adapters"
	"github.com/afriquesports/factsheet/internal/model"
	"github.com/afriquesports/factsheet/internal/resolver"
)

// Fetcher is the external raw-data collaborator. One call may batch
// any number of names; every requested name gets exactly one outcome.
type Fetcher interface {
	FetchMany(ctx context.Context, names []string) []Outcome
}

// Outcome is the per-name result of a raw fetch. Raw carries the
// source's heterogeneous field map; adapters normalize it later.
type Outcome struct {
	Name    string         `json:"name"`
	Success bool           `json:"success"`
	Source  string         `json:"source,omitempty"`
	Raw     map[string]any `json:"raw,omitempty"`
	Errors  []string       `json:"errors,omitempty"`
}

// Collected describes one entity whose facts landed in the sheet.
type Collected struct {
	Name      string
	EntityRef string
	Source    string
}

// Result accounts for every requested entity: collected, missing by
// name, or errored. Nothing is silently dropped.
type Result struct {
	Collected []Collected
	Missing   []string
	Errors    []string
}

// Collector implements the cache-first collection policy.
type Collector struct {
	cache      cache.Cache
	fetcher    Fetcher
	adapters   *adapters.Registry
	log        *zap.SugaredLogger
	successTTL time.Duration
	failureTTL time.Duration
}

// NewCollector creates a collector. failureTTL bounds how long a
// failed fetch is remembered; it should be much shorter than
// successTTL.
func NewCollector(c cache.Cache, fetcher Fetcher, log *zap.SugaredLogger, successTTL, failureTTL time.Duration) *Collector {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if successTTL <= 0 {
		successTTL = time.Hour
	}
	if failureTTL <= 0 {
		failureTTL = 15 * time.Minute
	}
	return &Collector{
		cache:      c,
		fetcher:    fetcher,
		adapters:   adapters.NewRegistry(),
		log:        log,
		successTTL: successTTL,
		failureTTL: failureTTL,
	}
}

// Collect obtains structured facts for the player entities whose refs
// are listed; a nil or empty entityRefs means every player in the
// sheet. The entire phase completes before it returns, so downstream
// ranking never reads a sheet still being mutated.
func (c *Collector) Collect(ctx context.Context, fs *model.FactSheet, entityRefs []string) Result {
	result := Result{}
	players := fs.EntitiesOfKind(model.KindPlayer)
	if len(entityRefs) > 0 {
		wanted := make(map[string]bool, len(entityRefs))
		for _, ref := range entityRefs {
			wanted[ref] = true
		}
		filtered := players[:0]
		for _, entity := range players {
			if wanted[entity.InternalID] {
				filtered = append(filtered, entity)
			}
		}
		players = filtered
	}
	if len(players) == 0 {
		return result
	}

	// Cache pass.
	outcomes := make(map[string]Outcome, len(players))
	var toFetch []string
	for _, entity := range players {
		key := resolver.Normalize(entity.Name)
		rec, hit := cache.GetRecord(c.cache, key)
		if !hit {
			toFetch = append(toFetch, entity.Name)
			continue
		}
		var outcome Outcome
		if err := json.Unmarshal(rec.Payload, &outcome); err != nil {
			toFetch = append(toFetch, entity.Name)
			continue
		}
		outcomes[key] = outcome
	}
	c.log.Infow("facts cache checked", "hits", len(outcomes), "misses", len(toFetch))

	// Fetch pass for misses; failures are cached too, with a short TTL.
	if len(toFetch) > 0 && c.fetcher != nil {
		for _, outcome := range c.fetcher.FetchMany(ctx, toFetch) {
			key := resolver.Normalize(outcome.Name)
			if err := c.store(key, outcome); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("cache %s: %v", outcome.Name, err))
			}
			outcomes[key] = outcome
			if !outcome.Success {
				result.Errors = append(result.Errors, outcome.Errors...)
			}
		}
	}

	// Normalize into the sheet. Each entity ends up collected or missing.
	for _, entity := range players {
		outcome, ok := outcomes[resolver.Normalize(entity.Name)]
		if !ok || !outcome.Success || outcome.Raw == nil {
			result.Missing = append(result.Missing, entity.Name)
			continue
		}

		adapter := c.adapters.ForSource(outcome.Source)
		fields := adapter.Normalize(outcome.Raw)
		fs.SetPlayerFact(entity.InternalID, fields, outcome.Source, c.successTTL)

		result.Collected = append(result.Collected, Collected{
			Name:      entity.Name,
			EntityRef: entity.InternalID,
			Source:    outcome.Source,
		})
	}

	c.log.Infow("facts collected",
		"collected", len(result.Collected),
		"missing", len(result.Missing),
		"errors", len(result.Errors))

	return result
}

func (c *Collector) store(key string, outcome Outcome) error {
	payload, err := json.Marshal(outcome)
	if err != nil {
		return err
	}
	ttl := c.successTTL
	if !outcome.Success {
		ttl = c.failureTTL
	}
	return cache.PutRecord(c.cache, key, cache.Record{
		Success: outcome.Success,
		Payload: payload,
		Errors:  outcome.Errors,
	}, ttl)
}
