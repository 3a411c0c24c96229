// Package evidence gathers supporting news snippets for sheet
// entities, scores publisher trust and tags claim types.
package evidence

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/afriquesports/factsheet/internal/model"
	"github.com/afriquesports/factsheet/internal/search"
)

const (
	entitySnippetMax = 200
	topicSnippetMax  = 300
)

// Result accounts for one gathering pass. Degraded means the backend
// was unreachable and the sheet got no evidence; callers decide how
// severe that is.
type Result struct {
	Gathered int
	ByEntity map[string][]string
	Errors   []string
	Degraded bool
}

// Gatherer fans out entity and topic queries against a search backend
// and attaches the hits as evidence.
type Gatherer struct {
	searcher search.Searcher
	trust    *Trust
	cfg      model.SearchConfig
	limiter  *rate.Limiter
	log      *zap.SugaredLogger
	now      func() time.Time
}

// NewGatherer creates a gatherer. The limiter paces entity queries so
// a large sheet does not hammer the backend.
func NewGatherer(searcher search.Searcher, trust *Trust, cfg model.SearchConfig, log *zap.SugaredLogger) *Gatherer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Gatherer{
		searcher: searcher,
		trust:    trust,
		cfg:      cfg,
		limiter:  rate.NewLimiter(rate.Limit(10), 1),
		log:      log,
		now:      time.Now,
	}
}

// Gather queries the backend for every player and team entity, plus
// an optional free-text topic, and appends evidence to the sheet.
// Entity fan-out is capped by the configured MaxPlayers and MaxTeams.
func (g *Gatherer) Gather(ctx context.Context, fs *model.FactSheet, topic string) Result {
	result := Result{ByEntity: make(map[string][]string)}

	if !g.searcher.Available(ctx) {
		g.log.Warnw("search backend not available, skipping evidence")
		result.Degraded = true
		result.Errors = append(result.Errors, "search backend not available")
		return result
	}

	players := fs.EntitiesOfKind(model.KindPlayer)
	if len(players) > g.cfg.MaxPlayers {
		players = players[:g.cfg.MaxPlayers]
	}
	for _, entity := range players {
		query := entity.Name + " actualité football"
		g.gatherFor(ctx, fs, &result, entity, query, g.cfg.PlayerResults)
	}

	teams := fs.EntitiesOfKind(model.KindTeam)
	if len(teams) > g.cfg.MaxTeams {
		teams = teams[:g.cfg.MaxTeams]
	}
	for _, entity := range teams {
		query := entity.Name + " équipe actualité"
		g.gatherFor(ctx, fs, &result, entity, query, g.cfg.TeamResults)
	}

	if topic != "" {
		hits, err := g.searcher.Search(ctx, topic, g.cfg.TopicResults)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("topic: %v", err))
		}
		for _, hit := range hits {
			fs.AddEvidence(g.toEvidence(hit, nil, topicSnippetMax))
			result.Gathered++
		}
	}

	g.log.Infow("evidence gathered",
		"items", result.Gathered,
		"entities", len(result.ByEntity),
		"errors", len(result.Errors))

	return result
}

func (g *Gatherer) gatherFor(ctx context.Context, fs *model.FactSheet, result *Result, entity model.Entity, query string, limit int) {
	if err := g.limiter.Wait(ctx); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", entity.Name, err))
		return
	}

	hits, err := g.searcher.Search(ctx, query, limit)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", entity.Name, err))
		return
	}

	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		id := fs.AddEvidence(g.toEvidence(hit, []string{entity.InternalID}, entitySnippetMax))
		ids = append(ids, id)
		result.Gathered++
	}
	result.ByEntity[entity.Name] = ids
}

func (g *Gatherer) toEvidence(hit search.Result, entityRefs []string, snippetMax int) model.EvidenceItem {
	url := hit.URL
	if url == "" {
		url = "https://" + hit.Publisher + "/article"
	}
	publishedAt := hit.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = g.now().UTC()
	}
	return model.EvidenceItem{
		URL:         url,
		Publisher:   hit.Publisher,
		PublishedAt: publishedAt,
		RetrievedAt: g.now().UTC(),
		Snippet:     truncate(hit.Snippet, snippetMax),
		TrustScore:  g.trust.Score(hit.Publisher),
		ClaimTags:   DetectClaimTags(hit.Snippet),
		EntityRefs:  entityRefs,
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
