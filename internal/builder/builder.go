// Package builder orchestrates the FactSheet pipeline: entity
// resolution, fact collection, evidence gathering, ranking and
// quality validation, in that order.
package builder

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/afriquesports/factsheet/internal/evidence"
	"github.com/afriquesports/factsheet/internal/facts"
	"github.com/afriquesports/factsheet/internal/model"
	"github.com/afriquesports/factsheet/internal/quality"
	"github.com/afriquesports/factsheet/internal/ranking"
	"github.com/afriquesports/factsheet/internal/resolver"
)

var (
	// ErrStageOrder means a pipeline stage ran before its predecessor.
	ErrStageOrder = errors.New("pipeline stage out of order")
	// ErrRankingNotComputed means a ranking projection was requested
	// from a sheet whose ranking stage never ran.
	ErrRankingNotComputed = errors.New("ranking not computed")
)

// Stage tracks how far a build has progressed.
type Stage int

const (
	StageCreated Stage = iota
	StageEntitiesResolved
	StageFactsCollected
	StageEvidenceGathered
	StageRankingComputed
	StageQualityValidated
)

// Request describes one content build.
type Request struct {
	Title          string
	PlayerNames    []string
	TeamNames      []string
	RankingSize    int
	PositionFilter []string
	Language       string
	Topic          string
}

// Builder wires the pipeline collaborators together.
type Builder struct {
	resolver  *resolver.Resolver
	collector *facts.Collector
	gatherer  *evidence.Gatherer
	scorer    *ranking.Scorer
	validator *quality.Validator
	log       *zap.SugaredLogger
}

// New creates a builder from its collaborators.
func New(res *resolver.Resolver, collector *facts.Collector, gatherer *evidence.Gatherer, scorer *ranking.Scorer, validator *quality.Validator, log *zap.SugaredLogger) *Builder {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Builder{
		resolver:  res,
		collector: collector,
		gatherer:  gatherer,
		scorer:    scorer,
		validator: validator,
		log:       log,
	}
}

// Build is one in-flight pipeline run. Stages must execute in order;
// every stage runs even when its input is empty, so the quality
// checks always see a full battery.
type Build struct {
	b     *Builder
	req   Request
	stage Stage

	// Sheet is the FactSheet under construction.
	Sheet *model.FactSheet
}

// Start opens a build for the given post type.
func (b *Builder) Start(postType model.PostType, req Request) *Build {
	sheet := model.New(model.Options{
		PostType: postType,
		Title:    req.Title,
		Language: req.Language,
	})
	b.log.Infow("factsheet build started",
		"id", sheet.Meta.ID,
		"type", string(postType),
		"title", req.Title)
	return &Build{b: b, req: req, stage: StageCreated, Sheet: sheet}
}

// ResolveEntities resolves the requested player and team names into
// canonical entities.
func (bd *Build) ResolveEntities() error {
	if bd.stage != StageCreated {
		return fmt.Errorf("resolve entities: %w", ErrStageOrder)
	}
	players, teams := bd.b.resolver.ResolveAll(bd.Sheet, bd.req.PlayerNames, bd.req.TeamNames)

	var low []string
	for _, p := range players {
		if p.Confidence < 0.5 {
			low = append(low, p.Name)
		}
	}
	bd.b.log.Infow("entities resolved",
		"players", len(players),
		"teams", len(teams),
		"lowConfidence", low)

	bd.stage = StageEntitiesResolved
	return nil
}

// CollectFacts fetches structured facts for every player entity.
func (bd *Build) CollectFacts(ctx context.Context) error {
	if bd.stage != StageEntitiesResolved {
		return fmt.Errorf("collect facts: %w", ErrStageOrder)
	}
	result := bd.b.collector.Collect(ctx, bd.Sheet, nil)
	if len(result.Missing) > 0 {
		bd.b.log.Warnw("facts missing", "names", result.Missing)
	}
	bd.stage = StageFactsCollected
	return nil
}

// GatherEvidence attaches news snippets for entities and the topic.
// A dead search backend degrades the sheet, it does not abort the
// build.
func (bd *Build) GatherEvidence(ctx context.Context) error {
	if bd.stage != StageFactsCollected {
		return fmt.Errorf("gather evidence: %w", ErrStageOrder)
	}
	topic := bd.req.Topic
	if topic == "" {
		topic = bd.req.Title
	}
	result := bd.b.gatherer.Gather(ctx, bd.Sheet, topic)
	if result.Degraded {
		bd.b.log.Warnw("evidence degraded", "errors", result.Errors)
	}
	bd.stage = StageEvidenceGathered
	return nil
}

// ComputeRanking scores and locks the player order. Only ranking
// builds call this stage.
func (bd *Build) ComputeRanking() error {
	if bd.stage != StageEvidenceGathered {
		return fmt.Errorf("compute ranking: %w", ErrStageOrder)
	}
	bd.b.scorer.Compute(bd.Sheet, ranking.Options{
		Limit:          bd.req.RankingSize,
		PositionFilter: bd.req.PositionFilter,
	})
	bd.stage = StageRankingComputed
	return nil
}

// Validate runs the quality battery and seals the sheet with its
// source hash.
func (bd *Build) Validate() error {
	if bd.stage != StageEvidenceGathered && bd.stage != StageRankingComputed {
		return fmt.Errorf("validate: %w", ErrStageOrder)
	}
	summary := bd.b.validator.Validate(bd.Sheet)
	if _, err := bd.Sheet.ComputeSourceHash(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	bd.b.log.Infow("factsheet build finished",
		"id", bd.Sheet.Meta.ID,
		"hash", bd.Sheet.Meta.SourceHash,
		"status", string(summary.Status))
	bd.stage = StageQualityValidated
	return nil
}

// Stage reports the build's progress.
func (bd *Build) Stage() Stage { return bd.stage }

// BuildRanking runs the full pipeline for a ranking post. The sheet
// is returned even when validation fails; callers gate generation on
// the quality status.
func (b *Builder) BuildRanking(ctx context.Context, req Request) (*model.FactSheet, error) {
	build := b.Start(model.PostRanking, req)
	steps := []func() error{
		build.ResolveEntities,
		func() error { return build.CollectFacts(ctx) },
		func() error { return build.GatherEvidence(ctx) },
		build.ComputeRanking,
		build.Validate,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return build.Sheet, nil
}

// BuildNews runs the pipeline for a news post. No ranking stage; fact
// collection still runs so mentioned players get verified data.
func (b *Builder) BuildNews(ctx context.Context, req Request) (*model.FactSheet, error) {
	build := b.Start(model.PostNews, req)
	steps := []func() error{
		build.ResolveEntities,
		func() error { return build.CollectFacts(ctx) },
		func() error { return build.GatherEvidence(ctx) },
		build.Validate,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return build.Sheet, nil
}
