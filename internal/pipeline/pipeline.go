package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ppiankov/clipverity/internal/answer"
	"github.com/ppiankov/clipverity/internal/cache"
	"github.com/ppiankov/clipverity/internal/clips"
	"github.com/ppiankov/clipverity/internal/factcheck"
	"github.com/ppiankov/clipverity/internal/model"
	"github.com/ppiankov/clipverity/internal/sources"
	"github.com/ppiankov/clipverity/internal/video"
	"github.com/ppiankov/clipverity/internal/worker"
)

// ErrNotConfigured is returned by operations whose provider could not be set up
var ErrNotConfigured = errors.New("provider not configured")

// VideoSource produces raw clip records for a video URL
type VideoSource interface {
	RawHighlights(ctx context.Context, videoURL string) ([]model.RawClip, error)
}

// RawChecker fact-checks a claim and also returns the provider's answer
type RawChecker interface {
	CheckRaw(ctx context.Context, claim string) (*model.FactCheckRecord, *model.AnswerResponse, error)
}

// Components are the collaborators a Pipeline runs on.
// A nil Video or Checker disables the operations that need it.
type Components struct {
	Video       VideoSource
	Checker     factcheck.Checker
	Raw         RawChecker
	RPS         int
	Cushion     float64
	SortByStart bool
	Authority   *sources.AuthorityClassifier // nil = citations left unclassified
	Logger      *slog.Logger

	videoErr error
	checkErr error
}

// Pipeline turns a video URL into clips and fact-checked clips
type Pipeline struct {
	video       VideoSource
	checker     factcheck.Checker
	raw         RawChecker
	enricher    *worker.Enricher
	authority   *sources.AuthorityClassifier
	sortByStart bool
	log         *slog.Logger

	videoErr error
	checkErr error
}

// New wires the providers named in cfg. A provider that cannot be built
// (typically a missing API key) is logged and its operations return ErrNotConfigured.
func New(cfg *model.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	comp := Components{
		RPS:         cfg.Enrich.RequestsPerSecond,
		Cushion:     cfg.Enrich.Cushion,
		SortByStart: cfg.Enrich.SortByStart,
		Authority:   sources.NewAuthorityClassifier(&cfg.Sources),
		Logger:      logger,
	}

	vc, err := video.NewClient(video.ConfigFromModel(cfg.Video, cfg.HTTP), logger)
	if err != nil {
		logger.Warn("video analysis disabled", slog.Any("error", err))
		comp.videoErr = err
	} else {
		comp.Video = vc
	}

	provider, err := answer.NewProvider(answer.ConfigFromModel(cfg.Answer, cfg.HTTP))
	if err != nil {
		logger.Warn("fact-checking disabled", slog.Any("error", err))
		comp.checkErr = err
	} else {
		client := factcheck.NewClient(provider, newLimiter(cfg.Enrich))
		comp.Raw = client
		comp.Checker = client
		if cfg.Cache.Enabled {
			comp.Checker = factcheck.NewCachedChecker(client, cache.New(cfg.Cache.TTL, cfg.Cache.Dir), cfg.Cache.TTL, logger)
		}
	}

	return NewWithComponents(comp)
}

// newLimiter is the client-side guard shared by batches and standalone checks.
// Per-provider overrides replace the enrichment ceiling for that provider only.
func newLimiter(cfg model.EnrichConfig) *worker.Limiter {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = worker.DefaultRequestsPerSecond
	}

	limiter := worker.NewLimiter(float64(rps), rps)
	for name, providerRPS := range cfg.ProviderRPS {
		if providerRPS > 0 {
			limiter.SetRate(strings.ToLower(name), providerRPS)
		}
	}
	return limiter
}

// NewWithComponents builds a pipeline from explicit collaborators
func NewWithComponents(c Components) *Pipeline {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pipeline{
		video:       c.Video,
		checker:     c.Checker,
		raw:         c.Raw,
		authority:   c.Authority,
		sortByStart: c.SortByStart,
		log:         logger,
		videoErr:    c.videoErr,
		checkErr:    c.checkErr,
	}
	if c.Checker != nil {
		p.enricher = worker.NewEnricher(c.RPS, c.Cushion, p.check, logger)
	}
	return p
}

// Highlights returns the claim-bearing clips of a video.
// Only failing to obtain raw analysis data is an error; unusable records are dropped.
func (p *Pipeline) Highlights(ctx context.Context, downloadURL string) ([]model.Clip, error) {
	if p.video == nil {
		return nil, p.notConfigured("video analysis", p.videoErr)
	}

	raw, err := p.video.RawHighlights(ctx, downloadURL)
	if err != nil {
		return nil, fmt.Errorf("obtain analysis: %w", err)
	}

	out, stats := clips.NormalizeWithStats(raw)
	if stats.Dropped > 0 {
		p.log.Warn("dropped unusable clip records",
			slog.Int("dropped", stats.Dropped),
			slog.Int("kept", stats.Kept))
	}

	if p.sortByStart {
		clips.SortByStart(out)
	}

	return out, nil
}

// Enrich returns the clips of a video, each with its fact-check or nil on failure
func (p *Pipeline) Enrich(ctx context.Context, downloadURL string) ([]model.EnrichedClip, error) {
	if p.enricher == nil {
		return nil, p.notConfigured("fact-checking", p.checkErr)
	}

	found, err := p.Highlights(ctx, downloadURL)
	if err != nil {
		return nil, err
	}

	return p.enricher.Enrich(ctx, found), nil
}

// EnrichClips fact-checks clips that were obtained earlier
func (p *Pipeline) EnrichClips(ctx context.Context, found []model.Clip) ([]model.EnrichedClip, error) {
	if p.enricher == nil {
		return nil, p.notConfigured("fact-checking", p.checkErr)
	}
	return p.enricher.Enrich(ctx, found), nil
}

// Report enriches a video and wraps the result for rendering
func (p *Pipeline) Report(ctx context.Context, downloadURL string) (*model.Report, error) {
	enriched, err := p.Enrich(ctx, downloadURL)
	if err != nil {
		return nil, err
	}
	return model.NewReport(downloadURL, enriched, time.Now()), nil
}

// FactCheck checks one standalone claim and returns the raw answer alongside it.
// It bypasses the cache so the answer is always current.
func (p *Pipeline) FactCheck(ctx context.Context, claim string) (*model.FactCheckResult, error) {
	if p.raw == nil {
		return nil, p.notConfigured("fact-checking", p.checkErr)
	}

	record, resp, err := p.raw.CheckRaw(ctx, claim)
	if err != nil {
		return nil, err
	}

	return &model.FactCheckResult{Claim: claim, FactCheck: p.classify(record), Answer: resp}, nil
}

// CheckClaims fact-checks a list of standalone claims under the rate ceiling
func (p *Pipeline) CheckClaims(ctx context.Context, claims []string) ([]worker.ClaimResult, error) {
	if p.enricher == nil {
		return nil, p.notConfigured("fact-checking", p.checkErr)
	}
	return p.enricher.CheckClaims(ctx, claims), nil
}

// check is the enricher's CheckFunc: the configured checker plus citation tiers
func (p *Pipeline) check(ctx context.Context, claim string) (*model.FactCheckRecord, error) {
	record, err := p.checker.Check(ctx, claim)
	if err != nil {
		return nil, err
	}
	return p.classify(record), nil
}

// classify returns a copy of record with authority tiers set on its sources.
// Cached records are shared between goroutines and are never modified.
func (p *Pipeline) classify(record *model.FactCheckRecord) *model.FactCheckRecord {
	if p.authority == nil || record == nil {
		return record
	}
	out := *record
	out.Sources = append([]model.Citation(nil), record.Sources...)
	p.authority.Annotate(&out)
	return &out
}

func (p *Pipeline) notConfigured(what string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%s: %w: %v", what, ErrNotConfigured, cause)
	}
	return fmt.Errorf("%s: %w", what, ErrNotConfigured)
}
