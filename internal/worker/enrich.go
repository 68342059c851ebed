package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ppiankov/clipverity/internal/model"
)

// DefaultRequestsPerSecond is the rate ceiling applied when none is configured
const DefaultRequestsPerSecond = 3

// DefaultCushion stretches each inter-batch pause past one second
const DefaultCushion = 1.05

// CheckFunc fact-checks one claim
type CheckFunc func(ctx context.Context, claim string) (*model.FactCheckRecord, error)

// enrichSleepFunc pauses between batches; replaced in tests
var enrichSleepFunc = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Enricher attaches fact-checks to clips without exceeding a requests-per-second ceiling.
// Calls run in batches of rps; every call in a batch starts together and the
// next batch starts no sooner than cushion seconds after the previous one joined.
type Enricher struct {
	rps     int
	cushion float64
	check   CheckFunc
	log     *slog.Logger
}

// NewEnricher creates an enricher. rps <= 0 uses DefaultRequestsPerSecond,
// cushion < 1 uses DefaultCushion.
func NewEnricher(rps int, cushion float64, check CheckFunc, logger *slog.Logger) *Enricher {
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	if cushion < 1 {
		cushion = DefaultCushion
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{rps: rps, cushion: cushion, check: check, log: logger}
}

// Pause returns the delay inserted between batches
func (e *Enricher) Pause() time.Duration {
	return time.Duration(e.cushion * float64(time.Second))
}

// Enrich fact-checks every clip description.
// The output has one entry per input clip, in input order. A failed check
// leaves FactCheck nil and is logged, never returned. If ctx ends between
// batches the remaining clips are returned unchecked.
func (e *Enricher) Enrich(ctx context.Context, clips []model.Clip) []model.EnrichedClip {
	results := make([]model.EnrichedClip, len(clips))
	for i, clip := range clips {
		results[i].Clip = clip
	}

	e.runBatches(ctx, len(clips), func(ctx context.Context, idx int) {
		record, err := e.check(ctx, clips[idx].Description)
		if err != nil {
			e.log.Warn("fact-check failed",
				slog.Int("clip", idx),
				slog.Float64("start", clips[idx].StartSec),
				slog.Any("error", err))
			return
		}
		results[idx].FactCheck = record
	})

	return results
}

// runBatches calls fn for indexes [0,n) in rate-bounded concurrent batches.
// Each fn invocation owns its index; no two invocations share one.
func (e *Enricher) runBatches(ctx context.Context, n int, fn func(ctx context.Context, idx int)) {
	for _, b := range batchBounds(n, e.rps) {
		if b.start > 0 {
			if err := enrichSleepFunc(ctx, e.Pause()); err != nil {
				e.log.Warn("enrichment interrupted",
					slog.Int("completed", b.start),
					slog.Int("remaining", n-b.start),
					slog.Any("error", err))
				return
			}
		}

		var wg sync.WaitGroup
		for idx := b.start; idx < b.end; idx++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				fn(ctx, idx)
			}(idx)
		}
		wg.Wait()
	}
}

// bounds is a half-open index range
type bounds struct {
	start, end int
}

// batchBounds splits n items into consecutive batches of at most size
func batchBounds(n, size int) []bounds {
	if n <= 0 || size <= 0 {
		return nil
	}
	out := make([]bounds, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		out = append(out, bounds{start: start, end: end})
	}
	return out
}
