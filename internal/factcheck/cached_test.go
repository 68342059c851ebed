package factcheck

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ppiankov/clipverity/internal/cache"
	"github.com/ppiankov/clipverity/internal/model"
)

type countingChecker struct {
	calls  int
	err    error
	record *model.FactCheckRecord
}

func (c *countingChecker) Check(ctx context.Context, claim string) (*model.FactCheckRecord, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.record, nil
}

func TestCachedChecker_HitAfterMiss(t *testing.T) {
	next := &countingChecker{record: &model.FactCheckRecord{
		Title:             "t",
		Description:       "d",
		TruthfulnessScore: 3,
		Narrative:         "n",
		Sources:           []model.Citation{{ID: "1", URL: "https://example.com", Title: "x"}},
	}}
	checker := NewCachedChecker(next, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute, nil)

	for i := 0; i < 3; i++ {
		record, err := checker.Check(context.Background(), "The sky is green")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if record.Title != "t" || len(record.Sources) != 1 {
			t.Errorf("Unexpected record: %+v", record)
		}
	}

	if next.calls != 1 {
		t.Errorf("Expected 1 upstream call, got %d", next.calls)
	}
}

func TestCachedChecker_FailuresNotCached(t *testing.T) {
	next := &countingChecker{err: errors.New("boom")}
	checker := NewCachedChecker(next, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute, nil)

	for i := 0; i < 2; i++ {
		if _, err := checker.Check(context.Background(), "claim"); err == nil {
			t.Fatal("Expected error, got nil")
		}
	}

	if next.calls != 2 {
		t.Errorf("Expected failures to reach upstream every time, got %d calls", next.calls)
	}
}

func TestCachedChecker_CorruptEntry(t *testing.T) {
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set(cache.ClaimKey("claim"), []byte("{not json"), 0)

	next := &countingChecker{record: &model.FactCheckRecord{Title: "fresh", TruthfulnessScore: 2}}
	checker := NewCachedChecker(next, c, time.Minute, nil)

	record, err := checker.Check(context.Background(), "claim")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if record.Title != "fresh" || next.calls != 1 {
		t.Errorf("Expected corrupt entry to be bypassed, got %+v after %d calls", record, next.calls)
	}
}
