package worker

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ppiankov/clipverity/internal/model"
)

// ClaimResult is the outcome of fact-checking one standalone claim
type ClaimResult struct {
	Claim     string                 `json:"claim"`
	FactCheck *model.FactCheckRecord `json:"factCheck"`
	Error     string                 `json:"error,omitempty"`
}

// CheckClaims fact-checks standalone claims under the same rate ceiling as Enrich.
// Results are in input order; unlike Enrich, the failure text is kept.
func (e *Enricher) CheckClaims(ctx context.Context, claims []string) []ClaimResult {
	results := make([]ClaimResult, len(claims))
	for i, claim := range claims {
		results[i].Claim = claim
	}

	e.runBatches(ctx, len(claims), func(ctx context.Context, idx int) {
		record, err := e.check(ctx, claims[idx])
		if err != nil {
			e.log.Warn("fact-check failed", slog.Int("claim", idx), slog.Any("error", err))
			results[idx].Error = err.Error()
			return
		}
		results[idx].FactCheck = record
	})

	return results
}

// ReadClaimsFromFile reads claims from a file (one per line)
func ReadClaimsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var claims []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			claims = append(claims, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return claims, nil
}
