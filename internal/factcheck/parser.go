package factcheck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/clipverity/internal/model"
)

// Field markers the answer provider is asked to emit
const (
	markerTitle       = "TITLE:"
	markerDescription = "DESCRIPTION:"
	markerScore       = "SCORE:"
	markerAnalysis    = "ANALYSIS:"
)

// maxTitleLen is the longest fallback title kept verbatim; longer claims are
// cut to maxTitleLen-3 runes plus an ellipsis.
const maxTitleLen = 60

var (
	titlePattern       = regexp.MustCompile(`(?i)TITLE:\s*([^\n]*)`)
	descriptionPattern = regexp.MustCompile(`(?is)DESCRIPTION:\s*(.*?)(?:\n|SCORE:|$)`)
	scorePattern       = regexp.MustCompile(`(?i)SCORE:\s*(\d+)`)
	analysisPattern    = regexp.MustCompile(`(?is)ANALYSIS:(.*)`)
)

// FormatError reports an answer that does not carry a usable fact-check
type FormatError struct {
	Field  string // TITLE, DESCRIPTION, SCORE or ANALYSIS
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid answer format: %s %s", e.Field, e.Reason)
}

// Parse extracts a fact-check record from free-text answer.
// TITLE and DESCRIPTION fall back to the original claim; SCORE and ANALYSIS are required.
// The returned record has no sources; the caller attaches the provider citations.
func Parse(answer string, originalClaim string) (*model.FactCheckRecord, error) {
	var title string
	if m := titlePattern.FindStringSubmatch(answer); m != nil {
		title = markerValue(m[1])
	} else {
		title = fallbackTitle(originalClaim)
	}

	var description string
	if m := descriptionPattern.FindStringSubmatch(answer); m != nil {
		description = markerValue(m[1])
	} else {
		description = originalClaim
	}

	m := scorePattern.FindStringSubmatch(answer)
	if m == nil {
		return nil, &FormatError{Field: "SCORE", Reason: "missing or invalid, expected SCORE: [1-5]"}
	}
	score, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, &FormatError{Field: "SCORE", Reason: fmt.Sprintf("not a number: %q", m[1])}
	}
	if score < model.MinTruthfulnessScore || score > model.MaxTruthfulnessScore {
		return nil, &FormatError{Field: "SCORE", Reason: fmt.Sprintf("must be between 1-5, got: %d", score)}
	}

	am := analysisPattern.FindStringSubmatch(answer)
	if am == nil {
		return nil, &FormatError{Field: "ANALYSIS", Reason: "missing"}
	}
	analysis := strings.TrimSpace(am[1])

	if strings.TrimSpace(title) == "" {
		return nil, &FormatError{Field: "TITLE", Reason: "cannot be empty"}
	}
	if strings.TrimSpace(description) == "" {
		return nil, &FormatError{Field: "DESCRIPTION", Reason: "cannot be empty"}
	}
	if analysis == "" {
		return nil, &FormatError{Field: "ANALYSIS", Reason: "cannot be empty"}
	}

	return &model.FactCheckRecord{
		Title:             title,
		Description:       description,
		TruthfulnessScore: score,
		Narrative:         analysis,
	}, nil
}

// markerValue trims a captured TITLE or DESCRIPTION value.
// A value that skipped to a line starting with another marker is empty.
func markerValue(captured string) string {
	value := strings.TrimSpace(captured)
	upper := strings.ToUpper(value)
	for _, marker := range []string{markerTitle, markerDescription, markerScore, markerAnalysis} {
		if strings.HasPrefix(upper, marker) {
			return ""
		}
	}
	return value
}

// fallbackTitle derives a title from the claim itself
func fallbackTitle(claim string) string {
	title := strings.TrimSpace(claim)
	runes := []rune(title)
	if len(runes) > maxTitleLen {
		return string(runes[:maxTitleLen-3]) + "..."
	}
	return title
}
