package model

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// FactCheckRecord is the structured verdict parsed from one answer-provider response
type FactCheckRecord struct {
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	TruthfulnessScore int        `json:"truthfulnessScore"` // 1 (untrue) .. 5 (true)
	Narrative         string     `json:"response"`
	Sources           []Citation `json:"sources"`
}

// Citation is a source cited by the answer provider
type Citation struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	Title         string `json:"title"`
	Author        string `json:"author,omitempty"`
	PublishedDate string `json:"publishedDate,omitempty"`
	Text          string `json:"text,omitempty"`
	Image         string `json:"image,omitempty"`
	Favicon       string `json:"favicon,omitempty"`

	// Authority is filled in locally, never by the provider
	Authority AuthorityTier `json:"authority,omitempty"`
}

// Domain returns the registrable domain of the citation URL (e.g. "bbc.co.uk"),
// falling back to the bare host when the public suffix lookup fails.
func (c Citation) Domain() string {
	parsed, err := url.Parse(c.URL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return domain
}

// AnswerResponse is the answer provider's reply to a single query
type AnswerResponse struct {
	Answer      string       `json:"answer"`
	Citations   []Citation   `json:"citations"`
	CostDollars *CostDollars `json:"costDollars,omitempty"`
}

// CostDollars reports what a provider call cost, when the provider says
type CostDollars struct {
	Total float64 `json:"total"`
}

// Score bounds
const (
	MinTruthfulnessScore = 1
	MaxTruthfulnessScore = 5
)

// ScoreLabel returns the human-readable verdict for a truthfulness score
func ScoreLabel(score int) string {
	switch score {
	case 1:
		return "Untrue"
	case 2:
		return "Mostly Untrue"
	case 3:
		return "Mix of Truth"
	case 4:
		return "Mostly True"
	case 5:
		return "True"
	default:
		return "Unknown"
	}
}
