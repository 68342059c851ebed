package model

import "time"

// Report is the rendered outcome of enriching one video
type Report struct {
	SourceURL   string         `json:"sourceUrl"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Clips       []EnrichedClip `json:"clips"`
	Summary     ReportSummary  `json:"summary"`
}

// ReportSummary tallies fact-check outcomes across a report
type ReportSummary struct {
	Clips   int `json:"clips"`
	Checked int `json:"checked"`
	Failed  int `json:"failed"`
	Sources int `json:"sources"`
	// PrimarySources counts citations classified as primary
	PrimarySources int `json:"primarySources"`
	// ByScore counts checked clips per truthfulness score, index 0 = score 1
	ByScore [MaxTruthfulnessScore]int `json:"byScore"`
}

// NewReport builds a report and its summary
func NewReport(sourceURL string, clips []EnrichedClip, now time.Time) *Report {
	if clips == nil {
		clips = []EnrichedClip{}
	}
	return &Report{
		SourceURL:   sourceURL,
		GeneratedAt: now.UTC(),
		Clips:       clips,
		Summary:     Summarize(clips),
	}
}

// Summarize counts checked, failed and per-score clips
func Summarize(clips []EnrichedClip) ReportSummary {
	s := ReportSummary{Clips: len(clips)}
	for _, c := range clips {
		if c.FactCheck == nil {
			s.Failed++
			continue
		}
		s.Checked++
		s.Sources += len(c.FactCheck.Sources)
		for _, src := range c.FactCheck.Sources {
			if src.Authority == TierPrimary {
				s.PrimarySources++
			}
		}
		score := c.FactCheck.TruthfulnessScore
		if score >= MinTruthfulnessScore && score <= MaxTruthfulnessScore {
			s.ByScore[score-MinTruthfulnessScore]++
		}
	}
	return s
}

// FactCheckResult is a standalone fact-check with the provider's raw answer
type FactCheckResult struct {
	Claim     string           `json:"claim"`
	FactCheck *FactCheckRecord `json:"factCheck"`
	Answer    *AnswerResponse  `json:"answerResponse,omitempty"`
}
