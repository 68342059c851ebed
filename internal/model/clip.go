package model

// Clip is a time-bounded segment of a video with a description of its content.
// Clips are kept in discovery order, which is not necessarily temporal order.
type Clip struct {
	StartSec    float64 `json:"startSec"`
	EndSec      float64 `json:"endSec"`
	Description string  `json:"description"`
}

// Duration returns the clip length in seconds
func (c Clip) Duration() float64 {
	return c.EndSec - c.StartSec
}

// RawClip is one loosely-typed record from the video analysis provider.
// It covers both provider shapes: the "highlight" summary
// ({highlight, highlight_summary, start_sec, end_sec}) and the schema-constrained
// analyze result ({startSec, endSec, audioDescription, visualDescription, ...}).
// Nil pointers mean the field was absent in the provider output.
type RawClip struct {
	StartSec *float64 `json:"startSec,omitempty"`
	EndSec   *float64 `json:"endSec,omitempty"`

	AudioDescription  string `json:"audioDescription,omitempty"`
	VisualDescription string `json:"visualDescription,omitempty"`

	Highlight        string `json:"highlight,omitempty"`
	HighlightSummary string `json:"highlightSummary,omitempty"`

	// Analyze-only extras, carried through for debugging output
	HasStatistic  bool   `json:"hasStatistic,omitempty"`
	StatisticText string `json:"statisticText,omitempty"`
	HasGraphic    bool   `json:"hasGraphic,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// EnrichedClip pairs a clip with its fact-check.
// FactCheck is nil when the fact-check call or parse failed for that clip.
type EnrichedClip struct {
	Clip      Clip             `json:"clip"`
	FactCheck *FactCheckRecord `json:"factCheck"`
}

// Float is a helper for building RawClip literals
func Float(v float64) *float64 {
	return &v
}
