package video

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ppiankov/clipverity/internal/model"
)

// clipSchema constrains the analyze output to a list of claim-bearing clips
var clipSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"clips": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"startSec":           map[string]any{"type": "number"},
					"endSec":             map[string]any{"type": "number"},
					"audioDescription":   map[string]any{"type": "string"},
					"visualDescription":  map[string]any{"type": "string"},
					"hasStatistic":       map[string]any{"type": "boolean"},
					"statisticText":      map[string]any{"type": "string"},
					"hasGraphic":         map[string]any{"type": "boolean"},
					"graphicDescription": map[string]any{"type": "string"},
					"reason":             map[string]any{"type": "string"},
				},
				"required": []string{"startSec", "endSec", "audioDescription", "visualDescription"},
			},
		},
	},
	"required": []string{"clips"},
}

type responseFormat struct {
	Type       string         `json:"type"`
	JSONSchema map[string]any `json:"json_schema"`
}

type analyzeRequest struct {
	VideoID        string          `json:"video_id"`
	Prompt         string          `json:"prompt"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Stream         bool            `json:"stream"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type analyzeResponse struct {
	ID   string `json:"id"`
	Data string `json:"data"`
}

type summarizeRequest struct {
	VideoID     string  `json:"video_id"`
	Type        string  `json:"type"`
	Prompt      string  `json:"prompt,omitempty"`
	Temperature float64 `json:"temperature"`
}

type summarizeResponse struct {
	Highlights []json.RawMessage `json:"highlights"`
}

// Analyze asks for schema-constrained clips describing claims, statistics and graphics
func (c *Client) Analyze(ctx context.Context, videoID string) ([]model.RawClip, error) {
	req := analyzeRequest{
		VideoID:     videoID,
		Prompt:      c.config.Prompt,
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
		ResponseFormat: &responseFormat{
			Type:       "json_schema",
			JSONSchema: clipSchema,
		},
	}

	var resp analyzeResponse
	if err := c.doJSON(ctx, "analyze", http.MethodPost, "/analyze", req, &resp); err != nil {
		return nil, err
	}

	return decodeAnalyzeData(resp.Data)
}

// Highlights asks for the provider's built-in highlight summary
func (c *Client) Highlights(ctx context.Context, videoID string) ([]model.RawClip, error) {
	req := summarizeRequest{
		VideoID:     videoID,
		Type:        "highlight",
		Prompt:      c.config.Prompt,
		Temperature: c.config.Temperature,
	}

	var resp summarizeResponse
	if err := c.doJSON(ctx, "summarize", http.MethodPost, "/summarize", req, &resp); err != nil {
		return nil, err
	}

	raw := make([]model.RawClip, 0, len(resp.Highlights))
	for _, item := range resp.Highlights {
		var h struct {
			StartSec         lenientFloat  `json:"start_sec"`
			EndSec           lenientFloat  `json:"end_sec"`
			Highlight        lenientString `json:"highlight"`
			HighlightSummary lenientString `json:"highlight_summary"`
		}
		if err := json.Unmarshal(item, &h); err != nil {
			// not an object; the normalizer would drop it anyway
			raw = append(raw, model.RawClip{})
			continue
		}
		raw = append(raw, model.RawClip{
			StartSec:         h.StartSec.ptr,
			EndSec:           h.EndSec.ptr,
			Highlight:        string(h.Highlight),
			HighlightSummary: string(h.HighlightSummary),
		})
	}

	return raw, nil
}

// decodeAnalyzeData parses the JSON document carried as a string in the analyze reply.
// Items that are not objects, or whose fields have the wrong type, survive as
// partially empty records for the normalizer to judge.
func decodeAnalyzeData(data string) ([]model.RawClip, error) {
	var doc struct {
		Clips []json.RawMessage `json:"clips"`
	}
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("analyze: decode clips: %w", err)
	}

	raw := make([]model.RawClip, 0, len(doc.Clips))
	for _, item := range doc.Clips {
		var c struct {
			StartSec          lenientFloat  `json:"startSec"`
			EndSec            lenientFloat  `json:"endSec"`
			AudioDescription  lenientString `json:"audioDescription"`
			VisualDescription lenientString `json:"visualDescription"`
			HasStatistic      lenientBool   `json:"hasStatistic"`
			StatisticText     lenientString `json:"statisticText"`
			HasGraphic        lenientBool   `json:"hasGraphic"`
			Reason            lenientString `json:"reason"`
		}
		if err := json.Unmarshal(item, &c); err != nil {
			raw = append(raw, model.RawClip{})
			continue
		}
		raw = append(raw, model.RawClip{
			StartSec:          c.StartSec.ptr,
			EndSec:            c.EndSec.ptr,
			AudioDescription:  string(c.AudioDescription),
			VisualDescription: string(c.VisualDescription),
			HasStatistic:      bool(c.HasStatistic),
			StatisticText:     string(c.StatisticText),
			HasGraphic:        bool(c.HasGraphic),
			Reason:            string(c.Reason),
		})
	}

	return raw, nil
}

// lenientFloat accepts a JSON number or numeric string; anything else leaves it unset
type lenientFloat struct {
	ptr *float64
}

func (f *lenientFloat) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		f.ptr = &n
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			f.ptr = &v
		}
	}
	return nil
}

// lenientString keeps JSON strings and ignores every other type
type lenientString string

func (s *lenientString) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err == nil {
		*s = lenientString(v)
	}
	return nil
}

// lenientBool keeps JSON booleans and ignores every other type
type lenientBool bool

func (v *lenientBool) UnmarshalJSON(b []byte) error {
	var x bool
	if err := json.Unmarshal(b, &x); err == nil {
		*v = lenientBool(x)
	}
	return nil
}
