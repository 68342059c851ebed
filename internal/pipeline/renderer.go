package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/ppiankov/clipverity/internal/model"
)

var md = goldmark.New()

// Renderer writes reports as JSON, Markdown or HTML
type Renderer struct {
	includeSources bool
}

// NewRenderer creates a renderer; includeSources lists citations under each clip
func NewRenderer(includeSources bool) *Renderer {
	return &Renderer{includeSources: includeSources}
}

// WriteJSON writes v as indented JSON
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RenderJSON writes the report as JSON to path
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return writeFile(path, buf.Bytes())
}

// RenderMarkdown writes the report as Markdown to path
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	return writeFile(path, []byte(r.Markdown(report)))
}

// RenderHTML writes the report as a standalone HTML page to path
func (r *Renderer) RenderHTML(report *model.Report, path string) error {
	page, err := r.HTML(report)
	if err != nil {
		return err
	}
	return writeFile(path, []byte(page))
}

// Markdown renders the report as Markdown
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	b.WriteString("# Fact-check report\n\n")
	fmt.Fprintf(&b, "- **Source:** %s\n", report.SourceURL)
	fmt.Fprintf(&b, "- **Generated:** %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- **Clips:** %d (%d checked, %d failed)\n\n", report.Summary.Clips, report.Summary.Checked, report.Summary.Failed)

	if report.Summary.Checked > 0 {
		b.WriteString("| Verdict | Clips |\n|---|---|\n")
		for i := len(report.Summary.ByScore) - 1; i >= 0; i-- {
			score := i + model.MinTruthfulnessScore
			fmt.Fprintf(&b, "| %s | %d |\n", model.ScoreLabel(score), report.Summary.ByScore[i])
		}
		b.WriteString("\n")
	}

	for i, c := range report.Clips {
		fmt.Fprintf(&b, "## %d. [%s - %s]\n\n", i+1, timestamp(c.Clip.StartSec), timestamp(c.Clip.EndSec))
		fmt.Fprintf(&b, "> %s\n\n", c.Clip.Description)

		if c.FactCheck == nil {
			b.WriteString("_Fact-check unavailable._\n\n")
			continue
		}

		fc := c.FactCheck
		fmt.Fprintf(&b, "**%s** (%s, %d/%d)\n\n", fc.Title, model.ScoreLabel(fc.TruthfulnessScore), fc.TruthfulnessScore, model.MaxTruthfulnessScore)
		fmt.Fprintf(&b, "_%s_\n\n", fc.Description)
		b.WriteString(fc.Narrative)
		b.WriteString("\n\n")

		if r.includeSources && len(fc.Sources) > 0 {
			b.WriteString("Sources:\n\n")
			for _, s := range fc.Sources {
				title := s.Title
				if title == "" {
					title = s.URL
				}
				if s.Authority != model.TierUnknown {
					fmt.Fprintf(&b, "- [%s](%s) (%s, %s)\n", title, s.URL, s.Domain(), s.Authority)
				} else {
					fmt.Fprintf(&b, "- [%s](%s) (%s)\n", title, s.URL, s.Domain())
				}
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// HTML renders the Markdown report into a minimal HTML page
func (r *Renderer) HTML(report *model.Report) (string, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(r.Markdown(report)), &body); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Fact-check report</title>\n</head>\n<body>\n")
	b.Write(body.Bytes())
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

// RenderSummary prints a short summary of the report
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	s := report.Summary
	fmt.Fprintf(w, "\n%s\n", report.SourceURL)
	fmt.Fprintf(w, "  clips: %d  checked: %d  failed: %d  sources: %d (primary: %d)\n",
		s.Clips, s.Checked, s.Failed, s.Sources, s.PrimarySources)
	for i := len(s.ByScore) - 1; i >= 0; i-- {
		if s.ByScore[i] == 0 {
			continue
		}
		fmt.Fprintf(w, "  %-14s %d\n", model.ScoreLabel(i+model.MinTruthfulnessScore)+":", s.ByScore[i])
	}
}

// timestamp formats seconds as m:ss or h:mm:ss
func timestamp(sec float64) string {
	total := int(sec)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
