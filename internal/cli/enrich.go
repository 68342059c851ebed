package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/clipverity/internal/model"
	"github.com/ppiankov/clipverity/internal/pipeline"
)

var (
	outJSON     string
	outMD       string
	outHTML     string
	timeout     time.Duration
	noCache     bool
	noSources   bool
	sortByStart bool
)

// enrichCmd represents the enrich command
var enrichCmd = &cobra.Command{
	Use:   "enrich <video-url>",
	Short: "Extract claim clips from a video and fact-check each one",
	Long: `Enrich indexes a video, extracts the clips that carry claims, statistics
or charts, and fact-checks every clip description.

Fact-checks run in batches no larger than --rps, one batch per second.
A clip whose check fails is reported without a fact-check.

Example:
  clipverity enrich https://cdn.example.com/talk.mp4
  clipverity enrich https://cdn.example.com/talk.mp4 --json report.json --md report.md
  clipverity enrich https://cdn.example.com/talk.mp4 --html report.html --rps 2`,
	Args: cobra.ExactArgs(1),
	RunE: runEnrich,
}

func init() {
	rootCmd.AddCommand(enrichCmd)

	// Output flags
	enrichCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: stdout when no other output is set)")
	enrichCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	enrichCmd.Flags().StringVar(&outHTML, "html", "", "output HTML path (optional)")
	enrichCmd.Flags().BoolVar(&noSources, "no-sources", false, "omit citations from Markdown/HTML reports")

	enrichCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "overall timeout (indexing a long video takes a while)")
	enrichCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable fact-check cache")
	enrichCmd.Flags().BoolVar(&sortByStart, "sort", false, "order clips by start time instead of discovery order")
}

func runEnrich(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if sortByStart {
		cfg.Enrich.SortByStart = true
	}

	slog.Debug("enriching", slog.String("url", url), slog.Duration("timeout", timeout), slog.Bool("cache", cfg.Cache.Enabled))

	p := pipeline.New(cfg, slog.Default())

	report, err := p.Report(ctx, url)
	if err != nil {
		return fmt.Errorf("enrich failed: %w", err)
	}

	return writeReport(report, pipeline.NewRenderer(!noSources), os.Stdout, os.Stderr)
}

// writeReport sends the report to the requested files, or as JSON to stdout
// when none is set. Progress lines and the summary go to stderr.
func writeReport(report *model.Report, renderer *pipeline.Renderer, stdout, stderr io.Writer) error {
	if outJSON == "" && outMD == "" && outHTML == "" {
		if err := pipeline.WriteJSON(stdout, report); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		renderer.RenderSummary(stderr, report)
		return nil
	}

	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		fmt.Fprintf(stderr, "✓ Wrote JSON: %s\n", outJSON)
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		fmt.Fprintf(stderr, "✓ Wrote Markdown: %s\n", outMD)
	}
	if outHTML != "" {
		if err := renderer.RenderHTML(report, outHTML); err != nil {
			return fmt.Errorf("render HTML: %w", err)
		}
		fmt.Fprintf(stderr, "✓ Wrote HTML: %s\n", outHTML)
	}

	renderer.RenderSummary(stderr, report)
	return nil
}
