package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/clipverity/internal/model"
	"github.com/ppiankov/clipverity/internal/pipeline"
)

func testReport() *model.Report {
	clips := []model.EnrichedClip{
		{
			Clip: model.Clip{StartSec: 1, EndSec: 4, Description: "Audio: unemployment is 3%"},
			FactCheck: &model.FactCheckRecord{
				Title: "Unemployment", Description: "d", TruthfulnessScore: 4, Narrative: "n",
			},
		},
	}
	return model.NewReport("https://cdn.example.com/v.mp4", clips, time.Unix(0, 0))
}

func setOutputs(t *testing.T, jsonPath, mdPath, htmlPath string) {
	t.Helper()
	oldJSON, oldMD, oldHTML := outJSON, outMD, outHTML
	outJSON, outMD, outHTML = jsonPath, mdPath, htmlPath
	t.Cleanup(func() { outJSON, outMD, outHTML = oldJSON, oldMD, oldHTML })
}

func TestWriteReport_Stdout(t *testing.T) {
	setOutputs(t, "", "", "")

	var stdout, stderr bytes.Buffer
	if err := writeReport(testReport(), pipeline.NewRenderer(true), &stdout, &stderr); err != nil {
		t.Fatalf("writeReport failed: %v", err)
	}

	// stdout stays pure JSON so it can be piped
	var decoded model.Report
	if err := json.Unmarshal(stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("stdout is not a JSON report: %v\n%s", err, stdout.String())
	}
	if decoded.Summary.Checked != 1 {
		t.Errorf("unexpected summary in JSON: %+v", decoded.Summary)
	}

	if !strings.Contains(stderr.String(), "checked: 1") {
		t.Errorf("expected summary on stderr, got %q", stderr.String())
	}
}

func TestWriteReport_Files(t *testing.T) {
	dir := t.TempDir()
	mdPath := filepath.Join(dir, "report.md")
	setOutputs(t, "", mdPath, "")

	var stdout, stderr bytes.Buffer
	if err := writeReport(testReport(), pipeline.NewRenderer(true), &stdout, &stderr); err != nil {
		t.Fatalf("writeReport failed: %v", err)
	}

	if stdout.Len() != 0 {
		t.Errorf("expected nothing on stdout, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "Wrote Markdown") || !strings.Contains(stderr.String(), "checked: 1") {
		t.Errorf("unexpected stderr: %q", stderr.String())
	}
	if _, err := os.Stat(mdPath); err != nil {
		t.Errorf("expected markdown file: %v", err)
	}
}
