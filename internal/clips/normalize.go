package clips

import (
	"math"
	"sort"
	"strings"

	"github.com/ppiankov/clipverity/internal/model"
)

// Stats counts what Normalize kept and dropped
type Stats struct {
	Kept    int
	Dropped int
}

// Normalize converts raw provider records into clips.
// Records without a usable time span or description are dropped; survivors
// keep their relative order. It never fails.
func Normalize(raw []model.RawClip) []model.Clip {
	out, _ := NormalizeWithStats(raw)
	return out
}

// NormalizeWithStats is Normalize that also reports the kept and dropped counts
func NormalizeWithStats(raw []model.RawClip) ([]model.Clip, Stats) {
	out := make([]model.Clip, 0, len(raw))
	var stats Stats

	for _, r := range raw {
		clip, ok := normalizeOne(r)
		if !ok {
			stats.Dropped++
			continue
		}
		out = append(out, clip)
	}

	stats.Kept = len(out)
	return out, stats
}

func normalizeOne(r model.RawClip) (model.Clip, bool) {
	if r.StartSec == nil || r.EndSec == nil {
		return model.Clip{}, false
	}
	start, end := *r.StartSec, *r.EndSec
	if !finite(start) || !finite(end) {
		return model.Clip{}, false
	}
	if start < 0 || end <= start {
		return model.Clip{}, false
	}

	description := Describe(r)
	if description == "" {
		return model.Clip{}, false
	}

	return model.Clip{StartSec: start, EndSec: end, Description: description}, true
}

// Describe derives a clip description from whichever text fields a record carries
func Describe(r model.RawClip) string {
	audio := strings.TrimSpace(r.AudioDescription)
	visual := strings.TrimSpace(r.VisualDescription)

	switch {
	case audio != "" && visual != "":
		return "Audio: " + audio + " | Visuals: " + visual
	case audio != "":
		return "Audio: " + audio
	case visual != "":
		return "Visuals: " + visual
	}

	if s := strings.TrimSpace(r.HighlightSummary); s != "" {
		return s
	}
	return strings.TrimSpace(r.Highlight)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// SortByStart orders clips by start time, keeping discovery order for ties
func SortByStart(clips []model.Clip) {
	sort.SliceStable(clips, func(i, j int) bool {
		return clips[i].StartSec < clips[j].StartSec
	})
}
