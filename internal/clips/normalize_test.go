package clips

import (
	"math"
	"testing"

	"github.com/ppiankov/clipverity/internal/model"
)

func TestNormalize_Descriptions(t *testing.T) {
	tests := []struct {
		name string
		raw  model.RawClip
		want string
	}{
		{
			name: "audio and visual",
			raw:  model.RawClip{StartSec: model.Float(1), EndSec: model.Float(2), AudioDescription: "says 40%", VisualDescription: "bar chart"},
			want: "Audio: says 40% | Visuals: bar chart",
		},
		{
			name: "audio only",
			raw:  model.RawClip{StartSec: model.Float(1), EndSec: model.Float(2), AudioDescription: "says 40%"},
			want: "Audio: says 40%",
		},
		{
			name: "visual only",
			raw:  model.RawClip{StartSec: model.Float(1), EndSec: model.Float(2), VisualDescription: "bar chart"},
			want: "Visuals: bar chart",
		},
		{
			name: "highlight summary preferred",
			raw:  model.RawClip{StartSec: model.Float(1), EndSec: model.Float(2), Highlight: "short", HighlightSummary: "longer summary"},
			want: "longer summary",
		},
		{
			name: "highlight fallback",
			raw:  model.RawClip{StartSec: model.Float(1), EndSec: model.Float(2), Highlight: "  short  "},
			want: "short",
		},
		{
			name: "analyze fields win over highlight",
			raw:  model.RawClip{StartSec: model.Float(1), EndSec: model.Float(2), AudioDescription: "a", Highlight: "h"},
			want: "Audio: a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Normalize([]model.RawClip{tt.raw})
			if len(out) != 1 {
				t.Fatalf("expected 1 clip, got %d", len(out))
			}
			if out[0].Description != tt.want {
				t.Errorf("expected %q, got %q", tt.want, out[0].Description)
			}
		})
	}
}

func TestNormalize_Drops(t *testing.T) {
	tests := []struct {
		name string
		raw  model.RawClip
	}{
		{"missing start", model.RawClip{EndSec: model.Float(2), Highlight: "h"}},
		{"missing end", model.RawClip{StartSec: model.Float(1), Highlight: "h"}},
		{"end equals start", model.RawClip{StartSec: model.Float(5), EndSec: model.Float(5), Highlight: "h"}},
		{"end before start", model.RawClip{StartSec: model.Float(5), EndSec: model.Float(4), Highlight: "h"}},
		{"negative start", model.RawClip{StartSec: model.Float(-1), EndSec: model.Float(4), Highlight: "h"}},
		{"NaN", model.RawClip{StartSec: model.Float(math.NaN()), EndSec: model.Float(4), Highlight: "h"}},
		{"Inf", model.RawClip{StartSec: model.Float(0), EndSec: model.Float(math.Inf(1)), Highlight: "h"}},
		{"no text", model.RawClip{StartSec: model.Float(0), EndSec: model.Float(4)}},
		{"blank text", model.RawClip{StartSec: model.Float(0), EndSec: model.Float(4), AudioDescription: "  ", Highlight: "\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, stats := NormalizeWithStats([]model.RawClip{tt.raw})
			if len(out) != 0 {
				t.Errorf("expected record to be dropped, got %+v", out)
			}
			if stats.Dropped != 1 || stats.Kept != 0 {
				t.Errorf("unexpected stats: %+v", stats)
			}
		})
	}
}

func TestNormalize_OrderAndStats(t *testing.T) {
	raw := []model.RawClip{
		{StartSec: model.Float(30), EndSec: model.Float(35), Highlight: "third in time"},
		{StartSec: model.Float(10), EndSec: model.Float(5), Highlight: "invalid"},
		{StartSec: model.Float(0), EndSec: model.Float(4), Highlight: "first in time"},
		{StartSec: model.Float(12), EndSec: model.Float(20)},
		{StartSec: model.Float(15), EndSec: model.Float(18), VisualDescription: "chart"},
	}

	out, stats := NormalizeWithStats(raw)

	if stats.Kept != 3 || stats.Dropped != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	want := []string{"third in time", "first in time", "Visuals: chart"}
	if len(out) != len(want) {
		t.Fatalf("expected %d clips, got %d", len(want), len(out))
	}
	for i := range want {
		if out[i].Description != want[i] {
			t.Errorf("index %d: expected %q, got %q", i, want[i], out[i].Description)
		}
	}
}

func TestNormalize_Empty(t *testing.T) {
	out := Normalize(nil)
	if out == nil || len(out) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", out)
	}
}

func TestSortByStart(t *testing.T) {
	clips := []model.Clip{
		{StartSec: 30, EndSec: 31, Description: "c"},
		{StartSec: 10, EndSec: 11, Description: "a"},
		{StartSec: 30, EndSec: 40, Description: "d"},
		{StartSec: 20, EndSec: 21, Description: "b"},
	}

	SortByStart(clips)

	want := []string{"a", "b", "c", "d"}
	for i := range want {
		if clips[i].Description != want[i] {
			t.Errorf("index %d: expected %q, got %q", i, want[i], clips[i].Description)
		}
	}
}
