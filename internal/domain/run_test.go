package domain

import (
	"strings"
	"testing"
	"time"
)

func TestNewRunID(t *testing.T) {
	ts := time.Date(2025, 8, 31, 14, 25, 1, 0, time.UTC)

	id := NewRunID(ts, "gpt-4.1", "OpenAI")
	if id != "20250831T142501Z_gpt-4.1_OpenAI" {
		t.Errorf("run id = %q, want %q", id, "20250831T142501Z_gpt-4.1_OpenAI")
	}

	prefix := id[:strings.Index(id, "_")]
	if _, err := time.Parse(TimestampLayout, prefix); err != nil {
		t.Errorf("run id prefix %q is not a %s timestamp: %v", prefix, TimestampLayout, err)
	}
}

func TestNewRunID_UnknownFallback(t *testing.T) {
	ts := time.Date(2025, 8, 31, 14, 25, 1, 0, time.UTC)

	id := NewRunID(ts, "", "")
	if id != "20250831T142501Z_unknown_unknown" {
		t.Errorf("run id = %q, want unknown fallbacks", id)
	}
}

func TestNewRun(t *testing.T) {
	ts := time.Date(2025, 8, 31, 14, 25, 1, 0, time.UTC)
	run := NewRun(RunMeta{ModelName: "llama-3.1-405b", Provider: "Meta", Evaluator: "dk"}, ts)

	if run.Status != StatusIncomplete {
		t.Errorf("status = %q, want incomplete", run.Status)
	}
	if len(run.Answers) != 0 {
		t.Errorf("answers = %d, want 0", len(run.Answers))
	}
	if run.UTCTimestamp != "20250831T142501Z" {
		t.Errorf("utc_timestamp = %q", run.UTCTimestamp)
	}
}

func TestEffectiveMaxPoints(t *testing.T) {
	item := Item{
		ID: "Q1",
		Rubric: []Criterion{
			{ID: "c1", Points: 5},
			{ID: "c2", Points: -2},
			{ID: "c3", Points: 3},
		},
	}
	if got := item.EffectiveMaxPoints(); got != 8 {
		t.Errorf("EffectiveMaxPoints = %d, want 8 (penalties excluded)", got)
	}

	declared := 10
	item.MaxPoints = &declared
	if got := item.EffectiveMaxPoints(); got != 10 {
		t.Errorf("EffectiveMaxPoints = %d, want declared 10", got)
	}
}

func TestClampAward(t *testing.T) {
	bonus := Criterion{ID: "c1", Points: 5}
	penalty := Criterion{ID: "c2", Points: -2, IsPenalty: true}

	cases := []struct {
		crit Criterion
		in   int
		want int
	}{
		{bonus, 3, 3},
		{bonus, 7, 5},
		{bonus, -1, 0},
		{penalty, -1, -1},
		{penalty, -5, -2},
		{penalty, 2, 0},
		{penalty, 0, 0},
	}
	for _, tc := range cases {
		if got := tc.crit.ClampAward(tc.in); got != tc.want {
			t.Errorf("ClampAward(%d) on points=%d: got %d, want %d", tc.in, tc.crit.Points, got, tc.want)
		}
	}
}
