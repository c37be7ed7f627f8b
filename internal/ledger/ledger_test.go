package ledger

import (
	"reflect"
	"testing"
	"time"

	"github.com/ereefs/benchscore/internal/domain"
)

var now = time.Date(2025, 8, 31, 14, 30, 0, 0, time.UTC)

func twoItemSpec() *domain.Spec {
	return &domain.Spec{
		Items: []domain.Item{
			{
				ID: "Q1",
				Rubric: []domain.Criterion{
					{ID: "c1", Points: 5},
					{ID: "c2", Points: -2, IsPenalty: true},
				},
			},
			{
				ID: "Q2",
				Rubric: []domain.Criterion{
					{ID: "c1", Points: 3},
				},
			},
		},
	}
}

func TestRecordAnswer_PenaltyScenario(t *testing.T) {
	spec := twoItemSpec()
	run := domain.NewRun(domain.RunMeta{ModelName: "m", Provider: "p"}, now)

	scores := []domain.CriterionScore{
		{ID: "c1", AwardedPoints: 3},
		{ID: "c2", AwardedPoints: -1},
	}
	if err := RecordAnswer(spec, run, "Q1", scores, "answer text", "", now); err != nil {
		t.Fatal(err)
	}

	ans := run.Answer("Q1")
	if ans == nil {
		t.Fatal("Q1 answer missing")
	}
	if got := Subtotal(ans.Criterion); got != 2 {
		t.Errorf("subtotal = %d, want 2", got)
	}
	if got := spec.Item("Q1").EffectiveMaxPoints(); got != 5 {
		t.Errorf("max points = %d, want 5", got)
	}
	if ans.Criterion[0].AwardedPoints != 3 || ans.Criterion[1].AwardedPoints != -1 {
		t.Errorf("criterion scores = %+v, want c1:3 c2:-1", ans.Criterion)
	}
	if ans.Criterion[0].MaxPoints != 5 || ans.Criterion[1].MaxPoints != -2 {
		t.Errorf("max points snapshot = %+v, want 5/-2", ans.Criterion)
	}
	if ans.Timestamp != "20250831T143000Z" {
		t.Errorf("timestamp = %q", ans.Timestamp)
	}
}

func TestRecordAnswer_Idempotent(t *testing.T) {
	spec := twoItemSpec()
	run := domain.NewRun(domain.RunMeta{ModelName: "m", Provider: "p"}, now)

	scores := []domain.CriterionScore{{ID: "c1", AwardedPoints: 4}}
	for i := 0; i < 2; i++ {
		if err := RecordAnswer(spec, run, "Q1", scores, "same answer", "same notes", now); err != nil {
			t.Fatal(err)
		}
	}

	count := 0
	for _, a := range run.Answers {
		if a.QuestionID == "Q1" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("Q1 answers = %d, want 1", count)
	}

	first := *run.Answer("Q1")
	if err := RecordAnswer(spec, run, "Q1", scores, "same answer", "same notes", now); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, *run.Answer("Q1")) {
		t.Error("repeated identical save changed the answer content")
	}
}

func TestRecordAnswer_UpsertReplacesScores(t *testing.T) {
	spec := twoItemSpec()
	run := domain.NewRun(domain.RunMeta{ModelName: "m", Provider: "p"}, now)

	if err := RecordAnswer(spec, run, "Q1", []domain.CriterionScore{{ID: "c1", AwardedPoints: 2}}, "", "", now); err != nil {
		t.Fatal(err)
	}
	if err := RecordAnswer(spec, run, "Q1", []domain.CriterionScore{{ID: "c1", AwardedPoints: 5}}, "", "", now.Add(time.Minute)); err != nil {
		t.Fatal(err)
	}

	ans := run.Answer("Q1")
	if len(run.Answers) != 1 {
		t.Fatalf("answers = %d, want 1", len(run.Answers))
	}
	if ans.Criterion[0].AwardedPoints != 5 {
		t.Errorf("awarded = %d, want resaved 5", ans.Criterion[0].AwardedPoints)
	}
	if ans.Timestamp != "20250831T143100Z" {
		t.Errorf("timestamp = %q, want last-save time", ans.Timestamp)
	}
}

func TestRecordAnswer_StatusInvariant(t *testing.T) {
	spec := twoItemSpec()
	run := domain.NewRun(domain.RunMeta{ModelName: "m", Provider: "p"}, now)

	if err := RecordAnswer(spec, run, "Q1", []domain.CriterionScore{{ID: "c1", AwardedPoints: 1}}, "", "", now); err != nil {
		t.Fatal(err)
	}
	if run.Status != domain.StatusIncomplete {
		t.Errorf("status after 1/2 answers = %q, want incomplete", run.Status)
	}

	if err := RecordAnswer(spec, run, "Q2", []domain.CriterionScore{{ID: "c1", AwardedPoints: 2}}, "", "", now); err != nil {
		t.Fatal(err)
	}
	if run.Status != domain.StatusComplete {
		t.Errorf("status after 2/2 answers = %q, want complete", run.Status)
	}

	// Resaving an already-answered question keeps the run complete
	if err := RecordAnswer(spec, run, "Q1", []domain.CriterionScore{{ID: "c1", AwardedPoints: 3}}, "", "", now); err != nil {
		t.Fatal(err)
	}
	if run.Status != domain.StatusComplete {
		t.Errorf("status after resave = %q, want complete", run.Status)
	}
}

func TestRecordAnswer_ClampsOutOfRange(t *testing.T) {
	spec := twoItemSpec()
	run := domain.NewRun(domain.RunMeta{ModelName: "m", Provider: "p"}, now)

	scores := []domain.CriterionScore{
		{ID: "c1", AwardedPoints: 99},
		{ID: "c2", AwardedPoints: -99},
	}
	if err := RecordAnswer(spec, run, "Q1", scores, "", "", now); err != nil {
		t.Fatal(err)
	}

	ans := run.Answer("Q1")
	if ans.Criterion[0].AwardedPoints != 5 {
		t.Errorf("c1 = %d, want clamped 5", ans.Criterion[0].AwardedPoints)
	}
	if ans.Criterion[1].AwardedPoints != -2 {
		t.Errorf("c2 = %d, want clamped -2", ans.Criterion[1].AwardedPoints)
	}
}

func TestRecordAnswer_UnknownIDs(t *testing.T) {
	spec := twoItemSpec()
	run := domain.NewRun(domain.RunMeta{ModelName: "m", Provider: "p"}, now)

	if err := RecordAnswer(spec, run, "Q9", nil, "", "", now); err == nil {
		t.Error("expected error for unknown question id")
	}
	if err := RecordAnswer(spec, run, "Q1", []domain.CriterionScore{{ID: "zzz"}}, "", "", now); err == nil {
		t.Error("expected error for unknown criterion id")
	}
}

func TestNextUnanswered(t *testing.T) {
	spec := twoItemSpec()
	run := domain.NewRun(domain.RunMeta{ModelName: "m", Provider: "p"}, now)

	if got := NextUnanswered(spec, run); got != "Q1" {
		t.Errorf("NextUnanswered = %q, want Q1", got)
	}

	if err := RecordAnswer(spec, run, "Q1", []domain.CriterionScore{{ID: "c1", AwardedPoints: 1}}, "", "", now); err != nil {
		t.Fatal(err)
	}
	if got := NextUnanswered(spec, run); got != "Q2" {
		t.Errorf("NextUnanswered = %q, want Q2", got)
	}

	if err := RecordAnswer(spec, run, "Q2", []domain.CriterionScore{{ID: "c1", AwardedPoints: 1}}, "", "", now); err != nil {
		t.Fatal(err)
	}
	if got := NextUnanswered(spec, run); got != "" {
		t.Errorf("NextUnanswered = %q, want empty for complete run", got)
	}
}
