// Package ledger implements the per-question answer update rule: saving a
// question's scores replaces any prior answer for that question and
// recomputes the run's completion status. Callers persist the mutated run
// through the run store; nothing here touches disk.
package ledger

import (
	"fmt"
	"time"

	"github.com/ereefs/benchscore/internal/domain"
)

// RecordAnswer upserts the answer for one question into run and recomputes
// run.Status. Awarded points are clamped into the criterion's legal range;
// the form is expected to clamp at the input boundary, so clamping here is a
// backstop, not an error path. Unknown question or criterion ids are errors.
func RecordAnswer(spec *domain.Spec, run *domain.Run, questionID string, scores []domain.CriterionScore, modelAnswer, questionNotes string, now time.Time) error {
	item := spec.Item(questionID)
	if item == nil {
		return fmt.Errorf("unknown question id %q", questionID)
	}

	stamped := make([]domain.CriterionScore, 0, len(scores))
	for _, sc := range scores {
		crit := item.Criterion(sc.ID)
		if crit == nil {
			return fmt.Errorf("question %q: unknown criterion id %q", questionID, sc.ID)
		}
		stamped = append(stamped, domain.CriterionScore{
			ID:            sc.ID,
			AwardedPoints: crit.ClampAward(sc.AwardedPoints),
			// Snapshot of the rubric's declared points; later spec edits
			// must not rewrite historical scores.
			MaxPoints: crit.Points,
			Notes:     sc.Notes,
		})
	}

	removeAnswer(run, questionID)
	run.Answers = append(run.Answers, domain.Answer{
		QuestionID:    questionID,
		Criterion:     stamped,
		ModelAnswer:   modelAnswer,
		QuestionNotes: questionNotes,
		Timestamp:     domain.FormatTimestamp(now),
	})

	RecomputeStatus(spec, run)
	return nil
}

// RecomputeStatus sets run.Status to complete iff the answered question ids
// equal the full item id set of the benchmark
func RecomputeStatus(spec *domain.Spec, run *domain.Run) {
	answered := run.AnsweredIDs()
	for _, id := range spec.ItemIDs() {
		if _, ok := answered[id]; !ok {
			run.Status = domain.StatusIncomplete
			return
		}
	}
	if len(answered) != len(spec.Items) {
		run.Status = domain.StatusIncomplete
		return
	}
	run.Status = domain.StatusComplete
}

// Subtotal sums awarded points across one answer's criterion scores.
// Derived on every display and aggregation, never persisted.
func Subtotal(scores []domain.CriterionScore) int {
	total := 0
	for _, sc := range scores {
		total += sc.AwardedPoints
	}
	return total
}

// NextUnanswered returns the first spec item without a recorded answer, in
// spec order, or "" when the run is complete
func NextUnanswered(spec *domain.Spec, run *domain.Run) string {
	answered := run.AnsweredIDs()
	for _, id := range spec.ItemIDs() {
		if _, ok := answered[id]; !ok {
			return id
		}
	}
	return ""
}

func removeAnswer(run *domain.Run, questionID string) {
	kept := run.Answers[:0]
	for _, a := range run.Answers {
		if a.QuestionID != questionID {
			kept = append(kept, a)
		}
	}
	run.Answers = kept
}
