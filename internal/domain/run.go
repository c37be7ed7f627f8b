package domain

import (
	"fmt"
	"time"
)

// TimestampLayout is the ISO-basic UTC format used for run ids and answer
// timestamps, e.g. 20250831T142501Z. Always 15 characters.
const TimestampLayout = "20060102T150405Z"

// Run is one evaluator's end-to-end scoring session across all benchmark items
type Run struct {
	RunID        string    `json:"run_id"`
	ModelName    string    `json:"model_name"`
	Provider     string    `json:"provider"`
	ModelVersion string    `json:"model_version"`
	Temperature  string    `json:"temperature"`
	Evaluator    string    `json:"evaluator"`
	ToolsUsed    []ToolTag `json:"tools_used"`
	RunNotes     string    `json:"run_notes"`
	UTCTimestamp string    `json:"utc_timestamp"`
	Status       RunStatus `json:"status"`
	Answers      []Answer  `json:"answers"`

	// Extra holds run-level fields found on disk that this version does not
	// know about. They survive load/save and are appended to aggregated rows,
	// so reports stay stable as the record schema evolves. Keys are kept in
	// encounter order.
	Extra []ExtraField `json:"-"`
}

// ExtraField is one unrecognized run-level field carried through verbatim
type ExtraField struct {
	Key   string
	Value string
}

// Answer is one question's recorded evaluation within a run
type Answer struct {
	QuestionID    string           `json:"question_id"`
	Criterion     []CriterionScore `json:"criterion"`
	ModelAnswer   string           `json:"model_answer"`
	QuestionNotes string           `json:"question_notes"`
	Timestamp     string           `json:"timestamp"`
}

// CriterionScore records the points awarded against one rubric criterion.
// MaxPoints is copied from the rubric at scoring time so historical scores
// survive later spec edits.
type CriterionScore struct {
	ID            string `json:"id"`
	AwardedPoints int    `json:"awarded_points"`
	MaxPoints     int    `json:"max_points"`
	Notes         string `json:"notes"`
}

// RunMeta carries the free-text metadata collected when a run is started
type RunMeta struct {
	ModelName    string
	Provider     string
	ModelVersion string
	Temperature  string
	Evaluator    string
	ToolsUsed    []ToolTag
	RunNotes     string
}

// FormatTimestamp renders t in the ISO-basic UTC layout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// NewRunID derives a run id from creation time, model and provider. Blank
// model or provider fields become the literal "unknown". Uniqueness relies on
// one-second timestamp granularity; the store resolves same-second collisions.
func NewRunID(t time.Time, modelName, provider string) string {
	if modelName == "" {
		modelName = "unknown"
	}
	if provider == "" {
		provider = "unknown"
	}
	return fmt.Sprintf("%s_%s_%s", FormatTimestamp(t), modelName, provider)
}

// NewRun creates a fresh incomplete run from metadata
func NewRun(meta RunMeta, now time.Time) *Run {
	return &Run{
		RunID:        NewRunID(now, meta.ModelName, meta.Provider),
		ModelName:    meta.ModelName,
		Provider:     meta.Provider,
		ModelVersion: meta.ModelVersion,
		Temperature:  meta.Temperature,
		Evaluator:    meta.Evaluator,
		ToolsUsed:    meta.ToolsUsed,
		RunNotes:     meta.RunNotes,
		UTCTimestamp: FormatTimestamp(now),
		Status:       StatusIncomplete,
		Answers:      []Answer{},
	}
}

// Answer returns the recorded answer for a question id, or nil
func (r *Run) Answer(questionID string) *Answer {
	for i := range r.Answers {
		if r.Answers[i].QuestionID == questionID {
			return &r.Answers[i]
		}
	}
	return nil
}

// AnsweredIDs returns the set of question ids with a recorded answer
func (r *Run) AnsweredIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(r.Answers))
	for _, a := range r.Answers {
		ids[a.QuestionID] = struct{}{}
	}
	return ids
}
