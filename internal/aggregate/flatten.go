// Package aggregate flattens persisted scoring runs into one denormalized
// row per (run, question, criterion) for spreadsheet and statistical
// analysis. Only complete runs are included; partial runs have undefined
// subtotal semantics and are skipped without error.
package aggregate

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/ereefs/benchscore/internal/domain"
)

// Columns is the canonical report column order. Extra columns discovered in
// the data are appended after these, in encounter order, so regenerated
// reports keep a stable layout as the record schema grows.
var Columns = []string{
	"benchmark_id",
	"criterion",
	"awarded_points",
	"max_points",
	"criterion_notes",
	"model_answer",
	"question_notes",
	"question_timestamp",
	"model_name",
	"provider",
	"model_version",
	"temperature",
	"evaluator",
	"tools_used",
	"utc_timestamp",
	"run_notes",
	"run_id",
}

// Row is one flattened report row: a criterion score joined with its answer
// and run metadata
type Row struct {
	BenchmarkID       string
	Criterion         string
	AwardedPoints     int
	MaxPoints         int
	CriterionNotes    string
	ModelAnswer       string
	QuestionNotes     string
	QuestionTimestamp string
	ModelName         string
	Provider          string
	ModelVersion      string
	Temperature       string
	Evaluator         string
	ToolsUsed         string
	UTCTimestamp      string
	RunNotes          string
	RunID             string

	// Extra maps discovered column name to value for this row
	Extra map[string]string
}

// Table is a flattened report: rows plus the extra column names discovered
// across all runs, in encounter order
type Table struct {
	Rows      []Row
	ExtraCols []string
}

// Empty reports whether the table has no rows
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Header returns the full column list: canonical columns then extras
func (t Table) Header() []string {
	return append(append([]string{}, Columns...), t.ExtraCols...)
}

// Values renders one row in header order
func (t Table) Values(r Row) []string {
	vals := []string{
		r.BenchmarkID,
		r.Criterion,
		strconv.Itoa(r.AwardedPoints),
		strconv.Itoa(r.MaxPoints),
		r.CriterionNotes,
		r.ModelAnswer,
		r.QuestionNotes,
		r.QuestionTimestamp,
		r.ModelName,
		r.Provider,
		r.ModelVersion,
		r.Temperature,
		r.Evaluator,
		r.ToolsUsed,
		r.UTCTimestamp,
		r.RunNotes,
		r.RunID,
	}
	for _, col := range t.ExtraCols {
		vals = append(vals, r.Extra[col])
	}
	return vals
}

// Flatten filters to complete runs and emits one row per criterion score.
// It is pure over its input and idempotent: the same run set always produces
// the same table.
func Flatten(runs []*domain.Run) Table {
	var table Table
	seen := make(map[string]struct{})

	for _, run := range runs {
		if run.Status != domain.StatusComplete {
			continue
		}

		tools := joinTools(run.ToolsUsed)
		for _, f := range run.Extra {
			if _, ok := seen[f.Key]; !ok {
				seen[f.Key] = struct{}{}
				table.ExtraCols = append(table.ExtraCols, f.Key)
			}
		}

		for _, ans := range run.Answers {
			for _, sc := range ans.Criterion {
				row := Row{
					BenchmarkID:       ans.QuestionID,
					Criterion:         sc.ID,
					AwardedPoints:     sc.AwardedPoints,
					MaxPoints:         sc.MaxPoints,
					CriterionNotes:    sc.Notes,
					ModelAnswer:       ans.ModelAnswer,
					QuestionNotes:     ans.QuestionNotes,
					QuestionTimestamp: ans.Timestamp,
					ModelName:         run.ModelName,
					Provider:          run.Provider,
					ModelVersion:      run.ModelVersion,
					Temperature:       run.Temperature,
					Evaluator:         run.Evaluator,
					ToolsUsed:         tools,
					UTCTimestamp:      run.UTCTimestamp,
					RunNotes:          run.RunNotes,
					RunID:             run.RunID,
				}
				if len(run.Extra) > 0 {
					row.Extra = make(map[string]string, len(run.Extra))
					for _, f := range run.Extra {
						row.Extra[f.Key] = displayValue(f.Value)
					}
				}
				table.Rows = append(table.Rows, row)
			}
		}
	}
	return table
}

func joinTools(tags []domain.ToolTag) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

// displayValue renders a raw JSON extra value for tabular output: strings
// lose their quotes, everything else stays compact JSON
func displayValue(raw string) string {
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal([]byte(raw), &s); err == nil {
			return s
		}
	}
	return raw
}
