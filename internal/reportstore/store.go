// Package reportstore mirrors the flattened report into a SQLite database
// so results can be queried with plain SQL alongside the CSV and XLSX
// artifacts. The database is rebuilt from scratch on every aggregation,
// which keeps it as idempotent as the flat files.
package reportstore

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ereefs/benchscore/internal/aggregate"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed report persistence
type Store struct {
	db *sql.DB
}

// New opens (or creates) the report database at dbPath
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Replace drops all existing rows and inserts the table's rows in order
func (s *Store) Replace(table aggregate.Table) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM rows`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO rows (
			benchmark_id, criterion, awarded_points, max_points,
			criterion_notes, model_answer, question_notes, question_timestamp,
			model_name, provider, model_version, temperature, evaluator,
			tools_used, utc_timestamp, run_notes, run_id, extra
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range table.Rows {
		var extra []byte
		if len(r.Extra) > 0 {
			extra, err = json.Marshal(r.Extra)
			if err != nil {
				return err
			}
		}
		_, err = stmt.Exec(
			r.BenchmarkID, r.Criterion, r.AwardedPoints, r.MaxPoints,
			r.CriterionNotes, r.ModelAnswer, r.QuestionNotes, r.QuestionTimestamp,
			r.ModelName, r.Provider, r.ModelVersion, r.Temperature, r.Evaluator,
			r.ToolsUsed, r.UTCTimestamp, r.RunNotes, r.RunID, string(extra),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Count returns the number of report rows
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM rows`).Scan(&n)
	return n, err
}

// RunTotals returns awarded/max point sums per run id
func (s *Store) RunTotals() (map[string][2]int, error) {
	rows, err := s.db.Query(`
		SELECT run_id, SUM(awarded_points), SUM(CASE WHEN max_points > 0 THEN max_points ELSE 0 END)
		FROM rows GROUP BY run_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string][2]int)
	for rows.Next() {
		var runID string
		var awarded, max int
		if err := rows.Scan(&runID, &awarded, &max); err != nil {
			return nil, err
		}
		totals[runID] = [2]int{awarded, max}
	}
	return totals, rows.Err()
}
