package runstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ereefs/benchscore/internal/domain"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no run file exists for an id
	ErrNotFound = errors.New("run not found")
	// ErrCorrupt is returned when a run file cannot be parsed
	ErrCorrupt = errors.New("run file corrupt")
)

// Store provides file-backed run persistence, one JSON document per run.
// Files are named {run_id}.json; because run ids are timestamp-prefixed,
// filename order is chronological order.
type Store struct {
	dir string
}

// New creates a Store rooted at dir
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the storage directory
func (s *Store) Dir() string {
	return s.dir
}

// List returns all persisted run ids in filename (chronological) order.
// It creates the storage directory if missing.
func (s *Store) List() ([]string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating runs dir: %w", err)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// Create builds a fresh incomplete run from metadata and persists it
// immediately. Blank model or provider become the literal "unknown". When a
// run file for the derived id already exists (two runs started within the
// same second with identical metadata), a short random suffix is appended
// instead of overwriting; the timestamp prefix is preserved.
func (s *Store) Create(meta domain.RunMeta, now time.Time) (*domain.Run, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating runs dir: %w", err)
	}

	run := domain.NewRun(meta, now)
	if _, err := os.Stat(s.path(run.RunID)); err == nil {
		run.RunID = run.RunID + "_" + shortSuffix()
	}

	if err := s.Save(run); err != nil {
		return nil, err
	}
	return run, nil
}

// Load reads and parses the run with the given id
func (s *Store) Load(id string) (*domain.Run, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var run domain.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, id, err)
	}
	if run.RunID == "" {
		return nil, fmt.Errorf("%w: %s: missing run_id", ErrCorrupt, id)
	}

	extras, err := decodeExtras(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, id, err)
	}
	run.Extra = extras
	return &run, nil
}

// Save serializes the run and overwrites its file. Run records are written
// indented so they stay human-diffable; the field layout is the stable
// on-disk contract that resume depends on.
func (s *Store) Save(run *domain.Run) error {
	var data []byte
	var err error
	if len(run.Extra) > 0 {
		data, err = encodeWithExtras(run)
	} else {
		data, err = json.MarshalIndent(run, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(run.RunID), append(data, '\n'), 0o644)
}

// LoadAll loads every persisted run in id order
func (s *Store) LoadAll() ([]*domain.Run, error) {
	ids, err := s.List()
	if err != nil {
		return nil, err
	}

	runs := make([]*domain.Run, 0, len(ids))
	for _, id := range ids {
		run, err := s.Load(id)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func shortSuffix() string {
	return uuid.NewString()[:8]
}
