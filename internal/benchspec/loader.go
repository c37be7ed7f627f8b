package benchspec

import (
	"fmt"
	"os"

	"github.com/ereefs/benchscore/internal/domain"
	"gopkg.in/yaml.v3"
)

// Load reads and validates a benchmark definition from a YAML file.
// A malformed definition is fatal to the caller: there is no recovery path
// without a valid spec.
func Load(path string) (*domain.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading benchmark spec: %w", err)
	}
	return Parse(data)
}

// Parse unmarshals and validates a YAML benchmark definition
func Parse(data []byte) (*domain.Spec, error) {
	var spec domain.Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing benchmark spec: %w", err)
	}
	if err := Validate(&spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks the structural invariants of a benchmark definition:
// at least one item, unique item ids, non-empty rubrics, unique criterion
// ids within each item, and no zero-point criteria.
func Validate(spec *domain.Spec) error {
	if len(spec.Items) == 0 {
		return fmt.Errorf("benchmark spec has no items")
	}

	itemIDs := make(map[string]struct{}, len(spec.Items))
	for i, item := range spec.Items {
		if item.ID == "" {
			return fmt.Errorf("item %d: missing id", i)
		}
		if _, dup := itemIDs[item.ID]; dup {
			return fmt.Errorf("duplicate item id %q", item.ID)
		}
		itemIDs[item.ID] = struct{}{}

		if len(item.Rubric) == 0 {
			return fmt.Errorf("item %q: empty rubric", item.ID)
		}

		critIDs := make(map[string]struct{}, len(item.Rubric))
		for _, c := range item.Rubric {
			if c.ID == "" {
				return fmt.Errorf("item %q: criterion with missing id", item.ID)
			}
			if _, dup := critIDs[c.ID]; dup {
				return fmt.Errorf("item %q: duplicate criterion id %q", item.ID, c.ID)
			}
			critIDs[c.ID] = struct{}{}

			if c.Points == 0 {
				return fmt.Errorf("item %q: criterion %q has zero points", item.ID, c.ID)
			}
		}
	}
	return nil
}
