package benchspec

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleSpec = `
items:
  - id: Q1
    title: Chlorophyll trends
    prompt: Summarise chlorophyll-a trends in the central GBR lagoon.
    rubric:
      - id: c1
        description: Identifies the correct data product
        points: 5
      - id: c2
        description: Fabricates a citation
        points: -2
        is_penalty: true
        scoring_note: Deduct only for invented references
  - id: Q2
    title: Model grid
    prompt: Describe the eReefs 1km grid extent.
    max_points: 4
    rubric:
      - id: c1
        description: States the spatial extent
        points: 4
`

func TestParse(t *testing.T) {
	spec, err := Parse([]byte(sampleSpec))
	if err != nil {
		t.Fatal(err)
	}

	if len(spec.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(spec.Items))
	}

	q1 := spec.Item("Q1")
	if q1 == nil {
		t.Fatal("Q1 not found")
	}
	if len(q1.Rubric) != 2 {
		t.Errorf("Q1 rubric = %d criteria, want 2", len(q1.Rubric))
	}
	if q1.Rubric[1].Points != -2 || !q1.Rubric[1].IsPenalty {
		t.Errorf("Q1 c2 = %+v, want -2 penalty", q1.Rubric[1])
	}
	if got := q1.EffectiveMaxPoints(); got != 5 {
		t.Errorf("Q1 max points = %d, want 5", got)
	}

	q2 := spec.Item("Q2")
	if got := q2.EffectiveMaxPoints(); got != 4 {
		t.Errorf("Q2 max points = %d, want declared 4", got)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	if err := os.WriteFile(path, []byte(sampleSpec), 0o644); err != nil {
		t.Fatal(err)
	}

	spec, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := spec.ItemIDs(); len(got) != 2 || got[0] != "Q1" || got[1] != "Q2" {
		t.Errorf("ItemIDs = %v, want [Q1 Q2]", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing spec file")
	}
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"no items", `items: []`},
		{"duplicate item id", `
items:
  - id: Q1
    rubric: [{id: c1, points: 1}]
  - id: Q1
    rubric: [{id: c1, points: 1}]
`},
		{"empty rubric", `
items:
  - id: Q1
    rubric: []
`},
		{"duplicate criterion id", `
items:
  - id: Q1
    rubric: [{id: c1, points: 1}, {id: c1, points: 2}]
`},
		{"zero points", `
items:
  - id: Q1
    rubric: [{id: c1, points: 0}]
`},
		{"not yaml", `{{{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.yaml)); err == nil {
				t.Errorf("expected error for %s", tc.name)
			}
		})
	}
}
