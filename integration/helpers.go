//go:build integration

package integration

import (
	"path/filepath"
	"testing"

	"github.com/ereefs/benchscore/internal/benchspec"
	"github.com/ereefs/benchscore/internal/domain"
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
  - id: Q2
    title: Model grid
    prompt: Describe the eReefs 1km grid extent.
    rubric:
      - id: c1
        description: States the spatial extent
        points: 4
`

// LoadSampleSpec parses the two-item benchmark used across integration tests
func LoadSampleSpec(t *testing.T) *domain.Spec {
	t.Helper()
	spec, err := benchspec.Parse([]byte(sampleSpec))
	if err != nil {
		t.Fatalf("parsing sample spec: %v", err)
	}
	return spec
}

// TempRunsDir creates a temporary runs directory for testing
func TempRunsDir(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "runs")
}

// TempReportPath returns a temporary path with the given report extension
func TempReportPath(t *testing.T, ext string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "all_results"+ext)
}
