package reportstore

import (
	"testing"

	"github.com/ereefs/benchscore/internal/aggregate"
)

func sampleTable() aggregate.Table {
	return aggregate.Table{
		Rows: []aggregate.Row{
			{BenchmarkID: "Q1", Criterion: "c1", AwardedPoints: 3, MaxPoints: 5, RunID: "r1"},
			{BenchmarkID: "Q1", Criterion: "c2", AwardedPoints: -1, MaxPoints: -2, RunID: "r1"},
			{BenchmarkID: "Q2", Criterion: "c1", AwardedPoints: 4, MaxPoints: 4, RunID: "r1"},
			{BenchmarkID: "Q1", Criterion: "c1", AwardedPoints: 5, MaxPoints: 5, RunID: "r2",
				Extra: map[string]string{"lab": "aims"}},
		},
	}
}

func TestStore_Replace(t *testing.T) {
	store, err := New(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if err := store.Replace(sampleTable()); err != nil {
		t.Fatal(err)
	}

	n, err := store.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("rows = %d, want 4", n)
	}

	// Replacing again must not accumulate
	if err := store.Replace(sampleTable()); err != nil {
		t.Fatal(err)
	}
	n, _ = store.Count()
	if n != 4 {
		t.Errorf("rows after second replace = %d, want 4", n)
	}
}

func TestStore_RunTotals(t *testing.T) {
	store, err := New(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if err := store.Replace(sampleTable()); err != nil {
		t.Fatal(err)
	}

	totals, err := store.RunTotals()
	if err != nil {
		t.Fatal(err)
	}

	if got := totals["r1"]; got != [2]int{6, 9} {
		t.Errorf("r1 totals = %v, want [6 9] (penalty max excluded)", got)
	}
	if got := totals["r2"]; got != [2]int{5, 5} {
		t.Errorf("r2 totals = %v, want [5 5]", got)
	}
}
