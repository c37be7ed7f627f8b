package domain

// Spec is the benchmark definition: an ordered list of scored items.
// It is loaded once at startup and never mutated.
type Spec struct {
	Items []Item `yaml:"items"`
}

// Item is one benchmark question with its scoring rubric
type Item struct {
	ID        string      `yaml:"id"`
	Title     string      `yaml:"title"`
	Prompt    string      `yaml:"prompt"`
	Rubric    []Criterion `yaml:"rubric"`
	MaxPoints *int        `yaml:"max_points,omitempty"`
}

// Criterion is one scored dimension within an item's rubric.
// Negative points mark a penalty-only criterion.
type Criterion struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	Points      int    `yaml:"points"`
	IsPenalty   bool   `yaml:"is_penalty,omitempty"`
	ScoringNote string `yaml:"scoring_note,omitempty"`
}

// Item returns the item with the given id, or nil
func (s *Spec) Item(id string) *Item {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return &s.Items[i]
		}
	}
	return nil
}

// ItemIDs returns all item ids in spec order
func (s *Spec) ItemIDs() []string {
	ids := make([]string, len(s.Items))
	for i, it := range s.Items {
		ids[i] = it.ID
	}
	return ids
}

// EffectiveMaxPoints returns the item's declared max_points, or the sum of
// its positive criterion points when none is declared. Penalty criteria do
// not raise the ceiling.
func (it *Item) EffectiveMaxPoints() int {
	if it.MaxPoints != nil {
		return *it.MaxPoints
	}
	sum := 0
	for _, c := range it.Rubric {
		if c.Points > 0 {
			sum += c.Points
		}
	}
	return sum
}

// Criterion returns the rubric entry with the given id, or nil
func (it *Item) Criterion(id string) *Criterion {
	for i := range it.Rubric {
		if it.Rubric[i].ID == id {
			return &it.Rubric[i]
		}
	}
	return nil
}

// ClampAward bounds an awarded value to the criterion's legal range,
// [min(0, points), max(points, 0)]. Zero is always in range and the bound's
// sign follows the criterion's sign.
func (c *Criterion) ClampAward(points int) int {
	lo, hi := 0, c.Points
	if c.Points < 0 {
		lo, hi = c.Points, 0
	}
	if points < lo {
		return lo
	}
	if points > hi {
		return hi
	}
	return points
}
