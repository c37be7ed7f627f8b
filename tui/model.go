package tui

import (
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ereefs/benchscore/internal/domain"
	"github.com/ereefs/benchscore/internal/runstore"
)

// Screen identifies which view the form is on
type Screen int

const (
	ScreenPicker Screen = iota
	ScreenMetadata
	ScreenQuestion
)

// Metadata form field indexes
const (
	metaModel = iota
	metaProvider
	metaVersion
	metaTemperature
	metaEvaluator
	metaNotes
	metaFieldCount
)

// RunsChangedMsg is sent when run files change on disk outside this process
type RunsChangedMsg struct {
	RunIDs []string
}

// SavedMsg is produced after a successful answer save
type SavedMsg struct {
	RunID      string
	QuestionID string
	At         time.Time
}

// Model is the scoring form application model
type Model struct {
	spec  *domain.Spec
	store *runstore.Store

	screen Screen
	width  int
	height int

	// Run picker: cursor 0 is "start new run", 1..n select runIDs[cursor-1]
	runIDs []string
	cursor int

	// Metadata form
	meta      []textinput.Model
	metaFocus int // metaFieldCount means the tools row
	tools     map[domain.ToolTag]bool
	toolIdx   int

	// Question screen. Focus order: answer textarea, then score/note pairs
	// per criterion, then question notes.
	run       *domain.Run
	itemIdx   int
	answer    textarea.Model
	scores    []textinput.Model
	critNotes []textinput.Model
	qNotes    textinput.Model
	focus     int

	defaultEvaluator string

	status  string
	lastErr error
}

// New creates the scoring form over a loaded spec and run store.
// The defaultEvaluator prefills the evaluator field for new runs.
func New(spec *domain.Spec, store *runstore.Store, defaultEvaluator string) (Model, error) {
	m := Model{
		spec:             spec,
		store:            store,
		screen:           ScreenPicker,
		tools:            make(map[domain.ToolTag]bool),
		defaultEvaluator: defaultEvaluator,
	}
	if err := m.reloadRuns(); err != nil {
		return m, err
	}
	return m, nil
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// reloadRuns refreshes the run id list, newest first
func (m *Model) reloadRuns() error {
	ids, err := m.store.List()
	if err != nil {
		return err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	m.runIDs = ids
	if m.cursor > len(ids) {
		m.cursor = 0
	}
	return nil
}

// initMetadata prepares the metadata form inputs
func (m *Model) initMetadata() {
	placeholders := []string{
		"eg. gpt-4.1, claude-3.5-sonnet, llama-3.1-405b",
		"eg. OpenAI, Anthropic, Meta, Local",
		"eg. 2025-07-15",
		"eg. 0.2",
		"Your name or initials",
		"Any context about the run",
	}
	m.meta = make([]textinput.Model, metaFieldCount)
	for i := range m.meta {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 256
		m.meta[i] = ti
	}
	m.meta[metaEvaluator].SetValue(m.defaultEvaluator)
	m.meta[metaModel].Focus()
	m.metaFocus = metaModel
	m.tools = make(map[domain.ToolTag]bool)
	m.toolIdx = 0
}

// initQuestion prepares the inputs for the item at itemIdx, prefilled from
// any existing answer in the current run
func (m *Model) initQuestion(itemIdx int) {
	m.itemIdx = itemIdx
	item := &m.spec.Items[itemIdx]

	m.answer = textarea.New()
	m.answer.Placeholder = "Paste the model's answer"
	m.answer.SetHeight(8)
	m.answer.CharLimit = 0

	m.scores = make([]textinput.Model, len(item.Rubric))
	m.critNotes = make([]textinput.Model, len(item.Rubric))
	for i, crit := range item.Rubric {
		score := textinput.New()
		score.Placeholder = scoreRangeLabel(crit)
		score.CharLimit = 6
		score.Width = 8
		m.scores[i] = score

		note := textinput.New()
		note.Placeholder = "notes"
		note.CharLimit = 512
		m.critNotes[i] = note
	}

	m.qNotes = textinput.New()
	m.qNotes.Placeholder = "Notes about this question"
	m.qNotes.CharLimit = 1024

	if ans := m.run.Answer(item.ID); ans != nil {
		m.answer.SetValue(ans.ModelAnswer)
		m.qNotes.SetValue(ans.QuestionNotes)
		for i, crit := range item.Rubric {
			for _, sc := range ans.Criterion {
				if sc.ID == crit.ID {
					m.scores[i].SetValue(strconv.Itoa(sc.AwardedPoints))
					m.critNotes[i].SetValue(sc.Notes)
				}
			}
		}
	}

	m.focus = 0
	m.answer.Focus()
}

func scoreRangeLabel(c domain.Criterion) string {
	lo, hi := 0, c.Points
	if c.Points < 0 {
		lo, hi = c.Points, 0
	}
	return strconv.Itoa(lo) + ".." + strconv.Itoa(hi)
}

// focusCount is the number of focusable inputs on the question screen
func (m *Model) focusCount() int {
	return 1 + 2*len(m.scores) + 1
}

// collectScores reads the score inputs, clamping each value into its
// criterion's legal range at this input boundary
func (m *Model) collectScores() []domain.CriterionScore {
	item := &m.spec.Items[m.itemIdx]
	scores := make([]domain.CriterionScore, len(item.Rubric))
	for i, crit := range item.Rubric {
		val, err := strconv.Atoi(m.scores[i].Value())
		if err != nil {
			val = 0
		}
		scores[i] = domain.CriterionScore{
			ID:            crit.ID,
			AwardedPoints: crit.ClampAward(val),
			Notes:         m.critNotes[i].Value(),
		}
	}
	return scores
}

// selectedTools returns the toggled tool tags in display order
func (m *Model) selectedTools() []domain.ToolTag {
	var tags []domain.ToolTag
	for _, tag := range domain.AllToolTags() {
		if m.tools[tag] {
			tags = append(tags, tag)
		}
	}
	return tags
}
