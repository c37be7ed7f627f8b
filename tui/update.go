package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ereefs/benchscore/internal/domain"
	"github.com/ereefs/benchscore/internal/ledger"
	"github.com/ereefs/benchscore/internal/runstore"
)

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case RunsChangedMsg:
		if m.screen == ScreenPicker {
			if err := m.reloadRuns(); err != nil {
				m.lastErr = err
			}
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.screen {
		case ScreenPicker:
			return m.updatePicker(msg)
		case ScreenMetadata:
			return m.updateMetadata(msg)
		case ScreenQuestion:
			return m.updateQuestion(msg)
		}
	}
	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.runIDs) {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "r":
		if err := m.reloadRuns(); err != nil {
			m.lastErr = err
		}
	case "enter":
		if m.cursor == 0 {
			m.initMetadata()
			m.screen = ScreenMetadata
			m.status = ""
			return m, textinput.Blink
		}
		id := m.runIDs[m.cursor-1]
		run, err := m.store.Load(id)
		if err != nil {
			// Fall back to "no run selected" rather than crashing;
			// corrupt and missing files both land here.
			switch {
			case errors.Is(err, runstore.ErrNotFound):
				m.status = "run " + id + " no longer exists"
			case errors.Is(err, runstore.ErrCorrupt):
				m.status = "run " + id + " could not be read"
			default:
				m.status = err.Error()
			}
			if err := m.reloadRuns(); err != nil {
				m.lastErr = err
			}
			return m, nil
		}
		m.run = run
		target := ledger.NextUnanswered(m.spec, run)
		idx := 0
		if target != "" {
			for i, it := range m.spec.Items {
				if it.ID == target {
					idx = i
				}
			}
		}
		m.initQuestion(idx)
		m.screen = ScreenQuestion
		m.status = ""
		return m, textarea.Blink
	}
	return m, nil
}

func (m Model) updateMetadata(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	onTools := m.metaFocus == metaFieldCount

	switch msg.String() {
	case "esc":
		m.screen = ScreenPicker
		return m, nil

	case "tab", "shift+tab", "enter":
		if msg.String() == "enter" && onTools {
			return m.startRun()
		}
		if m.metaFocus < len(m.meta) {
			m.meta[m.metaFocus].Blur()
		}
		if msg.String() == "shift+tab" {
			m.metaFocus--
			if m.metaFocus < 0 {
				m.metaFocus = metaFieldCount
			}
		} else {
			m.metaFocus++
			if m.metaFocus > metaFieldCount {
				m.metaFocus = 0
			}
		}
		if m.metaFocus < len(m.meta) {
			m.meta[m.metaFocus].Focus()
		}
		return m, textinput.Blink

	case "left", "right", " ":
		if onTools {
			tags := domain.AllToolTags()
			switch msg.String() {
			case "left":
				if m.toolIdx > 0 {
					m.toolIdx--
				}
			case "right":
				if m.toolIdx < len(tags)-1 {
					m.toolIdx++
				}
			case " ":
				m.tools[tags[m.toolIdx]] = !m.tools[tags[m.toolIdx]]
			}
			return m, nil
		}
	}

	if m.metaFocus < len(m.meta) {
		var cmd tea.Cmd
		m.meta[m.metaFocus], cmd = m.meta[m.metaFocus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) startRun() (tea.Model, tea.Cmd) {
	meta := domain.RunMeta{
		ModelName:    m.meta[metaModel].Value(),
		Provider:     m.meta[metaProvider].Value(),
		ModelVersion: m.meta[metaVersion].Value(),
		Temperature:  m.meta[metaTemperature].Value(),
		Evaluator:    m.meta[metaEvaluator].Value(),
		ToolsUsed:    m.selectedTools(),
		RunNotes:     m.meta[metaNotes].Value(),
	}
	run, err := m.store.Create(meta, time.Now())
	if err != nil {
		m.lastErr = err
		m.status = "could not create run: " + err.Error()
		return m, nil
	}
	m.run = run
	m.initQuestion(0)
	m.screen = ScreenQuestion
	m.status = "started " + run.RunID
	return m, textarea.Blink
}

func (m Model) updateQuestion(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if err := m.reloadRuns(); err != nil {
			m.lastErr = err
		}
		m.screen = ScreenPicker
		m.run = nil
		return m, nil

	case "ctrl+s":
		return m.saveAnswer()

	case "ctrl+n":
		if m.itemIdx < len(m.spec.Items)-1 {
			m.initQuestion(m.itemIdx + 1)
		}
		return m, nil

	case "ctrl+p":
		if m.itemIdx > 0 {
			m.initQuestion(m.itemIdx - 1)
		}
		return m, nil

	case "tab", "shift+tab":
		m.blurFocused()
		if msg.String() == "tab" {
			m.focus = (m.focus + 1) % m.focusCount()
		} else {
			m.focus = (m.focus - 1 + m.focusCount()) % m.focusCount()
		}
		m.focusCurrent()
		return m, textinput.Blink
	}

	return m.updateFocusedInput(msg)
}

func (m Model) saveAnswer() (tea.Model, tea.Cmd) {
	item := &m.spec.Items[m.itemIdx]
	now := time.Now()

	err := ledger.RecordAnswer(m.spec, m.run, item.ID, m.collectScores(),
		m.answer.Value(), m.qNotes.Value(), now)
	if err != nil {
		m.lastErr = err
		m.status = "save failed: " + err.Error()
		return m, nil
	}
	if err := m.store.Save(m.run); err != nil {
		m.lastErr = err
		m.status = "save failed: " + err.Error()
		return m, nil
	}

	m.status = "saved " + item.ID
	// Auto-advance to the next unanswered question
	if next := ledger.NextUnanswered(m.spec, m.run); next != "" {
		for i, it := range m.spec.Items {
			if it.ID == next {
				m.initQuestion(i)
			}
		}
	} else {
		m.status = "saved " + item.ID + " (run complete)"
	}
	return m, func() tea.Msg {
		return SavedMsg{RunID: m.run.RunID, QuestionID: item.ID, At: now}
	}
}

func (m *Model) blurFocused() {
	switch {
	case m.focus == 0:
		m.answer.Blur()
	case m.focus == m.focusCount()-1:
		m.qNotes.Blur()
	default:
		i := m.focus - 1
		if i%2 == 0 {
			m.scores[i/2].Blur()
		} else {
			m.critNotes[i/2].Blur()
		}
	}
}

func (m *Model) focusCurrent() {
	switch {
	case m.focus == 0:
		m.answer.Focus()
	case m.focus == m.focusCount()-1:
		m.qNotes.Focus()
	default:
		i := m.focus - 1
		if i%2 == 0 {
			m.scores[i/2].Focus()
		} else {
			m.critNotes[i/2].Focus()
		}
	}
}

func (m Model) updateFocusedInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.focus == 0:
		m.answer, cmd = m.answer.Update(msg)
	case m.focus == m.focusCount()-1:
		m.qNotes, cmd = m.qNotes.Update(msg)
	default:
		i := m.focus - 1
		if i%2 == 0 {
			m.scores[i/2], cmd = m.scores[i/2].Update(msg)
		} else {
			m.critNotes[i/2], cmd = m.critNotes[i/2].Update(msg)
		}
	}
	return m, cmd
}
