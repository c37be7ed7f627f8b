package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/ereefs/benchscore/internal/domain"
	"github.com/ereefs/benchscore/internal/ledger"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	completeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	incompleteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	dimmedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	penaltyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("255"))
)

// View renders the scoring form
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("eReefs AI Benchmark · Manual Scoring"))
	b.WriteString("\n\n")

	switch m.screen {
	case ScreenPicker:
		b.WriteString(m.viewPicker())
	case ScreenMetadata:
		b.WriteString(m.viewMetadata())
	case ScreenQuestion:
		b.WriteString(m.viewQuestion())
	}

	b.WriteString("\n")
	b.WriteString(m.viewStatusBar())
	return b.String()
}

func (m Model) viewPicker() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(" Select a run "))
	b.WriteString("\n\n")

	line := "  start new run"
	if m.cursor == 0 {
		line = selectedStyle.Render("▸ start new run")
	}
	b.WriteString(line + "\n")

	for i, id := range m.runIDs {
		label := fmt.Sprintf("%s  %s", id, dimmedStyle.Render(runAge(id)))
		if m.cursor == i+1 {
			b.WriteString(selectedStyle.Render("▸ "+id) + "  " + dimmedStyle.Render(runAge(id)) + "\n")
		} else {
			b.WriteString("  " + label + "\n")
		}
	}

	if len(m.runIDs) == 0 {
		b.WriteString(dimmedStyle.Render("\n  no saved runs yet\n"))
	}

	b.WriteString(dimmedStyle.Render("\n  j/k move · enter select · r refresh · q quit"))
	return b.String()
}

func (m Model) viewMetadata() string {
	labels := []string{"Model name", "Provider", "Model version", "Temperature", "Evaluator", "Run notes"}

	var b strings.Builder
	b.WriteString(headerStyle.Render(" Run metadata "))
	b.WriteString("\n\n")

	for i, ti := range m.meta {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-14s", labels[i])))
		b.WriteString(ti.View())
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render(fmt.Sprintf("%-14s", "Tools used")))
	tags := domain.AllToolTags()
	for i, tag := range tags {
		mark := "[ ]"
		if m.tools[tag] {
			mark = "[x]"
		}
		entry := fmt.Sprintf("%s %s", mark, tag)
		if m.metaFocus == metaFieldCount && m.toolIdx == i {
			entry = selectedStyle.Render(entry)
		}
		b.WriteString(entry + "  ")
	}
	b.WriteString("\n")

	b.WriteString(dimmedStyle.Render("\n  tab next field · space toggle tool · enter (on tools row) start run · esc back"))
	return b.String()
}

func (m Model) viewQuestion() string {
	item := &m.spec.Items[m.itemIdx]

	var b strings.Builder
	answered := len(m.run.AnsweredIDs())
	b.WriteString(headerStyle.Render(fmt.Sprintf(" %s: %s │ %d/%d answered │ %s ",
		item.ID, item.Title, answered, len(m.spec.Items), statusBadge(m.run.Status))))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Prompt\n" + item.Prompt))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Model answer"))
	b.WriteString("\n")
	b.WriteString(m.answer.View())
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Scoring"))
	b.WriteString("\n")
	for i, crit := range item.Rubric {
		desc := crit.Description
		if crit.Points < 0 {
			desc = penaltyStyle.Render(desc)
		}
		b.WriteString(fmt.Sprintf("  %s: %s %s\n", crit.ID, desc,
			dimmedStyle.Render("("+scoreRangeLabel(crit)+")")))
		if crit.ScoringNote != "" {
			b.WriteString(dimmedStyle.Render("      " + crit.ScoringNote))
			b.WriteString("\n")
		}
		b.WriteString("      points " + m.scores[i].View() + "  notes " + m.critNotes[i].View() + "\n")
	}

	subtotal := ledger.Subtotal(m.collectScores())
	b.WriteString(fmt.Sprintf("\n  Subtotal: %d / %d\n", subtotal, item.EffectiveMaxPoints()))

	b.WriteString("\n" + labelStyle.Render("Question notes") + " " + m.qNotes.View() + "\n")

	b.WriteString(dimmedStyle.Render("\n  tab next field · ctrl+s save · ctrl+n/ctrl+p question · esc runs"))
	return b.String()
}

func (m Model) viewStatusBar() string {
	status := m.status
	if status == "" && m.run != nil {
		status = m.run.RunID
	}
	return statusBarStyle.Width(m.width).Render(" " + status)
}

func statusBadge(s domain.RunStatus) string {
	if s == domain.StatusComplete {
		return completeStyle.Render("complete")
	}
	return incompleteStyle.Render("incomplete")
}

// runAge renders how long ago a run was started, parsed from its id prefix
func runAge(runID string) string {
	if len(runID) < len(domain.TimestampLayout) {
		return ""
	}
	t, err := time.Parse(domain.TimestampLayout, runID[:len(domain.TimestampLayout)])
	if err != nil {
		return ""
	}
	return humanize.Time(t)
}
