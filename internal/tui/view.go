package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/questlog/internal/quest"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateQuests:
		content = docStyle.Render(m.habitsModel.View())
	case StateDiary:
		content = docStyle.Render(m.entriesModel.View())
	case StateStats:
		content = docStyle.Render(m.statsModel.View())
	case StateAddHabit, StateNewEntry:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirm("Delete this diary entry?")
	case StateConfirmReset:
		content = m.viewConfirm("Undo every completion for today?")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewHeader() string {
	s := m.questState
	return headerStyle.Render(fmt.Sprintf("%s  ·  Lv.%d (%d%%)  ·  %d XP  ·  %d coins",
		m.today, quest.Level(s.TotalXP), quest.LevelProgress(s.TotalXP), s.TotalXP, s.Coins))
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	switch {
	case m.errMsg != "":
		return dangerStyle.Render(" " + m.errMsg)
	case m.status != "":
		return statusStyle.Render(m.status)
	case m.validationWarning != "":
		return warningStyle.Render(" " + m.validationWarning)
	}
	return ""
}

func (m Model) viewConfirm(question string) string {
	return lipgloss.Place(m.width, m.height-chromeHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(question),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
