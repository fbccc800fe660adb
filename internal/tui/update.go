package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/questlog/internal/models"
	"github.com/julianstephens/questlog/internal/tui/components/entries"
	"github.com/julianstephens/questlog/internal/tui/components/habits"
)

// chromeHeight is the space taken by the header, tabs, status line and help
const chromeHeight = 6

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateAddHabit:
		return m.updateHabitForm(msg)
	case StateNewEntry:
		return m.updateEntryForm(msg)
	case StateConfirmDelete, StateConfirmReset:
		if msg, ok := msg.(tea.KeyMsg); ok {
			return m.updateConfirm(msg)
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.habitsModel.SetSize(msg.Width-h, msg.Height-v-chromeHeight)
		m.entriesModel.SetSize(msg.Width-h, msg.Height-v-chromeHeight)
		m.statsModel.SetSize(msg.Width-h, msg.Height-v-chromeHeight)
		return m, nil

	case tea.KeyMsg:
		if !m.filtering() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.quitting = true
				return m, tea.Quit
			case key.Matches(msg, m.keys.Tab):
				m.state = (m.state + 1) % tabCount
				return m, nil
			case key.Matches(msg, m.keys.ShiftTab):
				m.state = (m.state - 1 + tabCount) % tabCount
				return m, nil
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			}
		}

	case habits.ToggleHabitMsg:
		before := m.questState
		_, habit, done, err := m.quests.Toggle(msg.ID, "")
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.refresh()
		if done {
			m.setStatus("✓ %s +%d XP +%d coins · streak %d", habit.Name, habit.XP, habit.Coins, habit.Streak)
		} else {
			m.setStatus("Undid %s", habit.Name)
		}
		m.announceBadges(before)
		return m, nil

	case habits.ArchiveHabitMsg:
		if _, habit, err := m.quests.Archive(msg.ID); err != nil {
			m.setError(err)
		} else {
			m.refresh()
			m.setStatus("Archived %s", habit.Name)
		}
		return m, nil

	case habits.RestoreHabitMsg:
		if _, habit, err := m.quests.Restore(msg.ID); err != nil {
			m.setError(err)
		} else {
			m.refresh()
			m.setStatus("Restored %s", habit.Name)
		}
		return m, nil

	case habits.ResetTodayMsg:
		m.previousState = m.state
		m.state = StateConfirmReset
		return m, nil

	case habits.AddHabitMsg:
		m.habitForm = &HabitFormModel{XP: "10", Coins: "3"}
		m.form = NewHabitForm(m.habitForm)
		m.previousState = m.state
		m.state = StateAddHabit
		return m, m.form.Init()

	case entries.NewEntryMsg:
		m.entryForm = &EntryFormModel{Mood: models.MoodNeutral}
		m.form = NewEntryForm(m.entryForm)
		m.previousState = m.state
		m.state = StateNewEntry
		return m, m.form.Init()

	case entries.DeleteEntryMsg:
		m.entryToDeleteID = msg.ID
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case StateQuests:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case StateDiary:
		m.entriesModel, cmd = m.entriesModel.Update(msg)
	case StateStats:
		m.statsModel, cmd = m.statsModel.Update(msg)
	}
	return m, cmd
}

func (m Model) filtering() bool {
	switch m.state {
	case StateQuests:
		return m.habitsModel.Filtering()
	case StateDiary:
		return m.entriesModel.Filtering()
	}
	return false
}

func (m *Model) announceBadges(before models.QuestState) {
	if names := newBadges(before, m.questState); len(names) > 0 {
		m.status += " · 🏅 " + strings.Join(names, ", ")
	}
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd, bool) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil, false
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m, cmd, true
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd, false
}

func (m Model) updateHabitForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd, completed := m.updateForm(msg)
	if !completed {
		return m, cmd
	}

	xp, _ := strconv.Atoi(strings.TrimSpace(m.habitForm.XP))
	coins, _ := strconv.Atoi(strings.TrimSpace(m.habitForm.Coins))
	if _, habit, err := m.quests.AddHabit(m.habitForm.Name, xp, coins); err != nil {
		m.setError(err)
	} else {
		m.refresh()
		m.setStatus("Added %s", habit.Name)
	}
	m.state = StateQuests
	return m, cmd
}

func (m Model) updateEntryForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd, completed := m.updateForm(msg)
	if !completed {
		return m, cmd
	}

	m.saveEntry(models.DiaryDraft{
		Title:    m.entryForm.Title,
		Content:  m.entryForm.Content,
		Mood:     m.entryForm.Mood,
		Location: m.entryForm.Location,
	})
	return m, cmd
}

// saveEntry creates the entry and reports any first-of-day reward
func (m *Model) saveEntry(draft models.DiaryDraft) {
	before := m.questState
	if _, err := m.journal.Create(context.Background(), draft); err != nil {
		m.setError(err)
	} else {
		m.refresh()
		if gained := m.questState.TotalXP - before.TotalXP; gained > 0 {
			m.setStatus("Entry saved · first of the day: +%d XP +%d coins", gained, m.questState.Coins-before.Coins)
			m.announceBadges(before)
		} else {
			m.setStatus("Entry saved")
		}
	}
	m.state = StateDiary
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		switch m.state {
		case StateConfirmDelete:
			if err := m.journal.Delete(m.entryToDeleteID); err != nil {
				m.setError(err)
			} else {
				m.refresh()
				m.setStatus("Entry deleted")
			}
			m.entryToDeleteID = ""
		case StateConfirmReset:
			if _, err := m.quests.ResetDay(m.today); err != nil {
				m.setError(err)
			} else {
				m.refresh()
				m.setStatus("Reset today's completions")
			}
		}
		m.state = m.previousState
	case key.Matches(msg, m.keys.Cancel):
		m.entryToDeleteID = ""
		m.state = m.previousState
	}
	return m, nil
}
