package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/questlog/internal/models"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

type ArchiveHabitMsg struct {
	ID string
}

type RestoreHabitMsg struct {
	ID string
}

type ResetTodayMsg struct{}

type Item struct {
	Habit    models.Habit
	IsMarked bool
}

func (i Item) Title() string {
	switch {
	case !i.Habit.Active:
		return "[ARCHIVED] " + i.Habit.Name
	case i.IsMarked:
		return "✓ " + i.Habit.Name
	default:
		return "○ " + i.Habit.Name
	}
}

func (i Item) Description() string {
	if !i.Habit.Active {
		return "archived · restore with 'r'"
	}
	streak := "no streak"
	if i.Habit.Streak > 0 {
		streak = fmt.Sprintf("🔥 %d day streak", i.Habit.Streak)
	}
	return fmt.Sprintf("+%d XP · +%d coins · %s · best %d", i.Habit.XP, i.Habit.Coins, streak, i.Habit.BestStreak)
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add        key.Binding
	Toggle     key.Binding
	Archive    key.Binding
	Restore    key.Binding
	ResetToday key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Archive: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "archive"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
		ResetToday: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset today"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(state models.QuestState, today string, width, height int) Model {
	l := list.New(items(state, today), list.NewDefaultDelegate(), width, height)
	l.Title = "Quests"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add, keys.Archive, keys.ResetToday}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add, keys.Archive, keys.Restore, keys.ResetToday}
	}

	return Model{list: l, keys: keys}
}

// items lists active habits first, then archived ones
func items(state models.QuestState, today string) []list.Item {
	done := make(map[string]bool)
	for _, id := range state.Completions[today] {
		done[id] = true
	}
	out := make([]list.Item, 0, len(state.Habits))
	for _, h := range state.Habits {
		if h.Active {
			out = append(out, Item{Habit: h, IsMarked: done[h.ID]})
		}
	}
	for _, h := range state.Habits {
		if !h.Active {
			out = append(out, Item{Habit: h})
		}
	}
	return out
}

func (m *Model) SetState(state models.QuestState, today string) {
	m.list.SetItems(items(state, today))
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.ResetToday):
			return m, func() tea.Msg { return ResetTodayMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok && i.Habit.Active {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: i.Habit.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Archive):
			if i, ok := m.list.SelectedItem().(Item); ok && i.Habit.Active {
				return m, func() tea.Msg { return ArchiveHabitMsg{ID: i.Habit.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Restore):
			if i, ok := m.list.SelectedItem().(Item); ok && !i.Habit.Active {
				return m, func() tea.Msg { return RestoreHabitMsg{ID: i.Habit.ID} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
