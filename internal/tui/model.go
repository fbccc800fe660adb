package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/questlog/internal/diary"
	"github.com/julianstephens/questlog/internal/logger"
	"github.com/julianstephens/questlog/internal/models"
	"github.com/julianstephens/questlog/internal/quest"
	"github.com/julianstephens/questlog/internal/storage"
	"github.com/julianstephens/questlog/internal/tui/components/entries"
	"github.com/julianstephens/questlog/internal/tui/components/habits"
	"github.com/julianstephens/questlog/internal/tui/components/stats"
	"github.com/julianstephens/questlog/internal/validation"
)

type SessionState int

// The first three states are the tabs, in display order.
const (
	StateQuests SessionState = iota
	StateDiary
	StateStats
	StateAddHabit
	StateNewEntry
	StateConfirmDelete
	StateConfirmReset
)

const tabCount = 3

var tabTitles = []string{"Quests", "Diary", "Stats"}

type Model struct {
	quests            *quest.Service
	journal           *diary.Service
	store             storage.Provider
	state             SessionState
	previousState     SessionState
	keys              KeyMap
	help              help.Model
	habitsModel       habits.Model
	entriesModel      entries.Model
	statsModel        stats.Model
	form              *huh.Form
	habitForm         *HabitFormModel
	entryForm         *EntryFormModel
	questState        models.QuestState
	today             string
	entryToDeleteID   string
	status            string
	errMsg            string
	validationWarning string
	quitting          bool
	width             int
	height            int
}

func NewModel(store storage.Provider, quests *quest.Service, journal *diary.Service) Model {
	m := Model{
		quests:       quests,
		journal:      journal,
		store:        store,
		state:        StateQuests,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		habitsModel:  habits.New(models.QuestState{}, "", 0, 0),
		entriesModel: entries.New(nil, 0, 0),
		statsModel:   stats.New(0, 0),
	}
	if _, err := quests.Ensure(); err != nil {
		m.setError(err)
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case StateQuests:
		k := habits.DefaultKeyMap()
		actions = []key.Binding{k.Toggle, k.Add, k.Archive, k.Restore, k.ResetToday}
	case StateDiary:
		k := entries.DefaultKeyMap()
		actions = []key.Binding{k.New, k.Delete, k.Mood, k.Search}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads both ledgers into the components
func (m *Model) refresh() {
	state, err := m.quests.State()
	if err != nil {
		m.setError(err)
		return
	}
	list, err := m.journal.Entries()
	if err != nil {
		m.setError(err)
		return
	}
	chart, err := m.quests.WeeklyXP(7)
	if err != nil {
		m.setError(err)
		return
	}

	m.questState = state
	m.today = m.quests.Today()
	m.habitsModel.SetState(state, m.today)
	m.entriesModel.SetEntries(diary.SortByDateDesc(list))
	m.statsModel.SetData(stats.Data{
		State:      state,
		Chart:      chart,
		MoodCounts: diary.CountByMood(list),
		Entries:    len(list),
	})
	m.updateValidationStatus()
}

func (m *Model) setError(err error) {
	logger.Error("TUI operation failed", "error", err)
	m.errMsg = err.Error()
	m.status = ""
}

func (m *Model) setStatus(format string, args ...interface{}) {
	m.status = fmt.Sprintf(format, args...)
	m.errMsg = ""
}

// updateValidationStatus checks the raw stored snapshots for conflicts
func (m *Model) updateValidationStatus() {
	if m.store == nil {
		return
	}
	validator := validation.New()
	count := 0
	if state, found, err := storage.LoadQuestState(m.store); err == nil && found {
		count += len(validator.ValidateQuestState(state).Conflicts)
	}
	if list, err := storage.LoadDiary(m.store); err == nil {
		count += len(validator.ValidateDiary(list).Conflicts)
	}
	if count > 0 {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s), run 'questlog validate'", count)
	} else {
		m.validationWarning = ""
	}
}

// newBadges returns the names of badges in after that are not in before
func newBadges(before, after models.QuestState) []string {
	var names []string
	for _, id := range after.Badges {
		if before.HasBadge(id) {
			continue
		}
		if b, ok := quest.FindBadge(id); ok {
			names = append(names, b.Name)
		}
	}
	return names
}
