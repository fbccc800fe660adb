package entries

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/questlog/internal/diary"
	"github.com/julianstephens/questlog/internal/models"
)

type NewEntryMsg struct{}

type DeleteEntryMsg struct {
	ID string
}

type Item struct {
	Entry models.DiaryEntry
}

func (i Item) Title() string {
	title := i.Entry.Title
	if title == "" {
		title = strings.SplitN(strings.TrimSpace(i.Entry.Content), "\n", 2)[0]
	}
	return fmt.Sprintf("%s  %s", i.Entry.Date, title)
}

func (i Item) Description() string {
	parts := []string{moodEmoji(i.Entry.Mood) + " " + string(i.Entry.Mood)}
	if i.Entry.Location != "" {
		parts = append(parts, i.Entry.Location)
	}
	if i.Entry.Weather != "" {
		parts = append(parts, i.Entry.Weather)
	}
	return strings.Join(parts, " · ")
}

func (i Item) FilterValue() string {
	return i.Entry.Title
}

func moodEmoji(m models.Mood) string {
	switch m {
	case models.MoodHappy:
		return "😊"
	case models.MoodTired:
		return "😴"
	case models.MoodSad:
		return "😢"
	case models.MoodProud:
		return "😎"
	case models.MoodFocused:
		return "🧐"
	default:
		return "😐"
	}
}

type KeyMap struct {
	New    key.Binding
	Delete key.Binding
	Mood   key.Binding
	Search key.Binding
	Clear  key.Binding
	Apply  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new entry"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Mood: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mood filter"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear search"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply search"),
		),
	}
}

type Model struct {
	list      list.Model
	keys      KeyMap
	search    textinput.Model
	searching bool
	entries   []models.DiaryEntry
	mood      models.Mood
}

func New(entries []models.DiaryEntry, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Diary"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	// search goes through diary.Filter so results keep the newest-first order
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.New, keys.Delete, keys.Mood, keys.Search}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.New, keys.Delete, keys.Mood, keys.Search}
	}

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "title, text or location"
	ti.CharLimit = 128

	m := Model{list: l, keys: keys, search: ti, mood: models.MoodAll}
	m.SetEntries(entries)
	return m
}

func (m *Model) SetEntries(entries []models.DiaryEntry) {
	m.entries = entries
	m.refresh()
}

func (m *Model) refresh() {
	filtered := diary.Filter(m.entries, m.Query(), m.mood)
	items := make([]list.Item, len(filtered))
	for i, e := range filtered {
		items[i] = Item{Entry: e}
	}
	m.list.SetItems(items)
}

// Mood returns the active mood filter
func (m Model) Mood() models.Mood {
	return m.mood
}

// Query returns the active search text
func (m Model) Query() string {
	return strings.TrimSpace(m.search.Value())
}

func (m *Model) cycleMood() {
	order := append([]models.Mood{models.MoodAll}, models.Moods...)
	for i, mood := range order {
		if mood == m.mood {
			m.mood = order[(i+1)%len(order)]
			break
		}
	}
	m.refresh()
}

// Filtering reports whether the search input has focus
func (m Model) Filtering() bool {
	return m.searching
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		switch {
		case key.Matches(msg, m.keys.New):
			return m, func() tea.Msg { return NewEntryMsg{} }
		case key.Matches(msg, m.keys.Mood):
			m.cycleMood()
			return m, nil
		case key.Matches(msg, m.keys.Search):
			m.searching = true
			return m, m.search.Focus()
		case key.Matches(msg, m.keys.Clear):
			if m.Query() != "" {
				m.search.SetValue("")
				m.refresh()
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteEntryMsg{ID: i.Entry.ID} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Apply):
		m.searching = false
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh()
	return m, cmd
}

func (m Model) View() string {
	header := fmt.Sprintf("  Mood: %s  ·  %d entries\n", m.mood, len(m.list.Items()))
	if m.searching || m.Query() != "" {
		header += "  " + m.search.View() + "\n"
	}
	if len(m.list.Items()) == 0 {
		if len(m.entries) == 0 {
			return header + "\n  No diary entries yet.\n  Press 'n' to write one."
		}
		return header + "\n  No entries match this filter."
	}
	return header + m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.search.Width = width - 4
	m.list.SetSize(width, height-2)
}
