package stats

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/questlog/internal/models"
	"github.com/julianstephens/questlog/internal/quest"
)

const chartWidth = 30

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(8)

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Data is everything the stats tab renders
type Data struct {
	State      models.QuestState
	Chart      []models.DayXP
	MoodCounts map[models.Mood]int
	Entries    int
}

type Model struct {
	viewport viewport.Model
	data     *Data
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetData(d Data) {
	m.data = &d
	m.Render()
}

func bar(value, max int) string {
	if max <= 0 || value <= 0 {
		return ""
	}
	n := value * chartWidth / max
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func (m *Model) Render() {
	if m.data == nil {
		m.viewport.SetContent("No stats loaded.")
		return
	}
	d := m.data
	var b strings.Builder

	level := quest.Level(d.State.TotalXP)
	progress := quest.LevelProgress(d.State.TotalXP)
	b.WriteString(headingStyle.Render(fmt.Sprintf("Level %d", level)))
	b.WriteString(fmt.Sprintf("  %s %d%%\n", barStyle.Render(strings.Repeat("█", progress/5)), progress))
	b.WriteString(fmt.Sprintf("%d XP · %d coins · %d diary entries\n\n", d.State.TotalXP, d.State.Coins, d.Entries))

	b.WriteString(headingStyle.Render("XP this week") + "\n")
	maxXP := 0
	for _, day := range d.Chart {
		if day.XP > maxXP {
			maxXP = day.XP
		}
	}
	for _, day := range d.Chart {
		b.WriteString(fmt.Sprintf("%s %s %d\n", labelStyle.Render(day.Label), barStyle.Render(bar(day.XP, maxXP)), day.XP))
	}

	b.WriteString("\n" + headingStyle.Render("Moods") + "\n")
	for _, mood := range models.Moods {
		b.WriteString(fmt.Sprintf("%s %d\n", labelStyle.Render(string(mood)), d.MoodCounts[mood]))
	}

	b.WriteString("\n" + headingStyle.Render("Badges") + "\n")
	for _, badge := range quest.Badges {
		if d.State.HasBadge(badge.ID) {
			b.WriteString(fmt.Sprintf("🏅 %s  %s\n", badge.Name, badge.Description))
		} else {
			b.WriteString(lockedStyle.Render(fmt.Sprintf("🔒 %s  %s", badge.Name, badge.Description)) + "\n")
		}
	}

	b.WriteString("\n" + headingStyle.Render("Shop") + "\n")
	for _, item := range quest.Shop {
		b.WriteString(fmt.Sprintf("%-24s %d coins\n", item.Name, item.Cost))
	}

	m.viewport.SetContent(b.String())
}
