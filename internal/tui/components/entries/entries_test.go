package entries

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/questlog/internal/models"
)

func sampleEntries() []models.DiaryEntry {
	return []models.DiaryEntry{
		{ID: "a", Date: "2024-02-27", Title: "Gym", Content: "leg day", Mood: models.MoodHappy},
		{ID: "b", Date: "2024-03-01", Title: "Evening", Content: "back at the GYM", Mood: models.MoodHappy},
		{ID: "c", Date: "2024-02-29", Title: "Quiet", Content: "read a book", Location: "gym cafe", Mood: models.MoodTired},
		{ID: "d", Date: "2024-02-28", Title: "Walk", Content: "park", Mood: models.MoodHappy},
	}
}

func typeKeys(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func visibleIDs(m Model) []string {
	var ids []string
	for _, item := range m.list.Items() {
		ids = append(ids, item.(Item).Entry.ID)
	}
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSearchUsesSubstringNewestFirst(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		moodSteps int
		want      []string
	}{
		{"no filter", "", 0, []string{"b", "c", "d", "a"}},
		{"query only", "gym", 0, []string{"b", "c", "a"}},
		{"query and mood", "gym", 1, []string{"b", "a"}},
		{"no match", "swim", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(sampleEntries(), 80, 20)
			if tt.query != "" {
				m = typeKeys(m, "/")
				if !m.Filtering() {
					t.Fatal("/ should focus the search input")
				}
				m = typeKeys(m, tt.query)
				m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
				if m.Filtering() {
					t.Fatal("enter should leave the search input")
				}
			}
			for i := 0; i < tt.moodSteps; i++ {
				m = typeKeys(m, "m")
			}

			if got := visibleIDs(m); !equalIDs(got, tt.want) {
				t.Errorf("visible = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchKeysDoNotTriggerActions(t *testing.T) {
	m := New(sampleEntries(), 80, 20)
	m = typeKeys(m, "/")

	var cmd tea.Cmd
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if cmd != nil {
		if _, ok := cmd().(NewEntryMsg); ok {
			t.Fatal("typing n while searching should not open a new entry")
		}
	}
	if m.Query() != "n" {
		t.Errorf("query = %q, want %q", m.Query(), "n")
	}
	if m.Mood() != models.MoodAll {
		t.Errorf("mood = %s, want ALL", m.Mood())
	}
}

func TestClearSearch(t *testing.T) {
	m := New(sampleEntries(), 80, 20)
	m = typeKeys(m, "/park")
	if got := visibleIDs(m); !equalIDs(got, []string{"d"}) {
		t.Fatalf("visible = %v, want [d]", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Filtering() || m.Query() != "" {
		t.Fatalf("esc should clear the search: filtering=%v query=%q", m.Filtering(), m.Query())
	}
	if got := visibleIDs(m); len(got) != 4 {
		t.Errorf("visible = %v, want all entries", got)
	}
}
