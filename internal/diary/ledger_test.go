package diary

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/questlog/internal/models"
)

var (
	t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	t1 = t0.Add(2 * time.Hour)
)

func entry(id, date, title, content string, mood models.Mood) models.DiaryEntry {
	return models.DiaryEntry{ID: id, Date: date, Title: title, Content: content, Mood: mood, CreatedAt: t0, UpdatedAt: t0}
}

func TestCreate(t *testing.T) {
	entries := []models.DiaryEntry{entry("old", "2024-02-28", "Old", "", models.MoodSad)}

	next, created, ok := Create(entries, models.DiaryDraft{Date: "2024-03-01", Title: " Gym day ", Content: "legs"}, t0)
	if !ok {
		t.Fatal("expected entry to be created")
	}
	if len(next) != 2 || next[0].ID != created.ID {
		t.Errorf("new entry should be prepended: %+v", next)
	}
	if created.ID == "" || created.Title != "Gym day" {
		t.Errorf("unexpected entry: %+v", created)
	}
	if !created.CreatedAt.Equal(t0) || !created.UpdatedAt.Equal(t0) {
		t.Error("createdAt and updatedAt should both be now")
	}
	if created.Mood != models.MoodNeutral {
		t.Errorf("mood = %s, want NEUTRAL default", created.Mood)
	}
	if len(entries) != 1 {
		t.Error("input collection was mutated")
	}
}

func TestCreateRejectsBlank(t *testing.T) {
	entries := []models.DiaryEntry{entry("a", "2024-03-01", "A", "", models.MoodHappy)}
	next, _, ok := Create(entries, models.DiaryDraft{Date: "2024-03-01", Title: "  ", Content: "\n"}, t0)
	if ok {
		t.Error("blank draft should be rejected")
	}
	if len(next) != 1 {
		t.Error("collection should be unchanged")
	}
}

func TestUpdate(t *testing.T) {
	temp := 12.5
	entries := []models.DiaryEntry{entry("a", "2024-03-01", "A", "first", models.MoodHappy)}
	entries[0].Weather = "Clear sky"

	next, updated, err := Update(entries, "a", models.DiaryDraft{
		Date: "2024-02-29", Title: "A2", Content: "second", Mood: models.MoodProud, Location: "Park", TemperatureC: &temp,
	}, t1)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != "A2" || updated.Date != "2024-02-29" || updated.Mood != models.MoodProud || updated.Location != "Park" {
		t.Errorf("fields not replaced: %+v", updated)
	}
	if updated.Weather != "Clear sky" {
		t.Error("weather should be kept when the draft has none")
	}
	if updated.TemperatureC == nil || *updated.TemperatureC != 12.5 {
		t.Error("temperature should be replaced")
	}
	if !updated.CreatedAt.Equal(t0) || !updated.UpdatedAt.Equal(t1) {
		t.Errorf("timestamps wrong: created=%v updated=%v", updated.CreatedAt, updated.UpdatedAt)
	}
	if next[0].Title != "A2" || entries[0].Title != "A" {
		t.Error("update must copy, not mutate")
	}

	if _, _, err := Update(entries, "missing", models.DiaryDraft{Title: "x"}, t1); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	entries := []models.DiaryEntry{
		entry("a", "2024-03-01", "A", "", models.MoodHappy),
		entry("b", "2024-03-01", "B", "", models.MoodHappy),
	}
	next, err := Delete(entries, "a")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(next) != 1 || next[0].ID != "b" {
		t.Errorf("unexpected result: %+v", next)
	}
	if _, err := Delete(next, "a"); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestFilter(t *testing.T) {
	entries := []models.DiaryEntry{
		entry("1", "2024-03-01", "Gym session", "", models.MoodHappy),
		entry("2", "2024-03-02", "Lunch", "went to the GYM after", models.MoodTired),
		entry("3", "2024-02-20", "Quiet day", "", models.MoodHappy),
		entry("4", "2024-03-03", "Run", "", models.MoodHappy),
	}
	entries[3].Location = "Gymnasium park"

	tests := []struct {
		name  string
		query string
		mood  models.Mood
		want  []string
	}{
		{"gym and happy", "gym", models.MoodHappy, []string{"4", "1"}},
		{"gym any mood", "  GYM ", models.MoodAll, []string{"4", "2", "1"}},
		{"empty mood matches all", "gym", "", []string{"4", "2", "1"}},
		{"blank query", "", models.MoodHappy, []string{"4", "1", "3"}},
		{"no match", "swim", models.MoodAll, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(entries, tt.query, tt.mood)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("position %d = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestSortByDateDescIsStable(t *testing.T) {
	entries := []models.DiaryEntry{
		entry("a", "2024-03-01", "", "", models.MoodHappy),
		entry("b", "2024-03-02", "", "", models.MoodHappy),
		entry("c", "2024-03-01", "", "", models.MoodHappy),
	}
	got := SortByDateDesc(entries)
	want := []string{"b", "a", "c"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, got[i].ID, id)
		}
	}
	if entries[0].ID != "a" || entries[1].ID != "b" {
		t.Error("input slice was reordered")
	}
}

func TestCounts(t *testing.T) {
	entries := []models.DiaryEntry{
		entry("a", "2024-03-01", "", "", models.MoodHappy),
		entry("b", "2024-03-01", "", "", models.MoodSad),
		entry("c", "2024-02-01", "", "", models.MoodHappy),
	}
	counts := CountByMood(entries)
	if counts[models.MoodHappy] != 2 || counts[models.MoodSad] != 1 || counts[models.MoodFocused] != 0 {
		t.Errorf("unexpected counts: %v", counts)
	}
	if len(counts) != len(models.Moods) {
		t.Errorf("expected every mood present, got %d keys", len(counts))
	}
	if got := CountOnDate(entries, "2024-03-01"); got != 2 {
		t.Errorf("CountOnDate = %d, want 2", got)
	}
}
