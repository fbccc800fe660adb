// Package diary implements the diary ledger: dated entries with a mood,
// optional location and weather, plus search and mood statistics.
package diary

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/questlog/internal/models"
)

var (
	ErrEntryNotFound = errors.New("diary entry not found")
	ErrEmptyEntry    = errors.New("diary entry needs a title or content")
)

var newID = uuid.NewString

func isBlank(d models.DiaryDraft) bool {
	return strings.TrimSpace(d.Title) == "" && strings.TrimSpace(d.Content) == ""
}

func moodOrDefault(m models.Mood) models.Mood {
	if m == "" || m == models.MoodAll {
		return models.MoodNeutral
	}
	return m
}

// Create prepends a new entry built from draft. A draft whose title and
// content are both blank is rejected and the collection returned unchanged.
func Create(entries []models.DiaryEntry, draft models.DiaryDraft, now time.Time) ([]models.DiaryEntry, models.DiaryEntry, bool) {
	if isBlank(draft) {
		return entries, models.DiaryEntry{}, false
	}
	entry := models.DiaryEntry{
		ID:           newID(),
		Date:         draft.Date,
		Title:        strings.TrimSpace(draft.Title),
		Content:      strings.TrimSpace(draft.Content),
		Mood:         moodOrDefault(draft.Mood),
		Location:     strings.TrimSpace(draft.Location),
		CreatedAt:    now,
		UpdatedAt:    now,
		Weather:      draft.Weather,
		TemperatureC: draft.TemperatureC,
	}
	next := make([]models.DiaryEntry, 0, len(entries)+1)
	next = append(next, entry)
	next = append(next, entries...)
	return next, entry, true
}

func indexOf(entries []models.DiaryEntry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the entry with the given id
func Find(entries []models.DiaryEntry, id string) (models.DiaryEntry, error) {
	if i := indexOf(entries, id); i >= 0 {
		return entries[i], nil
	}
	return models.DiaryEntry{}, ErrEntryNotFound
}

// Update replaces the editable fields of an entry. Weather fields are only
// replaced when the draft carries them. CreatedAt is kept.
func Update(entries []models.DiaryEntry, id string, draft models.DiaryDraft, now time.Time) ([]models.DiaryEntry, models.DiaryEntry, error) {
	i := indexOf(entries, id)
	if i < 0 {
		return entries, models.DiaryEntry{}, ErrEntryNotFound
	}
	if isBlank(draft) {
		return entries, models.DiaryEntry{}, ErrEmptyEntry
	}

	next := make([]models.DiaryEntry, len(entries))
	copy(next, entries)

	e := next[i]
	e.Date = draft.Date
	e.Title = strings.TrimSpace(draft.Title)
	e.Content = strings.TrimSpace(draft.Content)
	e.Mood = moodOrDefault(draft.Mood)
	e.Location = strings.TrimSpace(draft.Location)
	if draft.Weather != "" {
		e.Weather = draft.Weather
	}
	if draft.TemperatureC != nil {
		t := *draft.TemperatureC
		e.TemperatureC = &t
	}
	e.UpdatedAt = now
	next[i] = e
	return next, e, nil
}

// Delete removes an entry
func Delete(entries []models.DiaryEntry, id string) ([]models.DiaryEntry, error) {
	i := indexOf(entries, id)
	if i < 0 {
		return entries, ErrEntryNotFound
	}
	next := make([]models.DiaryEntry, 0, len(entries)-1)
	next = append(next, entries[:i]...)
	next = append(next, entries[i+1:]...)
	return next, nil
}

// SortByDateDesc returns a copy ordered newest date first. Entries sharing
// a date keep their collection order.
func SortByDateDesc(entries []models.DiaryEntry) []models.DiaryEntry {
	out := make([]models.DiaryEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// Filter returns the entries matching mood (ALL or empty matches any) whose
// title, content or location contains query, case-insensitively, newest
// first.
func Filter(entries []models.DiaryEntry, query string, mood models.Mood) []models.DiaryEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []models.DiaryEntry{}
	for _, e := range SortByDateDesc(entries) {
		if mood != "" && mood != models.MoodAll && e.Mood != mood {
			continue
		}
		if q != "" {
			haystack := strings.ToLower(e.Title + " " + e.Content + " " + e.Location)
			if !strings.Contains(haystack, q) {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// CountByMood tallies entries per mood. Every known mood is present.
func CountByMood(entries []models.DiaryEntry) map[models.Mood]int {
	counts := make(map[models.Mood]int, len(models.Moods))
	for _, m := range models.Moods {
		counts[m] = 0
	}
	for _, e := range entries {
		counts[e.Mood]++
	}
	return counts
}

// CountOnDate returns how many entries are dated day
func CountOnDate(entries []models.DiaryEntry, day string) int {
	n := 0
	for _, e := range entries {
		if e.Date == day {
			n++
		}
	}
	return n
}
