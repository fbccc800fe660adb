package models

import (
	"fmt"
	"strings"
	"time"
)

type Mood string

const (
	MoodHappy   Mood = "HAPPY"
	MoodNeutral Mood = "NEUTRAL"
	MoodTired   Mood = "TIRED"
	MoodSad     Mood = "SAD"
	MoodProud   Mood = "PROUD"
	MoodFocused Mood = "FOCUSED"

	// MoodAll is the filter value that matches every mood
	MoodAll Mood = "ALL"
)

// Moods lists every valid mood in display order
var Moods = []Mood{MoodHappy, MoodNeutral, MoodTired, MoodSad, MoodProud, MoodFocused}

// ParseMood parses a mood name case-insensitively
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToUpper(strings.TrimSpace(s)))
	for _, valid := range Moods {
		if m == valid {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid mood %q (expected one of %s)", s, strings.Join(MoodNames(), ", "))
}

// MoodNames returns the mood names as strings
func MoodNames() []string {
	names := make([]string, len(Moods))
	for i, m := range Moods {
		names[i] = string(m)
	}
	return names
}

// DiaryEntry is a single dated diary record
type DiaryEntry struct {
	ID           string    `json:"id"`
	Date         string    `json:"date"` // YYYY-MM-DD format
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Mood         Mood      `json:"mood"`
	Location     string    `json:"location,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Weather      string    `json:"weather,omitempty"`
	TemperatureC *float64  `json:"temperatureC,omitempty"`
}

// DiaryDraft holds the user-editable fields of a diary entry
type DiaryDraft struct {
	Date         string
	Title        string
	Content      string
	Mood         Mood
	Location     string
	Weather      string
	TemperatureC *float64
}
