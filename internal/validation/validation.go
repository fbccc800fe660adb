package validation

import (
	"fmt"

	"github.com/julianstephens/questlog/internal/models"
	"github.com/julianstephens/questlog/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictStreakExceedsBest  ConflictType = "streak_exceeds_best"
	ConflictNegativeStreak     ConflictType = "negative_streak"
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictUnknownHabit       ConflictType = "unknown_habit"
	ConflictDuplicateInDay     ConflictType = "duplicate_completion"
	ConflictNegativeTotals     ConflictType = "negative_totals"
	ConflictInvalidMood        ConflictType = "invalid_mood"
	ConflictDuplicateEntryID   ConflictType = "duplicate_entry_id"
)

// Conflict represents a detected inconsistency in stored state
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Habit/entry ids involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator checks stored ledger snapshots for broken invariants
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ClampInt bounds v to [min, max]
func ClampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ValidateDate checks that day is a YYYY-MM-DD calendar date
func ValidateDate(day string) error {
	_, err := utils.ParseDate(day)
	return err
}

// ValidateQuestState checks habit and completion log invariants
func (v *Validator) ValidateQuestState(state models.QuestState) *ValidationResult {
	result := &ValidationResult{}

	names := make(map[string]string)
	known := make(map[string]bool)
	for _, h := range state.Habits {
		known[h.ID] = true
		if other, ok := names[h.Name]; ok {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateHabitName,
				Description: fmt.Sprintf("Duplicate habit name %q", h.Name),
				Items:       []string{other, h.ID},
			})
		} else {
			names[h.Name] = h.ID
		}
		if h.Streak < 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictNegativeStreak,
				Description: fmt.Sprintf("Habit %q has negative streak %d", h.Name, h.Streak),
				Items:       []string{h.ID},
			})
		}
		if h.BestStreak < h.Streak {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictStreakExceedsBest,
				Description: fmt.Sprintf("Habit %q has streak %d above best streak %d", h.Name, h.Streak, h.BestStreak),
				Items:       []string{h.ID},
			})
		}
		if h.LastDone != nil {
			if err := ValidateDate(*h.LastDone); err != nil {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidDate,
					Description: fmt.Sprintf("Habit %q has invalid last-done date %q", h.Name, *h.LastDone),
					Date:        *h.LastDone,
					Items:       []string{h.ID},
				})
			}
		}
	}

	for day, ids := range state.Completions {
		if err := ValidateDate(day); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Completion log has invalid date key %q", day),
				Date:        day,
			})
		}
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictDuplicateInDay,
					Description: fmt.Sprintf("Habit %s recorded more than once on %s", id, day),
					Date:        day,
					Items:       []string{id},
				})
			}
			seen[id] = true
			if !known[id] {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictUnknownHabit,
					Description: fmt.Sprintf("Completion on %s references unknown habit %s", day, id),
					Date:        day,
					Items:       []string{id},
				})
			}
		}
	}

	if state.TotalXP < 0 || state.Coins < 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictNegativeTotals,
			Description: fmt.Sprintf("Negative totals: xp=%d coins=%d", state.TotalXP, state.Coins),
		})
	}

	return result
}

// ValidateDiary checks diary entries for invalid dates, moods and duplicate ids
func (v *Validator) ValidateDiary(entries []models.DiaryEntry) *ValidationResult {
	result := &ValidationResult{}
	ids := make(map[string]bool, len(entries))
	for _, e := range entries {
		if ids[e.ID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateEntryID,
				Description: fmt.Sprintf("Diary entry id %s is used more than once", e.ID),
				Items:       []string{e.ID},
			})
		}
		ids[e.ID] = true
		if err := ValidateDate(e.Date); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Diary entry %s has invalid date %q", e.ID, e.Date),
				Date:        e.Date,
				Items:       []string{e.ID},
			})
		}
		if _, err := models.ParseMood(string(e.Mood)); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidMood,
				Description: fmt.Sprintf("Diary entry %s has invalid mood %q", e.ID, e.Mood),
				Items:       []string{e.ID},
			})
		}
	}
	return result
}
