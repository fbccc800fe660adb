// Package quest implements the habit ledger: habits, the day-indexed
// completion log, XP/coin totals and badges. Every transition is a pure
// function from one QuestState to the next; persistence lives in Service.
package quest

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/questlog/internal/constants"
	"github.com/julianstephens/questlog/internal/models"
	"github.com/julianstephens/questlog/internal/utils"
	"github.com/julianstephens/questlog/internal/validation"
)

var (
	ErrHabitNotFound     = errors.New("habit not found")
	ErrUnknownItem       = errors.New("unknown shop item")
	ErrInsufficientCoins = errors.New("not enough coins")
)

// newID is swapped in tests for deterministic ids
var newID = uuid.NewString

// DefaultHabits returns the starter habits created on first use
func DefaultHabits(today string) []models.Habit {
	starter := []struct {
		id, name  string
		xp, coins int
	}{
		{"water", "Morning glass of water", 5, 2},
		{"study", "Study 30 minutes", 15, 5},
		{"exercise", "Exercise 10 minutes", 10, 4},
		{constants.JournalHabitID, constants.JournalHabitName, 20, 8},
	}
	habits := make([]models.Habit, len(starter))
	for i, s := range starter {
		habits[i] = models.Habit{
			ID:        s.id,
			Name:      s.name,
			XP:        s.xp,
			Coins:     s.coins,
			CreatedAt: today,
			Active:    true,
		}
	}
	return habits
}

// DefaultState is the state of a tracker that has never been used
func DefaultState(today string) models.QuestState {
	return models.QuestState{
		Habits:      DefaultHabits(today),
		Completions: make(map[string][]string),
		Badges:      []string{},
		Version:     constants.SchemaVersion,
	}
}

// Normalize fills nil collections and a missing schema version so that
// snapshots written by older or partial clients behave like fresh ones.
func Normalize(state models.QuestState) models.QuestState {
	if state.Habits == nil {
		state.Habits = []models.Habit{}
	}
	if state.Completions == nil {
		state.Completions = make(map[string][]string)
	}
	if state.Badges == nil {
		state.Badges = []string{}
	}
	if state.Version == 0 {
		state.Version = constants.SchemaVersion
	}
	if state.TotalXP < 0 {
		state.TotalXP = 0
	}
	if state.Coins < 0 {
		state.Coins = 0
	}
	return state
}

// AdvanceStreak applies a completion on day to the habit's streak.
// The gap is measured in calendar days since LastDone: a gap of one extends
// the streak, a longer gap restarts it at one. A missing or unparseable
// LastDone counts as no prior completion. A backfilled day earlier than
// LastDone leaves the streak and LastDone alone.
func AdvanceStreak(h *models.Habit, day string) {
	if h.LastDone == nil {
		h.Streak = 1
	} else if gap, err := utils.DaysBetween(*h.LastDone, day); err != nil {
		h.Streak = 1
	} else if gap < 0 {
		return
	} else if gap == 1 {
		h.Streak++
	} else if gap > 1 {
		h.Streak = 1
	}
	d := day
	h.LastDone = &d
	if h.Streak > h.BestStreak {
		h.BestStreak = h.Streak
	}
}

// RollbackStreak undoes a completion on day. Only a completion that is
// still the habit's latest (LastDone == day) changes the streak; older
// history is left as is.
func RollbackStreak(h *models.Habit, day string) {
	if h.LastDone == nil || *h.LastDone != day {
		return
	}
	h.Streak--
	if h.Streak < 0 {
		h.Streak = 0
	}
	h.LastDone = nil
}

// MarkCompleted adds habitID to the completion set for day
func MarkCompleted(state *models.QuestState, habitID, day string) {
	if state.Completions == nil {
		state.Completions = make(map[string][]string)
	}
	if state.IsCompleted(habitID, day) {
		return
	}
	state.Completions[day] = append(state.Completions[day], habitID)
}

func unmarkCompleted(state *models.QuestState, habitID, day string) {
	ids := state.Completions[day]
	kept := ids[:0]
	for _, id := range ids {
		if id != habitID {
			kept = append(kept, id)
		}
	}
	if len(kept) == 0 {
		delete(state.Completions, day)
		return
	}
	state.Completions[day] = kept
}

func floorZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// ToggleCompletion marks the habit done on day, or undoes it if already done.
func ToggleCompletion(state models.QuestState, habitID, day string) (models.QuestState, error) {
	next := state.Clone()
	idx := next.FindHabit(habitID)
	if idx < 0 {
		return state, ErrHabitNotFound
	}
	target := &next.Habits[idx]

	if next.IsCompleted(habitID, day) {
		unmarkCompleted(&next, habitID, day)
		RollbackStreak(target, day)
		next.TotalXP = floorZero(next.TotalXP - target.XP)
		next.Coins = floorZero(next.Coins - target.Coins)
	} else {
		MarkCompleted(&next, habitID, day)
		AdvanceStreak(target, day)
		next.TotalXP += target.XP
		next.Coins += target.Coins
	}

	return RecomputeBadges(next), nil
}

// AddHabit appends a new active habit. It reports false and returns the
// state unchanged when the trimmed name is empty. XP and coins are clamped
// into their allowed ranges rather than rejected.
func AddHabit(state models.QuestState, name string, xp, coins int, today string) (models.QuestState, models.Habit, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return state, models.Habit{}, false
	}
	habit := models.Habit{
		ID:        newID(),
		Name:      name,
		XP:        validation.ClampInt(xp, constants.MinHabitXP, constants.MaxHabitXP),
		Coins:     validation.ClampInt(coins, constants.MinHabitCoins, constants.MaxHabitCoins),
		CreatedAt: today,
		Active:    true,
	}
	next := state.Clone()
	next.Habits = append(next.Habits, habit)
	return next, habit, true
}

func setActive(state models.QuestState, id string, active bool) (models.QuestState, error) {
	next := state.Clone()
	idx := next.FindHabit(id)
	if idx < 0 {
		return state, ErrHabitNotFound
	}
	next.Habits[idx].Active = active
	return next, nil
}

// ArchiveHabit hides a habit from the daily quest list, keeping its history
func ArchiveHabit(state models.QuestState, id string) (models.QuestState, error) {
	return setActive(state, id, false)
}

// RestoreHabit brings an archived habit back to the daily quest list
func RestoreHabit(state models.QuestState, id string) (models.QuestState, error) {
	return setActive(state, id, true)
}

// ResetDay cancels every completion recorded on day, refunding its XP and
// coins. A day with no completions returns the state untouched.
func ResetDay(state models.QuestState, day string) models.QuestState {
	ids := state.Completions[day]
	if len(ids) == 0 {
		return state
	}

	next := state.Clone()
	refundXP, refundCoins := 0, 0
	for _, id := range ids {
		idx := next.FindHabit(id)
		if idx < 0 {
			continue
		}
		h := &next.Habits[idx]
		RollbackStreak(h, day)
		refundXP += h.XP
		refundCoins += h.Coins
	}
	delete(next.Completions, day)
	next.TotalXP = floorZero(next.TotalXP - refundXP)
	next.Coins = floorZero(next.Coins - refundCoins)
	return next
}

// ActiveHabits returns the habits shown in the daily quest list
func ActiveHabits(state models.QuestState) []models.Habit {
	var active []models.Habit
	for _, h := range state.Habits {
		if h.Active {
			active = append(active, h)
		}
	}
	return active
}

// CompletedOn returns the set of habit ids completed on day
func CompletedOn(state models.QuestState, day string) map[string]bool {
	done := make(map[string]bool, len(state.Completions[day]))
	for _, id := range state.Completions[day] {
		done[id] = true
	}
	return done
}

// FindHabitByRef resolves a habit by id, falling back to a case-insensitive name match
func FindHabitByRef(state models.QuestState, ref string) (models.Habit, error) {
	ref = strings.TrimSpace(ref)
	if idx := state.FindHabit(ref); idx >= 0 {
		return state.Habits[idx], nil
	}
	for _, h := range state.Habits {
		if strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}
	return models.Habit{}, ErrHabitNotFound
}
