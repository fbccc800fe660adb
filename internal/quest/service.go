package quest

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/questlog/internal/models"
	"github.com/julianstephens/questlog/internal/storage"
	"github.com/julianstephens/questlog/internal/utils"
)

var ErrEmptyHabitName = errors.New("habit name cannot be empty")

// Service binds the ledger to a store. Every mutation reads the whole
// snapshot, applies one transition and writes the whole snapshot back.
type Service struct {
	store storage.Provider
	loc   *time.Location
	now   func() time.Time
}

func NewService(store storage.Provider, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{store: store, loc: loc, now: time.Now}
}

// WithClock replaces the service clock; used by tests and the TUI.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Today returns the current calendar day in the service's time zone
func (s *Service) Today() string {
	return utils.FormatDate(s.now().In(s.loc))
}

// State returns the stored quest state, or the default state when the slot
// is absent or unreadable.
func (s *Service) State() (models.QuestState, error) {
	state, found, err := storage.LoadQuestState(s.store)
	if err != nil {
		return models.QuestState{}, fmt.Errorf("failed to load habit quest: %w", err)
	}
	if !found {
		return DefaultState(s.Today()), nil
	}
	return Normalize(state), nil
}

// Ensure returns the stored quest state, saving the default state first when
// the slot is absent. Sessions that show the tracker call it so the diary
// reward has a state to credit.
func (s *Service) Ensure() (models.QuestState, error) {
	state, found, err := storage.LoadQuestState(s.store)
	if err != nil {
		return models.QuestState{}, fmt.Errorf("failed to load habit quest: %w", err)
	}
	if found {
		return Normalize(state), nil
	}
	state = DefaultState(s.Today())
	if err := storage.SaveQuestState(s.store, state); err != nil {
		return models.QuestState{}, fmt.Errorf("failed to save habit quest: %w", err)
	}
	return state, nil
}

func (s *Service) update(fn func(models.QuestState) (models.QuestState, error)) (models.QuestState, error) {
	state, err := s.State()
	if err != nil {
		return models.QuestState{}, err
	}
	next, err := fn(state)
	if err != nil {
		return state, err
	}
	next = RecomputeBadges(next)
	if err := storage.SaveQuestState(s.store, next); err != nil {
		return state, fmt.Errorf("failed to save habit quest: %w", err)
	}
	return next, nil
}

// Toggle flips the completion of the habit named by ref on day (today when
// empty). done reports whether the habit is completed afterwards.
func (s *Service) Toggle(ref, day string) (state models.QuestState, habit models.Habit, done bool, err error) {
	if day == "" {
		day = s.Today()
	} else if _, err := utils.ParseDate(day); err != nil {
		return models.QuestState{}, models.Habit{}, false, err
	}
	state, err = s.update(func(cur models.QuestState) (models.QuestState, error) {
		h, err := FindHabitByRef(cur, ref)
		if err != nil {
			return cur, fmt.Errorf("%w: %s", err, ref)
		}
		habit = h
		return ToggleCompletion(cur, h.ID, day)
	})
	if err != nil {
		return state, habit, false, err
	}
	if idx := state.FindHabit(habit.ID); idx >= 0 {
		habit = state.Habits[idx]
	}
	return state, habit, state.IsCompleted(habit.ID, day), nil
}

func (s *Service) AddHabit(name string, xp, coins int) (models.QuestState, models.Habit, error) {
	var added models.Habit
	state, err := s.update(func(cur models.QuestState) (models.QuestState, error) {
		next, h, ok := AddHabit(cur, name, xp, coins, s.Today())
		if !ok {
			return cur, ErrEmptyHabitName
		}
		added = h
		return next, nil
	})
	return state, added, err
}

func (s *Service) Archive(ref string) (models.QuestState, models.Habit, error) {
	return s.setActive(ref, ArchiveHabit)
}

func (s *Service) Restore(ref string) (models.QuestState, models.Habit, error) {
	return s.setActive(ref, RestoreHabit)
}

func (s *Service) setActive(ref string, fn func(models.QuestState, string) (models.QuestState, error)) (models.QuestState, models.Habit, error) {
	var habit models.Habit
	state, err := s.update(func(cur models.QuestState) (models.QuestState, error) {
		h, err := FindHabitByRef(cur, ref)
		if err != nil {
			return cur, fmt.Errorf("%w: %s", err, ref)
		}
		next, err := fn(cur, h.ID)
		if err != nil {
			return cur, err
		}
		habit = next.Habits[next.FindHabit(h.ID)]
		return next, nil
	})
	return state, habit, err
}

// ResetDay cancels all completions on day (today when empty)
func (s *Service) ResetDay(day string) (models.QuestState, error) {
	if day == "" {
		day = s.Today()
	} else if _, err := utils.ParseDate(day); err != nil {
		return models.QuestState{}, err
	}
	return s.update(func(cur models.QuestState) (models.QuestState, error) {
		return ResetDay(cur, day), nil
	})
}

func (s *Service) Buy(itemID string) (models.QuestState, models.ShopItem, error) {
	var bought models.ShopItem
	state, err := s.update(func(cur models.QuestState) (models.QuestState, error) {
		next, item, err := Buy(cur, itemID)
		bought = item
		return next, err
	})
	return state, bought, err
}

// ResetAll discards every habit, completion, total and badge
func (s *Service) ResetAll() (models.QuestState, error) {
	state := DefaultState(s.Today())
	if err := storage.SaveQuestState(s.store, state); err != nil {
		return models.QuestState{}, fmt.Errorf("failed to save habit quest: %w", err)
	}
	return state, nil
}

// WeeklyXP returns per-day XP for the days ending today
func (s *Service) WeeklyXP(days int) ([]models.DayXP, error) {
	state, err := s.State()
	if err != nil {
		return nil, err
	}
	return WeeklyXP(state, s.Today(), days)
}
