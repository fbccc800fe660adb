// Package reward credits the habit quest when the first diary entry of a
// day is written.
package reward

import (
	"context"

	"github.com/julianstephens/questlog/internal/constants"
	"github.com/julianstephens/questlog/internal/events"
	"github.com/julianstephens/questlog/internal/logger"
	"github.com/julianstephens/questlog/internal/models"
	"github.com/julianstephens/questlog/internal/quest"
	"github.com/julianstephens/questlog/internal/storage"
)

func isJournal(h models.Habit) bool {
	return h.ID == constants.JournalHabitID || h.Name == constants.JournalHabitName
}

// AwardIfFirstOfDay grants the diary reward when countBefore is zero: XP and
// coins, a streak step and a completion for the journal habit, then badges.
// It never creates the habit quest slot and never fails; problems are
// logged and the stored state is left as it was.
func AwardIfFirstOfDay(store storage.Provider, countBefore int, day string) {
	if countBefore != 0 {
		return
	}

	state, found, err := storage.LoadQuestState(store)
	if err != nil {
		logger.Warn("Skipping diary reward: failed to read habit quest", "error", err)
		return
	}
	if !found {
		logger.Debug("Skipping diary reward: no habit quest state", "day", day)
		return
	}

	next := quest.Normalize(state.Clone())
	next.TotalXP += constants.DiaryRewardXP
	next.Coins += constants.DiaryRewardCoins
	for i := range next.Habits {
		if isJournal(next.Habits[i]) {
			quest.AdvanceStreak(&next.Habits[i], day)
			quest.MarkCompleted(&next, next.Habits[i].ID, day)
			break
		}
	}
	next = quest.RecomputeBadges(next)

	if err := storage.SaveQuestState(store, next); err != nil {
		logger.Warn("Skipping diary reward: failed to save habit quest", "error", err)
		return
	}
	logger.Info("Diary reward granted", "day", day, "xp", constants.DiaryRewardXP, "coins", constants.DiaryRewardCoins)
}

// Handler subscribes AwardIfFirstOfDay to DiaryEntryCreated events
func Handler(store storage.Provider) events.Handler {
	return func(ctx context.Context, event events.Event) error {
		created, ok := event.(events.DiaryEntryCreated)
		if !ok {
			return nil
		}
		AwardIfFirstOfDay(store, created.CountBefore, created.Date)
		return nil
	}
}

// Register wires the reward into bus
func Register(bus *events.Bus, store storage.Provider) {
	bus.Subscribe(events.TopicDiaryEntryCreated, Handler(store))
}
