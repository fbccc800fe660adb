package reward

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/julianstephens/questlog/internal/constants"
	"github.com/julianstephens/questlog/internal/events"
	"github.com/julianstephens/questlog/internal/models"
	"github.com/julianstephens/questlog/internal/quest"
	"github.com/julianstephens/questlog/internal/storage"
)

const today = "2024-03-01"

func setupStore(t *testing.T) storage.Provider {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "questlog.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return store
}

func seed(t *testing.T, store storage.Provider, state models.QuestState) {
	t.Helper()
	if err := storage.SaveQuestState(store, state); err != nil {
		t.Fatalf("failed to seed state: %v", err)
	}
}

func rawSlot(t *testing.T, store storage.Provider) []byte {
	t.Helper()
	data, err := store.Get(constants.HabitQuestKey)
	if err != nil {
		t.Fatalf("failed to read slot: %v", err)
	}
	return data
}

func TestAwardFirstEntryOfDay(t *testing.T) {
	store := setupStore(t)
	yesterday := "2024-02-29"
	state := quest.DefaultState("2024-02-01")
	journal := &state.Habits[state.FindHabit(constants.JournalHabitID)]
	journal.Streak = 2
	journal.BestStreak = 2
	journal.LastDone = &yesterday
	seed(t, store, state)

	AwardIfFirstOfDay(store, 0, today)

	got, found, err := storage.LoadQuestState(store)
	if err != nil || !found {
		t.Fatalf("expected state: found=%v err=%v", found, err)
	}
	if got.TotalXP != 20 || got.Coins != 8 {
		t.Errorf("totals = %d/%d, want 20/8", got.TotalXP, got.Coins)
	}
	j := got.Habits[got.FindHabit(constants.JournalHabitID)]
	if j.Streak != 3 || j.BestStreak != 3 || j.LastDone == nil || *j.LastDone != today {
		t.Errorf("unexpected journal habit: %+v", j)
	}
	if !got.IsCompleted(constants.JournalHabitID, today) {
		t.Error("expected journal completion for today")
	}
	if !got.HasBadge("firstCoin") {
		t.Error("expected badges to be recomputed")
	}
}

func TestAwardMatchesJournalByName(t *testing.T) {
	store := setupStore(t)
	state := quest.DefaultState(today)
	idx := state.FindHabit(constants.JournalHabitID)
	state.Habits[idx].ID = "custom-id"
	seed(t, store, state)

	AwardIfFirstOfDay(store, 0, today)

	got, _, _ := storage.LoadQuestState(store)
	if !got.IsCompleted("custom-id", today) {
		t.Error("habit named like the journal should receive the completion")
	}
}

func TestAwardSkippedWhenNotFirst(t *testing.T) {
	store := setupStore(t)
	seed(t, store, quest.DefaultState(today))
	before := rawSlot(t, store)

	AwardIfFirstOfDay(store, 1, today)

	if !bytes.Equal(before, rawSlot(t, store)) {
		t.Error("state must not change when an entry already exists today")
	}
}

func TestAwardWithoutQuestState(t *testing.T) {
	store := setupStore(t)

	AwardIfFirstOfDay(store, 0, today)

	if keys, _ := store.Keys(); len(keys) != 0 {
		t.Errorf("reward must not create the habit slot, found keys %v", keys)
	}
}

func TestAwardWithMalformedState(t *testing.T) {
	store := setupStore(t)
	if err := store.Put(constants.HabitQuestKey, []byte(`[1,2,3]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	AwardIfFirstOfDay(store, 0, today)

	if got := string(rawSlot(t, store)); got != `[1,2,3]` {
		t.Errorf("malformed slot should be left alone, got %s", got)
	}
}

func TestAwardJournalAlreadyDoneToday(t *testing.T) {
	store := setupStore(t)
	state, err := quest.ToggleCompletion(quest.DefaultState(today), constants.JournalHabitID, today)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	seed(t, store, state)

	AwardIfFirstOfDay(store, 0, today)

	got, _, _ := storage.LoadQuestState(store)
	if n := len(got.Completions[today]); n != 1 {
		t.Errorf("completion set should not duplicate the journal, got %d ids", n)
	}
	j := got.Habits[got.FindHabit(constants.JournalHabitID)]
	if j.Streak != 1 {
		t.Errorf("same-day reward should not extend the streak, got %d", j.Streak)
	}
}

func TestHandlerViaBus(t *testing.T) {
	store := setupStore(t)
	seed(t, store, quest.DefaultState(today))

	bus := events.NewBus()
	Register(bus, store)
	if failed := bus.Publish(context.Background(), events.DiaryEntryCreated{Date: today, CountBefore: 0}); failed != 0 {
		t.Fatalf("handler failed %d times", failed)
	}

	got, _, _ := storage.LoadQuestState(store)
	if got.TotalXP != constants.DiaryRewardXP {
		t.Errorf("TotalXP = %d, want %d", got.TotalXP, constants.DiaryRewardXP)
	}
}
