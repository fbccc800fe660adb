package cli

import (
	"fmt"

	"github.com/julianstephens/questlog/internal/constants"
	"github.com/julianstephens/questlog/internal/models"
	"github.com/julianstephens/questlog/internal/quest"
)

type HabitCmd struct {
	Add        HabitAddCmd        `cmd:"" help:"Add a new habit."`
	List       HabitListCmd       `cmd:"" help:"List habits."`
	Today      HabitTodayCmd      `cmd:"" help:"Show today's quests." default:"1"`
	Toggle     HabitToggleCmd     `cmd:"" help:"Mark a habit done for a day, or undo it."`
	Archive    HabitArchiveCmd    `cmd:"" help:"Archive a habit, keeping its history."`
	Restore    HabitRestoreCmd    `cmd:"" help:"Restore an archived habit."`
	ResetToday HabitResetTodayCmd `cmd:"" name:"reset-today" help:"Undo every completion for today."`
}

type HabitAddCmd struct {
	Name  string `arg:"" help:"Habit name."`
	XP    int    `help:"XP per completion (1-999)." default:"10" name:"xp"`
	Coins int    `help:"Coins per completion (0-99)." default:"3"`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	_, habit, err := ctx.Quest.AddHabit(c.Name, c.XP, c.Coins)
	if err != nil {
		return err
	}
	ctx.printf("Added habit: %s (+%d XP, +%d coins)\n", habit.Name, habit.XP, habit.Coins)
	if habit.XP != c.XP || habit.Coins != c.Coins {
		ctx.printf("Note: values were clamped to XP %d-%d and coins %d-%d.\n",
			constants.MinHabitXP, constants.MaxHabitXP, constants.MinHabitCoins, constants.MaxHabitCoins)
	}
	ctx.printf("ID: %s\n", habit.ID)
	return nil
}

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
}

func (c *HabitListCmd) ReadOnly() bool { return true }

func (c *HabitListCmd) Run(ctx *Context) error {
	state, err := ctx.Quest.State()
	if err != nil {
		return err
	}

	table := newTable("ID", "NAME", "XP", "COINS", "STREAK", "BEST", "LAST DONE", "STATUS")
	rows := 0
	for _, h := range state.Habits {
		if !h.Active && !c.Archived {
			continue
		}
		status := "active"
		if !h.Active {
			status = "archived"
		}
		last := "-"
		if h.LastDone != nil {
			last = *h.LastDone
		}
		table.AddRow(h.ID, h.Name, h.XP, h.Coins, h.Streak, h.BestStreak, last, status)
		rows++
	}

	if rows == 0 {
		ctx.println("No habits found.")
		return nil
	}
	ctx.printTable(table)
	return nil
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) ReadOnly() bool { return true }

func (c *HabitTodayCmd) Run(ctx *Context) error {
	state, err := ctx.Quest.State()
	if err != nil {
		return err
	}
	today := ctx.Quest.Today()
	done := quest.CompletedOn(state, today)

	ctx.printf("Quests for %s  ·  Lv.%d (%d%%)  ·  %d XP  ·  %d coins\n\n",
		today, quest.Level(state.TotalXP), quest.LevelProgress(state.TotalXP), state.TotalXP, state.Coins)

	active := quest.ActiveHabits(state)
	if len(active) == 0 {
		ctx.println("No active habits. Add one with 'questlog habit add NAME'.")
		return nil
	}

	table := newTable("", "HABIT", "REWARD", "STREAK", "ID")
	completed := 0
	for _, h := range active {
		mark := "[ ]"
		if done[h.ID] {
			mark = "[x]"
			completed++
		}
		table.AddRow(mark, h.Name, fmt.Sprintf("+%d XP / +%d", h.XP, h.Coins), streakLabel(h), h.ID)
	}
	ctx.printTable(table)
	ctx.printf("\n%d/%d done today\n", completed, len(active))
	return nil
}

func streakLabel(h models.Habit) string {
	if h.Streak == 0 {
		return fmt.Sprintf("- (best %d)", h.BestStreak)
	}
	return fmt.Sprintf("%dd (best %d)", h.Streak, h.BestStreak)
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	before, err := ctx.Quest.State()
	if err != nil {
		return err
	}
	state, habit, done, err := ctx.Quest.Toggle(c.Habit, c.Date)
	if err != nil {
		return err
	}

	if done {
		ctx.printf("✓ %s done (+%d XP, +%d coins) · streak %d\n", habit.Name, habit.XP, habit.Coins, habit.Streak)
	} else {
		ctx.printf("Undid %s · streak %d\n", habit.Name, habit.Streak)
	}
	ctx.printf("Total: %d XP · %d coins · Lv.%d\n", state.TotalXP, state.Coins, quest.Level(state.TotalXP))
	printNewBadges(ctx, before, state)
	return nil
}

func printNewBadges(ctx *Context, before, after models.QuestState) {
	for _, id := range after.Badges {
		if before.HasBadge(id) {
			continue
		}
		if b, ok := quest.FindBadge(id); ok {
			ctx.printf("🏅 Badge unlocked: %s (%s)\n", b.Name, b.Description)
		}
	}
}

type HabitArchiveCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *HabitArchiveCmd) Run(ctx *Context) error {
	_, habit, err := ctx.Quest.Archive(c.Habit)
	if err != nil {
		return err
	}
	ctx.printf("Archived habit: %s\n", habit.Name)
	return nil
}

type HabitRestoreCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *HabitRestoreCmd) Run(ctx *Context) error {
	_, habit, err := ctx.Quest.Restore(c.Habit)
	if err != nil {
		return err
	}
	ctx.printf("Restored habit: %s\n", habit.Name)
	return nil
}

type HabitResetTodayCmd struct{}

func (c *HabitResetTodayCmd) Run(ctx *Context) error {
	before, err := ctx.Quest.State()
	if err != nil {
		return err
	}
	today := ctx.Quest.Today()
	if len(before.Completions[today]) == 0 {
		ctx.println("Nothing to reset today.")
		return nil
	}
	state, err := ctx.Quest.ResetDay(today)
	if err != nil {
		return err
	}
	ctx.printf("Reset %d completion(s) for %s. Total: %d XP · %d coins\n",
		len(before.Completions[today]), today, state.TotalXP, state.Coins)
	return nil
}
