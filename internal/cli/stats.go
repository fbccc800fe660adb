package cli

import (
	"fmt"

	"github.com/julianstephens/questlog/internal/constants"
	"github.com/julianstephens/questlog/internal/diary"
	"github.com/julianstephens/questlog/internal/models"
	"github.com/julianstephens/questlog/internal/quest"
)

const chartWidth = 30

type StatsCmd struct {
	Days int `help:"Number of days in the XP chart." default:"7"`
}

func (c *StatsCmd) ReadOnly() bool { return true }

func (c *StatsCmd) Run(ctx *Context) error {
	days := c.Days
	if days <= 0 {
		days = constants.DefaultChartDays
	}

	state, err := ctx.Quest.State()
	if err != nil {
		return err
	}
	chart, err := ctx.Quest.WeeklyXP(days)
	if err != nil {
		return err
	}
	entries, err := ctx.Diary.Entries()
	if err != nil {
		return err
	}

	level := quest.Level(state.TotalXP)
	progress := quest.LevelProgress(state.TotalXP)
	ctx.printf("Level %d  [%-20s] %d%% to Lv.%d\n", level, bar(progress, 100, 20), progress, level+1)
	ctx.printf("Total XP: %d · Coins: %d · Badges: %d/%d\n",
		state.TotalXP, state.Coins, len(state.Badges), len(quest.Badges))

	bestStreak := 0
	for _, h := range state.Habits {
		if h.BestStreak > bestStreak {
			bestStreak = h.BestStreak
		}
	}
	ctx.printf("Active habits: %d · Best streak: %d · Diary entries: %d\n",
		len(quest.ActiveHabits(state)), bestStreak, len(entries))

	ctx.printf("\nXP over the last %d days\n", days)
	maxXP := 0
	for _, d := range chart {
		if d.XP > maxXP {
			maxXP = d.XP
		}
	}
	table := newTable()
	for _, d := range chart {
		table.AddRow(d.Label, bar(d.XP, maxXP, chartWidth), d.XP)
	}
	ctx.printTable(table)

	ctx.println("\nMoods")
	counts := diary.CountByMood(entries)
	moods := newTable()
	for _, m := range models.Moods {
		moods.AddRow(m, fmt.Sprintf("%d", counts[m]))
	}
	ctx.printTable(moods)
	return nil
}
