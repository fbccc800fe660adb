package quest

import (
	"math"

	"github.com/julianstephens/questlog/internal/constants"
	"github.com/julianstephens/questlog/internal/models"
	"github.com/julianstephens/questlog/internal/utils"
)

// Level returns the 1-based level for a total XP amount
func Level(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP/constants.XPPerLevel + 1
}

// LevelProgress returns how far through the current level totalXP is, as a
// percentage in [0, 100].
func LevelProgress(totalXP int) int {
	level := Level(totalXP)
	floor := (level - 1) * constants.XPPerLevel
	ceiling := level * constants.XPPerLevel
	pct := int(math.Round(float64(totalXP-floor) / float64(ceiling-floor) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// XPOn sums the XP of the habits completed on day. Completions that refer
// to habits no longer in the state count as zero.
func XPOn(state models.QuestState, day string) int {
	total := 0
	for _, id := range state.Completions[day] {
		if idx := state.FindHabit(id); idx >= 0 {
			total += state.Habits[idx].XP
		}
	}
	return total
}

// WeeklyXP returns per-day XP for the days ending on end, oldest first.
func WeeklyXP(state models.QuestState, end string, days int) ([]models.DayXP, error) {
	if days <= 0 {
		days = constants.DefaultChartDays
	}
	out := make([]models.DayXP, 0, days)
	for i := days - 1; i >= 0; i-- {
		day, err := utils.AddDays(end, -i)
		if err != nil {
			return nil, err
		}
		out = append(out, models.DayXP{
			Day:   day,
			Label: day[5:],
			XP:    XPOn(state, day),
		})
	}
	return out, nil
}
