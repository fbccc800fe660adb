package quest

import "github.com/julianstephens/questlog/internal/models"

func anyBestStreakAtLeast(n int) func(models.QuestState) bool {
	return func(s models.QuestState) bool {
		for _, h := range s.Habits {
			if h.BestStreak >= n {
				return true
			}
		}
		return false
	}
}

// Badges is the static badge catalog
var Badges = []models.Badge{
	{
		ID:          "streak7",
		Name:        "7-day streak",
		Description: "Consistency has started",
		Condition:   anyBestStreakAtLeast(7),
	},
	{
		ID:          "streak30",
		Name:        "30-day streak",
		Description: "Gold-tier consistency",
		Condition:   anyBestStreakAtLeast(30),
	},
	{
		ID:          "xp1k",
		Name:        "XP 1,000",
		Description: "Master of leveling up",
		Condition:   func(s models.QuestState) bool { return s.TotalXP >= 1000 },
	},
	{
		ID:          "firstCoin",
		Name:        "First coin",
		Description: "A first taste of rewards",
		Condition:   func(s models.QuestState) bool { return s.Coins >= 1 },
	},
}

// FindBadge looks up a badge definition by id
func FindBadge(id string) (models.Badge, bool) {
	for _, b := range Badges {
		if b.ID == id {
			return b, true
		}
	}
	return models.Badge{}, false
}

// RecomputeBadges adds every badge whose condition now holds. Earned badges
// are never removed, even when their condition later stops holding.
func RecomputeBadges(state models.QuestState) models.QuestState {
	var earned []string
	for _, b := range Badges {
		if !state.HasBadge(b.ID) && b.Condition(state) {
			earned = append(earned, b.ID)
		}
	}
	if len(earned) == 0 {
		return state
	}
	next := state.Clone()
	next.Badges = append(next.Badges, earned...)
	return next
}
