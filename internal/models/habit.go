package models

// Habit represents a recurring practice that earns XP and coins when completed
type Habit struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	XP         int     `json:"xp"`        // XP per completion
	Coins      int     `json:"coins"`     // coins per completion
	CreatedAt  string  `json:"createdAt"` // YYYY-MM-DD format
	Streak     int     `json:"streak"`
	BestStreak int     `json:"bestStreak"`
	LastDone   *string `json:"lastDone"` // YYYY-MM-DD format, nil if never completed
	Active     bool    `json:"active"`
}

// QuestState is the persisted habit ledger aggregate
type QuestState struct {
	Habits []Habit `json:"habits"`
	// Completions maps YYYY-MM-DD to the habit ids completed that day
	Completions map[string][]string `json:"completions"`
	TotalXP     int                 `json:"totalXP"`
	Coins       int                 `json:"coins"`
	Badges      []string            `json:"badges"`
	Version     int                 `json:"version"`
}

// Badge is a permanent achievement unlocked once Condition holds
type Badge struct {
	ID          string
	Name        string
	Description string
	Condition   func(QuestState) bool
}

// ShopItem is a reward that can be bought with coins
type ShopItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Cost int    `json:"cost"`
}

// DayXP is the XP earned on a single day, used for charts
type DayXP struct {
	Day   string `json:"day"`   // YYYY-MM-DD format
	Label string `json:"label"` // MM-DD format
	XP    int    `json:"xp"`
}

// Clone returns a deep copy of the habit
func (h Habit) Clone() Habit {
	if h.LastDone != nil {
		d := *h.LastDone
		h.LastDone = &d
	}
	return h
}

// Clone returns a deep copy of the state so transitions never alias their input
func (s QuestState) Clone() QuestState {
	out := s
	out.Habits = make([]Habit, len(s.Habits))
	for i, h := range s.Habits {
		out.Habits[i] = h.Clone()
	}
	out.Completions = make(map[string][]string, len(s.Completions))
	for day, ids := range s.Completions {
		out.Completions[day] = append([]string(nil), ids...)
	}
	out.Badges = append([]string(nil), s.Badges...)
	return out
}

// FindHabit returns the index of the habit with the given id, or -1
func (s QuestState) FindHabit(id string) int {
	for i, h := range s.Habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}

// IsCompleted reports whether the habit id is in the completion set for day
func (s QuestState) IsCompleted(habitID, day string) bool {
	for _, id := range s.Completions[day] {
		if id == habitID {
			return true
		}
	}
	return false
}

// HasBadge reports whether the badge id has been earned
func (s QuestState) HasBadge(id string) bool {
	for _, b := range s.Badges {
		if b == id {
			return true
		}
	}
	return false
}
