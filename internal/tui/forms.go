package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/questlog/internal/constants"
	"github.com/julianstephens/questlog/internal/models"
)

type HabitFormModel struct {
	Name  string
	XP    string
	Coins string
}

type EntryFormModel struct {
	Title    string
	Content  string
	Mood     models.Mood
	Location string
}

func intInRange(lo, hi int) func(string) error {
	return func(s string) error {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("enter a whole number")
		}
		if i < lo || i > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

// NewHabitForm creates a new form for adding habits
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("XP per completion").
				Value(&fm.XP).
				Validate(intInRange(constants.MinHabitXP, constants.MaxHabitXP)),
			huh.NewInput().
				Title("Coins per completion").
				Value(&fm.Coins).
				Validate(intInRange(constants.MinHabitCoins, constants.MaxHabitCoins)),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewEntryForm creates a new form for writing a diary entry
func NewEntryForm(fm *EntryFormModel) *huh.Form {
	options := make([]huh.Option[models.Mood], len(models.Moods))
	for i, m := range models.Moods {
		options[i] = huh.NewOption(string(m), m)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title),
			huh.NewText().
				Title("What happened today?").
				Value(&fm.Content).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" && strings.TrimSpace(fm.Title) == "" {
						return fmt.Errorf("write a title or some content")
					}
					return nil
				}),
			huh.NewSelect[models.Mood]().
				Title("Mood").
				Options(options...).
				Value(&fm.Mood),
			huh.NewInput().
				Title("Location").
				Value(&fm.Location),
		),
	).WithTheme(huh.ThemeDracula())
}
