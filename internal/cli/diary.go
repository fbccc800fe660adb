package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/questlog/internal/diary"
	"github.com/julianstephens/questlog/internal/logger"
	"github.com/julianstephens/questlog/internal/models"
	"github.com/julianstephens/questlog/internal/weather"
)

type DiaryCmd struct {
	Add    DiaryAddCmd    `cmd:"" help:"Write a diary entry."`
	Edit   DiaryEditCmd   `cmd:"" help:"Edit a diary entry."`
	Delete DiaryDeleteCmd `cmd:"" help:"Delete a diary entry."`
	List   DiaryListCmd   `cmd:"" help:"List diary entries, newest first." default:"1"`
	Show   DiaryShowCmd   `cmd:"" help:"Show a diary entry."`
}

type Coordinates struct {
	Lat *float64 `help:"Latitude used to look up the weather." name:"lat"`
	Lon *float64 `help:"Longitude used to look up the weather." name:"lon"`
}

// fillWeather decorates the draft with the weather at the coordinates.
// Lookup failures are logged and otherwise ignored.
func (c Coordinates) fillWeather(ctx *Context, draft *models.DiaryDraft) {
	if c.Lat == nil || c.Lon == nil {
		return
	}
	w, err := ctx.Weather.Fetch(context.Background(), *c.Lat, *c.Lon)
	if err != nil {
		logger.Warn("Weather lookup failed", "error", err)
		return
	}
	if draft.Location == "" {
		draft.Location = weather.Place(w)
	}
	draft.Weather = weather.Describe(w.WeatherCode)
	draft.TemperatureC = w.Temperature2m
}

func parseMoodFlag(s string) (models.Mood, error) {
	if s == "" {
		return "", nil
	}
	return models.ParseMood(s)
}

// resolveEntryID accepts a full id or a unique id prefix
func resolveEntryID(ctx *Context, ref string) (string, error) {
	entries, err := ctx.Diary.Entries()
	if err != nil {
		return "", err
	}
	var matches []string
	for _, e := range entries {
		if e.ID == ref {
			return e.ID, nil
		}
		if strings.HasPrefix(e.ID, ref) {
			matches = append(matches, e.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", diary.ErrEntryNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id prefix %q is ambiguous (%d entries)", ref, len(matches))
	}
}

type DiaryAddCmd struct {
	Title    string `help:"Entry title." short:"t"`
	Content  string `help:"Entry text." short:"c"`
	Mood     string `help:"One of HAPPY, NEUTRAL, TIRED, SAD, PROUD, FOCUSED." default:"NEUTRAL"`
	Location string `help:"Where you are."`
	Date     string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Coordinates `embed:""`
}

func (c *DiaryAddCmd) Run(ctx *Context) error {
	mood, err := parseMoodFlag(c.Mood)
	if err != nil {
		return err
	}
	draft := models.DiaryDraft{
		Date:     c.Date,
		Title:    c.Title,
		Content:  c.Content,
		Mood:     mood,
		Location: c.Location,
	}
	c.fillWeather(ctx, &draft)

	before, err := ctx.Quest.Ensure()
	if err != nil {
		return err
	}
	entry, err := ctx.Diary.Create(context.Background(), draft)
	if err != nil {
		return err
	}
	ctx.printf("Saved diary entry for %s (%s)\n", entry.Date, shortID(entry.ID))

	after, err := ctx.Quest.State()
	if err != nil {
		return err
	}
	if after.TotalXP > before.TotalXP {
		ctx.printf("First entry today: +%d XP, +%d coins\n", after.TotalXP-before.TotalXP, after.Coins-before.Coins)
	}
	printNewBadges(ctx, before, after)
	return nil
}

type DiaryEditCmd struct {
	ID       string  `arg:"" help:"Entry id or id prefix."`
	Title    *string `help:"New title."`
	Content  *string `help:"New text."`
	Mood     string  `help:"New mood."`
	Location *string `help:"New location."`
	Date     string  `help:"New date in YYYY-MM-DD format."`
	Coordinates `embed:""`
}

func (c *DiaryEditCmd) Run(ctx *Context) error {
	id, err := resolveEntryID(ctx, c.ID)
	if err != nil {
		return err
	}
	current, err := ctx.Diary.Get(id)
	if err != nil {
		return err
	}

	draft := models.DiaryDraft{
		Date:     current.Date,
		Title:    current.Title,
		Content:  current.Content,
		Mood:     current.Mood,
		Location: current.Location,
	}
	if c.Title != nil {
		draft.Title = *c.Title
	}
	if c.Content != nil {
		draft.Content = *c.Content
	}
	if c.Location != nil {
		draft.Location = *c.Location
	}
	if c.Date != "" {
		draft.Date = c.Date
	}
	if c.Mood != "" {
		if draft.Mood, err = models.ParseMood(c.Mood); err != nil {
			return err
		}
	}
	c.fillWeather(ctx, &draft)

	entry, err := ctx.Diary.Update(id, draft)
	if err != nil {
		return err
	}
	ctx.printf("Updated diary entry %s (%s)\n", shortID(entry.ID), entry.Date)
	return nil
}

type DiaryDeleteCmd struct {
	ID string `arg:"" help:"Entry id or id prefix."`
}

func (c *DiaryDeleteCmd) Run(ctx *Context) error {
	id, err := resolveEntryID(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Diary.Delete(id); err != nil {
		return err
	}
	ctx.printf("Deleted diary entry %s\n", shortID(id))
	return nil
}

type DiaryListCmd struct {
	Query string `help:"Only entries whose title, text or location contain this." short:"q"`
	Mood  string `help:"Only entries with this mood (or ALL)." default:"ALL"`
}

func (c *DiaryListCmd) ReadOnly() bool { return true }

func (c *DiaryListCmd) Run(ctx *Context) error {
	mood := models.MoodAll
	if c.Mood != "" && !strings.EqualFold(c.Mood, string(models.MoodAll)) {
		m, err := models.ParseMood(c.Mood)
		if err != nil {
			return err
		}
		mood = m
	}

	entries, err := ctx.Diary.List(c.Query, mood)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		ctx.println("No diary entries found.")
		return nil
	}

	table := newTable("ID", "DATE", "MOOD", "TITLE", "LOCATION")
	for _, e := range entries {
		title := e.Title
		if title == "" {
			title = truncate(e.Content, 40)
		}
		table.AddRow(shortID(e.ID), e.Date, e.Mood, title, e.Location)
	}
	ctx.printTable(table)
	return nil
}

type DiaryShowCmd struct {
	ID string `arg:"" help:"Entry id or id prefix."`
}

func (c *DiaryShowCmd) ReadOnly() bool { return true }

func (c *DiaryShowCmd) Run(ctx *Context) error {
	id, err := resolveEntryID(ctx, c.ID)
	if err != nil {
		return err
	}
	e, err := ctx.Diary.Get(id)
	if err != nil {
		return err
	}

	ctx.printf("%s  [%s]\n", e.Date, e.Mood)
	if e.Title != "" {
		ctx.printf("%s\n", e.Title)
	}
	if e.Location != "" || e.Weather != "" {
		meta := e.Location
		if e.Weather != "" {
			if meta != "" {
				meta += " · "
			}
			meta += e.Weather
		}
		if e.TemperatureC != nil {
			meta += fmt.Sprintf(" · %.0f°C", *e.TemperatureC)
		}
		ctx.printf("%s\n", meta)
	}
	ctx.println()
	ctx.println(e.Content)
	ctx.println()
	ctx.printf("id: %s\ncreated: %s\nupdated: %s\n", e.ID,
		e.CreatedAt.In(ctx.Location).Format("2006-01-02 15:04"),
		e.UpdatedAt.In(ctx.Location).Format("2006-01-02 15:04"))
	return nil
}
