package cli

import (
	"errors"

	"github.com/julianstephens/questlog/internal/constants"
	"github.com/julianstephens/questlog/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Reset the habit quest to its starter habits even if one exists."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	_, err := ctx.Store.Get(constants.HabitQuestKey)
	switch {
	case err == nil && !c.Force:
		ctx.printf("Storage already initialized at: %s\n", displayPath(ctx.Store.GetConfigPath()))
		return nil
	case err != nil && !errors.Is(err, storage.ErrNotFound):
		return err
	}

	state, err := ctx.Quest.ResetAll()
	if err != nil {
		return err
	}
	ctx.printf("Initialized questlog storage at: %s\n", displayPath(ctx.Store.GetConfigPath()))
	ctx.printf("Created %d starter habits. Run 'questlog habit today' to see them.\n", len(state.Habits))
	return nil
}
