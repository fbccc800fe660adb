package cli

import (
	"github.com/julianstephens/questlog/internal/storage"
	"github.com/julianstephens/questlog/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) ReadOnly() bool { return true }

func (cmd *ValidateCmd) Run(ctx *Context) error {
	validator := validation.New()
	var combined validation.ValidationResult

	// Raw snapshot, before Normalize repairs anything.
	ctx.println("Validating habit quest...")
	state, found, err := storage.LoadQuestState(ctx.Store)
	if err != nil {
		return err
	}
	if found {
		combined.Conflicts = append(combined.Conflicts, validator.ValidateQuestState(state).Conflicts...)
	}

	ctx.println("Validating diary...")
	entries, err := storage.LoadDiary(ctx.Store)
	if err != nil {
		return err
	}
	combined.Conflicts = append(combined.Conflicts, validator.ValidateDiary(entries).Conflicts...)

	ctx.println()
	ctx.println(combined.FormatReport())
	return nil
}
