package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/questlog/internal/keyring"
	"github.com/julianstephens/questlog/internal/storage"
	"github.com/julianstephens/questlog/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) ReadOnly() bool { return true }

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	hasError := false
	fail := func(name string, err error) {
		ctx.printf("❌ %s: FAIL\n", name)
		ctx.printf("   Error: %v\n", err)
		hasError = true
	}
	warn := func(name string, err error) {
		ctx.printf("⚠ %s: WARNING\n", name)
		ctx.printf("   %v\n", err)
	}
	ok := func(name string) {
		ctx.printf("✓ %s: OK\n", name)
	}

	storeReachable := false
	if err := checkStoreReachable(ctx); err != nil {
		fail("Store reachable", err)
	} else {
		ok("Store reachable")
		storeReachable = true
	}

	if err := checkSchemaVersion(ctx); err != nil {
		fail("Schema version", err)
	} else {
		ok("Schema version")
	}

	if err := checkBackupsPresent(ctx); err != nil {
		warn("Backups present", err)
	} else {
		ok("Backups present")
	}

	if storeReachable {
		if err := checkValidation(ctx); err != nil {
			fail("Data validation", err)
		} else {
			ok("Data validation")
		}
	} else {
		ctx.printf("⊘ Data validation: SKIPPED (store not reachable)\n")
	}

	if err := checkClockTimezone(ctx); err != nil {
		fail("Clock/timezone", err)
	} else {
		ok("Clock/timezone")
	}

	if err := checkWeatherToken(); err != nil {
		warn("Weather token", err)
	} else {
		ok("Weather token")
	}

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *Context) error {
	if _, err := ctx.Store.Keys(); err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	versioned, ok := ctx.Store.(storage.Versioned)
	if !ok {
		return nil
	}
	current, latest, err := versioned.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr, err := ctx.backupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, consider creating one with 'questlog backup create'")
	}
	return nil
}

func checkValidation(ctx *Context) error {
	validator := validation.New()
	state, found, err := storage.LoadQuestState(ctx.Store)
	if err != nil {
		return err
	}
	conflicts := 0
	if found {
		conflicts += len(validator.ValidateQuestState(state).Conflicts)
	}
	entries, err := storage.LoadDiary(ctx.Store)
	if err != nil {
		return err
	}
	conflicts += len(validator.ValidateDiary(entries).Conflicts)
	if conflicts > 0 {
		return fmt.Errorf("%d conflict(s) found, run 'questlog validate' for details", conflicts)
	}
	return nil
}

func checkClockTimezone(ctx *Context) error {
	now := time.Now().In(ctx.Location)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Location == time.UTC {
		ctx.printf("   Note: timezone is UTC, days roll over at 00:00 UTC\n")
	}
	return nil
}

func checkWeatherToken() error {
	if _, err := keyring.GetToken(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no weather API token stored, weather requests are sent unauthenticated")
		}
		return err
	}
	return nil
}
