package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/questlog/internal/cli"
	"github.com/julianstephens/questlog/internal/constants"
	"github.com/julianstephens/questlog/internal/errors"
	"github.com/julianstephens/questlog/internal/lock"
	"github.com/julianstephens/questlog/internal/logger"
	"github.com/julianstephens/questlog/internal/storage"
	"github.com/julianstephens/questlog/internal/utils"
)

var CLI struct {
	Version       kong.VersionFlag
	Config        string `help:"Store location: SQLite file, *.json file, diskv:<dir>, or a PostgreSQL connection string without embedded credentials." type:"string" default:"${default_config}" env:"QUESTLOG_CONFIG"`
	Timezone      string `help:"IANA timezone that decides what 'today' is." default:"Local" env:"QUESTLOG_TIMEZONE"`
	WeatherOrigin string `help:"Base URL of the weather API." default:"${default_weather_origin}" env:"QUESTLOG_WEATHER_ORIGIN"`
	Debug         bool   `help:"Log debug output to stderr." env:"QUESTLOG_DEBUG"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize questlog storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits and today's quests."`
	Diary    cli.DiaryCmd    `cmd:"" help:"Write and browse diary entries."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show level, XP chart and mood counts."`
	Badges   cli.BadgesCmd   `cmd:"" help:"Show earned and locked badges."`
	Shop     cli.ShopCmd     `cmd:"" help:"Spend coins on rewards."`
	Reset    cli.ResetCmd    `cmd:"" help:"Erase all progress and restore the starter habits."`
	Weather  cli.WeatherCmd  `cmd:"" help:"Look up the weather and manage the API token."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage store backups."`
	Validate cli.ValidateCmd `cmd:"" help:"Check the stored snapshots for conflicts."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	DebugCmd cli.DebugCmd    `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

// readOnly is implemented by commands that never write the store
type readOnly interface {
	ReadOnly() bool
}

func isReadOnly(kctx *kong.Context) bool {
	node := kctx.Selected()
	if node == nil || !node.Target.CanAddr() {
		return false
	}
	if cmd, ok := node.Target.Addr().Interface().(readOnly); ok {
		return cmd.ReadOnly()
	}
	return false
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit quests and a daily diary, with XP, coins and badges"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, constants.DefaultConfigFile),
		kong.Vars{
			"version":                constants.Version,
			"default_config":         constants.DefaultConfigPath,
			"default_weather_origin": constants.DefaultWeatherOrigin,
		},
	)

	loc, err := utils.LoadLocation(CLI.Timezone)
	if err != nil {
		errors.Fatalf("invalid timezone %q: %v", CLI.Timezone, err)
	}

	store, err := storage.Open(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	fallbackDir, err := storage.ExpandPath(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		errors.Fatal(err)
	}
	configDir := storage.ConfigDir(store, fallbackDir)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	// init handles its own setup; everything else loads, creating the store on first use
	if node := kctx.Selected(); node == nil || node.Name != "init" {
		if err := store.Load(); err != nil {
			if !stderrors.Is(err, storage.ErrNotInitialized) {
				errors.Fatal(err)
			}
			logger.Info("Creating store on first use", "path", store.GetConfigPath())
			if err := store.Init(); err != nil {
				errors.Fatal(err)
			}
		}
	}

	var held *lock.Lock
	if !isReadOnly(kctx) {
		held, err = lock.Acquire(configDir)
		if err != nil {
			store.Close()
			errors.Fatal(err)
		}
	}

	appCtx := cli.NewContext(store, loc, CLI.WeatherOrigin)
	err = kctx.Run(appCtx)

	if releaseErr := held.Release(); releaseErr != nil {
		logger.Warn("Failed to release lock", "error", releaseErr)
	}
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close store", "error", closeErr)
	}
	errors.Fatal(err)
}
