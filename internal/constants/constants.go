package constants

import "time"

const (
	AppName           = "questlog"
	DefaultConfigPath = "~/.config/questlog/questlog.db"
	DefaultConfigFile = "~/.config/questlog/config.json"
	Version           = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Storage slots. Each ledger owns exactly one key.
	HabitQuestKey = "habitQuest_v1"
	DiaryKey      = "diary_v1"
	SchemaVersion = 1

	// Habit parameter bounds
	MinHabitXP    = 1
	MaxHabitXP    = 999
	MinHabitCoins = 0
	MaxHabitCoins = 99
	XPPerLevel    = 100

	// Diary reward granted for the first entry of the day
	DiaryRewardXP    = 20
	DiaryRewardCoins = 8

	// Reserved journal habit that the diary reward advances
	JournalHabitID   = "journal"
	JournalHabitName = "Write diary"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "questlog-"

	// Lock constants
	LockfileName = "questlog.lock"

	// Weather constants
	DefaultWeatherOrigin = "http://localhost:8080"
	WeatherTimeout       = 8 * time.Second
	DefaultKeyringUser   = "weather-api-token"

	// Stats
	DefaultChartDays = 7
)
