package constants

const (
	AppName            = "routine"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/routine"
	DefaultConfigFile  = "~/.config/routine/config.yaml"
	DefaultDBPath      = "~/.config/routine/routine.db"
	Version            = "v0.3.0"

	// EnvPrefix is the prefix for environment overrides (ROUTINE_STORAGE_BACKEND, ...)
	EnvPrefix = "ROUTINE"
	// EnvDBConnection holds a full PostgreSQL connection string, credentials included
	EnvDBConnection = "ROUTINE_DB_CONNECTION"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// MinutesPerDay bounds every minute-of-day value; valid values are [0, MinutesPerDay)
	MinutesPerDay = 24 * 60

	// Storage keys
	KeyActivities   = "routine-activities"
	KeyGoals        = "goals"
	KeyGoalProgress = "goalProgress"
	KeyJournal      = "journalEntries"
	KeyReminders    = "routine-reminders"

	// Storage backends
	BackendSQLite   = "sqlite"
	BackendDiskv    = "diskv"
	BackendPostgres = "postgres"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "routine-"
	BackupFileSuffix = ".db"

	// Reminder constants
	DefaultReminderLeadMin = 5
	AdvanceReminderTitle   = "Task Reminder ⏰"
	MainReminderTitle      = "Task Reminder 📝"

	// Notify constants
	NotifierLockfileName   = "routine-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.routine"
	TrayExecutablePrefix   = "routine-tray"

	// Goal constants
	DefaultGoalTargetDays = 30

	// Journal constants
	MinDisciplineScore     = 1
	MaxDisciplineScore     = 10
	DefaultDisciplineScore = 5
)
