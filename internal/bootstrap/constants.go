package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept next to the new one
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStarting            = "Starting DowntimeForge"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file %s: %v\n"
)

// =============================================================================
// Event System Configuration
// =============================================================================

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	ErrMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	ErrMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// =============================================================================
// Database
// =============================================================================

const (
	// DBConnectTimeout bounds the initial pool ping and migration run
	DBConnectTimeout = 30 * time.Second

	LogMsgDatabaseConnected = "Connected to database"
	LogMsgMigrationsApplied = "Database migrations applied"
	ErrMsgFailedConnectDB   = "failed to connect to database"
	ErrMsgFailedMigrate     = "failed to apply migrations"
)

// =============================================================================
// Config Sync Messages
// =============================================================================

const (
	LogMsgSyncingRecipes   = "Syncing recipes from JSON config..."
	LogMsgRecipesSynced    = "Recipes synced successfully"
	LogMsgRecipesUnchanged = "Recipe config unchanged, sync skipped"
	LogMsgRecipesOrphaned  = "Recipes in database are missing from config"

	ErrMsgFailedLoadRecipes = "failed to load recipe config"
	ErrMsgInvalidRecipes    = "invalid recipe configuration"
	ErrMsgFailedSyncRecipes = "failed to sync recipes to database"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgNotifierRegistered         = "Discord notifier registered"
	LogMsgNotifierDisabled           = "Discord notifier disabled, DISCORD_TOKEN not set"
	ErrMsgFailedCreateDiscordSession = "failed to create discord session"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	// ShutdownTimeout bounds the whole graceful shutdown sequence
	ShutdownTimeout = 15 * time.Second

	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgDiscordCloseFailed         = "Discord session close failed"
)
