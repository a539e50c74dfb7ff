package database

import "time"

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2
)

// Migration constants
const (
	MigrationsDir    = "migrations"
	MigrationDialect = "postgres"
)

// Transaction retry defaults
const (
	DefaultTxMaxRetries = 3
	DefaultTxRetryDelay = 20 * time.Millisecond
	DefaultTxMaxJitter  = 30 * time.Millisecond
)

// PostgreSQL error codes that mark a transaction as safe to replay
const (
	PgCodeSerializationFailure = "40001"
	PgCodeDeadlockDetected     = "40P01"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString     = "failed to parse connection string"
	ErrMsgFailedToCreatePool          = "failed to create connection pool"
	ErrMsgFailedToPingDatabase        = "failed to ping database"
	ErrMsgFailedToBeginTransaction    = "failed to begin transaction"
	ErrMsgFailedToRollbackTransaction = "Failed to rollback transaction"
	ErrMsgFailedToSetDialect          = "failed to set migration dialect"
	ErrMsgFailedToRunMigrations       = "failed to run migrations"
	ErrMsgFailedToReadVersion         = "failed to read migration version"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationsApplied               = "Database migrations applied"
	LogMsgRetryingTransaction             = "Retrying transaction after conflict"
)
