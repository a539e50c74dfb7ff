package config

import "time"

const (
	// Configuration file paths
	ConfigPathRecipes       = "configs/recipes.json"
	ConfigPathRecipesSchema = "configs/schemas/recipes.schema.json"
)

// Defaults
const (
	DefaultPort                = 8080
	DefaultLogLevel            = "info"
	DefaultLogFormat           = "text"
	DefaultLogDir              = "logs"
	DefaultServiceName         = "downtime-forge"
	DefaultVersion             = "dev"
	DefaultDBMaxConns          = 10
	DefaultDBMaxConnIdleTime   = 5 * time.Minute
	DefaultDBMaxConnLifetime   = time.Hour
	DefaultTxMaxRetries        = 3
	DefaultProficiencyCacheTTL = 10 * time.Minute
	DefaultEventMaxRetries     = 5
	DefaultEventRetryDelay     = 2 * time.Second
	DefaultDeadLetterPath      = "logs/event_deadletter.jsonl"
)

// Environments
const (
	EnvDev        = "dev"
	EnvStaging    = "staging"
	EnvProduction = "prod"
	EnvTest       = "test"
)
