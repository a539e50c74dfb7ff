package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	ServiceName string
	Version     string
	Environment string

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// TxMaxRetries bounds transparent retries of serialization failures
	TxMaxRetries int

	RecipesConfigPath string
	RecipesSchemaPath string

	ProficiencyCacheTTL time.Duration

	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	DiscordToken           string
	DiscordNotifyChannelID string

	// TrustedProxies are peers whose X-Forwarded-For is believed when rate limiting
	TrustedProxies []string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:               getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:              getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:                 getEnv("LOG_DIR", DefaultLogDir),
		ServiceName:            getEnv("SERVICE_NAME", DefaultServiceName),
		Version:                getEnv("VERSION", DefaultVersion),
		Environment:            getEnv("ENVIRONMENT", EnvDev),
		DBUser:                 getEnv("DB_USER", "postgres"),
		DBPassword:             getEnv("DB_PASSWORD", "postgres"),
		DBHost:                 getEnv("DB_HOST", "localhost"),
		DBPort:                 getEnv("DB_PORT", "5432"),
		DBName:                 getEnv("DB_NAME", "downtimeforge"),
		RecipesConfigPath:      getEnv("RECIPES_CONFIG_PATH", ConfigPathRecipes),
		RecipesSchemaPath:      getEnv("RECIPES_SCHEMA_PATH", ConfigPathRecipesSchema),
		EventDeadLetterPath:    getEnv("EVENT_DEADLETTER_PATH", DefaultDeadLetterPath),
		DiscordToken:           getEnv("DISCORD_TOKEN", ""),
		DiscordNotifyChannelID: getEnv("DISCORD_NOTIFY_CHANNEL_ID", ""),
		TrustedProxies:         getEnvList("TRUSTED_PROXIES"),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", DefaultPort); err != nil {
		return nil, err
	}
	if cfg.DBMaxConns, err = getEnvInt("DB_MAX_CONNS", DefaultDBMaxConns); err != nil {
		return nil, err
	}
	if cfg.TxMaxRetries, err = getEnvInt("TX_MAX_RETRIES", DefaultTxMaxRetries); err != nil {
		return nil, err
	}
	if cfg.EventMaxRetries, err = getEnvInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries); err != nil {
		return nil, err
	}
	if cfg.DBMaxConnIdleTime, err = getEnvDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime); err != nil {
		return nil, err
	}
	if cfg.DBMaxConnLifetime, err = getEnvDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime); err != nil {
		return nil, err
	}
	if cfg.EventRetryDelay, err = getEnvDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay); err != nil {
		return nil, err
	}
	if cfg.ProficiencyCacheTTL, err = getEnvDuration("PROFICIENCY_CACHE_TTL", DefaultProficiencyCacheTTL); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvList splits a comma separated variable, dropping blanks
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// NotifierEnabled reports whether Discord notifications are configured
func (c *Config) NotifierEnabled() bool {
	return c.DiscordToken != "" && c.DiscordNotifyChannelID != ""
}
