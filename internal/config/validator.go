package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	validLogLevels    = []string{"debug", "info", "warn", "warning", "error"}
	validLogFormats   = []string{"text", "json"}
	validEnvironments = []string{EnvDev, EnvStaging, EnvProduction, EnvTest}
)

// Validate checks the loaded values and returns every problem found
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	if !containsFold(validLogLevels, c.LogLevel) {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of %s, got %q", strings.Join(validLogLevels, ", "), c.LogLevel))
	}
	if !containsFold(validLogFormats, c.LogFormat) {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of %s, got %q", strings.Join(validLogFormats, ", "), c.LogFormat))
	}
	if !containsFold(validEnvironments, c.Environment) {
		errs = append(errs, fmt.Errorf("ENVIRONMENT must be one of %s, got %q", strings.Join(validEnvironments, ", "), c.Environment))
	}
	if c.DBMaxConns < 1 {
		errs = append(errs, fmt.Errorf("DB_MAX_CONNS must be positive, got %d", c.DBMaxConns))
	}
	if c.TxMaxRetries < 1 {
		errs = append(errs, fmt.Errorf("TX_MAX_RETRIES must be at least 1, got %d", c.TxMaxRetries))
	}
	if c.EventMaxRetries < 0 {
		errs = append(errs, fmt.Errorf("EVENT_MAX_RETRIES must not be negative, got %d", c.EventMaxRetries))
	}
	if c.ProficiencyCacheTTL <= 0 {
		errs = append(errs, errors.New("PROFICIENCY_CACHE_TTL must be positive"))
	}
	if (c.DiscordToken == "") != (c.DiscordNotifyChannelID == "") {
		errs = append(errs, errors.New("DISCORD_TOKEN and DISCORD_NOTIFY_CHANNEL_ID must be set together"))
	}

	return errors.Join(errs...)
}

// ValidateWithWarnings validates and returns warnings for risky but legal values
func (c *Config) ValidateWithWarnings() ([]string, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var warnings []string
	if strings.EqualFold(c.Environment, EnvProduction) && c.DBPassword == "postgres" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the default value - please use a secure password")
	}
	if strings.EqualFold(c.Environment, EnvProduction) && !strings.EqualFold(c.LogFormat, "json") {
		warnings = append(warnings, "LOG_FORMAT is not json in production")
	}
	return warnings, nil
}

func containsFold(values []string, v string) bool {
	for _, candidate := range values {
		if strings.EqualFold(candidate, v) {
			return true
		}
	}
	return false
}
