package logger

// Accepted LOG_LEVEL values; "warning" is an alias of "warn"
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Defaults used by ConfigForEnvironment when no config has been loaded yet
const (
	DefaultServiceName    = "downtime-forge"
	DefaultVersion        = "dev"
	ProductionVersion     = "1.0.0"
	EnvironmentProduction = "prod"
)

// Base attributes attached to every record
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)
