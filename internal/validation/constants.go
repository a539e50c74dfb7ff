package validation

// Error messages
const (
	ErrMsgReadDataFailedFmt      = "failed to read data file %s: %w"
	ErrMsgLoadSchemaFailedFmt    = "failed to load schema %s: %w"
	ErrMsgParseDataFailed        = "failed to parse JSON data"
	ErrMsgReadSchemaFailed       = "failed to read schema file: %w"
	ErrMsgParseSchemaFailed      = "failed to parse schema JSON: %w"
	ErrMsgAddResourceFailed      = "failed to add schema resource: %w"
	ErrMsgCompileSchemaFailed    = "failed to compile schema: %w"
	ErrMsgSchemaValidationFailed = "schema validation failed"
	ErrMsgGetwdFailed            = "failed to get current directory: %w"
	ErrMsgSchemaNotFoundFmt      = "schema file not found: %s (searched from %s)"
)
