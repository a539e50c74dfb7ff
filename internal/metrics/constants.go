package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Crafting metric names
const (
	MetricNameSessionsStarted   = "crafting_sessions_started_total"
	MetricNameSessionsCompleted = "crafting_sessions_completed_total"
	MetricNameCraftingRolls     = "crafting_rolls_total"
	MetricNameGradePromotions   = "crafting_grade_promotions_total"
	MetricNameGoldSpent         = "crafting_gold_spent_total"
	MetricNameDowntimeSpent     = "crafting_downtime_days_spent_total"
	MetricNameResearchRolls     = "research_rolls_total"
	MetricNameRecipesUnlocked   = "research_recipes_unlocked_total"
	MetricNameTxRetries         = "db_transaction_retries_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextEventsPublished    = "Total number of events published by type"
	HelpTextEventHandlerErrors = "Total number of event handler errors by type"

	HelpTextSessionsStarted   = "Crafting sessions started by recipe kind"
	HelpTextSessionsCompleted = "Crafting sessions completed by recipe kind"
	HelpTextCraftingRolls     = "Crafting rolls by recipe kind and outcome"
	HelpTextGradePromotions   = "Tool competency promotions by new grade"
	HelpTextGoldSpent         = "Gold charged by crafting rolls and completions"
	HelpTextDowntimeSpent     = "Downtime days charged by crafting and research"
	HelpTextResearchRolls     = "Research rolls by source and outcome"
	HelpTextRecipesUnlocked   = "Recipes unlocked through research"
	HelpTextTxRetries         = "Transactions replayed after a serialization conflict, by operation"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelKind      = "kind"
	LabelOutcome   = "outcome"
	LabelGrade     = "grade"
	LabelSource    = "source"
	LabelOperation = "operation"
)

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// PathUnmatched labels requests no route matched
const PathUnmatched = "unmatched"

// HTTPLatencyBuckets are the request latency histogram buckets in seconds
var HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

// Log messages
const (
	LogMsgEventPayloadDecodeFailed = "Failed to decode event payload for metrics"
)
