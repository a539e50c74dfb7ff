package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Crafting Metrics
var (
	SessionsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSessionsStarted,
			Help: HelpTextSessionsStarted,
		},
		[]string{LabelKind},
	)

	SessionsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSessionsCompleted,
			Help: HelpTextSessionsCompleted,
		},
		[]string{LabelKind},
	)

	CraftingRolls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCraftingRolls,
			Help: HelpTextCraftingRolls,
		},
		[]string{LabelKind, LabelOutcome},
	)

	GradePromotions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGradePromotions,
			Help: HelpTextGradePromotions,
		},
		[]string{LabelGrade},
	)

	GoldSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGoldSpent,
			Help: HelpTextGoldSpent,
		},
	)

	DowntimeSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDowntimeSpent,
			Help: HelpTextDowntimeSpent,
		},
	)
)

// Research Metrics
var (
	ResearchRolls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameResearchRolls,
			Help: HelpTextResearchRolls,
		},
		[]string{LabelSource, LabelOutcome},
	)

	RecipesUnlocked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRecipesUnlocked,
			Help: HelpTextRecipesUnlocked,
		},
	)
)

// Database Metrics
var (
	TxRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTxRetries,
			Help: HelpTextTxRetries,
		},
		[]string{LabelOperation},
	)
)

// Outcome maps a check result to its label value
func Outcome(success bool) string {
	if success {
		return OutcomeSuccess
	}
	return OutcomeFailure
}
