/* metrics.go
 * Prometheus metrics for the bot, web server and results refresh
 */

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bracket_pool"

// Label names
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelOutcome = "outcome"
	LabelCommand = "command"
)

// Outcome label values
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
	OutcomeRetry = "retry"
	OutcomeHit   = "hit"
	OutcomeMiss  = "miss"
	OutcomeStale = "stale"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests served",
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)
)

// Upstream Metrics
var (
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Requests made to the NCAA scoreboard by outcome",
		},
		[]string{LabelOutcome},
	)

	UpstreamDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "NCAA scoreboard request latency",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	ScoreboardCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scoreboard_cache_total",
			Help:      "Scoreboard cache lookups by outcome",
		},
		[]string{LabelOutcome},
	)
)

// Business Metrics
var (
	ResultsRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_refreshes_total",
			Help:      "Master bracket refreshes by outcome",
		},
		[]string{LabelOutcome},
	)

	ResolvedSlots = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "resolved_slots",
			Help:      "Number of bracket slots with a known winner",
		},
	)

	FailedDays = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "failed_days",
			Help:      "Tournament days that could not be fetched on the last refresh",
		},
	)

	BracketsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "brackets_submitted_total",
			Help:      "Brackets stored",
		},
	)

	BotCommands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bot_commands_total",
			Help:      "Discord commands handled",
		},
		[]string{LabelCommand},
	)
)
