package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MQ consume latency (ms)
	MQConsumeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mq_consume_latency_ms",
			Help:    "MQ message consumption latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		},
		[]string{"routing_key", "queue"},
	)

	// DB query duration (s)
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"operation", "table"},
	)

	SlowQueryCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "db_slow_query_total",
			Help: "Total number of queries slower than the tracer threshold",
		},
	)

	SlowQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "db_slow_query_duration_seconds",
			Help:    "Duration of slow queries in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 8), // 100ms to ~12s
		},
	)

	// HTTP request duration (s)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	RuleEvaluationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rule_evaluation_count",
			Help: "Total number of rule evaluations",
		},
		[]string{"result"}, // result: matched, unmatched, skipped
	)

	NotificationQueuedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_queued_count",
			Help: "Total number of notifications queued for delivery",
		},
		[]string{"channel"},
	)

	HealthCheckCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "health_check_count",
			Help: "Total number of health reports produced",
		},
		[]string{"status"}, // status: ok, error
	)

	// Emails consumed from email.received
	EmailProcessedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_processed_count",
			Help: "Total number of emails processed",
		},
		[]string{"status"}, // status: success, failed, duplicate
	)
)

// RecordMQConsumeLatency records MQ consume latency
func RecordMQConsumeLatency(routingKey, queue string, duration time.Duration) {
	MQConsumeLatency.WithLabelValues(routingKey, queue).Observe(float64(duration.Milliseconds()))
}

// RecordDBQueryDuration records DB query duration
func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// IncrementSlowQuery counts a slow query. The SQL text stays in the log line, not in a label.
func IncrementSlowQuery(_ string, duration time.Duration) {
	SlowQueryCount.Inc()
	SlowQueryDuration.Observe(duration.Seconds())
}

// RecordHTTPRequestDuration records HTTP request duration
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementRuleEvaluation counts one rule evaluation by result
func IncrementRuleEvaluation(result string) {
	RuleEvaluationCount.WithLabelValues(result).Inc()
}

// IncrementNotificationQueued counts a queued notification
func IncrementNotificationQueued(channel string) {
	NotificationQueuedCount.WithLabelValues(channel).Inc()
}

// IncrementHealthCheck counts a health report by status
func IncrementHealthCheck(status string) {
	HealthCheckCount.WithLabelValues(status).Inc()
}

// IncrementEmailProcessed counts a processed email by status
func IncrementEmailProcessed(status string) {
	EmailProcessedCount.WithLabelValues(status).Inc()
}
