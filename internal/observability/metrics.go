package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Исходы операций над тренировками.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	workoutOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fiturae",
		Subsystem: "workouts",
		Name:      "operations_total",
		Help:      "Number of workout workflow operations, labeled by operation and outcome.",
	}, []string{"operation", "outcome"})

	workoutEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fiturae",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Number of workout events handed to the publisher, labeled by type and result.",
	}, []string{"type", "result"})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fiturae",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of HTTP requests, labeled by method, route and status code.",
	}, []string{"method", "route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fiturae",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, labeled by method and route.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{"method", "route"})

	oauthLogins = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fiturae",
		Subsystem: "auth",
		Name:      "oauth_logins_total",
		Help:      "Number of OAuth callback attempts, labeled by result.",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(workoutOperations, workoutEvents, httpRequests, httpDuration, oauthLogins)
}

// RecordWorkoutOperation учитывает выполнение операции над тренировкой.
func RecordWorkoutOperation(operation, outcome string) {
	workoutOperations.WithLabelValues(operation, outcome).Inc()
}

// RecordEventPublished учитывает попытку публикации события.
func RecordEventPublished(eventType string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	workoutEvents.WithLabelValues(eventType, result).Inc()
}

// RecordHTTPRequest учитывает завершённый HTTP-запрос.
// route содержит шаблон маршрута gin (например, /api/workouts/:userId), а не фактический путь.
func RecordHTTPRequest(method, route string, status int, latency time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(latency.Seconds())
}

// RecordOAuthLogin учитывает результат OAuth callback.
func RecordOAuthLogin(result string) {
	oauthLogins.WithLabelValues(result).Inc()
}
