package services

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"staticreports-agent/internal/logger"
	"staticreports-agent/internal/models"
)

var (
	hookInvocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_hook_invocations_total",
			Help: "Total lifecycle events processed",
		},
		[]string{"event"},
	)

	hookFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_hook_failures_total",
			Help: "Lifecycle events that ended blocked or annotated",
		},
		[]string{"event"},
	)

	unitStatusGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "agent_unit_status",
			Help: "Current unit status (0=ready, 1=transitioning, 2=blocked)",
		},
	)

	frontendUp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "agent_frontend_up",
			Help: "Whether the front-end port accepts connections",
		},
	)

	requestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_http_requests_total",
			Help: "Total HTTP requests received by the agent API",
		},
		[]string{"path"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agent_http_request_duration_seconds",
			Help:    "Duration of agent API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	errorCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_http_request_errors_total",
			Help: "Agent API requests answered with status >= 400",
		},
		[]string{"path"},
	)

	totalRequests int64
	totalErrors   int64
)

func init() {
	prometheus.MustRegister(hookInvocations)
	prometheus.MustRegister(hookFailures)
	prometheus.MustRegister(unitStatusGauge)
	prometheus.MustRegister(frontendUp)
	prometheus.MustRegister(requestCount)
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(errorCount)
}

func RecordHookInvocation(event models.LifecycleEvent) {
	hookInvocations.WithLabelValues(string(event)).Inc()
}

func RecordHookFailure(event models.LifecycleEvent) {
	hookFailures.WithLabelValues(string(event)).Inc()
}

// RecordUnitStatus 把三态状态映射为数值指标
func RecordUnitStatus(status models.UnitStatus) {
	switch status.State {
	case models.StatusReady:
		unitStatusGauge.Set(0)
	case models.StatusTransitioning:
		unitStatusGauge.Set(1)
	case models.StatusBlocked:
		unitStatusGauge.Set(2)
	}
}

func RecordFrontendUp(up bool) {
	if up {
		frontendUp.Set(1)
	} else {
		frontendUp.Set(0)
	}
}

func IncrementRequestCount(path string) {
	requestCount.WithLabelValues(path).Inc()
	atomic.AddInt64(&totalRequests, 1)
}

func RecordRequestDuration(path string, seconds float64) {
	requestDuration.WithLabelValues(path).Observe(seconds)
}

func IncrementErrorCount(path string) {
	errorCount.WithLabelValues(path).Inc()
	atomic.AddInt64(&totalErrors, 1)
}

func GetTotalRequestCount() int64 {
	return atomic.LoadInt64(&totalRequests)
}

func GetTotalErrorCount() int64 {
	return atomic.LoadInt64(&totalErrors)
}

/**
 * Push the registered metrics to the configured pushgateway
 * @param {string} addr - Pushgateway address, empty disables the push
 * @returns {error} Returns error if push fails, nil on success
 */
func PushMetrics(addr string) error {
	if addr == "" {
		return nil
	}
	if err := push.New(addr, "staticreports_agent").Gatherer(prometheus.DefaultGatherer).Push(); err != nil {
		logger.Errorf("Failed to push metrics to %s: %v", addr, err)
		return err
	}
	logger.Debugf("Metrics pushed to %s", addr)
	return nil
}
