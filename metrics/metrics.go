package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "clinicdesk"

// Guard decision outcomes.
const (
	OutcomeAllowed           = "allowed"
	OutcomeHolidayConflict   = "holiday_conflict"
	OutcomeOutsideHours      = "outside_hours"
	OutcomeFailOpenNotFound  = "fail_open_not_found"
	OutcomeFailOpenStoreErr  = "fail_open_store_error"
	OutcomeUnexpectedFailure = "error"
)

// GuardMetrics counts appointment guard decisions.
type GuardMetrics struct {
	decisions *prometheus.CounterVec
}

func NewGuardMetrics(reg prometheus.Registerer) *GuardMetrics {
	m := &GuardMetrics{
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "guard",
			Name:      "decisions_total",
			Help:      "Appointment guard decisions by operation and outcome",
		}, []string{"operation", "outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.decisions)
	return m
}

func (m *GuardMetrics) ObserveDecision(operation, outcome string) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(operation, outcome).Inc()
}

// HTTPMetrics records request counts and latency per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requests, m.latency)
	return m
}

func (m *HTTPMetrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, status).Inc()
	m.latency.WithLabelValues(method, route).Observe(seconds)
}

// CacheMetrics counts dashboard cache lookups.
type CacheMetrics struct {
	lookups       *prometheus.CounterVec
	invalidations prometheus.Counter
}

func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	m := &CacheMetrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard_cache",
			Name:      "lookups_total",
			Help:      "Dashboard cache lookups by result (hit, miss, error)",
		}, []string{"result"}),
		invalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard_cache",
			Name:      "invalidations_total",
			Help:      "Dashboard cache invalidations",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.lookups, m.invalidations)
	return m
}

func (m *CacheMetrics) ObserveLookup(result string) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(result).Inc()
}

func (m *CacheMetrics) ObserveInvalidation() {
	if m == nil {
		return
	}
	m.invalidations.Inc()
}

// EventMetrics counts published and consumed domain events.
type EventMetrics struct {
	published *prometheus.CounterVec
	consumed  *prometheus.CounterVec
}

func NewEventMetrics(reg prometheus.Registerer) *EventMetrics {
	m := &EventMetrics{
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Domain events published by routing key and status",
		}, []string{"routing_key", "status"}),
		consumed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "consumed_total",
			Help:      "Domain events consumed by routing key and status",
		}, []string{"routing_key", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.published, m.consumed)
	return m
}

func (m *EventMetrics) ObservePublished(routingKey, status string) {
	if m == nil {
		return
	}
	m.published.WithLabelValues(routingKey, status).Inc()
}

func (m *EventMetrics) ObserveConsumed(routingKey, status string) {
	if m == nil {
		return
	}
	m.consumed.WithLabelValues(routingKey, status).Inc()
}
