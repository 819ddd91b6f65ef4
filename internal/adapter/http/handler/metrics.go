package handler

import (
	"strconv"
	"time"

	"payzoll-audit/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	auditRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_http_requests_total",
		Help: "Total HTTP requests by method, path, and response status.",
	}, []string{"method", "path", "status"})

	auditRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "audit_http_request_duration_seconds",
		Help:    "Request duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	auditRecordsStoredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_records_stored_total",
		Help: "Total audit records written to blob storage by record type.",
	}, []string{"type"})

	auditPointerUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_pointer_updates_total",
		Help: "Total index pointer update attempts by tier and outcome.",
	}, []string{"tier", "outcome"})

	auditFetchFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "audit_record_fetch_failures_total",
		Help: "Total record or index blobs that could not be fetched.",
	})

	auditIndexEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "audit_index_entries",
		Help: "Number of entries in the most recently written index.",
	})

	auditHealthChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_health_checks_total",
		Help: "Total health check probes by result.",
	}, []string{"result"})
)

// PrometheusMiddleware returns a Gin middleware that records per-request metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		auditRequestsTotal.WithLabelValues(method, path, status).Inc()
		auditRequestDuration.WithLabelValues(method, path).Observe(duration)
	}
}

// MetricsHandler returns a Gin handler that serves Prometheus metrics.
func MetricsHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// RecordHealthCheck records a health check probe result.
func RecordHealthCheck(success bool) {
	if success {
		auditHealthChecksTotal.WithLabelValues("success").Inc()
	} else {
		auditHealthChecksTotal.WithLabelValues("failure").Inc()
	}
}

// AuditMetrics feeds the audit index manager's events into Prometheus.
type AuditMetrics struct{}

func (AuditMetrics) RecordStored(t domain.RecordType) {
	auditRecordsStoredTotal.WithLabelValues(string(t)).Inc()
}

func (AuditMetrics) RecordPointerUpdate(tier, outcome string) {
	if tier == "" {
		tier = "none"
	}
	auditPointerUpdatesTotal.WithLabelValues(tier, outcome).Inc()
}

func (AuditMetrics) RecordFetchFailure() {
	auditFetchFailuresTotal.Inc()
}

func (AuditMetrics) SetIndexSize(n int) {
	auditIndexEntries.Set(float64(n))
}
