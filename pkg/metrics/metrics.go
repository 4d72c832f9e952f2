package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all garage platform metrics
type Metrics struct {
	serviceName string
	registry    *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Business metrics
	JobCardsOpened         *prometheus.CounterVec
	JobCardsClosed         *prometheus.CounterVec
	PartsConsumed          *prometheus.CounterVec
	PartsReturned          *prometheus.CounterVec
	ReconciliationFailures *prometheus.CounterVec
	InvoicesIssued         *prometheus.CounterVec
	PurchaseOrdersReceived *prometheus.CounterVec
	ReportEmailsSent       *prometheus.CounterVec
}

// Config holds metrics configuration
type Config struct {
	ServiceName string
	Namespace   string
	Subsystem   string
}

// DefaultConfig returns default metrics configuration
func DefaultConfig(serviceName string) *Config {
	return &Config{
		ServiceName: serviceName,
		Namespace:   "garage",
		Subsystem:   serviceName,
	}
}

// New creates a new Metrics instance
func New(config *Config) *Metrics {
	registry := prometheus.NewRegistry()

	// Register standard Go metrics
	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{
		serviceName: config.ServiceName,
		registry:    registry,
	}

	// HTTP metrics
	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"service", "method", "path"},
	)

	m.HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests currently being processed",
			ConstLabels: prometheus.Labels{"service": config.ServiceName},
		},
	)

	// Business metrics
	m.JobCardsOpened = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "job_cards_opened_total",
			Help:      "Total number of job cards opened",
		},
		[]string{"service", "service_type"},
	)

	m.JobCardsClosed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "job_cards_closed_total",
			Help:      "Total number of job cards closed",
		},
		[]string{"service", "status"},
	)

	m.PartsConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "parts_consumed_total",
			Help:      "Total quantity of parts issued to job cards",
		},
		[]string{"service"},
	)

	m.PartsReturned = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "parts_returned_total",
			Help:      "Total quantity of parts returned to stock from job cards",
		},
		[]string{"service"},
	)

	m.ReconciliationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "parts_reconciliation_failures_total",
			Help:      "Total number of failed job card parts reconciliations",
		},
		[]string{"service", "reason"},
	)

	m.InvoicesIssued = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "invoices_issued_total",
			Help:      "Total number of invoices issued",
		},
		[]string{"service", "payment_status"},
	)

	m.PurchaseOrdersReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "purchase_orders_received_total",
			Help:      "Total number of purchase orders marked received",
		},
		[]string{"service"},
	)

	m.ReportEmailsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "report_emails_sent_total",
			Help:      "Total number of report emails sent",
		},
		[]string{"service", "status"},
	)

	// Register all metrics
	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.JobCardsOpened,
		m.JobCardsClosed,
		m.PartsConsumed,
		m.PartsReturned,
		m.ReconciliationFailures,
		m.InvoicesIssued,
		m.PurchaseOrdersReceived,
		m.ReportEmailsSent,
	)

	return m
}

// Handler returns an HTTP handler for metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	statusStr := strconv.Itoa(status)
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, statusStr).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// RecordJobCardOpened records a job card creation
func (m *Metrics) RecordJobCardOpened(serviceType string) {
	m.JobCardsOpened.WithLabelValues(m.serviceName, serviceType).Inc()
}

// RecordJobCardClosed records a job card reaching a terminal status
func (m *Metrics) RecordJobCardClosed(status string) {
	m.JobCardsClosed.WithLabelValues(m.serviceName, status).Inc()
}

// RecordPartsConsumed records parts issued to a job card
func (m *Metrics) RecordPartsConsumed(quantity int) {
	m.PartsConsumed.WithLabelValues(m.serviceName).Add(float64(quantity))
}

// RecordPartsReturned records parts returned to stock
func (m *Metrics) RecordPartsReturned(quantity int) {
	m.PartsReturned.WithLabelValues(m.serviceName).Add(float64(quantity))
}

// RecordReconciliationFailure records a failed parts reconciliation
func (m *Metrics) RecordReconciliationFailure(reason string) {
	m.ReconciliationFailures.WithLabelValues(m.serviceName, reason).Inc()
}

// RecordInvoiceIssued records an invoice issuance
func (m *Metrics) RecordInvoiceIssued(paymentStatus string) {
	m.InvoicesIssued.WithLabelValues(m.serviceName, paymentStatus).Inc()
}

// RecordPurchaseOrderReceived records a purchase order receipt
func (m *Metrics) RecordPurchaseOrderReceived() {
	m.PurchaseOrdersReceived.WithLabelValues(m.serviceName).Inc()
}

// RecordReportEmail records a report email delivery attempt
func (m *Metrics) RecordReportEmail(success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.ReportEmailsSent.WithLabelValues(m.serviceName, status).Inc()
}

// IncrementHTTPRequestsInFlight increments in-flight requests
func (m *Metrics) IncrementHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// DecrementHTTPRequestsInFlight decrements in-flight requests
func (m *Metrics) DecrementHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}
