package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garage-platform/garage-api/pkg/metrics"
)

// MetricsMiddleware creates middleware that records HTTP metrics
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip metrics endpoint to avoid recursion
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		m.IncrementHTTPRequestsInFlight()
		defer m.DecrementHTTPRequestsInFlight()

		start := time.Now()

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		method := c.Request.Method
		path := c.FullPath() // Use route pattern, not actual path

		if path == "" {
			path = c.Request.URL.Path
		}

		m.RecordHTTPRequest(method, path, status, duration)
	}
}

// MetricsEndpoint returns a handler for the /metrics endpoint
func MetricsEndpoint(m *metrics.Metrics) gin.HandlerFunc {
	handler := m.Handler()
	return func(c *gin.Context) {
		handler.ServeHTTP(c.Writer, c.Request)
	}
}

// BusinessMetrics provides helpers for recording workshop business metrics
type BusinessMetrics struct {
	metrics *metrics.Metrics
}

// NewBusinessMetrics creates a new BusinessMetrics helper
func NewBusinessMetrics(m *metrics.Metrics) *BusinessMetrics {
	return &BusinessMetrics{metrics: m}
}

// RecordJobCardOpened records a job card creation
func (b *BusinessMetrics) RecordJobCardOpened(serviceType string) {
	b.metrics.RecordJobCardOpened(serviceType)
}

// RecordJobCardClosed records a job card closure
func (b *BusinessMetrics) RecordJobCardClosed(status string) {
	b.metrics.RecordJobCardClosed(status)
}

// RecordPartsConsumed records parts issued to a job card
func (b *BusinessMetrics) RecordPartsConsumed(quantity int) {
	b.metrics.RecordPartsConsumed(quantity)
}

// RecordPartsReturned records parts returned to stock
func (b *BusinessMetrics) RecordPartsReturned(quantity int) {
	b.metrics.RecordPartsReturned(quantity)
}

// RecordReconciliationFailure records a failed parts reconciliation
func (b *BusinessMetrics) RecordReconciliationFailure(reason string) {
	b.metrics.RecordReconciliationFailure(reason)
}

// RecordInvoiceIssued records an invoice issuance
func (b *BusinessMetrics) RecordInvoiceIssued(paymentStatus string) {
	b.metrics.RecordInvoiceIssued(paymentStatus)
}

// RecordPurchaseOrderReceived records a purchase order receipt
func (b *BusinessMetrics) RecordPurchaseOrderReceived() {
	b.metrics.RecordPurchaseOrderReceived()
}

// RecordReportEmail records a report email delivery attempt
func (b *BusinessMetrics) RecordReportEmail(success bool) {
	b.metrics.RecordReportEmail(success)
}
