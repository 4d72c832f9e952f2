// Package email delivers workshop emails over SMTP.
package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/garage-platform/garage-api/internal/config"
	"github.com/garage-platform/garage-api/internal/domain"
	"github.com/garage-platform/garage-api/internal/infrastructure/templates"
	"github.com/garage-platform/garage-api/pkg/logging"
	"github.com/garage-platform/garage-api/pkg/resilience"
)

// sendFunc matches smtp.SendMail; swapped in tests.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends workshop emails through a single SMTP relay. Deliveries run
// behind a circuit breaker so a dead relay cannot stall every report cycle.
type Mailer struct {
	cfg     config.SMTPConfig
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
	send    sendFunc
}

// NewMailer creates a Mailer from SMTP configuration
func NewMailer(cfg config.SMTPConfig, logger *logging.Logger) *Mailer {
	return &Mailer{
		cfg:     cfg,
		breaker: resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("smtp"), logger.Logger),
		logger:  logger,
		send:    smtp.SendMail,
	}
}

// SendDailyReport renders and delivers the daily report to every configured
// recipient in one message.
func (m *Mailer) SendDailyReport(ctx context.Context, report *domain.DailyReport) error {
	if len(m.cfg.Recipients) == 0 {
		return fmt.Errorf("no report recipients configured")
	}

	body, err := templates.RenderDailyReport(report)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Daily Workshop Report - %s", report.Date.Format("02 Jan 2006"))
	return m.deliver(ctx, subject, body)
}

func (m *Mailer) deliver(ctx context.Context, subject, body string) error {
	msg := m.buildMessage(m.cfg.Recipients, subject, body)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	start := time.Now()
	_, err := m.breaker.Execute(ctx, func() (interface{}, error) {
		return nil, m.send(addr, auth, m.cfg.From, m.cfg.Recipients, msg)
	})

	recipients := strings.Join(m.cfg.Recipients, ",")
	m.logger.EmailDelivery(ctx, recipients, subject, err == nil, time.Since(start))

	if err != nil {
		return fmt.Errorf("sending email via %s: %w", addr, err)
	}
	return nil
}

func (m *Mailer) buildMessage(to []string, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
