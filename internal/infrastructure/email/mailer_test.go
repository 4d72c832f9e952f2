package email

import (
	"context"
	"fmt"
	"io"
	"net/smtp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garage-platform/garage-api/internal/config"
	"github.com/garage-platform/garage-api/internal/domain"
	"github.com/garage-platform/garage-api/pkg/logging"
)

func testMailer(cfg config.SMTPConfig) *Mailer {
	logCfg := logging.DefaultConfig("test")
	logCfg.Output = io.Discard
	return NewMailer(cfg, logging.New(logCfg))
}

func testReport() *domain.DailyReport {
	return &domain.DailyReport{
		Date:           time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC),
		JobCardsOpened: 2,
		BillsIssued:    1,
		RevenueBilled:  4720,
	}
}

func TestSendDailyReport(t *testing.T) {
	mailer := testMailer(config.SMTPConfig{
		Host:       "smtp.example.com",
		Port:       587,
		From:       "reports@garage.local",
		Recipients: []string{"owner@garage.local", "manager@garage.local"},
	})

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	mailer.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := mailer.SendDailyReport(context.Background(), testReport())
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "reports@garage.local", gotFrom)
	assert.Equal(t, []string{"owner@garage.local", "manager@garage.local"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Daily Workshop Report - 27 Aug 2026")
	assert.Contains(t, string(gotMsg), "text/html")
	assert.Contains(t, string(gotMsg), "4720.00")
}

func TestSendDailyReportNoRecipients(t *testing.T) {
	mailer := testMailer(config.SMTPConfig{Host: "smtp.example.com", Port: 587})

	err := mailer.SendDailyReport(context.Background(), testReport())
	assert.Error(t, err)
}

func TestSendDailyReportRelayFailure(t *testing.T) {
	mailer := testMailer(config.SMTPConfig{
		Host:       "smtp.example.com",
		Port:       587,
		From:       "reports@garage.local",
		Recipients: []string{"owner@garage.local"},
	})
	mailer.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		return fmt.Errorf("connection refused")
	}

	err := mailer.SendDailyReport(context.Background(), testReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
