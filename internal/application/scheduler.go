package application

import (
	"context"
	"fmt"
	"time"

	"github.com/garage-platform/garage-api/pkg/cache"
	"github.com/garage-platform/garage-api/pkg/logging"
)

// ReportScheduler fires the daily report once a day at the configured hour.
// When a cache client is available a SetNX lock keyed by date keeps
// multiple instances from sending the same report twice.
type ReportScheduler struct {
	reports *ReportService
	cache   cache.Client
	hour    int
	logger  *logging.Logger
	stop    chan struct{}
	done    chan struct{}
}

// NewReportScheduler creates a scheduler that triggers at the given hour
// (0-23, server local time)
func NewReportScheduler(reports *ReportService, cacheClient cache.Client, hour int, logger *logging.Logger) *ReportScheduler {
	return &ReportScheduler{
		reports: reports,
		cache:   cacheClient,
		hour:    hour,
		logger:  logger,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start launches the scheduling loop in a goroutine
func (s *ReportScheduler) Start() {
	go s.run()
	s.logger.Info("Report scheduler started", "hour", s.hour)
}

// Stop terminates the scheduling loop and waits for it to finish
func (s *ReportScheduler) Stop() {
	close(s.stop)
	<-s.done
	s.logger.Info("Report scheduler stopped")
}

func (s *ReportScheduler) run() {
	defer close(s.done)

	for {
		next := s.nextRun(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-s.stop:
			timer.Stop()
			return
		case <-timer.C:
			s.fire(next)
		}
	}
}

// nextRun returns the next occurrence of the configured hour after now
func (s *ReportScheduler) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// fire sends the report for the previous calendar day relative to the
// trigger instant
func (s *ReportScheduler) fire(at time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	reportDay := at.Add(-24 * time.Hour)

	if s.cache != nil {
		key := fmt.Sprintf("garage:report:daily:%s", reportDay.UTC().Format("2006-01-02"))
		acquired, err := s.cache.SetNX(ctx, key, "sent", 48*time.Hour)
		if err != nil {
			// Send anyway rather than silently dropping the report when
			// the lock backend is down.
			s.logger.WithError(err).Warn("Report lock unavailable, proceeding without it", "key", key)
		} else if !acquired {
			s.logger.Info("Daily report already sent by another instance", "key", key)
			return
		}
	}

	if _, err := s.reports.SendDailyReport(ctx, reportDay); err != nil {
		s.logger.WithError(err).Error("Scheduled daily report failed", "date", reportDay.Format("2006-01-02"))
	}
}
