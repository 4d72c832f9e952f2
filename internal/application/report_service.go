package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/garage-platform/garage-api/internal/domain"
	"github.com/garage-platform/garage-api/pkg/cache"
	"github.com/garage-platform/garage-api/pkg/logging"
	"github.com/garage-platform/garage-api/pkg/middleware"
)

// ReportSender delivers a rendered daily report to the configured
// recipients. Implemented by the email infrastructure.
type ReportSender interface {
	SendDailyReport(ctx context.Context, report *domain.DailyReport) error
}

// ReportService builds the daily workshop summary and emails it
type ReportService struct {
	jobCardRepo domain.JobCardRepository
	billRepo    domain.BillRepository
	partRepo    domain.PartRepository
	sender      ReportSender
	cache       cache.Client
	metrics     *middleware.BusinessMetrics
	logger      *logging.Logger
}

// NewReportService creates a new ReportService. The cache client is
// optional; when nil every report is computed from the database.
func NewReportService(
	jobCardRepo domain.JobCardRepository,
	billRepo domain.BillRepository,
	partRepo domain.PartRepository,
	sender ReportSender,
	cacheClient cache.Client,
	metrics *middleware.BusinessMetrics,
	logger *logging.Logger,
) *ReportService {
	return &ReportService{
		jobCardRepo: jobCardRepo,
		billRepo:    billRepo,
		partRepo:    partRepo,
		sender:      sender,
		cache:       cacheClient,
		metrics:     metrics,
		logger:      logger,
	}
}

// BuildDailyReport assembles the summary for the calendar day containing
// the given instant (UTC day boundaries). Results are served cache-aside:
// finished days are immutable and cache for a day, the current day only
// briefly.
func (s *ReportService) BuildDailyReport(ctx context.Context, date time.Time) (*domain.DailyReport, error) {
	day := date.UTC().Truncate(24 * time.Hour)
	from, to := day, day.Add(24*time.Hour)

	if cached := s.cachedReport(ctx, day); cached != nil {
		return cached, nil
	}

	opened, err := s.jobCardRepo.CountCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count opened job cards: %w", err)
	}
	completed, err := s.jobCardRepo.CountCompletedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed job cards: %w", err)
	}
	delivered, err := s.jobCardRepo.CountDeliveredBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count delivered job cards: %w", err)
	}

	billsIssued, err := s.billRepo.CountIssuedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count bills: %w", err)
	}
	revenueBilled, err := s.billRepo.SumBilledBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum billed revenue: %w", err)
	}
	revenuePaid, err := s.billRepo.SumPaidBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum paid revenue: %w", err)
	}

	lowStock, err := s.partRepo.FindLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock parts: %w", err)
	}
	lowStockParts := make([]domain.LowStockPart, len(lowStock))
	for i, p := range lowStock {
		lowStockParts[i] = domain.LowStockPart{
			PartID:        p.PartID,
			Name:          p.Name,
			PartNumber:    p.PartNumber,
			StockQuantity: p.StockQuantity,
			MinStockLevel: p.MinStockLevel,
		}
	}

	report := &domain.DailyReport{
		Date:              day,
		JobCardsOpened:    opened,
		JobCardsCompleted: completed,
		JobCardsDelivered: delivered,
		BillsIssued:       billsIssued,
		RevenueBilled:     revenueBilled,
		RevenuePaid:       revenuePaid,
		LowStockParts:     lowStockParts,
	}
	s.storeReport(ctx, report, to)
	return report, nil
}

func reportCacheKey(day time.Time) string {
	return "report:daily:" + day.Format("2006-01-02")
}

func (s *ReportService) cachedReport(ctx context.Context, day time.Time) *domain.DailyReport {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, reportCacheKey(day))
	if err != nil {
		if err != cache.ErrCacheMiss {
			s.logger.WithError(err).Warn("Report cache read failed", "date", day.Format("2006-01-02"))
		}
		return nil
	}

	var report domain.DailyReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		s.logger.WithError(err).Warn("Discarding malformed cached report", "date", day.Format("2006-01-02"))
		return nil
	}
	return &report
}

func (s *ReportService) storeReport(ctx context.Context, report *domain.DailyReport, dayEnd time.Time) {
	if s.cache == nil {
		return
	}

	ttl := 24 * time.Hour
	if time.Now().UTC().Before(dayEnd) {
		// Today's figures are still moving
		ttl = time.Minute
	}

	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, reportCacheKey(report.Date), string(raw), ttl); err != nil {
		s.logger.WithError(err).Warn("Report cache write failed", "date", report.Date.Format("2006-01-02"))
	}
}

// SendDailyReport builds and emails the summary for the given day
func (s *ReportService) SendDailyReport(ctx context.Context, date time.Time) (*domain.DailyReport, error) {
	report, err := s.BuildDailyReport(ctx, date)
	if err != nil {
		return nil, err
	}

	if s.sender == nil {
		s.logger.Warn("Report sender not configured, skipping delivery", "date", report.Date.Format("2006-01-02"))
		return report, nil
	}

	if err := s.sender.SendDailyReport(ctx, report); err != nil {
		if s.metrics != nil {
			s.metrics.RecordReportEmail(false)
		}
		s.logger.WithError(err).Error("Failed to send daily report", "date", report.Date.Format("2006-01-02"))
		return nil, fmt.Errorf("failed to send daily report: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordReportEmail(true)
	}
	s.logger.Info("Daily report sent",
		"date", report.Date.Format("2006-01-02"),
		"jobCardsOpened", report.JobCardsOpened,
		"billsIssued", report.BillsIssued,
		"revenueBilled", report.RevenueBilled,
	)
	return report, nil
}
