package application

import (
	"context"
	"fmt"

	"github.com/garage-platform/garage-api/internal/domain"
	"github.com/garage-platform/garage-api/internal/infrastructure/templates"
	"github.com/garage-platform/garage-api/pkg/errors"
	"github.com/garage-platform/garage-api/pkg/logging"
	"github.com/garage-platform/garage-api/pkg/middleware"
)

// BillingService handles bill generation and settlement
type BillingService struct {
	billRepo    domain.BillRepository
	jobCardRepo domain.JobCardRepository
	rates       domain.TaxRates
	metrics     *middleware.BusinessMetrics
	logger      *logging.Logger
}

// NewBillingService creates a new BillingService
func NewBillingService(
	billRepo domain.BillRepository,
	jobCardRepo domain.JobCardRepository,
	rates domain.TaxRates,
	metrics *middleware.BusinessMetrics,
	logger *logging.Logger,
) *BillingService {
	return &BillingService{
		billRepo:    billRepo,
		jobCardRepo: jobCardRepo,
		rates:       rates,
		metrics:     metrics,
		logger:      logger,
	}
}

// GenerateBill creates a bill from a completed job card. One bill per job
// card; line items and customer details are frozen as snapshots.
func (s *BillingService) GenerateBill(ctx context.Context, cmd GenerateBillCommand) (*BillDTO, error) {
	existing, err := s.billRepo.FindByJobCard(ctx, cmd.JobCardID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing bill: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrConflict(fmt.Sprintf("job card %s already has bill %s", cmd.JobCardID, existing.BillID))
	}

	jobCard, err := s.jobCardRepo.FindByID(ctx, cmd.JobCardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job card: %w", err)
	}
	if jobCard == nil {
		return nil, errors.ErrNotFoundWithID("job card", cmd.JobCardID)
	}

	bill, err := domain.NewBillFromJobCard(jobCard, cmd.Discount, s.rates)
	if err != nil {
		return nil, errors.MapDomainError(err)
	}

	if err := s.billRepo.Save(ctx, bill); err != nil {
		s.logger.WithError(err).Error("Failed to save bill", "billId", bill.BillID)
		return nil, fmt.Errorf("failed to save bill: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordInvoiceIssued(string(bill.PaymentStatus))
	}
	s.logger.Info("Bill generated",
		"billId", bill.BillID,
		"jobCardId", bill.JobCardID,
		"total", bill.Totals.TotalAmount,
	)
	return ToBillDTO(bill), nil
}

// GetBill retrieves a bill by ID
func (s *BillingService) GetBill(ctx context.Context, billID string) (*BillDTO, error) {
	bill, err := s.loadBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	return ToBillDTO(bill), nil
}

// ListBillsQuery filters and paginates bill listings
type ListBillsQuery struct {
	CustomerID    string
	PaymentStatus string
	Page          int64
	PageSize      int64
}

// ListBills lists bills, optionally filtered by customer or payment status
func (s *BillingService) ListBills(ctx context.Context, query ListBillsQuery) (*ListResponse[BillDTO], error) {
	pagination := domain.Pagination{Page: query.Page, PageSize: query.PageSize}

	var (
		bills []*domain.Bill
		err   error
	)
	switch {
	case query.CustomerID != "":
		bills, err = s.billRepo.FindByCustomer(ctx, query.CustomerID, pagination)
	case query.PaymentStatus != "":
		bills, err = s.billRepo.FindByStatus(ctx, domain.PaymentStatus(query.PaymentStatus), pagination)
	default:
		bills, err = s.billRepo.List(ctx, pagination)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	dtos := make([]BillDTO, len(bills))
	for i, b := range bills {
		dtos[i] = *ToBillDTO(b)
	}

	return &ListResponse[BillDTO]{
		Data:     dtos,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}

// InvoiceHTML renders the bill as a printable HTML invoice
func (s *BillingService) InvoiceHTML(ctx context.Context, billID string) (string, error) {
	bill, err := s.loadBill(ctx, billID)
	if err != nil {
		return "", err
	}

	html, err := templates.RenderInvoice(bill)
	if err != nil {
		s.logger.WithError(err).Error("Failed to render invoice", "billId", billID)
		return "", fmt.Errorf("failed to render invoice: %w", err)
	}
	return html, nil
}

// MarkBillPaid settles a bill with the given payment method
func (s *BillingService) MarkBillPaid(ctx context.Context, cmd MarkBillPaidCommand) (*BillDTO, error) {
	bill, err := s.loadBill(ctx, cmd.BillID)
	if err != nil {
		return nil, err
	}

	if err := bill.MarkPaid(domain.PaymentMethod(cmd.PaymentMethod)); err != nil {
		return nil, errors.MapDomainError(err)
	}

	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to save bill: %w", err)
	}

	s.logger.Info("Bill paid",
		"billId", bill.BillID,
		"paymentMethod", cmd.PaymentMethod,
		"amount", bill.Totals.TotalAmount,
	)
	return ToBillDTO(bill), nil
}

func (s *BillingService) loadBill(ctx context.Context, billID string) (*domain.Bill, error) {
	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	if bill == nil {
		return nil, errors.ErrNotFoundWithID("bill", billID)
	}
	return bill, nil
}
