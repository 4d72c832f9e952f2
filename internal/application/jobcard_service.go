package application

import (
	"context"
	"fmt"

	"github.com/garage-platform/garage-api/internal/domain"
	"github.com/garage-platform/garage-api/pkg/errors"
	"github.com/garage-platform/garage-api/pkg/logging"
	"github.com/garage-platform/garage-api/pkg/middleware"
)

// JobCardService handles job card use cases, including the parts
// reconciliation flow that keeps the parts list and stock in sync.
type JobCardService struct {
	jobCardRepo  domain.JobCardRepository
	customerRepo domain.CustomerRepository
	vehicleRepo  domain.VehicleRepository
	partRepo     domain.PartRepository
	rates        domain.TaxRates
	metrics      *middleware.BusinessMetrics
	logger       *logging.Logger
}

// NewJobCardService creates a new JobCardService
func NewJobCardService(
	jobCardRepo domain.JobCardRepository,
	customerRepo domain.CustomerRepository,
	vehicleRepo domain.VehicleRepository,
	partRepo domain.PartRepository,
	rates domain.TaxRates,
	metrics *middleware.BusinessMetrics,
	logger *logging.Logger,
) *JobCardService {
	return &JobCardService{
		jobCardRepo:  jobCardRepo,
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
		partRepo:     partRepo,
		rates:        rates,
		metrics:      metrics,
		logger:       logger,
	}
}

// CreateJobCard opens a job card. When the command carries an initial parts
// list it is reconciled against the empty card, so stock is reserved through
// the same path as later edits.
func (s *JobCardService) CreateJobCard(ctx context.Context, cmd CreateJobCardCommand) (*JobCardDTO, error) {
	customer, err := s.customerRepo.FindByID(ctx, cmd.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	if customer == nil {
		return nil, errors.ErrNotFoundWithID("customer", cmd.CustomerID)
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, cmd.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, errors.ErrNotFoundWithID("vehicle", cmd.VehicleID)
	}
	if vehicle.CustomerID != customer.CustomerID {
		return nil, errors.ErrValidation("vehicle does not belong to the customer")
	}

	jobCard, err := domain.NewJobCard(customer, vehicle, cmd.ServiceType, cmd.Complaint, cmd.Odometer)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if len(cmd.Parts) > 0 {
		if err := s.reconcile(ctx, jobCard, toIncomingParts(cmd.Parts), domain.ModeEdit); err != nil {
			return nil, err
		}
	}

	if err := s.jobCardRepo.Save(ctx, jobCard); err != nil {
		s.logger.WithError(err).Error("Failed to save job card", "jobCardId", jobCard.JobCardID)
		return nil, fmt.Errorf("failed to save job card: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordJobCardOpened(cmd.ServiceType)
	}
	s.logger.Info("Job card opened",
		"jobCardId", jobCard.JobCardID,
		"customerId", customer.CustomerID,
		"vehicleId", vehicle.VehicleID,
		"parts", len(jobCard.Parts),
	)

	return ToJobCardDTO(jobCard), nil
}

// GetJobCard retrieves a job card by ID
func (s *JobCardService) GetJobCard(ctx context.Context, jobCardID string) (*JobCardDTO, error) {
	jobCard, err := s.loadJobCard(ctx, jobCardID)
	if err != nil {
		return nil, err
	}
	return ToJobCardDTO(jobCard), nil
}

// ListJobCardsQuery filters and paginates job card listings
type ListJobCardsQuery struct {
	Status     string
	CustomerID string
	Page       int64
	PageSize   int64
}

// ListJobCards lists job cards, optionally filtered by status or customer
func (s *JobCardService) ListJobCards(ctx context.Context, query ListJobCardsQuery) (*ListResponse[JobCardDTO], error) {
	pagination := domain.Pagination{Page: query.Page, PageSize: query.PageSize}

	var (
		jobCards []*domain.JobCard
		err      error
	)
	switch {
	case query.Status != "":
		jobCards, err = s.jobCardRepo.FindByStatus(ctx, domain.JobCardStatus(query.Status), pagination)
	case query.CustomerID != "":
		jobCards, err = s.jobCardRepo.FindByCustomer(ctx, query.CustomerID, pagination)
	default:
		jobCards, err = s.jobCardRepo.List(ctx, pagination)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list job cards: %w", err)
	}

	dtos := make([]JobCardDTO, len(jobCards))
	for i, jc := range jobCards {
		dtos[i] = *ToJobCardDTO(jc)
	}

	return &ListResponse[JobCardDTO]{
		Data:     dtos,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}

// ReconcileParts merges an incoming parts list into a job card according to
// the requested mode and applies the resulting stock movements. Stock is
// validated for every decrement before any increment is issued; on a
// shortage nothing is applied.
func (s *JobCardService) ReconcileParts(ctx context.Context, cmd ReconcilePartsCommand) (*JobCardDTO, error) {
	mode, err := domain.ParseReconciliationMode(cmd.Mode)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	jobCard, err := s.loadJobCard(ctx, cmd.JobCardID)
	if err != nil {
		return nil, err
	}
	if !jobCard.IsEditable() {
		return nil, errors.ErrConflict(fmt.Sprintf("job card %s is %s and can no longer be edited", jobCard.JobCardID, jobCard.Status))
	}

	if err := s.reconcile(ctx, jobCard, toIncomingParts(cmd.Parts), mode); err != nil {
		return nil, err
	}

	if err := s.jobCardRepo.Save(ctx, jobCard); err != nil {
		s.logger.WithError(err).Error("Failed to save job card after reconciliation", "jobCardId", jobCard.JobCardID)
		return nil, fmt.Errorf("failed to save job card: %w", err)
	}

	s.logger.Info("Parts reconciled",
		"jobCardId", jobCard.JobCardID,
		"mode", string(mode),
		"parts", len(jobCard.Parts),
		"total", jobCard.Totals.TotalAmount,
	)

	return ToJobCardDTO(jobCard), nil
}

// reconcile plans the merge, resolves part snapshots, validates stock for
// every decrement and only then applies the movements and the new list.
func (s *JobCardService) reconcile(ctx context.Context, jobCard *domain.JobCard, incoming []domain.IncomingPart, mode domain.ReconciliationMode) error {
	plan, err := domain.PlanReconciliation(jobCard.Parts, incoming, mode)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordReconciliationFailure("invalid_request")
		}
		return errors.ErrValidation(err.Error())
	}

	parts, err := s.resolveParts(ctx, incoming)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordReconciliationFailure("unknown_part")
		}
		return err
	}

	s.fillSnapshots(plan, parts)

	// Validate every decrement against current stock before touching any
	// part. A positive delta (return to stock) cannot fail. The gap between
	// this check and the increments below is an accepted race: stock can be
	// consumed by a concurrent request in between, in which case the $inc
	// may drive a quantity negative rather than fail mid-request.
	for partID, delta := range plan.Deltas {
		if delta >= 0 {
			continue
		}
		part, ok := parts[partID]
		if !ok {
			// Decrements only arise from incoming lines, which are all
			// resolved above.
			return errors.ErrInternal(fmt.Sprintf("unresolved part %s in reconciliation plan", partID))
		}
		if part.StockQuantity+delta < 0 {
			if s.metrics != nil {
				s.metrics.RecordReconciliationFailure("insufficient_stock")
			}
			return errors.ErrInsufficientStock(part.PartID, int(part.StockQuantity), int(-delta))
		}
	}

	consumed, returned := 0, 0
	for partID, delta := range plan.Deltas {
		if _, err := s.partRepo.IncrementStock(ctx, partID, delta); err != nil {
			s.logger.WithError(err).Error("Failed to apply stock delta",
				"jobCardId", jobCard.JobCardID,
				"partId", partID,
				"delta", delta,
			)
			return fmt.Errorf("failed to apply stock delta for part %s: %w", partID, err)
		}
		if delta < 0 {
			consumed += int(-delta)
		} else {
			returned += int(delta)
		}
	}

	if s.metrics != nil {
		if consumed > 0 {
			s.metrics.RecordPartsConsumed(consumed)
		}
		if returned > 0 {
			s.metrics.RecordPartsReturned(returned)
		}
	}

	if err := jobCard.SetParts(plan.Final, s.rates); err != nil {
		return errors.ErrValidation(err.Error())
	}
	return nil
}

// resolveParts loads the part record for every distinct incoming part ID.
// An unknown part fails the whole request.
func (s *JobCardService) resolveParts(ctx context.Context, incoming []domain.IncomingPart) (map[string]*domain.Part, error) {
	parts := make(map[string]*domain.Part, len(incoming))
	for _, in := range incoming {
		if _, seen := parts[in.PartID]; seen {
			continue
		}
		part, err := s.partRepo.FindByID(ctx, in.PartID)
		if err != nil {
			return nil, fmt.Errorf("failed to load part %s: %w", in.PartID, err)
		}
		if part == nil {
			return nil, errors.ErrNotFoundWithID("part", in.PartID)
		}
		parts[in.PartID] = part
	}
	return parts, nil
}

// fillSnapshots completes final lines whose name or number could not be
// resolved from the existing list or the request, using the part record.
// Only lines the plan marked unpriced take the catalog selling price; a
// price already on the line, including an explicit zero, is kept as is.
func (s *JobCardService) fillSnapshots(plan *domain.ReconciliationPlan, parts map[string]*domain.Part) {
	for i := range plan.Final {
		line := &plan.Final[i]
		part, ok := parts[line.PartID]
		if !ok {
			continue
		}
		if line.PartName == "" {
			line.PartName = part.Name
		}
		if line.PartNumber == "" {
			line.PartNumber = part.PartNumber
		}
		if plan.Unpriced[line.PartID] {
			line.UnitPrice = part.SellingPrice
		}
		line.TotalPrice = domain.LineTotal(line.UnitPrice, line.Quantity)
	}
}

// AddLabor appends a labor line to an editable job card
func (s *JobCardService) AddLabor(ctx context.Context, cmd AddLaborCommand) (*JobCardDTO, error) {
	jobCard, err := s.loadJobCard(ctx, cmd.JobCardID)
	if err != nil {
		return nil, err
	}
	if !jobCard.IsEditable() {
		return nil, errors.ErrConflict(fmt.Sprintf("job card %s is %s and can no longer be edited", jobCard.JobCardID, jobCard.Status))
	}

	if err := jobCard.AddLaborLine(cmd.Description, cmd.Hours, cmd.Rate, s.rates); err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.jobCardRepo.Save(ctx, jobCard); err != nil {
		return nil, fmt.Errorf("failed to save job card: %w", err)
	}
	return ToJobCardDTO(jobCard), nil
}

// ApplyDiscount sets an absolute discount on a job card and recomputes totals
func (s *JobCardService) ApplyDiscount(ctx context.Context, cmd ApplyDiscountCommand) (*JobCardDTO, error) {
	jobCard, err := s.loadJobCard(ctx, cmd.JobCardID)
	if err != nil {
		return nil, err
	}

	if err := jobCard.ApplyDiscount(cmd.Discount, s.rates); err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.jobCardRepo.Save(ctx, jobCard); err != nil {
		return nil, fmt.Errorf("failed to save job card: %w", err)
	}
	return ToJobCardDTO(jobCard), nil
}

// StartJobCard moves an open job card to in_progress
func (s *JobCardService) StartJobCard(ctx context.Context, jobCardID string) (*JobCardDTO, error) {
	return s.transition(ctx, jobCardID, func(jc *domain.JobCard) error { return jc.Start() })
}

// CompleteJobCard marks the work finished
func (s *JobCardService) CompleteJobCard(ctx context.Context, jobCardID string) (*JobCardDTO, error) {
	dto, err := s.transition(ctx, jobCardID, func(jc *domain.JobCard) error { return jc.Complete() })
	if err == nil && s.metrics != nil {
		s.metrics.RecordJobCardClosed(string(domain.JobCardStatusCompleted))
	}
	return dto, err
}

// DeliverJobCard hands the vehicle back to the customer
func (s *JobCardService) DeliverJobCard(ctx context.Context, jobCardID string) (*JobCardDTO, error) {
	dto, err := s.transition(ctx, jobCardID, func(jc *domain.JobCard) error { return jc.Deliver() })
	if err == nil && s.metrics != nil {
		s.metrics.RecordJobCardClosed(string(domain.JobCardStatusDelivered))
	}
	return dto, err
}

// CancelJobCard cancels a job card and returns every reserved part to stock
func (s *JobCardService) CancelJobCard(ctx context.Context, jobCardID string) (*JobCardDTO, error) {
	jobCard, err := s.loadJobCard(ctx, jobCardID)
	if err != nil {
		return nil, err
	}

	if err := jobCard.Cancel(); err != nil {
		return nil, errors.MapDomainError(err)
	}

	if err := s.restoreStock(ctx, jobCard); err != nil {
		return nil, err
	}

	if err := s.jobCardRepo.Save(ctx, jobCard); err != nil {
		return nil, fmt.Errorf("failed to save job card: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordJobCardClosed(string(domain.JobCardStatusCancelled))
	}
	s.logger.Info("Job card cancelled", "jobCardId", jobCard.JobCardID, "partsRestored", len(jobCard.Parts))

	return ToJobCardDTO(jobCard), nil
}

// DeleteJobCard removes a job card. Parts still reserved by an undelivered
// card are returned to stock first.
func (s *JobCardService) DeleteJobCard(ctx context.Context, jobCardID string) error {
	jobCard, err := s.loadJobCard(ctx, jobCardID)
	if err != nil {
		return err
	}

	if jobCard.Status != domain.JobCardStatusDelivered && jobCard.Status != domain.JobCardStatusCancelled {
		if err := s.restoreStock(ctx, jobCard); err != nil {
			return err
		}
	}

	if err := s.jobCardRepo.Delete(ctx, jobCardID); err != nil {
		return fmt.Errorf("failed to delete job card: %w", err)
	}

	s.logger.Info("Job card deleted", "jobCardId", jobCardID)
	return nil
}

// restoreStock returns every part line on the card to stock
func (s *JobCardService) restoreStock(ctx context.Context, jobCard *domain.JobCard) error {
	returned := 0
	for _, line := range jobCard.Parts {
		if line.Quantity <= 0 {
			continue
		}
		if _, err := s.partRepo.IncrementStock(ctx, line.PartID, line.Quantity); err != nil {
			s.logger.WithError(err).Error("Failed to restore stock",
				"jobCardId", jobCard.JobCardID,
				"partId", line.PartID,
				"quantity", line.Quantity,
			)
			return fmt.Errorf("failed to restore stock for part %s: %w", line.PartID, err)
		}
		returned += int(line.Quantity)
	}
	if returned > 0 && s.metrics != nil {
		s.metrics.RecordPartsReturned(returned)
	}
	return nil
}

func (s *JobCardService) transition(ctx context.Context, jobCardID string, apply func(*domain.JobCard) error) (*JobCardDTO, error) {
	jobCard, err := s.loadJobCard(ctx, jobCardID)
	if err != nil {
		return nil, err
	}

	if err := apply(jobCard); err != nil {
		return nil, errors.ErrConflict(err.Error())
	}

	if err := s.jobCardRepo.Save(ctx, jobCard); err != nil {
		return nil, fmt.Errorf("failed to save job card: %w", err)
	}

	s.logger.Info("Job card status changed", "jobCardId", jobCard.JobCardID, "status", string(jobCard.Status))
	return ToJobCardDTO(jobCard), nil
}

func (s *JobCardService) loadJobCard(ctx context.Context, jobCardID string) (*domain.JobCard, error) {
	jobCard, err := s.jobCardRepo.FindByID(ctx, jobCardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job card: %w", err)
	}
	if jobCard == nil {
		return nil, errors.ErrNotFoundWithID("job card", jobCardID)
	}
	return jobCard, nil
}
