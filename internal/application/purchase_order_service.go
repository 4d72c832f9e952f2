package application

import (
	"context"
	"fmt"

	"github.com/garage-platform/garage-api/internal/domain"
	"github.com/garage-platform/garage-api/pkg/errors"
	"github.com/garage-platform/garage-api/pkg/logging"
	"github.com/garage-platform/garage-api/pkg/middleware"
)

// PurchaseOrderService handles supplier restocking flows
type PurchaseOrderService struct {
	orderRepo    domain.PurchaseOrderRepository
	supplierRepo domain.SupplierRepository
	partRepo     domain.PartRepository
	metrics      *middleware.BusinessMetrics
	logger       *logging.Logger
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	orderRepo domain.PurchaseOrderRepository,
	supplierRepo domain.SupplierRepository,
	partRepo domain.PartRepository,
	metrics *middleware.BusinessMetrics,
	logger *logging.Logger,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		partRepo:     partRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// CreatePurchaseOrder drafts a purchase order. Part names and numbers are
// snapshotted onto the lines; a zero unit cost defaults to the part's
// current cost price.
func (s *PurchaseOrderService) CreatePurchaseOrder(ctx context.Context, cmd CreatePurchaseOrderCommand) (*PurchaseOrderDTO, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, cmd.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	if supplier == nil {
		return nil, errors.ErrNotFoundWithID("supplier", cmd.SupplierID)
	}

	items := make([]domain.PurchaseOrderItem, len(cmd.Items))
	for i, line := range cmd.Items {
		part, err := s.partRepo.FindByID(ctx, line.PartID)
		if err != nil {
			return nil, fmt.Errorf("failed to load part %s: %w", line.PartID, err)
		}
		if part == nil {
			return nil, errors.ErrNotFoundWithID("part", line.PartID)
		}

		unitCost := line.UnitCost
		if unitCost == 0 {
			unitCost = part.CostPrice
		}
		items[i] = domain.PurchaseOrderItem{
			PartID:     part.PartID,
			PartName:   part.Name,
			PartNumber: part.PartNumber,
			Quantity:   line.Quantity,
			UnitCost:   unitCost,
		}
	}

	order, err := domain.NewPurchaseOrder(supplier.SupplierID, supplier.Name, items, cmd.Notes)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		s.logger.WithError(err).Error("Failed to save purchase order", "purchaseOrderId", order.PurchaseOrderID)
		return nil, fmt.Errorf("failed to save purchase order: %w", err)
	}

	s.logger.Info("Purchase order drafted",
		"purchaseOrderId", order.PurchaseOrderID,
		"supplierId", supplier.SupplierID,
		"items", len(order.Items),
		"total", order.TotalAmount,
	)
	return ToPurchaseOrderDTO(order), nil
}

// GetPurchaseOrder retrieves a purchase order by ID
func (s *PurchaseOrderService) GetPurchaseOrder(ctx context.Context, purchaseOrderID string) (*PurchaseOrderDTO, error) {
	order, err := s.loadOrder(ctx, purchaseOrderID)
	if err != nil {
		return nil, err
	}
	return ToPurchaseOrderDTO(order), nil
}

// ListPurchaseOrdersQuery filters and paginates purchase order listings
type ListPurchaseOrdersQuery struct {
	Status     string
	SupplierID string
	Page       int64
	PageSize   int64
}

// ListPurchaseOrders lists purchase orders, optionally filtered by status
// or supplier
func (s *PurchaseOrderService) ListPurchaseOrders(ctx context.Context, query ListPurchaseOrdersQuery) (*ListResponse[PurchaseOrderDTO], error) {
	pagination := domain.Pagination{Page: query.Page, PageSize: query.PageSize}

	var (
		orders []*domain.PurchaseOrder
		err    error
	)
	switch {
	case query.Status != "":
		orders, err = s.orderRepo.FindByStatus(ctx, domain.PurchaseOrderStatus(query.Status), pagination)
	case query.SupplierID != "":
		orders, err = s.orderRepo.FindBySupplier(ctx, query.SupplierID, pagination)
	default:
		orders, err = s.orderRepo.List(ctx, pagination)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase orders: %w", err)
	}

	dtos := make([]PurchaseOrderDTO, len(orders))
	for i, o := range orders {
		dtos[i] = *ToPurchaseOrderDTO(o)
	}

	return &ListResponse[PurchaseOrderDTO]{
		Data:     dtos,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}

// MarkOrdered sends a draft order to the supplier
func (s *PurchaseOrderService) MarkOrdered(ctx context.Context, purchaseOrderID string) (*PurchaseOrderDTO, error) {
	order, err := s.loadOrder(ctx, purchaseOrderID)
	if err != nil {
		return nil, err
	}

	if err := order.MarkOrdered(); err != nil {
		return nil, errors.ErrConflict(err.Error())
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save purchase order: %w", err)
	}

	s.logger.Info("Purchase order placed", "purchaseOrderId", order.PurchaseOrderID)
	return ToPurchaseOrderDTO(order), nil
}

// ReceivePurchaseOrder marks an ordered purchase order as received and
// increments stock for every line
func (s *PurchaseOrderService) ReceivePurchaseOrder(ctx context.Context, purchaseOrderID string) (*PurchaseOrderDTO, error) {
	order, err := s.loadOrder(ctx, purchaseOrderID)
	if err != nil {
		return nil, err
	}

	if err := order.MarkReceived(); err != nil {
		return nil, errors.ErrConflict(err.Error())
	}

	for _, item := range order.Items {
		if _, err := s.partRepo.IncrementStock(ctx, item.PartID, item.Quantity); err != nil {
			s.logger.WithError(err).Error("Failed to increment stock on receipt",
				"purchaseOrderId", order.PurchaseOrderID,
				"partId", item.PartID,
				"quantity", item.Quantity,
			)
			return nil, fmt.Errorf("failed to increment stock for part %s: %w", item.PartID, err)
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save purchase order: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordPurchaseOrderReceived()
	}
	s.logger.Info("Purchase order received",
		"purchaseOrderId", order.PurchaseOrderID,
		"items", len(order.Items),
	)
	return ToPurchaseOrderDTO(order), nil
}

// CancelPurchaseOrder cancels a draft or ordered purchase order
func (s *PurchaseOrderService) CancelPurchaseOrder(ctx context.Context, purchaseOrderID string) (*PurchaseOrderDTO, error) {
	order, err := s.loadOrder(ctx, purchaseOrderID)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(); err != nil {
		return nil, errors.ErrConflict(err.Error())
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save purchase order: %w", err)
	}

	s.logger.Info("Purchase order cancelled", "purchaseOrderId", order.PurchaseOrderID)
	return ToPurchaseOrderDTO(order), nil
}

func (s *PurchaseOrderService) loadOrder(ctx context.Context, purchaseOrderID string) (*domain.PurchaseOrder, error) {
	order, err := s.orderRepo.FindByID(ctx, purchaseOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase order: %w", err)
	}
	if order == nil {
		return nil, errors.ErrNotFoundWithID("purchase order", purchaseOrderID)
	}
	return order, nil
}
