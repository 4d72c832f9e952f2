package application

import (
	"context"
	"fmt"

	"github.com/garage-platform/garage-api/internal/domain"
	"github.com/garage-platform/garage-api/pkg/errors"
	"github.com/garage-platform/garage-api/pkg/logging"
)

// InventoryService handles parts inventory and supplier use cases
type InventoryService struct {
	partRepo     domain.PartRepository
	supplierRepo domain.SupplierRepository
	logger       *logging.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	partRepo domain.PartRepository,
	supplierRepo domain.SupplierRepository,
	logger *logging.Logger,
) *InventoryService {
	return &InventoryService{
		partRepo:     partRepo,
		supplierRepo: supplierRepo,
		logger:       logger,
	}
}

// CreatePart adds an inventory part. Part numbers are unique.
func (s *InventoryService) CreatePart(ctx context.Context, cmd CreatePartCommand) (*PartDTO, error) {
	existing, err := s.partRepo.FindByPartNumber(ctx, cmd.PartNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing part: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrConflict(fmt.Sprintf("part number %s already exists", cmd.PartNumber))
	}

	if cmd.SupplierID != "" {
		if _, err := s.loadSupplier(ctx, cmd.SupplierID); err != nil {
			return nil, err
		}
	}

	part, err := domain.NewPart(
		cmd.Name,
		cmd.PartNumber,
		cmd.Description,
		cmd.Category,
		cmd.CostPrice,
		cmd.SellingPrice,
		cmd.StockQuantity,
		cmd.MinStockLevel,
		cmd.SupplierID,
	)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.partRepo.Save(ctx, part); err != nil {
		s.logger.WithError(err).Error("Failed to save part", "partId", part.PartID)
		return nil, fmt.Errorf("failed to save part: %w", err)
	}

	s.logger.Info("Part added",
		"partId", part.PartID,
		"partNumber", part.PartNumber,
		"stockQuantity", part.StockQuantity,
	)
	return ToPartDTO(part), nil
}

// GetPart retrieves a part by ID
func (s *InventoryService) GetPart(ctx context.Context, partID string) (*PartDTO, error) {
	part, err := s.loadPart(ctx, partID)
	if err != nil {
		return nil, err
	}
	return ToPartDTO(part), nil
}

// UpdatePart updates a part's catalog details. Stock quantity is not
// touched here; it moves only through adjustments, purchase order receiving
// and job card reconciliation.
func (s *InventoryService) UpdatePart(ctx context.Context, cmd UpdatePartCommand) (*PartDTO, error) {
	part, err := s.loadPart(ctx, cmd.PartID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != "" {
		part.Name = cmd.Name
	}
	if cmd.Description != nil {
		part.Description = *cmd.Description
	}
	if cmd.Category != nil {
		part.Category = *cmd.Category
	}
	if cmd.CostPrice != nil {
		if *cmd.CostPrice < 0 {
			return nil, errors.ErrValidation(domain.ErrNegativePrice.Error())
		}
		part.CostPrice = *cmd.CostPrice
	}
	if cmd.SellingPrice != nil {
		if *cmd.SellingPrice < 0 {
			return nil, errors.ErrValidation(domain.ErrNegativePrice.Error())
		}
		part.SellingPrice = *cmd.SellingPrice
	}
	if cmd.MinStockLevel != nil {
		if *cmd.MinStockLevel < 0 {
			return nil, errors.ErrValidation(domain.ErrNegativeStock.Error())
		}
		part.MinStockLevel = *cmd.MinStockLevel
	}
	if cmd.SupplierID != nil {
		if *cmd.SupplierID != "" {
			if _, err := s.loadSupplier(ctx, *cmd.SupplierID); err != nil {
				return nil, err
			}
		}
		part.SupplierID = *cmd.SupplierID
	}
	part.UpdatedAt = nowUTC()

	if err := s.partRepo.Save(ctx, part); err != nil {
		return nil, fmt.Errorf("failed to save part: %w", err)
	}
	return ToPartDTO(part), nil
}

// AdjustStock applies a signed manual stock correction. The result must not
// go negative.
func (s *InventoryService) AdjustStock(ctx context.Context, cmd AdjustStockCommand) (*PartDTO, error) {
	part, err := s.loadPart(ctx, cmd.PartID)
	if err != nil {
		return nil, err
	}

	if part.StockQuantity+cmd.Delta < 0 {
		return nil, errors.ErrInsufficientStock(part.PartID, int(part.StockQuantity), int(-cmd.Delta))
	}

	updated, err := s.partRepo.IncrementStock(ctx, cmd.PartID, cmd.Delta)
	if err != nil {
		s.logger.WithError(err).Error("Failed to adjust stock", "partId", cmd.PartID, "delta", cmd.Delta)
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}

	s.logger.Audit(ctx, "stock_adjusted", "part", cmd.PartID, "", map[string]any{
		"delta":  cmd.Delta,
		"reason": cmd.Reason,
		"stock":  updated.StockQuantity,
	})
	return ToPartDTO(updated), nil
}

// ListPartsQuery filters and paginates part listings
type ListPartsQuery struct {
	Search   string
	Page     int64
	PageSize int64
}

// ListParts lists parts, optionally filtered by a name or number fragment
func (s *InventoryService) ListParts(ctx context.Context, query ListPartsQuery) (*ListResponse[PartDTO], error) {
	pagination := domain.Pagination{Page: query.Page, PageSize: query.PageSize}

	parts, err := s.partRepo.List(ctx, query.Search, pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}
	total, err := s.partRepo.Count(ctx, query.Search)
	if err != nil {
		return nil, fmt.Errorf("failed to count parts: %w", err)
	}

	dtos := make([]PartDTO, len(parts))
	for i, p := range parts {
		dtos[i] = *ToPartDTO(p)
	}

	return &ListResponse[PartDTO]{
		Data:     dtos,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
		Total:    total,
	}, nil
}

// ListLowStockParts lists parts at or below their reorder level
func (s *InventoryService) ListLowStockParts(ctx context.Context) ([]PartDTO, error) {
	parts, err := s.partRepo.FindLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock parts: %w", err)
	}

	dtos := make([]PartDTO, len(parts))
	for i, p := range parts {
		dtos[i] = *ToPartDTO(p)
	}
	return dtos, nil
}

// DeletePart removes a part from the catalog
func (s *InventoryService) DeletePart(ctx context.Context, partID string) error {
	if _, err := s.loadPart(ctx, partID); err != nil {
		return err
	}

	if err := s.partRepo.Delete(ctx, partID); err != nil {
		return fmt.Errorf("failed to delete part: %w", err)
	}

	s.logger.Info("Part deleted", "partId", partID)
	return nil
}

// CreateSupplier registers a supplier
func (s *InventoryService) CreateSupplier(ctx context.Context, cmd CreateSupplierCommand) (*SupplierDTO, error) {
	supplier, err := domain.NewSupplier(cmd.Name, cmd.ContactPerson, cmd.Phone, cmd.Email, cmd.Address, cmd.GSTIN)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		s.logger.WithError(err).Error("Failed to save supplier", "supplierId", supplier.SupplierID)
		return nil, fmt.Errorf("failed to save supplier: %w", err)
	}

	s.logger.Info("Supplier registered", "supplierId", supplier.SupplierID, "name", supplier.Name)
	return ToSupplierDTO(supplier), nil
}

// GetSupplier retrieves a supplier by ID
func (s *InventoryService) GetSupplier(ctx context.Context, supplierID string) (*SupplierDTO, error) {
	supplier, err := s.loadSupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return ToSupplierDTO(supplier), nil
}

// ListSuppliers lists suppliers
func (s *InventoryService) ListSuppliers(ctx context.Context, page, pageSize int64) (*ListResponse[SupplierDTO], error) {
	pagination := domain.Pagination{Page: page, PageSize: pageSize}

	suppliers, err := s.supplierRepo.List(ctx, pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	total, err := s.supplierRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count suppliers: %w", err)
	}

	dtos := make([]SupplierDTO, len(suppliers))
	for i, sup := range suppliers {
		dtos[i] = *ToSupplierDTO(sup)
	}

	return &ListResponse[SupplierDTO]{
		Data:     dtos,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
		Total:    total,
	}, nil
}

// DeleteSupplier removes a supplier
func (s *InventoryService) DeleteSupplier(ctx context.Context, supplierID string) error {
	if _, err := s.loadSupplier(ctx, supplierID); err != nil {
		return err
	}

	if err := s.supplierRepo.Delete(ctx, supplierID); err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}

	s.logger.Info("Supplier deleted", "supplierId", supplierID)
	return nil
}

func (s *InventoryService) loadPart(ctx context.Context, partID string) (*domain.Part, error) {
	part, err := s.partRepo.FindByID(ctx, partID)
	if err != nil {
		return nil, fmt.Errorf("failed to get part: %w", err)
	}
	if part == nil {
		return nil, errors.ErrNotFoundWithID("part", partID)
	}
	return part, nil
}

func (s *InventoryService) loadSupplier(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	if supplier == nil {
		return nil, errors.ErrNotFoundWithID("supplier", supplierID)
	}
	return supplier, nil
}
