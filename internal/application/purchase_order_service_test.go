package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garage-platform/garage-api/internal/domain"
	apperrors "github.com/garage-platform/garage-api/pkg/errors"
)

func TestCreatePurchaseOrderSnapshotsPartsAndDefaultsCost(t *testing.T) {
	supplier, err := domain.NewSupplier("Sri Auto Parts", "Meena", "+914412345678", "", "Pudupet, Chennai", "")
	require.NoError(t, err)

	part := testPart("PRT-brkpad01", "Brake Pad", "BP-2200", 5, 900)
	part.CostPrice = 640

	supplierRepo := &fakeSupplierRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.Supplier, error) { return supplier, nil },
	}
	var saved *domain.PurchaseOrder
	orderRepo := &fakePurchaseOrderRepo{
		saveFn: func(_ context.Context, po *domain.PurchaseOrder) error { saved = po; return nil },
	}

	service := NewPurchaseOrderService(orderRepo, supplierRepo, newFakePartRepo(part), nil, testLogger())

	dto, err := service.CreatePurchaseOrder(context.Background(), CreatePurchaseOrderCommand{
		SupplierID: supplier.SupplierID,
		Items: []PurchaseOrderItemCommand{
			{PartID: "PRT-brkpad01", Quantity: 10},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, "Sri Auto Parts", dto.SupplierName)
	require.Len(t, dto.Items, 1)
	assert.Equal(t, "Brake Pad", dto.Items[0].PartName)
	assert.Equal(t, "BP-2200", dto.Items[0].PartNumber)
	assert.Equal(t, 640.0, dto.Items[0].UnitCost)
	assert.Equal(t, 6400.0, dto.TotalAmount)
	assert.Equal(t, string(domain.PurchaseOrderStatusDraft), dto.Status)
}

func TestReceivePurchaseOrderIncrementsStockPerLine(t *testing.T) {
	order, err := domain.NewPurchaseOrder("SUP-sriauto1", "Sri Auto Parts", []domain.PurchaseOrderItem{
		{PartID: "PRT-brkpad01", PartName: "Brake Pad", PartNumber: "BP-2200", Quantity: 10, UnitCost: 640},
		{PartID: "PRT-oilfltr1", PartName: "Oil Filter", PartNumber: "OF-1001", Quantity: 20, UnitCost: 180},
	}, "")
	require.NoError(t, err)
	require.NoError(t, order.MarkOrdered())

	orderRepo := &fakePurchaseOrderRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.PurchaseOrder, error) { return order, nil },
	}
	partRepo := newFakePartRepo(
		testPart("PRT-brkpad01", "Brake Pad", "BP-2200", 1, 900),
		testPart("PRT-oilfltr1", "Oil Filter", "OF-1001", 3, 250),
	)

	service := NewPurchaseOrderService(orderRepo, &fakeSupplierRepo{}, partRepo, nil, testLogger())

	dto, err := service.ReceivePurchaseOrder(context.Background(), order.PurchaseOrderID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.PurchaseOrderStatusReceived), dto.Status)
	assert.Equal(t, int64(11), partRepo.parts["PRT-brkpad01"].StockQuantity)
	assert.Equal(t, int64(23), partRepo.parts["PRT-oilfltr1"].StockQuantity)
	require.Len(t, partRepo.incrementCalls, 2)
}

func TestReceivePurchaseOrderRequiresOrderedStatus(t *testing.T) {
	order, err := domain.NewPurchaseOrder("SUP-sriauto1", "Sri Auto Parts", []domain.PurchaseOrderItem{
		{PartID: "PRT-brkpad01", Quantity: 10, UnitCost: 640},
	}, "")
	require.NoError(t, err)

	orderRepo := &fakePurchaseOrderRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.PurchaseOrder, error) { return order, nil },
	}
	partRepo := newFakePartRepo(testPart("PRT-brkpad01", "Brake Pad", "BP-2200", 1, 900))

	service := NewPurchaseOrderService(orderRepo, &fakeSupplierRepo{}, partRepo, nil, testLogger())

	_, err = service.ReceivePurchaseOrder(context.Background(), order.PurchaseOrderID)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
	assert.Empty(t, partRepo.incrementCalls)
}

func TestCreatePurchaseOrderUnknownSupplier(t *testing.T) {
	service := NewPurchaseOrderService(&fakePurchaseOrderRepo{}, &fakeSupplierRepo{}, newFakePartRepo(), nil, testLogger())

	_, err := service.CreatePurchaseOrder(context.Background(), CreatePurchaseOrderCommand{
		SupplierID: "SUP-missing1",
		Items:      []PurchaseOrderItemCommand{{PartID: "PRT-brkpad01", Quantity: 1}},
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}
