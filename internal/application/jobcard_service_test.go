package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garage-platform/garage-api/internal/domain"
	apperrors "github.com/garage-platform/garage-api/pkg/errors"
)

func testPart(id, name, number string, stock int64, sellingPrice float64) *domain.Part {
	return &domain.Part{
		PartID:        id,
		Name:          name,
		PartNumber:    number,
		StockQuantity: stock,
		SellingPrice:  sellingPrice,
		MinStockLevel: 2,
	}
}

func testOpenJobCard(parts ...domain.PartReference) *domain.JobCard {
	jc := &domain.JobCard{
		JobCardID:      "JC-test0001",
		CustomerID:     "CUS-ravi0001",
		CustomerName:   "Ravi Kumar",
		CustomerPhone:  "+919800112233",
		VehicleID:      "VEH-tn090001",
		RegistrationNo: "TN09AB1234",
		ServiceType:    "general_service",
		Status:         domain.JobCardStatusOpen,
		Parts:          parts,
		Labor:          []domain.LaborLine{},
	}
	_ = jc.RecalculateTotals(domain.DefaultTaxRates())
	return jc
}

func newTestJobCardService(jobCardRepo *fakeJobCardRepo, partRepo *fakePartRepo) *JobCardService {
	return NewJobCardService(
		jobCardRepo,
		&fakeCustomerRepo{},
		&fakeVehicleRepo{},
		partRepo,
		domain.DefaultTaxRates(),
		nil,
		testLogger(),
	)
}

func TestReconcilePartsEditConsumesOnlyTheDifference(t *testing.T) {
	jc := testOpenJobCard(domain.PartReference{
		PartID: "PRT-oilfltr1", PartName: "Oil Filter", PartNumber: "OF-1001",
		Quantity: 2, UnitPrice: 250, TotalPrice: 500,
	})

	var saved *domain.JobCard
	jobCardRepo := &fakeJobCardRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.JobCard, error) { return jc, nil },
		saveFn:     func(_ context.Context, j *domain.JobCard) error { saved = j; return nil },
	}
	partRepo := newFakePartRepo(testPart("PRT-oilfltr1", "Oil Filter", "OF-1001", 10, 250))

	service := newTestJobCardService(jobCardRepo, partRepo)

	dto, err := service.ReconcileParts(context.Background(), ReconcilePartsCommand{
		JobCardID: "JC-test0001",
		Mode:      "edit",
		Parts:     []IncomingPartCommand{{PartID: "PRT-oilfltr1", Quantity: 5}},
	})
	require.NoError(t, err)
	require.NotNil(t, saved)

	require.Len(t, partRepo.incrementCalls, 1)
	assert.Equal(t, stockCall{PartID: "PRT-oilfltr1", Delta: -3}, partRepo.incrementCalls[0])
	assert.Equal(t, int64(7), partRepo.parts["PRT-oilfltr1"].StockQuantity)

	require.Len(t, dto.Parts, 1)
	assert.Equal(t, int64(5), dto.Parts[0].Quantity)
	assert.Equal(t, 1250.0, dto.Parts[0].TotalPrice)
	assert.Equal(t, 1250.0, dto.Totals.Subtotal)
}

func TestReconcilePartsEditRestoresOmittedParts(t *testing.T) {
	jc := testOpenJobCard(
		domain.PartReference{PartID: "PRT-oilfltr1", PartName: "Oil Filter", PartNumber: "OF-1001", Quantity: 2, UnitPrice: 250, TotalPrice: 500},
		domain.PartReference{PartID: "PRT-brkpad01", PartName: "Brake Pad", PartNumber: "BP-2200", Quantity: 4, UnitPrice: 900, TotalPrice: 3600},
	)

	jobCardRepo := &fakeJobCardRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.JobCard, error) { return jc, nil },
	}
	partRepo := newFakePartRepo(
		testPart("PRT-oilfltr1", "Oil Filter", "OF-1001", 10, 250),
		testPart("PRT-brkpad01", "Brake Pad", "BP-2200", 0, 900),
	)

	service := newTestJobCardService(jobCardRepo, partRepo)

	dto, err := service.ReconcileParts(context.Background(), ReconcilePartsCommand{
		JobCardID: "JC-test0001",
		Mode:      "edit",
		Parts:     []IncomingPartCommand{{PartID: "PRT-oilfltr1", Quantity: 2}},
	})
	require.NoError(t, err)

	// Brake pads were dropped from the list, so their reservation returns
	// to stock; the oil filter quantity is unchanged and moves nothing.
	require.Len(t, partRepo.incrementCalls, 1)
	assert.Equal(t, stockCall{PartID: "PRT-brkpad01", Delta: 4}, partRepo.incrementCalls[0])
	assert.Equal(t, int64(4), partRepo.parts["PRT-brkpad01"].StockQuantity)

	require.Len(t, dto.Parts, 1)
	assert.Equal(t, "PRT-oilfltr1", dto.Parts[0].PartID)
}

func TestReconcilePartsInsufficientStockAppliesNothing(t *testing.T) {
	jc := testOpenJobCard(
		domain.PartReference{PartID: "PRT-oilfltr1", PartName: "Oil Filter", PartNumber: "OF-1001", Quantity: 1, UnitPrice: 250, TotalPrice: 250},
	)

	saveCalls := 0
	jobCardRepo := &fakeJobCardRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.JobCard, error) { return jc, nil },
		saveFn:     func(_ context.Context, _ *domain.JobCard) error { saveCalls++; return nil },
	}
	partRepo := newFakePartRepo(
		testPart("PRT-oilfltr1", "Oil Filter", "OF-1001", 10, 250),
		testPart("PRT-coolant1", "Coolant", "CL-3300", 2, 450),
	)

	service := newTestJobCardService(jobCardRepo, partRepo)

	// The coolant line exceeds stock. The oil filter delta is valid on its
	// own but must not be applied either.
	_, err := service.ReconcileParts(context.Background(), ReconcilePartsCommand{
		JobCardID: "JC-test0001",
		Mode:      "edit",
		Parts: []IncomingPartCommand{
			{PartID: "PRT-oilfltr1", Quantity: 5},
			{PartID: "PRT-coolant1", Quantity: 3},
		},
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInsufficientStock, appErr.Code)
	assert.Equal(t, "PRT-coolant1", appErr.Details["partId"])
	assert.Equal(t, "2", appErr.Details["available"])
	assert.Equal(t, "3", appErr.Details["required"])

	assert.Empty(t, partRepo.incrementCalls)
	assert.Equal(t, int64(10), partRepo.parts["PRT-oilfltr1"].StockQuantity)
	assert.Equal(t, int64(2), partRepo.parts["PRT-coolant1"].StockQuantity)
	assert.Equal(t, 0, saveCalls)
	require.Len(t, jc.Parts, 1)
	assert.Equal(t, int64(1), jc.Parts[0].Quantity)
}

func TestReconcilePartsUnknownPartRejected(t *testing.T) {
	jc := testOpenJobCard()
	jobCardRepo := &fakeJobCardRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.JobCard, error) { return jc, nil },
	}
	partRepo := newFakePartRepo()

	service := newTestJobCardService(jobCardRepo, partRepo)

	_, err := service.ReconcileParts(context.Background(), ReconcilePartsCommand{
		JobCardID: "JC-test0001",
		Parts:     []IncomingPartCommand{{PartID: "PRT-missing1", Quantity: 1}},
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
	assert.Empty(t, partRepo.incrementCalls)
}

func TestReconcilePartsRejectedWhenNotEditable(t *testing.T) {
	jc := testOpenJobCard()
	jc.Status = domain.JobCardStatusCompleted

	jobCardRepo := &fakeJobCardRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.JobCard, error) { return jc, nil },
	}
	service := newTestJobCardService(jobCardRepo, newFakePartRepo())

	_, err := service.ReconcileParts(context.Background(), ReconcilePartsCommand{
		JobCardID: "JC-test0001",
		Parts:     []IncomingPartCommand{{PartID: "PRT-oilfltr1", Quantity: 1}},
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestReconcilePartsReplaceIdenticalListMovesNothing(t *testing.T) {
	jc := testOpenJobCard(
		domain.PartReference{PartID: "PRT-oilfltr1", PartName: "Oil Filter", PartNumber: "OF-1001", Quantity: 2, UnitPrice: 250, TotalPrice: 500},
	)
	jobCardRepo := &fakeJobCardRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.JobCard, error) { return jc, nil },
	}
	partRepo := newFakePartRepo(testPart("PRT-oilfltr1", "Oil Filter", "OF-1001", 10, 250))

	service := newTestJobCardService(jobCardRepo, partRepo)

	_, err := service.ReconcileParts(context.Background(), ReconcilePartsCommand{
		JobCardID: "JC-test0001",
		Mode:      "replace",
		Parts:     []IncomingPartCommand{{PartID: "PRT-oilfltr1", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Empty(t, partRepo.incrementCalls)
	assert.Equal(t, int64(10), partRepo.parts["PRT-oilfltr1"].StockQuantity)
}

func TestReconcilePartsSnapshotsResolvedFromPartRecord(t *testing.T) {
	jc := testOpenJobCard()
	jobCardRepo := &fakeJobCardRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.JobCard, error) { return jc, nil },
	}
	partRepo := newFakePartRepo(testPart("PRT-sparkpl1", "Spark Plug", "SP-4410", 8, 120))

	service := newTestJobCardService(jobCardRepo, partRepo)

	dto, err := service.ReconcileParts(context.Background(), ReconcilePartsCommand{
		JobCardID: "JC-test0001",
		Mode:      "add",
		Parts:     []IncomingPartCommand{{PartID: "PRT-sparkpl1", Quantity: 4}},
	})
	require.NoError(t, err)

	require.Len(t, dto.Parts, 1)
	line := dto.Parts[0]
	assert.Equal(t, "Spark Plug", line.PartName)
	assert.Equal(t, "SP-4410", line.PartNumber)
	assert.Equal(t, 120.0, line.UnitPrice)
	assert.Equal(t, 480.0, line.TotalPrice)
}

func TestReconcilePartsExplicitPriceOverridesCatalog(t *testing.T) {
	jc := testOpenJobCard()
	jobCardRepo := &fakeJobCardRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.JobCard, error) { return jc, nil },
	}
	partRepo := newFakePartRepo(testPart("PRT-sparkpl1", "Spark Plug", "SP-4410", 8, 120))

	service := newTestJobCardService(jobCardRepo, partRepo)

	price := 99.5
	dto, err := service.ReconcileParts(context.Background(), ReconcilePartsCommand{
		JobCardID: "JC-test0001",
		Mode:      "add",
		Parts:     []IncomingPartCommand{{PartID: "PRT-sparkpl1", Quantity: 2, UnitPrice: &price}},
	})
	require.NoError(t, err)

	require.Len(t, dto.Parts, 1)
	assert.Equal(t, 99.5, dto.Parts[0].UnitPrice)
	assert.Equal(t, 199.0, dto.Parts[0].TotalPrice)
}

func TestReconcilePartsExplicitZeroPriceHonored(t *testing.T) {
	jc := testOpenJobCard()
	jobCardRepo := &fakeJobCardRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.JobCard, error) { return jc, nil },
	}
	partRepo := newFakePartRepo(testPart("PRT-sparkpl1", "Spark Plug", "SP-4410", 8, 120))

	service := newTestJobCardService(jobCardRepo, partRepo)

	free := 0.0
	dto, err := service.ReconcileParts(context.Background(), ReconcilePartsCommand{
		JobCardID: "JC-test0001",
		Mode:      "add",
		Parts:     []IncomingPartCommand{{PartID: "PRT-sparkpl1", Quantity: 1, UnitPrice: &free}},
	})
	require.NoError(t, err)

	require.Len(t, dto.Parts, 1)
	assert.Equal(t, 0.0, dto.Parts[0].UnitPrice)
	assert.Equal(t, 0.0, dto.Parts[0].TotalPrice)
}

func TestReconcilePartsKeepsZeroPricedExistingLine(t *testing.T) {
	// A line booked free of charge stays free when a later reconcile changes
	// its quantity without resending the price.
	jc := testOpenJobCard(
		domain.PartReference{PartID: "PRT-oilfltr1", PartName: "Oil Filter", PartNumber: "OF-1001", Quantity: 1, UnitPrice: 0, TotalPrice: 0},
	)
	jobCardRepo := &fakeJobCardRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.JobCard, error) { return jc, nil },
	}
	partRepo := newFakePartRepo(testPart("PRT-oilfltr1", "Oil Filter", "OF-1001", 10, 250))

	service := newTestJobCardService(jobCardRepo, partRepo)

	dto, err := service.ReconcileParts(context.Background(), ReconcilePartsCommand{
		JobCardID: "JC-test0001",
		Mode:      "edit",
		Parts:     []IncomingPartCommand{{PartID: "PRT-oilfltr1", Quantity: 2}},
	})
	require.NoError(t, err)

	require.Len(t, dto.Parts, 1)
	assert.Equal(t, int64(2), dto.Parts[0].Quantity)
	assert.Equal(t, 0.0, dto.Parts[0].UnitPrice)
	assert.Equal(t, 0.0, dto.Parts[0].TotalPrice)
	assert.Equal(t, 0.0, dto.Totals.Subtotal)
}

func TestCreateJobCardWithInitialPartsReservesStock(t *testing.T) {
	customer, err := domain.NewCustomer("Ravi Kumar", "+919800112233", "", "Anna Nagar, Chennai")
	require.NoError(t, err)
	vehicle, err := domain.NewVehicle(customer.CustomerID, "TN09AB1234", "Maruti", "Swift", 2019, "petrol", "white")
	require.NoError(t, err)

	customerRepo := &fakeCustomerRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.Customer, error) { return customer, nil },
	}
	vehicleRepo := &fakeVehicleRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.Vehicle, error) { return vehicle, nil },
	}
	var saved *domain.JobCard
	jobCardRepo := &fakeJobCardRepo{
		saveFn: func(_ context.Context, j *domain.JobCard) error { saved = j; return nil },
	}
	partRepo := newFakePartRepo(testPart("PRT-oilfltr1", "Oil Filter", "OF-1001", 10, 250))

	service := NewJobCardService(jobCardRepo, customerRepo, vehicleRepo, partRepo, domain.DefaultTaxRates(), nil, testLogger())

	dto, err := service.CreateJobCard(context.Background(), CreateJobCardCommand{
		CustomerID:  customer.CustomerID,
		VehicleID:   vehicle.VehicleID,
		ServiceType: "general_service",
		Complaint:   "engine noise",
		Odometer:    42300,
		Parts:       []IncomingPartCommand{{PartID: "PRT-oilfltr1", Quantity: 2}},
	})
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, "Ravi Kumar", dto.CustomerName)
	assert.Equal(t, "TN09AB1234", dto.RegistrationNo)
	require.Len(t, dto.Parts, 1)
	assert.Equal(t, int64(8), partRepo.parts["PRT-oilfltr1"].StockQuantity)
	assert.Equal(t, 500.0, dto.Totals.Subtotal)
}

func TestCancelJobCardRestoresStock(t *testing.T) {
	jc := testOpenJobCard(
		domain.PartReference{PartID: "PRT-oilfltr1", PartName: "Oil Filter", PartNumber: "OF-1001", Quantity: 3, UnitPrice: 250, TotalPrice: 750},
	)
	jobCardRepo := &fakeJobCardRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.JobCard, error) { return jc, nil },
	}
	partRepo := newFakePartRepo(testPart("PRT-oilfltr1", "Oil Filter", "OF-1001", 7, 250))

	service := newTestJobCardService(jobCardRepo, partRepo)

	dto, err := service.CancelJobCard(context.Background(), "JC-test0001")
	require.NoError(t, err)

	assert.Equal(t, string(domain.JobCardStatusCancelled), dto.Status)
	require.Len(t, partRepo.incrementCalls, 1)
	assert.Equal(t, stockCall{PartID: "PRT-oilfltr1", Delta: 3}, partRepo.incrementCalls[0])
	assert.Equal(t, int64(10), partRepo.parts["PRT-oilfltr1"].StockQuantity)
}

func TestDeliverJobCardRequiresCompletion(t *testing.T) {
	jc := testOpenJobCard()
	jobCardRepo := &fakeJobCardRepo{
		findByIDFn: func(_ context.Context, _ string) (*domain.JobCard, error) { return jc, nil },
	}
	service := newTestJobCardService(jobCardRepo, newFakePartRepo())

	_, err := service.DeliverJobCard(context.Background(), "JC-test0001")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}
