package application

import (
	"context"
	"io"
	"time"

	"github.com/garage-platform/garage-api/internal/domain"
	"github.com/garage-platform/garage-api/pkg/logging"
)

func testLogger() *logging.Logger {
	cfg := logging.DefaultConfig("garage-test")
	cfg.Output = io.Discard
	return logging.New(cfg)
}

type fakeCustomerRepo struct {
	saveFn        func(context.Context, *domain.Customer) error
	findByIDFn    func(context.Context, string) (*domain.Customer, error)
	findByPhoneFn func(context.Context, string) (*domain.Customer, error)
	searchFn      func(context.Context, string, domain.Pagination) ([]*domain.Customer, error)
	deleteFn      func(context.Context, string) error
}

func (f *fakeCustomerRepo) Save(ctx context.Context, c *domain.Customer) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, c)
	}
	return nil
}

func (f *fakeCustomerRepo) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeCustomerRepo) FindByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	if f.findByPhoneFn != nil {
		return f.findByPhoneFn(ctx, phone)
	}
	return nil, nil
}

func (f *fakeCustomerRepo) Search(ctx context.Context, query string, p domain.Pagination) ([]*domain.Customer, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, query, p)
	}
	return nil, nil
}

func (f *fakeCustomerRepo) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeCustomerRepo) Count(ctx context.Context, query string) (int64, error) {
	return 0, nil
}

type fakeVehicleRepo struct {
	saveFn               func(context.Context, *domain.Vehicle) error
	findByIDFn           func(context.Context, string) (*domain.Vehicle, error)
	findByRegistrationFn func(context.Context, string) (*domain.Vehicle, error)
	findByCustomerFn     func(context.Context, string) ([]*domain.Vehicle, error)
}

func (f *fakeVehicleRepo) Save(ctx context.Context, v *domain.Vehicle) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, v)
	}
	return nil
}

func (f *fakeVehicleRepo) FindByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeVehicleRepo) FindByRegistration(ctx context.Context, reg string) (*domain.Vehicle, error) {
	if f.findByRegistrationFn != nil {
		return f.findByRegistrationFn(ctx, reg)
	}
	return nil, nil
}

func (f *fakeVehicleRepo) FindByCustomer(ctx context.Context, customerID string) ([]*domain.Vehicle, error) {
	if f.findByCustomerFn != nil {
		return f.findByCustomerFn(ctx, customerID)
	}
	return nil, nil
}

func (f *fakeVehicleRepo) List(ctx context.Context, p domain.Pagination) ([]*domain.Vehicle, error) {
	return nil, nil
}

func (f *fakeVehicleRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeVehicleRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

// fakePartRepo keeps an in-memory parts map so stock movements are
// observable across calls
type fakePartRepo struct {
	parts            map[string]*domain.Part
	incrementCalls   []stockCall
	failIncrementFor string
	findByNumberFn   func(context.Context, string) (*domain.Part, error)
	findLowStockFn   func(context.Context) ([]*domain.Part, error)
}

type stockCall struct {
	PartID string
	Delta  int64
}

func newFakePartRepo(parts ...*domain.Part) *fakePartRepo {
	repo := &fakePartRepo{parts: make(map[string]*domain.Part)}
	for _, p := range parts {
		repo.parts[p.PartID] = p
	}
	return repo
}

func (f *fakePartRepo) Save(ctx context.Context, p *domain.Part) error {
	f.parts[p.PartID] = p
	return nil
}

func (f *fakePartRepo) FindByID(ctx context.Context, id string) (*domain.Part, error) {
	return f.parts[id], nil
}

func (f *fakePartRepo) FindByPartNumber(ctx context.Context, number string) (*domain.Part, error) {
	if f.findByNumberFn != nil {
		return f.findByNumberFn(ctx, number)
	}
	for _, p := range f.parts {
		if p.PartNumber == number {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePartRepo) List(ctx context.Context, search string, p domain.Pagination) ([]*domain.Part, error) {
	out := make([]*domain.Part, 0, len(f.parts))
	for _, part := range f.parts {
		out = append(out, part)
	}
	return out, nil
}

func (f *fakePartRepo) IncrementStock(ctx context.Context, partID string, delta int64) (*domain.Part, error) {
	if f.failIncrementFor == partID {
		return nil, context.DeadlineExceeded
	}
	part, ok := f.parts[partID]
	if !ok {
		return nil, nil
	}
	part.StockQuantity += delta
	f.incrementCalls = append(f.incrementCalls, stockCall{PartID: partID, Delta: delta})
	return part, nil
}

func (f *fakePartRepo) FindLowStock(ctx context.Context) ([]*domain.Part, error) {
	if f.findLowStockFn != nil {
		return f.findLowStockFn(ctx)
	}
	var out []*domain.Part
	for _, p := range f.parts {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePartRepo) Delete(ctx context.Context, id string) error {
	delete(f.parts, id)
	return nil
}

func (f *fakePartRepo) Count(ctx context.Context, search string) (int64, error) {
	return int64(len(f.parts)), nil
}

type fakeSupplierRepo struct {
	findByIDFn func(context.Context, string) (*domain.Supplier, error)
	saveFn     func(context.Context, *domain.Supplier) error
}

func (f *fakeSupplierRepo) Save(ctx context.Context, s *domain.Supplier) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, s)
	}
	return nil
}

func (f *fakeSupplierRepo) FindByID(ctx context.Context, id string) (*domain.Supplier, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeSupplierRepo) List(ctx context.Context, p domain.Pagination) ([]*domain.Supplier, error) {
	return nil, nil
}

func (f *fakeSupplierRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeSupplierRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

type fakePurchaseOrderRepo struct {
	saveFn     func(context.Context, *domain.PurchaseOrder) error
	findByIDFn func(context.Context, string) (*domain.PurchaseOrder, error)
}

func (f *fakePurchaseOrderRepo) Save(ctx context.Context, po *domain.PurchaseOrder) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, po)
	}
	return nil
}

func (f *fakePurchaseOrderRepo) FindByID(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakePurchaseOrderRepo) FindByStatus(ctx context.Context, status domain.PurchaseOrderStatus, p domain.Pagination) ([]*domain.PurchaseOrder, error) {
	return nil, nil
}

func (f *fakePurchaseOrderRepo) FindBySupplier(ctx context.Context, supplierID string, p domain.Pagination) ([]*domain.PurchaseOrder, error) {
	return nil, nil
}

func (f *fakePurchaseOrderRepo) List(ctx context.Context, p domain.Pagination) ([]*domain.PurchaseOrder, error) {
	return nil, nil
}

func (f *fakePurchaseOrderRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

type fakeJobCardRepo struct {
	saveFn           func(context.Context, *domain.JobCard) error
	findByIDFn       func(context.Context, string) (*domain.JobCard, error)
	deleteFn         func(context.Context, string) error
	countCreatedFn   func(context.Context, time.Time, time.Time) (int64, error)
	countCompletedFn func(context.Context, time.Time, time.Time) (int64, error)
	countDeliveredFn func(context.Context, time.Time, time.Time) (int64, error)
}

func (f *fakeJobCardRepo) Save(ctx context.Context, jc *domain.JobCard) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, jc)
	}
	return nil
}

func (f *fakeJobCardRepo) FindByID(ctx context.Context, id string) (*domain.JobCard, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeJobCardRepo) FindByStatus(ctx context.Context, status domain.JobCardStatus, p domain.Pagination) ([]*domain.JobCard, error) {
	return nil, nil
}

func (f *fakeJobCardRepo) FindByCustomer(ctx context.Context, customerID string, p domain.Pagination) ([]*domain.JobCard, error) {
	return nil, nil
}

func (f *fakeJobCardRepo) FindByVehicle(ctx context.Context, vehicleID string) ([]*domain.JobCard, error) {
	return nil, nil
}

func (f *fakeJobCardRepo) List(ctx context.Context, p domain.Pagination) ([]*domain.JobCard, error) {
	return nil, nil
}

func (f *fakeJobCardRepo) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeJobCardRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

func (f *fakeJobCardRepo) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	if f.countCreatedFn != nil {
		return f.countCreatedFn(ctx, from, to)
	}
	return 0, nil
}

func (f *fakeJobCardRepo) CountCompletedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	if f.countCompletedFn != nil {
		return f.countCompletedFn(ctx, from, to)
	}
	return 0, nil
}

func (f *fakeJobCardRepo) CountDeliveredBetween(ctx context.Context, from, to time.Time) (int64, error) {
	if f.countDeliveredFn != nil {
		return f.countDeliveredFn(ctx, from, to)
	}
	return 0, nil
}

type fakeBillRepo struct {
	saveFn          func(context.Context, *domain.Bill) error
	findByIDFn      func(context.Context, string) (*domain.Bill, error)
	findByJobCardFn func(context.Context, string) (*domain.Bill, error)
	countIssuedFn   func(context.Context, time.Time, time.Time) (int64, error)
	sumBilledFn     func(context.Context, time.Time, time.Time) (float64, error)
	sumPaidFn       func(context.Context, time.Time, time.Time) (float64, error)
}

func (f *fakeBillRepo) Save(ctx context.Context, b *domain.Bill) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, b)
	}
	return nil
}

func (f *fakeBillRepo) FindByID(ctx context.Context, id string) (*domain.Bill, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeBillRepo) FindByJobCard(ctx context.Context, jobCardID string) (*domain.Bill, error) {
	if f.findByJobCardFn != nil {
		return f.findByJobCardFn(ctx, jobCardID)
	}
	return nil, nil
}

func (f *fakeBillRepo) FindByCustomer(ctx context.Context, customerID string, p domain.Pagination) ([]*domain.Bill, error) {
	return nil, nil
}

func (f *fakeBillRepo) FindByStatus(ctx context.Context, status domain.PaymentStatus, p domain.Pagination) ([]*domain.Bill, error) {
	return nil, nil
}

func (f *fakeBillRepo) List(ctx context.Context, p domain.Pagination) ([]*domain.Bill, error) {
	return nil, nil
}

func (f *fakeBillRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

func (f *fakeBillRepo) CountIssuedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	if f.countIssuedFn != nil {
		return f.countIssuedFn(ctx, from, to)
	}
	return 0, nil
}

func (f *fakeBillRepo) SumBilledBetween(ctx context.Context, from, to time.Time) (float64, error) {
	if f.sumBilledFn != nil {
		return f.sumBilledFn(ctx, from, to)
	}
	return 0, nil
}

func (f *fakeBillRepo) SumPaidBetween(ctx context.Context, from, to time.Time) (float64, error) {
	if f.sumPaidFn != nil {
		return f.sumPaidFn(ctx, from, to)
	}
	return 0, nil
}

type fakeEmployeeRepo struct {
	saveFn     func(context.Context, *domain.Employee) error
	findByIDFn func(context.Context, string) (*domain.Employee, error)
}

func (f *fakeEmployeeRepo) Save(ctx context.Context, e *domain.Employee) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeEmployeeRepo) List(ctx context.Context, activeOnly bool, p domain.Pagination) ([]*domain.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeEmployeeRepo) Count(ctx context.Context, activeOnly bool) (int64, error) {
	return 0, nil
}

type fakePayrollRepo struct {
	saveFn                func(context.Context, *domain.PayrollRecord) error
	findByEmployeeMonthFn func(context.Context, string, string) (*domain.PayrollRecord, error)
}

func (f *fakePayrollRepo) Save(ctx context.Context, r *domain.PayrollRecord) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, r)
	}
	return nil
}

func (f *fakePayrollRepo) FindByID(ctx context.Context, id string) (*domain.PayrollRecord, error) {
	return nil, nil
}

func (f *fakePayrollRepo) FindByEmployee(ctx context.Context, employeeID string, p domain.Pagination) ([]*domain.PayrollRecord, error) {
	return nil, nil
}

func (f *fakePayrollRepo) FindByEmployeeAndMonth(ctx context.Context, employeeID, month string) (*domain.PayrollRecord, error) {
	if f.findByEmployeeMonthFn != nil {
		return f.findByEmployeeMonthFn(ctx, employeeID, month)
	}
	return nil, nil
}

func (f *fakePayrollRepo) FindByMonth(ctx context.Context, month string, p domain.Pagination) ([]*domain.PayrollRecord, error) {
	return nil, nil
}

type fakeReportSender struct {
	sendFn func(context.Context, *domain.DailyReport) error
	sent   []*domain.DailyReport
}

func (f *fakeReportSender) SendDailyReport(ctx context.Context, report *domain.DailyReport) error {
	if f.sendFn != nil {
		return f.sendFn(ctx, report)
	}
	f.sent = append(f.sent, report)
	return nil
}
