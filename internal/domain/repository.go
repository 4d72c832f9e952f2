package domain

import (
	"context"
	"time"
)

// Pagination represents page-based query options
type Pagination struct {
	Page     int64
	PageSize int64
}

// Skip returns the number of documents to skip
func (p Pagination) Skip() int64 {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Limit returns the maximum number of documents to return
func (p Pagination) Limit() int64 {
	if p.PageSize < 1 {
		return 20
	}
	return p.PageSize
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	Save(ctx context.Context, customer *Customer) error
	FindByID(ctx context.Context, customerID string) (*Customer, error)
	FindByPhone(ctx context.Context, phone string) (*Customer, error)
	Search(ctx context.Context, query string, pagination Pagination) ([]*Customer, error)
	Delete(ctx context.Context, customerID string) error
	Count(ctx context.Context, query string) (int64, error)
}

// VehicleRepository defines the interface for vehicle persistence
type VehicleRepository interface {
	Save(ctx context.Context, vehicle *Vehicle) error
	FindByID(ctx context.Context, vehicleID string) (*Vehicle, error)
	FindByRegistration(ctx context.Context, registrationNo string) (*Vehicle, error)
	FindByCustomer(ctx context.Context, customerID string) ([]*Vehicle, error)
	List(ctx context.Context, pagination Pagination) ([]*Vehicle, error)
	Delete(ctx context.Context, vehicleID string) error
	Count(ctx context.Context) (int64, error)
}

// PartRepository defines the interface for parts inventory persistence.
// IncrementStock must be a single atomic conditionless increment; it is the
// only stock mutation path.
type PartRepository interface {
	Save(ctx context.Context, part *Part) error
	FindByID(ctx context.Context, partID string) (*Part, error)
	FindByPartNumber(ctx context.Context, partNumber string) (*Part, error)
	List(ctx context.Context, search string, pagination Pagination) ([]*Part, error)
	IncrementStock(ctx context.Context, partID string, delta int64) (*Part, error)
	FindLowStock(ctx context.Context) ([]*Part, error)
	Delete(ctx context.Context, partID string) error
	Count(ctx context.Context, search string) (int64, error)
}

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	Save(ctx context.Context, supplier *Supplier) error
	FindByID(ctx context.Context, supplierID string) (*Supplier, error)
	List(ctx context.Context, pagination Pagination) ([]*Supplier, error)
	Delete(ctx context.Context, supplierID string) error
	Count(ctx context.Context) (int64, error)
}

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	Save(ctx context.Context, order *PurchaseOrder) error
	FindByID(ctx context.Context, purchaseOrderID string) (*PurchaseOrder, error)
	FindByStatus(ctx context.Context, status PurchaseOrderStatus, pagination Pagination) ([]*PurchaseOrder, error)
	FindBySupplier(ctx context.Context, supplierID string, pagination Pagination) ([]*PurchaseOrder, error)
	List(ctx context.Context, pagination Pagination) ([]*PurchaseOrder, error)
	Count(ctx context.Context) (int64, error)
}

// JobCardRepository defines the interface for job card persistence
type JobCardRepository interface {
	Save(ctx context.Context, jobCard *JobCard) error
	FindByID(ctx context.Context, jobCardID string) (*JobCard, error)
	FindByStatus(ctx context.Context, status JobCardStatus, pagination Pagination) ([]*JobCard, error)
	FindByCustomer(ctx context.Context, customerID string, pagination Pagination) ([]*JobCard, error)
	FindByVehicle(ctx context.Context, vehicleID string) ([]*JobCard, error)
	List(ctx context.Context, pagination Pagination) ([]*JobCard, error)
	Delete(ctx context.Context, jobCardID string) error
	Count(ctx context.Context) (int64, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountCompletedBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountDeliveredBetween(ctx context.Context, from, to time.Time) (int64, error)
}

// BillRepository defines the interface for bill persistence
type BillRepository interface {
	Save(ctx context.Context, bill *Bill) error
	FindByID(ctx context.Context, billID string) (*Bill, error)
	FindByJobCard(ctx context.Context, jobCardID string) (*Bill, error)
	FindByCustomer(ctx context.Context, customerID string, pagination Pagination) ([]*Bill, error)
	FindByStatus(ctx context.Context, status PaymentStatus, pagination Pagination) ([]*Bill, error)
	List(ctx context.Context, pagination Pagination) ([]*Bill, error)
	Count(ctx context.Context) (int64, error)
	CountIssuedBetween(ctx context.Context, from, to time.Time) (int64, error)
	SumBilledBetween(ctx context.Context, from, to time.Time) (float64, error)
	SumPaidBetween(ctx context.Context, from, to time.Time) (float64, error)
}

// EmployeeRepository defines the interface for employee persistence
type EmployeeRepository interface {
	Save(ctx context.Context, employee *Employee) error
	FindByID(ctx context.Context, employeeID string) (*Employee, error)
	List(ctx context.Context, activeOnly bool, pagination Pagination) ([]*Employee, error)
	Delete(ctx context.Context, employeeID string) error
	Count(ctx context.Context, activeOnly bool) (int64, error)
}

// PayrollRepository defines the interface for payroll persistence. One
// record per (employeeId, month) pair, enforced with a unique index.
type PayrollRepository interface {
	Save(ctx context.Context, record *PayrollRecord) error
	FindByID(ctx context.Context, payrollID string) (*PayrollRecord, error)
	FindByEmployee(ctx context.Context, employeeID string, pagination Pagination) ([]*PayrollRecord, error)
	FindByEmployeeAndMonth(ctx context.Context, employeeID, month string) (*PayrollRecord, error)
	FindByMonth(ctx context.Context, month string, pagination Pagination) ([]*PayrollRecord, error)
}
