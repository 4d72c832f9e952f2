package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/garage-platform/garage-api/internal/domain"
)

// PurchaseOrderRepository implements domain.PurchaseOrderRepository
type PurchaseOrderRepository struct {
	collection *mongo.Collection
}

// NewPurchaseOrderRepository creates a new PurchaseOrderRepository
func NewPurchaseOrderRepository(db *mongo.Database) *PurchaseOrderRepository {
	collection := db.Collection("purchase_orders")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "purchaseOrderId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
		{
			Keys: bson.D{{Key: "supplierId", Value: 1}},
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)

	return &PurchaseOrderRepository{collection: collection}
}

// Save persists a purchase order
func (r *PurchaseOrderRepository) Save(ctx context.Context, order *domain.PurchaseOrder) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"purchaseOrderId": order.PurchaseOrderID}
	update := bson.M{"$set": order}

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// FindByID retrieves a purchase order by ID
func (r *PurchaseOrderRepository) FindByID(ctx context.Context, purchaseOrderID string) (*domain.PurchaseOrder, error) {
	var order domain.PurchaseOrder
	err := r.collection.FindOne(ctx, bson.M{"purchaseOrderId": purchaseOrderID}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// FindByStatus retrieves purchase orders in a given status
func (r *PurchaseOrderRepository) FindByStatus(ctx context.Context, status domain.PurchaseOrderStatus, pagination domain.Pagination) ([]*domain.PurchaseOrder, error) {
	return r.find(ctx, bson.M{"status": status}, pagination)
}

// FindBySupplier retrieves purchase orders placed with a supplier
func (r *PurchaseOrderRepository) FindBySupplier(ctx context.Context, supplierID string, pagination domain.Pagination) ([]*domain.PurchaseOrder, error) {
	return r.find(ctx, bson.M{"supplierId": supplierID}, pagination)
}

// List retrieves purchase orders with pagination
func (r *PurchaseOrderRepository) List(ctx context.Context, pagination domain.Pagination) ([]*domain.PurchaseOrder, error) {
	return r.find(ctx, bson.M{}, pagination)
}

// Count returns the number of purchase orders
func (r *PurchaseOrderRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *PurchaseOrderRepository) find(ctx context.Context, filter bson.M, pagination domain.Pagination) ([]*domain.PurchaseOrder, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(pagination.Skip()).
		SetLimit(pagination.Limit())

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []*domain.PurchaseOrder
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// JobCardRepository implements domain.JobCardRepository
type JobCardRepository struct {
	collection *mongo.Collection
}

// NewJobCardRepository creates a new JobCardRepository
func NewJobCardRepository(db *mongo.Database) *JobCardRepository {
	collection := db.Collection("job_cards")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "jobCardId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
		{
			Keys: bson.D{{Key: "customerId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "vehicleId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "completedAt", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "deliveredAt", Value: 1}},
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)

	return &JobCardRepository{collection: collection}
}

// Save persists a job card
func (r *JobCardRepository) Save(ctx context.Context, jobCard *domain.JobCard) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"jobCardId": jobCard.JobCardID}
	update := bson.M{"$set": jobCard}

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// FindByID retrieves a job card by ID
func (r *JobCardRepository) FindByID(ctx context.Context, jobCardID string) (*domain.JobCard, error) {
	var jobCard domain.JobCard
	err := r.collection.FindOne(ctx, bson.M{"jobCardId": jobCardID}).Decode(&jobCard)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &jobCard, nil
}

// FindByStatus retrieves job cards in a given status
func (r *JobCardRepository) FindByStatus(ctx context.Context, status domain.JobCardStatus, pagination domain.Pagination) ([]*domain.JobCard, error) {
	return r.find(ctx, bson.M{"status": status}, pagination)
}

// FindByCustomer retrieves job cards for a customer
func (r *JobCardRepository) FindByCustomer(ctx context.Context, customerID string, pagination domain.Pagination) ([]*domain.JobCard, error) {
	return r.find(ctx, bson.M{"customerId": customerID}, pagination)
}

// FindByVehicle retrieves the service history of a vehicle
func (r *JobCardRepository) FindByVehicle(ctx context.Context, vehicleID string) ([]*domain.JobCard, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"vehicleId": vehicleID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var jobCards []*domain.JobCard
	if err := cursor.All(ctx, &jobCards); err != nil {
		return nil, err
	}
	return jobCards, nil
}

// List retrieves job cards with pagination
func (r *JobCardRepository) List(ctx context.Context, pagination domain.Pagination) ([]*domain.JobCard, error) {
	return r.find(ctx, bson.M{}, pagination)
}

// Delete removes a job card
func (r *JobCardRepository) Delete(ctx context.Context, jobCardID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"jobCardId": jobCardID})
	return err
}

// Count returns the number of job cards
func (r *JobCardRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// CountCreatedBetween counts job cards opened in [from, to)
func (r *JobCardRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"createdAt": bson.M{"$gte": from, "$lt": to},
	})
}

// CountCompletedBetween counts job cards completed in [from, to)
func (r *JobCardRepository) CountCompletedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"completedAt": bson.M{"$gte": from, "$lt": to},
	})
}

// CountDeliveredBetween counts job cards delivered in [from, to)
func (r *JobCardRepository) CountDeliveredBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"deliveredAt": bson.M{"$gte": from, "$lt": to},
	})
}

func (r *JobCardRepository) find(ctx context.Context, filter bson.M, pagination domain.Pagination) ([]*domain.JobCard, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(pagination.Skip()).
		SetLimit(pagination.Limit())

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var jobCards []*domain.JobCard
	if err := cursor.All(ctx, &jobCards); err != nil {
		return nil, err
	}
	return jobCards, nil
}

// BillRepository implements domain.BillRepository
type BillRepository struct {
	collection *mongo.Collection
}

// NewBillRepository creates a new BillRepository
func NewBillRepository(db *mongo.Database) *BillRepository {
	collection := db.Collection("bills")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "billId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "jobCardId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "paymentStatus", Value: 1},
				{Key: "billDate", Value: -1},
			},
		},
		{
			Keys: bson.D{{Key: "customerId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "paidAt", Value: 1}},
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)

	return &BillRepository{collection: collection}
}

// Save persists a bill
func (r *BillRepository) Save(ctx context.Context, bill *domain.Bill) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"billId": bill.BillID}
	update := bson.M{"$set": bill}

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// FindByID retrieves a bill by ID
func (r *BillRepository) FindByID(ctx context.Context, billID string) (*domain.Bill, error) {
	return r.findOne(ctx, bson.M{"billId": billID})
}

// FindByJobCard retrieves the bill generated from a job card
func (r *BillRepository) FindByJobCard(ctx context.Context, jobCardID string) (*domain.Bill, error) {
	return r.findOne(ctx, bson.M{"jobCardId": jobCardID})
}

// FindByCustomer retrieves bills for a customer
func (r *BillRepository) FindByCustomer(ctx context.Context, customerID string, pagination domain.Pagination) ([]*domain.Bill, error) {
	return r.find(ctx, bson.M{"customerId": customerID}, pagination)
}

// FindByStatus retrieves bills in a given payment status
func (r *BillRepository) FindByStatus(ctx context.Context, status domain.PaymentStatus, pagination domain.Pagination) ([]*domain.Bill, error) {
	return r.find(ctx, bson.M{"paymentStatus": status}, pagination)
}

// List retrieves bills with pagination
func (r *BillRepository) List(ctx context.Context, pagination domain.Pagination) ([]*domain.Bill, error) {
	return r.find(ctx, bson.M{}, pagination)
}

// Count returns the number of bills
func (r *BillRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// CountIssuedBetween counts bills issued in [from, to)
func (r *BillRepository) CountIssuedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"billDate": bson.M{"$gte": from, "$lt": to},
	})
}

// SumBilledBetween sums the grand totals of bills issued in [from, to)
func (r *BillRepository) SumBilledBetween(ctx context.Context, from, to time.Time) (float64, error) {
	return r.sum(ctx, bson.M{
		"billDate": bson.M{"$gte": from, "$lt": to},
	})
}

// SumPaidBetween sums the grand totals of bills paid in [from, to)
func (r *BillRepository) SumPaidBetween(ctx context.Context, from, to time.Time) (float64, error) {
	return r.sum(ctx, bson.M{
		"paymentStatus": domain.PaymentStatusPaid,
		"paidAt":        bson.M{"$gte": from, "$lt": to},
	})
}

func (r *BillRepository) sum(ctx context.Context, match bson.M) (float64, error) {
	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$totals.totalAmount"},
		}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var row struct {
		Total float64 `bson:"total"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&row); err != nil {
			return 0, err
		}
	}
	return row.Total, cursor.Err()
}

func (r *BillRepository) findOne(ctx context.Context, filter bson.M) (*domain.Bill, error) {
	var bill domain.Bill
	err := r.collection.FindOne(ctx, filter).Decode(&bill)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &bill, nil
}

func (r *BillRepository) find(ctx context.Context, filter bson.M, pagination domain.Pagination) ([]*domain.Bill, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "billDate", Value: -1}}).
		SetSkip(pagination.Skip()).
		SetLimit(pagination.Limit())

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bills []*domain.Bill
	if err := cursor.All(ctx, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// EmployeeRepository implements domain.EmployeeRepository
type EmployeeRepository struct {
	collection *mongo.Collection
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	collection := db.Collection("employees")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "employeeId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "active", Value: 1}},
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)

	return &EmployeeRepository{collection: collection}
}

// Save persists an employee
func (r *EmployeeRepository) Save(ctx context.Context, employee *domain.Employee) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"employeeId": employee.EmployeeID}
	update := bson.M{"$set": employee}

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// FindByID retrieves an employee by ID
func (r *EmployeeRepository) FindByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	var employee domain.Employee
	err := r.collection.FindOne(ctx, bson.M{"employeeId": employeeID}).Decode(&employee)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

// List retrieves employees, optionally restricted to active ones
func (r *EmployeeRepository) List(ctx context.Context, activeOnly bool, pagination domain.Pagination) ([]*domain.Employee, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(pagination.Skip()).
		SetLimit(pagination.Limit())

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var employees []*domain.Employee
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// Delete removes an employee
func (r *EmployeeRepository) Delete(ctx context.Context, employeeID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"employeeId": employeeID})
	return err
}

// Count returns the number of employees
func (r *EmployeeRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	return r.collection.CountDocuments(ctx, filter)
}

// PayrollRepository implements domain.PayrollRepository
type PayrollRepository struct {
	collection *mongo.Collection
}

// NewPayrollRepository creates a new PayrollRepository. The unique
// (employeeId, month) index backs the one-record-per-month rule.
func NewPayrollRepository(db *mongo.Database) *PayrollRepository {
	collection := db.Collection("payroll")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "payrollId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "employeeId", Value: 1},
				{Key: "month", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "month", Value: 1}},
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)

	return &PayrollRepository{collection: collection}
}

// Save persists a payroll record
func (r *PayrollRepository) Save(ctx context.Context, record *domain.PayrollRecord) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"payrollId": record.PayrollID}
	update := bson.M{"$set": record}

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// FindByID retrieves a payroll record by ID
func (r *PayrollRepository) FindByID(ctx context.Context, payrollID string) (*domain.PayrollRecord, error) {
	return r.findOne(ctx, bson.M{"payrollId": payrollID})
}

// FindByEmployee retrieves payroll history for an employee
func (r *PayrollRepository) FindByEmployee(ctx context.Context, employeeID string, pagination domain.Pagination) ([]*domain.PayrollRecord, error) {
	return r.find(ctx, bson.M{"employeeId": employeeID}, pagination)
}

// FindByEmployeeAndMonth retrieves the record for an employee and month
func (r *PayrollRepository) FindByEmployeeAndMonth(ctx context.Context, employeeID, month string) (*domain.PayrollRecord, error) {
	return r.findOne(ctx, bson.M{"employeeId": employeeID, "month": month})
}

// FindByMonth retrieves all payroll records for a month
func (r *PayrollRepository) FindByMonth(ctx context.Context, month string, pagination domain.Pagination) ([]*domain.PayrollRecord, error) {
	return r.find(ctx, bson.M{"month": month}, pagination)
}

func (r *PayrollRepository) findOne(ctx context.Context, filter bson.M) (*domain.PayrollRecord, error) {
	var record domain.PayrollRecord
	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *PayrollRepository) find(ctx context.Context, filter bson.M, pagination domain.Pagination) ([]*domain.PayrollRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "month", Value: -1}}).
		SetSkip(pagination.Skip()).
		SetLimit(pagination.Limit())

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*domain.PayrollRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
