package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/garage-platform/garage-api/internal/domain"
	sharedmongo "github.com/garage-platform/garage-api/pkg/mongodb"
)

// CustomerRepository implements domain.CustomerRepository
type CustomerRepository struct {
	collection *mongo.Collection
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	collection := db.Collection("customers")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "customerId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "name", Value: 1}},
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)

	return &CustomerRepository{collection: collection}
}

// Save persists a customer
func (r *CustomerRepository) Save(ctx context.Context, customer *domain.Customer) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"customerId": customer.CustomerID}
	update := bson.M{"$set": customer}

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// FindByID retrieves a customer by ID
func (r *CustomerRepository) FindByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.collection.FindOne(ctx, bson.M{"customerId": customerID}).Decode(&customer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// FindByPhone retrieves a customer by phone number
func (r *CustomerRepository) FindByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.collection.FindOne(ctx, bson.M{"phone": phone}).Decode(&customer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// Search retrieves customers matching a name or phone fragment
func (r *CustomerRepository) Search(ctx context.Context, query string, pagination domain.Pagination) ([]*domain.Customer, error) {
	filter := searchFilter(query)

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(pagination.Skip()).
		SetLimit(pagination.Limit())

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var customers []*domain.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// Delete removes a customer
func (r *CustomerRepository) Delete(ctx context.Context, customerID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"customerId": customerID})
	return err
}

// Count returns the number of customers matching the search query
func (r *CustomerRepository) Count(ctx context.Context, query string) (int64, error) {
	return r.collection.CountDocuments(ctx, searchFilter(query))
}

func searchFilter(query string) bson.M {
	if query == "" {
		return bson.M{}
	}
	regex := bson.M{"$regex": query, "$options": "i"}
	return bson.M{"$or": []bson.M{
		{"name": regex},
		{"phone": regex},
	}}
}

// VehicleRepository implements domain.VehicleRepository
type VehicleRepository struct {
	collection *mongo.Collection
}

// NewVehicleRepository creates a new VehicleRepository
func NewVehicleRepository(db *mongo.Database) *VehicleRepository {
	collection := db.Collection("vehicles")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "vehicleId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "registrationNo", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "customerId", Value: 1}},
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)

	return &VehicleRepository{collection: collection}
}

// Save persists a vehicle
func (r *VehicleRepository) Save(ctx context.Context, vehicle *domain.Vehicle) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"vehicleId": vehicle.VehicleID}
	update := bson.M{"$set": vehicle}

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// FindByID retrieves a vehicle by ID
func (r *VehicleRepository) FindByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"vehicleId": vehicleID}).Decode(&vehicle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &vehicle, nil
}

// FindByRegistration retrieves a vehicle by registration number
func (r *VehicleRepository) FindByRegistration(ctx context.Context, registrationNo string) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"registrationNo": registrationNo}).Decode(&vehicle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &vehicle, nil
}

// FindByCustomer retrieves all vehicles registered to a customer
func (r *VehicleRepository) FindByCustomer(ctx context.Context, customerID string) ([]*domain.Vehicle, error) {
	opts := options.Find().SetSort(bson.D{{Key: "registrationNo", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"customerId": customerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vehicles []*domain.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// List retrieves vehicles with pagination
func (r *VehicleRepository) List(ctx context.Context, pagination domain.Pagination) ([]*domain.Vehicle, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(pagination.Skip()).
		SetLimit(pagination.Limit())

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vehicles []*domain.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// Delete removes a vehicle
func (r *VehicleRepository) Delete(ctx context.Context, vehicleID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"vehicleId": vehicleID})
	return err
}

// Count returns the number of vehicles
func (r *VehicleRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// PartRepository implements domain.PartRepository
type PartRepository struct {
	collection *mongo.Collection
}

// NewPartRepository creates a new PartRepository
func NewPartRepository(db *mongo.Database) *PartRepository {
	collection := db.Collection("parts")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "partId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "partNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "name", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "supplierId", Value: 1}},
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)

	return &PartRepository{collection: collection}
}

// Save persists a part
func (r *PartRepository) Save(ctx context.Context, part *domain.Part) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"partId": part.PartID}
	update := bson.M{"$set": part}

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// FindByID retrieves a part by ID
func (r *PartRepository) FindByID(ctx context.Context, partID string) (*domain.Part, error) {
	var part domain.Part
	err := r.collection.FindOne(ctx, bson.M{"partId": partID}).Decode(&part)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &part, nil
}

// FindByPartNumber retrieves a part by its unique part number
func (r *PartRepository) FindByPartNumber(ctx context.Context, partNumber string) (*domain.Part, error) {
	var part domain.Part
	err := r.collection.FindOne(ctx, bson.M{"partNumber": partNumber}).Decode(&part)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &part, nil
}

// List retrieves parts, optionally filtered by a name or number fragment
func (r *PartRepository) List(ctx context.Context, search string, pagination domain.Pagination) ([]*domain.Part, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(pagination.Skip()).
		SetLimit(pagination.Limit())

	cursor, err := r.collection.Find(ctx, partSearchFilter(search), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var parts []*domain.Part
	if err := cursor.All(ctx, &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// IncrementStock applies a signed stock delta atomically and returns the
// updated part. Stock validation happens in the application layer before
// movements are issued; the increment itself is unconditional.
func (r *PartRepository) IncrementStock(ctx context.Context, partID string, delta int64) (*domain.Part, error) {
	filter := bson.M{"partId": partID}
	update := sharedmongo.BuildIncrementUpdate("stockQuantity", delta)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var part domain.Part
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&part)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &part, nil
}

// FindLowStock retrieves parts at or below their reorder level
func (r *PartRepository) FindLowStock(ctx context.Context) ([]*domain.Part, error) {
	filter := bson.M{
		"$expr": bson.M{"$lte": bson.A{"$stockQuantity", "$minStockLevel"}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "stockQuantity", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var parts []*domain.Part
	if err := cursor.All(ctx, &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// Delete removes a part
func (r *PartRepository) Delete(ctx context.Context, partID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"partId": partID})
	return err
}

// Count returns the number of parts matching the search
func (r *PartRepository) Count(ctx context.Context, search string) (int64, error) {
	return r.collection.CountDocuments(ctx, partSearchFilter(search))
}

func partSearchFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}
	regex := bson.M{"$regex": search, "$options": "i"}
	return bson.M{"$or": []bson.M{
		{"name": regex},
		{"partNumber": regex},
		{"category": regex},
	}}
}

// SupplierRepository implements domain.SupplierRepository
type SupplierRepository struct {
	collection *mongo.Collection
}

// NewSupplierRepository creates a new SupplierRepository
func NewSupplierRepository(db *mongo.Database) *SupplierRepository {
	collection := db.Collection("suppliers")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "supplierId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "name", Value: 1}},
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)

	return &SupplierRepository{collection: collection}
}

// Save persists a supplier
func (r *SupplierRepository) Save(ctx context.Context, supplier *domain.Supplier) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"supplierId": supplier.SupplierID}
	update := bson.M{"$set": supplier}

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// FindByID retrieves a supplier by ID
func (r *SupplierRepository) FindByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	var supplier domain.Supplier
	err := r.collection.FindOne(ctx, bson.M{"supplierId": supplierID}).Decode(&supplier)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &supplier, nil
}

// List retrieves suppliers with pagination
func (r *SupplierRepository) List(ctx context.Context, pagination domain.Pagination) ([]*domain.Supplier, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(pagination.Skip()).
		SetLimit(pagination.Limit())

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var suppliers []*domain.Supplier
	if err := cursor.All(ctx, &suppliers); err != nil {
		return nil, err
	}
	return suppliers, nil
}

// Delete removes a supplier
func (r *SupplierRepository) Delete(ctx context.Context, supplierID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"supplierId": supplierID})
	return err
}

// Count returns the number of suppliers
func (r *SupplierRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
