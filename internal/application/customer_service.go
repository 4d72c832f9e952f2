package application

import (
	"context"
	"fmt"

	"github.com/garage-platform/garage-api/internal/domain"
	"github.com/garage-platform/garage-api/pkg/errors"
	"github.com/garage-platform/garage-api/pkg/logging"
)

// CustomerService handles customer and vehicle use cases
type CustomerService struct {
	customerRepo domain.CustomerRepository
	vehicleRepo  domain.VehicleRepository
	logger       *logging.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customerRepo domain.CustomerRepository,
	vehicleRepo domain.VehicleRepository,
	logger *logging.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
		logger:       logger,
	}
}

// CreateCustomer registers a customer. Phone numbers are unique.
func (s *CustomerService) CreateCustomer(ctx context.Context, cmd CreateCustomerCommand) (*CustomerDTO, error) {
	existing, err := s.customerRepo.FindByPhone(ctx, cmd.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing customer: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrConflict(fmt.Sprintf("customer with phone %s already exists", cmd.Phone))
	}

	customer, err := domain.NewCustomer(cmd.Name, cmd.Phone, cmd.Email, cmd.Address)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		s.logger.WithError(err).Error("Failed to save customer", "customerId", customer.CustomerID)
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	s.logger.Info("Customer registered", "customerId", customer.CustomerID, "phone", customer.Phone)
	return ToCustomerDTO(customer), nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, customerID string) (*CustomerDTO, error) {
	customer, err := s.loadCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return ToCustomerDTO(customer), nil
}

// UpdateCustomer updates a customer's details. Existing job cards and bills
// retain the snapshots taken when they were created.
func (s *CustomerService) UpdateCustomer(ctx context.Context, cmd UpdateCustomerCommand) (*CustomerDTO, error) {
	customer, err := s.loadCustomer(ctx, cmd.CustomerID)
	if err != nil {
		return nil, err
	}

	if cmd.Phone != "" && cmd.Phone != customer.Phone {
		other, err := s.customerRepo.FindByPhone(ctx, cmd.Phone)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing customer: %w", err)
		}
		if other != nil {
			return nil, errors.ErrConflict(fmt.Sprintf("customer with phone %s already exists", cmd.Phone))
		}
		customer.Phone = cmd.Phone
	}
	if cmd.Name != "" {
		customer.Name = cmd.Name
	}
	if cmd.Email != "" {
		customer.Email = cmd.Email
	}
	if cmd.Address != "" {
		customer.Address = cmd.Address
	}
	customer.UpdatedAt = nowUTC()

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}
	return ToCustomerDTO(customer), nil
}

// SearchCustomersQuery filters and paginates customer listings
type SearchCustomersQuery struct {
	Query    string
	Page     int64
	PageSize int64
}

// SearchCustomers lists customers matching a name or phone fragment
func (s *CustomerService) SearchCustomers(ctx context.Context, query SearchCustomersQuery) (*ListResponse[CustomerDTO], error) {
	pagination := domain.Pagination{Page: query.Page, PageSize: query.PageSize}

	customers, err := s.customerRepo.Search(ctx, query.Query, pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}
	total, err := s.customerRepo.Count(ctx, query.Query)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	dtos := make([]CustomerDTO, len(customers))
	for i, c := range customers {
		dtos[i] = *ToCustomerDTO(c)
	}

	return &ListResponse[CustomerDTO]{
		Data:     dtos,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
		Total:    total,
	}, nil
}

// DeleteCustomer removes a customer. Customers with registered vehicles
// cannot be deleted.
func (s *CustomerService) DeleteCustomer(ctx context.Context, customerID string) error {
	if _, err := s.loadCustomer(ctx, customerID); err != nil {
		return err
	}

	vehicles, err := s.vehicleRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return fmt.Errorf("failed to check customer vehicles: %w", err)
	}
	if len(vehicles) > 0 {
		return errors.ErrConflict("customer has registered vehicles")
	}

	if err := s.customerRepo.Delete(ctx, customerID); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.logger.Info("Customer deleted", "customerId", customerID)
	return nil
}

// CreateVehicle registers a vehicle for an existing customer. Registration
// numbers are unique.
func (s *CustomerService) CreateVehicle(ctx context.Context, cmd CreateVehicleCommand) (*VehicleDTO, error) {
	if _, err := s.loadCustomer(ctx, cmd.CustomerID); err != nil {
		return nil, err
	}

	existing, err := s.vehicleRepo.FindByRegistration(ctx, cmd.RegistrationNo)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing vehicle: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrConflict(fmt.Sprintf("vehicle %s already exists", cmd.RegistrationNo))
	}

	vehicle, err := domain.NewVehicle(cmd.CustomerID, cmd.RegistrationNo, cmd.Make, cmd.Model, cmd.Year, cmd.FuelType, cmd.Color)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.vehicleRepo.Save(ctx, vehicle); err != nil {
		s.logger.WithError(err).Error("Failed to save vehicle", "vehicleId", vehicle.VehicleID)
		return nil, fmt.Errorf("failed to save vehicle: %w", err)
	}

	s.logger.Info("Vehicle registered",
		"vehicleId", vehicle.VehicleID,
		"customerId", vehicle.CustomerID,
		"registrationNo", vehicle.RegistrationNo,
	)
	return ToVehicleDTO(vehicle), nil
}

// GetVehicle retrieves a vehicle by ID
func (s *CustomerService) GetVehicle(ctx context.Context, vehicleID string) (*VehicleDTO, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, errors.ErrNotFoundWithID("vehicle", vehicleID)
	}
	return ToVehicleDTO(vehicle), nil
}

// ListCustomerVehicles lists all vehicles registered to a customer
func (s *CustomerService) ListCustomerVehicles(ctx context.Context, customerID string) ([]VehicleDTO, error) {
	if _, err := s.loadCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	vehicles, err := s.vehicleRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	dtos := make([]VehicleDTO, len(vehicles))
	for i, v := range vehicles {
		dtos[i] = *ToVehicleDTO(v)
	}
	return dtos, nil
}

// DeleteVehicle removes a vehicle
func (s *CustomerService) DeleteVehicle(ctx context.Context, vehicleID string) error {
	vehicle, err := s.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		return fmt.Errorf("failed to get vehicle: %w", err)
	}
	if vehicle == nil {
		return errors.ErrNotFoundWithID("vehicle", vehicleID)
	}

	if err := s.vehicleRepo.Delete(ctx, vehicleID); err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	s.logger.Info("Vehicle deleted", "vehicleId", vehicleID)
	return nil
}

func (s *CustomerService) loadCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		return nil, errors.ErrNotFoundWithID("customer", customerID)
	}
	return customer, nil
}
