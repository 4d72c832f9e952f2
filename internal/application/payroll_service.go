package application

import (
	"context"
	"fmt"

	"github.com/garage-platform/garage-api/internal/domain"
	"github.com/garage-platform/garage-api/pkg/errors"
	"github.com/garage-platform/garage-api/pkg/logging"
)

// PayrollService handles employee records and monthly payroll
type PayrollService struct {
	employeeRepo domain.EmployeeRepository
	payrollRepo  domain.PayrollRepository
	logger       *logging.Logger
}

// NewPayrollService creates a new PayrollService
func NewPayrollService(
	employeeRepo domain.EmployeeRepository,
	payrollRepo domain.PayrollRepository,
	logger *logging.Logger,
) *PayrollService {
	return &PayrollService{
		employeeRepo: employeeRepo,
		payrollRepo:  payrollRepo,
		logger:       logger,
	}
}

// CreateEmployee adds a staff member
func (s *PayrollService) CreateEmployee(ctx context.Context, cmd CreateEmployeeCommand) (*EmployeeDTO, error) {
	employee, err := domain.NewEmployee(cmd.Name, cmd.Phone, cmd.Email, cmd.Role, cmd.BaseSalary, cmd.JoinedAt)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		s.logger.WithError(err).Error("Failed to save employee", "employeeId", employee.EmployeeID)
		return nil, fmt.Errorf("failed to save employee: %w", err)
	}

	s.logger.Info("Employee added", "employeeId", employee.EmployeeID, "role", employee.Role)
	return ToEmployeeDTO(employee), nil
}

// GetEmployee retrieves an employee by ID
func (s *PayrollService) GetEmployee(ctx context.Context, employeeID string) (*EmployeeDTO, error) {
	employee, err := s.loadEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return ToEmployeeDTO(employee), nil
}

// ListEmployees lists staff, optionally restricted to active ones
func (s *PayrollService) ListEmployees(ctx context.Context, activeOnly bool, page, pageSize int64) (*ListResponse[EmployeeDTO], error) {
	pagination := domain.Pagination{Page: page, PageSize: pageSize}

	employees, err := s.employeeRepo.List(ctx, activeOnly, pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	total, err := s.employeeRepo.Count(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = *ToEmployeeDTO(e)
	}

	return &ListResponse[EmployeeDTO]{
		Data:     dtos,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
		Total:    total,
	}, nil
}

// DeactivateEmployee marks an employee as no longer active. Payroll history
// is kept.
func (s *PayrollService) DeactivateEmployee(ctx context.Context, employeeID string) (*EmployeeDTO, error) {
	employee, err := s.loadEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	employee.Active = false
	employee.UpdatedAt = nowUTC()

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to save employee: %w", err)
	}

	s.logger.Info("Employee deactivated", "employeeId", employeeID)
	return ToEmployeeDTO(employee), nil
}

// GeneratePayroll creates the payroll record for an employee and month.
// At most one record per employee per month.
func (s *PayrollService) GeneratePayroll(ctx context.Context, cmd GeneratePayrollCommand) (*PayrollDTO, error) {
	employee, err := s.loadEmployee(ctx, cmd.EmployeeID)
	if err != nil {
		return nil, err
	}

	existing, err := s.payrollRepo.FindByEmployeeAndMonth(ctx, cmd.EmployeeID, cmd.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing payroll: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrConflict(fmt.Sprintf("payroll for %s already exists for %s", cmd.EmployeeID, cmd.Month))
	}

	record, err := domain.NewPayrollRecord(employee, cmd.Month, cmd.OvertimeAmount, cmd.Deductions)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.payrollRepo.Save(ctx, record); err != nil {
		s.logger.WithError(err).Error("Failed to save payroll record", "payrollId", record.PayrollID)
		return nil, fmt.Errorf("failed to save payroll record: %w", err)
	}

	s.logger.Info("Payroll generated",
		"payrollId", record.PayrollID,
		"employeeId", record.EmployeeID,
		"month", record.Month,
		"netPay", record.NetPay,
	)
	return ToPayrollDTO(record), nil
}

// ListPayrollQuery filters payroll listings by employee or month
type ListPayrollQuery struct {
	EmployeeID string
	Month      string
	Page       int64
	PageSize   int64
}

// ListPayroll lists payroll records for an employee or a month
func (s *PayrollService) ListPayroll(ctx context.Context, query ListPayrollQuery) (*ListResponse[PayrollDTO], error) {
	pagination := domain.Pagination{Page: query.Page, PageSize: query.PageSize}

	var (
		records []*domain.PayrollRecord
		err     error
	)
	switch {
	case query.EmployeeID != "":
		records, err = s.payrollRepo.FindByEmployee(ctx, query.EmployeeID, pagination)
	case query.Month != "":
		records, err = s.payrollRepo.FindByMonth(ctx, query.Month, pagination)
	default:
		return nil, errors.ErrValidation("either employeeId or month is required")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}

	dtos := make([]PayrollDTO, len(records))
	for i, r := range records {
		dtos[i] = *ToPayrollDTO(r)
	}

	return &ListResponse[PayrollDTO]{
		Data:     dtos,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}

func (s *PayrollService) loadEmployee(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	if employee == nil {
		return nil, errors.ErrNotFoundWithID("employee", employeeID)
	}
	return employee, nil
}
