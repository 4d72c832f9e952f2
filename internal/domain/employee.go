package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errors for the employee/payroll module
var (
	ErrInvalidEmployeeName = errors.New("invalid employee name: must not be empty")
	ErrNegativeSalary      = errors.New("invalid salary: must not be negative")
	ErrInvalidPayrollMonth = errors.New("invalid payroll month: expected YYYY-MM")
)

// Employee is a garage staff member
type Employee struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID string             `bson:"employeeId" json:"employeeId"`

	Name       string  `bson:"name" json:"name"`
	Phone      string  `bson:"phone,omitempty" json:"phone,omitempty"`
	Email      string  `bson:"email,omitempty" json:"email,omitempty"`
	Role       string  `bson:"role,omitempty" json:"role,omitempty"`
	BaseSalary float64 `bson:"baseSalary" json:"baseSalary"`
	Active     bool    `bson:"active" json:"active"`

	JoinedAt  time.Time `bson:"joinedAt" json:"joinedAt"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewEmployee creates a new active employee
func NewEmployee(name, phone, email, role string, baseSalary float64, joinedAt time.Time) (*Employee, error) {
	if name == "" {
		return nil, ErrInvalidEmployeeName
	}
	if baseSalary < 0 {
		return nil, ErrNegativeSalary
	}
	if joinedAt.IsZero() {
		joinedAt = time.Now().UTC()
	}

	now := time.Now().UTC()
	return &Employee{
		ID:         primitive.NewObjectID(),
		EmployeeID: fmt.Sprintf("EMP-%s", uuid.New().String()[:8]),
		Name:       name,
		Phone:      phone,
		Email:      email,
		Role:       role,
		BaseSalary: baseSalary,
		Active:     true,
		JoinedAt:   joinedAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// PayrollRecord is a monthly salary record for an employee. One record per
// employee per month (unique index). Employee name is a snapshot.
type PayrollRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PayrollID string             `bson:"payrollId" json:"payrollId"`

	EmployeeID   string `bson:"employeeId" json:"employeeId"`
	EmployeeName string `bson:"employeeName" json:"employeeName"` // snapshot

	// Month in YYYY-MM format
	Month string `bson:"month" json:"month"`

	BaseSalary     float64 `bson:"baseSalary" json:"baseSalary"`
	OvertimeAmount float64 `bson:"overtimeAmount" json:"overtimeAmount"`
	Deductions     float64 `bson:"deductions" json:"deductions"`
	NetPay         float64 `bson:"netPay" json:"netPay"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewPayrollRecord creates a payroll record for an employee and month.
// Net pay is base salary plus overtime minus deductions.
func NewPayrollRecord(employee *Employee, month string, overtimeAmount, deductions float64) (*PayrollRecord, error) {
	if employee == nil {
		return nil, ErrInvalidEmployeeName
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPayrollMonth, month)
	}
	if overtimeAmount < 0 || deductions < 0 {
		return nil, ErrNegativeSalary
	}

	net := decimal.NewFromFloat(employee.BaseSalary).
		Add(decimal.NewFromFloat(overtimeAmount)).
		Sub(decimal.NewFromFloat(deductions))
	netPay, _ := net.Round(2).Float64()

	now := time.Now().UTC()
	return &PayrollRecord{
		ID:             primitive.NewObjectID(),
		PayrollID:      fmt.Sprintf("PAY-%s", uuid.New().String()[:8]),
		EmployeeID:     employee.EmployeeID,
		EmployeeName:   employee.Name,
		Month:          month,
		BaseSalary:     employee.BaseSalary,
		OvertimeAmount: overtimeAmount,
		Deductions:     deductions,
		NetPay:         netPay,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}
