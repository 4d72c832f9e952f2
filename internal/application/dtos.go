package application

import (
	"time"

	"github.com/garage-platform/garage-api/internal/domain"
)

// Commands

// CreateCustomerCommand represents command to register a customer
type CreateCustomerCommand struct {
	Name    string `json:"name" binding:"required,safe_string"`
	Phone   string `json:"phone" binding:"required,phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address" binding:"omitempty,safe_string"`
}

// UpdateCustomerCommand represents command to update customer details
type UpdateCustomerCommand struct {
	CustomerID string `json:"-"`
	Name       string `json:"name" binding:"omitempty,safe_string"`
	Phone      string `json:"phone" binding:"omitempty,phone"`
	Email      string `json:"email" binding:"omitempty,email"`
	Address    string `json:"address" binding:"omitempty,safe_string"`
}

// CreateVehicleCommand represents command to register a vehicle
type CreateVehicleCommand struct {
	CustomerID     string `json:"customerId" binding:"required"`
	RegistrationNo string `json:"registrationNo" binding:"required,registration_no"`
	Make           string `json:"make" binding:"omitempty,safe_string"`
	Model          string `json:"model" binding:"omitempty,safe_string"`
	Year           int    `json:"year" binding:"omitempty,gte=1950,lte=2100"`
	FuelType       string `json:"fuelType" binding:"omitempty,oneof=petrol diesel cng electric hybrid"`
	Color          string `json:"color" binding:"omitempty,safe_string"`
}

// CreatePartCommand represents command to add an inventory part
type CreatePartCommand struct {
	Name          string  `json:"name" binding:"required,safe_string"`
	PartNumber    string  `json:"partNumber" binding:"required,part_number"`
	Description   string  `json:"description" binding:"omitempty,safe_string"`
	Category      string  `json:"category" binding:"omitempty,safe_string"`
	CostPrice     float64 `json:"costPrice" binding:"gte=0"`
	SellingPrice  float64 `json:"sellingPrice" binding:"gte=0"`
	StockQuantity int64   `json:"stockQuantity" binding:"gte=0"`
	MinStockLevel int64   `json:"minStockLevel" binding:"gte=0"`
	SupplierID    string  `json:"supplierId"`
}

// UpdatePartCommand represents command to update part details. Stock is
// deliberately absent: stock moves only through adjustments, receiving and
// job card reconciliation.
type UpdatePartCommand struct {
	PartID        string   `json:"-"`
	Name          string   `json:"name" binding:"omitempty,safe_string"`
	Description   *string  `json:"description,omitempty"`
	Category      *string  `json:"category,omitempty"`
	CostPrice     *float64 `json:"costPrice,omitempty" binding:"omitempty,gte=0"`
	SellingPrice  *float64 `json:"sellingPrice,omitempty" binding:"omitempty,gte=0"`
	MinStockLevel *int64   `json:"minStockLevel,omitempty" binding:"omitempty,gte=0"`
	SupplierID    *string  `json:"supplierId,omitempty"`
}

// AdjustStockCommand represents a manual stock correction
type AdjustStockCommand struct {
	PartID string `json:"-"`
	Delta  int64  `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"omitempty,safe_string"`
}

// CreateSupplierCommand represents command to register a supplier
type CreateSupplierCommand struct {
	Name          string `json:"name" binding:"required,safe_string"`
	ContactPerson string `json:"contactPerson" binding:"omitempty,safe_string"`
	Phone         string `json:"phone" binding:"omitempty,phone"`
	Email         string `json:"email" binding:"omitempty,email"`
	Address       string `json:"address" binding:"omitempty,safe_string"`
	GSTIN         string `json:"gstin" binding:"omitempty,gstin"`
}

// PurchaseOrderItemCommand is one line of a purchase order request
type PurchaseOrderItemCommand struct {
	PartID   string  `json:"partId" binding:"required"`
	Quantity int64   `json:"quantity" binding:"required,gt=0"`
	UnitCost float64 `json:"unitCost" binding:"gte=0"`
}

// CreatePurchaseOrderCommand represents command to draft a purchase order
type CreatePurchaseOrderCommand struct {
	SupplierID string                     `json:"supplierId" binding:"required"`
	Items      []PurchaseOrderItemCommand `json:"items" binding:"required,min=1,dive"`
	Notes      string                     `json:"notes" binding:"omitempty,safe_string"`
}

// IncomingPartCommand is one line of a job card parts request
type IncomingPartCommand struct {
	PartID     string   `json:"partId" binding:"required"`
	Quantity   int64    `json:"quantity" binding:"required,gt=0"`
	UnitPrice  *float64 `json:"unitPrice,omitempty" binding:"omitempty,gte=0"`
	PartName   string   `json:"partName" binding:"omitempty,safe_string"`
	PartNumber string   `json:"partNumber" binding:"omitempty,part_number"`
}

// CreateJobCardCommand represents command to open a job card
type CreateJobCardCommand struct {
	CustomerID  string                `json:"customerId" binding:"required"`
	VehicleID   string                `json:"vehicleId" binding:"required"`
	ServiceType string                `json:"serviceType" binding:"required,safe_string"`
	Complaint   string                `json:"complaint" binding:"omitempty,safe_string"`
	Odometer    int64                 `json:"odometer" binding:"gte=0"`
	Parts       []IncomingPartCommand `json:"parts" binding:"omitempty,dive"`
}

// ReconcilePartsCommand represents command to reconcile a job card's parts
// list against an incoming list
type ReconcilePartsCommand struct {
	JobCardID string                `json:"-"`
	Mode      string                `json:"mode" binding:"omitempty,recon_mode"`
	Parts     []IncomingPartCommand `json:"parts" binding:"dive"`
}

// AddLaborCommand represents command to add a labor line to a job card
type AddLaborCommand struct {
	JobCardID   string  `json:"-"`
	Description string  `json:"description" binding:"required,safe_string"`
	Hours       float64 `json:"hours" binding:"gte=0"`
	Rate        float64 `json:"rate" binding:"gte=0"`
}

// ApplyDiscountCommand represents command to set an absolute discount
type ApplyDiscountCommand struct {
	JobCardID string  `json:"-"`
	Discount  float64 `json:"discount" binding:"gte=0"`
}

// GenerateBillCommand represents command to generate a bill from a job card
type GenerateBillCommand struct {
	JobCardID string  `json:"jobCardId" binding:"required"`
	Discount  float64 `json:"discount" binding:"gte=0"`
}

// MarkBillPaidCommand represents command to settle a bill
type MarkBillPaidCommand struct {
	BillID        string `json:"-"`
	PaymentMethod string `json:"paymentMethod" binding:"required,oneof=cash card upi bank_transfer"`
}

// CreateEmployeeCommand represents command to add a staff member
type CreateEmployeeCommand struct {
	Name       string    `json:"name" binding:"required,safe_string"`
	Phone      string    `json:"phone" binding:"omitempty,phone"`
	Email      string    `json:"email" binding:"omitempty,email"`
	Role       string    `json:"role" binding:"omitempty,safe_string"`
	BaseSalary float64   `json:"baseSalary" binding:"gte=0"`
	JoinedAt   time.Time `json:"joinedAt"`
}

// GeneratePayrollCommand represents command to create a monthly payroll record
type GeneratePayrollCommand struct {
	EmployeeID     string  `json:"employeeId" binding:"required"`
	Month          string  `json:"month" binding:"required"`
	OvertimeAmount float64 `json:"overtimeAmount" binding:"gte=0"`
	Deductions     float64 `json:"deductions" binding:"gte=0"`
}

// LoginCommand represents an authentication request
type LoginCommand struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// DTOs

// CustomerDTO represents a customer response
type CustomerDTO struct {
	CustomerID string    `json:"customerId"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email,omitempty"`
	Address    string    `json:"address,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// VehicleDTO represents a vehicle response
type VehicleDTO struct {
	VehicleID      string    `json:"vehicleId"`
	CustomerID     string    `json:"customerId"`
	RegistrationNo string    `json:"registrationNo"`
	Make           string    `json:"make,omitempty"`
	Model          string    `json:"model,omitempty"`
	Year           int       `json:"year,omitempty"`
	FuelType       string    `json:"fuelType,omitempty"`
	Color          string    `json:"color,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// PartDTO represents an inventory part response
type PartDTO struct {
	PartID        string    `json:"partId"`
	Name          string    `json:"name"`
	PartNumber    string    `json:"partNumber"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category,omitempty"`
	CostPrice     float64   `json:"costPrice"`
	SellingPrice  float64   `json:"sellingPrice"`
	StockQuantity int64     `json:"stockQuantity"`
	MinStockLevel int64     `json:"minStockLevel"`
	LowStock      bool      `json:"lowStock"`
	SupplierID    string    `json:"supplierId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SupplierDTO represents a supplier response
type SupplierDTO struct {
	SupplierID    string    `json:"supplierId"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	GSTIN         string    `json:"gstin,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PurchaseOrderDTO represents a purchase order response
type PurchaseOrderDTO struct {
	PurchaseOrderID string                     `json:"purchaseOrderId"`
	SupplierID      string                     `json:"supplierId"`
	SupplierName    string                     `json:"supplierName"`
	Items           []domain.PurchaseOrderItem `json:"items"`
	TotalAmount     float64                    `json:"totalAmount"`
	Status          string                     `json:"status"`
	OrderedAt       *time.Time                 `json:"orderedAt,omitempty"`
	ReceivedAt      *time.Time                 `json:"receivedAt,omitempty"`
	Notes           string                     `json:"notes,omitempty"`
	CreatedAt       time.Time                  `json:"createdAt"`
	UpdatedAt       time.Time                  `json:"updatedAt"`
}

// JobCardDTO represents a job card response
type JobCardDTO struct {
	JobCardID      string                 `json:"jobCardId"`
	CustomerID     string                 `json:"customerId"`
	CustomerName   string                 `json:"customerName"`
	CustomerPhone  string                 `json:"customerPhone"`
	VehicleID      string                 `json:"vehicleId"`
	RegistrationNo string                 `json:"registrationNo"`
	VehicleMake    string                 `json:"vehicleMake,omitempty"`
	VehicleModel   string                 `json:"vehicleModel,omitempty"`
	ServiceType    string                 `json:"serviceType"`
	Complaint      string                 `json:"complaint,omitempty"`
	Odometer       int64                  `json:"odometer,omitempty"`
	Notes          string                 `json:"notes,omitempty"`
	Status         string                 `json:"status"`
	Parts          []domain.PartReference `json:"parts"`
	Labor          []domain.LaborLine     `json:"labor"`
	Totals         domain.Totals          `json:"totals"`
	CompletedAt    *time.Time             `json:"completedAt,omitempty"`
	DeliveredAt    *time.Time             `json:"deliveredAt,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

// BillDTO represents a bill response
type BillDTO struct {
	BillID         string                 `json:"billId"`
	JobCardID      string                 `json:"jobCardId"`
	CustomerID     string                 `json:"customerId"`
	CustomerName   string                 `json:"customerName"`
	CustomerPhone  string                 `json:"customerPhone"`
	VehicleID      string                 `json:"vehicleId"`
	RegistrationNo string                 `json:"registrationNo"`
	Parts          []domain.PartReference `json:"parts"`
	Labor          []domain.LaborLine     `json:"labor"`
	Totals         domain.Totals          `json:"totals"`
	PaymentStatus  string                 `json:"paymentStatus"`
	PaymentMethod  *string                `json:"paymentMethod,omitempty"`
	PaidAt         *time.Time             `json:"paidAt,omitempty"`
	BillDate       time.Time              `json:"billDate"`
	CreatedAt      time.Time              `json:"createdAt"`
}

// EmployeeDTO represents an employee response
type EmployeeDTO struct {
	EmployeeID string    `json:"employeeId"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	Role       string    `json:"role,omitempty"`
	BaseSalary float64   `json:"baseSalary"`
	Active     bool      `json:"active"`
	JoinedAt   time.Time `json:"joinedAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PayrollDTO represents a payroll record response
type PayrollDTO struct {
	PayrollID      string    `json:"payrollId"`
	EmployeeID     string    `json:"employeeId"`
	EmployeeName   string    `json:"employeeName"`
	Month          string    `json:"month"`
	BaseSalary     float64   `json:"baseSalary"`
	OvertimeAmount float64   `json:"overtimeAmount"`
	Deductions     float64   `json:"deductions"`
	NetPay         float64   `json:"netPay"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TokenDTO represents a successful authentication response
type TokenDTO struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// ListResponse is a generic paginated list envelope
type ListResponse[T any] struct {
	Data     []T   `json:"data"`
	Page     int64 `json:"page"`
	PageSize int64 `json:"pageSize"`
	Total    int64 `json:"total,omitempty"`
}

// Mappers

// ToCustomerDTO maps a customer aggregate to its response shape
func ToCustomerDTO(c *domain.Customer) *CustomerDTO {
	return &CustomerDTO{
		CustomerID: c.CustomerID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		Address:    c.Address,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ToVehicleDTO maps a vehicle aggregate to its response shape
func ToVehicleDTO(v *domain.Vehicle) *VehicleDTO {
	return &VehicleDTO{
		VehicleID:      v.VehicleID,
		CustomerID:     v.CustomerID,
		RegistrationNo: v.RegistrationNo,
		Make:           v.Make,
		Model:          v.Model,
		Year:           v.Year,
		FuelType:       v.FuelType,
		Color:          v.Color,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

// ToPartDTO maps a part aggregate to its response shape
func ToPartDTO(p *domain.Part) *PartDTO {
	return &PartDTO{
		PartID:        p.PartID,
		Name:          p.Name,
		PartNumber:    p.PartNumber,
		Description:   p.Description,
		Category:      p.Category,
		CostPrice:     p.CostPrice,
		SellingPrice:  p.SellingPrice,
		StockQuantity: p.StockQuantity,
		MinStockLevel: p.MinStockLevel,
		LowStock:      p.IsLowStock(),
		SupplierID:    p.SupplierID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToSupplierDTO maps a supplier aggregate to its response shape
func ToSupplierDTO(s *domain.Supplier) *SupplierDTO {
	return &SupplierDTO{
		SupplierID:    s.SupplierID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Email:         s.Email,
		Address:       s.Address,
		GSTIN:         s.GSTIN,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToPurchaseOrderDTO maps a purchase order aggregate to its response shape
func ToPurchaseOrderDTO(po *domain.PurchaseOrder) *PurchaseOrderDTO {
	return &PurchaseOrderDTO{
		PurchaseOrderID: po.PurchaseOrderID,
		SupplierID:      po.SupplierID,
		SupplierName:    po.SupplierName,
		Items:           po.Items,
		TotalAmount:     po.TotalAmount,
		Status:          string(po.Status),
		OrderedAt:       po.OrderedAt,
		ReceivedAt:      po.ReceivedAt,
		Notes:           po.Notes,
		CreatedAt:       po.CreatedAt,
		UpdatedAt:       po.UpdatedAt,
	}
}

// ToJobCardDTO maps a job card aggregate to its response shape
func ToJobCardDTO(jc *domain.JobCard) *JobCardDTO {
	return &JobCardDTO{
		JobCardID:      jc.JobCardID,
		CustomerID:     jc.CustomerID,
		CustomerName:   jc.CustomerName,
		CustomerPhone:  jc.CustomerPhone,
		VehicleID:      jc.VehicleID,
		RegistrationNo: jc.RegistrationNo,
		VehicleMake:    jc.VehicleMake,
		VehicleModel:   jc.VehicleModel,
		ServiceType:    jc.ServiceType,
		Complaint:      jc.Complaint,
		Odometer:       jc.Odometer,
		Notes:          jc.Notes,
		Status:         string(jc.Status),
		Parts:          jc.Parts,
		Labor:          jc.Labor,
		Totals:         jc.Totals,
		CompletedAt:    jc.CompletedAt,
		DeliveredAt:    jc.DeliveredAt,
		CreatedAt:      jc.CreatedAt,
		UpdatedAt:      jc.UpdatedAt,
	}
}

// ToBillDTO maps a bill aggregate to its response shape
func ToBillDTO(b *domain.Bill) *BillDTO {
	dto := &BillDTO{
		BillID:         b.BillID,
		JobCardID:      b.JobCardID,
		CustomerID:     b.CustomerID,
		CustomerName:   b.CustomerName,
		CustomerPhone:  b.CustomerPhone,
		VehicleID:      b.VehicleID,
		RegistrationNo: b.RegistrationNo,
		Parts:          b.Parts,
		Labor:          b.Labor,
		Totals:         b.Totals,
		PaymentStatus:  string(b.PaymentStatus),
		PaidAt:         b.PaidAt,
		BillDate:       b.BillDate,
		CreatedAt:      b.CreatedAt,
	}
	if b.PaymentMethod != nil {
		method := string(*b.PaymentMethod)
		dto.PaymentMethod = &method
	}
	return dto
}

// ToEmployeeDTO maps an employee aggregate to its response shape
func ToEmployeeDTO(e *domain.Employee) *EmployeeDTO {
	return &EmployeeDTO{
		EmployeeID: e.EmployeeID,
		Name:       e.Name,
		Phone:      e.Phone,
		Email:      e.Email,
		Role:       e.Role,
		BaseSalary: e.BaseSalary,
		Active:     e.Active,
		JoinedAt:   e.JoinedAt,
		CreatedAt:  e.CreatedAt,
	}
}

// ToPayrollDTO maps a payroll record to its response shape
func ToPayrollDTO(p *domain.PayrollRecord) *PayrollDTO {
	return &PayrollDTO{
		PayrollID:      p.PayrollID,
		EmployeeID:     p.EmployeeID,
		EmployeeName:   p.EmployeeName,
		Month:          p.Month,
		BaseSalary:     p.BaseSalary,
		OvertimeAmount: p.OvertimeAmount,
		Deductions:     p.Deductions,
		NetPay:         p.NetPay,
		CreatedAt:      p.CreatedAt,
	}
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

// toIncomingParts converts request lines to domain incoming parts
func toIncomingParts(lines []IncomingPartCommand) []domain.IncomingPart {
	incoming := make([]domain.IncomingPart, len(lines))
	for i, l := range lines {
		incoming[i] = domain.IncomingPart{
			PartID:     l.PartID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			PartName:   l.PartName,
			PartNumber: l.PartNumber,
		}
	}
	return incoming
}
