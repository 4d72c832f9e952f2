package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errors for the job card module
var (
	ErrJobCardNotOpen      = errors.New("job card is not open")
	ErrJobCardNotCompleted = errors.New("job card must be completed first")
	ErrJobCardClosed       = errors.New("job card is already delivered or cancelled")
	ErrInvalidLaborLine    = errors.New("invalid labor line: hours and rate must not be negative")
)

// JobCardStatus represents the lifecycle state of a job card
type JobCardStatus string

const (
	JobCardStatusOpen       JobCardStatus = "open"
	JobCardStatusInProgress JobCardStatus = "in_progress"
	JobCardStatusCompleted  JobCardStatus = "completed"
	JobCardStatusDelivered  JobCardStatus = "delivered"
	JobCardStatusCancelled  JobCardStatus = "cancelled"
)

// PartReference is a line item in a job card's parts list. Name, number and
// unit price are snapshots copied from the part when the line was created or
// last updated; they are never re-synced from the part record. The canonical
// list holds at most one entry per part ID.
type PartReference struct {
	PartID     string  `bson:"partId" json:"partId"`
	PartName   string  `bson:"partName" json:"partName"`
	PartNumber string  `bson:"partNumber" json:"partNumber"`
	Quantity   int64   `bson:"quantity" json:"quantity"`
	UnitPrice  float64 `bson:"unitPrice" json:"unitPrice"`
	TotalPrice float64 `bson:"totalPrice" json:"totalPrice"`
}

// LaborLine is a labor/service charge on a job card
type LaborLine struct {
	Description string  `bson:"description" json:"description"`
	Hours       float64 `bson:"hours" json:"hours"`
	Rate        float64 `bson:"rate" json:"rate"`
	TotalAmount float64 `bson:"totalAmount" json:"totalAmount"`
}

// JobCard is a service ticket for a vehicle. Its parts list is maintained
// exclusively through the reconciliation engine; customer and vehicle fields
// are point-in-time snapshots.
type JobCard struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	JobCardID string             `bson:"jobCardId" json:"jobCardId"`

	CustomerID    string `bson:"customerId" json:"customerId"`
	CustomerName  string `bson:"customerName" json:"customerName"`   // snapshot
	CustomerPhone string `bson:"customerPhone" json:"customerPhone"` // snapshot

	VehicleID      string `bson:"vehicleId" json:"vehicleId"`
	RegistrationNo string `bson:"registrationNo" json:"registrationNo"` // snapshot
	VehicleMake    string `bson:"vehicleMake,omitempty" json:"vehicleMake,omitempty"`
	VehicleModel   string `bson:"vehicleModel,omitempty" json:"vehicleModel,omitempty"`

	ServiceType string `bson:"serviceType" json:"serviceType"`
	Complaint   string `bson:"complaint,omitempty" json:"complaint,omitempty"`
	Odometer    int64  `bson:"odometer,omitempty" json:"odometer,omitempty"`
	Notes       string `bson:"notes,omitempty" json:"notes,omitempty"`

	Status JobCardStatus `bson:"status" json:"status"`

	Parts []PartReference `bson:"parts" json:"parts"`
	Labor []LaborLine     `bson:"labor" json:"labor"`

	Totals Totals `bson:"totals" json:"totals"`

	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	DeliveredAt *time.Time `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewJobCard opens a job card for a customer's vehicle. Customer and vehicle
// details are captured as snapshots.
func NewJobCard(customer *Customer, vehicle *Vehicle, serviceType, complaint string, odometer int64) (*JobCard, error) {
	if customer == nil {
		return nil, ErrInvalidCustomerName
	}
	if vehicle == nil {
		return nil, ErrInvalidRegistrationNo
	}

	now := time.Now().UTC()
	return &JobCard{
		ID:             primitive.NewObjectID(),
		JobCardID:      fmt.Sprintf("JC-%s", uuid.New().String()[:8]),
		CustomerID:     customer.CustomerID,
		CustomerName:   customer.Name,
		CustomerPhone:  customer.Phone,
		VehicleID:      vehicle.VehicleID,
		RegistrationNo: vehicle.RegistrationNo,
		VehicleMake:    vehicle.Make,
		VehicleModel:   vehicle.Model,
		ServiceType:    serviceType,
		Complaint:      complaint,
		Odometer:       odometer,
		Status:         JobCardStatusOpen,
		Parts:          []PartReference{},
		Labor:          []LaborLine{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// IsEditable reports whether the parts list and labor lines may still change
func (jc *JobCard) IsEditable() bool {
	return jc.Status == JobCardStatusOpen || jc.Status == JobCardStatusInProgress
}

// SetParts replaces the canonical parts list and recomputes totals
func (jc *JobCard) SetParts(parts []PartReference, rates TaxRates) error {
	jc.Parts = parts
	return jc.RecalculateTotals(rates)
}

// AddLaborLine appends a labor charge and recomputes totals
func (jc *JobCard) AddLaborLine(description string, hours, rate float64, rates TaxRates) error {
	if hours < 0 || rate < 0 {
		return ErrInvalidLaborLine
	}
	jc.Labor = append(jc.Labor, LaborLine{
		Description: description,
		Hours:       hours,
		Rate:        rate,
		TotalAmount: RoundAmount(hours * rate),
	})
	return jc.RecalculateTotals(rates)
}

// RecalculateTotals recomputes the derived monetary roll-up. Runs before
// every persist; recalculating with no list changes yields identical totals.
func (jc *JobCard) RecalculateTotals(rates TaxRates) error {
	totals, err := CalculateTotals(jc.Parts, jc.Labor, jc.Totals.Discount, rates)
	if err != nil {
		return err
	}
	jc.Totals = totals
	jc.UpdatedAt = time.Now().UTC()
	return nil
}

// ApplyDiscount sets an absolute discount amount and recomputes totals
func (jc *JobCard) ApplyDiscount(discount float64, rates TaxRates) error {
	if discount < 0 {
		return ErrNegativeDiscount
	}
	jc.Totals.Discount = discount
	return jc.RecalculateTotals(rates)
}

// Start moves an open job card to in_progress
func (jc *JobCard) Start() error {
	if jc.Status != JobCardStatusOpen {
		return ErrJobCardNotOpen
	}
	jc.Status = JobCardStatusInProgress
	jc.UpdatedAt = time.Now().UTC()
	return nil
}

// Complete marks the work finished
func (jc *JobCard) Complete() error {
	if jc.Status != JobCardStatusOpen && jc.Status != JobCardStatusInProgress {
		return ErrJobCardClosed
	}
	now := time.Now().UTC()
	jc.Status = JobCardStatusCompleted
	jc.CompletedAt = &now
	jc.UpdatedAt = now
	return nil
}

// Deliver hands the vehicle back to the customer
func (jc *JobCard) Deliver() error {
	if jc.Status != JobCardStatusCompleted {
		return ErrJobCardNotCompleted
	}
	now := time.Now().UTC()
	jc.Status = JobCardStatusDelivered
	jc.DeliveredAt = &now
	jc.UpdatedAt = now
	return nil
}

// Cancel closes the job card without delivery. The caller is responsible
// for returning reserved parts to stock.
func (jc *JobCard) Cancel() error {
	if jc.Status == JobCardStatusDelivered || jc.Status == JobCardStatusCancelled {
		return ErrJobCardClosed
	}
	jc.Status = JobCardStatusCancelled
	jc.UpdatedAt = time.Now().UTC()
	return nil
}
