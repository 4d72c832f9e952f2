package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errors for the billing module
var (
	ErrBillAlreadyPaid      = errors.New("bill is already paid")
	ErrBillSourceNotBilled  = errors.New("job card must be completed or delivered before billing")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// PaymentStatus represents whether a bill has been settled
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// PaymentMethod enumerates accepted settlement methods
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodUPI  PaymentMethod = "upi"
	PaymentMethodBank PaymentMethod = "bank_transfer"
)

// IsValid checks the payment method
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodUPI, PaymentMethodBank:
		return true
	}
	return false
}

// Bill is an invoice generated from a completed job card. All customer,
// vehicle and line-item fields are snapshots frozen at generation time.
type Bill struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BillID string             `bson:"billId" json:"billId"`

	JobCardID string `bson:"jobCardId" json:"jobCardId"`

	CustomerID    string `bson:"customerId" json:"customerId"`
	CustomerName  string `bson:"customerName" json:"customerName"`   // snapshot
	CustomerPhone string `bson:"customerPhone" json:"customerPhone"` // snapshot

	VehicleID      string `bson:"vehicleId" json:"vehicleId"`
	RegistrationNo string `bson:"registrationNo" json:"registrationNo"` // snapshot

	Parts []PartReference `bson:"parts" json:"parts"`
	Labor []LaborLine     `bson:"labor" json:"labor"`

	Totals Totals `bson:"totals" json:"totals"`

	PaymentStatus PaymentStatus  `bson:"paymentStatus" json:"paymentStatus"`
	PaymentMethod *PaymentMethod `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	PaidAt        *time.Time     `bson:"paidAt,omitempty" json:"paidAt,omitempty"`

	BillDate  time.Time `bson:"billDate" json:"billDate"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewBillFromJobCard generates a bill from a completed job card, freezing
// its line items and customer details as snapshots. The discount is an
// absolute non-negative amount deducted after tax.
func NewBillFromJobCard(jc *JobCard, discount float64, rates TaxRates) (*Bill, error) {
	if jc.Status != JobCardStatusCompleted && jc.Status != JobCardStatusDelivered {
		return nil, ErrBillSourceNotBilled
	}

	parts := make([]PartReference, len(jc.Parts))
	copy(parts, jc.Parts)
	labor := make([]LaborLine, len(jc.Labor))
	copy(labor, jc.Labor)

	totals, err := CalculateTotals(parts, labor, discount, rates)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Bill{
		ID:             primitive.NewObjectID(),
		BillID:         fmt.Sprintf("INV-%s", uuid.New().String()[:8]),
		JobCardID:      jc.JobCardID,
		CustomerID:     jc.CustomerID,
		CustomerName:   jc.CustomerName,
		CustomerPhone:  jc.CustomerPhone,
		VehicleID:      jc.VehicleID,
		RegistrationNo: jc.RegistrationNo,
		Parts:          parts,
		Labor:          labor,
		Totals:         totals,
		PaymentStatus:  PaymentStatusUnpaid,
		BillDate:       now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// MarkPaid settles the bill with the given method
func (b *Bill) MarkPaid(method PaymentMethod) error {
	if b.PaymentStatus == PaymentStatusPaid {
		return ErrBillAlreadyPaid
	}
	if !method.IsValid() {
		return ErrInvalidPaymentMethod
	}
	now := time.Now().UTC()
	b.PaymentStatus = PaymentStatusPaid
	b.PaymentMethod = &method
	b.PaidAt = &now
	b.UpdatedAt = now
	return nil
}
