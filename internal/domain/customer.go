package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errors for the customer module
var (
	ErrInvalidCustomerName  = errors.New("invalid customer name: must not be empty")
	ErrInvalidCustomerPhone = errors.New("invalid customer phone: must not be empty")
)

// Customer is a garage customer. Name and phone are copied onto job cards
// and bills as point-in-time snapshots and are not re-synced on change.
type Customer struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID string             `bson:"customerId" json:"customerId"`

	Name    string `bson:"name" json:"name"`
	Phone   string `bson:"phone" json:"phone"`
	Email   string `bson:"email,omitempty" json:"email,omitempty"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewCustomer creates a new customer
func NewCustomer(name, phone, email, address string) (*Customer, error) {
	if name == "" {
		return nil, ErrInvalidCustomerName
	}
	if phone == "" {
		return nil, ErrInvalidCustomerPhone
	}

	now := time.Now().UTC()
	return &Customer{
		ID:         primitive.NewObjectID(),
		CustomerID: fmt.Sprintf("CUS-%s", uuid.New().String()[:8]),
		Name:       name,
		Phone:      phone,
		Email:      email,
		Address:    address,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
