package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidSupplierName is returned when a supplier name is empty
var ErrInvalidSupplierName = errors.New("invalid supplier name: must not be empty")

// Supplier is a parts supplier
type Supplier struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SupplierID string             `bson:"supplierId" json:"supplierId"`

	Name          string `bson:"name" json:"name"`
	ContactPerson string `bson:"contactPerson,omitempty" json:"contactPerson,omitempty"`
	Phone         string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email         string `bson:"email,omitempty" json:"email,omitempty"`
	Address       string `bson:"address,omitempty" json:"address,omitempty"`
	GSTIN         string `bson:"gstin,omitempty" json:"gstin,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewSupplier creates a new supplier
func NewSupplier(name, contactPerson, phone, email, address, gstin string) (*Supplier, error) {
	if name == "" {
		return nil, ErrInvalidSupplierName
	}

	now := time.Now().UTC()
	return &Supplier{
		ID:            primitive.NewObjectID(),
		SupplierID:    fmt.Sprintf("SUP-%s", uuid.New().String()[:8]),
		Name:          name,
		ContactPerson: contactPerson,
		Phone:         phone,
		Email:         email,
		Address:       address,
		GSTIN:         gstin,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}
