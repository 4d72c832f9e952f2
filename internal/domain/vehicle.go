package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errors for the vehicle module
var (
	ErrInvalidRegistrationNo = errors.New("invalid registration number: must not be empty")
	ErrInvalidVehicleOwner   = errors.New("invalid vehicle owner: customer id must not be empty")
)

// Vehicle is a customer's vehicle, identified by its registration plate
type Vehicle struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID string             `bson:"vehicleId" json:"vehicleId"`

	CustomerID string `bson:"customerId" json:"customerId"`

	RegistrationNo string `bson:"registrationNo" json:"registrationNo"`
	Make           string `bson:"make,omitempty" json:"make,omitempty"`
	Model          string `bson:"model,omitempty" json:"model,omitempty"`
	Year           int    `bson:"year,omitempty" json:"year,omitempty"`
	FuelType       string `bson:"fuelType,omitempty" json:"fuelType,omitempty"`
	Color          string `bson:"color,omitempty" json:"color,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewVehicle creates a new vehicle for a customer
func NewVehicle(customerID, registrationNo, make, model string, year int, fuelType, color string) (*Vehicle, error) {
	if customerID == "" {
		return nil, ErrInvalidVehicleOwner
	}
	if registrationNo == "" {
		return nil, ErrInvalidRegistrationNo
	}

	now := time.Now().UTC()
	return &Vehicle{
		ID:             primitive.NewObjectID(),
		VehicleID:      fmt.Sprintf("VEH-%s", uuid.New().String()[:8]),
		CustomerID:     customerID,
		RegistrationNo: registrationNo,
		Make:           make,
		Model:          model,
		Year:           year,
		FuelType:       fuelType,
		Color:          color,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}
