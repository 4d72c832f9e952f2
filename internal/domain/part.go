package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errors for the parts inventory
var (
	ErrInvalidPartName   = errors.New("invalid part name: must not be empty")
	ErrInvalidPartNumber = errors.New("invalid part number: must not be empty")
	ErrNegativePrice     = errors.New("invalid price: must not be negative")
	ErrNegativeStock     = errors.New("invalid stock quantity: must not be negative")
)

// Part is an inventory item. StockQuantity is mutated only through atomic
// increments keyed by PartID and must never go negative.
type Part struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PartID string             `bson:"partId" json:"partId"`

	Name        string `bson:"name" json:"name"`
	PartNumber  string `bson:"partNumber" json:"partNumber"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Category    string `bson:"category,omitempty" json:"category,omitempty"`

	CostPrice    float64 `bson:"costPrice" json:"costPrice"`
	SellingPrice float64 `bson:"sellingPrice" json:"sellingPrice"`

	StockQuantity int64 `bson:"stockQuantity" json:"stockQuantity"`
	MinStockLevel int64 `bson:"minStockLevel" json:"minStockLevel"`

	SupplierID string `bson:"supplierId,omitempty" json:"supplierId,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewPart creates a new inventory part
func NewPart(name, partNumber, description, category string, costPrice, sellingPrice float64, stockQuantity, minStockLevel int64, supplierID string) (*Part, error) {
	if name == "" {
		return nil, ErrInvalidPartName
	}
	if partNumber == "" {
		return nil, ErrInvalidPartNumber
	}
	if costPrice < 0 || sellingPrice < 0 {
		return nil, ErrNegativePrice
	}
	if stockQuantity < 0 || minStockLevel < 0 {
		return nil, ErrNegativeStock
	}

	now := time.Now().UTC()
	return &Part{
		ID:            primitive.NewObjectID(),
		PartID:        fmt.Sprintf("PRT-%s", uuid.New().String()[:8]),
		Name:          name,
		PartNumber:    partNumber,
		Description:   description,
		Category:      category,
		CostPrice:     costPrice,
		SellingPrice:  sellingPrice,
		StockQuantity: stockQuantity,
		MinStockLevel: minStockLevel,
		SupplierID:    supplierID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// IsLowStock reports whether the stock is at or below the reorder threshold
func (p *Part) IsLowStock() bool {
	return p.StockQuantity <= p.MinStockLevel
}
