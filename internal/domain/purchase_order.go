package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errors for the purchase order module
var (
	ErrEmptyPurchaseOrder      = errors.New("invalid purchase order: must contain at least one item")
	ErrPurchaseOrderNotOrdered = errors.New("purchase order must be ordered before receiving")
	ErrPurchaseOrderFinalized  = errors.New("purchase order is already received or cancelled")
)

// PurchaseOrderStatus represents the lifecycle state of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "draft"
	PurchaseOrderStatusOrdered   PurchaseOrderStatus = "ordered"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "received"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

// PurchaseOrderItem is one line of a purchase order. Part name and number
// are snapshots taken when the line was added.
type PurchaseOrderItem struct {
	PartID     string  `bson:"partId" json:"partId"`
	PartName   string  `bson:"partName" json:"partName"`
	PartNumber string  `bson:"partNumber" json:"partNumber"`
	Quantity   int64   `bson:"quantity" json:"quantity"`
	UnitCost   float64 `bson:"unitCost" json:"unitCost"`
	TotalCost  float64 `bson:"totalCost" json:"totalCost"`
}

// PurchaseOrder is an order placed with a supplier to restock parts.
// Receiving it increments stock for every line.
type PurchaseOrder struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PurchaseOrderID string             `bson:"purchaseOrderId" json:"purchaseOrderId"`

	SupplierID   string `bson:"supplierId" json:"supplierId"`
	SupplierName string `bson:"supplierName" json:"supplierName"` // snapshot

	Items       []PurchaseOrderItem `bson:"items" json:"items"`
	TotalAmount float64             `bson:"totalAmount" json:"totalAmount"`

	Status      PurchaseOrderStatus `bson:"status" json:"status"`
	OrderedAt   *time.Time          `bson:"orderedAt,omitempty" json:"orderedAt,omitempty"`
	ReceivedAt  *time.Time          `bson:"receivedAt,omitempty" json:"receivedAt,omitempty"`
	CancelledAt *time.Time          `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	Notes       string              `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewPurchaseOrder creates a draft purchase order
func NewPurchaseOrder(supplierID, supplierName string, items []PurchaseOrderItem, notes string) (*PurchaseOrder, error) {
	if len(items) == 0 {
		return nil, ErrEmptyPurchaseOrder
	}
	for i := range items {
		if items[i].Quantity <= 0 {
			return nil, fmt.Errorf("%w: part %s has quantity %d", ErrNonPositiveQuantity, items[i].PartID, items[i].Quantity)
		}
		if items[i].UnitCost < 0 {
			return nil, ErrNegativePrice
		}
		items[i].TotalCost = LineTotal(items[i].UnitCost, items[i].Quantity)
	}

	now := time.Now().UTC()
	po := &PurchaseOrder{
		ID:              primitive.NewObjectID(),
		PurchaseOrderID: fmt.Sprintf("PO-%s", uuid.New().String()[:8]),
		SupplierID:      supplierID,
		SupplierName:    supplierName,
		Items:           items,
		Status:          PurchaseOrderStatusDraft,
		Notes:           notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	po.recalculateTotal()
	return po, nil
}

func (po *PurchaseOrder) recalculateTotal() {
	total := decimal.Zero
	for _, item := range po.Items {
		total = total.Add(decimal.NewFromFloat(item.TotalCost))
	}
	po.TotalAmount, _ = total.Round(2).Float64()
}

// MarkOrdered moves a draft order to the ordered state
func (po *PurchaseOrder) MarkOrdered() error {
	if po.Status != PurchaseOrderStatusDraft {
		return ErrPurchaseOrderFinalized
	}
	now := time.Now().UTC()
	po.Status = PurchaseOrderStatusOrdered
	po.OrderedAt = &now
	po.UpdatedAt = now
	return nil
}

// MarkReceived moves an ordered order to the received state. The caller is
// responsible for incrementing stock for every line.
func (po *PurchaseOrder) MarkReceived() error {
	if po.Status != PurchaseOrderStatusOrdered {
		return ErrPurchaseOrderNotOrdered
	}
	now := time.Now().UTC()
	po.Status = PurchaseOrderStatusReceived
	po.ReceivedAt = &now
	po.UpdatedAt = now
	return nil
}

// Cancel cancels a draft or ordered purchase order. Received orders cannot
// be cancelled.
func (po *PurchaseOrder) Cancel() error {
	if po.Status != PurchaseOrderStatusDraft && po.Status != PurchaseOrderStatusOrdered {
		return ErrPurchaseOrderFinalized
	}
	now := time.Now().UTC()
	po.Status = PurchaseOrderStatusCancelled
	po.CancelledAt = &now
	po.UpdatedAt = now
	return nil
}
