package domain

import "time"

// LowStockPart is a summary line for a part at or below its reorder level
type LowStockPart struct {
	PartID        string `bson:"partId" json:"partId"`
	Name          string `bson:"name" json:"name"`
	PartNumber    string `bson:"partNumber" json:"partNumber"`
	StockQuantity int64  `bson:"stockQuantity" json:"stockQuantity"`
	MinStockLevel int64  `bson:"minStockLevel" json:"minStockLevel"`
}

// DailyReport is the once-a-day workshop summary emailed to the configured
// recipients and served on the reports endpoint.
type DailyReport struct {
	Date time.Time `json:"date"`

	JobCardsOpened    int64 `json:"jobCardsOpened"`
	JobCardsCompleted int64 `json:"jobCardsCompleted"`
	JobCardsDelivered int64 `json:"jobCardsDelivered"`

	BillsIssued   int64   `json:"billsIssued"`
	RevenueBilled float64 `json:"revenueBilled"`
	RevenuePaid   float64 `json:"revenuePaid"`

	LowStockParts []LowStockPart `json:"lowStockParts"`
}
