package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garage-platform/garage-api/internal/domain"
)

func TestRenderDailyReport(t *testing.T) {
	report := &domain.DailyReport{
		Date:              time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC),
		JobCardsOpened:    4,
		JobCardsCompleted: 3,
		JobCardsDelivered: 2,
		BillsIssued:       3,
		RevenueBilled:     15340.50,
		RevenuePaid:       9800,
		LowStockParts: []domain.LowStockPart{
			{PartID: "PRT-aaaa1111", Name: "Oil Filter", PartNumber: "OF-2041", StockQuantity: 2, MinStockLevel: 5},
		},
	}

	body, err := RenderDailyReport(report)
	require.NoError(t, err)

	assert.Contains(t, body, "27 Aug 2026")
	assert.Contains(t, body, "15340.50")
	assert.Contains(t, body, "Oil Filter")
	assert.Contains(t, body, "OF-2041")
}

func TestRenderInvoice(t *testing.T) {
	bill := &domain.Bill{
		BillID:         "INV-1a2b3c4d",
		JobCardID:      "JC-9f8e7d6c",
		CustomerName:   "Ravi Kumar",
		CustomerPhone:  "+919876543210",
		RegistrationNo: "KA-01-AB-1234",
		Parts: []domain.PartReference{
			{PartName: "Oil Filter", PartNumber: "OF-2041", Quantity: 2, UnitPrice: 450, TotalPrice: 900},
		},
		Labor: []domain.LaborLine{
			{Description: "Engine oil change", Hours: 1.5, Rate: 400, TotalAmount: 600},
		},
		Totals: domain.Totals{
			PartsTotal:  900,
			LaborTotal:  600,
			Subtotal:    1500,
			CGSTAmount:  135,
			SGSTAmount:  135,
			TaxAmount:   270,
			Discount:    70,
			TotalAmount: 1700,
		},
		PaymentStatus: domain.PaymentStatusUnpaid,
		BillDate:      time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC),
	}

	body, err := RenderInvoice(bill)
	require.NoError(t, err)

	assert.Contains(t, body, "INV-1a2b3c4d")
	assert.Contains(t, body, "Ravi Kumar")
	assert.Contains(t, body, "KA-01-AB-1234")
	assert.Contains(t, body, "Oil Filter")
	assert.Contains(t, body, "Engine oil change")
	assert.Contains(t, body, "1700.00")
	assert.Contains(t, body, "UNPAID")
	assert.Contains(t, body, "70.00")
}

func TestRenderInvoicePaidNoDiscount(t *testing.T) {
	method := domain.PaymentMethodUPI
	bill := &domain.Bill{
		BillID:        "INV-55667788",
		PaymentStatus: domain.PaymentStatusPaid,
		PaymentMethod: &method,
		BillDate:      time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC),
		Totals:        domain.Totals{Subtotal: 100, TotalAmount: 118},
	}

	body, err := RenderInvoice(bill)
	require.NoError(t, err)

	assert.Contains(t, body, "PAID")
	assert.NotContains(t, body, "Discount")
}

func TestRenderDailyReportNoLowStock(t *testing.T) {
	report := &domain.DailyReport{
		Date: time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC),
	}

	body, err := RenderDailyReport(report)
	require.NoError(t, err)

	assert.Contains(t, body, "All parts are above their reorder levels.")
}
