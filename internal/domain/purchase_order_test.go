package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPurchaseOrder(t *testing.T) *PurchaseOrder {
	t.Helper()
	po, err := NewPurchaseOrder("SUP-1", "AutoSpares Ltd", []PurchaseOrderItem{
		{PartID: "PRT-1", PartName: "Oil Filter", PartNumber: "OF-100", Quantity: 10, UnitCost: 120},
		{PartID: "PRT-2", PartName: "Air Filter", PartNumber: "AF-200", Quantity: 5, UnitCost: 300.50},
	}, "")
	require.NoError(t, err)
	return po
}

func TestNewPurchaseOrder(t *testing.T) {
	t.Run("computes line and order totals", func(t *testing.T) {
		po := newTestPurchaseOrder(t)

		assert.Contains(t, po.PurchaseOrderID, "PO-")
		assert.Equal(t, PurchaseOrderStatusDraft, po.Status)
		assert.Equal(t, 1200.0, po.Items[0].TotalCost)
		assert.Equal(t, 1502.50, po.Items[1].TotalCost)
		assert.Equal(t, 2702.50, po.TotalAmount)
	})

	t.Run("rejects empty order", func(t *testing.T) {
		_, err := NewPurchaseOrder("SUP-1", "AutoSpares Ltd", nil, "")
		assert.ErrorIs(t, err, ErrEmptyPurchaseOrder)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewPurchaseOrder("SUP-1", "AutoSpares Ltd", []PurchaseOrderItem{
			{PartID: "PRT-1", Quantity: 0, UnitCost: 10},
		}, "")
		assert.ErrorIs(t, err, ErrNonPositiveQuantity)
	})
}

func TestPurchaseOrder_Lifecycle(t *testing.T) {
	t.Run("draft to received", func(t *testing.T) {
		po := newTestPurchaseOrder(t)

		require.NoError(t, po.MarkOrdered())
		assert.Equal(t, PurchaseOrderStatusOrdered, po.Status)
		require.NotNil(t, po.OrderedAt)

		require.NoError(t, po.MarkReceived())
		assert.Equal(t, PurchaseOrderStatusReceived, po.Status)
		require.NotNil(t, po.ReceivedAt)
	})

	t.Run("cannot receive a draft", func(t *testing.T) {
		po := newTestPurchaseOrder(t)
		assert.ErrorIs(t, po.MarkReceived(), ErrPurchaseOrderNotOrdered)
	})

	t.Run("cannot cancel after receiving", func(t *testing.T) {
		po := newTestPurchaseOrder(t)
		require.NoError(t, po.MarkOrdered())
		require.NoError(t, po.MarkReceived())
		assert.ErrorIs(t, po.Cancel(), ErrPurchaseOrderFinalized)
	})

	t.Run("cancel before receiving", func(t *testing.T) {
		po := newTestPurchaseOrder(t)
		require.NoError(t, po.MarkOrdered())
		require.NoError(t, po.Cancel())
		assert.Equal(t, PurchaseOrderStatusCancelled, po.Status)
		require.NotNil(t, po.CancelledAt)
	})
}

func TestNewPayrollRecord(t *testing.T) {
	emp, err := NewEmployee("Suresh", "+919800000001", "", "mechanic", 25000, time.Time{})
	require.NoError(t, err)

	t.Run("net pay is base plus overtime minus deductions", func(t *testing.T) {
		rec, err := NewPayrollRecord(emp, "2026-08", 2500.50, 1000.25)
		require.NoError(t, err)

		assert.Contains(t, rec.PayrollID, "PAY-")
		assert.Equal(t, emp.EmployeeID, rec.EmployeeID)
		assert.Equal(t, "Suresh", rec.EmployeeName)
		assert.Equal(t, 26500.25, rec.NetPay)
	})

	t.Run("rejects malformed month", func(t *testing.T) {
		_, err := NewPayrollRecord(emp, "Aug 2026", 0, 0)
		assert.ErrorIs(t, err, ErrInvalidPayrollMonth)
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := NewPayrollRecord(emp, "2026-08", -1, 0)
		assert.ErrorIs(t, err, ErrNegativeSalary)
	})
}
