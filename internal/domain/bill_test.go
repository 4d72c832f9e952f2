package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBillFromJobCard(t *testing.T) {
	rates := DefaultTaxRates()

	t.Run("freezes line items and customer snapshot", func(t *testing.T) {
		jc := newTestJobCard(t)
		require.NoError(t, jc.SetParts([]PartReference{ref("A", 2, 250)}, rates))
		require.NoError(t, jc.AddLaborLine("general service", 2, 250, rates))
		require.NoError(t, jc.Complete())

		bill, err := NewBillFromJobCard(jc, 0, rates)
		require.NoError(t, err)

		assert.Contains(t, bill.BillID, "INV-")
		assert.Equal(t, jc.JobCardID, bill.JobCardID)
		assert.Equal(t, "Ravi Kumar", bill.CustomerName)
		assert.Equal(t, "TN09AB1234", bill.RegistrationNo)
		assert.Equal(t, PaymentStatusUnpaid, bill.PaymentStatus)

		assert.Equal(t, 1000.0, bill.Totals.Subtotal)
		assert.Equal(t, 180.0, bill.Totals.TaxAmount)
		assert.Equal(t, 1180.0, bill.Totals.TotalAmount)

		// Mutating the job card afterwards must not touch the bill
		require.NoError(t, jc.SetParts(nil, rates))
		assert.Len(t, bill.Parts, 1)
	})

	t.Run("rejects job cards that are not completed", func(t *testing.T) {
		jc := newTestJobCard(t)
		_, err := NewBillFromJobCard(jc, 0, rates)
		assert.ErrorIs(t, err, ErrBillSourceNotBilled)
	})

	t.Run("rejects negative discount", func(t *testing.T) {
		jc := newTestJobCard(t)
		require.NoError(t, jc.Complete())
		_, err := NewBillFromJobCard(jc, -10, rates)
		assert.ErrorIs(t, err, ErrNegativeDiscount)
	})
}

func TestBill_MarkPaid(t *testing.T) {
	rates := DefaultTaxRates()
	jc := newTestJobCard(t)
	require.NoError(t, jc.Complete())

	bill, err := NewBillFromJobCard(jc, 0, rates)
	require.NoError(t, err)

	t.Run("settles with a valid method", func(t *testing.T) {
		require.NoError(t, bill.MarkPaid(PaymentMethodUPI))
		assert.Equal(t, PaymentStatusPaid, bill.PaymentStatus)
		require.NotNil(t, bill.PaymentMethod)
		assert.Equal(t, PaymentMethodUPI, *bill.PaymentMethod)
		require.NotNil(t, bill.PaidAt)
	})

	t.Run("cannot pay twice", func(t *testing.T) {
		assert.ErrorIs(t, bill.MarkPaid(PaymentMethodCash), ErrBillAlreadyPaid)
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		jc2 := newTestJobCard(t)
		require.NoError(t, jc2.Complete())
		b2, err := NewBillFromJobCard(jc2, 0, rates)
		require.NoError(t, err)
		assert.ErrorIs(t, b2.MarkPaid("cheque"), ErrInvalidPaymentMethod)
	})
}
