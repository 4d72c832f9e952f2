package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxRates_ComponentsRoundIndependently(t *testing.T) {
	rates := DefaultTaxRates()

	t.Run("each component rounded to 2 decimals before summing", func(t *testing.T) {
		cgst, sgst := rates.Components(100.005)
		assert.Equal(t, 9.00, cgst)
		assert.Equal(t, 9.00, sgst)
	})

	t.Run("independent rounding differs from rounding the combined rate once", func(t *testing.T) {
		// 9% of 100.50 is 9.045, which rounds half-up to 9.05 per
		// component; 18% once would give 18.09, not 18.10.
		cgst, sgst := rates.Components(100.50)
		assert.Equal(t, 9.05, cgst)
		assert.Equal(t, 9.05, sgst)
		assert.Equal(t, 18.10, RoundAmount(cgst+sgst))
	})
}

func TestNewTaxRates(t *testing.T) {
	rates, err := NewTaxRates("2.5", "2.5")
	require.NoError(t, err)

	cgst, sgst := rates.Components(1000)
	assert.Equal(t, 25.0, cgst)
	assert.Equal(t, 25.0, sgst)

	_, err = NewTaxRates("nine", "9")
	assert.Error(t, err)
}

func TestCalculateTotals(t *testing.T) {
	parts := []PartReference{ref("A", 2, 250), ref("B", 1, 100)} // 600
	labor := []LaborLine{{Description: "General service", Hours: 2, Rate: 200, TotalAmount: 400}}
	rates := DefaultTaxRates()

	t.Run("full roll-up", func(t *testing.T) {
		totals, err := CalculateTotals(parts, labor, 50, rates)
		require.NoError(t, err)

		assert.Equal(t, 600.0, totals.PartsTotal)
		assert.Equal(t, 400.0, totals.LaborTotal)
		assert.Equal(t, 1000.0, totals.Subtotal)
		assert.Equal(t, 90.0, totals.CGSTAmount)
		assert.Equal(t, 90.0, totals.SGSTAmount)
		assert.Equal(t, 180.0, totals.TaxAmount)
		assert.Equal(t, 50.0, totals.Discount)
		assert.Equal(t, 1130.0, totals.TotalAmount)
	})

	t.Run("recalculation is idempotent", func(t *testing.T) {
		first, err := CalculateTotals(parts, labor, 50, rates)
		require.NoError(t, err)
		second, err := CalculateTotals(parts, labor, 50, rates)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("empty lists yield zero totals", func(t *testing.T) {
		totals, err := CalculateTotals(nil, nil, 0, rates)
		require.NoError(t, err)
		assert.Equal(t, 0.0, totals.Subtotal)
		assert.Equal(t, 0.0, totals.TotalAmount)
	})

	t.Run("negative discount is rejected", func(t *testing.T) {
		_, err := CalculateTotals(parts, labor, -1, rates)
		assert.ErrorIs(t, err, ErrNegativeDiscount)
	})
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, 25.0, LineTotal(12.5, 2))
	assert.Equal(t, 0.0, LineTotal(0, 10))
	// 3 * 33.335 = 100.005, rounds half-up
	assert.Equal(t, 100.01, LineTotal(33.335, 3))
}
