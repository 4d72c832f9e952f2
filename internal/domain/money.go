package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNegativeDiscount is returned when a discount below zero is supplied
var ErrNegativeDiscount = errors.New("invalid discount: must not be negative")

// TaxRates holds the two GST component percentages applied to a subtotal.
// The default split is 9% CGST + 9% SGST.
type TaxRates struct {
	CGSTPercent decimal.Decimal
	SGSTPercent decimal.Decimal
}

// DefaultTaxRates returns the standard 9/9 GST split
func DefaultTaxRates() TaxRates {
	nine := decimal.NewFromInt(9)
	return TaxRates{CGSTPercent: nine, SGSTPercent: nine}
}

// NewTaxRates parses percentage strings into a TaxRates pair
func NewTaxRates(cgst, sgst string) (TaxRates, error) {
	c, err := decimal.NewFromString(cgst)
	if err != nil {
		return TaxRates{}, fmt.Errorf("invalid CGST rate %q: %w", cgst, err)
	}
	s, err := decimal.NewFromString(sgst)
	if err != nil {
		return TaxRates{}, fmt.Errorf("invalid SGST rate %q: %w", sgst, err)
	}
	return TaxRates{CGSTPercent: c, SGSTPercent: s}, nil
}

// Components computes the two tax amounts on a subtotal. Each component is
// rounded to 2 decimal places independently before the pair is summed; this
// ordering is significant and keeps totals reproducible.
func (r TaxRates) Components(subtotal float64) (cgst, sgst float64) {
	sub := decimal.NewFromFloat(subtotal)
	hundred := decimal.NewFromInt(100)

	c := sub.Mul(r.CGSTPercent).Div(hundred).Round(2)
	s := sub.Mul(r.SGSTPercent).Div(hundred).Round(2)

	cgst, _ = c.Float64()
	sgst, _ = s.Float64()
	return cgst, sgst
}

// RoundAmount rounds a monetary amount to 2 decimal places half away from zero
func RoundAmount(v float64) float64 {
	out, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return out
}

// LineTotal computes unit price times quantity, rounded to 2 decimal places
func LineTotal(unitPrice float64, quantity int64) float64 {
	total := decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(quantity))
	out, _ := total.Round(2).Float64()
	return out
}

// Totals is the derived monetary roll-up of a job card or bill
type Totals struct {
	PartsTotal  float64 `bson:"partsTotal" json:"partsTotal"`
	LaborTotal  float64 `bson:"laborTotal" json:"laborTotal"`
	Subtotal    float64 `bson:"subtotal" json:"subtotal"`
	CGSTAmount  float64 `bson:"cgstAmount" json:"cgstAmount"`
	SGSTAmount  float64 `bson:"sgstAmount" json:"sgstAmount"`
	TaxAmount   float64 `bson:"taxAmount" json:"taxAmount"`
	Discount    float64 `bson:"discount" json:"discount"`
	TotalAmount float64 `bson:"totalAmount" json:"totalAmount"`
}

// CalculateTotals recomputes the full roll-up from the given line lists.
// Discount is an absolute non-negative amount, not a percentage. The
// calculation is idempotent: the same inputs always yield the same totals.
func CalculateTotals(parts []PartReference, labor []LaborLine, discount float64, rates TaxRates) (Totals, error) {
	if discount < 0 {
		return Totals{}, ErrNegativeDiscount
	}

	partsTotal := decimal.Zero
	for _, p := range parts {
		partsTotal = partsTotal.Add(decimal.NewFromFloat(p.TotalPrice))
	}

	laborTotal := decimal.Zero
	for _, l := range labor {
		laborTotal = laborTotal.Add(decimal.NewFromFloat(l.TotalAmount))
	}

	subtotal := partsTotal.Add(laborTotal)
	subtotalF, _ := subtotal.Float64()

	cgst, sgst := rates.Components(subtotalF)
	tax := decimal.NewFromFloat(cgst).Add(decimal.NewFromFloat(sgst))

	total := subtotal.Add(tax).Sub(decimal.NewFromFloat(discount))

	partsTotalF, _ := partsTotal.Round(2).Float64()
	laborTotalF, _ := laborTotal.Round(2).Float64()
	subtotalRoundedF, _ := subtotal.Round(2).Float64()
	taxF, _ := tax.Float64()
	totalF, _ := total.Round(2).Float64()

	return Totals{
		PartsTotal:  partsTotalF,
		LaborTotal:  laborTotalF,
		Subtotal:    subtotalRoundedF,
		CGSTAmount:  cgst,
		SGSTAmount:  sgst,
		TaxAmount:   taxF,
		Discount:    discount,
		TotalAmount: totalF,
	}, nil
}
