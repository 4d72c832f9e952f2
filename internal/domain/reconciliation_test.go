package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ref(partID string, qty int64, unitPrice float64) PartReference {
	return PartReference{
		PartID:     partID,
		PartName:   "Part " + partID,
		PartNumber: "PN-" + partID,
		Quantity:   qty,
		UnitPrice:  unitPrice,
		TotalPrice: LineTotal(unitPrice, qty),
	}
}

func in(partID string, qty int64) IncomingPart {
	return IncomingPart{PartID: partID, Quantity: qty}
}

func TestParseReconciliationMode(t *testing.T) {
	tests := []struct {
		input   string
		want    ReconciliationMode
		wantErr bool
	}{
		{"", ModeEdit, false},
		{"edit", ModeEdit, false},
		{"add", ModeAdd, false},
		{"update", ModeUpdate, false},
		{"replace", ModeReplace, false},
		{"merge", "", true},
		{"EDIT", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseReconciliationMode(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidReconciliationMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDedupeIncoming(t *testing.T) {
	t.Run("sums duplicate quantities", func(t *testing.T) {
		out, err := DedupeIncoming([]IncomingPart{in("A", 2), in("B", 1), in("A", 3)})
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "A", out[0].PartID)
		assert.Equal(t, int64(5), out[0].Quantity)
		assert.Equal(t, "B", out[1].PartID)
	})

	t.Run("later fields overwrite earlier ones", func(t *testing.T) {
		price1 := 10.0
		price2 := 12.5
		out, err := DedupeIncoming([]IncomingPart{
			{PartID: "A", Quantity: 2, UnitPrice: &price1, PartName: "old"},
			{PartID: "A", Quantity: 3, UnitPrice: &price2, PartName: "new"},
		})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, int64(5), out[0].Quantity)
		assert.Equal(t, price2, *out[0].UnitPrice)
		assert.Equal(t, "new", out[0].PartName)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := DedupeIncoming([]IncomingPart{in("A", 0)})
		assert.ErrorIs(t, err, ErrNonPositiveQuantity)

		_, err = DedupeIncoming([]IncomingPart{in("A", -1)})
		assert.ErrorIs(t, err, ErrNonPositiveQuantity)
	})
}

// Duplicate incoming entries behave identically to a single merged entry
// in every mode.
func TestPlanReconciliation_DuplicatesEqualMerged(t *testing.T) {
	existing := []PartReference{ref("A", 2, 10)}
	dup := []IncomingPart{in("A", 2), in("A", 3)}
	merged := []IncomingPart{in("A", 5)}

	for _, mode := range []ReconciliationMode{ModeEdit, ModeAdd, ModeUpdate, ModeReplace} {
		t.Run(string(mode), func(t *testing.T) {
			p1, err := PlanReconciliation(existing, dup, mode)
			require.NoError(t, err)
			p2, err := PlanReconciliation(existing, merged, mode)
			require.NoError(t, err)

			assert.Equal(t, p2.Deltas, p1.Deltas)
			assert.Equal(t, p2.Final, p1.Final)
		})
	}
}

func TestPlanReconciliation_EditMode(t *testing.T) {
	t.Run("unchanged quantity means zero delta", func(t *testing.T) {
		plan, err := PlanReconciliation([]PartReference{ref("A", 2, 10)}, []IncomingPart{in("A", 2)}, ModeEdit)
		require.NoError(t, err)
		assert.Equal(t, int64(0), plan.Delta("A"))
		assert.Empty(t, plan.Deltas)
		require.Len(t, plan.Final, 1)
		assert.Equal(t, int64(2), plan.Final[0].Quantity)
	})

	t.Run("increase draws the difference from stock", func(t *testing.T) {
		plan, err := PlanReconciliation([]PartReference{ref("A", 2, 10)}, []IncomingPart{in("A", 5)}, ModeEdit)
		require.NoError(t, err)
		assert.Equal(t, int64(-3), plan.Delta("A"))
		assert.Equal(t, int64(5), plan.Final[0].Quantity)
	})

	t.Run("decrease returns the difference to stock", func(t *testing.T) {
		plan, err := PlanReconciliation([]PartReference{ref("A", 5, 10)}, []IncomingPart{in("A", 2)}, ModeEdit)
		require.NoError(t, err)
		assert.Equal(t, int64(3), plan.Delta("A"))
		assert.Equal(t, int64(2), plan.Final[0].Quantity)
	})

	t.Run("omitted part is removed and fully restored", func(t *testing.T) {
		existing := []PartReference{ref("A", 2, 10), ref("B", 1, 5)}
		plan, err := PlanReconciliation(existing, []IncomingPart{in("A", 2)}, ModeEdit)
		require.NoError(t, err)

		require.Len(t, plan.Final, 1)
		assert.Equal(t, "A", plan.Final[0].PartID)
		assert.Equal(t, int64(0), plan.Delta("A"))
		assert.Equal(t, int64(1), plan.Delta("B"))
	})

	t.Run("new part is fully drawn from stock", func(t *testing.T) {
		plan, err := PlanReconciliation(nil, []IncomingPart{in("A", 3)}, ModeEdit)
		require.NoError(t, err)
		assert.Equal(t, int64(-3), plan.Delta("A"))
	})
}

func TestPlanReconciliation_AddMode(t *testing.T) {
	t.Run("quantities are additive", func(t *testing.T) {
		plan, err := PlanReconciliation([]PartReference{ref("A", 2, 10)}, []IncomingPart{in("A", 3)}, ModeAdd)
		require.NoError(t, err)
		require.Len(t, plan.Final, 1)
		assert.Equal(t, int64(5), plan.Final[0].Quantity)
		assert.Equal(t, int64(-3), plan.Delta("A"))
	})

	t.Run("parts absent from incoming are untouched", func(t *testing.T) {
		existing := []PartReference{ref("A", 2, 10), ref("B", 1, 5)}
		plan, err := PlanReconciliation(existing, []IncomingPart{in("A", 1)}, ModeAdd)
		require.NoError(t, err)

		require.Len(t, plan.Final, 2)
		assert.Equal(t, int64(3), plan.Final[0].Quantity)
		assert.Equal(t, int64(1), plan.Final[1].Quantity)
		assert.Equal(t, int64(0), plan.Delta("B"))
	})
}

func TestPlanReconciliation_UpdateMode(t *testing.T) {
	t.Run("mentioned parts are overwritten, others untouched", func(t *testing.T) {
		existing := []PartReference{ref("A", 2, 10), ref("B", 1, 5)}
		plan, err := PlanReconciliation(existing, []IncomingPart{in("A", 5)}, ModeUpdate)
		require.NoError(t, err)

		require.Len(t, plan.Final, 2)
		assert.Equal(t, int64(5), plan.Final[0].Quantity)
		assert.Equal(t, int64(1), plan.Final[1].Quantity)
		assert.Equal(t, int64(-3), plan.Delta("A"))
		assert.Equal(t, int64(0), plan.Delta("B"))
	})

	t.Run("incoming-only parts are appended", func(t *testing.T) {
		existing := []PartReference{ref("A", 2, 10)}
		plan, err := PlanReconciliation(existing, []IncomingPart{in("C", 4)}, ModeUpdate)
		require.NoError(t, err)

		require.Len(t, plan.Final, 2)
		assert.Equal(t, "C", plan.Final[1].PartID)
		assert.Equal(t, int64(-4), plan.Delta("C"))
	})
}

func TestPlanReconciliation_ReplaceMode(t *testing.T) {
	t.Run("existing restored and incoming reserved from scratch", func(t *testing.T) {
		existing := []PartReference{ref("A", 2, 10), ref("B", 1, 5)}
		plan, err := PlanReconciliation(existing, []IncomingPart{in("A", 5), in("C", 1)}, ModeReplace)
		require.NoError(t, err)

		require.Len(t, plan.Final, 2)
		// Part in both lists: +2 restore and -5 reserve summed
		assert.Equal(t, int64(-3), plan.Delta("A"))
		assert.Equal(t, int64(1), plan.Delta("B"))
		assert.Equal(t, int64(-1), plan.Delta("C"))
	})

	t.Run("same quantity in both lists nets to zero", func(t *testing.T) {
		plan, err := PlanReconciliation([]PartReference{ref("A", 2, 10)}, []IncomingPart{in("A", 2)}, ModeReplace)
		require.NoError(t, err)
		assert.Empty(t, plan.Deltas)
	})
}

func TestPlanReconciliation_FieldMerging(t *testing.T) {
	t.Run("existing snapshot fields carry over when incoming omits them", func(t *testing.T) {
		existing := []PartReference{ref("A", 2, 10)}
		plan, err := PlanReconciliation(existing, []IncomingPart{in("A", 3)}, ModeEdit)
		require.NoError(t, err)

		got := plan.Final[0]
		assert.Equal(t, "Part A", got.PartName)
		assert.Equal(t, "PN-A", got.PartNumber)
		assert.Equal(t, 10.0, got.UnitPrice)
		assert.Equal(t, 30.0, got.TotalPrice)
	})

	t.Run("incoming overrides replace the snapshot", func(t *testing.T) {
		price := 12.5
		existing := []PartReference{ref("A", 2, 10)}
		plan, err := PlanReconciliation(existing, []IncomingPart{
			{PartID: "A", Quantity: 2, UnitPrice: &price, PartName: "Renamed"},
		}, ModeEdit)
		require.NoError(t, err)

		got := plan.Final[0]
		assert.Equal(t, "Renamed", got.PartName)
		assert.Equal(t, 12.5, got.UnitPrice)
		assert.Equal(t, 25.0, got.TotalPrice)
	})
}

func TestPlanReconciliation_UnpricedLines(t *testing.T) {
	t.Run("new line without a price is marked unpriced", func(t *testing.T) {
		plan, err := PlanReconciliation(nil, []IncomingPart{in("A", 3)}, ModeEdit)
		require.NoError(t, err)
		assert.True(t, plan.Unpriced["A"])
	})

	t.Run("new line with an explicit price is not", func(t *testing.T) {
		price := 0.0
		plan, err := PlanReconciliation(nil, []IncomingPart{
			{PartID: "A", Quantity: 3, UnitPrice: &price},
		}, ModeEdit)
		require.NoError(t, err)
		assert.False(t, plan.Unpriced["A"])
	})

	t.Run("existing line keeps its snapshot price even at zero", func(t *testing.T) {
		existing := []PartReference{ref("A", 1, 0)}
		plan, err := PlanReconciliation(existing, []IncomingPart{in("A", 2)}, ModeEdit)
		require.NoError(t, err)
		assert.False(t, plan.Unpriced["A"])
		assert.Equal(t, 0.0, plan.Final[0].UnitPrice)
	})
}
