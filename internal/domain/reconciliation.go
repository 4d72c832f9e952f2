package domain

import (
	"errors"
	"fmt"
)

// Errors raised by the reconciliation engine
var (
	ErrInvalidReconciliationMode = errors.New("invalid reconciliation mode")
	ErrNonPositiveQuantity       = errors.New("invalid quantity: must be positive")
)

// ReconciliationMode selects how an incoming parts list is merged into a
// job card's existing parts list.
type ReconciliationMode string

const (
	// ModeEdit treats the incoming list as the full new truth: quantity
	// changes draw from or return to stock, omitted parts are removed and
	// restored.
	ModeEdit ReconciliationMode = "edit"
	// ModeAdd adds incoming quantities on top of existing ones; parts not
	// mentioned are left untouched.
	ModeAdd ReconciliationMode = "add"
	// ModeUpdate overwrites mentioned parts to the incoming quantity and
	// appends new ones; parts not mentioned are left untouched.
	ModeUpdate ReconciliationMode = "update"
	// ModeReplace swaps the whole list: every existing reservation is
	// unwound and the incoming list is reserved from scratch.
	ModeReplace ReconciliationMode = "replace"
)

// ParseReconciliationMode parses a mode string. An empty string defaults
// to edit.
func ParseReconciliationMode(s string) (ReconciliationMode, error) {
	switch ReconciliationMode(s) {
	case "":
		return ModeEdit, nil
	case ModeEdit, ModeAdd, ModeUpdate, ModeReplace:
		return ReconciliationMode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidReconciliationMode, s)
	}
}

// IncomingPart is one line of a reconciliation request. UnitPrice, PartName
// and PartNumber are optional overrides; when absent they are resolved from
// the existing line or the part record.
type IncomingPart struct {
	PartID     string
	Quantity   int64
	UnitPrice  *float64
	PartName   string
	PartNumber string
}

// ReconciliationPlan is the computed outcome of a reconciliation: the new
// canonical parts list and the signed stock delta per part (negative =
// consume from stock, positive = return to stock). Nothing is applied yet.
type ReconciliationPlan struct {
	Final  []PartReference
	Deltas map[string]int64
	// Unpriced marks final lines that are new to the card and carried no
	// unit price in the request. Only these may be priced from the catalog;
	// an existing line's snapshot is authoritative even at price zero.
	Unpriced map[string]bool
}

// Delta returns the net delta for a part, zero if absent
func (p *ReconciliationPlan) Delta(partID string) int64 {
	return p.Deltas[partID]
}

// merge appends the reconciled line for an incoming part and records whether
// its price still needs resolving.
func (p *ReconciliationPlan) merge(ex PartReference, present bool, in IncomingPart, quantity int64) {
	p.Final = append(p.Final, mergeLine(ex, present, in, quantity))
	if !present && in.UnitPrice == nil {
		p.Unpriced[in.PartID] = true
	}
}

// DedupeIncoming folds duplicate part IDs in an incoming list: quantities
// sum, later price/name fields overwrite earlier ones. Order of first
// occurrence is preserved. A non-positive quantity on any line fails the
// whole request.
func DedupeIncoming(incoming []IncomingPart) ([]IncomingPart, error) {
	index := make(map[string]int, len(incoming))
	out := make([]IncomingPart, 0, len(incoming))

	for _, in := range incoming {
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("%w: part %s has quantity %d", ErrNonPositiveQuantity, in.PartID, in.Quantity)
		}

		if i, seen := index[in.PartID]; seen {
			out[i].Quantity += in.Quantity
			if in.UnitPrice != nil {
				out[i].UnitPrice = in.UnitPrice
			}
			if in.PartName != "" {
				out[i].PartName = in.PartName
			}
			if in.PartNumber != "" {
				out[i].PartNumber = in.PartNumber
			}
			continue
		}

		index[in.PartID] = len(out)
		out = append(out, in)
	}

	return out, nil
}

// PlanReconciliation computes the new canonical parts list and the signed
// stock deltas for the given mode. It is a pure function: it touches no
// repository and applies nothing. Missing name/number fields in the returned
// list are left zero for the caller to resolve, and Unpriced names the lines
// whose price must come from the catalog; TotalPrice is recomputed by the
// caller for every final entry.
func PlanReconciliation(existing []PartReference, incoming []IncomingPart, mode ReconciliationMode) (*ReconciliationPlan, error) {
	deduped, err := DedupeIncoming(incoming)
	if err != nil {
		return nil, err
	}

	existingByID := make(map[string]PartReference, len(existing))
	for _, ex := range existing {
		existingByID[ex.PartID] = ex
	}

	incomingByID := make(map[string]IncomingPart, len(deduped))
	for _, in := range deduped {
		incomingByID[in.PartID] = in
	}

	plan := &ReconciliationPlan{
		Deltas:   make(map[string]int64),
		Unpriced: make(map[string]bool),
	}

	switch mode {
	case ModeEdit:
		// Incoming is the authoritative state: only the change is drawn
		// from or returned to stock, omitted parts are fully restored.
		for _, in := range deduped {
			ex, present := existingByID[in.PartID]
			if present {
				plan.Deltas[in.PartID] = -(in.Quantity - ex.Quantity)
			} else {
				plan.Deltas[in.PartID] = -in.Quantity
			}
			plan.merge(ex, present, in, in.Quantity)
		}
		for _, ex := range existing {
			if _, mentioned := incomingByID[ex.PartID]; !mentioned {
				plan.Deltas[ex.PartID] += ex.Quantity
			}
		}

	case ModeReplace:
		// Full-list swap: restore every existing reservation and reserve
		// the incoming list from scratch. For a part present in both lists
		// the two deltas are kept independent and summed, not netted;
		// arithmetically equal to the net diff absent concurrent mutation.
		for _, ex := range existing {
			plan.Deltas[ex.PartID] += ex.Quantity
		}
		for _, in := range deduped {
			plan.Deltas[in.PartID] -= in.Quantity
			ex, present := existingByID[in.PartID]
			plan.merge(ex, present, in, in.Quantity)
		}

	case ModeAdd:
		// Additive merge on top of existing quantities; parts absent from
		// incoming are left untouched.
		for _, ex := range existing {
			if in, mentioned := incomingByID[ex.PartID]; mentioned {
				plan.Deltas[ex.PartID] = -in.Quantity
				plan.merge(ex, true, in, ex.Quantity+in.Quantity)
			} else {
				plan.Final = append(plan.Final, ex)
			}
		}
		for _, in := range deduped {
			if _, present := existingByID[in.PartID]; !present {
				plan.Deltas[in.PartID] = -in.Quantity
				plan.merge(PartReference{}, false, in, in.Quantity)
			}
		}

	case ModeUpdate:
		// Overwrite mentioned parts to the incoming quantity, append new
		// ones; parts absent from incoming are left untouched.
		for _, ex := range existing {
			if in, mentioned := incomingByID[ex.PartID]; mentioned {
				plan.Deltas[ex.PartID] = -(in.Quantity - ex.Quantity)
				plan.merge(ex, true, in, in.Quantity)
			} else {
				plan.Final = append(plan.Final, ex)
			}
		}
		for _, in := range deduped {
			if _, present := existingByID[in.PartID]; !present {
				plan.Deltas[in.PartID] = -in.Quantity
				plan.merge(PartReference{}, false, in, in.Quantity)
			}
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidReconciliationMode, mode)
	}

	// Zero-delta entries carry no stock movement
	for id, delta := range plan.Deltas {
		if delta == 0 {
			delete(plan.Deltas, id)
		}
	}

	return plan, nil
}

// mergeLine builds a final PartReference from an existing line (if present)
// and the incoming overrides, at the given final quantity.
func mergeLine(ex PartReference, present bool, in IncomingPart, quantity int64) PartReference {
	ref := PartReference{
		PartID:   in.PartID,
		Quantity: quantity,
	}

	if present {
		ref.PartName = ex.PartName
		ref.PartNumber = ex.PartNumber
		ref.UnitPrice = ex.UnitPrice
	}

	if in.PartName != "" {
		ref.PartName = in.PartName
	}
	if in.PartNumber != "" {
		ref.PartNumber = in.PartNumber
	}
	if in.UnitPrice != nil {
		ref.UnitPrice = *in.UnitPrice
	}

	ref.TotalPrice = LineTotal(ref.UnitPrice, ref.Quantity)
	return ref
}
