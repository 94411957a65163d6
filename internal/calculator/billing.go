package calculator

import (
	"fmt"
	"slices"

	"github.com/dutyledger/dutyledger/internal/models"
	"github.com/dutyledger/dutyledger/internal/money"
)

// BillingField names an editable field of a billing item.
type BillingField string

const (
	FieldCategory BillingField = "category"
	FieldAmount   BillingField = "amount"
	FieldNote     BillingField = "note"
)

// EditOp is the kind of change a BillingEdit makes.
type EditOp string

const (
	EditAdd    EditOp = "add"
	EditRemove EditOp = "remove"
	EditUpdate EditOp = "update"
)

// BillingEdit is one form edit to a list of billing items.
type BillingEdit struct {
	Op    EditOp       `json:"op"`
	Index int          `json:"index"`
	Field BillingField `json:"field,omitempty"`
	Value string       `json:"value,omitempty"`
}

// Validate rejects edits that can never apply. Index bounds are not checked
// here; out-of-range edits are no-ops.
func (e BillingEdit) Validate() error {
	switch e.Op {
	case EditAdd, EditRemove:
		return nil
	case EditUpdate:
		switch e.Field {
		case FieldCategory, FieldAmount, FieldNote:
			return nil
		}
		return fmt.Errorf("unknown billing field %q", e.Field)
	}
	return fmt.Errorf("unknown edit op %q", e.Op)
}

// AddBillingItem returns a new slice with an empty item appended.
func AddBillingItem(items []models.BillingItem) []models.BillingItem {
	out := make([]models.BillingItem, len(items), len(items)+1)
	copy(out, items)
	return append(out, models.BillingItem{
		Category: models.CategoryNone,
		Amount:   money.AmountFromFloat(0),
	})
}

// RemoveBillingItem returns a new slice without the item at index. An
// out-of-range index returns an unchanged copy.
func RemoveBillingItem(items []models.BillingItem, index int) []models.BillingItem {
	if index < 0 || index >= len(items) {
		return slices.Clone(items)
	}
	out := make([]models.BillingItem, 0, len(items)-1)
	out = append(out, items[:index]...)
	return append(out, items[index+1:]...)
}

// UpdateBillingItem returns a new slice where field of the item at index is
// set from raw. Amounts are coerced to a number (garbage becomes zero); the
// other fields keep the raw string.
func UpdateBillingItem(items []models.BillingItem, index int, field BillingField, raw string) []models.BillingItem {
	out := slices.Clone(items)
	if index < 0 || index >= len(out) {
		return out
	}
	item := out[index]
	switch field {
	case FieldAmount:
		item.Amount = money.ParseAmount(raw)
	case FieldCategory:
		item.Category = models.Category(raw)
	case FieldNote:
		item.Note = raw
	default:
		return out
	}
	out[index] = item
	return out
}

// ApplyEdits folds edits over items in order and returns the final slice.
// The input slice is left untouched.
func ApplyEdits(items []models.BillingItem, edits []BillingEdit) []models.BillingItem {
	out := slices.Clone(items)
	for _, e := range edits {
		switch e.Op {
		case EditAdd:
			out = AddBillingItem(out)
		case EditRemove:
			out = RemoveBillingItem(out, e.Index)
		case EditUpdate:
			out = UpdateBillingItem(out, e.Index, e.Field, e.Value)
		}
	}
	return out
}
