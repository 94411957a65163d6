package calculator

import (
	"testing"

	"github.com/dutyledger/dutyledger/internal/models"
)

func sampleItems() []models.BillingItem {
	return []models.BillingItem{
		{Category: models.CategoryToll, Amount: amt(120), Note: "NH48"},
		{Category: models.CategoryParking, Amount: amt(60)},
	}
}

func sameItem(a, b models.BillingItem) bool {
	return a.Category == b.Category && a.Note == b.Note && a.Amount.Equal(b.Amount)
}

func TestAddBillingItem(t *testing.T) {
	items := sampleItems()
	got := AddBillingItem(items)

	if len(items) != 2 {
		t.Fatalf("input was modified: len = %d", len(items))
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	added := got[2]
	if added.Category != models.CategoryNone || added.Note != "" || !added.Amount.Decimal().IsZero() {
		t.Errorf("added item = %+v, want empty item with zero amount", added)
	}

	got[0].Note = "changed"
	if items[0].Note != "NH48" {
		t.Error("result shares its backing array with the input")
	}
}

func TestAddBillingItemToNil(t *testing.T) {
	got := AddBillingItem(nil)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
}

func TestRemoveBillingItem(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		wantLen   int
		wantFirst models.Category
	}{
		{"remove first", 0, 1, models.CategoryParking},
		{"remove last", 1, 1, models.CategoryToll},
		{"negative index is a no-op", -1, 2, models.CategoryToll},
		{"index past end is a no-op", 2, 2, models.CategoryToll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := sampleItems()
			got := RemoveBillingItem(items, tt.index)
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
			if got[0].Category != tt.wantFirst {
				t.Errorf("first category = %q, want %q", got[0].Category, tt.wantFirst)
			}
			if len(items) != 2 || items[0].Category != models.CategoryToll || items[1].Category != models.CategoryParking {
				t.Errorf("input was modified: %+v", items)
			}
		})
	}
}

func TestUpdateBillingItem(t *testing.T) {
	tests := []struct {
		name   string
		index  int
		field  BillingField
		raw    string
		verify func(t *testing.T, got []models.BillingItem)
	}{
		{
			name:  "amount is coerced to a number",
			index: 0,
			field: FieldAmount,
			raw:   "250.75",
			verify: func(t *testing.T, got []models.BillingItem) {
				if !got[0].Amount.Decimal().Equal(dec("250.75")) {
					t.Errorf("amount = %s, want 250.75", got[0].Amount)
				}
			},
		},
		{
			name:  "garbage amount becomes zero",
			index: 1,
			field: FieldAmount,
			raw:   "12abc",
			verify: func(t *testing.T, got []models.BillingItem) {
				if !got[1].Amount.IsSet() || !got[1].Amount.Decimal().IsZero() {
					t.Errorf("amount = %v, want explicit 0", got[1].Amount)
				}
			},
		},
		{
			name:  "category is stored raw",
			index: 1,
			field: FieldCategory,
			raw:   "Snacks",
			verify: func(t *testing.T, got []models.BillingItem) {
				if got[1].Category != "Snacks" {
					t.Errorf("category = %q, want Snacks", got[1].Category)
				}
			},
		},
		{
			name:  "note is stored raw",
			index: 0,
			field: FieldNote,
			raw:   "  receipt lost ",
			verify: func(t *testing.T, got []models.BillingItem) {
				if got[0].Note != "  receipt lost " {
					t.Errorf("note = %q", got[0].Note)
				}
			},
		},
		{
			name:  "out of range index is a no-op",
			index: 5,
			field: FieldAmount,
			raw:   "1",
			verify: func(t *testing.T, got []models.BillingItem) {
				if !got[0].Amount.Decimal().Equal(dec("120")) || !got[1].Amount.Decimal().Equal(dec("60")) {
					t.Errorf("items changed: %+v", got)
				}
			},
		},
		{
			name:  "unknown field is a no-op",
			index: 0,
			field: BillingField("colour"),
			raw:   "red",
			verify: func(t *testing.T, got []models.BillingItem) {
				if !sameItem(got[0], sampleItems()[0]) {
					t.Errorf("item changed: %+v", got[0])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := sampleItems()
			got := UpdateBillingItem(items, tt.index, tt.field, tt.raw)
			tt.verify(t, got)

			if &got[0] == &items[0] {
				t.Error("result shares its backing array with the input")
			}
			want := sampleItems()
			for i := range items {
				if !sameItem(items[i], want[i]) {
					t.Errorf("input item %d was modified: %+v", i, items[i])
				}
			}
		})
	}
}

func TestApplyEdits(t *testing.T) {
	items := sampleItems()
	edits := []BillingEdit{
		{Op: EditAdd},
		{Op: EditUpdate, Index: 2, Field: FieldCategory, Value: string(models.CategoryFuel)},
		{Op: EditUpdate, Index: 2, Field: FieldAmount, Value: "900"},
		{Op: EditRemove, Index: 0},
	}

	got := ApplyEdits(items, edits)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Category != models.CategoryParking || got[1].Category != models.CategoryFuel {
		t.Errorf("categories = %q, %q", got[0].Category, got[1].Category)
	}
	if !BillingSum(got).Equal(dec("960")) {
		t.Errorf("sum = %s, want 960", BillingSum(got))
	}
	if len(items) != 2 || items[0].Category != models.CategoryToll {
		t.Errorf("input was modified: %+v", items)
	}
}

func TestBillingEditValidate(t *testing.T) {
	tests := []struct {
		edit    BillingEdit
		wantErr bool
	}{
		{BillingEdit{Op: EditAdd}, false},
		{BillingEdit{Op: EditRemove, Index: 3}, false},
		{BillingEdit{Op: EditUpdate, Field: FieldNote}, false},
		{BillingEdit{Op: EditUpdate, Field: "colour"}, true},
		{BillingEdit{Op: "rename"}, true},
	}

	for _, tt := range tests {
		err := tt.edit.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%+v) error = %v, wantErr %v", tt.edit, err, tt.wantErr)
		}
	}
}
