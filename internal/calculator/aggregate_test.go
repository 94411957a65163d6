package calculator

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dutyledger/dutyledger/internal/models"
	"github.com/dutyledger/dutyledger/internal/money"
)

func amt(f float64) money.Amount { return money.AmountFromFloat(f) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAggregateExpense(t *testing.T) {
	tests := []struct {
		name          string
		record        models.ExpenseRecord
		wantBilling   string
		wantAllowance string
		wantTotal     string
	}{
		{
			name:          "empty record",
			record:        models.ExpenseRecord{},
			wantBilling:   "0",
			wantAllowance: "0",
			wantTotal:     "0",
		},
		{
			name: "allowances only",
			record: models.ExpenseRecord{
				Allowances: models.Allowances{
					DailyAllowance:      amt(300),
					OutstationAllowance: amt(150),
					NightAllowance:      amt(75.5),
				},
			},
			wantBilling:   "0",
			wantAllowance: "525.5",
			wantTotal:     "525.5",
		},
		{
			name: "billing and allowances",
			record: models.ExpenseRecord{
				Allowances: models.Allowances{DailyAllowance: amt(100)},
				BillingItems: []models.BillingItem{
					{Category: models.CategoryToll, Amount: amt(120)},
					{Category: models.CategoryParking, Amount: amt(80.25)},
					{Category: models.CategoryNone},
				},
			},
			wantBilling:   "200.25",
			wantAllowance: "100",
			wantTotal:     "300.25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AggregateExpense(tt.record)
			if !got.BillingSum.Equal(dec(tt.wantBilling)) {
				t.Errorf("BillingSum = %s, want %s", got.BillingSum, tt.wantBilling)
			}
			if !got.AllowanceSum.Equal(dec(tt.wantAllowance)) {
				t.Errorf("AllowanceSum = %s, want %s", got.AllowanceSum, tt.wantAllowance)
			}
			if !got.Total.Equal(dec(tt.wantTotal)) {
				t.Errorf("Total = %s, want %s", got.Total, tt.wantTotal)
			}
			if !got.Total.Equal(got.BillingSum.Add(got.AllowanceSum)) {
				t.Errorf("Total %s is not BillingSum + AllowanceSum", got.Total)
			}
		})
	}
}

func TestAggregateReceiving(t *testing.T) {
	record := models.ReceivingRecord{
		Allowances:          models.Allowances{NightAllowance: amt(50)},
		ReceivedFromClient:  amt(1000),
		ClientAdvanceAmount: amt(200),
		ClientBonusAmount:   amt(25),
		IncentiveAmount:     amt(10),
		BillingItems: []models.BillingItem{
			{Category: models.CategoryFuel, Amount: amt(400)},
		},
	}

	got := AggregateReceiving(record)
	if !got.BillingSum.Equal(dec("400")) {
		t.Errorf("BillingSum = %s, want 400", got.BillingSum)
	}
	if !got.AllowanceSum.Equal(dec("50")) {
		t.Errorf("AllowanceSum = %s, want 50", got.AllowanceSum)
	}
	if !got.ClientAmountSum.Equal(dec("1235")) {
		t.Errorf("ClientAmountSum = %s, want 1235", got.ClientAmountSum)
	}
	if !got.Total.Equal(dec("1685")) {
		t.Errorf("Total = %s, want 1685", got.Total)
	}
}

// Records decoded from loosely typed form payloads treat anything that is
// not a number as zero.
func TestAggregateMalformedInput(t *testing.T) {
	payload := `{
		"dailyAllowance": "x",
		"outstationAllowance": null,
		"nightAllowance": "",
		"receivedFromClient": "abc",
		"clientAdvanceAmount": "12.5",
		"billingItems": [
			{"category": "Toll", "amount": "oops"},
			{"category": "Fuel", "amount": null},
			{"category": "", "amount": "30"},
			{"category": "Parking"}
		]
	}`

	var receiving models.ReceivingRecord
	if err := json.Unmarshal([]byte(payload), &receiving); err != nil {
		t.Fatalf("unmarshal receiving: %v", err)
	}
	r := AggregateReceiving(receiving)
	if !r.AllowanceSum.IsZero() {
		t.Errorf("AllowanceSum = %s, want 0", r.AllowanceSum)
	}
	if !r.BillingSum.Equal(dec("30")) {
		t.Errorf("BillingSum = %s, want 30", r.BillingSum)
	}
	if !r.ClientAmountSum.Equal(dec("12.5")) {
		t.Errorf("ClientAmountSum = %s, want 12.5", r.ClientAmountSum)
	}

	var expense models.ExpenseRecord
	if err := json.Unmarshal([]byte(`{"dailyAllowance": "x", "billingItems": []}`), &expense); err != nil {
		t.Fatalf("unmarshal expense: %v", err)
	}
	e := AggregateExpense(expense)
	if !e.AllowanceSum.IsZero() || !e.Total.IsZero() {
		t.Errorf("got allowance %s total %s, want 0 and 0", e.AllowanceSum, e.Total)
	}
}

func TestCategoryTotals(t *testing.T) {
	items := []models.BillingItem{
		{Category: models.CategoryToll, Amount: amt(50)},
		{Category: models.CategoryToll, Amount: amt(25)},
		{Category: models.CategoryFuel, Amount: amt(900)},
		{Category: "Snacks", Amount: amt(40)},
		{Amount: amt(5)},
	}

	totals := CategoryTotals(items)
	want := map[models.Category]string{
		models.CategoryToll: "75",
		models.CategoryFuel: "900",
		"Snacks":            "40",
		models.CategoryNone: "5",
	}
	if len(totals) != len(want) {
		t.Fatalf("got %d categories, want %d", len(totals), len(want))
	}
	for cat, w := range want {
		if !totals[cat].Equal(dec(w)) {
			t.Errorf("total for %q = %s, want %s", cat, totals[cat], w)
		}
	}
}
