// Package calculator reconciles a booking's expense record against its
// receiving record.
//
// Everything here is pure: inputs are value snapshots and nothing is
// mutated in place. The same functions back both the live preview a client
// sees while editing and the authoritative figure written at settlement, so
// the two agree whenever they are fed the same records.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/dutyledger/dutyledger/internal/models"
)

// ExpenseAggregate is the derived sum of an expense record.
type ExpenseAggregate struct {
	BillingSum   decimal.Decimal
	AllowanceSum decimal.Decimal
	Total        decimal.Decimal
}

// ReceivingAggregate is the derived sum of a receiving record.
type ReceivingAggregate struct {
	BillingSum      decimal.Decimal
	AllowanceSum    decimal.Decimal
	ClientAmountSum decimal.Decimal
	Total           decimal.Decimal
}

// BillingSum adds up the amounts of all items. A nil slice sums to zero.
func BillingSum(items []models.BillingItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Amount.Decimal())
	}
	return sum
}

// AllowanceSum adds the daily, outstation and night allowances.
func AllowanceSum(a models.Allowances) decimal.Decimal {
	return a.DailyAllowance.Decimal().
		Add(a.OutstationAllowance.Decimal()).
		Add(a.NightAllowance.Decimal())
}

// ClientAmountSum adds the four client-side money fields of a receiving record.
func ClientAmountSum(r models.ReceivingRecord) decimal.Decimal {
	return r.ReceivedFromClient.Decimal().
		Add(r.ClientAdvanceAmount.Decimal()).
		Add(r.ClientBonusAmount.Decimal()).
		Add(r.IncentiveAmount.Decimal())
}

// AggregateExpense computes total = billing + allowances.
func AggregateExpense(r models.ExpenseRecord) ExpenseAggregate {
	billing := BillingSum(r.BillingItems)
	allowances := AllowanceSum(r.Allowances)
	return ExpenseAggregate{
		BillingSum:   billing,
		AllowanceSum: allowances,
		Total:        billing.Add(allowances),
	}
}

// AggregateReceiving computes total = billing + allowances + client amounts.
func AggregateReceiving(r models.ReceivingRecord) ReceivingAggregate {
	billing := BillingSum(r.BillingItems)
	allowances := AllowanceSum(r.Allowances)
	client := ClientAmountSum(r)
	return ReceivingAggregate{
		BillingSum:      billing,
		AllowanceSum:    allowances,
		ClientAmountSum: client,
		Total:           billing.Add(allowances).Add(client),
	}
}

// CategoryTotals sums item amounts per category. Items without a category
// are grouped under models.CategoryNone; unknown categories keep their raw
// value as the key.
func CategoryTotals(items []models.BillingItem) map[models.Category]decimal.Decimal {
	totals := make(map[models.Category]decimal.Decimal)
	for _, item := range items {
		totals[item.Category] = totals[item.Category].Add(item.Amount.Decimal())
	}
	return totals
}
