package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/dutyledger/dutyledger/internal/models"
)

// Adjustment classifies the direction of a wallet adjustment.
type Adjustment string

const (
	AdjustmentNone   Adjustment = "none"
	AdjustmentAdd    Adjustment = "add"
	AdjustmentDeduct Adjustment = "deduct"
)

// LabelNoAdjustment is shown when expense and receiving balance out.
const LabelNoAdjustment = "No wallet adjustment"

const rupee = "₹"

// ExpenseTotals is the expense half of Totals.
type ExpenseTotals struct {
	BillingSum      decimal.Decimal `json:"billingSum"`
	TotalAllowances decimal.Decimal `json:"totalAllowances"`
	TotalExpense    decimal.Decimal `json:"totalExpense"`
}

// ReceivingTotals is the receiving half of Totals.
type ReceivingTotals struct {
	ReceivingBillingSum decimal.Decimal `json:"receivingBillingSum"`
	ReceivingAllowances decimal.Decimal `json:"receivingAllowances"`
	ReceivingAmount     decimal.Decimal `json:"receivingAmount"`
	TotalReceiving      decimal.Decimal `json:"totalReceiving"`
}

// Totals is the reconciliation of one booking, shaped like the booking
// totals payload returned to the admin UI.
type Totals struct {
	Expense    ExpenseTotals   `json:"expense"`
	Receiving  ReceivingTotals `json:"receiving"`
	Difference decimal.Decimal `json:"difference"`
}

// ComputeTotals aggregates both records and their difference.
func ComputeTotals(expense models.ExpenseRecord, receiving models.ReceivingRecord) Totals {
	e := AggregateExpense(expense)
	r := AggregateReceiving(receiving)
	return Totals{
		Expense: ExpenseTotals{
			BillingSum:      e.BillingSum,
			TotalAllowances: e.AllowanceSum,
			TotalExpense:    e.Total,
		},
		Receiving: ReceivingTotals{
			ReceivingBillingSum: r.BillingSum,
			ReceivingAllowances: r.AllowanceSum,
			ReceivingAmount:     r.ClientAmountSum,
			TotalReceiving:      r.Total,
		},
		Difference: Difference(e.Total, r.Total),
	}
}

// Difference is expenseTotal - receivingTotal. Positive means the driver is
// owed money.
func Difference(expenseTotal, receivingTotal decimal.Decimal) decimal.Decimal {
	return expenseTotal.Sub(receivingTotal)
}

// Classify maps a difference onto the wallet adjustment direction.
func Classify(diff decimal.Decimal) Adjustment {
	switch diff.Sign() {
	case 1:
		return AdjustmentAdd
	case -1:
		return AdjustmentDeduct
	default:
		return AdjustmentNone
	}
}

// Label renders the difference for display: "Add ₹N", "Deduct ₹N" or
// "No wallet adjustment". N is the absolute value in shortest form.
func Label(diff decimal.Decimal) string {
	switch Classify(diff) {
	case AdjustmentAdd:
		return "Add " + rupee + diff.String()
	case AdjustmentDeduct:
		return "Deduct " + rupee + diff.Abs().String()
	default:
		return LabelNoAdjustment
	}
}

// FinalSettlement is the signed wallet amount once the admin override is applied.
func FinalSettlement(diff, adminAdjustments decimal.Decimal) decimal.Decimal {
	return diff.Add(adminAdjustments)
}

// Preview is an advisory settlement computed from records that may not have
// been saved yet. It is never written anywhere.
type Preview struct {
	Totals           Totals          `json:"totals"`
	Adjustment       Adjustment      `json:"adjustment"`
	Label            string          `json:"label"`
	AdminAdjustments decimal.Decimal `json:"adminAdjustments"`
	FinalSettlement  decimal.Decimal `json:"finalSettlement"`
	FinalAdjustment  Adjustment      `json:"finalAdjustment"`
	FinalLabel       string          `json:"finalLabel"`
}

// PreviewSettlement reconciles the two records and applies adminAdjustments.
func PreviewSettlement(expense models.ExpenseRecord, receiving models.ReceivingRecord, adminAdjustments decimal.Decimal) Preview {
	totals := ComputeTotals(expense, receiving)
	final := FinalSettlement(totals.Difference, adminAdjustments)
	return Preview{
		Totals:           totals,
		Adjustment:       Classify(totals.Difference),
		Label:            Label(totals.Difference),
		AdminAdjustments: adminAdjustments,
		FinalSettlement:  final,
		FinalAdjustment:  Classify(final),
		FinalLabel:       Label(final),
	}
}

// Drift describes how far a preview is from the authoritative totals.
type Drift struct {
	Drifted bool            `json:"drifted"`
	Delta   decimal.Decimal `json:"delta"`
}

// CompareTotals reports whether preview and server disagree on the
// difference. Delta is preview minus server.
func CompareTotals(preview, server Totals) Drift {
	delta := preview.Difference.Sub(server.Difference)
	return Drift{
		Drifted: !delta.IsZero(),
		Delta:   delta,
	}
}
