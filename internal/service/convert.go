package service

import (
	"fmt"

	"github.com/dutyledger/dutyledger/internal/calculator"
	"github.com/dutyledger/dutyledger/internal/models"
	"github.com/dutyledger/dutyledger/internal/money"
	"github.com/dutyledger/dutyledger/pkg/api"
)

func toAPIBooking(b *models.Booking) *api.Booking {
	totals := calculator.ComputeTotals(b.Expense, b.Receiving)
	expense := b.Expense
	if expense.BillingItems == nil {
		expense.BillingItems = []models.BillingItem{}
	}
	receiving := b.Receiving
	if receiving.BillingItems == nil {
		receiving.BillingItems = []models.BillingItem{}
	}
	return &api.Booking{
		BookingID:  b.ID,
		DriverID:   b.DriverID,
		Reference:  b.Reference,
		Status:     string(b.Status),
		Expense:    expense,
		Receiving:  receiving,
		Settlement: toAPISettlement(b.Settlement),
		Totals:     totals,
		Label:      calculator.Label(totals.Difference),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func toAPISummary(b *models.Booking) *api.BookingSummary {
	diff := calculator.ComputeTotals(b.Expense, b.Receiving).Difference
	return &api.BookingSummary{
		BookingID:  b.ID,
		DriverID:   b.DriverID,
		Reference:  b.Reference,
		Status:     string(b.Status),
		IsSettled:  b.IsSettled(),
		Difference: diff,
		Label:      calculator.Label(diff),
		CreatedAt:  b.CreatedAt,
	}
}

func toAPISettlement(s *models.Settlement) *api.Settlement {
	if s == nil {
		return nil
	}
	ids := s.TransactionIDs
	if ids == nil {
		ids = []string{}
	}
	return &api.Settlement{
		BookingID:        s.BookingID,
		DriverID:         s.DriverID,
		IsSettled:        s.IsSettled,
		CalculatedAmount: s.CalculatedAmount,
		AdminAdjustments: s.AdminAdjustments,
		SettlementAmount: s.SettlementAmount,
		Status:           string(s.Status),
		Notes:            s.Notes,
		SettledBy:        s.SettledBy,
		SettledAt:        s.SettledAt,
		Label:            calculator.Label(s.SettlementAmount),
		TransactionIDs:   ids,
	}
}

func toAPIAudit(a *models.SettlementAudit) *api.SettlementAudit {
	return &api.SettlementAudit{
		AuditID:        a.ID,
		BookingID:      a.BookingID,
		ActorID:        a.ActorID,
		Action:         string(a.Action),
		PreviousAmount: a.PreviousAmount,
		NewAmount:      a.NewAmount,
		Reason:         a.Reason,
		CreatedAt:      a.CreatedAt,
	}
}

func toAPITransaction(t *models.WalletTransaction) *api.WalletTransaction {
	return &api.WalletTransaction{
		TransactionID: t.ID,
		BookingID:     t.BookingID,
		Type:          string(t.Type),
		Amount:        t.Amount,
		Reason:        t.Reason,
		CreatedAt:     t.CreatedAt,
	}
}

// validateItems rejects negative billing amounts. Unknown categories are kept.
func validateItems(side string, items []models.BillingItem) error {
	for i, item := range items {
		if item.Amount.Decimal().IsNegative() {
			return fmt.Errorf("%s billing item %d: amount must not be negative", side, i)
		}
	}
	return nil
}

func validateAmounts(side string, fields map[string]money.Amount) error {
	for name, v := range fields {
		if v.Decimal().IsNegative() {
			return fmt.Errorf("%s %s must not be negative", side, name)
		}
	}
	return nil
}

func allowanceFields(a models.Allowances) map[string]money.Amount {
	return map[string]money.Amount{
		"dailyAllowance":      a.DailyAllowance,
		"outstationAllowance": a.OutstationAllowance,
		"nightAllowance":      a.NightAllowance,
	}
}

func validateExpense(r models.ExpenseRecord) error {
	if err := validateAmounts("expense", allowanceFields(r.Allowances)); err != nil {
		return err
	}
	return validateItems("expense", r.BillingItems)
}

func validateReceiving(r models.ReceivingRecord) error {
	fields := allowanceFields(r.Allowances)
	fields["receivedFromClient"] = r.ReceivedFromClient
	fields["clientAdvanceAmount"] = r.ClientAdvanceAmount
	fields["clientBonusAmount"] = r.ClientBonusAmount
	fields["incentiveAmount"] = r.IncentiveAmount
	if err := validateAmounts("receiving", fields); err != nil {
		return err
	}
	return validateItems("receiving", r.BillingItems)
}
