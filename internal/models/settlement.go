package models

import "github.com/shopspring/decimal"

// SettlementStatus records how the latest settlement was produced.
type SettlementStatus string

const (
	SettlementSettled SettlementStatus = "settled"
	SettlementForced  SettlementStatus = "force_settled"
)

// Settlement is the authoritative wallet adjustment for one booking.
type Settlement struct {
	// BookingID is the booking this settlement finalizes. One per booking.
	BookingID string

	// DriverID is denormalized from the booking for ledger queries.
	DriverID string

	IsSettled bool

	// CalculatedAmount is expense total minus receiving total at settle time.
	CalculatedAmount decimal.Decimal

	// AdminAdjustments is the manual override added on top of CalculatedAmount.
	AdminAdjustments decimal.Decimal

	// SettlementAmount is CalculatedAmount + AdminAdjustments; the signed
	// amount applied to the driver wallet.
	SettlementAmount decimal.Decimal

	Status SettlementStatus

	// Notes is the admin's note. Required for forced re-settlement.
	Notes string

	// SettledBy is the user ID of the admin who settled.
	SettledBy string

	SettledAt int64
	UpdatedAt int64

	// TransactionIDs are the wallet transactions posted by this settlement,
	// oldest first.
	TransactionIDs []string
}

// WalletTransactionType is the direction of a wallet posting.
type WalletTransactionType string

const (
	WalletCredit WalletTransactionType = "credit"
	WalletDebit  WalletTransactionType = "debit"
)

// WalletTransaction is one posting on a driver's wallet.
type WalletTransaction struct {
	ID        string
	DriverID  string
	BookingID string
	Type      WalletTransactionType

	// Amount is always positive; Type carries the sign.
	Amount decimal.Decimal

	Reason    string
	CreatedAt int64
}

// Signed returns the amount with the sign implied by Type.
func (t WalletTransaction) Signed() decimal.Decimal {
	if t.Type == WalletDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// AuditAction names the kind of settlement write that was audited.
type AuditAction string

const (
	AuditSettle      AuditAction = "settle"
	AuditForceSettle AuditAction = "force_settle"
)

// SettlementAudit records who settled a booking and what changed.
type SettlementAudit struct {
	ID             string
	BookingID      string
	ActorID        string
	Action         AuditAction
	PreviousAmount decimal.Decimal
	NewAmount      decimal.Decimal
	Reason         string
	CreatedAt      int64
}
