// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/dutyledger/dutyledger/internal/models"
)

var (
	// ErrNotFound is returned when a booking or settlement does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadySettled is returned when a settled booking is settled again
	// without force, or when its records are edited after settlement.
	ErrAlreadySettled = errors.New("booking already settled")
)

// SettleParams is the authoritative settlement write for one booking.
// The calculated amount is not a parameter: the store derives it from the
// records it reads inside the settlement transaction.
type SettleParams struct {
	BookingID string
	ActorID   string

	AdminAdjustments decimal.Decimal
	Notes            string

	// MarkCompleted moves the booking to completed in the same transaction.
	MarkCompleted bool

	// Force allows re-settling a booking that is already settled. Only the
	// delta against the previous settlement amount is posted to the wallet.
	Force bool
}

// SettleResult describes a committed settlement write.
type SettleResult struct {
	Settlement *models.Settlement

	// PreviousAmount is the settlement amount replaced by a forced
	// re-settlement, zero otherwise.
	PreviousAmount decimal.Decimal

	// Posting is the wallet transaction written by this call, or nil when
	// the settlement amount did not change.
	Posting *models.WalletTransaction
}

// BookingFilter narrows ListBookings. Zero values mean no filter.
type BookingFilter struct {
	Status   models.BookingStatus
	DriverID string
	Settled  *bool
}

// Store defines the interface for booking ledger storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateBooking persists a new booking with its records.
	// The booking.ID field will be populated by the store.
	CreateBooking(ctx context.Context, booking *models.Booking) error

	// GetBooking retrieves a booking with both records and its settlement.
	// Returns ErrNotFound if the booking does not exist.
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)

	// ListBookings returns bookings newest first.
	ListBookings(ctx context.Context, filter BookingFilter) ([]*models.Booking, error)

	// UpdateBookingStatus changes the lifecycle status of a booking.
	UpdateBookingStatus(ctx context.Context, bookingID string, status models.BookingStatus) error

	// SaveExpense replaces the expense record of an unsettled booking.
	SaveExpense(ctx context.Context, bookingID string, record models.ExpenseRecord) error

	// SaveReceiving replaces the receiving record of an unsettled booking.
	SaveReceiving(ctx context.Context, bookingID string, record models.ReceivingRecord) error

	// SettleBooking computes the settlement from the stored records, writes
	// it, posts the wallet delta and records an audit entry atomically.
	SettleBooking(ctx context.Context, params SettleParams) (*SettleResult, error)

	// GetSettlement retrieves the settlement of a booking.
	GetSettlement(ctx context.Context, bookingID string) (*models.Settlement, error)

	// ListSettlements returns all settlements, most recently settled first.
	ListSettlements(ctx context.Context) ([]*models.Settlement, error)

	// ListSettlementAudits returns the audit trail of a booking, oldest first.
	ListSettlementAudits(ctx context.Context, bookingID string) ([]*models.SettlementAudit, error)

	// WalletBalance sums all postings for a driver.
	WalletBalance(ctx context.Context, driverID string) (decimal.Decimal, error)

	// ListWalletTransactions returns a driver's postings, newest first.
	ListWalletTransactions(ctx context.Context, driverID string) ([]*models.WalletTransaction, error)

	// Close releases any resources held by the store.
	Close() error
}
