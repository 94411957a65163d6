package models

import "github.com/dutyledger/dutyledger/internal/money"

// Category classifies a billing line item.
type Category string

const (
	CategoryNone          Category = ""
	CategoryParking       Category = "Parking"
	CategoryToll          Category = "Toll"
	CategoryMCD           Category = "MCD"
	CategoryInterstateTax Category = "InterstateTax"
	CategoryFuel          Category = "Fuel"
	CategoryOther         Category = "Other"
)

// BillingItem is one itemized line on an expense or receiving record.
type BillingItem struct {
	Category Category     `json:"category"`
	Amount   money.Amount `json:"amount"`
	Note     string       `json:"note,omitempty"`
}

// Allowances are the fixed per-booking stipends shared by both records.
type Allowances struct {
	DailyAllowance      money.Amount `json:"dailyAllowance"`
	OutstationAllowance money.Amount `json:"outstationAllowance"`
	NightAllowance      money.Amount `json:"nightAllowance"`
}

// ExpenseRecord is the driver-side cost record for a booking.
type ExpenseRecord struct {
	Allowances
	BillingItems []BillingItem `json:"billingItems"`
	Notes        string        `json:"notes,omitempty"`
}

// ReceivingRecord is the client-payment side of a booking.
type ReceivingRecord struct {
	Allowances
	ReceivedFromClient  money.Amount  `json:"receivedFromClient"`
	ClientAdvanceAmount money.Amount  `json:"clientAdvanceAmount"`
	ClientBonusAmount   money.Amount  `json:"clientBonusAmount"`
	IncentiveAmount     money.Amount  `json:"incentiveAmount"`
	BillingItems        []BillingItem `json:"billingItems"`
	Notes               string        `json:"notes,omitempty"`
}

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingInProgress, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Booking is a driver duty with its expense and receiving records.
type Booking struct {
	// ID is the unique identifier for the booking (UUID format).
	ID string

	// DriverID identifies the driver whose wallet is adjusted on settlement.
	DriverID string

	// Reference is the human-facing booking number.
	Reference string

	Status BookingStatus

	Expense   ExpenseRecord
	Receiving ReceivingRecord

	// Settlement is nil until the booking has been settled once.
	Settlement *Settlement

	CreatedAt int64
	UpdatedAt int64
}

// IsSettled reports whether an authoritative settlement exists.
func (b *Booking) IsSettled() bool {
	return b.Settlement != nil && b.Settlement.IsSettled
}
