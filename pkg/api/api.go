// Package api holds the request and response messages of the dutyledger.v1
// BookingService. Messages travel as JSON.
package api

import (
	"github.com/shopspring/decimal"

	"github.com/dutyledger/dutyledger/internal/calculator"
	"github.com/dutyledger/dutyledger/internal/models"
	"github.com/dutyledger/dutyledger/internal/money"
)

// Record and calculator shapes are shared with the server as aliases so that
// clients outside this module can still name them.
type (
	Amount          = money.Amount
	BillingItem     = models.BillingItem
	Allowances      = models.Allowances
	ExpenseRecord   = models.ExpenseRecord
	ReceivingRecord = models.ReceivingRecord
	BillingEdit     = calculator.BillingEdit
	Totals          = calculator.Totals
	Preview         = calculator.Preview
	Drift           = calculator.Drift
)

// Booking is a booking with its records and derived totals.
type Booking struct {
	BookingID  string          `json:"bookingId"`
	DriverID   string          `json:"driverId"`
	Reference  string          `json:"reference"`
	Status     string          `json:"status"`
	Expense    ExpenseRecord   `json:"expense"`
	Receiving  ReceivingRecord `json:"receiving"`
	Settlement *Settlement     `json:"settlement,omitempty"`
	Totals     Totals          `json:"totals"`
	Label      string          `json:"label"`
	CreatedAt  int64           `json:"createdAt"`
	UpdatedAt  int64           `json:"updatedAt"`
}

// BookingSummary is one row of a booking list.
type BookingSummary struct {
	BookingID  string          `json:"bookingId"`
	DriverID   string          `json:"driverId"`
	Reference  string          `json:"reference"`
	Status     string          `json:"status"`
	IsSettled  bool            `json:"isSettled"`
	Difference decimal.Decimal `json:"difference"`
	Label      string          `json:"label"`
	CreatedAt  int64           `json:"createdAt"`
}

// Settlement is the authoritative settlement of a booking.
type Settlement struct {
	BookingID        string          `json:"bookingId"`
	DriverID         string          `json:"driverId"`
	IsSettled        bool            `json:"isSettled"`
	CalculatedAmount decimal.Decimal `json:"calculatedAmount"`
	AdminAdjustments decimal.Decimal `json:"adminAdjustments"`
	SettlementAmount decimal.Decimal `json:"settlementAmount"`
	Status           string          `json:"status"`
	Notes            string          `json:"notes,omitempty"`
	SettledBy        string          `json:"settledBy"`
	SettledAt        int64           `json:"settledAt"`
	Label            string          `json:"label"`
	TransactionIDs   []string        `json:"transactionIds"`
}

type SettlementAudit struct {
	AuditID        string          `json:"auditId"`
	BookingID      string          `json:"bookingId"`
	ActorID        string          `json:"actorId"`
	Action         string          `json:"action"`
	PreviousAmount decimal.Decimal `json:"previousAmount"`
	NewAmount      decimal.Decimal `json:"newAmount"`
	Reason         string          `json:"reason,omitempty"`
	CreatedAt      int64           `json:"createdAt"`
}

type WalletTransaction struct {
	TransactionID string          `json:"transactionId"`
	BookingID     string          `json:"bookingId"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Reason        string          `json:"reason,omitempty"`
	CreatedAt     int64           `json:"createdAt"`
}

type CreateBookingRequest struct {
	DriverID  string           `json:"driverId"`
	Reference string           `json:"reference,omitempty"`
	Expense   *ExpenseRecord   `json:"expense,omitempty"`
	Receiving *ReceivingRecord `json:"receiving,omitempty"`
}

type CreateBookingResponse struct {
	Booking *Booking `json:"booking"`
}

type GetBookingRequest struct {
	BookingID string `json:"bookingId"`
}

type GetBookingResponse struct {
	Booking *Booking `json:"booking"`
}

type ListBookingsRequest struct {
	Status   string `json:"status,omitempty"`
	DriverID string `json:"driverId,omitempty"`
	// Settled filters on settlement state when set.
	Settled *bool `json:"settled,omitempty"`
}

type ListBookingsResponse struct {
	Bookings []*BookingSummary `json:"bookings"`
}

type UpdateBookingStatusRequest struct {
	BookingID string `json:"bookingId"`
	Status    string `json:"status"`
}

type UpdateBookingStatusResponse struct {
	Booking *Booking `json:"booking"`
}

type SaveExpenseRequest struct {
	BookingID string        `json:"bookingId"`
	Expense   ExpenseRecord `json:"expense"`
}

type SaveExpenseResponse struct {
	Booking *Booking `json:"booking"`
}

type SaveReceivingRequest struct {
	BookingID string          `json:"bookingId"`
	Receiving ReceivingRecord `json:"receiving"`
}

type SaveReceivingResponse struct {
	Booking *Booking `json:"booking"`
}

type GetBookingTotalsRequest struct {
	BookingID string `json:"bookingId"`
}

type GetBookingTotalsResponse struct {
	BookingID  string `json:"bookingId"`
	Totals     Totals `json:"totals"`
	Adjustment string `json:"adjustment"`
	Label      string `json:"label"`
	IsSettled  bool   `json:"isSettled"`
}

// PreviewSettlementRequest carries the client's draft records. Missing
// records fall back to the stored ones.
type PreviewSettlementRequest struct {
	BookingID        string           `json:"bookingId"`
	Expense          *ExpenseRecord   `json:"expense,omitempty"`
	Receiving        *ReceivingRecord `json:"receiving,omitempty"`
	AdminAdjustments Amount           `json:"adminAdjustments"`
}

type PreviewSettlementResponse struct {
	Preview      Preview `json:"preview"`
	ServerTotals Totals  `json:"serverTotals"`
	Drift        Drift   `json:"drift"`
}

type ApplyBillingEditsRequest struct {
	Items []BillingItem `json:"items"`
	Edits []BillingEdit `json:"edits"`
}

type ApplyBillingEditsResponse struct {
	Items          []BillingItem              `json:"items"`
	BillingSum     decimal.Decimal            `json:"billingSum"`
	CategoryTotals map[string]decimal.Decimal `json:"categoryTotals"`
}

type SettleBookingRequest struct {
	BookingID        string `json:"bookingId"`
	AdminAdjustments Amount `json:"adminAdjustments"`
	Notes            string `json:"notes,omitempty"`
	MarkCompleted    bool   `json:"markCompleted"`
	ForceSettlement  bool   `json:"forceSettlement"`
}

type SettleBookingResponse struct {
	Settlement *Settlement `json:"settlement"`
	Totals     Totals      `json:"totals"`
	Label      string      `json:"label"`
}

type ListSettlementAuditsRequest struct {
	BookingID string `json:"bookingId"`
}

type ListSettlementAuditsResponse struct {
	Audits []*SettlementAudit `json:"audits"`
}

type GetWalletRequest struct {
	DriverID string `json:"driverId"`
}

type GetWalletResponse struct {
	DriverID     string               `json:"driverId"`
	Balance      decimal.Decimal      `json:"balance"`
	Transactions []*WalletTransaction `json:"transactions"`
}

type AmountInWordsRequest struct {
	Amount Amount `json:"amount"`
}

type AmountInWordsResponse struct {
	Words string `json:"words"`
}

type ExportSettlementsRequest struct{}

// ExportSettlementsResponse carries an XLSX workbook. Data is base64 in JSON.
type ExportSettlementsResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}
