// Package service implements the dutyledger.v1.BookingService Connect handlers.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/dutyledger/dutyledger/internal/auth"
	"github.com/dutyledger/dutyledger/internal/calculator"
	"github.com/dutyledger/dutyledger/internal/metrics"
	"github.com/dutyledger/dutyledger/internal/middleware"
	"github.com/dutyledger/dutyledger/internal/models"
	"github.com/dutyledger/dutyledger/internal/storage"
	"github.com/dutyledger/dutyledger/pkg/api"
	"github.com/dutyledger/dutyledger/pkg/api/apiconnect"
)

// BookingService implements the Connect BookingService
type BookingService struct {
	apiconnect.UnimplementedBookingServiceHandler
	store   storage.Store
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewBookingService creates a new BookingService with the given storage backend.
// A nil m gets a private set of collectors.
func NewBookingService(store storage.Store, m *metrics.Metrics) *BookingService {
	if m == nil {
		m = metrics.New()
	}
	return &BookingService{store: store, metrics: m, now: time.Now}
}

// principal returns the authenticated caller or an Unauthenticated error.
func principal(ctx context.Context) (auth.Principal, error) {
	p, ok := middleware.GetPrincipal(ctx)
	if !ok || p.UserID == "" {
		return auth.Principal{}, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}
	return p, nil
}

// editor returns the caller if it may change bookings.
func editor(ctx context.Context) (auth.Principal, error) {
	p, err := principal(ctx)
	if err != nil {
		return p, err
	}
	if !p.CanEdit() {
		return p, connect.NewError(connect.CodePermissionDenied, fmt.Errorf("role %q cannot modify bookings", p.Role))
	}
	return p, nil
}

// storeError maps storage failures onto Connect codes. Unexpected errors are logged.
func storeError(msg string, err error, args ...any) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrAlreadySettled):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}
	slog.Error(msg, append(args, "error", err)...)
	return connect.NewError(connect.CodeInternal, err)
}

func invalid(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

// loadBooking fetches a booking, requiring a non-empty id.
func (s *BookingService) loadBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	if strings.TrimSpace(bookingID) == "" {
		return nil, invalid("booking_id is required")
	}
	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, storeError("GetBooking failed", err, "booking_id", bookingID)
	}
	return booking, nil
}

// CreateBooking creates a booking with optional initial records.
func (s *BookingService) CreateBooking(ctx context.Context, req *connect.Request[api.CreateBookingRequest]) (*connect.Response[api.CreateBookingResponse], error) {
	p, err := editor(ctx)
	if err != nil {
		return nil, err
	}

	driverID := strings.TrimSpace(req.Msg.DriverID)
	if driverID == "" {
		return nil, invalid("driver_id is required")
	}

	booking := &models.Booking{
		DriverID:  driverID,
		Reference: strings.TrimSpace(req.Msg.Reference),
	}
	if req.Msg.Expense != nil {
		if err := validateExpense(*req.Msg.Expense); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		booking.Expense = *req.Msg.Expense
	}
	if req.Msg.Receiving != nil {
		if err := validateReceiving(*req.Msg.Receiving); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		booking.Receiving = *req.Msg.Receiving
	}

	if err := s.store.CreateBooking(ctx, booking); err != nil {
		return nil, storeError("CreateBooking failed", err, "driver_id", driverID)
	}
	slog.Info("Booking created", "booking_id", booking.ID, "reference", booking.Reference, "driver_id", driverID, "user_id", p.UserID)

	created, err := s.loadBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.CreateBookingResponse{Booking: toAPIBooking(created)}), nil
}

// GetBooking returns a booking with its records, settlement and totals.
func (s *BookingService) GetBooking(ctx context.Context, req *connect.Request[api.GetBookingRequest]) (*connect.Response[api.GetBookingResponse], error) {
	if _, err := principal(ctx); err != nil {
		return nil, err
	}
	booking, err := s.loadBooking(ctx, req.Msg.BookingID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetBookingResponse{Booking: toAPIBooking(booking)}), nil
}

// ListBookings returns booking summaries, newest first.
func (s *BookingService) ListBookings(ctx context.Context, req *connect.Request[api.ListBookingsRequest]) (*connect.Response[api.ListBookingsResponse], error) {
	if _, err := principal(ctx); err != nil {
		return nil, err
	}

	filter := storage.BookingFilter{
		DriverID: strings.TrimSpace(req.Msg.DriverID),
		Settled:  req.Msg.Settled,
	}
	if req.Msg.Status != "" {
		status := models.BookingStatus(req.Msg.Status)
		if !status.Valid() {
			return nil, invalid("unknown status %q", req.Msg.Status)
		}
		filter.Status = status
	}

	bookings, err := s.store.ListBookings(ctx, filter)
	if err != nil {
		return nil, storeError("ListBookings failed", err)
	}

	summaries := make([]*api.BookingSummary, len(bookings))
	for i, b := range bookings {
		summaries[i] = toAPISummary(b)
	}
	return connect.NewResponse(&api.ListBookingsResponse{Bookings: summaries}), nil
}

// UpdateBookingStatus moves a booking through its lifecycle.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, req *connect.Request[api.UpdateBookingStatusRequest]) (*connect.Response[api.UpdateBookingStatusResponse], error) {
	p, err := editor(ctx)
	if err != nil {
		return nil, err
	}
	status := models.BookingStatus(req.Msg.Status)
	if !status.Valid() {
		return nil, invalid("unknown status %q", req.Msg.Status)
	}
	if strings.TrimSpace(req.Msg.BookingID) == "" {
		return nil, invalid("booking_id is required")
	}

	if err := s.store.UpdateBookingStatus(ctx, req.Msg.BookingID, status); err != nil {
		return nil, storeError("UpdateBookingStatus failed", err, "booking_id", req.Msg.BookingID)
	}
	slog.Info("Booking status updated", "booking_id", req.Msg.BookingID, "status", status, "user_id", p.UserID)

	booking, err := s.loadBooking(ctx, req.Msg.BookingID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.UpdateBookingStatusResponse{Booking: toAPIBooking(booking)}), nil
}

// SaveExpense replaces the expense record of an unsettled booking.
func (s *BookingService) SaveExpense(ctx context.Context, req *connect.Request[api.SaveExpenseRequest]) (*connect.Response[api.SaveExpenseResponse], error) {
	p, err := editor(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Msg.BookingID) == "" {
		return nil, invalid("booking_id is required")
	}
	if err := validateExpense(req.Msg.Expense); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.SaveExpense(ctx, req.Msg.BookingID, req.Msg.Expense); err != nil {
		return nil, storeError("SaveExpense failed", err, "booking_id", req.Msg.BookingID)
	}
	slog.Info("Expense saved", "booking_id", req.Msg.BookingID, "items", len(req.Msg.Expense.BillingItems), "user_id", p.UserID)

	booking, err := s.loadBooking(ctx, req.Msg.BookingID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.SaveExpenseResponse{Booking: toAPIBooking(booking)}), nil
}

// SaveReceiving replaces the receiving record of an unsettled booking.
func (s *BookingService) SaveReceiving(ctx context.Context, req *connect.Request[api.SaveReceivingRequest]) (*connect.Response[api.SaveReceivingResponse], error) {
	p, err := editor(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Msg.BookingID) == "" {
		return nil, invalid("booking_id is required")
	}
	if err := validateReceiving(req.Msg.Receiving); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.SaveReceiving(ctx, req.Msg.BookingID, req.Msg.Receiving); err != nil {
		return nil, storeError("SaveReceiving failed", err, "booking_id", req.Msg.BookingID)
	}
	slog.Info("Receiving saved", "booking_id", req.Msg.BookingID, "items", len(req.Msg.Receiving.BillingItems), "user_id", p.UserID)

	booking, err := s.loadBooking(ctx, req.Msg.BookingID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.SaveReceivingResponse{Booking: toAPIBooking(booking)}), nil
}

// GetBookingTotals returns the authoritative totals computed from stored records.
func (s *BookingService) GetBookingTotals(ctx context.Context, req *connect.Request[api.GetBookingTotalsRequest]) (*connect.Response[api.GetBookingTotalsResponse], error) {
	if _, err := principal(ctx); err != nil {
		return nil, err
	}
	booking, err := s.loadBooking(ctx, req.Msg.BookingID)
	if err != nil {
		return nil, err
	}

	totals := calculator.ComputeTotals(booking.Expense, booking.Receiving)
	return connect.NewResponse(&api.GetBookingTotalsResponse{
		BookingID:  booking.ID,
		Totals:     totals,
		Adjustment: string(calculator.Classify(totals.Difference)),
		Label:      calculator.Label(totals.Difference),
		IsSettled:  booking.IsSettled(),
	}), nil
}
