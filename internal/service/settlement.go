package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/dutyledger/dutyledger/internal/calculator"
	"github.com/dutyledger/dutyledger/internal/export"
	"github.com/dutyledger/dutyledger/internal/metrics"
	"github.com/dutyledger/dutyledger/internal/models"
	"github.com/dutyledger/dutyledger/internal/storage"
	"github.com/dutyledger/dutyledger/pkg/api"
)

// PreviewSettlement computes an advisory settlement from draft records and
// reports whether it disagrees with the stored records. Nothing is written.
func (s *BookingService) PreviewSettlement(ctx context.Context, req *connect.Request[api.PreviewSettlementRequest]) (*connect.Response[api.PreviewSettlementResponse], error) {
	if _, err := principal(ctx); err != nil {
		return nil, err
	}
	booking, err := s.loadBooking(ctx, req.Msg.BookingID)
	if err != nil {
		return nil, err
	}

	expense := booking.Expense
	if req.Msg.Expense != nil {
		expense = *req.Msg.Expense
	}
	receiving := booking.Receiving
	if req.Msg.Receiving != nil {
		receiving = *req.Msg.Receiving
	}

	preview := calculator.PreviewSettlement(expense, receiving, req.Msg.AdminAdjustments.Decimal())
	server := calculator.ComputeTotals(booking.Expense, booking.Receiving)
	drift := calculator.CompareTotals(preview.Totals, server)
	s.metrics.ObservePreview(drift.Drifted)

	if drift.Drifted {
		slog.Debug("Preview drifted from stored records",
			"booking_id", booking.ID,
			"preview_difference", preview.Totals.Difference,
			"server_difference", server.Difference,
		)
	}

	return connect.NewResponse(&api.PreviewSettlementResponse{
		Preview:      preview,
		ServerTotals: server,
		Drift:        drift,
	}), nil
}

// ApplyBillingEdits applies form edits to a list of billing items and
// returns the new list. The input list is never modified.
func (s *BookingService) ApplyBillingEdits(ctx context.Context, req *connect.Request[api.ApplyBillingEditsRequest]) (*connect.Response[api.ApplyBillingEditsResponse], error) {
	for i, edit := range req.Msg.Edits {
		if err := edit.Validate(); err != nil {
			return nil, invalid("edit %d: %v", i, err)
		}
	}

	items := calculator.ApplyEdits(req.Msg.Items, req.Msg.Edits)
	if items == nil {
		items = []models.BillingItem{}
	}

	byCategory := calculator.CategoryTotals(items)
	categoryTotals := make(map[string]decimal.Decimal, len(byCategory))
	for category, total := range byCategory {
		categoryTotals[string(category)] = total
	}

	return connect.NewResponse(&api.ApplyBillingEditsResponse{
		Items:          items,
		BillingSum:     calculator.BillingSum(items),
		CategoryTotals: categoryTotals,
	}), nil
}

// SettleBooking performs the authoritative settlement of a booking.
//
// A settled booking is only settled again when forceSettlement is set, the
// caller is a superadmin and a reason is given in notes. The response is
// re-read from storage after the write.
func (s *BookingService) SettleBooking(ctx context.Context, req *connect.Request[api.SettleBookingRequest]) (*connect.Response[api.SettleBookingResponse], error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	if !p.CanSettle() {
		s.metrics.ObserveSettlement(metrics.OutcomeRejected)
		return nil, connect.NewError(connect.CodePermissionDenied, fmt.Errorf("role %q cannot settle bookings", p.Role))
	}

	notes := strings.TrimSpace(req.Msg.Notes)
	if req.Msg.ForceSettlement {
		if !p.CanForceSettle() {
			s.metrics.ObserveSettlement(metrics.OutcomeRejected)
			return nil, connect.NewError(connect.CodePermissionDenied, fmt.Errorf("force settlement requires the superadmin role"))
		}
		if notes == "" {
			s.metrics.ObserveSettlement(metrics.OutcomeRejected)
			return nil, invalid("force settlement requires a reason in notes")
		}
	}

	booking, err := s.loadBooking(ctx, req.Msg.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.IsSettled() && !req.Msg.ForceSettlement {
		s.metrics.ObserveSettlement(metrics.OutcomeRejected)
		return nil, connect.NewError(connect.CodeFailedPrecondition, fmt.Errorf("booking %s: %w", booking.ID, storage.ErrAlreadySettled))
	}

	result, err := s.store.SettleBooking(ctx, storage.SettleParams{
		BookingID:        booking.ID,
		ActorID:          p.UserID,
		AdminAdjustments: req.Msg.AdminAdjustments.Decimal(),
		Notes:            notes,
		MarkCompleted:    req.Msg.MarkCompleted,
		Force:            req.Msg.ForceSettlement,
	})
	if err != nil {
		s.metrics.ObserveSettlement(metrics.OutcomeRejected)
		return nil, storeError("SettleBooking failed", err, "booking_id", booking.ID)
	}

	settlement := result.Settlement
	if settlement.Status == models.SettlementForced {
		s.metrics.ObserveSettlement(metrics.OutcomeForced)
		slog.Warn("Booking force-settled",
			"booking_id", booking.ID,
			"user_id", p.UserID,
			"previous_amount", result.PreviousAmount,
			"settlement_amount", settlement.SettlementAmount,
			"reason", notes,
		)
	} else {
		s.metrics.ObserveSettlement(metrics.OutcomeSettled)
		slog.Info("Booking settled",
			"booking_id", booking.ID,
			"user_id", p.UserID,
			"calculated_amount", settlement.CalculatedAmount,
			"admin_adjustments", settlement.AdminAdjustments,
			"settlement_amount", settlement.SettlementAmount,
		)
	}
	if result.Posting != nil {
		s.metrics.ObserveWalletPostings(string(result.Posting.Type), 1)
	}

	// Re-read so the response reflects what was committed, not the request.
	settled, err := s.loadBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	final := toAPISettlement(settled.Settlement)
	return connect.NewResponse(&api.SettleBookingResponse{
		Settlement: final,
		Totals:     calculator.ComputeTotals(settled.Expense, settled.Receiving),
		Label:      final.Label,
	}), nil
}

// ListSettlementAudits returns who settled a booking and how the amount changed.
func (s *BookingService) ListSettlementAudits(ctx context.Context, req *connect.Request[api.ListSettlementAuditsRequest]) (*connect.Response[api.ListSettlementAuditsResponse], error) {
	if _, err := editor(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Msg.BookingID) == "" {
		return nil, invalid("booking_id is required")
	}

	audits, err := s.store.ListSettlementAudits(ctx, req.Msg.BookingID)
	if err != nil {
		return nil, storeError("ListSettlementAudits failed", err, "booking_id", req.Msg.BookingID)
	}
	out := make([]*api.SettlementAudit, len(audits))
	for i, a := range audits {
		out[i] = toAPIAudit(a)
	}
	return connect.NewResponse(&api.ListSettlementAuditsResponse{Audits: out}), nil
}

// GetWallet returns a driver's balance and postings, newest first.
func (s *BookingService) GetWallet(ctx context.Context, req *connect.Request[api.GetWalletRequest]) (*connect.Response[api.GetWalletResponse], error) {
	if _, err := principal(ctx); err != nil {
		return nil, err
	}
	driverID := strings.TrimSpace(req.Msg.DriverID)
	if driverID == "" {
		return nil, invalid("driver_id is required")
	}

	balance, err := s.store.WalletBalance(ctx, driverID)
	if err != nil {
		return nil, storeError("WalletBalance failed", err, "driver_id", driverID)
	}
	txs, err := s.store.ListWalletTransactions(ctx, driverID)
	if err != nil {
		return nil, storeError("ListWalletTransactions failed", err, "driver_id", driverID)
	}

	out := make([]*api.WalletTransaction, len(txs))
	for i, t := range txs {
		out[i] = toAPITransaction(t)
	}
	return connect.NewResponse(&api.GetWalletResponse{
		DriverID:     driverID,
		Balance:      balance,
		Transactions: out,
	}), nil
}

// AmountInWords renders an amount in Indian-numbering words for invoices.
func (s *BookingService) AmountInWords(ctx context.Context, req *connect.Request[api.AmountInWordsRequest]) (*connect.Response[api.AmountInWordsResponse], error) {
	return connect.NewResponse(&api.AmountInWordsResponse{
		Words: calculator.AmountInWords(req.Msg.Amount.Decimal()),
	}), nil
}

// ExportSettlements renders every settlement into an XLSX workbook.
func (s *BookingService) ExportSettlements(ctx context.Context, req *connect.Request[api.ExportSettlementsRequest]) (*connect.Response[api.ExportSettlementsResponse], error) {
	p, err := editor(ctx)
	if err != nil {
		return nil, err
	}

	settlements, err := s.store.ListSettlements(ctx)
	if err != nil {
		return nil, storeError("ListSettlements failed", err)
	}

	rows := make([]export.Row, 0, len(settlements))
	for _, st := range settlements {
		row := export.Row{Settlement: st}
		booking, err := s.store.GetBooking(ctx, st.BookingID)
		if err != nil {
			return nil, storeError("GetBooking failed during export", err, "booking_id", st.BookingID)
		}
		row.Reference = booking.Reference
		rows = append(rows, row)
	}

	var buf bytes.Buffer
	if err := export.WriteLedger(&buf, rows); err != nil {
		slog.Error("ExportSettlements failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	slog.Info("Settlements exported", "rows", len(rows), "bytes", buf.Len(), "user_id", p.UserID)

	return connect.NewResponse(&api.ExportSettlementsResponse{
		Filename:    export.Filename(s.now()),
		ContentType: export.ContentType,
		Data:        buf.Bytes(),
	}), nil
}
