package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dutyledger/dutyledger/internal/calculator"
	"github.com/dutyledger/dutyledger/internal/models"
	"github.com/dutyledger/dutyledger/internal/storage"
)

const settlementColumns = `booking_id, driver_id, is_settled, calculated_amount, admin_adjustments,
	settlement_amount, status, notes, settled_by, settled_at, updated_at`

// SettleBooking writes the settlement of a booking in a single transaction.
//
// The calculated amount comes from the records read inside the transaction,
// so an edit committed before the settlement is always reflected in it. The
// wallet receives the difference between the new settlement amount and
// whatever was settled before, so that a forced re-settlement corrects the
// balance instead of doubling it.
func (s *SQLiteStore) SettleBooking(ctx context.Context, p storage.SettleParams) (*storage.SettleResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	driverID, err := bookingDriver(ctx, tx, p.BookingID)
	if err != nil {
		return nil, err
	}

	prev, err := getSettlement(ctx, tx, p.BookingID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	resettle := prev != nil && prev.IsSettled
	if resettle && !p.Force {
		return nil, fmt.Errorf("booking %s: %w", p.BookingID, storage.ErrAlreadySettled)
	}

	booking := &models.Booking{ID: p.BookingID}
	if err := readRecords(ctx, tx, booking); err != nil {
		return nil, err
	}
	calculated := calculator.ComputeTotals(booking.Expense, booking.Receiving).Difference

	now := s.now().Unix()
	amount := calculator.FinalSettlement(calculated, p.AdminAdjustments)
	result := &storage.SettleResult{PreviousAmount: decimal.Zero}
	status := models.SettlementSettled
	action := models.AuditSettle
	reason := "booking settlement"
	if resettle {
		result.PreviousAmount = prev.SettlementAmount
		status = models.SettlementForced
		action = models.AuditForceSettle
		reason = "forced re-settlement"
	}

	if delta := amount.Sub(result.PreviousAmount); !delta.IsZero() {
		posting := &models.WalletTransaction{
			ID:        uuid.New().String(),
			DriverID:  driverID,
			BookingID: p.BookingID,
			Type:      models.WalletCredit,
			Amount:    delta.Abs(),
			Reason:    reason,
			CreatedAt: now,
		}
		if delta.IsNegative() {
			posting.Type = models.WalletDebit
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO wallet_transactions (id, driver_id, booking_id, type, amount, reason, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			posting.ID, driverID, p.BookingID, string(posting.Type), posting.Amount.String(), reason, now,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to post wallet transaction: %w", err)
		}
		result.Posting = posting
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO settlements (`+settlementColumns+`)
		 VALUES (?, ?, 1, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (booking_id) DO UPDATE SET
		     is_settled = 1,
		     calculated_amount = excluded.calculated_amount,
		     admin_adjustments = excluded.admin_adjustments,
		     settlement_amount = excluded.settlement_amount,
		     status = excluded.status,
		     notes = excluded.notes,
		     settled_by = excluded.settled_by,
		     settled_at = excluded.settled_at,
		     updated_at = excluded.updated_at`,
		p.BookingID, driverID, calculated.String(), p.AdminAdjustments.String(), amount.String(),
		string(status), p.Notes, p.ActorID, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to write settlement: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO settlement_audits (id, booking_id, actor_id, action, previous_amount, new_amount, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), p.BookingID, p.ActorID, string(action), result.PreviousAmount.String(), amount.String(), p.Notes, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to write settlement audit: %w", err)
	}

	update := "UPDATE bookings SET updated_at = ? WHERE id = ?"
	args := []any{now, p.BookingID}
	if p.MarkCompleted {
		update = "UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?"
		args = []any{string(models.BookingCompleted), now, p.BookingID}
	}
	if _, err := tx.ExecContext(ctx, update, args...); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	result.Settlement, err = s.GetSettlement(ctx, p.BookingID)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetSettlement retrieves the settlement of a booking.
func (s *SQLiteStore) GetSettlement(ctx context.Context, bookingID string) (*models.Settlement, error) {
	return getSettlement(ctx, s.db, bookingID)
}

func getSettlement(ctx context.Context, q querier, bookingID string) (*models.Settlement, error) {
	row := q.QueryRowContext(ctx,
		"SELECT "+settlementColumns+" FROM settlements WHERE booking_id = ?",
		bookingID,
	)
	settlement, err := scanSettlement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("settlement for booking %s: %w", bookingID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	settlement.TransactionIDs, err = transactionIDs(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	return settlement, nil
}

// ListSettlements retrieves all settlements, most recently settled first.
func (s *SQLiteStore) ListSettlements(ctx context.Context) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+settlementColumns+" FROM settlements ORDER BY settled_at DESC, booking_id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	var settlements []*models.Settlement
	for rows.Next() {
		settlement, err := scanSettlement(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, settlement)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	for _, settlement := range settlements {
		settlement.TransactionIDs, err = transactionIDs(ctx, s.db, settlement.BookingID)
		if err != nil {
			return nil, err
		}
	}
	return settlements, nil
}

// ListSettlementAudits returns the audit trail for a booking, oldest first.
func (s *SQLiteStore) ListSettlementAudits(ctx context.Context, bookingID string) ([]*models.SettlementAudit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, booking_id, actor_id, action, previous_amount, new_amount, reason, created_at
		 FROM settlement_audits WHERE booking_id = ? ORDER BY created_at, rowid`,
		bookingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlement audits: %w", err)
	}
	defer rows.Close()

	var audits []*models.SettlementAudit
	for rows.Next() {
		audit := &models.SettlementAudit{}
		var action string
		if err := rows.Scan(&audit.ID, &audit.BookingID, &audit.ActorID, &action,
			&audit.PreviousAmount, &audit.NewAmount, &audit.Reason, &audit.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement audit: %w", err)
		}
		audit.Action = models.AuditAction(action)
		audits = append(audits, audit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlement audits: %w", err)
	}
	return audits, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSettlement(row scanner) (*models.Settlement, error) {
	settlement := &models.Settlement{}
	var status string
	err := row.Scan(&settlement.BookingID, &settlement.DriverID, &settlement.IsSettled,
		&settlement.CalculatedAmount, &settlement.AdminAdjustments, &settlement.SettlementAmount,
		&status, &settlement.Notes, &settlement.SettledBy, &settlement.SettledAt, &settlement.UpdatedAt)
	if err != nil {
		return nil, err
	}
	settlement.Status = models.SettlementStatus(status)
	return settlement, nil
}

func transactionIDs(ctx context.Context, q querier, bookingID string) ([]string, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id FROM wallet_transactions WHERE booking_id = ? ORDER BY created_at, rowid",
		bookingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement transactions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan transaction id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction ids: %w", err)
	}
	return ids, nil
}
