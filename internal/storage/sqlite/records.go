package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dutyledger/dutyledger/internal/models"
	"github.com/dutyledger/dutyledger/internal/money"
	"github.com/dutyledger/dutyledger/internal/storage"
)

const (
	sideExpense   = "expense"
	sideReceiving = "receiving"
)

// recordRow is the flat column set shared by both record sides. The client
// amount columns stay NULL for expense records.
type recordRow struct {
	Daily, Outstation, Night            money.Amount
	Received, Advance, Bonus, Incentive money.Amount
	Notes                               string
}

func expenseRow(r models.ExpenseRecord) recordRow {
	return recordRow{
		Daily:      r.DailyAllowance,
		Outstation: r.OutstationAllowance,
		Night:      r.NightAllowance,
		Notes:      r.Notes,
	}
}

func receivingRow(r models.ReceivingRecord) recordRow {
	return recordRow{
		Daily:      r.DailyAllowance,
		Outstation: r.OutstationAllowance,
		Night:      r.NightAllowance,
		Received:   r.ReceivedFromClient,
		Advance:    r.ClientAdvanceAmount,
		Bonus:      r.ClientBonusAmount,
		Incentive:  r.IncentiveAmount,
		Notes:      r.Notes,
	}
}

// writeRecord replaces one side of a booking, including its billing items.
func writeRecord(ctx context.Context, q querier, bookingID, side string, row recordRow, items []models.BillingItem) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO booking_records (booking_id, side, daily_allowance, outstation_allowance, night_allowance,
		     received_from_client, client_advance_amount, client_bonus_amount, incentive_amount, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (booking_id, side) DO UPDATE SET
		     daily_allowance = excluded.daily_allowance,
		     outstation_allowance = excluded.outstation_allowance,
		     night_allowance = excluded.night_allowance,
		     received_from_client = excluded.received_from_client,
		     client_advance_amount = excluded.client_advance_amount,
		     client_bonus_amount = excluded.client_bonus_amount,
		     incentive_amount = excluded.incentive_amount,
		     notes = excluded.notes`,
		bookingID, side, row.Daily, row.Outstation, row.Night,
		row.Received, row.Advance, row.Bonus, row.Incentive, row.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to write %s record: %w", side, err)
	}

	if _, err := q.ExecContext(ctx,
		"DELETE FROM billing_items WHERE booking_id = ? AND side = ?",
		bookingID, side,
	); err != nil {
		return fmt.Errorf("failed to clear %s billing items: %w", side, err)
	}

	for i, item := range items {
		_, err := q.ExecContext(ctx,
			"INSERT INTO billing_items (booking_id, side, position, category, amount, note) VALUES (?, ?, ?, ?, ?, ?)",
			bookingID, side, i, string(item.Category), item.Amount, item.Note,
		)
		if err != nil {
			return fmt.Errorf("failed to insert %s billing item: %w", side, err)
		}
	}
	return nil
}

// readRecords fills both records of booking.
func readRecords(ctx context.Context, q querier, booking *models.Booking) error {
	rows, err := q.QueryContext(ctx,
		`SELECT side, daily_allowance, outstation_allowance, night_allowance,
		        received_from_client, client_advance_amount, client_bonus_amount, incentive_amount, notes
		 FROM booking_records WHERE booking_id = ?`,
		booking.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get booking records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var side string
		var row recordRow
		if err := rows.Scan(&side, &row.Daily, &row.Outstation, &row.Night,
			&row.Received, &row.Advance, &row.Bonus, &row.Incentive, &row.Notes); err != nil {
			return fmt.Errorf("failed to scan booking record: %w", err)
		}
		allowances := models.Allowances{
			DailyAllowance:      row.Daily,
			OutstationAllowance: row.Outstation,
			NightAllowance:      row.Night,
		}
		switch side {
		case sideExpense:
			booking.Expense.Allowances = allowances
			booking.Expense.Notes = row.Notes
		case sideReceiving:
			booking.Receiving.Allowances = allowances
			booking.Receiving.ReceivedFromClient = row.Received
			booking.Receiving.ClientAdvanceAmount = row.Advance
			booking.Receiving.ClientBonusAmount = row.Bonus
			booking.Receiving.IncentiveAmount = row.Incentive
			booking.Receiving.Notes = row.Notes
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate booking records: %w", err)
	}
	rows.Close()

	if booking.Expense.BillingItems, err = readItems(ctx, q, booking.ID, sideExpense); err != nil {
		return err
	}
	if booking.Receiving.BillingItems, err = readItems(ctx, q, booking.ID, sideReceiving); err != nil {
		return err
	}
	return nil
}

func readItems(ctx context.Context, q querier, bookingID, side string) ([]models.BillingItem, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT category, amount, note FROM billing_items WHERE booking_id = ? AND side = ? ORDER BY position",
		bookingID, side,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s billing items: %w", side, err)
	}
	defer rows.Close()

	items := []models.BillingItem{}
	for rows.Next() {
		var item models.BillingItem
		var category string
		if err := rows.Scan(&category, &item.Amount, &item.Note); err != nil {
			return nil, fmt.Errorf("failed to scan billing item: %w", err)
		}
		item.Category = models.Category(category)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate billing items: %w", err)
	}
	return items, nil
}

// SaveExpense replaces the expense record of an unsettled booking.
func (s *SQLiteStore) SaveExpense(ctx context.Context, bookingID string, record models.ExpenseRecord) error {
	return s.saveRecord(ctx, bookingID, sideExpense, expenseRow(record), record.BillingItems)
}

// SaveReceiving replaces the receiving record of an unsettled booking.
func (s *SQLiteStore) SaveReceiving(ctx context.Context, bookingID string, record models.ReceivingRecord) error {
	return s.saveRecord(ctx, bookingID, sideReceiving, receivingRow(record), record.BillingItems)
}

func (s *SQLiteStore) saveRecord(ctx context.Context, bookingID, side string, row recordRow, items []models.BillingItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := bookingDriver(ctx, tx, bookingID); err != nil {
		return err
	}
	settled, err := isSettled(ctx, tx, bookingID)
	if err != nil {
		return err
	}
	if settled {
		return fmt.Errorf("booking %s: %w", bookingID, storage.ErrAlreadySettled)
	}

	if err := writeRecord(ctx, tx, bookingID, side, row, items); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE bookings SET updated_at = ? WHERE id = ?",
		s.now().Unix(), bookingID,
	); err != nil {
		return fmt.Errorf("failed to touch booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// bookingDriver returns the driver of a booking, or ErrNotFound.
func bookingDriver(ctx context.Context, q querier, bookingID string) (string, error) {
	var driverID string
	err := q.QueryRowContext(ctx, "SELECT driver_id FROM bookings WHERE id = ?", bookingID).Scan(&driverID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("booking %s: %w", bookingID, storage.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to check booking existence: %w", err)
	}
	return driverID, nil
}

func isSettled(ctx context.Context, q querier, bookingID string) (bool, error) {
	var settled bool
	err := q.QueryRowContext(ctx,
		"SELECT is_settled FROM settlements WHERE booking_id = ?", bookingID,
	).Scan(&settled)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check settlement: %w", err)
	}
	return settled, nil
}
