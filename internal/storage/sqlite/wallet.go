package sqlite

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dutyledger/dutyledger/internal/models"
)

// WalletBalance sums every posting for a driver. Amounts are stored as
// decimal text, so the sum happens here rather than in SQL.
func (s *SQLiteStore) WalletBalance(ctx context.Context, driverID string) (decimal.Decimal, error) {
	txs, err := s.ListWalletTransactions(ctx, driverID)
	if err != nil {
		return decimal.Zero, err
	}
	balance := decimal.Zero
	for _, t := range txs {
		balance = balance.Add(t.Signed())
	}
	return balance, nil
}

// ListWalletTransactions returns a driver's postings, newest first.
func (s *SQLiteStore) ListWalletTransactions(ctx context.Context, driverID string) ([]*models.WalletTransaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, driver_id, booking_id, type, amount, reason, created_at
		 FROM wallet_transactions WHERE driver_id = ? ORDER BY created_at DESC, rowid DESC`,
		driverID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallet transactions: %w", err)
	}
	defer rows.Close()

	var txs []*models.WalletTransaction
	for rows.Next() {
		t := &models.WalletTransaction{}
		var txType string
		if err := rows.Scan(&t.ID, &t.DriverID, &t.BookingID, &txType, &t.Amount, &t.Reason, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wallet transaction: %w", err)
		}
		t.Type = models.WalletTransactionType(txType)
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wallet transactions: %w", err)
	}
	return txs, nil
}
