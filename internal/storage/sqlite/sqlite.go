// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/dutyledger/dutyledger/internal/models"
	"github.com/dutyledger/dutyledger/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas go in the DSN so that every pooled connection gets them.
	// Immediate transactions take the write lock up front, which keeps
	// concurrent settlements from failing half way with SQLITE_BUSY.
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateBooking persists a new booking and both of its records.
func (s *SQLiteStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	now := s.now().Unix()
	if booking.CreatedAt == 0 {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = booking.CreatedAt
	if booking.Status == "" {
		booking.Status = models.BookingPending
	}
	if booking.Reference == "" {
		booking.Reference = generateReference(booking.ID, booking.CreatedAt)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO bookings (id, driver_id, reference, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		booking.ID, booking.DriverID, booking.Reference, string(booking.Status), booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	if err := writeRecord(ctx, tx, booking.ID, sideExpense, expenseRow(booking.Expense), booking.Expense.BillingItems); err != nil {
		return err
	}
	if err := writeRecord(ctx, tx, booking.ID, sideReceiving, receivingRow(booking.Receiving), booking.Receiving.BillingItems); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetBooking retrieves a booking by ID, including both records and the settlement.
func (s *SQLiteStore) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking := &models.Booking{}
	var status string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, driver_id, reference, status, created_at, updated_at FROM bookings WHERE id = ?",
		bookingID,
	).Scan(&booking.ID, &booking.DriverID, &booking.Reference, &status, &booking.CreatedAt, &booking.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("booking %s: %w", bookingID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	booking.Status = models.BookingStatus(status)

	if err := readRecords(ctx, s.db, booking); err != nil {
		return nil, err
	}

	settlement, err := getSettlement(ctx, s.db, bookingID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	booking.Settlement = settlement

	return booking, nil
}

// ListBookings returns bookings matching filter, newest first.
func (s *SQLiteStore) ListBookings(ctx context.Context, filter storage.BookingFilter) ([]*models.Booking, error) {
	var (
		where []string
		args  []any
	)
	if filter.Status != "" {
		where = append(where, "b.status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.DriverID != "" {
		where = append(where, "b.driver_id = ?")
		args = append(args, filter.DriverID)
	}
	if filter.Settled != nil {
		clause := "EXISTS (SELECT 1 FROM settlements s WHERE s.booking_id = b.id AND s.is_settled = 1)"
		if !*filter.Settled {
			clause = "NOT " + clause
		}
		where = append(where, clause)
	}

	query := "SELECT b.id FROM bookings b"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY b.created_at DESC, b.id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan booking id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}

	bookings := make([]*models.Booking, 0, len(ids))
	for _, id := range ids {
		b, err := s.GetBooking(ctx, id)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// UpdateBookingStatus changes the status of a booking.
func (s *SQLiteStore) UpdateBookingStatus(ctx context.Context, bookingID string, status models.BookingStatus) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?",
		string(status), s.now().Unix(), bookingID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("booking %s: %w", bookingID, storage.ErrNotFound)
	}
	return nil
}

// generateReference creates a readable booking number such as "BK-20240105-1A2B3C".
func generateReference(id string, createdAt int64) string {
	suffix := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(suffix) > 6 {
		suffix = suffix[:6]
	}
	return fmt.Sprintf("BK-%s-%s", time.Unix(createdAt, 0).UTC().Format("20060102"), suffix)
}
