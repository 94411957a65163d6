package sqlite

import (
	"context"
	"database/sql"
)

// schema sets up the database. It runs on startup and is idempotent.
// Money columns are TEXT holding decimal strings so that no amount passes
// through a float. NULL money means the field was never filled in.
const schema = `
CREATE TABLE IF NOT EXISTS bookings (
    id TEXT PRIMARY KEY,
    driver_id TEXT NOT NULL,
    reference TEXT NOT NULL,
    status TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS booking_records (
    booking_id TEXT NOT NULL,
    side TEXT NOT NULL CHECK (side IN ('expense', 'receiving')),
    daily_allowance TEXT,
    outstation_allowance TEXT,
    night_allowance TEXT,
    received_from_client TEXT,
    client_advance_amount TEXT,
    client_bonus_amount TEXT,
    incentive_amount TEXT,
    notes TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (booking_id, side),
    FOREIGN KEY (booking_id) REFERENCES bookings(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS billing_items (
    booking_id TEXT NOT NULL,
    side TEXT NOT NULL,
    position INTEGER NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    amount TEXT,
    note TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (booking_id, side, position),
    FOREIGN KEY (booking_id) REFERENCES bookings(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS settlements (
    booking_id TEXT PRIMARY KEY,
    driver_id TEXT NOT NULL,
    is_settled INTEGER NOT NULL DEFAULT 0,
    calculated_amount TEXT NOT NULL,
    admin_adjustments TEXT NOT NULL,
    settlement_amount TEXT NOT NULL,
    status TEXT NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    settled_by TEXT NOT NULL,
    settled_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    FOREIGN KEY (booking_id) REFERENCES bookings(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS wallet_transactions (
    id TEXT PRIMARY KEY,
    driver_id TEXT NOT NULL,
    booking_id TEXT NOT NULL,
    type TEXT NOT NULL CHECK (type IN ('credit', 'debit')),
    amount TEXT NOT NULL,
    reason TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    FOREIGN KEY (booking_id) REFERENCES bookings(id)
);

CREATE TABLE IF NOT EXISTS settlement_audits (
    id TEXT PRIMARY KEY,
    booking_id TEXT NOT NULL,
    actor_id TEXT NOT NULL,
    action TEXT NOT NULL,
    previous_amount TEXT NOT NULL,
    new_amount TEXT NOT NULL,
    reason TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    FOREIGN KEY (booking_id) REFERENCES bookings(id)
);

CREATE INDEX IF NOT EXISTS idx_bookings_driver_id ON bookings(driver_id);
CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status);
CREATE INDEX IF NOT EXISTS idx_billing_items_booking ON billing_items(booking_id, side);
CREATE INDEX IF NOT EXISTS idx_wallet_transactions_driver ON wallet_transactions(driver_id);
CREATE INDEX IF NOT EXISTS idx_wallet_transactions_booking ON wallet_transactions(booking_id);
CREATE INDEX IF NOT EXISTS idx_settlement_audits_booking ON settlement_audits(booking_id);
`

// runMigrations executes the schema setup.
func runMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
