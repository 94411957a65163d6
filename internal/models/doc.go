// Package models defines the domain models for the booking ledger.
//
// A Booking is one driver duty. It carries two money records:
//   - ExpenseRecord: what the driver spent (allowances plus itemized billing)
//   - ReceivingRecord: what was collected from the client for the same duty
//
// Reconciling the two produces a signed wallet adjustment for the driver.
// The adjustment is only previewed by the calculator package; the
// authoritative write is a Settlement, which posts WalletTransactions and
// leaves a SettlementAudit row behind.
//
// Amounts use money.Amount so that partially filled forms (null, empty
// strings, numeric strings) decode without errors and read as zero.
//
// Relationships use ID strings rather than pointers, and timestamps are Unix
// seconds.
package models
