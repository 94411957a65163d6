package money

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Amount is an optional rupee amount. The zero value is unset and reads as
// zero; IsSet distinguishes an explicit 0 from a field that was never sent.
type Amount struct {
	value decimal.Decimal
	set   bool
}

// NewAmount returns a set Amount holding d.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{value: d, set: true}
}

// AmountFromFloat returns a set Amount holding f.
func AmountFromFloat(f float64) Amount {
	return NewAmount(ToDecimal(f))
}

// ParseAmount coerces s into a set Amount. Garbage parses as zero.
func ParseAmount(s string) Amount {
	return NewAmount(ToDecimal(s))
}

// Decimal returns the amount, or zero when unset.
func (a Amount) Decimal() decimal.Decimal {
	if !a.set {
		return decimal.Zero
	}
	return a.value
}

// IsSet reports whether the amount was provided.
func (a Amount) IsSet() bool { return a.set }

func (a Amount) String() string {
	return a.Decimal().String()
}

// Equal compares the effective values, so an unset amount equals zero.
func (a Amount) Equal(b Amount) bool {
	return a.Decimal().Equal(b.Decimal())
}

// MarshalJSON writes null for an unset amount and a JSON number otherwise.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte("null"), nil
	}
	return []byte(a.value.String()), nil
}

// UnmarshalJSON accepts numbers, numeric strings, empty strings, null and
// arbitrary garbage. It never returns an error.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*a = NewAmount(decimal.Zero)
			return nil
		}
		*a = ParseAmount(s)
		return nil
	}
	*a = NewAmount(parseString(string(data)))
	return nil
}

// Scan implements sql.Scanner. NULL scans as unset.
func (a *Amount) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = Amount{}
	case []byte:
		*a = NewAmount(parseString(string(v)))
	default:
		*a = NewAmount(ToDecimal(v))
	}
	return nil
}

// Value implements driver.Valuer, storing amounts as TEXT.
func (a Amount) Value() (driver.Value, error) {
	if !a.set {
		return nil, nil
	}
	return a.value.String(), nil
}
