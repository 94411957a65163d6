package money

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestToDecimal(t *testing.T) {
	str := "42.5"
	d := decimal.RequireFromString("3.14")

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, "0"},
		{"empty string", "", "0"},
		{"whitespace", "   ", "0"},
		{"garbage", "abc", "0"},
		{"trailing garbage", "12abc", "0"},
		{"numeric string", "1500.50", "1500.5"},
		{"padded numeric string", " 99 ", "99"},
		{"exponent", "1e3", "1000"},
		{"negative string", "-20", "-20"},
		{"int", 7, "7"},
		{"int64", int64(-3), "-3"},
		{"uint64", uint64(18), "18"},
		{"float64", 12.25, "12.25"},
		{"NaN", math.NaN(), "0"},
		{"Inf", math.Inf(1), "0"},
		{"bool", true, "0"},
		{"decimal", d, "3.14"},
		{"decimal pointer", &d, "3.14"},
		{"nil decimal pointer", (*decimal.Decimal)(nil), "0"},
		{"string pointer", &str, "42.5"},
		{"nil string pointer", (*string)(nil), "0"},
		{"json number", json.Number("8"), "8"},
		{"amount", AmountFromFloat(5), "5"},
		{"unset amount", Amount{}, "0"},
		{"struct", struct{}{}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDecimal(tt.input)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ToDecimal(%v) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestAmountUnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw     string
		wantSet bool
		want    string
	}{
		{`null`, false, "0"},
		{`12.5`, true, "12.5"},
		{`"12.5"`, true, "12.5"},
		{`""`, true, "0"},
		{`"x"`, true, "0"},
		{`true`, true, "0"},
		{`{"a":1}`, true, "0"},
		{`[1,2]`, true, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var a Amount
			if err := json.Unmarshal([]byte(tt.raw), &a); err != nil {
				t.Fatalf("Unmarshal(%s) returned error: %v", tt.raw, err)
			}
			if a.IsSet() != tt.wantSet {
				t.Errorf("IsSet = %v, want %v", a.IsSet(), tt.wantSet)
			}
			if !a.Decimal().Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Decimal = %s, want %s", a.Decimal(), tt.want)
			}
		})
	}
}

func TestAmountMissingFieldIsUnset(t *testing.T) {
	var rec struct {
		Daily Amount `json:"dailyAllowance"`
		Night Amount `json:"nightAllowance"`
	}
	if err := json.Unmarshal([]byte(`{"nightAllowance": 40}`), &rec); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if rec.Daily.IsSet() {
		t.Error("missing field should be unset")
	}
	if !rec.Night.Decimal().Equal(decimal.NewFromInt(40)) {
		t.Errorf("Night = %s, want 40", rec.Night)
	}
}

func TestAmountMarshalJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
	}{A: ParseAmount("1500.50")})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"a":1500.5,"b":null}` {
		t.Errorf("Marshal = %s", data)
	}
}

func TestAmountScanValue(t *testing.T) {
	var a Amount
	if err := a.Scan(nil); err != nil || a.IsSet() {
		t.Errorf("Scan(nil) = %v, set=%v", err, a.IsSet())
	}
	if err := a.Scan([]byte("250.75")); err != nil || !a.Decimal().Equal(decimal.RequireFromString("250.75")) {
		t.Errorf("Scan(bytes) = %v, value=%s", err, a)
	}
	if err := a.Scan("junk"); err != nil || !a.IsSet() || !a.Decimal().IsZero() {
		t.Errorf("Scan(junk) = %v, value=%s", err, a)
	}

	v, err := Amount{}.Value()
	if err != nil || v != nil {
		t.Errorf("unset Value() = %v, %v; want nil", v, err)
	}
	v, err = ParseAmount("10.5").Value()
	if err != nil || v != "10.5" {
		t.Errorf("Value() = %v, %v; want 10.5", v, err)
	}
}
