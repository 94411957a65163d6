package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dutyledger/dutyledger/internal/models"
)

func TestWriteLedger(t *testing.T) {
	settledAt := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC).Unix()
	rows := []Row{
		{
			Reference: "BK-20240301-AAAAAA",
			Settlement: &models.Settlement{
				BookingID:        "b1",
				DriverID:         "driver-1",
				IsSettled:        true,
				CalculatedAmount: decimal.RequireFromString("1500.50"),
				SettlementAmount: decimal.RequireFromString("1500.50"),
				Status:           models.SettlementSettled,
				SettledBy:        "admin-1",
				SettledAt:        settledAt,
			},
		},
		{
			Settlement: &models.Settlement{
				BookingID:        "b2",
				DriverID:         "driver-2",
				IsSettled:        true,
				CalculatedAmount: decimal.NewFromInt(-200),
				AdminAdjustments: decimal.NewFromInt(50),
				SettlementAmount: decimal.NewFromInt(-150),
				Status:           models.SettlementForced,
				SettledBy:        "super-1",
				SettledAt:        settledAt,
				Notes:            "fuel receipt missing",
			},
		},
		{Reference: "skipped"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLedger(&buf, rows))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, 4, "header, two settlements and the total")

	assert.Equal(t, Headers, got[0])

	assert.Equal(t, "BK-20240301-AAAAAA", got[1][0])
	assert.Equal(t, "1500.50", got[1][2])
	assert.Equal(t, "0.00", got[1][3])
	assert.Equal(t, "Add ₹1500.5", got[1][5])
	assert.Equal(t, "One Thousand Five Hundred Rupees and Fifty Paise Only", got[1][6])
	assert.Equal(t, "01.03.2024 10:30", got[1][9])

	assert.Equal(t, "b2", got[2][0], "missing reference falls back to the booking id")
	assert.Equal(t, "-200.00", got[2][2])
	assert.Equal(t, "-150.00", got[2][4])
	assert.Equal(t, "Deduct ₹150", got[2][5])
	assert.Equal(t, "force_settled", got[2][7])
	assert.Equal(t, "fuel receipt missing", got[2][10])

	assert.Equal(t, "Total", got[3][0])
	assert.Equal(t, "1350.50", got[3][4])
}

func TestWriteLedgerKeepsLargeAmountsExact(t *testing.T) {
	big := decimal.RequireFromString("12345678901234.57")
	rows := []Row{
		{Reference: "a", Settlement: &models.Settlement{BookingID: "a", SettlementAmount: big}},
		{Reference: "b", Settlement: &models.Settlement{BookingID: "b", SettlementAmount: big}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLedger(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "12345678901234.57", got[1][4])
	assert.Equal(t, "24691357802469.14", got[3][4])
}

func TestWriteLedgerEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLedger(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"Total", "", "", "", "0.00"}, got[1])
}

func TestFilename(t *testing.T) {
	at := time.Date(2024, 12, 31, 23, 5, 9, 0, time.UTC)
	assert.Equal(t, "settlements_20241231_230509.xlsx", Filename(at))
}
