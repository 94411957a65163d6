// Package export renders the settlement ledger as an XLSX workbook.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/dutyledger/dutyledger/internal/calculator"
	"github.com/dutyledger/dutyledger/internal/models"
)

// SheetName is the worksheet holding the ledger.
const SheetName = "Settlements"

// ContentType is the MIME type of the workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Headers are the ledger columns, in order.
var Headers = []string{
	"Booking",
	"Driver",
	"Calculated",
	"Admin Adjustments",
	"Settlement Amount",
	"Wallet Adjustment",
	"Amount in Words",
	"Status",
	"Settled By",
	"Settled At",
	"Notes",
}

// Row is one settlement together with the booking reference it belongs to.
type Row struct {
	Reference  string
	Settlement *models.Settlement
}

// Filename returns the download name for a ledger generated at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("settlements_%s.xlsx", t.UTC().Format("20060102_150405"))
}

// amountCell renders money as fixed two-place text; float cells would round
// large ledger totals.
func amountCell(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// WriteLedger writes a workbook with a header row, one row per settlement
// and a closing total of settlement amounts.
func WriteLedger(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return fmt.Errorf("failed to write header %q: %w", header, err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(Headers), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	total := decimal.Zero
	rowIndex := 2
	for _, row := range rows {
		s := row.Settlement
		if s == nil {
			continue
		}
		reference := row.Reference
		if reference == "" {
			reference = s.BookingID
		}
		values := []any{
			reference,
			s.DriverID,
			amountCell(s.CalculatedAmount),
			amountCell(s.AdminAdjustments),
			amountCell(s.SettlementAmount),
			calculator.Label(s.SettlementAmount),
			calculator.AmountInWords(s.SettlementAmount),
			string(s.Status),
			s.SettledBy,
			time.Unix(s.SettledAt, 0).UTC().Format("02.01.2006 15:04"),
			s.Notes,
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowIndex)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row for booking %s: %w", s.BookingID, err)
		}
		total = total.Add(s.SettlementAmount)
		rowIndex++
	}

	if err := f.SetCellValue(SheetName, fmt.Sprintf("A%d", rowIndex), "Total"); err != nil {
		return fmt.Errorf("failed to write total label: %w", err)
	}
	if err := f.SetCellValue(SheetName, fmt.Sprintf("E%d", rowIndex), amountCell(total)); err != nil {
		return fmt.Errorf("failed to write total: %w", err)
	}

	if err := f.SetColWidth(SheetName, "A", "B", 22); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(SheetName, "G", "G", 48); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
