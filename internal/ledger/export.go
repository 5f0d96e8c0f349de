package ledger

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	CSVFileName  = "ledger.csv"
	XLSXFileName = "ledger.xlsx"
)

// Header is the column order of both exports.
var Header = []string{"Date", "Description", "Type", "Account", "Debit", "Credit"}

// WriteCSV writes rows in display order. Text fields are always quoted with
// inner quotes doubled; debit and credit are written as bare numbers.
func WriteCSV(w io.Writer, rows []Row) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(strings.Join(Header, ",") + "\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, r := range rows {
		line := strings.Join([]string{
			quote(csvDate(r.Date)),
			quote(r.Description),
			quote(r.Type),
			quote(r.Account),
			r.Debit.String(),
			r.Credit.String(),
		}, ",")

		if _, err := bw.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func csvDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(time.DateOnly)
}

// WriteXLSX writes rows to a single "Ledger" sheet followed by a totals row.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Ledger"

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	write := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}

		return f.SetCellValue(sheet, cell, v)
	}

	for i, h := range Header {
		if err := write(i+1, 1, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	row := 2

	for _, r := range rows {
		values := []any{
			csvDate(r.Date),
			r.Description,
			r.Type,
			r.Account,
			r.Debit.InexactFloat64(),
			r.Credit.InexactFloat64(),
		}

		for i, v := range values {
			if err := write(i+1, row, v); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
		}

		row++
	}

	totals := Sum(rows)

	for col, v := range map[int]any{
		4: "Total",
		5: totals.Debit.InexactFloat64(),
		6: totals.Credit.InexactFloat64(),
	} {
		if err := write(col, row, v); err != nil {
			return fmt.Errorf("writing totals: %w", err)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "B", 40)
	_ = f.SetColWidth(sheet, "C", "D", 20)
	_ = f.SetColWidth(sheet, "E", "F", 14)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}

	return nil
}
