// Package bankcsv reads bank statement exports and books every movement as a
// balanced journal entry against the bank account.
package bankcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/voucherdesk/internal/encoding"
	"github.com/MrJamesThe3rd/voucherdesk/internal/ledger"
)

var dateLayouts = []string{"02-01-2006", time.DateOnly, "02/01/2006"}

// Parser auto-detects the statement layout by matching column headers
// against known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]*ledger.JournalEntry, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching bank statement format found")
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx)
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile returns the first profile whose columns all appear in one row,
// with that row's column map and index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows skips rows without a date or a non-zero amount (balances, page
// footers). headerIdx is the 0-based header position, for error messages.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerIdx int) ([]*ledger.JournalEntry, error) {
	dateIdx := cols[p.DateCol]
	descIdx := cols[p.DescCol]

	var entries []*ledger.JournalEntry

	for i, row := range rows {
		rowNum := headerIdx + i + 2

		date, ok := parseDate(row, dateIdx)
		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, ok := movement(p, cols, row)
		if !ok {
			continue
		}

		entries = append(entries, entry(date, desc, amount))
	}

	return entries, nil
}

// entry books an outflow to expenses and an inflow to income.
func entry(date time.Time, desc string, amount decimal.Decimal) *ledger.JournalEntry {
	e := &ledger.JournalEntry{
		Date:        date,
		Description: desc,
		Type:        ledger.TypeBank,
	}

	abs := amount.Abs()

	if amount.IsNegative() {
		e.Lines = []ledger.Line{
			{Account: ledger.AccountExpenses, Debit: abs, Credit: decimal.Zero},
			{Account: ledger.AccountBank, Debit: decimal.Zero, Credit: abs},
		}
	} else {
		e.Lines = []ledger.Line{
			{Account: ledger.AccountBank, Debit: abs, Credit: decimal.Zero},
			{Account: ledger.AccountIncome, Debit: decimal.Zero, Credit: abs},
		}
	}

	return e
}

func parseDate(row []string, idx int) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// movement returns the signed amount of a row: negative for money leaving
// the account.
func movement(p *Profile, cols colIndex, row []string) (decimal.Decimal, bool) {
	switch p.AmountMode {
	case amountSingle:
		return nonZero(cellValue(row, cols[p.AmountCol]))
	case amountSplit:
		if d, ok := nonZero(cellValue(row, cols[p.DebitCol])); ok {
			return d.Abs().Neg(), true
		}

		if d, ok := nonZero(cellValue(row, cols[p.CreditCol])); ok {
			return d.Abs(), true
		}
	}

	return decimal.Zero, false
}

func nonZero(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}

	d, err := parseAmount(s)
	if err != nil || d.IsZero() {
		return decimal.Zero, false
	}

	return d, true
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
