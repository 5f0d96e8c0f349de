// Package ledgercsv reads the ledger CSV export back into journal entries.
package ledgercsv

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/voucherdesk/internal/encoding"
	"github.com/MrJamesThe3rd/voucherdesk/internal/format"
	"github.com/MrJamesThe3rd/voucherdesk/internal/ledger"
)

// Parser reads files in the ledger export layout. The header row is located
// by column names, so leading title rows from spreadsheet tools are skipped.
// Adjacent rows sharing date, description and type form one entry.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// requiredCols are matched case-insensitively against the header row.
var requiredCols = []string{"date", "description", "account", "debit", "credit"}

func (p *Parser) Parse(r io.Reader) ([]*ledger.JournalEntry, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	reader := csv.NewReader(br)
	reader.Comma = sniffComma(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := findHeader(rows)
	if !ok {
		return nil, fmt.Errorf("no ledger header found: expected columns %s", strings.Join(requiredCols, ", "))
	}

	return parseRows(cols, rows[headerIdx+1:], headerIdx)
}

// sniffComma picks ';' when the first line has more of them than commas.
func sniffComma(br *bufio.Reader) rune {
	head, _ := br.Peek(br.Size())
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}

	if bytes.Count(head, []byte(";")) > bytes.Count(head, []byte(",")) {
		return ';'
	}

	return ','
}

// colIndex maps lower-cased column names to their index in the row.
type colIndex map[string]int

func findHeader(rows [][]string) (colIndex, int, bool) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		found := true

		for _, name := range requiredCols {
			if _, ok := cols[name]; !ok {
				found = false
				break
			}
		}

		if found {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}

// parseRows groups data rows into entries. headerRowNum is the 0-based index
// of the header in the file, used for error messages.
func parseRows(cols colIndex, rows [][]string, headerRowNum int) ([]*ledger.JournalEntry, error) {
	typeIdx, hasType := cols["type"]
	if !hasType {
		typeIdx = -1
	}

	var entries []*ledger.JournalEntry

	var current *ledger.JournalEntry

	for i, row := range rows {
		rowNum := headerRowNum + i + 2

		account := cellValue(row, cols["account"])
		desc := cellValue(row, cols["description"])

		if account == "" && desc == "" {
			continue
		}

		if account == "" {
			return nil, fmt.Errorf("row %d: missing account", rowNum)
		}

		date, err := parseDate(cellValue(row, cols["date"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		debit, err := parseAmount(cellValue(row, cols["debit"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: debit: %w", rowNum, err)
		}

		credit, err := parseAmount(cellValue(row, cols["credit"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: credit: %w", rowNum, err)
		}

		typ := cellValue(row, typeIdx)

		if current == nil || !current.Date.Equal(date) || current.Description != desc || current.Type != typ {
			current = &ledger.JournalEntry{Date: date, Description: desc, Type: typ}
			entries = append(entries, current)
		}

		current.Lines = append(current.Lines, ledger.Line{Account: account, Debit: debit, Credit: credit})
	}

	return entries, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	t, ok := format.ParseDate(s)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}

	return t, nil
}

// parseAmount accepts "1234.56" and the European "1.234,56". Empty is zero.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}

	if d, err := decimal.NewFromString(s); err == nil {
		return d, nil
	}

	normalized := strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}

	return d, nil
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
