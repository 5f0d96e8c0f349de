// Package ledger models double-entry journal entries and the flat transaction
// table the ledger view and its exports are built from.
package ledger

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AllTypes is the filter sentinel that matches every entry type.
const AllTypes = "All Types"

var (
	ErrNotFound   = errors.New("journal entry not found")
	ErrUnbalanced = errors.New("journal entry does not balance")
)

// Line is one account movement of a journal entry.
type Line struct {
	Account string
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// JournalEntry is a dated group of lines. VoucherID links entries posted on
// voucher approval back to their voucher.
type JournalEntry struct {
	ID          string
	Date        time.Time
	Description string
	Type        string
	VoucherID   string
	Lines       []Line
}

// Balanced reports whether debits equal credits over all lines.
func (e *JournalEntry) Balanced() bool {
	t := Sum(Flatten([]*JournalEntry{e}))
	return t.Debit.Equal(t.Credit)
}

// Row is a single line of a journal entry, carrying its parent's header fields.
type Row struct {
	EntryID     string
	Date        time.Time
	Description string
	Type        string
	Account     string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// Totals are the debit and credit sums of a set of rows.
type Totals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Flatten expands every entry into one row per line, in entry then line order.
func Flatten(entries []*JournalEntry) []Row {
	var rows []Row

	for _, e := range entries {
		for _, l := range e.Lines {
			rows = append(rows, Row{
				EntryID:     e.ID,
				Date:        e.Date,
				Description: e.Description,
				Type:        e.Type,
				Account:     l.Account,
				Debit:       l.Debit,
				Credit:      l.Credit,
			})
		}
	}

	return rows
}

// Types returns AllTypes followed by the sorted distinct non-empty row types.
func Types(rows []Row) []string {
	seen := make(map[string]struct{})

	for _, r := range rows {
		if r.Type != "" {
			seen[r.Type] = struct{}{}
		}
	}

	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}

	slices.Sort(types)

	return append([]string{AllTypes}, types...)
}

// Filter keeps the rows of the given type whose description or account contains
// query, case-insensitively. An empty typ or AllTypes matches every type.
func Filter(rows []Row, typ, query string) []Row {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Row, 0, len(rows))

	for _, r := range rows {
		if typ != "" && typ != AllTypes && r.Type != typ {
			continue
		}

		if query != "" &&
			!strings.Contains(strings.ToLower(r.Description), query) &&
			!strings.Contains(strings.ToLower(r.Account), query) {
			continue
		}

		out = append(out, r)
	}

	return out
}

// Sum totals debit and credit over rows.
func Sum(rows []Row) Totals {
	var t Totals

	for _, r := range rows {
		t.Debit = t.Debit.Add(r.Debit)
		t.Credit = t.Credit.Add(r.Credit)
	}

	return t
}
