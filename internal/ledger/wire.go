package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/voucherdesk/internal/format"
)

// lenientDecimal decodes numbers and numeric strings. Anything else, including
// an absent field, decodes to zero.
type lenientDecimal decimal.Decimal

func (d *lenientDecimal) UnmarshalJSON(b []byte) error {
	*d = lenientDecimal(decimal.Zero)

	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] == 'n' || b[0] == 't' || b[0] == 'f' || b[0] == '{' || b[0] == '[' {
		return nil
	}

	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
	}

	if v, err := decimal.NewFromString(s); err == nil {
		*d = lenientDecimal(v)
	}

	return nil
}

type wireLine struct {
	Account string         `json:"account"`
	Debit   lenientDecimal `json:"debit"`
	Credit  lenientDecimal `json:"credit"`
}

type wireEntry struct {
	ID          json.RawMessage `json:"id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	VoucherID   string          `json:"voucher_id"`
	Entries     []wireLine      `json:"entries"`
}

func (e *JournalEntry) UnmarshalJSON(b []byte) error {
	var w wireEntry
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("decoding journal entry: %w", err)
	}

	date, _ := format.ParseDate(w.Date)

	*e = JournalEntry{
		ID:          rawID(w.ID),
		Date:        date,
		Description: w.Description,
		Type:        w.Type,
		VoucherID:   w.VoucherID,
		Lines:       make([]Line, 0, len(w.Entries)),
	}

	for _, l := range w.Entries {
		e.Lines = append(e.Lines, Line{
			Account: l.Account,
			Debit:   decimal.Decimal(l.Debit),
			Credit:  decimal.Decimal(l.Credit),
		})
	}

	return nil
}

func (e JournalEntry) MarshalJSON() ([]byte, error) {
	type outLine struct {
		Account string          `json:"account"`
		Debit   json.RawMessage `json:"debit"`
		Credit  json.RawMessage `json:"credit"`
	}

	type outEntry struct {
		ID          string    `json:"id"`
		Date        string    `json:"date"`
		Description string    `json:"description"`
		Type        string    `json:"type"`
		VoucherID   string    `json:"voucher_id,omitempty"`
		Entries     []outLine `json:"entries"`
	}

	out := outEntry{
		ID:          e.ID,
		Description: e.Description,
		Type:        e.Type,
		VoucherID:   e.VoucherID,
		Entries:     make([]outLine, 0, len(e.Lines)),
	}

	if !e.Date.IsZero() {
		out.Date = e.Date.Format(time.DateOnly)
	}

	for _, l := range e.Lines {
		out.Entries = append(out.Entries, outLine{
			Account: l.Account,
			Debit:   json.RawMessage(l.Debit.String()),
			Credit:  json.RawMessage(l.Credit.String()),
		})
	}

	return json.Marshal(out)
}

// rawID accepts string and numeric ids.
func rawID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	return string(raw)
}
