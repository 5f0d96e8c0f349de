package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/MrJamesThe3rd/voucherdesk/internal/importer"
	"github.com/MrJamesThe3rd/voucherdesk/internal/ledger"
)

// JournalFilter narrows the journal listing. Zero fields are not sent.
type JournalFilter struct {
	Type  string
	Start time.Time
	End   time.Time
}

func (f JournalFilter) query() url.Values {
	q := url.Values{}

	if f.Type != "" && f.Type != ledger.AllTypes {
		q.Set("type", f.Type)
	}

	if !f.Start.IsZero() {
		q.Set("start_date", f.Start.Format(time.DateOnly))
	}

	if !f.End.IsZero() {
		q.Set("end_date", f.End.Format(time.DateOnly))
	}

	return q
}

func (c *Client) ListJournal(ctx context.Context, filter JournalFilter) ([]*ledger.JournalEntry, error) {
	var resp struct {
		Journal []*ledger.JournalEntry `json:"journal"`
	}

	if err := c.getJSON(ctx, "journal", filter.query(), &resp); err != nil {
		return nil, err
	}

	return resp.Journal, nil
}

// ImportJournal uploads entries in the ledger CSV layout and returns how many
// the backend stored.
func (c *Client) ImportJournal(ctx context.Context, entries []*ledger.JournalEntry) (int, error) {
	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("format", string(importer.FormatLedgerCSV)); err != nil {
		return 0, fmt.Errorf("writing field format: %w", err)
	}

	part, err := mw.CreateFormFile("file", ledger.CSVFileName)
	if err != nil {
		return 0, fmt.Errorf("creating form file: %w", err)
	}

	if err := ledger.WriteCSV(part, ledger.Flatten(entries)); err != nil {
		return 0, fmt.Errorf("writing ledger csv: %w", err)
	}

	if err := mw.Close(); err != nil {
		return 0, fmt.Errorf("closing multipart body: %w", err)
	}

	var resp struct {
		Count int `json:"count"`
	}

	if err := c.do(ctx, http.MethodPost, "journal/import", nil, &buf, mw.FormDataContentType(), &resp); err != nil {
		return 0, err
	}

	return resp.Count, nil
}
