package voucher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/voucherdesk/internal/format"
)

// flexString accepts JSON strings, numbers and booleans. The backend is not
// consistent about the type of ids and status markers.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	switch {
	case bytes.Equal(b, []byte("null")):
		*f = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		*f = flexString(s)
	default:
		*f = flexString(b)
	}

	return nil
}

// flexAmount decodes a number or numeric string. Anything else is treated as absent.
type flexAmount struct {
	d *decimal.Decimal
}

func (f *flexAmount) UnmarshalJSON(b []byte) error {
	f.d = parseAmount(b)
	return nil
}

func parseAmount(b []byte) *decimal.Decimal {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}

	return &d
}

type wireFile struct {
	Name    string `json:"name"`
	FileURL string `json:"file_url,omitempty"`
	URL     string `json:"url,omitempty"`
}

type wireRejection struct {
	Reason     string     `json:"rejection_reason"`
	RejectedAt string     `json:"rejected_at"`
	RejectedBy flexString `json:"rejected_by"`
}

type wireVoucher struct {
	ID          flexString      `json:"id"`
	Status      Status          `json:"status"`
	Amount      flexAmount      `json:"amount"`
	Title       string          `json:"title"`
	Customer    string          `json:"customer"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
	Files       []wireFile      `json:"files"`
	OCRStatus   flexString      `json:"ocr_status"`
	OCR         flexString      `json:"OCR"`
	ApproverID  flexString      `json:"approver_id"`
	Count       json.RawMessage `json:"rejection_count"`
	History     []wireRejection `json:"rejection_history"`
	Reason      string          `json:"rejection_reason"`
	RejectedAt  string          `json:"rejected_at"`
	RejectedBy  flexString      `json:"rejected_by"`
}

// UnmarshalJSON accepts every known server shape of a voucher and normalizes it,
// including the two rejection representations.
func (v *Voucher) UnmarshalJSON(b []byte) error {
	var w wireVoucher
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("decoding voucher: %w", err)
	}

	*v = Voucher{
		ID:          string(w.ID),
		Status:      w.Status,
		Amount:      w.Amount.d,
		Title:       firstNonEmpty(w.Title, w.Customer),
		Description: w.Description,
		Category:    w.Category,
		Date:        parseTime(firstNonEmpty(w.Date, w.CreatedAt)),
		OCRStatus:   firstNonEmpty(string(w.OCRStatus), string(w.OCR)),
		ApproverID:  string(w.ApproverID),
	}

	for _, f := range w.Files {
		v.Files = append(v.Files, File{Name: f.Name, URL: firstNonEmpty(f.FileURL, f.URL)})
	}

	history := make([]RejectionRecord, 0, len(w.History))
	for _, h := range w.History {
		history = append(history, RejectionRecord{Reason: h.Reason, At: parseTime(h.RejectedAt), By: string(h.RejectedBy)})
	}

	v.Rejections = NormalizeRejections(history, FlatRejection{
		Reason:     w.Reason,
		RejectedAt: w.RejectedAt,
		UpdatedAt:  w.UpdatedAt,
		RejectedBy: string(w.RejectedBy),
		ApproverID: string(w.ApproverID),
	}, parseCount(w.Count))

	return nil
}

// MarshalJSON writes the canonical shape served by the voucher API.
func (v Voucher) MarshalJSON() ([]byte, error) {
	type outRejection struct {
		Reason     string `json:"rejection_reason"`
		RejectedAt string `json:"rejected_at,omitempty"`
		RejectedBy string `json:"rejected_by,omitempty"`
	}

	type outVoucher struct {
		ID          string          `json:"id"`
		Status      Status          `json:"status"`
		Amount      json.RawMessage `json:"amount"`
		Title       string          `json:"title"`
		Description string          `json:"description"`
		Category    string          `json:"category"`
		Date        string          `json:"date,omitempty"`
		Files       []wireFile      `json:"files"`
		OCRStatus   string          `json:"ocr_status,omitempty"`
		ApproverID  string          `json:"approver_id,omitempty"`
		Count       int             `json:"rejection_count"`
		History     []outRejection  `json:"rejection_history"`
	}

	out := outVoucher{
		ID:          v.ID,
		Status:      v.Status,
		Amount:      json.RawMessage("null"),
		Title:       v.Title,
		Description: v.Description,
		Category:    v.Category,
		Files:       make([]wireFile, 0, len(v.Files)),
		OCRStatus:   v.OCRStatus,
		ApproverID:  v.ApproverID,
		Count:       v.Rejections.Count(),
		History:     make([]outRejection, 0, len(v.Rejections.Items())),
	}

	if v.Amount != nil {
		out.Amount = json.RawMessage(v.Amount.String())
	}

	if !v.Date.IsZero() {
		out.Date = v.Date.Format(time.RFC3339)
	}

	for _, f := range v.Files {
		out.Files = append(out.Files, wireFile{Name: f.Name, FileURL: f.URL})
	}

	for _, r := range v.Rejections.Items() {
		rec := outRejection{Reason: r.Reason, RejectedBy: r.By}
		if !r.At.IsZero() {
			rec.RejectedAt = r.At.Format(time.RFC3339)
		}

		out.History = append(out.History, rec)
	}

	return json.Marshal(out)
}

// parseCount returns the count only when the field is a JSON number.
func parseCount(raw json.RawMessage) *int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' || raw[0] == 'n' || raw[0] == 't' || raw[0] == 'f' {
		return nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil || math.IsNaN(f) {
		return nil
	}

	n := int(f)

	return &n
}

func parseTime(s string) time.Time {
	t, _ := format.ParseDate(s)
	return t
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
