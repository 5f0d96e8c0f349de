package voucher

import (
	"errors"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound    = errors.New("voucher not found")
	ErrInvalid     = errors.New("invalid voucher request")
	ErrAlreadyPaid = errors.New("voucher already paid")
)

// Status is the lifecycle state of a voucher. Every view shows a subset of it.
type Status string

const (
	StatusPending          Status = "pending"
	StatusProcessed        Status = "processed"
	StatusAwaitingApproval Status = "awaiting_approval"
	StatusRequested        Status = "requested"
	StatusApproved         Status = "approved"
	StatusPaid             Status = "paid"
	StatusRejected         Status = "rejected"
	StatusDeclined         Status = "declined"
	StatusError            Status = "error"
)

// Status subsets rendered by the individual views.
var (
	Statuses = []Status{
		StatusPending, StatusProcessed, StatusAwaitingApproval, StatusRequested,
		StatusApproved, StatusPaid, StatusRejected, StatusDeclined, StatusError,
	}
	UploadStatuses  = []Status{StatusPending, StatusProcessed, StatusAwaitingApproval, StatusApproved, StatusRejected, StatusError}
	RequestStatuses = []Status{StatusAwaitingApproval, StatusRequested, StatusApproved, StatusDeclined, StatusRejected, StatusPaid}
	InvoiceStatuses = []Status{StatusPending, StatusPaid}
)

func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

// Terminal reports whether no further workflow action applies.
func (s Status) Terminal() bool {
	return s == StatusPaid
}

// Label is the human-readable form used in tables, e.g. "Awaiting Approval".
func (s Status) Label() string {
	switch s {
	case StatusAwaitingApproval:
		return "Awaiting Approval"
	case "":
		return "Unknown"
	}

	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}

	return string(b)
}

// File is an attachment of a voucher.
type File struct {
	Name string
	URL  string
}

// Voucher is an uploaded financial document or a manually created entry.
type Voucher struct {
	ID          string
	Status      Status
	Amount      *decimal.Decimal
	Title       string
	Description string
	Category    string
	Date        time.Time
	Files       []File
	OCRStatus   string
	ApproverID  string
	Rejections  Rejections
}

// HasOCR reports whether OCR has been requested or run at least once.
func (v *Voucher) HasOCR() bool {
	return v.OCRStatus != ""
}

// VisibleFiles returns at most n files and how many were left out.
func (v *Voucher) VisibleFiles(n int) ([]File, int) {
	if len(v.Files) <= n {
		return v.Files, 0
	}

	return v.Files[:n], len(v.Files) - n
}
