package importer

import (
	"io"

	"github.com/MrJamesThe3rd/voucherdesk/internal/ledger"
)

// Format identifies the layout of an imported file.
type Format string

const (
	FormatLedgerCSV Format = "ledger-csv"
	FormatBankCSV   Format = "bank-csv"
)

type Importer interface {
	Parse(r io.Reader) ([]*ledger.JournalEntry, error)
}
