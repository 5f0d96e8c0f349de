package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/voucherdesk/internal/importer/bankcsv"
	"github.com/MrJamesThe3rd/voucherdesk/internal/importer/ledgercsv"
	"github.com/MrJamesThe3rd/voucherdesk/internal/ledger"
)

type Service struct {
	importers map[Format]Importer
}

func NewService() *Service {
	return &Service{
		importers: map[Format]Importer{
			FormatLedgerCSV: ledgercsv.NewParser(),
			FormatBankCSV:   bankcsv.NewParser(),
		},
	}
}

// Import parses r with the importer registered for format. An empty format
// means the ledger CSV export.
func (s *Service) Import(format Format, r io.Reader) ([]*ledger.JournalEntry, error) {
	if format == "" {
		format = FormatLedgerCSV
	}

	importer, ok := s.importers[format]
	if !ok {
		return nil, fmt.Errorf("unknown import format: %s", format)
	}

	return importer.Parse(r)
}
