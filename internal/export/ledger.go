package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MrJamesThe3rd/voucherdesk/internal/ledger"
)

// SaveLedger writes rows to ledger.csv, or ledger.xlsx when xlsx is set, in
// dir and returns the file path.
func SaveLedger(dir string, rows []ledger.Row, xlsx bool) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	name, write := ledger.CSVFileName, ledger.WriteCSV
	if xlsx {
		name, write = ledger.XLSXFileName, ledger.WriteXLSX
	}

	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", name, err)
	}

	if err := write(f, rows); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", name, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", name, err)
	}

	return path, nil
}
