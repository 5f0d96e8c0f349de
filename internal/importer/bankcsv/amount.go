package bankcsv

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses a statement amount. A comma after the last dot is the
// decimal separator ("1.234,56", "-588,74"); otherwise commas group thousands
// ("1,234.56").
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), " ", "")

	if strings.LastIndex(clean, ",") > strings.LastIndex(clean, ".") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	return decimal.NewFromString(clean)
}
