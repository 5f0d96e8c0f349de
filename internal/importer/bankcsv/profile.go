package bankcsv

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column, e.g. "Montante" holding "-10,00".
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// Profile describes the column layout of one bank statement export.
type Profile struct {
	Name       string
	DateCol    string
	DescCol    string
	AmountMode amountMode
	AmountCol  string // amountSingle only
	DebitCol   string // amountSplit only
	CreditCol  string // amountSplit only
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles are tried in order. The generic statement comes first; the
// Portuguese bank layouts after it cover exports that use localized headers.
var profiles = []Profile{
	{
		Name:       "statement",
		DateCol:    "Date",
		DescCol:    "Description",
		AmountMode: amountSingle,
		AmountCol:  "Amount",
	},
	{
		Name:       "pt-card",
		DateCol:    "Data",
		DescCol:    "Descrição",
		AmountMode: amountSplit,
		DebitCol:   "Débito",
		CreditCol:  "Crédito",
	},
	{
		Name:       "pt-movements",
		DateCol:    "Data mov.",
		DescCol:    "Descrição",
		AmountMode: amountSingle,
		AmountCol:  "Movimento",
	},
	{
		Name:       "pt-balances",
		DateCol:    "Data mov.",
		DescCol:    "Descrição",
		AmountMode: amountSingle,
		AmountCol:  "Montante",
	},
}
