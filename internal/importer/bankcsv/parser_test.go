package bankcsv_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/voucherdesk/internal/importer/bankcsv"
	"github.com/MrJamesThe3rd/voucherdesk/internal/ledger"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// assertMovement checks the entry books amount between the bank and the
// counter account on the expected sides.
func assertMovement(t *testing.T, e *ledger.JournalEntry, amount string, outflow bool) {
	t.Helper()

	want := decimal.RequireFromString(amount)

	require.Len(t, e.Lines, 2)
	assert.True(t, e.Balanced())
	assert.Equal(t, ledger.TypeBank, e.Type)

	if outflow {
		assert.Equal(t, ledger.AccountExpenses, e.Lines[0].Account)
		assert.True(t, want.Equal(e.Lines[0].Debit), "debit %s", e.Lines[0].Debit)
		assert.Equal(t, ledger.AccountBank, e.Lines[1].Account)
		assert.True(t, want.Equal(e.Lines[1].Credit), "credit %s", e.Lines[1].Credit)

		return
	}

	assert.Equal(t, ledger.AccountBank, e.Lines[0].Account)
	assert.True(t, want.Equal(e.Lines[0].Debit), "debit %s", e.Lines[0].Debit)
	assert.Equal(t, ledger.AccountIncome, e.Lines[1].Account)
	assert.True(t, want.Equal(e.Lines[1].Credit), "credit %s", e.Lines[1].Credit)
}

func TestParser_Conta(t *testing.T) {
	csv := `Consultar saldos e movimentos à ordem - 31-01-2026;"=""0000"""
Nome cliente;JOHN DOE
NIF;"=""123"""

Dados da conta
Conta;0000 - EUR - Conta Extracto
Saldo contabilístico;1.000,00 EUR

Data mov.;Data-valor;Descrição;Montante;Saldo contabilístico após movimento
30-01-2026;30-01-2026;INSTITUTO GESTAO FINA;-588,74;48.825,46
09-01-2026;09-01-2026;TFI Wise;8.608,52;52.532,78
`

	entries, err := bankcsv.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, date(2026, 1, 30), entries[0].Date)
	assert.Equal(t, "INSTITUTO GESTAO FINA", entries[0].Description)
	assertMovement(t, entries[0], "588.74", true)

	assert.Equal(t, date(2026, 1, 9), entries[1].Date)
	assert.Equal(t, "TFI Wise", entries[1].Description)
	assertMovement(t, entries[1], "8608.52", false)
}

func TestParser_Extrato(t *testing.T) {
	csv := `Consultar extrato - 15-02-2026 : 0829015676030
Conta ;0829015676030 - EUR - Conta Extracto
Saldo contabilístico final ;41.393,66

Data mov. ;Data valor ;Origem ;Descrição ;Movimento ;Estorno ;Saldo contabilístico após movimento ;
13-02-2026;13-02-2026;"=""0003""";PAGAMENTO TSU ;-608,13;  ;41.393,66;
04-02-2026;04-02-2026;SIBS ;TFI Wise ;4.324,06;  ;51.302,85;
`

	entries, err := bankcsv.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "PAGAMENTO TSU", entries[0].Description)
	assertMovement(t, entries[0], "608.13", true)
	assertMovement(t, entries[1], "4324.06", false)
}

func TestParser_Cartao(t *testing.T) {
	csv := `Consultar saldos e movimentos de cartões - 15-02-2026
Conta cartão ;4163 **** **** 8016 - EUR - Business Débito

Data ;Data valor ;Descrição ;Débito ;Crédito ;
16-12-2025 ;14-12-2025 ;UBER   *TRIP ;47,91 ; ;
17-12-2025 ;16-12-2025 ;REFUND AMAZON ;  ;25,00 ;
 ; ; ; ;Página 1/2 ;
`

	entries, err := bankcsv.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, date(2025, 12, 16), entries[0].Date)
	assert.Equal(t, "UBER   *TRIP", entries[0].Description)
	assertMovement(t, entries[0], "47.91", true)
	assertMovement(t, entries[1], "25", false)
}

func TestParser_GenericStatement(t *testing.T) {
	csv := `Date;Description;Amount
2024-03-01;Coffee beans;-1,234.50
2024-03-02;Invoice 17;300
`

	entries, err := bankcsv.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, date(2024, 3, 1), entries[0].Date)
	assertMovement(t, entries[0], "1234.5", true)
	assertMovement(t, entries[1], "300", false)
}

func TestParser_Latin1Encoding(t *testing.T) {
	utf8CSV := "Data mov.;Descrição;Montante\n30-01-2026;CAFÉ CENTRAL;-10,00\n"

	latin1Bytes, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	entries, err := bankcsv.NewParser().Parse(strings.NewReader(string(latin1Bytes)))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "CAFÉ CENTRAL", entries[0].Description)
}

func TestParser_Edges(t *testing.T) {
	type args struct {
		csv string
	}

	type testCase struct {
		name    string
		args    args
		wantLen int
		wantErr string
	}

	tests := []testCase{
		{
			name:    "EmptyFile",
			args:    args{csv: ""},
			wantErr: "no matching bank statement format",
		},
		{
			name:    "HeaderOnly",
			args:    args{csv: "Data mov.;Data-valor;Descrição;Montante"},
			wantLen: 0,
		},
		{
			name:    "MissingDescription",
			args:    args{csv: "Data mov.;Descrição;Montante\n30-01-2026;;-10,00\n"},
			wantErr: "row 2: missing description",
		},
		{
			name:    "DifferentColumnOrder",
			args:    args{csv: "Random;MetaData\nMontante;Descrição;Data mov.;Ignored\n-10,00;TEST_ORDER;30-01-2026;XXX\n"},
			wantLen: 1,
		},
		{
			name:    "SkipsFooterAndZeroRows",
			args:    args{csv: "Data mov.;Descrição;Montante\n30-01-2026;TEST;-10,00\n31-01-2026;NOTHING;0,00\nTotais;;;;\n"},
			wantLen: 1,
		},
		{
			name:    "LargeAmount",
			args:    args{csv: "Data mov.;Descrição;Montante\n30-01-2026;BIG TRANSFER;-1.234.567,89\n"},
			wantLen: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := bankcsv.NewParser().Parse(strings.NewReader(tt.args.csv))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Len(t, entries, tt.wantLen)

			for _, e := range entries {
				assert.True(t, e.Balanced())
			}
		})
	}
}

func TestParser_LargeAmountValue(t *testing.T) {
	csv := "Data mov.;Descrição;Montante\n30-01-2026;BIG TRANSFER;-1.234.567,89\n"

	entries, err := bankcsv.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assertMovement(t, entries[0], "1234567.89", true)
}

func TestParser_GenericStatementTakesPrecedence(t *testing.T) {
	csv := "Date;Description;Amount;Data;Descrição;Débito;Crédito\n2024-03-01;Office chairs;-250,00;01-03-2024;IGNORED;999,00;\n"

	entries, err := bankcsv.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "Office chairs", entries[0].Description)
	assertMovement(t, entries[0], "250", true)
}
