package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/voucherdesk/internal/importer"
)

func TestService_Import(t *testing.T) {
	svc := importer.NewService()

	input := "Date,Description,Type,Account,Debit,Credit\n\"2024-03-01\",\"Taxi\",\"voucher\",\"Travel\",9,0\n\"2024-03-01\",\"Taxi\",\"voucher\",\"Bank\",0,9\n"

	entries, err := svc.Import("", strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].Lines, 2)

	_, err = svc.Import("ofx", strings.NewReader(input))
	assert.ErrorContains(t, err, "unknown import format")
}

func TestService_ImportBankStatement(t *testing.T) {
	svc := importer.NewService()

	input := "Data mov.;Descrição;Montante\n30-01-2026;PAGAMENTO TSU;-608,13\n"

	entries, err := svc.Import(importer.FormatBankCSV, strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Balanced())
	assert.Equal(t, "bank", entries[0].Type)
}
