package ledger_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/voucherdesk/internal/ledger"
)

func TestWriteCSV(t *testing.T) {
	rows := []ledger.Row{
		{
			Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Description: `Say "hi"`,
			Type:        "A",
			Account:     "Cash, petty",
			Debit:       dec("100"),
			Credit:      dec("0"),
		},
		{
			Description: "No date",
			Account:     "Bank",
			Credit:      dec("40.25"),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, ledger.WriteCSV(&buf, rows))

	want := strings.Join([]string{
		"Date,Description,Type,Account,Debit,Credit",
		`"2024-03-01","Say ""hi""","A","Cash, petty",100,0`,
		`"","No date","","Bank",0,40.25`,
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, `Say "hi"`, records[1][1])
	assert.Equal(t, "Cash, petty", records[1][3])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ledger.WriteCSV(&buf, nil))
	assert.Equal(t, "Date,Description,Type,Account,Debit,Credit\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	rows := ledger.Flatten(sampleEntries())

	var buf bytes.Buffer
	require.NoError(t, ledger.WriteXLSX(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)

	defer f.Close()

	got, err := f.GetRows("Ledger")
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, ledger.Header, got[0])
	assert.Equal(t, []string{"2024-03-01", "Office chairs", "A", "Furniture", "100", "0"}, got[1])
	assert.Equal(t, []string{"", "", "", "Total", "100", "40"}, got[3])
}
