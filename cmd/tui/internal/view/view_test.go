package view

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/voucherdesk/internal/ledger"
	"github.com/MrJamesThe3rd/voucherdesk/internal/voucher"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPeriod_Range(t *testing.T) {
	type args struct {
		period Period
		now    time.Time
	}

	type testCase struct {
		name      string
		args      args
		wantStart time.Time
		wantEnd   time.Time
	}

	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

	tests := []testCase{
		{
			name: "AllTime",
			args: args{period: PeriodAll, now: now},
		},
		{
			name:      "ThisMonth",
			args:      args{period: PeriodThisMonth, now: now},
			wantStart: day(2024, 3, 1),
			wantEnd:   day(2024, 3, 15),
		},
		{
			name:      "LastMonthLeapYear",
			args:      args{period: PeriodLastMonth, now: now},
			wantStart: day(2024, 2, 1),
			wantEnd:   day(2024, 2, 29),
		},
		{
			name:      "LastMonthAcrossYear",
			args:      args{period: PeriodLastMonth, now: day(2024, 1, 10)},
			wantStart: day(2023, 12, 1),
			wantEnd:   day(2023, 12, 31),
		},
		{
			name:      "ThisYear",
			args:      args{period: PeriodThisYear, now: now},
			wantStart: day(2024, 1, 1),
			wantEnd:   day(2024, 3, 15),
		},
		{
			name: "Custom",
			args: args{period: PeriodCustom, now: now},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.args.period.Range(tt.args.now)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestPeriodPicker_SelectsPreset(t *testing.T) {
	p := NewPeriodPicker()

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(PeriodSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, PeriodThisMonth, msg.Period)
	assert.Equal(t, "This Month", msg.Label())
	assert.True(t, p.Selecting())
}

func TestPeriodPicker_CustomAsksForDates(t *testing.T) {
	p := NewPeriodPicker()

	for i := 0; i < 4; i++ {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, p.Selecting())
}

func TestPeriodSelectedMsg_CustomLabel(t *testing.T) {
	msg := PeriodSelectedMsg{Period: PeriodCustom, Start: day(2024, 1, 1), End: day(2024, 1, 31)}
	assert.Equal(t, "2024-01-01 to 2024-01-31", msg.Label())
}

func TestToast(t *testing.T) {
	var toast Toast

	assert.Nil(t, toast.Show("", false, time.Second))

	require.NotNil(t, toast.Show("first", false, time.Second))
	first := toastExpiredMsg{seq: toast.seq}

	require.NotNil(t, toast.Show("second", true, time.Second))

	toast.Expire(first)
	assert.Contains(t, toast.View(), "second")

	toast.Expire(toastExpiredMsg{seq: toast.seq})
	assert.Empty(t, toast.View())
}

func TestSplitPaths(t *testing.T) {
	assert.Equal(t, []string{"a.pdf", "b c.png"}, splitPaths(" a.pdf, ,b c.png ,"))
	assert.Empty(t, splitPaths(" , "))
}

func TestRequestRows(t *testing.T) {
	vouchers := []*voucher.Voucher{
		{ID: "1", Status: voucher.StatusPending},
		{ID: "2", Status: voucher.StatusAwaitingApproval},
		{ID: "3", Status: voucher.StatusPaid},
		{ID: "4", Status: voucher.StatusError},
		{ID: "5", Status: voucher.StatusDeclined},
	}

	var ids []string
	for _, v := range requestRows(vouchers) {
		ids = append(ids, v.ID)
	}

	assert.Equal(t, []string{"2", "3", "5"}, ids)
}

func TestSignInFields_Blob(t *testing.T) {
	f := &signInFields{id: " u1 ", name: "Ana", token: ""}

	assert.Equal(t, map[string]any{"id": "u1", "name": "Ana"}, f.blob())
}

func TestResultPreview(t *testing.T) {
	items := make([]string, 30)
	for i := range items {
		items[i] = `"x"`
	}

	raw := json.RawMessage("[" + strings.Join(items, ",") + "]")

	lines := strings.Split(resultPreview(raw), "\n")
	assert.Len(t, lines, previewLines+1)
	assert.Contains(t, lines[len(lines)-1], "...")

	assert.Contains(t, resultPreview(json.RawMessage("not json")), "not json")
}

func journalFixture() []*ledger.JournalEntry {
	nine := decimal.RequireFromString("9")
	four := decimal.RequireFromString("4.5")

	return []*ledger.JournalEntry{
		{
			ID: "e1", Date: day(2024, 3, 1), Description: "Taxi", Type: "voucher",
			Lines: []ledger.Line{
				{Account: "Travel", Debit: nine},
				{Account: "Bank", Credit: nine},
			},
		},
		{
			ID: "e2", Date: day(2024, 3, 2), Description: "Coffee", Type: "manual",
			Lines: []ledger.Line{
				{Account: "Meals", Debit: four},
				{Account: "Bank", Credit: four},
			},
		},
	}
}

func TestLedgerModel_TypeAndSearchFilters(t *testing.T) {
	m := NewLedgerModel(nil, Options{})

	model, _ := m.Update(loadLedgerMsg{entries: journalFixture()})
	m = model.(LedgerModel)

	assert.Equal(t, []string{ledger.AllTypes, "manual", "voucher"}, m.types)
	assert.Len(t, m.visible, 4)

	model, _ = m.Update(key("t"))
	m = model.(LedgerModel)

	require.Len(t, m.visible, 2)
	assert.Equal(t, "Coffee", m.visible[0].Description)

	totals := ledger.Sum(m.visible)
	assert.True(t, totals.Debit.Equal(decimal.RequireFromString("4.5")))
	assert.Contains(t, m.View(), "manual")
}

func TestImportModel_PreselectsBalancedEntries(t *testing.T) {
	entries := journalFixture()
	entries[1].Lines = entries[1].Lines[:1]

	m := NewImportModel(nil, nil)

	model, _ := m.Update(importParsedMsg{entries: entries})
	m = model.(ImportModel)

	require.Equal(t, importStateReview, m.state)
	assert.True(t, m.selected[0])
	assert.False(t, m.selected[1])
	assert.Equal(t, entries[:1], m.chosen())

	model, _ = m.Update(key("n"))
	m = model.(ImportModel)
	assert.Empty(t, m.chosen())

	model, _ = m.Update(key("a"))
	m = model.(ImportModel)
	assert.Len(t, m.chosen(), 1)
}

func TestInvoiceTotals(t *testing.T) {
	amount := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}

	invoices := withStatus([]*voucher.Voucher{
		{ID: "1", Status: voucher.StatusPending, Amount: amount("10.50")},
		{ID: "2", Status: voucher.StatusPending},
		{ID: "3", Status: voucher.StatusPaid, Amount: amount("4")},
		{ID: "4", Status: voucher.StatusRejected, Amount: amount("99")},
	}, voucher.InvoiceStatuses)

	require.Len(t, invoices, 3)

	outstanding, paid := invoiceTotals(invoices)
	assert.True(t, outstanding.Equal(decimal.RequireFromString("10.5")))
	assert.True(t, paid.Equal(decimal.RequireFromString("4")))
}

func TestFilesLabel(t *testing.T) {
	type testCase struct {
		name  string
		files []string
		want  string
	}

	tests := []testCase{
		{name: "FitsWithoutMarker", files: []string{"a.pdf", "b.pdf", "c.pdf"}, want: "a.pdf, b.pdf, c.pdf"},
		{name: "ShowsThreeThenMore", files: []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf"}, want: "a.pdf, b.pdf, c.pdf +1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &voucher.Voucher{ID: "v1"}
			for _, name := range tt.files {
				v.Files = append(v.Files, voucher.File{Name: name, URL: "http://files/" + name})
			}

			assert.Equal(t, tt.want, filesLabel(v))
		})
	}
}

func TestLedgerModel_ReloadKeepsActiveType(t *testing.T) {
	m := NewLedgerModel(nil, Options{})

	model, _ := m.Update(loadLedgerMsg{entries: journalFixture()})
	m = model.(LedgerModel)

	model, _ = m.Update(key("t"))
	m = model.(LedgerModel)
	require.Equal(t, "manual", m.types[m.typeIdx])

	entries := journalFixture()
	entries[0].Type = "adjustment"

	model, _ = m.Update(loadLedgerMsg{entries: entries})
	m = model.(LedgerModel)

	assert.Equal(t, []string{ledger.AllTypes, "adjustment", "manual"}, m.types)
	assert.Equal(t, "manual", m.types[m.typeIdx])
	require.Len(t, m.visible, 2)
	assert.Equal(t, "Coffee", m.visible[0].Description)

	model, _ = m.Update(loadLedgerMsg{entries: journalFixture()[:1]})
	m = model.(LedgerModel)

	assert.Equal(t, ledger.AllTypes, m.types[m.typeIdx])
	assert.Len(t, m.visible, 2)
}
