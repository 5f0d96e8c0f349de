package view

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/voucherdesk/internal/api"
	"github.com/MrJamesThe3rd/voucherdesk/internal/export"
	"github.com/MrJamesThe3rd/voucherdesk/internal/format"
	"github.com/MrJamesThe3rd/voucherdesk/internal/ledger"
)

type ledgerState int

const (
	ledgerStateBrowse ledgerState = iota
	ledgerStateSearch
	ledgerStatePeriod
)

type LedgerModel struct {
	CommonModel
	client *api.Client
	opts   Options

	state   ledgerState
	table   table.Model
	search  textinput.Model
	picker  PeriodPicker
	period  PeriodSelectedMsg
	toast   Toast
	loading bool
	err     error

	all     []ledger.Row
	types   []string
	typeIdx int
	visible []ledger.Row
}

func NewLedgerModel(client *api.Client, opts Options) LedgerModel {
	search := textinput.New()
	search.Placeholder = "Search description or account"
	search.Prompt = "/ "
	search.Width = 40

	return LedgerModel{
		client: client,
		opts:   opts,
		table: newTable([]table.Column{
			{Title: "Date", Width: 10},
			{Title: "Description", Width: 32},
			{Title: "Type", Width: 12},
			{Title: "Account", Width: 18},
			{Title: "Debit", Width: 12},
			{Title: "Credit", Width: 12},
		}),
		search:  search,
		picker:  NewPeriodPicker(),
		period:  PeriodSelectedMsg{Period: PeriodAll},
		types:   []string{ledger.AllTypes},
		loading: true,
	}
}

func (m LedgerModel) Title() string { return "Ledger" }

func (m LedgerModel) ShortHelp() string {
	switch m.state {
	case ledgerStateSearch:
		return "Enter/Esc: done searching"
	case ledgerStatePeriod:
		return "Enter: select | Esc: back"
	}

	return "Esc: back | t: type | d: period | /: search | e: export CSV | x: export XLSX | r: refresh"
}

func (m LedgerModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadLedgerMsg:
		m.loading = false
		m.err = msg.err

		if msg.err != nil {
			return m, nil
		}

		active := ledger.AllTypes
		if m.typeIdx < len(m.types) {
			active = m.types[m.typeIdx]
		}

		m.all = ledger.Flatten(msg.entries)
		m.types = ledger.Types(m.all)
		m.typeIdx = max(slices.Index(m.types, active), 0)

		m.refreshTable()

		return m, nil

	case PeriodSelectedMsg:
		m.period = msg
		m.state = ledgerStateBrowse
		m.loading = true
		m.table.Focus()

		return m, m.loadCmd()

	case ledgerSavedMsg:
		if msg.err != nil {
			return m, m.toast.Show(fmt.Sprintf("Export failed: %v", msg.err), true, m.opts.ToastTTL)
		}

		return m, m.toast.Show(fmt.Sprintf("Saved %s", msg.path), false, m.opts.ToastTTL)

	case toastExpiredMsg:
		m.toast.Expire(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(msg.Height - 12)

		return m, nil
	}

	switch m.state {
	case ledgerStateSearch:
		return m.updateSearch(msg)
	case ledgerStatePeriod:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.picker.Selecting() {
			m.state = ledgerStateBrowse
			m.table.Focus()

			return m, nil
		}

		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd
	}

	return m.updateBrowse(msg)
}

func (m LedgerModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "t":
			m.typeIdx = (m.typeIdx + 1) % len(m.types)
			m.refreshTable()

			return m, nil
		case "d":
			m.state = ledgerStatePeriod
			m.picker = NewPeriodPicker()
			m.table.Blur()

			return m, nil
		case "/":
			m.state = ledgerStateSearch
			m.table.Blur()

			return m, m.search.Focus()
		case "e":
			return m, m.saveCmd(false)
		case "x":
			return m, m.saveCmd(true)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m LedgerModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.state = ledgerStateBrowse
			m.search.Blur()
			m.table.Focus()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refreshTable()

	return m, cmd
}

func (m *LedgerModel) refreshTable() {
	m.visible = ledger.Filter(m.all, m.types[m.typeIdx], m.search.Value())

	rows := make([]table.Row, 0, len(m.visible))
	for _, r := range m.visible {
		rows = append(rows, table.Row{
			format.Date(r.Date),
			format.Truncate(r.Description, 32),
			r.Type,
			r.Account,
			format.Amount(r.Debit),
			format.Amount(r.Credit),
		})
	}

	m.table.SetRows(rows)
}

func (m LedgerModel) View() string {
	if m.state == ledgerStatePeriod {
		return lipgloss.NewStyle().Padding(1).Render(m.picker.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading journal...")
	}

	header := fmt.Sprintf(
		"Filter: [t] Type: %s | [d] Period: %s | [/] Search: %s",
		activeStyle(m.types[m.typeIdx]),
		activeStyle(m.period.Label()),
		activeStyle(m.search.Value()),
	)

	parts := []string{lipgloss.NewStyle().PaddingBottom(1).Render(header)}

	if m.err != nil {
		parts = append(parts, errorStyle.Render(api.UserMessage(m.err, "Failed to load journal")))
	}

	if m.state == ledgerStateSearch {
		parts = append(parts, m.search.View())
	}

	totals := ledger.Sum(m.visible)

	parts = append(parts,
		boxed(m.table.View()),
		fmt.Sprintf("%d rows | Total debit: %s | Total credit: %s",
			len(m.visible),
			titleStyle.Render(format.Amount(totals.Debit)),
			titleStyle.Render(format.Amount(totals.Credit)),
		),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	if t := m.toast.View(); t != "" {
		content = t + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type loadLedgerMsg struct {
	entries []*ledger.JournalEntry
	err     error
}

func (m LedgerModel) loadCmd() tea.Cmd {
	filter := api.JournalFilter{Start: m.period.Start, End: m.period.End}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		entries, err := m.client.ListJournal(ctx, filter)

		return loadLedgerMsg{entries: entries, err: err}
	}
}

type ledgerSavedMsg struct {
	path string
	err  error
}

// saveCmd exports exactly the rows on screen.
func (m LedgerModel) saveCmd(xlsx bool) tea.Cmd {
	rows := slices.Clone(m.visible)
	dir := m.opts.ExportDir

	return func() tea.Msg {
		path, err := export.SaveLedger(dir, rows, xlsx)
		return ledgerSavedMsg{path: path, err: err}
	}
}
