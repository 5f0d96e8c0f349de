package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/voucherdesk/internal/api"
	"github.com/MrJamesThe3rd/voucherdesk/internal/format"
	"github.com/MrJamesThe3rd/voucherdesk/internal/lifecycle"
	"github.com/MrJamesThe3rd/voucherdesk/internal/selection"
	"github.com/MrJamesThe3rd/voucherdesk/internal/voucher"
)

// InvoiceModel lists the vouchers seen as invoices: pending or paid.
type InvoiceModel struct {
	CommonModel
	ctrl *lifecycle.Controller
	opts Options

	table     table.Model
	search    textinput.Model
	searching bool
	toast     Toast
	statuses  []string
	statusIdx int
	visible   []*voucher.Voucher
}

func NewInvoiceModel(ctrl *lifecycle.Controller, opts Options) InvoiceModel {
	ti := textinput.New()
	ti.Placeholder = "Search id, title, description, category"
	ti.Prompt = "/ "
	ti.Width = 40

	statuses := []string{selection.AllStatuses}
	for _, st := range voucher.InvoiceStatuses {
		statuses = append(statuses, string(st))
	}

	return InvoiceModel{
		ctrl:   ctrl,
		opts:   opts,
		search: ti,
		table: newTable([]table.Column{
			{Title: "Date", Width: 10},
			{Title: "Customer", Width: 30},
			{Title: "Category", Width: 14},
			{Title: "Amount", Width: 12},
			{Title: "Status", Width: 10},
		}),
		statuses: statuses,
	}
}

func (m InvoiceModel) Title() string { return "Invoices" }

func (m InvoiceModel) ShortHelp() string {
	if m.searching {
		return "Enter/Esc: done searching"
	}

	return "Esc: back | s: status | /: search | r: refresh"
}

func (m InvoiceModel) Init() tea.Cmd {
	return fetchCmd(m.ctrl)
}

func (m InvoiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case jobMsg:
		if msg.ctrl != m.ctrl {
			return m, nil
		}

		cmd := settle(m.ctrl, msg.res, &m.toast, m.opts.ToastTTL)
		m.refreshTable()

		return m, cmd

	case reconcileMsg:
		if msg.ctrl != m.ctrl {
			return m, nil
		}

		return m, fetchCmd(m.ctrl)

	case toastExpiredMsg:
		m.toast.Expire(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(msg.Height - 12)

		return m, nil

	case tea.KeyMsg:
		if m.searching {
			switch msg.Type {
			case tea.KeyEnter, tea.KeyEsc:
				m.searching = false
				m.search.Blur()
				m.table.Focus()

				return m, nil
			}

			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.refreshTable()

			return m, cmd
		}

		switch msg.String() {
		case "esc":
			m.ctrl.Close()
			return m, Back
		case "r":
			return m, fetchCmd(m.ctrl)
		case "s":
			m.statusIdx = (m.statusIdx + 1) % len(m.statuses)
			m.refreshTable()

			return m, nil
		case "/":
			m.searching = true
			m.table.Blur()

			return m, m.search.Focus()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *InvoiceModel) refreshTable() {
	invoices := withStatus(m.ctrl.Rows(), voucher.InvoiceStatuses)
	m.visible = selection.Apply(invoices, m.search.Value(), m.statuses[m.statusIdx])

	rows := make([]table.Row, 0, len(m.visible))
	for _, v := range m.visible {
		rows = append(rows, table.Row{
			format.Date(v.Date),
			format.Truncate(v.Title, 30),
			format.Truncate(v.Category, 14),
			format.OptionalAmount(v.Amount),
			v.Status.Label(),
		})
	}

	m.table.SetRows(rows)
}

// invoiceTotals sums the outstanding and paid amounts of invoices.
func invoiceTotals(invoices []*voucher.Voucher) (outstanding, paid decimal.Decimal) {
	for _, v := range invoices {
		if v.Amount == nil {
			continue
		}

		switch v.Status {
		case voucher.StatusPending:
			outstanding = outstanding.Add(*v.Amount)
		case voucher.StatusPaid:
			paid = paid.Add(*v.Amount)
		}
	}

	return outstanding, paid
}

func (m InvoiceModel) View() string {
	if msg, waiting := waitingView(m.ctrl, "invoices"); waiting {
		return msg
	}

	header := fmt.Sprintf(
		"Filter: [s] Status: %s | [/] Search: %s",
		activeStyle(m.statuses[m.statusIdx]),
		activeStyle(m.search.Value()),
	)

	parts := []string{lipgloss.NewStyle().PaddingBottom(1).Render(header)}

	if t := m.toast.View(); t != "" {
		parts = append(parts, t)
	}

	if err := m.ctrl.Notice(); err != nil {
		parts = append(parts, errorStyle.Render(api.UserMessage(err, "Failed to load invoices")))
	}

	if m.searching {
		parts = append(parts, m.search.View())
	}

	outstanding, paid := invoiceTotals(m.visible)

	parts = append(parts,
		boxed(m.table.View()),
		fmt.Sprintf("%d invoices | Outstanding: %s | Paid: %s",
			len(m.visible),
			titleStyle.Render(format.Amount(outstanding)),
			successStyle.Render(format.Amount(paid)),
		),
	)

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
