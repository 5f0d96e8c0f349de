package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/voucherdesk/internal/api"
	"github.com/MrJamesThe3rd/voucherdesk/internal/format"
	"github.com/MrJamesThe3rd/voucherdesk/internal/lifecycle"
	"github.com/MrJamesThe3rd/voucherdesk/internal/requests"
	"github.com/MrJamesThe3rd/voucherdesk/internal/selection"
	"github.com/MrJamesThe3rd/voucherdesk/internal/voucher"
)

type requestsState int

const (
	requestsStateBrowse requestsState = iota
	requestsStateReason
	requestsStateConfirm
	requestsStateSubmitting
)

type RequestsModel struct {
	CommonModel
	ctrl     *lifecycle.Controller
	workflow *requests.Workflow
	opts     Options

	state     requestsState
	table     table.Model
	form      *huh.Form
	toast     Toast
	statuses  []string
	statusIdx int
	visible   []*voucher.Voucher

	// Form bindings
	reason *string
}

func NewRequestsModel(ctrl *lifecycle.Controller, workflow *requests.Workflow, opts Options) RequestsModel {
	statuses := []string{selection.AllStatuses}
	for _, st := range voucher.RequestStatuses {
		statuses = append(statuses, string(st))
	}

	return RequestsModel{
		ctrl:     ctrl,
		workflow: workflow,
		opts:     opts,
		table: newTable([]table.Column{
			{Title: "", Width: 3},
			{Title: "Date", Width: 10},
			{Title: "Title", Width: 30},
			{Title: "Amount", Width: 10},
			{Title: "Status", Width: 18},
			{Title: "Rejections", Width: 10},
			{Title: "Last Reason", Width: 30},
		}),
		statuses: statuses,
	}
}

func (m RequestsModel) Title() string { return "Approval Requests" }

func (m RequestsModel) ShortHelp() string {
	switch m.state {
	case requestsStateReason:
		return "Navigate form | Esc: cancel"
	case requestsStateConfirm:
		return "y: confirm | n/Esc: cancel"
	case requestsStateSubmitting:
		return "Submitting..."
	}

	return "Esc: back | space: select | a: all | A: approve | d: decline | s: status | r: refresh"
}

func (m RequestsModel) Init() tea.Cmd {
	return fetchCmd(m.ctrl)
}

func (m RequestsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case jobMsg:
		if msg.ctrl != m.ctrl {
			return m, nil
		}

		cmd := settle(m.ctrl, msg.res, &m.toast, m.opts.ToastTTL)
		m.workflow.SetVouchers(m.ctrl.Rows())
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

	case reviewResultMsg:
		m.state = requestsStateBrowse
		m.table.Focus()
		m.refreshTable()

		if msg.staged {
			m.state = requestsStateConfirm
			m.table.Blur()

			return m, nil
		}

		if msg.err != nil {
			return m, tea.Batch(
				m.toast.Show(api.UserMessage(msg.err, "Failed to update vouchers"), true, m.opts.ToastTTL),
				reconcileAfter(m.ctrl, m.ctrl.Delay()),
			)
		}

		if msg.count == 0 {
			return m, nil
		}

		return m, tea.Batch(
			m.toast.Show(fmt.Sprintf("%s %d vouchers", msg.verb, msg.count), false, m.opts.ToastTTL),
			reconcileAfter(m.ctrl, m.ctrl.Delay()),
		)

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(msg.Height - 12)

		return m, nil
	}

	switch m.state {
	case requestsStateReason:
		return m.updateReason(msg)
	case requestsStateConfirm:
		return m.updateConfirm(msg)
	case requestsStateSubmitting:
		return m, nil
	}

	return m.updateBrowse(msg)
}

func (m RequestsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)

		return m, cmd
	}

	switch keyMsg.String() {
	case "esc":
		m.workflow.Cancel()
		m.ctrl.Close()

		return m, Back
	case "r":
		return m, fetchCmd(m.ctrl)
	case "s":
		m.statusIdx = (m.statusIdx + 1) % len(m.statuses)
		m.refreshTable()

		return m, nil
	case " ":
		if v := m.current(); v != nil && requests.CanReview(v) {
			m.workflow.Toggle(v.ID)
			m.refreshTable()
		}

		return m, nil
	case "a":
		m.workflow.ToggleAll(m.reviewableIDs())
		m.refreshTable()

		return m, nil
	case "A":
		if !hasUser(m.ctrl) {
			return m, nil
		}

		if staged := m.workflow.Request(m.targets()...); len(staged) == 0 {
			return m, m.toast.Show("Nothing to approve", true, m.opts.ToastTTL)
		}

		m.state = requestsStateConfirm
		m.table.Blur()

		return m, nil
	case "d":
		if !hasUser(m.ctrl) || len(m.targets()) == 0 {
			return m, nil
		}

		return m.enterReasonForm()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

// targets are the selected vouchers, or the row under the cursor when
// nothing is selected.
func (m RequestsModel) targets() []string {
	if ids := m.workflow.SelectedIDs(); len(ids) > 0 {
		return ids
	}

	if v := m.current(); v != nil {
		return []string{v.ID}
	}

	return nil
}

func (m RequestsModel) reviewableIDs() []string {
	var ids []string

	for _, v := range m.visible {
		if requests.CanReview(v) {
			ids = append(ids, v.ID)
		}
	}

	return ids
}

func (m RequestsModel) enterReasonForm() (tea.Model, tea.Cmd) {
	m.reason = new(string)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Key("reason").
				Title("Decline Reason").
				Description(fmt.Sprintf("Declining %d vouchers", len(m.targets()))).
				Value(m.reason).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("reason cannot be empty")
					}

					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = requestsStateReason
	m.table.Blur()

	return m, m.form.Init()
}

func (m RequestsModel) updateReason(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = requestsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = requestsStateSubmitting
	m.form = nil

	return m, m.declineCmd(strings.TrimSpace(*m.reason), m.targets())
}

func (m RequestsModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		m.state = requestsStateSubmitting
		return m, m.confirmCmd()
	case "n", "N", "esc":
		m.workflow.Cancel()
		m.state = requestsStateBrowse
		m.table.Focus()
	}

	return m, nil
}

func (m RequestsModel) current() *voucher.Voucher {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return nil
	}

	return m.visible[idx]
}

func (m *RequestsModel) refreshTable() {
	m.visible = selection.Apply(requestRows(m.ctrl.Rows()), "", m.statuses[m.statusIdx])

	rows := make([]table.Row, 0, len(m.visible))
	for _, v := range m.visible {
		reason := ""
		if latest, ok := v.Rejections.Latest(); ok {
			reason = format.Truncate(latest.Reason, 30)
		}

		mark := "   "
		if requests.CanReview(v) {
			mark = checkbox(m.workflow.Selected(v.ID))
		}

		rows = append(rows, table.Row{
			mark,
			format.Date(v.Date),
			format.Truncate(v.Title, 30),
			format.OptionalAmount(v.Amount),
			v.Status.Label(),
			fmt.Sprintf("%d", v.Rejections.Count()),
			reason,
		})
	}

	m.table.SetRows(rows)
}

// requestRows keeps the vouchers whose status belongs to the requests page.
func requestRows(vouchers []*voucher.Voucher) []*voucher.Voucher {
	return withStatus(vouchers, voucher.RequestStatuses)
}

func (m RequestsModel) View() string {
	if msg, waiting := waitingView(m.ctrl, "requests"); waiting {
		return msg
	}

	header := fmt.Sprintf(
		"Filter: [s] Status: %s | Selected: %d",
		activeStyle(m.statuses[m.statusIdx]),
		len(m.workflow.SelectedIDs()),
	)

	parts := []string{lipgloss.NewStyle().PaddingBottom(1).Render(header)}

	if err := m.ctrl.Notice(); err != nil {
		parts = append(parts, errorStyle.Render(api.UserMessage(err, "Failed to load requests")))
	}

	parts = append(parts, boxed(m.table.View()))

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	switch m.state {
	case requestsStateReason:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(m.form.View()))
	case requestsStateConfirm:
		ids, action := m.workflow.Pending()
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(
			fmt.Sprintf("%s %d vouchers?\n\n%s\n\n(y to confirm, n to cancel)",
				titleStyle.Render(confirmTitle(action)),
				len(ids),
				strings.Join(ids, "\n")),
		))
	case requestsStateSubmitting:
		content += "\n" + faintStyle.Render("Submitting...")
	}

	if t := m.toast.View(); t != "" {
		content = t + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func confirmTitle(a requests.Action) string {
	if a == requests.ActionDecline {
		return "Decline"
	}

	return "Approve"
}

// Messages

type reviewResultMsg struct {
	verb   string
	count  int
	staged bool
	err    error
}

func (m RequestsModel) confirmCmd() tea.Cmd {
	ids, action := m.workflow.Pending()
	verb := "Approved"

	if action == requests.ActionDecline {
		verb = "Declined"
	}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		err := m.workflow.Confirm(ctx)

		return reviewResultMsg{verb: verb, count: len(ids), err: err}
	}
}

func (m RequestsModel) declineCmd(reason string, ids []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		staged, err := m.workflow.Decline(ctx, reason, ids...)

		return reviewResultMsg{verb: "Declined", count: len(ids), staged: staged, err: err}
	}
}
