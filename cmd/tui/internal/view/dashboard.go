package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/voucherdesk/internal/api"
	"github.com/MrJamesThe3rd/voucherdesk/internal/dashboard"
	"github.com/MrJamesThe3rd/voucherdesk/internal/format"
	"github.com/MrJamesThe3rd/voucherdesk/internal/lifecycle"
	"github.com/MrJamesThe3rd/voucherdesk/internal/voucher"
)

const recentCount = 5

type dashboardTab int

const (
	dashboardTabOverview dashboardTab = iota
	dashboardTabNotifications
)

type DashboardModel struct {
	CommonModel
	ctrl *lifecycle.Controller
	opts Options

	tab           dashboardTab
	summary       dashboard.Summary
	recent        table.Model
	notifications table.Model
	count         int
	toast         Toast
}

func NewDashboardModel(ctrl *lifecycle.Controller, opts Options) DashboardModel {
	recent := newTable([]table.Column{
		{Title: "Date", Width: 10},
		{Title: "Title", Width: 30},
		{Title: "Amount", Width: 10},
		{Title: "Status", Width: 18},
	})
	recent.SetHeight(recentCount + 1)

	return DashboardModel{
		ctrl:   ctrl,
		opts:   opts,
		recent: recent,
		notifications: newTable([]table.Column{
			{Title: "When", Width: 16},
			{Title: "Voucher", Width: 26},
			{Title: "By", Width: 14},
			{Title: "Reason", Width: 30},
			{Title: "#", Width: 3},
		}),
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	return "Esc: back | tab: overview/notifications | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return fetchCmd(m.ctrl)
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case jobMsg:
		if msg.ctrl != m.ctrl {
			return m, nil
		}

		cmd := settle(m.ctrl, msg.res, &m.toast, m.opts.ToastTTL)
		m.refresh()

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
		m.notifications.SetHeight(msg.Height - 10)

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.ctrl.Close()
			return m, Back
		case "r":
			return m, fetchCmd(m.ctrl)
		case "tab":
			if m.tab == dashboardTabOverview {
				m.tab = dashboardTabNotifications
			} else {
				m.tab = dashboardTabOverview
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.tab == dashboardTabNotifications {
		m.notifications, cmd = m.notifications.Update(msg)
	} else {
		m.recent, cmd = m.recent.Update(msg)
	}

	return m, cmd
}

func (m *DashboardModel) refresh() {
	vouchers := m.ctrl.Rows()
	m.count = len(vouchers)
	m.summary = dashboard.Summarize(vouchers)

	recent := dashboard.Recent(vouchers, recentCount)
	rows := make([]table.Row, 0, len(recent))

	for _, v := range recent {
		rows = append(rows, table.Row{
			format.Date(v.Date),
			format.Truncate(v.Title, 30),
			format.OptionalAmount(v.Amount),
			v.Status.Label(),
		})
	}

	m.recent.SetRows(rows)

	notes := dashboard.Notifications(vouchers)
	rows = make([]table.Row, 0, len(notes))

	for _, n := range notes {
		rows = append(rows, table.Row{
			format.DateTime(n.At),
			format.Truncate(n.Title, 26),
			n.By,
			format.Truncate(n.Reason, 30),
			fmt.Sprintf("%d", n.Count),
		})
	}

	m.notifications.SetRows(rows)
}

func (m DashboardModel) View() string {
	if msg, waiting := waitingView(m.ctrl, "dashboard"); waiting {
		return msg
	}

	var parts []string

	if t := m.toast.View(); t != "" {
		parts = append(parts, t)
	}

	if err := m.ctrl.Notice(); err != nil {
		parts = append(parts, errorStyle.Render(api.UserMessage(err, "Failed to load vouchers")))
	}

	tabs := []string{"Overview", "Notifications"}
	for i := range tabs {
		if dashboardTab(i) == m.tab {
			tabs[i] = activeStyle("[" + tabs[i] + "]")
		} else {
			tabs[i] = faintStyle.Render(" " + tabs[i] + " ")
		}
	}

	parts = append(parts, strings.Join(tabs, " "), "")

	if m.tab == dashboardTabNotifications {
		if len(m.notifications.Rows()) == 0 {
			parts = append(parts, faintStyle.Render("No rejected vouchers."))
		} else {
			parts = append(parts, boxed(m.notifications.View()))
		}
	} else {
		parts = append(parts, m.overview(), "", titleStyle.Render("Recent"), boxed(m.recent.View()))
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m DashboardModel) overview() string {
	s := m.summary

	var b strings.Builder

	fmt.Fprintf(&b, "Vouchers:           %d\n", s.Total)
	fmt.Fprintf(&b, "Total amount:       %s\n", format.Amount(s.Amount))
	fmt.Fprintf(&b, "Paid:               %s\n", successStyle.Render(format.Amount(s.PaidAmount)))
	fmt.Fprintf(&b, "Awaiting approval:  %d\n", s.AwaitingApproval)
	fmt.Fprintf(&b, "Rejected:           %d\n", s.Rejected)
	fmt.Fprintf(&b, "Waiting for OCR:    %d\n\n", s.OCRPending)

	for _, st := range voucher.Statuses {
		if n := s.ByStatus[st]; n > 0 {
			fmt.Fprintf(&b, "  %-18s %d\n", st.Label(), n)
		}
	}

	return panel(strings.TrimRight(b.String(), "\n"))
}
