package view

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/voucherdesk/internal/voucher"
)

const apiTimeout = 30 * time.Second

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// APICtx returns a context with the standard timeout for backend calls.
func APICtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), apiTimeout)
}

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
)

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func boxed(s string) string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(s)
}

func panel(s string) string {
	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(54).
		Render(s)
}

// withStatus keeps the vouchers whose status is one of statuses.
func withStatus(vouchers []*voucher.Voucher, statuses []voucher.Status) []*voucher.Voucher {
	out := make([]*voucher.Voucher, 0, len(vouchers))

	for _, v := range vouchers {
		if slices.Contains(statuses, v.Status) {
			out = append(out, v)
		}
	}

	return out
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}

	return "[ ]"
}

// Toast is a transient status line. Each Show supersedes the previous one and
// schedules its own expiry.
type Toast struct {
	text   string
	failed bool
	seq    int
}

type toastExpiredMsg struct {
	seq int
}

func (t *Toast) Show(text string, failed bool, ttl time.Duration) tea.Cmd {
	if text == "" {
		return nil
	}

	t.seq++
	t.text = text
	t.failed = failed

	seq := t.seq

	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// Expire clears the toast if msg belongs to the one currently shown.
func (t *Toast) Expire(msg toastExpiredMsg) {
	if msg.seq == t.seq {
		t.text = ""
	}
}

func (t Toast) View() string {
	if t.text == "" {
		return ""
	}

	if t.failed {
		return errorStyle.Render(t.text)
	}

	return successStyle.Render(t.text)
}
