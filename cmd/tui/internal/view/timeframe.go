package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Period is a predefined or custom date range of the ledger.
type Period int

const (
	PeriodAll Period = iota
	PeriodThisMonth
	PeriodLastMonth
	PeriodThisYear
	PeriodCustom
)

func (p Period) String() string {
	switch p {
	case PeriodAll:
		return "All Time"
	case PeriodThisMonth:
		return "This Month"
	case PeriodLastMonth:
		return "Last Month"
	case PeriodThisYear:
		return "This Year"
	case PeriodCustom:
		return "Custom Range"
	}

	return "Unknown"
}

// Range returns the inclusive day range of p relative to now. Both are zero
// for PeriodAll and PeriodCustom.
func (p Period) Range(now time.Time) (time.Time, time.Time) {
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}

	switch p {
	case PeriodThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), day(now)
	case PeriodLastMonth:
		start := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, -1)
	case PeriodThisYear:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC), day(now)
	}

	return time.Time{}, time.Time{}
}

// PeriodSelectedMsg is emitted once a range is chosen. Start and End are zero
// for all time.
type PeriodSelectedMsg struct {
	Period Period
	Start  time.Time
	End    time.Time
}

func (m PeriodSelectedMsg) Label() string {
	if m.Period != PeriodCustom {
		return m.Period.String()
	}

	return fmt.Sprintf("%s to %s", m.Start.Format(time.DateOnly), m.End.Format(time.DateOnly))
}

// PeriodPicker selects a Period, asking for both dates when custom.
type PeriodPicker struct {
	selected Period
	custom   bool
	inputs   [2]textinput.Model
	focus    int
	err      error
}

func NewPeriodPicker() PeriodPicker {
	var inputs [2]textinput.Model

	for i, prompt := range []string{"Start Date: ", "End Date:   "} {
		ti := textinput.New()
		ti.Placeholder = "YYYY-MM-DD"
		ti.CharLimit = 10
		ti.Width = 12
		ti.Prompt = prompt
		inputs[i] = ti
	}

	return PeriodPicker{inputs: inputs}
}

// Selecting reports whether the picker shows the period list.
func (m PeriodPicker) Selecting() bool {
	return !m.custom
}

func (m PeriodPicker) Update(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.custom {
			var cmd tea.Cmd
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

			return m, cmd
		}

		return m, nil
	}

	if m.custom {
		return m.updateCustom(keyMsg)
	}

	switch keyMsg.Type {
	case tea.KeyUp:
		if m.selected > PeriodAll {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < PeriodCustom {
			m.selected++
		}
	case tea.KeyEnter:
		if m.selected == PeriodCustom {
			m.custom = true
			m.focus = 0
			m.inputs[0].Focus()

			return m, textinput.Blink
		}

		start, end := m.selected.Range(time.Now())
		sel := PeriodSelectedMsg{Period: m.selected, Start: start, End: end}

		return m, func() tea.Msg { return sel }
	}

	return m, nil
}

func (m PeriodPicker) updateCustom(msg tea.KeyMsg) (PeriodPicker, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.inputs[m.focus].Blur()
		m.focus = 1 - m.focus
		m.inputs[m.focus].Focus()

		return m, textinput.Blink

	case "esc":
		m.custom = false
		m.err = nil

		return m, nil

	case "enter":
		start, err := time.Parse(time.DateOnly, strings.TrimSpace(m.inputs[0].Value()))
		if err != nil {
			m.err = fmt.Errorf("invalid start date (YYYY-MM-DD)")
			return m, nil
		}

		end, err := time.Parse(time.DateOnly, strings.TrimSpace(m.inputs[1].Value()))
		if err != nil {
			m.err = fmt.Errorf("invalid end date (YYYY-MM-DD)")
			return m, nil
		}

		if end.Before(start) {
			m.err = fmt.Errorf("end date is before start date")
			return m, nil
		}

		m.err = nil
		sel := PeriodSelectedMsg{Period: PeriodCustom, Start: start, End: end}

		return m, func() tea.Msg { return sel }
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	return m, cmd
}

func (m PeriodPicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = "\n\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.custom {
		return fmt.Sprintf(
			"Enter Custom Range:\n\n%s\n%s\n\n(Enter to confirm, Tab to switch, Esc to back)%s",
			m.inputs[0].View(), m.inputs[1].View(), errStr,
		)
	}

	var sb strings.Builder

	sb.WriteString("Select Period:\n\n")

	for p := PeriodAll; p <= PeriodCustom; p++ {
		cursor := " "
		if p == m.selected {
			cursor = ">"
		}

		sb.WriteString(fmt.Sprintf("%s %s\n", cursor, p))
	}

	sb.WriteString("\n(Enter to select, Esc to back)")

	return sb.String() + errStr
}
