package view

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/voucherdesk/internal/api"
	"github.com/MrJamesThe3rd/voucherdesk/internal/format"
	"github.com/MrJamesThe3rd/voucherdesk/internal/project"
)

const previewLines = 12

type projectsState int

const (
	projectsStateInput projectsState = iota
	projectsStateBusy
	projectsStateConfirmDelete
)

type ProjectsModel struct {
	CommonModel
	svc  *project.Service
	opts Options

	state   projectsState
	input   textinput.Model
	spinner spinner.Model
	toast   Toast
	busy    string

	projectID string
	results   *api.OCRResults
}

func NewProjectsModel(svc *project.Service, opts Options) ProjectsModel {
	ti := textinput.New()
	ti.Placeholder = "project id"
	ti.Prompt = "Project: "
	ti.Width = 36
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot

	return ProjectsModel{
		svc:     svc,
		opts:    opts,
		input:   ti,
		spinner: s,
	}
}

func (m ProjectsModel) Title() string { return "Projects" }

func (m ProjectsModel) ShortHelp() string {
	switch m.state {
	case projectsStateBusy:
		return m.busy + "..."
	case projectsStateConfirmDelete:
		return "y: delete | n/Esc: cancel"
	}

	return "Esc: back | Enter: load results | ctrl+r: refresh | ctrl+o: run OCR | ctrl+d: delete"
}

func (m ProjectsModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ProjectsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectResultMsg:
		m.state = projectsStateInput

		if msg.err != nil {
			return m, m.toast.Show(api.UserMessage(msg.err, "Request failed"), true, m.opts.ToastTTL)
		}

		switch msg.action {
		case projectActionDelete:
			m.results = nil
			m.projectID = ""

			return m, m.toast.Show("Project deleted", false, m.opts.ToastTTL)
		case projectActionRun:
			m.projectID = msg.projectID
			m.results = msg.results

			return m, m.toast.Show("OCR started", false, m.opts.ToastTTL)
		}

		m.projectID = msg.projectID
		m.results = msg.results

		return m, nil

	case toastExpiredMsg:
		m.toast.Expire(msg)
		return m, nil

	case spinner.TickMsg:
		if m.state != projectsStateBusy {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		return m, nil
	}

	switch m.state {
	case projectsStateBusy:
		return m, nil
	case projectsStateConfirmDelete:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "y":
				return m.start(projectActionDelete, "Deleting")
			case "n", "esc":
				m.state = projectsStateInput
			}
		}

		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "enter":
			return m.start(projectActionLoad, "Loading results")
		case "ctrl+r":
			return m.start(projectActionRefresh, "Refreshing results")
		case "ctrl+o":
			return m.start(projectActionRun, "Running OCR")
		case "ctrl+d":
			if m.currentID() != "" {
				m.state = projectsStateConfirmDelete
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m ProjectsModel) currentID() string {
	return strings.TrimSpace(m.input.Value())
}

func (m ProjectsModel) start(action projectAction, label string) (tea.Model, tea.Cmd) {
	id := m.currentID()
	if id == "" {
		return m, nil
	}

	m.state = projectsStateBusy
	m.busy = label

	return m, tea.Batch(m.spinner.Tick, projectCmd(m.svc, action, id))
}

func (m ProjectsModel) View() string {
	var parts []string

	if t := m.toast.View(); t != "" {
		parts = append(parts, t)
	}

	parts = append(parts, m.input.View(), "")

	switch m.state {
	case projectsStateBusy:
		parts = append(parts, fmt.Sprintf("%s %s...", m.spinner.View(), m.busy))
	case projectsStateConfirmDelete:
		parts = append(parts, panel(fmt.Sprintf("Delete project %s and its cached results?\n\n(y/n)", m.currentID())))
	default:
		parts = append(parts, m.resultsView())
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m ProjectsModel) resultsView() string {
	if m.results == nil {
		return faintStyle.Render("Enter a project id to view its OCR results.")
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", titleStyle.Render("Project "+m.projectID))
	fmt.Fprintf(&b, "%d results, %d files\n", len(m.results.Results), len(m.results.FileURLs))

	for _, u := range m.results.FileURLs {
		fmt.Fprintf(&b, "  %s\n", format.Truncate(u, 70))
	}

	if len(m.results.Results) > 0 {
		b.WriteString("\n")
		b.WriteString(resultPreview(m.results.Results[0]))
	}

	return boxed(strings.TrimRight(b.String(), "\n"))
}

// resultPreview pretty-prints the first lines of a raw result.
func resultPreview(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return faintStyle.Render(format.Truncate(string(raw), 70))
	}

	lines := strings.Split(buf.String(), "\n")
	if len(lines) > previewLines {
		lines = append(lines[:previewLines], "...")
	}

	return faintStyle.Render(strings.Join(lines, "\n"))
}

// Messages

type projectAction int

const (
	projectActionLoad projectAction = iota
	projectActionRefresh
	projectActionRun
	projectActionDelete
)

type projectResultMsg struct {
	action    projectAction
	projectID string
	results   *api.OCRResults
	err       error
}

func projectCmd(svc *project.Service, action projectAction, projectID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		msg := projectResultMsg{action: action, projectID: projectID}

		switch action {
		case projectActionLoad, projectActionRefresh:
			msg.results, msg.err = svc.Results(ctx, projectID, action == projectActionRefresh)
		case projectActionRun:
			if msg.err = svc.Run(ctx, projectID); msg.err == nil {
				msg.results, msg.err = svc.Results(ctx, projectID, false)
			}
		case projectActionDelete:
			msg.err = svc.Delete(ctx, projectID)
		}

		return msg
	}
}
