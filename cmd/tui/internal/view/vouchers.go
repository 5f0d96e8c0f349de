package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/voucherdesk/internal/api"
	"github.com/MrJamesThe3rd/voucherdesk/internal/export"
	"github.com/MrJamesThe3rd/voucherdesk/internal/format"
	"github.com/MrJamesThe3rd/voucherdesk/internal/jobs"
	"github.com/MrJamesThe3rd/voucherdesk/internal/lifecycle"
	"github.com/MrJamesThe3rd/voucherdesk/internal/selection"
	"github.com/MrJamesThe3rd/voucherdesk/internal/voucher"
)

const (
	exportTimeout   = 2 * time.Minute
	maxVisibleFiles = 3
)

type vouchersState int

const (
	vouchersStateBrowse vouchersState = iota
	vouchersStateSearch
	vouchersStateApprover
	vouchersStateUpload
	vouchersStateUploading
	vouchersStateExporting
)

type VouchersModel struct {
	CommonModel
	ctrl     *lifecycle.Controller
	client   *api.Client
	exporter *export.Service
	opts     Options

	state     vouchersState
	table     table.Model
	search    textinput.Model
	spinner   spinner.Model
	form      *huh.Form
	toast     Toast
	statuses  []string
	statusIdx int
	selected  *selection.Set
	visible   []*voucher.Voucher

	// Form bindings
	approverID *string
	upload     *uploadFields
}

func NewVouchersModel(ctrl *lifecycle.Controller, client *api.Client, exporter *export.Service, opts Options) VouchersModel {
	search := textinput.New()
	search.Placeholder = "Search id, title, description, category"
	search.Prompt = "/ "
	search.Width = 40

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	statuses := []string{selection.AllStatuses}
	for _, st := range voucher.UploadStatuses {
		statuses = append(statuses, string(st))
	}

	return VouchersModel{
		ctrl:     ctrl,
		client:   client,
		exporter: exporter,
		opts:     opts,
		table: newTable([]table.Column{
			{Title: "", Width: 3},
			{Title: "Date", Width: 10},
			{Title: "Title", Width: 28},
			{Title: "Category", Width: 14},
			{Title: "Amount", Width: 10},
			{Title: "Status", Width: 18},
			{Title: "OCR", Width: 12},
			{Title: "Files", Width: 30},
		}),
		search:   search,
		spinner:  s,
		statuses: statuses,
		selected: &selection.Set{},
	}
}

func (m VouchersModel) Title() string { return "Vouchers" }

func (m VouchersModel) ShortHelp() string {
	switch m.state {
	case vouchersStateSearch:
		return "Enter/Esc: done searching"
	case vouchersStateApprover, vouchersStateUpload:
		return "Navigate form | Esc: cancel"
	case vouchersStateUploading:
		return "Uploading..."
	case vouchersStateExporting:
		return "Exporting..."
	}

	return "Esc: back | space: select | a: all | o: OCR | O: OCR selected | p: send for approval | u: upload | x: export | /: search | s: status | r: refresh"
}

func (m VouchersModel) Init() tea.Cmd {
	return fetchCmd(m.ctrl)
}

func (m VouchersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	case uploadResultMsg:
		m.state = vouchersStateBrowse
		m.table.Focus()

		if msg.skipped {
			return m, nil
		}

		if msg.err != nil {
			return m, m.toast.Show(api.UserMessage(msg.err, "Failed to upload voucher"), true, m.opts.ToastTTL)
		}

		return m, tea.Batch(
			m.toast.Show(fmt.Sprintf("Uploaded %s", msg.title), false, m.opts.ToastTTL),
			reconcileAfter(m.ctrl, m.ctrl.Delay()),
		)

	case exportResultMsg:
		m.state = vouchersStateBrowse
		m.table.Focus()

		if msg.err != nil {
			return m, m.toast.Show(fmt.Sprintf("Export failed: %v", msg.err), true, m.opts.ToastTTL)
		}

		return m, m.toast.Show(fmt.Sprintf("Exported %d vouchers to %s", msg.count, m.opts.ExportDir), false, m.opts.ToastTTL)

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(msg.Height - 12)

		return m, nil
	}

	switch m.state {
	case vouchersStateSearch:
		return m.updateSearch(msg)
	case vouchersStateApprover, vouchersStateUpload:
		return m.updateForm(msg)
	case vouchersStateUploading, vouchersStateExporting:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m.updateBrowse(msg)
}

func (m VouchersModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)

		return m, cmd
	}

	switch keyMsg.String() {
	case "esc":
		m.ctrl.Close()
		return m, Back
	case "r":
		return m, fetchCmd(m.ctrl)
	case "/":
		m.state = vouchersStateSearch
		m.table.Blur()

		return m, m.search.Focus()
	case "s":
		m.statusIdx = (m.statusIdx + 1) % len(m.statuses)
		m.refreshTable()

		return m, nil
	case " ":
		if v := m.current(); v != nil {
			m.selected.Toggle(v.ID)
			m.refreshTable()
		}

		return m, nil
	case "a":
		m.selected.ToggleAll(selection.IDs(m.visible))
		m.refreshTable()

		return m, nil
	case "o":
		v := m.current()
		if v == nil {
			return m, nil
		}

		ctx, cancel := APICtx()
		defer cancel()

		cmd := runJob(m.ctrl, m.ctrl.SubmitOCR(ctx, v.ID))
		m.refreshTable()

		return m, cmd
	case "O":
		ids := m.selected.IDs()
		if len(ids) == 0 {
			return m, m.toast.Show("Select vouchers first", true, m.opts.ToastTTL)
		}

		ctx, cancel := APICtx()
		defer cancel()

		return m, runJob(m.ctrl, m.ctrl.SubmitBulkOCR(ctx, ids))
	case "p":
		if m.selected.Len() == 0 {
			return m, m.toast.Show("Select vouchers first", true, m.opts.ToastTTL)
		}

		if m.ctrl.Sending() {
			return m, nil
		}

		return m.enterApproverForm()
	case "u":
		return m.enterUploadForm()
	case "x":
		return m.startExport()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m VouchersModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.state = vouchersStateBrowse
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

func (m VouchersModel) enterApproverForm() (tea.Model, tea.Cmd) {
	m.approverID = new(string)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("approver_id").
				Title("Approver").
				Description(fmt.Sprintf("Send %d vouchers for approval to", m.selected.Len())).
				Value(m.approverID).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("approver cannot be empty")
					}

					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = vouchersStateApprover
	m.table.Blur()

	return m, m.form.Init()
}

func (m VouchersModel) enterUploadForm() (tea.Model, tea.Cmd) {
	m.upload = &uploadFields{}
	m.form = newUploadForm(m.upload)
	m.state = vouchersStateUpload
	m.table.Blur()

	return m, m.form.Init()
}

func (m VouchersModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = vouchersStateBrowse
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

	if m.state == vouchersStateUpload {
		m.state = vouchersStateUploading
		m.form = nil

		return m, tea.Batch(m.spinner.Tick, uploadCmd(m.ctrl, m.client, m.upload.request(), splitPaths(m.upload.paths)))
	}

	m.state = vouchersStateBrowse
	m.form = nil
	m.table.Focus()

	ctx, cancel := APICtx()
	defer cancel()

	ids := m.selected.IDs()
	job := m.ctrl.SendForApproval(ctx, ids, strings.TrimSpace(*m.approverID))

	if job != nil {
		m.selected.Remove(ids...)
	}

	m.refreshTable()

	return m, runJob(m.ctrl, job)
}

func (m VouchersModel) startExport() (tea.Model, tea.Cmd) {
	targets := m.selectedVouchers()
	if len(targets) == 0 {
		if v := m.current(); v != nil {
			targets = []*voucher.Voucher{v}
		}
	}

	if len(targets) == 0 {
		return m, nil
	}

	m.state = vouchersStateExporting
	m.table.Blur()

	return m, tea.Batch(m.spinner.Tick, m.exportCmd(targets))
}

func (m VouchersModel) selectedVouchers() []*voucher.Voucher {
	var out []*voucher.Voucher

	for _, v := range m.ctrl.Rows() {
		if m.selected.Has(v.ID) {
			out = append(out, v)
		}
	}

	return out
}

func (m VouchersModel) current() *voucher.Voucher {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return nil
	}

	return m.visible[idx]
}

func (m *VouchersModel) refreshTable() {
	m.visible = selection.Apply(m.ctrl.Rows(), m.search.Value(), m.statuses[m.statusIdx])

	rows := make([]table.Row, 0, len(m.visible))
	for _, v := range m.visible {
		rows = append(rows, table.Row{
			checkbox(m.selected.Has(v.ID)),
			format.Date(v.Date),
			format.Truncate(v.Title, 28),
			v.Category,
			format.OptionalAmount(v.Amount),
			v.Status.Label(),
			m.ocrLabel(v),
			filesLabel(v),
		})
	}

	m.table.SetRows(rows)
}

func (m VouchersModel) ocrLabel(v *voucher.Voucher) string {
	switch m.ctrl.OCRState(v.ID) {
	case jobs.Submitting:
		return "submitting"
	case jobs.Completed:
		return "started"
	}

	if v.OCRStatus == "" {
		return "-"
	}

	return v.OCRStatus
}

func filesLabel(v *voucher.Voucher) string {
	files, more := v.VisibleFiles(maxVisibleFiles)

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}

	label := strings.Join(names, ", ")
	if more > 0 {
		label += fmt.Sprintf(" +%d", more)
	}

	return label
}

func (m VouchersModel) View() string {
	if msg, waiting := waitingView(m.ctrl, "vouchers"); waiting {
		return msg
	}

	header := fmt.Sprintf(
		"Filter: [s] Status: %s | [/] Search: %s | Selected: %d",
		activeStyle(m.statuses[m.statusIdx]),
		activeStyle(m.search.Value()),
		m.selected.Len(),
	)

	var flags []string
	if m.ctrl.BulkOCRSubmitting() {
		flags = append(flags, "Running OCR...")
	}

	if m.ctrl.Sending() {
		flags = append(flags, "Sending for approval...")
	}

	parts := []string{lipgloss.NewStyle().PaddingBottom(1).Render(header)}

	if err := m.ctrl.Notice(); err != nil {
		parts = append(parts, errorStyle.Render(api.UserMessage(err, "Failed to load vouchers")))
	}

	if len(flags) > 0 {
		parts = append(parts, faintStyle.Render(strings.Join(flags, "  ")))
	}

	if m.state == vouchersStateSearch {
		parts = append(parts, m.search.View())
	}

	parts = append(parts, boxed(m.table.View()))

	if len(m.visible) == 0 && m.ctrl.Loaded() {
		parts = append(parts, faintStyle.Render("No vouchers match the current filter."))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	switch m.state {
	case vouchersStateApprover, vouchersStateUpload:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(m.form.View()))
	case vouchersStateUploading:
		content += "\n" + fmt.Sprintf("%s Uploading files...", m.spinner.View())
	case vouchersStateExporting:
		content += "\n" + fmt.Sprintf("%s Downloading attachments...", m.spinner.View())
	}

	if t := m.toast.View(); t != "" {
		content = t + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type exportResultMsg struct {
	count int
	err   error
}

func (m VouchersModel) exportCmd(targets []*voucher.Voucher) tea.Cmd {
	dir := m.opts.ExportDir

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		items, err := m.exporter.Export(ctx, targets, dir)
		if err != nil {
			return exportResultMsg{err: err}
		}

		if _, err := export.SaveSummary(dir, items); err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{count: len(items)}
	}
}
