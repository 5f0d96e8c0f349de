package view

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/voucherdesk/internal/api"
	"github.com/MrJamesThe3rd/voucherdesk/internal/format"
	"github.com/MrJamesThe3rd/voucherdesk/internal/importer"
	"github.com/MrJamesThe3rd/voucherdesk/internal/ledger"
)

type importState int

const (
	importStateFormatSelect importState = iota
	importStateFilePick
	importStateParsing
	importStateReview
	importStateUploading
	importStateResult
)

type importFormat struct {
	format importer.Format
	label  string
}

var importFormats = []importFormat{
	{importer.FormatLedgerCSV, "Ledger CSV export"},
	{importer.FormatBankCSV, "Bank statement CSV"},
}

type ImportModel struct {
	CommonModel
	client    *api.Client
	importSvc *importer.Service

	state        importState
	filePicker   filepicker.Model
	formatCursor int

	entries   []*ledger.JournalEntry
	entryList list.Model
	selected  map[int]bool

	status string
	err    error
}

func NewImportModel(client *api.Client, importSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.Height = 15

	return ImportModel{
		client:     client,
		importSvc:  importSvc,
		filePicker: fp,
		selected:   make(map[int]bool),
	}
}

func (m ImportModel) Title() string { return "Import Journal" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateReview {
		return "Space: toggle | a: all | n: none | Enter: upload | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		switch m.state {
		case importStateFormatSelect:
			return m.updateFormatSelect(msg)
		case importStateReview:
			return m.updateReview(msg)
		}

	case importParsedMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		if len(msg.entries) == 0 {
			m.state = importStateResult
			m.status = "No journal entries found in file."

			return m, nil
		}

		m.entries = msg.entries
		m.selected = make(map[int]bool)

		items := make([]list.Item, len(m.entries))
		for i, e := range m.entries {
			items[i] = entryItem{entry: e, index: i}
			m.selected[i] = e.Balanced()
		}

		delegate := entryDelegate{selected: m.selected}
		m.entryList = list.New(items, delegate, 80, 20)
		m.entryList.Title = fmt.Sprintf("%d entries parsed", len(m.entries))
		m.entryList.SetShowStatusBar(false)
		m.entryList.SetFilteringEnabled(false)
		m.entryList.SetShowHelp(false)
		m.state = importStateReview

		return m, nil

	case importUploadedMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = "Error: " + api.UserMessage(msg.err, "upload failed")

			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d journal entries.", msg.count)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateParsing
		m.status = fmt.Sprintf("Reading %s...", path)

		return m, m.parseCmd(importFormats[m.formatCursor].format, path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick, importStateResult, importStateReview:
		m.state = importStateFormatSelect
		m.entries = nil
		m.selected = make(map[int]bool)
		m.err = nil
		m.status = ""

		return m, nil
	case importStateParsing, importStateUploading:
		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateFormatSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.formatCursor > 0 {
			m.formatCursor--
		}
	case tea.KeyDown:
		if m.formatCursor < len(importFormats)-1 {
			m.formatCursor++
		}
	case tea.KeyEnter:
		m.state = importStateFilePick
		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		idx := m.entryList.Index()
		if m.entries[idx].Balanced() {
			m.selected[idx] = !m.selected[idx]
		}

		return m, nil
	case "a":
		for i, e := range m.entries {
			m.selected[i] = e.Balanced()
		}

		return m, nil
	case "n":
		for i := range m.entries {
			m.selected[i] = false
		}

		return m, nil
	case "enter":
		chosen := m.chosen()
		if len(chosen) == 0 {
			return m, nil
		}

		m.state = importStateUploading
		m.status = fmt.Sprintf("Uploading %d entries...", len(chosen))

		return m, uploadEntriesCmd(m.client, chosen)
	}

	var cmd tea.Cmd
	m.entryList, cmd = m.entryList.Update(msg)

	return m, cmd
}

func (m ImportModel) chosen() []*ledger.JournalEntry {
	var out []*ledger.JournalEntry

	for i, e := range m.entries {
		if m.selected[i] {
			out = append(out, e)
		}
	}

	return out
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFormatSelect:
		return m.viewFormatSelect()
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select file to import (%s):\n\n%s", importFormats[m.formatCursor].label, m.filePicker.View()),
		)
	case importStateParsing, importStateUploading:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateReview:
		return lipgloss.NewStyle().Padding(1).Render(m.entryList.View())
	case importStateResult:
		style := successStyle
		if m.err != nil {
			style = errorStyle
		}

		return lipgloss.NewStyle().Padding(2).Render(style.Render(m.status) + "\n\n(Esc to go back)")
	}

	return ""
}

func (m ImportModel) viewFormatSelect() string {
	s := "Select file format:\n\n"

	for i, f := range importFormats {
		cursor := " "
		if i == m.formatCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, f.label)
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

// Messages

type importParsedMsg struct {
	entries []*ledger.JournalEntry
	err     error
}

type importUploadedMsg struct {
	count int
	err   error
}

func (m ImportModel) parseCmd(f importer.Format, path string) tea.Cmd {
	svc := m.importSvc

	return func() tea.Msg {
		file, err := os.Open(path)
		if err != nil {
			return importParsedMsg{err: err}
		}
		defer file.Close()

		entries, err := svc.Import(f, file)

		return importParsedMsg{entries: entries, err: err}
	}
}

func uploadEntriesCmd(client *api.Client, entries []*ledger.JournalEntry) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		n, err := client.ImportJournal(ctx, entries)

		return importUploadedMsg{count: n, err: err}
	}
}

// Entry list item

type entryItem struct {
	entry *ledger.JournalEntry
	index int
}

func (i entryItem) Title() string       { return i.entry.Description }
func (i entryItem) Description() string { return "" }
func (i entryItem) FilterValue() string { return i.entry.Description }

// Entry list delegate

type entryDelegate struct {
	selected map[int]bool
}

func (d entryDelegate) Height() int                             { return 2 }
func (d entryDelegate) Spacing() int                            { return 0 }
func (d entryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d entryDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(entryItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	e := item.entry
	totals := ledger.Sum(ledger.Flatten([]*ledger.JournalEntry{e}))

	line1 := fmt.Sprintf("%s%s %s  %s  %s",
		cursor, checkbox(d.selected[item.index]),
		format.Date(e.Date),
		format.Amount(totals.Debit),
		format.Truncate(e.Description, 40),
	)

	line2 := fmt.Sprintf("      %s, %d lines", e.Type, len(e.Lines))
	if !e.Balanced() {
		line2 += errorStyle.Render(fmt.Sprintf("  unbalanced: debit %s, credit %s",
			format.Amount(totals.Debit), format.Amount(totals.Credit)))
	}

	fmt.Fprintf(w, "%s\n%s\n", line1, line2)
}
