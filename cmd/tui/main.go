package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/voucherdesk/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/voucherdesk/internal/api"
	"github.com/MrJamesThe3rd/voucherdesk/internal/config"
	"github.com/MrJamesThe3rd/voucherdesk/internal/export"
	"github.com/MrJamesThe3rd/voucherdesk/internal/importer"
	"github.com/MrJamesThe3rd/voucherdesk/internal/lifecycle"
	"github.com/MrJamesThe3rd/voucherdesk/internal/localstore"
	"github.com/MrJamesThe3rd/voucherdesk/internal/project"
	"github.com/MrJamesThe3rd/voucherdesk/internal/requests"
	"github.com/MrJamesThe3rd/voucherdesk/internal/session"
)

type model struct {
	client    *api.Client
	exporter  *export.Service
	importSvc *importer.Service
	session   *session.Session
	projects  *project.Service
	opts      view.Options

	confirmDecline bool

	vouchersCtrl  *lifecycle.Controller
	requestsCtrl  *lifecycle.Controller
	invoicesCtrl  *lifecycle.Controller
	dashboardCtrl *lifecycle.Controller

	currentView View

	vouchersView  view.VouchersModel
	requestsView  view.RequestsModel
	invoicesView  view.InvoiceModel
	ledgerView    view.LedgerModel
	importView    view.ImportModel
	dashboardView view.DashboardModel
	projectsView  view.ProjectsModel
	signInView    view.SignInModel
}

type View int

const (
	ViewMenu      View = 0
	ViewVouchers  View = 1
	ViewRequests  View = 2
	ViewInvoices  View = 3
	ViewLedger    View = 4
	ViewImport    View = 5
	ViewDashboard View = 6
	ViewProjects  View = 7
	ViewSignIn    View = 8
)

func initialModel(cfg *config.Config, store *localstore.Store) (model, error) {
	sess := session.New(store)

	client, err := api.New(cfg.Client.APIBaseURL, cfg.Client.APITimeout)
	if err != nil {
		return model{}, fmt.Errorf("failed to create api client: %w", err)
	}

	exporter := export.NewService(cfg.Client.APITimeout)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Client.APITimeout)
	defer cancel()

	if u, err := sess.User(ctx); err == nil {
		client.SetToken(u.Token)
		exporter.SetToken(u.Token)
	}

	delay := cfg.Client.ReconcileDelay

	return model{
		client:         client,
		exporter:       exporter,
		importSvc:      importer.NewService(),
		session:        sess,
		projects:       project.NewService(client, project.NewCache(store), sess),
		confirmDecline: cfg.Client.ConfirmDecline,
		opts: view.Options{
			ToastTTL:       cfg.Client.ToastTTL,
			ExportDir:      cfg.Client.ExportDir,
			ConfirmDecline: cfg.Client.ConfirmDecline,
		},
		vouchersCtrl:  lifecycle.New(client, sess, delay),
		requestsCtrl:  lifecycle.New(client, sess, delay),
		invoicesCtrl:  lifecycle.New(client, sess, delay),
		dashboardCtrl: lifecycle.New(client, sess, delay),
		currentView:   ViewMenu,
	}, nil
}

func (m model) workflow() *requests.Workflow {
	var opts []requests.Option
	if m.confirmDecline {
		opts = append(opts, requests.WithDeclineConfirmation())
	}

	return requests.New(requests.NewAPIReviewer(m.client), opts...)
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewVouchers
				m.vouchersView = view.NewVouchersModel(m.vouchersCtrl, m.client, m.exporter, m.opts)

				return m, m.vouchersView.Init()
			case "2":
				m.currentView = ViewRequests
				m.requestsView = view.NewRequestsModel(m.requestsCtrl, m.workflow(), m.opts)

				return m, m.requestsView.Init()
			case "3":
				m.currentView = ViewInvoices
				m.invoicesView = view.NewInvoiceModel(m.invoicesCtrl, m.opts)

				return m, m.invoicesView.Init()
			case "4":
				m.currentView = ViewLedger
				m.ledgerView = view.NewLedgerModel(m.client, m.opts)

				return m, m.ledgerView.Init()
			case "5":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.client, m.importSvc)

				return m, m.importView.Init()
			case "6":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.dashboardCtrl, m.opts)

				return m, m.dashboardView.Init()
			case "7":
				m.currentView = ViewProjects
				m.projectsView = view.NewProjectsModel(m.projects, m.opts)

				return m, m.projectsView.Init()
			case "8":
				m.currentView = ViewSignIn
				m.signInView = view.NewSignInModel(m.session, m.client, m.exporter)

				return m, m.signInView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewVouchers:
		var newModel tea.Model
		newModel, cmd = m.vouchersView.Update(msg)
		m.vouchersView = newModel.(view.VouchersModel)
	case ViewRequests:
		var newModel tea.Model
		newModel, cmd = m.requestsView.Update(msg)
		m.requestsView = newModel.(view.RequestsModel)
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoicesView.Update(msg)
		m.invoicesView = newModel.(view.InvoiceModel)
	case ViewLedger:
		var newModel tea.Model
		newModel, cmd = m.ledgerView.Update(msg)
		m.ledgerView = newModel.(view.LedgerModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewProjects:
		var newModel tea.Model
		newModel, cmd = m.projectsView.Update(msg)
		m.projectsView = newModel.(view.ProjectsModel)
	case ViewSignIn:
		var newModel tea.Model
		newModel, cmd = m.signInView.Update(msg)
		m.signInView = newModel.(view.SignInModel)
	}

	return m, cmd
}

func (m model) current() view.View {
	switch m.currentView {
	case ViewVouchers:
		return m.vouchersView
	case ViewRequests:
		return m.requestsView
	case ViewInvoices:
		return m.invoicesView
	case ViewLedger:
		return m.ledgerView
	case ViewImport:
		return m.importView
	case ViewDashboard:
		return m.dashboardView
	case ViewProjects:
		return m.projectsView
	case ViewSignIn:
		return m.signInView
	}

	return nil
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).PaddingLeft(1)

func (m model) View() string {
	if m.currentView == ViewMenu {
		return lipgloss.NewStyle().Padding(2).Render(
			"Voucherdesk\n\n" +
				"1. Vouchers\n" +
				"2. Approval Requests\n" +
				"3. Invoices\n" +
				"4. Ledger\n" +
				"5. Import Journal\n" +
				"6. Dashboard\n" +
				"7. Projects\n" +
				"8. Sign In\n\n" +
				"q. Quit",
		)
	}

	v := m.current()
	if v == nil {
		return "Unknown View"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Padding(1, 1, 0).Render(v.Title()),
		v.View(),
		helpStyle.Render(v.ShortHelp()),
	)
}

func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := tea.LogToFile(cfg.Client.LogFile, "voucherdesk")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	store, err := localstore.Open(context.Background(), cfg.Client.LocalDBPath)
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	defer store.Close()

	m, err := initialModel(cfg, store)
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return err
	}

	return nil
}
