package view

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/voucherdesk/internal/lifecycle"
)

// jobMsg carries a lifecycle result back to the view owning ctrl. Views drop
// messages of other controllers.
type jobMsg struct {
	ctrl *lifecycle.Controller
	res  lifecycle.Result
}

type reconcileMsg struct {
	ctrl *lifecycle.Controller
}

func runJob(ctrl *lifecycle.Controller, job lifecycle.Job) tea.Cmd {
	if job == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		return jobMsg{ctrl: ctrl, res: job(ctx)}
	}
}

func fetchCmd(ctrl *lifecycle.Controller) tea.Cmd {
	ctx, cancel := APICtx()
	defer cancel()

	return runJob(ctrl, ctrl.Fetch(ctx))
}

func hasUser(ctrl *lifecycle.Controller) bool {
	ctx, cancel := APICtx()
	defer cancel()

	return ctrl.UserID(ctx) != ""
}

// waitingView renders the placeholder shown before the first fetch lands.
// Without a user nothing is fetched, so it asks for a sign-in instead.
func waitingView(ctrl *lifecycle.Controller, what string) (string, bool) {
	if ctrl.Loaded() || ctrl.Notice() != nil {
		return "", false
	}

	msg := "Loading " + what + "..."
	if !hasUser(ctrl) {
		msg = faintStyle.Render("Sign in from the menu to see your " + what + ".")
	}

	return lipgloss.NewStyle().Padding(2).Render(msg), true
}

func reconcileAfter(ctrl *lifecycle.Controller, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return reconcileMsg{ctrl: ctrl}
	})
}

// settle applies a finished job and returns the follow-up commands: the
// reconciling refetch and the toast.
func settle(ctrl *lifecycle.Controller, res lifecycle.Result, toast *Toast, ttl time.Duration) tea.Cmd {
	out := ctrl.Finish(res)
	if out.Stale {
		return nil
	}

	var cmds []tea.Cmd

	if out.Refetch {
		cmds = append(cmds, reconcileAfter(ctrl, out.Delay))
	}

	cmds = append(cmds, toast.Show(out.Message, out.Failed, ttl))

	return tea.Batch(cmds...)
}
