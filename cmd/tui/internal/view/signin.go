package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/voucherdesk/internal/session"
)

// TokenSetter receives the bearer token of the signed-in user.
type TokenSetter interface {
	SetToken(token string)
}

type signInFields struct {
	id    string
	name  string
	email string
	token string
}

// blob is the stored user record. Empty fields are left out so an id-less
// blob falls back to the token subject.
func (f *signInFields) blob() map[string]any {
	out := map[string]any{}

	for k, v := range map[string]string{
		"id":    f.id,
		"name":  f.name,
		"email": f.email,
		"token": f.token,
	} {
		if v = strings.TrimSpace(v); v != "" {
			out[k] = v
		}
	}

	return out
}

type SignInModel struct {
	CommonModel
	sess    *session.Session
	tokens  []TokenSetter
	form    *huh.Form
	fields  *signInFields
	current *session.User
	saving  bool
	err     error
}

func NewSignInModel(sess *session.Session, tokens ...TokenSetter) SignInModel {
	m := SignInModel{sess: sess, tokens: tokens}
	m.current = m.loadUser()
	m.fields, m.form = newSignInForm(m.current)

	return m
}

func newSignInForm(current *session.User) (*signInFields, *huh.Form) {
	f := &signInFields{}
	if current != nil {
		f.id, f.name, f.email, f.token = current.ID, current.Name, current.Email, current.Token
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("id").
				Title("User ID").
				Description("Optional when the token carries a subject").
				Value(&f.id),

			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&f.name),

			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&f.email),

			huh.NewInput().
				Key("token").
				Title("Token").
				EchoMode(huh.EchoModePassword).
				Value(&f.token).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" && strings.TrimSpace(f.id) == "" {
						return errors.New("a user id or a token is required")
					}

					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	return f, form
}

func (m SignInModel) loadUser() *session.User {
	ctx, cancel := APICtx()
	defer cancel()

	u, err := m.sess.User(ctx)
	if err != nil {
		return nil
	}

	return u
}

func (m SignInModel) Title() string { return "Sign In" }

func (m SignInModel) ShortHelp() string {
	return "Navigate form | Esc: back"
}

func (m SignInModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m SignInModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case signedInMsg:
		m.saving = false
		m.err = msg.err
		if msg.err != nil {
			m.fields, m.form = newSignInForm(m.current)
			return m, m.form.Init()
		}

		m.current = msg.user
		for _, t := range m.tokens {
			t.SetToken(msg.user.Token)
		}

		return m, Back

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.saving {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.saving = true
		return m, signInCmd(m.sess, m.fields.blob())
	}

	return m, cmd
}

func (m SignInModel) View() string {
	var parts []string

	if m.current != nil {
		parts = append(parts, fmt.Sprintf("Signed in as %s", activeStyle(displayName(m.current))), "")
	} else {
		parts = append(parts, faintStyle.Render("Not signed in"), "")
	}

	if m.err != nil {
		parts = append(parts, errorStyle.Render(fmt.Sprintf("Sign in failed: %v", m.err)), "")
	}

	parts = append(parts, panel(m.form.View()))

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func displayName(u *session.User) string {
	switch {
	case u.Name != "" && u.Email != "":
		return fmt.Sprintf("%s <%s>", u.Name, u.Email)
	case u.Name != "":
		return u.Name
	}

	return u.ID
}

type signedInMsg struct {
	user *session.User
	err  error
}

func signInCmd(sess *session.Session, blob map[string]any) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if err := sess.Save(ctx, blob); err != nil {
			return signedInMsg{err: err}
		}

		u, err := sess.User(ctx)

		return signedInMsg{user: u, err: err}
	}
}
