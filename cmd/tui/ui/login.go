package ui

import (
	"context"
	"strings"

	"github.com/Varun5711/carmate/internal/models"
	"github.com/Varun5711/carmate/internal/page"
	"github.com/Varun5711/carmate/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	loginEmail = iota
	loginPassword
)

type loginResultMsg struct {
	outcome page.Outcome
	session session.Session
}

type LoginModel struct {
	env     *Env
	form    *form
	loading bool
	outcome *page.Outcome
	notice  string
}

func NewLoginModel(env *Env) *LoginModel {
	return &LoginModel{
		env: env,
		form: newForm(
			textInput("Email", "e.g., arjun@example.com"),
			secretInput("Password"),
		),
	}
}

func (m *LoginModel) Init() tea.Cmd {
	return nil
}

// Redirect is shown when a protected screen sent the user here.
func (m *LoginModel) Redirect(notice string) {
	m.notice = notice
	m.outcome = nil
}

func loginCmd(env *Env, creds models.Credentials) tea.Cmd {
	pc, sess := env.snapshot()
	return func() tea.Msg {
		out := page.Login(context.Background(), pc, env.API, creds)
		return loginResultMsg{outcome: out, session: *sess}
	}
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.loading = false
		m.outcome = &msg.outcome
		if msg.outcome.OK() {
			m.form.reset()
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		if msg.String() == "ctrl+l" {
			m.form.reset()
			m.outcome = nil
			return m, nil
		}
		if m.form.handleKey(msg) {
			m.loading = true
			m.outcome = nil
			return m, loginCmd(m.env, models.Credentials{
				Email:    m.form.value(loginEmail),
				Password: m.form.value(loginPassword),
			})
		}
	}
	return m, nil
}

func (m *LoginModel) View() string {
	var b strings.Builder

	b.WriteString(header("🔐 CARMATE LOGIN", "Sign in to manage your service requests."))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(center(WarningStyle.Render("⚠ " + m.notice)))
		b.WriteString("\n\n")
	}

	b.WriteString(center(m.form.View()))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(center(InfoStyle.Render("🔄 Logging in...")))
		b.WriteString("\n")
	}
	if line := outcomeLine(m.outcome); line != "" {
		b.WriteString(center(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("tab switch  •  enter login  •  ctrl+r register  •  ctrl+f forgot password  •  ctrl+c quit")))

	return BoxStyle.Width(screenWidth - 4).Render(b.String())
}
