package ui

import (
	"context"
	"strings"

	"github.com/Varun5711/carmate/internal/models"
	"github.com/Varun5711/carmate/internal/page"
	tea "github.com/charmbracelet/bubbletea"
)

type forgotResultMsg struct {
	outcome page.Outcome
}

type ForgotModel struct {
	env     *Env
	form    *form
	loading bool
	outcome *page.Outcome
}

func NewForgotModel(env *Env) *ForgotModel {
	return &ForgotModel{
		env:  env,
		form: newForm(textInput("Email", "the address you registered with")),
	}
}

func (m *ForgotModel) Init() tea.Cmd {
	return nil
}

func forgotCmd(env *Env, email string) tea.Cmd {
	pc, _ := env.snapshot()
	return func() tea.Msg {
		out := page.ForgotPassword(context.Background(), pc, env.API, models.ForgotPasswordRequest{Email: email})
		return forgotResultMsg{outcome: out}
	}
}

func (m *ForgotModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case forgotResultMsg:
		m.loading = false
		m.outcome = &msg.outcome
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		if m.form.handleKey(msg) {
			m.loading = true
			m.outcome = nil
			return m, forgotCmd(m.env, m.form.value(0))
		}
	}
	return m, nil
}

func (m *ForgotModel) View() string {
	var b strings.Builder

	b.WriteString(header("🔑 FORGOT PASSWORD", "We'll email you a reset link."))
	b.WriteString("\n\n")
	b.WriteString(center(m.form.View()))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(center(InfoStyle.Render("🔄 Sending reset link...")))
		b.WriteString("\n")
	}
	if line := outcomeLine(m.outcome); line != "" {
		b.WriteString(center(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("enter send  •  esc login")))

	return BoxStyle.Width(screenWidth - 4).Render(b.String())
}
