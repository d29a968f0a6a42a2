package ui

import (
	"context"
	"strings"

	"github.com/Varun5711/carmate/internal/models"
	"github.com/Varun5711/carmate/internal/page"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	regFullName = iota
	regEmail
	regPhone
	regPassword
	regConfirm
	regRole
)

type registerResultMsg struct {
	outcome page.Outcome
	user    *models.User
}

type RegisterModel struct {
	env     *Env
	form    *form
	loading bool
	outcome *page.Outcome
	user    *models.User
}

func roleChoices() []string {
	choices := make([]string, 0, len(models.Roles))
	for _, r := range models.Roles {
		choices = append(choices, string(r))
	}
	return choices
}

func NewRegisterModel(env *Env) *RegisterModel {
	return &RegisterModel{
		env: env,
		form: newForm(
			textInput("Full Name", "e.g., Arjun Mehta"),
			textInput("Email", "e.g., arjun@example.com"),
			textInput("Phone", "e.g., +1 555 123 4567"),
			secretInput("Password"),
			secretInput("Confirm Password"),
			choiceInput("Role", roleChoices(), string(models.RoleCustomer)),
		),
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return nil
}

func registerCmd(env *Env, req models.RegistrationRequest, confirm string) tea.Cmd {
	pc, _ := env.snapshot()
	return func() tea.Msg {
		user, out := page.Register(context.Background(), pc, env.API, req, confirm)
		return registerResultMsg{outcome: out, user: user}
	}
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
		m.loading = false
		m.outcome = &msg.outcome
		m.user = msg.user
		if msg.outcome.OK() {
			m.form.reset()
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		if msg.String() == "ctrl+l" {
			m.form.reset()
			m.outcome, m.user = nil, nil
			return m, nil
		}
		if m.form.handleKey(msg) {
			m.loading = true
			m.outcome, m.user = nil, nil
			return m, registerCmd(m.env, models.RegistrationRequest{
				FullName: m.form.value(regFullName),
				Email:    m.form.value(regEmail),
				Phone:    m.form.value(regPhone),
				Password: m.form.value(regPassword),
				Role:     models.Role(m.form.value(regRole)),
			}, m.form.value(regConfirm))
		}
	}
	return m, nil
}

func (m *RegisterModel) View() string {
	var b strings.Builder

	b.WriteString(header("📝 CREATE ACCOUNT", "Customers book service; providers take the jobs."))
	b.WriteString("\n\n")
	b.WriteString(center(m.form.View()))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(center(InfoStyle.Render("🔄 Creating your account...")))
		b.WriteString("\n")
	}
	if line := outcomeLine(m.outcome); line != "" {
		b.WriteString(center(line))
		b.WriteString("\n")
	}
	if m.user != nil && m.user.ID != "" {
		b.WriteString(center(LabelStyle.Render("User ID:") + SuccessStyle.Render(m.user.ID.String())))
		b.WriteString("\n")
		b.WriteString(center(InfoStyle.Render("You can now login with your new account.")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("tab switch  •  ←/→ role  •  enter register  •  ctrl+l clear  •  esc login")))

	return BoxStyle.Width(screenWidth - 4).Render(b.String())
}
