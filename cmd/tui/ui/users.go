package ui

import (
	"context"
	"strings"

	"github.com/Varun5711/carmate/internal/models"
	"github.com/Varun5711/carmate/internal/page"
	tea "github.com/charmbracelet/bubbletea"
)

type usersResultMsg struct {
	outcome page.Outcome
	users   []models.User
}

type toggleResultMsg struct {
	outcome page.Outcome
}

type UsersModel struct {
	env     *Env
	users   []models.User
	cursor  int
	loading bool
	outcome *page.Outcome
}

func NewUsersModel(env *Env) *UsersModel {
	return &UsersModel{env: env}
}

func (m *UsersModel) Init() tea.Cmd {
	return nil
}

func (m *UsersModel) Enter() tea.Cmd {
	m.loading = true
	m.outcome = nil
	return usersCmd(m.env)
}

func usersCmd(env *Env) tea.Cmd {
	pc, _ := env.snapshot()
	return func() tea.Msg {
		users, out := page.ListUsers(context.Background(), pc, env.API)
		return usersResultMsg{outcome: out, users: users}
	}
}

func toggleCmd(env *Env, user models.User) tea.Cmd {
	pc, _ := env.snapshot()
	return func() tea.Msg {
		return toggleResultMsg{outcome: page.ToggleUser(context.Background(), pc, env.API, user)}
	}
}

func (m *UsersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case usersResultMsg:
		m.loading = false
		m.users = msg.users
		if !msg.outcome.OK() {
			m.outcome = &msg.outcome
		}
		if m.cursor >= len(m.users) {
			m.cursor = 0
		}
		return m, nil

	case toggleResultMsg:
		m.loading = false
		m.outcome = &msg.outcome
		if msg.outcome.OK() {
			m.loading = true
			return m, usersCmd(m.env)
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.users)-1 {
				m.cursor++
			}
		case "enter", "t":
			if m.cursor < len(m.users) {
				m.loading = true
				m.outcome = nil
				return m, toggleCmd(m.env, m.users[m.cursor])
			}
		case "r":
			return m, m.Enter()
		}
	}
	return m, nil
}

func (m *UsersModel) View() string {
	var b strings.Builder

	b.WriteString(header("👥 REGISTERED USERS", "Activate or deactivate accounts."))
	b.WriteString("\n\n")

	if line := outcomeLine(m.outcome); line != "" {
		b.WriteString(center(line))
		b.WriteString("\n\n")
	}

	switch {
	case m.loading:
		b.WriteString(center(InfoStyle.Render("⏳ Loading users...")))
		b.WriteString("\n")
	case len(m.users) == 0:
		b.WriteString(center(InfoStyle.Render("No users found.")))
		b.WriteString("\n")
	default:
		for i, u := range m.users {
			cursor, style := "  ", ItemStyle
			if i == m.cursor {
				cursor, style = "> ", SelectedItemStyle
			}
			status := ErrorStyle.Render("Inactive")
			if u.Enabled() {
				status = SuccessStyle.Render("Active")
			}
			row := style.Render(cursor+u.DisplayName()) + InfoStyle.Render(" ("+u.Email+") ") + status
			b.WriteString(row)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("↑/↓ navigate  •  enter/t toggle status  •  r refresh  •  esc menu")))

	return BoxStyle.Width(screenWidth - 4).Render(b.String())
}
