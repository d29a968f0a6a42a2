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
	profFullName = iota
	profEmail
	profPhone
	profPassword
	profConfirm
)

type profileResultMsg struct {
	outcome page.Outcome
	session session.Session
	user    *models.User
}

type ProfileModel struct {
	env     *Env
	form    *form
	loading bool
	outcome *page.Outcome
	user    *models.User
}

func NewProfileModel(env *Env) *ProfileModel {
	return &ProfileModel{
		env: env,
		form: newForm(
			textInput("Full Name", ""),
			textInput("Email", ""),
			textInput("Phone", ""),
			secretInput("New Password"),
			secretInput("Confirm Password"),
		),
	}
}

func (m *ProfileModel) Init() tea.Cmd {
	return nil
}

// Prefill loads the signed-in user's current details into the form.
func (m *ProfileModel) Prefill(u *models.User) {
	m.form.reset()
	m.outcome, m.user = nil, nil
	if u == nil {
		return
	}
	m.form.set(profFullName, u.DisplayName())
	m.form.set(profEmail, u.Email)
	m.form.set(profPhone, u.Phone)
}

func profileCmd(env *Env, req models.ProfileUpdate, confirm string) tea.Cmd {
	pc, sess := env.snapshot()
	return func() tea.Msg {
		user, out := page.UpdateProfile(context.Background(), pc, env.API, req, confirm)
		return profileResultMsg{outcome: out, session: *sess, user: user}
	}
}

func (m *ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case profileResultMsg:
		m.loading = false
		m.outcome = &msg.outcome
		m.user = msg.user
		if msg.outcome.OK() {
			m.form.set(profPassword, "")
			m.form.set(profConfirm, "")
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		if m.form.handleKey(msg) {
			m.loading = true
			m.outcome, m.user = nil, nil
			return m, profileCmd(m.env, models.ProfileUpdate{
				FullName: m.form.value(profFullName),
				Email:    m.form.value(profEmail),
				Phone:    m.form.value(profPhone),
				Password: m.form.value(profPassword),
			}, m.form.value(profConfirm))
		}
	}
	return m, nil
}

func (m *ProfileModel) View() string {
	var b strings.Builder

	b.WriteString(header("👤 UPDATE PROFILE", "Leave the password blank to keep your current one."))
	b.WriteString("\n\n")
	b.WriteString(center(m.form.View()))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(center(InfoStyle.Render("🔄 Updating your profile...")))
		b.WriteString("\n")
	}
	if line := outcomeLine(m.outcome); line != "" {
		b.WriteString(center(line))
		b.WriteString("\n")
	}
	if u := m.user; u != nil {
		status := "Inactive"
		if u.Enabled() {
			status = "Active"
		}
		for _, row := range [][2]string{
			{"ID:", u.ID.String()},
			{"Name:", u.DisplayName()},
			{"Email:", u.Email},
			{"Phone:", u.Phone},
			{"Status:", status},
		} {
			b.WriteString(center(LabelStyle.Render(row[0]) + ItemStyle.Render(row[1])))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("tab switch  •  enter save  •  esc menu")))

	return BoxStyle.Width(screenWidth - 4).Render(b.String())
}
