package ui

import (
	"context"
	"time"

	"github.com/Varun5711/carmate/internal/page"
	"github.com/Varun5711/carmate/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type View int

const (
	LoginView View = iota
	RegisterView
	ForgotView
	MenuView
	CreateView
	RequestsView
	UploadView
	ProfileView
	UsersView
)

func (v View) protected() bool {
	return v >= MenuView
}

type Model struct {
	env         *Env
	currentView View
	login       *LoginModel
	register    *RegisterModel
	forgot      *ForgotModel
	menu        *MenuModel
	create      *CreateModel
	requests    *RequestsModel
	upload      *UploadModel
	profile     *ProfileModel
	users       *UsersModel
	width       int
	height      int
}

func NewModel(env *Env) Model {
	m := Model{
		env:         env,
		currentView: LoginView,
		login:       NewLoginModel(env),
		register:    NewRegisterModel(env),
		forgot:      NewForgotModel(env),
		menu:        NewMenuModel(),
		create:      NewCreateModel(env),
		requests:    NewRequestsModel(env),
		upload:      NewUploadModel(env),
		profile:     NewProfileModel(env),
		users:       NewUsersModel(env),
	}
	if env.Session.IsAuthenticated() {
		m.currentView = MenuView
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// navigate runs the login gate before any protected screen is shown.
func (m Model) navigate(v View) (Model, tea.Cmd) {
	if v.protected() {
		if err := session.RequireLogin(m.env.Session); err != nil {
			m.currentView = LoginView
			m.login.Redirect("Please login first.")
			return m, nil
		}
	}

	m.currentView = v
	switch v {
	case RequestsView:
		return m, m.requests.Enter()
	case UsersView:
		return m, m.users.Enter()
	case ProfileView:
		m.profile.Prefill(m.env.Session.User)
	}
	return m, nil
}

func (m Model) logout() (Model, tea.Cmd) {
	m.env.Session.Clear()
	m.currentView = LoginView
	m.login.Redirect("You have been logged out.")

	store, id, log := m.env.Store, m.env.SessionID, m.env.Log
	if store == nil {
		return m, nil
	}
	return m, func() tea.Msg {
		if err := store.Delete(context.Background(), id); err != nil {
			log.Warn("delete session %s: %v", id, err)
		}
		return nil
	}
}

// redirected sends the user to login when a submission hit the gate.
func (m Model) redirected(out page.Outcome) (Model, bool) {
	if out.Kind != page.Redirected {
		return m, false
	}
	m.currentView = LoginView
	m.login.Redirect(out.Message)
	return m, true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginResultMsg:
		m.login.Update(msg)
		if msg.outcome.OK() && msg.session.IsAuthenticated() {
			cmd := m.env.adopt(msg.session)
			m.currentView = MenuView
			return m, cmd
		}
		return m, nil

	case profileResultMsg:
		m.profile.Update(msg)
		if m, ok := m.redirected(msg.outcome); ok {
			return m, nil
		}
		if msg.outcome.OK() {
			return m, m.env.adopt(msg.session)
		}
		return m, nil

	case createResultMsg:
		m.create.Update(msg)
		m, _ = m.redirected(msg.outcome)
		return m, nil

	case requestsResultMsg:
		m.requests.Update(msg)
		m, _ = m.redirected(msg.outcome)
		return m, nil

	case uploadResultMsg:
		m.upload.Update(msg)
		m, _ = m.redirected(msg.outcome)
		return m, nil

	case usersResultMsg:
		_, cmd := m.users.Update(msg)
		m, _ = m.redirected(msg.outcome)
		return m, cmd

	case toggleResultMsg:
		_, cmd := m.users.Update(msg)
		m, _ = m.redirected(msg.outcome)
		return m, cmd

	case registerResultMsg:
		m.register.Update(msg)
		return m, nil

	case forgotResultMsg:
		m.forgot.Update(msg)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "ctrl+e":
			m.env.Errors.Clear()
			return m, nil

		case "q":
			if m.currentView == MenuView {
				return m, tea.Quit
			}

		case "esc":
			switch m.currentView {
			case LoginView, MenuView:
				return m, nil
			case RegisterView, ForgotView:
				m.currentView = LoginView
				return m, nil
			default:
				m.currentView = MenuView
				return m, nil
			}

		case "ctrl+r":
			if m.currentView == LoginView {
				m.currentView = RegisterView
				return m, nil
			}

		case "ctrl+f":
			if m.currentView == LoginView {
				m.currentView = ForgotView
				return m, nil
			}

		case "ctrl+p":
			if m.currentView == CreateView && m.create.created != nil {
				m.upload.ForRequest(m.create.created.RequestID())
				return m.navigate(UploadView)
			}

		case "p":
			if m.currentView == RequestsView {
				if item, ok := m.requests.Selected(); ok {
					m.upload.ForRequest(item.RequestID())
					return m.navigate(UploadView)
				}
				return m, nil
			}
		}
	}

	// Route to the active screen
	switch m.currentView {
	case LoginView:
		_, cmd := m.login.Update(msg)
		return m, cmd

	case RegisterView:
		_, cmd := m.register.Update(msg)
		return m, cmd

	case ForgotView:
		_, cmd := m.forgot.Update(msg)
		return m, cmd

	case MenuView:
		_, cmd := m.menu.Update(msg)
		if item, ok := m.menu.take(); ok {
			if item.view == LoginView {
				return m.logout()
			}
			return m.navigate(item.view)
		}
		return m, cmd

	case CreateView:
		_, cmd := m.create.Update(msg)
		return m, cmd

	case RequestsView:
		_, cmd := m.requests.Update(msg)
		return m, cmd

	case UploadView:
		_, cmd := m.upload.Update(msg)
		return m, cmd

	case ProfileView:
		_, cmd := m.profile.Update(msg)
		return m, cmd

	case UsersView:
		_, cmd := m.users.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) statusBar() string {
	sess := m.env.Session
	if !sess.IsAuthenticated() {
		return ""
	}

	name, email := "signed in", ""
	if sess.User != nil {
		name = sess.User.DisplayName()
		email = sess.User.Email
	}

	info := lipgloss.NewStyle().Foreground(Success).Render("👤 " + name)
	if email != "" {
		info += lipgloss.NewStyle().Foreground(Muted).Render(" (" + email + ")")
	}

	if claims, err := sess.Claims(); err == nil && !claims.ExpiresAt.IsZero() {
		now := m.env.now()
		if claims.Expired(now) {
			info += WarningStyle.Render("  • token expired")
		} else {
			info += InfoStyle.Render("  • expires in " + claims.ExpiresAt.Sub(now).Round(time.Minute).String())
		}
	}

	return StatusBarStyle.Render(info)
}

func (m Model) View() string {
	var content string
	switch m.currentView {
	case LoginView:
		content = m.login.View()
	case RegisterView:
		content = m.register.View()
	case ForgotView:
		content = m.forgot.View()
	case MenuView:
		content = m.menu.View()
	case CreateView:
		content = m.create.View()
	case RequestsView:
		content = m.requests.View()
	case UploadView:
		content = m.upload.View()
	case ProfileView:
		content = m.profile.View()
	case UsersView:
		content = m.users.View()
	}

	parts := []string{}
	if bar := m.statusBar(); bar != "" && m.currentView.protected() {
		parts = append(parts, bar)
	}
	parts = append(parts, content)
	if panel := errorPanel(m.env.Errors); panel != "" {
		parts = append(parts, panel)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
