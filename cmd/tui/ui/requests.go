package ui

import (
	"context"
	"strings"

	"github.com/Varun5711/carmate/internal/models"
	"github.com/Varun5711/carmate/internal/page"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type requestsResultMsg struct {
	outcome page.Outcome
	items   []models.ServiceRequestSummary
}

type RequestsModel struct {
	env     *Env
	items   []models.ServiceRequestSummary
	cursor  int
	loading bool
	outcome *page.Outcome
}

func NewRequestsModel(env *Env) *RequestsModel {
	return &RequestsModel{env: env}
}

func (m *RequestsModel) Init() tea.Cmd {
	return nil
}

// Enter reloads the list each time the screen is opened.
func (m *RequestsModel) Enter() tea.Cmd {
	m.loading = true
	m.outcome = nil
	return requestsCmd(m.env)
}

func requestsCmd(env *Env) tea.Cmd {
	pc, _ := env.snapshot()
	return func() tea.Msg {
		items, out := page.MyRequests(context.Background(), pc, env.API)
		return requestsResultMsg{outcome: out, items: items}
	}
}

func (m *RequestsModel) Selected() (models.ServiceRequestSummary, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return models.ServiceRequestSummary{}, false
	}
	return m.items[m.cursor], true
}

func (m *RequestsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case requestsResultMsg:
		m.loading = false
		m.outcome = &msg.outcome
		m.items = msg.items
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "r":
			if !m.loading {
				return m, m.Enter()
			}
		}
	}
	return m, nil
}

func (m *RequestsModel) View() string {
	var b strings.Builder

	b.WriteString(header("📋 MY SERVICE REQUESTS", "Your recent service requests."))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(center(lipgloss.NewStyle().Foreground(Accent).Render("⏳ Loading...")))
		b.WriteString("\n")
	case m.outcome != nil && !m.outcome.OK():
		b.WriteString(center(outcomeLine(m.outcome)))
		b.WriteString("\n")
	case len(m.items) == 0:
		b.WriteString(center(InfoStyle.Render("No requests yet. Create one from the menu.")))
		b.WriteString("\n")
	default:
		for i, item := range m.items {
			style := CardStyle
			if i == m.cursor {
				style = SelectedCardStyle
			}

			title := item.Title()
			if title == "" {
				title = "Vehicle info not available"
			}

			lines := []string{
				SuccessStyle.Render(item.ServiceTypeOrDefault()) + InfoStyle.Render(" • "+item.StatusOrDefault()),
				ItemStyle.UnsetPaddingLeft().Render(title),
			}
			if item.CreatedAt != "" {
				lines = append(lines, InfoStyle.Render("Created: "+item.CreatedAt))
			}
			lines = append(lines, InfoStyle.Render("Request ID: "+item.RequestID()))

			b.WriteString(center(style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("↑/↓ navigate  •  p upload photos  •  r refresh  •  esc menu")))

	return BoxStyle.Width(screenWidth - 4).Render(b.String())
}
