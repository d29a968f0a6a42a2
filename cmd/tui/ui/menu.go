package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type menuItem struct {
	label string
	view  View
}

type MenuModel struct {
	cursor   int
	selected int
	items    []menuItem
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func NewMenuModel() *MenuModel {
	return &MenuModel{
		selected: -1,
		items: []menuItem{
			{"Create Service Request", CreateView},
			{"My Requests", RequestsView},
			{"Upload Vehicle Photos", UploadView},
			{"Update Profile", ProfileView},
			{"Registered Users", UsersView},
			{"Logout", LoginView},
		},
	}
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
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
		case "enter":
			m.selected = m.cursor
		}
	}
	return m, nil
}

// take returns the chosen item once and clears the selection.
func (m *MenuModel) take() (menuItem, bool) {
	if m.selected < 0 {
		return menuItem{}, false
	}
	item := m.items[m.selected]
	m.selected = -1
	return item, true
}

func (m *MenuModel) View() string {
	var b strings.Builder

	b.WriteString(header("🚗 CARMATE", "Car service, without the phone tag."))
	b.WriteString("\n\n")

	var rows []string
	for i, item := range m.items {
		cursor := "  "
		style := ItemStyle
		if i == m.cursor {
			cursor = "> "
			style = SelectedItemStyle
		}
		rows = append(rows, style.Render(cursor+item.label))
	}

	menu := BoxStyle.Width(60).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString(center(menu))
	b.WriteString("\n\n")
	b.WriteString(center(InfoStyle.Render("↑/↓ navigate  •  enter select  •  q quit")))

	return b.String()
}
