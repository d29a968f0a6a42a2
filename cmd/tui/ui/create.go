package ui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Varun5711/carmate/internal/models"
	"github.com/Varun5711/carmate/internal/page"
	"github.com/Varun5711/carmate/internal/qrcode"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	crMake = iota
	crModel
	crYear
	crPlate
	crVIN
	crMileage
	crServiceType
	crSymptoms
	crDate
	crTimeWindow
	crLocation
	crUrgency
	crPhotos
)

type createResultMsg struct {
	outcome page.Outcome
	created *models.CreatedRequest
	qr      string
}

type CreateModel struct {
	env     *Env
	form    *form
	loading bool
	outcome *page.Outcome
	created *models.CreatedRequest
	qr      string
}

func NewCreateModel(env *Env) *CreateModel {
	m := &CreateModel{env: env}
	m.form = newForm(m.defaults()...)
	return m
}

func (m *CreateModel) defaults() []formField {
	today := m.env.now()

	year := textInput("Year", "")
	year.value = strconv.Itoa(today.Year())
	date := textInput("Preferred Date", "YYYY-MM-DD")
	date.value = today.AddDate(0, 0, 1).Format(time.DateOnly)

	return []formField{
		textInput("Make", "e.g., Toyota"),
		textInput("Model", "e.g., Camry"),
		year,
		textInput("License Plate", "optional"),
		textInput("VIN", "optional, 17 chars"),
		textInput("Mileage", "optional"),
		choiceInput("Service Type", models.ServiceTypes, models.ServiceTypes[0]),
		textInput("Symptoms", "what's wrong, at least ~10 chars"),
		date,
		choiceInput("Time Window", models.TimeWindows, "Flexible"),
		textInput("Location", "e.g., Commerce, TX"),
		choiceInput("Urgency", models.UrgencyLevels, "Medium"),
		textInput("Photos", "optional, comma-separated paths"),
	}
}

func (m *CreateModel) Init() tea.Cmd {
	return nil
}

// parseCount maps blank to 0 and garbage to -1 so range rules reject it.
func parseCount(s string, blank int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return blank
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}

func splitPaths(s string) []string {
	var paths []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func (m *CreateModel) request() models.ServiceRequest {
	f := m.form
	return models.ServiceRequest{
		Vehicle: models.Vehicle{
			Make:         f.value(crMake),
			Model:        f.value(crModel),
			Year:         parseCount(f.value(crYear), 0),
			LicensePlate: f.value(crPlate),
			VIN:          f.value(crVIN),
			Mileage:      parseCount(f.value(crMileage), 0),
		},
		ServiceType:         f.value(crServiceType),
		Symptoms:            f.value(crSymptoms),
		PreferredDate:       strings.TrimSpace(f.value(crDate)),
		PreferredTimeWindow: f.value(crTimeWindow),
		Location:            f.value(crLocation),
		Urgency:             f.value(crUrgency),
	}
}

func createCmd(env *Env, req models.ServiceRequest, photos []string) tea.Cmd {
	pc, _ := env.snapshot()
	return func() tea.Msg {
		created, out := page.CreateServiceRequest(context.Background(), pc, env.API, req, photos)
		msg := createResultMsg{outcome: out, created: created}
		if created != nil && created.RequestID() != "" {
			if qr, err := qrcode.RequestASCII(created.RequestID()); err == nil {
				msg.qr = qr
			} else {
				env.Log.Warn("render request QR: %v", err)
			}
		}
		return msg
	}
}

func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case createResultMsg:
		m.loading = false
		m.outcome = &msg.outcome
		m.created = msg.created
		m.qr = msg.qr
		if msg.outcome.OK() {
			m.form = newForm(m.defaults()...)
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		if msg.String() == "ctrl+l" {
			m.form = newForm(m.defaults()...)
			m.outcome, m.created, m.qr = nil, nil, ""
			return m, nil
		}
		if m.created != nil {
			return m, nil
		}
		if m.form.handleKey(msg) {
			m.loading = true
			m.outcome, m.created, m.qr = nil, nil, ""
			return m, createCmd(m.env, m.request(), splitPaths(m.form.value(crPhotos)))
		}
	}
	return m, nil
}

func (m *CreateModel) View() string {
	var b strings.Builder

	b.WriteString(header("🛠  CREATE SERVICE REQUEST", "Tell us about your car and what it needs."))
	b.WriteString("\n\n")

	if m.created != nil {
		b.WriteString(center(outcomeLine(m.outcome)))
		b.WriteString("\n\n")
		id := m.created.RequestID()
		b.WriteString(center(LabelStyle.Render("Request ID:") + SuccessStyle.Render(id)))
		b.WriteString("\n")
		if m.created.Status != "" {
			b.WriteString(center(LabelStyle.Render("Status:") + ItemStyle.Render(m.created.Status)))
			b.WriteString("\n")
		}
		if m.qr != "" {
			b.WriteString("\n")
			b.WriteString(center(lipgloss.NewStyle().Foreground(Text).Background(BgDark).Render(m.qr)))
		}
		b.WriteString("\n")
		b.WriteString(center(InfoStyle.Render("ctrl+l new request  •  ctrl+p upload photos for it  •  esc menu")))
		return BoxStyle.Width(screenWidth - 4).Render(b.String())
	}

	b.WriteString(center(m.form.View()))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(center(InfoStyle.Render("🔄 Submitting...")))
		b.WriteString("\n")
	}
	if line := outcomeLine(m.outcome); line != "" {
		b.WriteString(center(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("tab/↑/↓ switch  •  ←/→ choose  •  enter submit  •  ctrl+l clear  •  esc menu")))

	return BoxStyle.Width(screenWidth - 4).Render(b.String())
}
