package ui

import (
	"context"
	"strings"

	"github.com/Varun5711/carmate/internal/page"
	"github.com/Varun5711/carmate/internal/upload"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	upRequestID = iota
	upPhotos
)

type uploadResultMsg struct {
	outcome page.Outcome
}

type UploadModel struct {
	env     *Env
	form    *form
	loading bool
	outcome *page.Outcome
}

func NewUploadModel(env *Env) *UploadModel {
	return &UploadModel{
		env: env,
		form: newForm(
			textInput("Service Request ID", "enter your request ID"),
			textInput("Photos", strings.Join(upload.AllowedExtensions, "/")+" paths, comma-separated"),
		),
	}
}

func (m *UploadModel) Init() tea.Cmd {
	return nil
}

// ForRequest prefills the request id, e.g. right after creating one.
func (m *UploadModel) ForRequest(id string) {
	m.form.reset()
	m.form.set(upRequestID, id)
	if id != "" {
		m.form.focused = upPhotos
	}
	m.outcome = nil
}

func uploadCmd(env *Env, requestID string, paths []string) tea.Cmd {
	pc, _ := env.snapshot()
	return func() tea.Msg {
		return uploadResultMsg{outcome: page.UploadPhotos(context.Background(), pc, env.API, requestID, paths)}
	}
}

func (m *UploadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case uploadResultMsg:
		m.loading = false
		m.outcome = &msg.outcome
		if msg.outcome.OK() {
			m.form.set(upPhotos, "")
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		if m.form.handleKey(msg) {
			m.loading = true
			m.outcome = nil
			return m, uploadCmd(m.env, strings.TrimSpace(m.form.value(upRequestID)), splitPaths(m.form.value(upPhotos)))
		}
	}
	return m, nil
}

func (m *UploadModel) View() string {
	var b strings.Builder

	b.WriteString(header("📸 UPLOAD VEHICLE PHOTOS", "Attach images to an existing service request."))
	b.WriteString("\n\n")
	b.WriteString(center(m.form.View()))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(center(InfoStyle.Render("🔄 Uploading photos...")))
		b.WriteString("\n")
	}
	if line := outcomeLine(m.outcome); line != "" {
		b.WriteString(center(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("tab switch  •  enter upload  •  esc menu")))

	return BoxStyle.Width(screenWidth - 4).Render(b.String())
}
