package ui

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Varun5711/carmate/internal/apiclient"
	"github.com/Varun5711/carmate/internal/errlog"
	"github.com/Varun5711/carmate/internal/logger"
	"github.com/Varun5711/carmate/internal/models"
	"github.com/Varun5711/carmate/internal/page"
	"github.com/Varun5711/carmate/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeAPI struct {
	calls  int
	result apiclient.Result
}

func (f *fakeAPI) do() apiclient.Result {
	f.calls++
	return f.result
}

func (f *fakeAPI) Login(context.Context, models.Credentials) apiclient.Result { return f.do() }
func (f *fakeAPI) Register(context.Context, models.RegistrationRequest) apiclient.Result {
	return f.do()
}
func (f *fakeAPI) ForgotPassword(context.Context, models.ForgotPasswordRequest) apiclient.Result {
	return f.do()
}
func (f *fakeAPI) UpdateProfile(context.Context, http.Header, models.ProfileUpdate) apiclient.Result {
	return f.do()
}
func (f *fakeAPI) MyRequests(context.Context, http.Header) apiclient.Result { return f.do() }
func (f *fakeAPI) CreateServiceRequest(context.Context, http.Header, models.ServiceRequest, []apiclient.File) apiclient.Result {
	return f.do()
}
func (f *fakeAPI) UploadPhotos(context.Context, http.Header, string, []apiclient.File) apiclient.Result {
	return f.do()
}
func (f *fakeAPI) ListUsers(context.Context, http.Header) apiclient.Result { return f.do() }
func (f *fakeAPI) ToggleUser(context.Context, http.Header, string) apiclient.Result {
	return f.do()
}

var fixedNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

func newTestEnv(sess *session.Session) (*Env, *fakeAPI) {
	core, _ := observer.New(zapcore.DebugLevel)
	api := &fakeAPI{result: apiclient.Classify(200, "application/json", []byte(`[]`))}
	return &Env{
		API:       api,
		Session:   sess,
		Errors:    errlog.NewWithClock(func() time.Time { return fixedNow }),
		Store:     session.NewMemoryStore(8),
		SessionID: "test-session",
		Log:       logger.NewWithCore("ui", core),
		Now:       func() time.Time { return fixedNow },
	}, api
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestNewModel_StartsAtLoginWithoutToken(t *testing.T) {
	env, _ := newTestEnv(&session.Session{})
	m := NewModel(env)
	assert.Equal(t, LoginView, m.currentView)

	env2, _ := newTestEnv(&session.Session{Token: "tok"})
	assert.Equal(t, MenuView, NewModel(env2).currentView)
}

func TestNavigate_ProtectedRedirectsWithoutCall(t *testing.T) {
	for _, v := range []View{CreateView, RequestsView, UploadView, ProfileView, UsersView} {
		env, api := newTestEnv(&session.Session{})
		m := NewModel(env)

		m, cmd := m.navigate(v)

		assert.Nil(t, cmd, "view %d", v)
		assert.Equal(t, LoginView, m.currentView)
		assert.Equal(t, "Please login first.", m.login.notice)
		assert.Equal(t, 0, api.calls)
	}
}

func TestNavigate_RequestsLoadsOnEnter(t *testing.T) {
	env, api := newTestEnv(&session.Session{Token: "tok"})
	m := NewModel(env)

	m, cmd := m.navigate(RequestsView)
	require.NotNil(t, cmd)
	assert.Equal(t, RequestsView, m.currentView)
	assert.True(t, m.requests.loading)

	msg := run(cmd)
	updated, _ := m.Update(msg)
	m = updated.(Model)

	assert.Equal(t, 1, api.calls)
	assert.False(t, m.requests.loading)
	assert.Contains(t, m.View(), "No requests yet")
}

func TestLogin_SuccessAdoptsAndPersistsSession(t *testing.T) {
	env, _ := newTestEnv(&session.Session{})
	env.API.(*fakeAPI).result = apiclient.Classify(200, "application/json",
		[]byte(`{"token":"jwt","user":{"id":"u1","fullName":"Arjun","email":"arjun@example.com"}}`))
	m := NewModel(env)

	for _, r := range "arjun@example.com" {
		m.login.form.handleKey(key(string(r)))
	}
	m.login.form.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	m.login.form.handleKey(key("pw"))

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.login.loading)

	updated, persist := m.Update(run(cmd))
	m = updated.(Model)

	assert.Equal(t, MenuView, m.currentView)
	assert.Equal(t, "jwt", env.Session.Token)
	assert.Contains(t, m.View(), "Arjun")

	run(persist)
	stored, err := env.Store.Load(context.Background(), env.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "jwt", stored.Token)
}

func TestLogin_InvalidFormMakesNoCallAndShowsPanel(t *testing.T) {
	env, api := newTestEnv(&session.Session{})
	m := NewModel(env)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	updated, _ = m.Update(run(cmd))
	m = updated.(Model)

	assert.Equal(t, 0, api.calls)
	assert.Equal(t, LoginView, m.currentView)
	view := m.View()
	assert.Contains(t, view, "Login validation")
	assert.Contains(t, view, "Please enter a valid email address.")
}

func TestLogout_ClearsSessionAndStore(t *testing.T) {
	env, _ := newTestEnv(&session.Session{Token: "tok"})
	require.NoError(t, env.Store.Save(context.Background(), env.SessionID, env.Session))
	m := NewModel(env)

	m.menu.cursor = len(m.menu.items) - 1
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	run(cmd)

	assert.Equal(t, LoginView, m.currentView)
	assert.False(t, env.Session.IsAuthenticated())
	stored, err := env.Store.Load(context.Background(), env.SessionID)
	require.NoError(t, err)
	assert.False(t, stored.IsAuthenticated())
}

func TestRedirectedOutcomeReturnsToLogin(t *testing.T) {
	env, _ := newTestEnv(&session.Session{Token: "tok"})
	m := NewModel(env)
	m.currentView = UploadView

	updated, _ := m.Update(uploadResultMsg{outcome: page.Outcome{Kind: page.Redirected, Message: "Please login first."}})
	m = updated.(Model)

	assert.Equal(t, LoginView, m.currentView)
	assert.Equal(t, "Please login first.", m.login.notice)
}

func TestErrorPanel_NewestFiveAndClear(t *testing.T) {
	env, _ := newTestEnv(&session.Session{})
	for i := 1; i <= 7; i++ {
		env.Errors.Record(fmt.Sprintf("Failure %d", i), "details")
	}

	panel := errorPanel(env.Errors)
	assert.Contains(t, panel, "Recent errors (5 of 7)")
	assert.Contains(t, panel, "Failure 7")
	assert.Contains(t, panel, "Failure 3")
	assert.NotContains(t, panel, "Failure 2")
	assert.Less(t, strings.Index(panel, "Failure 7"), strings.Index(panel, "Failure 6"))

	m := NewModel(env)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	m = updated.(Model)
	assert.Equal(t, 0, env.Errors.Len())
	assert.Empty(t, errorPanel(env.Errors))
}

func TestForm_EditingAndChoices(t *testing.T) {
	f := newForm(
		textInput("Name", "hint"),
		choiceInput("Urgency", models.UrgencyLevels, "Medium"),
	)

	f.handleKey(key("Ann"))
	f.handleKey(tea.KeyMsg{Type: tea.KeySpace})
	f.handleKey(key("Lé"))
	f.handleKey(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "Ann L", f.value(0))

	f.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "Medium", f.value(1))
	f.handleKey(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "High", f.value(1))
	f.handleKey(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "Low", f.value(1))
	f.handleKey(key("x"))
	assert.Equal(t, "Low", f.value(1))

	assert.True(t, f.handleKey(tea.KeyMsg{Type: tea.KeyEnter}))

	f.reset()
	assert.Equal(t, "", f.value(0))
	assert.Equal(t, "Medium", f.value(1))
	assert.Equal(t, 0, f.focused)
}

func TestCreate_DefaultsFromClock(t *testing.T) {
	env, _ := newTestEnv(&session.Session{Token: "tok"})
	m := NewCreateModel(env)

	req := m.request()
	assert.Equal(t, 2026, req.Vehicle.Year)
	assert.Equal(t, "2026-10-18", req.PreferredDate)
	assert.Equal(t, "Flexible", req.PreferredTimeWindow)
	assert.Equal(t, "Medium", req.Urgency)
	assert.Equal(t, "Oil Change", req.ServiceType)
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, 0, parseCount("", 0))
	assert.Equal(t, 42000, parseCount(" 42000 ", 0))
	assert.Equal(t, -1, parseCount("lots", 0))
	assert.Equal(t, []string{"a.png", "b.jpg"}, splitPaths(" a.png, ,b.jpg "))
	assert.Nil(t, splitPaths("  "))
}
