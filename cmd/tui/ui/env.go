package ui

import (
	"context"
	"time"

	"github.com/Varun5711/carmate/internal/errlog"
	"github.com/Varun5711/carmate/internal/logger"
	"github.com/Varun5711/carmate/internal/page"
	"github.com/Varun5711/carmate/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

// Env is shared by every screen. Session and Errors outlive screen switches.
type Env struct {
	API       page.API
	Session   *session.Session
	Errors    *errlog.Log
	Store     session.Store
	SessionID string
	Log       *logger.Logger
	Now       func() time.Time
}

// snapshot hands a submission its own copy of the session; the command runs
// off the event loop and the result is adopted back in Update.
func (e *Env) snapshot() (*page.Context, *session.Session) {
	sess := *e.Session
	pc := page.NewContext(&sess, e.Errors, e.Log)
	pc.Now = e.now
	return pc, &sess
}

func (e *Env) adopt(s session.Session) tea.Cmd {
	*e.Session = s
	if e.Store == nil {
		return nil
	}

	store, id, log := e.Store, e.SessionID, e.Log
	return func() tea.Msg {
		if err := store.Save(context.Background(), id, &s); err != nil {
			log.Warn("persist session %s: %v", id, err)
		}
		return nil
	}
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
