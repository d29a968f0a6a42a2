// Package page runs one form submission end to end: login gate, client-side
// validation, a single backend call and the mapping of its result to a
// user-facing outcome. Every failure lands in the session's error log.
package page

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/Varun5711/carmate/internal/apiclient"
	"github.com/Varun5711/carmate/internal/errlog"
	"github.com/Varun5711/carmate/internal/logger"
	"github.com/Varun5711/carmate/internal/session"
	"github.com/Varun5711/carmate/internal/validation"
)

// Context is the state one screen works against.
type Context struct {
	Session *session.Session
	Errors  *errlog.Log
	Now     func() time.Time
	Log     *logger.Logger
}

func NewContext(sess *session.Session, errs *errlog.Log, log *logger.Logger) *Context {
	return &Context{
		Session: sess,
		Errors:  errs,
		Now:     time.Now,
		Log:     log,
	}
}

type OutcomeKind int

const (
	Invalid OutcomeKind = iota
	Success
	AuthFailed
	BadRequest
	Conflict
	ServerFailed
	Unreachable
	Redirected
	Crashed
)

func (k OutcomeKind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case Success:
		return "success"
	case AuthFailed:
		return "auth_failed"
	case BadRequest:
		return "bad_request"
	case Conflict:
		return "conflict"
	case ServerFailed:
		return "server_failed"
	case Unreachable:
		return "unreachable"
	case Redirected:
		return "redirected"
	case Crashed:
		return "crashed"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

type Outcome struct {
	Kind    OutcomeKind
	Message string

	// Failures is set for Invalid outcomes.
	Failures validation.Failures
	// Result is the backend response; zero for Invalid, Redirected and Crashed.
	Result apiclient.Result
}

func (o Outcome) OK() bool {
	return o.Kind == Success
}

var defaultMessages = map[OutcomeKind]string{
	Success:     "Done.",
	AuthFailed:  "You are not authorized. Please login again.",
	Conflict:    "That record already exists.",
	Unreachable: "Could not connect to backend API.",
	Redirected:  "Please login first.",
	Crashed:     "Unexpected error.",
}

// Action is one screen's submission: what to check and which endpoint to call.
type Action struct {
	// Name prefixes error log titles, e.g. "Login" -> "Login failed (auth)".
	Name      string
	Protected bool
	Validate  func() validation.Failures
	Call      func(ctx context.Context, auth http.Header) apiclient.Result
	// Messages overrides the user-facing text for specific outcome kinds.
	Messages map[OutcomeKind]string
}

func (a Action) message(kind OutcomeKind) string {
	if msg, ok := a.Messages[kind]; ok {
		return msg
	}
	return defaultMessages[kind]
}

// Submit runs the action and decodes a successful JSON body into T. No HTTP
// call is made when the login gate or validation stops the submission.
func Submit[T any](ctx context.Context, pc *Context, a Action) (resp T, out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			resp = zero
			out = pc.crash(a, r)
		}
	}()

	if a.Protected {
		if err := session.RequireLogin(pc.Session); err != nil {
			pc.Log.Debug("%s: %v, redirecting to login", a.Name, err)
			return resp, Outcome{Kind: Redirected, Message: a.message(Redirected)}
		}
	}

	if a.Validate != nil {
		if failures := a.Validate(); len(failures) > 0 {
			joined := failures.Error()
			pc.Errors.Record(a.Name+" validation", joined)
			return resp, Outcome{Kind: Invalid, Message: joined, Failures: failures}
		}
	}

	res := a.Call(ctx, pc.Session.AuthHeader())
	out = pc.resolve(a, res)

	if out.Kind == Success && len(res.JSON) > 0 {
		if err := res.Decode(&resp); err != nil {
			pc.Log.Warn("%s: %v", a.Name, err)
		}
	}
	return resp, out
}

func (pc *Context) resolve(a Action, res apiclient.Result) Outcome {
	out := Outcome{Result: res}

	switch res.Kind {
	case apiclient.Success:
		out.Kind = Success
		out.Message = a.message(Success)
		return out

	case apiclient.AuthFailure:
		out.Kind = AuthFailed
		out.Message = a.message(AuthFailed)
		pc.Errors.Record(a.Name+" failed (auth)", res.Body)

	case apiclient.ValidationFailure:
		out.Kind = BadRequest
		out.Message = res.Message
		if msg, ok := a.Messages[BadRequest]; ok {
			out.Message = msg
		}
		pc.Errors.Record(a.Name+" failed (400)", res.Message)

	case apiclient.TransportFailure:
		out.Kind = Unreachable
		out.Message = a.message(Unreachable)
		pc.Errors.Record(a.Name+" connection error", errString(res.Err))

	default:
		if res.Status == http.StatusConflict {
			out.Kind = Conflict
			out.Message = a.message(Conflict)
			pc.Errors.Record(a.Name+" conflict (409)", res.Body)
			break
		}
		out.Kind = ServerFailed
		out.Message = fmt.Sprintf("Server error (%d)", res.Status)
		if msg, ok := a.Messages[ServerFailed]; ok {
			out.Message = msg
		}
		pc.Errors.Record(fmt.Sprintf("%s server error %d", a.Name, res.Status), res.Body)
	}

	pc.Log.Info("%s -> %s (status %d)", a.Name, out.Kind, res.Status)
	return out
}

func (pc *Context) crash(a Action, r interface{}) Outcome {
	details := fmt.Sprintf("%s: %v\n%s", a.Name, r, debug.Stack())
	pc.Errors.Record("Frontend exception", details)
	pc.Log.Error("%s panicked: %v", a.Name, r)
	return Outcome{Kind: Crashed, Message: a.message(Crashed)}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
