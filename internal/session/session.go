package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Varun5711/carmate/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

var ErrLoginRequired = errors.New("login required")

// Session is the per-user auth state, set on a successful login.
type Session struct {
	Token string       `json:"token,omitempty"`
	User  *models.User `json:"user,omitempty"`
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != ""
}

// AuthHeader is empty when there is no token.
func (s *Session) AuthHeader() http.Header {
	h := http.Header{}
	if s.IsAuthenticated() {
		h.Set("Authorization", "Bearer "+s.Token)
	}
	return h
}

// SetLogin ignores an empty token. A new token without a user drops the
// previous user, since it may belong to another account.
func (s *Session) SetLogin(token string, user *models.User) {
	if token == "" {
		return
	}
	if user == nil && token != s.Token {
		s.User = nil
	}
	if user != nil {
		s.User = user
	}
	s.Token = token
}

func (s *Session) Clear() {
	s.Token = ""
	s.User = nil
}

// RequireLogin guards protected screens; callers stop and show login on error.
func RequireLogin(s *Session) error {
	if !s.IsAuthenticated() {
		return ErrLoginRequired
	}
	return nil
}

// Claims are read without verifying the signature; the backend owns the key.
type Claims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

func (s *Session) Claims() (*Claims, error) {
	if !s.IsAuthenticated() {
		return nil, ErrLoginRequired
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	out := &Claims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if out.Subject == "" {
		if uid, ok := claims["user_id"].(string); ok {
			out.Subject = uid
		}
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
