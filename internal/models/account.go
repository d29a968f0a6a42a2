package models

import "strings"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
)

var Roles = []Role{RoleCustomer, RoleProvider}

type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Normalize is applied after validation, just before the payload is sent.
func (c Credentials) Normalize() Credentials {
	c.Email = normalizeEmail(c.Email)
	return c
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

func (r ForgotPasswordRequest) Normalize() ForgotPasswordRequest {
	r.Email = normalizeEmail(r.Email)
	return r
}

type RegistrationRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"required,oneof=customer provider"`
}

func (r RegistrationRequest) Normalize() RegistrationRequest {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = normalizeEmail(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	return r
}

// ProfileUpdate omits Password from the payload unless the user typed a new one.
type ProfileUpdate struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password,omitempty"`
}

func (p ProfileUpdate) Normalize() ProfileUpdate {
	p.FullName = strings.TrimSpace(p.FullName)
	p.Email = normalizeEmail(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	return p
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// User accepts both spellings the backend has used for name and active flag.
type User struct {
	ID       ID     `json:"id"`
	FullName string `json:"fullName,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Role     Role   `json:"role,omitempty"`
	IsActive *bool  `json:"isActive,omitempty"`
	Active   *bool  `json:"is_active,omitempty"`
}

func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

func (u User) Enabled() bool {
	if u.IsActive != nil {
		return *u.IsActive
	}
	if u.Active != nil {
		return *u.Active
	}
	return false
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

type UserResponse struct {
	User *User `json:"user,omitempty"`
}
