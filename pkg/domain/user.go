package domain

import (
	"strings"
	"time"
)

// Role is the portal-side account role. It is chosen by the user on the
// login form and never sent to the backend — the auth service is
// role-agnostic, so the role only decides which dashboards the client
// renders. Do not treat it as an authorization boundary.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	return s == string(RolePatient) || s == string(RoleDoctor)
}

// User represents a registered portal user.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	DateOfBirth string    `json:"date_of_birth,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Role is client-side metadata, never part of the wire payload.
	Role Role `json:"-"`
}

// FirstName returns the first word of FullName, falling back to the
// email local part when no name is set. Used for dashboard greetings.
func (u User) FirstName() string {
	if name := strings.TrimSpace(u.FullName); name != "" {
		return strings.Fields(name)[0]
	}
	if i := strings.IndexByte(u.Email, '@'); i > 0 {
		return u.Email[:i]
	}
	return u.Email
}
