package domain

import "strings"

// Role distinguishes test takers from observers.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// AnonymousKey is the storage token used when no identity is available.
const AnonymousKey = "anonymous"

// User is the identity supplied by the external auth collaborator.
type User struct {
	Email       string
	Role        Role
	DisplayName string
}

// NewUser fills defaults: unknown roles become student and the display name defaults to the email.
func NewUser(email string, role string, displayName string) User {
	r := Role(strings.ToLower(strings.TrimSpace(role)))
	if r != RoleTeacher {
		r = RoleStudent
	}
	email = strings.TrimSpace(email)
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = email
	}
	return User{Email: email, Role: r, DisplayName: displayName}
}

// IsTeacher reports whether the user observes results instead of taking tests.
func (u User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

// StorageKey normalizes the email into a safe key token.
// Distinct emails may collapse to the same token; anonymous users all share one.
func (u *User) StorageKey() string {
	if u == nil || u.Email == "" {
		return AnonymousKey
	}
	var b strings.Builder
	for _, r := range strings.ToLower(u.Email) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
