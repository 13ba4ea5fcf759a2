package staff

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type UserID = uuid.UUID

// Staff roles.
const (
	RoleManager  = "manager"
	RoleChef     = "chef"
	RoleSousChef = "sous_chef"
	RoleLineCook = "line_cook"
	RoleServer   = "server"
	RoleHost     = "host"
)

// User is a staff member account. Email is unique; both store paths enforce
// it on create.
type User struct {
	ID          UserID     `json:"id" bson:"_id"`
	Email       string     `json:"email" bson:"email"`
	Name        string     `json:"name" bson:"name"`
	Role        string     `json:"role" bson:"role"`
	Permissions []string   `json:"permissions,omitempty" bson:"permissions,omitempty"`
	Active      bool       `json:"active" bson:"active"`
	Session     *Session   `json:"session,omitempty" bson:"session,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty" bson:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// Session is the active login session, if any.
type Session struct {
	Token     string    `json:"token" bson:"token"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
}

func NewUser() *User {
	return &User{
		ID:     uuid.New(),
		Active: true,
	}
}

func (u *User) EnsureID() {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
}

func (u *User) GetID() uuid.UUID {
	return u.ID
}

func (u *User) SetID(id uuid.UUID) {
	u.ID = id
}

func (u *User) ResourceType() string {
	return "staff/user"
}

// HasPermission reports whether the user carries the named permission.
func (u *User) HasPermission(permission string) bool {
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// StartSession records a new login session and the login time.
func (u *User) StartSession(token string, ttl time.Duration) {
	now := time.Now()
	u.Session = &Session{
		Token:     token,
		ExpiresAt: now.Add(ttl),
	}
	u.LastLoginAt = &now
}

// EndSession clears the active session.
func (u *User) EndSession() {
	u.Session = nil
}

// SessionValid reports whether the user holds an unexpired session.
func (u *User) SessionValid() bool {
	return u.Session != nil && u.Session.ExpiresAt.After(time.Now())
}

func (u *User) BeforeCreate() {
	u.EnsureID()
	u.Email = NormalizeEmail(u.Email)
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
}

func (u *User) BeforeUpdate() {
	u.Email = NormalizeEmail(u.Email)
	u.UpdatedAt = time.Now()
}

// NormalizeEmail lowercases and trims an email so uniqueness checks compare
// the same form everywhere.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidRole checks that a role string names a known staff role.
func ValidRole(role string) bool {
	switch role {
	case RoleManager, RoleChef, RoleSousChef, RoleLineCook, RoleServer, RoleHost:
		return true
	}
	return false
}
