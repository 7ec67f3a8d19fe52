package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is the user's role in the portal
type UserRole = string

const (
	// RoleStudent can browse courses and book tutoring sessions
	RoleStudent UserRole = "Student"
	// RoleTutor can publish availability and run sessions
	RoleTutor UserRole = "Tutor"
	// RoleAdmin has access to reports and user management
	RoleAdmin UserRole = "Admin"
)

// User is the portal user record. The session core treats it as an immutable
// value owned by the Directory; it never edits fields, only replaces the
// whole reference.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr" json:"-"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Role          UserRole   `bun:"user_role,notnull" json:"user_role,omitempty"`
	AvatarURL     string     `bun:"avatar_url" json:"avatar_url,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Clone returns a copy of the record so callers can hold it across
// transitions without aliasing the store's state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// Equal reports field-for-field equality, the property a restore has to
// preserve across a persist/decode round trip.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.ID == other.ID &&
		u.Name == other.Name &&
		u.Email == other.Email &&
		u.Role == other.Role &&
		u.AvatarURL == other.AvatarURL
}

// IsValid checks if the role is one of the predefined portal roles
func IsValidRole(r UserRole) bool {
	switch r {
	case RoleStudent, RoleTutor, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole safely parses a string into a UserRole
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, IsValidRole(role)
}

// GetAllRoles returns all predefined roles
func GetAllRoles() []UserRole {
	return []UserRole{RoleStudent, RoleTutor, RoleAdmin}
}

func defaultValidator(u *User) error {
	if u == nil {
		return ErrUserNotFound
	}

	if !IsValidRole(u.Role) {
		return errInvalidRole(u)
	}

	return nil
}
