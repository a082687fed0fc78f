package domain

import "github.com/google/uuid"

// Role represents the job function of a user.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User is an authenticated account holder. The password is stored as a
// bcrypt hash. Each user owns exactly one cash account, referenced by id.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         Role
	AccountID    uuid.UUID
}

// IsAdmin reports whether the user carries the administrative job function.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Principal is the acting identity resolved at the transport boundary and
// passed explicitly into services. Administrators may manage assets and
// accounts but may never originate launches or movements; regular users are
// the inverse.
type Principal struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
	Admin     bool
}
