package domain

import "time"

// User is an account row plus its resolved permission set.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Name         string    `json:"name"`
	IsActive     bool      `json:"is_active"`
	Permissions  []string  `json:"permissions"`
	CreatedAt    time.Time `json:"created_at"`
}

// Roles recognized by the service.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultPermissions granted to every account at creation.
var DefaultPermissions = []string{"read_post"}

// SelfRegisterPermissions granted on top of the defaults to accounts created
// through the public registration endpoint.
var SelfRegisterPermissions = []string{"create_post", "edit_post"}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
