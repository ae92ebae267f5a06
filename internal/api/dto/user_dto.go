package dto

import "github.com/updoc-health/updoc/internal/domain"

// SignupOrLoginRequest payload.
type SignupOrLoginRequest struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role,omitempty"`
}

// User response. Credential material never appears on the wire.
type User struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// FromUser maps a domain user onto the wire shape, dropping the
// password hash.
func FromUser(user domain.User) User {
	return User{ID: user.ID, Username: user.Username, Role: user.Role}
}
