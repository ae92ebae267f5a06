package domain

import "time"

// Role distinguishes patients from doctors. Status mutation and delete
// are doctor-exclusive; patients may only create tickets.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor
}

// User is the authenticated identity consumed by the core. The ID
// uniquely identifies a user for the lifetime of the process.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
