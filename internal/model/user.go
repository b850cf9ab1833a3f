// Package model defines the data structures shared across the client subsystem.
package model

import "time"

// Role is the closed set of roles the backend can assign to an identity.
//
// The set is deliberately small: the platform distinguishes only between the
// content administrator and a regular learner. Permission derivation switches
// exhaustively over this type (see internal/permission), so adding a role here
// forces the capability table to be extended by hand rather than silently
// granting nothing.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Capability is a single permission token from the fixed vocabulary.
// Capabilities are derived from Role on every check, never stored per user.
type Capability string

const (
	CapRead        Capability = "read"
	CapWrite       Capability = "write"
	CapDelete      Capability = "delete"
	CapManageUsers Capability = "manage_users"
	CapCopyCode    Capability = "copy_code"
)

// User is the authenticated identity as the client sees it.
//
// The backend login response only carries {email, role}, so the remaining
// fields are derived on the client: ID is the lowercased email (stable and
// unique per email for the lifetime of the session), Name is the local part
// of the address, and CreatedAt is the login time. Avatar stays empty unless
// the backend starts supplying one.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
