// Package permission derives capability sets from the current session's role.
//
// Checks are pure functions of the role against a fixed table, re-evaluated on
// every call — the session can change between calls (login/logout), so nothing
// here is cached. No session, or a role outside the closed set, yields the
// empty capability set; Has never fails, it only answers false.
package permission

import (
	"context"

	"github.com/sakif/learnhub/internal/model"
)

// SessionReader is the slice of the session store the resolver needs.
type SessionReader interface {
	CurrentUser(ctx context.Context) *model.User
}

// Capabilities returns the capability set for a role.
//
// The switch is exhaustive over model.Role: admin strictly contains user,
// which strictly contains the unauthenticated empty set. A role value outside
// the closed set maps to nothing — the default arm is the deliberate
// deny-by-default case, not a forgotten one.
func Capabilities(role model.Role) []model.Capability {
	switch role {
	case model.RoleAdmin:
		return []model.Capability{
			model.CapRead,
			model.CapWrite,
			model.CapDelete,
			model.CapManageUsers,
			model.CapCopyCode,
		}
	case model.RoleUser:
		return []model.Capability{
			model.CapRead,
			model.CapCopyCode,
		}
	default:
		return nil
	}
}

// Resolver answers capability checks against the live session.
type Resolver struct {
	sessions SessionReader
}

// New creates a Resolver reading from sessions.
func New(sessions SessionReader) *Resolver {
	return &Resolver{sessions: sessions}
}

// Has reports whether the current user holds the capability. False when no
// session exists.
func (r *Resolver) Has(ctx context.Context, capability model.Capability) bool {
	user := r.sessions.CurrentUser(ctx)
	if user == nil {
		return false
	}
	for _, c := range Capabilities(user.Role) {
		if c == capability {
			return true
		}
	}
	return false
}
