// Package authz decides whether a signed-in identity may use a page or
// endpoint. A valid session is assumed; role fit is checked here.
package authz

import "pack/internal/model"

type Decision int

const (
	Deny Decision = iota
	Allow
)

// Capability is a predicate over the caller's identity.
type Capability func(*model.Identity) bool

// RoleIs allows any of roles.
func RoleIs(roles ...model.Role) Capability {
	return func(id *model.Identity) bool {
		for _, r := range roles {
			if id.Role == r {
				return true
			}
		}
		return false
	}
}

// Anyone allows every signed-in identity.
func Anyone(*model.Identity) bool { return true }

// Check applies capability to id. A nil identity is always denied.
func Check(id *model.Identity, capability Capability) Decision {
	if id == nil || capability == nil || !capability(id) {
		return Deny
	}
	return Allow
}

const DefaultLanding = "/login"

// LandingPage is where a role is sent when it lands on a page it cannot use.
func LandingPage(role model.Role) string {
	switch role {
	case model.RoleStudent:
		return "/dashboard/student"
	case model.RoleTeacher:
		return "/dashboard/teacher"
	default:
		return DefaultLanding
	}
}
