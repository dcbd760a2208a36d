// Package access holds the capability checks shared by the HTTP gate and the services.
package access

import "github.com/franciscosanchezn/gin-momo-api/internal/models"

// Actor is the identity a request acts as
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// Outcome is the result of a capability check
type Outcome int

const (
	Allowed Outcome = iota
	Unauthenticated
	Forbidden
)

func (o Outcome) String() string {
	switch o {
	case Allowed:
		return "allowed"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	}
	return "unknown"
}

// Requirement is a predicate an authenticated actor must satisfy
type Requirement func(Actor) bool

// Authenticated accepts any resolved actor
func Authenticated(Actor) bool { return true }

// Admin accepts only administrators
func Admin(a Actor) bool { return a.IsAdmin() }

// Check resolves the outcome of req for actor; a nil actor is unauthenticated
func Check(actor *Actor, req Requirement) Outcome {
	if actor == nil || actor.UserID == 0 {
		return Unauthenticated
	}
	if req != nil && !req(*actor) {
		return Forbidden
	}
	return Allowed
}

// Owner allows the owner of a resource and administrators
func Owner(ownerID uint) Requirement {
	return func(a Actor) bool {
		return a.IsAdmin() || a.UserID == ownerID
	}
}
