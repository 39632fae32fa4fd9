package auth

import (
	"errors"

	"github.com/RagzJ/Event-Management/internal/model"
)

// Actor is the authenticated party performing an operation. It is threaded
// explicitly through request context into every handler; nothing in the
// system consults ambient session state.
type Actor struct {
	ID   int64
	Name string
	Role model.Role
}

// ErrUnauthorized is returned when an actor's role does not match the role an
// operation requires.
var ErrUnauthorized = errors.New("actor role not authorized for this operation")

// Authorize checks the actor's role against the exact role an operation
// requires. Roles are not ordered: an admin does not implicitly pass
// vendor-only checks, since each surface of the system belongs to exactly
// one role.
func Authorize(actor Actor, required model.Role) error {
	if !actor.Role.Valid() || actor.Role != required {
		return ErrUnauthorized
	}
	return nil
}
