// Package permission decides whether an actor may perform an action on a resource.
//
// The policy is a single function over (actor, resource, action, owner); a nil
// actor is an anonymous caller.
package permission

import (
	apperrors "yamdb/internal/errors"
	"yamdb/internal/model"
)

// Resource is a family of records sharing an access rule.
type Resource int

const (
	// Catalog covers categories, genres and titles.
	Catalog Resource = iota
	// Feedback covers reviews and comments.
	Feedback
	// Users covers the admin user management endpoints.
	Users
	// Self covers the /users/me/ endpoint.
	Self
)

// Action is what the caller wants to do.
type Action int

const (
	Read Action = iota
	Create
	Update
	Delete
)

// NoOwner is passed when the resource has no author.
const NoOwner uint = 0

// Check returns nil when allowed, ErrNotAuthenticated when the caller must log in
// first and ErrPermissionDenied otherwise.
func Check(actor *model.User, resource Resource, action Action, ownerID uint) error {
	switch resource {
	case Catalog:
		if action == Read {
			return nil
		}
		return requireAdmin(actor)
	case Feedback:
		if action == Read {
			return nil
		}
		if actor == nil {
			return apperrors.ErrNotAuthenticated
		}
		if action == Create {
			return nil
		}
		if actor.ID == ownerID || actor.IsModerator() || actor.IsAdmin() {
			return nil
		}
		return apperrors.ErrPermissionDenied
	case Users:
		return requireAdmin(actor)
	case Self:
		if actor == nil {
			return apperrors.ErrNotAuthenticated
		}
		if action == Read || action == Update {
			return nil
		}
		return apperrors.ErrPermissionDenied
	default:
		return apperrors.ErrPermissionDenied
	}
}

func requireAdmin(actor *model.User) error {
	if actor == nil {
		return apperrors.ErrNotAuthenticated
	}
	if !actor.IsAdmin() {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// CanChangeRole reports whether actor may set a user's role.
func CanChangeRole(actor *model.User) bool {
	return actor.IsAdmin()
}
