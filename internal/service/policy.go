// Package service contains the business logic layer between handlers and
// repositories.
package service

import "plume/internal/models"

// Caller identifies who is making a request. A zero Caller is an anonymous
// request.
type Caller struct {
	UserID        uint
	Authenticated bool
}

// Action classifies what the caller wants to do with a resource.
type Action int

const (
	ActionRead Action = iota
	ActionCreate
	ActionModify
)

// Authorize decides whether the caller may perform action on a resource
// owned by ownerID. Reads are open to everyone. Creation needs an
// authenticated caller. Modification (update or delete) needs the caller to
// be the owner: an anonymous caller gets an unauthorized error, a known
// non-owner gets a forbidden error. The distinction matters to clients —
// one is "log in first", the other is "this will never work for you".
func Authorize(caller Caller, action Action, ownerID uint) error {
	switch action {
	case ActionRead:
		return nil
	case ActionCreate:
		if !caller.Authenticated {
			return models.NewUnauthorizedError("Authentication required")
		}
		return nil
	case ActionModify:
		if !caller.Authenticated {
			return models.NewUnauthorizedError("Authentication required")
		}
		if caller.UserID != ownerID {
			return models.NewForbiddenError("You can only modify your own content")
		}
		return nil
	default:
		return models.NewForbiddenError("Unknown action")
	}
}
