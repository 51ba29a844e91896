package roster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ajitpratap0/clubroster/internal/models"
)

// ErrNotFound matches every lookup failure below through errors.Is.
var ErrNotFound = errors.New("not found")

// Lookup failures.
var (
	ErrEventNotFound     error = &notFoundError{"event not found"}
	ErrMemberNotFound    error = &notFoundError{"member not found"}
	ErrEventRoleNotFound error = &notFoundError{"event role not found"}
	ErrRoleNotHeld       error = &notFoundError{"role not held by member"}
	ErrNotAssigned       error = &notFoundError{"member is not assigned to event"}
)

type notFoundError struct{ msg string }

func (e *notFoundError) Error() string { return e.msg }

func (e *notFoundError) Is(target error) bool { return target == ErrNotFound }

// Conflicts.
var (
	ErrDuplicateAssignment = errors.New("member is already assigned to event")
	ErrDuplicateMember     = errors.New("member already exists")
	ErrDuplicateEvent      = errors.New("event already exists")
	ErrRoleAlreadyHeld     = errors.New("role already held by member")
	ErrNoRoles             = errors.New("at least one role is required")
)

// RoleError reports the role names an operation could not resolve.
type RoleError struct {
	Err   error
	Event models.Name
	Roles []string
}

func (e *RoleError) Error() string {
	return fmt.Sprintf("%v for event %s: %s", e.Err, e.Event, strings.Join(e.Roles, ", "))
}

func (e *RoleError) Unwrap() error { return e.Err }

func eventNotFound(name models.Name) error {
	return fmt.Errorf("%w: %s", ErrEventNotFound, name)
}

func memberNotFound(name models.Name) error {
	return fmt.Errorf("%w: %s", ErrMemberNotFound, name)
}

// AssignmentError ties a relationship failure to the event and member involved.
type AssignmentError struct {
	Err    error
	Event  models.Name
	Member models.Name
}

func (e *AssignmentError) Error() string {
	return fmt.Sprintf("%v: %s in %s", e.Err, e.Member, e.Event)
}

func (e *AssignmentError) Unwrap() error { return e.Err }
