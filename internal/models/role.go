package models

import (
	"fmt"
	"strings"
)

// UnassignedRoleName is the reserved name of the participant role: a member
// on an event's roster who holds no named role for it.
const UnassignedRoleName = "Unassigned"

func parseRoleName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if err := checkRoleName(s); err != nil {
		return "", err
	}
	return s, nil
}

func checkRoleName(s string) error {
	return checkField("role", s, roleRule,
		fmt.Sprintf("must be 1-%d letters, digits or spaces", MaxRoleLength))
}

// MemberRole is a club-wide role such as "President". Roles compare
// case-insensitively.
type MemberRole string

// NewMemberRole validates name and returns the role.
func NewMemberRole(name string) (MemberRole, error) {
	s, err := parseRoleName(name)
	if err != nil {
		return "", err
	}
	return MemberRole(s), nil
}

// Key is the case-folded role name.
func (r MemberRole) Key() string { return strings.ToLower(string(r)) }

// Equal compares role names ignoring case.
func (r MemberRole) Equal(o MemberRole) bool { return strings.EqualFold(string(r), string(o)) }

func (r MemberRole) String() string { return string(r) }

// Validate checks the role name as stored.
func (r MemberRole) Validate() error { return checkRoleName(string(r)) }

// EventRole is a role bound to exactly one event. The participant variant
// (Unassigned set) marks roster membership without a named role.
type EventRole struct {
	Name       string
	Event      Name
	Unassigned bool
}

// EventRoleKey is the comparable identity of an EventRole.
type EventRoleKey struct {
	Role       string
	Event      string
	Unassigned bool
}

// NewEventRole validates name and binds the role to event. The reserved
// participant name cannot be declared.
func NewEventRole(name string, event Name) (EventRole, error) {
	s, err := parseRoleName(name)
	if err != nil {
		return EventRole{}, err
	}
	if strings.EqualFold(s, UnassignedRoleName) {
		return EventRole{}, fmt.Errorf("%w: role %q is reserved", ErrInvalidField, s)
	}
	return EventRole{Name: s, Event: event}, nil
}

// ParticipantRole returns the participant role for event.
func ParticipantRole(event Name) EventRole {
	return EventRole{Name: UnassignedRoleName, Event: event, Unassigned: true}
}

// Key returns the identity of r. Role names fold case like MemberRole.
func (r EventRole) Key() EventRoleKey {
	return EventRoleKey{Role: strings.ToLower(r.Name), Event: r.Event.Key(), Unassigned: r.Unassigned}
}

// Equal reports whether r and o are the same role of the same event.
func (r EventRole) Equal(o EventRole) bool { return r.Key() == o.Key() }

// BoundTo reports whether r belongs to event.
func (r EventRole) BoundTo(event Name) bool { return r.Event.Equal(event) }

// Rebind returns r pointed at event.
func (r EventRole) Rebind(event Name) EventRole {
	r.Event = event
	return r
}

func (r EventRole) String() string {
	return fmt.Sprintf("%s@%s", r.Name, r.Event)
}
