package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// ErrInvalidWindow is returned when an event does not end after it starts.
var ErrInvalidWindow = errors.New("event must end after it starts")

// Event is a club event. Roles is the event's role vocabulary and is fixed
// once the event exists; Roster lists the names of the members assigned to it.
type Event struct {
	Name   Name
	From   time.Time
	To     time.Time
	Detail string
	Roles  []EventRole
	Roster []Name
}

// ParseDateTime parses an event time written in layout.
func ParseDateTime(layout, s string) (time.Time, error) {
	t, err := time.Parse(layout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: datetime %q must look like %s", ErrInvalidField, s, layout)
	}
	return t, nil
}

// NewEvent validates the fields and declares the role vocabulary. Roles
// repeated ignoring case are declared once.
func NewEvent(name string, from, to time.Time, detail string, roles []string) (Event, error) {
	n, err := ParseName(name)
	if err != nil {
		return Event{}, err
	}
	ev := Event{Name: n, From: from, To: to, Detail: strings.TrimSpace(detail)}
	for _, s := range roles {
		r, err := NewEventRole(s, n)
		if err != nil {
			return Event{}, err
		}
		if ev.HasRole(r) {
			continue
		}
		ev.Roles = append(ev.Roles, r)
	}
	if err := ev.Validate(); err != nil {
		return Event{}, err
	}
	return ev, nil
}

// Validate checks the event's own fields and that every vocabulary role is
// bound to this event.
func (e *Event) Validate() error {
	if _, err := ParseName(string(e.Name)); err != nil {
		return err
	}
	if !e.From.Before(e.To) {
		return fmt.Errorf("event %s: %w", e.Name, ErrInvalidWindow)
	}
	if err := ValidateDetail(e.Detail); err != nil {
		return fmt.Errorf("event %s: %w", e.Name, err)
	}
	for _, r := range e.Roles {
		if !r.BoundTo(e.Name) || r.Unassigned {
			return fmt.Errorf("%w: event %s declares foreign role %s", ErrInvalidField, e.Name, r)
		}
	}
	return nil
}

// IsSame reports whether e and o are the same event: same name and window.
func (e *Event) IsSame(o *Event) bool {
	return o != nil && e.Name.Equal(o.Name) && e.From.Equal(o.From) && e.To.Equal(o.To)
}

// HasRole reports whether r is part of the vocabulary.
func (e *Event) HasRole(r EventRole) bool {
	return slices.ContainsFunc(e.Roles, r.Equal)
}

// FindRole looks a vocabulary role up by name, ignoring case.
func (e *Event) FindRole(name string) (EventRole, bool) {
	for _, r := range e.Roles {
		if strings.EqualFold(r.Name, strings.TrimSpace(name)) {
			return r, true
		}
	}
	return EventRole{}, false
}

// RoleNames returns the vocabulary in declaration order.
func (e *Event) RoleNames() []string {
	out := make([]string, len(e.Roles))
	for i, r := range e.Roles {
		out[i] = r.Name
	}
	return out
}

// HasMember reports whether name is on the roster.
func (e *Event) HasMember(name Name) bool {
	return slices.ContainsFunc(e.Roster, name.Equal)
}

// Clone returns a deep copy.
func (e *Event) Clone() Event {
	c := *e
	c.Roles = slices.Clone(e.Roles)
	c.Roster = slices.Clone(e.Roster)
	return c
}
