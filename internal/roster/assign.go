package roster

import (
	"slices"
	"strings"

	"github.com/ajitpratap0/clubroster/internal/models"
)

// Assignment describes a member's standing in one event after an assignment
// operation.
type Assignment struct {
	Event  models.Name
	Member models.Name
	// Roles the member holds for the event afterwards.
	Roles []models.EventRole
	// Changed lists the roles added or removed by the operation.
	Changed []models.EventRole
	// Removed is set when the member left the roster.
	Removed bool
}

// resolveRoles maps requested names onto the event's vocabulary. Names are
// matched ignoring case and duplicates collapse. Unknown names are returned
// in request order.
func resolveRoles(ev *models.Event, names []string) (found []models.EventRole, missing []string) {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		r, ok := ev.FindRole(name)
		if !ok {
			if !slices.ContainsFunc(missing, func(s string) bool { return strings.EqualFold(s, name) }) {
				missing = append(missing, name)
			}
			continue
		}
		if !slices.ContainsFunc(found, r.Equal) {
			found = append(found, r)
		}
	}
	return found, missing
}

func hasRoleNames(names []string) bool {
	return slices.ContainsFunc(names, func(s string) bool { return strings.TrimSpace(s) != "" })
}

func (e *Engine) lookupPair(event, member models.Name) (*models.Event, *models.Member, error) {
	ev, ok := e.events[event.Key()]
	if !ok {
		return nil, nil, eventNotFound(event)
	}
	m, ok := e.members[member.Key()]
	if !ok {
		return nil, nil, memberNotFound(member)
	}
	return ev, m, nil
}

func assignment(ev *models.Event, m *models.Member, changed []models.EventRole) Assignment {
	return Assignment{
		Event:   ev.Name,
		Member:  m.Name,
		Roles:   m.RolesFor(ev.Name),
		Changed: slices.Clone(changed),
	}
}

// Assign puts member on event's roster holding the requested roles. With no
// roles the member joins as a participant. The member must not already be on
// the roster.
func (e *Engine) Assign(event, member models.Name, roles []string) (Assignment, error) {
	ev, ok := e.events[event.Key()]
	if !ok {
		return Assignment{}, eventNotFound(event)
	}
	resolved, missing := resolveRoles(ev, roles)
	if len(missing) > 0 {
		return Assignment{}, &RoleError{Err: ErrEventRoleNotFound, Event: ev.Name, Roles: missing}
	}
	m, ok := e.members[member.Key()]
	if !ok {
		return Assignment{}, memberNotFound(member)
	}
	if ev.HasMember(m.Name) {
		return Assignment{}, &AssignmentError{Err: ErrDuplicateAssignment, Event: ev.Name, Member: m.Name}
	}
	if len(resolved) == 0 {
		resolved = []models.EventRole{models.ParticipantRole(ev.Name)}
	}

	m.EventRoles = append(m.EventRoles, resolved...)
	ev.Roster = append(ev.Roster, m.Name)
	return assignment(ev, m, resolved), nil
}

// AssignRole gives an assigned member additional named roles for event. The
// participant role is dropped once the member holds a named role.
func (e *Engine) AssignRole(event, member models.Name, roles []string) (Assignment, error) {
	if !hasRoleNames(roles) {
		return Assignment{}, ErrNoRoles
	}
	ev, m, err := e.lookupPair(event, member)
	if err != nil {
		return Assignment{}, err
	}
	resolved, missing := resolveRoles(ev, roles)
	if len(missing) > 0 {
		return Assignment{}, &RoleError{Err: ErrEventRoleNotFound, Event: ev.Name, Roles: missing}
	}
	if !ev.HasMember(m.Name) {
		return Assignment{}, &AssignmentError{Err: ErrNotAssigned, Event: ev.Name, Member: m.Name}
	}
	var held []string
	for _, r := range resolved {
		if m.HasEventRole(r) {
			held = append(held, r.Name)
		}
	}
	if len(held) > 0 {
		return Assignment{}, &RoleError{Err: ErrRoleAlreadyHeld, Event: ev.Name, Roles: held}
	}

	participant := models.ParticipantRole(ev.Name)
	m.EventRoles = slices.DeleteFunc(m.EventRoles, participant.Equal)
	m.EventRoles = append(m.EventRoles, resolved...)
	return assignment(ev, m, resolved), nil
}

// Unassign removes member from event. With no roles the whole relationship
// is torn down: the member leaves the roster and loses every role for the
// event. With roles, only the named roles the member holds are stripped and
// the member stays on the roster; names the member does not hold are
// ignored. A member left without any role for the event falls back to the
// participant role.
func (e *Engine) Unassign(event, member models.Name, roles []string) (Assignment, error) {
	ev, m, err := e.lookupPair(event, member)
	if err != nil {
		return Assignment{}, err
	}
	if !ev.HasMember(m.Name) {
		return Assignment{}, &AssignmentError{Err: ErrNotAssigned, Event: ev.Name, Member: m.Name}
	}

	if !hasRoleNames(roles) {
		removed := m.RolesFor(ev.Name)
		m.EventRoles = slices.DeleteFunc(m.EventRoles, func(r models.EventRole) bool { return r.BoundTo(ev.Name) })
		ev.Roster = slices.DeleteFunc(ev.Roster, m.Name.Equal)
		a := assignment(ev, m, removed)
		a.Removed = true
		return a, nil
	}

	resolved, _ := resolveRoles(ev, roles)
	var stripped []models.EventRole
	for _, r := range resolved {
		if m.HasEventRole(r) {
			stripped = append(stripped, r)
		}
	}
	stripRoles(ev, m, stripped)
	return assignment(ev, m, stripped), nil
}

// UnassignRole strips the named roles from member. Every name must be part of
// the event's vocabulary and held by the member. The member stays on the
// roster, as a participant if no named role is left.
func (e *Engine) UnassignRole(event, member models.Name, roles []string) (Assignment, error) {
	if !hasRoleNames(roles) {
		return Assignment{}, ErrNoRoles
	}
	ev, m, err := e.lookupPair(event, member)
	if err != nil {
		return Assignment{}, err
	}
	resolved, missing := resolveRoles(ev, roles)
	if len(missing) > 0 {
		return Assignment{}, &RoleError{Err: ErrEventRoleNotFound, Event: ev.Name, Roles: missing}
	}
	var notHeld []string
	for _, r := range resolved {
		if !m.HasEventRole(r) {
			notHeld = append(notHeld, r.Name)
		}
	}
	if len(notHeld) > 0 {
		return Assignment{}, &RoleError{Err: ErrRoleNotHeld, Event: ev.Name, Roles: notHeld}
	}

	stripRoles(ev, m, resolved)
	return assignment(ev, m, resolved), nil
}

// stripRoles removes roles from m and restores the participant role when m
// is on ev's roster without any role left for it.
func stripRoles(ev *models.Event, m *models.Member, roles []models.EventRole) {
	m.EventRoles = slices.DeleteFunc(m.EventRoles, func(r models.EventRole) bool {
		return slices.ContainsFunc(roles, r.Equal)
	})
	if ev.HasMember(m.Name) && len(m.RolesFor(ev.Name)) == 0 {
		m.EventRoles = append(m.EventRoles, models.ParticipantRole(ev.Name))
	}
}
