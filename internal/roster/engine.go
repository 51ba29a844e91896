// Package roster keeps members, events and the role assignments between them
// consistent. Members and events live in an arena keyed by name; a roster
// refers to members by name and a member's event roles refer to events by
// name, so no live object is shared between the two sides.
package roster

import (
	"fmt"
	"slices"
	"time"

	"github.com/ajitpratap0/clubroster/internal/models"
)

// Graph is a plain copy of every member and event, in insertion order. It is
// what storage reads and writes and what Snapshot returns.
type Graph struct {
	Members []models.Member
	Events  []models.Event
}

// Clone returns a deep copy of g.
func (g Graph) Clone() Graph {
	out := Graph{
		Members: make([]models.Member, len(g.Members)),
		Events:  make([]models.Event, len(g.Events)),
	}
	for i := range g.Members {
		out.Members[i] = g.Members[i].Clone()
	}
	for i := range g.Events {
		out.Events[i] = g.Events[i].Clone()
	}
	return out
}

// Engine owns the live member/event graph. It is not safe for concurrent
// use: commands are applied one at a time.
//
// Every mutating method checks all of its preconditions before touching the
// graph, so a returned error always means nothing changed.
type Engine struct {
	members     map[string]*models.Member
	memberOrder []string
	events      map[string]*models.Event
	eventOrder  []string
}

// New returns an empty engine.
func New() *Engine {
	return &Engine{
		members: make(map[string]*models.Member),
		events:  make(map[string]*models.Event),
	}
}

// Load validates g and returns an engine holding a copy of it. An
// inconsistent graph is rejected as a whole with an *IntegrityError.
func Load(g Graph) (*Engine, error) {
	if err := ValidateGraph(g.Members, g.Events); err != nil {
		return nil, err
	}
	e := New()
	e.Restore(g)
	return e, nil
}

// Snapshot returns a deep copy of the whole graph.
func (e *Engine) Snapshot() Graph {
	return Graph{Members: e.Members(), Events: e.Events()}
}

// Restore replaces the graph with a copy of g without validating it. It is
// meant for snapshots taken from this engine or graphs already validated.
func (e *Engine) Restore(g Graph) {
	e.Clear()
	for i := range g.Members {
		m := g.Members[i].Clone()
		e.members[m.Name.Key()] = &m
		e.memberOrder = append(e.memberOrder, m.Name.Key())
	}
	for i := range g.Events {
		ev := g.Events[i].Clone()
		e.events[ev.Name.Key()] = &ev
		e.eventOrder = append(e.eventOrder, ev.Name.Key())
	}
}

// Clear removes every member and event.
func (e *Engine) Clear() {
	e.members = make(map[string]*models.Member)
	e.memberOrder = nil
	e.events = make(map[string]*models.Event)
	e.eventOrder = nil
}

// Verify re-runs the load-time integrity check against the live graph.
func (e *Engine) Verify() error {
	g := e.Snapshot()
	return ValidateGraph(g.Members, g.Events)
}

// Members returns copies of all members in insertion order.
func (e *Engine) Members() []models.Member {
	out := make([]models.Member, 0, len(e.memberOrder))
	for _, k := range e.memberOrder {
		out = append(out, e.members[k].Clone())
	}
	return out
}

// Events returns copies of all events in insertion order.
func (e *Engine) Events() []models.Event {
	out := make([]models.Event, 0, len(e.eventOrder))
	for _, k := range e.eventOrder {
		out = append(out, e.events[k].Clone())
	}
	return out
}

// Member returns a copy of the named member.
func (e *Engine) Member(name models.Name) (models.Member, error) {
	m, ok := e.members[name.Key()]
	if !ok {
		return models.Member{}, memberNotFound(name)
	}
	return m.Clone(), nil
}

// Event returns a copy of the named event.
func (e *Engine) Event(name models.Name) (models.Event, error) {
	ev, ok := e.events[name.Key()]
	if !ok {
		return models.Event{}, eventNotFound(name)
	}
	return ev.Clone(), nil
}

// Roster returns copies of the members assigned to the named event, in
// assignment order.
func (e *Engine) Roster(event models.Name) ([]models.Member, error) {
	ev, ok := e.events[event.Key()]
	if !ok {
		return nil, eventNotFound(event)
	}
	out := make([]models.Member, 0, len(ev.Roster))
	for _, n := range ev.Roster {
		if m, ok := e.members[n.Key()]; ok {
			out = append(out, m.Clone())
		}
	}
	return out, nil
}

// AddMember inserts m. The member starts with no event roles.
func (e *Engine) AddMember(m models.Member) (models.Member, error) {
	if err := m.Validate(); err != nil {
		return models.Member{}, err
	}
	if _, ok := e.members[m.Name.Key()]; ok {
		return models.Member{}, fmt.Errorf("%w: %s", ErrDuplicateMember, m.Name)
	}
	stored := m.Clone()
	stored.EventRoles = nil
	e.members[stored.Name.Key()] = &stored
	e.memberOrder = append(e.memberOrder, stored.Name.Key())
	return stored.Clone(), nil
}

// AddEvent inserts ev with its role vocabulary and an empty roster.
func (e *Engine) AddEvent(ev models.Event) (models.Event, error) {
	if err := ev.Validate(); err != nil {
		return models.Event{}, err
	}
	if _, ok := e.events[ev.Name.Key()]; ok {
		return models.Event{}, fmt.Errorf("%w: %s", ErrDuplicateEvent, ev.Name)
	}
	stored := ev.Clone()
	stored.Roster = nil
	e.events[stored.Name.Key()] = &stored
	e.eventOrder = append(e.eventOrder, stored.Name.Key())
	return stored.Clone(), nil
}

// MemberEdit lists the fields to change; nil fields are kept.
type MemberEdit struct {
	Name  *models.Name
	Phone *string
	Email *string
	Roles *[]models.MemberRole
}

// EditMember replaces the named member's fields. Event roles are carried
// over, and a rename is propagated to every roster that lists the member.
func (e *Engine) EditMember(target models.Name, edit MemberEdit) (models.Member, error) {
	cur, ok := e.members[target.Key()]
	if !ok {
		return models.Member{}, memberNotFound(target)
	}
	next := cur.Clone()
	if edit.Name != nil {
		next.Name = *edit.Name
	}
	if edit.Phone != nil {
		next.Phone = *edit.Phone
	}
	if edit.Email != nil {
		next.Email = *edit.Email
	}
	if edit.Roles != nil {
		next.Roles = slices.Clone(*edit.Roles)
	}
	if err := next.Validate(); err != nil {
		return models.Member{}, err
	}
	renamed := next.Name.Key() != target.Key()
	if _, taken := e.members[next.Name.Key()]; renamed && taken {
		return models.Member{}, fmt.Errorf("%w: %s", ErrDuplicateMember, next.Name)
	}

	oldKey := target.Key()
	if renamed {
		delete(e.members, oldKey)
		e.memberOrder[slices.Index(e.memberOrder, oldKey)] = next.Name.Key()
	}
	e.members[next.Name.Key()] = &next
	if cur.Name != next.Name {
		for _, ev := range e.events {
			for i, n := range ev.Roster {
				if n.Key() == oldKey {
					ev.Roster[i] = next.Name
				}
			}
		}
	}
	return next.Clone(), nil
}

// EventEdit lists the fields to change; nil fields are kept. The role
// vocabulary cannot be edited.
type EventEdit struct {
	Name   *models.Name
	From   *time.Time
	To     *time.Time
	Detail *string
}

// EditEvent replaces the named event's fields, keeping its role vocabulary
// and roster. On a rename every vocabulary role, and every role held by a
// member for this event, is re-pointed at the new name.
func (e *Engine) EditEvent(target models.Name, edit EventEdit) (models.Event, error) {
	cur, ok := e.events[target.Key()]
	if !ok {
		return models.Event{}, eventNotFound(target)
	}
	next := cur.Clone()
	if edit.Name != nil {
		next.Name = *edit.Name
	}
	if edit.From != nil {
		next.From = *edit.From
	}
	if edit.To != nil {
		next.To = *edit.To
	}
	if edit.Detail != nil {
		next.Detail = *edit.Detail
	}
	for i := range next.Roles {
		next.Roles[i] = next.Roles[i].Rebind(next.Name)
	}
	if err := next.Validate(); err != nil {
		return models.Event{}, err
	}
	renamed := next.Name.Key() != target.Key()
	if other, taken := e.events[next.Name.Key()]; renamed && taken {
		return models.Event{}, fmt.Errorf("%w: %s", ErrDuplicateEvent, other.Name)
	}

	oldKey := target.Key()
	if renamed {
		delete(e.events, oldKey)
		e.eventOrder[slices.Index(e.eventOrder, oldKey)] = next.Name.Key()
	}
	e.events[next.Name.Key()] = &next
	for _, n := range next.Roster {
		m := e.members[n.Key()]
		if m == nil {
			continue
		}
		for i, r := range m.EventRoles {
			if r.Event.Key() == oldKey {
				m.EventRoles[i] = r.Rebind(next.Name)
			}
		}
	}
	return next.Clone(), nil
}

// DeleteMember removes the named member and sweeps it off every roster.
func (e *Engine) DeleteMember(name models.Name) (models.Member, error) {
	m, ok := e.members[name.Key()]
	if !ok {
		return models.Member{}, memberNotFound(name)
	}
	for _, ev := range e.events {
		ev.Roster = slices.DeleteFunc(ev.Roster, name.Equal)
	}
	delete(e.members, name.Key())
	e.memberOrder = slices.DeleteFunc(e.memberOrder, func(k string) bool { return k == name.Key() })
	return m.Clone(), nil
}

// DeleteEvent removes the named event and strips its roles from every member.
func (e *Engine) DeleteEvent(name models.Name) (models.Event, error) {
	ev, ok := e.events[name.Key()]
	if !ok {
		return models.Event{}, eventNotFound(name)
	}
	for _, m := range e.members {
		m.EventRoles = slices.DeleteFunc(m.EventRoles, func(r models.EventRole) bool {
			return r.BoundTo(name)
		})
	}
	delete(e.events, name.Key())
	e.eventOrder = slices.DeleteFunc(e.eventOrder, func(k string) bool { return k == name.Key() })
	return ev.Clone(), nil
}
