package roster

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ajitpratap0/clubroster/internal/models"
)

// ErrIntegrityViolation is wrapped by *IntegrityError.
var ErrIntegrityViolation = errors.New("roster integrity violation")

// Problem descriptions used in member violations.
const (
	ProblemEventMissing   = "event does not exist"
	ProblemNotOnRoster    = "member not in event roster"
	ProblemRoleUndefined  = "event role not defined in event"
	ProblemNoRoleForEvent = "member on event roster holds no role for it"
	ProblemDuplicateRole  = "event role held more than once"
	ProblemMixedRoles     = "participant role held alongside a named role"
)

// MemberViolation groups every problem found for one member.
type MemberViolation struct {
	Member   models.Name
	Problems []string
}

func (v MemberViolation) String() string {
	return fmt.Sprintf("member %s: %s", v.Member, strings.Join(v.Problems, "; "))
}

// IntegrityError is returned when a loaded graph is inconsistent. It lists
// every problem at once: per-member problems in Members, and problems that
// belong to no single member (duplicate names, dangling roster entries) in
// Graph.
type IntegrityError struct {
	Members []MemberViolation
	Graph   []string
}

func (e *IntegrityError) Error() string {
	lines := make([]string, 0, len(e.Graph)+len(e.Members))
	lines = append(lines, e.Graph...)
	for _, v := range e.Members {
		lines = append(lines, v.String())
	}
	return fmt.Sprintf("%v: %s", ErrIntegrityViolation, strings.Join(lines, "; "))
}

func (e *IntegrityError) Unwrap() error { return ErrIntegrityViolation }

// Count is the total number of problems reported.
func (e *IntegrityError) Count() int {
	n := len(e.Graph)
	for _, v := range e.Members {
		n += len(v.Problems)
	}
	return n
}

// ValidateGraph checks the relationship invariant over a whole graph: for
// every event role a member holds, the event exists, the member is on its
// roster and, unless the role is the participant role, the event declares
// the role. A member holds each role once and never holds the participant
// role next to a named one. It also checks the converse direction (every
// roster entry names an existing member holding a role for the event) and
// that names are unique. It returns nil or an *IntegrityError; it never stops
// at the first problem.
func ValidateGraph(members []models.Member, events []models.Event) error {
	var ie IntegrityError

	eventsByKey := make(map[string]*models.Event, len(events))
	for i := range events {
		ev := &events[i]
		if _, dup := eventsByKey[ev.Name.Key()]; dup {
			ie.Graph = append(ie.Graph, fmt.Sprintf("duplicate event %s", ev.Name))
			continue
		}
		eventsByKey[ev.Name.Key()] = ev
		for _, r := range ev.Roles {
			if !r.BoundTo(ev.Name) || r.Unassigned {
				ie.Graph = append(ie.Graph, fmt.Sprintf("event %s declares foreign role %s", ev.Name, r))
			}
		}
	}

	membersByKey := make(map[string]*models.Member, len(members))
	for i := range members {
		m := &members[i]
		if _, dup := membersByKey[m.Name.Key()]; dup {
			ie.Graph = append(ie.Graph, fmt.Sprintf("duplicate member %s", m.Name))
			continue
		}
		membersByKey[m.Name.Key()] = m
	}

	for i := range events {
		ev := &events[i]
		for _, n := range ev.Roster {
			if _, ok := membersByKey[n.Key()]; !ok {
				ie.Graph = append(ie.Graph, fmt.Sprintf("event %s roster references unknown member %s", ev.Name, n))
			}
		}
	}

	for i := range members {
		m := &members[i]
		var problems []string
		seen := make(map[models.EventRoleKey]bool, len(m.EventRoles))
		for _, r := range m.EventRoles {
			if seen[r.Key()] {
				problems = append(problems, fmt.Sprintf("role %s for %s: %s", r.Name, r.Event, ProblemDuplicateRole))
				continue
			}
			seen[r.Key()] = true
			ev, ok := eventsByKey[r.Event.Key()]
			if !ok {
				problems = append(problems, fmt.Sprintf("role %s for %s: %s", r.Name, r.Event, ProblemEventMissing))
				continue
			}
			if !ev.HasMember(m.Name) {
				problems = append(problems, fmt.Sprintf("role %s for %s: %s", r.Name, r.Event, ProblemNotOnRoster))
			}
			if !r.Unassigned && !ev.HasRole(r) {
				problems = append(problems, fmt.Sprintf("role %s for %s: %s", r.Name, r.Event, ProblemRoleUndefined))
			}
		}
		for j := range events {
			ev := &events[j]
			held := m.RolesFor(ev.Name)
			if ev.HasMember(m.Name) && len(held) == 0 {
				problems = append(problems, fmt.Sprintf("event %s: %s", ev.Name, ProblemNoRoleForEvent))
			}
			if len(held) > 1 && slices.ContainsFunc(held, func(r models.EventRole) bool { return r.Unassigned }) {
				problems = append(problems, fmt.Sprintf("event %s: %s", ev.Name, ProblemMixedRoles))
			}
		}
		if len(problems) > 0 {
			ie.Members = append(ie.Members, MemberViolation{Member: m.Name, Problems: problems})
		}
	}

	if len(ie.Members) == 0 && len(ie.Graph) == 0 {
		return nil
	}
	return &ie
}
