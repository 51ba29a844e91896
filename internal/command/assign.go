package command

import (
	"fmt"
	"strings"

	"github.com/ajitpratap0/clubroster/internal/model"
	"github.com/ajitpratap0/clubroster/internal/models"
	"github.com/ajitpratap0/clubroster/internal/roster"
)

// Assign puts a member on an event's roster. Assignment commands address
// entities by name, so they are allowed from any view.
type Assign struct {
	Event  models.Name
	Member models.Name
	Roles  []string
}

func (c Assign) Name() string { return "assign" }

func (c Assign) Execute(m *model.Model) (Result, error) {
	a, err := m.Engine().Assign(c.Event, c.Member, c.Roles)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Feedback: fmt.Sprintf("Assigned %s to %s as %s", a.Member, a.Event, roleList(a.Roles)),
		Changed:  true,
	}, nil
}

// AssignRole gives an assigned member more roles for an event.
type AssignRole struct {
	Event  models.Name
	Member models.Name
	Roles  []string
}

func (c AssignRole) Name() string { return "assign-role" }

func (c AssignRole) Execute(m *model.Model) (Result, error) {
	a, err := m.Engine().AssignRole(c.Event, c.Member, c.Roles)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Feedback: fmt.Sprintf("%s now holds %s in %s", a.Member, roleList(a.Roles), a.Event),
		Changed:  true,
	}, nil
}

// Unassign removes a member from an event, or strips some of its roles.
type Unassign struct {
	Event  models.Name
	Member models.Name
	Roles  []string
}

func (c Unassign) Name() string { return "unassign" }

func (c Unassign) Execute(m *model.Model) (Result, error) {
	a, err := m.Engine().Unassign(c.Event, c.Member, c.Roles)
	if err != nil {
		return Result{}, err
	}
	return Result{Feedback: unassignFeedback(a), Changed: true}, nil
}

// UnassignRole strips roles a member holds for an event, keeping it on the roster.
type UnassignRole struct {
	Event  models.Name
	Member models.Name
	Roles  []string
}

func (c UnassignRole) Name() string { return "unassign-role" }

func (c UnassignRole) Execute(m *model.Model) (Result, error) {
	a, err := m.Engine().UnassignRole(c.Event, c.Member, c.Roles)
	if err != nil {
		return Result{}, err
	}
	return Result{Feedback: unassignFeedback(a), Changed: true}, nil
}

func unassignFeedback(a roster.Assignment) string {
	if a.Removed {
		return fmt.Sprintf("Unassigned %s from %s", a.Member, a.Event)
	}
	if len(a.Changed) == 0 {
		return fmt.Sprintf("%s holds none of those roles in %s; still %s", a.Member, a.Event, roleList(a.Roles))
	}
	return fmt.Sprintf("Removed %s from %s in %s; now %s", roleList(a.Changed), a.Member, a.Event, roleList(a.Roles))
}

func roleList(roles []models.EventRole) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.Name
	}
	return strings.Join(names, ", ")
}
