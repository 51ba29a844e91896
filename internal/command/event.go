package command

import (
	"fmt"
	"strings"

	"github.com/ajitpratap0/clubroster/internal/model"
	"github.com/ajitpratap0/clubroster/internal/models"
	"github.com/ajitpratap0/clubroster/internal/roster"
	"github.com/ajitpratap0/clubroster/internal/viewstate"
)

// AddEvent adds a new event with its role vocabulary and shows the event list.
type AddEvent struct {
	Event models.Event
}

func (c AddEvent) Name() string { return "add-event" }

func (c AddEvent) Execute(m *model.Model) (Result, error) {
	added, err := m.Engine().AddEvent(c.Event)
	if err != nil {
		return Result{}, err
	}
	m.Gate().Transition(viewstate.Event)
	return Result{Feedback: fmt.Sprintf("New event added: %s", added.Name), Changed: true}, nil
}

// EditEvent edits the event at Index of the displayed event list. The role
// vocabulary and roster are kept.
type EditEvent struct {
	Index int
	Edit  roster.EventEdit
}

func (c EditEvent) Name() string { return "edit-event" }

func (c EditEvent) Execute(m *model.Model) (Result, error) {
	if err := m.Gate().Require(viewstate.Event); err != nil {
		return Result{}, err
	}
	target, err := m.EventAt(c.Index)
	if err != nil {
		return Result{}, err
	}
	edited, err := m.Engine().EditEvent(target.Name, c.Edit)
	if err != nil {
		return Result{}, err
	}
	if focused, ok := m.Focused(); ok && focused.Equal(target.Name) {
		m.Focus(edited.Name)
	}
	return Result{Feedback: fmt.Sprintf("Edited event: %s", edited.Name), Changed: true}, nil
}

// DeleteEvent deletes the event at Index of the displayed event list and
// strips its roles from every member.
type DeleteEvent struct {
	Index int
}

func (c DeleteEvent) Name() string { return "delete-event" }

func (c DeleteEvent) Execute(m *model.Model) (Result, error) {
	if err := m.Gate().Require(viewstate.Event); err != nil {
		return Result{}, err
	}
	target, err := m.EventAt(c.Index)
	if err != nil {
		return Result{}, err
	}
	deleted, err := m.Engine().DeleteEvent(target.Name)
	if err != nil {
		return Result{}, err
	}
	if focused, ok := m.Focused(); ok && focused.Equal(deleted.Name) {
		m.Focus("")
	}
	return Result{Feedback: fmt.Sprintf("Deleted event: %s", deleted.Name), Changed: true}, nil
}

// FindEvent filters the event list by name keywords. It only applies while
// the event list is on display.
type FindEvent struct {
	Keywords []string
}

func (c FindEvent) Name() string { return "find-event" }

func (c FindEvent) Execute(m *model.Model) (Result, error) {
	if err := m.Gate().Require(viewstate.Event); err != nil {
		return Result{}, err
	}
	if len(c.Keywords) == 0 {
		return Result{}, fmt.Errorf("find-event: at least one keyword is required")
	}
	m.SetEventFilter(c.Keywords)
	n := len(m.FilteredEvents())
	return Result{Feedback: fmt.Sprintf("%d events listed for %q", n, strings.Join(c.Keywords, " "))}, nil
}

// ListEvents clears the event filter and shows every event.
type ListEvents struct{}

func (c ListEvents) Name() string { return "list-events" }

func (c ListEvents) Execute(m *model.Model) (Result, error) {
	m.SetEventFilter(nil)
	m.Gate().Transition(viewstate.Event)
	return Result{Feedback: fmt.Sprintf("Listed all %d events", len(m.FilteredEvents()))}, nil
}

// ViewEvent shows one event with its roster.
type ViewEvent struct {
	Event models.Name
}

func (c ViewEvent) Name() string { return "view-event" }

func (c ViewEvent) Execute(m *model.Model) (Result, error) {
	ev, err := m.Engine().Event(c.Event)
	if err != nil {
		return Result{}, err
	}
	m.Focus(ev.Name)
	m.Gate().Transition(viewstate.SingleEvent)
	return Result{Feedback: fmt.Sprintf("Viewing event: %s (%d on roster)", ev.Name, len(ev.Roster))}, nil
}
