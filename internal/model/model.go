// Package model is the live roster session: the engine, the view-state gate,
// the filtered lists the user sees and the listeners interested in changes.
// Presentation code reads snapshots from here and never mutates the engine
// directly.
package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ajitpratap0/clubroster/internal/models"
	"github.com/ajitpratap0/clubroster/internal/roster"
	"github.com/ajitpratap0/clubroster/internal/viewstate"
)

// ErrInvalidIndex is returned when a displayed-list index is out of range.
var ErrInvalidIndex = errors.New("invalid index")

// Change is delivered to listeners after a command has been applied.
type Change struct {
	Command string
	State   viewstate.State
}

// Listener receives change notifications.
type Listener func(Change)

// Session is the part of the model that survives between invocations.
type Session struct {
	State          string   `json:"state"`
	MemberKeywords []string `json:"member_keywords,omitempty"`
	EventKeywords  []string `json:"event_keywords,omitempty"`
	Focused        string   `json:"focused,omitempty"`
}

// Model ties the engine to what is on display.
type Model struct {
	engine         *roster.Engine
	gate           *viewstate.Gate
	memberKeywords []string
	eventKeywords  []string
	focused        models.Name
	listeners      map[int]Listener
	nextListener   int
}

// New returns a model over engine, showing the full member list.
func New(engine *roster.Engine) *Model {
	return &Model{
		engine:    engine,
		gate:      viewstate.NewGate(viewstate.Member),
		listeners: make(map[int]Listener),
	}
}

// Engine returns the roster engine.
func (m *Model) Engine() *roster.Engine { return m.engine }

// Gate returns the view-state gate.
func (m *Model) Gate() *viewstate.Gate { return m.gate }

// SetMemberFilter shows only members with a name word matching one of
// keywords. No keywords shows everyone.
func (m *Model) SetMemberFilter(keywords []string) { m.memberKeywords = cleanKeywords(keywords) }

// SetEventFilter is SetMemberFilter for events.
func (m *Model) SetEventFilter(keywords []string) { m.eventKeywords = cleanKeywords(keywords) }

// MemberFilter returns the active member keywords.
func (m *Model) MemberFilter() []string { return slices.Clone(m.memberKeywords) }

// EventFilter returns the active event keywords.
func (m *Model) EventFilter() []string { return slices.Clone(m.eventKeywords) }

func cleanKeywords(keywords []string) []string {
	var out []string
	for _, k := range keywords {
		out = append(out, strings.Fields(k)...)
	}
	return out
}

func matches(name models.Name, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	return slices.ContainsFunc(keywords, name.ContainsWord)
}

// FilteredMembers returns the member list as displayed.
func (m *Model) FilteredMembers() []models.Member {
	all := m.engine.Members()
	return slices.DeleteFunc(all, func(x models.Member) bool { return !matches(x.Name, m.memberKeywords) })
}

// FilteredEvents returns the event list as displayed.
func (m *Model) FilteredEvents() []models.Event {
	all := m.engine.Events()
	return slices.DeleteFunc(all, func(x models.Event) bool { return !matches(x.Name, m.eventKeywords) })
}

// MemberAt resolves a 1-based index against the displayed member list.
func (m *Model) MemberAt(index int) (models.Member, error) {
	list := m.FilteredMembers()
	if index < 1 || index > len(list) {
		return models.Member{}, fmt.Errorf("%w: member %d (list has %d)", ErrInvalidIndex, index, len(list))
	}
	return list[index-1], nil
}

// EventAt resolves a 1-based index against the displayed event list.
func (m *Model) EventAt(index int) (models.Event, error) {
	list := m.FilteredEvents()
	if index < 1 || index > len(list) {
		return models.Event{}, fmt.Errorf("%w: event %d (list has %d)", ErrInvalidIndex, index, len(list))
	}
	return list[index-1], nil
}

// Focus selects the event shown in the single-event view.
func (m *Model) Focus(name models.Name) { m.focused = name }

// Focused returns the event shown in the single-event view, if any.
func (m *Model) Focused() (models.Name, bool) { return m.focused, m.focused != "" }

// Session captures the view state for persisting.
func (m *Model) Session() Session {
	return Session{
		State:          m.gate.State().String(),
		MemberKeywords: m.MemberFilter(),
		EventKeywords:  m.EventFilter(),
		Focused:        string(m.focused),
	}
}

// ApplySession restores a captured view state. An unknown state resets the
// view to the member list.
func (m *Model) ApplySession(s Session) error {
	st, err := viewstate.ParseState(s.State)
	m.gate.Transition(st)
	m.SetMemberFilter(s.MemberKeywords)
	m.SetEventFilter(s.EventKeywords)
	m.focused = models.Name(s.Focused)
	return err
}

// Subscribe registers l and returns a function that removes it.
func (m *Model) Subscribe(l Listener) (unsubscribe func()) {
	id := m.nextListener
	m.nextListener++
	m.listeners[id] = l
	return func() { delete(m.listeners, id) }
}

// Notify delivers c to every listener, in subscription order.
func (m *Model) Notify(c Change) {
	ids := make([]int, 0, len(m.listeners))
	for id := range m.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		m.listeners[id](c)
	}
}
