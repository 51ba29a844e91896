package store

import (
	"fmt"
	"time"

	"github.com/ajitpratap0/clubroster/internal/models"
	"github.com/ajitpratap0/clubroster/internal/roster"
)

// FormatVersion is written into every document. Version 1 stored event
// times to the minute without a zone; version 2 stores RFC 3339 with
// nanoseconds and offset.
const FormatVersion = 2

const (
	timeLayout   = time.RFC3339Nano
	timeLayoutV1 = "2006-01-02T15:04"
)

// Document is the persisted representation of a roster graph. Events refer
// to their roster members by name and declare their vocabulary as plain role
// names; members list the event roles they hold.
type Document struct {
	Version int            `json:"version" yaml:"version"`
	Members []MemberRecord `json:"members" yaml:"members"`
	Events  []EventRecord  `json:"events" yaml:"events"`
}

// MemberRecord is a persisted member.
type MemberRecord struct {
	Name       string            `json:"name" yaml:"name"`
	Phone      string            `json:"phone" yaml:"phone"`
	Email      string            `json:"email" yaml:"email"`
	Roles      []string          `json:"roles,omitempty" yaml:"roles,omitempty"`
	EventRoles []EventRoleRecord `json:"event_roles,omitempty" yaml:"event_roles,omitempty"`
}

// EventRoleRecord is a persisted event role held by a member.
type EventRoleRecord struct {
	Event      string `json:"event" yaml:"event"`
	Role       string `json:"role" yaml:"role"`
	Unassigned bool   `json:"unassigned,omitempty" yaml:"unassigned,omitempty"`
}

// EventRecord is a persisted event.
type EventRecord struct {
	Name   string   `json:"name" yaml:"name"`
	From   string   `json:"from" yaml:"from"`
	To     string   `json:"to" yaml:"to"`
	Detail string   `json:"detail,omitempty" yaml:"detail,omitempty"`
	Roles  []string `json:"roles,omitempty" yaml:"roles,omitempty"`
	Roster []string `json:"roster,omitempty" yaml:"roster,omitempty"`
}

// EncodeGraph converts g into its persisted form.
func EncodeGraph(g roster.Graph) Document {
	doc := Document{
		Version: FormatVersion,
		Members: make([]MemberRecord, 0, len(g.Members)),
		Events:  make([]EventRecord, 0, len(g.Events)),
	}
	for i := range g.Members {
		m := &g.Members[i]
		rec := MemberRecord{Name: string(m.Name), Phone: m.Phone, Email: m.Email}
		for _, r := range m.Roles {
			rec.Roles = append(rec.Roles, string(r))
		}
		for _, r := range m.EventRoles {
			rec.EventRoles = append(rec.EventRoles, EventRoleRecord{
				Event:      string(r.Event),
				Role:       r.Name,
				Unassigned: r.Unassigned,
			})
		}
		doc.Members = append(doc.Members, rec)
	}
	for i := range g.Events {
		ev := &g.Events[i]
		rec := EventRecord{
			Name:   string(ev.Name),
			From:   ev.From.Format(timeLayout),
			To:     ev.To.Format(timeLayout),
			Detail: ev.Detail,
			Roles:  ev.RoleNames(),
		}
		for _, n := range ev.Roster {
			rec.Roster = append(rec.Roster, string(n))
		}
		doc.Events = append(doc.Events, rec)
	}
	return doc
}

// DecodeDocument rebuilds a graph from doc, validating every field. It does
// not check relationships; that is roster.ValidateGraph's job.
func DecodeDocument(doc Document) (roster.Graph, error) {
	if doc.Version > FormatVersion {
		return roster.Graph{}, fmt.Errorf("unsupported roster format version %d", doc.Version)
	}
	var g roster.Graph
	for i, rec := range doc.Members {
		m, err := models.NewMember(rec.Name, rec.Phone, rec.Email, rec.Roles)
		if err != nil {
			return roster.Graph{}, fmt.Errorf("member #%d: %w", i+1, err)
		}
		for _, rr := range rec.EventRoles {
			r, err := decodeEventRole(rr)
			if err != nil {
				return roster.Graph{}, fmt.Errorf("member %s: %w", m.Name, err)
			}
			m.EventRoles = append(m.EventRoles, r)
		}
		g.Members = append(g.Members, m)
	}
	for i, rec := range doc.Events {
		from, err := parseTime(rec.From)
		if err != nil {
			return roster.Graph{}, fmt.Errorf("event #%d: bad start time %q: %w", i+1, rec.From, err)
		}
		to, err := parseTime(rec.To)
		if err != nil {
			return roster.Graph{}, fmt.Errorf("event #%d: bad end time %q: %w", i+1, rec.To, err)
		}
		ev, err := models.NewEvent(rec.Name, from, to, rec.Detail, rec.Roles)
		if err != nil {
			return roster.Graph{}, fmt.Errorf("event #%d: %w", i+1, err)
		}
		for _, s := range rec.Roster {
			n, err := models.ParseName(s)
			if err != nil {
				return roster.Graph{}, fmt.Errorf("event %s roster: %w", ev.Name, err)
			}
			ev.Roster = append(ev.Roster, n)
		}
		g.Events = append(g.Events, ev)
	}
	return g, nil
}

// parseTime reads a persisted event time in the current layout, falling back
// to the minute-precision layout of version 1 documents.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err == nil {
		return t, nil
	}
	if legacy, lerr := time.Parse(timeLayoutV1, s); lerr == nil {
		return legacy, nil
	}
	return time.Time{}, err
}

func decodeEventRole(rec EventRoleRecord) (models.EventRole, error) {
	event, err := models.ParseName(rec.Event)
	if err != nil {
		return models.EventRole{}, err
	}
	if rec.Unassigned {
		return models.ParticipantRole(event), nil
	}
	return models.NewEventRole(rec.Role, event)
}
