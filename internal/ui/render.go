package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/ajitpratap0/clubroster/internal/model"
	"github.com/ajitpratap0/clubroster/internal/models"
	"github.com/ajitpratap0/clubroster/internal/viewstate"
)

// Renderer writes the model's current view to an output stream.
type Renderer struct {
	out        io.Writer
	dateFormat string
	styles     Styles
}

// NewRenderer creates a renderer writing to out. dateFormat is a time layout
// used for event windows.
func NewRenderer(out io.Writer, color bool, dateFormat string) *Renderer {
	return &Renderer{out: out, dateFormat: dateFormat, styles: NewStyles(out, color)}
}

// Feedback prints a command's result message.
func (r *Renderer) Feedback(msg string) {
	if msg == "" {
		return
	}
	fmt.Fprintln(r.out, r.styles.Success.Render(msg))
}

// Warn prints a warning line.
func (r *Renderer) Warn(msg string) {
	fmt.Fprintln(r.out, r.styles.Warning.Render("warning: "+msg))
}

// Error prints a failed command's error.
func (r *Renderer) Error(err error) {
	fmt.Fprintln(r.out, r.styles.Error.Render("error: "+err.Error()))
}

// View renders whatever the model's view state says is on display.
func (r *Renderer) View(m *model.Model) error {
	switch m.Gate().State() {
	case viewstate.Event:
		r.Events(m.FilteredEvents())
	case viewstate.SingleEvent:
		name, ok := m.Focused()
		if !ok {
			r.Events(m.FilteredEvents())
			return nil
		}
		ev, err := m.Engine().Event(name)
		if err != nil {
			return err
		}
		members, err := m.Engine().Roster(name)
		if err != nil {
			return err
		}
		r.Event(ev, members)
	default:
		r.Members(m.FilteredMembers())
	}
	return nil
}

// Listener returns a model listener that re-renders the view after every
// command.
func (r *Renderer) Listener(m *model.Model) model.Listener {
	return func(model.Change) {
		if err := r.View(m); err != nil {
			r.Error(err)
		}
	}
}

// Members prints a numbered member list.
func (r *Renderer) Members(list []models.Member) {
	fmt.Fprintln(r.out, r.styles.Title.Render(fmt.Sprintf("Members (%d)", len(list))))
	if len(list) == 0 {
		fmt.Fprintln(r.out, r.styles.Muted.Render("  no members"))
		return
	}
	for i := range list {
		m := &list[i]
		line := fmt.Sprintf("%s %s  %s  %s",
			r.styles.Index.Render(fmt.Sprintf("%3d.", i+1)),
			r.styles.Name.Render(string(m.Name)),
			m.Phone,
			m.Email,
		)
		if len(m.Roles) > 0 {
			names := make([]string, len(m.Roles))
			for j, role := range m.Roles {
				names[j] = string(role)
			}
			line += "  " + r.styles.Role.Render("["+strings.Join(names, ", ")+"]")
		}
		fmt.Fprintln(r.out, line)
	}
}

// Events prints a numbered event list.
func (r *Renderer) Events(list []models.Event) {
	fmt.Fprintln(r.out, r.styles.Title.Render(fmt.Sprintf("Events (%d)", len(list))))
	if len(list) == 0 {
		fmt.Fprintln(r.out, r.styles.Muted.Render("  no events"))
		return
	}
	for i := range list {
		ev := &list[i]
		line := fmt.Sprintf("%s %s  %s  %s",
			r.styles.Index.Render(fmt.Sprintf("%3d.", i+1)),
			r.styles.Name.Render(string(ev.Name)),
			r.window(ev),
			r.styles.Muted.Render(fmt.Sprintf("%d on roster", len(ev.Roster))),
		)
		fmt.Fprintln(r.out, line)
	}
}

// Event prints one event with its roles and roster. members is the roster in
// order, as returned by the engine.
func (r *Renderer) Event(ev models.Event, members []models.Member) {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(string(ev.Name)))
	b.WriteString("\n")
	b.WriteString(r.window(&ev))
	if ev.Detail != "" {
		b.WriteString("\n")
		b.WriteString(ev.Detail)
	}
	b.WriteString("\n")
	if roles := ev.RoleNames(); len(roles) > 0 {
		b.WriteString(r.styles.Muted.Render("Roles: ") + r.styles.Role.Render(strings.Join(roles, ", ")))
	} else {
		b.WriteString(r.styles.Muted.Render("Roles: none"))
	}
	b.WriteString("\n\n")
	if len(members) == 0 {
		b.WriteString(r.styles.Muted.Render("Nobody assigned yet"))
	}
	for i := range members {
		m := &members[i]
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%s %s  %s",
			r.styles.Index.Render(fmt.Sprintf("%3d.", i+1)),
			r.styles.Name.Render(string(m.Name)),
			r.heldRoles(m.RolesFor(ev.Name)),
		))
	}
	fmt.Fprintln(r.out, r.styles.Box.Render(b.String()))
}

func (r *Renderer) heldRoles(roles []models.EventRole) string {
	parts := make([]string, len(roles))
	for i, role := range roles {
		if role.Unassigned {
			parts[i] = r.styles.Participant.Render(role.Name)
			continue
		}
		parts[i] = r.styles.Role.Render(role.Name)
	}
	return strings.Join(parts, ", ")
}

func (r *Renderer) window(ev *models.Event) string {
	return fmt.Sprintf("%s - %s", ev.From.Format(r.dateFormat), ev.To.Format(r.dateFormat))
}
