package models

import (
	"fmt"
	"slices"
)

// Member is a club member. EventRoles is the relationship facet: it changes
// as the member is assigned to and removed from events, and is owned by the
// roster engine.
type Member struct {
	Name       Name
	Phone      string
	Email      string
	Roles      []MemberRole
	EventRoles []EventRole
}

// NewMember validates every field and returns a member holding no event roles.
func NewMember(name, phone, email string, roles []string) (Member, error) {
	n, err := ParseName(name)
	if err != nil {
		return Member{}, err
	}
	if err := ValidatePhone(phone); err != nil {
		return Member{}, err
	}
	if err := ValidateEmail(email); err != nil {
		return Member{}, err
	}
	mr, err := ParseMemberRoles(roles)
	if err != nil {
		return Member{}, err
	}
	return Member{Name: n, Phone: phone, Email: email, Roles: mr}, nil
}

// ParseMemberRoles validates names and drops case-insensitive duplicates,
// keeping the first spelling.
func ParseMemberRoles(names []string) ([]MemberRole, error) {
	var out []MemberRole
	for _, s := range names {
		r, err := NewMemberRole(s)
		if err != nil {
			return nil, err
		}
		if slices.ContainsFunc(out, r.Equal) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Validate checks the member's own fields. Relationship consistency is the
// roster's concern.
func (m *Member) Validate() error {
	if _, err := ParseName(string(m.Name)); err != nil {
		return err
	}
	if err := ValidatePhone(m.Phone); err != nil {
		return fmt.Errorf("member %s: %w", m.Name, err)
	}
	if err := ValidateEmail(m.Email); err != nil {
		return fmt.Errorf("member %s: %w", m.Name, err)
	}
	for _, r := range m.Roles {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("member %s: %w", m.Name, err)
		}
	}
	return nil
}

// IsSame reports whether m and o are the same member, which is decided by name alone.
func (m *Member) IsSame(o *Member) bool {
	return o != nil && m.Name.Equal(o.Name)
}

// Equal compares identity and contact fields and the member roles as a set.
// Event roles are relationship state and are not compared.
func (m *Member) Equal(o *Member) bool {
	if !m.IsSame(o) || m.Phone != o.Phone || m.Email != o.Email {
		return false
	}
	if len(m.Roles) != len(o.Roles) {
		return false
	}
	for _, r := range m.Roles {
		if !slices.ContainsFunc(o.Roles, r.Equal) {
			return false
		}
	}
	return true
}

// HasEventRole reports whether the member holds r.
func (m *Member) HasEventRole(r EventRole) bool {
	return slices.ContainsFunc(m.EventRoles, r.Equal)
}

// RolesFor returns the event roles the member holds for event.
func (m *Member) RolesFor(event Name) []EventRole {
	var out []EventRole
	for _, r := range m.EventRoles {
		if r.BoundTo(event) {
			out = append(out, r)
		}
	}
	return out
}

// Clone returns a deep copy.
func (m *Member) Clone() Member {
	c := *m
	c.Roles = slices.Clone(m.Roles)
	c.EventRoles = slices.Clone(m.EventRoles)
	return c
}
