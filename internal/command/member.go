package command

import (
	"fmt"
	"strings"

	"github.com/ajitpratap0/clubroster/internal/model"
	"github.com/ajitpratap0/clubroster/internal/models"
	"github.com/ajitpratap0/clubroster/internal/roster"
	"github.com/ajitpratap0/clubroster/internal/viewstate"
)

// AddMember adds a new member and shows the member list.
type AddMember struct {
	Member models.Member
}

func (c AddMember) Name() string { return "add-member" }

func (c AddMember) Execute(m *model.Model) (Result, error) {
	added, err := m.Engine().AddMember(c.Member)
	if err != nil {
		return Result{}, err
	}
	m.Gate().Transition(viewstate.Member)
	return Result{Feedback: fmt.Sprintf("New member added: %s", added.Name), Changed: true}, nil
}

// EditMember edits the member at Index of the displayed member list.
type EditMember struct {
	Index int
	Edit  roster.MemberEdit
}

func (c EditMember) Name() string { return "edit-member" }

func (c EditMember) Execute(m *model.Model) (Result, error) {
	if err := m.Gate().Require(viewstate.Member); err != nil {
		return Result{}, err
	}
	target, err := m.MemberAt(c.Index)
	if err != nil {
		return Result{}, err
	}
	edited, err := m.Engine().EditMember(target.Name, c.Edit)
	if err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf("Edited member: %s", edited.Name), Changed: true}, nil
}

// DeleteMember deletes the member at Index of the displayed member list and
// removes it from every event roster.
type DeleteMember struct {
	Index int
}

func (c DeleteMember) Name() string { return "delete-member" }

func (c DeleteMember) Execute(m *model.Model) (Result, error) {
	if err := m.Gate().Require(viewstate.Member); err != nil {
		return Result{}, err
	}
	target, err := m.MemberAt(c.Index)
	if err != nil {
		return Result{}, err
	}
	deleted, err := m.Engine().DeleteMember(target.Name)
	if err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf("Deleted member: %s", deleted.Name), Changed: true}, nil
}

// FindMember filters the member list by name keywords.
type FindMember struct {
	Keywords []string
}

func (c FindMember) Name() string { return "find-member" }

func (c FindMember) Execute(m *model.Model) (Result, error) {
	if len(c.Keywords) == 0 {
		return Result{}, fmt.Errorf("find-member: at least one keyword is required")
	}
	m.SetMemberFilter(c.Keywords)
	m.Gate().Transition(viewstate.Member)
	n := len(m.FilteredMembers())
	return Result{Feedback: fmt.Sprintf("%d members listed for %q", n, strings.Join(c.Keywords, " "))}, nil
}

// ListMembers clears the member filter and shows every member.
type ListMembers struct{}

func (c ListMembers) Name() string { return "list-members" }

func (c ListMembers) Execute(m *model.Model) (Result, error) {
	m.SetMemberFilter(nil)
	m.Gate().Transition(viewstate.Member)
	return Result{Feedback: fmt.Sprintf("Listed all %d members", len(m.FilteredMembers()))}, nil
}
