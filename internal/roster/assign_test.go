package roster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/clubroster/internal/models"
	"github.com/ajitpratap0/clubroster/internal/roster"
)

func heldRoleNames(t *testing.T, e *roster.Engine, member, event models.Name) []string {
	t.Helper()
	m, err := e.Member(member)
	require.NoError(t, err)
	var names []string
	for _, r := range m.RolesFor(event) {
		names = append(names, r.Name)
	}
	return names
}

func TestAssignWithoutRolesSynthesizesParticipant(t *testing.T) {
	e := newEngine(t)

	a, err := e.Assign("Orientation", "John", nil)
	require.NoError(t, err)
	require.Len(t, a.Roles, 1)
	assert.True(t, a.Roles[0].Unassigned)
	assert.Equal(t, models.Name("Orientation"), a.Roles[0].Event)

	ev, err := e.Event("Orientation")
	require.NoError(t, err)
	assert.Equal(t, []models.Name{"John"}, ev.Roster)
	requireConsistent(t, e)

	before := e.Snapshot()
	_, err = e.Assign("Orientation", "John", nil)
	assert.ErrorIs(t, err, roster.ErrDuplicateAssignment)
	var ae *roster.AssignmentError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, models.Name("John"), ae.Member)
	assert.Equal(t, before, e.Snapshot())
}

func TestAssignUnknownRole(t *testing.T) {
	e := newEngine(t)
	before := e.Snapshot()

	_, err := e.Assign("Orientation", "John", []string{"chef", "facilitator", "Chef"})
	require.ErrorIs(t, err, roster.ErrEventRoleNotFound)
	assert.ErrorIs(t, err, roster.ErrNotFound)
	var re *roster.RoleError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, []string{"chef"}, re.Roles)
	assert.Contains(t, err.Error(), "chef")

	assert.Equal(t, before, e.Snapshot())
}

func TestAssignPreconditionOrder(t *testing.T) {
	e := newEngine(t)
	before := e.Snapshot()

	_, err := e.Assign("Nowhere", "Nobody", []string{"chef"})
	assert.ErrorIs(t, err, roster.ErrEventNotFound)

	_, err = e.Assign("Orientation", "Nobody", []string{"chef"})
	assert.ErrorIs(t, err, roster.ErrEventRoleNotFound)

	_, err = e.Assign("Orientation", "Nobody", []string{"facilitator"})
	assert.ErrorIs(t, err, roster.ErrMemberNotFound)

	assert.Equal(t, before, e.Snapshot())
}

func TestAssignNamedRolesIgnoresCase(t *testing.T) {
	e := newEngine(t)

	a, err := e.Assign("orientation", "john", []string{"FACILITATOR", "facilitator", "GameMaster"})
	require.NoError(t, err)
	assert.Equal(t, models.Name("Orientation"), a.Event)
	assert.Equal(t, models.Name("John"), a.Member)
	assert.Equal(t, []string{"facilitator", "gamemaster"}, heldRoleNames(t, e, "John", "Orientation"))
	requireConsistent(t, e)
}

func TestAssignRole(t *testing.T) {
	e := newEngine(t)
	_, err := e.Assign("Orientation", "John", nil)
	require.NoError(t, err)

	a, err := e.AssignRole("Orientation", "John", []string{"facilitator"})
	require.NoError(t, err)
	assert.Equal(t, []string{"facilitator"}, heldRoleNames(t, e, "John", "Orientation"), "participant role is dropped")
	require.Len(t, a.Changed, 1)
	requireConsistent(t, e)

	before := e.Snapshot()

	_, err = e.AssignRole("Orientation", "John", []string{"facilitator"})
	assert.ErrorIs(t, err, roster.ErrRoleAlreadyHeld)

	_, err = e.AssignRole("Orientation", "John", []string{"chef"})
	assert.ErrorIs(t, err, roster.ErrEventRoleNotFound)

	_, err = e.AssignRole("Orientation", "Mary", []string{"gamemaster"})
	assert.ErrorIs(t, err, roster.ErrNotAssigned)

	_, err = e.AssignRole("Orientation", "John", nil)
	assert.ErrorIs(t, err, roster.ErrNoRoles)

	assert.Equal(t, before, e.Snapshot())
}

func TestUnassignWithoutRolesTearsDown(t *testing.T) {
	e := newEngine(t)
	_, err := e.Assign("Orientation", "John", []string{"facilitator", "gamemaster"})
	require.NoError(t, err)

	a, err := e.Unassign("Orientation", "John", nil)
	require.NoError(t, err)
	assert.True(t, a.Removed)
	assert.Len(t, a.Changed, 2)
	assert.Empty(t, a.Roles)

	ev, err := e.Event("Orientation")
	require.NoError(t, err)
	assert.Empty(t, ev.Roster)
	assert.Empty(t, heldRoleNames(t, e, "John", "Orientation"))
	requireConsistent(t, e)

	_, err = e.Unassign("Orientation", "John", nil)
	assert.ErrorIs(t, err, roster.ErrNotAssigned)
}

func TestUnassignWithRolesKeepsMembership(t *testing.T) {
	e := newEngine(t)
	_, err := e.Assign("Orientation", "John", []string{"facilitator", "gamemaster"})
	require.NoError(t, err)

	// Unknown and unheld names are ignored.
	a, err := e.Unassign("Orientation", "John", []string{"facilitator", "chef"})
	require.NoError(t, err)
	assert.False(t, a.Removed)
	assert.Equal(t, []string{"gamemaster"}, heldRoleNames(t, e, "John", "Orientation"))

	// Removing the last named role falls back to the participant role.
	_, err = e.Unassign("Orientation", "John", []string{"gamemaster"})
	require.NoError(t, err)
	assert.Equal(t, []string{models.UnassignedRoleName}, heldRoleNames(t, e, "John", "Orientation"))

	ev, err := e.Event("Orientation")
	require.NoError(t, err)
	assert.True(t, ev.HasMember("John"))
	requireConsistent(t, e)
}

func TestUnassignMissingEntities(t *testing.T) {
	e := newEngine(t)

	_, err := e.Unassign("Nowhere", "John", nil)
	assert.ErrorIs(t, err, roster.ErrEventNotFound)

	_, err = e.Unassign("Orientation", "Nobody", nil)
	assert.ErrorIs(t, err, roster.ErrMemberNotFound)
}

func TestUnassignRoleLeavesParticipant(t *testing.T) {
	e := newEngine(t)
	_, err := e.Assign("Orientation", "John", []string{"facilitator"})
	require.NoError(t, err)

	a, err := e.UnassignRole("Orientation", "John", []string{"facilitator"})
	require.NoError(t, err)
	require.Len(t, a.Roles, 1)
	assert.True(t, a.Roles[0].Unassigned)

	ev, err := e.Event("Orientation")
	require.NoError(t, err)
	assert.True(t, ev.HasMember("John"))
	requireConsistent(t, e)
}

func TestUnassignRoleFailures(t *testing.T) {
	e := newEngine(t)
	_, err := e.Assign("Orientation", "John", []string{"facilitator"})
	require.NoError(t, err)
	before := e.Snapshot()

	_, err = e.UnassignRole("Orientation", "John", []string{"chef"})
	assert.ErrorIs(t, err, roster.ErrEventRoleNotFound)

	_, err = e.UnassignRole("Orientation", "John", []string{"facilitator", "gamemaster"})
	assert.ErrorIs(t, err, roster.ErrRoleNotHeld)
	var re *roster.RoleError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, []string{"gamemaster"}, re.Roles)

	_, err = e.UnassignRole("Orientation", "John", []string{" "})
	assert.ErrorIs(t, err, roster.ErrNoRoles)

	_, err = e.UnassignRole("Orientation", "Nobody", []string{"facilitator"})
	assert.ErrorIs(t, err, roster.ErrMemberNotFound)

	assert.Equal(t, before, e.Snapshot())
}

func TestSameRoleNameAtTwoEventsIsDistinct(t *testing.T) {
	e := newEngine(t)
	_, err := e.AddEvent(newEvent(t, "Gala", "facilitator"))
	require.NoError(t, err)
	_, err = e.Assign("Orientation", "John", []string{"facilitator"})
	require.NoError(t, err)
	_, err = e.Assign("Gala", "John", []string{"facilitator"})
	require.NoError(t, err)

	_, err = e.UnassignRole("Gala", "John", []string{"facilitator"})
	require.NoError(t, err)

	assert.Equal(t, []string{"facilitator"}, heldRoleNames(t, e, "John", "Orientation"))
	assert.Equal(t, []string{models.UnassignedRoleName}, heldRoleNames(t, e, "John", "Gala"))
	requireConsistent(t, e)
}
