package roster_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/clubroster/internal/models"
	"github.com/ajitpratap0/clubroster/internal/roster"
)

func newMember(t *testing.T, name string) models.Member {
	t.Helper()
	m, err := models.NewMember(name, "98765432", "member@example.com", nil)
	require.NoError(t, err)
	return m
}

func newEvent(t *testing.T, name string, roles ...string) models.Event {
	t.Helper()
	from := time.Date(2024, time.March, 9, 18, 0, 0, 0, time.UTC)
	ev, err := models.NewEvent(name, from, from.Add(3*time.Hour), "", roles)
	require.NoError(t, err)
	return ev
}

// newEngine returns an engine with John and Mary, and Orientation with the
// facilitator and gamemaster roles.
func newEngine(t *testing.T) *roster.Engine {
	t.Helper()
	e := roster.New()
	_, err := e.AddMember(newMember(t, "John"))
	require.NoError(t, err)
	_, err = e.AddMember(newMember(t, "Mary"))
	require.NoError(t, err)
	_, err = e.AddEvent(newEvent(t, "Orientation", "facilitator", "gamemaster"))
	require.NoError(t, err)
	return e
}

// requireConsistent fails the test when the live graph breaks the
// relationship invariant.
func requireConsistent(t *testing.T, e *roster.Engine) {
	t.Helper()
	require.NoError(t, e.Verify())
}

func TestAddMemberAndEvent(t *testing.T) {
	e := roster.New()

	m := newMember(t, "John")
	m.EventRoles = []models.EventRole{models.ParticipantRole("Ghost")}
	added, err := e.AddMember(m)
	require.NoError(t, err)
	assert.Empty(t, added.EventRoles, "a new member holds no event roles")

	_, err = e.AddMember(newMember(t, "JOHN"))
	assert.ErrorIs(t, err, roster.ErrDuplicateMember)

	ev := newEvent(t, "Orientation", "facilitator")
	ev.Roster = []models.Name{"John"}
	addedEv, err := e.AddEvent(ev)
	require.NoError(t, err)
	assert.Empty(t, addedEv.Roster, "a new event has an empty roster")

	_, err = e.AddEvent(newEvent(t, "orientation"))
	assert.ErrorIs(t, err, roster.ErrDuplicateEvent)

	assert.Len(t, e.Members(), 1)
	assert.Len(t, e.Events(), 1)
	requireConsistent(t, e)
}

func TestReadsReturnCopies(t *testing.T) {
	e := newEngine(t)
	_, err := e.Assign("Orientation", "John", []string{"facilitator"})
	require.NoError(t, err)

	ev, err := e.Event("Orientation")
	require.NoError(t, err)
	ev.Roster = nil

	m, err := e.Member("John")
	require.NoError(t, err)
	m.EventRoles = nil

	again, err := e.Event("Orientation")
	require.NoError(t, err)
	assert.Len(t, again.Roster, 1)
	john, err := e.Member("john")
	require.NoError(t, err)
	assert.Len(t, john.EventRoles, 1)
}

func TestSnapshotRestore(t *testing.T) {
	e := newEngine(t)
	before := e.Snapshot()

	_, err := e.Assign("Orientation", "John", nil)
	require.NoError(t, err)
	_, err = e.DeleteMember("Mary")
	require.NoError(t, err)

	e.Restore(before)
	assert.Equal(t, before, e.Snapshot())
}

func TestLoadRejectsInconsistentGraph(t *testing.T) {
	john := newMember(t, "John")
	john.EventRoles = []models.EventRole{models.ParticipantRole("Workshop")}

	_, err := roster.Load(roster.Graph{Members: []models.Member{john}})
	var ie *roster.IntegrityError
	require.ErrorAs(t, err, &ie)
	assert.ErrorIs(t, err, roster.ErrIntegrityViolation)
}

func TestLoadAcceptsConsistentGraph(t *testing.T) {
	src := newEngine(t)
	_, err := src.Assign("Orientation", "John", []string{"gamemaster"})
	require.NoError(t, err)

	e, err := roster.Load(src.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, src.Snapshot(), e.Snapshot())
}

func TestClear(t *testing.T) {
	e := newEngine(t)
	e.Clear()
	assert.Empty(t, e.Members())
	assert.Empty(t, e.Events())
}

func TestDeleteMemberCascades(t *testing.T) {
	e := newEngine(t)
	_, err := e.AddEvent(newEvent(t, "Gala", "Usher"))
	require.NoError(t, err)
	_, err = e.Assign("Orientation", "John", []string{"facilitator"})
	require.NoError(t, err)
	_, err = e.Assign("Gala", "John", nil)
	require.NoError(t, err)
	_, err = e.Assign("Gala", "Mary", []string{"usher"})
	require.NoError(t, err)

	deleted, err := e.DeleteMember("john")
	require.NoError(t, err)
	assert.Equal(t, models.Name("John"), deleted.Name)

	for _, ev := range e.Events() {
		assert.False(t, ev.HasMember("John"), "John still on %s", ev.Name)
	}
	gala, err := e.Event("Gala")
	require.NoError(t, err)
	assert.Equal(t, []models.Name{"Mary"}, gala.Roster)
	requireConsistent(t, e)

	_, err = e.DeleteMember("John")
	assert.ErrorIs(t, err, roster.ErrMemberNotFound)
	assert.ErrorIs(t, err, roster.ErrNotFound)
}

func TestDeleteEventCascades(t *testing.T) {
	e := newEngine(t)
	_, err := e.AddEvent(newEvent(t, "Gala", "Usher"))
	require.NoError(t, err)
	_, err = e.Assign("Orientation", "John", []string{"facilitator", "gamemaster"})
	require.NoError(t, err)
	_, err = e.Assign("Gala", "John", []string{"Usher"})
	require.NoError(t, err)

	_, err = e.DeleteEvent("Orientation")
	require.NoError(t, err)

	john, err := e.Member("John")
	require.NoError(t, err)
	require.Len(t, john.EventRoles, 1)
	assert.Equal(t, models.Name("Gala"), john.EventRoles[0].Event)
	requireConsistent(t, e)

	_, err = e.DeleteEvent("Orientation")
	assert.ErrorIs(t, err, roster.ErrEventNotFound)
}

func TestMemberRolesAreValidated(t *testing.T) {
	e := roster.New()
	m := newMember(t, "John")
	m.Roles = []models.MemberRole{"bad!role"}
	_, err := e.AddMember(m)
	assert.ErrorIs(t, err, models.ErrInvalidField)
	assert.Empty(t, e.Members())

	_, err = e.AddMember(newMember(t, "John"))
	require.NoError(t, err)
	roles := []models.MemberRole{"Coach", ""}
	_, err = e.EditMember("John", roster.MemberEdit{Roles: &roles})
	assert.ErrorIs(t, err, models.ErrInvalidField)
	john, err := e.Member("John")
	require.NoError(t, err)
	assert.Empty(t, john.Roles)
}

func TestEditMemberRenamePropagates(t *testing.T) {
	e := newEngine(t)
	_, err := e.Assign("Orientation", "John", []string{"facilitator"})
	require.NoError(t, err)

	name := models.MustName("Johnny")
	phone := "11112222"
	edited, err := e.EditMember("John", roster.MemberEdit{Name: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, models.Name("Johnny"), edited.Name)
	assert.Equal(t, "11112222", edited.Phone)
	assert.Len(t, edited.EventRoles, 1, "event roles are kept")

	ev, err := e.Event("Orientation")
	require.NoError(t, err)
	assert.Equal(t, []models.Name{"Johnny"}, ev.Roster)

	_, err = e.Member("John")
	assert.ErrorIs(t, err, roster.ErrMemberNotFound)
	requireConsistent(t, e)

	// Order is kept across a rename.
	members := e.Members()
	require.Len(t, members, 2)
	assert.Equal(t, models.Name("Johnny"), members[0].Name)
}

func TestEditMemberCaseOnlyRename(t *testing.T) {
	e := newEngine(t)
	_, err := e.Assign("Orientation", "John", nil)
	require.NoError(t, err)

	name := models.MustName("JOHN")
	_, err = e.EditMember("John", roster.MemberEdit{Name: &name})
	require.NoError(t, err)

	ev, err := e.Event("Orientation")
	require.NoError(t, err)
	assert.Equal(t, []models.Name{"JOHN"}, ev.Roster)
	requireConsistent(t, e)
}

func TestEditMemberFailures(t *testing.T) {
	e := newEngine(t)
	before := e.Snapshot()

	name := models.MustName("Mary")
	_, err := e.EditMember("John", roster.MemberEdit{Name: &name})
	assert.ErrorIs(t, err, roster.ErrDuplicateMember)

	bad := "not-a-phone"
	_, err = e.EditMember("John", roster.MemberEdit{Phone: &bad})
	assert.ErrorIs(t, err, models.ErrInvalidField)

	_, err = e.EditMember("Nobody", roster.MemberEdit{Phone: &bad})
	assert.ErrorIs(t, err, roster.ErrMemberNotFound)

	assert.Equal(t, before, e.Snapshot())
}

func TestEditEventRepointsRoles(t *testing.T) {
	e := newEngine(t)
	_, err := e.Assign("Orientation", "John", []string{"facilitator"})
	require.NoError(t, err)
	_, err = e.Assign("Orientation", "Mary", nil)
	require.NoError(t, err)

	name := models.MustName("Freshman Orientation")
	detail := "bring name tags"
	edited, err := e.EditEvent("Orientation", roster.EventEdit{Name: &name, Detail: &detail})
	require.NoError(t, err)
	assert.Equal(t, []string{"facilitator", "gamemaster"}, edited.RoleNames(), "vocabulary is kept")
	assert.Equal(t, []models.Name{"John", "Mary"}, edited.Roster, "roster is kept")
	for _, r := range edited.Roles {
		assert.True(t, r.BoundTo(name))
	}

	john, err := e.Member("John")
	require.NoError(t, err)
	require.Len(t, john.EventRoles, 1)
	assert.Equal(t, name, john.EventRoles[0].Event)
	assert.Equal(t, "facilitator", john.EventRoles[0].Name)

	mary, err := e.Member("Mary")
	require.NoError(t, err)
	require.Len(t, mary.EventRoles, 1)
	assert.True(t, mary.EventRoles[0].Unassigned)
	assert.Equal(t, name, mary.EventRoles[0].Event)

	_, err = e.Event("Orientation")
	assert.ErrorIs(t, err, roster.ErrEventNotFound)
	requireConsistent(t, e)
}

func TestEditEventFailures(t *testing.T) {
	e := newEngine(t)
	_, err := e.AddEvent(newEvent(t, "Gala"))
	require.NoError(t, err)
	_, err = e.Assign("Orientation", "John", []string{"facilitator"})
	require.NoError(t, err)
	before := e.Snapshot()

	name := models.MustName("gala")
	_, err = e.EditEvent("Orientation", roster.EventEdit{Name: &name})
	assert.ErrorIs(t, err, roster.ErrDuplicateEvent)

	ev, err := e.Event("Orientation")
	require.NoError(t, err)
	early := ev.From.Add(-time.Hour)
	_, err = e.EditEvent("Orientation", roster.EventEdit{To: &early})
	assert.ErrorIs(t, err, models.ErrInvalidWindow)

	assert.Equal(t, before, e.Snapshot())
}

func TestEditEventTimesOnly(t *testing.T) {
	e := newEngine(t)
	_, err := e.Assign("Orientation", "John", []string{"gamemaster"})
	require.NoError(t, err)

	ev, err := e.Event("Orientation")
	require.NoError(t, err)
	later := ev.To.Add(time.Hour)
	edited, err := e.EditEvent("Orientation", roster.EventEdit{To: &later})
	require.NoError(t, err)
	assert.Equal(t, later, edited.To)
	assert.Equal(t, []models.Name{"John"}, edited.Roster)
	requireConsistent(t, e)
}

func TestRoster(t *testing.T) {
	e := newEngine(t)
	_, err := e.Assign("Orientation", "Mary", nil)
	require.NoError(t, err)
	_, err = e.Assign("Orientation", "John", nil)
	require.NoError(t, err)

	members, err := e.Roster("orientation")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, models.Name("Mary"), members[0].Name)
	assert.Equal(t, models.Name("John"), members[1].Name)

	_, err = e.Roster("Nothing")
	assert.ErrorIs(t, err, roster.ErrEventNotFound)
}
