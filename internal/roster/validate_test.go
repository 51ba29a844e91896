package roster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/clubroster/internal/models"
	"github.com/ajitpratap0/clubroster/internal/roster"
)

func TestValidateGraphAcceptsEmpty(t *testing.T) {
	assert.NoError(t, roster.ValidateGraph(nil, nil))
}

func TestValidateGraphMissingEvent(t *testing.T) {
	alice := newMember(t, "Alice")
	alice.EventRoles = []models.EventRole{{Name: "Speaker", Event: "Workshop"}}

	err := roster.ValidateGraph([]models.Member{alice}, nil)
	var ie *roster.IntegrityError
	require.ErrorAs(t, err, &ie)
	require.Len(t, ie.Members, 1)
	assert.Equal(t, models.Name("Alice"), ie.Members[0].Member)
	require.Len(t, ie.Members[0].Problems, 1)
	assert.Contains(t, ie.Members[0].Problems[0], roster.ProblemEventMissing)
	assert.Contains(t, err.Error(), "Alice")
}

func TestValidateGraphBatchesPerMember(t *testing.T) {
	workshop := newEvent(t, "Workshop", "Speaker")
	gala := newEvent(t, "Gala", "Usher")
	gala.Roster = []models.Name{"Alice"}

	alice := newMember(t, "Alice")
	alice.EventRoles = []models.EventRole{
		// Not on the Workshop roster.
		{Name: "Speaker", Event: "Workshop"},
		// On the Gala roster, but Gala declares no Chef.
		{Name: "Chef", Event: "Gala"},
		// Event does not exist.
		models.ParticipantRole("Picnic"),
	}
	bob := newMember(t, "Bob")
	bob.EventRoles = []models.EventRole{{Name: "Usher", Event: "Gala"}}

	err := roster.ValidateGraph([]models.Member{alice, bob}, []models.Event{workshop, gala})
	var ie *roster.IntegrityError
	require.ErrorAs(t, err, &ie)
	require.Len(t, ie.Members, 2)

	aliceProblems := ie.Members[0].Problems
	require.Len(t, aliceProblems, 3)
	assert.Contains(t, aliceProblems[0], roster.ProblemNotOnRoster)
	assert.Contains(t, aliceProblems[1], roster.ProblemRoleUndefined)
	assert.Contains(t, aliceProblems[2], roster.ProblemEventMissing)

	assert.Equal(t, models.Name("Bob"), ie.Members[1].Member)
	require.Len(t, ie.Members[1].Problems, 1)
	assert.Contains(t, ie.Members[1].Problems[0], roster.ProblemNotOnRoster)

	assert.Equal(t, 4, ie.Count())
}

func TestValidateGraphParticipantNeedsNoVocabulary(t *testing.T) {
	gala := newEvent(t, "Gala")
	gala.Roster = []models.Name{"Alice"}
	alice := newMember(t, "Alice")
	alice.EventRoles = []models.EventRole{models.ParticipantRole("gala")}

	assert.NoError(t, roster.ValidateGraph([]models.Member{alice}, []models.Event{gala}))
}

func TestValidateGraphRosterChecks(t *testing.T) {
	gala := newEvent(t, "Gala", "Usher")
	gala.Roster = []models.Name{"Alice", "Ghost"}
	alice := newMember(t, "Alice")

	err := roster.ValidateGraph([]models.Member{alice}, []models.Event{gala})
	var ie *roster.IntegrityError
	require.ErrorAs(t, err, &ie)
	require.Len(t, ie.Graph, 1)
	assert.Contains(t, ie.Graph[0], "Ghost")
	require.Len(t, ie.Members, 1)
	assert.Contains(t, ie.Members[0].Problems[0], roster.ProblemNoRoleForEvent)
}

func TestValidateGraphRejectsRepeatedAndMixedRoles(t *testing.T) {
	gala := newEvent(t, "Gala", "Usher")
	gala.Roster = []models.Name{"Alice", "Bob"}

	alice := newMember(t, "Alice")
	alice.EventRoles = []models.EventRole{
		models.ParticipantRole("Gala"),
		{Name: "Usher", Event: "Gala"},
	}
	bob := newMember(t, "Bob")
	bob.EventRoles = []models.EventRole{
		{Name: "Usher", Event: "Gala"},
		{Name: "usher", Event: "gala"},
	}

	err := roster.ValidateGraph([]models.Member{alice, bob}, []models.Event{gala})
	var ie *roster.IntegrityError
	require.ErrorAs(t, err, &ie)
	require.Len(t, ie.Members, 2)

	assert.Equal(t, models.Name("Alice"), ie.Members[0].Member)
	require.Len(t, ie.Members[0].Problems, 1)
	assert.Contains(t, ie.Members[0].Problems[0], roster.ProblemMixedRoles)

	assert.Equal(t, models.Name("Bob"), ie.Members[1].Member)
	require.Len(t, ie.Members[1].Problems, 1)
	assert.Contains(t, ie.Members[1].Problems[0], roster.ProblemDuplicateRole)
}

func TestValidateGraphDuplicates(t *testing.T) {
	err := roster.ValidateGraph(
		[]models.Member{newMember(t, "Alice"), newMember(t, "ALICE")},
		[]models.Event{newEvent(t, "Gala"), newEvent(t, "gala")},
	)
	var ie *roster.IntegrityError
	require.ErrorAs(t, err, &ie)
	assert.Len(t, ie.Graph, 2)
	assert.Empty(t, ie.Members)
}

func TestValidateGraphForeignVocabulary(t *testing.T) {
	gala := newEvent(t, "Gala", "Usher")
	gala.Roles[0] = gala.Roles[0].Rebind("Picnic")

	err := roster.ValidateGraph(nil, []models.Event{gala})
	var ie *roster.IntegrityError
	require.ErrorAs(t, err, &ie)
	require.Len(t, ie.Graph, 1)
	assert.Contains(t, ie.Graph[0], "foreign role")
}
