package viewstate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/clubroster/internal/viewstate"
)

func TestZeroGateStartsInMember(t *testing.T) {
	var g viewstate.Gate
	assert.Equal(t, viewstate.Member, g.State())
}

func TestRequire(t *testing.T) {
	tests := []struct {
		name    string
		current viewstate.State
		want    viewstate.State
		wantErr error
	}{
		{name: "member in member", current: viewstate.Member, want: viewstate.Member},
		{name: "event in event", current: viewstate.Event, want: viewstate.Event},
		{name: "event in member", current: viewstate.Member, want: viewstate.Event, wantErr: viewstate.ErrNotEventState},
		{name: "event in single event", current: viewstate.SingleEvent, want: viewstate.Event, wantErr: viewstate.ErrNotEventState},
		{name: "member in event", current: viewstate.Event, want: viewstate.Member, wantErr: viewstate.ErrNotMemberState},
		{name: "single event in member", current: viewstate.Member, want: viewstate.SingleEvent, wantErr: viewstate.ErrInvalidState},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := viewstate.NewGate(tc.current)
			err := g.Require(tc.want)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.ErrorIs(t, err, viewstate.ErrInvalidState)
			}
			assert.Equal(t, tc.current, g.State(), "Require never transitions")
		})
	}
}

func TestTransition(t *testing.T) {
	g := viewstate.NewGate(viewstate.Member)
	g.Transition(viewstate.SingleEvent)
	assert.Equal(t, viewstate.SingleEvent, g.State())
	assert.NoError(t, g.Require(viewstate.SingleEvent))
}

func TestParseStateRoundTrip(t *testing.T) {
	for _, s := range []viewstate.State{viewstate.Member, viewstate.Event, viewstate.SingleEvent} {
		got, err := viewstate.ParseState(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	got, err := viewstate.ParseState("")
	require.NoError(t, err)
	assert.Equal(t, viewstate.Member, got)

	got, err = viewstate.ParseState("EVENT")
	require.NoError(t, err)
	assert.Equal(t, viewstate.Event, got)

	got, err = viewstate.ParseState("calendar")
	assert.Error(t, err)
	assert.Equal(t, viewstate.Member, got)

	assert.Equal(t, "State(9)", viewstate.State(9).String())
}
