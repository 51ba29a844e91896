package command

import (
	"fmt"

	"github.com/ajitpratap0/clubroster/internal/model"
	"github.com/ajitpratap0/clubroster/internal/roster"
)

// Clear removes every member and event.
type Clear struct{}

func (c Clear) Name() string { return "clear" }

func (c Clear) Execute(m *model.Model) (Result, error) {
	m.Engine().Clear()
	m.Focus("")
	return Result{Feedback: "Roster has been cleared", Changed: true}, nil
}

// Replace swaps the whole roster for Graph, which must pass the integrity
// check. Filters and focus are reset since old indices no longer apply.
type Replace struct {
	Graph roster.Graph
}

func (c Replace) Name() string { return "import" }

func (c Replace) Execute(m *model.Model) (Result, error) {
	if err := roster.ValidateGraph(c.Graph.Members, c.Graph.Events); err != nil {
		return Result{}, err
	}
	m.Engine().Restore(c.Graph)
	m.SetMemberFilter(nil)
	m.SetEventFilter(nil)
	m.Focus("")
	return Result{
		Feedback: fmt.Sprintf("Imported %d members and %d events", len(c.Graph.Members), len(c.Graph.Events)),
		Changed:  true,
	}, nil
}
