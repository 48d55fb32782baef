package engine

import (
	"fmt"

	"ConciliacaoFornecedores/api/constants"
	"ConciliacaoFornecedores/api/reconciliation/reconerr"
)

// State is the position of a pass inside its life cycle. Transitions
// only move forward; Failed is reachable from everywhere.
type State string

const (
	StateIdle        State = "Idle"
	StateAggregating State = "Aggregating"
	StateMatching    State = "Matching"
	StateDiffing     State = "Diffing"
	StateRanking     State = "Ranking"
	StateExplaining  State = "Explaining"
	StateDone        State = "Done"
	StateFailed      State = "Failed"
)

var nextState = map[State]State{
	StateIdle:        StateAggregating,
	StateAggregating: StateMatching,
	StateMatching:    StateDiffing,
	StateDiffing:     StateRanking,
	StateRanking:     StateExplaining,
	StateExplaining:  StateDone,
}

// passRun tracks one pass through the machine.
type passRun struct {
	pass  Pass
	state State
}

// to moves the pass to next, rejecting anything but the forward edge
// or Failed.
func (p *passRun) to(next State) error {
	if next == StateFailed {
		p.state = StateFailed
		return nil
	}
	if nextState[p.state] != next {
		return &reconerr.ReconciliationError{
			Stage: string(p.state),
			Err:   fmt.Errorf(constants.ErrInvalidPassState, p.state, next),
		}
	}
	p.state = next
	return nil
}

// fail marks the pass Failed and wraps err with the stage it died in.
func (p *passRun) fail(err error) error {
	stage := string(p.state)
	p.state = StateFailed
	if _, ok := err.(*reconerr.ReconciliationError); ok {
		return err
	}
	return &reconerr.ReconciliationError{Stage: stage, Err: err}
}
