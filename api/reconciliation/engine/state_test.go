package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ConciliacaoFornecedores/api/reconciliation/reconerr"
)

func TestPassStateForwardPath(t *testing.T) {
	run := &passRun{pass: PassPrimary, state: StateIdle}
	for _, next := range []State{
		StateAggregating, StateMatching, StateDiffing,
		StateRanking, StateExplaining, StateDone,
	} {
		require.NoError(t, run.to(next))
		assert.Equal(t, next, run.state)
	}
}

func TestPassStateRejectsSkips(t *testing.T) {
	run := &passRun{pass: PassPrimary, state: StateIdle}
	err := run.to(StateMatching)
	require.Error(t, err)

	var rerr *reconerr.ReconciliationError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, string(StateIdle), rerr.Stage)
}

func TestPassStateFailedFromAnywhere(t *testing.T) {
	for _, from := range []State{StateIdle, StateMatching, StateExplaining, StateDone} {
		run := &passRun{pass: PassAdvance, state: from}
		require.NoError(t, run.to(StateFailed))
		assert.Equal(t, StateFailed, run.state)
	}
}

func TestPassFailWrapsStage(t *testing.T) {
	run := &passRun{pass: PassPrimary, state: StateAggregating}
	err := run.fail(errors.New("boom"))

	var rerr *reconerr.ReconciliationError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, string(StateAggregating), rerr.Stage)
	assert.Equal(t, StateFailed, run.state)

	// Typed reconciliation errors pass through unchanged.
	inner := &reconerr.ReconciliationError{Stage: "Matching", Err: errors.New("x")}
	run = &passRun{pass: PassPrimary, state: StateMatching}
	assert.Same(t, inner, run.fail(inner))
}
