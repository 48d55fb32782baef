package reconciliation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ConciliacaoFornecedores/api/constants"
	"ConciliacaoFornecedores/api/reconciliation/importer"
	"ConciliacaoFornecedores/internal/config"
)

// stubProvider fails every fetch with a fixed error.
type stubProvider struct {
	err error
}

func (p stubProvider) Fetch(context.Context, importer.Descriptor) (string, error) {
	return "", p.err
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(RunnerConfig{})

	inbox, ok := r.provider.(InboxProvider)
	require.True(t, ok, "default provider should scan the inbox")
	assert.Equal(t, config.DefaultInboxDir, inbox.Dir)

	_, ok = r.notifier.(LogNotifier)
	assert.True(t, ok, "default notifier should write to the audit log")

	assert.NotNil(t, r.loc)
	assert.False(t, r.Busy())
}

func TestNewRunnerKeepsGivenCollaborators(t *testing.T) {
	provider := stubProvider{err: errors.New("boom")}
	r := NewRunner(RunnerConfig{Provider: provider, InboxDir: "ignored"})
	assert.Equal(t, provider, r.provider)
}

func TestRunRejectsConcurrentRun(t *testing.T) {
	r := &Runner{}
	r.running = true

	report, err := r.Run(context.Background())
	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrBusy)
	assert.True(t, r.Busy())
}

// Import failures are isolated per source: every source is attempted
// and recorded even when all of them fail.
func TestImportSourcesRecordsEveryFailure(t *testing.T) {
	r := &Runner{provider: stubProvider{err: errors.New("robo atrasado")}}
	report := &RunReport{}

	succeeded := r.importSources(context.Background(), report)

	assert.Zero(t, succeeded)
	require.Len(t, report.Sources, len(importer.Manifest()))
	for _, src := range report.Sources {
		assert.Equal(t, constants.StepStatusFailed, src.Status)
		assert.Contains(t, src.Message, "robo atrasado")
		assert.Empty(t, src.File)
	}
}
