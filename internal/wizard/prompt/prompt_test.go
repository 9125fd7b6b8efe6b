package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratum-mining/sv2-wizard/internal/configgen"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/engine"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/flows"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/steps"
)

// scripted answers steps from a fixed list of actions.
type scripted struct {
	answers  []Action
	asked    []string
	backs    []bool
	rejected []error
}

func (s *scripted) Ask(_ context.Context, st steps.Step, _ engine.Data, canGoBack bool) (Action, error) {
	s.asked = append(s.asked, st.ID())
	s.backs = append(s.backs, canGoBack)
	if len(s.answers) == 0 {
		return Action{}, errors.New("script exhausted")
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func (s *scripted) Reject(_ steps.Step, err error) {
	s.rejected = append(s.rejected, err)
}

func TestRun_FullStack(t *testing.T) {
	e := engine.New(flows.FullStack.Graph)
	p := &scripted{answers: []Action{
		{OptionID: "opt_mainnet"},
		{Values: engine.Data{configgen.KeyBitcoinSocketPath: "/data/node.sock"}},
		{Values: engine.Data{}},
		{Values: engine.Data{configgen.KeyPoolPayoutAddress: "bc1qpool"}},
		{OptionID: "opt_client_tpl_no"},
		{Back: true},
		{OptionID: "opt_client_tpl_no"},
		{Values: engine.Data{configgen.KeyUserIdentity: "miner01"}},
		{OptionID: "deploy_docker"},
	}}

	require.NoError(t, Run(context.Background(), e, p, logr.Discard()))

	assert.Equal(t, flows.FullStackResultDocker, e.CurrentID())
	assert.Equal(t, []string{
		flows.FullStackNetwork,
		"bitcoin_setup_mainnet",
		flows.FullStackPoolMainnet,
		flows.FullStackPoolMainnet,
		flows.FullStackTemplateDecision,
		flows.FullStackTranslator,
		flows.FullStackTemplateDecision,
		flows.FullStackTranslator,
		flows.FullStackDeployment,
	}, p.asked)
	assert.False(t, p.backs[0])
	assert.True(t, p.backs[1])

	require.Len(t, p.rejected, 1)
	assert.ErrorIs(t, p.rejected[0], engine.ErrMissingFields)

	data := e.Data()
	assert.Equal(t, "mainnet", data[configgen.KeySelectedNetwork])
	assert.Equal(t, "/data/node.sock", data[configgen.KeyBitcoinSocketPath])
	assert.Equal(t, "bc1qpool", data[configgen.KeyPoolPayoutAddress])
	assert.Equal(t, false, data[configgen.KeyConstructTemplates])
	assert.Equal(t, "docker", data[configgen.KeyDeploymentMethod])
}

func TestRun_RejectsInvalidValues(t *testing.T) {
	e := engine.New(flows.FullStack.Graph)
	p := &scripted{answers: []Action{
		{OptionID: "opt_mainnet"},
		{Values: engine.Data{configgen.KeyBitcoinSocketPath: "/data/node.sock"}},
		{Values: engine.Data{configgen.KeyPoolPayoutAddress: "bc1qpool", configgen.KeyShareBatchSize: 2.5}},
		{Values: engine.Data{configgen.KeyPoolPayoutAddress: "bc1qpool", configgen.KeyShareBatchSize: int64(20)}},
	}}

	err := Run(context.Background(), e, p, logr.Discard())
	require.Error(t, err, "script runs out after the pool step")

	require.Len(t, p.rejected, 1)
	assert.ErrorIs(t, p.rejected[0], engine.ErrInvalidFields)
	assert.Equal(t, int64(20), e.Data()[configgen.KeyShareBatchSize])
	assert.Equal(t, flows.FullStackTemplateDecision, e.CurrentID())
}

func TestRun_RejectsUnknownOption(t *testing.T) {
	e := engine.New(flows.FullStack.Graph)
	p := &scripted{answers: []Action{
		{OptionID: "opt_regtest"},
	}}

	err := Run(context.Background(), e, p, logr.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "script exhausted")

	require.Len(t, p.rejected, 1)
	assert.ErrorIs(t, p.rejected[0], engine.ErrUnknownOption)
	assert.Equal(t, flows.FullStackNetwork, e.CurrentID())
}

func TestRun_BackOnFirstStepIsNoop(t *testing.T) {
	e := engine.New(flows.FullStack.Graph)
	p := &scripted{answers: []Action{{Back: true}}}

	err := Run(context.Background(), e, p, logr.Discard())
	require.Error(t, err)

	assert.Equal(t, []string{flows.FullStackNetwork, flows.FullStackNetwork}, p.asked)
	assert.Empty(t, e.History())
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &scripted{}
	err := Run(ctx, engine.New(flows.FullStack.Graph), p, logr.Discard())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, p.asked)
}

func TestRun_StopsOnDeadEndInstruction(t *testing.T) {
	g := steps.MustGraph("notes",
		&steps.Instruction{StepID: "notes", Title: "Notes"},
	)
	p := &scripted{answers: []Action{{Values: engine.Data{"seen": true}}}}

	err := Run(context.Background(), engine.New(g), p, logr.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no next step")
}

func TestRun_TerminalEngineAsksNothing(t *testing.T) {
	g := steps.MustGraph("done", &steps.Result{StepID: "done", Title: "Done"})
	p := &scripted{}

	require.NoError(t, Run(context.Background(), engine.New(g), p, logr.Discard()))
	assert.Empty(t, p.asked)
}
