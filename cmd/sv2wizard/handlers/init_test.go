package handlers

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratum-mining/sv2-wizard/internal/bundle"
	"github.com/stratum-mining/sv2-wizard/internal/configgen"
	"github.com/stratum-mining/sv2-wizard/internal/deploy"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/answers"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/engine"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/prompt"
)

func fullStackScript() *scripted {
	return &scripted{answers: []prompt.Action{
		{OptionID: "opt_testnet4"},
		{Values: engine.Data{configgen.KeyBitcoinSocketPath: "/srv/testnet4/node.sock"}},
		{Values: engine.Data{configgen.KeyPoolPayoutAddress: "tb1qpool"}},
		{OptionID: "opt_client_tpl_yes"},
		{Values: engine.Data{configgen.KeyUserIdentity: "miner01", configgen.KeyCoinbaseRewardScript: "tb1qreward"}},
		{Values: engine.Data{}},
		{OptionID: "deploy_bin"},
	}}
}

func TestInit_NotInteractive(t *testing.T) {
	saveAndRestoreFactories(t)
	isTerminal = func() bool { return false }

	err := Init(context.Background(), InitOptions{Wizard: "full-stack"})
	assert.ErrorIs(t, err, ErrNotInteractive)
}

func TestInit_UnknownWizard(t *testing.T) {
	saveAndRestoreFactories(t)
	isTerminal = func() bool { return true }

	err := Init(context.Background(), InitOptions{Wizard: "solo"})
	assert.Error(t, err)
}

func TestInit_Success(t *testing.T) {
	saveAndRestoreFactories(t)
	isTerminal = func() bool { return true }
	newPrompter = func(io.Writer, bool) prompt.Prompter { return fullStackScript() }

	dir := t.TempDir()
	answersPath := filepath.Join(dir, "answers.yaml")

	var err error
	output := captureOutput(func() {
		err = Init(context.Background(), InitOptions{
			Wizard:      "full-stack",
			Output:      OutputOptions{Dir: dir},
			SaveAnswers: answersPath,
		})
	})
	require.NoError(t, err)

	for _, name := range []string{deploy.PoolConfigFile, deploy.JDSConfigFile, deploy.JDCConfigFile, deploy.TranslatorConfigFile} {
		assert.FileExists(t, filepath.Join(dir, bundle.DefaultFolder, name))
	}
	jds, err := os.ReadFile(filepath.Join(dir, bundle.DefaultFolder, deploy.JDSConfigFile))
	require.NoError(t, err)
	assert.Contains(t, string(jds), "core_rpc_port = 48332")

	assert.Contains(t, output, "SRI Full Stack Deployment")
	assert.Contains(t, output, "Answers saved to "+answersPath)

	saved, err := answers.Load(answersPath)
	require.NoError(t, err)
	assert.Equal(t, "full-stack", saved.Wizard)
	assert.Len(t, saved.Actions, 7)
}

func TestInit_Canceled(t *testing.T) {
	saveAndRestoreFactories(t)
	isTerminal = func() bool { return true }
	newPrompter = func(io.Writer, bool) prompt.Prompter { return &scripted{} }
	runPrompt = func(context.Context, *engine.Engine, prompt.Prompter, logr.Logger) error {
		return errors.New("user aborted")
	}

	var err error
	captureOutput(func() {
		err = Init(context.Background(), InitOptions{Wizard: "pool-connection", Output: OutputOptions{Dir: t.TempDir()}})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wizard canceled")
}

func TestInit_SaveAnswersFails(t *testing.T) {
	saveAndRestoreFactories(t)
	isTerminal = func() bool { return true }
	newPrompter = func(io.Writer, bool) prompt.Prompter { return fullStackScript() }
	writeAnswers = func(string, *answers.File) error { return errors.New("read-only") }

	var err error
	captureOutput(func() {
		err = Init(context.Background(), InitOptions{
			Wizard:      "full-stack",
			Output:      OutputOptions{Dir: t.TempDir()},
			SaveAnswers: "answers.yaml",
		})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save answers")
}
