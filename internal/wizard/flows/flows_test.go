package flows

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratum-mining/sv2-wizard/internal/configgen"
	"github.com/stratum-mining/sv2-wizard/internal/deploy"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/steps"
)

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"full-stack", "pool-connection"}, Names())

	d, err := Get("full-stack")
	require.NoError(t, err)
	assert.Equal(t, deploy.FullStack, d.Topology)
	assert.Equal(t, FullStackNetwork, d.Graph.Initial())

	_, err = Get("solo")
	assert.True(t, errors.Is(err, ErrUnknownWizard))

	all := All()
	require.Len(t, all, 2)
	assert.Equal(t, "pool-connection", all[1].Name)
}

func TestGraphs_EveryStepIsReachable(t *testing.T) {
	for _, d := range All() {
		t.Run(d.Name, func(t *testing.T) {
			require.NoError(t, steps.Validate(d.Graph))
			assert.Equal(t, d.Graph.IDs(), d.Graph.Reachable())
		})
	}
}

func TestGraphs_ResultStepsMatchTopology(t *testing.T) {
	for _, d := range All() {
		var results int
		for _, s := range d.Graph.Steps() {
			if s.Kind() != steps.KindResult {
				continue
			}
			results++
			assert.Contains(t, s.(*steps.Result).Content.Ref, "deployment:"+string(d.Topology)+":")
		}
		assert.Equal(t, 2, results, d.Name)
	}
}

func TestFullStack_Transitions(t *testing.T) {
	g := FullStack.Graph

	network := g.MustLookup(FullStackNetwork).(*steps.Question)
	assert.Equal(t, configgen.KeySelectedNetwork, network.FieldName())
	require.Len(t, network.Options, 2)
	assert.Equal(t, "opt_mainnet", network.Options[0].ID)
	assert.Equal(t, "bitcoin_setup_mainnet", network.Options[0].Next)
	assert.Equal(t, "bitcoin_setup_testnet4", network.Options[1].Next)

	assert.Equal(t, []string{FullStackPoolTestnet4}, g.MustLookup("bitcoin_setup_testnet4").Targets())
	assert.Equal(t, steps.KindCustom, g.MustLookup(FullStackPoolMainnet).Kind())
	assert.Equal(t, steps.KindInstruction, g.MustLookup("bitcoin_setup_mainnet").Kind())

	decision := g.MustLookup(FullStackTemplateDecision).(*steps.Question)
	yes, ok := decision.Option("opt_client_tpl_yes")
	require.True(t, ok)
	assert.Equal(t, true, yes.Value)
	assert.Equal(t, FullStackClient, yes.Next)
	no, ok := decision.Option("opt_client_tpl_no")
	require.True(t, ok)
	assert.Equal(t, FullStackTranslator, no.Next)

	assert.Equal(t, []string{FullStackResultDocker, FullStackResultBinaries}, g.MustLookup(FullStackDeployment).Targets())
}

func TestPoolConnection_Transitions(t *testing.T) {
	g := PoolConnection.Graph

	pool := g.MustLookup(PoolConnectionPool).(*steps.Question)
	require.Len(t, pool.Options, len(configgen.Pools))
	assert.Equal(t, configgen.KeySelectedPool, pool.FieldName())

	decision := g.MustLookup(PoolConnectionTemplateDecision).(*steps.Question)
	assert.Equal(t, []string{PoolConnectionNetwork, PoolConnectionTranslator}, decision.Targets())

	network := g.MustLookup(PoolConnectionNetwork).(*steps.Question)
	assert.Len(t, network.Options, 3)
	for _, o := range network.Options {
		assert.Equal(t, []string{PoolConnectionClient}, g.MustLookup(o.Next).Targets())
	}
}

func fieldDefault(t *testing.T, g *steps.Graph, stepID, key string, data map[string]any) any {
	t.Helper()
	for _, f := range steps.Describe(g.MustLookup(stepID), data).Fields {
		if f.Key == key {
			return f.Default
		}
	}
	t.Fatalf("step %s has no field %s", stepID, key)
	return nil
}

func TestDefaults_AggregateChannels(t *testing.T) {
	g := FullStack.Graph

	assert.Equal(t, false, fieldDefault(t, g, FullStackTranslator, configgen.KeyAggregateChannels,
		map[string]any{configgen.KeyConstructTemplates: true}))
	assert.Equal(t, true, fieldDefault(t, g, FullStackTranslator, configgen.KeyAggregateChannels,
		map[string]any{configgen.KeyConstructTemplates: false}))
	assert.Equal(t, true, fieldDefault(t, g, FullStackTranslator, configgen.KeyAggregateChannels,
		map[string]any{configgen.KeyConstructTemplates: true, configgen.KeyAggregateChannels: true}))
}

func TestDefaults_UpstreamAuthorityPubkey(t *testing.T) {
	g := PoolConnection.Graph

	assert.Equal(t, configgen.DefaultAuthorityPublicKey,
		fieldDefault(t, g, PoolConnectionTranslator, configgen.KeyUpstreamAuthorityPubkey, nil))

	pool := configgen.Pools[0]
	assert.Equal(t, pool.AuthorityPubkey,
		fieldDefault(t, g, PoolConnectionTranslator, configgen.KeyUpstreamAuthorityPubkey,
			map[string]any{configgen.KeySelectedPool: pool.ID}))
}

func TestDefaults_SocketPath(t *testing.T) {
	orig := goos
	t.Cleanup(func() { goos = orig })
	g := FullStack.Graph

	goos = "linux"
	assert.Equal(t, "~/.bitcoin/testnet4/node.sock",
		fieldDefault(t, g, "bitcoin_setup_testnet4", configgen.KeyBitcoinSocketPath, nil))

	goos = "darwin"
	assert.Equal(t, "~/Library/Application Support/Bitcoin/node.sock",
		fieldDefault(t, g, "bitcoin_setup_mainnet", configgen.KeyBitcoinSocketPath, nil))

	goos = "linux"
	assert.Equal(t, "~/.bitcoin/testnet4/node.sock",
		fieldDefault(t, g, "bitcoin_setup_testnet4", configgen.KeyBitcoinSocketPath,
			map[string]any{configgen.KeyBitcoinSocketPath: "~/.bitcoin/node.sock"}),
		"another network's default is replaced")
	assert.Equal(t, "/srv/btc/node.sock",
		fieldDefault(t, g, "bitcoin_setup_testnet4", configgen.KeyBitcoinSocketPath,
			map[string]any{configgen.KeyBitcoinSocketPath: "/srv/btc/node.sock"}),
		"a custom path is kept")
}
