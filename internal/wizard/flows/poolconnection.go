package flows

import (
	"github.com/stratum-mining/sv2-wizard/internal/configgen"
	"github.com/stratum-mining/sv2-wizard/internal/deploy"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/steps"
)

// Step IDs of the pool-connection wizard.
const (
	PoolConnectionPool             = "pool_selection"
	PoolConnectionTemplateDecision = "template_decision"
	PoolConnectionNetwork          = "bitcoin_network_selection"
	PoolConnectionClient           = "client_configuration"
	PoolConnectionTranslator       = "translator_proxy_configuration"
	PoolConnectionDeployment       = "deployment"
	PoolConnectionResultDocker     = "result_docker"
	PoolConnectionResultBinaries   = "result_binaries"
)

const bitcoinForTemplates = "Constructing your own templates requires a running Bitcoin Core node."

func poolQuestion(id, next string) *steps.Question {
	q := &steps.Question{
		StepID:      id,
		Title:       "Select Pool",
		Description: "Which Stratum V2 pool do you want to mine on?",
		Field:       configgen.KeySelectedPool,
	}
	for _, p := range configgen.Pools {
		q.Options = append(q.Options, steps.Option{
			ID:       "pool_" + p.ID,
			Label:    p.Name,
			SubLabel: p.Address,
			Value:    p.ID,
			Next:     next,
		})
	}
	return q
}

func poolConnectionSteps() []steps.Step {
	networks := []configgen.Network{configgen.Mainnet, configgen.Testnet4, configgen.Signet}

	out := []steps.Step{
		poolQuestion(PoolConnectionPool, PoolConnectionTemplateDecision),
		templateDecision(PoolConnectionTemplateDecision, PoolConnectionNetwork, PoolConnectionTranslator),
		networkQuestion(PoolConnectionNetwork, networks),
	}
	for _, n := range networks {
		out = append(out, bitcoinSetup(n, bitcoinForTemplates, PoolConnectionClient))
	}
	return append(out,
		clientConfiguration(PoolConnectionClient, PoolConnectionTranslator),
		translatorConfiguration(PoolConnectionTranslator, PoolConnectionDeployment),
		deploymentQuestion(PoolConnectionDeployment, PoolConnectionResultDocker, PoolConnectionResultBinaries, "mining"),
		result(PoolConnectionResultDocker, "Pool Connection via Docker", deploy.PoolConnection, deploy.Docker),
		result(PoolConnectionResultBinaries, "Pool Connection via Binaries", deploy.PoolConnection, deploy.Binaries),
	)
}

// PoolConnection connects the operator's miners to an existing pool, with
// an optional JD client for constructing their own templates.
var PoolConnection = register(Definition{
	Name:     string(deploy.PoolConnection),
	Title:    "Connect to a Stratum V2 Pool",
	Subtitle: "Run a translator proxy, and optionally a JD client, in front of your miners.",
	Topology: deploy.PoolConnection,
	Graph:    steps.MustGraph(PoolConnectionPool, poolConnectionSteps()...),
})
