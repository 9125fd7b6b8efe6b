package flows

import (
	"github.com/stratum-mining/sv2-wizard/internal/configgen"
	"github.com/stratum-mining/sv2-wizard/internal/deploy"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/steps"
)

// Step IDs of the full-stack wizard.
const (
	FullStackNetwork          = "bitcoin_network_selection"
	FullStackPoolMainnet      = "pool_configuration_mainnet"
	FullStackPoolTestnet4     = "pool_configuration_testnet4"
	FullStackTemplateDecision = "client_template_decision"
	FullStackClient           = "client_configuration"
	FullStackTranslator       = "translator_proxy_configuration"
	FullStackDeployment       = "deployment_jd"
	FullStackResultDocker     = "result_jd_docker"
	FullStackResultBinaries   = "result_jd_binaries"
)

const bitcoinRequired = "A running Bitcoin Core node is required for full-stack deployment."

// FullStack deploys a pool, a JD server, an optional JD client and a
// translator on the operator's own infrastructure.
var FullStack = register(Definition{
	Name:     string(deploy.FullStack),
	Title:    "SRI Full Stack Deployment",
	Subtitle: "Deploy an entire mining pool locally. This requires a Bitcoin Core node and is for advanced users.",
	Topology: deploy.FullStack,
	Graph: steps.MustGraph(FullStackNetwork,
		networkQuestion(FullStackNetwork, []configgen.Network{configgen.Mainnet, configgen.Testnet4}),
		bitcoinSetup(configgen.Mainnet, bitcoinRequired, FullStackPoolMainnet),
		bitcoinSetup(configgen.Testnet4, bitcoinRequired, FullStackPoolTestnet4),
		poolConfiguration(FullStackPoolMainnet, FullStackTemplateDecision),
		poolConfiguration(FullStackPoolTestnet4, FullStackTemplateDecision),
		templateDecision(FullStackTemplateDecision, FullStackClient, FullStackTranslator),
		clientConfiguration(FullStackClient, FullStackTranslator),
		translatorConfiguration(FullStackTranslator, FullStackDeployment),
		deploymentQuestion(FullStackDeployment, FullStackResultDocker, FullStackResultBinaries, "Full Stack"),
		result(FullStackResultDocker, "Full Stack via Docker", deploy.FullStack, deploy.Docker),
		result(FullStackResultBinaries, "Full Stack via Binaries", deploy.FullStack, deploy.Binaries),
	),
})
