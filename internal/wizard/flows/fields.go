package flows

import (
	"fmt"
	"runtime"

	"github.com/spf13/cast"

	"github.com/stratum-mining/sv2-wizard/internal/configgen"
	"github.com/stratum-mining/sv2-wizard/internal/deploy"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/steps"
)

// goos is swapped in tests to pin socket path defaults.
var goos = runtime.GOOS

// Validation tags of form fields. Text answers are written into quoted TOML
// strings.
const (
	quotable = "excludesall=\"\\"
	counter  = "whole,min=0"
	positive = "whole,min=1"
	rate     = "gt=0"
	hostPort = "hostname_port"
)

// keep pre-fills a field with its previous answer, or def when unanswered.
func keep(key string, def any) func(map[string]any) any {
	return func(data map[string]any) any {
		if v, ok := data[key]; ok && v != nil {
			return v
		}
		return def
	}
}

func networkQuestion(id string, networks []configgen.Network) *steps.Question {
	q := &steps.Question{
		StepID:      id,
		Title:       "Select Bitcoin Network",
		Description: "Which network will your Bitcoin node operate on?",
		Field:       configgen.KeySelectedNetwork,
	}
	for _, n := range networks {
		info := configgen.Networks[n]
		q.Options = append(q.Options, steps.Option{
			ID:       "opt_" + string(n),
			Label:    info.Label,
			SubLabel: networkSubLabel(n),
			Value:    string(n),
			Next:     bitcoinSetupID(n),
		})
	}
	return q
}

func networkSubLabel(n configgen.Network) string {
	if n == configgen.Mainnet {
		return "Production network"
	}
	return "Testing network"
}

func bitcoinSetupID(n configgen.Network) string { return "bitcoin_setup_" + string(n) }

func bitcoinSetup(n configgen.Network, description, next string) *steps.Instruction {
	info := configgen.Networks[n]
	flag := ""
	if n != configgen.Mainnet {
		flag = " -" + string(n)
	}
	return &steps.Instruction{
		StepID:      bitcoinSetupID(n),
		Title:       fmt.Sprintf("Bitcoin Core Setup (%s)", info.Label),
		Description: description,
		Content: steps.Content{
			Kind: steps.ContentText,
			Ref:  "bitcoin-setup",
			Body: fmt.Sprintf("Run Bitcoin Core 30.0 or newer with IPC enabled:\n\n  bitcoin -m node -ipcbind=unix%s\n\nThe template provider reads blocks over the node's unix socket.", flag),
		},
		Fields: []steps.Field{{
			Key:         configgen.KeyBitcoinSocketPath,
			Label:       "Bitcoin Core socket path",
			Description: "Path of node.sock created by -ipcbind=unix.",
			Type:        steps.FieldText,
			Required:    true,
			Validate:    quotable,
			Default:     socketDefault(info),
		}},
		Next: next,
	}
}

// socketDefault keeps an earlier answer unless it belongs to another
// network's default location.
func socketDefault(info configgen.NetworkInfo) func(map[string]any) any {
	return func(data map[string]any) any {
		if v := cast.ToString(data[configgen.KeyBitcoinSocketPath]); v != "" && !isDefaultSocket(v) {
			return v
		}
		return info.Socket(goos)
	}
}

func isDefaultSocket(path string) bool {
	for _, n := range configgen.Networks {
		if path == n.SocketPath || path == n.MacSocketPath {
			return true
		}
	}
	return false
}

func templateDecision(id, yesNext, noNext string) *steps.Question {
	return &steps.Question{
		StepID:      id,
		Title:       "Miner Configuration",
		Description: "Do you want to construct your own block templates (JDC)?",
		Field:       configgen.KeyConstructTemplates,
		Options: []steps.Option{
			{ID: "opt_client_tpl_yes", Label: "Yes, construct templates", SubLabel: "Use your Bitcoin Core node", Value: true, Next: yesNext},
			{ID: "opt_client_tpl_no", Label: "No, standard mining", SubLabel: "Pool constructs templates", Value: false, Next: noNext},
		},
	}
}

func clientConfiguration(id, next string) *steps.Instruction {
	d := configgen.JDCDefaults
	return &steps.Instruction{
		StepID:      id,
		Title:       "JD Client Configuration",
		Description: "Configure your Job Declarator Client settings.",
		Content:     steps.Content{Kind: steps.ContentForm, Ref: "client-config"},
		Fields: []steps.Field{
			{Key: configgen.KeyUserIdentity, Label: "User identity", Description: "Username of your account with the pool.", Type: steps.FieldText, Required: true, Validate: quotable, Default: keep(configgen.KeyUserIdentity, nil)},
			{Key: configgen.KeyCoinbaseRewardScript, Label: "Coinbase reward address", Description: "Address that receives the reward when falling back to solo mining.", Type: steps.FieldText, Required: true, Validate: quotable, Default: keep(configgen.KeyCoinbaseRewardScript, nil)},
			{Key: configgen.KeyJDCSignature, Label: "JDC signature", Description: "String included in the coinbase transaction.", Type: steps.FieldText, Validate: quotable, Default: keep(configgen.KeyJDCSignature, d.JDCSignature)},
			{Key: configgen.KeyClientFeeThreshold, Label: "Fee threshold (sats)", Type: steps.FieldNumber, Advanced: true, Validate: counter, Default: keep(configgen.KeyClientFeeThreshold, d.FeeThreshold)},
			{Key: configgen.KeyClientMinInterval, Label: "Min template interval (s)", Type: steps.FieldNumber, Advanced: true, Validate: positive, Default: keep(configgen.KeyClientMinInterval, d.MinInterval)},
			{Key: configgen.KeyClientShareBatchSize, Label: "Share batch size", Type: steps.FieldNumber, Advanced: true, Validate: positive, Default: keep(configgen.KeyClientShareBatchSize, d.ShareBatchSize)},
		},
		Next: next,
	}
}

func translatorConfiguration(id, next string) *steps.Instruction {
	d := configgen.TranslatorDefaults
	return &steps.Instruction{
		StepID:      id,
		Title:       "Translator Proxy Configuration",
		Description: "Configure the translator proxy that connects miners to the pool.",
		Content:     steps.Content{Kind: steps.ContentForm, Ref: "translator-config"},
		Fields: []steps.Field{
			{Key: configgen.KeyUserIdentity, Label: "User identity", Description: "Username of your account with the pool, used to open channels upstream.", Type: steps.FieldText, Required: true, Validate: quotable, Default: keep(configgen.KeyUserIdentity, nil)},
			{Key: configgen.KeyMinIndividualMinerHashrate, Label: "Min individual miner hashrate (H/s)", Description: "100 TH/s is entered as 100000000000000.", Type: steps.FieldNumber, Advanced: true, Validate: rate, Default: keep(configgen.KeyMinIndividualMinerHashrate, d.MinIndividualMinerHashrate)},
			{Key: configgen.KeyAggregateChannels, Label: "Aggregate channels", Description: "Aggregate all miners into one upstream channel.", Type: steps.FieldBool, Advanced: true, Default: aggregateDefault},
			{Key: configgen.KeyClientSharesPerMinute, Label: "Shares per minute", Type: steps.FieldNumber, Advanced: true, Validate: rate, Default: keep(configgen.KeyClientSharesPerMinute, d.SharesPerMinute)},
			{Key: configgen.KeyUpstreamAuthorityPubkey, Label: "Upstream authority public key", Description: "Authority key of the JDC or pool the translator connects to.", Type: steps.FieldText, Advanced: true, Validate: quotable, Default: upstreamAuthorityDefault},
		},
		Next: next,
	}
}

// aggregateDefault follows the template decision: a JDC upstream wants one
// channel per miner, a pool upstream an aggregated one.
func aggregateDefault(data map[string]any) any {
	if v, ok := data[configgen.KeyAggregateChannels]; ok && v != nil {
		return v
	}
	if cast.ToBool(data[configgen.KeyConstructTemplates]) {
		return configgen.TranslatorDefaults.AggregateChannelsWithJDC
	}
	return configgen.TranslatorDefaults.AggregateChannelsWithPool
}

func upstreamAuthorityDefault(data map[string]any) any {
	if v, ok := data[configgen.KeyUpstreamAuthorityPubkey]; ok && v != nil {
		return v
	}
	if p, ok := configgen.LookupPool(cast.ToString(data[configgen.KeySelectedPool])); ok {
		return p.AuthorityPubkey
	}
	return configgen.DefaultAuthorityPublicKey
}

func deploymentQuestion(id, dockerResult, binariesResult, what string) *steps.Question {
	return &steps.Question{
		StepID:      id,
		Title:       "Choose Deployment Method",
		Description: fmt.Sprintf("How would you like to deploy the %s components?", what),
		Field:       configgen.KeyDeploymentMethod,
		Options: []steps.Option{
			{ID: "deploy_docker", Label: "Docker", SubLabel: "Recommended for ease of use", Value: string(deploy.Docker), Next: dockerResult},
			{ID: "deploy_bin", Label: "Binaries", SubLabel: "Manual setup for advanced users", Value: string(deploy.Binaries), Next: binariesResult},
		},
	}
}

func result(id, title string, topology deploy.Topology, method deploy.Method) *steps.Result {
	return &steps.Result{
		StepID:  id,
		Title:   title,
		Content: steps.Content{Kind: steps.ContentText, Ref: fmt.Sprintf("deployment:%s:%s", topology, method)},
	}
}

func poolConfiguration(id, next string) *steps.Instruction {
	d := configgen.PoolDefaults
	j := configgen.JDSDefaults
	return &steps.Instruction{
		StepID:      id,
		Title:       "Pool Configuration",
		Description: "Configure your local mining pool settings.",
		Content:     steps.Content{Kind: steps.ContentForm, Ref: "pool-config"},
		Fields: []steps.Field{
			{Key: configgen.KeyPoolPayoutAddress, Label: "Pool payout address", Description: "Address that receives the block rewards.", Type: steps.FieldText, Required: true, Validate: quotable, Default: keep(configgen.KeyPoolPayoutAddress, nil)},
			{Key: configgen.KeyPoolSignature, Label: "Pool signature", Description: "String included in the coinbase transaction.", Type: steps.FieldText, Validate: quotable, Default: keep(configgen.KeyPoolSignature, d.PoolSignature)},
			{Key: configgen.KeyCoreRPCUser, Label: "Bitcoin Core RPC user", Description: "Used by the JD server to read the mempool.", Type: steps.FieldText, Validate: quotable, Default: keep(configgen.KeyCoreRPCUser, j.CoreRPCUser)},
			{Key: configgen.KeyCoreRPCPass, Label: "Bitcoin Core RPC password", Type: steps.FieldText, Validate: quotable, Default: keep(configgen.KeyCoreRPCPass, j.CoreRPCPass)},
			{Key: configgen.KeyListenAddress, Label: "Listen address", Type: steps.FieldText, Advanced: true, Validate: hostPort, Default: keep(configgen.KeyListenAddress, d.ListenAddress)},
			{Key: configgen.KeyFeeThreshold, Label: "Fee threshold (sats)", Type: steps.FieldNumber, Advanced: true, Validate: counter, Default: keep(configgen.KeyFeeThreshold, d.FeeThreshold)},
			{Key: configgen.KeyMinInterval, Label: "Min template interval (s)", Type: steps.FieldNumber, Advanced: true, Validate: positive, Default: keep(configgen.KeyMinInterval, d.MinInterval)},
			{Key: configgen.KeySharesPerMinute, Label: "Shares per minute", Type: steps.FieldNumber, Advanced: true, Validate: rate, Default: keep(configgen.KeySharesPerMinute, d.SharesPerMinute)},
			{Key: configgen.KeyShareBatchSize, Label: "Share batch size", Type: steps.FieldNumber, Advanced: true, Validate: positive, Default: keep(configgen.KeyShareBatchSize, d.ShareBatchSize)},
		},
		Next: next,
	}
}
