package configgen

import (
	"sort"

	"github.com/stratum-mining/sv2-wizard/internal/util/placeholder"
)

// TranslatorOptions selects the translator template variant.
type TranslatorOptions struct {
	// UseJDC points the translator at a local job declarator client instead
	// of directly at the pool.
	UseJDC bool
}

// BuildPool renders pool-config.toml.
func BuildPool(d TemplateData) string {
	return placeholder.Resolve(poolTemplate, poolValues(d))
}

// BuildJDS renders jd-server-config.toml.
func BuildJDS(d TemplateData) string {
	return placeholder.Resolve(jdsTemplate, jdsValues(d))
}

// BuildJDC renders jd-client-config.toml.
func BuildJDC(d TemplateData) string {
	return placeholder.Resolve(jdcTemplate, jdcValues(d))
}

// BuildTranslator renders translator-config.toml for the chosen upstream.
func BuildTranslator(d TemplateData, opts TranslatorOptions) string {
	tmpl := translatorPoolTemplate
	if opts.UseJDC {
		tmpl = translatorJDCTemplate
	}
	return placeholder.Resolve(tmpl, translatorValues(d, opts))
}

// PromisedPoolKeys returns the placeholder keys BuildPool always supplies.
func PromisedPoolKeys() []string { return sortedKeys(poolValues(TemplateData{})) }

// PromisedJDSKeys returns the placeholder keys BuildJDS always supplies.
func PromisedJDSKeys() []string { return sortedKeys(jdsValues(TemplateData{})) }

// PromisedJDCKeys returns the placeholder keys BuildJDC always supplies.
func PromisedJDCKeys() []string { return sortedKeys(jdcValues(TemplateData{})) }

// PromisedTranslatorKeys returns the placeholder keys BuildTranslator always
// supplies for the given variant.
func PromisedTranslatorKeys(opts TranslatorOptions) []string {
	return sortedKeys(translatorValues(TemplateData{}, opts))
}

func poolValues(d TemplateData) placeholder.Values {
	def := PoolDefaults
	network := LookupNetwork(d.Network)

	return placeholder.Values{
		"AUTHORITY_PUBLIC_KEY":   def.AuthorityPublicKey,
		"AUTHORITY_SECRET_KEY":   def.AuthoritySecretKey,
		"LISTEN_ADDRESS":         orString(d.ListenAddress, def.ListenAddress),
		"COINBASE_REWARD_SCRIPT": orString(d.PoolPayoutAddress, def.PayoutAddress),
		"POOL_SIGNATURE":         orString(d.PoolSignature, def.PoolSignature),
		"SHARES_PER_MINUTE":      orFloat(d.SharesPerMinute, def.SharesPerMinute),
		"SHARE_BATCH_SIZE":       orInt(d.ShareBatchSize, def.ShareBatchSize),
		"NETWORK":                string(network.Name),
		"SOCKET_PATH":            orString(d.SocketPath, network.SocketPath),
		"FEE_THRESHOLD":          orInt(d.FeeThreshold, def.FeeThreshold),
		"MIN_INTERVAL":           orInt(d.MinInterval, def.MinInterval),
	}
}

func jdsValues(d TemplateData) placeholder.Values {
	def := JDSDefaults
	network := LookupNetwork(d.Network)

	return placeholder.Values{
		"AUTHORITY_PUBLIC_KEY":   def.AuthorityPublicKey,
		"AUTHORITY_SECRET_KEY":   def.AuthoritySecretKey,
		"COINBASE_REWARD_SCRIPT": orString(d.PoolPayoutAddress, def.PayoutAddress),
		"LISTEN_JD_ADDRESS":      def.ListenJDAddress,
		"CORE_RPC_URL":           def.CoreRPCURL,
		"CORE_RPC_PORT":          orInt(d.CoreRPCPort, network.RPCPort),
		"CORE_RPC_USER":          orString(d.CoreRPCUser, def.CoreRPCUser),
		"CORE_RPC_PASS":          orString(d.CoreRPCPass, def.CoreRPCPass),
	}
}

func jdcValues(d TemplateData) placeholder.Values {
	def := JDCDefaults
	network := LookupNetwork(d.Network)
	upstream := upstreamPool(d.SelectedPool)

	feeThreshold := d.ClientFeeThreshold
	if feeThreshold == nil {
		feeThreshold = d.FeeThreshold
	}
	minInterval := d.ClientMinInterval
	if minInterval == nil {
		minInterval = d.MinInterval
	}
	batchSize := d.ClientShareBatchSize
	if batchSize == nil {
		batchSize = d.ShareBatchSize
	}

	return placeholder.Values{
		"LISTEN_ADDRESS":            def.ListenAddress,
		"AUTHORITY_PUBLIC_KEY":      def.AuthorityPublicKey,
		"AUTHORITY_SECRET_KEY":      def.AuthoritySecretKey,
		"USER_IDENTITY":             orString(d.UserIdentity, def.UserIdentity),
		"SHARES_PER_MINUTE":         orFloat(d.ClientSharesPerMinute, def.SharesPerMinute),
		"SHARE_BATCH_SIZE":          orInt(batchSize, def.ShareBatchSize),
		"JDC_SIGNATURE":             orString(d.JDCSignature, def.JDCSignature),
		"COINBASE_REWARD_SCRIPT":    orString(d.CoinbaseRewardScript, def.CoinbaseRewardScript),
		"UPSTREAM_AUTHORITY_PUBKEY": upstream.AuthorityPubkey,
		"POOL_ADDRESS":              upstream.Address,
		"POOL_PORT":                 upstream.Port,
		"JDS_ADDRESS":               upstream.JDSAddress,
		"JDS_PORT":                  upstream.JDSPort,
		"NETWORK":                   string(network.Name),
		"SOCKET_PATH":               orString(d.SocketPath, network.SocketPath),
		"FEE_THRESHOLD":             orInt(feeThreshold, def.FeeThreshold),
		"MIN_INTERVAL":              orInt(minInterval, def.MinInterval),
	}
}

func translatorValues(d TemplateData, opts TranslatorOptions) placeholder.Values {
	def := TranslatorDefaults
	upstream := upstreamPool(d.SelectedPool)

	aggregate := def.AggregateChannelsWithPool
	if opts.UseJDC {
		aggregate = def.AggregateChannelsWithJDC
	}
	if d.AggregateChannels != nil {
		aggregate = *d.AggregateChannels
	}

	values := placeholder.Values{
		"DOWNSTREAM_ADDRESS":            def.DownstreamAddress,
		"DOWNSTREAM_PORT":               def.DownstreamPort,
		"USER_IDENTITY":                 orString(d.UserIdentity, def.UserIdentity),
		"AGGREGATE_CHANNELS":            aggregate,
		"MIN_INDIVIDUAL_MINER_HASHRATE": orFloat(d.MinIndividualMinerHashrate, def.MinIndividualMinerHashrate),
		"SHARES_PER_MINUTE":             orFloat(d.ClientSharesPerMinute, def.SharesPerMinute),
		"UPSTREAM_AUTHORITY_PUBKEY":     orString(d.UpstreamAuthorityPubkey, upstream.AuthorityPubkey),
	}
	if !opts.UseJDC {
		values["UPSTREAM_ADDRESS"] = upstream.Address
		values["UPSTREAM_PORT"] = upstream.Port
	}
	return values
}

func orString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orInt(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func orFloat(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func sortedKeys(v placeholder.Values) []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
