package configgen

// Data keys written by the wizard flows and read by FromData.
const (
	KeySelectedNetwork    = "selectedNetwork"
	KeyBitcoinSocketPath  = "bitcoinSocketPath"
	KeyConstructTemplates = "constructTemplates"
	KeySelectedPool       = "selectedPool"
	KeyDeploymentMethod   = "deploymentMethod"

	// Pool form.
	KeyPoolSignature     = "poolSignature"
	KeyPoolPayoutAddress = "poolPayoutAddress"
	KeyListenAddress     = "listenAddress"
	KeyFeeThreshold      = "feeThreshold"
	KeyMinInterval       = "minInterval"
	KeySharesPerMinute   = "sharesPerMinute"
	KeyShareBatchSize    = "shareBatchSize"
	KeyCoreRPCUser       = "coreRpcUser"
	KeyCoreRPCPass       = "coreRpcPass"
	KeyCoreRPCPort       = "coreRpcPort"

	// Job declarator client form.
	KeyUserIdentity         = "userIdentity"
	KeyJDCSignature         = "jdcSignature"
	KeyCoinbaseRewardScript = "coinbaseRewardScript"
	KeyClientFeeThreshold   = "clientFeeThreshold"
	KeyClientMinInterval    = "clientMinInterval"
	KeyClientShareBatchSize = "clientShareBatchSize"

	// Translator form.
	KeyClientSharesPerMinute      = "clientSharesPerMinute"
	KeyAggregateChannels          = "aggregateChannels"
	KeyMinIndividualMinerHashrate = "minIndividualMinerHashrate"
	KeyUpstreamAuthorityPubkey    = "tproxyUpstreamAuthorityPubkey"
)
