package configgen

// Well known SRI values shared by the process configurations.
const (
	DefaultAuthorityPublicKey = "9auqWEzQDVyd2oe1JVGFLMLHZtCo2FFqZwtKA5gd9xbuEu7PH72"
	DefaultAuthoritySecretKey = "mkDLTBBRxdBv998612qipDYoTK3YUrqLe8uWw7gu3iXbSrn2n"

	DefaultPoolPort = 34254
	DefaultJDSPort  = 34264
	DefaultJDCPort  = 34265
	// TranslatorPort is the port miners connect to.
	TranslatorPort = 34255

	// PayoutAddressPlaceholder marks a payout address the operator still
	// has to fill in.
	PayoutAddressPlaceholder = "<payout-address>"
)

// PoolSettings are the tunables of the pool configuration.
type PoolSettings struct {
	AuthorityPublicKey string
	AuthoritySecretKey string
	ListenAddress      string
	PoolSignature      string
	PayoutAddress      string
	FeeThreshold       int
	MinInterval        int
	SharesPerMinute    float64
	ShareBatchSize     int
}

// JDSSettings are the tunables of the job declarator server configuration.
type JDSSettings struct {
	AuthorityPublicKey string
	AuthoritySecretKey string
	ListenJDAddress    string
	PayoutAddress      string
	CoreRPCURL         string
	CoreRPCUser        string
	CoreRPCPass        string
}

// JDCSettings are the tunables of the job declarator client configuration.
type JDCSettings struct {
	AuthorityPublicKey   string
	AuthoritySecretKey   string
	ListenAddress        string
	UserIdentity         string
	JDCSignature         string
	CoinbaseRewardScript string
	FeeThreshold         int
	MinInterval          int
	SharesPerMinute      float64
	ShareBatchSize       int
}

// TranslatorSettings are the tunables of the translator configuration.
type TranslatorSettings struct {
	DownstreamAddress          string
	DownstreamPort             int
	UserIdentity               string
	MinIndividualMinerHashrate float64
	SharesPerMinute            float64
	// Aggregation defaults depend on the upstream: a JDC wants one channel
	// per miner, a pool is happy with an aggregated one.
	AggregateChannelsWithJDC  bool
	AggregateChannelsWithPool bool
}

// PoolDefaults fills pool answers the operator did not give.
var PoolDefaults = PoolSettings{
	AuthorityPublicKey: DefaultAuthorityPublicKey,
	AuthoritySecretKey: DefaultAuthoritySecretKey,
	ListenAddress:      "0.0.0.0:34254",
	PoolSignature:      "Stratum V2 SRI Pool",
	PayoutAddress:      PayoutAddressPlaceholder,
	FeeThreshold:       100,
	MinInterval:        5,
	SharesPerMinute:    6.0,
	ShareBatchSize:     10,
}

// JDSDefaults fills job declarator server answers the operator did not give.
var JDSDefaults = JDSSettings{
	AuthorityPublicKey: DefaultAuthorityPublicKey,
	AuthoritySecretKey: DefaultAuthoritySecretKey,
	ListenJDAddress:    "0.0.0.0:34264",
	PayoutAddress:      PayoutAddressPlaceholder,
	CoreRPCURL:         "127.0.0.1",
	CoreRPCUser:        "username",
	CoreRPCPass:        "password",
}

// JDCDefaults fills job declarator client answers the operator did not give.
var JDCDefaults = JDCSettings{
	AuthorityPublicKey:   DefaultAuthorityPublicKey,
	AuthoritySecretKey:   DefaultAuthoritySecretKey,
	ListenAddress:        "127.0.0.1:34265",
	UserIdentity:         "your_username_here",
	JDCSignature:         "Stratum V2 SRI JDC",
	CoinbaseRewardScript: PayoutAddressPlaceholder,
	FeeThreshold:         100,
	MinInterval:          5,
	SharesPerMinute:      6.0,
	ShareBatchSize:       10,
}

// TranslatorDefaults fills translator answers the operator did not give.
var TranslatorDefaults = TranslatorSettings{
	DownstreamAddress:          "0.0.0.0",
	DownstreamPort:             TranslatorPort,
	UserIdentity:               "your_username_here",
	MinIndividualMinerHashrate: 10000000000000.0,
	SharesPerMinute:            6.0,
	AggregateChannelsWithJDC:   false,
	AggregateChannelsWithPool:  true,
}
