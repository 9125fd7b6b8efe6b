package configgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromData(t *testing.T) {
	d := FromData(map[string]any{
		KeySelectedNetwork:            "testnet4",
		KeyBitcoinSocketPath:          "  /tmp/node.sock ",
		KeyFeeThreshold:               "100",
		KeyMinInterval:                float64(5),
		KeySharesPerMinute:            6,
		KeyShareBatchSize:             "not a number",
		KeyAggregateChannels:          "true",
		KeyMinIndividualMinerHashrate: "",
		KeyConstructTemplates:         true,
	})

	assert.Equal(t, Testnet4, d.Network)
	assert.Equal(t, "/tmp/node.sock", d.SocketPath)
	require.NotNil(t, d.FeeThreshold)
	assert.Equal(t, 100, *d.FeeThreshold)
	require.NotNil(t, d.MinInterval)
	assert.Equal(t, 5, *d.MinInterval)
	require.NotNil(t, d.SharesPerMinute)
	assert.Equal(t, 6.0, *d.SharesPerMinute)
	assert.Nil(t, d.ShareBatchSize)
	require.NotNil(t, d.AggregateChannels)
	assert.True(t, *d.AggregateChannels)
	assert.Nil(t, d.MinIndividualMinerHashrate)
	assert.True(t, d.ConstructTemplates)
}

func TestFromData_IntegersAreDecimal(t *testing.T) {
	d := FromData(map[string]any{
		KeyFeeThreshold:         "010",
		KeyMinInterval:          "08",
		KeyShareBatchSize:       "0x10",
		KeyCoreRPCPort:          "18443.0",
		KeyClientFeeThreshold:   5.7,
		KeyClientMinInterval:    float64(20),
		KeyClientShareBatchSize: "2.5",
	})

	require.NotNil(t, d.FeeThreshold)
	assert.Equal(t, 10, *d.FeeThreshold, "leading zero is not octal")
	require.NotNil(t, d.MinInterval)
	assert.Equal(t, 8, *d.MinInterval)
	assert.Nil(t, d.ShareBatchSize, "hex prefixes are rejected")
	require.NotNil(t, d.CoreRPCPort)
	assert.Equal(t, 18443, *d.CoreRPCPort)
	assert.Nil(t, d.ClientFeeThreshold, "fractions are not truncated")
	require.NotNil(t, d.ClientMinInterval)
	assert.Equal(t, 20, *d.ClientMinInterval)
	assert.Nil(t, d.ClientShareBatchSize)

	out := BuildPool(d)
	assert.Contains(t, out, "fee_threshold = 10")
	assert.Contains(t, out, "min_interval = 8")
}

func TestFromData_Empty(t *testing.T) {
	assert.Equal(t, TemplateData{}, FromData(nil))
}

func TestLookupNetwork(t *testing.T) {
	assert.Equal(t, 48332, LookupNetwork(Testnet4).RPCPort)
	assert.Equal(t, Mainnet, LookupNetwork("regtest").Name)
	assert.Equal(t, "~/Library/Application Support/Bitcoin/signet/node.sock", LookupNetwork(Signet).Socket("darwin"))
	assert.Equal(t, "~/.bitcoin/signet/node.sock", LookupNetwork(Signet).Socket("linux"))
	assert.Equal(t, []string{"mainnet", "signet", "testnet4"}, NetworkNames())
}
