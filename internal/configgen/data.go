package configgen

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// TemplateData is the read-only projection of wizard answers consumed by the
// builders. Optional numeric and boolean answers are pointers so that an
// absent answer can be told apart from an explicit zero.
type TemplateData struct {
	Network    Network
	SocketPath string

	PoolSignature     string
	PoolPayoutAddress string
	ListenAddress     string
	FeeThreshold      *int
	MinInterval       *int
	SharesPerMinute   *float64
	ShareBatchSize    *int
	CoreRPCUser       string
	CoreRPCPass       string
	CoreRPCPort       *int

	UserIdentity         string
	JDCSignature         string
	CoinbaseRewardScript string
	ClientFeeThreshold   *int
	ClientMinInterval    *int
	ClientShareBatchSize *int

	ClientSharesPerMinute      *float64
	AggregateChannels          *bool
	MinIndividualMinerHashrate *float64
	UpstreamAuthorityPubkey    string

	SelectedPool       string
	ConstructTemplates bool
}

// FromData projects raw wizard data into TemplateData. Values that cannot
// be converted to the expected type are treated as absent. Integer answers
// must be whole decimal numbers.
func FromData(data map[string]any) TemplateData {
	return TemplateData{
		Network:    Network(str(data, KeySelectedNetwork)),
		SocketPath: str(data, KeyBitcoinSocketPath),

		PoolSignature:     str(data, KeyPoolSignature),
		PoolPayoutAddress: str(data, KeyPoolPayoutAddress),
		ListenAddress:     str(data, KeyListenAddress),
		FeeThreshold:      intPtr(data, KeyFeeThreshold),
		MinInterval:       intPtr(data, KeyMinInterval),
		SharesPerMinute:   floatPtr(data, KeySharesPerMinute),
		ShareBatchSize:    intPtr(data, KeyShareBatchSize),
		CoreRPCUser:       str(data, KeyCoreRPCUser),
		CoreRPCPass:       str(data, KeyCoreRPCPass),
		CoreRPCPort:       intPtr(data, KeyCoreRPCPort),

		UserIdentity:         str(data, KeyUserIdentity),
		JDCSignature:         str(data, KeyJDCSignature),
		CoinbaseRewardScript: str(data, KeyCoinbaseRewardScript),
		ClientFeeThreshold:   intPtr(data, KeyClientFeeThreshold),
		ClientMinInterval:    intPtr(data, KeyClientMinInterval),
		ClientShareBatchSize: intPtr(data, KeyClientShareBatchSize),

		ClientSharesPerMinute:      floatPtr(data, KeyClientSharesPerMinute),
		AggregateChannels:          boolPtr(data, KeyAggregateChannels),
		MinIndividualMinerHashrate: floatPtr(data, KeyMinIndividualMinerHashrate),
		UpstreamAuthorityPubkey:    str(data, KeyUpstreamAuthorityPubkey),

		SelectedPool:       str(data, KeySelectedPool),
		ConstructTemplates: cast.ToBool(data[KeyConstructTemplates]),
	}
}

func str(data map[string]any, key string) string {
	v, ok := data[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(cast.ToString(v))
}

func blank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func intPtr(data map[string]any, key string) *int {
	v := data[key]
	if blank(v) {
		return nil
	}
	n, err := toInt(v)
	if err != nil {
		return nil
	}
	return &n
}

// toInt converts v without truncating fractions. Strings are read as base
// 10, so a leading zero does not switch to octal.
func toInt(v any) (int, error) {
	var f float64
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		if n, err := strconv.ParseInt(s, 10, 0); err == nil {
			return int(n), nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a decimal number", val)
		}
		f = parsed
	case float64:
		f = val
	case float32:
		f = float64(val)
	default:
		return cast.ToIntE(v)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%v is not a whole number", v)
	}
	return int(f), nil
}

func floatPtr(data map[string]any, key string) *float64 {
	v := data[key]
	if blank(v) {
		return nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return nil
	}
	return &f
}

func boolPtr(data map[string]any, key string) *bool {
	v := data[key]
	if blank(v) {
		return nil
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return nil
	}
	return &b
}
