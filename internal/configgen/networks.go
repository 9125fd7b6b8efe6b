package configgen

import "sort"

// Network is a Bitcoin network the stack can run on.
type Network string

const (
	Mainnet  Network = "mainnet"
	Testnet4 Network = "testnet4"
	Signet   Network = "signet"
)

// DefaultNetwork is used when no network was selected.
const DefaultNetwork = Mainnet

// NetworkInfo holds the per-network values of a Bitcoin Core node.
type NetworkInfo struct {
	Name          Network
	Label         string
	SocketPath    string
	MacSocketPath string
	RPCPort       int
}

// Networks is the lookup table for network dependent defaults.
var Networks = map[Network]NetworkInfo{
	Mainnet: {
		Name:          Mainnet,
		Label:         "Mainnet",
		SocketPath:    "~/.bitcoin/node.sock",
		MacSocketPath: "~/Library/Application Support/Bitcoin/node.sock",
		RPCPort:       8332,
	},
	Testnet4: {
		Name:          Testnet4,
		Label:         "Testnet4",
		SocketPath:    "~/.bitcoin/testnet4/node.sock",
		MacSocketPath: "~/Library/Application Support/Bitcoin/testnet4/node.sock",
		RPCPort:       48332,
	},
	Signet: {
		Name:          Signet,
		Label:         "Signet",
		SocketPath:    "~/.bitcoin/signet/node.sock",
		MacSocketPath: "~/Library/Application Support/Bitcoin/signet/node.sock",
		RPCPort:       38332,
	},
}

// LookupNetwork returns the table entry for name, falling back to
// DefaultNetwork for unknown or empty names.
func LookupNetwork(name Network) NetworkInfo {
	if info, ok := Networks[name]; ok {
		return info
	}
	return Networks[DefaultNetwork]
}

// Socket returns the node socket path for the given GOOS.
func (n NetworkInfo) Socket(goos string) string {
	if goos == "darwin" {
		return n.MacSocketPath
	}
	return n.SocketPath
}

// NetworkNames returns the known network names, sorted.
func NetworkNames() []string {
	names := make([]string, 0, len(Networks))
	for n := range Networks {
		names = append(names, string(n))
	}
	sort.Strings(names)
	return names
}
