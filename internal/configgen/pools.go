package configgen

// Pool is a known Stratum V2 pool a translator or JDC can connect to.
type Pool struct {
	ID              string
	Name            string
	Address         string
	Port            int
	JDSAddress      string
	JDSPort         int
	AuthorityPubkey string
}

// LocalPoolID identifies the pool running next to the translator.
const LocalPoolID = "local"

// Pools lists the pools offered by the pool-connection wizard.
var Pools = []Pool{
	{
		ID:              "sri-community",
		Name:            "SRI Community Pool",
		Address:         "75.119.150.111",
		Port:            DefaultPoolPort,
		JDSAddress:      "75.119.150.111",
		JDSPort:         DefaultJDSPort,
		AuthorityPubkey: DefaultAuthorityPublicKey,
	},
	{
		ID:              LocalPoolID,
		Name:            "Local SRI Pool",
		Address:         "127.0.0.1",
		Port:            DefaultPoolPort,
		JDSAddress:      "127.0.0.1",
		JDSPort:         DefaultJDSPort,
		AuthorityPubkey: DefaultAuthorityPublicKey,
	},
}

// LookupPool finds a pool by ID.
func LookupPool(id string) (Pool, bool) {
	for _, p := range Pools {
		if p.ID == id {
			return p, true
		}
	}
	return Pool{}, false
}

// upstreamPool returns the selected pool, or the local pool when the
// selection is empty or unknown.
func upstreamPool(id string) Pool {
	if p, ok := LookupPool(id); ok {
		return p
	}
	p, _ := LookupPool(LocalPoolID)
	return p
}
