package wallet

import (
	"sort"

	"github.com/Klingon-tech/klingnet-keys/pkg/address"
	"github.com/Klingon-tech/klingnet-keys/pkg/hd"
)

// SLIP-44 coin types used by the built-in profiles.
const (
	CoinTypeBitcoin  = 0
	CoinTypeEthereum = 60
	CoinTypeCosmos   = 118

	// CoinTypeKlingnet is our registered (placeholder) coin type.
	// TODO: Register an actual coin type number.
	CoinTypeKlingnet = 8888
)

// Profile ties an address family to its BIP-44 coin type and prefix.
type Profile struct {
	Name     string
	Chain    address.Chain
	HRP      string
	CoinType uint32
}

// Path returns m/44'/coin'/account'/change/index for this profile.
func (p Profile) Path(account, change, index uint32) hd.DerivationPath {
	return hd.BIP44Path(p.CoinType, account, change, index)
}

var profiles = map[string]Profile{
	"bitcoin":  {Name: "bitcoin", Chain: address.Bitcoin, CoinType: CoinTypeBitcoin},
	"ethereum": {Name: "ethereum", Chain: address.Ethereum, CoinType: CoinTypeEthereum},
	"cosmos":   {Name: "cosmos", Chain: address.Cosmos, HRP: "cosmos", CoinType: CoinTypeCosmos},
	"osmosis":  {Name: "osmosis", Chain: address.Cosmos, HRP: "osmo", CoinType: CoinTypeCosmos},
	"juno":     {Name: "juno", Chain: address.Cosmos, HRP: "juno", CoinType: CoinTypeCosmos},
	"stargaze": {Name: "stargaze", Chain: address.Cosmos, HRP: "stars", CoinType: CoinTypeCosmos},
	"evmos":    {Name: "evmos", Chain: address.Evmos, HRP: "evmos", CoinType: CoinTypeEthereum},
	"canto":    {Name: "canto", Chain: address.Evmos, HRP: "canto", CoinType: CoinTypeEthereum},
	"klingnet": {Name: "klingnet", Chain: address.Klingnet, HRP: "kgx", CoinType: CoinTypeKlingnet},
}

// ProfileByName looks up a built-in profile.
func ProfileByName(name string) (Profile, bool) {
	p, ok := profiles[name]
	return p, ok
}

// ProfileNames returns the built-in profile names in sorted order.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
