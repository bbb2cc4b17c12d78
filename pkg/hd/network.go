package hd

// Network selects the version bytes used by extended key serialization.
type Network struct {
	Name           string
	PrivateVersion [4]byte
	PublicVersion  [4]byte
}

var (
	// Mainnet serializes as xprv/xpub.
	Mainnet = Network{
		Name:           "mainnet",
		PrivateVersion: [4]byte{0x04, 0x88, 0xAD, 0xE4},
		PublicVersion:  [4]byte{0x04, 0x88, 0xB2, 0x1E},
	}
	// Testnet serializes as tprv/tpub.
	Testnet = Network{
		Name:           "testnet",
		PrivateVersion: [4]byte{0x04, 0x35, 0x83, 0x94},
		PublicVersion:  [4]byte{0x04, 0x35, 0x87, 0xCF},
	}
)

var knownNetworks = []Network{Mainnet, Testnet}

// NetworkByName returns the network called name.
func NetworkByName(name string) (Network, bool) {
	for _, n := range knownNetworks {
		if n.Name == name {
			return n, true
		}
	}
	return Network{}, false
}

// matchVersion reports whether v is one of n's versions and if so whether
// it is the private one.
func (n Network) matchVersion(v [4]byte) (private, ok bool) {
	switch v {
	case n.PrivateVersion:
		return true, true
	case n.PublicVersion:
		return false, true
	}
	return false, false
}
