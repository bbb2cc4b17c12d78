package address

import (
	"strings"

	"github.com/Klingon-tech/klingnet-keys/pkg/keyerr"
)

// Parse validates an address of the given chain and returns it in
// canonical form. For the Bech32 chains a non-empty hrp must match the
// address prefix.
func Parse(chain Chain, text, hrp string) (Address, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Address{}, keyerr.New(keyerr.KindAddress, "parse address", "empty address")
	}
	switch chain {
	case Bitcoin:
		return parseBitcoin(text)
	case Ethereum:
		return parseEthereum(text)
	case Cosmos, Evmos, Klingnet:
		return parseBech32(chain, text, hrp)
	default:
		return Address{}, keyerr.Newf(keyerr.KindAddress, "parse address", "unknown chain %d", uint8(chain))
	}
}

// Validate reports whether text is a valid address for chain and hrp.
func Validate(chain Chain, text, hrp string) bool {
	_, err := Parse(chain, text, hrp)
	return err == nil
}
