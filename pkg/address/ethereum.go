package address

import (
	"encoding/hex"
	"strings"

	"github.com/Klingon-tech/klingnet-keys/pkg/crypto"
	"github.com/Klingon-tech/klingnet-keys/pkg/keyerr"
)

func (e *Encoder) encodeEthereum(pub []byte) (Address, error) {
	h, err := e.keccakHash(pub)
	if err != nil {
		return Address{}, err
	}
	return Address{chain: Ethereum, payload: h, text: ChecksumHex(h)}, nil
}

// ChecksumHex renders a 20-byte address as 0x-prefixed EIP-55 mixed-case hex.
func ChecksumHex(addr []byte) string {
	return "0x" + checksumCase(hex.EncodeToString(addr))
}

// checksumCase applies EIP-55 casing to lowercase hex. The hash is taken
// over the ASCII hex characters, not the raw address bytes.
func checksumCase(lower string) string {
	hash := crypto.Keccak256([]byte(lower))
	out := []byte(lower)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := hash[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if nibble >= 8 {
			out[i] = c - 'a' + 'A'
		}
	}
	return string(out)
}

// IsChecksummed reports whether a 0x-prefixed address carries valid
// EIP-55 casing. All-lowercase and all-uppercase forms carry no checksum
// and report false.
func IsChecksummed(text string) bool {
	body, ok := strings.CutPrefix(text, "0x")
	if !ok || len(body) != 2*HashSize {
		return false
	}
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return false
	}
	return checksumCase(strings.ToLower(body)) == body
}

func parseEthereum(text string) (Address, error) {
	const op = "parse ethereum address"

	body, ok := strings.CutPrefix(text, "0x")
	if !ok {
		return Address{}, keyerr.New(keyerr.KindAddress, op, "missing 0x prefix")
	}
	if len(body) != 2*HashSize {
		return Address{}, keyerr.Newf(keyerr.KindAddress, op, "%d hex characters, want %d", len(body), 2*HashSize)
	}
	raw, err := hex.DecodeString(body)
	if err != nil {
		return Address{}, keyerr.Wrap(keyerr.KindAddress, op, err)
	}

	lower, upper := strings.ToLower(body), strings.ToUpper(body)
	if body != lower && body != upper && checksumCase(lower) != body {
		return Address{}, keyerr.New(keyerr.KindAddress, op, "EIP-55 checksum mismatch")
	}
	return Address{chain: Ethereum, payload: raw, text: ChecksumHex(raw)}, nil
}
