package address

import (
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/Klingon-tech/klingnet-keys/pkg/keyerr"
)

// Bech32 limits.
const (
	MaxHRPLength    = 83
	MaxBech32Length = 90
	bech32Checksum  = 6
)

// ValidateHRP checks a human-readable prefix: 1 to 83 characters in the
// printable range 33..126, not mixing upper and lower case.
func ValidateHRP(hrp string) error {
	const op = "validate hrp"

	if hrp == "" {
		return keyerr.New(keyerr.KindBech32, op, "empty human-readable prefix")
	}
	if len(hrp) > MaxHRPLength {
		return keyerr.Newf(keyerr.KindBech32, op, "prefix length %d exceeds %d", len(hrp), MaxHRPLength)
	}
	var hasLower, hasUpper bool
	for i := 0; i < len(hrp); i++ {
		c := hrp[i]
		if c < 33 || c > 126 {
			return keyerr.Newf(keyerr.KindBech32, op, "invalid prefix character %q at %d", c, i)
		}
		switch {
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		}
	}
	if hasLower && hasUpper {
		return keyerr.Newf(keyerr.KindBech32, op, "mixed-case prefix %q", hrp)
	}
	return nil
}

// EncodeBech32 regroups payload into 5-bit words and encodes it with the
// original Bech32 checksum (not Bech32m). The result is lowercase and at
// most 90 characters.
func EncodeBech32(hrp string, payload []byte) (string, error) {
	const op = "encode bech32"

	if err := ValidateHRP(hrp); err != nil {
		return "", err
	}
	words, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", keyerr.Bech32(op, err)
	}
	if total := len(hrp) + 1 + len(words) + bech32Checksum; total > MaxBech32Length {
		return "", keyerr.Newf(keyerr.KindBech32, op, "encoded length %d exceeds %d", total, MaxBech32Length)
	}
	s, err := bech32.Encode(strings.ToLower(hrp), words)
	if err != nil {
		return "", keyerr.Bech32(op, err)
	}
	return s, nil
}

// DecodeBech32 decodes a Bech32 string and regroups the data back into
// bytes. Padding bits must be zero.
func DecodeBech32(text string) (hrp string, payload []byte, err error) {
	const op = "decode bech32"

	hrp, words, err := bech32.Decode(text)
	if err != nil {
		return "", nil, keyerr.Bech32(op, err)
	}
	payload, err = bech32.ConvertBits(words, 5, 8, false)
	if err != nil {
		return "", nil, keyerr.Bech32(op, err)
	}
	return hrp, payload, nil
}

func (e *Encoder) bech32Address(chain Chain, h []byte) (Address, error) {
	text, err := EncodeBech32(e.hrp, h)
	if err != nil {
		return Address{}, err
	}
	return Address{chain: chain, hrp: e.hrp, payload: h, text: text}, nil
}

func (e *Encoder) encodeCosmos(pub []byte) (Address, error) {
	h, err := e.hash160(pub)
	if err != nil {
		return Address{}, err
	}
	return e.bech32Address(Cosmos, h)
}

func (e *Encoder) encodeEvmos(pub []byte) (Address, error) {
	h, err := e.keccakHash(pub)
	if err != nil {
		return Address{}, err
	}
	return e.bech32Address(Evmos, h)
}

func (e *Encoder) encodeKlingnet(pub []byte) (Address, error) {
	h, err := e.blake3Hash(pub)
	if err != nil {
		return Address{}, err
	}
	return e.bech32Address(Klingnet, h)
}

func parseBech32(chain Chain, text, hrp string) (Address, error) {
	got, payload, err := DecodeBech32(text)
	if err != nil {
		return Address{}, err
	}
	if hrp != "" && got != strings.ToLower(hrp) {
		return Address{}, keyerr.Newf(keyerr.KindAddress, "parse "+chain.String()+" address",
			"prefix %q, want %q", got, hrp)
	}
	if len(payload) != HashSize {
		return Address{}, keyerr.Newf(keyerr.KindAddress, "parse "+chain.String()+" address",
			"payload %d bytes, want %d", len(payload), HashSize)
	}
	return Address{chain: chain, hrp: got, payload: payload, text: strings.ToLower(text)}, nil
}
